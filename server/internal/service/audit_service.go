package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"iResearch/server/internal/apperr"
	"iResearch/server/internal/data"
	"iResearch/server/internal/dto"
	"iResearch/server/internal/model"
)

// AuditService 操作审计：写操作成功后记一条，查询侧给管理员看
type AuditService struct {
	Data *data.Data
}

func NewAuditService(d *data.Data) *AuditService {
	return &AuditService{Data: d}
}

// AuditEntry 一条待落库的审计记录
type AuditEntry struct {
	TraceID  string
	UserID   uint
	Username string
	Action   string
	Entity   string
	EntityID uint
	Detail   map[string]interface{}
}

// Record 落一条审计日志；尽力而为，失败只打日志不影响主流程
func (s *AuditService) Record(ctx context.Context, e AuditEntry) {
	row := &model.AuditLog{
		TraceID:  e.TraceID,
		UserID:   e.UserID,
		Username: e.Username,
		Action:   e.Action,
		Entity:   e.Entity,
		EntityID: e.EntityID,
	}
	if e.Detail != nil {
		if raw, err := json.Marshal(e.Detail); err == nil {
			row.Detail = raw
		}
	}
	if err := s.Data.DB.WithContext(ctx).Create(row).Error; err != nil {
		log.Printf("⚠️ 审计日志写入失败: %v", err)
	}
}

// List 审计日志列表 (支持分页和筛选)
func (s *AuditService) List(ctx context.Context, req dto.AuditListReq) (*dto.AuditListResp, error) {
	req.Page = clampPage(req.Page)
	req.PageSize = clampPageSize(req.PageSize)

	var logs []model.AuditLog
	var total int64

	db := s.Data.DB.WithContext(ctx).Model(&model.AuditLog{})
	if req.Action != "" {
		db = db.Where("action = ?", req.Action)
	}
	if req.Entity != "" {
		db = db.Where("entity = ?", req.Entity)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, apperr.Wrap(apperr.KindStore, "获取审计日志失败", err)
	}

	offset := (req.Page - 1) * req.PageSize
	if err := db.Order("created_at desc").Limit(req.PageSize).Offset(offset).Find(&logs).Error; err != nil {
		return nil, apperr.Wrap(apperr.KindStore, "获取审计日志失败", err)
	}

	list := make([]dto.AuditItem, 0, len(logs))
	for _, l := range logs {
		list = append(list, dto.AuditItem{
			ID:        l.ID,
			TraceID:   l.TraceID,
			UserID:    l.UserID,
			Username:  l.Username,
			Action:    l.Action,
			Entity:    l.Entity,
			EntityID:  l.EntityID,
			Detail:    string(l.Detail),
			CreatedAt: l.CreatedAt,
		})
	}

	return &dto.AuditListResp{Total: total, List: list}, nil
}

// Stats 最近 N 天的操作统计 (总量 + 每日趋势)
func (s *AuditService) Stats(ctx context.Context, req dto.AuditStatsReq) (*dto.AuditStatsResp, error) {
	days := req.Days
	if days <= 0 {
		days = 7
	}
	startTime := time.Now().AddDate(0, 0, -days)

	db := s.Data.DB.WithContext(ctx).Model(&model.AuditLog{}).Where("created_at >= ?", startTime)

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, apperr.Wrap(apperr.KindStore, "获取操作统计失败", err)
	}

	// 每日趋势 (聚合查询，Postgres 用 TO_CHAR)
	type dailyRow struct {
		Date string
		Ops  int64
	}
	var rows []dailyRow
	if err := db.Select("TO_CHAR(created_at, 'YYYY-MM-DD') as date, count(id) as ops").
		Group("date").
		Order("date").
		Scan(&rows).Error; err != nil {
		return nil, apperr.Wrap(apperr.KindStore, "获取操作统计失败", err)
	}

	daily := make([]dto.DailyMetric, 0, len(rows))
	for _, r := range rows {
		daily = append(daily, dto.DailyMetric{Date: r.Date, Ops: r.Ops})
	}

	return &dto.AuditStatsResp{TotalOps: total, DailyStats: daily}, nil
}
