package dto

import "time"

// AuditListReq 审计日志查询
type AuditListReq struct {
	Page     int    `form:"page,default=1"`
	PageSize int    `form:"page_size,default=20"`
	Action   string `form:"action"` // 选填，筛选动作
	Entity   string `form:"entity"` // 选填，筛选实体
}

type AuditItem struct {
	ID        uint      `json:"id"`
	TraceID   string    `json:"trace_id"`
	UserID    uint      `json:"user_id"`
	Username  string    `json:"username"`
	Action    string    `json:"action"`
	Entity    string    `json:"entity"`
	EntityID  uint      `json:"entity_id"`
	Detail    string    `json:"detail"`
	CreatedAt time.Time `json:"created_at"`
}

type AuditListResp struct {
	Total int64       `json:"total"`
	List  []AuditItem `json:"list"`
}

// AuditStatsReq 统计请求
type AuditStatsReq struct {
	Days int `form:"days,default=7"` // 最近几天
}

type DailyMetric struct {
	Date string `json:"date"`
	Ops  int64  `json:"ops"`
}

type AuditStatsResp struct {
	TotalOps   int64         `json:"total_ops"`
	DailyStats []DailyMetric `json:"daily_stats"`
}
