package service

import (
	"context"
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm"

	"iResearch/server/internal/apperr"
	"iResearch/server/internal/data"
	"iResearch/server/internal/dto"
	"iResearch/server/internal/model"
)

// 分页上限：page_size 最大 200
const maxPageSize = 200

// cat_id 的哨兵值
const (
	catFilterUncat  = "-1" // 未分类
	catFilterRecent = "-2" // 最近使用
)

type ConceptService struct {
	Data       *data.Data
	RecentDays int
}

func NewConceptService(d *data.Data, recentDays int) *ConceptService {
	return &ConceptService{Data: d, RecentDays: recentDays}
}

// clampPage 页码从 1 开始
func clampPage(page int) int {
	if page < 1 {
		return 1
	}
	return page
}

// clampPageSize 限制单页条数，防止一把捞全表
func clampPageSize(size int) int {
	if size < 1 {
		return 50
	}
	if size > maxPageSize {
		return maxPageSize
	}
	return size
}

// validateCatFilter cat_id 只认空、哨兵值和整数 id，
// 别的字符串会在 Postgres 里转型失败，提前拦成参数错误
func validateCatFilter(catID string) error {
	switch catID {
	case "", catFilterUncat, catFilterRecent:
		return nil
	}
	if _, err := strconv.Atoi(catID); err != nil {
		return apperr.New(apperr.KindValidation, "无效的分类筛选")
	}
	return nil
}

// buildFulltextQuery 把空白分隔的查询词拼成 tsquery：
// "图 神经" -> "图:* & 神经:*"，所有词都是必须的前缀词
func buildFulltextQuery(q string) string {
	words := strings.Fields(q)
	terms := make([]string, 0, len(words))
	for _, w := range words {
		// 单引号会破坏 tsquery 语法，直接剔除
		w = strings.ReplaceAll(w, "'", "")
		if w == "" {
			continue
		}
		terms = append(terms, w+":*")
	}
	return strings.Join(terms, " & ")
}

// conceptFulltextVector 与 data 层建的 GIN 索引表达式保持一致
const conceptFulltextVector = `to_tsvector('simple',
	coalesce(term,'') || ' ' || coalesce(plain_def,'') || ' ' ||
	coalesce(mechanism,'') || ' ' || coalesce(examples,''))`

// applyFilters 组装搜索 + 分类筛选条件，列表查询和计数共用
func (s *ConceptService) applyFilters(db *gorm.DB, req dto.ConceptListReq) *gorm.DB {
	// 1. 关键词
	if req.Q != "" {
		if req.UseFT == "1" {
			if ftq := buildFulltextQuery(req.Q); ftq != "" {
				db = db.Where(conceptFulltextVector+" @@ to_tsquery('simple', ?)", ftq)
			}
		} else {
			like := "%" + req.Q + "%"
			db = db.Where(
				"(term ILIKE ? OR plain_def ILIKE ? OR mechanism ILIKE ? OR examples ILIKE ?)",
				like, like, like, like)
		}
	}

	// 2. 分类筛选
	switch req.CatID {
	case "":
		// 不筛选
	case catFilterUncat:
		db = db.Where("category_id IS NULL")
	case catFilterRecent:
		db = db.Where("last_used >= NOW() - make_interval(days => ?)", s.RecentDays)
	default:
		// 具体分类：主分类命中或附加分类命中（并集）
		db = db.Where(
			"(category_id = ? OR concepts.id IN (SELECT concept_id FROM category_concepts WHERE category_id = ?))",
			req.CatID, req.CatID)
	}

	return db
}

// conceptRow 列表查询的扫描目标（带主分类名）
type conceptRow struct {
	ID           uint
	Term         string
	PlainDef     string
	Mechanism    string
	Examples     string
	CategoryID   *uint
	CategoryName *string
	LastUsed     *time.Time
}

// formatDay 时间戳转 YYYY-MM-DD，保持和原接口一致的日期格式
func formatDay(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format("2006-01-02")
	return &s
}

// Search 概念列表：关键词 + 分类筛选 + 排序 + 分页
func (s *ConceptService) Search(ctx context.Context, req dto.ConceptListReq) (*dto.ConceptListResp, error) {
	if err := validateCatFilter(req.CatID); err != nil {
		return nil, err
	}
	req.Page = clampPage(req.Page)
	req.PageSize = clampPageSize(req.PageSize)

	base := s.applyFilters(s.Data.DB.WithContext(ctx).Model(&model.Concept{}), req)

	// 1. 总数（与分页无关）
	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, apperr.Wrap(apperr.KindStore, "查询概念列表失败", err)
	}

	// 2. 排序
	db := base.Select("concepts.id, concepts.term, concepts.plain_def, concepts.mechanism, " +
		"concepts.examples, concepts.category_id, categories.name AS category_name, concepts.last_used").
		Joins("LEFT JOIN categories ON categories.id = concepts.category_id")
	if req.Sort == "last_used" {
		db = db.Order("concepts.last_used DESC NULLS LAST, concepts.term ASC")
	} else {
		db = db.Order("concepts.term ASC")
	}

	// 3. 分页
	offset := (req.Page - 1) * req.PageSize
	var rows []conceptRow
	if err := db.Limit(req.PageSize).Offset(offset).Scan(&rows).Error; err != nil {
		return nil, apperr.Wrap(apperr.KindStore, "查询概念列表失败", err)
	}

	items := make([]dto.ConceptItem, 0, len(rows))
	for _, r := range rows {
		items = append(items, dto.ConceptItem{
			ID:         r.ID,
			Term:       r.Term,
			PlainDef:   r.PlainDef,
			Mechanism:  r.Mechanism,
			Examples:   r.Examples,
			CategoryID: r.CategoryID,
			Category:   r.CategoryName,
			LastUsed:   formatDay(r.LastUsed),
		})
	}

	return &dto.ConceptListResp{
		Items:    items,
		Total:    total,
		Page:     req.Page,
		PageSize: req.PageSize,
	}, nil
}

// Get 概念详情：主分类名 + 附加分类列表
func (s *ConceptService) Get(ctx context.Context, id uint) (*dto.ConceptDetail, error) {
	db := s.Data.DB.WithContext(ctx)

	var c model.Concept
	if err := db.First(&c, id).Error; err != nil {
		return nil, apperr.FromDB(err, "概念不存在", "")
	}

	var categoryName *string
	if c.CategoryID != nil {
		var cat model.Category
		if err := db.Select("name").First(&cat, *c.CategoryID).Error; err == nil {
			categoryName = &cat.Name
		}
	}

	var extras []dto.CategoryRef
	if err := db.Model(&model.CategoryConcept{}).
		Select("categories.id, categories.name").
		Joins("JOIN categories ON categories.id = category_concepts.category_id").
		Where("category_concepts.concept_id = ?", id).
		Scan(&extras).Error; err != nil {
		return nil, apperr.Wrap(apperr.KindStore, "获取附加分类失败", err)
	}
	if extras == nil {
		extras = []dto.CategoryRef{}
	}

	return &dto.ConceptDetail{
		ID:              c.ID,
		Term:            c.Term,
		PlainDef:        c.PlainDef,
		Mechanism:       c.Mechanism,
		Examples:        c.Examples,
		ImagePath:       c.ImagePath,
		CategoryID:      c.CategoryID,
		Category:        categoryName,
		LastUsed:        formatDay(c.LastUsed),
		ExtraCategories: extras,
	}, nil
}

// Create 新建概念
func (s *ConceptService) Create(ctx context.Context, req dto.CreateConceptReq) (uint, error) {
	c := &model.Concept{
		Term:       req.Term,
		PlainDef:   req.PlainDef,
		Mechanism:  req.Mechanism,
		Examples:   req.Examples,
		CategoryID: req.CategoryID,
	}
	if err := s.Data.DB.WithContext(ctx).Create(c).Error; err != nil {
		return 0, apperr.FromDB(err, "概念不存在", "概念术语已存在")
	}

	s.Data.DropTreeCache(ctx)
	return c.ID, nil
}

// conceptUpdates 把部分更新请求翻译成 SET 字段表
// last_used=true 写当前时间，false/没传都不碰
func conceptUpdates(req dto.UpdateConceptReq, now time.Time) map[string]interface{} {
	updates := map[string]interface{}{}
	if req.Term.Set {
		updates["term"] = req.Term.Value
	}
	if req.PlainDef.Set {
		updates["plain_def"] = req.PlainDef.Value
	}
	if req.Mechanism.Set {
		updates["mechanism"] = req.Mechanism.Value
	}
	if req.Examples.Set {
		updates["examples"] = req.Examples.Value
	}
	if req.CategoryID.Set {
		updates["category_id"] = req.CategoryID.Value
	}
	if req.LastUsed.Set && req.LastUsed.Value {
		updates["last_used"] = now
	}
	return updates
}

// Update 部分更新；extra_categories 传了就整组替换（先清后插，同事务）
func (s *ConceptService) Update(ctx context.Context, id uint, req dto.UpdateConceptReq) error {
	updates := conceptUpdates(req, time.Now())
	if len(updates) == 0 {
		return apperr.New(apperr.KindValidation, "没有要更新的字段")
	}

	err := s.Data.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.Concept{}).Where("id = ?", id).Updates(updates)
		if res.Error != nil {
			return apperr.FromDB(res.Error, "概念不存在", "概念术语已存在")
		}
		if res.RowsAffected == 0 {
			return apperr.New(apperr.KindNotFound, "概念不存在")
		}

		// 附加分类整组替换
		if req.ExtraCategories.Set {
			if err := tx.Where("concept_id = ?", id).Delete(&model.CategoryConcept{}).Error; err != nil {
				return apperr.Wrap(apperr.KindStore, "更新附加分类失败", err)
			}
			for _, catID := range req.ExtraCategories.Value {
				link := model.CategoryConcept{CategoryID: catID, ConceptID: id}
				if err := tx.Create(&link).Error; err != nil {
					return apperr.FromDB(err, "分类不存在", "附加分类重复")
				}
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.Data.DropTreeCache(ctx)
	return nil
}

// QuickUpdate 快速更新：只传"标记使用"时仅写 last_used，别的不碰；
// 否则按部分更新处理，但不涉及附加分类
func (s *ConceptService) QuickUpdate(ctx context.Context, id uint, req dto.QuickUpdateConceptReq) error {
	db := s.Data.DB.WithContext(ctx)

	if req.OnlyMarksUsed() {
		res := db.Model(&model.Concept{}).Where("id = ?", id).Update("last_used", time.Now())
		if res.Error != nil {
			return apperr.Wrap(apperr.KindStore, "快速更新概念失败", res.Error)
		}
		if res.RowsAffected == 0 {
			return apperr.New(apperr.KindNotFound, "概念不存在")
		}
		s.Data.DropTreeCache(ctx)
		return nil
	}

	updates := conceptUpdates(dto.UpdateConceptReq{
		Term:       req.Term,
		PlainDef:   req.PlainDef,
		Mechanism:  req.Mechanism,
		Examples:   req.Examples,
		CategoryID: req.CategoryID,
		LastUsed:   req.LastUsed,
	}, time.Now())
	if len(updates) == 0 {
		return apperr.New(apperr.KindValidation, "没有要更新的字段")
	}

	res := db.Model(&model.Concept{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return apperr.FromDB(res.Error, "概念不存在", "概念术语已存在")
	}
	if res.RowsAffected == 0 {
		return apperr.New(apperr.KindNotFound, "概念不存在")
	}

	s.Data.DropTreeCache(ctx)
	return nil
}

// Move 只改主分类
func (s *ConceptService) Move(ctx context.Context, id uint, categoryID *uint) error {
	res := s.Data.DB.WithContext(ctx).Model(&model.Concept{}).
		Where("id = ?", id).
		Update("category_id", categoryID)
	if res.Error != nil {
		return apperr.Wrap(apperr.KindStore, "移动概念失败", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.New(apperr.KindNotFound, "概念不存在")
	}

	s.Data.DropTreeCache(ctx)
	return nil
}

// Bulk 批量操作：move 整体一个事务全成全败；delete 先清两张关联表再删概念
func (s *ConceptService) Bulk(ctx context.Context, req dto.BulkConceptsReq) (*dto.BulkResp, error) {
	if len(req.IDs) == 0 {
		return nil, apperr.New(apperr.KindEmptySelection, "请选择要操作的概念")
	}

	switch req.Op {
	case "move":
		err := s.Data.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			return tx.Model(&model.Concept{}).
				Where("id IN ?", req.IDs).
				Update("category_id", req.Payload.CategoryID).Error
		})
		if err != nil {
			return nil, apperr.Wrap(apperr.KindStore, "批量移动失败", err)
		}
		s.Data.DropTreeCache(ctx)
		return &dto.BulkResp{OK: true}, nil

	case "delete":
		var deleted int64
		err := s.Data.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("concept_id IN ?", req.IDs).Delete(&model.CompanyConcept{}).Error; err != nil {
				return err
			}
			if err := tx.Where("concept_id IN ?", req.IDs).Delete(&model.CategoryConcept{}).Error; err != nil {
				return err
			}
			res := tx.Where("id IN ?", req.IDs).Delete(&model.Concept{})
			if res.Error != nil {
				return res.Error
			}
			deleted = res.RowsAffected
			return nil
		})
		if err != nil {
			return nil, apperr.Wrap(apperr.KindStore, "批量删除失败", err)
		}
		s.Data.DropTreeCache(ctx)
		return &dto.BulkResp{OK: true, Deleted: deleted}, nil

	default:
		return nil, apperr.New(apperr.KindUnsupportedOp, "不支持的操作")
	}
}
