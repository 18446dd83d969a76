package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"gorm.io/gorm"

	"iResearch/server/internal/apperr"
	"iResearch/server/internal/data"
	"iResearch/server/internal/dto"
	"iResearch/server/internal/model"
)

// treeCacheTTL 分类树缓存时长，写操作都会主动失效，TTL 只是兜底
const treeCacheTTL = 60 * time.Second

type CategoryService struct {
	Data *data.Data
	// "最近使用"窗口天数
	RecentDays int
}

func NewCategoryService(d *data.Data, recentDays int) *CategoryService {
	return &CategoryService{Data: d, RecentDays: recentDays}
}

// Flat 平铺列表，按名称排序
func (s *CategoryService) Flat(ctx context.Context) (*dto.CategoryListResp, error) {
	var cats []model.Category
	if err := s.Data.DB.WithContext(ctx).Order("name").Find(&cats).Error; err != nil {
		return nil, apperr.Wrap(apperr.KindStore, "获取分类列表失败", err)
	}

	items := make([]dto.CategoryItem, 0, len(cats))
	for _, c := range cats {
		items = append(items, dto.CategoryItem{ID: c.ID, Name: c.Name, ParentID: c.ParentID})
	}
	return &dto.CategoryListResp{Items: items}, nil
}

// Tree 分类树 + 统计，先走 Redis 缓存
func (s *CategoryService) Tree(ctx context.Context) (*dto.CategoryTreeResp, error) {
	// 1. 缓存命中直接返回（缓存故障不影响业务）
	if raw, err := s.Data.Redis.Get(ctx, data.TreeCacheKey).Bytes(); err == nil {
		var cached dto.CategoryTreeResp
		if json.Unmarshal(raw, &cached) == nil {
			return &cached, nil
		}
	}

	resp, err := s.buildTree(ctx)
	if err != nil {
		return nil, err
	}

	// 2. 回填缓存
	if raw, err := json.Marshal(resp); err == nil {
		s.Data.Redis.Set(ctx, data.TreeCacheKey, raw, treeCacheTTL)
	}
	return resp, nil
}

func (s *CategoryService) buildTree(ctx context.Context) (*dto.CategoryTreeResp, error) {
	db := s.Data.DB.WithContext(ctx)

	// 1. 一次捞出所有分类（名称序，树里的兄弟节点天然有序）
	var cats []model.Category
	if err := db.Order("name").Find(&cats).Error; err != nil {
		return nil, apperr.Wrap(apperr.KindStore, "获取分类树失败", err)
	}

	// 2. 一条 GROUP BY 拿到每个分类的主分类概念数
	type countRow struct {
		CategoryID uint
		Cnt        int64
	}
	var rows []countRow
	if err := db.Model(&model.Concept{}).
		Select("category_id, count(*) as cnt").
		Where("category_id IS NOT NULL").
		Group("category_id").
		Scan(&rows).Error; err != nil {
		return nil, apperr.Wrap(apperr.KindStore, "统计分类概念数失败", err)
	}
	mainCounts := make(map[uint]int64, len(rows))
	for _, r := range rows {
		mainCounts[r.CategoryID] = r.Cnt
	}

	// 3. 全局统计
	var countAll, countUncat, countRecent int64
	if err := db.Model(&model.Concept{}).Count(&countAll).Error; err != nil {
		return nil, apperr.Wrap(apperr.KindStore, "统计概念总数失败", err)
	}
	if err := db.Model(&model.Concept{}).Where("category_id IS NULL").Count(&countUncat).Error; err != nil {
		return nil, apperr.Wrap(apperr.KindStore, "统计未分类概念失败", err)
	}
	if err := db.Model(&model.Concept{}).
		Where("last_used >= NOW() - make_interval(days => ?)", s.RecentDays).
		Count(&countRecent).Error; err != nil {
		return nil, apperr.Wrap(apperr.KindStore, "统计最近使用概念失败", err)
	}

	return &dto.CategoryTreeResp{
		Tree:        buildCategoryTree(cats, mainCounts),
		CountAll:    countAll,
		CountUncat:  countUncat,
		CountRecent: countRecent,
	}, nil
}

// buildCategoryTree 一趟建邻接表：父节点不存在的当根节点处理
func buildCategoryTree(cats []model.Category, mainCounts map[uint]int64) []*dto.CategoryNode {
	nodes := make(map[uint]*dto.CategoryNode, len(cats))
	for _, c := range cats {
		nodes[c.ID] = &dto.CategoryNode{
			ID:        c.ID,
			Name:      c.Name,
			ParentID:  c.ParentID,
			CountMain: mainCounts[c.ID],
			Children:  []*dto.CategoryNode{},
		}
	}

	roots := make([]*dto.CategoryNode, 0)
	for _, c := range cats {
		node := nodes[c.ID]
		if c.ParentID == nil {
			roots = append(roots, node)
			continue
		}
		parent, ok := nodes[*c.ParentID]
		if !ok {
			// 孤儿节点：parent_id 指向不存在的分类，按根处理
			roots = append(roots, node)
			continue
		}
		parent.Children = append(parent.Children, node)
	}
	return roots
}

// Create 创建分类
func (s *CategoryService) Create(ctx context.Context, req dto.CreateCategoryReq) (*dto.CategoryItem, error) {
	if req.ParentID != nil {
		// 父分类必须真实存在
		var cnt int64
		s.Data.DB.WithContext(ctx).Model(&model.Category{}).Where("id = ?", *req.ParentID).Count(&cnt)
		if cnt == 0 {
			return nil, apperr.New(apperr.KindValidation, "父分类不存在")
		}
	}

	cat := &model.Category{Name: req.Name, ParentID: req.ParentID}
	if err := s.Data.DB.WithContext(ctx).Create(cat).Error; err != nil {
		return nil, apperr.FromDB(err, "分类不存在", "分类名称已存在")
	}

	s.Data.DropTreeCache(ctx)
	return &dto.CategoryItem{ID: cat.ID, Name: cat.Name, ParentID: cat.ParentID}, nil
}

// Get 分类详情
func (s *CategoryService) Get(ctx context.Context, id uint) (*model.Category, error) {
	var cat model.Category
	if err := s.Data.DB.WithContext(ctx).First(&cat, id).Error; err != nil {
		return nil, apperr.FromDB(err, "分类不存在", "")
	}
	return &cat, nil
}

// Update 部分更新；改 parent_id 时做环路检查
func (s *CategoryService) Update(ctx context.Context, id uint, req dto.UpdateCategoryReq) error {
	updates := map[string]interface{}{}
	if req.Name.Set {
		updates["name"] = req.Name.Value
	}
	if req.ParentID.Set {
		if req.ParentID.Value != nil {
			if err := s.checkNoCycle(ctx, id, *req.ParentID.Value); err != nil {
				return err
			}
		}
		updates["parent_id"] = req.ParentID.Value
	}
	if len(updates) == 0 {
		return apperr.New(apperr.KindValidation, "没有要更新的字段")
	}

	res := s.Data.DB.WithContext(ctx).Model(&model.Category{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return apperr.FromDB(res.Error, "分类不存在", "分类名称已存在")
	}
	if res.RowsAffected == 0 {
		return apperr.New(apperr.KindNotFound, "分类不存在")
	}

	s.Data.DropTreeCache(ctx)
	return nil
}

// checkNoCycle 从 newParent 沿祖先链向上走，碰到 id 说明会成环
func (s *CategoryService) checkNoCycle(ctx context.Context, id, newParentID uint) error {
	if newParentID == id {
		return apperr.New(apperr.KindValidation, "分类不能挂到自己下面")
	}

	cur := newParentID
	// 上限防御：存量数据如果已经有环，不至于死循环
	for i := 0; i < 1000; i++ {
		var cat model.Category
		err := s.Data.DB.WithContext(ctx).Select("id", "parent_id").First(&cat, cur).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// 祖先链断了（孤儿），不可能成环
			return nil
		}
		if err != nil {
			return apperr.Wrap(apperr.KindStore, "环路检查失败", err)
		}
		if cat.ParentID == nil {
			return nil
		}
		if *cat.ParentID == id {
			return apperr.New(apperr.KindValidation, "不能把分类挂到它的子孙分类下面")
		}
		cur = *cat.ParentID
	}
	return apperr.New(apperr.KindValidation, "分类层级过深或存在环路")
}

// Delete 删除分类：被任何概念（主分类或附加分类）引用时拒绝
func (s *CategoryService) Delete(ctx context.Context, id uint) error {
	db := s.Data.DB.WithContext(ctx)

	var mainCnt, extraCnt int64
	if err := db.Model(&model.Concept{}).Where("category_id = ?", id).Count(&mainCnt).Error; err != nil {
		return apperr.Wrap(apperr.KindStore, "删除分类失败", err)
	}
	if err := db.Model(&model.CategoryConcept{}).Where("category_id = ?", id).Count(&extraCnt).Error; err != nil {
		return apperr.Wrap(apperr.KindStore, "删除分类失败", err)
	}
	if mainCnt > 0 || extraCnt > 0 {
		return apperr.New(apperr.KindHasDependents, "分类下还有概念，无法删除")
	}

	res := db.Delete(&model.Category{}, id)
	if res.Error != nil {
		return apperr.Wrap(apperr.KindStore, "删除分类失败", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.New(apperr.KindNotFound, "分类不存在")
	}

	s.Data.DropTreeCache(ctx)
	return nil
}

// CreateRelation 建一条分类语义边，三元组唯一
func (s *CategoryService) CreateRelation(ctx context.Context, req dto.CreateRelationReq) (uint, error) {
	if !model.IsValidPredicate(req.Predicate) {
		return 0, apperr.New(apperr.KindValidation, "无效的关系谓词")
	}

	rel := &model.CategoryRelation{
		SubjectID: req.SubjectID,
		Predicate: req.Predicate,
		ObjectID:  req.ObjectID,
	}
	if err := s.Data.DB.WithContext(ctx).Create(rel).Error; err != nil {
		return 0, apperr.FromDB(err, "分类不存在", "关系已存在")
	}
	return rel.ID, nil
}

// ListRelations 列出以某分类为主语的语义边
func (s *CategoryService) ListRelations(ctx context.Context, subjectID uint) (*dto.RelationListResp, error) {
	var rels []model.CategoryRelation
	if err := s.Data.DB.WithContext(ctx).
		Where("subject_id = ?", subjectID).
		Order("predicate, object_id").
		Find(&rels).Error; err != nil {
		return nil, apperr.Wrap(apperr.KindStore, "获取分类关系失败", err)
	}

	items := make([]dto.RelationItem, 0, len(rels))
	for _, r := range rels {
		items = append(items, dto.RelationItem{
			ID: r.ID, SubjectID: r.SubjectID, Predicate: r.Predicate, ObjectID: r.ObjectID,
		})
	}
	return &dto.RelationListResp{Items: items}, nil
}

// DeleteRelation 删一条语义边
func (s *CategoryService) DeleteRelation(ctx context.Context, id uint) error {
	res := s.Data.DB.WithContext(ctx).Delete(&model.CategoryRelation{}, id)
	if res.Error != nil {
		return apperr.Wrap(apperr.KindStore, "删除分类关系失败", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.New(apperr.KindNotFound, "关系不存在")
	}
	return nil
}
