package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"iResearch/server/internal/apperr"
	"iResearch/server/internal/data"
	"iResearch/server/internal/dto"
	"iResearch/server/internal/model"
)

type CompanyService struct {
	Data *data.Data
}

func NewCompanyService(d *data.Data) *CompanyService {
	return &CompanyService{Data: d}
}

// Search 公司列表：按 name/field 子串搜索，名称序分页
func (s *CompanyService) Search(ctx context.Context, req dto.CompanyListReq) (*dto.CompanyListResp, error) {
	req.Page = clampPage(req.Page)
	req.PageSize = clampPageSize(req.PageSize)

	base := s.Data.DB.WithContext(ctx).Model(&model.Company{})
	if req.Q != "" {
		like := "%" + req.Q + "%"
		base = base.Where("(name ILIKE ? OR field ILIKE ?)", like, like)
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, apperr.Wrap(apperr.KindStore, "查询公司列表失败", err)
	}

	var companies []model.Company
	offset := (req.Page - 1) * req.PageSize
	if err := base.Select("id, name, field, created_at").
		Order("name ASC").
		Limit(req.PageSize).Offset(offset).
		Find(&companies).Error; err != nil {
		return nil, apperr.Wrap(apperr.KindStore, "查询公司列表失败", err)
	}

	items := make([]dto.CompanyItem, 0, len(companies))
	for _, c := range companies {
		items = append(items, dto.CompanyItem{
			ID:        c.ID,
			Name:      c.Name,
			Field:     c.Field,
			CreatedAt: c.CreatedAt.Format("2006-01-02"),
		})
	}

	return &dto.CompanyListResp{
		Items:    items,
		Total:    total,
		Page:     req.Page,
		PageSize: req.PageSize,
	}, nil
}

// Get 公司详情 + 关联概念（术语序）
func (s *CompanyService) Get(ctx context.Context, id uint) (*dto.CompanyDetail, error) {
	db := s.Data.DB.WithContext(ctx)

	var c model.Company
	if err := db.First(&c, id).Error; err != nil {
		return nil, apperr.FromDB(err, "公司不存在", "")
	}

	var concepts []dto.ConceptRef
	if err := db.Model(&model.Concept{}).
		Select("concepts.id, concepts.term, concepts.plain_def").
		Joins("JOIN company_concepts ON company_concepts.concept_id = concepts.id").
		Where("company_concepts.company_id = ?", id).
		Order("concepts.term").
		Scan(&concepts).Error; err != nil {
		return nil, apperr.Wrap(apperr.KindStore, "获取关联概念失败", err)
	}
	if concepts == nil {
		concepts = []dto.ConceptRef{}
	}

	return &dto.CompanyDetail{
		ID:          c.ID,
		Name:        c.Name,
		Domain:      c.Domain,
		Website:     c.Website,
		Address:     c.Address,
		TeamInfo:    c.TeamInfo,
		FundingInfo: c.FundingInfo,
		Field:       c.Field,
		Product:     c.Product,
		Problem:     c.Problem,
		Method:      c.Method,
		Difference:  c.Difference,
		TechCore:    c.TechCore,
		BizModel:    c.BizModel,
		Partners:    c.Partners,
		Clients:     c.Clients,
		Notes:       c.Notes,
		SourceLink:  c.SourceLink,
		CreatedAt:   c.CreatedAt.Format("2006-01-02"),
		Concepts:    concepts,
	}, nil
}

// Create 新建公司
func (s *CompanyService) Create(ctx context.Context, req dto.CreateCompanyReq) (uint, error) {
	c := &model.Company{
		Name:        req.Name,
		Domain:      req.Domain,
		Website:     req.Website,
		Address:     req.Address,
		TeamInfo:    req.TeamInfo,
		FundingInfo: req.FundingInfo,
		Field:       req.Field,
		Product:     req.Product,
		Problem:     req.Problem,
		Method:      req.Method,
		Difference:  req.Difference,
		TechCore:    req.TechCore,
		BizModel:    req.BizModel,
		Partners:    req.Partners,
		Clients:     req.Clients,
		Notes:       req.Notes,
		SourceLink:  req.SourceLink,
	}
	if err := s.Data.DB.WithContext(ctx).Create(c).Error; err != nil {
		return 0, apperr.FromDB(err, "公司不存在", "公司名称已存在")
	}
	return c.ID, nil
}

// companyUpdates 部分更新请求 -> SET 字段表
func companyUpdates(req dto.UpdateCompanyReq) map[string]interface{} {
	updates := map[string]interface{}{}
	set := func(key string, f dto.Optional[string]) {
		if f.Set {
			updates[key] = f.Value
		}
	}
	set("name", req.Name)
	set("domain", req.Domain)
	set("website", req.Website)
	set("address", req.Address)
	set("team_info", req.TeamInfo)
	set("funding_info", req.FundingInfo)
	set("field", req.Field)
	set("product", req.Product)
	set("problem", req.Problem)
	set("method", req.Method)
	set("difference", req.Difference)
	set("tech_core", req.TechCore)
	set("biz_model", req.BizModel)
	set("partners", req.Partners)
	set("clients", req.Clients)
	set("notes", req.Notes)
	set("source_link", req.SourceLink)
	return updates
}

// Update 部分更新
func (s *CompanyService) Update(ctx context.Context, id uint, req dto.UpdateCompanyReq) error {
	updates := companyUpdates(req)
	if len(updates) == 0 {
		return apperr.New(apperr.KindValidation, "没有要更新的字段")
	}

	res := s.Data.DB.WithContext(ctx).Model(&model.Company{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return apperr.FromDB(res.Error, "公司不存在", "公司名称已存在")
	}
	if res.RowsAffected == 0 {
		return apperr.New(apperr.KindNotFound, "公司不存在")
	}
	return nil
}

// Delete 删除公司：先清关联，再删主表，同一事务
func (s *CompanyService) Delete(ctx context.Context, id uint) error {
	return s.Data.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("company_id = ?", id).Delete(&model.CompanyConcept{}).Error; err != nil {
			return apperr.Wrap(apperr.KindStore, "删除公司失败", err)
		}
		res := tx.Delete(&model.Company{}, id)
		if res.Error != nil {
			return apperr.Wrap(apperr.KindStore, "删除公司失败", res.Error)
		}
		if res.RowsAffected == 0 {
			return apperr.New(apperr.KindNotFound, "公司不存在")
		}
		return nil
	})
}

// Bulk 批量操作：公司目前只支持 delete
func (s *CompanyService) Bulk(ctx context.Context, req dto.BulkCompaniesReq) (*dto.BulkResp, error) {
	if len(req.IDs) == 0 {
		return nil, apperr.New(apperr.KindEmptySelection, "请选择要操作的公司")
	}
	if req.Op != "delete" {
		return nil, apperr.New(apperr.KindUnsupportedOp, "不支持的操作")
	}

	var deleted int64
	err := s.Data.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("company_id IN ?", req.IDs).Delete(&model.CompanyConcept{}).Error; err != nil {
			return err
		}
		res := tx.Where("id IN ?", req.IDs).Delete(&model.Company{})
		if res.Error != nil {
			return res.Error
		}
		deleted = res.RowsAffected
		return nil
	})
	if err != nil {
		return nil, apperr.Wrap(apperr.KindStore, "批量删除失败", err)
	}
	return &dto.BulkResp{OK: true, Deleted: deleted}, nil
}

// AddConcept 给公司挂概念：概念按术语找不到就建一个空壳，再建关联
func (s *CompanyService) AddConcept(ctx context.Context, companyID uint, term string) (uint, error) {
	var conceptID uint

	err := s.Data.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 公司必须存在
		var cnt int64
		if err := tx.Model(&model.Company{}).Where("id = ?", companyID).Count(&cnt).Error; err != nil {
			return apperr.Wrap(apperr.KindStore, "添加关联失败", err)
		}
		if cnt == 0 {
			return apperr.New(apperr.KindNotFound, "公司不存在")
		}

		// 查找或创建概念
		var c model.Concept
		err := tx.Where("term = ?", term).First(&c).Error
		switch {
		case err == nil:
			conceptID = c.ID
		case errors.Is(err, gorm.ErrRecordNotFound):
			c = model.Concept{Term: term}
			if err := tx.Create(&c).Error; err != nil {
				return apperr.FromDB(err, "概念不存在", "概念术语已存在")
			}
			conceptID = c.ID
		default:
			return apperr.Wrap(apperr.KindStore, "添加关联失败", err)
		}

		// 建立关联
		link := model.CompanyConcept{CompanyID: companyID, ConceptID: conceptID}
		if err := tx.Create(&link).Error; err != nil {
			return apperr.FromDB(err, "公司不存在", "关联已存在")
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	s.Data.DropTreeCache(ctx)
	return conceptID, nil
}

// RemoveConcept 移除公司概念关联
func (s *CompanyService) RemoveConcept(ctx context.Context, companyID, conceptID uint) error {
	res := s.Data.DB.WithContext(ctx).
		Where("company_id = ? AND concept_id = ?", companyID, conceptID).
		Delete(&model.CompanyConcept{})
	if res.Error != nil {
		return apperr.Wrap(apperr.KindStore, "移除关联失败", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.New(apperr.KindNotFound, "关联不存在")
	}
	return nil
}
