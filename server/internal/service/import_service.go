package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"iResearch/server/internal/apperr"
	"iResearch/server/internal/data"
	"iResearch/server/internal/dto"
	"iResearch/server/internal/model"
)

// ImportService 批量导入：整批一个事务，单条记录失败只记错误不中断
type ImportService struct {
	Data *data.Data
}

func NewImportService(d *data.Data) *ImportService {
	return &ImportService{Data: d}
}

// companyFromImport 导入记录 -> 公司模型的字段映射
// 注意几个改名字段: product_service -> product, detail -> notes, source -> source_link
func companyFromImport(rec dto.ImportRecord) model.Company {
	return model.Company{
		Name:        rec.CompanyName,
		Website:     rec.Website,
		Address:     rec.Address,
		TeamInfo:    rec.TeamInfo,
		FundingInfo: rec.FundingInfo,
		Product:     rec.ProductService,
		BizModel:    rec.BizModel,
		Partners:    rec.Partners,
		Clients:     rec.Clients,
		Field:       rec.Field,
		Notes:       rec.Detail,
		SourceLink:  rec.Source,
	}
}

// ImportBatch 处理一批导入记录
// 语义：公司按 name 去重（命中完全不覆盖字段），概念按 term 去重（只在新建时写定义），
// 重复的公司-概念关联静默忽略；单条记录的异常收进 errors 继续往下走；
// 整批最后一起提交，顶层错误才会整体回滚
func (s *ImportService) ImportBatch(ctx context.Context, records []dto.ImportRecord) (*dto.ImportResp, error) {
	resp := &dto.ImportResp{OK: true, Errors: []string{}}

	err := s.Data.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i, rec := range records {
			if rec.CompanyName == "" {
				resp.Errors = append(resp.Errors, fmt.Sprintf("第%d条记录缺少公司名称", i+1))
				continue
			}

			// 每条记录包一层 SAVEPOINT：Postgres 里语句一报错整个事务就废了，
			// 想跳过坏记录继续处理必须回滚到保存点
			var companies, concepts int
			if err := tx.Transaction(func(tx2 *gorm.DB) error {
				var err error
				companies, concepts, err = s.importRecord(tx2, rec)
				return err
			}); err != nil {
				resp.Errors = append(resp.Errors, fmt.Sprintf("第%d条记录处理失败: %v", i+1, err))
				continue
			}

			// 计数只认提交的保存点，回滚掉的行不能出现在统计里
			resp.CompaniesAdded += companies
			resp.ConceptsAdded += concepts
		}
		return nil
	})
	if err != nil {
		return nil, apperr.Wrap(apperr.KindStore, "导入失败", err)
	}

	// 新公司/概念会影响分类树统计
	s.Data.DropTreeCache(ctx)
	return resp, nil
}

// importRecord 处理单条记录：公司 upsert-by-name + 概念/关联
// 返回本条记录新建的公司数和概念数，出错时由调用方整条丢弃
func (s *ImportService) importRecord(tx *gorm.DB, rec dto.ImportRecord) (companiesAdded, conceptsAdded int, err error) {
	// 1. 公司：有就复用，没有才插入
	var company model.Company
	err = tx.Where("name = ?", rec.CompanyName).First(&company).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		company = companyFromImport(rec)
		if err := tx.Create(&company).Error; err != nil {
			return 0, 0, err
		}
		companiesAdded++
	case err != nil:
		return 0, 0, err
	}

	// 2. 概念映射 {term: definition}
	for term, definition := range rec.Explain {
		if term == "" {
			continue
		}

		var concept model.Concept
		err := tx.Where("term = ?", term).First(&concept).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			// 定义只在新建时写入，已有概念不覆盖
			concept = model.Concept{Term: term, PlainDef: definition}
			if err := tx.Create(&concept).Error; err != nil {
				return 0, 0, err
			}
			conceptsAdded++
		case err != nil:
			return 0, 0, err
		}

		// 3. 建关联，重复的静默忽略
		link := model.CompanyConcept{CompanyID: company.ID, ConceptID: concept.ID}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&link).Error; err != nil {
			return 0, 0, err
		}
	}

	return companiesAdded, conceptsAdded, nil
}
