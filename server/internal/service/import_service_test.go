package service

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"iResearch/server/internal/data"
	"iResearch/server/internal/dto"
)

func TestCompanyFromImport_FieldMapping(t *testing.T) {
	rec := dto.ImportRecord{
		CompanyName:    "智谱AI",
		Website:        "https://example.com",
		Address:        "北京",
		TeamInfo:       "清华系",
		FundingInfo:    "D轮",
		ProductService: "大模型平台",
		BizModel:       "API 订阅",
		Partners:       "某云厂商",
		Clients:        "企业客户",
		Field:          "AI",
		Detail:         "一段备注",
		Source:         "https://news.example.com/1",
	}

	c := companyFromImport(rec)
	assert.Equal(t, "智谱AI", c.Name)
	assert.Equal(t, "https://example.com", c.Website)
	assert.Equal(t, "北京", c.Address)
	assert.Equal(t, "清华系", c.TeamInfo)
	assert.Equal(t, "D轮", c.FundingInfo)
	assert.Equal(t, "AI", c.Field)
	assert.Equal(t, "API 订阅", c.BizModel)
	assert.Equal(t, "某云厂商", c.Partners)
	assert.Equal(t, "企业客户", c.Clients)

	// 三个改名字段
	assert.Equal(t, "大模型平台", c.Product)
	assert.Equal(t, "一段备注", c.Notes)
	assert.Equal(t, "https://news.example.com/1", c.SourceLink)
}

// newImportTestService 用 sqlmock 顶替 Postgres、miniredis 顶替 Redis
func newImportTestService(t *testing.T) (*ImportService, sqlmock.Sqlmock, *miniredis.Miniredis) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	return NewImportService(&data.Data{DB: gdb, Redis: rdb}), mock, mr
}

func TestImportBatch_RolledBackRecordNotCounted(t *testing.T) {
	svc, mock, _ := newImportTestService(t)

	// 单条记录：公司插入成功，概念插入失败 -> 保存点整条回滚
	mock.ExpectBegin()
	mock.ExpectExec(`SAVEPOINT`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`SELECT \* FROM "companies"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery(`INSERT INTO "companies"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectQuery(`SELECT \* FROM "concepts"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery(`INSERT INTO "concepts"`).
		WillReturnError(errors.New("insert failed"))
	mock.ExpectExec(`ROLLBACK TO SAVEPOINT`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	resp, err := svc.ImportBatch(context.Background(), []dto.ImportRecord{{
		CompanyName: "甲公司",
		Explain:     map[string]string{"新概念": "定义"},
	}})
	require.NoError(t, err)

	// 公司行已随保存点回滚，计数里不能出现它
	assert.Equal(t, 0, resp.CompaniesAdded)
	assert.Equal(t, 0, resp.ConceptsAdded)
	require.Len(t, resp.Errors, 1)
	assert.Contains(t, resp.Errors[0], "第1条记录处理失败")

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestImportBatch_CountsCommittedAndDropsTreeCache(t *testing.T) {
	svc, mock, mr := newImportTestService(t)
	require.NoError(t, mr.Set(data.TreeCacheKey, "stale"))

	mock.ExpectBegin()
	mock.ExpectExec(`SAVEPOINT`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`SELECT \* FROM "companies"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery(`INSERT INTO "companies"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectQuery(`SELECT \* FROM "concepts"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery(`INSERT INTO "concepts"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))
	mock.ExpectQuery(`INSERT INTO "company_concepts"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()

	resp, err := svc.ImportBatch(context.Background(), []dto.ImportRecord{{
		CompanyName: "甲公司",
		Explain:     map[string]string{"新概念": "定义"},
	}})
	require.NoError(t, err)

	assert.Equal(t, 1, resp.CompaniesAdded)
	assert.Equal(t, 1, resp.ConceptsAdded)
	assert.Empty(t, resp.Errors)

	// 新概念会改变分类树统计，缓存必须失效
	assert.False(t, mr.Exists(data.TreeCacheKey))

	assert.NoError(t, mock.ExpectationsWereMet())
}
