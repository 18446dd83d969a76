package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"iResearch/server/internal/dto"
)

func optStr(v string) dto.Optional[string] {
	return dto.Optional[string]{Set: true, Value: v}
}

func TestCompanyUpdates_OnlySetFields(t *testing.T) {
	req := dto.UpdateCompanyReq{
		Name:     optStr("DeepMind"),
		TechCore: optStr("强化学习"),
		Notes:    optStr(""),
	}

	updates := companyUpdates(req)
	assert.Equal(t, map[string]interface{}{
		"name":      "DeepMind",
		"tech_core": "强化学习",
		"notes":     "",
	}, updates)
}

func TestCompanyUpdates_Empty(t *testing.T) {
	assert.Empty(t, companyUpdates(dto.UpdateCompanyReq{}))
}

func TestCompanyUpdates_AllFieldsMapped(t *testing.T) {
	// 17 个字段全传，确认列名映射一个不漏
	req := dto.UpdateCompanyReq{
		Name: optStr("a"), Domain: optStr("a"), Website: optStr("a"),
		Address: optStr("a"), TeamInfo: optStr("a"), FundingInfo: optStr("a"),
		Field: optStr("a"), Product: optStr("a"), Problem: optStr("a"),
		Method: optStr("a"), Difference: optStr("a"), TechCore: optStr("a"),
		BizModel: optStr("a"), Partners: optStr("a"), Clients: optStr("a"),
		Notes: optStr("a"), SourceLink: optStr("a"),
	}

	updates := companyUpdates(req)
	assert.Len(t, updates, 17)
	for _, col := range []string{
		"name", "domain", "website", "address", "team_info", "funding_info",
		"field", "product", "problem", "method", "difference", "tech_core",
		"biz_model", "partners", "clients", "notes", "source_link",
	} {
		assert.Contains(t, updates, col)
	}
}
