package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"iResearch/server/internal/apperr"
	"iResearch/server/internal/dto"
)

func TestBuildFulltextQuery(t *testing.T) {
	tests := []struct {
		name string
		q    string
		want string
	}{
		{"单词", "图", "图:*"},
		{"多词全部必须命中", "图 神经 网络", "图:* & 神经:* & 网络:*"},
		{"多余空白", "  图   神经  ", "图:* & 神经:*"},
		{"剔除单引号", "o'reilly", "oreilly:*"},
		{"只有引号的词被丢弃", "图 '", "图:*"},
		{"空串", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, buildFulltextQuery(tt.q))
		})
	}
}

func TestValidateCatFilter(t *testing.T) {
	// 空串和哨兵值直接放行
	assert.NoError(t, validateCatFilter(""))
	assert.NoError(t, validateCatFilter("-1"))
	assert.NoError(t, validateCatFilter("-2"))
	// 整数 id 放行
	assert.NoError(t, validateCatFilter("12"))

	// 不是整数的 cat_id 拦成参数错误，不能漏到数据库变成 500
	for _, bad := range []string{"abc", "1abc", "1.5", "1 OR 1=1"} {
		err := validateCatFilter(bad)
		require.Error(t, err, "cat_id=%s", bad)
		assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	}
}

func TestClampPage(t *testing.T) {
	assert.Equal(t, 1, clampPage(0))
	assert.Equal(t, 1, clampPage(-3))
	assert.Equal(t, 7, clampPage(7))
}

func TestClampPageSize(t *testing.T) {
	assert.Equal(t, 50, clampPageSize(0))
	assert.Equal(t, 50, clampPageSize(-1))
	assert.Equal(t, 80, clampPageSize(80))
	assert.Equal(t, maxPageSize, clampPageSize(maxPageSize))
	assert.Equal(t, maxPageSize, clampPageSize(100000))
}

func TestConceptUpdates_OnlySetFields(t *testing.T) {
	now := time.Now()
	req := dto.UpdateConceptReq{
		Term:     dto.Optional[string]{Set: true, Value: "注意力机制"},
		PlainDef: dto.Optional[string]{Set: true, Value: ""},
	}

	updates := conceptUpdates(req, now)
	assert.Equal(t, map[string]interface{}{
		"term":      "注意力机制",
		"plain_def": "",
	}, updates)
}

func TestConceptUpdates_CategoryNullable(t *testing.T) {
	now := time.Now()

	// category_id 显式传 null -> 写 NULL（摘到未分类）
	req := dto.UpdateConceptReq{
		CategoryID: dto.Optional[*uint]{Set: true, Value: nil},
	}
	updates := conceptUpdates(req, now)
	assert.Contains(t, updates, "category_id")
	assert.Nil(t, updates["category_id"])

	// 没传 -> 不碰
	updates = conceptUpdates(dto.UpdateConceptReq{}, now)
	assert.Empty(t, updates)
}

func TestConceptUpdates_LastUsed(t *testing.T) {
	now := time.Now()

	// last_used=true 写当前时间
	req := dto.UpdateConceptReq{LastUsed: dto.Optional[bool]{Set: true, Value: true}}
	updates := conceptUpdates(req, now)
	assert.Equal(t, now, updates["last_used"])

	// last_used=false 不写
	req = dto.UpdateConceptReq{LastUsed: dto.Optional[bool]{Set: true, Value: false}}
	assert.Empty(t, conceptUpdates(req, now))
}

func TestQuickUpdateOnlyMarksUsed(t *testing.T) {
	req := dto.QuickUpdateConceptReq{LastUsed: dto.Optional[bool]{Set: true, Value: true}}
	assert.True(t, req.OnlyMarksUsed())

	// 带上别的字段就不算"只标记使用"
	req.Term = dto.Optional[string]{Set: true, Value: "x"}
	assert.False(t, req.OnlyMarksUsed())

	// last_used=false 也不算
	req = dto.QuickUpdateConceptReq{LastUsed: dto.Optional[bool]{Set: true, Value: false}}
	assert.False(t, req.OnlyMarksUsed())

	assert.False(t, (&dto.QuickUpdateConceptReq{}).OnlyMarksUsed())
}

func TestFormatDay(t *testing.T) {
	assert.Nil(t, formatDay(nil))

	ts := time.Date(2025, 3, 9, 23, 59, 0, 0, time.UTC)
	got := formatDay(&ts)
	assert.Equal(t, "2025-03-09", *got)
}
