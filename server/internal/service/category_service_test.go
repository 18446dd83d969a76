package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"iResearch/server/internal/apperr"
	"iResearch/server/internal/model"
)

func uintPtr(v uint) *uint { return &v }

func catWithID(id uint, name string, parentID *uint) model.Category {
	c := model.Category{Name: name, ParentID: parentID}
	c.ID = id
	return c
}

func TestBuildCategoryTree_Nesting(t *testing.T) {
	// 名称序输入: AI(1) > 大模型(2) > 推理(3)，另一棵根 行业(4)
	cats := []model.Category{
		catWithID(1, "AI", nil),
		catWithID(3, "推理", uintPtr(2)),
		catWithID(2, "大模型", uintPtr(1)),
		catWithID(4, "行业", nil),
	}
	counts := map[uint]int64{1: 2, 3: 5}

	roots := buildCategoryTree(cats, counts)
	require.Len(t, roots, 2)

	ai := roots[0]
	assert.Equal(t, uint(1), ai.ID)
	assert.Equal(t, int64(2), ai.CountMain)
	require.Len(t, ai.Children, 1)

	llm := ai.Children[0]
	assert.Equal(t, uint(2), llm.ID)
	assert.Equal(t, int64(0), llm.CountMain)
	require.Len(t, llm.Children, 1)
	assert.Equal(t, uint(3), llm.Children[0].ID)
	assert.Equal(t, int64(5), llm.Children[0].CountMain)

	assert.Equal(t, uint(4), roots[1].ID)
	assert.Empty(t, roots[1].Children)
}

func TestBuildCategoryTree_OrphanBecomesRoot(t *testing.T) {
	// parent_id 指向不存在的分类，按根处理
	cats := []model.Category{
		catWithID(1, "正常根", nil),
		catWithID(2, "孤儿", uintPtr(999)),
	}

	roots := buildCategoryTree(cats, nil)
	require.Len(t, roots, 2)
	assert.Equal(t, uint(1), roots[0].ID)
	assert.Equal(t, uint(2), roots[1].ID)
}

func TestBuildCategoryTree_PreservesInputOrder(t *testing.T) {
	// 入参已经按名称排好序，兄弟节点应该保持这个顺序
	cats := []model.Category{
		catWithID(10, "根", nil),
		catWithID(11, "a-子", uintPtr(10)),
		catWithID(13, "b-子", uintPtr(10)),
		catWithID(12, "c-子", uintPtr(10)),
	}

	roots := buildCategoryTree(cats, nil)
	require.Len(t, roots, 1)
	require.Len(t, roots[0].Children, 3)
	assert.Equal(t, "a-子", roots[0].Children[0].Name)
	assert.Equal(t, "b-子", roots[0].Children[1].Name)
	assert.Equal(t, "c-子", roots[0].Children[2].Name)
}

func TestBuildCategoryTree_Empty(t *testing.T) {
	roots := buildCategoryTree(nil, nil)
	assert.NotNil(t, roots)
	assert.Empty(t, roots)
}

func TestCheckNoCycle_SelfParent(t *testing.T) {
	// 自己挂自己在查库之前就被拒绝
	s := &CategoryService{}
	err := s.checkNoCycle(context.Background(), 5, 5)
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}
