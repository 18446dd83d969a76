package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"iResearch/server/internal/dto"
	"iResearch/server/internal/service"
)

type CategoryHandler struct {
	svc   *service.CategoryService
	audit *service.AuditService
}

func NewCategoryHandler(svc *service.CategoryService, audit *service.AuditService) *CategoryHandler {
	return &CategoryHandler{svc: svc, audit: audit}
}

// Flat 平铺分类列表
// GET /api/categories/flat
func (h *CategoryHandler) Flat(c *gin.Context) {
	resp, err := h.svc.Flat(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Tree 分类树 + 统计
// GET /api/categories/tree
func (h *CategoryHandler) Tree(c *gin.Context) {
	resp, err := h.svc.Tree(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Create 创建分类
// POST /api/category
func (h *CategoryHandler) Create(c *gin.Context) {
	var req dto.CreateCategoryReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "分类名称不能为空"})
		return
	}

	item, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		fail(c, err)
		return
	}

	recordAudit(c, h.audit, "create", "category", item.ID, map[string]interface{}{"name": item.Name})
	c.JSON(http.StatusCreated, item)
}

// Get 分类详情
// GET /api/category/:id
func (h *CategoryHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	cat, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, cat)
}

// Update 更新分类
// PUT /api/category/:id
func (h *CategoryHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateCategoryReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "参数错误"})
		return
	}

	if err := h.svc.Update(c.Request.Context(), id, req); err != nil {
		fail(c, err)
		return
	}

	recordAudit(c, h.audit, "update", "category", id, nil)
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// Delete 删除分类
// DELETE /api/category/:id
func (h *CategoryHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}

	recordAudit(c, h.audit, "delete", "category", id, nil)
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// CreateRelation 建分类语义关系
// POST /api/category_relations
func (h *CategoryHandler) CreateRelation(c *gin.Context) {
	var req dto.CreateRelationReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "参数错误"})
		return
	}

	id, err := h.svc.CreateRelation(c.Request.Context(), req)
	if err != nil {
		fail(c, err)
		return
	}

	recordAudit(c, h.audit, "create", "category_relation", id, map[string]interface{}{
		"subject_id": req.SubjectID, "predicate": req.Predicate, "object_id": req.ObjectID,
	})
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

// ListRelations 某分类的语义关系
// GET /api/category/:id/relations
func (h *CategoryHandler) ListRelations(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	resp, err := h.svc.ListRelations(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// DeleteRelation 删分类语义关系
// DELETE /api/category_relations/:id
func (h *CategoryHandler) DeleteRelation(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.svc.DeleteRelation(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}

	recordAudit(c, h.audit, "delete", "category_relation", id, nil)
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
