package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"iResearch/server/internal/dto"
	"iResearch/server/internal/service"
)

type ConceptHandler struct {
	svc   *service.ConceptService
	files *service.FileService
	audit *service.AuditService
}

func NewConceptHandler(svc *service.ConceptService, files *service.FileService, audit *service.AuditService) *ConceptHandler {
	return &ConceptHandler{svc: svc, files: files, audit: audit}
}

// List 概念列表
// GET /api/concepts?q=&cat_id=&sort=&page=&page_size=&use_ft=
func (h *ConceptHandler) List(c *gin.Context) {
	var req dto.ConceptListReq
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "参数错误"})
		return
	}

	resp, err := h.svc.Search(c.Request.Context(), req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Get 概念详情
// GET /api/concept/:id
func (h *ConceptHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	resp, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Create 新建概念
// POST /api/concept
func (h *ConceptHandler) Create(c *gin.Context) {
	var req dto.CreateConceptReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "概念术语不能为空"})
		return
	}

	id, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		fail(c, err)
		return
	}

	recordAudit(c, h.audit, "create", "concept", id, map[string]interface{}{"term": req.Term})
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

// Update 更新概念（含附加分类整组替换）
// PUT /api/concept/:id
func (h *ConceptHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateConceptReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "参数错误"})
		return
	}

	if err := h.svc.Update(c.Request.Context(), id, req); err != nil {
		fail(c, err)
		return
	}

	recordAudit(c, h.audit, "update", "concept", id, nil)
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// QuickUpdate 快速更新（标记使用 / 少量字段）
// POST /api/concept/:id/quick_update
func (h *ConceptHandler) QuickUpdate(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.QuickUpdateConceptReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "参数错误"})
		return
	}

	if err := h.svc.QuickUpdate(c.Request.Context(), id, req); err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// Move 移动概念主分类
// POST /api/concept/:id/move
func (h *ConceptHandler) Move(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.MoveConceptReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "参数错误"})
		return
	}

	if err := h.svc.Move(c.Request.Context(), id, req.CategoryID); err != nil {
		fail(c, err)
		return
	}

	recordAudit(c, h.audit, "move", "concept", id, map[string]interface{}{"category_id": req.CategoryID})
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// Bulk 批量操作概念
// POST /api/concepts/bulk
func (h *ConceptHandler) Bulk(c *gin.Context) {
	var req dto.BulkConceptsReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "参数错误"})
		return
	}

	resp, err := h.svc.Bulk(c.Request.Context(), req)
	if err != nil {
		fail(c, err)
		return
	}

	recordAudit(c, h.audit, "bulk_"+req.Op, "concept", 0, map[string]interface{}{"ids": req.IDs})
	c.JSON(http.StatusOK, resp)
}

// UploadImage 上传概念配图
// POST /api/concept/:id/image
// Form-Data: image=BINARY
func (h *ConceptHandler) UploadImage(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	fh, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "没有上传文件"})
		return
	}

	path, err := h.files.UploadConceptImage(c.Request.Context(), id, fh)
	if err != nil {
		fail(c, err)
		return
	}

	recordAudit(c, h.audit, "upload", "concept", id, map[string]interface{}{"image_path": path})
	c.JSON(http.StatusOK, gin.H{"ok": true, "image_path": path})
}
