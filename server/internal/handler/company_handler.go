package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"iResearch/server/internal/dto"
	"iResearch/server/internal/service"
)

type CompanyHandler struct {
	svc   *service.CompanyService
	audit *service.AuditService
}

func NewCompanyHandler(svc *service.CompanyService, audit *service.AuditService) *CompanyHandler {
	return &CompanyHandler{svc: svc, audit: audit}
}

// List 公司列表
// GET /api/companies?q=&page=&page_size=
func (h *CompanyHandler) List(c *gin.Context) {
	var req dto.CompanyListReq
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

// Get 公司详情（全字段 + 关联概念）
// GET /api/company/:id
func (h *CompanyHandler) Get(c *gin.Context) {
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

// Create 新建公司
// POST /api/company
func (h *CompanyHandler) Create(c *gin.Context) {
	var req dto.CreateCompanyReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "公司名称不能为空"})
		return
	}

	id, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		fail(c, err)
		return
	}

	recordAudit(c, h.audit, "create", "company", id, map[string]interface{}{"name": req.Name})
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

// Update 更新公司
// PUT /api/company/:id
func (h *CompanyHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateCompanyReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "参数错误"})
		return
	}

	if err := h.svc.Update(c.Request.Context(), id, req); err != nil {
		fail(c, err)
		return
	}

	recordAudit(c, h.audit, "update", "company", id, nil)
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// Delete 删除公司（连同概念关联）
// DELETE /api/company/:id
func (h *CompanyHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}

	recordAudit(c, h.audit, "delete", "company", id, nil)
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// Bulk 批量删除公司
// POST /api/companies/bulk
func (h *CompanyHandler) Bulk(c *gin.Context) {
	var req dto.BulkCompaniesReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "参数错误"})
		return
	}

	resp, err := h.svc.Bulk(c.Request.Context(), req)
	if err != nil {
		fail(c, err)
		return
	}

	recordAudit(c, h.audit, "bulk_"+req.Op, "company", 0, map[string]interface{}{"ids": req.IDs})
	c.JSON(http.StatusOK, resp)
}

// AddConcept 给公司挂概念，术语不存在就顺手新建
// POST /api/company/:id/concepts
func (h *CompanyHandler) AddConcept(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.AddCompanyConceptReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "概念术语不能为空"})
		return
	}

	conceptID, err := h.svc.AddConcept(c.Request.Context(), id, req.Term)
	if err != nil {
		fail(c, err)
		return
	}

	recordAudit(c, h.audit, "link", "company", id, map[string]interface{}{"concept_id": conceptID, "term": req.Term})
	c.JSON(http.StatusCreated, gin.H{"concept_id": conceptID})
}

// RemoveConcept 解除公司与概念的关联
// DELETE /api/company/:id/concepts/:concept_id
func (h *CompanyHandler) RemoveConcept(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	conceptID, ok := pathID(c, "concept_id")
	if !ok {
		return
	}

	if err := h.svc.RemoveConcept(c.Request.Context(), id, conceptID); err != nil {
		fail(c, err)
		return
	}

	recordAudit(c, h.audit, "unlink", "company", id, map[string]interface{}{"concept_id": conceptID})
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
