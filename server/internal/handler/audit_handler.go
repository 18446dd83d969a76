package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"iResearch/server/internal/dto"
	"iResearch/server/internal/service"
)

type AuditHandler struct {
	svc *service.AuditService
}

func NewAuditHandler(svc *service.AuditService) *AuditHandler {
	return &AuditHandler{svc: svc}
}

// List 审计日志分页
// GET /api/audit/logs?page=&page_size=&action=&entity=
func (h *AuditHandler) List(c *gin.Context) {
	var req dto.AuditListReq
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "参数错误"})
		return
	}

	resp, err := h.svc.List(c.Request.Context(), req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Stats 按天聚合的操作量
// GET /api/audit/stats?days=
func (h *AuditHandler) Stats(c *gin.Context) {
	var req dto.AuditStatsReq
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "参数错误"})
		return
	}

	resp, err := h.svc.Stats(c.Request.Context(), req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
