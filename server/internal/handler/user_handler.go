package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"iResearch/server/internal/dto"
	"iResearch/server/internal/middleware"
	"iResearch/server/internal/service"
)

type UserHandler struct {
	svc   *service.UserService
	audit *service.AuditService
}

func NewUserHandler(svc *service.UserService, audit *service.AuditService) *UserHandler {
	return &UserHandler{svc: svc, audit: audit}
}

// List 用户列表
// GET /api/users
func (h *UserHandler) List(c *gin.Context) {
	resp, err := h.svc.List()
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Create 创建新用户
// POST /api/users
func (h *UserHandler) Create(c *gin.Context) {
	var req dto.CreateUserReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "用户名和密码不能为空"})
		return
	}

	id, err := h.svc.Create(req)
	if err != nil {
		fail(c, err)
		return
	}

	recordAudit(c, h.audit, "create", "user", id, map[string]interface{}{"username": req.Username, "role": req.Role})
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

// Update 更新用户（密码/角色）
// PUT /api/users/:id
func (h *UserHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateUserReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "参数错误"})
		return
	}

	if err := h.svc.Update(id, req); err != nil {
		fail(c, err)
		return
	}

	recordAudit(c, h.audit, "update", "user", id, nil)
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// Delete 删除用户
// DELETE /api/users/:id
func (h *UserHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.svc.Delete(id, c.GetUint(middleware.CtxUserID)); err != nil {
		fail(c, err)
		return
	}

	recordAudit(c, h.audit, "delete", "user", id, nil)
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
