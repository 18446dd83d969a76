package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"iResearch/server/internal/apperr"
	"iResearch/server/internal/middleware"
	"iResearch/server/internal/service"
)

// statusOf 错误类别 -> HTTP 状态码
func statusOf(kind apperr.Kind) int {
	switch kind {
	case apperr.KindUnauthenticated:
		return http.StatusUnauthorized
	case apperr.KindForbidden:
		return http.StatusForbidden
	case apperr.KindNotFound:
		return http.StatusNotFound
	case apperr.KindStore:
		return http.StatusInternalServerError
	default:
		// DuplicateKey / Validation / EmptySelection / UnsupportedOp / HasDependents
		return http.StatusBadRequest
	}
}

// fail 统一错误出口
func fail(c *gin.Context, err error) {
	c.JSON(statusOf(apperr.KindOf(err)), gin.H{"error": apperr.Message(err)})
}

// pathID 解析路径里的数字 id
func pathID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的 id"})
		return 0, false
	}
	return uint(id), true
}

// recordAudit 写操作成功后记审计日志，用户信息从中间件塞的 Context 里取
func recordAudit(c *gin.Context, svc *service.AuditService, action, entity string, entityID uint, detail map[string]interface{}) {
	svc.Record(c.Request.Context(), service.AuditEntry{
		TraceID:  c.GetString(middleware.TraceContextKey),
		UserID:   c.GetUint(middleware.CtxUserID),
		Username: c.GetString(middleware.CtxUsername),
		Action:   action,
		Entity:   entity,
		EntityID: entityID,
		Detail:   detail,
	})
}
