package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"iResearch/server/internal/model"
	"iResearch/server/internal/utils"
)

// Gin Context 里存放当前用户信息的 key
const (
	CtxUserID   = "userID"
	CtxUsername = "username"
	CtxRole     = "role"
)

// 角色梯度：viewer < editor < admin，鉴权就是简单的序数比较
var roleLevel = map[string]int{
	model.RoleViewer: 1,
	model.RoleEditor: 2,
	model.RoleAdmin:  3,
}

// RoleAtLeast 判断 role 是否达到 required 要求的级别
// required 为空表示只要登录即可
func RoleAtLeast(role, required string) bool {
	if required == "" {
		return true
	}
	return roleLevel[role] >= roleLevel[required]
}

// JWTAuth 解析 Authorization: Bearer xxx，把用户信息写进 Context
func JWTAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "缺少认证令牌"})
			return
		}

		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := utils.ParseToken(secret, tokenStr)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "无效或过期的令牌"})
			return
		}

		c.Set(CtxUserID, claims.UserID)
		c.Set(CtxUsername, claims.Username)
		c.Set(CtxRole, claims.Role)

		c.Next()
	}
}

// RequireRole 角色门槛中间件，挂在 JWTAuth 之后
func RequireRole(required string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(CtxRole)
		if !RoleAtLeast(role, required) {
			msg := "需要编辑权限"
			if required == model.RoleAdmin {
				msg = "需要管理员权限"
			}
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": msg})
			return
		}
		c.Next()
	}
}
