package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"iResearch/server/internal/model"
	"iResearch/server/internal/utils"
)

func TestRoleAtLeast(t *testing.T) {
	tests := []struct {
		role     string
		required string
		want     bool
	}{
		{model.RoleViewer, model.RoleViewer, true},
		{model.RoleViewer, model.RoleEditor, false},
		{model.RoleViewer, model.RoleAdmin, false},
		{model.RoleEditor, model.RoleEditor, true},
		{model.RoleEditor, model.RoleAdmin, false},
		{model.RoleAdmin, model.RoleViewer, true},
		{model.RoleAdmin, model.RoleAdmin, true},
		// required 为空只要求登录
		{model.RoleViewer, "", true},
		// 未知角色级别为 0，过不了任何门槛
		{"superuser", model.RoleViewer, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, RoleAtLeast(tt.role, tt.required),
			"role=%s required=%s", tt.role, tt.required)
	}
}

func setupAuthRouter(secret string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/ping", JWTAuth(secret), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user_id":  c.GetUint(CtxUserID),
			"username": c.GetString(CtxUsername),
			"role":     c.GetString(CtxRole),
		})
	})
	r.GET("/admin", JWTAuth(secret), RequireRole(model.RoleAdmin), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func TestJWTAuth_MissingHeader(t *testing.T) {
	r := setupAuthRouter("s3cret")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuth_BadToken(t *testing.T) {
	r := setupAuthRouter("s3cret")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuth_ValidToken(t *testing.T) {
	secret := "s3cret"
	token, err := utils.GenerateToken(secret, 42, "alice", model.RoleEditor)
	assert.NoError(t, err)

	r := setupAuthRouter(secret)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"user_id":42`)
	assert.Contains(t, w.Body.String(), `"role":"editor"`)
}

func TestRequireRole_Forbidden(t *testing.T) {
	secret := "s3cret"
	token, err := utils.GenerateToken(secret, 1, "bob", model.RoleEditor)
	assert.NoError(t, err)

	r := setupAuthRouter(secret)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	// editor 进不了 admin 门槛
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "需要管理员权限")
}
