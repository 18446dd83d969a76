package bootstrap

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"iResearch/server/internal/conf"
	"iResearch/server/internal/handler"
	"iResearch/server/internal/model"
	"iResearch/server/internal/utils"
)

const testSecret = "route-test-secret"

// testRouter 空 Handler 足够测路由的鉴权门槛：请求在中间件就被拦下，不会碰到 Service
func testRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	cfg := &conf.Config{}
	cfg.Auth.JWTSecret = testSecret
	return buildRouter(cfg, routerDeps{
		auth:     handler.NewAuthHandler(nil),
		user:     handler.NewUserHandler(nil, nil),
		category: handler.NewCategoryHandler(nil, nil),
		concept:  handler.NewConceptHandler(nil, nil, nil),
		company:  handler.NewCompanyHandler(nil, nil),
		imports:  handler.NewImportHandler(nil, nil, nil),
		file:     handler.NewFileHandler(nil),
		audit:    handler.NewAuditHandler(nil),
	})
}

func doRequest(t *testing.T, r *gin.Engine, method, path, role string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	if role != "" {
		token, err := utils.GenerateToken(testSecret, 1, "someone", role)
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRoutes_RequireToken(t *testing.T) {
	r := testRouter()
	w := doRequest(t, r, http.MethodGet, "/api/category/1", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRoutes_CategoryDetailNeedsEditor(t *testing.T) {
	r := testRouter()

	// 分类详情是编辑视图的一部分，viewer 不可见
	w := doRequest(t, r, http.MethodGet, "/api/category/1", model.RoleViewer)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "需要编辑权限")
}

func TestRoutes_AdminGates(t *testing.T) {
	r := testRouter()

	// editor 到不了管理员接口
	for _, tc := range []struct{ method, path string }{
		{http.MethodDelete, "/api/category/1"},
		{http.MethodGet, "/api/users"},
		{http.MethodPost, "/api/upload"},
		{http.MethodGet, "/api/audit/logs"},
	} {
		w := doRequest(t, r, tc.method, tc.path, model.RoleEditor)
		assert.Equal(t, http.StatusForbidden, w.Code, "%s %s", tc.method, tc.path)
	}
}

func TestRoutes_EditorGates(t *testing.T) {
	r := testRouter()

	// viewer 到不了编辑接口
	for _, tc := range []struct{ method, path string }{
		{http.MethodPost, "/api/concept"},
		{http.MethodPut, "/api/company/1"},
		{http.MethodPost, "/api/concepts/bulk"},
	} {
		w := doRequest(t, r, tc.method, tc.path, model.RoleViewer)
		assert.Equal(t, http.StatusForbidden, w.Code, "%s %s", tc.method, tc.path)
	}
}
