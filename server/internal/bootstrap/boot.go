package bootstrap

import (
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"iResearch/server/internal/conf"
	"iResearch/server/internal/data"
	"iResearch/server/internal/handler"
	"iResearch/server/internal/middleware"
	"iResearch/server/internal/model"
	"iResearch/server/internal/repository"
	"iResearch/server/internal/service"
)

// routerDeps 路由依赖的全部 Handler
type routerDeps struct {
	auth     *handler.AuthHandler
	user     *handler.UserHandler
	category *handler.CategoryHandler
	concept  *handler.ConceptHandler
	company  *handler.CompanyHandler
	imports  *handler.ImportHandler
	file     *handler.FileHandler
	audit    *handler.AuditHandler
}

// buildRouter 组装 Gin 引擎：中间件 + 三档路由（登录即可 / 编辑 / 管理员）
func buildRouter(cfg *conf.Config, h routerDeps) *gin.Engine {
	r := gin.Default()
	r.Use(middleware.TraceMiddleware())

	// CORS 配置
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Content-Length", "Accept-Encoding", "X-CSRF-Token", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	api := r.Group("/api")
	{
		// 公开接口
		api.POST("/auth/login", h.auth.Login)

		// 鉴权接口（viewer 起步，任何有效令牌都可读）
		protected := api.Group("/")
		protected.Use(middleware.JWTAuth(cfg.Auth.JWTSecret))
		{
			protected.GET("/auth/me", h.auth.Me)

			protected.GET("/categories/flat", h.category.Flat)
			protected.GET("/categories/tree", h.category.Tree)
			protected.GET("/category/:id/relations", h.category.ListRelations)

			protected.GET("/concepts", h.concept.List)
			protected.GET("/concept/:id", h.concept.Get)

			protected.GET("/companies", h.company.List)
			protected.GET("/company/:id", h.company.Get)

			protected.GET("/file/*object", h.file.Fetch)
		}

		// 编辑接口 (editor / admin)
		editor := api.Group("/")
		editor.Use(middleware.JWTAuth(cfg.Auth.JWTSecret), middleware.RequireRole(model.RoleEditor))
		{
			editor.POST("/category", h.category.Create)
			editor.GET("/category/:id", h.category.Get)
			editor.PUT("/category/:id", h.category.Update)
			editor.POST("/category_relations", h.category.CreateRelation)
			editor.DELETE("/category_relations/:id", h.category.DeleteRelation)

			editor.POST("/concept", h.concept.Create)
			editor.PUT("/concept/:id", h.concept.Update)
			editor.POST("/concept/:id/quick_update", h.concept.QuickUpdate)
			editor.POST("/concept/:id/move", h.concept.Move)
			editor.POST("/concept/:id/image", h.concept.UploadImage)
			editor.POST("/concepts/bulk", h.concept.Bulk)

			editor.POST("/company", h.company.Create)
			editor.PUT("/company/:id", h.company.Update)
			editor.DELETE("/company/:id", h.company.Delete)
			editor.POST("/companies/bulk", h.company.Bulk)
			editor.POST("/company/:id/concepts", h.company.AddConcept)
			editor.DELETE("/company/:id/concepts/:concept_id", h.company.RemoveConcept)
		}

		// 管理接口 (admin)
		admin := api.Group("/")
		admin.Use(middleware.JWTAuth(cfg.Auth.JWTSecret), middleware.RequireRole(model.RoleAdmin))
		{
			admin.GET("/users", h.user.List)
			admin.POST("/users", h.user.Create)
			admin.PUT("/users/:id", h.user.Update)
			admin.DELETE("/users/:id", h.user.Delete)

			admin.DELETE("/category/:id", h.category.Delete)

			admin.POST("/upload", h.imports.Upload)

			admin.GET("/audit/logs", h.audit.List)
			admin.GET("/audit/stats", h.audit.Stats)
		}
	}

	return r
}

// Run 启动服务器
func Run() {
	// 1. 加载配置
	cfg := conf.LoadConfig()

	// 2. 初始化数据层 (Postgres, Redis, MinIO)
	d, cleanup, err := data.NewData(cfg)
	if err != nil {
		log.Fatalf("❌ 数据层初始化失败: %v", err)
	}
	defer cleanup()

	userRepo := repository.NewUserRepository(d.DB)

	// 3. 初始化服务层
	authSvc := service.NewAuthService(userRepo, cfg.Auth.JWTSecret)
	userSvc := service.NewUserService(userRepo)
	categorySvc := service.NewCategoryService(d, cfg.App.RecentDays)
	conceptSvc := service.NewConceptService(d, cfg.App.RecentDays)
	companySvc := service.NewCompanyService(d)
	importSvc := service.NewImportService(d)
	fileSvc := service.NewFileService(d)
	auditSvc := service.NewAuditService(d)

	// 4. 初始化 Handler 并组装路由
	r := buildRouter(cfg, routerDeps{
		auth:     handler.NewAuthHandler(authSvc),
		user:     handler.NewUserHandler(userSvc, auditSvc),
		category: handler.NewCategoryHandler(categorySvc, auditSvc),
		concept:  handler.NewConceptHandler(conceptSvc, fileSvc, auditSvc),
		company:  handler.NewCompanyHandler(companySvc, auditSvc),
		imports:  handler.NewImportHandler(importSvc, fileSvc, auditSvc),
		file:     handler.NewFileHandler(fileSvc),
		audit:    handler.NewAuditHandler(auditSvc),
	})

	log.Printf("🚀 iResearch 后端已启动，监听端口 :%s", cfg.App.Port)
	if err := r.Run(":" + cfg.App.Port); err != nil {
		log.Fatalf("❌ Server 启动失败: %v", err)
	}
}
