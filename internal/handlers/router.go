package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/grocademy/course-service/internal/cache"
	"github.com/grocademy/course-service/internal/config"
	"github.com/grocademy/course-service/internal/models"
	"github.com/grocademy/course-service/internal/repositories"
	"github.com/grocademy/course-service/internal/services"
	"github.com/grocademy/course-service/internal/utils"
)

// HandlerManager owns every HTTP handler.
type HandlerManager struct {
	Auth    *AuthHandler
	Users   *UserHandler
	Courses *CourseHandler
	Modules *ModuleHandler
}

func NewHandlerManager(sm services.ServiceManager, logger utils.Logger) *HandlerManager {
	return &HandlerManager{
		Auth:    NewAuthHandler(sm, logger),
		Users:   NewUserHandler(sm, logger),
		Courses: NewCourseHandler(sm, logger),
		Modules: NewModuleHandler(sm, logger),
	}
}

// SetupRoutes builds the gin engine with the full middleware chain and
// route table.
func SetupRoutes(
	hm *HandlerManager,
	cfg *config.Config,
	logger utils.Logger,
	repoManager repositories.RepositoryManager,
	cacheManager *cache.CacheManager,
) *gin.Engine {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(
		gin.Recovery(),
		RequestIDMiddleware(),
		CORSMiddleware(),
		SecurityHeadersMiddleware(),
		utils.ContextLogger(logger),
		utils.LoggerMiddleware(logger),
	)

	router.GET("/health", func(c *gin.Context) {
		status := http.StatusOK
		health := gin.H{"status": "ok"}

		if err := repoManager.HealthCheck(c.Request.Context()); err != nil {
			status = http.StatusServiceUnavailable
			health["status"] = "degraded"
			health["database"] = err.Error()
		}
		if err := cacheManager.HealthCheck(c.Request.Context()); err != nil {
			health["cache"] = "unavailable"
		}

		c.JSON(status, health)
	})

	authRequired := AuthMiddleware(cfg.JWTSecret)
	adminOnly := RequireRole(string(models.RoleAdmin))

	v1 := router.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/register", hm.Auth.Register)
			auth.POST("/login", hm.Auth.Login)
			auth.GET("/self", authRequired, hm.Auth.Self)
		}

		courses := v1.Group("/courses", authRequired)
		{
			courses.GET("", hm.Courses.List)
			courses.GET("/:id", hm.Courses.Get)
			courses.POST("", adminOnly, hm.Courses.Create)
			courses.PUT("/:id", adminOnly, hm.Courses.Update)
			courses.DELETE("/:id", adminOnly, hm.Courses.Delete)

			courses.POST("/:id/buy", hm.Courses.Buy)
			courses.GET("/:id/progress", hm.Courses.Progress)
			courses.GET("/:id/certificate", hm.Courses.Certificate)
			courses.POST("/:id/bookmark", hm.Courses.ToggleBookmark)
			courses.GET("/:id/purchases/export", adminOnly, hm.Courses.ExportPurchases)

			courses.GET("/:id/modules", hm.Modules.ListByCourse)
			courses.POST("/:id/modules", adminOnly, hm.Modules.Create)
			courses.PATCH("/:id/modules/reorder", adminOnly, hm.Modules.Reorder)
		}

		modules := v1.Group("/modules", authRequired)
		{
			modules.GET("/:id", hm.Modules.Get)
			modules.PUT("/:id", adminOnly, hm.Modules.Update)
			modules.DELETE("/:id", adminOnly, hm.Modules.Delete)
			modules.POST("/:id/complete", hm.Modules.Complete)
		}

		v1.GET("/bookmarks", authRequired, hm.Courses.ListBookmarks)

		users := v1.Group("/users", authRequired, adminOnly)
		{
			users.GET("", hm.Users.List)
			users.GET("/:id", hm.Users.Get)
			users.PUT("/:id", hm.Users.Update)
			users.DELETE("/:id", hm.Users.Delete)
			users.POST("/:id/balance", hm.Users.TopUp)
		}
	}

	return router
}
