package app

import (
	"placement_prep_backend/docs"
	"placement_prep_backend/internal/config"
	"placement_prep_backend/internal/middleware"
	"placement_prep_backend/internal/model"

	"placement_prep_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	a.registerPublicRoutes(router, c)

	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg))
	{
		a.registerStudentRoutes(authGroup, c)
	}

	a.registerAdminRoutes(router, c, cfg)
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)
	}
}

func (a *App) registerStudentRoutes(authGroup *gin.RouterGroup, c *controllers) {
	authGroup.GET("/profile", c.auth.GetProfile)

	skillGaps := authGroup.Group("/skill-gaps")
	{
		skillGaps.PUT("", c.skillGap.Replace)
		skillGaps.GET("", c.skillGap.List)
	}

	roadmaps := authGroup.Group("/roadmaps")
	{
		roadmaps.POST("", c.roadmap.Generate)
		roadmaps.GET("/active", c.roadmap.GetActive)
		roadmaps.GET("/:id", c.roadmap.GetRoadmap)
		roadmaps.GET("/:id/today", c.roadmap.GetToday)
		roadmaps.GET("/:id/weeks/:week", c.roadmap.GetWeek)
		roadmaps.GET("/:id/milestones", c.roadmap.GetMilestones)
		roadmaps.POST("/:id/tasks/:taskId/complete", c.roadmap.CompleteTask)
	}
}

func (a *App) registerAdminRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	admin := router.Group("/api/admin")
	admin.Use(middleware.AuthMiddleware(cfg), middleware.RoleMiddleware(model.Admin))
	{
		admin.GET("/resources", c.catalog.List)
		admin.POST("/resources", c.catalog.Create)
		admin.PUT("/resources/:id", c.catalog.Update)
		admin.DELETE("/resources/:id", c.catalog.Delete)
	}
}
