package app

import (
	"tryout_prep_backend/docs"
	"tryout_prep_backend/internal/config"
	"tryout_prep_backend/internal/middleware"
	"tryout_prep_backend/internal/model"
	"tryout_prep_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)
	}

	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg))
	{
		authGroup.GET("/profile", c.auth.GetProfile)

		// history must be registered before /tryouts/:id
		authGroup.GET("/tryouts/history", c.tryout.History)
		authGroup.GET("/tryouts", c.tryout.List)
		authGroup.GET("/tryouts/:id", c.tryout.Find)
		authGroup.POST("/tryouts/:id/start", c.tryout.Start)
		authGroup.POST("/tryouts/:id/questions/:questionId/save", c.tryout.SaveAnswer)
		authGroup.POST("/tryouts/:id/submit", c.tryout.Submit)
		authGroup.GET("/tryouts/:id/history", c.tryout.HistoryByTryout)

		authGroup.GET("/practice-packs", c.practicePack.List)
		authGroup.GET("/practice-packs/:id", c.practicePack.Detail)

		authGroup.GET("/materials", c.material.List)
		authGroup.GET("/materials/:id", c.material.Get)
	}

	admin := router.Group("/api/admin")
	admin.Use(middleware.AuthMiddleware(cfg), middleware.RoleMiddleware(model.Admin))
	{
		admin.POST("/tryouts", c.tryout.Create)
		admin.PUT("/tryouts/:id", c.tryout.Update)
		admin.DELETE("/tryouts/:id", c.tryout.Delete)
		admin.PUT("/tryouts/:id/questions", c.tryout.SetQuestions)

		admin.POST("/questions", c.question.Create)
		admin.GET("/questions", c.question.List)
		admin.GET("/questions/:id", c.question.Get)
		admin.PUT("/questions/:id", c.question.Update)
		admin.DELETE("/questions/:id", c.question.Delete)

		admin.POST("/practice-packs", c.practicePack.Create)
		admin.PUT("/practice-packs/:id", c.practicePack.Update)
		admin.DELETE("/practice-packs/:id", c.practicePack.Delete)
		admin.PUT("/practice-packs/:id/questions", c.practicePack.SetQuestions)

		admin.POST("/materials", c.material.Upload)
		admin.DELETE("/materials/:id", c.material.Delete)
	}
}
