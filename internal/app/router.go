package app

import (
	"tutor_backend/internal/config"
	"tutor_backend/internal/middleware"
	"tutor_backend/internal/model"
	"tutor_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/metrics", monitoring.PrometheusHandler())

	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)

		// Parent account lifecycle
		public.POST("/register", c.auth.Signup)
		public.POST("/login", c.auth.Login)
		public.POST("/verify-email", c.auth.VerifyEmail)
		public.POST("/request-password-reset", c.auth.RequestPasswordReset)
		public.POST("/reset-password", c.auth.ResetPassword)

		// Join-code login for students
		public.POST("/student-login", c.student.StudentLogin)

		// Question catalog
		public.GET("/topics", c.question.GetTopics)
		public.GET("/questions", c.question.ListQuestions)
		public.GET("/questions/random", c.question.RandomQuestion)
		public.POST("/questions/:id/flag", c.question.FlagQuestion)
	}

	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg))
	{
		authGroup.GET("/profile", c.auth.GetProfile)

		// Child management is parent-only; quiz routes also accept
		// student sessions, which carry the parent's credential.
		parents := authGroup.Group("/")
		parents.Use(middleware.RoleMiddleware(model.Parent))
		{
			parents.POST("/children", c.student.CreateChild)
			parents.GET("/children", c.student.ListChildren)
			parents.DELETE("/children/:id", c.student.DeleteChild)
		}

		authGroup.POST("/start-session", c.quiz.StartSession)
		authGroup.POST("/submit-answer", c.quiz.SubmitAnswer)
		authGroup.GET("/progress/:studentId", c.quiz.GetProgress)
	}
}
