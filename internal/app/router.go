package app

import (
	"music_learning_backend/docs"
	"music_learning_backend/internal/config"
	"music_learning_backend/internal/middleware"
	"music_learning_backend/internal/model"
	"music_learning_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 1. 公共路由(无需登录)
	a.registerPublicRoutes(router, c, cfg)

	// 2. 需要登录的路由
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg.JWT.Secret))
	{
		a.registerUserRoutes(authGroup, c)
	}

	// 3. 管理员相关接口
	a.registerAdminRoutes(router, c, cfg)
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)

		public.GET("/lessons/:id", c.lesson.GetLesson)
		// 管理员可看到正确答案
		public.GET("/quizzes", middleware.OptionalAuth(cfg.JWT.Secret), c.quiz.ListQuizzes)
		public.GET("/quizzes/:id", middleware.OptionalAuth(cfg.JWT.Secret), c.quiz.GetQuiz)
	}
}

func (a *App) registerUserRoutes(group *gin.RouterGroup, c *controllers) {
	group.GET("/profile", c.auth.GetProfile)

	quizResults := group.Group("/quiz-results")
	{
		quizResults.POST("/submit", c.quizResult.SubmitQuiz)
		quizResults.GET("/status/:quizId", c.quizResult.GetCompletionStatus)
		quizResults.GET("/me", c.quizResult.GetMyCompletedQuizzes)
		quizResults.GET("/user/:userId", c.quizResult.GetUserCompletedQuizzes)
	}

	recordings := group.Group("/user-recordings")
	{
		recordings.GET("/me", c.recording.GetMyRecordings)
		recordings.GET("/lesson/:lessonId", c.recording.GetMyRecordingsForLesson)
		recordings.POST("/:lessonId", c.recording.UploadRecording)
		recordings.DELETE("/:recordingId", c.recording.DeleteRecording)
	}
}

func (a *App) registerAdminRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	admin := router.Group("/api/admin")
	admin.Use(middleware.AuthMiddleware(cfg.JWT.Secret), middleware.RoleMiddleware(model.RoleAdmin))
	{
		admin.POST("/lessons", c.lesson.CreateLesson)
		admin.POST("/lessons/:id/quizzes/:quizId", c.lesson.AttachQuiz)

		admin.POST("/quizzes", c.quiz.CreateQuiz)
		admin.PUT("/quizzes/:id", c.quiz.UpdateQuiz)
		admin.DELETE("/quizzes/:id", c.quiz.DeleteQuiz)
	}
}
