package app

import (
	"context"
	"errors"
	"fmt"
	"music_learning_backend/internal/config"
	"music_learning_backend/internal/controller"
	"music_learning_backend/internal/repository"
	"music_learning_backend/internal/service"
	"music_learning_backend/internal/util"
	"music_learning_backend/pkg/configwatcher"
	"music_learning_backend/pkg/database"
	"music_learning_backend/pkg/logger"
	"music_learning_backend/pkg/monitoring"
	"music_learning_backend/pkg/security"
	"music_learning_backend/pkg/tracing"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config *config.Config
	Router *gin.Engine
	DB     *gorm.DB
	Redis  *redis.Client

	services        *services
	origins         *security.OriginSet
	tp              *sdktrace.TracerProvider
	configCallbacks []func(*config.Config)
}

type repositories struct {
	user       *repository.UserRepository
	quiz       *repository.QuizRepository
	quizCache  *repository.QuizCache
	lesson     *repository.LessonRepository
	completion *repository.CompletionRepository
	recording  *repository.RecordingRepository
}

type services struct {
	auth       *service.AuthService
	storage    *service.StorageService
	upload     *service.UploadService
	quiz       *service.QuizService
	lesson     *service.LessonService
	completion *service.CompletionService
	recording  *service.RecordingService
}

type controllers struct {
	auth       *controller.AuthController
	health     *controller.HealthController
	quiz       *controller.QuizController
	lesson     *controller.LessonController
	quizResult *controller.QuizResultController
	recording  *controller.UserRecordingController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

func (a *App) initRepositories(db *gorm.DB, rdb *redis.Client) *repositories {
	quizRepo := repository.NewQuizRepository(db)
	return &repositories{
		user:       repository.NewUserRepository(db),
		quiz:       quizRepo,
		quizCache:  repository.NewQuizCache(rdb, quizRepo, a.Config.Redis.QuizTTL),
		lesson:     repository.NewLessonRepository(db),
		completion: repository.NewCompletionRepository(db),
		recording:  repository.NewRecordingRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config) *services {
	s := &services{}

	s.storage = service.NewStorageService(cfg)
	s.upload = service.NewUploadService(s.storage, cfg)
	s.auth = service.NewAuthService(repos.user, cfg)
	s.quiz = service.NewQuizService(repos.quiz, repos.quizCache)
	s.lesson = service.NewLessonService(repos.lesson, repos.quizCache)
	s.completion = service.NewCompletionService(repos.quizCache, repos.completion)
	s.recording = service.NewRecordingService(repos.recording, repos.lesson)

	return s
}

func (a *App) initControllers(s *services) *controllers {
	return &controllers{
		auth:       controller.NewAuthController(s.auth),
		health:     controller.NewHealthController(a.DB, a.Redis),
		quiz:       controller.NewQuizController(s.quiz),
		lesson:     controller.NewLessonController(s.lesson, s.upload),
		quizResult: controller.NewQuizResultController(s.completion),
		recording:  controller.NewUserRecordingController(s.recording, s.upload),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(a.origins))
	router.Use(security.Secure())
	router.Use(security.RateLimiter(cfg.RateLimit.MaxRequests, time.Duration(cfg.RateLimit.WindowMinutes)*time.Minute))

	// 分布式追踪中间件
	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

// New wires the HTTP stack on top of already opened stores. rdb may be nil.
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client) *App {
	app := &App{
		Config:  cfg,
		DB:      db,
		Redis:   rdb,
		origins: security.NewOriginSet(cfg.CORS.AllowedOrigins),
	}

	repos := app.initRepositories(db, rdb)
	app.services = app.initServices(repos, cfg)
	controllers := app.initControllers(app.services)

	// 监控初始化
	monitoring.Init()

	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	app.Router = router

	app.setupMiddlewares(router, cfg)
	app.registerRoutes(router, controllers, cfg)

	if cfg.Storage.Type == util.StorageLocal {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	app.RegisterConfigCallback(func(newCfg *config.Config) {
		app.origins.Update(newCfg.CORS.AllowedOrigins)
		logger.SetLevel(newCfg)
	})

	return app
}

// NewApp opens the database, Redis and tracing from cfg and builds the App.
func NewApp(cfg *config.Config) (*App, error) {
	logger.InitLogger(cfg)
	logger.Log.Info("Logger initialized successfully")

	gin.SetMode(cfg.Server.Mode)

	db, err := database.InitDB(&cfg.Database, cfg.Server.Mode == gin.DebugMode)
	if err != nil {
		return nil, fmt.Errorf("initialize database: %w", err)
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		database.Close(db)
		return nil, fmt.Errorf("initialize redis: %w", err)
	}

	tp, err := tracing.InitTracer(&cfg.Tracing)
	if err != nil {
		logger.Log.Error("Failed to initialize tracing, continuing without it", zap.Error(err))
		cfg.Tracing.Enabled = false
	}

	app := New(cfg, db, rdb)
	app.tp = tp
	return app, nil
}

// Run serves until SIGINT/SIGTERM and then shuts down gracefully.
func (a *App) Run() error {
	srv := &http.Server{
		Addr:              ":" + a.Config.Server.Port,
		Handler:           a.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if a.Config.File != "" {
		go func() {
			err := configwatcher.WatchConfig(ctx, a.Config.File, func(newCfg *config.Config) {
				for _, cb := range a.configCallbacks {
					cb(newCfg)
				}
			})
			if err != nil {
				logger.Log.Error("Config watcher stopped", zap.Error(err))
			}
		}()
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Log.Info("Server running", zap.String("port", a.Config.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// 等待中断信号优雅地关闭服务器（设置5秒的超时时间）
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return fmt.Errorf("listen: %w", err)
	case <-quit:
	}
	logger.Log.Info("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	logger.Log.Info("Server exiting")
	return nil
}

// Close releases the stores and flushes traces and logs.
func (a *App) Close() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := tracing.Shutdown(ctx, a.tp); err != nil {
		logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
	}
	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			logger.Log.Error("Failed to close redis", zap.Error(err))
		}
	}
	if err := database.Close(a.DB); err != nil {
		logger.Log.Error("Failed to close database", zap.Error(err))
	}
	_ = logger.Log.Sync()
}
