package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tutor_backend/internal/config"
	"tutor_backend/internal/controller"
	"tutor_backend/internal/repository"
	"tutor_backend/internal/service"
	"tutor_backend/pkg/configwatcher"
	"tutor_backend/pkg/database"
	"tutor_backend/pkg/logger"
	"tutor_backend/pkg/monitoring"
	"tutor_backend/pkg/security"
	"tutor_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config *config.Config
	Router *gin.Engine
	DB     *gorm.DB
	Redis  *redis.Client

	configCallbacks []func(*config.Config)
}

type repositories struct {
	user     *repository.UserRepository
	student  *repository.StudentRepository
	session  *repository.SessionRepository
	question *repository.QuestionRepository
}

type services struct {
	auth    *service.AuthService
	student *service.StudentService
	catalog *service.CatalogService
	quiz    *service.QuizService
}

type controllers struct {
	auth     *controller.AuthController
	student  *controller.StudentController
	quiz     *controller.QuizController
	question *controller.QuestionController
	health   *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:     repository.NewUserRepository(db),
		student:  repository.NewStudentRepository(db),
		session:  repository.NewSessionRepository(db),
		question: repository.NewQuestionRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, db *gorm.DB, rdb *redis.Client) (*services, error) {
	email, err := service.NewEmailService(&cfg.Email)
	if err != nil {
		return nil, err
	}

	s := &services{}
	s.auth = service.NewAuthService(repos.user, email, cfg)
	s.student = service.NewStudentService(repos.student)
	s.catalog = service.NewCatalogService(repos.question, rdb)
	s.quiz = service.NewQuizService(repos.session, repos.student, s.catalog, db)
	return s, nil
}

func (a *App) initControllers(s *services, db *gorm.DB) *controllers {
	return &controllers{
		auth:     controller.NewAuthController(s.auth),
		student:  controller.NewStudentController(s.student, s.auth),
		quiz:     controller.NewQuizController(s.quiz, s.student),
		question: controller.NewQuestionController(s.catalog),
		health:   controller.NewHealthController(db),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 1000
	}
	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	if window <= 0 {
		window = time.Minute
	}
	router.Use(security.RateLimiter(maxRequests, window))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func NewApp(cfg *config.Config) (*App, error) {
	logger.InitLogger(cfg.Server.Mode)
	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		return nil, err
	}

	// Redis only backs the topic cache, so a missing instance degrades to
	// uncached reads instead of refusing to boot.
	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Warn("Redis unavailable, topic caching disabled", zap.Error(err))
		rdb = nil
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db)
	services, err := app.initServices(repos, cfg, db, rdb)
	if err != nil {
		return nil, err
	}
	controllers := app.initControllers(services, db)

	monitoring.Init()

	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("tutor-backend", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, cfg)

	go configwatcher.WatchConfig("configs/config.yaml", func(newCfg *config.Config) {
		logger.Log.Info("Config reloaded")
		for _, cb := range app.configCallbacks {
			cb(newCfg)
		}
	})

	return app, nil
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
