package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Shibo14/ielts-mock/internal/config"
	"github.com/Shibo14/ielts-mock/internal/controller"
	"github.com/Shibo14/ielts-mock/internal/repository"
	"github.com/Shibo14/ielts-mock/internal/service"
	"github.com/Shibo14/ielts-mock/pkg/database"
	"github.com/Shibo14/ielts-mock/pkg/logger"
	"github.com/Shibo14/ielts-mock/pkg/monitoring"
	"github.com/Shibo14/ielts-mock/pkg/security"
	"github.com/Shibo14/ielts-mock/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config          *config.Config
	Router          *gin.Engine
	DB              *gorm.DB
	Redis           *redis.Client
	services        *services
	configCallbacks []func(*config.Config)
}

type repositories struct {
	user       *repository.UserRepository
	test       *repository.TestRepository
	submission *repository.SubmissionRepository
}

type services struct {
	storage    *service.StorageService
	auth       *service.AuthService
	test       *service.TestService
	submission *service.SubmissionService
	seed       *service.SeedService
}

type controllers struct {
	auth       *controller.AuthController
	test       *controller.TestController
	submission *controller.SubmissionController
	admin      *controller.AdminController
	audio      *controller.AudioController
	health     *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

// ReloadConfig swaps in a freshly loaded config and notifies
// registered listeners. Fields captured at startup (DSN, port) keep
// their old values until restart.
func (a *App) ReloadConfig(cfg *config.Config) {
	cfg.ForceMigrate = a.Config.ForceMigrate
	cfg.MigrateOnly = a.Config.MigrateOnly
	cfg.Seed = a.Config.Seed
	*a.Config = *cfg
	for _, cb := range a.configCallbacks {
		cb(a.Config)
	}
	logger.Log.Info("configuration reloaded")
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:       repository.NewUserRepository(db),
		test:       repository.NewTestRepository(db),
		submission: repository.NewSubmissionRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) *services {
	s := &services{}

	s.storage = service.NewStorageService(cfg)
	s.auth = service.NewAuthService(repos.user, cfg)
	s.test = service.NewTestService(repos.test, rdb, s.storage)
	s.submission = service.NewSubmissionService(repos.submission, repos.test)
	s.seed = service.NewSeedService(repos.user, s.test, "data/seeds")

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB, rdb *redis.Client) *controllers {
	return &controllers{
		auth:       controller.NewAuthController(s.auth),
		test:       controller.NewTestController(s.test),
		submission: controller.NewSubmissionController(s.submission, s.test),
		admin:      controller.NewAdminController(s.test, s.submission, s.storage),
		audio:      controller.NewAudioController(s.storage),
		health:     controller.NewHealthController(db, rdb),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 600
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

// startBackgroundTasks closes attempts whose clock ran out while the
// exam page was gone (tab closed, laptop asleep).
func (a *App) startBackgroundTasks(s *services) {
	go func() {
		ticker := time.NewTicker(time.Minute)
		for range ticker.C {
			if err := s.submission.FinishOverdue(); err != nil {
				logger.Log.Error("overdue sweep error", zap.Error(err))
			}
		}
	}()
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)

	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		// The paper cache is optional; everything else works without it.
		logger.Log.Warn("Redis unavailable, paper caching disabled", zap.Error(err))
		rdb = nil
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg, rdb)
	app.services = services
	controllers := app.initControllers(services, db, rdb)

	monitoring.Init()

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("ielts-mock", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, repos, cfg)

	app.startBackgroundTasks(services)

	return app
}

// Seed inserts the demo accounts and sample tests. Safe to call on a
// populated database.
func (a *App) Seed() error {
	return a.services.seed.Run()
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

	logger.Log.Sync()
	log.Println("Server exiting")
}
