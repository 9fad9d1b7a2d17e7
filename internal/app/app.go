package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"placement_prep_backend/internal/config"
	"placement_prep_backend/internal/controller"
	"placement_prep_backend/internal/repository"
	"placement_prep_backend/internal/service"
	"placement_prep_backend/pkg/database"
	"placement_prep_backend/pkg/logger"
	"placement_prep_backend/pkg/monitoring"
	"placement_prep_backend/pkg/security"
	"placement_prep_backend/pkg/tracing"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config   *config.Config
	Router   *gin.Engine
	DB       *gorm.DB
	Redis    *redis.Client
	services *services
}

type repositories struct {
	user     *repository.UserRepository
	skillGap *repository.SkillGapRepository
	resource *repository.ResourceRepository
	roadmap  *repository.RoadmapRepository
}

type services struct {
	auth      *service.AuthService
	skillGap  *service.SkillGapService
	planner   *service.PlannerService
	catalog   service.CatalogAdapter
	assembler *service.AssemblerService
	progress  *service.ProgressService
	query     *service.QueryService
	roadmap   *service.RoadmapService
}

type controllers struct {
	auth     *controller.AuthController
	skillGap *controller.SkillGapController
	roadmap  *controller.RoadmapController
	catalog  *controller.CatalogController
	health   *controller.HealthController
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:     repository.NewUserRepository(db),
		skillGap: repository.NewSkillGapRepository(db),
		resource: repository.NewResourceRepository(db),
		roadmap:  repository.NewRoadmapRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) *services {
	s := &services{}

	s.auth = service.NewAuthService(repos.user, cfg)
	s.skillGap = service.NewSkillGapService(repos.skillGap)
	s.planner = service.NewPlannerService(cfg.Planner)
	s.catalog = service.NewDBCatalog(repos.resource)
	s.assembler = service.NewAssemblerService(s.catalog, cfg.Planner)
	s.progress = service.NewProgressService(repos.roadmap)
	s.query = service.NewQueryService(repos.roadmap, s.progress, rdb, cfg.Planner)
	s.roadmap = service.NewRoadmapService(s.planner, s.assembler, repos.roadmap, repos.skillGap, s.query)

	return s
}

// ApplyConfig picks up the runtime-tunable parts of a reloaded config.
// Scheduling policy only affects roadmaps generated after the reload.
func (a *App) ApplyConfig(cfg *config.Config) {
	a.Config.Planner = cfg.Planner
	a.services.planner.Policy = cfg.Planner
	a.services.assembler.Policy = cfg.Planner
}

func (a *App) initControllers(s *services, repos *repositories, db *gorm.DB) *controllers {
	return &controllers{
		auth:     controller.NewAuthController(s.auth, repos.user),
		skillGap: controller.NewSkillGapController(s.skillGap),
		roadmap:  controller.NewRoadmapController(s.roadmap, s.query, s.progress),
		catalog:  controller.NewCatalogController(repos.resource),
		health:   controller.NewHealthController(db),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 100000
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

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)
	defer logger.Log.Sync()

	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
		log.Fatalf("Failed to initialize database: %v", err)
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
		log.Fatalf("Failed to initialize redis: %v", err)
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg, rdb)
	app.services = services
	controllers := app.initControllers(services, repos, db)

	monitoring.Init()

	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("placement-prep", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, cfg)

	return app
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
