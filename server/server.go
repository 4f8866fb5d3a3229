package server

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/haseab/tiba-backend/config"
	"github.com/haseab/tiba-backend/docs"
	distractionHandler "github.com/haseab/tiba-backend/internal/handler/distraction"
	reportHandler "github.com/haseab/tiba-backend/internal/handler/report"
	"github.com/haseab/tiba-backend/internal/repository"
	redisService "github.com/haseab/tiba-backend/internal/service/redis"
	reportService "github.com/haseab/tiba-backend/internal/service/report"
	"github.com/haseab/tiba-backend/internal/source/gcal"
	"github.com/haseab/tiba-backend/internal/source/toggl"
	"github.com/haseab/tiba-backend/middleware"
)

type RouterHandler struct {
	reportHandler      *reportHandler.ReportHandler
	distractionHandler *distractionHandler.DistractionHandler
	apiKey             string
	allowedOrigin      string
}

func RunServer(cfg *config.Config) {
	switch cfg.Env {
	case "prod", "production":
		gin.SetMode(gin.ReleaseMode)
		log.Println("🚀 Starting server in PRODUCTION mode")
	default:
		gin.SetMode(gin.DebugMode)
		log.Println("🔧 Starting server in DEVELOPMENT mode")
	}

	events := newDistractionSource(cfg)

	togglClient := toggl.NewClient(cfg.Toggl.APIToken)

	calendarClient, err := gcal.NewClient(context.Background(),
		cfg.Calendar.CredentialsFile, cfg.Calendar.CalendarID,
		cfg.Report.DayHours, cfg.Report.Location)
	if err != nil {
		log.Fatal("❌ Failed to build calendar client:", err)
	}

	// A nil cache simply disables project-table caching.
	var cache reportService.Cache
	if rs := redisService.NewRedisService(redisService.RedisConfig{
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}); rs != nil {
		cache = rs
	}

	reportSrv := reportService.NewReportService(togglClient, calendarClient, events, cache, cfg.Report)

	routerHandler := &RouterHandler{
		reportHandler:      reportHandler.NewReportHandler(reportSrv),
		distractionHandler: distractionHandler.NewDistractionHandler(events),
		apiKey:             cfg.Server.APIKey,
		allowedOrigin:      cfg.Server.AllowedOrigin,
	}

	r := setupRouter(routerHandler)

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: r,
	}

	go func() {
		log.Printf("✅ Server starting on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ Failed to start server: %v", err)
		}
	}()

	gracefulShutdown(srv)
}

func newDistractionSource(cfg *config.Config) repository.DistractionEventSource {
	if cfg.Report.DistractionSource == "file" {
		log.Printf("📄 Using file-backed distraction source: %s", cfg.Report.DistractionFile)
		return repository.NewDistractionFile(cfg.Report.DistractionFile,
			cfg.Report.DistractionShortcut, cfg.Report.Location)
	}

	db, err := repository.NewRepository(cfg.DB)
	if err != nil {
		log.Fatal("❌ Failed to connect to database:", err)
	}
	return repository.NewDistractionRepository(db, cfg.Report.DistractionShortcut)
}

func gracefulShutdown(srv *http.Server) {
	quit := make(chan os.Signal, 1)

	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit
	log.Println("🔄 Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("❌ Server forced to shutdown: %v", err)
		return
	}

	select {
	case <-ctx.Done():
		log.Println("⚠️ Server shutdown timeout exceeded")
	default:
		log.Println("✅ Server gracefully stopped")
	}
}

func setupRouter(routerHandler *RouterHandler) *gin.Engine {
	r := gin.Default()
	r.SetTrustedProxies([]string{"127.0.0.1", "::1"})

	r.Use(middleware.CORSMiddleware(routerHandler.allowedOrigin))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":    "healthy",
			"timestamp": time.Now().Unix(),
			"service":   "tiba-backend",
		})
	})

	docs.SwaggerInfo.Title = "TiBA metrics API"
	docs.SwaggerInfo.Description = "Weekly time-metrics assembly over Toggl and Google Calendar"
	docs.SwaggerInfo.Version = "1.0"
	docs.SwaggerInfo.BasePath = "/"
	docs.SwaggerInfo.Schemes = []string{"http", "https"}

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	metricsRoutes := r.Group("")
	metricsRoutes.Use(middleware.APIKeyMiddleware(routerHandler.apiKey))
	{
		routerHandler.reportHandler.RegisterRoutes(metricsRoutes)
		routerHandler.distractionHandler.RegisterRoutes(metricsRoutes)
	}

	return r
}
