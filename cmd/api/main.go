package main

import (
	"context"
	"fmt"
	stdlog "log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/Beliver-247/sliit-choir-backend/docs" // swagger docs
	"github.com/Beliver-247/sliit-choir-backend/internal/api/handlers"
	"github.com/Beliver-247/sliit-choir-backend/internal/api/middleware"
	"github.com/Beliver-247/sliit-choir-backend/internal/api/routes"
	"github.com/Beliver-247/sliit-choir-backend/internal/domain/attendance"
	"github.com/Beliver-247/sliit-choir-backend/internal/domain/donation"
	"github.com/Beliver-247/sliit-choir-backend/internal/domain/event"
	"github.com/Beliver-247/sliit-choir-backend/internal/domain/member"
	"github.com/Beliver-247/sliit-choir-backend/internal/domain/merchandise"
	"github.com/Beliver-247/sliit-choir-backend/internal/domain/order"
	"github.com/Beliver-247/sliit-choir-backend/internal/domain/resource"
	"github.com/Beliver-247/sliit-choir-backend/internal/domain/schedule"
	"github.com/Beliver-247/sliit-choir-backend/internal/infrastructure/cache"
	"github.com/Beliver-247/sliit-choir-backend/internal/infrastructure/persistence/postgres/connection"
	"github.com/Beliver-247/sliit-choir-backend/internal/infrastructure/persistence/postgres/migrations"
	"github.com/Beliver-247/sliit-choir-backend/internal/infrastructure/storage"
	"github.com/Beliver-247/sliit-choir-backend/pkg/config"
	"github.com/Beliver-247/sliit-choir-backend/pkg/logger"
	"github.com/Beliver-247/sliit-choir-backend/pkg/mail"
	"github.com/Beliver-247/sliit-choir-backend/pkg/security/auth"
)

// @title           SLIIT Choir API
// @version         1.0
// @description     Backend for the university choir portal: members, events, practice schedules, attendance tracking, donations, merchandise and the song library.

// @host      localhost:5000
// @BasePath

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// RequestLoggerMiddleware logs all incoming HTTP requests
func RequestLoggerMiddleware(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		log.Info("Request completed",
			zap.String("path", path),
			zap.String("method", method),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}

func main() {
	cfg, err := config.LoadConfig("")
	if err != nil {
		stdlog.Fatalf("Failed to load configuration: %v", err)
	}

	log := logger.NewLogger()
	defer log.Sync()

	log.Info("Configuration loaded", zap.String("mode", cfg.Server.Mode))

	if cfg.Server.Mode == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}
	gin.DefaultWriter = os.Stdout

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestLoggerMiddleware(log))
	router.Use(middleware.NewMetricsMiddleware().Handler())
	router.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/api/attendance/export"})))
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORS.AllowedOrigins,
		AllowMethods:     cfg.CORS.AllowedMethods,
		AllowHeaders:     cfg.CORS.AllowedHeaders,
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition", "X-RateLimit-Remaining", "X-RateLimit-Reset"},
		AllowCredentials: cfg.CORS.AllowCredentials,
		MaxAge:           12 * time.Hour,
	}))

	// Prometheus metrics endpoint
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	db, err := connection.NewDatabase(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}

	if err := migrations.AutoMigrate(db, log.Logger); err != nil {
		log.Fatal("Failed to run database migrations", zap.Error(err))
	}

	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer redisClient.Close()

	rateLimiter := auth.NewRedisRateLimiter(redisClient.Client(), 1*time.Minute, 20)

	fileStore, err := storage.NewLocalStore(cfg)
	if err != nil {
		log.Fatal("Failed to initialize file storage", zap.Error(err))
	}

	mailer := mail.NewService(cfg, log)

	// Repositories
	memberRepo := member.NewRepository(db)
	eventRepo := event.NewRepository(db)
	scheduleRepo := schedule.NewRepository(db)
	attendanceRepo := attendance.NewRepository(db)
	donationRepo := donation.NewRepository(db)
	merchandiseRepo := merchandise.NewRepository(db)
	orderRepo := order.NewRepository(db)
	resourceRepo := resource.NewRepository(db)

	// Services
	memberService := member.NewService(memberRepo, redisClient, mailer, cfg, log)
	eventService := event.NewService(eventRepo)
	scheduleService := schedule.NewService(scheduleRepo)
	attendanceService := attendance.NewService(attendanceRepo, memberRepo, eventRepo, scheduleRepo, redisClient, log)
	donationService := donation.NewService(donationRepo)
	merchandiseService := merchandise.NewService(merchandiseRepo)
	orderService := order.NewService(orderRepo, merchandiseRepo, fileStore, log)
	resourceService := resource.NewService(resourceRepo, fileStore, log)

	// Handlers
	authHandler := handlers.NewAuthHandler(memberService, cfg.Auth)
	memberHandler := handlers.NewMemberHandler(memberService)
	eventHandler := handlers.NewEventHandler(eventService)
	scheduleHandler := handlers.NewScheduleHandler(scheduleService)
	attendanceHandler := handlers.NewAttendanceHandler(attendanceService)
	donationHandler := handlers.NewDonationHandler(donationService)
	merchandiseHandler := handlers.NewMerchandiseHandler(merchandiseService)
	orderHandler := handlers.NewOrderHandler(orderService)
	resourceHandler := handlers.NewResourceHandler(resourceService)

	// Routes
	routes.NewAuthRoutes(authHandler, cfg.Auth.JWTSecret, rateLimiter).RegisterRoutes(router)
	routes.NewMemberRoutes(memberHandler, cfg.Auth.JWTSecret).RegisterRoutes(router)
	routes.NewEventRoutes(eventHandler, cfg.Auth.JWTSecret).RegisterRoutes(router)
	routes.NewScheduleRoutes(scheduleHandler, cfg.Auth.JWTSecret).RegisterRoutes(router)
	routes.NewAttendanceRoutes(attendanceHandler, cfg.Auth.JWTSecret).RegisterRoutes(router)
	routes.NewDonationRoutes(donationHandler, cfg.Auth.JWTSecret).RegisterRoutes(router)
	routes.NewMerchandiseRoutes(merchandiseHandler, cfg.Auth.JWTSecret).RegisterRoutes(router)
	routes.NewOrderRoutes(orderHandler, cfg.Auth.JWTSecret).RegisterRoutes(router)
	routes.NewResourceRoutes(resourceHandler, cfg.Auth.JWTSecret).RegisterRoutes(router)
	routes.SetupHealthRoutes(router, db, redisClient)

	// Uploaded receipts and resource files are served statically
	router.Static("/uploads", cfg.Storage.UploadDir)

	if cfg.Swagger.Enabled {
		router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	go func() {
		log.Info("Server starting", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Forced shutdown", zap.Error(err))
	}
	log.Info("Server stopped")
}
