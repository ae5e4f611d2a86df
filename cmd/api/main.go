package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/lankago/tour-marketplace/internal/auth"
	"github.com/lankago/tour-marketplace/internal/bookings"
	"github.com/lankago/tour-marketplace/internal/guides"
	"github.com/lankago/tour-marketplace/internal/reviews"
	"github.com/lankago/tour-marketplace/internal/vehicles"
	"github.com/lankago/tour-marketplace/pkg/common"
	"github.com/lankago/tour-marketplace/pkg/config"
	"github.com/lankago/tour-marketplace/pkg/database"
	"github.com/lankago/tour-marketplace/pkg/logger"
	"github.com/lankago/tour-marketplace/pkg/middleware"
	"github.com/lankago/tour-marketplace/pkg/models"
	redisclient "github.com/lankago/tour-marketplace/pkg/redis"
	"go.uber.org/zap"
)

const (
	serviceName = "tour-marketplace-api"
	version     = "1.0.0"
)

func main() {
	cfg, err := config.Load(serviceName)
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}

	if err := logger.Init(cfg.Server.Environment); err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
	defer logger.Sync()

	logger.Info("Starting tour marketplace API",
		zap.String("service", serviceName),
		zap.String("version", version),
		zap.String("environment", cfg.Server.Environment),
	)

	db, err := database.NewPostgresPool(&cfg.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer database.Close(db)
	logger.Info("Connected to database")

	var redisClient *redisclient.Client
	if cfg.Redis.Enabled {
		redisClient, err = redisclient.NewRedisClient(&cfg.Redis)
		if err != nil {
			logger.Fatal("Failed to connect to redis", zap.Error(err))
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				logger.Warn("Failed to close redis client", zap.Error(err))
			}
		}()
		logger.Info("Connected to redis")
	}

	authRepo := auth.NewRepository(db)
	authService := auth.NewService(authRepo, cfg.JWT.Secret, cfg.JWT.Expiration)
	authHandler := auth.NewHandler(authService)

	guidesRepo := guides.NewRepository(db)
	guidesService := guides.NewService(guidesRepo)
	if redisClient != nil {
		guidesService.SetListingCache(redisClient)
	}
	guidesHandler := guides.NewHandler(guidesService)

	vehiclesRepo := vehicles.NewRepository(db)
	vehiclesService := vehicles.NewService(vehiclesRepo)
	vehiclesHandler := vehicles.NewHandler(vehiclesService)

	bookingsRepo := bookings.NewRepository(db)
	bookingsService := bookings.NewService(bookingsRepo, cfg.Booking)
	bookingsHandler := bookings.NewHandler(bookingsService)

	reviewsRepo := reviews.NewRepository(db)
	reviewsService := reviews.NewService(
		reviewsRepo,
		reviews.NewChecker(reviewsRepo),
		reviews.NewAggregator(reviewsRepo),
		cfg.Review,
	)
	reviewsHandler := reviews.NewHandler(reviewsService)

	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CorrelationID())
	router.Use(middleware.RequestLogger(serviceName))
	router.Use(middleware.CORS(cfg.Server.CORSOrigins))
	router.Use(middleware.Metrics(serviceName))

	router.GET("/healthz", common.HealthCheck(serviceName, version))

	healthChecks := map[string]func() error{
		"database": func() error {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			return db.Ping(ctx)
		},
	}
	if redisClient != nil {
		healthChecks["redis"] = func() error {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			return redisClient.Client.Ping(ctx).Err()
		}
	}
	router.GET("/health/ready", common.ReadinessProbe(serviceName, version, healthChecks))

	router.GET("/version", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"service": serviceName, "version": version})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	authRequired := middleware.AuthMiddleware(cfg.JWT.Secret)

	v1 := router.Group("/api/v1")
	{
		v1.POST("/auth/register", authHandler.Register)
		v1.POST("/auth/login", authHandler.Login)
		v1.GET("/auth/profile", authRequired, authHandler.GetProfile)

		guideRoutes := v1.Group("/guides")
		{
			guideRoutes.GET("", guidesHandler.ListGuides)
			guideRoutes.POST("/register", authRequired, guidesHandler.RegisterGuide)
			guideRoutes.GET("/me", authRequired, middleware.RequireRole(models.RoleGuide, models.RoleAdmin), guidesHandler.GetMyProfile)
			guideRoutes.PATCH("/me/availability", authRequired, middleware.RequireRole(models.RoleGuide, models.RoleAdmin), guidesHandler.SetAvailability)
			guideRoutes.GET("/:id", guidesHandler.GetGuide)
		}

		vehicleRoutes := v1.Group("/vehicles")
		{
			vehicleRoutes.GET("", vehiclesHandler.ListVehicles)
			vehicleRoutes.POST("/register", authRequired, vehiclesHandler.RegisterVehicle)
			vehicleRoutes.GET("/me", authRequired, middleware.RequireRole(models.RoleVehicleOwner, models.RoleAdmin), vehiclesHandler.GetMyProfile)
			vehicleRoutes.PATCH("/me/availability", authRequired, middleware.RequireRole(models.RoleVehicleOwner, models.RoleAdmin), vehiclesHandler.SetAvailability)
			vehicleRoutes.GET("/:id", vehiclesHandler.GetVehicle)
		}

		bookingRoutes := v1.Group("/bookings", authRequired)
		{
			bookingRoutes.POST("", bookingsHandler.CreateBooking)
			bookingRoutes.GET("", bookingsHandler.ListMyBookings)
			bookingRoutes.GET("/provider", bookingsHandler.ListProviderBookings)
			bookingRoutes.GET("/:id", bookingsHandler.GetBooking)
			bookingRoutes.PATCH("/:id/status", bookingsHandler.UpdateStatus)
		}

		reviewRoutes := v1.Group("/reviews")
		{
			reviewRoutes.GET("/target/:targetType/:targetID", reviewsHandler.ListForTarget)
			reviewRoutes.POST("/target/:targetType/:targetID/recompute", authRequired, middleware.RequireRole(models.RoleAdmin), reviewsHandler.RecomputeTarget)
			reviewRoutes.POST("", authRequired, reviewsHandler.CreateReview)
			reviewRoutes.GET("/mine", authRequired, reviewsHandler.ListMyReviews)
			reviewRoutes.GET("/provider", authRequired, reviewsHandler.ListProviderReviews)
			reviewRoutes.GET("/eligibility/:bookingID", authRequired, reviewsHandler.CheckEligibility)
			reviewRoutes.GET("/booking/:bookingID", authRequired, reviewsHandler.GetByBooking)
			reviewRoutes.GET("/:id", authRequired, reviewsHandler.GetReview)
			reviewRoutes.PATCH("/:id", authRequired, reviewsHandler.UpdateReview)
			reviewRoutes.POST("/:id/reply", authRequired, reviewsHandler.ReplyToReview)
			reviewRoutes.DELETE("/:id", authRequired, reviewsHandler.DeleteReview)
		}
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		logger.Info("Server starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}
