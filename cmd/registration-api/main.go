package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/travelintrips/registration-api/api/swagger"
	"github.com/travelintrips/registration-api/internal/gateway"
	"github.com/travelintrips/registration-api/internal/handler"
	"github.com/travelintrips/registration-api/internal/i18n"
	"github.com/travelintrips/registration-api/internal/middleware"
	"github.com/travelintrips/registration-api/internal/repository"
	"github.com/travelintrips/registration-api/internal/service"
	"github.com/travelintrips/registration-api/pkg/cache"
	"github.com/travelintrips/registration-api/pkg/config"
	"github.com/travelintrips/registration-api/pkg/database"
	"github.com/travelintrips/registration-api/pkg/logger"
	corsmiddleware "github.com/travelintrips/registration-api/pkg/middleware/cors"
	reqidmiddleware "github.com/travelintrips/registration-api/pkg/middleware/requestid"
	"github.com/travelintrips/registration-api/pkg/storage"
)

// @title Travelintrips Registration API
// @version 1.0.0
// @description Multi-role registration and login service
// @BasePath /api/v1
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close() //nolint:errcheck

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to redis", "error", err)
	}
	defer redisClient.Close() //nolint:errcheck

	gatewayClient := gateway.New(cfg.Gateway, logr)

	var docStore storage.ObjectStore
	switch cfg.Documents.Backend {
	case "cloudinary":
		docStore, err = storage.NewCloudinaryStore()
		if err != nil {
			logr.Sugar().Fatalw("failed to init cloudinary store", "error", err)
		}
	case "local":
		docStore, err = storage.NewLocalStore(cfg.Documents.LocalDir, "")
		if err != nil {
			logr.Sugar().Fatalw("failed to init local document store", "error", err)
		}
	default:
		docStore = gatewayClient
	}

	validate := validator.New()

	draftRepo := repository.NewDraftRepository(redisClient, cfg.Drafts.KeyPrefix, cfg.Drafts.TTL)
	prefRepo := repository.NewPreferenceRepository(redisClient, cfg.I18n.LocaleKeyPrefix)
	profileRepo := repository.NewProfileRepository(db)

	var metricsSvc *service.MetricsService
	if cfg.Metrics.Enabled {
		metricsSvc = service.NewMetricsService()
	}

	wizardSvc := service.NewWizardService(draftRepo, validate, logr, service.WizardConfig{
		MinPasswordLength: cfg.Registration.MinPasswordLength,
		MaxFileSizeBytes:  cfg.Documents.MaxFileSizeBytes,
		AllowedMIMEs:      cfg.Documents.AllowedMIMEs,
	})
	registrationSvc := service.NewRegistrationService(draftRepo, wizardSvc, gatewayClient, profileRepo, docStore, logr, service.RegistrationConfig{
		Bucket:          cfg.Documents.Bucket,
		ReceiptEnabled:  cfg.Registration.ReceiptEnabled,
		DriverSignInURL: cfg.Registration.DriverSignInURL,
		StaffSignInURL:  cfg.Registration.StaffSignInURL,
	})
	authSvc := service.NewAuthService(gatewayClient, validate, logr, service.AuthConfig{
		DriverSignInURL: cfg.Registration.DriverSignInURL,
		StaffSignInURL:  cfg.Registration.StaffSignInURL,
	})
	localeSvc := service.NewLocaleService(prefRepo, i18n.NewBundle(logr), logr, cfg.I18n.DefaultLocale)

	draftHandler := handler.NewDraftHandler(wizardSvc, metricsSvc)
	registrationHandler := handler.NewRegistrationHandler(registrationSvc, metricsSvc)
	authHandler := handler.NewAuthHandler(authSvc)
	localeHandler := handler.NewLocaleHandler(localeSvc)
	metricsHandler := handler.NewMetricsHandler(metricsSvc)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	if metricsSvc != nil {
		r.Use(middleware.Metrics(metricsSvc))
	}

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "db unavailable"})
			return
		}
		if err := redisClient.Ping(c.Request.Context()).Err(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "redis unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	if metricsSvc != nil {
		r.GET("/metrics", metricsHandler.Prometheus)
	}
	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	{
		drafts := api.Group("/registration/drafts")
		{
			drafts.POST("", draftHandler.Create)
			drafts.GET("/:id", draftHandler.Get)
			drafts.PATCH("/:id/fields", draftHandler.SetFields)
			drafts.PUT("/:id/role", draftHandler.SetRole)
			drafts.POST("/:id/advance", draftHandler.Advance)
			drafts.POST("/:id/retreat", draftHandler.Retreat)
			drafts.POST("/:id/files/:slot", draftHandler.StageFile)
			drafts.POST("/:id/submit", registrationHandler.Submit)
		}

		auth := api.Group("/auth")
		{
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
			auth.POST("/forgot-password", authHandler.ForgotPassword)
		}

		api.GET("/preferences/locale", localeHandler.GetLocale)
		api.PUT("/preferences/locale", localeHandler.SetLocale)
		api.GET("/i18n/translations", localeHandler.Translations)

		api.GET("/status", metricsHandler.Status)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Info("server starting", zap.String("addr", addr), zap.String("env", cfg.Env))
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
