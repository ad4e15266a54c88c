package main

import (
	"os"
	"time"

	authhandler "komakresan-backend/internal/apps/auth/handler"
	authrepository "komakresan-backend/internal/apps/auth/repository"
	authservice "komakresan-backend/internal/apps/auth/service"
	companyhandler "komakresan-backend/internal/apps/company/handler"
	companyrepository "komakresan-backend/internal/apps/company/repository"
	companyservice "komakresan-backend/internal/apps/company/service"
	industryhandler "komakresan-backend/internal/apps/industry/handler"
	industryrepository "komakresan-backend/internal/apps/industry/repository"
	industryservice "komakresan-backend/internal/apps/industry/service"
	invoicehandler "komakresan-backend/internal/apps/invoice/handler"
	invoicerepository "komakresan-backend/internal/apps/invoice/repository"
	invoiceservice "komakresan-backend/internal/apps/invoice/service"
	otpmodels "komakresan-backend/internal/apps/otp/models"
	otprepository "komakresan-backend/internal/apps/otp/repository"
	otpservice "komakresan-backend/internal/apps/otp/service"
	paymenthandler "komakresan-backend/internal/apps/payment/handler"
	paymentrepository "komakresan-backend/internal/apps/payment/repository"
	paymentservice "komakresan-backend/internal/apps/payment/service"
	scorehandler "komakresan-backend/internal/apps/score/handler"
	scorerepository "komakresan-backend/internal/apps/score/repository"
	scoreservice "komakresan-backend/internal/apps/score/service"
	servicehandler "komakresan-backend/internal/apps/service/handler"
	servicerepository "komakresan-backend/internal/apps/service/repository"
	serviceservice "komakresan-backend/internal/apps/service/service"
	userhandler "komakresan-backend/internal/apps/user/handler"
	userrepository "komakresan-backend/internal/apps/user/repository"
	userservice "komakresan-backend/internal/apps/user/service"
	"komakresan-backend/internal/common/database"
	"komakresan-backend/internal/common/logger"
	"komakresan-backend/internal/common/middleware"
	"komakresan-backend/internal/common/scheduler"
	"komakresan-backend/pkg/token"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Info().Msg("no .env file found, using environment variables")
	}

	env := getEnv("APP_ENV", "development")
	logger.Setup(env)

	// Database configuration
	dbConfig := database.Config{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     getEnv("DB_PORT", "5432"),
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", "postgres"),
		DBName:   getEnv("DB_NAME", "komakresan"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	db, err := database.NewConnection(dbConfig)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}

	// Token maker for auth
	jwtSecret := getEnv("JWT_SECRET", "")
	if jwtSecret == "" {
		log.Fatal().Msg("JWT_SECRET not configured")
	}
	accessTTL := getDurationEnv("ACCESS_TOKEN_TTL", 15*time.Minute)
	refreshTTL := getDurationEnv("REFRESH_TOKEN_TTL", 7*24*time.Hour)
	maker := token.NewMaker(jwtSecret, accessTTL, refreshTTL)

	// SMS provider: real gateway when configured, log-only otherwise
	var smsProvider otpservice.SMSProvider
	if authKey := getEnv("AUTHKEY_API_KEY", ""); authKey != "" {
		smsProvider = otpservice.NewAuthKeyProvider(
			authKey,
			getEnv("AUTHKEY_TEMPLATE_ID", ""),
			getEnv("AUTHKEY_COUNTRY_CODE", "98"),
		)
	} else {
		log.Warn().Msg("AUTHKEY_API_KEY not set, one-time codes are logged instead of sent")
		smsProvider = otpservice.NewNoOpProvider()
	}

	// Repositories
	otpRepo := otprepository.NewOTPRepository(db)
	bindingRepo := authrepository.NewBindingRepository(db)
	userRepo := userrepository.NewUserRepository(db)
	industryRepo := industryrepository.NewIndustryRepository(db)
	companyRepo := companyrepository.NewCompanyRepository(db)
	catalogRepo := servicerepository.NewServiceRepository(db)
	requestRepo := servicerepository.NewRequestRepository(db)
	scoreRepo := scorerepository.NewScoreRepository(db)
	invoiceRepo := invoicerepository.NewInvoiceRepository(db)
	paymentRepo := paymentrepository.NewPaymentRepository(db)
	gatewayConfigRepo := paymentrepository.NewGatewayConfigRepository(db)

	// Services
	otpSvc := otpservice.NewOTPService(otpRepo, smsProvider)
	authSvc := authservice.NewAuthService(otpSvc, bindingRepo, userRepo, maker, otpmodels.DefaultTTL)
	userSvc := userservice.NewUserService(userRepo)
	industrySvc := industryservice.NewIndustryService(industryRepo)
	companySvc := companyservice.NewCompanyService(companyRepo)
	catalogSvc := serviceservice.NewCatalogService(catalogRepo, companyRepo)
	requestSvc := serviceservice.NewRequestService(requestRepo, catalogRepo, companyRepo)
	scoreSvc := scoreservice.NewScoreService(scoreRepo, requestRepo)
	invoiceSvc := invoiceservice.NewInvoiceService(invoiceRepo, requestRepo, companyRepo)
	paymentSvc := paymentservice.NewPaymentService(paymentRepo, gatewayConfigRepo, invoiceSvc, env)

	// Handlers
	authHandler := authhandler.NewAuthHandler(authSvc)
	userHandler := userhandler.NewUserHandler(userSvc)
	industryHandler := industryhandler.NewIndustryHandler(industrySvc)
	companyHandler := companyhandler.NewCompanyHandler(companySvc)
	serviceHandler := servicehandler.NewServiceHandler(catalogSvc, requestSvc)
	scoreHandler := scorehandler.NewScoreHandler(scoreSvc)
	invoiceHandler := invoicehandler.NewInvoiceHandler(invoiceSvc)
	paymentHandler := paymenthandler.NewPaymentHandler(paymentSvc)

	// Background jobs
	jobs, err := scheduler.Start(invoiceSvc, otpSvc)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to start scheduler")
	}
	defer func() {
		if err := jobs.Shutdown(); err != nil {
			log.Error().Err(err).Msg("scheduler shutdown failed")
		}
	}()

	// Setup Gin router
	gin.SetMode(getEnv("GIN_MODE", "release"))
	router := gin.Default()
	router.Use(middleware.SetupCORS(env))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Server is running",
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		authhandler.RegisterAuthRoutes(v1, authHandler, maker)
		userhandler.RegisterUserRoutes(v1, userHandler, maker)
		industryhandler.RegisterIndustryRoutes(v1, industryHandler, maker)
		companyhandler.RegisterCompanyRoutes(v1, companyHandler, maker)
		servicehandler.RegisterServiceRoutes(v1, serviceHandler, maker)
		scorehandler.RegisterScoreRoutes(v1, scoreHandler, maker)
		invoicehandler.RegisterInvoiceRoutes(v1, invoiceHandler, maker)
		paymenthandler.RegisterPaymentRoutes(v1, paymentHandler, maker)
	}

	port := getEnv("PORT", "8080")
	log.Info().Str("port", port).Str("env", env).Msg("starting server")
	if err := router.Run(":" + port); err != nil {
		log.Fatal().Err(err).Msg("failed to start server")
	}
}

// getEnv gets environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getDurationEnv gets a duration environment variable with a default value
func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		log.Warn().Str("key", key).Str("value", raw).Msg("invalid duration, using default")
		return defaultValue
	}
	return d
}
