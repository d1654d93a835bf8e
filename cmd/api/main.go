package main

import (
	"context"
	"net/http"
	"os"

	"checkout-experience-layer/internal/application"
	apiinfra "checkout-experience-layer/internal/infrastructure/api"
	"checkout-experience-layer/internal/infrastructure/commerce"
	"checkout-experience-layer/internal/infrastructure/encryption"
	checkoutmiddleware "checkout-experience-layer/internal/infrastructure/middleware"
	"checkout-experience-layer/internal/infrastructure/repository"
	"checkout-experience-layer/internal/infrastructure/session"
	"checkout-experience-layer/internal/infrastructure/token"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Platform endpoints by deploy environment.
const (
	authDashURLStaging    = "https://apps.staging.boldapps.net/accounts/dashboard/authorize"
	authDashURLProduction = "https://apps.boldapps.net/accounts/dashboard/authorize"
	oauthTokenURLStaging  = "https://api.staging.boldcommerce.com/auth/oauth2/token"
	oauthTokenURLProd     = "https://api.boldcommerce.com/auth/oauth2/token"
)

func main() {
	// Initialize logger
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if err := godotenv.Load(); err != nil {
		logger.Warn().Msg("⚠️  Warning: .env file not found")
	}

	// Get configuration from environment
	mongoURI := getEnv("MONGODB_URI", "mongodb://localhost:27017")
	redisURL := getEnv("REDIS_URL", "redis://localhost:6379")
	appURL := getEnv("APP_URL", "http://localhost:8080")
	appEnv := getEnv("APP_ENV", "local")
	apiURL := getEnv("CHECKOUT_API_URL", "https://api.boldcommerce.com/api/v2")
	apiPath := getEnv("CHECKOUT_API_PATH", "checkout")
	checkoutURL := getEnv("CHECKOUT_URL", "https://api.boldcommerce.com")
	assetsURL := os.Getenv("ASSETS_URL")
	flags := os.Getenv("FLAGS")

	encryptionKey := os.Getenv("ENCRYPTION_KEY")
	if encryptionKey == "" {
		logger.Fatal().Msg("ENCRYPTION_KEY environment variable is required")
	}
	jwtKey := os.Getenv("CHECKOUT_API_JWT_KEY")
	if jwtKey == "" {
		logger.Fatal().Msg("CHECKOUT_API_JWT_KEY environment variable is required")
	}

	authDashURL := authDashURLStaging
	oauthTokenURL := oauthTokenURLStaging
	if appEnv == "production" {
		authDashURL = authDashURLProduction
		oauthTokenURL = oauthTokenURLProd
	}

	// Connect to MongoDB
	client, err := mongo.Connect(context.Background(), options.Client().ApplyURI(mongoURI))
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to MongoDB")
	}
	defer client.Disconnect(context.Background())

	db := client.Database(getEnv("MONGODB_DATABASE", "checkout_experience"))

	// Connect to Redis
	redisOptions, err := redis.ParseURL(redisURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to parse REDIS_URL")
	}
	redisClient := redis.NewClient(redisOptions)
	defer redisClient.Close()

	// Initialize infrastructure (implementations)
	encryptionService, err := encryption.NewAESGCMService(encryptionKey)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to initialize encryption service")
	}
	tokenCodec := token.NewJWTCodec(jwtKey)
	sessionBackend := session.NewRedisSessionBackend(redisClient)
	markerCache := session.NewRedisMarkerCache(redisClient)
	commerceClient := commerce.NewClient(apiURL, apiPath, checkoutURL, oauthTokenURL, logger)

	// Initialize repositories
	shopRepo := repository.NewMongoShopRepository(db)
	tokenRepo := repository.NewMongoShopTokenRepository(db)
	urlRepo := repository.NewMongoShopURLRepository(db)
	assetRepo := repository.NewMongoAssetRepository(db)
	eventRepo := repository.NewMongoEventRepository(db)

	// Initialize application services
	shopService := application.NewShopService(
		shopRepo,
		tokenRepo,
		urlRepo,
		assetRepo,
		encryptionService,
		assetsURL,
		logger,
	)
	eventsService := application.NewEventsService(eventRepo, logger)
	customerService := application.NewCustomerService(commerceClient, logger)
	continuationService := application.NewContinuationService(tokenCodec, markerCache, logger)
	experienceService := application.NewExperienceService(
		commerceClient,
		customerService,
		continuationService,
		eventsService,
		appURL,
		checkoutURL,
		flags,
		logger,
	)
	installService := application.NewInstallService(
		commerceClient,
		shopService,
		application.InstallEnvironment{
			AppURL:        appURL,
			ClientID:      os.Getenv("DEVELOPER_CLIENT_ID"),
			ClientSecret:  os.Getenv("DEVELOPER_CLIENT_SECRET"),
			RedirectURL:   os.Getenv("DEVELOPER_REDIRECT_URL"),
			DashboardURL:  authDashURL,
			OAuthTokenURL: oauthTokenURL,
		},
		logger,
	)

	// Initialize handlers
	responder := apiinfra.NewResponder(appEnv, logger)
	indicators := apiinfra.EnvironmentIndicators{
		Type: appEnv,
		Path: apiPath,
		URL:  apiURL,
	}
	experienceHandler := apiinfra.NewExperienceHandler(experienceService, sessionBackend, responder, indicators, logger)
	installHandler := apiinfra.NewInstallHandler(installService, responder, logger)
	eventsHandler := apiinfra.NewEventsHandler(shopService, eventsService, responder, logger)

	// Setup router
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(checkoutmiddleware.Metrics())
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}))

	// Health check - must be public for monitoring
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	// Metrics
	r.Handle("/metrics", promhttp.Handler())

	// Swagger documentation
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))
	r.Get("/swagger/doc.json", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		http.ServeFile(w, r, "./docs/swagger.json")
	})

	// Install flow
	r.Get("/install", installHandler.Init)
	r.Get("/authorize", installHandler.Install)

	// Events API, authenticated by shop token headers
	r.Group(func(r chi.Router) {
		r.Use(checkoutmiddleware.ValidateToken(shopService, logger))
		r.Post("/events", eventsHandler.Register)
	})

	// Checkout experience, behind session cookie and shop resolution
	r.Group(func(r chi.Router) {
		r.Use(checkoutmiddleware.SessionCookie())
		r.Use(checkoutmiddleware.ResolveShop(shopService, logger))
		r.Get("/experience/init/{shopDomain}", experienceHandler.Init)
		r.Get("/{platformType}/{shopDomain}/experience/{requestPage}", experienceHandler.Resume)
	})

	port := getEnv("PORT", "8080")
	logger.Info().Str("port", port).Msg("Starting API server")
	if err := http.ListenAndServe(":"+port, r); err != nil {
		logger.Fatal().Err(err).Msg("Failed to start server")
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
