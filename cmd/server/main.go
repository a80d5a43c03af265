package main

import (
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/hustlx/backend/internal/config"
	"github.com/hustlx/backend/internal/database"
	"github.com/hustlx/backend/internal/events"
	"github.com/hustlx/backend/internal/handler"
	"github.com/hustlx/backend/internal/middleware"
	"github.com/hustlx/backend/internal/models"
	"github.com/hustlx/backend/internal/repository"
	"github.com/hustlx/backend/internal/service"
	"github.com/hustlx/backend/pkg/logger"
)

func main() {
	cfg := config.Load()
	log.Println("Config loaded successfully")

	if err := logger.Init(!cfg.IsProduction()); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	database.Connect(cfg)
	database.Migrate()

	// Redis backs the order event feed, rate limiting and the AI
	// suggestion cache.
	broker, err := events.NewRedisBroker(cfg.RedisURL)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer broker.Close()

	// Repositories
	userRepo := repository.NewUserRepository(database.DB)
	skillRepo := repository.NewSkillRepository(database.DB)
	listingRepo := repository.NewListingRepository(database.DB)
	orderRepo := repository.NewOrderRepository(database.DB)
	reviewRepo := repository.NewReviewRepository(database.DB)
	mediaRepo := repository.NewMediaRepository(database.DB)

	// Services
	authService := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.JWTExpiry, cfg.Environment)
	userService := service.NewUserService(userRepo)
	skillService := service.NewSkillService(skillRepo)
	listingService := service.NewListingService(listingRepo)
	orderService := service.NewOrderService(orderRepo, listingRepo, broker)
	reviewService := service.NewReviewService(reviewRepo, listingRepo, orderRepo)
	mediaService := service.NewMediaService(mediaRepo)
	suggestService := service.NewSuggestService(cfg.GroqAPIKey, cfg.GroqAPIURL, broker.Client())

	// Handlers
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	skillHandler := handler.NewSkillHandler(skillService)
	listingHandler := handler.NewListingHandler(listingService)
	orderHandler := handler.NewOrderHandler(orderService)
	reviewHandler := handler.NewReviewHandler(reviewService)
	uploadHandler := handler.NewUploadHandler(mediaService, cfg.UploadDir, cfg.MaxUploadSize)
	suggestHandler := handler.NewSuggestHandler(suggestService, userService, skillService)
	paymentHandler := handler.NewPaymentHandler(orderService, cfg.PaymentWebhookSecret)
	feedHandler := handler.NewOrderFeedHandler(broker)

	rateLimiter := middleware.NewRateLimiter(broker.Client(), middleware.RateLimiterConfig{
		MaxRequests: cfg.RateLimitMaxRequests,
		Window:      cfg.RateLimitWindow,
		BlockTime:   cfg.RateLimitBlockTime,
	})

	router := gin.Default()
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.HSTS(cfg.IsProduction()))
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))
	router.Use(rateLimiter.Middleware())

	router.Static("/uploads", cfg.UploadDir)

	api := router.Group("/api")

	// Public routes; OptionalAuth lets a bad token degrade to anonymous
	// instead of blocking marketplace browsing.
	public := api.Group("")
	public.Use(middleware.OptionalAuth(cfg.JWTSecret))
	{
		public.POST("/auth/register", authHandler.Register)
		public.POST("/auth/login", authHandler.Login)
		public.GET("/users/:id", userHandler.GetPublicProfile)
		public.GET("/users/:id/reviews", reviewHandler.ListByRecipient)
		public.GET("/listings", listingHandler.Search)
		public.GET("/listings/featured", listingHandler.Featured)
		public.GET("/listings/:id", listingHandler.GetByID)
		public.GET("/listings/:id/reviews", reviewHandler.ListByListing)
		public.GET("/listings/:id/media", uploadHandler.ListByListing)
	}

	// Internal payment-confirmation webhook; authenticated by shared secret.
	api.POST("/payments/confirm", paymentHandler.Confirm)

	protected := api.Group("")
	protected.Use(middleware.RequireAuth(cfg.JWTSecret))
	{
		protected.POST("/auth/logout", authHandler.Logout)
		protected.GET("/auth/me", authHandler.Me)

		protected.PATCH("/users/:id", userHandler.UpdateProfile)

		protected.POST("/skills", skillHandler.Create)
		protected.GET("/skills", skillHandler.ListMine)
		protected.POST("/skills/:id/verify", skillHandler.Verify)
		protected.DELETE("/skills/:id", skillHandler.Delete)

		protected.POST("/listings", listingHandler.Create)
		protected.PATCH("/listings/:id", listingHandler.Update)
		protected.DELETE("/listings/:id", listingHandler.Delete)

		protected.POST("/orders", orderHandler.Create)
		protected.GET("/orders", orderHandler.List)
		protected.GET("/orders/:id", orderHandler.GetByID)
		protected.PATCH("/orders/:id/status", orderHandler.UpdateStatus)

		protected.POST("/reviews", reviewHandler.Create)

		protected.POST("/upload", uploadHandler.Upload)

		protected.POST("/ai/suggestions", suggestHandler.Suggestions)

		protected.GET("/ws/orders",
			middleware.RequireRole(models.RoleHomemaker),
			feedHandler.HandleFeed)
	}

	log.Printf("Server starting on %s", cfg.ServerPort)
	if err := router.Run(cfg.ServerPort); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
