package main

import (
	"log"
	"strings"

	"storefront/common/logger"
	"storefront/config"
	"storefront/controllers"
	"storefront/database"
	"storefront/kafka"
	"storefront/middleware"
	"storefront/repository"
	"storefront/routes"
	"storefront/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("❌ Failed to load config: %v", err)
	}

	zl, err := logger.New(cfg.Env)
	if err != nil {
		log.Fatalf("❌ Failed to initialize logger: %v", err)
	}
	defer zl.Sync()

	db, err := database.Connect(cfg)
	if err != nil {
		zl.Fatal("Failed to connect to database", zap.Error(err))
	}

	cache, err := database.NewRedisClient(cfg.RedisURL)
	if err != nil {
		zl.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	if cache == nil {
		zl.Info("Catalog cache disabled, REDIS_URL not set")
	}

	var orderEvents, paymentEvents kafka.ProducerAPI
	if cfg.KafkaBrokers != "" {
		brokers := strings.Split(cfg.KafkaBrokers, ",")
		orderProducer := kafka.NewProducer(brokers, cfg.OrderTopic)
		paymentProducer := kafka.NewProducer(brokers, cfg.PaymentTopic)
		defer orderProducer.Close()
		defer paymentProducer.Close()
		orderEvents = orderProducer
		paymentEvents = paymentProducer
	} else {
		zl.Info("Event publishing disabled, KAFKA_BROKERS not set")
	}

	userRepo := repository.NewGormUserRepo(db)
	productRepo := repository.NewGormProductRepo(db)
	cartRepo := repository.NewGormCartRepo(db)
	orderRepo := repository.NewGormOrderRepo(db)
	paymentRepo := repository.NewGormPaymentRepo(db)
	reviewRepo := repository.NewGormReviewRepo(db)
	statsRepo := repository.NewGormStatsRepo(db)

	authService := services.NewAuthService(userRepo, cfg.JWTSecret, zl)
	catalogService := services.NewCatalogService(productRepo, cache, cfg.CatalogCacheTTL, zl)
	cartService := services.NewCartService(cartRepo, productRepo, zl)
	checkoutService := services.NewCheckoutService(orderRepo, orderEvents, zl)
	paymentService := services.NewPaymentService(paymentRepo, paymentEvents, zl)
	orderService := services.NewOrderService(orderRepo, paymentRepo, zl)
	reviewService := services.NewReviewService(reviewRepo, productRepo, zl)
	statsService := services.NewStatsService(statsRepo, zl)

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(zl))
	r.Use(middleware.RateLimit())

	routes.Register(r, routes.Controllers{
		Auth:     controllers.NewAuthController(authService),
		Catalog:  controllers.NewCatalogController(catalogService),
		Cart:     controllers.NewCartController(cartService),
		Checkout: controllers.NewCheckoutController(checkoutService),
		Payment:  controllers.NewPaymentController(paymentService),
		Order:    controllers.NewOrderController(orderService),
		Review:   controllers.NewReviewController(reviewService),
		Stats:    controllers.NewStatsController(statsService),
	}, cfg.JWTSecret)

	zl.Info("Storefront listening", zap.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		zl.Fatal("Server exited", zap.Error(err))
	}
}
