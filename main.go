package main

import (
	"log"
	"net/http"

	"commerce-backend/cache"
	"commerce-backend/cart"
	"commerce-backend/checkout"
	"commerce-backend/config"
	"commerce-backend/controller"
	"commerce-backend/kafka"
	"commerce-backend/order"
	"commerce-backend/payment"
	"commerce-backend/repository"
	"commerce-backend/routes"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("load config:", err)
	}

	logger := newLogger(cfg.LogLevel)
	defer logger.Sync()

	db, err := gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
	if err != nil {
		logger.Fatal("connect database", zap.Error(err))
	}
	if err := repository.Migrate(db); err != nil {
		logger.Fatal("migrate", zap.Error(err))
	}
	repo := repository.New(db)

	redisClient, err := cache.New(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, logger)
	if err != nil {
		logger.Fatal("connect redis", zap.Error(err))
	}
	defer redisClient.Close()

	producer, err := kafka.NewProducer(cfg.Brokers(), logger)
	if err != nil {
		logger.Fatal("connect kafka producer", zap.Error(err))
	}
	defer producer.Close()

	consumer, err := kafka.NewConsumer(cfg.Brokers(), logger)
	if err != nil {
		logger.Fatal("connect kafka consumer", zap.Error(err))
	}
	defer consumer.Close()
	if err := consumer.Consume(kafka.TopicOrderStatusChanged, kafka.OrderStatusChangedHandler(db, logger)); err != nil {
		logger.Fatal("subscribe", zap.Error(err))
	}

	registry := payment.NewRegistry(http.DefaultClient, logger)
	orchestrator := payment.NewOrchestrator(repo, registry, cfg.PaymentRetryWindow, logger)
	reconciler := payment.NewReconciler(repo, registry, producer, redisClient, logger)

	carts := cart.NewService(repo)
	checkouts := checkout.NewService(repo, logger)
	orders := order.NewService(repo, producer, redisClient, logger)

	app := fiber.New()
	app.Use(fiberlogger.New())
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	routes.Register(app, routes.Controllers{
		Cart: controller.NewCartController(carts),
		Checkout: &controller.CheckoutController{
			Checkout: checkouts,
			Carts:    carts,
			Payments: orchestrator,
			Producer: producer,
			Cache:    redisClient,
			Logger:   logger,
		},
		Payment: controller.NewPaymentController(orchestrator),
		Webhook: controller.NewWebhookController(reconciler),
		Order:   controller.NewOrderController(orders, redisClient),
	}, cfg.JWTSecret)

	logger.Info("listening", zap.String("port", cfg.Port))
	if err := app.Listen(":" + cfg.Port); err != nil {
		logger.Fatal("fiber", zap.Error(err))
	}
}

func newLogger(level string) *zap.Logger {
	zcfg := zap.NewProductionConfig()
	if lvl, err := zap.ParseAtomicLevel(level); err == nil {
		zcfg.Level = lvl
	}
	logger, err := zcfg.Build()
	if err != nil {
		log.Fatal("build logger:", err)
	}
	return logger
}
