package main

import (
	"os"
	"strconv"
	"time"

	_ "github.com/raihanuddin561/skyzonebd-sub004/api/swagger" // swagger docs
	"github.com/raihanuddin561/skyzonebd-sub004/internal/cache"
	"github.com/raihanuddin561/skyzonebd-sub004/internal/database"
	"github.com/raihanuddin561/skyzonebd-sub004/internal/handler"
	"github.com/raihanuddin561/skyzonebd-sub004/internal/middleware"
	"github.com/raihanuddin561/skyzonebd-sub004/internal/repository"
	"github.com/raihanuddin561/skyzonebd-sub004/internal/service"
	"github.com/raihanuddin561/skyzonebd-sub004/internal/websocket"

	"github.com/bsm/redislock"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// @title           SkyzoneBD Wholesale Platform API
// @version         1.0
// @description     B2B/B2C wholesale e-commerce backend: catalog, carts, orders, inventory, partner profit sharing, and financial reporting.
// @host            localhost:8080
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := godotenv.Load("configs/.env"); err != nil {
		logrus.Info("No configs/.env file found, relying on environment")
	}

	log := logrus.StandardLogger()
	log.SetFormatter(&logrus.JSONFormatter{})
	if os.Getenv("GIN_MODE") != "release" {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	dsn := "postgres://" + envOr("DB_USER", "postgres") + ":" + envOr("DB_PASSWORD", "postgres") +
		"@" + envOr("DB_HOST", "localhost") + ":" + envOr("DB_PORT", "5432") +
		"/" + envOr("DB_NAME", "skyzonebd") + "?sslmode=" + envOr("DB_SSLMODE", "disable")

	db, err := database.NewConnection(dsn)
	if err != nil {
		log.WithError(err).Fatal("database connection failed")
	}
	log.Info("connected to postgres")

	redisDB, _ := strconv.Atoi(envOr("REDIS_DB", "0"))
	rdb, err := cache.NewClient(envOr("REDIS_ADDR", "localhost:6379"), os.Getenv("REDIS_PASSWORD"), redisDB)
	if err != nil {
		log.WithError(err).Fatal("redis connection failed")
	}
	locker := redislock.New(rdb)
	log.Info("connected to redis")

	wsHub := websocket.NewHub()
	go wsHub.Run()

	// Repositories
	txManager := repository.NewTransactionManager(db)
	userRepo := repository.NewUserRepository(db)
	productRepo := repository.NewProductRepository(db)
	cartRepo := repository.NewCartRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	partnerRepo := repository.NewPartnerRepository(db)
	distributionRepo := repository.NewDistributionRepository(db)
	ledgerRepo := repository.NewLedgerRepository(db)
	costRepo := repository.NewCostRepository(db)
	payrollRepo := repository.NewPayrollRepository(db)
	stockRepo := repository.NewStockAdjustmentRepository(db)
	activityRepo := repository.NewActivityRepository(db)

	// Services
	authService := service.NewAuthService(userRepo, middleware.GetJWTSecret())
	catalogService := service.NewCatalogService(productRepo, activityRepo, txManager)
	cartService := service.NewCartService(cartRepo, productRepo)
	orderService := service.NewOrderService(orderRepo, productRepo, cartRepo, ledgerRepo, activityRepo, txManager, wsHub)
	inventoryService := service.NewInventoryService(productRepo, stockRepo, activityRepo, txManager, wsHub)
	profitService := service.NewProfitService(orderRepo, costRepo)
	partnerService := service.NewPartnerService(partnerRepo, activityRepo, txManager, log)
	distributionService := service.NewDistributionService(partnerRepo, distributionRepo, activityRepo, profitService, txManager, locker, log)
	ledgerService := service.NewLedgerService(ledgerRepo, orderRepo, activityRepo, txManager)
	costService := service.NewCostService(costRepo, ledgerRepo, activityRepo, txManager)
	payrollService := service.NewPayrollService(payrollRepo, costRepo, ledgerRepo, activityRepo, txManager)
	activityService := service.NewActivityService(activityRepo)

	// Handlers
	handlers := []interface {
		RegisterRoutes(router *gin.RouterGroup)
	}{
		handler.NewAuthHandler(authService),
		handler.NewCatalogHandler(catalogService),
		handler.NewCartHandler(cartService),
		handler.NewOrderHandler(orderService),
		handler.NewInventoryHandler(inventoryService),
		handler.NewPartnerHandler(partnerService),
		handler.NewDistributionHandler(distributionService),
		handler.NewProfitHandler(profitService),
		handler.NewLedgerHandler(ledgerService),
		handler.NewCostHandler(costService),
		handler.NewPayrollHandler(payrollService),
		handler.NewActivityHandler(activityService),
	}

	router := gin.Default()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{envOr("FRONTEND_ORIGIN", "http://localhost:5173")}
	corsConfig.AllowCredentials = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept"}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	router.Use(cors.New(corsConfig))

	rateLimit, _ := strconv.Atoi(envOr("RATE_LIMIT_PER_MINUTE", "120"))
	router.Use(middleware.RateLimit(rdb, rateLimit, time.Minute))

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "OK"})
	})

	router.GET("/ws", func(c *gin.Context) {
		websocket.ServeWs(wsHub, c, middleware.GetJWTSecret())
	})

	api := router.Group("")
	for _, h := range handlers {
		h.RegisterRoutes(api)
	}

	port := envOr("PORT", "8080")
	log.WithField("port", port).Info("server listening")
	if err := router.Run(":" + port); err != nil {
		log.WithError(err).Fatal("server failed")
	}
}
