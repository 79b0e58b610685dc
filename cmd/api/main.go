package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"marketplace/internal/config"
	"marketplace/internal/handler"
	"marketplace/internal/infra/cache"
	"marketplace/internal/infra/db"
	"marketplace/internal/infra/gst"
	"marketplace/internal/infra/logger"
	infraRepo "marketplace/internal/infra/repository"
	"marketplace/internal/infra/token"
	"marketplace/internal/middleware"
	"marketplace/internal/server"
	"marketplace/internal/usecase"
	"marketplace/internal/validator"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	log, err := logger.New(cfg.GoEnv, cfg.LogLevel)
	if err != nil {
		panic(fmt.Sprintf("Failed to create logger: %v", err))
	}
	defer func() { _ = log.Sync() }()

	//DB接続
	gormDB, err := db.Connect(cfg, log)
	if err != nil {
		log.Fatal("Failed to connect database", zap.Error(err))
	}
	defer func() { _ = db.Close(gormDB) }()

	if cfg.DBAutoMigrate {
		if err := db.Migrate(gormDB); err != nil {
			log.Fatal("Failed to migrate database", zap.Error(err))
		}
	}

	//Repository（GORM実装）生成
	shopkeeperRepo := infraRepo.NewShopkeeperGormRepository(gormDB)
	customerRepo := infraRepo.NewCustomerGormRepository(gormDB)
	categoryRepo := infraRepo.NewCategoryGormRepository(gormDB)
	productRepo := infraRepo.NewProductGormRepository(gormDB)
	cartRepo := infraRepo.NewCartGormRepository(gormDB)
	orderRepo := infraRepo.NewOrderGormRepository(gormDB)
	orderItemRepo := infraRepo.NewOrderItemGormRepository(gormDB)
	auditLogRepo := infraRepo.NewAuditLogGormRepository(gormDB)
	txManager := infraRepo.NewTxManagerGorm(gormDB)

	//JWT / bcrypt
	jwtManager := token.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL)
	hasher := usecase.NewBcryptHasher(cfg.BcryptCost)

	//GST照会（REDIS_ADDRがあればキャッシュ）
	gstClient := gst.NewClient(gst.Config{
		URL:     cfg.GSTAPIURL,
		APIKey:  cfg.GSTAPIKey,
		APIHost: cfg.GSTAPIHost,
		Timeout: cfg.GSTTimeout,
	}, log)

	var gstCache usecase.GSTCache = cache.NoopGSTCache{}
	if cfg.RedisAddr != "" {
		rdb := cache.NewRedisClient(cache.RedisConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		defer func() { _ = rdb.Close() }()

		if err := rdb.Ping(context.Background()).Err(); err != nil {
			log.Warn("Redis connection failed", zap.Error(err))
		} else {
			log.Info("Redis connected successfully")
		}
		gstCache = cache.NewRedisGSTCache(rdb, cfg.GSTCacheTTL)
	}

	//Usecase生成
	authUC := usecase.NewAuthUsecase(shopkeeperRepo, customerRepo, hasher, jwtManager, validator.NewAuthValidator())
	shopUC := usecase.NewShopUsecase(shopkeeperRepo, productRepo)
	categoryUC := usecase.NewCategoryUsecase(categoryRepo)
	productUC := usecase.NewProductUsecase(productRepo, categoryRepo, txManager)
	cartUC := usecase.NewCartUsecase(cartRepo, productRepo)
	orderUC := usecase.NewOrderUsecase(txManager, orderRepo, orderItemRepo, auditLogRepo)
	gstUC := usecase.NewGSTUsecase(gstClient, gstCache, log)

	//Handler生成
	metrics := middleware.NewMetrics("marketplace")
	e := server.New(cfg, log, metrics)
	server.RegisterRoutes(e, server.Handlers{
		Auth:     handler.NewAuthHandler(authUC),
		Shop:     handler.NewShopHandler(shopUC),
		Category: handler.NewCategoryHandler(categoryUC),
		Product:  handler.NewProductHandler(productUC),
		Cart:     handler.NewCartHandler(cartUC),
		Order:    handler.NewOrderHandler(orderUC),
		GST:      handler.NewGSTHandler(gstUC),
	}, jwtManager)

	//SIGINT/SIGTERMで止める
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	addr := cfg.Port
	if !strings.HasPrefix(addr, ":") {
		addr = ":" + addr
	}

	if err := server.Start(ctx, e, addr, log); err != nil {
		log.Error("Server error", zap.Error(err))
		return
	}
	log.Info("Server stopped")
}
