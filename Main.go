package main

import (
	"storefront/config"
	"storefront/logger"
	"storefront/routers"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.LoadConfig("config/config.yaml")
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	if err := logger.Initialize(cfg.Log.Level); err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer logger.Sync()

	db, err := config.SetupMySQLConnection(cfg)
	if err != nil {
		zap.L().Fatal("failed to connect to database", zap.Error(err))
	}
	defer func() {
		dbInstance, _ := db.DB()
		_ = dbInstance.Close()
	}()

	rdb, err := config.SetupRedisConnection(cfg)
	if err != nil {
		zap.L().Fatal("failed to connect to redis", zap.Error(err))
	}
	defer rdb.Close()

	router, err := routers.SetupRouters(cfg, db, rdb)
	if err != nil {
		zap.L().Fatal("failed to set up router", zap.Error(err))
	}

	zap.L().Info("server starting", zap.String("addr", cfg.Server.Addr))
	if err := router.Run(cfg.Server.Addr); err != nil {
		zap.L().Fatal("server stopped", zap.Error(err))
	}
}
