package app

import (
	"go-coverage/internal/config"
	"go-coverage/internal/employee"
	"go-coverage/internal/i18n"
	"go-coverage/internal/leave"
	"go-coverage/internal/messaging/kafka"
	"go-coverage/internal/shared/connection"
	"go-coverage/internal/shared/counter"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func BuildApp(router *gin.Engine, cfg *config.Config) error {
	logger := zap.L().Named("app")

	gormDB, err := connection.ConnectGORMWithRetry(cfg.Database, 5)
	if err != nil {
		return err
	}
	logger.Info("database connection established")

	if err := migrate(gormDB); err != nil {
		return err
	}

	// Redis backs the options cache and submit idempotency; both degrade
	// to uncached behaviour without it.
	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb, err = connection.ConnectRedisWithRetry(cfg.RedisAddr, 5)
		if err != nil {
			return err
		}
		logger.Info("redis connection established")
	} else {
		logger.Warn("REDIS_ADDR not set, running without cache and idempotency")
	}

	if err := i18n.Init(cfg.DefaultLocale); err != nil {
		return err
	}

	return registerModules(router, cfg, gormDB, rdb)
}

func migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&employee.Employee{},
		&leave.LeaveRequest{},
		&counter.Counter{},
		&kafka.OutboxEvent{},
	)
}
