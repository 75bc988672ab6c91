package app

import (
	"context"

	"go-coverage/internal/config"
	"go-coverage/internal/employee"
	"go-coverage/internal/seed"
	"go-coverage/internal/shared/connection"

	"go.uber.org/zap"
)

// RunSeed loads the employee directory into an empty database.
func RunSeed(ctx context.Context, cfg *config.Config) error {
	logger := zap.L().Named("app.seed")

	gormDB, err := connection.ConnectGORMWithRetry(cfg.Database, 5)
	if err != nil {
		return err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	if err := migrate(gormDB); err != nil {
		return err
	}

	dir, err := seed.Load(cfg.SeedFile)
	if err != nil {
		return err
	}

	inserted, err := seed.NewSeeder(employee.NewRepository(gormDB), logger).Run(ctx, dir)
	if err != nil {
		return err
	}

	logger.Info("seed finished", zap.Int("inserted", inserted))
	return nil
}
