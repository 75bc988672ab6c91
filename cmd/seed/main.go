package main

import (
	"context"
	"time"

	"go-coverage/internal/app"
	"go-coverage/internal/config"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	logger, err := app.NewLogger(cfg)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := app.RunSeed(ctx, cfg); err != nil {
		logger.Fatal("run seed failed", zap.Error(err))
	}
}
