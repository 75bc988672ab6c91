package app

import (
	"go-coverage/internal/config"

	"go.uber.org/zap"
)

// NewLogger builds the process logger for the configured environment.
func NewLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.IsProduction() {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
