package notifier

import (
	"context"

	"go.uber.org/zap"
)

// LogGateway writes messages to the log instead of a phone. Used in
// development and when no transport is configured.
type LogGateway struct {
	logger *zap.Logger
}

func NewLogGateway(logger ...*zap.Logger) *LogGateway {
	l := zap.L().Named("notifier.log")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("notifier.log")
	}
	return &LogGateway{logger: l}
}

func (g *LogGateway) Send(ctx context.Context, phone, message string) bool {
	to, err := NormalizePhone(phone)
	if err != nil {
		g.logger.Warn("notification skipped", zap.String("phone", phone), zap.Error(err))
		return false
	}
	g.logger.Info("notification", zap.String("to", to), zap.String("message", message))
	return true
}
