package consumer

import (
	"context"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// MessageReader is the part of *kafkago.Reader the consumers need.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
}

// handlerFunc returns an error when the message must stay uncommitted so it
// is redelivered.
type handlerFunc func(ctx context.Context, msg kafkago.Message) error

func consume(ctx context.Context, reader MessageReader, handle handlerFunc, log *zap.Logger) {
	log.Info("consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("consumer stopped")
				return
			}
			log.Error("fetch message failed", zap.Error(err))
			continue
		}

		if err := handle(ctx, msg); err != nil {
			log.Error("handle message failed",
				zap.String("topic", msg.Topic),
				zap.Int64("offset", msg.Offset),
				zap.Error(err),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit message failed", zap.Error(err))
		}
	}
}

func headerValue(msg kafkago.Message, key string) string {
	for _, h := range msg.Headers {
		if h.Key == key {
			return string(h.Value)
		}
	}
	return ""
}
