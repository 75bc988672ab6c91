package consumer

import (
	"context"
	"encoding/json"
	"time"

	"go-coverage/internal/events"
	"go-coverage/internal/messaging/kafka"
	"go-coverage/internal/notifier"
	"go-coverage/internal/shared/contextutil"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// MaxNotificationAttempts counts the original send made by the engine.
const MaxNotificationAttempts = 5

const retryBackoff = 30 * time.Second

// ConsumeNotificationRetries resends messages the engine could not deliver.
// A failed resend is queued again through the outbox until
// MaxNotificationAttempts is reached.
func ConsumeNotificationRetries(
	ctx context.Context,
	reader MessageReader,
	gateway notifier.Gateway,
	outbox kafka.OutboxRepository,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.notification_retry")
	handler := NewNotificationRetryHandler(gateway, outbox, log)
	consume(ctx, reader, handler.Handle, log)
}

type NotificationRetryHandler struct {
	gateway notifier.Gateway
	outbox  kafka.OutboxRepository
	logger  *zap.Logger
	now     func() time.Time
}

func NewNotificationRetryHandler(gateway notifier.Gateway, outbox kafka.OutboxRepository, logger *zap.Logger) *NotificationRetryHandler {
	return &NotificationRetryHandler{
		gateway: gateway,
		outbox:  outbox,
		logger:  logger,
		now:     time.Now,
	}
}

func (h *NotificationRetryHandler) Handle(ctx context.Context, msg kafkago.Message) error {
	var event events.NotificationRetryEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		h.logger.Error("decode notification retry event failed", zap.Error(err))
		return nil
	}

	if event.RequestID == "" {
		event.RequestID = headerValue(msg, "request_id")
	}
	ctx = contextutil.WithRequestID(ctx, event.RequestID)

	log := h.logger.With(
		zap.String("request_id", event.RequestID),
		zap.String("leave_request_id", event.LeaveRequestID),
		zap.String("recipient", event.Recipient),
		zap.Int("attempt", event.Attempt),
	)

	if h.gateway.Send(ctx, event.Phone, event.Message) {
		log.Info("notification delivered on retry")
		return nil
	}

	if event.Attempt+1 > MaxNotificationAttempts {
		log.Warn("notification abandoned after max attempts")
		return nil
	}

	event.Attempt++
	event.OccurredAt = h.now().UTC()

	next, err := kafka.NewOutboxEvent(
		event.RequestID,
		"leave_request",
		event.LeaveRequestID,
		events.NotificationFailed,
		events.NotificationRetryTopic,
		event,
	)
	if err != nil {
		return err
	}
	retryAt := h.now().UTC().Add(time.Duration(event.Attempt) * retryBackoff)
	next.NextRetryAt = &retryAt

	if err := h.outbox.Create(ctx, next); err != nil {
		return err
	}

	log.Info("notification retry rescheduled", zap.Time("next_retry_at", retryAt))
	return nil
}
