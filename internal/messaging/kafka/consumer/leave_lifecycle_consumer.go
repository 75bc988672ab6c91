package consumer

import (
	"context"
	"encoding/json"
	"strings"

	"go-coverage/internal/bootstrap"
	"go-coverage/internal/events"
	"go-coverage/internal/shared/contextutil"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// ConsumeLeaveLifecycle writes every leave state change to the audit log.
func ConsumeLeaveLifecycle(
	ctx context.Context,
	reader MessageReader,
	audit bootstrap.AuditLogger,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.leave_lifecycle")
	consume(ctx, reader, leaveLifecycleHandler(audit, log), log)
}

func leaveLifecycleHandler(audit bootstrap.AuditLogger, log *zap.Logger) handlerFunc {
	return func(ctx context.Context, msg kafkago.Message) error {
		var event events.LeaveLifecycleEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode leave lifecycle event failed", zap.Error(err))
			return nil
		}

		ctx = contextutil.WithRequestID(ctx, event.RequestID)
		audit.Log(ctx, bootstrap.AuditLog{
			Action:  strings.ToUpper(event.EventType),
			Actor:   event.EmployeeID,
			Message: "leave request " + event.LeaveRequestID + " is now " + event.Status,
			Meta: map[string]any{
				"leave_request_id": event.LeaveRequestID,
				"assigned_to":      event.AssignedTo,
				"coverage_tier":    event.CoverageTier,
				"occurred_at":      event.OccurredAt,
			},
		})
		return nil
	}
}
