package events

import "time"

const NotificationRetryTopic = "coverage.notification.retry.v1"

const NotificationFailed = "notification_failed"

// Recipient roles of a leave notification.
const (
	RecipientAssignee  = "assignee"
	RecipientRequester = "requester"
)

// NotificationRetryEvent carries an undelivered message back to the gateway.
type NotificationRetryEvent struct {
	EventType      string    `json:"event_type"`
	RequestID      string    `json:"request_id,omitempty"`
	LeaveRequestID string    `json:"leave_request_id"`
	Recipient      string    `json:"recipient"`
	Phone          string    `json:"phone"`
	Message        string    `json:"message"`
	Attempt        int       `json:"attempt"`
	OccurredAt     time.Time `json:"occurred_at"`
}
