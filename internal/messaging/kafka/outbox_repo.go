package kafka

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

const (
	OutboxStatusPending = "pending"
	OutboxStatusSent    = "sent"
	OutboxStatusFailed  = "failed"
)

const maxErrorMessageLen = 500

type OutboxEvent struct {
	ID            string     `gorm:"type:uuid;primaryKey"`
	RequestID     string     `gorm:"type:varchar(64)"`
	AggregateType string     `gorm:"type:varchar(50);not null"`
	AggregateID   string     `gorm:"type:varchar(64);not null"`
	EventType     string     `gorm:"type:varchar(100);not null"`
	Topic         string     `gorm:"type:varchar(255);not null"`
	Payload       []byte     `gorm:"type:jsonb;not null"`
	Status        string     `gorm:"type:varchar(20);not null;index:idx_outbox_status_next_retry"`
	RetryCount    int        `gorm:"not null;default:0"`
	ErrorMessage  *string    `gorm:"type:varchar(500)"`
	NextRetryAt   *time.Time `gorm:"index:idx_outbox_status_next_retry"`
	ProcessedAt   *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (OutboxEvent) TableName() string {
	return "outbox_events"
}

//go:generate mockgen -source=outbox_repo.go -destination=mock/outbox_repo_mock.go -package=mock
type OutboxRepository interface {
	WithTx(tx *gorm.DB) OutboxRepository
	Create(ctx context.Context, event OutboxEvent) error
	ListPending(ctx context.Context, limit int) ([]OutboxEvent, error)
	MarkSent(ctx context.Context, id string) error
	MarkFailed(ctx context.Context, id string, reason string) error
}

type outboxRepository struct {
	db *gorm.DB
}

func NewOutboxRepository(db *gorm.DB) OutboxRepository {
	return &outboxRepository{db: db}
}

func (r *outboxRepository) WithTx(tx *gorm.DB) OutboxRepository {
	return &outboxRepository{db: tx}
}

func (r *outboxRepository) Create(ctx context.Context, event OutboxEvent) error {
	if err := ValidateOutboxEvent(event); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Create(&event).Error
}

func (r *outboxRepository) ListPending(ctx context.Context, limit int) ([]OutboxEvent, error) {
	events := make([]OutboxEvent, 0, limit)
	err := r.db.WithContext(ctx).
		Where("status IN ?", []string{OutboxStatusPending, OutboxStatusFailed}).
		Where("next_retry_at IS NULL OR next_retry_at <= ?", time.Now().UTC()).
		Order("created_at ASC").
		Limit(limit).
		Find(&events).Error
	return events, err
}

func (r *outboxRepository) MarkSent(ctx context.Context, id string) error {
	now := time.Now().UTC()
	return r.db.WithContext(ctx).
		Model(&OutboxEvent{}).
		Where("id = ?", id).
		UpdateColumns(map[string]any{
			"status":        OutboxStatusSent,
			"processed_at":  now,
			"error_message": nil,
			"updated_at":    now,
		}).Error
}

// MarkFailed schedules the next attempt with a linear backoff of 15s per
// retry, capped at 150s.
func (r *outboxRepository) MarkFailed(ctx context.Context, id string, reason string) error {
	if len(reason) > maxErrorMessageLen {
		reason = reason[:maxErrorMessageLen]
	}
	return r.db.WithContext(ctx).
		Model(&OutboxEvent{}).
		Where("id = ?", id).
		UpdateColumns(map[string]any{
			"status":        OutboxStatusFailed,
			"retry_count":   gorm.Expr("retry_count + 1"),
			"error_message": reason,
			"next_retry_at": gorm.Expr("NOW() + (LEAST(retry_count + 1, 10) * INTERVAL '15 seconds')"),
			"updated_at":    time.Now().UTC(),
		}).Error
}

func ValidateOutboxEvent(event OutboxEvent) error {
	if event.ID == "" {
		return errors.New("outbox id is required")
	}
	if event.Topic == "" {
		return errors.New("outbox topic is required")
	}
	if len(event.Payload) == 0 {
		return errors.New("outbox payload is required")
	}
	switch event.Status {
	case OutboxStatusPending, OutboxStatusSent, OutboxStatusFailed:
		return nil
	default:
		return fmt.Errorf("invalid outbox status: %s", event.Status)
	}
}
