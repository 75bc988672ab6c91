package counter

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// Counter types handed out by the repository.
const (
	TypeLeaveRequest = "leave_request"
)

// Counter holds the last value handed out per counter type.
type Counter struct {
	CounterType string `gorm:"type:varchar(50);primaryKey"`
	LastValue   int64  `gorm:"not null;default:0"`
	UpdatedAt   time.Time
}

func (Counter) TableName() string {
	return "counters"
}

//go:generate mockgen -source=counter_repo.go -destination=mock/counter_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	GetNextValue(ctx context.Context, counterType string) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	return &repository{db: tx}
}

func (r *repository) GetNextValue(ctx context.Context, counterType string) (int64, error) {
	var nextValue int64

	// Single statement upsert so concurrent submissions never share a value.
	err := r.db.WithContext(ctx).Raw(`
		INSERT INTO counters (counter_type, last_value, updated_at)
		VALUES (?, 1, now())
		ON CONFLICT (counter_type) DO UPDATE
		SET last_value = counters.last_value + 1, updated_at = now()
		RETURNING last_value
	`, counterType).Scan(&nextValue).Error
	if err != nil {
		return 0, err
	}

	return nextValue, nil
}
