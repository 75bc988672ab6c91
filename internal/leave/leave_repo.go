package leave

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=leave_repo.go -destination=mock/leave_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, l *LeaveRequest) error
	FindByID(ctx context.Context, id string) (LeaveRequest, bool, error)
	// FindByIDForUpdate locks the row until the surrounding transaction ends.
	FindByIDForUpdate(ctx context.Context, id string) (LeaveRequest, bool, error)
	FindByEmployee(ctx context.Context, employeeID string) ([]LeaveRequest, error)
	FindByAssignee(ctx context.Context, assigneeID, status string) ([]LeaveRequest, error)
	FindByStatus(ctx context.Context, status string) ([]LeaveRequest, error)
	Update(ctx context.Context, l *LeaveRequest) error
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

func (r *repository) Create(ctx context.Context, l *LeaveRequest) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (LeaveRequest, bool, error) {
	return r.findOne(r.db.WithContext(ctx), id)
}

func (r *repository) FindByIDForUpdate(ctx context.Context, id string) (LeaveRequest, bool, error) {
	return r.findOne(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

func (r *repository) findOne(db *gorm.DB, id string) (LeaveRequest, bool, error) {
	var l LeaveRequest
	res := db.Where("request_id = ?", id).Limit(1).Find(&l)
	if res.Error != nil {
		return LeaveRequest{}, false, res.Error
	}
	return l, res.RowsAffected > 0, nil
}

func (r *repository) FindByEmployee(ctx context.Context, employeeID string) ([]LeaveRequest, error) {
	var leaves []LeaveRequest
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Order("leave_start DESC").
		Order("submission_date DESC").
		Find(&leaves).Error
	return leaves, err
}

func (r *repository) FindByAssignee(ctx context.Context, assigneeID, status string) ([]LeaveRequest, error) {
	var leaves []LeaveRequest
	err := r.db.WithContext(ctx).
		Where("assigned_to = ?", assigneeID).
		Where("status = ?", status).
		Order("leave_start ASC").
		Find(&leaves).Error
	return leaves, err
}

func (r *repository) FindByStatus(ctx context.Context, status string) ([]LeaveRequest, error) {
	var leaves []LeaveRequest
	err := r.db.WithContext(ctx).
		Where("status = ?", status).
		Order("submission_date ASC").
		Find(&leaves).Error
	return leaves, err
}

func (r *repository) Update(ctx context.Context, l *LeaveRequest) error {
	return r.db.WithContext(ctx).Save(l).Error
}
