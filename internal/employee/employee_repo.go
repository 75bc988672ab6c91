package employee

import (
	"context"
	"time"

	"gorm.io/gorm"
)

//go:generate mockgen -source=employee_repo.go -destination=mock/employee_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, e *Employee) error
	// FindByID reports found=false for an unknown id instead of an error.
	FindByID(ctx context.Context, id string) (Employee, bool, error)
	FindAll(ctx context.Context) ([]Employee, error)
	FindOptions(ctx context.Context) ([]Employee, error)
	// FindAvailable returns everyone except excludeID whose workload is below
	// maxWorkload, ordered by employee_id.
	FindAvailable(ctx context.Context, excludeID string, maxWorkload int) ([]Employee, error)
	// AdjustWorkload applies delta only if the result stays >= 0 and, for
	// positive deltas, <= ceiling. It reports whether a row changed.
	AdjustWorkload(ctx context.Context, id string, delta, ceiling int) (bool, error)
	Count(ctx context.Context) (int64, error)
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

func (r *repository) Create(ctx context.Context, e *Employee) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (Employee, bool, error) {
	var e Employee
	res := r.db.WithContext(ctx).
		Where("employee_id = ?", id).
		Limit(1).
		Find(&e)
	if res.Error != nil {
		return Employee{}, false, res.Error
	}
	return e, res.RowsAffected > 0, nil
}

func (r *repository) FindAll(ctx context.Context) ([]Employee, error) {
	var employees []Employee
	err := r.db.WithContext(ctx).
		Order("employee_id ASC").
		Find(&employees).Error
	return employees, err
}

func (r *repository) FindOptions(ctx context.Context) ([]Employee, error) {
	var employees []Employee
	err := r.db.WithContext(ctx).
		Select("employee_id", "name", "position", "department").
		Order("name ASC").
		Find(&employees).Error
	return employees, err
}

func (r *repository) FindAvailable(ctx context.Context, excludeID string, maxWorkload int) ([]Employee, error) {
	var employees []Employee
	err := r.db.WithContext(ctx).
		Scopes(excluding(excludeID), belowWorkload(maxWorkload)).
		Order("employee_id ASC").
		Find(&employees).Error
	return employees, err
}

func (r *repository) AdjustWorkload(ctx context.Context, id string, delta, ceiling int) (bool, error) {
	q := r.db.WithContext(ctx).
		Model(&Employee{}).
		Where("employee_id = ?", id).
		Where("current_workload + ? >= 0", delta)
	if delta > 0 {
		q = q.Where("current_workload + ? <= ?", delta, ceiling)
	}

	res := q.UpdateColumns(map[string]any{
		"current_workload": gorm.Expr("current_workload + ?", delta),
		"updated_at":       time.Now().UTC(),
	})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *repository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&Employee{}).Count(&count).Error
	return count, err
}
