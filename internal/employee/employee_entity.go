package employee

import (
	"slices"
	"time"
)

// MaxConcurrentLoad is the number of active coverage assignments an employee
// may hold. Someone already at this load is never picked as cover.
const MaxConcurrentLoad = 5

const (
	RoleEmployee = "EMPLOYEE"
	RoleManager  = "MANAGER"
)

type Employee struct {
	EmployeeID      string   `gorm:"type:varchar(20);primaryKey"`
	Name            string   `gorm:"type:varchar(255);not null"`
	Position        string   `gorm:"type:varchar(100);not null;index:idx_employees_position_department"`
	Department      string   `gorm:"type:varchar(100);not null;index:idx_employees_position_department"`
	Phone           string   `gorm:"type:varchar(30);not null"`
	Email           string   `gorm:"type:varchar(255);uniqueIndex:uq_employee_email"`
	PasswordHash    string   `gorm:"type:varchar(255);not null"`
	Role            string   `gorm:"type:varchar(20);not null;default:'EMPLOYEE'"`
	CurrentWorkload int      `gorm:"not null;default:0"`
	Skills          []string `gorm:"type:jsonb;serializer:json"`
	CanCover        []string `gorm:"type:jsonb;serializer:json"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (Employee) TableName() string {
	return "employees"
}

// HasCapacity reports whether one more assignment fits under the cap.
func (e Employee) HasCapacity() bool {
	return e.CurrentWorkload < MaxConcurrentLoad
}

// CanCoverPosition reports whether position is listed in CanCover.
func (e Employee) CanCoverPosition(position string) bool {
	return slices.Contains(e.CanCover, position)
}

func (e Employee) IsManager() bool {
	return e.Role == RoleManager
}
