package employee

import "gorm.io/gorm"

func excluding(employeeID string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("employee_id <> ?", employeeID)
	}
}

// belowWorkload keeps employees that can take at least one more assignment.
func belowWorkload(maxWorkload int) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("current_workload < ?", maxWorkload)
	}
}
