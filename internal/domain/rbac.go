package domain

type EnforceRequest struct {
	EmployeeID string `json:"employee_id" binding:"required"`
	Role       string `json:"role" binding:"required"`
	Resource   string `json:"resource" binding:"required"`
	Action     string `json:"action" binding:"required"`
}
