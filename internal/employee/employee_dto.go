package employee

type AdjustWorkloadRequest struct {
	Delta int `json:"delta" binding:"required,ne=0"`
}

type EmployeeResponse struct {
	EmployeeID      string   `json:"employee_id"`
	Name            string   `json:"name"`
	Position        string   `json:"position"`
	Department      string   `json:"department"`
	Phone           string   `json:"phone"`
	Email           string   `json:"email"`
	Role            string   `json:"role"`
	CurrentWorkload int      `json:"current_workload"`
	Available       bool     `json:"available"`
	Skills          []string `json:"skills"`
	CanCover        []string `json:"can_cover"`
}

// EmployeeOptionResponse is the light shape used by pickers in the portal.
type EmployeeOptionResponse struct {
	EmployeeID string `json:"employee_id"`
	Name       string `json:"name"`
	Position   string `json:"position"`
	Department string `json:"department"`
}
