package auth

type LoginRequest struct {
	EmployeeID string `json:"employee_id" binding:"required"`
	Password   string `json:"password" binding:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type AuthResponse struct {
	EmployeeID string `json:"employee_id"`
	Name       string `json:"name"`
	Position   string `json:"position"`
	Department string `json:"department"`
	Role       string `json:"role"`
}

type TokenResponse struct {
	User         AuthResponse `json:"user"`
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
}
