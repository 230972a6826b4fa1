package request

// LoginRequest represents the admin login request
type LoginRequest struct {
	Password string `json:"password" binding:"required"`
}
