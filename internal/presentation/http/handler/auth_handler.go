package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/omkarj/kirana-billing-api/internal/application/service"
	"github.com/omkarj/kirana-billing-api/internal/presentation/http/dto/request"
	"github.com/omkarj/kirana-billing-api/internal/presentation/http/dto/response"
)

// AuthHandler handles admin authentication HTTP requests
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Login verifies the admin password and returns a session token
func (h *AuthHandler) Login(c *gin.Context) {
	var req request.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	result, err := h.authService.Login(c.Request.Context(), req.Password)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Login successful", result)
}
