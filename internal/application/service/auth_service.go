package service

import (
	"context"

	"github.com/omkarj/kirana-billing-api/pkg/apperror"
	"github.com/omkarj/kirana-billing-api/pkg/utils"
	"golang.org/x/crypto/bcrypt"
)

// AuthService handles admin authentication. The store has a single
// admin credential; billing itself needs no login, only catalog and
// settings management do.
type AuthService struct {
	jwtManager   *utils.JWTManager
	passwordHash string
}

// NewAuthService creates a new auth service
func NewAuthService(jwtManager *utils.JWTManager, passwordHash string) *AuthService {
	return &AuthService{
		jwtManager:   jwtManager,
		passwordHash: passwordHash,
	}
}

// LoginResult represents a successful admin login
type LoginResult struct {
	Token     string `json:"token"`
	TokenType string `json:"token_type"`
	ExpiresIn int64  `json:"expires_in"` // seconds
}

// Login verifies the admin password and issues a JWT.
func (s *AuthService) Login(ctx context.Context, password string) (*LoginResult, error) {
	if err := bcrypt.CompareHashAndPassword([]byte(s.passwordHash), []byte(password)); err != nil {
		return nil, apperror.ErrInvalidLogin
	}

	token, err := s.jwtManager.GenerateAdminToken()
	if err != nil {
		return nil, apperror.NewAppError(500, "Failed to generate token")
	}

	return &LoginResult{
		Token:     token,
		TokenType: "Bearer",
		ExpiresIn: int64(s.jwtManager.Expiry().Seconds()),
	}, nil
}
