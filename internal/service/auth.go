package service

import (
	"context"
	"crypto/subtle"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"outdoor-rental-backend/internal/config"
	"outdoor-rental-backend/internal/logger"
	"outdoor-rental-backend/internal/security"
)

type authService struct {
	cfg    config.AdminConfig
	tokens security.TokenManager
}

// NewAuthService creates the back-office login service. Credentials are a
// single configured admin account with a bcrypt password hash.
func NewAuthService(cfg config.AdminConfig, tokens security.TokenManager) AuthService {
	return &authService{cfg: cfg, tokens: tokens}
}

func (s *authService) Login(ctx context.Context, username, password string) (string, error) {
	usernameOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.cfg.Username)) == 1
	passwordErr := bcrypt.CompareHashAndPassword([]byte(s.cfg.PasswordHash), []byte(password))
	if !usernameOK || passwordErr != nil {
		logger.Warn("failed admin login attempt", "username", username)
		return "", ErrUnauthorized
	}

	token, err := s.tokens.GenerateAdminToken(username)
	if err != nil {
		return "", fmt.Errorf("failed to generate admin token: %w", err)
	}
	logger.Info("admin logged in", "username", username)
	return token, nil
}
