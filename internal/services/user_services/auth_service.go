// File: internal/services/user_services/auth_service.go
package user_services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dishcovery/go-dishcovery/internal/domain"
	"github.com/dishcovery/go-dishcovery/internal/repository/user"
	"github.com/dishcovery/go-dishcovery/internal/services"
)

const tokenTTL = 24 * time.Hour

var ErrInvalidCredentials = errors.New("invalid credentials")

type AuthService struct {
	userRepo     user.UserRepository
	jwtSecretKey []byte
	logger       services.Logger
}

func NewAuthService(userRepo user.UserRepository, jwtSecretKey string, logger services.Logger) *AuthService {
	return &AuthService{
		userRepo:     userRepo,
		jwtSecretKey: []byte(jwtSecretKey),
		logger:       logger,
	}
}

// Register creates a new account with a hashed password.
func (s *AuthService) Register(ctx context.Context, username, email, password string) (*domain.User, error) {
	if existing, _ := s.userRepo.FindByUsernameOrEmail(ctx, username, email); existing != nil {
		s.logger.Warn("registration for taken identity", "username", username)
		return nil, errors.New("username or email is already taken")
	}

	newUser := &domain.User{Username: username, Email: email}
	if err := newUser.HashPassword(password); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	created, err := s.userRepo.Create(ctx, newUser)
	if err != nil {
		return nil, err
	}
	s.logger.Info("user registered", "user_id", created.ID, "username", created.Username)
	return created, nil
}

// Login authenticates a user and returns a signed JWT.
func (s *AuthService) Login(ctx context.Context, username, password string) (*domain.User, string, error) {
	if username == "" || password == "" {
		return nil, "", errors.New("username and password are required")
	}

	account, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		s.logger.Warn("login failed - user not found", "username", username)
		return nil, "", ErrInvalidCredentials
	}

	if err := account.ValidatePassword(password); err != nil {
		s.logger.Warn("login failed - invalid password", "user_id", account.ID)
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.generateToken(account.ID)
	if err != nil {
		s.logger.Error("JWT token generation failed", "user_id", account.ID, "error", err)
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}

	s.logger.Info("login successful", "user_id", account.ID)
	return account, token, nil
}

// ValidateJWTToken checks the signature and expiry and returns the user id.
func (s *AuthService) ValidateJWTToken(tokenString string) (uint, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.jwtSecretKey, nil
	})
	if err != nil {
		return 0, err
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		if sub, ok := claims["sub"].(float64); ok {
			return uint(sub), nil
		}
	}
	return 0, errors.New("invalid token")
}

func (s *AuthService) generateToken(userID uint) (string, error) {
	if userID == 0 {
		return "", errors.New("user ID cannot be zero")
	}
	claims := jwt.MapClaims{
		"sub": userID,
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(tokenTTL).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecretKey)
}
