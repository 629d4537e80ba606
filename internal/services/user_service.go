package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/tagadou/backend/internal/auth"
	"github.com/tagadou/backend/internal/models"
	"github.com/tagadou/backend/internal/storage"
	"go.uber.org/zap"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmptyCredentials   = errors.New("email and password are required")
)

// UserService handles authentication and password resets.
type UserService interface {
	Login(ctx context.Context, email, password string) (*models.UserResponse, string, error)
	ResetPassword(ctx context.Context, email string) (string, error)
}

// UserServiceImpl implements UserService.
type UserServiceImpl struct {
	userStorage  UserStorage
	orderStorage OrderStorage
	jwtSecret    string
	tokenTTL     time.Duration
	logger       *zap.SugaredLogger
}

// NewUserService creates a new UserService.
func NewUserService(userStorage UserStorage, orderStorage OrderStorage, jwtSecret string, tokenTTL time.Duration, logger *zap.SugaredLogger) *UserServiceImpl {
	return &UserServiceImpl{
		userStorage:  userStorage,
		orderStorage: orderStorage,
		jwtSecret:    jwtSecret,
		tokenTTL:     tokenTTL,
		logger:       logger,
	}
}

// Login verifies the credentials and assembles the profile payload
// with the identity's orders attached. It returns the payload and a
// signed JWT.
func (s *UserServiceImpl) Login(ctx context.Context, email, password string) (*models.UserResponse, string, error) {
	if email == "" || password == "" {
		return nil, "", ErrEmptyCredentials
	}

	user, err := s.userStorage.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("failed to get user: %w", err)
	}

	if !auth.CheckPassword(password, user.PasswordHash) {
		return nil, "", ErrInvalidCredentials
	}

	orders, err := s.orderStorage.GetByEmail(ctx, user.Email)
	if err != nil {
		return nil, "", fmt.Errorf("failed to get user orders: %w", err)
	}

	token, err := auth.GenerateToken(user, s.jwtSecret, s.tokenTTL)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}

	resp := &models.UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Role:      user.Role,
		Orders:    mapOrdersToResponse(orders),
	}

	return resp, token, nil
}

// ResetPassword issues a new random temporary password for an existing
// account and returns it in clear text. The caller decides how to
// expose it; in production that should be an email, not the response.
func (s *UserServiceImpl) ResetPassword(ctx context.Context, email string) (string, error) {
	if email == "" {
		return "", ErrEmptyCredentials
	}

	user, err := s.userStorage.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return "", storage.ErrUserNotFound
		}
		return "", fmt.Errorf("failed to get user: %w", err)
	}

	tempPassword, err := auth.GenerateTemporaryPassword()
	if err != nil {
		return "", err
	}

	hash, err := auth.HashPassword(tempPassword)
	if err != nil {
		return "", err
	}

	if err := s.userStorage.UpdatePassword(ctx, user.ID, hash); err != nil {
		return "", fmt.Errorf("failed to store temporary password: %w", err)
	}

	s.logger.Infow("temporary password issued", "email", email)

	return tempPassword, nil
}

func mapOrdersToResponse(orders []*models.Order) []*models.OrderResponse {
	response := make([]*models.OrderResponse, 0, len(orders))
	for _, o := range orders {
		response = append(response, o.ToResponse())
	}
	return response
}
