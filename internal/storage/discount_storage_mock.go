package storage

import (
	"context"

	"github.com/google/uuid"
	"github.com/tagadou/backend/internal/models"
)

// MockDiscountStorage is a discount storage mock, exported for use in other packages.
type MockDiscountStorage struct {
	GetByCodeFunc      func(ctx context.Context, code string) (*models.DiscountCode, error)
	IncrementUsageFunc func(ctx context.Context, id uuid.UUID) error
	CreateFunc         func(ctx context.Context, dc *models.DiscountCode) error
	GetAllFunc         func(ctx context.Context) ([]*models.DiscountCode, error)
	SetActiveFunc      func(ctx context.Context, id uuid.UUID, active bool) error
}

func (m *MockDiscountStorage) GetByCode(ctx context.Context, code string) (*models.DiscountCode, error) {
	if m.GetByCodeFunc != nil {
		return m.GetByCodeFunc(ctx, code)
	}
	return nil, ErrDiscountNotFound
}

func (m *MockDiscountStorage) IncrementUsage(ctx context.Context, id uuid.UUID) error {
	if m.IncrementUsageFunc != nil {
		return m.IncrementUsageFunc(ctx, id)
	}
	return nil
}

func (m *MockDiscountStorage) Create(ctx context.Context, dc *models.DiscountCode) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, dc)
	}
	return nil
}

func (m *MockDiscountStorage) GetAll(ctx context.Context) ([]*models.DiscountCode, error) {
	if m.GetAllFunc != nil {
		return m.GetAllFunc(ctx)
	}
	return []*models.DiscountCode{}, nil
}

func (m *MockDiscountStorage) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	if m.SetActiveFunc != nil {
		return m.SetActiveFunc(ctx, id, active)
	}
	return nil
}
