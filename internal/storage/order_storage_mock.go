package storage

import (
	"context"

	"github.com/google/uuid"
	"github.com/tagadou/backend/internal/models"
)

// MockOrderStorage is an order storage mock, exported for use in other packages.
type MockOrderStorage struct {
	CreateFunc                 func(ctx context.Context, order *models.Order) error
	GetByNumberFunc            func(ctx context.Context, number string) (*models.Order, error)
	GetAllFunc                 func(ctx context.Context) ([]*models.Order, error)
	GetByEmailFunc             func(ctx context.Context, email string) ([]*models.Order, error)
	GetDoudousByEmailFunc      func(ctx context.Context, email string) ([]*models.Doudou, error)
	UpdateStatusPrivilegedFunc func(ctx context.Context, id uuid.UUID, status models.OrderStatus) error
	UpdateStatusFunc           func(ctx context.Context, id uuid.UUID, status models.OrderStatus) error
	SetPayPalOrderIDFunc       func(ctx context.Context, id uuid.UUID, paypalOrderID string) error
	MarkPaidFunc               func(ctx context.Context, paypalOrderID string) (*models.Order, error)
}

func (m *MockOrderStorage) Create(ctx context.Context, order *models.Order) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, order)
	}
	return nil
}

func (m *MockOrderStorage) GetByNumber(ctx context.Context, number string) (*models.Order, error) {
	if m.GetByNumberFunc != nil {
		return m.GetByNumberFunc(ctx, number)
	}
	return nil, ErrOrderNotFound
}

func (m *MockOrderStorage) GetAll(ctx context.Context) ([]*models.Order, error) {
	if m.GetAllFunc != nil {
		return m.GetAllFunc(ctx)
	}
	return []*models.Order{}, nil
}

func (m *MockOrderStorage) GetByEmail(ctx context.Context, email string) ([]*models.Order, error) {
	if m.GetByEmailFunc != nil {
		return m.GetByEmailFunc(ctx, email)
	}
	return []*models.Order{}, nil
}

func (m *MockOrderStorage) GetDoudousByEmail(ctx context.Context, email string) ([]*models.Doudou, error) {
	if m.GetDoudousByEmailFunc != nil {
		return m.GetDoudousByEmailFunc(ctx, email)
	}
	return []*models.Doudou{}, nil
}

func (m *MockOrderStorage) UpdateStatusPrivileged(ctx context.Context, id uuid.UUID, status models.OrderStatus) error {
	if m.UpdateStatusPrivilegedFunc != nil {
		return m.UpdateStatusPrivilegedFunc(ctx, id, status)
	}
	return nil
}

func (m *MockOrderStorage) UpdateStatus(ctx context.Context, id uuid.UUID, status models.OrderStatus) error {
	if m.UpdateStatusFunc != nil {
		return m.UpdateStatusFunc(ctx, id, status)
	}
	return nil
}

func (m *MockOrderStorage) SetPayPalOrderID(ctx context.Context, id uuid.UUID, paypalOrderID string) error {
	if m.SetPayPalOrderIDFunc != nil {
		return m.SetPayPalOrderIDFunc(ctx, id, paypalOrderID)
	}
	return nil
}

func (m *MockOrderStorage) MarkPaid(ctx context.Context, paypalOrderID string) (*models.Order, error) {
	if m.MarkPaidFunc != nil {
		return m.MarkPaidFunc(ctx, paypalOrderID)
	}
	return nil, ErrOrderNotFound
}
