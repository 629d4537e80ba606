package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/tagadou/backend/internal/models"
)

// OrderStorage is the persistence interface for orders.
type OrderStorage interface {
	Create(ctx context.Context, order *models.Order) error
	GetByNumber(ctx context.Context, number string) (*models.Order, error)
	GetAll(ctx context.Context) ([]*models.Order, error)
	GetByEmail(ctx context.Context, email string) ([]*models.Order, error)
	GetDoudousByEmail(ctx context.Context, email string) ([]*models.Doudou, error)
	UpdateStatusPrivileged(ctx context.Context, id uuid.UUID, status models.OrderStatus) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status models.OrderStatus) error
	SetPayPalOrderID(ctx context.Context, id uuid.UUID, paypalOrderID string) error
	MarkPaid(ctx context.Context, paypalOrderID string) (*models.Order, error)
}

// UserStorage is the persistence interface for user accounts.
type UserStorage interface {
	Create(ctx context.Context, user *models.User) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
}

// PhotoStorage is the persistence interface for photo metadata.
type PhotoStorage interface {
	Create(ctx context.Context, photo *models.Photo) error
	List(ctx context.Context, orderID *uuid.UUID, limit, offset int) ([]*models.Photo, int, error)
	Deactivate(ctx context.Context, fileName string) (*models.Photo, error)
}

// DiscountStorage is the persistence interface for discount codes.
type DiscountStorage interface {
	GetByCode(ctx context.Context, code string) (*models.DiscountCode, error)
	IncrementUsage(ctx context.Context, id uuid.UUID) error
	Create(ctx context.Context, dc *models.DiscountCode) error
	GetAll(ctx context.Context) ([]*models.DiscountCode, error)
	SetActive(ctx context.Context, id uuid.UUID, active bool) error
}

// ShippingStore persists the shipping tariffs.
type ShippingStore interface {
	Load() (models.ShippingSettings, error)
	Save(settings models.ShippingSettings) error
}
