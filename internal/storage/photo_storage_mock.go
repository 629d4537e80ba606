package storage

import (
	"context"

	"github.com/google/uuid"
	"github.com/tagadou/backend/internal/models"
)

// MockPhotoStorage is a photo storage mock, exported for use in other packages.
type MockPhotoStorage struct {
	CreateFunc     func(ctx context.Context, photo *models.Photo) error
	ListFunc       func(ctx context.Context, orderID *uuid.UUID, limit, offset int) ([]*models.Photo, int, error)
	DeactivateFunc func(ctx context.Context, fileName string) (*models.Photo, error)
}

func (m *MockPhotoStorage) Create(ctx context.Context, photo *models.Photo) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, photo)
	}
	return nil
}

func (m *MockPhotoStorage) List(ctx context.Context, orderID *uuid.UUID, limit, offset int) ([]*models.Photo, int, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, orderID, limit, offset)
	}
	return []*models.Photo{}, 0, nil
}

func (m *MockPhotoStorage) Deactivate(ctx context.Context, fileName string) (*models.Photo, error) {
	if m.DeactivateFunc != nil {
		return m.DeactivateFunc(ctx, fileName)
	}
	return nil, ErrPhotoNotFound
}
