package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tagadou/backend/internal/models"
)

var ErrPhotoNotFound = errors.New("photo not found")

const photoColumns = `file_name, original_name, size_bytes, mime_type, is_active, order_id, created_at`

// PostgresPhotoStorage implements PhotoStorage for PostgreSQL.
type PostgresPhotoStorage struct {
	pool *pgxpool.Pool
}

// NewPostgresPhotoStorage creates a new PostgresPhotoStorage.
func NewPostgresPhotoStorage(pool *pgxpool.Pool) *PostgresPhotoStorage {
	return &PostgresPhotoStorage{pool: pool}
}

// Create records the metadata of an uploaded photo.
func (s *PostgresPhotoStorage) Create(ctx context.Context, photo *models.Photo) error {
	query := `
		INSERT INTO photos (file_name, original_name, size_bytes, mime_type, is_active, order_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		RETURNING created_at
	`

	err := s.pool.QueryRow(ctx, query,
		photo.FileName,
		photo.OriginalName,
		photo.SizeBytes,
		photo.MimeType,
		photo.IsActive,
		photo.OrderID,
	).Scan(&photo.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to create photo record: %w", err)
	}

	return nil
}

// List returns active photos with the total count, optionally filtered
// by order, newest first.
func (s *PostgresPhotoStorage) List(ctx context.Context, orderID *uuid.UUID, limit, offset int) ([]*models.Photo, int, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	countQuery := `SELECT COUNT(*) FROM photos WHERE is_active AND ($1::uuid IS NULL OR order_id = $1)`
	var total int
	if err := s.pool.QueryRow(ctx, countQuery, orderID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count photos: %w", err)
	}

	query := `
		SELECT ` + photoColumns + `
		FROM photos
		WHERE is_active AND ($1::uuid IS NULL OR order_id = $1)
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := s.pool.Query(ctx, query, orderID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list photos: %w", err)
	}
	defer rows.Close()

	var photos []*models.Photo
	for rows.Next() {
		photo, err := scanPhoto(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan photo: %w", err)
		}
		photos = append(photos, photo)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to read photos: %w", err)
	}

	return photos, total, nil
}

// Deactivate soft-deletes a photo and returns the updated record. The
// file on disk is left in place.
func (s *PostgresPhotoStorage) Deactivate(ctx context.Context, fileName string) (*models.Photo, error) {
	query := `
		UPDATE photos
		SET is_active = FALSE
		WHERE file_name = $1
		RETURNING ` + photoColumns

	photo, err := scanPhoto(s.pool.QueryRow(ctx, query, fileName))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPhotoNotFound
		}
		return nil, fmt.Errorf("failed to deactivate photo: %w", err)
	}

	return photo, nil
}

func scanPhoto(row rowScanner) (*models.Photo, error) {
	photo := &models.Photo{}
	err := row.Scan(
		&photo.FileName,
		&photo.OriginalName,
		&photo.SizeBytes,
		&photo.MimeType,
		&photo.IsActive,
		&photo.OrderID,
		&photo.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return photo, nil
}
