package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tagadou/backend/internal/models"
)

var (
	ErrDiscountNotFound  = errors.New("discount code not found")
	ErrDiscountExists    = errors.New("discount code already exists")
	ErrUsageLimitReached = errors.New("discount usage limit reached")
)

const discountColumns = `id, code, discount_type, value, minimum_amount, valid_from, valid_until,
		usage_limit, used_count, is_active, created_at, updated_at`

// PostgresDiscountStorage implements DiscountStorage for PostgreSQL.
type PostgresDiscountStorage struct {
	pool *pgxpool.Pool
}

// NewPostgresDiscountStorage creates a new PostgresDiscountStorage.
func NewPostgresDiscountStorage(pool *pgxpool.Pool) *PostgresDiscountStorage {
	return &PostgresDiscountStorage{pool: pool}
}

// GetByCode returns the discount code matching the uppercase code.
func (s *PostgresDiscountStorage) GetByCode(ctx context.Context, code string) (*models.DiscountCode, error) {
	query := `SELECT ` + discountColumns + ` FROM discount_codes WHERE code = $1`

	dc, err := scanDiscount(s.pool.QueryRow(ctx, query, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrDiscountNotFound
		}
		return nil, fmt.Errorf("failed to get discount code: %w", err)
	}

	return dc, nil
}

// IncrementUsage bumps used_count by one inside the database. The
// guard clause keeps two concurrent redemptions of a nearly exhausted
// code from both passing the cap: the losing UPDATE matches zero rows.
func (s *PostgresDiscountStorage) IncrementUsage(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE discount_codes
		SET used_count = used_count + 1, updated_at = NOW()
		WHERE id = $1 AND (usage_limit IS NULL OR used_count < usage_limit)
	`

	result, err := s.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to increment discount usage: %w", err)
	}
	if result.RowsAffected() == 0 {
		exists := false
		if checkErr := s.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM discount_codes WHERE id = $1)`, id).Scan(&exists); checkErr != nil {
			return fmt.Errorf("failed to increment discount usage: %w", checkErr)
		}
		if !exists {
			return ErrDiscountNotFound
		}
		return ErrUsageLimitReached
	}

	return nil
}

// Create inserts a new discount code.
func (s *PostgresDiscountStorage) Create(ctx context.Context, dc *models.DiscountCode) error {
	query := `
		INSERT INTO discount_codes (id, code, discount_type, value, minimum_amount, valid_from,
			valid_until, usage_limit, used_count, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW())
		RETURNING created_at, updated_at
	`

	if dc.ID == uuid.Nil {
		dc.ID = uuid.New()
	}

	err := s.pool.QueryRow(ctx, query,
		dc.ID,
		dc.Code,
		dc.DiscountType,
		dc.Value,
		dc.MinimumAmount,
		dc.ValidFrom,
		dc.ValidUntil,
		dc.UsageLimit,
		dc.UsedCount,
		dc.IsActive,
	).Scan(&dc.CreatedAt, &dc.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return ErrDiscountExists
		}
		return fmt.Errorf("failed to create discount code: %w", err)
	}

	return nil
}

// GetAll returns every discount code, newest first.
func (s *PostgresDiscountStorage) GetAll(ctx context.Context) ([]*models.DiscountCode, error) {
	query := `SELECT ` + discountColumns + ` FROM discount_codes ORDER BY created_at DESC`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list discount codes: %w", err)
	}
	defer rows.Close()

	var codes []*models.DiscountCode
	for rows.Next() {
		dc, err := scanDiscount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan discount code: %w", err)
		}
		codes = append(codes, dc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read discount codes: %w", err)
	}

	return codes, nil
}

// SetActive toggles a code on or off.
func (s *PostgresDiscountStorage) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	query := `UPDATE discount_codes SET is_active = $1, updated_at = NOW() WHERE id = $2`

	result, err := s.pool.Exec(ctx, query, active, id)
	if err != nil {
		return fmt.Errorf("failed to update discount code: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrDiscountNotFound
	}

	return nil
}

func scanDiscount(row rowScanner) (*models.DiscountCode, error) {
	dc := &models.DiscountCode{}
	err := row.Scan(
		&dc.ID,
		&dc.Code,
		&dc.DiscountType,
		&dc.Value,
		&dc.MinimumAmount,
		&dc.ValidFrom,
		&dc.ValidUntil,
		&dc.UsageLimit,
		&dc.UsedCount,
		&dc.IsActive,
		&dc.CreatedAt,
		&dc.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return dc, nil
}
