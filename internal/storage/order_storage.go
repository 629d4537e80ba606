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
	ErrOrderNotFound     = errors.New("order not found")
	ErrOrderNumberExists = errors.New("order number already exists")
	ErrPermissionDenied  = errors.New("permission denied")
)

const orderColumns = `id, order_number, customer_email, child_name, doudou_name, animal_type,
		address_line1, address_line2, postal_code, city, country, sheet_count, upsells, notes,
		total_amount, savings_amount, payment_status, status, photo_url, paypal_order_id,
		discount_code_id, created_at, updated_at`

// PostgresOrderStorage implements OrderStorage for PostgreSQL.
type PostgresOrderStorage struct {
	pool *pgxpool.Pool
}

// NewPostgresOrderStorage creates a new PostgresOrderStorage.
func NewPostgresOrderStorage(pool *pgxpool.Pool) *PostgresOrderStorage {
	return &PostgresOrderStorage{pool: pool}
}

// Create inserts a new order.
func (s *PostgresOrderStorage) Create(ctx context.Context, order *models.Order) error {
	query := `
		INSERT INTO orders (id, order_number, customer_email, child_name, doudou_name, animal_type,
			address_line1, address_line2, postal_code, city, country, sheet_count, upsells, notes,
			total_amount, savings_amount, payment_status, status, photo_url, paypal_order_id,
			discount_code_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, NOW(), NOW())
		RETURNING created_at, updated_at
	`

	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	if order.Upsells == nil {
		order.Upsells = []string{}
	}

	err := s.pool.QueryRow(ctx, query,
		order.ID,
		order.OrderNumber,
		order.CustomerEmail,
		order.ChildName,
		order.DoudouName,
		order.AnimalType,
		order.AddressLine1,
		order.AddressLine2,
		order.PostalCode,
		order.City,
		order.Country,
		order.SheetCount,
		order.Upsells,
		order.Notes,
		order.TotalAmount,
		order.SavingsAmount,
		order.PaymentStatus,
		order.Status,
		order.PhotoURL,
		order.PayPalOrderID,
		order.DiscountCodeID,
	).Scan(&order.CreatedAt, &order.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return ErrOrderNumberExists
		}
		return fmt.Errorf("failed to create order: %w", err)
	}

	return nil
}

// GetByNumber returns the order with the given order number.
func (s *PostgresOrderStorage) GetByNumber(ctx context.Context, number string) (*models.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE order_number = $1`

	order, err := scanOrder(s.pool.QueryRow(ctx, query, number))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to get order by number: %w", err)
	}

	return order, nil
}

// GetAll returns every order, newest first.
func (s *PostgresOrderStorage) GetAll(ctx context.Context) ([]*models.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders ORDER BY created_at DESC`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer rows.Close()

	return collectOrders(rows)
}

// GetByEmail returns all orders of one customer, newest first. The full
// set is returned: dashboard aggregates are computed over it, so no
// pagination is applied here.
func (s *PostgresOrderStorage) GetByEmail(ctx context.Context, email string) ([]*models.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE customer_email = $1 ORDER BY created_at DESC`

	rows, err := s.pool.Query(ctx, query, email)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders by email: %w", err)
	}
	defer rows.Close()

	return collectOrders(rows)
}

// GetDoudousByEmail returns the toy records associated with a
// customer's orders.
func (s *PostgresOrderStorage) GetDoudousByEmail(ctx context.Context, email string) ([]*models.Doudou, error) {
	query := `
		SELECT doudou_name, animal_type, photo_url
		FROM orders
		WHERE customer_email = $1
		ORDER BY created_at DESC
	`

	rows, err := s.pool.Query(ctx, query, email)
	if err != nil {
		return nil, fmt.Errorf("failed to list doudous by email: %w", err)
	}
	defer rows.Close()

	var doudous []*models.Doudou
	for rows.Next() {
		d := &models.Doudou{}
		if err := rows.Scan(&d.Name, &d.AnimalType, &d.PhotoURL); err != nil {
			return nil, fmt.Errorf("failed to scan doudou: %w", err)
		}
		doudous = append(doudous, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read doudous: %w", err)
	}

	return doudous, nil
}

// UpdateStatusPrivileged updates an order status through the
// SECURITY DEFINER function, bypassing row-level security.
func (s *PostgresOrderStorage) UpdateStatusPrivileged(ctx context.Context, id uuid.UUID, status models.OrderStatus) error {
	var updated int
	err := s.pool.QueryRow(ctx, `SELECT admin_update_order_status($1, $2)`, id, status).Scan(&updated)
	if err != nil {
		return classifyUpdateError(err)
	}
	if updated == 0 {
		return ErrOrderNotFound
	}
	return nil
}

// UpdateStatus updates an order status through a plain UPDATE, subject
// to the access policy of the connected role.
func (s *PostgresOrderStorage) UpdateStatus(ctx context.Context, id uuid.UUID, status models.OrderStatus) error {
	result, err := s.pool.Exec(ctx, `UPDATE orders SET status = $1, updated_at = NOW() WHERE id = $2`, status, id)
	if err != nil {
		return classifyUpdateError(err)
	}
	if result.RowsAffected() == 0 {
		return ErrOrderNotFound
	}
	return nil
}

// SetPayPalOrderID attaches the PayPal order id created for the
// checkout to the order.
func (s *PostgresOrderStorage) SetPayPalOrderID(ctx context.Context, id uuid.UUID, paypalOrderID string) error {
	result, err := s.pool.Exec(ctx, `UPDATE orders SET paypal_order_id = $1, updated_at = NOW() WHERE id = $2`, paypalOrderID, id)
	if err != nil {
		return fmt.Errorf("failed to set paypal order id: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrOrderNotFound
	}
	return nil
}

// MarkPaid flags the order attached to a PayPal order id as paid and
// returns it.
func (s *PostgresOrderStorage) MarkPaid(ctx context.Context, paypalOrderID string) (*models.Order, error) {
	query := `
		UPDATE orders
		SET payment_status = $1, updated_at = NOW()
		WHERE paypal_order_id = $2
		RETURNING ` + orderColumns

	order, err := scanOrder(s.pool.QueryRow(ctx, query, models.PaymentStatusPaid, paypalOrderID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to mark order paid: %w", err)
	}

	return order, nil
}

// classifyUpdateError maps an access-policy denial to
// ErrPermissionDenied so callers can tell it from a generic failure.
func classifyUpdateError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "42501" { // insufficient_privilege
		return ErrPermissionDenied
	}
	return fmt.Errorf("failed to update order status: %w", err)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(row rowScanner) (*models.Order, error) {
	order := &models.Order{}
	err := row.Scan(
		&order.ID,
		&order.OrderNumber,
		&order.CustomerEmail,
		&order.ChildName,
		&order.DoudouName,
		&order.AnimalType,
		&order.AddressLine1,
		&order.AddressLine2,
		&order.PostalCode,
		&order.City,
		&order.Country,
		&order.SheetCount,
		&order.Upsells,
		&order.Notes,
		&order.TotalAmount,
		&order.SavingsAmount,
		&order.PaymentStatus,
		&order.Status,
		&order.PhotoURL,
		&order.PayPalOrderID,
		&order.DiscountCodeID,
		&order.CreatedAt,
		&order.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return order, nil
}

func collectOrders(rows pgx.Rows) ([]*models.Order, error) {
	var orders []*models.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read orders: %w", err)
	}
	return orders, nil
}
