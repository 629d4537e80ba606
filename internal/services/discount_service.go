package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tagadou/backend/internal/models"
	"github.com/tagadou/backend/internal/storage"
)

var (
	// ErrCodeInvalid covers unknown and inactive codes alike, so a
	// caller cannot probe which codes exist.
	ErrCodeInvalid           = errors.New("code de réduction invalide")
	ErrCodeNotYetValid       = errors.New("code pas encore valide")
	ErrCodeExpired           = errors.New("code expiré")
	ErrCodeUsageLimitReached = errors.New("limite d'utilisation du code atteinte")
	ErrInvalidDiscountInput  = errors.New("invalid discount code input")
)

// MinimumAmountError rejects a code used below its minimum order
// amount. The message carries the minimum formatted to 2 decimals.
type MinimumAmountError struct {
	Minimum decimal.Decimal
}

func (e MinimumAmountError) Error() string {
	return fmt.Sprintf("montant minimum de %s € requis", e.Minimum.StringFixed(2))
}

// DiscountService validates, redeems and manages discount codes.
type DiscountService interface {
	Validate(ctx context.Context, code string, total decimal.Decimal) (*models.DiscountCode, decimal.Decimal, error)
	Redeem(ctx context.Context, codeID uuid.UUID) error
	Create(ctx context.Context, req *models.CreateDiscountCodeRequest) (*models.DiscountCode, error)
	GetAll(ctx context.Context) ([]*models.DiscountCode, error)
	SetActive(ctx context.Context, id uuid.UUID, active bool) error
}

// DiscountServiceImpl implements DiscountService.
type DiscountServiceImpl struct {
	discountStorage DiscountStorage
}

// NewDiscountService creates a new DiscountService.
func NewDiscountService(discountStorage DiscountStorage) *DiscountServiceImpl {
	return &DiscountServiceImpl{discountStorage: discountStorage}
}

// Validate checks a code against the order total and returns the code
// with the computed discount amount. Checks run in order and stop at
// the first failure: existence and active flag, validity window, usage
// cap, minimum order amount. The amount is clamped to the order total.
func (s *DiscountServiceImpl) Validate(ctx context.Context, code string, total decimal.Decimal) (*models.DiscountCode, decimal.Decimal, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return nil, decimal.Zero, ErrCodeInvalid
	}

	dc, err := s.discountStorage.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, storage.ErrDiscountNotFound) {
			return nil, decimal.Zero, ErrCodeInvalid
		}
		return nil, decimal.Zero, fmt.Errorf("failed to look up discount code: %w", err)
	}
	if !dc.IsActive {
		return nil, decimal.Zero, ErrCodeInvalid
	}

	now := time.Now()
	if now.Before(dc.ValidFrom) {
		return nil, decimal.Zero, ErrCodeNotYetValid
	}
	if dc.ValidUntil != nil && now.After(*dc.ValidUntil) {
		return nil, decimal.Zero, ErrCodeExpired
	}
	if dc.UsageLimit != nil && dc.UsedCount >= *dc.UsageLimit {
		return nil, decimal.Zero, ErrCodeUsageLimitReached
	}
	if total.LessThan(dc.MinimumAmount) {
		return nil, decimal.Zero, MinimumAmountError{Minimum: dc.MinimumAmount}
	}

	amount := computeDiscountAmount(dc, total)
	return dc, amount, nil
}

// Redeem increments the usage counter of a code. Called only after a
// successful payment; the increment itself is atomic in the database.
func (s *DiscountServiceImpl) Redeem(ctx context.Context, codeID uuid.UUID) error {
	if err := s.discountStorage.IncrementUsage(ctx, codeID); err != nil {
		return fmt.Errorf("failed to redeem discount code: %w", err)
	}
	return nil
}

// Create registers a new discount code. The code is normalized to
// uppercase.
func (s *DiscountServiceImpl) Create(ctx context.Context, req *models.CreateDiscountCodeRequest) (*models.DiscountCode, error) {
	code := strings.ToUpper(strings.TrimSpace(req.Code))
	if code == "" {
		return nil, fmt.Errorf("%w: code is required", ErrInvalidDiscountInput)
	}

	discountType := models.DiscountType(req.DiscountType)
	if discountType != models.DiscountTypePercentage && discountType != models.DiscountTypeFixed {
		return nil, fmt.Errorf("%w: discount type must be percentage or fixed", ErrInvalidDiscountInput)
	}
	if req.Value <= 0 {
		return nil, fmt.Errorf("%w: value must be positive", ErrInvalidDiscountInput)
	}
	if discountType == models.DiscountTypePercentage && req.Value > 100 {
		return nil, fmt.Errorf("%w: percentage cannot exceed 100", ErrInvalidDiscountInput)
	}
	if req.MinimumAmount < 0 {
		return nil, fmt.Errorf("%w: minimum amount cannot be negative", ErrInvalidDiscountInput)
	}
	if req.UsageLimit != nil && *req.UsageLimit <= 0 {
		return nil, fmt.Errorf("%w: usage limit must be positive", ErrInvalidDiscountInput)
	}

	validFrom := time.Now()
	if req.ValidFrom != nil {
		validFrom = *req.ValidFrom
	}

	dc := &models.DiscountCode{
		ID:            uuid.New(),
		Code:          code,
		DiscountType:  discountType,
		Value:         decimal.NewFromFloat(req.Value),
		MinimumAmount: decimal.NewFromFloat(req.MinimumAmount),
		ValidFrom:     validFrom,
		ValidUntil:    req.ValidUntil,
		UsageLimit:    req.UsageLimit,
		IsActive:      true,
	}

	if err := s.discountStorage.Create(ctx, dc); err != nil {
		return nil, err
	}

	return dc, nil
}

// GetAll returns every discount code.
func (s *DiscountServiceImpl) GetAll(ctx context.Context) ([]*models.DiscountCode, error) {
	return s.discountStorage.GetAll(ctx)
}

// SetActive toggles a code on or off.
func (s *DiscountServiceImpl) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	return s.discountStorage.SetActive(ctx, id, active)
}

// computeDiscountAmount applies the code to the order total:
// percentage types take total*value/100, fixed types take the value.
// The result never exceeds the order total.
func computeDiscountAmount(dc *models.DiscountCode, total decimal.Decimal) decimal.Decimal {
	var amount decimal.Decimal
	switch dc.DiscountType {
	case models.DiscountTypePercentage:
		amount = total.Mul(dc.Value).Div(decimal.NewFromInt(100)).Round(2)
	default:
		amount = dc.Value
	}

	if amount.GreaterThan(total) {
		return total
	}
	return amount
}
