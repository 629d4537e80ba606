package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tagadou/backend/internal/models"
	"github.com/tagadou/backend/internal/storage"
)

func intPtr(n int) *int { return &n }

func timePtr(t time.Time) *time.Time { return &t }

func activeCode(code string) *models.DiscountCode {
	return &models.DiscountCode{
		ID:            uuid.New(),
		Code:          code,
		DiscountType:  models.DiscountTypePercentage,
		Value:         decimal.NewFromInt(10),
		MinimumAmount: decimal.NewFromInt(20),
		ValidFrom:     time.Now().Add(-time.Hour),
		IsActive:      true,
	}
}

func TestDiscountService_Validate(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown code", func(t *testing.T) {
		svc := NewDiscountService(&storage.MockDiscountStorage{})
		_, _, err := svc.Validate(ctx, "NOPE", decimal.NewFromInt(50))
		if !errors.Is(err, ErrCodeInvalid) {
			t.Fatalf("expected ErrCodeInvalid, got %v", err)
		}
	})

	t.Run("empty code", func(t *testing.T) {
		svc := NewDiscountService(&storage.MockDiscountStorage{})
		_, _, err := svc.Validate(ctx, "   ", decimal.NewFromInt(50))
		if !errors.Is(err, ErrCodeInvalid) {
			t.Fatalf("expected ErrCodeInvalid, got %v", err)
		}
	})

	t.Run("inactive code looks unknown", func(t *testing.T) {
		dc := activeCode("WELCOME10")
		dc.IsActive = false
		svc := NewDiscountService(&storage.MockDiscountStorage{
			GetByCodeFunc: func(ctx context.Context, code string) (*models.DiscountCode, error) {
				return dc, nil
			},
		})
		_, _, err := svc.Validate(ctx, "WELCOME10", decimal.NewFromInt(50))
		if !errors.Is(err, ErrCodeInvalid) {
			t.Fatalf("expected ErrCodeInvalid, got %v", err)
		}
	})

	t.Run("code looked up uppercase", func(t *testing.T) {
		var lookedUp string
		svc := NewDiscountService(&storage.MockDiscountStorage{
			GetByCodeFunc: func(ctx context.Context, code string) (*models.DiscountCode, error) {
				lookedUp = code
				return activeCode(code), nil
			},
		})
		if _, _, err := svc.Validate(ctx, "welcome10", decimal.NewFromInt(50)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if lookedUp != "WELCOME10" {
			t.Errorf("expected uppercase lookup, got %q", lookedUp)
		}
	})

	t.Run("not yet valid", func(t *testing.T) {
		dc := activeCode("FUTURE")
		dc.ValidFrom = time.Now().Add(time.Hour)
		svc := NewDiscountService(&storage.MockDiscountStorage{
			GetByCodeFunc: func(ctx context.Context, code string) (*models.DiscountCode, error) {
				return dc, nil
			},
		})
		_, _, err := svc.Validate(ctx, "FUTURE", decimal.NewFromInt(50))
		if !errors.Is(err, ErrCodeNotYetValid) {
			t.Fatalf("expected ErrCodeNotYetValid, got %v", err)
		}
	})

	t.Run("expired", func(t *testing.T) {
		dc := activeCode("OLD")
		dc.ValidUntil = timePtr(time.Now().Add(-time.Minute))
		svc := NewDiscountService(&storage.MockDiscountStorage{
			GetByCodeFunc: func(ctx context.Context, code string) (*models.DiscountCode, error) {
				return dc, nil
			},
		})
		_, _, err := svc.Validate(ctx, "OLD", decimal.NewFromInt(50))
		if !errors.Is(err, ErrCodeExpired) {
			t.Fatalf("expected ErrCodeExpired, got %v", err)
		}
	})

	t.Run("usage limit reached", func(t *testing.T) {
		dc := activeCode("FULL")
		dc.UsageLimit = intPtr(5)
		dc.UsedCount = 5
		svc := NewDiscountService(&storage.MockDiscountStorage{
			GetByCodeFunc: func(ctx context.Context, code string) (*models.DiscountCode, error) {
				return dc, nil
			},
		})
		_, _, err := svc.Validate(ctx, "FULL", decimal.NewFromInt(50))
		if !errors.Is(err, ErrCodeUsageLimitReached) {
			t.Fatalf("expected ErrCodeUsageLimitReached, got %v", err)
		}
	})

	t.Run("below minimum amount", func(t *testing.T) {
		svc := NewDiscountService(&storage.MockDiscountStorage{
			GetByCodeFunc: func(ctx context.Context, code string) (*models.DiscountCode, error) {
				return activeCode(code), nil
			},
		})
		_, _, err := svc.Validate(ctx, "WELCOME10", decimal.NewFromInt(15))
		var minErr MinimumAmountError
		if !errors.As(err, &minErr) {
			t.Fatalf("expected MinimumAmountError, got %v", err)
		}
		if !minErr.Minimum.Equal(decimal.NewFromInt(20)) {
			t.Errorf("expected minimum 20, got %s", minErr.Minimum)
		}
	})

	t.Run("percentage amount", func(t *testing.T) {
		svc := NewDiscountService(&storage.MockDiscountStorage{
			GetByCodeFunc: func(ctx context.Context, code string) (*models.DiscountCode, error) {
				return activeCode(code), nil
			},
		})
		// 10% of 50.00 is 5.00
		_, amount, err := svc.Validate(ctx, "WELCOME10", decimal.NewFromInt(50))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !amount.Equal(decimal.NewFromInt(5)) {
			t.Errorf("expected discount 5, got %s", amount)
		}
	})

	t.Run("fixed amount", func(t *testing.T) {
		dc := activeCode("FIXED8")
		dc.DiscountType = models.DiscountTypeFixed
		dc.Value = decimal.NewFromInt(8)
		svc := NewDiscountService(&storage.MockDiscountStorage{
			GetByCodeFunc: func(ctx context.Context, code string) (*models.DiscountCode, error) {
				return dc, nil
			},
		})
		_, amount, err := svc.Validate(ctx, "FIXED8", decimal.NewFromInt(50))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !amount.Equal(decimal.NewFromInt(8)) {
			t.Errorf("expected discount 8, got %s", amount)
		}
	})

	t.Run("fixed amount clamped to total", func(t *testing.T) {
		dc := activeCode("BIG")
		dc.DiscountType = models.DiscountTypeFixed
		dc.Value = decimal.NewFromInt(100)
		dc.MinimumAmount = decimal.Zero
		svc := NewDiscountService(&storage.MockDiscountStorage{
			GetByCodeFunc: func(ctx context.Context, code string) (*models.DiscountCode, error) {
				return dc, nil
			},
		})
		_, amount, err := svc.Validate(ctx, "BIG", decimal.NewFromInt(30))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !amount.Equal(decimal.NewFromInt(30)) {
			t.Errorf("expected discount clamped to 30, got %s", amount)
		}
	})
}

func TestDiscountService_Redeem(t *testing.T) {
	ctx := context.Background()
	codeID := uuid.New()

	t.Run("success", func(t *testing.T) {
		var gotID uuid.UUID
		svc := NewDiscountService(&storage.MockDiscountStorage{
			IncrementUsageFunc: func(ctx context.Context, id uuid.UUID) error {
				gotID = id
				return nil
			},
		})
		if err := svc.Redeem(ctx, codeID); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if gotID != codeID {
			t.Errorf("expected increment for %s, got %s", codeID, gotID)
		}
	})

	t.Run("usage limit reached", func(t *testing.T) {
		svc := NewDiscountService(&storage.MockDiscountStorage{
			IncrementUsageFunc: func(ctx context.Context, id uuid.UUID) error {
				return storage.ErrUsageLimitReached
			},
		})
		err := svc.Redeem(ctx, codeID)
		if !errors.Is(err, storage.ErrUsageLimitReached) {
			t.Fatalf("expected ErrUsageLimitReached, got %v", err)
		}
	})
}

func TestDiscountService_Create(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		req     *models.CreateDiscountCodeRequest
		wantErr bool
	}{
		{
			name: "valid percentage code",
			req: &models.CreateDiscountCodeRequest{
				Code:         "summer20",
				DiscountType: "percentage",
				Value:        20,
			},
		},
		{
			name: "valid fixed code with limit",
			req: &models.CreateDiscountCodeRequest{
				Code:         "FIVE",
				DiscountType: "fixed",
				Value:        5,
				UsageLimit:   intPtr(100),
			},
		},
		{
			name:    "empty code",
			req:     &models.CreateDiscountCodeRequest{DiscountType: "fixed", Value: 5},
			wantErr: true,
		},
		{
			name:    "bad type",
			req:     &models.CreateDiscountCodeRequest{Code: "X", DiscountType: "bogus", Value: 5},
			wantErr: true,
		},
		{
			name:    "zero value",
			req:     &models.CreateDiscountCodeRequest{Code: "X", DiscountType: "fixed", Value: 0},
			wantErr: true,
		},
		{
			name:    "percentage above 100",
			req:     &models.CreateDiscountCodeRequest{Code: "X", DiscountType: "percentage", Value: 150},
			wantErr: true,
		},
		{
			name:    "negative minimum",
			req:     &models.CreateDiscountCodeRequest{Code: "X", DiscountType: "fixed", Value: 5, MinimumAmount: -1},
			wantErr: true,
		},
		{
			name:    "non-positive usage limit",
			req:     &models.CreateDiscountCodeRequest{Code: "X", DiscountType: "fixed", Value: 5, UsageLimit: intPtr(0)},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewDiscountService(&storage.MockDiscountStorage{})
			dc, err := svc.Create(ctx, tt.req)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidDiscountInput) {
					t.Fatalf("expected ErrInvalidDiscountInput, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if dc.Code != "SUMMER20" && dc.Code != "FIVE" {
				t.Errorf("expected uppercase code, got %q", dc.Code)
			}
			if !dc.IsActive {
				t.Error("expected new code to be active")
			}
		})
	}
}
