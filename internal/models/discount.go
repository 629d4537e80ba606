package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DiscountType describes how the discount value is applied.
type DiscountType string

const (
	DiscountTypePercentage DiscountType = "percentage"
	DiscountTypeFixed      DiscountType = "fixed"
)

// DiscountCode is a redeemable discount. Codes are stored uppercase and
// matched case-insensitively. UsedCount is only ever changed through an
// atomic backend-side increment.
type DiscountCode struct {
	ID            uuid.UUID       `db:"id"`
	Code          string          `db:"code"`
	DiscountType  DiscountType    `db:"discount_type"`
	Value         decimal.Decimal `db:"value"`
	MinimumAmount decimal.Decimal `db:"minimum_amount"`
	ValidFrom     time.Time       `db:"valid_from"`
	ValidUntil    *time.Time      `db:"valid_until"`
	UsageLimit    *int            `db:"usage_limit"`
	UsedCount     int             `db:"used_count"`
	IsActive      bool            `db:"is_active"`
	CreatedAt     time.Time       `db:"created_at"`
	UpdatedAt     time.Time       `db:"updated_at"`
}

// ValidateDiscountRequest is the validation payload.
type ValidateDiscountRequest struct {
	Code        string  `json:"code"`
	TotalAmount float64 `json:"totalAmount"`
}

// RedeemDiscountRequest increments the usage counter of a code after a
// successful payment.
type RedeemDiscountRequest struct {
	CodeID string `json:"codeId"`
}

// DiscountCodeResponse is the JSON shape of a validated code, with the
// computed discount amount for the submitted order total.
type DiscountCodeResponse struct {
	ID             string  `json:"id"`
	Code           string  `json:"code"`
	DiscountType   string  `json:"discountType"`
	Value          float64 `json:"value"`
	DiscountAmount float64 `json:"discountAmount"`
}

// CreateDiscountCodeRequest is the admin creation payload.
type CreateDiscountCodeRequest struct {
	Code          string     `json:"code"`
	DiscountType  string     `json:"discountType"`
	Value         float64    `json:"value"`
	MinimumAmount float64    `json:"minimumAmount"`
	ValidFrom     *time.Time `json:"validFrom"`
	ValidUntil    *time.Time `json:"validUntil"`
	UsageLimit    *int       `json:"usageLimit"`
}

// SetDiscountActiveRequest toggles a code on or off.
type SetDiscountActiveRequest struct {
	IsActive bool `json:"isActive"`
}
