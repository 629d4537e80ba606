package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderStatus describes the fulfilment state of an order.
type OrderStatus string

const (
	OrderStatusNew        OrderStatus = "new"
	OrderStatusInProgress OrderStatus = "in-progress"
	OrderStatusDone       OrderStatus = "done"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
)

// Valid reports whether s is one of the allowed order statuses.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusNew, OrderStatusInProgress, OrderStatusDone, OrderStatusShipped, OrderStatusDelivered:
		return true
	}
	return false
}

// PaymentStatus describes the payment state of an order.
type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPaid    PaymentStatus = "paid"
	PaymentStatusFailed  PaymentStatus = "failed"
)

// Order is a customer order for custom sticker sheets. The order number
// is the human-facing identifier and is immutable once assigned.
type Order struct {
	ID             uuid.UUID       `db:"id"`
	OrderNumber    string          `db:"order_number"`
	CustomerEmail  string          `db:"customer_email"`
	ChildName      string          `db:"child_name"`
	DoudouName     string          `db:"doudou_name"`
	AnimalType     string          `db:"animal_type"`
	AddressLine1   string          `db:"address_line1"`
	AddressLine2   string          `db:"address_line2"`
	PostalCode     string          `db:"postal_code"`
	City           string          `db:"city"`
	Country        string          `db:"country"`
	SheetCount     int             `db:"sheet_count"`
	Upsells        []string        `db:"upsells"`
	Notes          string          `db:"notes"`
	TotalAmount    decimal.Decimal `db:"total_amount"`
	SavingsAmount  decimal.Decimal `db:"savings_amount"`
	PaymentStatus  PaymentStatus   `db:"payment_status"`
	Status         OrderStatus     `db:"status"`
	PhotoURL       string          `db:"photo_url"`
	PayPalOrderID  string          `db:"paypal_order_id"`
	DiscountCodeID *uuid.UUID      `db:"discount_code_id"`
	CreatedAt      time.Time       `db:"created_at"`
	UpdatedAt      time.Time       `db:"updated_at"`
}

// OrderResponse is the flattened JSON shape returned to clients.
type OrderResponse struct {
	OrderNumber   string   `json:"orderNumber"`
	CustomerEmail string   `json:"customerEmail"`
	ChildName     string   `json:"childName"`
	DoudouName    string   `json:"doudouName"`
	AnimalType    string   `json:"animalType"`
	AddressLine1  string   `json:"addressLine1"`
	AddressLine2  string   `json:"addressLine2,omitempty"`
	PostalCode    string   `json:"postalCode"`
	City          string   `json:"city"`
	Country       string   `json:"country"`
	SheetCount    int      `json:"sheetCount"`
	Upsells       []string `json:"upsells"`
	TotalAmount   float64  `json:"totalAmount"`
	SavingsAmount float64  `json:"savingsAmount"`
	PaymentStatus string   `json:"paymentStatus"`
	Status        string   `json:"status"`
	PhotoURL      string   `json:"photoUrl,omitempty"`
	CreatedAt     string   `json:"createdAt"`
}

// ToResponse maps an order to its flattened JSON shape.
func (o *Order) ToResponse() *OrderResponse {
	total, _ := o.TotalAmount.Float64()
	savings, _ := o.SavingsAmount.Float64()
	upsells := o.Upsells
	if upsells == nil {
		upsells = []string{}
	}
	return &OrderResponse{
		OrderNumber:   o.OrderNumber,
		CustomerEmail: o.CustomerEmail,
		ChildName:     o.ChildName,
		DoudouName:    o.DoudouName,
		AnimalType:    o.AnimalType,
		AddressLine1:  o.AddressLine1,
		AddressLine2:  o.AddressLine2,
		PostalCode:    o.PostalCode,
		City:          o.City,
		Country:       o.Country,
		SheetCount:    o.SheetCount,
		Upsells:       upsells,
		TotalAmount:   total,
		SavingsAmount: savings,
		PaymentStatus: string(o.PaymentStatus),
		Status:        string(o.Status),
		PhotoURL:      o.PhotoURL,
		CreatedAt:     o.CreatedAt.Format(time.RFC3339),
	}
}

// CheckoutRequest is the checkout submission payload.
type CheckoutRequest struct {
	CustomerEmail string   `json:"customerEmail"`
	ChildName     string   `json:"childName"`
	DoudouName    string   `json:"doudouName"`
	AnimalType    string   `json:"animalType"`
	AddressLine1  string   `json:"addressLine1"`
	AddressLine2  string   `json:"addressLine2"`
	PostalCode    string   `json:"postalCode"`
	City          string   `json:"city"`
	Country       string   `json:"country"`
	SheetCount    int      `json:"sheetCount"`
	Upsells       []string `json:"upsells"`
	PhotoURL      string   `json:"photoUrl"`
	DiscountCode  string   `json:"discountCode"`
	ItemsTotal    float64  `json:"itemsTotal"`
}

// UpdateStatusRequest is the admin status update payload.
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// CaptureRequest confirms a PayPal payment after the buyer approves it.
type CaptureRequest struct {
	PayPalOrderID string `json:"paypalOrderId"`
}

// Doudou is a toy record derived from the order set, shown on the
// customer dashboard.
type Doudou struct {
	Name       string `json:"name"`
	AnimalType string `json:"animalType"`
	PhotoURL   string `json:"photoUrl,omitempty"`
}

// DashboardStats are the running totals shown on the customer dashboard.
type DashboardStats struct {
	TotalOrders  int     `json:"totalOrders"`
	TotalSpent   float64 `json:"totalSpent"`
	TotalSavings float64 `json:"totalSavings"`
}
