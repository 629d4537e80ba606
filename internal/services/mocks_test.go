package services

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/tagadou/backend/internal/models"
)

type mockCheckout struct {
	CreateOrderFunc  func(ctx context.Context, amount decimal.Decimal, currency, reference string) (string, string, error)
	CaptureOrderFunc func(ctx context.Context, paypalOrderID string) error
}

func (m *mockCheckout) CreateOrder(ctx context.Context, amount decimal.Decimal, currency, reference string) (string, string, error) {
	if m.CreateOrderFunc != nil {
		return m.CreateOrderFunc(ctx, amount, currency, reference)
	}
	return "PAYPAL-ID", "https://paypal.test/approve", nil
}

func (m *mockCheckout) CaptureOrder(ctx context.Context, paypalOrderID string) error {
	if m.CaptureOrderFunc != nil {
		return m.CaptureOrderFunc(ctx, paypalOrderID)
	}
	return nil
}

type mockMailer struct {
	SendFunc func(ctx context.Context, to []string, subject, html string) (string, error)
}

func (m *mockMailer) Send(ctx context.Context, to []string, subject, html string) (string, error) {
	if m.SendFunc != nil {
		return m.SendFunc(ctx, to, subject, html)
	}
	return "email-id", nil
}

type mockShippingStore struct {
	LoadFunc func() (models.ShippingSettings, error)
	SaveFunc func(settings models.ShippingSettings) error
}

func (m *mockShippingStore) Load() (models.ShippingSettings, error) {
	if m.LoadFunc != nil {
		return m.LoadFunc()
	}
	return models.DefaultShippingSettings(), nil
}

func (m *mockShippingStore) Save(settings models.ShippingSettings) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(settings)
	}
	return nil
}
