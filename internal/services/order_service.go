package services

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"net/mail"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	mailclient "github.com/tagadou/backend/internal/mail"
	"github.com/tagadou/backend/internal/models"
	"github.com/tagadou/backend/internal/payment"
	"github.com/tagadou/backend/internal/shipping"
	"github.com/tagadou/backend/internal/storage"
	"go.uber.org/zap"
)

var (
	ErrInvalidCheckout = errors.New("invalid checkout request")
	ErrInvalidStatus   = errors.New("invalid order status")
)

const orderNumberAttempts = 3

// OrderService covers checkout, order reads and the admin status
// update.
type OrderService interface {
	Checkout(ctx context.Context, req *models.CheckoutRequest) (*models.Order, string, error)
	GetByNumber(ctx context.Context, number string) (*models.Order, error)
	GetAll(ctx context.Context) ([]*models.Order, error)
	UpdateStatus(ctx context.Context, orderID uuid.UUID, status string) (string, error)
	CapturePayment(ctx context.Context, paypalOrderID string) (*models.Order, error)
}

// OrderServiceImpl implements OrderService.
type OrderServiceImpl struct {
	orderStorage    OrderStorage
	discountService DiscountService
	shippingStore   ShippingStore
	checkout        payment.Checkout
	mailer          mailclient.Sender
	logger          *zap.SugaredLogger
}

// NewOrderService creates a new OrderService.
func NewOrderService(
	orderStorage OrderStorage,
	discountService DiscountService,
	shippingStore ShippingStore,
	checkout payment.Checkout,
	mailer mailclient.Sender,
	logger *zap.SugaredLogger,
) *OrderServiceImpl {
	return &OrderServiceImpl{
		orderStorage:    orderStorage,
		discountService: discountService,
		shippingStore:   shippingStore,
		checkout:        checkout,
		mailer:          mailer,
		logger:          logger,
	}
}

// Checkout persists a new order with shipping and discount applied and
// creates the matching PayPal order. It returns the order and the
// PayPal approval URL the buyer is redirected to.
func (s *OrderServiceImpl) Checkout(ctx context.Context, req *models.CheckoutRequest) (*models.Order, string, error) {
	if err := validateCheckout(req); err != nil {
		return nil, "", err
	}

	settings, err := s.shippingStore.Load()
	if err != nil {
		return nil, "", fmt.Errorf("failed to load shipping settings: %w", err)
	}
	tariff := shipping.SelectTariff(settings, req.Upsells)

	itemsTotal := decimal.NewFromFloat(req.ItemsTotal)
	total := itemsTotal.Add(decimal.NewFromFloat(tariff.Price))

	savings := decimal.Zero
	var discountCodeID *uuid.UUID
	if req.DiscountCode != "" {
		dc, amount, err := s.discountService.Validate(ctx, req.DiscountCode, itemsTotal)
		if err != nil {
			return nil, "", err
		}
		total = total.Sub(amount)
		savings = amount
		discountCodeID = &dc.ID
	}

	order := &models.Order{
		ID:             uuid.New(),
		CustomerEmail:  req.CustomerEmail,
		ChildName:      req.ChildName,
		DoudouName:     req.DoudouName,
		AnimalType:     req.AnimalType,
		AddressLine1:   req.AddressLine1,
		AddressLine2:   req.AddressLine2,
		PostalCode:     req.PostalCode,
		City:           req.City,
		Country:        req.Country,
		SheetCount:     req.SheetCount,
		Upsells:        req.Upsells,
		TotalAmount:    total,
		SavingsAmount:  savings,
		PaymentStatus:  models.PaymentStatusPending,
		Status:         models.OrderStatusNew,
		PhotoURL:       req.PhotoURL,
		DiscountCodeID: discountCodeID,
	}

	if err := s.createWithFreshNumber(ctx, order); err != nil {
		return nil, "", err
	}

	paypalID, approvalURL, err := s.checkout.CreateOrder(ctx, total, "EUR", order.OrderNumber)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create payment order: %w", err)
	}
	order.PayPalOrderID = paypalID

	if err := s.orderStorage.SetPayPalOrderID(ctx, order.ID, paypalID); err != nil {
		return nil, "", fmt.Errorf("failed to attach payment order: %w", err)
	}

	return order, approvalURL, nil
}

// createWithFreshNumber inserts the order, regenerating the order
// number on the rare collision of the random suffix.
func (s *OrderServiceImpl) createWithFreshNumber(ctx context.Context, order *models.Order) error {
	for attempt := 0; attempt < orderNumberAttempts; attempt++ {
		number, err := generateOrderNumber()
		if err != nil {
			return err
		}
		order.OrderNumber = number

		err = s.orderStorage.Create(ctx, order)
		if err == nil {
			return nil
		}
		if !errors.Is(err, storage.ErrOrderNumberExists) {
			return err
		}
		s.logger.Warnw("order number collision, retrying", "order_number", number)
	}
	return fmt.Errorf("failed to generate a unique order number after %d attempts", orderNumberAttempts)
}

// GetByNumber returns one order by its human-facing order number.
func (s *OrderServiceImpl) GetByNumber(ctx context.Context, number string) (*models.Order, error) {
	return s.orderStorage.GetByNumber(ctx, number)
}

// GetAll returns every order for the admin listing.
func (s *OrderServiceImpl) GetAll(ctx context.Context) ([]*models.Order, error) {
	return s.orderStorage.GetAll(ctx)
}

// UpdateStatus applies an admin status transition. The privileged path
// runs first; on any failure there the plain update path is tried. The
// returned note names the path that succeeded.
func (s *OrderServiceImpl) UpdateStatus(ctx context.Context, orderID uuid.UUID, status string) (string, error) {
	orderStatus := models.OrderStatus(status)
	if !orderStatus.Valid() {
		return "", ErrInvalidStatus
	}

	privErr := s.orderStorage.UpdateStatusPrivileged(ctx, orderID, orderStatus)
	if privErr == nil {
		return "updated via privileged path", nil
	}
	if errors.Is(privErr, storage.ErrOrderNotFound) {
		return "", privErr
	}
	s.logger.Warnw("privileged status update failed, trying fallback",
		"order_id", orderID, "status", status, "error", privErr)

	if err := s.orderStorage.UpdateStatus(ctx, orderID, orderStatus); err != nil {
		return "", err
	}
	return "updated via fallback path", nil
}

// CapturePayment captures the approved PayPal order, marks the local
// order paid and redeems its discount code if one was applied. A
// failed redemption is logged but does not fail the capture: the
// payment already went through.
func (s *OrderServiceImpl) CapturePayment(ctx context.Context, paypalOrderID string) (*models.Order, error) {
	if err := s.checkout.CaptureOrder(ctx, paypalOrderID); err != nil {
		return nil, err
	}

	order, err := s.orderStorage.MarkPaid(ctx, paypalOrderID)
	if err != nil {
		return nil, err
	}

	if order.DiscountCodeID != nil {
		if err := s.discountService.Redeem(ctx, *order.DiscountCodeID); err != nil {
			s.logger.Errorw("failed to redeem discount code after capture",
				"order_number", order.OrderNumber, "discount_code_id", *order.DiscountCodeID, "error", err)
		}
	}

	s.sendConfirmationEmail(ctx, order)

	return order, nil
}

// sendConfirmationEmail sends the order confirmation. Best effort: the
// order is already paid, so a provider failure is only logged.
func (s *OrderServiceImpl) sendConfirmationEmail(ctx context.Context, order *models.Order) {
	total, _ := order.TotalAmount.Float64()
	subject := fmt.Sprintf("Confirmation de commande %s", order.OrderNumber)
	html := fmt.Sprintf(
		"<h2>Merci pour votre commande !</h2>"+
			"<p>Votre commande <strong>%s</strong> pour le doudou de %s est confirmée.</p>"+
			"<p>Montant réglé : %.2f €</p>",
		order.OrderNumber, order.ChildName, total)

	if _, err := s.mailer.Send(ctx, []string{order.CustomerEmail}, subject, html); err != nil {
		s.logger.Errorw("failed to send confirmation email",
			"order_number", order.OrderNumber, "error", err)
	}
}

func validateCheckout(req *models.CheckoutRequest) error {
	if _, err := mail.ParseAddress(req.CustomerEmail); err != nil {
		return fmt.Errorf("%w: valid customer email is required", ErrInvalidCheckout)
	}
	if req.ChildName == "" {
		return fmt.Errorf("%w: child name is required", ErrInvalidCheckout)
	}
	if req.DoudouName == "" {
		return fmt.Errorf("%w: doudou name is required", ErrInvalidCheckout)
	}
	if req.AddressLine1 == "" || req.PostalCode == "" || req.City == "" {
		return fmt.Errorf("%w: shipping address is incomplete", ErrInvalidCheckout)
	}
	if req.SheetCount < 1 {
		return fmt.Errorf("%w: at least one sticker sheet is required", ErrInvalidCheckout)
	}
	if req.ItemsTotal <= 0 {
		return fmt.Errorf("%w: items total must be positive", ErrInvalidCheckout)
	}
	return nil
}

// generateOrderNumber produces a human-facing order number of the form
// TGD-00042.
func generateOrderNumber() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(100000))
	if err != nil {
		return "", fmt.Errorf("failed to generate order number: %w", err)
	}
	return fmt.Sprintf("TGD-%05d", n.Int64()), nil
}
