package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/tagadou/backend/internal/models"
	"github.com/tagadou/backend/internal/services"
	"github.com/tagadou/backend/internal/storage"
	"go.uber.org/zap"
)

// OrderHandler handles the public order routes.
type OrderHandler struct {
	orderService services.OrderService
	logger       *zap.SugaredLogger
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(orderService services.OrderService, logger *zap.SugaredLogger) *OrderHandler {
	return &OrderHandler{orderService: orderService, logger: logger}
}

// orderDetailResponse flattens the order fields at the top level of
// the JSON body.
type orderDetailResponse struct {
	Success bool `json:"success"`
	*models.OrderResponse
}

// Checkout handles POST /orders.
func (h *OrderHandler) Checkout(c echo.Context) error {
	var req models.CheckoutRequest
	if err := c.Bind(&req); err != nil {
		return jsonError(c, http.StatusBadRequest, "Format de requête invalide")
	}

	order, approvalURL, err := h.orderService.Checkout(c.Request().Context(), &req)
	if err != nil {
		if isCheckoutValidationError(err) {
			return jsonError(c, http.StatusBadRequest, err.Error())
		}
		h.logger.Errorw("checkout failed", "email", req.CustomerEmail, "error", err)
		return jsonError(c, http.StatusInternalServerError, "Erreur interne du serveur")
	}

	return c.JSON(http.StatusCreated, map[string]any{
		"success":     true,
		"order":       order.ToResponse(),
		"approvalUrl": approvalURL,
	})
}

// GetByNumber handles GET /orders/:orderNumber.
func (h *OrderHandler) GetByNumber(c echo.Context) error {
	number := c.Param("orderNumber")

	order, err := h.orderService.GetByNumber(c.Request().Context(), number)
	if err != nil {
		if errors.Is(err, storage.ErrOrderNotFound) {
			return jsonError(c, http.StatusNotFound, "Commande non trouvée")
		}
		h.logger.Errorw("failed to get order", "order_number", number, "error", err)
		return jsonError(c, http.StatusInternalServerError, "Erreur interne du serveur")
	}

	return c.JSON(http.StatusOK, orderDetailResponse{
		Success:       true,
		OrderResponse: order.ToResponse(),
	})
}

// Capture handles POST /orders/capture, confirming a PayPal payment
// after the buyer approves it.
func (h *OrderHandler) Capture(c echo.Context) error {
	var req models.CaptureRequest
	if err := c.Bind(&req); err != nil {
		return jsonError(c, http.StatusBadRequest, "Format de requête invalide")
	}
	if req.PayPalOrderID == "" {
		return jsonError(c, http.StatusBadRequest, "Identifiant PayPal requis")
	}

	order, err := h.orderService.CapturePayment(c.Request().Context(), req.PayPalOrderID)
	if err != nil {
		if errors.Is(err, storage.ErrOrderNotFound) {
			return jsonError(c, http.StatusNotFound, "Commande non trouvée")
		}
		h.logger.Errorw("payment capture failed", "paypal_order_id", req.PayPalOrderID, "error", err)
		return jsonError(c, http.StatusInternalServerError, "Échec de la confirmation du paiement")
	}

	return c.JSON(http.StatusOK, map[string]any{
		"success": true,
		"order":   order.ToResponse(),
	})
}

// isCheckoutValidationError reports whether the error is the caller's
// fault: a malformed checkout or a rejected discount code.
func isCheckoutValidationError(err error) bool {
	var minErr services.MinimumAmountError
	return errors.Is(err, services.ErrInvalidCheckout) ||
		errors.Is(err, services.ErrCodeInvalid) ||
		errors.Is(err, services.ErrCodeNotYetValid) ||
		errors.Is(err, services.ErrCodeExpired) ||
		errors.Is(err, services.ErrCodeUsageLimitReached) ||
		errors.As(err, &minErr)
}
