package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/tagadou/backend/internal/models"
	"github.com/tagadou/backend/internal/services"
	"github.com/tagadou/backend/internal/storage"
	"go.uber.org/zap"
)

// AdminHandler handles the admin order routes.
type AdminHandler struct {
	orderService services.OrderService
	logger       *zap.SugaredLogger
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(orderService services.OrderService, logger *zap.SugaredLogger) *AdminHandler {
	return &AdminHandler{orderService: orderService, logger: logger}
}

// ListOrders handles GET /admin/orders.
func (h *AdminHandler) ListOrders(c echo.Context) error {
	orders, err := h.orderService.GetAll(c.Request().Context())
	if err != nil {
		h.logger.Errorw("failed to list orders", "error", err)
		return jsonError(c, http.StatusInternalServerError, "Erreur interne du serveur")
	}

	response := make([]*models.OrderResponse, 0, len(orders))
	for _, o := range orders {
		response = append(response, o.ToResponse())
	}

	return c.JSON(http.StatusOK, map[string]any{
		"success":   true,
		"orders":    response,
		"count":     len(response),
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

// UpdateOrderStatus handles PATCH /admin/orders/:orderId/status.
func (h *AdminHandler) UpdateOrderStatus(c echo.Context) error {
	orderID, err := uuid.Parse(c.Param("orderId"))
	if err != nil {
		return jsonError(c, http.StatusBadRequest, "Identifiant de commande invalide")
	}

	var req models.UpdateStatusRequest
	if err := c.Bind(&req); err != nil {
		return jsonError(c, http.StatusBadRequest, "Format de requête invalide")
	}

	note, err := h.orderService.UpdateStatus(c.Request().Context(), orderID, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidStatus):
			return jsonError(c, http.StatusBadRequest, "Statut invalide")
		case errors.Is(err, storage.ErrOrderNotFound):
			return jsonError(c, http.StatusNotFound, "Commande non trouvée")
		case errors.Is(err, storage.ErrPermissionDenied):
			return jsonError(c, http.StatusForbidden, "Permission refusée")
		default:
			h.logger.Errorw("failed to update order status", "order_id", orderID, "error", err)
			return jsonError(c, http.StatusInternalServerError, "Erreur interne du serveur")
		}
	}

	return c.JSON(http.StatusOK, map[string]any{
		"success": true,
		"data": map[string]any{
			"orderId": orderID,
			"status":  req.Status,
		},
		"note": note,
	})
}
