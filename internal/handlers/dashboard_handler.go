package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/tagadou/backend/internal/models"
	"github.com/tagadou/backend/internal/services"
	"go.uber.org/zap"
)

// DashboardHandler handles the customer dashboard route.
type DashboardHandler struct {
	dashboardService services.DashboardService
	logger           *zap.SugaredLogger
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(dashboardService services.DashboardService, logger *zap.SugaredLogger) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService, logger: logger}
}

// GetOrders handles GET /dashboard/orders?email=.
func (h *DashboardHandler) GetOrders(c echo.Context) error {
	email := c.QueryParam("email")
	if email == "" {
		return jsonError(c, http.StatusBadRequest, "Email requis")
	}

	dashboard, err := h.dashboardService.GetDashboard(c.Request().Context(), email)
	if err != nil {
		h.logger.Errorw("failed to build dashboard", "email", email, "error", err)
		return jsonError(c, http.StatusInternalServerError, "Erreur interne du serveur")
	}

	orders := make([]*models.OrderResponse, 0, len(dashboard.Orders))
	for _, o := range dashboard.Orders {
		orders = append(orders, o.ToResponse())
	}
	doudous := dashboard.Doudous
	if doudous == nil {
		doudous = []*models.Doudou{}
	}

	return c.JSON(http.StatusOK, map[string]any{
		"success": true,
		"orders":  orders,
		"doudous": doudous,
		"stats":   dashboard.Stats,
	})
}
