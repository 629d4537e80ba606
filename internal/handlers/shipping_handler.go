package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/tagadou/backend/internal/models"
	"github.com/tagadou/backend/internal/services"
	"go.uber.org/zap"
)

// ShippingHandler serves the shipping tariffs and lets an admin update
// them. The server-side file is the single source of truth; clients
// treat their copy as a read-through cache.
type ShippingHandler struct {
	store  services.ShippingStore
	logger *zap.SugaredLogger
}

// NewShippingHandler creates a new ShippingHandler.
func NewShippingHandler(store services.ShippingStore, logger *zap.SugaredLogger) *ShippingHandler {
	return &ShippingHandler{store: store, logger: logger}
}

// Get handles GET /shipping/settings.
func (h *ShippingHandler) Get(c echo.Context) error {
	settings, err := h.store.Load()
	if err != nil {
		h.logger.Errorw("failed to load shipping settings", "error", err)
		return jsonError(c, http.StatusInternalServerError, "Erreur interne du serveur")
	}

	return c.JSON(http.StatusOK, map[string]any{
		"success":  true,
		"settings": settings,
	})
}

// Update handles PUT /admin/shipping/settings.
func (h *ShippingHandler) Update(c echo.Context) error {
	var settings models.ShippingSettings
	if err := c.Bind(&settings); err != nil {
		return jsonError(c, http.StatusBadRequest, "Format de requête invalide")
	}

	if settings.Tarif1.Price <= 0 || settings.Tarif2.Price <= 0 {
		return jsonError(c, http.StatusBadRequest, "Les tarifs doivent être positifs")
	}
	if settings.Tarif1.Name == "" || settings.Tarif2.Name == "" {
		return jsonError(c, http.StatusBadRequest, "Le nom des tarifs est requis")
	}

	if err := h.store.Save(settings); err != nil {
		h.logger.Errorw("failed to save shipping settings", "error", err)
		return jsonError(c, http.StatusInternalServerError, "Erreur interne du serveur")
	}

	return c.JSON(http.StatusOK, map[string]any{
		"success":  true,
		"settings": settings,
	})
}
