package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/tagadou/backend/internal/models"
	"github.com/tagadou/backend/internal/services"
	"go.uber.org/zap"
)

// ContactHandler handles the contact form route.
type ContactHandler struct {
	contactService services.ContactService
	logger         *zap.SugaredLogger
}

// NewContactHandler creates a new ContactHandler.
func NewContactHandler(contactService services.ContactService, logger *zap.SugaredLogger) *ContactHandler {
	return &ContactHandler{contactService: contactService, logger: logger}
}

// Send handles POST /contact.
func (h *ContactHandler) Send(c echo.Context) error {
	var req models.ContactRequest
	if err := c.Bind(&req); err != nil {
		return jsonError(c, http.StatusBadRequest, "Format de requête invalide")
	}

	emailID, err := h.contactService.Send(c.Request().Context(), &req)
	if err != nil {
		if errors.Is(err, services.ErrInvalidContact) {
			return jsonError(c, http.StatusBadRequest, err.Error())
		}
		h.logger.Errorw("failed to send contact message", "email", req.Email, "error", err)
		return jsonError(c, http.StatusInternalServerError, "Échec de l'envoi du message")
	}

	return c.JSON(http.StatusOK, map[string]any{
		"success": true,
		"emailId": emailID,
	})
}
