package handlers

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/tagadou/backend/internal/models"
	"github.com/tagadou/backend/internal/services"
	"github.com/tagadou/backend/internal/storage"
	"go.uber.org/zap"
)

// DiscountHandler handles discount validation, redemption and the
// admin discount management routes.
type DiscountHandler struct {
	discountService services.DiscountService
	logger          *zap.SugaredLogger
}

// NewDiscountHandler creates a new DiscountHandler.
func NewDiscountHandler(discountService services.DiscountService, logger *zap.SugaredLogger) *DiscountHandler {
	return &DiscountHandler{discountService: discountService, logger: logger}
}

// Validate handles POST /validate-discount.
func (h *DiscountHandler) Validate(c echo.Context) error {
	var req models.ValidateDiscountRequest
	if err := c.Bind(&req); err != nil {
		return jsonError(c, http.StatusBadRequest, "Format de requête invalide")
	}
	if req.Code == "" {
		return jsonError(c, http.StatusBadRequest, "Code requis")
	}
	if req.TotalAmount < 0 {
		return jsonError(c, http.StatusBadRequest, "Montant invalide")
	}

	total := decimal.NewFromFloat(req.TotalAmount)
	dc, amount, err := h.discountService.Validate(c.Request().Context(), req.Code, total)
	if err != nil {
		var minErr services.MinimumAmountError
		switch {
		case errors.Is(err, services.ErrCodeInvalid):
			return jsonError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, services.ErrCodeNotYetValid),
			errors.Is(err, services.ErrCodeExpired),
			errors.Is(err, services.ErrCodeUsageLimitReached),
			errors.As(err, &minErr):
			return jsonError(c, http.StatusBadRequest, err.Error())
		default:
			h.logger.Errorw("discount validation failed", "code", req.Code, "error", err)
			return jsonError(c, http.StatusInternalServerError, "Erreur interne du serveur")
		}
	}

	value, _ := dc.Value.Float64()
	discountAmount, _ := amount.Float64()

	return c.JSON(http.StatusOK, map[string]any{
		"success": true,
		"discountCode": models.DiscountCodeResponse{
			ID:             dc.ID.String(),
			Code:           dc.Code,
			DiscountType:   string(dc.DiscountType),
			Value:          value,
			DiscountAmount: discountAmount,
		},
	})
}

// Redeem handles PUT /validate-discount, incrementing the usage
// counter after a successful payment.
func (h *DiscountHandler) Redeem(c echo.Context) error {
	var req models.RedeemDiscountRequest
	if err := c.Bind(&req); err != nil {
		return jsonError(c, http.StatusBadRequest, "Format de requête invalide")
	}

	codeID, err := uuid.Parse(req.CodeID)
	if err != nil {
		return jsonError(c, http.StatusBadRequest, "Identifiant de code invalide")
	}

	if err := h.discountService.Redeem(c.Request().Context(), codeID); err != nil {
		switch {
		case errors.Is(err, storage.ErrDiscountNotFound):
			return jsonError(c, http.StatusNotFound, "Code de réduction non trouvé")
		case errors.Is(err, storage.ErrUsageLimitReached):
			return jsonError(c, http.StatusConflict, "Limite d'utilisation du code atteinte")
		default:
			h.logger.Errorw("discount redemption failed", "code_id", codeID, "error", err)
			return jsonError(c, http.StatusInternalServerError, "Erreur interne du serveur")
		}
	}

	return c.JSON(http.StatusOK, map[string]any{"success": true})
}

// Create handles POST /admin/discount-codes.
func (h *DiscountHandler) Create(c echo.Context) error {
	var req models.CreateDiscountCodeRequest
	if err := c.Bind(&req); err != nil {
		return jsonError(c, http.StatusBadRequest, "Format de requête invalide")
	}

	dc, err := h.discountService.Create(c.Request().Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidDiscountInput):
			return jsonError(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, storage.ErrDiscountExists):
			return jsonError(c, http.StatusConflict, "Ce code existe déjà")
		default:
			h.logger.Errorw("failed to create discount code", "code", req.Code, "error", err)
			return jsonError(c, http.StatusInternalServerError, "Erreur interne du serveur")
		}
	}

	return c.JSON(http.StatusCreated, map[string]any{
		"success":      true,
		"discountCode": discountToResponse(dc),
	})
}

// List handles GET /admin/discount-codes.
func (h *DiscountHandler) List(c echo.Context) error {
	codes, err := h.discountService.GetAll(c.Request().Context())
	if err != nil {
		h.logger.Errorw("failed to list discount codes", "error", err)
		return jsonError(c, http.StatusInternalServerError, "Erreur interne du serveur")
	}

	response := make([]map[string]any, 0, len(codes))
	for _, dc := range codes {
		response = append(response, discountToResponse(dc))
	}

	return c.JSON(http.StatusOK, map[string]any{
		"success":       true,
		"discountCodes": response,
	})
}

// SetActive handles PATCH /admin/discount-codes/:id.
func (h *DiscountHandler) SetActive(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return jsonError(c, http.StatusBadRequest, "Identifiant de code invalide")
	}

	var req models.SetDiscountActiveRequest
	if err := c.Bind(&req); err != nil {
		return jsonError(c, http.StatusBadRequest, "Format de requête invalide")
	}

	if err := h.discountService.SetActive(c.Request().Context(), id, req.IsActive); err != nil {
		if errors.Is(err, storage.ErrDiscountNotFound) {
			return jsonError(c, http.StatusNotFound, "Code de réduction non trouvé")
		}
		h.logger.Errorw("failed to update discount code", "code_id", id, "error", err)
		return jsonError(c, http.StatusInternalServerError, "Erreur interne du serveur")
	}

	return c.JSON(http.StatusOK, map[string]any{"success": true})
}

func discountToResponse(dc *models.DiscountCode) map[string]any {
	value, _ := dc.Value.Float64()
	minimum, _ := dc.MinimumAmount.Float64()
	resp := map[string]any{
		"id":            dc.ID.String(),
		"code":          dc.Code,
		"discountType":  string(dc.DiscountType),
		"value":         value,
		"minimumAmount": minimum,
		"validFrom":     dc.ValidFrom,
		"usedCount":     dc.UsedCount,
		"isActive":      dc.IsActive,
	}
	if dc.ValidUntil != nil {
		resp["validUntil"] = *dc.ValidUntil
	}
	if dc.UsageLimit != nil {
		resp["usageLimit"] = *dc.UsageLimit
	}
	return resp
}
