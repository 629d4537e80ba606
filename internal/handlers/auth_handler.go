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

// AuthHandler handles login and password resets.
type AuthHandler struct {
	userService services.UserService
	logger      *zap.SugaredLogger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(userService services.UserService, logger *zap.SugaredLogger) *AuthHandler {
	return &AuthHandler{userService: userService, logger: logger}
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c echo.Context) error {
	var req models.LoginRequest
	if err := c.Bind(&req); err != nil {
		return jsonError(c, http.StatusBadRequest, "Format de requête invalide")
	}

	user, token, err := h.userService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrEmptyCredentials) {
			return jsonError(c, http.StatusBadRequest, "Email et mot de passe requis")
		}
		if errors.Is(err, services.ErrInvalidCredentials) {
			return jsonError(c, http.StatusUnauthorized, "Email ou mot de passe incorrect")
		}
		h.logger.Errorw("login failed", "email", req.Email, "error", err)
		return jsonError(c, http.StatusInternalServerError, "Erreur interne du serveur")
	}

	setAuthToken(c, token)

	return c.JSON(http.StatusOK, map[string]any{
		"success": true,
		"user":    user,
	})
}

// ResetPassword handles POST /auth/reset-password.
func (h *AuthHandler) ResetPassword(c echo.Context) error {
	var req models.ResetPasswordRequest
	if err := c.Bind(&req); err != nil {
		return jsonError(c, http.StatusBadRequest, "Format de requête invalide")
	}
	if req.Email == "" {
		return jsonError(c, http.StatusBadRequest, "Email requis")
	}

	tempPassword, err := h.userService.ResetPassword(c.Request().Context(), req.Email)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return jsonError(c, http.StatusNotFound, "Utilisateur non trouvé")
		}
		h.logger.Errorw("password reset failed", "email", req.Email, "error", err)
		return jsonError(c, http.StatusInternalServerError, "Erreur interne du serveur")
	}

	return c.JSON(http.StatusOK, map[string]any{
		"success":           true,
		"temporaryPassword": tempPassword,
		"warning":           "Mot de passe temporaire exposé dans la réponse : réservé au développement",
	})
}

// setAuthToken stores the JWT in a cookie and the response header.
func setAuthToken(c echo.Context, token string) {
	cookie := &http.Cookie{
		Name:     "Authorization",
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
		MaxAge:   86400,
	}
	c.SetCookie(cookie)

	c.Response().Header().Set("Authorization", "Bearer "+token)
}
