package handlers

import (
	"errors"
	"net/http"
	"os"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/tagadou/backend/internal/models"
	"github.com/tagadou/backend/internal/services"
	"github.com/tagadou/backend/internal/storage"
	"go.uber.org/zap"
)

// PhotoHandler handles photo upload, listing, soft delete and the
// signed access route.
type PhotoHandler struct {
	photoService services.PhotoService
	logger       *zap.SugaredLogger
}

// NewPhotoHandler creates a new PhotoHandler.
func NewPhotoHandler(photoService services.PhotoService, logger *zap.SugaredLogger) *PhotoHandler {
	return &PhotoHandler{photoService: photoService, logger: logger}
}

// Upload handles POST /upload with a multipart "photo" field.
func (h *PhotoHandler) Upload(c echo.Context) error {
	file, err := c.FormFile("photo")
	if err != nil {
		return jsonError(c, http.StatusBadRequest, "Aucun fichier reçu")
	}

	var orderID *uuid.UUID
	if raw := c.FormValue("orderId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return jsonError(c, http.StatusBadRequest, "Identifiant de commande invalide")
		}
		orderID = &id
	}

	photo, secureURL, err := h.photoService.Upload(c.Request().Context(), file, orderID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrFileTooLarge):
			return jsonError(c, http.StatusBadRequest, "Le fichier dépasse la taille maximale de 10 Mo")
		case errors.Is(err, services.ErrUnsupportedType):
			return jsonError(c, http.StatusBadRequest, "Format de fichier non supporté (JPEG, PNG ou WebP attendu)")
		default:
			h.logger.Errorw("upload failed", "original_name", file.Filename, "error", err)
			return jsonError(c, http.StatusInternalServerError, "Échec de l'envoi du fichier")
		}
	}

	return c.JSON(http.StatusOK, map[string]any{
		"success":   true,
		"fileName":  photo.FileName,
		"secureUrl": secureURL,
		"fileSize":  photo.SizeBytes,
		"fileType":  photo.MimeType,
	})
}

// Serve handles GET /photos/:filename?token=, streaming the file after
// the token check.
func (h *PhotoHandler) Serve(c echo.Context) error {
	fileName := c.Param("filename")
	token := c.QueryParam("token")

	fullPath, contentType, err := h.photoService.Resolve(fileName, token)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrMissingToken):
			return jsonError(c, http.StatusUnauthorized, "Token d'accès requis")
		case errors.Is(err, services.ErrInvalidToken):
			return jsonError(c, http.StatusForbidden, "Token d'accès invalide")
		case errors.Is(err, services.ErrFileNotFound), errors.Is(err, services.ErrInvalidFileName):
			return jsonError(c, http.StatusNotFound, "Fichier non trouvé")
		default:
			h.logger.Errorw("failed to resolve photo", "file_name", fileName, "error", err)
			return jsonError(c, http.StatusInternalServerError, "Erreur interne du serveur")
		}
	}

	f, err := os.Open(fullPath)
	if err != nil {
		h.logger.Errorw("failed to open photo", "file_name", fileName, "error", err)
		return jsonError(c, http.StatusInternalServerError, "Erreur interne du serveur")
	}
	defer f.Close()

	return c.Stream(http.StatusOK, contentType, f)
}

// List handles GET /photos?orderId=&limit=&offset=.
func (h *PhotoHandler) List(c echo.Context) error {
	var orderID *uuid.UUID
	if raw := c.QueryParam("orderId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return jsonError(c, http.StatusBadRequest, "Identifiant de commande invalide")
		}
		orderID = &id
	}

	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	offset, _ := strconv.Atoi(c.QueryParam("offset"))

	photos, total, err := h.photoService.List(c.Request().Context(), orderID, limit, offset)
	if err != nil {
		h.logger.Errorw("failed to list photos", "error", err)
		return jsonError(c, http.StatusInternalServerError, "Erreur interne du serveur")
	}

	response := make([]*models.PhotoResponse, 0, len(photos))
	for _, p := range photos {
		response = append(response, p.ToResponse())
	}

	return c.JSON(http.StatusOK, map[string]any{
		"success": true,
		"photos":  response,
		"total":   total,
	})
}

// Delete handles DELETE /photos, soft-deleting one photo record.
func (h *PhotoHandler) Delete(c echo.Context) error {
	var req models.DeletePhotoRequest
	if err := c.Bind(&req); err != nil {
		return jsonError(c, http.StatusBadRequest, "Format de requête invalide")
	}
	if req.FileName == "" {
		return jsonError(c, http.StatusBadRequest, "Nom de fichier requis")
	}

	photo, err := h.photoService.Delete(c.Request().Context(), req.FileName)
	if err != nil {
		if errors.Is(err, storage.ErrPhotoNotFound) {
			return jsonError(c, http.StatusNotFound, "Photo non trouvée")
		}
		h.logger.Errorw("failed to delete photo", "file_name", req.FileName, "error", err)
		return jsonError(c, http.StatusInternalServerError, "Erreur interne du serveur")
	}

	return c.JSON(http.StatusOK, map[string]any{
		"success": true,
		"photo":   photo.ToResponse(),
	})
}

// SecureURL handles POST /secure-photo-url.
func (h *PhotoHandler) SecureURL(c echo.Context) error {
	var req models.SecureURLRequest
	if err := c.Bind(&req); err != nil {
		return jsonError(c, http.StatusBadRequest, "Format de requête invalide")
	}
	if req.PhotoURL == "" {
		return jsonError(c, http.StatusBadRequest, "URL de photo requise")
	}

	secureURL, err := h.photoService.SecureURL(req.PhotoURL)
	if err != nil {
		if errors.Is(err, services.ErrInvalidFileName) {
			return jsonError(c, http.StatusBadRequest, "URL de photo invalide")
		}
		h.logger.Errorw("failed to sign photo url", "photo_url", req.PhotoURL, "error", err)
		return jsonError(c, http.StatusInternalServerError, "Erreur interne du serveur")
	}

	return c.JSON(http.StatusOK, map[string]any{
		"secureUrl": secureURL,
	})
}
