package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tagadou/backend/internal/models"
	"github.com/tagadou/backend/internal/secure"
	"go.uber.org/zap"
)

var (
	ErrFileTooLarge    = errors.New("file exceeds the maximum upload size")
	ErrUnsupportedType = errors.New("unsupported file type")
	ErrMissingToken    = errors.New("missing access token")
	ErrInvalidToken    = errors.New("invalid access token")
	ErrFileNotFound    = errors.New("file not found")
	ErrInvalidFileName = errors.New("invalid file name")
)

// MaxUploadSize is the upload cap: 10 MiB.
const MaxUploadSize = 10 << 20

// Accepted upload types and the extension stored for each.
var extensionByMIME = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

// Content types served on read, derived purely from the extension.
var contentTypeByExtension = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".webp": "image/webp",
}

const defaultContentType = "application/octet-stream"

// PhotoService handles photo uploads, signed access and metadata.
type PhotoService interface {
	Upload(ctx context.Context, file *multipart.FileHeader, orderID *uuid.UUID) (*models.Photo, string, error)
	Resolve(fileName, token string) (string, string, error)
	SecureURL(photoURL string) (string, error)
	List(ctx context.Context, orderID *uuid.UUID, limit, offset int) ([]*models.Photo, int, error)
	Delete(ctx context.Context, fileName string) (*models.Photo, error)
}

// PhotoServiceImpl implements PhotoService.
type PhotoServiceImpl struct {
	photoStorage PhotoStorage
	signer       *secure.Signer
	uploadDir    string
	logger       *zap.SugaredLogger
}

// NewPhotoService creates a new PhotoService storing files under
// uploadDir.
func NewPhotoService(photoStorage PhotoStorage, signer *secure.Signer, uploadDir string, logger *zap.SugaredLogger) *PhotoServiceImpl {
	return &PhotoServiceImpl{
		photoStorage: photoStorage,
		signer:       signer,
		uploadDir:    uploadDir,
		logger:       logger,
	}
}

// Upload validates the file, writes it under a generated unique name
// and records its metadata. Size and type are rejected before anything
// touches the disk. A metadata-write failure is logged but does not
/// fail the upload: the file is already safely stored.
func (s *PhotoServiceImpl) Upload(ctx context.Context, file *multipart.FileHeader, orderID *uuid.UUID) (*models.Photo, string, error) {
	if file.Size > MaxUploadSize {
		return nil, "", ErrFileTooLarge
	}

	mimeType := file.Header.Get("Content-Type")
	ext, ok := extensionByMIME[mimeType]
	if !ok {
		return nil, "", ErrUnsupportedType
	}

	fileName, err := generateFileName(ext)
	if err != nil {
		return nil, "", err
	}

	if err := s.writeFile(file, fileName); err != nil {
		return nil, "", err
	}

	photo := &models.Photo{
		FileName:     fileName,
		OriginalName: file.Filename,
		SizeBytes:    file.Size,
		MimeType:     mimeType,
		IsActive:     true,
		OrderID:      orderID,
	}

	if err := s.photoStorage.Create(ctx, photo); err != nil {
		s.logger.Errorw("failed to record photo metadata", "file_name", fileName, "error", err)
	}

	return photo, s.signer.URL(fileName), nil
}

func (s *PhotoServiceImpl) writeFile(file *multipart.FileHeader, fileName string) error {
	src, err := file.Open()
	if err != nil {
		return fmt.Errorf("failed to open upload: %w", err)
	}
	defer src.Close()

	if err := os.MkdirAll(s.uploadDir, 0o755); err != nil {
		return fmt.Errorf("failed to create upload directory: %w", err)
	}

	// O_EXCL: a name collision is treated as an error, not overwritten.
	dst, err := os.OpenFile(filepath.Join(s.uploadDir, fileName), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("failed to create upload file: %w", err)
	}
	defer dst.Close()

	// The declared size is checked above, but the stream is capped too
	// in case the header lies.
	written, err := io.Copy(dst, io.LimitReader(src, MaxUploadSize+1))
	if err != nil {
		os.Remove(dst.Name())
		return fmt.Errorf("failed to write upload: %w", err)
	}
	if written > MaxUploadSize {
		os.Remove(dst.Name())
		return ErrFileTooLarge
	}

	return nil
}

// Resolve checks the access token and returns the on-disk path and the
// content type to serve. The token is verified before the filesystem
// is touched.
func (s *PhotoServiceImpl) Resolve(fileName, token string) (string, string, error) {
	if token == "" {
		return "", "", ErrMissingToken
	}
	if !s.signer.Verify(fileName, token) {
		return "", "", ErrInvalidToken
	}

	if fileName == "" || filepath.Base(fileName) != fileName {
		return "", "", ErrInvalidFileName
	}

	fullPath := filepath.Join(s.uploadDir, fileName)
	if _, err := os.Stat(fullPath); err != nil {
		if os.IsNotExist(err) {
			return "", "", ErrFileNotFound
		}
		return "", "", fmt.Errorf("failed to stat file: %w", err)
	}

	contentType, ok := contentTypeByExtension[strings.ToLower(filepath.Ext(fileName))]
	if !ok {
		contentType = defaultContentType
	}

	return fullPath, contentType, nil
}

// SecureURL signs an access URL for an already uploaded photo,
// identified by any URL ending in its file name.
func (s *PhotoServiceImpl) SecureURL(photoURL string) (string, error) {
	parsed, err := url.Parse(photoURL)
	if err != nil {
		return "", ErrInvalidFileName
	}

	fileName := path.Base(parsed.Path)
	if fileName == "" || fileName == "." || fileName == "/" {
		return "", ErrInvalidFileName
	}

	return s.signer.URL(fileName), nil
}

// List returns active photo records with the total count.
func (s *PhotoServiceImpl) List(ctx context.Context, orderID *uuid.UUID, limit, offset int) ([]*models.Photo, int, error) {
	return s.photoStorage.List(ctx, orderID, limit, offset)
}

// Delete soft-deletes a photo record. The file stays on disk.
func (s *PhotoServiceImpl) Delete(ctx context.Context, fileName string) (*models.Photo, error) {
	if fileName == "" {
		return nil, ErrInvalidFileName
	}
	return s.photoStorage.Deactivate(ctx, fileName)
}

// generateFileName builds a name from a millisecond timestamp and 8
// random hex characters. Collisions are treated as negligible but not
// impossible; the writer refuses to overwrite.
func generateFileName(ext string) (string, error) {
	buf := make([]byte, 4)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate file name: %w", err)
	}
	return fmt.Sprintf("upload_%d_%s%s", time.Now().UnixMilli(), hex.EncodeToString(buf), ext), nil
}
