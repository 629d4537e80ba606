package models

import (
	"time"

	"github.com/google/uuid"
)

// Photo is the metadata record of an uploaded image. The file itself
// lives on disk under the generated FileName. Deleting a photo only
// clears IsActive; the file is never removed.
type Photo struct {
	FileName     string     `db:"file_name"`
	OriginalName string     `db:"original_name"`
	SizeBytes    int64      `db:"size_bytes"`
	MimeType     string     `db:"mime_type"`
	IsActive     bool       `db:"is_active"`
	OrderID      *uuid.UUID `db:"order_id"`
	CreatedAt    time.Time  `db:"created_at"`
}

// PhotoResponse is the JSON shape of a photo record.
type PhotoResponse struct {
	FileName     string `json:"fileName"`
	OriginalName string `json:"originalName"`
	FileSize     int64  `json:"fileSize"`
	FileType     string `json:"fileType"`
	IsActive     bool   `json:"isActive"`
	OrderID      string `json:"orderId,omitempty"`
	CreatedAt    string `json:"createdAt"`
}

// ToResponse maps a photo to its JSON shape.
func (p *Photo) ToResponse() *PhotoResponse {
	resp := &PhotoResponse{
		FileName:     p.FileName,
		OriginalName: p.OriginalName,
		FileSize:     p.SizeBytes,
		FileType:     p.MimeType,
		IsActive:     p.IsActive,
		CreatedAt:    p.CreatedAt.Format(time.RFC3339),
	}
	if p.OrderID != nil {
		resp.OrderID = p.OrderID.String()
	}
	return resp
}

// DeletePhotoRequest identifies the photo to soft-delete.
type DeletePhotoRequest struct {
	FileName string `json:"filename"`
}

// SecureURLRequest asks for a signed access URL for an already
// uploaded photo.
type SecureURLRequest struct {
	PhotoURL string `json:"photoUrl"`
}
