package models

import "time"

type Document struct {
	ID           int64      `json:"id"`
	EntityType   string     `json:"entity_type"`
	EntityID     int64      `json:"entity_id"`
	DocumentType string     `json:"document_type,omitempty"`
	FileName     string     `json:"file_name"`
	OriginalName string     `json:"original_name"`
	FilePath     string     `json:"-"`
	FileSize     int64      `json:"file_size"`
	MimeType     string     `json:"mime_type"`
	IsVerified   bool       `json:"is_verified"`
	VerifiedBy   string     `json:"verified_by,omitempty"`
	VerifiedAt   *time.Time `json:"verified_at,omitempty"`
	IsActive     bool       `json:"is_active"`
	UploadedAt   time.Time  `json:"uploaded_at"`
}

type ProfilePicture struct {
	ID           int64     `json:"id"`
	EntityType   string    `json:"entity_type"`
	EntityID     int64     `json:"entity_id"`
	FileName     string    `json:"file_name"`
	OriginalName string    `json:"original_name"`
	FilePath     string    `json:"-"`
	FileSize     int64     `json:"file_size"`
	MimeType     string    `json:"mime_type"`
	IsActive     bool      `json:"is_active"`
	UploadedAt   time.Time `json:"uploaded_at"`
}

type VerifyDocumentRequest struct {
	VerifiedBy string `json:"verified_by" validate:"required,max=100"`
}
