package handlers

import (
	"backoffice/app"
	"backoffice/models"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Extension → expected MIME type allow-list for uploads.
var allowedUploadTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".webp": "image/webp",
	".pdf":  "application/pdf",
}

var documentEntityTypes = map[string]bool{"client": true, "account": true}
var pictureEntityTypes = map[string]bool{"client": true, "shop": true, "account": true}

type storedUpload struct {
	FileName     string
	OriginalName string
	FilePath     string
	FileSize     int64
	MimeType     string
}

// saveUpload validates and persists a multipart file under the configured
// upload directory with a generated name, returning its stored metadata.
func saveUpload(c *fiber.Ctx, a *app.App, field string) (*storedUpload, error) {
	file, err := c.FormFile(field)
	if err != nil {
		return nil, fmt.Errorf("file is required")
	}

	if file.Size > a.Config.MaxUploadBytes {
		return nil, fmt.Errorf("file exceeds the %d byte limit", a.Config.MaxUploadBytes)
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	expectedMime, ok := allowedUploadTypes[ext]
	if !ok {
		return nil, fmt.Errorf("file type %s is not allowed", ext)
	}

	mimeType := file.Header.Get("Content-Type")
	if mimeType != expectedMime {
		return nil, fmt.Errorf("mime type %s does not match extension %s", mimeType, ext)
	}

	if err := os.MkdirAll(a.Config.UploadDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to prepare upload directory: %w", err)
	}

	storedName := uuid.New().String() + ext
	storedPath := filepath.Join(a.Config.UploadDir, storedName)
	if err := c.SaveFile(file, storedPath); err != nil {
		return nil, fmt.Errorf("failed to store file: %w", err)
	}

	return &storedUpload{
		FileName:     storedName,
		OriginalName: file.Filename,
		FilePath:     storedPath,
		FileSize:     file.Size,
		MimeType:     mimeType,
	}, nil
}

// removeStoredFile cleans up a saved upload whose metadata row never made it
// into the database.
func removeStoredFile(a *app.App, path string) {
	if err := os.Remove(path); err != nil {
		a.Logger.Warn("stored file cleanup failed", "path", path, "error", err)
	}
}

// UploadDocument stores a document file and its metadata for a client or
// account.
func UploadDocument(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		entityType := c.Params("entityType")
		if !documentEntityTypes[entityType] {
			return badRequest(c, "entity type must be client or account")
		}
		entityID, err := parseID(c, "entityId")
		if err != nil {
			return badRequest(c, err.Error())
		}

		upload, err := saveUpload(c, a, "file")
		if err != nil {
			return badRequest(c, err.Error())
		}

		document, err := a.Documents.Create(&models.Document{
			EntityType:   entityType,
			EntityID:     entityID,
			DocumentType: c.FormValue("document_type"),
			FileName:     upload.FileName,
			OriginalName: upload.OriginalName,
			FilePath:     upload.FilePath,
			FileSize:     upload.FileSize,
			MimeType:     upload.MimeType,
		})
		if err != nil {
			removeStoredFile(a, upload.FilePath)
			return serverErrorWithDetails(c, "Failed to save document", err)
		}

		return created(c, document, "Document uploaded successfully")
	}
}

func GetDocuments(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		entityType := c.Params("entityType")
		if !documentEntityTypes[entityType] {
			return badRequest(c, "entity type must be client or account")
		}
		entityID, err := parseID(c, "entityId")
		if err != nil {
			return badRequest(c, err.Error())
		}

		documents, err := a.Documents.GetByEntity(entityType, entityID)
		if err != nil {
			return serverErrorWithDetails(c, "Failed to fetch documents", err)
		}

		return successWithCount(c, documents, len(documents))
	}
}

func DownloadDocument(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c, "id")
		if err != nil {
			return badRequest(c, err.Error())
		}

		document, err := a.Documents.GetByID(id)
		if err != nil {
			return serverErrorWithDetails(c, "Failed to fetch document", err)
		}
		if document == nil || !document.IsActive {
			return notFound(c, "Document not found")
		}

		return c.Download(document.FilePath, document.OriginalName)
	}
}

func VerifyDocument(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c, "id")
		if err != nil {
			return badRequest(c, err.Error())
		}

		var req models.VerifyDocumentRequest
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "Invalid request body")
		}
		if err := a.Validator.Validate(&req); err != nil {
			return validationError(c, err)
		}

		existing, err := a.Documents.GetByID(id)
		if err != nil {
			return serverErrorWithDetails(c, "Failed to fetch document", err)
		}
		if existing == nil || !existing.IsActive {
			return notFound(c, "Document not found")
		}

		document, err := a.Documents.Verify(id, req.VerifiedBy)
		if err != nil {
			return serverErrorWithDetails(c, "Failed to verify document", err)
		}

		return successWithMessage(c, document, "Document verified successfully")
	}
}

// DeleteDocument deactivates the metadata row; the file stays on disk.
func DeleteDocument(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c, "id")
		if err != nil {
			return badRequest(c, err.Error())
		}

		existing, err := a.Documents.GetByID(id)
		if err != nil {
			return serverErrorWithDetails(c, "Failed to fetch document", err)
		}
		if existing == nil || !existing.IsActive {
			return notFound(c, "Document not found")
		}

		if err := a.Documents.Deactivate(id); err != nil {
			return serverErrorWithDetails(c, "Failed to delete document", err)
		}

		return successWithMessage(c, nil, "Document deleted successfully")
	}
}

// UploadProfilePicture replaces the entity's active picture.
func UploadProfilePicture(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		entityType := c.Params("entityType")
		if !pictureEntityTypes[entityType] {
			return badRequest(c, "entity type must be client, shop or account")
		}
		entityID, err := parseID(c, "entityId")
		if err != nil {
			return badRequest(c, err.Error())
		}

		upload, err := saveUpload(c, a, "file")
		if err != nil {
			return badRequest(c, err.Error())
		}
		if upload.MimeType == "application/pdf" {
			removeStoredFile(a, upload.FilePath)
			return badRequest(c, "profile pictures must be images")
		}

		picture, err := a.ProfilePictures.SetForEntity(&models.ProfilePicture{
			EntityType:   entityType,
			EntityID:     entityID,
			FileName:     upload.FileName,
			OriginalName: upload.OriginalName,
			FilePath:     upload.FilePath,
			FileSize:     upload.FileSize,
			MimeType:     upload.MimeType,
		})
		if err != nil {
			removeStoredFile(a, upload.FilePath)
			return serverErrorWithDetails(c, "Failed to save profile picture", err)
		}

		return created(c, picture, "Profile picture uploaded successfully")
	}
}

func GetProfilePicture(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		entityType := c.Params("entityType")
		if !pictureEntityTypes[entityType] {
			return badRequest(c, "entity type must be client, shop or account")
		}
		entityID, err := parseID(c, "entityId")
		if err != nil {
			return badRequest(c, err.Error())
		}

		picture, err := a.ProfilePictures.GetActiveForEntity(entityType, entityID)
		if err != nil {
			return serverErrorWithDetails(c, "Failed to fetch profile picture", err)
		}
		if picture == nil {
			return notFound(c, "Profile picture not found")
		}

		return success(c, picture)
	}
}

func DeleteProfilePicture(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c, "id")
		if err != nil {
			return badRequest(c, err.Error())
		}

		existing, err := a.ProfilePictures.GetByID(id)
		if err != nil {
			return serverErrorWithDetails(c, "Failed to fetch profile picture", err)
		}
		if existing == nil || !existing.IsActive {
			return notFound(c, "Profile picture not found")
		}

		if err := a.ProfilePictures.Deactivate(id); err != nil {
			return serverErrorWithDetails(c, "Failed to delete profile picture", err)
		}

		return successWithMessage(c, nil, "Profile picture deleted successfully")
	}
}
