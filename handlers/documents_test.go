package handlers

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"testing"

	"backoffice/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func doUpload(t *testing.T, fiberApp *fiber.App, path, filename, contentType string, content []byte) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, filename))
	header.Set("Content-Type", contentType)
	part, err := writer.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(fiber.MethodPost, path, &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := fiberApp.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func uploadedFileCount(t *testing.T, dir string) int {
	t.Helper()

	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return 0
	}
	require.NoError(t, err)
	return len(entries)
}

func TestDocumentUpload(t *testing.T) {
	fiberApp, application, cleanup := newTestServer(t)
	defer cleanup()

	client, err := application.Clients.Create(&models.Client{
		FirstName: "Doc",
		LastName:  "Owner",
		Status:    models.ClientStatusActive,
	})
	require.NoError(t, err)

	uploadPath := fmt.Sprintf("/api/documents/upload/client/%d", client.ID)

	t.Run("Oversize file is rejected", func(t *testing.T) {
		limit := application.Config.MaxUploadBytes
		application.Config.MaxUploadBytes = 64
		defer func() { application.Config.MaxUploadBytes = limit }()

		resp := doUpload(t, fiberApp, uploadPath, "big.png", "image/png", bytes.Repeat([]byte("x"), 128))
		require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

		var body struct {
			Success bool   `json:"success"`
			Error   string `json:"error"`
		}
		decodeBody(t, resp, &body)
		assert.False(t, body.Success)
		assert.Contains(t, body.Error, "byte limit")
		assert.Zero(t, uploadedFileCount(t, application.Config.UploadDir))
	})

	t.Run("Disallowed extension is rejected", func(t *testing.T) {
		resp := doUpload(t, fiberApp, uploadPath, "payload.exe", "application/octet-stream", []byte("MZ"))
		require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

		var body struct {
			Error string `json:"error"`
		}
		decodeBody(t, resp, &body)
		assert.Contains(t, body.Error, "not allowed")
		assert.Zero(t, uploadedFileCount(t, application.Config.UploadDir))
	})

	t.Run("Mime and extension mismatch is rejected", func(t *testing.T) {
		resp := doUpload(t, fiberApp, uploadPath, "photo.png", "image/jpeg", []byte("not a png"))
		require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

		var body struct {
			Error string `json:"error"`
		}
		decodeBody(t, resp, &body)
		assert.Contains(t, body.Error, "does not match")
		assert.Zero(t, uploadedFileCount(t, application.Config.UploadDir))
	})

	t.Run("Unknown entity type is rejected", func(t *testing.T) {
		resp := doUpload(t, fiberApp, "/api/documents/upload/shop/1", "scan.pdf", "application/pdf", []byte("%PDF-1.4"))
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
		resp.Body.Close()
	})

	t.Run("Upload and download round trip", func(t *testing.T) {
		content := []byte("%PDF-1.4 passbook scan")
		resp := doUpload(t, fiberApp, uploadPath, "passbook.pdf", "application/pdf", content)
		require.Equal(t, fiber.StatusCreated, resp.StatusCode)

		var body struct {
			Success bool            `json:"success"`
			Data    models.Document `json:"data"`
		}
		decodeBody(t, resp, &body)
		assert.True(t, body.Success)
		assert.Equal(t, "passbook.pdf", body.Data.OriginalName)
		assert.Equal(t, int64(len(content)), body.Data.FileSize)
		assert.Equal(t, 1, uploadedFileCount(t, application.Config.UploadDir))

		listResp := doJSON(t, fiberApp, fiber.MethodGet, fmt.Sprintf("/api/documents/client/%d", client.ID), nil)
		require.Equal(t, fiber.StatusOK, listResp.StatusCode)

		var listBody struct {
			Count int               `json:"count"`
			Data  []models.Document `json:"data"`
		}
		decodeBody(t, listResp, &listBody)
		require.Equal(t, 1, listBody.Count)

		dlResp := doJSON(t, fiberApp, fiber.MethodGet, fmt.Sprintf("/api/documents/%d/download", body.Data.ID), nil)
		require.Equal(t, fiber.StatusOK, dlResp.StatusCode)
		defer dlResp.Body.Close()

		assert.Contains(t, dlResp.Header.Get(fiber.HeaderContentDisposition), "passbook.pdf")
		downloaded, err := io.ReadAll(dlResp.Body)
		require.NoError(t, err)
		assert.Equal(t, content, downloaded)
	})

	t.Run("Rejected profile picture leaves no file behind", func(t *testing.T) {
		before := uploadedFileCount(t, application.Config.UploadDir)

		resp := doUpload(t, fiberApp, fmt.Sprintf("/api/profile-pictures/upload/client/%d", client.ID),
			"scan.pdf", "application/pdf", []byte("%PDF-1.4"))
		require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

		var body struct {
			Error string `json:"error"`
		}
		decodeBody(t, resp, &body)
		assert.Contains(t, body.Error, "must be images")
		assert.Equal(t, before, uploadedFileCount(t, application.Config.UploadDir))
	})
}
