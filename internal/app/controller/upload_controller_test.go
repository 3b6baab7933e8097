package controller

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/lensfolio/printshop-backend/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePresigner struct{}

func (fakePresigner) PresignSwatchUpload(_ context.Context, filename, contentType string) (*storage.PresignedURLResponse, error) {
	if err := storage.ValidateContentType(contentType, storage.SwatchContentTypes); err != nil {
		return nil, err
	}
	key := storage.SwatchFolder + "/fixed.png"
	return &storage.PresignedURLResponse{
		UploadURL: "https://bucket.s3.amazonaws.com/" + key + "?X-Amz-Signature=abc",
		FileURL:   "https://cdn.example.com/" + key,
		Key:       key,
		ExpiresAt: time.Now().Add(15 * time.Minute),
	}, nil
}

func TestUploadController_GeneratePresignedURL(t *testing.T) {
	env := setupControllerTest(t, fakePresigner{})

	w, resp := env.do(t, http.MethodPost, "/api/v1/admin/uploads/presigned-url", map[string]interface{}{
		"filename":     "walnut.png",
		"content_type": "image/png",
	}, true)
	require.Equal(t, http.StatusOK, w.Code, resp)
	assert.Equal(t, "swatches/fixed.png", resp["key"])
	assert.Equal(t, "https://cdn.example.com/swatches/fixed.png", resp["file_url"])

	w, resp = env.do(t, http.MethodPost, "/api/v1/admin/uploads/presigned-url", map[string]interface{}{
		"filename":     "walnut.gif",
		"content_type": "image/gif",
	}, true)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "UPLOAD_INVALID_FILE_TYPE", resp["code"])
}

func TestUploadController_NotConfigured(t *testing.T) {
	env := setupControllerTest(t, nil)

	w, resp := env.do(t, http.MethodPost, "/api/v1/admin/uploads/presigned-url", map[string]interface{}{
		"filename":     "walnut.png",
		"content_type": "image/png",
	}, true)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "UPLOAD_NOT_CONFIGURED", resp["code"])
}
