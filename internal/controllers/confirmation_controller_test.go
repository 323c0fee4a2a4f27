package controllers_test

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"driver_dispatch/internal/config"
	"driver_dispatch/internal/models"
)

// tiny but real JPEG header, enough to stand in for a photo
var jpegBytes = []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10, 'J', 'F', 'I', 'F', 0x00, 0xFF, 0xD9}

func doConfirm(t *testing.T, r http.Handler, path string, withImage bool) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if withImage {
		part, err := mw.CreateFormFile("image", "delivery-confirmation.jpg")
		require.NoError(t, err)
		_, err = part.Write(jpegBytes)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestConfirmDelivery(t *testing.T) {
	r := setupRouter(t)
	t.Setenv("UPLOAD_DIR", t.TempDir())

	driver := seedDriver(t, "confirm@x.com")
	delivery := seedDelivery(t, &driver.ID, models.StatusInProgress)

	w := doConfirm(t, r, urlf("/api/deliveries/%d/confirm", delivery.ID), true)
	require.Equal(t, http.StatusOK, w.Code)

	var got models.Delivery
	decode(t, w, &got)
	assert.Equal(t, models.StatusCompleted, got.Status)
	require.NotEmpty(t, got.ProofImage)

	// The proof photo actually landed on disk.
	data, err := os.ReadFile(got.ProofImage)
	require.NoError(t, err)
	assert.Equal(t, jpegBytes, data)
}

func TestConfirmDeliveryRequiresImage(t *testing.T) {
	r := setupRouter(t)
	t.Setenv("UPLOAD_DIR", t.TempDir())

	delivery := seedDelivery(t, nil, models.StatusInProgress)

	w := doConfirm(t, r, urlf("/api/deliveries/%d/confirm", delivery.ID), false)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, messageOf(t, w), "image file is required")

	// No state mutated on failure.
	var got models.Delivery
	require.NoError(t, config.DB.First(&got, delivery.ID).Error)
	assert.Equal(t, models.StatusInProgress, got.Status)
	assert.Empty(t, got.ProofImage)
}

func TestConfirmDeliveryNotFound(t *testing.T) {
	r := setupRouter(t)
	t.Setenv("UPLOAD_DIR", t.TempDir())

	w := doConfirm(t, r, "/api/deliveries/99999/confirm", true)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestConfirmDeliveryResubmission(t *testing.T) {
	r := setupRouter(t)
	t.Setenv("UPLOAD_DIR", t.TempDir())

	delivery := seedDelivery(t, nil, models.StatusInProgress)

	w := doConfirm(t, r, urlf("/api/deliveries/%d/confirm", delivery.ID), true)
	require.Equal(t, http.StatusOK, w.Code)
	var first models.Delivery
	decode(t, w, &first)

	// Re-confirming a completed delivery is accepted and replaces the photo.
	w = doConfirm(t, r, urlf("/api/deliveries/%d/confirm", delivery.ID), true)
	require.Equal(t, http.StatusOK, w.Code)
	var second models.Delivery
	decode(t, w, &second)

	assert.Equal(t, models.StatusCompleted, second.Status)
	assert.NotEqual(t, first.ProofImage, second.ProofImage)
}
