package controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"driver_dispatch/internal/config"
	"driver_dispatch/internal/middleware"
	"driver_dispatch/internal/models"
	"driver_dispatch/internal/routes"
)

// setupRouter swaps an in-memory store into the global DB handle and
// returns the real router, so tests exercise the same wiring as the
// server binary.
func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	// One shared in-memory database per test; the default :memory:
	// DSN gives every pooled connection its own empty database.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, config.Migrate(db))

	prev := config.DB
	config.DB = db
	t.Cleanup(func() { config.DB = prev })

	return routes.SetupRouter()
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
}

func authHeader(t *testing.T, driverID uint) map[string]string {
	t.Helper()
	token, err := middleware.GenerateToken(driverID)
	require.NoError(t, err)
	return map[string]string{"Authorization": "Bearer " + token}
}

func seedDriver(t *testing.T, email string) models.Driver {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	require.NoError(t, err)

	driver := models.Driver{
		Name:        "Test Driver",
		Email:       email,
		Password:    string(hash),
		PhoneNumber: "+1 555 0100",
		VehicleType: models.VehicleBike,
		PlateNumber: "KDA 001",
		IsAvailable: true,
	}
	require.NoError(t, config.DB.Create(&driver).Error)
	return driver
}

func seedDelivery(t *testing.T, driverID *uint, status models.DeliveryStatus) models.Delivery {
	t.Helper()
	delivery := models.Delivery{
		PickupLocation:  "12 Warehouse Rd",
		DropoffLocation: "90 Main St",
		PackageType:     "Documents",
		EstimatedTime:   "30 mins",
		Status:          status,
		DriverID:        driverID,
	}
	require.NoError(t, config.DB.Create(&delivery).Error)
	return delivery
}

func urlf(format string, args ...any) string {
	return fmt.Sprintf(format, args...)
}

func messageOf(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Message string `json:"message"`
	}
	decode(t, w, &body)
	return body.Message
}
