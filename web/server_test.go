package web

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/bdutucu/Optical-Store-Database/database"
	"github.com/bdutucu/Optical-Store-Database/models"
)

type testEnv struct {
	server   *Server
	staff    models.Staff
	customer models.Customer
	frame    models.Product
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(models.AllModels()...))

	// Handlers resolve their store through the package-level connection
	database.DB = db
	t.Cleanup(func() { database.DB = nil })

	env := &testEnv{server: NewServer()}

	env.staff = models.Staff{
		FirstName:    "Ayşe",
		LastName:     "Yılmaz",
		Email:        "ayse@optik.test",
		Salary:       decimal.RequireFromString("30000.00"),
		JobStartDate: time.Date(2023, 1, 9, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, db.Create(&env.staff).Error)

	env.customer = models.Customer{
		NationalID:          "12345678901",
		FirstName:           "Elif",
		LastName:            "Kaya",
		RegisteredByStaffID: env.staff.StaffID,
	}
	require.NoError(t, db.Create(&env.customer).Error)

	env.frame = models.Product{
		Brand:         "Ray-Ban",
		ProductType:   models.ProductFrame,
		Price:         decimal.RequireFromString("50.00"),
		TaxRate:       decimal.RequireFromString("20.00"),
		StockQuantity: 10,
	}
	require.NoError(t, db.Create(&env.frame).Error)

	return env
}

func (e *testEnv) request(t *testing.T, method, path string, body interface{}) (*http.Response, map[string]interface{}) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := e.server.App().Test(req, -1)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var decoded map[string]interface{}
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &decoded), "body: %s", raw)
	}
	return resp, decoded
}

func TestHealthEndpoint(t *testing.T) {
	env := newTestEnv(t)

	resp, body := env.request(t, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", body["status"])
}

func TestSaleFlowOverHTTP(t *testing.T) {
	env := newTestEnv(t)

	// Open a sale
	resp, body := env.request(t, http.MethodPost, "/sales", map[string]interface{}{
		"customer_id": env.customer.CustomerID,
		"staff_id":    env.staff.StaffID,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	txID := uint(body["transaction_id"].(float64))
	assert.Equal(t, "SALE", body["transaction_type"])

	// Add two frames
	resp, body = env.request(t, http.MethodPost, fmt.Sprintf("/sales/%d/items", txID), map[string]interface{}{
		"product_id": env.frame.ProductID,
		"quantity":   2,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "120", body["line_total"])

	// First installment in cash
	resp, _ = env.request(t, http.MethodPost, fmt.Sprintf("/transactions/%d/payments", txID), map[string]interface{}{
		"amount":       "50.00",
		"payment_type": "CASH",
		"received_by":  "Ayşe Yılmaz",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	// Balance is visible on the transaction
	resp, body = env.request(t, http.MethodGet, fmt.Sprintf("/transactions/%d", txID), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "70", body["remaining_balance"])

	// Settle by card
	resp, _ = env.request(t, http.MethodPost, fmt.Sprintf("/transactions/%d/payments", txID), map[string]interface{}{
		"amount":       "70.00",
		"payment_type": "CREDIT_CARD",
		"card_owner":   "Elif Kaya",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	// Any further payment is an overpayment
	resp, body = env.request(t, http.MethodPost, fmt.Sprintf("/transactions/%d/payments", txID), map[string]interface{}{
		"amount":       "0.01",
		"payment_type": "CASH",
		"received_by":  "Ayşe Yılmaz",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Equal(t, "OVERPAYMENT_REJECTED", body["kind"])
}

func TestPaymentTypeMismatchRejected(t *testing.T) {
	env := newTestEnv(t)

	resp, body := env.request(t, http.MethodPost, "/sales", map[string]interface{}{
		"customer_id": env.customer.CustomerID,
		"staff_id":    env.staff.StaffID,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	txID := uint(body["transaction_id"].(float64))

	_, _ = env.request(t, http.MethodPost, fmt.Sprintf("/sales/%d/items", txID), map[string]interface{}{
		"product_id": env.frame.ProductID,
		"quantity":   1,
	})

	// CASH with a card owner is a tag/payload mismatch
	resp, body = env.request(t, http.MethodPost, fmt.Sprintf("/transactions/%d/payments", txID), map[string]interface{}{
		"amount":       "10.00",
		"payment_type": "CASH",
		"card_owner":   "Elif Kaya",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INVALID_PAYMENT_TYPE", body["kind"])
}

func TestZeroQuantityMapsToInvalidQuantity(t *testing.T) {
	env := newTestEnv(t)

	resp, body := env.request(t, http.MethodPost, "/sales", map[string]interface{}{
		"customer_id": env.customer.CustomerID,
		"staff_id":    env.staff.StaffID,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	txID := uint(body["transaction_id"].(float64))

	// Zero and negative quantities are the ledger's call, not the DTO's
	for _, quantity := range []int{0, -2} {
		resp, body = env.request(t, http.MethodPost, fmt.Sprintf("/sales/%d/items", txID), map[string]interface{}{
			"product_id": env.frame.ProductID,
			"quantity":   quantity,
		})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "INVALID_QUANTITY", body["kind"])
	}

	// DTO validation failures keep struct internals out of the response
	resp, body = env.request(t, http.MethodPost, fmt.Sprintf("/sales/%d/items", txID), map[string]interface{}{
		"quantity": 1,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "REQUEST_FAILED", body["kind"])
	assert.NotContains(t, body["error"], "addItemRequest")
	assert.Contains(t, body["error"], "product_id")
}

func TestRepairFlowOverHTTP(t *testing.T) {
	env := newTestEnv(t)

	resp, body := env.request(t, http.MethodPost, "/repairs", map[string]interface{}{
		"customer_id": env.customer.CustomerID,
		"staff_id":    env.staff.StaffID,
		"description": "lens scratch polish",
		"cost":        "250.00",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	txID := uint(body["transaction_id"].(float64))
	assert.Equal(t, "250", body["remaining_balance"])

	repair := body["repair"].(map[string]interface{})
	assert.Equal(t, "PENDING", repair["status"])

	resp, body = env.request(t, http.MethodPatch, fmt.Sprintf("/repairs/%d/status", txID), map[string]interface{}{
		"status": "IN_PROGRESS",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "IN_PROGRESS", body["status"])

	resp, body = env.request(t, http.MethodPatch, fmt.Sprintf("/repairs/%d/status", txID), map[string]interface{}{
		"status": "LOST",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INVALID_STATUS", body["kind"])
}

func TestUnknownCustomerIs404(t *testing.T) {
	env := newTestEnv(t)

	resp, body := env.request(t, http.MethodPost, "/sales", map[string]interface{}{
		"customer_id": 9999,
		"staff_id":    env.staff.StaffID,
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "INVALID_CUSTOMER", body["kind"])
}

func TestOutstandingReportOverHTTP(t *testing.T) {
	env := newTestEnv(t)

	resp, _ := env.request(t, http.MethodPost, "/repairs", map[string]interface{}{
		"customer_id": env.customer.CustomerID,
		"staff_id":    env.staff.StaffID,
		"description": "hinge replacement",
		"cost":        "80.00",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, body := env.request(t, http.MethodGet, "/reports/outstanding", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(1), body["count"])
	assert.Equal(t, "80", body["total_outstanding"])
}
