package order

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"restaurant-menu/internal/logger"
	"restaurant-menu/internal/models"
)

func newTestMux(t *testing.T) (*http.ServeMux, *Service) {
	t.Helper()
	s, _ := newTestService(nil)
	mux := http.NewServeMux()
	NewHandler(s, logger.Discard()).Register(mux)
	return mux, s
}

func doRequest(mux http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func TestHandler_PlaceOrder(t *testing.T) {
	mux, s := newTestMux(t)

	rec := doRequest(mux, http.MethodPost, "/orders",
		`{"customer_name":"Ana","items":[{"category":"Mains","name":"Paella","quantity":1}]}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp models.PlaceOrderResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.InDelta(t, 20.0, resp.TotalAmount, 1e-9)
	assert.Equal(t, 1, s.Pending())
}

func TestHandler_PlaceOrderErrors(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		contentType string
		wantStatus  int
	}{
		{
			name:        "wrong content type",
			body:        `{}`,
			contentType: "text/plain",
			wantStatus:  http.StatusBadRequest,
		},
		{
			name:        "malformed json",
			body:        `{"customer_name":`,
			contentType: "application/json",
			wantStatus:  http.StatusBadRequest,
		},
		{
			name:        "unknown field",
			body:        `{"customer_name":"Ana","table":4,"items":[]}`,
			contentType: "application/json",
			wantStatus:  http.StatusBadRequest,
		},
		{
			name:        "validation failure",
			body:        `{"customer_name":"","items":[{"category":"Mains","name":"Paella","quantity":1}]}`,
			contentType: "application/json",
			wantStatus:  http.StatusBadRequest,
		},
		{
			name:        "unknown item",
			body:        `{"customer_name":"Ana","items":[{"category":"Mains","name":"Tacos","quantity":1}]}`,
			contentType: "application/json; charset=utf-8",
			wantStatus:  http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mux, s := newTestMux(t)
			req := httptest.NewRequest(http.MethodPost, "/orders", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", tt.contentType)
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			var body map[string]interface{}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.NotEmpty(t, body["error"])
			assert.NotEmpty(t, body["request_id"])
			assert.Equal(t, 0, s.Pending())
		})
	}
}

func TestHandler_DispatchNext(t *testing.T) {
	mux, _ := newTestMux(t)

	rec := doRequest(mux, http.MethodPost, "/orders/dispatch", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = doRequest(mux, http.MethodPost, "/orders",
		`{"customer_name":"Ana","items":[{"category":"Beverages","name":"Coca Cola","quantity":1}]}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(mux, http.MethodPost, "/orders/dispatch", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var msg models.OrderMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &msg))
	assert.Equal(t, "Ana", msg.CustomerName)
	require.Len(t, msg.Items, 1)
	assert.Equal(t, "Mediano", msg.Items[0][models.KeySize])

	rec = doRequest(mux, http.MethodPost, "/orders/dispatch", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestHandler_HealthCheck(t *testing.T) {
	mux, _ := newTestMux(t)

	rec := doRequest(mux, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
	assert.EqualValues(t, 0, body["pending_orders"])

	rec = doRequest(mux, http.MethodPost, "/health", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
