package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"payeezy_gateway/internal/infrastructure/config"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func newTestRouter(t *testing.T, cfg config.Config) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := gin.New()
	if err := getRoutes(context.Background(), router, cfg, zap.NewNop()); err != nil {
		t.Fatalf("getRoutes: %v", err)
	}
	return router
}

func serve(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRoutes_MockGateway(t *testing.T) {
	r := newTestRouter(t, config.Config{
		Payeezy:  config.PayeezyConfig{Mock: true},
		TagStore: config.TagStoreConfig{Backend: config.TagStoreNone},
	})

	if w := serve(r, http.MethodGet, "/v1/ping", ""); w.Code != http.StatusOK {
		t.Fatalf("ping: expected 200, got %d", w.Code)
	}

	w := serve(r, http.MethodPost, "/v1/transactions",
		`{"order":{"amount":10},"credit_card":{"card_number":"5555555555554444","card_holder":"J Doe","expiration_month":1,"expiration_year":30,"cvv":"321"}}`)
	if w.Code != http.StatusOK {
		t.Fatalf("purchase: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var body map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	if body["status"] != "approved" || body["transaction_id"] == "" {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}

	// Without a reference store the tag must come from the caller.
	if w := serve(r, http.MethodPost, "/v1/transactions/T1/void", ""); w.Code != http.StatusBadRequest {
		t.Fatalf("void: expected 400, got %d", w.Code)
	}
	if w := serve(r, http.MethodPost, "/v1/transactions/T1/void", `{"transaction_tag":"42"}`); w.Code != http.StatusOK {
		t.Fatalf("void: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if w := serve(r, http.MethodGet, "/v1/transactions/T1", ""); w.Code != http.StatusServiceUnavailable {
		t.Fatalf("get: expected 503, got %d", w.Code)
	}
}

func TestRoutes_UnconfiguredGateway(t *testing.T) {
	r := newTestRouter(t, config.Config{TagStore: config.TagStoreConfig{Backend: config.TagStoreNone}})

	if w := serve(r, http.MethodGet, "/v1/ping", ""); w.Code != http.StatusOK {
		t.Fatalf("ping: expected 200, got %d", w.Code)
	}
	w := serve(r, http.MethodPost, "/v1/transactions",
		`{"order":{"amount":10},"credit_card":{"card_number":"4111111111111111","card_holder":"J Doe","expiration_month":1,"expiration_year":2030,"cvv":"321"}}`)
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("purchase: expected 503, got %d", w.Code)
	}
}
