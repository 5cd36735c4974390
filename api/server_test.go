package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"pocketledger/config"
	"pocketledger/database"
	"pocketledger/middleware"
)

const testSecret = "end-to-end-secret"

func newTestServer(t *testing.T) (*Server, *database.Store) {
	t.Helper()

	store, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("Failed to open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	cfg := config.Load()
	cfg.AuthSecret = testSecret
	cfg.AuthTimeout = time.Second

	return NewServer(cfg, store, middleware.NewHS256Verifier(testSecret)), store
}

func bearerToken(t *testing.T, sub string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": sub})
	signed, err := token.SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("Failed to sign token: %v", err)
	}
	return "Bearer " + signed
}

func TestUnauthenticatedRequestsRejected(t *testing.T) {
	server, store := newTestServer(t)
	handler := server.Handler()

	endpoints := []struct {
		method string
		path   string
		body   string
	}{
		{http.MethodPost, "/transactions", `{"amount":10,"type":"send","category":"groceries","recipient":"shop"}`},
		{http.MethodGet, "/transactions", ""},
		{http.MethodGet, "/transactions/summary", ""},
	}

	for _, e := range endpoints {
		t.Run(e.method+" "+e.path, func(t *testing.T) {
			var req *http.Request
			if e.body != "" {
				req = httptest.NewRequest(e.method, e.path, strings.NewReader(e.body))
			} else {
				req = httptest.NewRequest(e.method, e.path, nil)
			}
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			if w.Code != http.StatusUnauthorized {
				t.Errorf("Expected status %d, got %d", http.StatusUnauthorized, w.Code)
			}
		})
	}

	// The rejected write must not have touched the store; a broken
	// ownership binding would have inserted an ownerless row.
	count, err := store.CountTransactions(context.Background(), "")
	if err != nil {
		t.Fatal(err)
	}
	if count != 0 {
		t.Errorf("Expected an untouched store, got %d rows", count)
	}
}

func TestCreateListSummaryFlow(t *testing.T) {
	server, _ := newTestServer(t)
	handler := server.Handler()
	auth := bearerToken(t, "user-e2e")

	post := func(body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/transactions", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", auth)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		return w
	}

	if w := post(`{"amount":100,"type":"send","category":"catX","recipient":"alice smith"}`); w.Code != http.StatusCreated {
		t.Fatalf("Expected status %d, got %d: %s", http.StatusCreated, w.Code, w.Body.String())
	}
	if w := post(`{"amount":200,"type":"receive","category":"catX","recipient":"bob jones"}`); w.Code != http.StatusCreated {
		t.Fatalf("Expected status %d, got %d: %s", http.StatusCreated, w.Code, w.Body.String())
	}

	req := httptest.NewRequest(http.MethodGet, "/transactions?type=send", nil)
	req.Header.Set("Authorization", auth)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status %d, got %d: %s", http.StatusOK, w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), `"catX"`) {
		t.Errorf("Expected listed transaction, got %s", w.Body.String())
	}

	req = httptest.NewRequest(http.MethodGet, "/transactions/summary", nil)
	req.Header.Set("Authorization", auth)
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status %d, got %d: %s", http.StatusOK, w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), `"category":"catX"`) {
		t.Errorf("Expected summary row for catX, got %s", w.Body.String())
	}
}

func TestRoutesAvailableUnderAPIPrefix(t *testing.T) {
	server, _ := newTestServer(t)
	handler := server.Handler()

	req := httptest.NewRequest(http.MethodGet, "/api/transactions", nil)
	req.Header.Set("Authorization", bearerToken(t, "user-e2e"))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status %d under /api prefix, got %d", http.StatusOK, w.Code)
	}
}

func TestHealthRequiresNoAuth(t *testing.T) {
	server, _ := newTestServer(t)
	handler := server.Handler()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status %d, got %d", http.StatusOK, w.Code)
	}
	if !strings.Contains(w.Body.String(), `"status":"ok"`) {
		t.Errorf("Unexpected health body: %s", w.Body.String())
	}
}
