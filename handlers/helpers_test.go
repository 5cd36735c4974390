package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"pocketledger/database"
	"pocketledger/middleware"
)

// testUserID is the default authenticated subject used across tests.
const testUserID = "user-under-test"

// newTestStore opens a fresh in-memory database for one test.
func newTestStore(t *testing.T) *database.Store {
	t.Helper()
	store, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("Failed to open test store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

// authedRequest builds a request carrying uid as the verified subject,
// standing in for the auth middleware.
func authedRequest(t *testing.T, method, url, uid string, body interface{}) *http.Request {
	t.Helper()

	var req *http.Request
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("Failed to marshal request body: %v", err)
		}
		req = httptest.NewRequest(method, url, bytes.NewBuffer(buf))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, url, nil)
	}

	return req.WithContext(middleware.WithUserID(req.Context(), uid))
}

// decodeBody decodes a JSON response body into v.
func decodeBody(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode response body: %v", err)
	}
}
