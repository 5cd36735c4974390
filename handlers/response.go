package handlers

import (
	"encoding/json"
	"net/http"
)

type errorResponse struct {
	Error    string   `json:"error"`
	Messages []string `json:"messages"`
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError emits the failure envelope: the status text names the failure
// class, messages carry every individual violation.
func writeError(w http.ResponseWriter, code int, messages ...string) {
	writeJSON(w, code, errorResponse{
		Error:    http.StatusText(code),
		Messages: messages,
	})
}
