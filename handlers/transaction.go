package handlers

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"pocketledger/database"
	"pocketledger/middleware"
	"pocketledger/models"
	"pocketledger/services"
)

// TransactionHandler serves the transaction endpoints against an injected
// store. The owner id for every operation comes from the request context
// set by the auth middleware; client-supplied owner fields are not decoded
// at all.
type TransactionHandler struct {
	store *database.Store
}

func NewTransactionHandler(store *database.Store) *TransactionHandler {
	return &TransactionHandler{store: store}
}

type createTransactionRequest struct {
	Amount    decimal.Decimal `json:"amount"`
	Type      string          `json:"type"`
	Category  string          `json:"category"`
	Recipient string          `json:"recipient"`
}

// Create handles POST /transactions.
func (h *TransactionHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req createTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Request body must be valid JSON")
		return
	}

	if verr := validateCreateTransaction(&req); verr != nil {
		writeError(w, http.StatusBadRequest, verr.Messages...)
		return
	}

	tx, err := h.store.CreateTransaction(r.Context(), userID, req.Amount, req.Type, req.Category, req.Recipient)
	if err != nil {
		log.Printf("Error creating transaction: %v", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusCreated, tx)
}

// List handles GET /transactions with optional type and category filters.
func (h *TransactionHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	filter := models.TransactionFilter{
		Type:     r.URL.Query().Get("type"),
		Category: r.URL.Query().Get("category"),
	}
	if filter.Type != "" && !models.ValidTransactionType(filter.Type) {
		writeError(w, http.StatusBadRequest, "Type filter must be send or receive.")
		return
	}

	transactions, err := h.store.ListTransactions(r.Context(), userID, filter)
	if err != nil {
		log.Printf("Error listing transactions: %v", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, transactions)
}

// Summary handles GET /transactions/summary: grouped sums come from the
// store, the fold into per-category sent/received rows happens here.
func (h *TransactionHandler) Summary(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	sums, err := h.store.SumAmountsByCategoryAndType(r.Context(), userID)
	if err != nil {
		log.Printf("Error summarizing transactions: %v", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, services.BuildCategorySummary(sums))
}

// validateCreateTransaction checks every field and reports all violations
// together, never just the first.
func validateCreateTransaction(req *createTransactionRequest) *models.ValidationError {
	verr := &models.ValidationError{}

	if req.Amount.Sign() <= 0 {
		verr.Add("Amount must be a positive number.")
	}
	if !models.ValidTransactionType(req.Type) {
		verr.Add("Type must be either send or receive.")
	}
	validateLength(verr, "Category", req.Category, 2, 50)
	validateLength(verr, "Recipient", req.Recipient, 2, 100)

	if verr.Err() == nil {
		return nil
	}
	return verr
}

func validateLength(verr *models.ValidationError, field, value string, min, max int) {
	if value == "" {
		verr.Add(field + " must not be empty.")
		return
	}
	if n := utf8.RuneCountInString(value); n < min || n > max {
		verr.Add(fmt.Sprintf("%s must be between %d and %d characters.", field, min, max))
	}
}
