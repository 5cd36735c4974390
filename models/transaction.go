package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction types. No other value is ever persisted or reported.
const (
	TransactionTypeSend    = "send"
	TransactionTypeReceive = "receive"
)

// ValidTransactionType reports whether t is one of the two supported types.
func ValidTransactionType(t string) bool {
	return t == TransactionTypeSend || t == TransactionTypeReceive
}

type Transaction struct {
	ID        int64           `json:"id"`
	UserID    string          `json:"userId"`
	Amount    decimal.Decimal `json:"amount"`
	Type      string          `json:"type"`
	Category  string          `json:"category"`
	Recipient string          `json:"recipient"`
	CreatedAt time.Time       `json:"createdAt"`
}

// TransactionFilter narrows a list query. Empty fields are ignored; the
// owner scope is always applied separately and is never part of the filter.
type TransactionFilter struct {
	Type     string
	Category string
}
