package models

import "github.com/shopspring/decimal"

// CategoryTypeSum is one grouped-aggregate row as returned by the store:
// the summed amount of one (category, type) pair for a single owner.
type CategoryTypeSum struct {
	Category string
	Type     string
	Total    decimal.Decimal
}

// CategorySummary is one row of the per-category summary report. A category
// with no transactions of one type carries a zero total for that side.
type CategorySummary struct {
	Category string          `json:"category"`
	Sent     decimal.Decimal `json:"sent"`
	Received decimal.Decimal `json:"received"`
}
