package database

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"pocketledger/models"
)

// CreateTransaction inserts a single transaction owned by userID. The id
// and creation timestamp are assigned here, never taken from the caller's
// request body.
func (s *Store) CreateTransaction(ctx context.Context, userID string, amount decimal.Decimal, txType, category, recipient string) (*models.Transaction, error) {
	createdAt := time.Now().UTC()

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO transactions (userId, amount, type, category, recipient, createdAt)
		VALUES (?, ?, ?, ?, ?, ?)
	`, userID, amount, txType, category, recipient, createdAt)
	if err != nil {
		return nil, fmt.Errorf("insert transaction: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("read inserted id: %w", err)
	}

	return &models.Transaction{
		ID:        id,
		UserID:    userID,
		Amount:    amount,
		Type:      txType,
		Category:  category,
		Recipient: recipient,
		CreatedAt: createdAt,
	}, nil
}

// ListTransactions returns the owner's transactions, most recent first,
// optionally narrowed by exact type and/or category match.
func (s *Store) ListTransactions(ctx context.Context, userID string, f models.TransactionFilter) ([]models.Transaction, error) {
	query := `
		SELECT id, userId, amount, type, category, recipient, createdAt
		FROM transactions
		WHERE userId = ?
	`
	args := []interface{}{userID}

	if f.Type != "" {
		query += " AND type = ?"
		args = append(args, f.Type)
	}
	if f.Category != "" {
		query += " AND category = ?"
		args = append(args, f.Category)
	}

	query += " ORDER BY createdAt DESC, id DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query transactions: %w", err)
	}
	defer rows.Close()

	transactions := []models.Transaction{}
	for rows.Next() {
		var t models.Transaction
		if err := rows.Scan(&t.ID, &t.UserID, &t.Amount, &t.Type, &t.Category, &t.Recipient, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		transactions = append(transactions, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transactions: %w", err)
	}

	return transactions, nil
}

// SumAmountsByCategoryAndType computes the owner's grouped totals in the
// database. Category cardinality can be large and row counts unbounded, so
// the aggregation stays on the store side rather than folding loaded rows.
func (s *Store) SumAmountsByCategoryAndType(ctx context.Context, userID string) ([]models.CategoryTypeSum, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT category, type, SUM(amount)
		FROM transactions
		WHERE userId = ?
		GROUP BY category, type
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("query grouped sums: %w", err)
	}
	defer rows.Close()

	sums := []models.CategoryTypeSum{}
	for rows.Next() {
		var row models.CategoryTypeSum
		if err := rows.Scan(&row.Category, &row.Type, &row.Total); err != nil {
			return nil, fmt.Errorf("scan grouped sum: %w", err)
		}
		sums = append(sums, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate grouped sums: %w", err)
	}

	return sums, nil
}

// CountTransactions reports the number of rows owned by userID. Used by
// tests to assert that rejected requests leave the store untouched.
func (s *Store) CountTransactions(ctx context.Context, userID string) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM transactions WHERE userId = ?", userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count transactions: %w", err)
	}
	return count, nil
}
