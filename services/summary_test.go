package services

import (
	"testing"

	"github.com/shopspring/decimal"

	"pocketledger/models"
)

func sum(category, txType string, total int64) models.CategoryTypeSum {
	return models.CategoryTypeSum{
		Category: category,
		Type:     txType,
		Total:    decimal.NewFromInt(total),
	}
}

func TestBuildCategorySummary(t *testing.T) {
	rows := BuildCategorySummary([]models.CategoryTypeSum{
		sum("catX", "send", 100),
		sum("catX", "receive", 200),
		sum("catY", "send", 50),
	})

	if len(rows) != 2 {
		t.Fatalf("Expected 2 rows, got %d", len(rows))
	}

	byCategory := map[string]models.CategorySummary{}
	for _, row := range rows {
		byCategory[row.Category] = row
	}

	catX := byCategory["catX"]
	if !catX.Sent.Equal(decimal.NewFromInt(100)) || !catX.Received.Equal(decimal.NewFromInt(200)) {
		t.Errorf("catX: expected sent=100 received=200, got sent=%s received=%s", catX.Sent, catX.Received)
	}

	catY := byCategory["catY"]
	if !catY.Sent.Equal(decimal.NewFromInt(50)) || !catY.Received.Equal(decimal.Zero) {
		t.Errorf("catY: expected sent=50 received=0, got sent=%s received=%s", catY.Sent, catY.Received)
	}
}

func TestBuildCategorySummarySingleSided(t *testing.T) {
	rows := BuildCategorySummary([]models.CategoryTypeSum{
		sum("rent", "receive", 750),
	})

	if len(rows) != 1 {
		t.Fatalf("Expected 1 row, got %d", len(rows))
	}
	if !rows[0].Sent.Equal(decimal.Zero) {
		t.Errorf("Expected zero sent total, got %s", rows[0].Sent)
	}
	if !rows[0].Received.Equal(decimal.NewFromInt(750)) {
		t.Errorf("Expected received=750, got %s", rows[0].Received)
	}
}

func TestBuildCategorySummaryEmpty(t *testing.T) {
	rows := BuildCategorySummary(nil)
	if rows == nil {
		t.Fatal("Expected an empty slice, got nil")
	}
	if len(rows) != 0 {
		t.Fatalf("Expected no rows, got %d", len(rows))
	}
}
