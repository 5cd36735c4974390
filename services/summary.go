package services

import (
	"pocketledger/models"
)

// BuildCategorySummary folds store-side grouped sums into one report row
// per category. Categories are discovered from the data; a category seen
// only on one side keeps a zero total on the other. Row order is not part
// of the contract.
func BuildCategorySummary(sums []models.CategoryTypeSum) []models.CategorySummary {
	index := map[string]int{}
	summary := []models.CategorySummary{}

	for _, s := range sums {
		i, ok := index[s.Category]
		if !ok {
			i = len(summary)
			index[s.Category] = i
			summary = append(summary, models.CategorySummary{Category: s.Category})
		}

		switch s.Type {
		case models.TransactionTypeSend:
			summary[i].Sent = summary[i].Sent.Add(s.Total)
		case models.TransactionTypeReceive:
			summary[i].Received = summary[i].Received.Add(s.Total)
		}
	}

	return summary
}
