// Package dashboard computes the summary figures shown on the dashboard:
// KPIs, cash flow and the expense breakdown by category.
package dashboard

import "github.com/brenofinance/dashboard/internal/domain"

// Breakdown entries for unknown categories use these.
const (
	OtherLabel = "Other"
	OtherColor = "#94a3b8"
)

var categories = []domain.Category{
	{ID: "cat-1", Name: "Salary", Type: domain.TransactionTypeIncome, Color: "#06c087"},
	{ID: "cat-2", Name: "Investments", Type: domain.TransactionTypeIncome, Color: "#38bdf8"},
	{ID: "cat-3", Name: "Rent", Type: domain.TransactionTypeExpense, Color: "#fb7185"},
	{ID: "cat-4", Name: "Food", Type: domain.TransactionTypeExpense, Color: "#f59e0b"},
	{ID: "cat-5", Name: "Transport", Type: domain.TransactionTypeExpense, Color: "#6366f1"},
	{ID: "cat-6", Name: "Entertainment", Type: domain.TransactionTypeExpense, Color: "#22c55e"},
	{ID: "cat-7", Name: "Utilities", Type: domain.TransactionTypeExpense, Color: "#0ea5e9"},
}

// Categories returns the fixed category table.
func Categories() []domain.Category {
	out := make([]domain.Category, len(categories))
	copy(out, categories)
	return out
}

func categoryByID(id string) (domain.Category, bool) {
	for _, c := range categories {
		if c.ID == id {
			return c, true
		}
	}
	return domain.Category{}, false
}
