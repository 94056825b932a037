package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"budgetry/internal/storage"
)

func TestGenerate(t *testing.T) {
	now := time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)
	transactions := []storage.TransactionRow{
		{ID: 1, UserID: 7, Type: "Income", AmountCents: 250000, Category: "Salary", Description: "March pay", Date: "2025-03-01"},
		{ID: 2, UserID: 7, Type: "Expense", AmountCents: 4999, Category: "Food", Description: "Fish & chips", Date: "2025-03-02"},
	}
	totals := []storage.CategoryTotal{
		{Type: "Expense", Category: "Food", TotalCents: 4999},
		{Type: "Income", Category: "Salary", TotalCents: 250000},
	}

	doc := Generate(7, transactions, totals, now)

	assert.Contains(t, doc, `\title{Budget Tracker Transaction Report}`)
	assert.Contains(t, doc, `\author{User ID: 7}`)
	assert.Contains(t, doc, `\date{2025-03-15}`)

	assert.Contains(t, doc, `Total Income: \$ 2500.00`)
	assert.Contains(t, doc, `Total Expenses: \$ 49.99`)
	assert.Contains(t, doc, `Net Balance: \$ 2450.01`)

	assert.Contains(t, doc, `Expense & Food & 49.99 \\`)
	assert.Contains(t, doc, `Income & Salary & 2500.00 \\`)

	// ampersand in descriptions must not break the table
	assert.Contains(t, doc, `Fish \& chips`)
	assert.NotContains(t, doc, "Fish & chips")

	assert.Contains(t, doc, `\begin{longtable}`)
	assert.Contains(t, doc, `\end{document}`)
}

func TestGenerateEmpty(t *testing.T) {
	doc := Generate(1, nil, nil, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	assert.Contains(t, doc, `Total Income: \$ 0.00`)
	assert.Contains(t, doc, `Net Balance: \$ 0.00`)
}
