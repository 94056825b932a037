package csvimport

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"budgetry/internal/core"
)

func TestParse(t *testing.T) {
	input := strings.Join([]string{
		"type,amount,category,description,date",
		"Expense,49.99,Food,Groceries,15/01/2025",
		"Income,2500.00,Salary,January pay,2025-01-31",
	}, "\n")

	records, err := Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, core.TypeExpense, records[0].Type)
	assert.Equal(t, int64(4999), records[0].Amount.Cents)
	assert.Equal(t, "Food", records[0].Category)
	assert.Equal(t, "Groceries", records[0].Description)
	assert.Equal(t, "15/01/2025", records[0].Date)

	assert.Equal(t, core.TypeIncome, records[1].Type)
	assert.Equal(t, int64(250000), records[1].Amount.Cents)
}

func TestParseHeaderCasingAndSpacing(t *testing.T) {
	input := strings.Join([]string{
		"Type, Amount, Category, Description, Date",
		"Expense, 10.50, Travel, Bus ticket, 2025-02-01",
	}, "\n")

	records, err := Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, int64(1050), records[0].Amount.Cents)
	assert.Equal(t, "Travel", records[0].Category)
}

func TestParseBadAmountDegradesToZero(t *testing.T) {
	input := strings.Join([]string{
		"type,amount,category,description,date",
		"Expense,not-a-number,Food,Lunch,2025-02-02",
	}, "\n")

	records, err := Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, int64(0), records[0].Amount.Cents)
}

func TestParseMissingColumn(t *testing.T) {
	input := "type,amount,category\nExpense,1.00,Food"
	_, err := Parse(strings.NewReader(input))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "date")
}

func TestParseEmptyInput(t *testing.T) {
	_, err := Parse(strings.NewReader(""))
	require.Error(t, err)
}

func TestParseSkipsMissingDescription(t *testing.T) {
	input := strings.Join([]string{
		"type,amount,category,date",
		"Expense,5.00,Food,2025-02-03",
	}, "\n")

	records, err := Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Empty(t, records[0].Description)
}
