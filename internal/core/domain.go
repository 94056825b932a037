package core

import (
	"errors"
	"strings"
)

const (
	TypeIncome  TxType = "Income"
	TypeExpense TxType = "Expense"
)

type (
	// TxType partitions transactions into income and expense.
	TxType string

	// Transaction is a single income or expense record. Records are
	// immutable once stored; updates replace the whole collection.
	Transaction struct {
		ID          string `json:"id"`
		Type        TxType `json:"type"`
		Amount      Money  `json:"amount"`
		Category    string `json:"category"`
		Description string `json:"description"`
		Name        string `json:"name,omitempty"`
		Date        string `json:"date"`
		Imported    bool   `json:"isImported,omitempty"`
	}

	// Budget is a named spending ceiling. Its Name doubles as the
	// category key: a transaction belongs to the budget when
	// transaction.Category equals Name, case-sensitively.
	Budget struct {
		ID     string `json:"id"`
		Name   string `json:"name"`
		Amount Money  `json:"amount"`
		Emoji  string `json:"emoji"`
		// Spent is a stale cache written by clients. Aggregations never
		// trust it; spent is always recomputed from transactions.
		Spent Money `json:"spent"`
	}
)

var (
	ErrInvalidType     = errors.New("invalid transaction type")
	ErrInvalidAmount   = errors.New("invalid amount")
	ErrEmptyCategory   = errors.New("empty category")
	ErrEmptyBudgetName = errors.New("empty budget name")
)

// IsExpense reports whether the transaction counts on the expense side.
// Anything that is not explicitly Income is treated as an expense.
func (t Transaction) IsExpense() bool {
	return t.Type != TypeIncome
}

func (t Transaction) Validate() error {
	switch t.Type {
	case TypeIncome, TypeExpense:
	default:
		return ErrInvalidType
	}
	if t.Amount.Cents < 0 {
		return ErrInvalidAmount
	}
	if strings.TrimSpace(t.Category) == "" {
		return ErrEmptyCategory
	}
	return nil
}

func (b Budget) Validate() error {
	if strings.TrimSpace(b.Name) == "" {
		return ErrEmptyBudgetName
	}
	if b.Amount.Cents <= 0 {
		return ErrInvalidAmount
	}
	return nil
}
