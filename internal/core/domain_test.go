package core

import (
	"errors"
	"testing"
)

func TestTransactionValidate(t *testing.T) {
	valid := Transaction{Type: TypeExpense, Category: "Food", Amount: Money{Cents: 100}, Date: "2025-01-01"}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid transaction rejected: %v", err)
	}

	bad := valid
	bad.Type = "Transfer"
	if !errors.Is(bad.Validate(), ErrInvalidType) {
		t.Error("unknown type should be rejected")
	}

	bad = valid
	bad.Category = "  "
	if !errors.Is(bad.Validate(), ErrEmptyCategory) {
		t.Error("blank category should be rejected")
	}

	bad = valid
	bad.Amount = Money{Cents: -1}
	if !errors.Is(bad.Validate(), ErrInvalidAmount) {
		t.Error("negative amount should be rejected")
	}
}

func TestBudgetValidate(t *testing.T) {
	if err := (Budget{Name: "Food", Amount: Money{Cents: 100}}).Validate(); err != nil {
		t.Fatalf("valid budget rejected: %v", err)
	}
	if err := (Budget{Name: "Food"}).Validate(); !errors.Is(err, ErrInvalidAmount) {
		t.Error("zero amount budget should be rejected")
	}
	if err := (Budget{Amount: Money{Cents: 100}}).Validate(); !errors.Is(err, ErrEmptyBudgetName) {
		t.Error("unnamed budget should be rejected")
	}
}
