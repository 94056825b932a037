package localstore

import (
	"context"
	"errors"
	"testing"

	"budgetry/internal/core"
)

func newTestLedger(t *testing.T) *Ledger {
	t.Helper()
	return NewLedger(NewMemory())
}

func TestAddBudgetAssignsID(t *testing.T) {
	ctx := context.Background()
	l := newTestLedger(t)

	b, err := l.AddBudget(ctx, core.Budget{Name: "Food", Amount: core.Money{Cents: 500000}})
	if err != nil {
		t.Fatalf("AddBudget: %v", err)
	}
	if b.ID == "" {
		t.Fatal("budget ID not assigned")
	}
	if b.Emoji == "" {
		t.Fatal("default emoji not assigned")
	}

	budgets, err := l.Budgets(ctx)
	if err != nil {
		t.Fatalf("Budgets: %v", err)
	}
	if len(budgets) != 1 || budgets[0].Name != "Food" {
		t.Fatalf("budgets = %+v", budgets)
	}
}

func TestAddBudgetRejectsInvalid(t *testing.T) {
	ctx := context.Background()
	l := newTestLedger(t)

	_, err := l.AddBudget(ctx, core.Budget{Name: "  ", Amount: core.Money{Cents: 100}})
	if !errors.Is(err, core.ErrEmptyBudgetName) {
		t.Fatalf("err = %v, want ErrEmptyBudgetName", err)
	}
	_, err = l.AddBudget(ctx, core.Budget{Name: "Food", Amount: core.Money{}})
	if !errors.Is(err, core.ErrInvalidAmount) {
		t.Fatalf("err = %v, want ErrInvalidAmount", err)
	}
}

func TestAddTransactionDefaultsDate(t *testing.T) {
	ctx := context.Background()
	l := newTestLedger(t)

	tx, err := l.AddTransaction(ctx, core.Transaction{
		Type:     core.TypeExpense,
		Amount:   core.Money{Cents: 2500},
		Category: "Food",
	})
	if err != nil {
		t.Fatalf("AddTransaction: %v", err)
	}
	if tx.ID == "" {
		t.Fatal("transaction ID not assigned")
	}
	if _, ok := core.ParseDay(tx.Date); !ok {
		t.Fatalf("defaulted date %q is not canonical", tx.Date)
	}
}

func TestDeleteBudgetCascades(t *testing.T) {
	ctx := context.Background()
	l := newTestLedger(t)

	food, err := l.AddBudget(ctx, core.Budget{Name: "Food", Amount: core.Money{Cents: 500000}})
	if err != nil {
		t.Fatalf("AddBudget: %v", err)
	}
	if _, err := l.AddBudget(ctx, core.Budget{Name: "Travel", Amount: core.Money{Cents: 300000}}); err != nil {
		t.Fatalf("AddBudget: %v", err)
	}

	seed := []core.Transaction{
		{ID: "1", Type: core.TypeExpense, Amount: core.Money{Cents: 1000}, Category: "Food", Date: "2025-01-10"},
		{ID: "2", Type: core.TypeExpense, Amount: core.Money{Cents: 2000}, Category: "Travel", Date: "2025-01-11"},
		{ID: "3", Type: core.TypeIncome, Amount: core.Money{Cents: 9000}, Category: "Food", Date: "2025-01-12"},
	}
	if err := l.PutTransactions(ctx, seed); err != nil {
		t.Fatalf("PutTransactions: %v", err)
	}

	if err := l.DeleteBudget(ctx, food.ID); err != nil {
		t.Fatalf("DeleteBudget: %v", err)
	}

	budgets, _ := l.Budgets(ctx)
	if len(budgets) != 1 || budgets[0].Name != "Travel" {
		t.Fatalf("budgets after cascade = %+v", budgets)
	}

	txs, _ := l.Transactions(ctx)
	if len(txs) != 2 {
		t.Fatalf("transactions after cascade = %+v", txs)
	}
	for _, tx := range txs {
		if tx.Type == core.TypeExpense && tx.Category == "Food" {
			t.Fatalf("expense in deleted category survived: %+v", tx)
		}
	}
	// income in the same category is untouched
	if txs[1].ID != "3" {
		t.Fatalf("income transaction removed by cascade: %+v", txs)
	}
}

func TestDeleteBudgetUnknownID(t *testing.T) {
	ctx := context.Background()
	l := newTestLedger(t)
	if err := l.DeleteBudget(ctx, "nope"); err == nil {
		t.Fatal("expected error for unknown budget")
	}
}

func TestDeleteTransaction(t *testing.T) {
	ctx := context.Background()
	l := newTestLedger(t)

	tx, err := l.AddTransaction(ctx, core.Transaction{
		Type:     core.TypeIncome,
		Amount:   core.Money{Cents: 100000},
		Category: "Salary",
		Date:     "2025-02-01",
	})
	if err != nil {
		t.Fatalf("AddTransaction: %v", err)
	}
	if err := l.DeleteTransaction(ctx, tx.ID); err != nil {
		t.Fatalf("DeleteTransaction: %v", err)
	}
	txs, _ := l.Transactions(ctx)
	if len(txs) != 0 {
		t.Fatalf("transactions = %+v", txs)
	}
	if err := l.DeleteTransaction(ctx, tx.ID); err == nil {
		t.Fatal("expected error deleting twice")
	}
}

func TestClearTransactions(t *testing.T) {
	ctx := context.Background()
	l := newTestLedger(t)

	if err := l.PutTransactions(ctx, []core.Transaction{{ID: "1", Type: core.TypeExpense, Amount: core.Money{Cents: 1}, Category: "Misc", Date: "2025-01-01"}}); err != nil {
		t.Fatalf("PutTransactions: %v", err)
	}
	if err := l.PutImportedTransactions(ctx, []core.Transaction{{ID: "2", Type: core.TypeExpense, Amount: core.Money{Cents: 1}, Category: "Misc", Date: "2025-01-01", Imported: true}}); err != nil {
		t.Fatalf("PutImportedTransactions: %v", err)
	}

	if err := l.ClearTransactions(ctx); err != nil {
		t.Fatalf("ClearTransactions: %v", err)
	}
	txs, _ := l.Transactions(ctx)
	imported, _ := l.ImportedTransactions(ctx)
	if len(txs) != 0 || len(imported) != 0 {
		t.Fatalf("collections not cleared: %d/%d", len(txs), len(imported))
	}
}

func TestThemeDefaultsToLight(t *testing.T) {
	ctx := context.Background()
	l := newTestLedger(t)

	theme, err := l.Theme(ctx)
	if err != nil {
		t.Fatalf("Theme: %v", err)
	}
	if theme != ThemeLight {
		t.Fatalf("theme = %q, want %q", theme, ThemeLight)
	}

	if err := l.SetTheme(ctx, ThemeDark); err != nil {
		t.Fatalf("SetTheme: %v", err)
	}
	theme, _ = l.Theme(ctx)
	if theme != ThemeDark {
		t.Fatalf("theme = %q, want %q", theme, ThemeDark)
	}

	if err := l.SetTheme(ctx, "sepia"); err == nil {
		t.Fatal("expected error for unknown theme")
	}
}

func TestUncategorizedExpenses(t *testing.T) {
	ctx := context.Background()
	l := newTestLedger(t)

	if _, err := l.AddBudget(ctx, core.Budget{Name: "Food", Amount: core.Money{Cents: 100}}); err != nil {
		t.Fatalf("AddBudget: %v", err)
	}
	seed := []core.Transaction{
		{ID: "1", Type: core.TypeExpense, Amount: core.Money{Cents: 1}, Category: "Food", Date: "2025-01-01"},
		{ID: "2", Type: core.TypeExpense, Amount: core.Money{Cents: 1}, Category: "Gadgets", Date: "2025-01-02"},
		{ID: "3", Type: core.TypeExpense, Amount: core.Money{Cents: 1}, Category: "Gadgets", Date: "2025-01-03"},
		{ID: "4", Type: core.TypeIncome, Amount: core.Money{Cents: 1}, Category: "Bonus", Date: "2025-01-04"},
	}
	if err := l.PutTransactions(ctx, seed); err != nil {
		t.Fatalf("PutTransactions: %v", err)
	}

	got, err := l.UncategorizedExpenses(ctx)
	if err != nil {
		t.Fatalf("UncategorizedExpenses: %v", err)
	}
	if len(got) != 1 || got[0] != "Gadgets" {
		t.Fatalf("got %v, want [Gadgets]", got)
	}
}
