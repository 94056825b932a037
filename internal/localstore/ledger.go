package localstore

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"budgetry/internal/core"
)

// Ledger is the typed view over a Store. Every mutation follows the
// read-modify-replace pattern: decode the whole collection, change it,
// write the whole collection back.
type Ledger struct {
	store Store
}

func NewLedger(store Store) *Ledger {
	return &Ledger{store: store}
}

// Store exposes the underlying raw store, e.g. for fingerprinting.
func (l *Ledger) Store() Store {
	return l.store
}

func (l *Ledger) Transactions(ctx context.Context) ([]core.Transaction, error) {
	return decodeTransactions(ctx, l.store, CollectionTransactions)
}

func (l *Ledger) ImportedTransactions(ctx context.Context) ([]core.Transaction, error) {
	return decodeTransactions(ctx, l.store, CollectionImported)
}

func (l *Ledger) PutTransactions(ctx context.Context, txs []core.Transaction) error {
	return encode(ctx, l.store, CollectionTransactions, txs)
}

func (l *Ledger) PutImportedTransactions(ctx context.Context, txs []core.Transaction) error {
	return encode(ctx, l.store, CollectionImported, txs)
}

func (l *Ledger) Budgets(ctx context.Context) ([]core.Budget, error) {
	raw, err := l.store.Get(ctx, CollectionBudgets)
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, nil
	}
	var budgets []core.Budget
	if err := json.Unmarshal(raw, &budgets); err != nil {
		return nil, fmt.Errorf("decode budgets: %w", err)
	}
	return budgets, nil
}

func (l *Ledger) PutBudgets(ctx context.Context, budgets []core.Budget) error {
	return encode(ctx, l.store, CollectionBudgets, budgets)
}

// Theme returns the stored theme, defaulting to light.
func (l *Ledger) Theme(ctx context.Context) (string, error) {
	raw, err := l.store.Get(ctx, CollectionTheme)
	if err != nil {
		return ThemeLight, err
	}
	var theme string
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &theme); err != nil {
			theme = ""
		}
	}
	if theme != ThemeDark {
		theme = ThemeLight
	}
	return theme, nil
}

func (l *Ledger) SetTheme(ctx context.Context, theme string) error {
	if theme != ThemeLight && theme != ThemeDark {
		return fmt.Errorf("unknown theme %q", theme)
	}
	return encode(ctx, l.store, CollectionTheme, theme)
}

// AddBudget validates and stores a new budget, assigning its ID.
func (l *Ledger) AddBudget(ctx context.Context, b core.Budget) (core.Budget, error) {
	if b.Emoji == "" {
		b.Emoji = "💰"
	}
	if err := b.Validate(); err != nil {
		return core.Budget{}, err
	}
	b.ID = uuid.NewString()
	b.Spent = core.Money{}
	budgets, err := l.Budgets(ctx)
	if err != nil {
		return core.Budget{}, err
	}
	budgets = append(budgets, b)
	if err := l.PutBudgets(ctx, budgets); err != nil {
		return core.Budget{}, err
	}
	return b, nil
}

// UpdateBudget replaces the budget with the same ID.
func (l *Ledger) UpdateBudget(ctx context.Context, b core.Budget) error {
	if err := b.Validate(); err != nil {
		return err
	}
	budgets, err := l.Budgets(ctx)
	if err != nil {
		return err
	}
	for i := range budgets {
		if budgets[i].ID == b.ID {
			budgets[i] = b
			return l.PutBudgets(ctx, budgets)
		}
	}
	return fmt.Errorf("budget %s not found", b.ID)
}

// DeleteBudget removes a budget and cascades to every expense
// transaction whose category equals the budget name.
func (l *Ledger) DeleteBudget(ctx context.Context, id string) error {
	budgets, err := l.Budgets(ctx)
	if err != nil {
		return err
	}
	var deleted *core.Budget
	kept := budgets[:0]
	for i := range budgets {
		if budgets[i].ID == id {
			b := budgets[i]
			deleted = &b
			continue
		}
		kept = append(kept, budgets[i])
	}
	if deleted == nil {
		return fmt.Errorf("budget %s not found", id)
	}

	txs, err := l.Transactions(ctx)
	if err != nil {
		return err
	}
	remaining := make([]core.Transaction, 0, len(txs))
	for _, t := range txs {
		if t.Type == core.TypeExpense && t.Category == deleted.Name {
			continue
		}
		remaining = append(remaining, t)
	}
	if err := l.PutTransactions(ctx, remaining); err != nil {
		return err
	}
	return l.PutBudgets(ctx, kept)
}

// AddTransaction validates and appends a transaction, assigning its ID
// and defaulting the date to today in canonical form.
func (l *Ledger) AddTransaction(ctx context.Context, t core.Transaction) (core.Transaction, error) {
	if t.Date == "" {
		t.Date = time.Now().UTC().Format(core.DateLayout)
	}
	if err := t.Validate(); err != nil {
		return core.Transaction{}, err
	}
	t.ID = uuid.NewString()
	txs, err := l.Transactions(ctx)
	if err != nil {
		return core.Transaction{}, err
	}
	txs = append(txs, t)
	if err := l.PutTransactions(ctx, txs); err != nil {
		return core.Transaction{}, err
	}
	return t, nil
}

func (l *Ledger) DeleteTransaction(ctx context.Context, id string) error {
	txs, err := l.Transactions(ctx)
	if err != nil {
		return err
	}
	kept := txs[:0]
	found := false
	for i := range txs {
		if txs[i].ID == id {
			found = true
			continue
		}
		kept = append(kept, txs[i])
	}
	if !found {
		return fmt.Errorf("transaction %s not found", id)
	}
	return l.PutTransactions(ctx, kept)
}

// ClearTransactions empties both transaction collections.
func (l *Ledger) ClearTransactions(ctx context.Context) error {
	if err := l.PutTransactions(ctx, []core.Transaction{}); err != nil {
		return err
	}
	return l.PutImportedTransactions(ctx, []core.Transaction{})
}

// UncategorizedExpenses lists distinct expense categories that match no
// budget name. Category linkage is by string equality only, so this is
// the consistency check at the boundary.
func (l *Ledger) UncategorizedExpenses(ctx context.Context) ([]string, error) {
	budgets, err := l.Budgets(ctx)
	if err != nil {
		return nil, err
	}
	txs, err := l.Transactions(ctx)
	if err != nil {
		return nil, err
	}
	known := make(map[string]struct{}, len(budgets))
	for _, b := range budgets {
		known[b.Name] = struct{}{}
	}
	seen := make(map[string]struct{})
	var out []string
	for _, t := range txs {
		if t.Type != core.TypeExpense {
			continue
		}
		if _, ok := known[t.Category]; ok {
			continue
		}
		if _, dup := seen[t.Category]; dup {
			continue
		}
		seen[t.Category] = struct{}{}
		out = append(out, t.Category)
	}
	return out, nil
}

func decodeTransactions(ctx context.Context, s Store, c Collection) ([]core.Transaction, error) {
	raw, err := s.Get(ctx, c)
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, nil
	}
	var txs []core.Transaction
	if err := json.Unmarshal(raw, &txs); err != nil {
		return nil, fmt.Errorf("decode %s: %w", c, err)
	}
	return txs, nil
}

func encode(ctx context.Context, s Store, c Collection, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", c, err)
	}
	return s.Put(ctx, c, raw)
}
