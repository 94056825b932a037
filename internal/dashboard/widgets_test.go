package dashboard

import (
	"testing"

	"budgetry/internal/core"
)

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		cents int64
		want  string
	}{
		{0, "₹0.00"},
		{1000, "₹10.00"},
		{99999, "₹999.99"},
		{100000, "₹1,000.00"},
		{123456789, "₹12,34,567.89"},
		{10000000000, "₹10,00,00,000.00"},
		{-5000, "-₹50.00"},
	}
	for _, tt := range tests {
		got := FormatCurrency(core.Money{Cents: tt.cents})
		if got != tt.want {
			t.Errorf("FormatCurrency(%d) = %q, want %q", tt.cents, got, tt.want)
		}
	}
}

func TestBuildCategoryChartStableColors(t *testing.T) {
	txs := []core.Transaction{
		{Type: core.TypeExpense, Amount: core.Money{Cents: 100}, Category: "Food"},
		{Type: core.TypeExpense, Amount: core.Money{Cents: 200}, Category: "Travel"},
		{Type: core.TypeExpense, Amount: core.Money{Cents: 300}, Category: "Food"},
	}
	_, expenses := core.Categorize(txs)
	order := categoryOrder(txs, false)

	first := BuildCategoryChart(expenses, order, ExpensePalette)
	second := BuildCategoryChart(expenses, order, ExpensePalette)

	if len(first.Labels) != 2 {
		t.Fatalf("labels = %v", first.Labels)
	}
	if first.Labels[0] != "Food" || first.Labels[1] != "Travel" {
		t.Fatalf("order not first-appearance: %v", first.Labels)
	}
	for i := range first.Colors {
		if first.Colors[i] != second.Colors[i] {
			t.Fatalf("colors not stable across runs: %v vs %v", first.Colors, second.Colors)
		}
	}
	if first.Colors[0] != ExpensePalette.At(0) {
		t.Fatalf("color[0] = %q, want palette index 0", first.Colors[0])
	}
	if first.Legend[0].Text != "Food: ₹4.00" {
		t.Fatalf("legend text = %q", first.Legend[0].Text)
	}
}

func TestPaletteWrapsAround(t *testing.T) {
	if SavingsPalette.At(2) != SavingsPalette.At(0) {
		t.Fatal("palette index does not wrap modulo length")
	}
}

func TestBuildBudgetRadarPlaceholder(t *testing.T) {
	view := BuildBudgetRadar(nil)
	if len(view.Labels) != 1 || view.Labels[0] != NoBudgetsLabel {
		t.Fatalf("labels = %v, want [%s]", view.Labels, NoBudgetsLabel)
	}
	if view.Allocated[0] != 0 || view.Spent[0] != 0 {
		t.Fatalf("placeholder series not zeroed: %v %v", view.Allocated, view.Spent)
	}
	if len(view.Legend) != 0 {
		t.Fatalf("placeholder legend = %v", view.Legend)
	}
}

func TestBuildBudgetRadarOverspend(t *testing.T) {
	usage := []core.BudgetUsage{
		{
			Budget:     core.Budget{Name: "Food", Emoji: "🍕", Amount: core.Money{Cents: 100000}},
			Spent:      core.Money{Cents: 150000},
			Percentage: 150,
		},
		{
			Budget:     core.Budget{Name: "Travel", Emoji: "✈️", Amount: core.Money{Cents: 50000}},
			Spent:      core.Money{Cents: 20000},
			Percentage: 40,
		},
	}
	view := BuildBudgetRadar(usage)
	if view.Legend[0].Text != "Over!" {
		t.Fatalf("overspent legend = %q, want Over!", view.Legend[0].Text)
	}
	if view.Legend[0].Color != OverBudgetColor {
		t.Fatalf("overspent color = %q", view.Legend[0].Color)
	}
	if view.Legend[1].Text != "40.0%" {
		t.Fatalf("legend = %q, want 40.0%%", view.Legend[1].Text)
	}
	if view.Labels[0] != "Food 🍕" {
		t.Fatalf("label = %q", view.Labels[0])
	}
}

func TestBuildBudgetCardsOverspend(t *testing.T) {
	budgets := []core.Budget{
		{Name: "Food", Emoji: "🍕", Amount: core.Money{Cents: 100000}},
	}
	txs := []core.Transaction{
		{Type: core.TypeExpense, Amount: core.Money{Cents: 150000}, Category: "Food", Date: "2025-03-01"},
	}

	cards := BuildBudgetCards(budgets, txs)
	if len(cards) != 1 {
		t.Fatalf("cards = %d, want 1", len(cards))
	}
	c := cards[0]
	if c.Spent.Cents != 150000 {
		t.Errorf("spent = %d, want 150000", c.Spent.Cents)
	}
	if c.Remaining.Cents != -50000 {
		t.Errorf("remaining = %d, want -50000", c.Remaining.Cents)
	}
	// bar caps at 100 even though utilization is 150%
	if c.Progress != 100 {
		t.Errorf("progress = %v, want 100", c.Progress)
	}

	usage := core.BudgetUtilization(budgets, txs)
	if usage[0].Percentage != 150 {
		t.Errorf("utilization = %v, want uncapped 150", usage[0].Percentage)
	}
}

func TestBuildBudgetCardsKeepsOrderAndAllBudgets(t *testing.T) {
	budgets := make([]core.Budget, 0, 7)
	for _, name := range []string{"A", "B", "C", "D", "E", "F", "G"} {
		budgets = append(budgets, core.Budget{Name: name, Amount: core.Money{Cents: 50000}})
	}
	txs := []core.Transaction{
		{Type: core.TypeExpense, Amount: core.Money{Cents: 20000}, Category: "C", Date: "2025-03-01"},
		{Type: core.TypeIncome, Amount: core.Money{Cents: 99999}, Category: "C", Date: "2025-03-02"},
	}

	cards := BuildBudgetCards(budgets, txs)
	if len(cards) != 7 {
		t.Fatalf("cards = %d, want all 7", len(cards))
	}
	if cards[0].Name != "A" || cards[6].Name != "G" {
		t.Errorf("card order = %q..%q, want stored order", cards[0].Name, cards[6].Name)
	}
	c := cards[2]
	if c.Spent.Cents != 20000 || c.Remaining.Cents != 30000 {
		t.Errorf("card C spent/remaining = %d/%d", c.Spent.Cents, c.Remaining.Cents)
	}
	if c.Progress != 40 {
		t.Errorf("card C progress = %v, want 40", c.Progress)
	}
}

func TestBuildTrendDefaultMonths(t *testing.T) {
	view := BuildTrend(nil)
	if len(view.Labels) != 6 {
		t.Fatalf("labels = %v", view.Labels)
	}
	if view.Labels[0] != "Jan 2025" {
		t.Fatalf("labels[0] = %q", view.Labels[0])
	}
	for i := range view.Income {
		if view.Income[i] != 0 || view.Expense[i] != 0 {
			t.Fatal("default trend series not zeroed")
		}
	}
}

func TestBuildSavings(t *testing.T) {
	view := BuildSavings(37.5)
	if view.Values[0] != 37.5 || view.Values[1] != 62.5 {
		t.Fatalf("values = %v", view.Values)
	}
	if view.Labels[0] != "Savings (37.5%)" {
		t.Fatalf("labels = %v", view.Labels)
	}
}

func TestBuildScatterDropsInvalidDates(t *testing.T) {
	txs := []core.Transaction{
		{Type: core.TypeIncome, Amount: core.Money{Cents: 1000}, Date: "2025-03-01"},
		{Type: core.TypeExpense, Amount: core.Money{Cents: 500}, Date: "not-a-date"},
		{Type: core.TypeExpense, Amount: core.Money{Cents: 700}, Date: "2025-03-02"},
	}
	view := BuildScatter(txs)
	if len(view.Income) != 1 || len(view.Expense) != 1 {
		t.Fatalf("scatter series = %d income / %d expense", len(view.Income), len(view.Expense))
	}
}

func TestBuildProportionEmpty(t *testing.T) {
	view := BuildProportion(core.Summary{})
	if view.Percentages[0] != 0 || view.Percentages[1] != 0 {
		t.Fatalf("percentages = %v", view.Percentages)
	}
}

func TestBuildProportion(t *testing.T) {
	view := BuildProportion(core.Summary{
		Income:  core.Money{Cents: 75000},
		Expense: core.Money{Cents: 25000},
	})
	if view.Percentages[0] != 75 || view.Percentages[1] != 25 {
		t.Fatalf("percentages = %v", view.Percentages)
	}
	if view.Legend[0].Text != "Income: 75.0% (₹750.00)" {
		t.Fatalf("legend = %q", view.Legend[0].Text)
	}
}
