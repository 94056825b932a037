// Package dashboard turns aggregated transaction data into widget view
// models and orchestrates when those models are rebuilt.
package dashboard

import (
	"fmt"
	"time"

	"budgetry/internal/core"
)

// NoBudgetsLabel is the radar placeholder rendered when no budgets exist.
const NoBudgetsLabel = "No Budgets"

// SummaryCards holds the three formatted headline figures.
type SummaryCards struct {
	Balance string
	Income  string
	Expense string
}

// LegendEntry is one row of a widget legend.
type LegendEntry struct {
	Label string
	Color string
	Text  string
}

// CategoryChartView backs the income doughnut and the expense bar:
// one value and one palette color per category.
type CategoryChartView struct {
	Labels []string
	Values []float64
	Colors []string
	Legend []LegendEntry
}

// RadarView backs the budget radar with its allocated and spent series.
type RadarView struct {
	Labels    []string
	Allocated []float64
	Spent     []float64
	Legend    []LegendEntry
}

// TrendView backs the monthly income/expense line chart.
type TrendView struct {
	Labels  []string
	Income  []float64
	Expense []float64
}

// SavingsView backs the savings-rate doughnut.
type SavingsView struct {
	Labels []string
	Values []float64
	Colors []string
}

// ScatterPoint is one transaction plotted by day and amount.
type ScatterPoint struct {
	Day    time.Time
	Amount float64
}

// ScatterView backs the transaction scatter plot.
type ScatterView struct {
	Income       []ScatterPoint
	Expense      []ScatterPoint
	IncomeColor  string
	ExpenseColor string
}

// ProportionView backs the income/expense share pie.
type ProportionView struct {
	Labels      []string
	Percentages []float64
	Amounts     []core.Money
	Colors      []string
	Legend      []LegendEntry
}

func BuildSummaryCards(s core.Summary) SummaryCards {
	return SummaryCards{
		Balance: FormatCurrency(s.Balance),
		Income:  FormatCurrency(s.Income),
		Expense: FormatCurrency(s.Expense),
	}
}

// BuildCategoryChart maps per-category totals into a chart view. The
// category order is first appearance in the transaction list, which
// keeps colors stable across runs over the same data.
func BuildCategoryChart(totals map[string]core.Money, order []string, palette Palette) CategoryChartView {
	view := CategoryChartView{}
	for i, category := range order {
		amount, ok := totals[category]
		if !ok {
			continue
		}
		color := palette.At(i)
		view.Labels = append(view.Labels, category)
		view.Values = append(view.Values, amount.Float())
		view.Colors = append(view.Colors, color)
		view.Legend = append(view.Legend, LegendEntry{
			Label: category,
			Color: color,
			Text:  fmt.Sprintf("%s: %s", category, FormatCurrency(amount)),
		})
	}
	return view
}

// BuildBudgetRadar maps budget utilization into the radar view. Empty
// input renders the placeholder rather than an empty chart.
func BuildBudgetRadar(usage []core.BudgetUsage) RadarView {
	if len(usage) == 0 {
		return RadarView{
			Labels:    []string{NoBudgetsLabel},
			Allocated: []float64{0},
			Spent:     []float64{0},
		}
	}
	view := RadarView{}
	for _, u := range usage {
		view.Labels = append(view.Labels, fmt.Sprintf("%s %s", u.Budget.Name, u.Budget.Emoji))
		view.Allocated = append(view.Allocated, u.Budget.Amount.Float())
		view.Spent = append(view.Spent, u.Spent.Float())

		utilization := fmt.Sprintf("%.1f%%", u.Percentage)
		color := UnderBudgetColor
		if u.Percentage > 100 {
			utilization = "Over!"
			color = OverBudgetColor
		}
		view.Legend = append(view.Legend, LegendEntry{
			Label: fmt.Sprintf("%s %s", u.Budget.Name, u.Budget.Emoji),
			Color: color,
			Text:  utilization,
		})
	}
	return view
}

// BudgetCard backs one card in the budgets view. Remaining goes
// negative when the budget is overspent; Progress is the bar fill and
// caps at 100, unlike the radar legend's uncapped percentage.
type BudgetCard struct {
	Name      string
	Emoji     string
	Amount    core.Money
	Spent     core.Money
	Remaining core.Money
	Progress  float64
}

// BuildBudgetCards maps every budget to its card, recomputing spend
// from the matching expense transactions. Cards keep the stored budget
// order and are never truncated.
func BuildBudgetCards(budgets []core.Budget, txs []core.Transaction) []BudgetCard {
	cards := make([]BudgetCard, 0, len(budgets))
	for _, b := range budgets {
		var spent core.Money
		for _, t := range txs {
			if t.Type == core.TypeExpense && t.Category == b.Name {
				spent = spent.Add(t.Amount)
			}
		}

		progress := 0.0
		if b.Amount.Cents > 0 {
			progress = spent.Float() / b.Amount.Float() * 100
			if progress > 100 {
				progress = 100
			}
		} else if spent.Cents > 0 {
			progress = 100
		}

		cards = append(cards, BudgetCard{
			Name:      b.Name,
			Emoji:     b.Emoji,
			Amount:    b.Amount,
			Spent:     spent,
			Remaining: b.Amount.Sub(spent),
			Progress:  progress,
		})
	}
	return cards
}

// BuildTrend maps monthly buckets into the line chart view, filling a
// default six-month axis when there is no data to plot.
func BuildTrend(buckets []core.MonthBucket) TrendView {
	if len(buckets) == 0 {
		labels := []string{"Jan 2025", "Feb 2025", "Mar 2025", "Apr 2025", "May 2025", "Jun 2025"}
		zeros := make([]float64, len(labels))
		return TrendView{Labels: labels, Income: zeros, Expense: zeros}
	}
	view := TrendView{}
	for _, b := range buckets {
		view.Labels = append(view.Labels, b.Label)
		view.Income = append(view.Income, b.Income.Float())
		view.Expense = append(view.Expense, b.Expense.Float())
	}
	return view
}

func BuildSavings(rate float64) SavingsView {
	remaining := 100 - rate
	return SavingsView{
		Labels: []string{
			fmt.Sprintf("Savings (%.1f%%)", rate),
			fmt.Sprintf("Expenses (%.1f%%)", remaining),
		},
		Values: []float64{rate, remaining},
		Colors: []string{SavingsPalette.At(0), SavingsPalette.At(1)},
	}
}

// BuildScatter plots every transaction with a parsable date, income and
// expense as separate series. Unparsable dates are dropped here, even
// though they still count toward flat totals.
func BuildScatter(txs []core.Transaction) ScatterView {
	view := ScatterView{
		IncomeColor:  ScatterIncomeColor,
		ExpenseColor: ScatterExpenseColor,
	}
	for _, t := range txs {
		day, ok := core.ParseDay(t.Date)
		if !ok {
			continue
		}
		point := ScatterPoint{Day: day, Amount: t.Amount.Float()}
		if t.Type == core.TypeIncome {
			view.Income = append(view.Income, point)
		} else {
			view.Expense = append(view.Expense, point)
		}
	}
	return view
}

// BuildProportion maps the summary into the income/expense share pie.
// Both shares are zero when there is nothing recorded.
func BuildProportion(s core.Summary) ProportionView {
	total := s.Income.Float() + s.Expense.Float()
	var incomePct, expensePct float64
	if total > 0 {
		incomePct = s.Income.Float() / total * 100
		expensePct = s.Expense.Float() / total * 100
	}
	view := ProportionView{
		Labels:      []string{"Income", "Expenses"},
		Percentages: []float64{incomePct, expensePct},
		Amounts:     []core.Money{s.Income, s.Expense},
		Colors:      []string{ProportionPalette.At(0), ProportionPalette.At(1)},
	}
	for i, label := range view.Labels {
		view.Legend = append(view.Legend, LegendEntry{
			Label: label,
			Color: view.Colors[i],
			Text:  fmt.Sprintf("%s: %.1f%% (%s)", label, view.Percentages[i], FormatCurrency(view.Amounts[i])),
		})
	}
	return view
}

// categoryOrder lists distinct categories of the given partition in
// first-appearance order.
func categoryOrder(txs []core.Transaction, income bool) []string {
	seen := make(map[string]struct{})
	var order []string
	for _, t := range txs {
		if (t.Type == core.TypeIncome) != income {
			continue
		}
		if _, ok := seen[t.Category]; ok {
			continue
		}
		seen[t.Category] = struct{}{}
		order = append(order, t.Category)
	}
	return order
}
