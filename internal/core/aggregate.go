package core

import (
	"sort"
	"time"
)

// Summary is the flat income/expense rollup recomputed on every run.
type Summary struct {
	Income  Money
	Expense Money
	Balance Money
}

// MonthBucket accumulates income and expense for one calendar month.
type MonthBucket struct {
	Label   string
	Month   time.Time
	Income  Money
	Expense Money
}

// BudgetUsage pairs a budget with its recomputed spend.
type BudgetUsage struct {
	Budget     Budget
	Spent      Money
	Percentage float64
}

// TopBudgets is how many utilization rows the dashboard displays. A
// display policy, not a data limit.
const TopBudgets = 6

// Summarize sums amounts over the type partition. Transactions with a
// date that never parsed are still counted here.
func Summarize(txs []Transaction) Summary {
	var s Summary
	for _, t := range txs {
		if t.IsExpense() {
			s.Expense = s.Expense.Add(t.Amount)
		} else {
			s.Income = s.Income.Add(t.Amount)
		}
	}
	s.Balance = Money{Cents: s.Income.Cents - s.Expense.Cents}
	return s
}

// Categorize returns per-category sums partitioned by type. One entry
// per distinct category; map iteration order is not meaningful.
func Categorize(txs []Transaction) (income, expense map[string]Money) {
	income = make(map[string]Money)
	expense = make(map[string]Money)
	for _, t := range txs {
		if t.IsExpense() {
			expense[t.Category] = expense[t.Category].Add(t.Amount)
		} else {
			income[t.Category] = income[t.Category].Add(t.Amount)
		}
	}
	return income, expense
}

// MonthlyBuckets groups transactions by the month of their normalized
// date. Entries whose date does not parse are skipped. The result is
// sorted ascending by the underlying month, not by label string, so
// "Jan 2025" precedes "Feb 2025".
func MonthlyBuckets(txs []Transaction) []MonthBucket {
	byMonth := make(map[time.Time]*MonthBucket)
	for _, t := range txs {
		day, ok := ParseDay(t.Date)
		if !ok {
			continue
		}
		month := time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, time.UTC)
		b, exists := byMonth[month]
		if !exists {
			b = &MonthBucket{Label: month.Format(MonthLayout), Month: month}
			byMonth[month] = b
		}
		if t.IsExpense() {
			b.Expense = b.Expense.Add(t.Amount)
		} else {
			b.Income = b.Income.Add(t.Amount)
		}
	}
	out := make([]MonthBucket, 0, len(byMonth))
	for _, b := range byMonth {
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month.Before(out[j].Month) })
	return out
}

// SavingsRate is (income-expense)/income as a percentage, clamped to
// [0,100]. Zero income (or negative) yields 0, which guards both the
// divide-by-zero and the negative-rate case.
func SavingsRate(s Summary) float64 {
	if s.Income.Cents <= 0 {
		return 0
	}
	rate := float64(s.Income.Cents-s.Expense.Cents) / float64(s.Income.Cents) * 100
	if rate < 0 {
		return 0
	}
	if rate > 100 {
		return 100
	}
	return rate
}

// BudgetUtilization recomputes spend for every budget from the expense
// transactions whose category equals the budget name. Percentage is
// deliberately uncapped: values above 100 signal overspend. The result
// is sorted descending by budget amount and truncated to TopBudgets.
func BudgetUtilization(budgets []Budget, txs []Transaction) []BudgetUsage {
	usages := make([]BudgetUsage, 0, len(budgets))
	for _, b := range budgets {
		var spent Money
		for _, t := range txs {
			if t.Type == TypeExpense && t.Category == b.Name {
				spent = spent.Add(t.Amount)
			}
		}
		var pct float64
		if b.Amount.Cents > 0 {
			pct = float64(spent.Cents) / float64(b.Amount.Cents) * 100
		}
		usages = append(usages, BudgetUsage{Budget: b, Spent: spent, Percentage: pct})
	}
	sort.SliceStable(usages, func(i, j int) bool {
		return usages[i].Budget.Amount.Cents > usages[j].Budget.Amount.Cents
	})
	if len(usages) > TopBudgets {
		usages = usages[:TopBudgets]
	}
	return usages
}
