package dashboard

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"budgetry/internal/core"
	"budgetry/internal/localstore"
)

// Snapshot is the full widget state produced by one aggregation run.
type Snapshot struct {
	Cards       SummaryCards
	IncomeDonut CategoryChartView
	ExpenseBar  CategoryChartView
	Radar       RadarView
	BudgetCards []BudgetCard
	Trend       TrendView
	Savings     SavingsView
	Scatter     ScatterView
	Proportion  ProportionView
}

// Consumer receives every completed snapshot. Rendering is
// unconditional; consumers get the whole state on each run.
type Consumer func(Snapshot)

// Pipeline runs the store-to-widgets aggregation. The run lock covers
// fingerprint, build, and consumer fan-out, so a run always completes
// before the next one starts regardless of which goroutine triggered
// it; the last completed run wins.
type Pipeline struct {
	ledger *localstore.Ledger

	runMu           sync.Mutex
	consumers       []Consumer
	lastFingerprint string
	ran             bool
}

func NewPipeline(ledger *localstore.Ledger, consumers ...Consumer) *Pipeline {
	return &Pipeline{ledger: ledger, consumers: consumers}
}

func (p *Pipeline) Subscribe(c Consumer) {
	p.runMu.Lock()
	defer p.runMu.Unlock()
	p.consumers = append(p.consumers, c)
}

// Run reads all collections, aggregates, and fans the snapshot out to
// every consumer. Concurrent callers queue behind the run lock.
func (p *Pipeline) Run(ctx context.Context) error {
	p.runMu.Lock()
	defer p.runMu.Unlock()
	return p.run(ctx)
}

// RunIfChanged skips the run when the store fingerprint matches the
// last completed run. The fingerprint is an optimization only; a false
// negative just means one redundant run.
func (p *Pipeline) RunIfChanged(ctx context.Context) error {
	p.runMu.Lock()
	defer p.runMu.Unlock()

	fingerprint, err := localstore.Fingerprint(ctx, p.ledger.Store())
	if err != nil {
		return fmt.Errorf("fingerprint store: %w", err)
	}
	if p.ran && fingerprint == p.lastFingerprint {
		slog.DebugContext(ctx, "Store unchanged, skipping aggregation run")
		return nil
	}
	return p.run(ctx)
}

// run does one aggregation pass. Callers hold runMu.
func (p *Pipeline) run(ctx context.Context) error {
	fingerprint, err := localstore.Fingerprint(ctx, p.ledger.Store())
	if err != nil {
		return fmt.Errorf("fingerprint store: %w", err)
	}
	snapshot, err := p.build(ctx)
	if err != nil {
		return err
	}

	p.lastFingerprint = fingerprint
	p.ran = true

	for _, c := range p.consumers {
		c(snapshot)
	}
	return nil
}

func (p *Pipeline) build(ctx context.Context) (Snapshot, error) {
	budgets, err := p.ledger.Budgets(ctx)
	if err != nil {
		return Snapshot{}, fmt.Errorf("read budgets: %w", err)
	}
	stored, err := p.ledger.Transactions(ctx)
	if err != nil {
		return Snapshot{}, fmt.Errorf("read transactions: %w", err)
	}
	imported, err := p.ledger.ImportedTransactions(ctx)
	if err != nil {
		return Snapshot{}, fmt.Errorf("read imported transactions: %w", err)
	}

	manual := make([]core.Transaction, 0, len(stored))
	for _, t := range stored {
		if t.Imported {
			continue
		}
		manual = append(manual, t)
	}

	manual = normalizeDates(manual)
	imported = normalizeDates(imported)
	all := make([]core.Transaction, 0, len(manual)+len(imported))
	all = append(all, manual...)
	all = append(all, imported...)

	summary := core.Summarize(all)
	incomeByCat, expenseByCat := core.Categorize(all)
	buckets := core.MonthlyBuckets(all)
	rate := core.SavingsRate(summary)
	// budget comparison uses manual transactions only
	usage := core.BudgetUtilization(budgets, manual)

	snapshot := Snapshot{
		Cards:       BuildSummaryCards(summary),
		IncomeDonut: BuildCategoryChart(incomeByCat, categoryOrder(all, true), IncomePalette),
		ExpenseBar:  BuildCategoryChart(expenseByCat, categoryOrder(all, false), ExpensePalette),
		Radar:       BuildBudgetRadar(usage),
		BudgetCards: BuildBudgetCards(budgets, manual),
		Trend:       BuildTrend(buckets),
		Savings:     BuildSavings(rate),
		Scatter:     BuildScatter(all),
		Proportion:  BuildProportion(summary),
	}

	slog.DebugContext(ctx, "Aggregation run complete",
		"transactions", len(all),
		"budgets", len(budgets),
		"months", len(buckets))

	return snapshot, nil
}

func normalizeDates(txs []core.Transaction) []core.Transaction {
	out := make([]core.Transaction, len(txs))
	for i, t := range txs {
		t.Date = core.NormalizeDate(t.Date)
		out[i] = t
	}
	return out
}
