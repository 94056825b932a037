package dashboard

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"budgetry/internal/core"
	"budgetry/internal/localstore"
)

func seedLedger(t *testing.T) *localstore.Ledger {
	t.Helper()
	ctx := context.Background()
	l := localstore.NewLedger(localstore.NewMemory())

	if err := l.PutBudgets(ctx, []core.Budget{
		{ID: "b1", Name: "Food", Amount: core.Money{Cents: 500000}, Emoji: "🍕"},
	}); err != nil {
		t.Fatalf("PutBudgets: %v", err)
	}
	if err := l.PutTransactions(ctx, []core.Transaction{
		{ID: "1", Type: core.TypeIncome, Amount: core.Money{Cents: 1000000}, Category: "Salary", Date: "01/03/2025"},
		{ID: "2", Type: core.TypeExpense, Amount: core.Money{Cents: 200000}, Category: "Food", Date: "2025-03-05"},
	}); err != nil {
		t.Fatalf("PutTransactions: %v", err)
	}
	if err := l.PutImportedTransactions(ctx, []core.Transaction{
		{ID: "3", Type: core.TypeExpense, Amount: core.Money{Cents: 100000}, Category: "Food", Date: "2025-03-06", Imported: true},
	}); err != nil {
		t.Fatalf("PutImportedTransactions: %v", err)
	}
	return l
}

func TestPipelineRun(t *testing.T) {
	ctx := context.Background()
	var got Snapshot
	p := NewPipeline(seedLedger(t), func(s Snapshot) { got = s })

	if err := p.Run(ctx); err != nil {
		t.Fatalf("Run: %v", err)
	}

	// imported expense included in totals
	if got.Cards.Income != "₹10,000.00" {
		t.Errorf("income card = %q", got.Cards.Income)
	}
	if got.Cards.Expense != "₹3,000.00" {
		t.Errorf("expense card = %q", got.Cards.Expense)
	}
	if got.Cards.Balance != "₹7,000.00" {
		t.Errorf("balance card = %q", got.Cards.Balance)
	}

	// DD/MM/YYYY income date normalized into the March bucket
	if len(got.Trend.Labels) != 1 || got.Trend.Labels[0] != "Mar 2025" {
		t.Errorf("trend labels = %v", got.Trend.Labels)
	}

	// radar spend comes from manual transactions only
	if len(got.Radar.Spent) != 1 || got.Radar.Spent[0] != 2000 {
		t.Errorf("radar spent = %v, want [2000]", got.Radar.Spent)
	}

	if len(got.BudgetCards) != 1 || got.BudgetCards[0].Remaining.Cents != 300000 {
		t.Errorf("budget cards = %+v, want Food with ₹3,000.00 remaining", got.BudgetCards)
	}

	if len(got.Scatter.Income) != 1 || len(got.Scatter.Expense) != 2 {
		t.Errorf("scatter = %d income / %d expense", len(got.Scatter.Income), len(got.Scatter.Expense))
	}
}

func TestPipelineEmptyStore(t *testing.T) {
	ctx := context.Background()
	var got Snapshot
	p := NewPipeline(localstore.NewLedger(localstore.NewMemory()), func(s Snapshot) { got = s })

	if err := p.Run(ctx); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got.Cards.Balance != "₹0.00" {
		t.Errorf("balance = %q", got.Cards.Balance)
	}
	if got.Radar.Labels[0] != NoBudgetsLabel {
		t.Errorf("radar labels = %v", got.Radar.Labels)
	}
	if len(got.IncomeDonut.Labels) != 0 || len(got.ExpenseBar.Labels) != 0 {
		t.Errorf("category charts not empty: %v %v", got.IncomeDonut.Labels, got.ExpenseBar.Labels)
	}
}

func TestRunIfChangedSkipsUnchangedStore(t *testing.T) {
	ctx := context.Background()
	ledger := seedLedger(t)
	runs := 0
	p := NewPipeline(ledger, func(Snapshot) { runs++ })

	if err := p.Run(ctx); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if err := p.RunIfChanged(ctx); err != nil {
		t.Fatalf("RunIfChanged: %v", err)
	}
	if runs != 1 {
		t.Fatalf("runs = %d, want 1 (unchanged store re-ran)", runs)
	}

	if _, err := ledger.AddTransaction(ctx, core.Transaction{
		Type:     core.TypeExpense,
		Amount:   core.Money{Cents: 100},
		Category: "Food",
		Date:     "2025-03-07",
	}); err != nil {
		t.Fatalf("AddTransaction: %v", err)
	}
	if err := p.RunIfChanged(ctx); err != nil {
		t.Fatalf("RunIfChanged: %v", err)
	}
	if runs != 2 {
		t.Fatalf("runs = %d, want 2 after store change", runs)
	}
}

func TestConcurrentTriggersSerializeRuns(t *testing.T) {
	ctx := context.Background()
	ledger := seedLedger(t)

	var inRun atomic.Bool
	var overlaps atomic.Int32
	p := NewPipeline(ledger, func(Snapshot) {
		if !inRun.CompareAndSwap(false, true) {
			overlaps.Add(1)
		}
		time.Sleep(time.Millisecond)
		inRun.Store(false)
	})

	n := NewNotifier()
	n.Subscribe(func(ctx context.Context, _ ChangeEvent) {
		if err := p.Run(ctx); err != nil {
			t.Errorf("Run: %v", err)
		}
	})

	// Poller and bus consumer publish from their own goroutines.
	var wg sync.WaitGroup
	for _, source := range []ChangeSource{SourcePoll, SourceRemoteWrite} {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 20; i++ {
				n.Publish(ctx, ChangeEvent{Source: source})
			}
		}()
	}
	wg.Wait()

	if got := overlaps.Load(); got != 0 {
		t.Fatalf("%d overlapping runs, want fully serialized", got)
	}
}

func TestNotifierDeliversInOrder(t *testing.T) {
	ctx := context.Background()
	n := NewNotifier()
	var order []string
	n.Subscribe(func(_ context.Context, ev ChangeEvent) {
		order = append(order, "first:"+string(ev.Source))
	})
	n.Subscribe(func(_ context.Context, ev ChangeEvent) {
		order = append(order, "second:"+string(ev.Source))
	})

	n.Publish(ctx, ChangeEvent{Source: SourceLocalWrite})
	if len(order) != 2 || order[0] != "first:local_write" || order[1] != "second:local_write" {
		t.Fatalf("order = %v", order)
	}
}

func TestPollerPauseSuppressesEvents(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	n := NewNotifier()
	events := make(chan ChangeEvent, 100)
	n.Subscribe(func(_ context.Context, ev ChangeEvent) { events <- ev })

	p := NewPoller(n, 10*time.Millisecond)
	p.Pause()
	p.Start(ctx)

	time.Sleep(60 * time.Millisecond)
	if len(events) != 0 {
		t.Fatalf("paused poller published %d events", len(events))
	}

	p.Resume()
	select {
	case ev := <-events:
		if ev.Source != SourcePoll {
			t.Fatalf("source = %q", ev.Source)
		}
	case <-time.After(time.Second):
		t.Fatal("no event after resume")
	}

	p.Stop()
}

func TestPollerStopWithoutStart(t *testing.T) {
	p := NewPoller(NewNotifier(), time.Minute)

	done := make(chan struct{})
	go func() {
		p.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Stop blocked without a running loop")
	}
}
