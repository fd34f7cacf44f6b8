package alert

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"expmon/internal/business/inventory"
	"expmon/internal/business/recipe"
	"expmon/internal/entity"
	"expmon/pkg/logger"
)

var now = time.Date(2026, 10, 16, 18, 0, 0, 0, time.UTC)

func product(name string, offset, qty int, price string) *entity.Product {
	return &entity.Product{
		ID:             int64(len(name)),
		Name:           name,
		Category:       "Dairy",
		ExpirationDate: entity.DateOf(now).AddDate(0, 0, offset),
		Quantity:       qty,
		Price:          decimal.RequireFromString(price),
	}
}

type stubNotifier struct {
	mu    sync.Mutex
	calls int
	err   error
}

func (n *stubNotifier) Name() string { return "stub" }

func (n *stubNotifier) Notify(ctx context.Context, rec *entity.AlertRecord) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.calls++
	return n.err
}

func newTestService(capacity int, notifiers ...Notifier) (*Service, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.InfoLevel)
	svc := NewService(
		NewHistory(capacity),
		recipe.NewMatcher(recipe.DefaultCatalog(), 0),
		inventory.FixedClock{T: now},
		logger.NewFromZap(zap.New(core)),
		notifiers...,
	)
	return svc, logs
}

func TestRaiseFreshMilk(t *testing.T) {
	notifier := &stubNotifier{}
	svc, logs := newTestService(0, notifier)

	rec, err := svc.Raise(context.Background(), []*entity.Product{product("Fresh Milk", 1, 50, "3.99")}, entity.AlertTypeTomorrow)
	if err != nil || rec == nil {
		t.Fatalf("Raise = %v, %v", rec, err)
	}
	if !rec.TotalValueAtRisk.Equal(decimal.RequireFromString("199.50")) {
		t.Errorf("TotalValueAtRisk = %s, want 199.50", rec.TotalValueAtRisk)
	}
	if rec.ID == "" || rec.Type != entity.AlertTypeTomorrow {
		t.Errorf("record = %+v", rec)
	}
	if len(rec.Products) != 1 || rec.Products[0].DaysUntilExpiration != 1 {
		t.Errorf("snapshots = %+v", rec.Products)
	}
	if len(rec.Recipes) == 0 || rec.Recipes[0].Name != "Creamy Pancakes" || rec.Recipes[0].ForProduct != "Fresh Milk" {
		t.Errorf("recipes = %+v", rec.Recipes)
	}
	wantMsg := "🚨 URGENT: 1 product(s) expiring tomorrow! Total value at risk: $199.50"
	if rec.Message != wantMsg {
		t.Errorf("Message = %q, want %q", rec.Message, wantMsg)
	}

	if logs.FilterMessageSnippet("URGENT EXPIRATION ALERT").Len() != 1 {
		t.Error("narrative header not logged")
	}
	if logs.FilterMessageSnippet("Use products in today's meals").Len() != 1 {
		t.Error("urgent recommended actions not logged")
	}
	if notifier.calls != 1 {
		t.Errorf("notifier called %d times", notifier.calls)
	}
	if svc.Statistics().TotalAlerts != 1 {
		t.Errorf("history not updated")
	}
}

func TestRaiseEmptyIsNoop(t *testing.T) {
	notifier := &stubNotifier{}
	svc, logs := newTestService(0, notifier)

	rec, err := svc.Raise(context.Background(), nil, entity.AlertTypeSevenDays)
	if rec != nil || err != nil {
		t.Fatalf("Raise(empty) = %v, %v", rec, err)
	}
	if logs.Len() != 0 || notifier.calls != 0 || len(svc.History(10)) != 0 {
		t.Fatal("empty raise must not log, notify or store")
	}
}

func TestRaiseValueOrderIndependent(t *testing.T) {
	svc, _ := newTestService(0)
	ctx := context.Background()
	a := product("Greek Yogurt", 3, 25, "1.99")
	b := product("Large Eggs", 7, 24, "3.49")
	c := product("Olive Oil", 5, 3, "0.10")

	r1, _ := svc.Raise(ctx, []*entity.Product{a, b, c}, entity.AlertTypeSevenDays)
	r2, _ := svc.Raise(ctx, []*entity.Product{c, b, a}, entity.AlertTypeSevenDays)

	want := decimal.RequireFromString("133.81")
	if !r1.TotalValueAtRisk.Equal(want) || !r2.TotalValueAtRisk.Equal(want) {
		t.Fatalf("totals = %s / %s, want %s", r1.TotalValueAtRisk, r2.TotalValueAtRisk, want)
	}
	if r1.Message != "⚠️ WARNING: 3 product(s) expiring within 7 days. Total value at risk: $133.81" {
		t.Errorf("Message = %q", r1.Message)
	}
}

func TestRaiseCustomTypeUsesGenericSummary(t *testing.T) {
	svc, _ := newTestService(0)
	rec, _ := svc.Raise(context.Background(), []*entity.Product{product("Fresh Milk", 0, 1, "1.00")}, entity.AlertType("RECALL"))
	if rec.Message != "📦 1 product(s) require attention" {
		t.Fatalf("Message = %q", rec.Message)
	}
}

func TestRaiseNotifierFailureIsIgnored(t *testing.T) {
	notifier := &stubNotifier{err: errors.New("redis down")}
	svc, logs := newTestService(0, notifier)

	rec, err := svc.Raise(context.Background(), []*entity.Product{product("Fresh Milk", 1, 1, "1.00")}, entity.AlertTypeTomorrow)
	if err != nil || rec == nil {
		t.Fatalf("Raise = %v, %v", rec, err)
	}
	if logs.FilterMessageSnippet("Notifier stub failed").Len() != 1 {
		t.Error("notifier failure not logged")
	}
}

func TestHistoryEvictsOldest(t *testing.T) {
	svc, _ := newTestService(0)
	ctx := context.Background()

	var first, last *entity.AlertRecord
	for i := 1; i <= 101; i++ {
		rec, _ := svc.Raise(ctx, []*entity.Product{product(fmt.Sprintf("Item %d", i), 1, 1, "1.00")}, entity.AlertTypeTomorrow)
		if i == 1 {
			first = rec
		}
		last = rec
	}

	all := svc.History(1000)
	if len(all) != 100 {
		t.Fatalf("history len = %d, want 100", len(all))
	}
	for _, rec := range all {
		if rec.ID == first.ID {
			t.Fatal("oldest alert should have been evicted")
		}
	}
	if all[len(all)-1].ID != last.ID {
		t.Fatal("newest alert should be last")
	}

	stats := svc.Statistics()
	if stats.TotalAlerts != 100 || !stats.TotalValueAtRisk.Equal(decimal.NewFromInt(100)) {
		t.Fatalf("stats = %+v", stats)
	}
}

func TestHistoryRecentOldestFirst(t *testing.T) {
	h := NewHistory(3)
	for i := 0; i < 5; i++ {
		h.Append(&entity.AlertRecord{ID: fmt.Sprint(i)})
	}

	got := h.Recent(2)
	if len(got) != 2 || got[0].ID != "3" || got[1].ID != "4" {
		t.Fatalf("Recent(2) = %v", got)
	}
	if len(h.Recent(0)) != 0 {
		t.Fatal("Recent(0) should be empty")
	}
	if len(h.Recent(10)) != 3 {
		t.Fatal("Recent(10) should return the whole window")
	}

	// 返回结果的修改不影响历史
	got[0] = nil
	if h.Recent(2)[0] == nil {
		t.Fatal("Recent leaked internal slice")
	}
}

func TestHistoryConcurrentAppend(t *testing.T) {
	h := NewHistory(50)
	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				h.Append(&entity.AlertRecord{TotalValueAtRisk: decimal.NewFromInt(1)})
				_ = h.Recent(5)
				_ = h.Statistics()
			}
		}()
	}
	wg.Wait()

	if h.Len() != 50 {
		t.Fatalf("Len = %d, want 50", h.Len())
	}
}
