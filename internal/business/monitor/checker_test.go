package monitor

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"expmon/internal/business/alert"
	"expmon/internal/business/inventory"
	"expmon/internal/business/recipe"
	"expmon/internal/entity"
	"expmon/internal/repo/rpproduct"
	"expmon/pkg/errorutil"
	"expmon/pkg/logger"
)

var now = time.Date(2026, 10, 16, 9, 0, 0, 0, time.UTC)

type fixture struct {
	repo    *rpproduct.MemoryRepository
	alerts  *alert.Service
	checker *Checker
	logs    *observer.ObservedLogs
}

func newFixture(t *testing.T, store inventory.Store, offsets ...int) *fixture {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	log := logger.NewFromZap(zap.New(core))

	repo := rpproduct.NewMemoryRepository()
	for i, offset := range offsets {
		err := repo.Create(context.Background(), &entity.Product{
			Name:           []string{"Fresh Milk", "Gala Apples", "Pork Chops", "Old Bread"}[i%4],
			Category:       "Test",
			ExpirationDate: entity.DateOf(now).AddDate(0, 0, offset),
			Quantity:       2,
			Price:          decimal.RequireFromString("2.50"),
		})
		if err != nil {
			t.Fatalf("Create: %v", err)
		}
	}
	if store == nil {
		store = repo
	}

	clock := inventory.FixedClock{T: now}
	query := inventory.NewQueryService(store, clock)
	alerts := alert.NewService(alert.NewHistory(0), recipe.NewMatcher(recipe.DefaultCatalog(), 0), clock, log)
	return &fixture{
		repo:    repo,
		alerts:  alerts,
		checker: NewChecker(query, alerts, log),
		logs:    logs,
	}
}

func TestManualCheckRaisesBothAlerts(t *testing.T) {
	f := newFixture(t, nil, 1, 5, 10, -1)

	n, err := f.checker.RunManualCheck(context.Background())
	if err != nil || n != 2 {
		t.Fatalf("RunManualCheck = %d, %v", n, err)
	}
	history := f.alerts.History(10)
	if history[0].Type != entity.AlertTypeTomorrow || history[1].Type != entity.AlertTypeSevenDays {
		t.Fatalf("unexpected alert order: %s, %s", history[0].Type, history[1].Type)
	}
	if len(history[1].Products) != 2 {
		t.Errorf("seven day alert covers %d products, want 2", len(history[1].Products))
	}
}

func TestManualCheckOnlySevenDays(t *testing.T) {
	f := newFixture(t, nil, 4)

	n, err := f.checker.RunManualCheck(context.Background())
	if err != nil || n != 1 {
		t.Fatalf("RunManualCheck = %d, %v", n, err)
	}
}

func TestChecksWithNothingExpiringRaiseNothing(t *testing.T) {
	f := newFixture(t, nil, 30, -3)
	ctx := context.Background()

	for name, run := range map[string]func(context.Context) error{
		"seven_day": f.checker.RunSevenDayCheck,
		"tomorrow":  f.checker.RunTomorrowCheck,
		"fast":      f.checker.RunFastCheck,
	} {
		if err := run(ctx); err != nil {
			t.Fatalf("%s: %v", name, err)
		}
	}
	if stats := f.alerts.Statistics(); stats.TotalAlerts != 0 {
		t.Fatalf("raised %d alerts, want 0", stats.TotalAlerts)
	}
}

func TestRepeatedFiringsDuplicateAlerts(t *testing.T) {
	f := newFixture(t, nil, 1)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if err := f.checker.RunTomorrowCheck(ctx); err != nil {
			t.Fatalf("RunTomorrowCheck: %v", err)
		}
	}
	if got := f.alerts.Statistics().TotalAlerts; got != 3 {
		t.Fatalf("TotalAlerts = %d, want 3", got)
	}
}

func TestReportsOnlyLog(t *testing.T) {
	f := newFixture(t, nil, 1, 3, -1)
	ctx := context.Background()

	if err := f.checker.RunMorningReport(ctx); err != nil {
		t.Fatalf("RunMorningReport: %v", err)
	}
	if f.logs.FilterMessageSnippet("expiring tomorrow=1, expiring within 7 days=2, already expired=1").Len() != 1 {
		t.Errorf("morning report not logged: %v", f.logs.All())
	}

	if err := f.checker.RunMealPlanning(ctx); err != nil {
		t.Fatalf("RunMealPlanning: %v", err)
	}
	if f.logs.FilterMessageSnippet("Day 2: Use Fresh Milk (Test)").Len() != 1 {
		t.Error("meal planning narrative missing")
	}
	if f.logs.FilterMessageSnippet("Day 4: Use Gala Apples (Test)").Len() != 1 {
		t.Error("meal planning narrative missing")
	}

	if f.alerts.Statistics().TotalAlerts != 0 {
		t.Fatal("reports must not raise alerts")
	}
}

func TestMealPlanningEmptyWeek(t *testing.T) {
	f := newFixture(t, nil, 20)
	if err := f.checker.RunMealPlanning(context.Background()); err != nil {
		t.Fatalf("RunMealPlanning: %v", err)
	}
	if f.logs.FilterMessageSnippet("No products expiring this week").Len() != 1 {
		t.Error("empty week message missing")
	}
}

type failingStore struct{}

var errStore = errorutil.TransientStore("query", errors.New("connection refused"))

func (failingStore) FindByExpirationDate(context.Context, time.Time) ([]*entity.Product, error) {
	return nil, errStore
}

func (failingStore) FindByExpirationBetween(context.Context, time.Time, time.Time) ([]*entity.Product, error) {
	return nil, errStore
}

func (failingStore) FindByExpirationBefore(context.Context, time.Time) ([]*entity.Product, error) {
	return nil, errStore
}

func TestStoreErrorsPropagate(t *testing.T) {
	f := newFixture(t, failingStore{})
	ctx := context.Background()

	if _, err := f.checker.RunManualCheck(ctx); !errorutil.IsRetryable(err) {
		t.Fatalf("RunManualCheck err = %v, want retryable store error", err)
	}
	if err := f.checker.RunMorningReport(ctx); !errors.Is(err, errStore) {
		t.Fatalf("RunMorningReport err = %v", err)
	}
	if err := f.checker.RunMealPlanning(ctx); err == nil {
		t.Fatal("RunMealPlanning should fail")
	}
}
