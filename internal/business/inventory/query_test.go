package inventory

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"expmon/internal/entity"
	"expmon/internal/repo/rpproduct"
)

var baseNow = time.Date(2026, 10, 16, 14, 30, 0, 0, time.UTC)

func seed(t *testing.T, repo *rpproduct.MemoryRepository, offsets map[string]int) {
	t.Helper()
	today := entity.DateOf(baseNow)
	for name, offset := range offsets {
		err := repo.Create(context.Background(), &entity.Product{
			Name:           name,
			Category:       "Test",
			ExpirationDate: today.AddDate(0, 0, offset),
			Quantity:       2,
			Price:          decimal.RequireFromString("1.50"),
		})
		if err != nil {
			t.Fatalf("Create %s: %v", name, err)
		}
	}
}

func names(products []*entity.Product) []string {
	out := make([]string, 0, len(products))
	for _, p := range products {
		out = append(out, p.Name)
	}
	return out
}

func TestFindExpiringWithinBoundaries(t *testing.T) {
	repo := rpproduct.NewMemoryRepository()
	seed(t, repo, map[string]int{
		"yesterday": -1,
		"today":     0,
		"day3":      3,
		"day7":      7,
		"day8":      8,
	})
	q := NewQueryService(repo, FixedClock{T: baseNow})

	got, err := q.FindExpiringWithin(context.Background(), 7)
	if err != nil {
		t.Fatalf("FindExpiringWithin: %v", err)
	}
	want := []string{"today", "day3", "day7"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", names(got), want)
	}
	for i := range want {
		if got[i].Name != want[i] {
			t.Errorf("got[%d] = %s, want %s", i, got[i].Name, want[i])
		}
	}
}

func TestFindExpiringTomorrowAndExpired(t *testing.T) {
	repo := rpproduct.NewMemoryRepository()
	seed(t, repo, map[string]int{
		"old":      -2,
		"stale":    -1,
		"fresh":    0,
		"tomorrow": 1,
	})
	q := NewQueryService(repo, FixedClock{T: baseNow})
	ctx := context.Background()

	tomorrow, err := q.FindExpiringTomorrow(ctx)
	if err != nil || len(tomorrow) != 1 || tomorrow[0].Name != "tomorrow" {
		t.Fatalf("FindExpiringTomorrow = %v, %v", names(tomorrow), err)
	}

	expired, err := q.FindExpired(ctx)
	if err != nil {
		t.Fatalf("FindExpired: %v", err)
	}
	if len(expired) != 2 || expired[0].Name != "old" || expired[1].Name != "stale" {
		t.Fatalf("FindExpired = %v", names(expired))
	}

	onDate, _ := q.FindExpiringOn(ctx, baseNow.Add(48*time.Hour))
	if len(onDate) != 0 {
		t.Fatalf("FindExpiringOn(+2) = %v", names(onDate))
	}
}

type movingClock struct {
	now time.Time
}

func (c *movingClock) Now() time.Time { return c.now }

func TestTodayRecomputedPerCall(t *testing.T) {
	repo := rpproduct.NewMemoryRepository()
	seed(t, repo, map[string]int{"tomorrow": 1})

	clock := &movingClock{now: baseNow}
	q := NewQueryService(repo, clock)
	ctx := context.Background()

	got, _ := q.FindExpiringTomorrow(ctx)
	if len(got) != 1 {
		t.Fatalf("before midnight: %v", names(got))
	}

	clock.now = baseNow.Add(24 * time.Hour)
	got, _ = q.FindExpiringTomorrow(ctx)
	if len(got) != 0 {
		t.Fatalf("after midnight tomorrow list = %v, want empty", names(got))
	}
	expired, _ := q.FindExpiringOn(ctx, clock.now)
	if len(expired) != 1 {
		t.Fatalf("product should expire today after the date rolls over")
	}
}
