package rpproduct

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"expmon/internal/entity"
	"expmon/pkg/errorutil"
)

func day(offset int) time.Time {
	return time.Date(2026, 10, 16+offset, 0, 0, 0, 0, time.UTC)
}

func newProduct(name string, exp time.Time) *entity.Product {
	return &entity.Product{
		Name:           name,
		Category:       "Test",
		ExpirationDate: exp,
		Quantity:       1,
		Price:          decimal.RequireFromString("1.00"),
	}
}

func TestMemoryRepositoryQueries(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()

	if err := repo.CreateBatch(ctx, []*entity.Product{
		newProduct("Late", day(5)),
		newProduct("Expired", day(-1)),
		newProduct("Today", day(0)),
		newProduct("Tomorrow A", day(1)),
		newProduct("Tomorrow B", day(1)),
	}); err != nil {
		t.Fatalf("CreateBatch: %v", err)
	}

	onTomorrow, _ := repo.FindByExpirationDate(ctx, day(1))
	if len(onTomorrow) != 2 || onTomorrow[0].Name != "Tomorrow A" {
		t.Fatalf("FindByExpirationDate returned %d products", len(onTomorrow))
	}

	between, _ := repo.FindByExpirationBetween(ctx, day(0), day(5))
	want := []string{"Today", "Tomorrow A", "Tomorrow B", "Late"}
	if len(between) != len(want) {
		t.Fatalf("FindByExpirationBetween returned %d products, want %d", len(between), len(want))
	}
	for i, name := range want {
		if between[i].Name != name {
			t.Errorf("between[%d] = %s, want %s", i, between[i].Name, name)
		}
	}

	expired, _ := repo.FindByExpirationBefore(ctx, day(0))
	if len(expired) != 1 || expired[0].Name != "Expired" {
		t.Fatalf("FindByExpirationBefore = %v", expired)
	}
}

func TestMemoryRepositoryCRUD(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()

	p := newProduct("Greek Yogurt", day(3))
	if err := repo.Create(ctx, p); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if p.ID == 0 {
		t.Fatal("Create should assign an ID")
	}

	p.Quantity = 25
	if err := repo.Update(ctx, p); err != nil {
		t.Fatalf("Update: %v", err)
	}
	got, err := repo.GetByID(ctx, p.ID)
	if err != nil || got.Quantity != 25 {
		t.Fatalf("GetByID = %+v, %v", got, err)
	}

	// 返回的是副本，修改不影响仓储
	got.Quantity = 1
	again, _ := repo.GetByID(ctx, p.ID)
	if again.Quantity != 25 {
		t.Fatal("repository leaked internal pointer")
	}

	found, _ := repo.SearchByName(ctx, "yog")
	if len(found) != 1 {
		t.Fatalf("SearchByName found %d", len(found))
	}

	if err := repo.Delete(ctx, p.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := repo.GetByID(ctx, p.ID); !errorutil.IsNotFound(err) {
		t.Fatalf("GetByID after delete err = %v, want not found", err)
	}
	if err := repo.Delete(ctx, p.ID); !errorutil.IsNotFound(err) {
		t.Fatalf("Delete twice err = %v, want not found", err)
	}
	if err := repo.Update(ctx, p); !errorutil.IsNotFound(err) {
		t.Fatalf("Update missing err = %v, want not found", err)
	}
}
