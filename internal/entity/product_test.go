package entity

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestNewProductValidation(t *testing.T) {
	exp := time.Date(2026, 10, 20, 15, 30, 0, 0, time.UTC)

	tests := []struct {
		name     string
		pName    string
		category string
		exp      time.Time
		qty      int
		price    string
		wantErr  error
	}{
		{"valid", "Fresh Milk", "Dairy", exp, 50, "3.99", nil},
		{"name too short", "M", "Dairy", exp, 1, "1.00", ErrInvalidName},
		{"name too long", strings.Repeat("a", 101), "Dairy", exp, 1, "1.00", ErrInvalidName},
		{"blank category", "Fresh Milk", "  ", exp, 1, "1.00", ErrInvalidCategory},
		{"missing date", "Fresh Milk", "Dairy", time.Time{}, 1, "1.00", ErrInvalidExpirationDate},
		{"zero quantity", "Fresh Milk", "Dairy", exp, 0, "1.00", ErrInvalidQuantity},
		{"zero price", "Fresh Milk", "Dairy", exp, 1, "0", ErrInvalidPrice},
		{"negative price", "Fresh Milk", "Dairy", exp, 1, "-2.50", ErrInvalidPrice},
		{"three decimals", "Fresh Milk", "Dairy", exp, 1, "1.999", ErrInvalidPricePrecision},
		{"trailing zero ok", "Fresh Milk", "Dairy", exp, 1, "1.990", nil},
		{"too many integer digits", "Fresh Milk", "Dairy", exp, 1, "100000000", ErrInvalidPricePrecision},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewProduct(tt.pName, tt.category, tt.exp, tt.qty, decimal.RequireFromString(tt.price))
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("NewProduct() err = %v, want %v", err, tt.wantErr)
			}
			if err == nil && !p.ExpirationDate.Equal(time.Date(2026, 10, 20, 0, 0, 0, 0, time.UTC)) {
				t.Errorf("expiration date not normalised: %v", p.ExpirationDate)
			}
		})
	}
}

func TestDaysUntilExpiration(t *testing.T) {
	today := time.Date(2026, 10, 16, 23, 59, 0, 0, time.UTC)
	p := &Product{ExpirationDate: DateOf(time.Date(2026, 10, 14, 0, 0, 0, 0, time.UTC))}

	if got := p.DaysUntilExpiration(today); got != -2 {
		t.Fatalf("DaysUntilExpiration() = %d, want -2", got)
	}

	p.ExpirationDate = DateOf(today)
	if got := p.DaysUntilExpiration(today); got != 0 {
		t.Fatalf("DaysUntilExpiration() = %d, want 0", got)
	}
}

func TestDateOfKeepsLocalCalendarDay(t *testing.T) {
	loc := time.FixedZone("UTC+8", 8*3600)
	// 2026-10-17 01:00 in UTC+8 is still 2026-10-16 in UTC
	local := time.Date(2026, 10, 17, 1, 0, 0, 0, loc)

	got := DateOf(local)
	want := time.Date(2026, 10, 17, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("DateOf() = %v, want %v", got, want)
	}
}

func TestTotalValue(t *testing.T) {
	p := &Product{Quantity: 50, Price: decimal.RequireFromString("3.99")}
	if got := p.TotalValue(); !got.Equal(decimal.RequireFromString("199.50")) {
		t.Fatalf("TotalValue() = %s, want 199.50", got)
	}
}
