package domain_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/vladislavdragonenkov/orderpay/internal/domain"
)

func TestNewMoney(t *testing.T) {
	tests := []struct {
		name         string
		amount       string
		currency     string
		wantCurrency string
		wantErr      error
	}{
		{name: "default currency", amount: "10", currency: "", wantCurrency: "USD"},
		{name: "explicit currency", amount: "10.50", currency: "EUR", wantCurrency: "EUR"},
		{name: "zero is valid", amount: "0", currency: "USD", wantCurrency: "USD"},
		{name: "negative amount", amount: "-0.01", currency: "USD", wantErr: domain.ErrInvalidAmount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := domain.NewMoney(decimal.RequireFromString(tt.amount), tt.currency)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if m.Currency() != tt.wantCurrency {
				t.Fatalf("expected currency %s, got %s", tt.wantCurrency, m.Currency())
			}
			if !m.Amount().Equal(decimal.RequireFromString(tt.amount)) {
				t.Fatalf("expected amount %s, got %s", tt.amount, m.Amount())
			}
		})
	}
}

func TestMoney_Add(t *testing.T) {
	pairs := [][2]string{
		{"0", "0"},
		{"500", "50"},
		{"0.1", "0.2"},
		{"999999999.99", "0.01"},
	}

	for _, p := range pairs {
		a := domain.MustMoney(p[0], "USD")
		b := domain.MustMoney(p[1], "USD")

		sum, err := a.Add(b)
		if err != nil {
			t.Fatalf("add %s + %s: %v", p[0], p[1], err)
		}

		want := domain.MustMoney(decimal.RequireFromString(p[0]).Add(decimal.RequireFromString(p[1])).String(), "USD")
		if !sum.Equal(want) {
			t.Fatalf("expected %s, got %s", want, sum)
		}
	}
}

func TestMoney_AddCurrencyMismatch(t *testing.T) {
	usd := domain.MustMoney("1", "USD")
	eur := domain.MustMoney("1", "EUR")

	if _, err := usd.Add(eur); !errors.Is(err, domain.ErrCurrencyMismatch) {
		t.Fatalf("expected ErrCurrencyMismatch, got %v", err)
	}
}

func TestMoney_Immutable(t *testing.T) {
	price := domain.MustMoney("500", "USD")

	doubled := price.Multiply(2)
	if _, err := price.Add(doubled); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !price.Equal(domain.MustMoney("500", "USD")) {
		t.Fatalf("original value changed: %s", price)
	}
	if !doubled.Equal(domain.MustMoney("1000", "USD")) {
		t.Fatalf("expected 1000 USD, got %s", doubled)
	}
}

func TestMoney_MultiplyNegativeQuantity(t *testing.T) {
	// Multiply не проверяет знак: отрицательное количество даёт отрицательную сумму.
	got := domain.MustMoney("10", "USD").Multiply(-3)
	if !got.Amount().Equal(decimal.NewFromInt(-30)) {
		t.Fatalf("expected -30, got %s", got.Amount())
	}
	if got.Currency() != "USD" {
		t.Fatalf("currency changed: %s", got.Currency())
	}
	if _, err := domain.NewMoney(got.Amount(), got.Currency()); !errors.Is(err, domain.ErrInvalidAmount) {
		t.Fatalf("expected NewMoney to reject negative product, got %v", err)
	}
}

func TestMoney_String(t *testing.T) {
	if got := domain.MustMoney("1550", "USD").String(); got != "1550 USD" {
		t.Fatalf("unexpected string: %q", got)
	}
	if got := domain.Zero("").String(); got != "0 USD" {
		t.Fatalf("unexpected zero string: %q", got)
	}
}
