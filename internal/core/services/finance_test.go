package services

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestComputeLoanFinancials(t *testing.T) {
	schedule := ScheduleFromSettings(testSettings())

	t.Run("flat interest over three months", func(t *testing.T) {
		fin := ComputeLoanFinancials(decimal.NewFromInt(500000), 3, schedule)

		if !fin.Interest.Equal(decimal.NewFromInt(150000)) {
			t.Errorf("interest = %s, want 150000", fin.Interest)
		}
		if !fin.TotalDue.Equal(decimal.NewFromInt(650000)) {
			t.Errorf("total due = %s, want 650000", fin.TotalDue)
		}
		if !fin.RemainingBalance.Equal(fin.TotalDue) {
			t.Errorf("remaining balance = %s, want %s", fin.RemainingBalance, fin.TotalDue)
		}
	})

	t.Run("fees computed on principal only", func(t *testing.T) {
		fin := ComputeLoanFinancials(decimal.NewFromInt(500000), 3, schedule)

		if !fin.Fees.Equal(decimal.NewFromInt(10000)) {
			t.Errorf("fees = %s, want 10000", fin.Fees)
		}
		if !fin.Insurance.Equal(decimal.NewFromInt(5000)) {
			t.Errorf("insurance = %s, want 5000", fin.Insurance)
		}
		if !fin.Savings.Equal(decimal.NewFromInt(25000)) {
			t.Errorf("savings = %s, want 25000", fin.Savings)
		}
	})

	t.Run("single month keeps interest uncompounded", func(t *testing.T) {
		fin := ComputeLoanFinancials(decimal.NewFromInt(1000), 1, schedule)

		if !fin.Interest.Equal(decimal.NewFromInt(100)) {
			t.Errorf("interest = %s, want 100", fin.Interest)
		}
		if !fin.TotalDue.Equal(decimal.NewFromInt(1100)) {
			t.Errorf("total due = %s, want 1100", fin.TotalDue)
		}
	})

	t.Run("fees do not enter the balance", func(t *testing.T) {
		fin := ComputeLoanFinancials(decimal.NewFromInt(200), 2, schedule)

		want := decimal.NewFromInt(240) // 200 + 200*10%*2
		if !fin.RemainingBalance.Equal(want) {
			t.Errorf("remaining balance = %s, want %s", fin.RemainingBalance, want)
		}
	})

	t.Run("fractional rates stay exact", func(t *testing.T) {
		s := schedule
		s.InterestRate = decimal.RequireFromString("2.5")
		fin := ComputeLoanFinancials(decimal.NewFromInt(1000), 2, s)

		if !fin.Interest.Equal(decimal.NewFromInt(50)) {
			t.Errorf("interest = %s, want 50", fin.Interest)
		}
	})
}
