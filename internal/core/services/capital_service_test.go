package services

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"

	"dgl-microfin/internal/adapters/persistence/models"
	"dgl-microfin/internal/core/domain"
)

func TestCapitalService(t *testing.T) {
	ctx := context.Background()

	newService := func(loans ...*models.Loan) (*CapitalService, *fakeLoanRepo) {
		loanRepo := newFakeLoanRepo()
		for _, loan := range loans {
			loanRepo.Create(ctx, loan)
		}
		return NewCapitalService(loanRepo, newFakeSettingsRepo(testSettings())), loanRepo
	}

	t.Run("full ceiling with no loans", func(t *testing.T) {
		svc, _ := newService()

		available, err := svc.Available(ctx, domain.CurrencyCDF)
		if err != nil {
			t.Fatalf("Available: %v", err)
		}
		if !available.Equal(decimal.NewFromInt(10000000)) {
			t.Errorf("available = %s, want 10000000", available)
		}
	})

	t.Run("outstanding balances reduce the pool", func(t *testing.T) {
		svc, _ := newService(
			&models.Loan{Currency: "CDF", Status: string(domain.LoanActive), RemainingBalance: decimal.NewFromInt(3000000)},
			&models.Loan{Currency: "CDF", Status: string(domain.LoanOverdue), RemainingBalance: decimal.NewFromInt(2000000)},
		)

		available, err := svc.Available(ctx, domain.CurrencyCDF)
		if err != nil {
			t.Fatalf("Available: %v", err)
		}
		if !available.Equal(decimal.NewFromInt(5000000)) {
			t.Errorf("available = %s, want 5000000", available)
		}
	})

	t.Run("pending and completed loans do not count", func(t *testing.T) {
		svc, _ := newService(
			&models.Loan{Currency: "CDF", Status: string(domain.LoanPending), RemainingBalance: decimal.NewFromInt(9000000)},
			&models.Loan{Currency: "CDF", Status: string(domain.LoanCompleted), RemainingBalance: decimal.Zero},
			&models.Loan{Currency: "CDF", Status: string(domain.LoanRejected), RemainingBalance: decimal.NewFromInt(100)},
		)

		available, err := svc.Available(ctx, domain.CurrencyCDF)
		if err != nil {
			t.Fatalf("Available: %v", err)
		}
		if !available.Equal(decimal.NewFromInt(10000000)) {
			t.Errorf("available = %s, want 10000000", available)
		}
	})

	t.Run("pools are tracked per currency", func(t *testing.T) {
		svc, _ := newService(
			&models.Loan{Currency: "CDF", Status: string(domain.LoanActive), RemainingBalance: decimal.NewFromInt(1000000)},
			&models.Loan{Currency: "USD", Status: string(domain.LoanActive), RemainingBalance: decimal.NewFromInt(1200)},
		)

		pools, err := svc.Pools(ctx)
		if err != nil {
			t.Fatalf("Pools: %v", err)
		}
		if len(pools) != 2 {
			t.Fatalf("pools = %d, want 2", len(pools))
		}

		byCurrency := map[domain.Currency]*PoolStatus{}
		for _, pool := range pools {
			byCurrency[pool.Currency] = pool
		}

		cdf := byCurrency[domain.CurrencyCDF]
		if !cdf.Available.Equal(decimal.NewFromInt(9000000)) {
			t.Errorf("CDF available = %s, want 9000000", cdf.Available)
		}
		usd := byCurrency[domain.CurrencyUSD]
		if !usd.Available.Equal(decimal.NewFromInt(3800)) {
			t.Errorf("USD available = %s, want 3800", usd.Available)
		}
	})
}
