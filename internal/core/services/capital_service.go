package services

import (
	"context"

	"github.com/shopspring/decimal"

	"dgl-microfin/internal/adapters/persistence/repositories"
	"dgl-microfin/internal/core/domain"
)

// CapitalService derives available capital per currency pool. It holds no
// state of its own: availability is recomputed from the loan collection on
// every call.
type CapitalService struct {
	loanRepo     repositories.LoanRepository
	settingsRepo repositories.SettingsRepository
}

// NewCapitalService creates a new capital service
func NewCapitalService(
	loanRepo repositories.LoanRepository,
	settingsRepo repositories.SettingsRepository,
) *CapitalService {
	return &CapitalService{
		loanRepo:     loanRepo,
		settingsRepo: settingsRepo,
	}
}

// PoolStatus describes one currency pool
type PoolStatus struct {
	Currency    domain.Currency `json:"currency"`
	Ceiling     decimal.Decimal `json:"ceiling"`
	Outstanding decimal.Decimal `json:"outstanding"`
	Available   decimal.Decimal `json:"available"`
}

// Available returns ceiling(currency) minus the summed remaining balances
// of active and overdue loans in that currency.
func (s *CapitalService) Available(ctx context.Context, currency domain.Currency) (decimal.Decimal, error) {
	pool, err := s.Pool(ctx, currency)
	if err != nil {
		return decimal.Zero, err
	}
	return pool.Available, nil
}

// Pool returns the full status of one currency pool
func (s *CapitalService) Pool(ctx context.Context, currency domain.Currency) (*PoolStatus, error) {
	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, err
	}

	outstanding, err := s.loanRepo.SumOutstanding(ctx, currency)
	if err != nil {
		return nil, err
	}

	ceiling := settings.CapitalCeiling(currency)
	return &PoolStatus{
		Currency:    currency,
		Ceiling:     ceiling,
		Outstanding: outstanding,
		Available:   ceiling.Sub(outstanding),
	}, nil
}

// Pools returns the status of both currency pools
func (s *CapitalService) Pools(ctx context.Context) ([]*PoolStatus, error) {
	pools := make([]*PoolStatus, 0, 2)
	for _, currency := range []domain.Currency{domain.CurrencyCDF, domain.CurrencyUSD} {
		pool, err := s.Pool(ctx, currency)
		if err != nil {
			return nil, err
		}
		pools = append(pools, pool)
	}
	return pools, nil
}
