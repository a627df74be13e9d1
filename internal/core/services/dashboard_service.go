package services

import (
	"context"
	"time"

	"dgl-microfin/internal/adapters/persistence/models"
	"dgl-microfin/internal/adapters/persistence/repositories"
	"dgl-microfin/internal/core/domain"
)

// DashboardService aggregates portfolio metrics for the home screen
type DashboardService struct {
	memberRepo repositories.MemberRepository
	loanRepo   repositories.LoanRepository
	auditRepo  repositories.AuditRepository
	capital    *CapitalService
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(
	memberRepo repositories.MemberRepository,
	loanRepo repositories.LoanRepository,
	auditRepo repositories.AuditRepository,
	capital *CapitalService,
) *DashboardService {
	return &DashboardService{
		memberRepo: memberRepo,
		loanRepo:   loanRepo,
		auditRepo:  auditRepo,
		capital:    capital,
	}
}

// DashboardData represents the portfolio overview
type DashboardData struct {
	TotalMembers  int64 `json:"total_members"`
	NewMembers30d int64 `json:"new_members_30d"`

	TotalLoans     int64 `json:"total_loans"`
	PendingLoans   int64 `json:"pending_loans"`
	ActiveLoans    int64 `json:"active_loans"`
	OverdueLoans   int64 `json:"overdue_loans"`
	CompletedLoans int64 `json:"completed_loans"`

	Capital []*PoolStatus `json:"capital"`

	RecentActivity []*models.AuditLog `json:"recent_activity"`
}

// Overview builds the dashboard snapshot
func (s *DashboardService) Overview(ctx context.Context) (*DashboardData, error) {
	data := &DashboardData{}
	var err error

	if data.TotalMembers, err = s.memberRepo.Count(ctx); err != nil {
		return nil, err
	}
	since := time.Now().AddDate(0, 0, -30)
	if data.NewMembers30d, err = s.memberRepo.CountRegisteredSince(ctx, since); err != nil {
		return nil, err
	}

	if data.TotalLoans, err = s.loanRepo.Count(ctx); err != nil {
		return nil, err
	}
	if data.PendingLoans, err = s.loanRepo.CountByStatus(ctx, domain.LoanPending); err != nil {
		return nil, err
	}
	if data.ActiveLoans, err = s.loanRepo.CountByStatus(ctx, domain.LoanActive); err != nil {
		return nil, err
	}
	if data.OverdueLoans, err = s.loanRepo.CountByStatus(ctx, domain.LoanOverdue); err != nil {
		return nil, err
	}
	if data.CompletedLoans, err = s.loanRepo.CountByStatus(ctx, domain.LoanCompleted); err != nil {
		return nil, err
	}

	if data.Capital, err = s.capital.Pools(ctx); err != nil {
		return nil, err
	}

	if data.RecentActivity, _, err = s.auditRepo.List(ctx, 0, 10); err != nil {
		return nil, err
	}

	return data, nil
}
