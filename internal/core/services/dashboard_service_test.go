package services

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"dgl-microfin/internal/adapters/persistence/models"
	"dgl-microfin/internal/core/domain"
)

func TestDashboardOverview(t *testing.T) {
	ctx := context.Background()

	memberRepo := newFakeMemberRepo()
	loanRepo := newFakeLoanRepo()
	auditRepo := newFakeAuditRepo()
	settingsRepo := newFakeSettingsRepo(testSettings())
	capital := NewCapitalService(loanRepo, settingsRepo)
	svc := NewDashboardService(memberRepo, loanRepo, auditRepo, capital)

	memberRepo.Create(ctx, &models.Member{FirstName: "A", LastName: "B", Gender: "M", RegisteredAt: time.Now()})
	memberRepo.Create(ctx, &models.Member{FirstName: "C", LastName: "D", Gender: "F", RegisteredAt: time.Now().AddDate(0, -2, 0)})

	for _, status := range []domain.LoanStatus{domain.LoanPending, domain.LoanActive, domain.LoanActive, domain.LoanOverdue, domain.LoanCompleted} {
		loanRepo.Create(ctx, &models.Loan{
			Currency:         "CDF",
			Status:           string(status),
			RemainingBalance: decimal.NewFromInt(1000),
		})
	}

	auditRepo.Create(ctx, &models.AuditLog{Action: domain.AuditLogin, Actor: "admin"})

	data, err := svc.Overview(ctx)
	if err != nil {
		t.Fatalf("Overview: %v", err)
	}

	if data.TotalMembers != 2 {
		t.Errorf("total members = %d, want 2", data.TotalMembers)
	}
	if data.NewMembers30d != 1 {
		t.Errorf("new members = %d, want 1", data.NewMembers30d)
	}
	if data.TotalLoans != 5 {
		t.Errorf("total loans = %d, want 5", data.TotalLoans)
	}
	if data.PendingLoans != 1 || data.ActiveLoans != 2 || data.OverdueLoans != 1 || data.CompletedLoans != 1 {
		t.Errorf("loan counts = %d/%d/%d/%d, want 1/2/1/1",
			data.PendingLoans, data.ActiveLoans, data.OverdueLoans, data.CompletedLoans)
	}
	if len(data.Capital) != 2 {
		t.Fatalf("capital pools = %d, want 2", len(data.Capital))
	}

	// Three ACTIVE/OVERDUE loans consume 3000 CDF
	if !data.Capital[0].Outstanding.Equal(decimal.NewFromInt(3000)) {
		t.Errorf("CDF outstanding = %s, want 3000", data.Capital[0].Outstanding)
	}
	if len(data.RecentActivity) != 1 {
		t.Errorf("recent activity = %d, want 1", len(data.RecentActivity))
	}
}
