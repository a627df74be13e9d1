package services

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"dgl-microfin/internal/adapters/persistence/models"
	"dgl-microfin/internal/core/domain"
)

func TestOverdueSweep(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 6, 15, 8, 0, 0, 0, time.UTC)

	addLoan := func(repo *fakeLoanRepo, status domain.LoanStatus, start time.Time, months int) *models.Loan {
		loan := &models.Loan{
			Reference:        "L",
			MemberID:         1,
			Currency:         "CDF",
			Status:           string(status),
			StartDate:        start,
			DurationMonths:   months,
			RemainingBalance: decimal.NewFromInt(100),
		}
		repo.Create(ctx, loan)
		return loan
	}

	t.Run("matured active loans move to overdue", func(t *testing.T) {
		loanRepo := newFakeLoanRepo()
		auditRepo := newFakeAuditRepo()
		svc := NewOverdueService(loanRepo, NewAuditService(auditRepo))

		matured := addLoan(loanRepo, domain.LoanActive, now.AddDate(0, -4, 0), 3)
		current := addLoan(loanRepo, domain.LoanActive, now.AddDate(0, -1, 0), 3)

		count, err := svc.Sweep(ctx, now)
		if err != nil {
			t.Fatalf("Sweep: %v", err)
		}
		if count != 1 {
			t.Errorf("count = %d, want 1", count)
		}
		if matured.Status != string(domain.LoanOverdue) {
			t.Errorf("matured loan status = %s, want OVERDUE", matured.Status)
		}
		if current.Status != string(domain.LoanActive) {
			t.Errorf("current loan status = %s, want ACTIVE", current.Status)
		}
		if len(auditRepo.entries) != 1 || auditRepo.entries[0].Action != domain.AuditOverdueSweep {
			t.Errorf("audit entries = %+v, want one OVERDUE_SWEEP", auditRepo.entries)
		}
	})

	t.Run("loan maturing exactly now is overdue", func(t *testing.T) {
		loanRepo := newFakeLoanRepo()
		svc := NewOverdueService(loanRepo, NewAuditService(newFakeAuditRepo()))

		loan := addLoan(loanRepo, domain.LoanActive, now.AddDate(0, -3, 0), 3)

		count, err := svc.Sweep(ctx, now)
		if err != nil {
			t.Fatalf("Sweep: %v", err)
		}
		if count != 1 || loan.Status != string(domain.LoanOverdue) {
			t.Errorf("count = %d, status = %s, want 1 and OVERDUE", count, loan.Status)
		}
	})

	t.Run("non active loans are not touched", func(t *testing.T) {
		loanRepo := newFakeLoanRepo()
		svc := NewOverdueService(loanRepo, NewAuditService(newFakeAuditRepo()))

		pending := addLoan(loanRepo, domain.LoanPending, now.AddDate(0, -6, 0), 3)
		completed := addLoan(loanRepo, domain.LoanCompleted, now.AddDate(0, -6, 0), 3)

		count, err := svc.Sweep(ctx, now)
		if err != nil {
			t.Fatalf("Sweep: %v", err)
		}
		if count != 0 {
			t.Errorf("count = %d, want 0", count)
		}
		if pending.Status != string(domain.LoanPending) || completed.Status != string(domain.LoanCompleted) {
			t.Error("sweep touched loans outside ACTIVE")
		}
	})
}
