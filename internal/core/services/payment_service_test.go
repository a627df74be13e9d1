package services

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"dgl-microfin/internal/adapters/persistence/models"
	"dgl-microfin/internal/core/domain"
)

type paymentFixture struct {
	svc      *PaymentService
	loanRepo *fakeLoanRepo
	payments *fakePaymentRepo
	audit    *fakeAuditRepo
}

func newPaymentFixture() *paymentFixture {
	loanRepo := newFakeLoanRepo()
	paymentRepo := newFakePaymentRepo()
	auditRepo := newFakeAuditRepo()
	return &paymentFixture{
		svc:      NewPaymentService(loanRepo, paymentRepo, NewAuditService(auditRepo)),
		loanRepo: loanRepo,
		payments: paymentRepo,
		audit:    auditRepo,
	}
}

func (f *paymentFixture) addLoan(status domain.LoanStatus, balance int64) *models.Loan {
	loan := &models.Loan{
		Reference:        "L-1",
		MemberID:         1,
		Currency:         "CDF",
		Status:           string(status),
		TotalDue:         decimal.NewFromInt(balance),
		RemainingBalance: decimal.NewFromInt(balance),
	}
	f.loanRepo.Create(context.Background(), loan)
	return loan
}

func TestPaymentServiceApply(t *testing.T) {
	ctx := context.Background()

	t.Run("partial payment reduces the balance", func(t *testing.T) {
		f := newPaymentFixture()
		loan := f.addLoan(domain.LoanActive, 1000)

		payment, updated, err := f.svc.Apply(ctx, &ApplyPaymentInput{
			LoanID:   loan.ID,
			Amount:   decimal.NewFromInt(400),
			Currency: domain.CurrencyCDF,
			Method:   domain.MethodCash,
		}, "agent1")
		if err != nil {
			t.Fatalf("Apply: %v", err)
		}

		if !updated.RemainingBalance.Equal(decimal.NewFromInt(600)) {
			t.Errorf("balance = %s, want 600", updated.RemainingBalance)
		}
		if updated.Status != string(domain.LoanActive) {
			t.Errorf("status = %s, want ACTIVE", updated.Status)
		}
		if payment.Receipt == "" {
			t.Error("receipt not assigned")
		}
		if payment.AgentName != "agent1" {
			t.Errorf("agent = %s, want agent1", payment.AgentName)
		}
	})

	t.Run("exact payoff completes the loan", func(t *testing.T) {
		f := newPaymentFixture()
		loan := f.addLoan(domain.LoanActive, 1000)

		_, updated, err := f.svc.Apply(ctx, &ApplyPaymentInput{
			LoanID:   loan.ID,
			Amount:   decimal.NewFromInt(1000),
			Currency: domain.CurrencyCDF,
			Method:   domain.MethodCash,
		}, "agent1")
		if err != nil {
			t.Fatalf("Apply: %v", err)
		}

		if updated.Status != string(domain.LoanCompleted) {
			t.Errorf("status = %s, want COMPLETED", updated.Status)
		}
		if !updated.RemainingBalance.IsZero() {
			t.Errorf("balance = %s, want 0", updated.RemainingBalance)
		}
	})

	t.Run("overpayment clamps the balance at zero", func(t *testing.T) {
		f := newPaymentFixture()
		loan := f.addLoan(domain.LoanActive, 1000)

		_, updated, err := f.svc.Apply(ctx, &ApplyPaymentInput{
			LoanID:   loan.ID,
			Amount:   decimal.NewFromInt(2500),
			Currency: domain.CurrencyCDF,
			Method:   domain.MethodMobileMoney,
		}, "agent1")
		if err != nil {
			t.Fatalf("Apply: %v", err)
		}

		if !updated.RemainingBalance.IsZero() {
			t.Errorf("balance = %s, want 0", updated.RemainingBalance)
		}
		if updated.Status != string(domain.LoanCompleted) {
			t.Errorf("status = %s, want COMPLETED", updated.Status)
		}
	})

	t.Run("payment cures an overdue loan", func(t *testing.T) {
		f := newPaymentFixture()
		loan := f.addLoan(domain.LoanOverdue, 1000)

		_, updated, err := f.svc.Apply(ctx, &ApplyPaymentInput{
			LoanID:   loan.ID,
			Amount:   decimal.NewFromInt(100),
			Currency: domain.CurrencyCDF,
			Method:   domain.MethodCash,
		}, "agent1")
		if err != nil {
			t.Fatalf("Apply: %v", err)
		}

		if updated.Status != string(domain.LoanActive) {
			t.Errorf("status = %s, want ACTIVE", updated.Status)
		}
	})

	t.Run("payoff of an overdue loan completes it", func(t *testing.T) {
		f := newPaymentFixture()
		loan := f.addLoan(domain.LoanOverdue, 500)

		_, updated, err := f.svc.Apply(ctx, &ApplyPaymentInput{
			LoanID:   loan.ID,
			Amount:   decimal.NewFromInt(500),
			Currency: domain.CurrencyCDF,
			Method:   domain.MethodCash,
		}, "agent1")
		if err != nil {
			t.Fatalf("Apply: %v", err)
		}

		if updated.Status != string(domain.LoanCompleted) {
			t.Errorf("status = %s, want COMPLETED", updated.Status)
		}
	})

	t.Run("currency must match the loan", func(t *testing.T) {
		f := newPaymentFixture()
		loan := f.addLoan(domain.LoanActive, 1000)

		_, _, err := f.svc.Apply(ctx, &ApplyPaymentInput{
			LoanID:   loan.ID,
			Amount:   decimal.NewFromInt(100),
			Currency: domain.CurrencyUSD,
			Method:   domain.MethodCash,
		}, "agent1")
		if !errors.Is(err, domain.ErrCurrencyMismatch) {
			t.Fatalf("err = %v, want ErrCurrencyMismatch", err)
		}
	})

	t.Run("non payable statuses reject payments", func(t *testing.T) {
		f := newPaymentFixture()

		for _, status := range []domain.LoanStatus{domain.LoanPending, domain.LoanApproved, domain.LoanRejected, domain.LoanCompleted} {
			loan := f.addLoan(status, 1000)
			_, _, err := f.svc.Apply(ctx, &ApplyPaymentInput{
				LoanID:   loan.ID,
				Amount:   decimal.NewFromInt(100),
				Currency: domain.CurrencyCDF,
				Method:   domain.MethodCash,
			}, "agent1")
			if !errors.Is(err, domain.ErrLoanNotPayable) {
				t.Errorf("status %s: err = %v, want ErrLoanNotPayable", status, err)
			}
		}
	})

	t.Run("amount must be positive", func(t *testing.T) {
		f := newPaymentFixture()
		loan := f.addLoan(domain.LoanActive, 1000)

		for _, amount := range []decimal.Decimal{decimal.Zero, decimal.NewFromInt(-10)} {
			_, _, err := f.svc.Apply(ctx, &ApplyPaymentInput{
				LoanID:   loan.ID,
				Amount:   amount,
				Currency: domain.CurrencyCDF,
				Method:   domain.MethodCash,
			}, "agent1")
			if !errors.Is(err, domain.ErrInvalidAmount) {
				t.Errorf("amount %s: err = %v, want ErrInvalidAmount", amount, err)
			}
		}
	})

	t.Run("unknown method is rejected", func(t *testing.T) {
		f := newPaymentFixture()
		loan := f.addLoan(domain.LoanActive, 1000)

		_, _, err := f.svc.Apply(ctx, &ApplyPaymentInput{
			LoanID:   loan.ID,
			Amount:   decimal.NewFromInt(100),
			Currency: domain.CurrencyCDF,
			Method:   "CHEQUE",
		}, "agent1")
		if !errors.Is(err, ErrInvalidMethod) {
			t.Fatalf("err = %v, want ErrInvalidMethod", err)
		}
	})

	t.Run("records an audit entry", func(t *testing.T) {
		f := newPaymentFixture()
		loan := f.addLoan(domain.LoanActive, 1000)

		_, _, err := f.svc.Apply(ctx, &ApplyPaymentInput{
			LoanID:   loan.ID,
			Amount:   decimal.NewFromInt(100),
			Currency: domain.CurrencyCDF,
			Method:   domain.MethodCash,
		}, "agent1")
		if err != nil {
			t.Fatalf("Apply: %v", err)
		}

		if len(f.audit.entries) != 1 || f.audit.entries[0].Action != domain.AuditPayment {
			t.Errorf("audit entries = %+v, want one PAYMENT", f.audit.entries)
		}
	})
}

func TestPaymentServiceListByLoan(t *testing.T) {
	ctx := context.Background()
	f := newPaymentFixture()

	if _, err := f.svc.ListByLoan(ctx, 999); !errors.Is(err, domain.ErrLoanNotFound) {
		t.Fatalf("err = %v, want ErrLoanNotFound", err)
	}
}
