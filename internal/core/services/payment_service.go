package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"dgl-microfin/internal/adapters/persistence/models"
	"dgl-microfin/internal/adapters/persistence/repositories"
	"dgl-microfin/internal/core/domain"
)

// Payment service errors
var (
	ErrInvalidMethod = errors.New("unsupported payment method")
)

// PaymentService applies repayments to loan balances and derives the
// resulting loan status.
type PaymentService struct {
	loanRepo    repositories.LoanRepository
	paymentRepo repositories.PaymentRepository
	audit       *AuditService
}

// NewPaymentService creates a new payment service
func NewPaymentService(
	loanRepo repositories.LoanRepository,
	paymentRepo repositories.PaymentRepository,
	audit *AuditService,
) *PaymentService {
	return &PaymentService{
		loanRepo:    loanRepo,
		paymentRepo: paymentRepo,
		audit:       audit,
	}
}

// ApplyPaymentInput represents apply payment input
type ApplyPaymentInput struct {
	LoanID   uint                 `json:"loan_id"`
	Amount   decimal.Decimal      `json:"amount"`
	Currency domain.Currency      `json:"currency"`
	Method   domain.PaymentMethod `json:"method"`
}

// Apply records a payment against a loan. The balance is reduced by the
// payment amount and clamped at zero; reaching zero completes the loan,
// and any positive payment on an overdue loan moves it back to active.
// The loan update, payment append and audit entry are sequential writes.
func (s *PaymentService) Apply(ctx context.Context, input *ApplyPaymentInput, agentName string) (*models.Payment, *models.Loan, error) {
	if input.Amount.Sign() <= 0 {
		return nil, nil, domain.ErrInvalidAmount
	}
	if !input.Method.Valid() {
		return nil, nil, ErrInvalidMethod
	}

	loan, err := s.loanRepo.GetByID(ctx, input.LoanID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, domain.ErrLoanNotFound
		}
		return nil, nil, err
	}

	if string(input.Currency) != loan.Currency {
		return nil, nil, domain.ErrCurrencyMismatch
	}
	if !domain.LoanStatus(loan.Status).Payable() {
		return nil, nil, fmt.Errorf("%w: %s", domain.ErrLoanNotPayable, loan.Status)
	}

	previous := domain.LoanStatus(loan.Status)
	loan.RemainingBalance = loan.RemainingBalance.Sub(input.Amount)

	if loan.RemainingBalance.Sign() <= 0 {
		loan.RemainingBalance = decimal.Zero
		loan.Status = string(domain.LoanCompleted)
	} else if previous == domain.LoanOverdue {
		// Any positive payment cures an overdue loan.
		loan.Status = string(domain.LoanActive)
	}

	if err := s.loanRepo.Update(ctx, loan); err != nil {
		return nil, nil, err
	}

	payment := &models.Payment{
		Receipt:   uuid.New().String(),
		LoanID:    loan.ID,
		MemberID:  loan.MemberID,
		Amount:    input.Amount,
		Currency:  loan.Currency,
		Method:    string(input.Method),
		PaidAt:    time.Now(),
		AgentName: agentName,
	}
	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		return nil, nil, err
	}

	s.audit.Record(ctx, domain.AuditPayment,
		fmt.Sprintf("Paiement de %s %s reçu pour prêt %s", input.Amount, loan.Currency, loan.Reference), agentName)

	return payment, loan, nil
}

// List lists payments
func (s *PaymentService) List(ctx context.Context, offset, limit int) ([]*models.Payment, int64, error) {
	return s.paymentRepo.List(ctx, offset, limit)
}

// ListByLoan lists a loan's payments. The loan must exist.
func (s *PaymentService) ListByLoan(ctx context.Context, loanID uint) ([]*models.Payment, error) {
	if _, err := s.loanRepo.GetByID(ctx, loanID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrLoanNotFound
		}
		return nil, err
	}
	return s.paymentRepo.ListByLoan(ctx, loanID)
}
