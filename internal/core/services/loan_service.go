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

// Loan service errors
var (
	ErrInvalidDuration = errors.New("duration must be at least one month")
	ErrInvalidCurrency = errors.New("unsupported currency")
)

// LoanService owns the loan lifecycle: creation against the capital
// ledger, validated status transitions and listings. Loans are never
// deleted; only status and balance change after creation.
type LoanService struct {
	loanRepo     repositories.LoanRepository
	memberRepo   repositories.MemberRepository
	partnerRepo  repositories.PartnerRepository
	settingsRepo repositories.SettingsRepository
	capital      *CapitalService
	audit        *AuditService
}

// NewLoanService creates a new loan service
func NewLoanService(
	loanRepo repositories.LoanRepository,
	memberRepo repositories.MemberRepository,
	partnerRepo repositories.PartnerRepository,
	settingsRepo repositories.SettingsRepository,
	capital *CapitalService,
	audit *AuditService,
) *LoanService {
	return &LoanService{
		loanRepo:     loanRepo,
		memberRepo:   memberRepo,
		partnerRepo:  partnerRepo,
		settingsRepo: settingsRepo,
		capital:      capital,
		audit:        audit,
	}
}

// CreateLoanInput represents create loan input
type CreateLoanInput struct {
	MemberID       uint            `json:"member_id"`
	PartnerID      *uint           `json:"partner_id,omitempty"`
	Amount         decimal.Decimal `json:"amount"`
	Currency       domain.Currency `json:"currency"`
	DurationMonths int             `json:"duration_months"`
}

// Create prices and persists a new loan. The current interest rate and fee
// percentages are snapshotted onto the loan: later settings changes never
// affect existing loans. Fails with ErrInsufficientCapital when the
// requested principal exceeds the available capital of the currency pool.
func (s *LoanService) Create(ctx context.Context, input *CreateLoanInput, actor string) (*models.Loan, error) {
	if input.Amount.Sign() <= 0 {
		return nil, domain.ErrInvalidAmount
	}
	if input.DurationMonths < 1 {
		return nil, ErrInvalidDuration
	}
	if !input.Currency.Valid() {
		return nil, ErrInvalidCurrency
	}

	member, err := s.memberRepo.GetByID(ctx, input.MemberID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrMemberNotFound
		}
		return nil, err
	}

	if input.PartnerID != nil {
		if _, err := s.partnerRepo.GetByID(ctx, *input.PartnerID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, domain.ErrPartnerNotFound
			}
			return nil, err
		}
	}

	available, err := s.capital.Available(ctx, input.Currency)
	if err != nil {
		return nil, err
	}
	if available.LessThan(input.Amount) {
		return nil, fmt.Errorf("%w: capital %s insuffisant", domain.ErrInsufficientCapital, input.Currency)
	}

	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, err
	}

	fin := ComputeLoanFinancials(input.Amount, input.DurationMonths, ScheduleFromSettings(settings))

	loan := &models.Loan{
		Reference:        uuid.New().String(),
		MemberID:         member.ID,
		PartnerID:        input.PartnerID,
		Amount:           input.Amount,
		Currency:         string(input.Currency),
		DurationMonths:   input.DurationMonths,
		InterestRate:     settings.InterestRate,
		StartDate:        time.Now(),
		Status:           string(domain.LoanPending),
		TotalInterest:    fin.Interest,
		TotalFees:        fin.Fees,
		TotalInsurance:   fin.Insurance,
		TotalSavings:     fin.Savings,
		TotalDue:         fin.TotalDue,
		RemainingBalance: fin.RemainingBalance,
	}

	if err := s.loanRepo.Create(ctx, loan); err != nil {
		return nil, err
	}

	loan.Member = member
	s.audit.Record(ctx, domain.AuditCreateLoan,
		fmt.Sprintf("Prêt créé pour %s (%s %s)", member.FullName(), input.Amount, input.Currency), actor)

	return loan, nil
}

// Preview prices a loan candidate without persisting anything. Used by the
// creation form before submission.
func (s *LoanService) Preview(ctx context.Context, amount decimal.Decimal, durationMonths int) (*LoanFinancials, error) {
	if amount.Sign() <= 0 {
		return nil, domain.ErrInvalidAmount
	}
	if durationMonths < 1 {
		return nil, ErrInvalidDuration
	}

	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, err
	}

	fin := ComputeLoanFinancials(amount, durationMonths, ScheduleFromSettings(settings))
	return &fin, nil
}

// GetByID gets a loan by ID
func (s *LoanService) GetByID(ctx context.Context, id uint) (*models.Loan, error) {
	loan, err := s.loanRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrLoanNotFound
		}
		return nil, err
	}
	return loan, nil
}

// UpdateStatus moves a loan to a new status. Only moves listed in the
// transition table are accepted; everything else fails with
// ErrInvalidTransition.
func (s *LoanService) UpdateStatus(ctx context.Context, id uint, newStatus domain.LoanStatus, actor string) (*models.Loan, error) {
	loan, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	from := domain.LoanStatus(loan.Status)
	if !domain.CanTransition(from, newStatus) {
		return nil, fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, from, newStatus)
	}

	// Capital is consumed at activation, not at creation. Several pending
	// loans can each pass the creation check, so the pool is re-checked
	// before the loan starts drawing on it.
	if from == domain.LoanApproved && newStatus == domain.LoanActive {
		available, err := s.capital.Available(ctx, domain.Currency(loan.Currency))
		if err != nil {
			return nil, err
		}
		if available.LessThan(loan.Amount) {
			return nil, fmt.Errorf("%w: capital %s insuffisant", domain.ErrInsufficientCapital, loan.Currency)
		}
	}

	loan.Status = string(newStatus)
	if err := s.loanRepo.Update(ctx, loan); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, domain.AuditUpdateLoan,
		fmt.Sprintf("Statut prêt %s changé de %s en %s", loan.Reference, from, newStatus), actor)

	return loan, nil
}

// ListOutput represents a paginated loan listing
type ListOutput struct {
	Loans      []*models.LoanResponse `json:"loans"`
	Total      int64                  `json:"total"`
	Page       int                    `json:"page"`
	Limit      int                    `json:"limit"`
	TotalPages int                    `json:"total_pages"`
}

// List lists loans
func (s *LoanService) List(ctx context.Context, page, limit int) (*ListOutput, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}

	offset := (page - 1) * limit
	loans, total, err := s.loanRepo.List(ctx, offset, limit)
	if err != nil {
		return nil, err
	}

	responses := make([]*models.LoanResponse, len(loans))
	for i, loan := range loans {
		responses[i] = loan.ToResponse()
	}

	totalPages := int(total) / limit
	if int(total)%limit > 0 {
		totalPages++
	}

	return &ListOutput{
		Loans:      responses,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	}, nil
}

// ListByMember lists a member's loans
func (s *LoanService) ListByMember(ctx context.Context, memberID uint) ([]*models.Loan, error) {
	return s.loanRepo.ListByMember(ctx, memberID)
}

// ListByStatus lists every loan currently in the given status
func (s *LoanService) ListByStatus(ctx context.Context, status domain.LoanStatus) ([]*models.Loan, error) {
	return s.loanRepo.ListByStatus(ctx, status)
}
