package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"dgl-microfin/internal/adapters/persistence/models"
	"dgl-microfin/internal/adapters/persistence/repositories"
	"dgl-microfin/internal/core/domain"
)

// Member service errors
var (
	ErrInvalidGender = errors.New("gender must be M or F")
)

// MemberService handles member registry business logic
type MemberService struct {
	memberRepo repositories.MemberRepository
	loanRepo   repositories.LoanRepository
	audit      *AuditService
}

// NewMemberService creates a new member service
func NewMemberService(
	memberRepo repositories.MemberRepository,
	loanRepo repositories.LoanRepository,
	audit *AuditService,
) *MemberService {
	return &MemberService{
		memberRepo: memberRepo,
		loanRepo:   loanRepo,
		audit:      audit,
	}
}

// MemberInput represents create/update member input
type MemberInput struct {
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Gender     string `json:"gender"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
	Profession string `json:"profession"`
	Group      string `json:"group"`
}

func (in *MemberInput) validate() error {
	if in.FirstName == "" || in.LastName == "" {
		return domain.ErrInvalidInput
	}
	if in.Gender != "M" && in.Gender != "F" {
		return ErrInvalidGender
	}
	return nil
}

// Create registers a new member
func (s *MemberService) Create(ctx context.Context, input *MemberInput, actor string) (*models.Member, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	member := &models.Member{
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Gender:       input.Gender,
		Phone:        input.Phone,
		Address:      input.Address,
		Profession:   input.Profession,
		GroupName:    input.Group,
		RegisteredAt: time.Now(),
	}

	if err := s.memberRepo.Create(ctx, member); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, domain.AuditCreateMember,
		fmt.Sprintf("Membre enregistré: %s", member.FullName()), actor)

	return member, nil
}

// GetByID gets a member by ID
func (s *MemberService) GetByID(ctx context.Context, id uint) (*models.Member, error) {
	member, err := s.memberRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrMemberNotFound
		}
		return nil, err
	}
	return member, nil
}

// Update updates a member
func (s *MemberService) Update(ctx context.Context, id uint, input *MemberInput) (*models.Member, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	member, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	member.FirstName = input.FirstName
	member.LastName = input.LastName
	member.Gender = input.Gender
	member.Phone = input.Phone
	member.Address = input.Address
	member.Profession = input.Profession
	member.GroupName = input.Group

	if err := s.memberRepo.Update(ctx, member); err != nil {
		return nil, err
	}
	return member, nil
}

// Delete removes a member. Fails while the member holds any loan that is
// not completed or rejected.
func (s *MemberService) Delete(ctx context.Context, id uint, actor string) error {
	member, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	open, err := s.loanRepo.CountOpenByMember(ctx, id)
	if err != nil {
		return err
	}
	if open > 0 {
		return domain.ErrMemberHasOpenLoans
	}

	if err := s.memberRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.audit.Record(ctx, domain.AuditDeleteMember,
		fmt.Sprintf("Membre supprimé: %s", member.FullName()), actor)

	return nil
}

// List lists members with pagination
func (s *MemberService) List(ctx context.Context, offset, limit int) ([]*models.Member, int64, error) {
	return s.memberRepo.List(ctx, offset, limit)
}

// Search searches members by name or group
func (s *MemberService) Search(ctx context.Context, query string, limit int) ([]*models.Member, error) {
	if limit < 1 || limit > 50 {
		limit = 20
	}
	return s.memberRepo.Search(ctx, query, limit)
}
