package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"dgl-microfin/internal/adapters/persistence/models"
	"dgl-microfin/internal/adapters/persistence/repositories"
	"dgl-microfin/internal/core/domain"
)

// Partner service errors
var (
	ErrInvalidPartnerType   = errors.New("partner type must be INTERNAL or EXTERNAL")
	ErrInvalidPartnerStatus = errors.New("partner status must be ACTIVE or SUSPENDED")
)

// PartnerService handles partner registry business logic
type PartnerService struct {
	partnerRepo repositories.PartnerRepository
}

// NewPartnerService creates a new partner service
func NewPartnerService(partnerRepo repositories.PartnerRepository) *PartnerService {
	return &PartnerService{partnerRepo: partnerRepo}
}

// PartnerInput represents create/update partner input
type PartnerInput struct {
	Name    string `json:"name"`
	Type    string `json:"type"`
	Country string `json:"country"`
	Email   string `json:"email"`
	Status  string `json:"status"`
}

func (in *PartnerInput) validate() error {
	if in.Name == "" {
		return domain.ErrInvalidInput
	}
	t := domain.PartnerType(in.Type)
	if t != domain.PartnerInternal && t != domain.PartnerExternal {
		return ErrInvalidPartnerType
	}
	if in.Status == "" {
		in.Status = string(domain.PartnerActive)
	}
	st := domain.PartnerStatus(in.Status)
	if st != domain.PartnerActive && st != domain.PartnerSuspended {
		return ErrInvalidPartnerStatus
	}
	return nil
}

// Create creates a new partner
func (s *PartnerService) Create(ctx context.Context, input *PartnerInput) (*models.Partner, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	partner := &models.Partner{
		Name:    input.Name,
		Type:    input.Type,
		Country: input.Country,
		Email:   input.Email,
		Status:  input.Status,
	}

	if err := s.partnerRepo.Create(ctx, partner); err != nil {
		return nil, err
	}
	return partner, nil
}

// GetByID gets a partner by ID
func (s *PartnerService) GetByID(ctx context.Context, id uint) (*models.Partner, error) {
	partner, err := s.partnerRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrPartnerNotFound
		}
		return nil, err
	}
	return partner, nil
}

// Update updates a partner
func (s *PartnerService) Update(ctx context.Context, id uint, input *PartnerInput) (*models.Partner, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	partner, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	partner.Name = input.Name
	partner.Type = input.Type
	partner.Country = input.Country
	partner.Email = input.Email
	partner.Status = input.Status

	if err := s.partnerRepo.Update(ctx, partner); err != nil {
		return nil, err
	}
	return partner, nil
}

// Delete removes a partner
func (s *PartnerService) Delete(ctx context.Context, id uint) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	return s.partnerRepo.Delete(ctx, id)
}

// List lists partners with pagination
func (s *PartnerService) List(ctx context.Context, offset, limit int) ([]*models.Partner, int64, error) {
	return s.partnerRepo.List(ctx, offset, limit)
}
