package services

import (
	"context"

	"github.com/shopspring/decimal"

	"dgl-microfin/internal/adapters/persistence/models"
	"dgl-microfin/internal/adapters/persistence/repositories"
	"dgl-microfin/internal/core/domain"
)

// SettingsService reads and mutates the institution settings singleton
type SettingsService struct {
	settingsRepo repositories.SettingsRepository
	audit        *AuditService
}

// NewSettingsService creates a new settings service
func NewSettingsService(settingsRepo repositories.SettingsRepository, audit *AuditService) *SettingsService {
	return &SettingsService{
		settingsRepo: settingsRepo,
		audit:        audit,
	}
}

// Get returns the settings row
func (s *SettingsService) Get(ctx context.Context) (*models.Settings, error) {
	return s.settingsRepo.Get(ctx)
}

// UpdateSettingsInput represents update settings input. All fields are
// required; the form submits the whole settings page at once.
type UpdateSettingsInput struct {
	InstitutionName string          `json:"institution_name"`
	LogoURL         *string         `json:"logo_url"`
	CapitalCDF      decimal.Decimal `json:"capital_cdf"`
	CapitalUSD      decimal.Decimal `json:"capital_usd"`
	InterestRate    decimal.Decimal `json:"interest_rate"`

	ApplicationFeePercent decimal.Decimal `json:"application_fee_percent"`
	InsuranceFeePercent   decimal.Decimal `json:"insurance_fee_percent"`
	SavingsPercent        decimal.Decimal `json:"savings_percent"`
	PenaltyRate           decimal.Decimal `json:"penalty_rate"`

	WelcomeTitle       string `json:"welcome_title"`
	WelcomeSubtitle    string `json:"welcome_subtitle"`
	WelcomeDescription string `json:"welcome_description"`
}

func (in *UpdateSettingsInput) validate() error {
	if in.InstitutionName == "" {
		return domain.ErrInvalidInput
	}
	for _, pct := range []decimal.Decimal{
		in.CapitalCDF, in.CapitalUSD, in.InterestRate,
		in.ApplicationFeePercent, in.InsuranceFeePercent,
		in.SavingsPercent, in.PenaltyRate,
	} {
		if pct.Sign() < 0 {
			return domain.ErrInvalidInput
		}
	}
	return nil
}

// Update overwrites the settings row. Existing loans keep the rates they
// were created with.
func (s *SettingsService) Update(ctx context.Context, input *UpdateSettingsInput, actor string) (*models.Settings, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, err
	}

	settings.InstitutionName = input.InstitutionName
	settings.LogoURL = input.LogoURL
	settings.CapitalCDF = input.CapitalCDF
	settings.CapitalUSD = input.CapitalUSD
	settings.InterestRate = input.InterestRate
	settings.ApplicationFeePercent = input.ApplicationFeePercent
	settings.InsuranceFeePercent = input.InsuranceFeePercent
	settings.SavingsPercent = input.SavingsPercent
	settings.PenaltyRate = input.PenaltyRate
	settings.WelcomeTitle = input.WelcomeTitle
	settings.WelcomeSubtitle = input.WelcomeSubtitle
	settings.WelcomeDescription = input.WelcomeDescription

	if err := s.settingsRepo.Save(ctx, settings); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, domain.AuditSettings, "Paramètres de l'institution mis à jour", actor)

	return settings, nil
}
