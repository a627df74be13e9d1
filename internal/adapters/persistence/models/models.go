package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"dgl-microfin/internal/core/domain"
)

// ============================================================
// Users & Auth
// ============================================================

// User represents users table
type User struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Username  string         `gorm:"uniqueIndex;size:50;not null" json:"username"`
	Password  string         `gorm:"size:255;not null" json:"-"`
	Name      string         `gorm:"size:100;not null" json:"name"`
	Role      string         `gorm:"size:20;default:'AGENT'" json:"role"`
	IsActive  bool           `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string {
	return "users"
}

// UserResponse DTO
type UserResponse struct {
	ID        uint      `json:"id"`
	Username  string    `json:"username"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

func (u *User) ToResponse() *UserResponse {
	return &UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Name:      u.Name,
		Role:      u.Role,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
	}
}

// IsActiveAdmin reports whether this user counts toward the last-admin rule
func (u *User) IsActiveAdmin() bool {
	return u.Role == string(domain.RoleAdmin) && u.IsActive
}

// RefreshToken represents refresh_tokens table
type RefreshToken struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    uint       `gorm:"index;not null" json:"user_id"`
	TokenHash string     `gorm:"size:255;not null;index" json:"-"`
	ExpiresAt time.Time  `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	RevokedAt *time.Time `gorm:"index" json:"revoked_at"`
	User      User       `gorm:"foreignKey:UserID" json:"-"`
}

func (RefreshToken) TableName() string {
	return "refresh_tokens"
}

func (rt *RefreshToken) IsRevoked() bool {
	return rt.RevokedAt != nil
}

func (rt *RefreshToken) IsExpired() bool {
	return time.Now().After(rt.ExpiresAt)
}

// ============================================================
// Registries
// ============================================================

// Member represents members table
type Member struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	FirstName      string         `gorm:"size:100;not null" json:"first_name"`
	LastName       string         `gorm:"size:100;not null" json:"last_name"`
	Gender         string         `gorm:"size:1;not null" json:"gender"`
	Phone          string         `gorm:"size:30" json:"phone"`
	Address        string         `gorm:"size:255" json:"address"`
	Profession     string         `gorm:"size:100" json:"profession"`
	GroupName      string         `gorm:"size:100" json:"group"`
	RegisteredAt   time.Time      `gorm:"not null" json:"registered_at"`
	CreatedAt      time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Member) TableName() string {
	return "members"
}

// FullName returns the member display name used on loans and receipts
func (m *Member) FullName() string {
	return m.FirstName + " " + m.LastName
}

// Partner represents partners table (funding sources)
type Partner struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Name      string         `gorm:"size:150;not null" json:"name"`
	Type      string         `gorm:"size:20;not null" json:"type"`
	Country   string         `gorm:"size:100" json:"country"`
	Email     string         `gorm:"size:150" json:"email"`
	Status    string         `gorm:"size:20;default:'ACTIVE'" json:"status"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Partner) TableName() string {
	return "partners"
}

// ============================================================
// Loans & Payments
// ============================================================

// Loan represents loans table. Monetary fields are snapshots computed at
// creation time; later settings changes never touch an existing loan.
type Loan struct {
	ID             uint            `gorm:"primaryKey" json:"id"`
	Reference      string          `gorm:"size:64;uniqueIndex;not null" json:"reference"`
	MemberID       uint            `gorm:"not null;index" json:"member_id"`
	PartnerID      *uint           `gorm:"index" json:"partner_id"`
	Amount         decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"amount"`
	Currency       string          `gorm:"size:3;not null;index" json:"currency"`
	DurationMonths int             `gorm:"not null" json:"duration_months"`
	InterestRate   decimal.Decimal `gorm:"type:decimal(5,2);not null" json:"interest_rate"`
	StartDate      time.Time       `gorm:"not null" json:"start_date"`
	Status         string          `gorm:"size:20;not null;index" json:"status"`

	TotalInterest    decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"total_interest"`
	TotalFees        decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"total_fees"`
	TotalInsurance   decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"total_insurance"`
	TotalSavings     decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"total_savings"`
	TotalDue         decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"total_due"`
	RemainingBalance decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"remaining_balance"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relations
	Member  *Member  `gorm:"foreignKey:MemberID" json:"member,omitempty"`
	Partner *Partner `gorm:"foreignKey:PartnerID" json:"partner,omitempty"`
}

func (Loan) TableName() string {
	return "loans"
}

// MaturityDate is the date the full balance falls due
func (l *Loan) MaturityDate() time.Time {
	return l.StartDate.AddDate(0, l.DurationMonths, 0)
}

// LoanResponse DTO
type LoanResponse struct {
	ID             uint            `json:"id"`
	Reference      string          `json:"reference"`
	MemberID       uint            `json:"member_id"`
	MemberName     string          `json:"member_name,omitempty"`
	PartnerID      *uint           `json:"partner_id,omitempty"`
	PartnerName    string          `json:"partner_name,omitempty"`
	Amount         decimal.Decimal `json:"amount"`
	Currency       string          `json:"currency"`
	DurationMonths int             `json:"duration_months"`
	InterestRate   decimal.Decimal `json:"interest_rate"`
	StartDate      time.Time       `json:"start_date"`
	Status         string          `json:"status"`

	TotalInterest    decimal.Decimal `json:"total_interest"`
	TotalFees        decimal.Decimal `json:"total_fees"`
	TotalInsurance   decimal.Decimal `json:"total_insurance"`
	TotalSavings     decimal.Decimal `json:"total_savings"`
	TotalDue         decimal.Decimal `json:"total_due"`
	RemainingBalance decimal.Decimal `json:"remaining_balance"`

	CreatedAt time.Time `json:"created_at"`
}

func (l *Loan) ToResponse() *LoanResponse {
	resp := &LoanResponse{
		ID:               l.ID,
		Reference:        l.Reference,
		MemberID:         l.MemberID,
		PartnerID:        l.PartnerID,
		Amount:           l.Amount,
		Currency:         l.Currency,
		DurationMonths:   l.DurationMonths,
		InterestRate:     l.InterestRate,
		StartDate:        l.StartDate,
		Status:           l.Status,
		TotalInterest:    l.TotalInterest,
		TotalFees:        l.TotalFees,
		TotalInsurance:   l.TotalInsurance,
		TotalSavings:     l.TotalSavings,
		TotalDue:         l.TotalDue,
		RemainingBalance: l.RemainingBalance,
		CreatedAt:        l.CreatedAt,
	}

	if l.Member != nil {
		resp.MemberName = l.Member.FullName()
	}
	if l.Partner != nil {
		resp.PartnerName = l.Partner.Name
	}

	return resp
}

// Payment represents payments table. Immutable once created.
type Payment struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	Receipt   string          `gorm:"size:64;uniqueIndex;not null" json:"receipt"`
	LoanID    uint            `gorm:"not null;index" json:"loan_id"`
	MemberID  uint            `gorm:"not null;index" json:"member_id"`
	Amount    decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"amount"`
	Currency  string          `gorm:"size:3;not null" json:"currency"`
	Method    string          `gorm:"size:20;not null" json:"method"`
	PaidAt    time.Time       `gorm:"not null" json:"paid_at"`
	AgentName string          `gorm:"size:100;not null" json:"agent_name"`
	CreatedAt time.Time       `gorm:"autoCreateTime" json:"created_at"`

	// Relations
	Loan   *Loan   `gorm:"foreignKey:LoanID" json:"loan,omitempty"`
	Member *Member `gorm:"foreignKey:MemberID" json:"member,omitempty"`
}

func (Payment) TableName() string {
	return "payments"
}

// ============================================================
// Settings & Audit
// ============================================================

// Settings is a single-row table holding institution identity, capital
// ceilings and rate/fee percentages. Loans snapshot these at creation.
type Settings struct {
	ID              uint            `gorm:"primaryKey" json:"id"`
	InstitutionName string          `gorm:"size:150;not null" json:"institution_name"`
	LogoURL         *string         `gorm:"size:255" json:"logo_url"`
	CapitalCDF      decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"capital_cdf"`
	CapitalUSD      decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"capital_usd"`
	InterestRate    decimal.Decimal `gorm:"type:decimal(5,2);not null" json:"interest_rate"`

	ApplicationFeePercent decimal.Decimal `gorm:"type:decimal(5,2);not null" json:"application_fee_percent"`
	InsuranceFeePercent   decimal.Decimal `gorm:"type:decimal(5,2);not null" json:"insurance_fee_percent"`
	SavingsPercent        decimal.Decimal `gorm:"type:decimal(5,2);not null" json:"savings_percent"`
	// PenaltyRate is configured but not applied anywhere yet.
	PenaltyRate decimal.Decimal `gorm:"type:decimal(5,2);not null" json:"penalty_rate"`

	WelcomeTitle       string `gorm:"size:150" json:"welcome_title"`
	WelcomeSubtitle    string `gorm:"size:255" json:"welcome_subtitle"`
	WelcomeDescription string `gorm:"type:text" json:"welcome_description"`

	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Settings) TableName() string {
	return "settings"
}

// CapitalCeiling returns the configured ceiling for a currency pool
func (s *Settings) CapitalCeiling(currency domain.Currency) decimal.Decimal {
	if currency == domain.CurrencyUSD {
		return s.CapitalUSD
	}
	return s.CapitalCDF
}

// AuditLog represents audit_logs table. Append-only, never deleted.
type AuditLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Action    string    `gorm:"size:50;not null;index" json:"action"`
	Details   string    `gorm:"type:text" json:"details"`
	Actor     string    `gorm:"size:100;not null" json:"actor"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (AuditLog) TableName() string {
	return "audit_logs"
}

// ============================================================
// Auto Migration
// ============================================================

// AutoMigrate runs auto migration for all tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&RefreshToken{},
		&Member{},
		&Partner{},
		&Loan{},
		&Payment{},
		&Settings{},
		&AuditLog{},
	)
}
