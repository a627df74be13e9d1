package config

import (
	"log"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"dgl-microfin/internal/adapters/persistence/models"
	"dgl-microfin/internal/pkg/password"
)

// Seeder handles database seeding
type Seeder struct {
	db *gorm.DB
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db}
}

// Run executes all seeders
func (s *Seeder) Run() error {
	log.Println("🌱 Running database seeders...")

	if err := s.seedAdminUser(); err != nil {
		log.Printf("⚠️ Admin seeder skipped: %v", err)
	}

	if err := s.seedSettings(); err != nil {
		log.Printf("⚠️ Settings seeder skipped: %v", err)
	}

	log.Println("✅ Database seeding completed")
	return nil
}

// seedAdminUser seeds default admin user
// The password must be changed after the first login
func (s *Seeder) seedAdminUser() error {
	var count int64
	s.db.Model(&models.User{}).Where("role = ?", "ADMIN").Count(&count)
	if count > 0 {
		return nil // Admin already exists
	}

	hashedPassword, err := password.Hash("admin123456")
	if err != nil {
		return err
	}

	admin := &models.User{
		Username: "admin",
		Password: hashedPassword,
		Name:     "Administrateur",
		Role:     "ADMIN",
		IsActive: true,
	}

	if err := s.db.Create(admin).Error; err != nil {
		return err
	}

	log.Printf("✅ Admin user created: %s", admin.Username)
	return nil
}

// seedSettings inserts the default institution settings row if the
// table is empty. Everything here is editable through the settings API.
func (s *Seeder) seedSettings() error {
	var count int64
	s.db.Model(&models.Settings{}).Count(&count)
	if count > 0 {
		return nil // Settings already configured
	}

	settings := &models.Settings{
		InstitutionName:       "ONGD DEBOUT GRANDS LACS",
		CapitalCDF:            decimal.NewFromInt(10000000),
		CapitalUSD:            decimal.NewFromInt(5000),
		InterestRate:          decimal.NewFromInt(10),
		ApplicationFeePercent: decimal.NewFromInt(2),
		InsuranceFeePercent:   decimal.NewFromInt(1),
		SavingsPercent:        decimal.NewFromInt(5),
		PenaltyRate:           decimal.NewFromInt(5),
		WelcomeTitle:          "Bienvenue",
		WelcomeSubtitle:       "Système de gestion de microfinance",
		WelcomeDescription:    "Gestion des membres, des crédits et des remboursements de l'institution.",
	}

	if err := s.db.Create(settings).Error; err != nil {
		return err
	}

	log.Println("✅ Default settings created")
	return nil
}
