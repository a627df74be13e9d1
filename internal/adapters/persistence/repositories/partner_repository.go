package repositories

import (
	"context"

	"gorm.io/gorm"

	"dgl-microfin/internal/adapters/persistence/models"
)

// partnerRepository implements PartnerRepository interface
type partnerRepository struct {
	db *gorm.DB
}

// NewPartnerRepository creates a new partner repository
func NewPartnerRepository(db *gorm.DB) PartnerRepository {
	return &partnerRepository{db: db}
}

// Create creates a new partner
func (r *partnerRepository) Create(ctx context.Context, partner *models.Partner) error {
	return r.db.WithContext(ctx).Create(partner).Error
}

// GetByID gets a partner by ID
func (r *partnerRepository) GetByID(ctx context.Context, id uint) (*models.Partner, error) {
	var partner models.Partner
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&partner).Error
	if err != nil {
		return nil, err
	}
	return &partner, nil
}

// Update updates a partner
func (r *partnerRepository) Update(ctx context.Context, partner *models.Partner) error {
	return r.db.WithContext(ctx).Save(partner).Error
}

// Delete soft deletes a partner
func (r *partnerRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Partner{}, id).Error
}

// List lists partners with pagination
func (r *partnerRepository) List(ctx context.Context, offset, limit int) ([]*models.Partner, int64, error) {
	var partners []*models.Partner
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.Partner{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.WithContext(ctx).
		Order("name ASC").
		Offset(offset).
		Limit(limit).
		Find(&partners).Error

	return partners, total, err
}
