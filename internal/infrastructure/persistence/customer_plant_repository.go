package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/plantlease/backend/internal/domain/leasing"
	"github.com/plantlease/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormCustomerPlantRepository implements CustomerPlantRepository using GORM
type GormCustomerPlantRepository struct {
	db *gorm.DB
}

// NewGormCustomerPlantRepository creates a new GormCustomerPlantRepository
func NewGormCustomerPlantRepository(db *gorm.DB) *GormCustomerPlantRepository {
	return &GormCustomerPlantRepository{db: db}
}

// FindByID finds a customer plant record by its ID
func (r *GormCustomerPlantRepository) FindByID(ctx context.Context, id uuid.UUID) (*leasing.CustomerPlant, error) {
	var cp leasing.CustomerPlant
	if err := r.db.WithContext(ctx).First(&cp, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &cp, nil
}

// FindByContract finds all plant records belonging to a contract
func (r *GormCustomerPlantRepository) FindByContract(ctx context.Context, contractID uuid.UUID) ([]leasing.CustomerPlant, error) {
	var plants []leasing.CustomerPlant
	if err := r.db.WithContext(ctx).
		Where("contract_id = ?", contractID).
		Order("leased_at ASC").
		Find(&plants).Error; err != nil {
		return nil, err
	}
	return plants, nil
}

// FindActiveByContract finds the ACTIVE plant records of a contract
func (r *GormCustomerPlantRepository) FindActiveByContract(ctx context.Context, contractID uuid.UUID) ([]leasing.CustomerPlant, error) {
	var plants []leasing.CustomerPlant
	if err := r.db.WithContext(ctx).
		Where("contract_id = ? AND status = ?", contractID, leasing.CustomerPlantStatusActive).
		Order("leased_at ASC").
		Find(&plants).Error; err != nil {
		return nil, err
	}
	return plants, nil
}

// Create inserts a new customer plant record
func (r *GormCustomerPlantRepository) Create(ctx context.Context, cp *leasing.CustomerPlant) error {
	return r.db.WithContext(ctx).Create(cp).Error
}

// Save updates an existing customer plant record
func (r *GormCustomerPlantRepository) Save(ctx context.Context, cp *leasing.CustomerPlant) error {
	return r.db.WithContext(ctx).Save(cp).Error
}

// Ensure GormCustomerPlantRepository implements CustomerPlantRepository
var _ leasing.CustomerPlantRepository = (*GormCustomerPlantRepository)(nil)
