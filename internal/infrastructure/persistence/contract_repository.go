package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/plantlease/backend/internal/domain/leasing"
	"github.com/plantlease/backend/internal/domain/shared"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormContractRepository implements ContractRepository using GORM
type GormContractRepository struct {
	db *gorm.DB
}

// NewGormContractRepository creates a new GormContractRepository
func NewGormContractRepository(db *gorm.DB) *GormContractRepository {
	return &GormContractRepository{db: db}
}

// FindByID finds a contract by its ID
func (r *GormContractRepository) FindByID(ctx context.Context, id uuid.UUID) (*leasing.Contract, error) {
	var c leasing.Contract
	if err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

// FindByIDForUpdate finds a contract by ID with a row lock (SELECT FOR
// UPDATE). Must run inside a transaction; the lock is held until commit.
func (r *GormContractRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*leasing.Contract, error) {
	var c leasing.Contract
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&c, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

// FindByNumber finds a contract by its contract number
func (r *GormContractRepository) FindByNumber(ctx context.Context, contractNumber string) (*leasing.Contract, error) {
	var c leasing.Contract
	if err := r.db.WithContext(ctx).First(&c, "contract_number = ?", contractNumber).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

// FindByCustomer finds contracts for a customer
func (r *GormContractRepository) FindByCustomer(ctx context.Context, customerID uuid.UUID, filter shared.Filter) ([]leasing.Contract, error) {
	var contracts []leasing.Contract
	query := applyFilter(
		r.db.WithContext(ctx).Model(&leasing.Contract{}).Where("customer_id = ?", customerID),
		filter,
	)
	if err := query.Find(&contracts).Error; err != nil {
		return nil, err
	}
	return contracts, nil
}

// Save creates or updates a contract
func (r *GormContractRepository) Save(ctx context.Context, c *leasing.Contract) error {
	return r.db.WithContext(ctx).Save(c).Error
}

// Ensure GormContractRepository implements ContractRepository
var _ leasing.ContractRepository = (*GormContractRepository)(nil)
