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

// GormPlantStockRepository implements PlantStockRepository using GORM
type GormPlantStockRepository struct {
	db *gorm.DB
}

// NewGormPlantStockRepository creates a new GormPlantStockRepository
func NewGormPlantStockRepository(db *gorm.DB) *GormPlantStockRepository {
	return &GormPlantStockRepository{db: db}
}

// FindByPlantType finds the stock row for a plant type
func (r *GormPlantStockRepository) FindByPlantType(ctx context.Context, plantTypeID uuid.UUID) (*leasing.PlantStock, error) {
	var s leasing.PlantStock
	if err := r.db.WithContext(ctx).First(&s, "plant_type_id = ?", plantTypeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

// FindByPlantTypeForUpdate finds the stock row for a plant type with a
// row lock (SELECT FOR UPDATE). Must run inside a transaction; the
// reservation engine relies on this lock so concurrent activations on
// the same pool serialize.
func (r *GormPlantStockRepository) FindByPlantTypeForUpdate(ctx context.Context, plantTypeID uuid.UUID) (*leasing.PlantStock, error) {
	var s leasing.PlantStock
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&s, "plant_type_id = ?", plantTypeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

// FindAll lists all stock rows
func (r *GormPlantStockRepository) FindAll(ctx context.Context, filter shared.Filter) ([]leasing.PlantStock, error) {
	var stocks []leasing.PlantStock
	query := applyFilter(r.db.WithContext(ctx).Model(&leasing.PlantStock{}), filter)
	if err := query.Find(&stocks).Error; err != nil {
		return nil, err
	}
	return stocks, nil
}

// Save creates or updates a stock row
func (r *GormPlantStockRepository) Save(ctx context.Context, s *leasing.PlantStock) error {
	return r.db.WithContext(ctx).Save(s).Error
}

// Ensure GormPlantStockRepository implements PlantStockRepository
var _ leasing.PlantStockRepository = (*GormPlantStockRepository)(nil)
