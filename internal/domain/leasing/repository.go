package leasing

import (
	"context"

	"github.com/google/uuid"
	"github.com/plantlease/backend/internal/domain/shared"
)

// ContractRepository defines the interface for contract persistence
type ContractRepository interface {
	// FindByID finds a contract by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Contract, error)

	// FindByIDForUpdate finds a contract by ID and locks the row for the
	// duration of the current transaction, so concurrent lifecycle
	// changes on the same contract serialize.
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*Contract, error)

	// FindByNumber finds a contract by its contract number
	FindByNumber(ctx context.Context, contractNumber string) (*Contract, error)

	// FindByCustomer finds contracts for a customer
	FindByCustomer(ctx context.Context, customerID uuid.UUID, filter shared.Filter) ([]Contract, error)

	// Save creates or updates a contract
	Save(ctx context.Context, c *Contract) error
}

// PlantStockRepository defines the interface for plant stock persistence
type PlantStockRepository interface {
	// FindByPlantType finds the stock row for a plant type. Returns
	// shared.ErrNotFound when no row exists; the reservation engine
	// treats a missing row as zero available stock.
	FindByPlantType(ctx context.Context, plantTypeID uuid.UUID) (*PlantStock, error)

	// FindByPlantTypeForUpdate finds the stock row for a plant type and
	// locks it for the duration of the current transaction. The engine
	// uses this for every check-then-decrement so two activations cannot
	// both pass the availability check on the same pool.
	FindByPlantTypeForUpdate(ctx context.Context, plantTypeID uuid.UUID) (*PlantStock, error)

	// FindAll lists all stock rows
	FindAll(ctx context.Context, filter shared.Filter) ([]PlantStock, error)

	// Save creates or updates a stock row
	Save(ctx context.Context, s *PlantStock) error
}

// CustomerPlantRepository defines the interface for leased-plant records
type CustomerPlantRepository interface {
	// FindByID finds a customer plant record by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*CustomerPlant, error)

	// FindByContract finds all plant records belonging to a contract
	FindByContract(ctx context.Context, contractID uuid.UUID) ([]CustomerPlant, error)

	// FindActiveByContract finds the ACTIVE plant records of a contract
	FindActiveByContract(ctx context.Context, contractID uuid.UUID) ([]CustomerPlant, error)

	// Create inserts a new customer plant record
	Create(ctx context.Context, cp *CustomerPlant) error

	// Save updates an existing customer plant record
	Save(ctx context.Context, cp *CustomerPlant) error
}
