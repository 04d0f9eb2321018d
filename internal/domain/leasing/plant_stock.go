package leasing

import (
	"time"

	"github.com/google/uuid"
	"github.com/plantlease/backend/internal/domain/shared"
)

// PlantStock tracks the available units of one plant type. It is the
// aggregate root for inventory reservations: AvailableStock never goes
// negative, and every mutation happens inside the reservation engine's
// unit of work.
type PlantStock struct {
	shared.BaseAggregateRoot
	PlantTypeID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	PlantName      string    `gorm:"size:100"`
	AvailableStock int       `gorm:"not null;default:0;check:available_stock >= 0"`
}

// TableName returns the table name for GORM
func (PlantStock) TableName() string {
	return "plant_stocks"
}

// NewPlantStock creates stock for a plant type
func NewPlantStock(plantTypeID uuid.UUID, plantName string, available int) (*PlantStock, error) {
	if plantTypeID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PLANT_TYPE", "Plant type ID cannot be empty")
	}
	if available < 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Available stock cannot be negative")
	}

	return &PlantStock{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		PlantTypeID:       plantTypeID,
		PlantName:         plantName,
		AvailableStock:    available,
	}, nil
}

// CanFulfill returns true if the requested quantity is available
func (s *PlantStock) CanFulfill(quantity int) bool {
	return quantity > 0 && s.AvailableStock >= quantity
}

// Reserve decrements the available stock for a contract activation.
// Fails with InsufficientStockError when the request cannot be covered;
// the stock is left untouched in that case.
func (s *PlantStock) Reserve(quantity int) error {
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Reserve quantity must be positive")
	}
	if s.AvailableStock < quantity {
		return &InsufficientStockError{
			PlantTypeID: s.PlantTypeID,
			Requested:   quantity,
			Available:   s.AvailableStock,
		}
	}

	s.AvailableStock -= quantity
	s.UpdatedAt = time.Now()
	s.IncrementVersion()

	s.AddDomainEvent(NewStockReservedEvent(s, quantity))

	return nil
}

// Release returns previously reserved units to the available pool
// (contract cancellation or plant return).
func (s *PlantStock) Release(quantity int) error {
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Release quantity must be positive")
	}

	s.AvailableStock += quantity
	s.UpdatedAt = time.Now()
	s.IncrementVersion()

	s.AddDomainEvent(NewStockReleasedEvent(s, quantity))

	return nil
}
