package leasing

import (
	"time"

	"github.com/google/uuid"
	"github.com/plantlease/backend/internal/domain/shared"
)

// CustomerPlantStatus represents the status of a leased plant placement
type CustomerPlantStatus string

const (
	CustomerPlantStatusActive   CustomerPlantStatus = "ACTIVE"
	CustomerPlantStatusRemoved  CustomerPlantStatus = "REMOVED"
	CustomerPlantStatusReplaced CustomerPlantStatus = "REPLACED"
)

// IsValid checks if the status is a valid CustomerPlantStatus
func (s CustomerPlantStatus) IsValid() bool {
	switch s {
	case CustomerPlantStatusActive, CustomerPlantStatusRemoved, CustomerPlantStatusReplaced:
		return true
	}
	return false
}

// String returns the string representation of CustomerPlantStatus
func (s CustomerPlantStatus) String() string {
	return string(s)
}

// CustomerPlant records units of a plant type placed at a customer under
// an active contract. It is created on contract activation and marked
// REMOVED on cancellation/return, which releases the units back to stock.
type CustomerPlant struct {
	shared.BaseEntity
	ContractID  uuid.UUID           `gorm:"type:uuid;not null;index"`
	PlantTypeID uuid.UUID           `gorm:"type:uuid;not null;index"`
	Quantity    int                 `gorm:"not null"`
	Status      CustomerPlantStatus `gorm:"size:20;not null;default:'ACTIVE'"`
	LeasedAt    time.Time           `gorm:"not null"`
	RemovedAt   *time.Time
}

// TableName returns the table name for GORM
func (CustomerPlant) TableName() string {
	return "customer_plants"
}

// NewCustomerPlant creates an active leased-plant record for a contract item
func NewCustomerPlant(contractID, plantTypeID uuid.UUID, quantity int) (*CustomerPlant, error) {
	if contractID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CONTRACT", "Contract ID cannot be empty")
	}
	if plantTypeID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PLANT_TYPE", "Plant type ID cannot be empty")
	}
	if quantity <= 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}

	return &CustomerPlant{
		BaseEntity:  shared.NewBaseEntity(),
		ContractID:  contractID,
		PlantTypeID: plantTypeID,
		Quantity:    quantity,
		Status:      CustomerPlantStatusActive,
		LeasedAt:    time.Now(),
	}, nil
}

// IsActive returns true if the plants are still placed at the customer
func (cp *CustomerPlant) IsActive() bool {
	return cp.Status == CustomerPlantStatusActive
}

// Remove marks the placement as removed (units go back to stock)
func (cp *CustomerPlant) Remove() error {
	if cp.Status != CustomerPlantStatusActive {
		return shared.ErrInvalidState
	}

	now := time.Now()
	cp.Status = CustomerPlantStatusRemoved
	cp.RemovedAt = &now
	cp.UpdatedAt = now

	return nil
}

// Replace marks the placement as replaced by another unit. Stock is not
// released: the replacement consumes the slot.
func (cp *CustomerPlant) Replace() error {
	if cp.Status != CustomerPlantStatusActive {
		return shared.ErrInvalidState
	}

	cp.Status = CustomerPlantStatusReplaced
	cp.UpdatedAt = time.Now()

	return nil
}
