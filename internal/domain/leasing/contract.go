package leasing

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/plantlease/backend/internal/domain/shared"
)

// ContractStatus represents the lifecycle status of a lease contract
type ContractStatus string

const (
	ContractStatusDraft       ContractStatus = "DRAFT"
	ContractStatusSent        ContractStatus = "SENT"
	ContractStatusNegotiating ContractStatus = "NEGOTIATING"
	ContractStatusSigned      ContractStatus = "SIGNED"
	ContractStatusActive      ContractStatus = "ACTIVE"
	ContractStatusExpired     ContractStatus = "EXPIRED"
	ContractStatusTerminated  ContractStatus = "TERMINATED"
	ContractStatusCancelled   ContractStatus = "CANCELLED"
)

// IsValid checks if the status is a valid ContractStatus
func (s ContractStatus) IsValid() bool {
	switch s {
	case ContractStatusDraft, ContractStatusSent, ContractStatusNegotiating,
		ContractStatusSigned, ContractStatusActive, ContractStatusExpired,
		ContractStatusTerminated, ContractStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of ContractStatus
func (s ContractStatus) String() string {
	return string(s)
}

// IsTerminal returns true if the contract can no longer change state
func (s ContractStatus) IsTerminal() bool {
	return s == ContractStatusExpired || s == ContractStatusTerminated || s == ContractStatusCancelled
}

// CanActivate returns true if a contract in this status may be activated
func (s ContractStatus) CanActivate() bool {
	switch s {
	case ContractStatusDraft, ContractStatusSent, ContractStatusNegotiating, ContractStatusSigned:
		return true
	}
	return false
}

// ContractItem is one line of a lease contract: a plant type and how
// many units of it the customer leases.
type ContractItem struct {
	PlantTypeID uuid.UUID `json:"plant_type_id"`
	Quantity    int       `json:"quantity"`
}

// ContractItems is the ordered item list of a contract, stored as JSONB
type ContractItems []ContractItem

// Value implements driver.Valuer for JSONB storage
func (items ContractItems) Value() (driver.Value, error) {
	if items == nil {
		return "[]", nil
	}
	return json.Marshal(items)
}

// Scan implements sql.Scanner for JSONB retrieval
func (items *ContractItems) Scan(value interface{}) error {
	if value == nil {
		*items = ContractItems{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New("failed to scan ContractItems: unsupported type")
	}

	if len(bytes) == 0 {
		*items = ContractItems{}
		return nil
	}

	return json.Unmarshal(bytes, items)
}

// Contract represents a plant lease contract aggregate root. Its item
// list is immutable once the contract is activated; activation and
// cancellation drive the inventory reservation engine.
type Contract struct {
	shared.BaseAggregateRoot
	ContractNumber string         `gorm:"size:50;not null;uniqueIndex"`
	CustomerID     uuid.UUID      `gorm:"type:uuid;not null;index"`
	Status         ContractStatus `gorm:"size:20;not null;default:'DRAFT'"`
	Items          ContractItems  `gorm:"type:jsonb;not null;default:'[]'"`
	StartDate      *time.Time
	EndDate        *time.Time
	ActivatedAt    *time.Time
	CancelledAt    *time.Time
}

// TableName returns the table name for GORM
func (Contract) TableName() string {
	return "contracts"
}

// NewContract creates a new draft contract with the given items
func NewContract(contractNumber string, customerID uuid.UUID, items []ContractItem) (*Contract, error) {
	if contractNumber == "" {
		return nil, shared.NewDomainError("INVALID_CONTRACT_NUMBER", "Contract number cannot be empty")
	}
	if customerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer ID cannot be empty")
	}
	if len(items) == 0 {
		return nil, shared.NewDomainError("INVALID_ITEMS", "Contract must have at least one item")
	}
	for _, item := range items {
		if item.PlantTypeID == uuid.Nil {
			return nil, shared.NewDomainError("INVALID_ITEMS", "Contract item plant type cannot be empty")
		}
		if item.Quantity <= 0 {
			return nil, shared.NewDomainError("INVALID_ITEMS", "Contract item quantity must be positive")
		}
	}

	c := &Contract{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ContractNumber:    contractNumber,
		CustomerID:        customerID,
		Status:            ContractStatusDraft,
		Items:             append(ContractItems{}, items...),
	}

	c.AddDomainEvent(NewContractCreatedEvent(c))

	return c, nil
}

// Activate transitions the contract to ACTIVE. The caller (reservation
// engine) is responsible for reserving stock for every item in the same
// unit of work; this method only validates and applies the status change.
func (c *Contract) Activate() error {
	if !c.Status.CanActivate() {
		return shared.ErrInvalidState
	}

	now := time.Now()
	c.Status = ContractStatusActive
	c.ActivatedAt = &now
	c.UpdatedAt = now
	c.IncrementVersion()

	c.AddDomainEvent(NewContractActivatedEvent(c))

	return nil
}

// Cancel transitions the contract to CANCELLED and reports whether
// leased units have to be returned to stock (true only when the
// contract was ACTIVE immediately prior).
func (c *Contract) Cancel() (releaseStock bool, err error) {
	if c.Status.IsTerminal() {
		return false, shared.ErrInvalidState
	}

	wasActive := c.Status == ContractStatusActive

	now := time.Now()
	c.Status = ContractStatusCancelled
	c.CancelledAt = &now
	c.UpdatedAt = now
	c.IncrementVersion()

	c.AddDomainEvent(NewContractCancelledEvent(c, wasActive))

	return wasActive, nil
}

// IsActive returns true if the contract is currently active
func (c *Contract) IsActive() bool {
	return c.Status == ContractStatusActive
}

// TotalUnits returns the total number of leased units across all items
func (c *Contract) TotalUnits() int {
	total := 0
	for _, item := range c.Items {
		total += item.Quantity
	}
	return total
}
