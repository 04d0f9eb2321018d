package leasing

import (
	"github.com/google/uuid"
	"github.com/plantlease/backend/internal/domain/shared"
)

// Event types emitted by the leasing domain
const (
	EventTypeContractCreated   = "leasing.contract.created"
	EventTypeContractActivated = "leasing.contract.activated"
	EventTypeContractCancelled = "leasing.contract.cancelled"
	EventTypeStockReserved     = "leasing.stock.reserved"
	EventTypeStockReleased     = "leasing.stock.released"
)

// ContractCreatedEvent is emitted when a new contract is created
type ContractCreatedEvent struct {
	shared.BaseDomainEvent
	ContractNumber string    `json:"contract_number"`
	CustomerID     uuid.UUID `json:"customer_id"`
	ItemCount      int       `json:"item_count"`
}

// NewContractCreatedEvent creates a new ContractCreatedEvent
func NewContractCreatedEvent(c *Contract) *ContractCreatedEvent {
	return &ContractCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeContractCreated, "Contract", c.ID),
		ContractNumber:  c.ContractNumber,
		CustomerID:      c.CustomerID,
		ItemCount:       len(c.Items),
	}
}

// ContractActivatedEvent is emitted when a contract becomes active
type ContractActivatedEvent struct {
	shared.BaseDomainEvent
	ContractNumber string        `json:"contract_number"`
	Items          ContractItems `json:"items"`
}

// NewContractActivatedEvent creates a new ContractActivatedEvent
func NewContractActivatedEvent(c *Contract) *ContractActivatedEvent {
	return &ContractActivatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeContractActivated, "Contract", c.ID),
		ContractNumber:  c.ContractNumber,
		Items:           c.Items,
	}
}

// ContractCancelledEvent is emitted when a contract is cancelled
type ContractCancelledEvent struct {
	shared.BaseDomainEvent
	ContractNumber string `json:"contract_number"`
	StockReleased  bool   `json:"stock_released"`
}

// NewContractCancelledEvent creates a new ContractCancelledEvent
func NewContractCancelledEvent(c *Contract, stockReleased bool) *ContractCancelledEvent {
	return &ContractCancelledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeContractCancelled, "Contract", c.ID),
		ContractNumber:  c.ContractNumber,
		StockReleased:   stockReleased,
	}
}

// StockReservedEvent is emitted when units are reserved from stock
type StockReservedEvent struct {
	shared.BaseDomainEvent
	PlantTypeID uuid.UUID `json:"plant_type_id"`
	Quantity    int       `json:"quantity"`
	Remaining   int       `json:"remaining"`
}

// NewStockReservedEvent creates a new StockReservedEvent
func NewStockReservedEvent(s *PlantStock, quantity int) *StockReservedEvent {
	return &StockReservedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStockReserved, "PlantStock", s.ID),
		PlantTypeID:     s.PlantTypeID,
		Quantity:        quantity,
		Remaining:       s.AvailableStock,
	}
}

// StockReleasedEvent is emitted when units are released back to stock
type StockReleasedEvent struct {
	shared.BaseDomainEvent
	PlantTypeID uuid.UUID `json:"plant_type_id"`
	Quantity    int       `json:"quantity"`
	Remaining   int       `json:"remaining"`
}

// NewStockReleasedEvent creates a new StockReleasedEvent
func NewStockReleasedEvent(s *PlantStock, quantity int) *StockReleasedEvent {
	return &StockReleasedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStockReleased, "PlantStock", s.ID),
		PlantTypeID:     s.PlantTypeID,
		Quantity:        quantity,
		Remaining:       s.AvailableStock,
	}
}
