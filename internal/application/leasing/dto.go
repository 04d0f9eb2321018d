package leasing

import (
	"time"

	"github.com/google/uuid"
	"github.com/plantlease/backend/internal/domain/leasing"
)

// ContractItemRequest is one requested line of a new contract
type ContractItemRequest struct {
	PlantTypeID uuid.UUID `json:"plant_type_id"`
	Quantity    int       `json:"quantity"`
}

// CreateContractRequest is the request to create a contract
type CreateContractRequest struct {
	ContractNumber string                `json:"contract_number"`
	CustomerID     uuid.UUID             `json:"customer_id"`
	Items          []ContractItemRequest `json:"items"`
	StartDate      *time.Time            `json:"start_date,omitempty"`
	EndDate        *time.Time            `json:"end_date,omitempty"`
}

// ContractItemResponse is one line of a contract
type ContractItemResponse struct {
	PlantTypeID uuid.UUID `json:"plant_type_id"`
	Quantity    int       `json:"quantity"`
}

// ContractResponse is the contract representation returned to callers
type ContractResponse struct {
	ID             uuid.UUID              `json:"id"`
	ContractNumber string                 `json:"contract_number"`
	CustomerID     uuid.UUID              `json:"customer_id"`
	Status         string                 `json:"status"`
	Items          []ContractItemResponse `json:"items"`
	TotalUnits     int                    `json:"total_units"`
	StartDate      *time.Time             `json:"start_date,omitempty"`
	EndDate        *time.Time             `json:"end_date,omitempty"`
	ActivatedAt    *time.Time             `json:"activated_at,omitempty"`
	CancelledAt    *time.Time             `json:"cancelled_at,omitempty"`
	CreatedAt      time.Time              `json:"created_at"`
	UpdatedAt      time.Time              `json:"updated_at"`
	Version        int                    `json:"version"`
}

// PlantStockResponse is the stock representation returned to callers
type PlantStockResponse struct {
	ID             uuid.UUID `json:"id"`
	PlantTypeID    uuid.UUID `json:"plant_type_id"`
	PlantName      string    `json:"plant_name"`
	AvailableStock int       `json:"available_stock"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// CustomerPlantResponse is the leased-plant representation returned to callers
type CustomerPlantResponse struct {
	ID          uuid.UUID  `json:"id"`
	ContractID  uuid.UUID  `json:"contract_id"`
	PlantTypeID uuid.UUID  `json:"plant_type_id"`
	Quantity    int        `json:"quantity"`
	Status      string     `json:"status"`
	LeasedAt    time.Time  `json:"leased_at"`
	RemovedAt   *time.Time `json:"removed_at,omitempty"`
}

// ToContractResponse converts a contract to its response representation
func ToContractResponse(c *leasing.Contract) ContractResponse {
	items := make([]ContractItemResponse, 0, len(c.Items))
	for _, item := range c.Items {
		items = append(items, ContractItemResponse{
			PlantTypeID: item.PlantTypeID,
			Quantity:    item.Quantity,
		})
	}

	return ContractResponse{
		ID:             c.ID,
		ContractNumber: c.ContractNumber,
		CustomerID:     c.CustomerID,
		Status:         c.Status.String(),
		Items:          items,
		TotalUnits:     c.TotalUnits(),
		StartDate:      c.StartDate,
		EndDate:        c.EndDate,
		ActivatedAt:    c.ActivatedAt,
		CancelledAt:    c.CancelledAt,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
		Version:        c.Version,
	}
}

// ToPlantStockResponse converts a stock row to its response representation
func ToPlantStockResponse(s *leasing.PlantStock) PlantStockResponse {
	return PlantStockResponse{
		ID:             s.ID,
		PlantTypeID:    s.PlantTypeID,
		PlantName:      s.PlantName,
		AvailableStock: s.AvailableStock,
		UpdatedAt:      s.UpdatedAt,
	}
}

// ToCustomerPlantResponse converts a leased-plant record to its response representation
func ToCustomerPlantResponse(cp *leasing.CustomerPlant) CustomerPlantResponse {
	return CustomerPlantResponse{
		ID:          cp.ID,
		ContractID:  cp.ContractID,
		PlantTypeID: cp.PlantTypeID,
		Quantity:    cp.Quantity,
		Status:      cp.Status.String(),
		LeasedAt:    cp.LeasedAt,
		RemovedAt:   cp.RemovedAt,
	}
}
