package leasing

import (
	"fmt"

	"github.com/google/uuid"
)

// Error codes surfaced by the leasing domain
const (
	CodeInsufficientStock = "INSUFFICIENT_STOCK"
)

// InsufficientStockError is returned when a contract activation requests
// more units of a plant type than are available. It identifies the first
// failing item; the whole activation rolls back, so no stock is touched.
type InsufficientStockError struct {
	PlantTypeID uuid.UUID
	Requested   int
	Available   int
}

// Error implements the error interface
func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for plant type %s: requested %d, available %d",
		e.PlantTypeID, e.Requested, e.Available)
}

// Code returns the domain error code
func (e *InsufficientStockError) Code() string {
	return CodeInsufficientStock
}
