package leasing

import (
	"context"

	"github.com/plantlease/backend/internal/domain/leasing"
)

// TransactionScope provides transactional access to leasing repositories.
// When a function is executed within a transaction scope, all repository
// operations are part of the same database transaction and commit or roll
// back atomically.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	// If the function succeeds, the transaction is committed.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to the leasing repositories
// within a transaction. All repositories returned share the same
// underlying database transaction.
//
// Contract activation is an all-or-nothing reservation across every
// stock row the contract touches: rows are locked one by one inside the
// transaction, and the first shortage rolls back all decrements already
// applied.
type TransactionalRepositories interface {
	// ContractRepo returns the contract repository scoped to the current transaction
	ContractRepo() leasing.ContractRepository
	// StockRepo returns the plant stock repository scoped to the current transaction
	StockRepo() leasing.PlantStockRepository
	// PlantRepo returns the customer plant repository scoped to the current transaction
	PlantRepo() leasing.CustomerPlantRepository
}

// NoOpTransactionScope is a transaction scope that doesn't actually use
// transactions. This is useful for testing or when transaction support
// is not required.
type NoOpTransactionScope struct {
	contractRepo leasing.ContractRepository
	stockRepo    leasing.PlantStockRepository
	plantRepo    leasing.CustomerPlantRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories.
func NewNoOpTransactionScope(
	contractRepo leasing.ContractRepository,
	stockRepo leasing.PlantStockRepository,
	plantRepo leasing.CustomerPlantRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		contractRepo: contractRepo,
		stockRepo:    stockRepo,
		plantRepo:    plantRepo,
	}
}

// Execute runs the function without a real transaction (for testing/compatibility).
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// ContractRepo returns the contract repository.
func (s *NoOpTransactionScope) ContractRepo() leasing.ContractRepository {
	return s.contractRepo
}

// StockRepo returns the plant stock repository.
func (s *NoOpTransactionScope) StockRepo() leasing.PlantStockRepository {
	return s.stockRepo
}

// PlantRepo returns the customer plant repository.
func (s *NoOpTransactionScope) PlantRepo() leasing.CustomerPlantRepository {
	return s.plantRepo
}

// Ensure NoOpTransactionScope implements both interfaces
var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
