package persistence

import (
	"context"

	appleasing "github.com/plantlease/backend/internal/application/leasing"
	"github.com/plantlease/backend/internal/domain/leasing"
	"gorm.io/gorm"
)

// GormLeasingTransactionScope implements the leasing TransactionScope
// using GORM transactions.
type GormLeasingTransactionScope struct {
	db *gorm.DB
}

// NewGormLeasingTransactionScope creates a new GormLeasingTransactionScope.
func NewGormLeasingTransactionScope(db *gorm.DB) *GormLeasingTransactionScope {
	return &GormLeasingTransactionScope{db: db}
}

// Execute runs the given function within a database transaction.
// If the function returns an error, the transaction is rolled back.
// If the function succeeds, the transaction is committed.
func (s *GormLeasingTransactionScope) Execute(ctx context.Context, fn func(repos appleasing.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormLeasingRepositories{tx: tx})
	})
}

// gormLeasingRepositories provides repositories bound to one transaction.
type gormLeasingRepositories struct {
	tx *gorm.DB
}

// ContractRepo returns the contract repository scoped to the current transaction.
func (r *gormLeasingRepositories) ContractRepo() leasing.ContractRepository {
	return NewGormContractRepository(r.tx)
}

// StockRepo returns the plant stock repository scoped to the current transaction.
func (r *gormLeasingRepositories) StockRepo() leasing.PlantStockRepository {
	return NewGormPlantStockRepository(r.tx)
}

// PlantRepo returns the customer plant repository scoped to the current transaction.
func (r *gormLeasingRepositories) PlantRepo() leasing.CustomerPlantRepository {
	return NewGormCustomerPlantRepository(r.tx)
}

// Ensure the implementations satisfy the application interfaces
var _ appleasing.TransactionScope = (*GormLeasingTransactionScope)(nil)
var _ appleasing.TransactionalRepositories = (*gormLeasingRepositories)(nil)
