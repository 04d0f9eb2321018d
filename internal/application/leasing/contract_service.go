package leasing

import (
	"bytes"
	"context"
	"errors"
	"sort"

	"github.com/google/uuid"
	"github.com/plantlease/backend/internal/domain/leasing"
	"github.com/plantlease/backend/internal/domain/shared"
)

// ContractService handles the contract lifecycle and the inventory
// reservation engine behind it.
//
// Activation is an all-or-nothing reservation: every stock row the
// contract touches is locked inside one transaction, checked, and
// decremented; the first shortage aborts the whole activation and no
// stock moves. Cancellation releases units back to stock only when the
// contract was ACTIVE, so cancelled drafts never inflate the pool.
type ContractService struct {
	scope          TransactionScope
	eventPublisher shared.EventPublisher
}

// NewContractService creates a new ContractService
func NewContractService(scope TransactionScope) *ContractService {
	return &ContractService{scope: scope}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *ContractService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// publishDomainEvents publishes buffered events from the given aggregates
// after a successful commit
func (s *ContractService) publishDomainEvents(ctx context.Context, aggregates ...shared.AggregateRoot) {
	if s.eventPublisher == nil {
		return
	}
	for _, agg := range aggregates {
		events := agg.GetDomainEvents()
		if len(events) == 0 {
			continue
		}
		// Publish events (errors are logged by the event bus, not propagated)
		_ = s.eventPublisher.Publish(ctx, events...)
		agg.ClearDomainEvents()
	}
}

// CreateContract creates a new draft contract. No stock is reserved
// until activation.
func (s *ContractService) CreateContract(ctx context.Context, req CreateContractRequest) (*ContractResponse, error) {
	items := make([]leasing.ContractItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, leasing.ContractItem{
			PlantTypeID: item.PlantTypeID,
			Quantity:    item.Quantity,
		})
	}

	contract, err := leasing.NewContract(req.ContractNumber, req.CustomerID, items)
	if err != nil {
		return nil, err
	}
	contract.StartDate = req.StartDate
	contract.EndDate = req.EndDate

	err = s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		if existing, err := repos.ContractRepo().FindByNumber(ctx, req.ContractNumber); err == nil && existing != nil {
			return shared.ErrAlreadyExists
		}
		return repos.ContractRepo().Save(ctx, contract)
	})
	if err != nil {
		return nil, err
	}

	s.publishDomainEvents(ctx, contract)

	response := ToContractResponse(contract)
	return &response, nil
}

// ActivateContract activates a contract and reserves stock for every
// item in one transaction. Stock rows are locked in a deterministic
// order (plant type ID byte order) so two activations touching
// overlapping plant types cannot deadlock. A shortage on any item
// returns InsufficientStockError and rolls back all decrements; when
// several items are short, the reported item is the first one in lock
// order, not in the contract's item list order.
func (s *ContractService) ActivateContract(ctx context.Context, contractID uuid.UUID) (*ContractResponse, error) {
	var (
		contract *leasing.Contract
		stocks   []*leasing.PlantStock
	)

	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		contract, err = repos.ContractRepo().FindByIDForUpdate(ctx, contractID)
		if err != nil {
			return err
		}
		if !contract.Status.CanActivate() {
			return shared.ErrInvalidState
		}

		items := append(leasing.ContractItems{}, contract.Items...)
		sort.Slice(items, func(i, j int) bool {
			return bytes.Compare(items[i].PlantTypeID[:], items[j].PlantTypeID[:]) < 0
		})

		for _, item := range items {
			stock, err := repos.StockRepo().FindByPlantTypeForUpdate(ctx, item.PlantTypeID)
			if err != nil {
				if errors.Is(err, shared.ErrNotFound) {
					// no stock row means nothing is available for this type
					return &leasing.InsufficientStockError{
						PlantTypeID: item.PlantTypeID,
						Requested:   item.Quantity,
						Available:   0,
					}
				}
				return err
			}

			if err := stock.Reserve(item.Quantity); err != nil {
				return err
			}
			if err := repos.StockRepo().Save(ctx, stock); err != nil {
				return err
			}
			stocks = append(stocks, stock)

			plant, err := leasing.NewCustomerPlant(contract.ID, item.PlantTypeID, item.Quantity)
			if err != nil {
				return err
			}
			if err := repos.PlantRepo().Create(ctx, plant); err != nil {
				return err
			}
		}

		if err := contract.Activate(); err != nil {
			return err
		}
		return repos.ContractRepo().Save(ctx, contract)
	})
	if err != nil {
		return nil, err
	}

	aggregates := []shared.AggregateRoot{contract}
	for _, stock := range stocks {
		aggregates = append(aggregates, stock)
	}
	s.publishDomainEvents(ctx, aggregates...)

	response := ToContractResponse(contract)
	return &response, nil
}

// CancelContract cancels a contract. When the contract was ACTIVE its
// leased units are returned to stock and the placement records are
// marked removed, all in the same transaction; the pool ends up exactly
// where it was before activation. Cancelling a draft touches no stock.
func (s *ContractService) CancelContract(ctx context.Context, contractID uuid.UUID) (*ContractResponse, error) {
	var (
		contract *leasing.Contract
		stocks   []*leasing.PlantStock
	)

	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		contract, err = repos.ContractRepo().FindByIDForUpdate(ctx, contractID)
		if err != nil {
			return err
		}

		releaseStock, err := contract.Cancel()
		if err != nil {
			return err
		}

		if releaseStock {
			plants, err := repos.PlantRepo().FindActiveByContract(ctx, contract.ID)
			if err != nil {
				return err
			}
			for i := range plants {
				plant := &plants[i]
				if err := plant.Remove(); err != nil {
					return err
				}
				if err := repos.PlantRepo().Save(ctx, plant); err != nil {
					return err
				}

				stock, err := repos.StockRepo().FindByPlantTypeForUpdate(ctx, plant.PlantTypeID)
				if err != nil {
					return err
				}
				if err := stock.Release(plant.Quantity); err != nil {
					return err
				}
				if err := repos.StockRepo().Save(ctx, stock); err != nil {
					return err
				}
				stocks = append(stocks, stock)
			}
		}

		return repos.ContractRepo().Save(ctx, contract)
	})
	if err != nil {
		return nil, err
	}

	aggregates := []shared.AggregateRoot{contract}
	for _, stock := range stocks {
		aggregates = append(aggregates, stock)
	}
	s.publishDomainEvents(ctx, aggregates...)

	response := ToContractResponse(contract)
	return &response, nil
}

// ReturnPlant removes a single plant placement and returns its units to
// stock, without touching the contract status.
func (s *ContractService) ReturnPlant(ctx context.Context, customerPlantID uuid.UUID) (*CustomerPlantResponse, error) {
	var (
		plant *leasing.CustomerPlant
		stock *leasing.PlantStock
	)

	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		plant, err = repos.PlantRepo().FindByID(ctx, customerPlantID)
		if err != nil {
			return err
		}
		if err := plant.Remove(); err != nil {
			return err
		}
		if err := repos.PlantRepo().Save(ctx, plant); err != nil {
			return err
		}

		stock, err = repos.StockRepo().FindByPlantTypeForUpdate(ctx, plant.PlantTypeID)
		if err != nil {
			return err
		}
		if err := stock.Release(plant.Quantity); err != nil {
			return err
		}
		return repos.StockRepo().Save(ctx, stock)
	})
	if err != nil {
		return nil, err
	}

	s.publishDomainEvents(ctx, stock)

	response := ToCustomerPlantResponse(plant)
	return &response, nil
}

// ReplacePlant swaps a placement for a fresh one of the same plant type.
// The replacement consumes the slot of the old placement, so stock does
// not move.
func (s *ContractService) ReplacePlant(ctx context.Context, customerPlantID uuid.UUID) (*CustomerPlantResponse, error) {
	var replacement *leasing.CustomerPlant

	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		plant, err := repos.PlantRepo().FindByID(ctx, customerPlantID)
		if err != nil {
			return err
		}
		if err := plant.Replace(); err != nil {
			return err
		}
		if err := repos.PlantRepo().Save(ctx, plant); err != nil {
			return err
		}

		replacement, err = leasing.NewCustomerPlant(plant.ContractID, plant.PlantTypeID, plant.Quantity)
		if err != nil {
			return err
		}
		return repos.PlantRepo().Create(ctx, replacement)
	})
	if err != nil {
		return nil, err
	}

	response := ToCustomerPlantResponse(replacement)
	return &response, nil
}

// GetContract retrieves a contract by ID
func (s *ContractService) GetContract(ctx context.Context, contractID uuid.UUID) (*ContractResponse, error) {
	var contract *leasing.Contract

	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		contract, err = repos.ContractRepo().FindByID(ctx, contractID)
		return err
	})
	if err != nil {
		return nil, err
	}

	response := ToContractResponse(contract)
	return &response, nil
}

// GetStock retrieves the stock row for a plant type
func (s *ContractService) GetStock(ctx context.Context, plantTypeID uuid.UUID) (*PlantStockResponse, error) {
	var stock *leasing.PlantStock

	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		stock, err = repos.StockRepo().FindByPlantType(ctx, plantTypeID)
		return err
	})
	if err != nil {
		return nil, err
	}

	response := ToPlantStockResponse(stock)
	return &response, nil
}

// ListContractPlants returns the leased-plant records of a contract
func (s *ContractService) ListContractPlants(ctx context.Context, contractID uuid.UUID) ([]CustomerPlantResponse, error) {
	var plants []leasing.CustomerPlant

	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		plants, err = repos.PlantRepo().FindByContract(ctx, contractID)
		return err
	})
	if err != nil {
		return nil, err
	}

	responses := make([]CustomerPlantResponse, 0, len(plants))
	for i := range plants {
		responses = append(responses, ToCustomerPlantResponse(&plants[i]))
	}
	return responses, nil
}
