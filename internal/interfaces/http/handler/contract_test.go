package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	appleasing "github.com/plantlease/backend/internal/application/leasing"
	"github.com/plantlease/backend/internal/domain/leasing"
	"github.com/plantlease/backend/internal/domain/shared"
)

type mockContractRepo struct {
	contracts map[uuid.UUID]leasing.Contract
}

func newMockContractRepo() *mockContractRepo {
	return &mockContractRepo{contracts: make(map[uuid.UUID]leasing.Contract)}
}

func (m *mockContractRepo) FindByID(_ context.Context, id uuid.UUID) (*leasing.Contract, error) {
	if c, ok := m.contracts[id]; ok {
		clone := c
		return &clone, nil
	}
	return nil, shared.ErrNotFound
}

func (m *mockContractRepo) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*leasing.Contract, error) {
	return m.FindByID(ctx, id)
}

func (m *mockContractRepo) FindByNumber(_ context.Context, contractNumber string) (*leasing.Contract, error) {
	for _, c := range m.contracts {
		if c.ContractNumber == contractNumber {
			clone := c
			return &clone, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (m *mockContractRepo) FindByCustomer(_ context.Context, customerID uuid.UUID, _ shared.Filter) ([]leasing.Contract, error) {
	var result []leasing.Contract
	for _, c := range m.contracts {
		if c.CustomerID == customerID {
			result = append(result, c)
		}
	}
	return result, nil
}

func (m *mockContractRepo) Save(_ context.Context, c *leasing.Contract) error {
	m.contracts[c.ID] = *c
	return nil
}

type mockStockRepo struct {
	stocks map[uuid.UUID]leasing.PlantStock
}

func newMockStockRepo() *mockStockRepo {
	return &mockStockRepo{stocks: make(map[uuid.UUID]leasing.PlantStock)}
}

func (m *mockStockRepo) FindByPlantType(_ context.Context, plantTypeID uuid.UUID) (*leasing.PlantStock, error) {
	for _, s := range m.stocks {
		if s.PlantTypeID == plantTypeID {
			clone := s
			return &clone, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (m *mockStockRepo) FindByPlantTypeForUpdate(ctx context.Context, plantTypeID uuid.UUID) (*leasing.PlantStock, error) {
	return m.FindByPlantType(ctx, plantTypeID)
}

func (m *mockStockRepo) FindAll(_ context.Context, _ shared.Filter) ([]leasing.PlantStock, error) {
	var result []leasing.PlantStock
	for _, s := range m.stocks {
		result = append(result, s)
	}
	return result, nil
}

func (m *mockStockRepo) Save(_ context.Context, s *leasing.PlantStock) error {
	m.stocks[s.ID] = *s
	return nil
}

type mockPlantRepo struct {
	plants map[uuid.UUID]leasing.CustomerPlant
}

func newMockPlantRepo() *mockPlantRepo {
	return &mockPlantRepo{plants: make(map[uuid.UUID]leasing.CustomerPlant)}
}

func (m *mockPlantRepo) FindByID(_ context.Context, id uuid.UUID) (*leasing.CustomerPlant, error) {
	if p, ok := m.plants[id]; ok {
		clone := p
		return &clone, nil
	}
	return nil, shared.ErrNotFound
}

func (m *mockPlantRepo) FindByContract(_ context.Context, contractID uuid.UUID) ([]leasing.CustomerPlant, error) {
	var result []leasing.CustomerPlant
	for _, p := range m.plants {
		if p.ContractID == contractID {
			result = append(result, p)
		}
	}
	return result, nil
}

func (m *mockPlantRepo) FindActiveByContract(_ context.Context, contractID uuid.UUID) ([]leasing.CustomerPlant, error) {
	var result []leasing.CustomerPlant
	for _, p := range m.plants {
		if p.ContractID == contractID && p.Status == leasing.CustomerPlantStatusActive {
			result = append(result, p)
		}
	}
	return result, nil
}

func (m *mockPlantRepo) Create(_ context.Context, cp *leasing.CustomerPlant) error {
	m.plants[cp.ID] = *cp
	return nil
}

func (m *mockPlantRepo) Save(_ context.Context, cp *leasing.CustomerPlant) error {
	m.plants[cp.ID] = *cp
	return nil
}

type contractHandlerFixture struct {
	engine       *gin.Engine
	contractRepo *mockContractRepo
	stockRepo    *mockStockRepo
	plantRepo    *mockPlantRepo
}

func newContractHandlerFixture() *contractHandlerFixture {
	contractRepo := newMockContractRepo()
	stockRepo := newMockStockRepo()
	plantRepo := newMockPlantRepo()
	service := appleasing.NewContractService(appleasing.NewNoOpTransactionScope(contractRepo, stockRepo, plantRepo))
	h := NewContractHandler(service)

	engine := gin.New()
	api := engine.Group("/api/v1")
	contracts := api.Group("/contracts")
	contracts.POST("", h.CreateContract)
	contracts.GET("/:id", h.GetContract)
	contracts.POST("/:id/activate", h.ActivateContract)
	contracts.POST("/:id/cancel", h.CancelContract)
	api.GET("/stock/:id", h.GetStock)

	return &contractHandlerFixture{
		engine:       engine,
		contractRepo: contractRepo,
		stockRepo:    stockRepo,
		plantRepo:    plantRepo,
	}
}

func (f *contractHandlerFixture) seedStock(t *testing.T, plantTypeID uuid.UUID, available int) {
	t.Helper()
	stock, err := leasing.NewPlantStock(plantTypeID, "Ficus benjamina", available)
	require.NoError(t, err)
	stock.ClearDomainEvents()
	f.stockRepo.stocks[stock.ID] = *stock
}

func (f *contractHandlerFixture) seedContract(t *testing.T, items []leasing.ContractItem) *leasing.Contract {
	t.Helper()
	contract, err := leasing.NewContract("CTR-1001", uuid.New(), items)
	require.NoError(t, err)
	contract.ClearDomainEvents()
	f.contractRepo.contracts[contract.ID] = *contract
	return contract
}

func (f *contractHandlerFixture) do(method, path string, body interface{}) *httptest.ResponseRecorder {
	fx := &paymentHandlerFixture{engine: f.engine}
	return fx.do(method, path, body)
}

func TestContractHandler_ActivateContract(t *testing.T) {
	t.Run("activates and reserves stock", func(t *testing.T) {
		f := newContractHandlerFixture()
		plantType := uuid.New()
		f.seedStock(t, plantType, 100)
		contract := f.seedContract(t, []leasing.ContractItem{{PlantTypeID: plantType, Quantity: 10}})

		w := f.do(http.MethodPost, "/api/v1/contracts/"+contract.ID.String()+"/activate", nil)

		require.Equal(t, http.StatusOK, w.Code)
		resp := decodeResponse(t, w)
		require.True(t, resp.Success)

		raw, err := json.Marshal(resp.Data)
		require.NoError(t, err)
		var body appleasing.ContractResponse
		require.NoError(t, json.Unmarshal(raw, &body))
		assert.Equal(t, "ACTIVE", body.Status)

		stock, err := f.stockRepo.FindByPlantType(context.Background(), plantType)
		require.NoError(t, err)
		assert.Equal(t, 90, stock.AvailableStock)
	})

	t.Run("shortage returns 409 with figures", func(t *testing.T) {
		f := newContractHandlerFixture()
		plantType := uuid.New()
		f.seedStock(t, plantType, 5)
		contract := f.seedContract(t, []leasing.ContractItem{{PlantTypeID: plantType, Quantity: 10}})

		w := f.do(http.MethodPost, "/api/v1/contracts/"+contract.ID.String()+"/activate", nil)

		require.Equal(t, http.StatusConflict, w.Code)
		resp := decodeResponse(t, w)
		require.NotNil(t, resp.Error)
		assert.Equal(t, "INSUFFICIENT_STOCK", resp.Error.Code)
		assert.NotNil(t, resp.Error.Details)

		stock, err := f.stockRepo.FindByPlantType(context.Background(), plantType)
		require.NoError(t, err)
		assert.Equal(t, 5, stock.AvailableStock)
	})

	t.Run("double activation returns 409", func(t *testing.T) {
		f := newContractHandlerFixture()
		plantType := uuid.New()
		f.seedStock(t, plantType, 100)
		contract := f.seedContract(t, []leasing.ContractItem{{PlantTypeID: plantType, Quantity: 10}})

		w := f.do(http.MethodPost, "/api/v1/contracts/"+contract.ID.String()+"/activate", nil)
		require.Equal(t, http.StatusOK, w.Code)

		w = f.do(http.MethodPost, "/api/v1/contracts/"+contract.ID.String()+"/activate", nil)
		require.Equal(t, http.StatusConflict, w.Code)
		resp := decodeResponse(t, w)
		require.NotNil(t, resp.Error)
		assert.Equal(t, "INVALID_STATE", resp.Error.Code)
	})
}

func TestContractHandler_CancelContract(t *testing.T) {
	f := newContractHandlerFixture()
	plantType := uuid.New()
	f.seedStock(t, plantType, 50)
	contract := f.seedContract(t, []leasing.ContractItem{{PlantTypeID: plantType, Quantity: 10}})

	w := f.do(http.MethodPost, "/api/v1/contracts/"+contract.ID.String()+"/activate", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = f.do(http.MethodPost, "/api/v1/contracts/"+contract.ID.String()+"/cancel", nil)
	require.Equal(t, http.StatusOK, w.Code)

	stock, err := f.stockRepo.FindByPlantType(context.Background(), plantType)
	require.NoError(t, err)
	assert.Equal(t, 50, stock.AvailableStock)
}

func TestContractHandler_GetStock(t *testing.T) {
	f := newContractHandlerFixture()
	plantType := uuid.New()
	f.seedStock(t, plantType, 25)

	w := f.do(http.MethodGet, "/api/v1/stock/"+plantType.String(), nil)

	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	require.True(t, resp.Success)

	raw, err := json.Marshal(resp.Data)
	require.NoError(t, err)
	var body appleasing.PlantStockResponse
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.Equal(t, 25, body.AvailableStock)
}
