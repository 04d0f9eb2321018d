package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	appleasing "github.com/plantlease/backend/internal/application/leasing"
	"github.com/plantlease/backend/internal/interfaces/http/dto"
)

// ContractHandler exposes contracts, plant stock and leased-plant
// placements over HTTP
type ContractHandler struct {
	BaseHandler
	service *appleasing.ContractService
}

// NewContractHandler creates a new ContractHandler
func NewContractHandler(service *appleasing.ContractService) *ContractHandler {
	return &ContractHandler{service: service}
}

// CreateContract handles POST /api/v1/contracts
func (h *ContractHandler) CreateContract(c *gin.Context) {
	var req appleasing.CreateContractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	contract, err := h.service.CreateContract(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, contract)
}

// GetContract handles GET /api/v1/contracts/:id
func (h *ContractHandler) GetContract(c *gin.Context) {
	contractID, ok := h.bindID(c)
	if !ok {
		return
	}

	contract, err := h.service.GetContract(c.Request.Context(), contractID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, contract)
}

// ActivateContract handles POST /api/v1/contracts/:id/activate
func (h *ContractHandler) ActivateContract(c *gin.Context) {
	contractID, ok := h.bindID(c)
	if !ok {
		return
	}

	contract, err := h.service.ActivateContract(c.Request.Context(), contractID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, contract)
}

// CancelContract handles POST /api/v1/contracts/:id/cancel
func (h *ContractHandler) CancelContract(c *gin.Context) {
	contractID, ok := h.bindID(c)
	if !ok {
		return
	}

	contract, err := h.service.CancelContract(c.Request.Context(), contractID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, contract)
}

// ListContractPlants handles GET /api/v1/contracts/:id/plants
func (h *ContractHandler) ListContractPlants(c *gin.Context) {
	contractID, ok := h.bindID(c)
	if !ok {
		return
	}

	plants, err := h.service.ListContractPlants(c.Request.Context(), contractID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, plants)
}

// ReturnPlant handles POST /api/v1/plants/:id/return
func (h *ContractHandler) ReturnPlant(c *gin.Context) {
	plantID, ok := h.bindID(c)
	if !ok {
		return
	}

	plant, err := h.service.ReturnPlant(c.Request.Context(), plantID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, plant)
}

// ReplacePlant handles POST /api/v1/plants/:id/replace
func (h *ContractHandler) ReplacePlant(c *gin.Context) {
	plantID, ok := h.bindID(c)
	if !ok {
		return
	}

	plant, err := h.service.ReplacePlant(c.Request.Context(), plantID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, plant)
}

// GetStock handles GET /api/v1/stock/:id where :id is a plant type ID
func (h *ContractHandler) GetStock(c *gin.Context) {
	plantTypeID, ok := h.bindID(c)
	if !ok {
		return
	}

	stock, err := h.service.GetStock(c.Request.Context(), plantTypeID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, stock)
}

// bindID binds and parses the :id path parameter
func (h *ContractHandler) bindID(c *gin.Context) (uuid.UUID, bool) {
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "invalid id")
		return uuid.Nil, false
	}
	id, err := uuid.Parse(req.ID)
	if err != nil {
		h.BadRequest(c, "invalid id")
		return uuid.Nil, false
	}
	return id, true
}
