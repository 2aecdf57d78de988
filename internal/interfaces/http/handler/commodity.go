package handler

import (
	appregistry "github.com/orc/backend/internal/application/registry"
	"github.com/orc/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CommodityHandler manages the commodity registry.
type CommodityHandler struct {
	BaseHandler
	commodityService *appregistry.CommodityService
}

// NewCommodityHandler creates a new commodity handler
func NewCommodityHandler(commodityService *appregistry.CommodityService) *CommodityHandler {
	return &CommodityHandler{commodityService: commodityService}
}

// UpdateCommodityPriceRequest carries the replacement unit price in
// birr cents per kilogram
type UpdateCommodityPriceRequest struct {
	UnitPrice int64 `json:"unit_price" binding:"required,min=1"`
}

// Create godoc
// @ID           createCommodity
// @Summary      Register a commodity
// @Description  Registers a commodity and its unit price. The name must be unique.
// @Tags         commodities
// @Accept       json
// @Produce      json
// @Param        request body appregistry.CreateCommodityRequest true "Commodity details"
// @Success      200 {object} APIResponse[appregistry.CommodityResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      409 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /commodities [post]
func (h *CommodityHandler) Create(c *gin.Context) {
	var req appregistry.CreateCommodityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	operatorID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	req.CreatedBy = &operatorID

	commodity, err := h.commodityService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, commodity)
}

// UpdatePrice godoc
// @ID           updateCommodityPrice
// @Summary      Change a commodity's unit price
// @Description  Updates the unit price used to value loads. Existing check-ins keep the price they were assessed at.
// @Tags         commodities
// @Accept       json
// @Produce      json
// @Param        id path string true "Commodity ID" format(uuid)
// @Param        request body UpdateCommodityPriceRequest true "New unit price"
// @Success      200 {object} APIResponse[appregistry.CommodityResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /commodities/{id}/price [put]
func (h *CommodityHandler) UpdatePrice(c *gin.Context) {
	commodityID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid commodity ID")
		return
	}

	var req UpdateCommodityPriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	commodity, err := h.commodityService.UpdatePrice(c.Request.Context(), commodityID, req.UnitPrice)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, commodity)
}

// Get godoc
// @ID           getCommodity
// @Summary      Get a commodity
// @Tags         commodities
// @Produce      json
// @Param        id path string true "Commodity ID" format(uuid)
// @Success      200 {object} APIResponse[appregistry.CommodityResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /commodities/{id} [get]
func (h *CommodityHandler) Get(c *gin.Context) {
	commodityID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid commodity ID")
		return
	}

	commodity, err := h.commodityService.Get(c.Request.Context(), commodityID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, commodity)
}

// List godoc
// @ID           listCommodities
// @Summary      List commodities
// @Tags         commodities
// @Produce      json
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Items per page" default(20) maximum(100)
// @Param        search query string false "Search by name"
// @Success      200 {object} APIResponse[shared.Paginated[appregistry.CommodityResponse]]
// @Failure      401 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /commodities [get]
func (h *CommodityHandler) List(c *gin.Context) {
	filter := bindListFilter(c)

	commodities, err := h.commodityService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, commodities)
}

// Delete godoc
// @ID           deleteCommodity
// @Summary      Delete a commodity
// @Tags         commodities
// @Produce      json
// @Param        id path string true "Commodity ID" format(uuid)
// @Success      200 {object} SuccessResponse
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /commodities/{id} [delete]
func (h *CommodityHandler) Delete(c *gin.Context) {
	commodityID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid commodity ID")
		return
	}

	if err := h.commodityService.Delete(c.Request.Context(), commodityID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, dto.MessageResponse{Message: "Commodity deleted"})
}
