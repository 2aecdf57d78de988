package handler

import (
	apptariff "github.com/orc/backend/internal/application/tariff"
	"github.com/orc/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TariffHandler manages taxpayer types and the per-station tax rates.
type TariffHandler struct {
	BaseHandler
	taxService *apptariff.TaxService
}

// NewTariffHandler creates a new tariff handler
func NewTariffHandler(taxService *apptariff.TaxService) *TariffHandler {
	return &TariffHandler{taxService: taxService}
}

// UpdateTaxRateRequest carries a replacement percentage for a tax
type UpdateTaxRateRequest struct {
	Percentage decimal.Decimal `json:"percentage" binding:"required"`
}

// CreateTaxPayerType godoc
// @ID           createTaxPayerType
// @Summary      Create a taxpayer classification
// @Tags         tariffs
// @Accept       json
// @Produce      json
// @Param        request body apptariff.CreateTaxPayerTypeRequest true "Taxpayer type details"
// @Success      200 {object} APIResponse[apptariff.TaxPayerTypeResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      409 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /tax-payer-types [post]
func (h *TariffHandler) CreateTaxPayerType(c *gin.Context) {
	var req apptariff.CreateTaxPayerTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	taxPayerType, err := h.taxService.CreateTaxPayerType(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, taxPayerType)
}

// ListTaxPayerTypes godoc
// @ID           listTaxPayerTypes
// @Summary      List taxpayer classifications
// @Tags         tariffs
// @Produce      json
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Items per page" default(20) maximum(100)
// @Success      200 {object} APIResponse[[]apptariff.TaxPayerTypeResponse]
// @Failure      401 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /tax-payer-types [get]
func (h *TariffHandler) ListTaxPayerTypes(c *gin.Context) {
	filter := bindListFilter(c)

	types, err := h.taxService.ListTaxPayerTypes(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, types)
}

// CreateTax godoc
// @ID           createTax
// @Summary      Configure a tax rate
// @Description  Configures the percentage charged at a station for one taxpayer type and commodity pair. One rate per triple; a duplicate is rejected.
// @Tags         tariffs
// @Accept       json
// @Produce      json
// @Param        request body apptariff.CreateTaxRequest true "Tax rate details"
// @Success      200 {object} APIResponse[apptariff.TaxResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      409 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /taxes [post]
func (h *TariffHandler) CreateTax(c *gin.Context) {
	var req apptariff.CreateTaxRequest
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

	tax, err := h.taxService.CreateTax(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, tax)
}

// UpdateTaxRate godoc
// @ID           updateTaxRate
// @Summary      Change the percentage of a configured tax
// @Tags         tariffs
// @Accept       json
// @Produce      json
// @Param        id path string true "Tax ID" format(uuid)
// @Param        request body UpdateTaxRateRequest true "New percentage"
// @Success      200 {object} APIResponse[apptariff.TaxResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /taxes/{id}/rate [put]
func (h *TariffHandler) UpdateTaxRate(c *gin.Context) {
	taxID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid tax ID")
		return
	}

	var req UpdateTaxRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	tax, err := h.taxService.UpdateRate(c.Request.Context(), taxID, req.Percentage)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, tax)
}

// GetApplicableTax godoc
// @ID           getApplicableTax
// @Summary      Look up the rate for a station, taxpayer type and commodity
// @Tags         tariffs
// @Produce      json
// @Param        station_id query string true "Station ID" format(uuid)
// @Param        tax_payer_type_id query string true "Taxpayer type ID" format(uuid)
// @Param        commodity_id query string true "Commodity ID" format(uuid)
// @Success      200 {object} APIResponse[apptariff.TaxResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /taxes/applicable [get]
func (h *TariffHandler) GetApplicableTax(c *gin.Context) {
	stationID, err := uuid.Parse(c.Query("station_id"))
	if err != nil {
		h.BadRequest(c, "Invalid station ID")
		return
	}

	taxPayerTypeID, err := uuid.Parse(c.Query("tax_payer_type_id"))
	if err != nil {
		h.BadRequest(c, "Invalid taxpayer type ID")
		return
	}

	commodityID, err := uuid.Parse(c.Query("commodity_id"))
	if err != nil {
		h.BadRequest(c, "Invalid commodity ID")
		return
	}

	tax, err := h.taxService.GetApplicable(c.Request.Context(), stationID, taxPayerTypeID, commodityID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, tax)
}

// ListTaxesByStation godoc
// @ID           listTaxesByStation
// @Summary      List the taxes configured at a station
// @Tags         tariffs
// @Produce      json
// @Param        stationId path string true "Station ID" format(uuid)
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Items per page" default(20) maximum(100)
// @Success      200 {object} APIResponse[[]apptariff.TaxResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /stations/{stationId}/taxes [get]
func (h *TariffHandler) ListTaxesByStation(c *gin.Context) {
	stationID, err := uuid.Parse(c.Param("stationId"))
	if err != nil {
		h.BadRequest(c, "Invalid station ID")
		return
	}

	filter := bindListFilter(c)

	taxes, err := h.taxService.ListByStation(c.Request.Context(), stationID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, taxes)
}

// DeleteTax godoc
// @ID           deleteTax
// @Summary      Delete a configured tax
// @Tags         tariffs
// @Produce      json
// @Param        id path string true "Tax ID" format(uuid)
// @Success      200 {object} SuccessResponse
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /taxes/{id} [delete]
func (h *TariffHandler) DeleteTax(c *gin.Context) {
	taxID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid tax ID")
		return
	}

	if err := h.taxService.DeleteTax(c.Request.Context(), taxID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, dto.MessageResponse{Message: "Tax deleted"})
}
