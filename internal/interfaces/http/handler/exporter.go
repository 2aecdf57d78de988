package handler

import (
	appregistry "github.com/orc/backend/internal/application/registry"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ExporterHandler manages the exporter registry.
type ExporterHandler struct {
	BaseHandler
	exporterService *appregistry.ExporterService
}

// NewExporterHandler creates a new exporter handler
func NewExporterHandler(exporterService *appregistry.ExporterService) *ExporterHandler {
	return &ExporterHandler{exporterService: exporterService}
}

// ClassifyExporterRequest assigns a taxpayer type to an exporter
type ClassifyExporterRequest struct {
	TaxPayerTypeID uuid.UUID `json:"tax_payer_type_id" binding:"required"`
}

// Register godoc
// @ID           registerExporter
// @Summary      Register an exporter
// @Description  Registers an exporter and assigns a unique ID used at walk-in checkpoints.
// @Tags         exporters
// @Accept       json
// @Produce      json
// @Param        request body appregistry.CreateExporterRequest true "Exporter details"
// @Success      200 {object} APIResponse[appregistry.ExporterResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      409 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /exporters [post]
func (h *ExporterHandler) Register(c *gin.Context) {
	var req appregistry.CreateExporterRequest
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

	exporter, err := h.exporterService.Register(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, exporter)
}

// Classify godoc
// @ID           classifyExporter
// @Summary      Assign a taxpayer type to an exporter
// @Description  Classifies the exporter so the rate lookup knows which tariff row applies.
// @Tags         exporters
// @Accept       json
// @Produce      json
// @Param        id path string true "Exporter ID" format(uuid)
// @Param        request body ClassifyExporterRequest true "Taxpayer type"
// @Success      200 {object} APIResponse[appregistry.ExporterResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /exporters/{id}/classification [put]
func (h *ExporterHandler) Classify(c *gin.Context) {
	exporterID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid exporter ID")
		return
	}

	var req ClassifyExporterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	exporter, err := h.exporterService.Classify(c.Request.Context(), exporterID, req.TaxPayerTypeID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, exporter)
}

// Get godoc
// @ID           getExporter
// @Summary      Get an exporter
// @Tags         exporters
// @Produce      json
// @Param        id path string true "Exporter ID" format(uuid)
// @Success      200 {object} APIResponse[appregistry.ExporterResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /exporters/{id} [get]
func (h *ExporterHandler) Get(c *gin.Context) {
	exporterID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid exporter ID")
		return
	}

	exporter, err := h.exporterService.Get(c.Request.Context(), exporterID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, exporter)
}

// GetByUniqueID godoc
// @ID           getExporterByUniqueID
// @Summary      Get an exporter by unique ID
// @Tags         exporters
// @Produce      json
// @Param        uniqueId path string true "Exporter unique ID"
// @Success      200 {object} APIResponse[appregistry.ExporterResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /exporters/unique/{uniqueId} [get]
func (h *ExporterHandler) GetByUniqueID(c *gin.Context) {
	uniqueID := c.Param("uniqueId")
	if uniqueID == "" {
		h.BadRequest(c, "Unique ID is required")
		return
	}

	exporter, err := h.exporterService.GetByUniqueID(c.Request.Context(), uniqueID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, exporter)
}

// List godoc
// @ID           listExporters
// @Summary      List registered exporters
// @Tags         exporters
// @Produce      json
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Items per page" default(20) maximum(100)
// @Param        search query string false "Search by name, TIN or unique ID"
// @Success      200 {object} APIResponse[shared.Paginated[appregistry.ExporterResponse]]
// @Failure      401 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /exporters [get]
func (h *ExporterHandler) List(c *gin.Context) {
	filter := bindListFilter(c)

	exporters, err := h.exporterService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, exporters)
}
