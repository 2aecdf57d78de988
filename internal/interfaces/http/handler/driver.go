package handler

import (
	appregistry "github.com/orc/backend/internal/application/registry"
	"github.com/orc/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// DriverHandler manages the driver registry.
type DriverHandler struct {
	BaseHandler
	driverService *appregistry.DriverService
}

// NewDriverHandler creates a new driver handler
func NewDriverHandler(driverService *appregistry.DriverService) *DriverHandler {
	return &DriverHandler{driverService: driverService}
}

// Register godoc
// @ID           registerDriver
// @Summary      Register a driver
// @Description  Registers a driver by licence number, which must be unique.
// @Tags         drivers
// @Accept       json
// @Produce      json
// @Param        request body appregistry.CreateDriverRequest true "Driver details"
// @Success      200 {object} APIResponse[appregistry.DriverResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      409 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /drivers [post]
func (h *DriverHandler) Register(c *gin.Context) {
	var req appregistry.CreateDriverRequest
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

	driver, err := h.driverService.Register(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, driver)
}

// Get godoc
// @ID           getDriver
// @Summary      Get a driver
// @Tags         drivers
// @Produce      json
// @Param        id path string true "Driver ID" format(uuid)
// @Success      200 {object} APIResponse[appregistry.DriverResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /drivers/{id} [get]
func (h *DriverHandler) Get(c *gin.Context) {
	driverID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid driver ID")
		return
	}

	driver, err := h.driverService.Get(c.Request.Context(), driverID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, driver)
}

// List godoc
// @ID           listDrivers
// @Summary      List registered drivers
// @Tags         drivers
// @Produce      json
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Items per page" default(20) maximum(100)
// @Param        search query string false "Search by name or licence number"
// @Success      200 {object} APIResponse[shared.Paginated[appregistry.DriverResponse]]
// @Failure      401 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /drivers [get]
func (h *DriverHandler) List(c *gin.Context) {
	filter := bindListFilter(c)

	drivers, err := h.driverService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, drivers)
}

// Delete godoc
// @ID           deleteDriver
// @Summary      Delete a driver
// @Tags         drivers
// @Produce      json
// @Param        id path string true "Driver ID" format(uuid)
// @Success      200 {object} SuccessResponse
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /drivers/{id} [delete]
func (h *DriverHandler) Delete(c *gin.Context) {
	driverID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid driver ID")
		return
	}

	if err := h.driverService.Delete(c.Request.Context(), driverID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, dto.MessageResponse{Message: "Driver deleted"})
}
