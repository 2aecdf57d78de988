package handler

import (
	appregistry "github.com/orc/backend/internal/application/registry"
	"github.com/orc/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// TruckHandler manages the truck registry.
type TruckHandler struct {
	BaseHandler
	truckService *appregistry.TruckService
}

// NewTruckHandler creates a new truck handler
func NewTruckHandler(truckService *appregistry.TruckService) *TruckHandler {
	return &TruckHandler{truckService: truckService}
}

// ChangePlateRequest carries the replacement plate number for a truck
type ChangePlateRequest struct {
	PlateNumber string `json:"plate_number" binding:"required"`
}

// Register godoc
// @ID           registerTruck
// @Summary      Register a truck
// @Description  Registers a truck by plate and chassis number. Both must be unique across the registry.
// @Tags         trucks
// @Accept       json
// @Produce      json
// @Param        request body appregistry.CreateTruckRequest true "Truck details"
// @Success      200 {object} APIResponse[appregistry.TruckResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      409 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /trucks [post]
func (h *TruckHandler) Register(c *gin.Context) {
	var req appregistry.CreateTruckRequest
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

	truck, err := h.truckService.Register(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, truck)
}

// Update godoc
// @ID           updateTruck
// @Summary      Update a truck's details
// @Tags         trucks
// @Accept       json
// @Produce      json
// @Param        id path string true "Truck ID" format(uuid)
// @Param        request body appregistry.UpdateTruckRequest true "Truck details"
// @Success      200 {object} APIResponse[appregistry.TruckResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /trucks/{id} [put]
func (h *TruckHandler) Update(c *gin.Context) {
	truckID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid truck ID")
		return
	}

	var req appregistry.UpdateTruckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	truck, err := h.truckService.Update(c.Request.Context(), truckID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, truck)
}

// ChangePlate godoc
// @ID           changeTruckPlate
// @Summary      Change a truck's plate number
// @Description  Re-plates a registered truck. The new plate must not collide with another truck.
// @Tags         trucks
// @Accept       json
// @Produce      json
// @Param        id path string true "Truck ID" format(uuid)
// @Param        request body ChangePlateRequest true "New plate number"
// @Success      200 {object} APIResponse[appregistry.TruckResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      409 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /trucks/{id}/plate [put]
func (h *TruckHandler) ChangePlate(c *gin.Context) {
	truckID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid truck ID")
		return
	}

	var req ChangePlateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	truck, err := h.truckService.ChangePlate(c.Request.Context(), truckID, req.PlateNumber)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, truck)
}

// Get godoc
// @ID           getTruck
// @Summary      Get a truck
// @Tags         trucks
// @Produce      json
// @Param        id path string true "Truck ID" format(uuid)
// @Success      200 {object} APIResponse[appregistry.TruckResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /trucks/{id} [get]
func (h *TruckHandler) Get(c *gin.Context) {
	truckID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid truck ID")
		return
	}

	truck, err := h.truckService.Get(c.Request.Context(), truckID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, truck)
}

// GetByPlate godoc
// @ID           getTruckByPlate
// @Summary      Get a truck by plate number
// @Tags         trucks
// @Produce      json
// @Param        plate path string true "Plate number"
// @Success      200 {object} APIResponse[appregistry.TruckResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /trucks/plate/{plate} [get]
func (h *TruckHandler) GetByPlate(c *gin.Context) {
	plate := c.Param("plate")
	if plate == "" {
		h.BadRequest(c, "Plate number is required")
		return
	}

	truck, err := h.truckService.GetByPlate(c.Request.Context(), plate)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, truck)
}

// List godoc
// @ID           listTrucks
// @Summary      List registered trucks
// @Tags         trucks
// @Produce      json
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Items per page" default(20) maximum(100)
// @Param        search query string false "Search by plate, chassis or owner"
// @Success      200 {object} APIResponse[shared.Paginated[appregistry.TruckResponse]]
// @Failure      401 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /trucks [get]
func (h *TruckHandler) List(c *gin.Context) {
	filter := bindListFilter(c)

	trucks, err := h.truckService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, trucks)
}

// Deactivate godoc
// @ID           deactivateTruck
// @Summary      Take a truck out of service
// @Tags         trucks
// @Produce      json
// @Param        id path string true "Truck ID" format(uuid)
// @Success      200 {object} SuccessResponse
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /trucks/{id}/deactivate [post]
func (h *TruckHandler) Deactivate(c *gin.Context) {
	truckID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid truck ID")
		return
	}

	if err := h.truckService.Deactivate(c.Request.Context(), truckID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, dto.MessageResponse{Message: "Truck deactivated"})
}

// Activate godoc
// @ID           activateTruck
// @Summary      Return a truck to service
// @Tags         trucks
// @Produce      json
// @Param        id path string true "Truck ID" format(uuid)
// @Success      200 {object} SuccessResponse
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /trucks/{id}/activate [post]
func (h *TruckHandler) Activate(c *gin.Context) {
	truckID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid truck ID")
		return
	}

	if err := h.truckService.Activate(c.Request.Context(), truckID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, dto.MessageResponse{Message: "Truck activated"})
}
