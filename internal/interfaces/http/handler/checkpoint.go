package handler

import (
	appcheckpoint "github.com/orc/backend/internal/application/checkpoint"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CheckpointHandler serves the pre-payment view a controller sees when a
// truck or walk-in exporter arrives at their station.
type CheckpointHandler struct {
	BaseHandler
	stateService      *appcheckpoint.StateService
	plateImageService *appcheckpoint.PlateImageService
}

// NewCheckpointHandler creates a new checkpoint handler
func NewCheckpointHandler(
	stateService *appcheckpoint.StateService,
	plateImageService *appcheckpoint.PlateImageService,
) *CheckpointHandler {
	return &CheckpointHandler{
		stateService:      stateService,
		plateImageService: plateImageService,
	}
}

// stationID reads the controller's station from the station_id query
// parameter.
func (h *CheckpointHandler) stationID(c *gin.Context) (uuid.UUID, bool) {
	raw := c.Query("station_id")
	if raw == "" {
		h.BadRequest(c, "station_id query parameter is required")
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		h.BadRequest(c, "Invalid station_id")
		return uuid.Nil, false
	}
	return id, true
}

// GetTruckState godoc
// @ID           getTruckCheckpointState
// @Summary      Get a truck's checkpoint state
// @Description  Look up the open journey for a plate and return its previous checkins plus the current checkin at the controller's station, with rate and owed amount stamped. Sequencing declines come back as a verdict.
// @Tags         checkpoints
// @Produce      json
// @Param        plate path string true "Truck plate number"
// @Param        station_id query string true "Controller's station ID" format(uuid)
// @Success      200 {object} APIResponse[appcheckpoint.CheckpointState]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /checkpoints/trucks/{plate} [get]
func (h *CheckpointHandler) GetTruckState(c *gin.Context) {
	plate := c.Param("plate")
	if plate == "" {
		h.BadRequest(c, "Plate number is required")
		return
	}

	stationID, ok := h.stationID(c)
	if !ok {
		return
	}

	operatorID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	state, err := h.stateService.GetTruckState(c.Request.Context(), plate, stationID, operatorID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, state)
}

// GetWalkInState godoc
// @ID           getWalkInCheckpointState
// @Summary      Get a walk-in exporter's checkpoint state
// @Description  Walk-in variant of the checkpoint state lookup, keyed by exporter unique ID.
// @Tags         checkpoints
// @Produce      json
// @Param        uniqueId path string true "Exporter unique ID"
// @Param        station_id query string true "Controller's station ID" format(uuid)
// @Success      200 {object} APIResponse[appcheckpoint.CheckpointState]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /checkpoints/walk-ins/{uniqueId} [get]
func (h *CheckpointHandler) GetWalkInState(c *gin.Context) {
	uniqueID := c.Param("uniqueId")
	if uniqueID == "" {
		h.BadRequest(c, "Exporter unique ID is required")
		return
	}

	stationID, ok := h.stationID(c)
	if !ok {
		return
	}

	operatorID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	state, err := h.stateService.GetWalkInState(c.Request.Context(), uniqueID, stationID, operatorID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, state)
}

// GetPlateImage godoc
// @ID           getCheckinPlateImage
// @Summary      Get a checkin's plate snapshot URL
// @Description  Returns a presigned download URL for the plate snapshot attached to a checkin.
// @Tags         checkpoints
// @Produce      json
// @Param        id path string true "Checkin ID" format(uuid)
// @Success      200 {object} APIResponse[appcheckpoint.PlateImageURLResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /checkpoints/checkins/{id}/plate-image [get]
func (h *CheckpointHandler) GetPlateImage(c *gin.Context) {
	checkinID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid checkin ID")
		return
	}

	result, err := h.plateImageService.GetDownloadURL(c.Request.Context(), checkinID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}
