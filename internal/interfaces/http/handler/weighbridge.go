package handler

import (
	appcheckpoint "github.com/orc/backend/internal/application/checkpoint"
	"github.com/gin-gonic/gin"
)

// IdempotencyKeyHeader carries the device-chosen replay key. Weighbridge
// firmware retries aggressively on flaky links, so replays must be absorbed.
const IdempotencyKeyHeader = "X-Idempotency-Key"

// WeighbridgeHandler handles net-weight pushes from weighbridge devices.
// These routes are authenticated by device API key, not JWT.
type WeighbridgeHandler struct {
	BaseHandler
	weighbridgeService *appcheckpoint.WeighbridgeService
	plateImageService  *appcheckpoint.PlateImageService
}

// NewWeighbridgeHandler creates a new weighbridge handler
func NewWeighbridgeHandler(
	weighbridgeService *appcheckpoint.WeighbridgeService,
	plateImageService *appcheckpoint.PlateImageService,
) *WeighbridgeHandler {
	return &WeighbridgeHandler{
		weighbridgeService: weighbridgeService,
		plateImageService:  plateImageService,
	}
}

// IngestTruck godoc
// @ID           ingestTruckReading
// @Summary      Ingest a truck weighbridge reading
// @Description  Accept a net-weight push for a registered truck. Opens a new journey or appends the next checkin; sequencing declines come back as a verdict, not an error.
// @Tags         weighbridge
// @Accept       json
// @Produce      json
// @Param        X-Idempotency-Key header string false "Device replay key"
// @Param        request body appcheckpoint.WeighbridgeTruckRequest true "Weighbridge reading"
// @Success      200 {object} APIResponse[appcheckpoint.WeighbridgeResult]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Security     ApiKeyAuth
// @Router       /weighbridge/trucks [post]
func (h *WeighbridgeHandler) IngestTruck(c *gin.Context) {
	var req appcheckpoint.WeighbridgeTruckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}
	req.IdempotencyKey = c.GetHeader(IdempotencyKeyHeader)

	result, err := h.weighbridgeService.IngestTruckReading(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// IngestWalkIn godoc
// @ID           ingestWalkInReading
// @Summary      Ingest a walk-in weighbridge reading
// @Description  Accept a net-weight push for a registered walk-in exporter, keyed by their unique ID.
// @Tags         weighbridge
// @Accept       json
// @Produce      json
// @Param        X-Idempotency-Key header string false "Device replay key"
// @Param        request body appcheckpoint.WeighbridgeWalkInRequest true "Weighbridge reading"
// @Success      200 {object} APIResponse[appcheckpoint.WeighbridgeResult]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Security     ApiKeyAuth
// @Router       /weighbridge/walk-ins [post]
func (h *WeighbridgeHandler) IngestWalkIn(c *gin.Context) {
	var req appcheckpoint.WeighbridgeWalkInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}
	req.IdempotencyKey = c.GetHeader(IdempotencyKeyHeader)

	result, err := h.weighbridgeService.IngestWalkInReading(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// InitiatePlateUpload godoc
// @ID           initiatePlateUpload
// @Summary      Request a plate snapshot upload URL
// @Description  Returns a presigned upload URL and the storage key the device must echo back in its reading.
// @Tags         weighbridge
// @Accept       json
// @Produce      json
// @Param        request body appcheckpoint.PlateImageUploadRequest true "Upload request"
// @Success      200 {object} APIResponse[appcheckpoint.PlateImageUploadResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Security     ApiKeyAuth
// @Router       /weighbridge/plate-images [post]
func (h *WeighbridgeHandler) InitiatePlateUpload(c *gin.Context) {
	var req appcheckpoint.PlateImageUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	result, err := h.plateImageService.InitiateUpload(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}
