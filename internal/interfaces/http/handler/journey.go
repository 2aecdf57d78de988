package handler

import (
	appcheckpoint "github.com/orc/backend/internal/application/checkpoint"
	"github.com/orc/backend/internal/domain/checkpoint"
	"github.com/orc/backend/internal/domain/shared"
	"github.com/orc/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// JourneyHandler manages journey administration: completing pending
// declarations, cancelling, truck substitution and listings.
type JourneyHandler struct {
	BaseHandler
	journeyService     *appcheckpoint.JourneyService
	changeTruckService *appcheckpoint.ChangeTruckService
}

// NewJourneyHandler creates a new journey handler
func NewJourneyHandler(
	journeyService *appcheckpoint.JourneyService,
	changeTruckService *appcheckpoint.ChangeTruckService,
) *JourneyHandler {
	return &JourneyHandler{
		journeyService:     journeyService,
		changeTruckService: changeTruckService,
	}
}

// journeyListQuery holds the query parameters for journey listings
type journeyListQuery struct {
	Status   string `form:"status" binding:"omitempty,oneof=PENDING ON_GOING COMPLETED CANCELLED"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

func (q journeyListQuery) filter() shared.Filter {
	filter := shared.DefaultFilter()
	if q.Page > 0 {
		filter.Page = q.Page
	}
	if q.PageSize > 0 {
		filter.PageSize = q.PageSize
	}
	return filter
}

// ChangeTruck godoc
// @ID           changeTruck
// @Summary      Substitute the truck on an open journey
// @Description  Records a truck change (breakdown mid-path) as an audit row and rebinds the journey to the replacement truck.
// @Tags         journeys
// @Accept       json
// @Produce      json
// @Param        request body appcheckpoint.ChangeTruckRequest true "Truck change"
// @Success      200 {object} APIResponse[appcheckpoint.JourneyResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      409 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /journeys/truck-changes [post]
func (h *JourneyHandler) ChangeTruck(c *gin.Context) {
	var req appcheckpoint.ChangeTruckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	operatorID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	journey, err := h.changeTruckService.ChangeTruck(c.Request.Context(), req, operatorID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, journey)
}

// CompleteTruckDeclaration godoc
// @ID           completeTruckDeclaration
// @Summary      Complete a pending truck declaration
// @Description  Fills in the exporter, commodity and path on a declaration the weighbridge opened. The path binds once; rebinding is rejected.
// @Tags         journeys
// @Accept       json
// @Produce      json
// @Param        id path string true "Journey ID" format(uuid)
// @Param        request body appcheckpoint.CompleteTruckJourneyRequest true "Declaration details"
// @Success      200 {object} APIResponse[appcheckpoint.JourneyResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      409 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /journeys/trucks/{id} [put]
func (h *JourneyHandler) CompleteTruckDeclaration(c *gin.Context) {
	journeyID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid journey ID")
		return
	}

	var req appcheckpoint.CompleteTruckJourneyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	journey, err := h.journeyService.CompleteTruckDeclaration(c.Request.Context(), journeyID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, journey)
}

// CompleteWalkInJourney godoc
// @ID           completeWalkInJourney
// @Summary      Complete a pending walk-in journey
// @Description  Fills in the commodity and path on a walk-in journey opened at the weighbridge.
// @Tags         journeys
// @Accept       json
// @Produce      json
// @Param        id path string true "Journey ID" format(uuid)
// @Param        request body appcheckpoint.CompleteWalkInJourneyRequest true "Journey details"
// @Success      200 {object} APIResponse[appcheckpoint.JourneyResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      409 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /journeys/walk-ins/{id} [put]
func (h *JourneyHandler) CompleteWalkInJourney(c *gin.Context) {
	journeyID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid journey ID")
		return
	}

	var req appcheckpoint.CompleteWalkInJourneyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	journey, err := h.journeyService.CompleteWalkInJourney(c.Request.Context(), journeyID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, journey)
}

// GetTruckJourney godoc
// @ID           getTruckJourney
// @Summary      Get a truck journey
// @Tags         journeys
// @Produce      json
// @Param        id path string true "Journey ID" format(uuid)
// @Success      200 {object} APIResponse[appcheckpoint.JourneyResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /journeys/trucks/{id} [get]
func (h *JourneyHandler) GetTruckJourney(c *gin.Context) {
	journeyID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid journey ID")
		return
	}

	journey, err := h.journeyService.GetTruckJourney(c.Request.Context(), journeyID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, journey)
}

// GetTruckJourneyByNumber godoc
// @ID           getTruckJourneyByNumber
// @Summary      Get a truck journey by declaration number
// @Tags         journeys
// @Produce      json
// @Param        number path string true "Declaration number"
// @Success      200 {object} APIResponse[appcheckpoint.JourneyResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /journeys/trucks/number/{number} [get]
func (h *JourneyHandler) GetTruckJourneyByNumber(c *gin.Context) {
	number := c.Param("number")
	if number == "" {
		h.BadRequest(c, "Declaration number is required")
		return
	}

	journey, err := h.journeyService.GetTruckJourneyByNumber(c.Request.Context(), number)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, journey)
}

// ListTruckJourneys godoc
// @ID           listTruckJourneys
// @Summary      List truck journeys
// @Description  List truck journeys in a given lifecycle state, newest first.
// @Tags         journeys
// @Produce      json
// @Param        status query string false "Journey status" Enums(PENDING, ON_GOING, COMPLETED, CANCELLED) default(ON_GOING)
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Items per page" default(20) maximum(100)
// @Success      200 {object} APIResponse[[]appcheckpoint.JourneyResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /journeys/trucks [get]
func (h *JourneyHandler) ListTruckJourneys(c *gin.Context) {
	var query journeyListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.BadRequest(c, "Invalid query parameters")
		return
	}

	status := checkpoint.JourneyStatus(query.Status)
	if status == "" {
		status = checkpoint.JourneyStatusOnGoing
	}

	journeys, err := h.journeyService.ListTruckJourneys(c.Request.Context(), status, query.filter())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, journeys)
}

// ListWalkInJourneys godoc
// @ID           listWalkInJourneys
// @Summary      List walk-in journeys
// @Description  List walk-in journeys in a given lifecycle state, newest first.
// @Tags         journeys
// @Produce      json
// @Param        status query string false "Journey status" Enums(PENDING, ON_GOING, COMPLETED, CANCELLED) default(ON_GOING)
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Items per page" default(20) maximum(100)
// @Success      200 {object} APIResponse[[]appcheckpoint.JourneyResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /journeys/walk-ins [get]
func (h *JourneyHandler) ListWalkInJourneys(c *gin.Context) {
	var query journeyListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.BadRequest(c, "Invalid query parameters")
		return
	}

	status := checkpoint.JourneyStatus(query.Status)
	if status == "" {
		status = checkpoint.JourneyStatusOnGoing
	}

	journeys, err := h.journeyService.ListWalkInJourneys(c.Request.Context(), status, query.filter())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, journeys)
}

// CancelTruckJourney godoc
// @ID           cancelTruckJourney
// @Summary      Cancel a truck journey
// @Tags         journeys
// @Produce      json
// @Param        id path string true "Journey ID" format(uuid)
// @Success      200 {object} SuccessResponse
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      422 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /journeys/trucks/{id}/cancel [post]
func (h *JourneyHandler) CancelTruckJourney(c *gin.Context) {
	journeyID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid journey ID")
		return
	}

	if err := h.journeyService.CancelTruckJourney(c.Request.Context(), journeyID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, dto.MessageResponse{Message: "Journey cancelled"})
}

// CancelWalkInJourney godoc
// @ID           cancelWalkInJourney
// @Summary      Cancel a walk-in journey
// @Tags         journeys
// @Produce      json
// @Param        id path string true "Journey ID" format(uuid)
// @Success      200 {object} SuccessResponse
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      422 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /journeys/walk-ins/{id}/cancel [post]
func (h *JourneyHandler) CancelWalkInJourney(c *gin.Context) {
	journeyID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid journey ID")
		return
	}

	if err := h.journeyService.CancelWalkInJourney(c.Request.Context(), journeyID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, dto.MessageResponse{Message: "Journey cancelled"})
}
