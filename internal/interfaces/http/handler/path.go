package handler

import (
	appcheckpoint "github.com/orc/backend/internal/application/checkpoint"
	"github.com/orc/backend/internal/domain/shared"
	"github.com/orc/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// PathHandler manages stations and the ordered paths that string them
// together.
type PathHandler struct {
	BaseHandler
	pathService *appcheckpoint.PathService
}

// NewPathHandler creates a new path handler
func NewPathHandler(pathService *appcheckpoint.PathService) *PathHandler {
	return &PathHandler{pathService: pathService}
}

// ReorderStationsRequest carries the full replacement station order
type ReorderStationsRequest struct {
	StationIDs []uuid.UUID `json:"station_ids" binding:"required,min=1"`
}

// AppendStationRequest names the station to append at the end of a path
type AppendStationRequest struct {
	StationID uuid.UUID `json:"station_id" binding:"required"`
}

// CreateStation godoc
// @ID           createStation
// @Summary      Register a checkpoint station
// @Tags         paths
// @Accept       json
// @Produce      json
// @Param        request body appcheckpoint.CreateStationRequest true "Station details"
// @Success      200 {object} APIResponse[appcheckpoint.StationResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      409 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /stations [post]
func (h *PathHandler) CreateStation(c *gin.Context) {
	var req appcheckpoint.CreateStationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	station, err := h.pathService.CreateStation(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, station)
}

// ListStations godoc
// @ID           listStations
// @Summary      List checkpoint stations
// @Tags         paths
// @Produce      json
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Items per page" default(20) maximum(100)
// @Param        search query string false "Search by name or machine number"
// @Success      200 {object} APIResponse[[]appcheckpoint.StationResponse]
// @Failure      401 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /stations [get]
func (h *PathHandler) ListStations(c *gin.Context) {
	filter := bindListFilter(c)

	stations, err := h.pathService.ListStations(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, stations)
}

// CreatePath godoc
// @ID           createPath
// @Summary      Create an ordered path
// @Description  Creates a path through the given stations. Every station sequence must be unique across paths; a clashing order is rejected.
// @Tags         paths
// @Accept       json
// @Produce      json
// @Param        request body appcheckpoint.CreatePathRequest true "Path details"
// @Success      200 {object} APIResponse[appcheckpoint.PathResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      409 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /paths [post]
func (h *PathHandler) CreatePath(c *gin.Context) {
	var req appcheckpoint.CreatePathRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	path, err := h.pathService.CreatePath(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, path)
}

// GetPath godoc
// @ID           getPath
// @Summary      Get a path with its ordered stations
// @Tags         paths
// @Produce      json
// @Param        id path string true "Path ID" format(uuid)
// @Success      200 {object} APIResponse[appcheckpoint.PathResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /paths/{id} [get]
func (h *PathHandler) GetPath(c *gin.Context) {
	pathID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid path ID")
		return
	}

	path, err := h.pathService.GetPath(c.Request.Context(), pathID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, path)
}

// ListPaths godoc
// @ID           listPaths
// @Summary      List paths
// @Tags         paths
// @Produce      json
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Items per page" default(20) maximum(100)
// @Success      200 {object} APIResponse[[]appcheckpoint.PathResponse]
// @Failure      401 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /paths [get]
func (h *PathHandler) ListPaths(c *gin.Context) {
	filter := bindListFilter(c)

	paths, err := h.pathService.ListPaths(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, paths)
}

// AppendStation godoc
// @ID           appendStation
// @Summary      Append a station to a path
// @Tags         paths
// @Accept       json
// @Produce      json
// @Param        id path string true "Path ID" format(uuid)
// @Param        request body AppendStationRequest true "Station to append"
// @Success      200 {object} APIResponse[appcheckpoint.PathResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      409 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /paths/{id}/stations [post]
func (h *PathHandler) AppendStation(c *gin.Context) {
	pathID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid path ID")
		return
	}

	var req AppendStationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	path, err := h.pathService.AppendStation(c.Request.Context(), pathID, req.StationID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, path)
}

// RemoveStation godoc
// @ID           removeStationFromPath
// @Summary      Remove a station from a path
// @Description  Removes the station and closes the gap so remaining stations stay contiguous.
// @Tags         paths
// @Produce      json
// @Param        id path string true "Path ID" format(uuid)
// @Param        stationId path string true "Station ID" format(uuid)
// @Success      200 {object} APIResponse[appcheckpoint.PathResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      409 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /paths/{id}/stations/{stationId} [delete]
func (h *PathHandler) RemoveStation(c *gin.Context) {
	pathID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid path ID")
		return
	}

	stationID, err := uuid.Parse(c.Param("stationId"))
	if err != nil {
		h.BadRequest(c, "Invalid station ID")
		return
	}

	path, err := h.pathService.RemoveStation(c.Request.Context(), pathID, stationID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, path)
}

// ReorderStations godoc
// @ID           reorderStations
// @Summary      Replace the station order of a path
// @Tags         paths
// @Accept       json
// @Produce      json
// @Param        id path string true "Path ID" format(uuid)
// @Param        request body ReorderStationsRequest true "Replacement station order"
// @Success      200 {object} APIResponse[appcheckpoint.PathResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      409 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /paths/{id}/stations/reorder [put]
func (h *PathHandler) ReorderStations(c *gin.Context) {
	pathID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid path ID")
		return
	}

	var req ReorderStationsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	path, err := h.pathService.ReorderStations(c.Request.Context(), pathID, req.StationIDs)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, path)
}

// DeletePath godoc
// @ID           deletePath
// @Summary      Delete a path
// @Description  Deletes a path. Paths bound to an open journey cannot be deleted.
// @Tags         paths
// @Produce      json
// @Param        id path string true "Path ID" format(uuid)
// @Success      200 {object} SuccessResponse
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      409 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /paths/{id} [delete]
func (h *PathHandler) DeletePath(c *gin.Context) {
	pathID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid path ID")
		return
	}

	if err := h.pathService.DeletePath(c.Request.Context(), pathID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, dto.MessageResponse{Message: "Path deleted"})
}

// bindListFilter reads the common pagination and search query params
func bindListFilter(c *gin.Context) shared.Filter {
	filter := shared.DefaultFilter()
	var query struct {
		Page     int    `form:"page" binding:"omitempty,min=1"`
		PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
		Search   string `form:"search"`
	}
	if err := c.ShouldBindQuery(&query); err == nil {
		if query.Page > 0 {
			filter.Page = query.Page
		}
		if query.PageSize > 0 {
			filter.PageSize = query.PageSize
		}
		filter.Search = query.Search
	}
	return filter
}
