package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Beliver-247/sliit-choir-backend/internal/api/dto"
	"github.com/Beliver-247/sliit-choir-backend/internal/domain/schedule"
)

type ScheduleHandler struct {
	service schedule.Service
}

func NewScheduleHandler(service schedule.Service) *ScheduleHandler {
	return &ScheduleHandler{service: service}
}

// CreateSchedule godoc
// @Summary Create a practice schedule
// @Tags schedules
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateScheduleRequest true "Schedule details"
// @Success 201 {object} dto.ScheduleResponse
// @Router /api/schedules [post]
func (h *ScheduleHandler) CreateSchedule(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}

	var req dto.CreateScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	s, err := h.service.CreateSchedule(c.Request.Context(), caller, schedule.CreateInput{
		Title:       req.Title,
		Description: req.Description,
		Date:        req.Date.Time,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		LectureHall: req.LectureHall,
		IsRecurring: req.IsRecurring,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondCreated(c, ScheduleToResponse(s))
}

// ListSchedules godoc
// @Summary List practice schedules
// @Tags schedules
// @Produce json
// @Param startDate query string false "Start of date range (YYYY-MM-DD)"
// @Param endDate query string false "End of date range (YYYY-MM-DD)"
// @Param upcoming query bool false "Only future schedules"
// @Success 200 {object} dto.ListResponse
// @Router /api/schedules [get]
func (h *ScheduleHandler) ListSchedules(c *gin.Context) {
	var filter schedule.Filter
	start, err := parseDate(c, "startDate")
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid startDate, expected YYYY-MM-DD")
		return
	}
	end, err := parseDate(c, "endDate")
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid endDate, expected YYYY-MM-DD")
		return
	}
	filter.StartDate = start
	filter.EndDate = end
	filter.Upcoming = c.Query("upcoming") == "true"
	filter.Page, filter.PageSize = parsePage(c)

	schedules, total, err := h.service.ListSchedules(c.Request.Context(), filter)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, dto.ListResponse{Items: SchedulesToResponse(schedules), Total: total})
}

// GetSchedule godoc
// @Summary Get a practice schedule by ID
// @Tags schedules
// @Produce json
// @Param id path string true "Schedule ID"
// @Success 200 {object} dto.ScheduleResponse
// @Failure 404 {object} map[string]string "Schedule not found"
// @Router /api/schedules/{id} [get]
func (h *ScheduleHandler) GetSchedule(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	s, err := h.service.GetSchedule(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, ScheduleToResponse(s))
}

// UpdateSchedule godoc
// @Summary Update a practice schedule
// @Tags schedules
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Schedule ID"
// @Param request body dto.UpdateScheduleRequest true "Schedule changes"
// @Success 200 {object} dto.ScheduleResponse
// @Router /api/schedules/{id} [put]
func (h *ScheduleHandler) UpdateSchedule(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	input := schedule.UpdateInput{
		Title:       req.Title,
		Description: req.Description,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		LectureHall: req.LectureHall,
		IsRecurring: req.IsRecurring,
	}
	if req.Date != nil {
		input.Date = &req.Date.Time
	}

	s, err := h.service.UpdateSchedule(c.Request.Context(), caller, id, input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, ScheduleToResponse(s))
}

// DeleteSchedule godoc
// @Summary Delete a practice schedule
// @Tags schedules
// @Produce json
// @Security BearerAuth
// @Param id path string true "Schedule ID"
// @Success 200 {object} map[string]string
// @Router /api/schedules/{id} [delete]
func (h *ScheduleHandler) DeleteSchedule(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.service.DeleteSchedule(c.Request.Context(), caller, id); err != nil {
		respondServiceError(c, err)
		return
	}
	respondMessage(c, "schedule deleted")
}
