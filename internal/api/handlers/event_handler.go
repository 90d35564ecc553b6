package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Beliver-247/sliit-choir-backend/internal/api/dto"
	"github.com/Beliver-247/sliit-choir-backend/internal/domain/event"
)

type EventHandler struct {
	service event.Service
}

func NewEventHandler(service event.Service) *EventHandler {
	return &EventHandler{service: service}
}

// parseDate parses a YYYY-MM-DD query parameter, returning nil when absent
func parseDate(c *gin.Context, name string) (*time.Time, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// CreateEvent godoc
// @Summary Create an event
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateEventRequest true "Event details"
// @Success 201 {object} dto.EventResponse
// @Router /api/events [post]
func (h *EventHandler) CreateEvent(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}

	var req dto.CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	e, err := h.service.CreateEvent(c.Request.Context(), caller, event.CreateInput{
		Title:       req.Title,
		Description: req.Description,
		EventType:   event.EventType(req.EventType),
		Date:        req.Date.Time,
		Time:        req.Time,
		Location:    req.Location,
		Capacity:    req.Capacity,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondCreated(c, EventToResponse(e))
}

// ListEvents godoc
// @Summary List events
// @Tags events
// @Produce json
// @Param type query string false "Filter by event type"
// @Param startDate query string false "Start of date range (YYYY-MM-DD)"
// @Param endDate query string false "End of date range (YYYY-MM-DD)"
// @Param upcoming query bool false "Only future events"
// @Success 200 {object} dto.ListResponse
// @Router /api/events [get]
func (h *EventHandler) ListEvents(c *gin.Context) {
	var filter event.Filter
	if t := c.Query("type"); t != "" {
		et := event.EventType(t)
		filter.EventType = &et
	}
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

	events, total, err := h.service.ListEvents(c.Request.Context(), filter)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, dto.ListResponse{Items: EventsToResponse(events), Total: total})
}

// GetEvent godoc
// @Summary Get an event by ID
// @Tags events
// @Produce json
// @Param id path string true "Event ID"
// @Success 200 {object} dto.EventResponse
// @Failure 404 {object} map[string]string "Event not found"
// @Router /api/events/{id} [get]
func (h *EventHandler) GetEvent(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	e, err := h.service.GetEvent(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, EventToResponse(e))
}

// UpdateEvent godoc
// @Summary Update an event
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Event ID"
// @Param request body dto.UpdateEventRequest true "Event changes"
// @Success 200 {object} dto.EventResponse
// @Router /api/events/{id} [put]
func (h *EventHandler) UpdateEvent(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	input := event.UpdateInput{
		Title:       req.Title,
		Description: req.Description,
		Time:        req.Time,
		Location:    req.Location,
		Capacity:    req.Capacity,
		ImageURL:    req.ImageURL,
	}
	if req.Date != nil {
		input.Date = &req.Date.Time
	}
	if req.EventType != nil {
		et := event.EventType(*req.EventType)
		input.EventType = &et
	}

	e, err := h.service.UpdateEvent(c.Request.Context(), caller, id, input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, EventToResponse(e))
}

// DeleteEvent godoc
// @Summary Delete an event
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param id path string true "Event ID"
// @Success 200 {object} map[string]string
// @Router /api/events/{id} [delete]
func (h *EventHandler) DeleteEvent(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.service.DeleteEvent(c.Request.Context(), caller, id); err != nil {
		respondServiceError(c, err)
		return
	}
	respondMessage(c, "event deleted")
}

// Register godoc
// @Summary Register the caller for an event
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param id path string true "Event ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string "Event full"
// @Router /api/events/{id}/register [post]
func (h *EventHandler) Register(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.service.RegisterMember(c.Request.Context(), caller, id); err != nil {
		respondServiceError(c, err)
		return
	}
	respondMessage(c, "registered for event")
}

// Unregister godoc
// @Summary Cancel the caller's event registration
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param id path string true "Event ID"
// @Success 200 {object} map[string]string
// @Router /api/events/{id}/register [delete]
func (h *EventHandler) Unregister(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.service.UnregisterMember(c.Request.Context(), caller, id); err != nil {
		respondServiceError(c, err)
		return
	}
	respondMessage(c, "registration cancelled")
}

// ListRegistrations godoc
// @Summary List registrations for an event
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param id path string true "Event ID"
// @Success 200 {array} event.Registration
// @Router /api/events/{id}/registrations [get]
func (h *EventHandler) ListRegistrations(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	regs, err := h.service.ListRegistrations(c.Request.Context(), caller, id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, regs)
}
