package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Beliver-247/sliit-choir-backend/internal/api/dto"
	"github.com/Beliver-247/sliit-choir-backend/internal/api/middleware"
	"github.com/Beliver-247/sliit-choir-backend/internal/domain/donation"
)

type DonationHandler struct {
	service donation.Service
}

func NewDonationHandler(service donation.Service) *DonationHandler {
	return &DonationHandler{service: service}
}

// CreateDonation godoc
// @Summary Record a donation
// @Description Open endpoint. A logged-in member's donation is linked to their account.
// @Tags donations
// @Accept json
// @Produce json
// @Param request body dto.CreateDonationRequest true "Donation details"
// @Success 201 {object} dto.DonationResponse
// @Router /api/donations [post]
func (h *DonationHandler) CreateDonation(c *gin.Context) {
	var req dto.CreateDonationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	input := donation.CreateInput{
		DonorName:  req.DonorName,
		DonorEmail: req.DonorEmail,
		Amount:     req.Amount,
		Currency:   req.Currency,
		Message:    req.Message,
	}
	if caller, ok := middleware.GetCaller(c); ok {
		id := caller.ID
		input.MemberID = &id
	}

	d, err := h.service.CreateDonation(c.Request.Context(), input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondCreated(c, DonationToResponse(d))
}

// ListDonations godoc
// @Summary List donations
// @Description Staff see all donations; members see only their own.
// @Tags donations
// @Produce json
// @Security BearerAuth
// @Param status query string false "Filter by status"
// @Param startDate query string false "Start of date range (YYYY-MM-DD)"
// @Param endDate query string false "End of date range (YYYY-MM-DD)"
// @Success 200 {object} dto.ListResponse
// @Router /api/donations [get]
func (h *DonationHandler) ListDonations(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}

	var filter donation.Filter
	if s := c.Query("status"); s != "" {
		status := donation.Status(s)
		filter.Status = &status
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
	filter.Page, filter.PageSize = parsePage(c)

	donations, total, err := h.service.ListDonations(c.Request.Context(), caller, filter)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, dto.ListResponse{Items: DonationsToResponse(donations), Total: total})
}

// GetDonation godoc
// @Summary Get a donation by ID
// @Tags donations
// @Produce json
// @Security BearerAuth
// @Param id path string true "Donation ID"
// @Success 200 {object} dto.DonationResponse
// @Failure 404 {object} map[string]string "Donation not found"
// @Router /api/donations/{id} [get]
func (h *DonationHandler) GetDonation(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	d, err := h.service.GetDonation(c.Request.Context(), caller, id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, DonationToResponse(d))
}

// UpdateDonation godoc
// @Summary Update a donation's details
// @Tags donations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Donation ID"
// @Param request body dto.UpdateDonationRequest true "Changes"
// @Success 200 {object} dto.DonationResponse
// @Router /api/donations/{id} [put]
func (h *DonationHandler) UpdateDonation(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateDonationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	d, err := h.service.UpdateDonation(c.Request.Context(), caller, id, donation.UpdateInput{
		DonorName:  req.DonorName,
		DonorEmail: req.DonorEmail,
		Amount:     req.Amount,
		Message:    req.Message,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, DonationToResponse(d))
}

// UpdateStatus godoc
// @Summary Move a donation through its lifecycle
// @Tags donations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Donation ID"
// @Param request body dto.UpdateDonationStatusRequest true "New status"
// @Success 200 {object} dto.DonationResponse
// @Router /api/donations/{id}/status [put]
func (h *DonationHandler) UpdateStatus(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateDonationStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	d, err := h.service.UpdateStatus(c.Request.Context(), caller, id, donation.Status(req.Status))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, DonationToResponse(d))
}

// DeleteDonation godoc
// @Summary Delete a donation record
// @Tags donations
// @Produce json
// @Security BearerAuth
// @Param id path string true "Donation ID"
// @Success 200 {object} map[string]string
// @Router /api/donations/{id} [delete]
func (h *DonationHandler) DeleteDonation(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.service.DeleteDonation(c.Request.Context(), caller, id); err != nil {
		respondServiceError(c, err)
		return
	}
	respondMessage(c, "donation deleted")
}

// GetStats godoc
// @Summary Donation totals by status
// @Tags donations
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.DonationStatsResponse
// @Router /api/donations/stats/summary [get]
func (h *DonationHandler) GetStats(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}

	stats, err := h.service.GetStats(c.Request.Context(), caller)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, DonationStatsToResponse(stats))
}
