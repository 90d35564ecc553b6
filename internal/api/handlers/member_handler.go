package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Beliver-247/sliit-choir-backend/internal/api/dto"
	"github.com/Beliver-247/sliit-choir-backend/internal/api/middleware"
	"github.com/Beliver-247/sliit-choir-backend/internal/domain/member"
)

type MemberHandler struct {
	service member.Service
}

func NewMemberHandler(service member.Service) *MemberHandler {
	return &MemberHandler{service: service}
}

// requireCaller pulls the authenticated caller or writes a 401
func requireCaller(c *gin.Context) (member.Caller, bool) {
	caller, ok := middleware.GetCaller(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "not authenticated")
		return member.Caller{}, false
	}
	return caller, true
}

// parseID parses a UUID path parameter or writes a 400
func parseID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid "+name)
		return uuid.Nil, false
	}
	return id, true
}

func parsePage(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	// the frontend sends limit; pageSize is kept as an alias
	size := c.Query("limit")
	if size == "" {
		size = c.DefaultQuery("pageSize", "10")
	}
	pageSize, _ := strconv.Atoi(size)
	return page, pageSize
}

// ListMembers godoc
// @Summary List choir members
// @Tags members
// @Produce json
// @Security BearerAuth
// @Param status query string false "Filter by account status"
// @Param role query string false "Filter by role"
// @Param search query string false "Search by name or student ID"
// @Success 200 {object} dto.ListResponse
// @Router /api/members [get]
func (h *MemberHandler) ListMembers(c *gin.Context) {
	var filter member.Filter
	if search := c.Query("search"); search != "" {
		filter.Search = &search
	}
	if s := c.Query("status"); s != "" {
		status := member.Status(s)
		filter.Status = &status
	}
	if r := c.Query("role"); r != "" {
		role := member.Role(r)
		filter.Role = &role
	}
	filter.Page, filter.PageSize = parsePage(c)

	members, total, err := h.service.ListMembers(c.Request.Context(), filter)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, dto.ListResponse{Items: MembersToResponse(members), Total: total})
}

// GetMember godoc
// @Summary Get a member by ID
// @Tags members
// @Produce json
// @Security BearerAuth
// @Param id path string true "Member ID"
// @Success 200 {object} dto.MemberResponse
// @Failure 404 {object} map[string]string "Member not found"
// @Router /api/members/{id} [get]
func (h *MemberHandler) GetMember(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	m, err := h.service.GetMember(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, MemberToResponse(m))
}

// UpdateMember godoc
// @Summary Update a member's profile
// @Description Members may edit their own profile; role changes need admin
// @Tags members
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Member ID"
// @Param request body dto.UpdateMemberRequest true "Profile changes"
// @Success 200 {object} dto.MemberResponse
// @Router /api/members/{id} [put]
func (h *MemberHandler) UpdateMember(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	input := member.UpdateInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
	}
	if req.Role != nil {
		role := member.Role(*req.Role)
		input.Role = &role
	}

	m, err := h.service.UpdateMember(c.Request.Context(), caller, id, input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, MemberToResponse(m))
}

// UpdateStatus godoc
// @Summary Change a member's account status
// @Tags members
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Member ID"
// @Param request body dto.UpdateMemberStatusRequest true "New status"
// @Success 200 {object} dto.MemberResponse
// @Router /api/members/{id}/status [put]
func (h *MemberHandler) UpdateStatus(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateMemberStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	m, err := h.service.UpdateStatus(c.Request.Context(), caller, id, member.Status(req.Status))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, MemberToResponse(m))
}

// DeleteMember godoc
// @Summary Delete a member
// @Tags members
// @Produce json
// @Security BearerAuth
// @Param id path string true "Member ID"
// @Success 200 {object} map[string]string
// @Router /api/members/{id} [delete]
func (h *MemberHandler) DeleteMember(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.service.DeleteMember(c.Request.Context(), caller, id); err != nil {
		respondServiceError(c, err)
		return
	}
	respondMessage(c, "member deleted")
}
