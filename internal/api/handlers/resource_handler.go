package handlers

import (
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"github.com/Beliver-247/sliit-choir-backend/internal/api/dto"
	"github.com/Beliver-247/sliit-choir-backend/internal/domain/resource"
)

type ResourceHandler struct {
	service resource.Service
}

func NewResourceHandler(service resource.Service) *ResourceHandler {
	return &ResourceHandler{service: service}
}

// resourceInputFromForm reads the shared multipart form used by both
// direct resource creation and member request submission. Link types
// carry a linkUrl field instead of a file.
func resourceInputFromForm(c *gin.Context) (resource.CreateInput, func(), bool) {
	input := resource.CreateInput{
		SongTitle:    c.PostForm("songTitle"),
		Description:  c.PostForm("description"),
		ResourceType: resource.Type(c.PostForm("resourceType")),
		LinkURL:      c.PostForm("linkUrl"),
	}
	cleanup := func() {}

	fileHeader, err := c.FormFile("file")
	if err == nil {
		file, err := fileHeader.Open()
		if err != nil {
			respondError(c, http.StatusBadRequest, "could not read file upload")
			return input, cleanup, false
		}
		cleanup = func() { file.Close() }
		input.File = &resource.Upload{
			Content:  file,
			Ext:      filepath.Ext(fileHeader.Filename),
			MimeType: fileHeader.Header.Get("Content-Type"),
			Size:     fileHeader.Size,
		}
	}
	return input, cleanup, true
}

// CreateResource godoc
// @Summary Add a resource to the song library
// @Description Multipart form: songTitle, description, resourceType, and either a file upload or a linkUrl for link types.
// @Tags resources
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param songTitle formData string true "Song title"
// @Param resourceType formData string true "Resource type"
// @Param description formData string false "Description"
// @Param linkUrl formData string false "External link for link types"
// @Param file formData file false "Uploaded file for file types"
// @Success 201 {object} dto.ResourceResponse
// @Router /api/resources [post]
func (h *ResourceHandler) CreateResource(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}
	input, cleanup, ok := resourceInputFromForm(c)
	if !ok {
		return
	}
	defer cleanup()

	r, err := h.service.CreateResource(c.Request.Context(), caller, input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondCreated(c, ResourceToResponse(r))
}

// ListResources godoc
// @Summary List library resources
// @Tags resources
// @Produce json
// @Security BearerAuth
// @Param type query string false "Filter by resource type"
// @Param search query string false "Search by song title"
// @Success 200 {array} dto.ResourceResponse
// @Router /api/resources [get]
func (h *ResourceHandler) ListResources(c *gin.Context) {
	filter := resource.Filter{Search: c.Query("search")}
	if t := c.Query("type"); t != "" {
		rt := resource.Type(t)
		filter.ResourceType = &rt
	}

	resources, err := h.service.ListResources(c.Request.Context(), filter)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, ResourcesToResponse(resources))
}

// ListBySong godoc
// @Summary List library resources grouped by song
// @Tags resources
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string][]dto.ResourceResponse
// @Router /api/resources/by-song [get]
func (h *ResourceHandler) ListBySong(c *gin.Context) {
	filter := resource.Filter{Search: c.Query("search")}

	grouped, err := h.service.ListBySong(c.Request.Context(), filter)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	out := make(map[string][]*dto.ResourceResponse, len(grouped))
	for song, resources := range grouped {
		out[song] = ResourcesToResponse(resources)
	}
	respondOK(c, out)
}

// GetResource godoc
// @Summary Get a resource by ID
// @Tags resources
// @Produce json
// @Security BearerAuth
// @Param id path string true "Resource ID"
// @Success 200 {object} dto.ResourceResponse
// @Failure 404 {object} map[string]string "Resource not found"
// @Router /api/resources/{id} [get]
func (h *ResourceHandler) GetResource(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	r, err := h.service.GetResource(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, ResourceToResponse(r))
}

// UpdateResource godoc
// @Summary Update resource metadata
// @Tags resources
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Resource ID"
// @Param request body dto.UpdateResourceRequest true "Metadata changes"
// @Success 200 {object} dto.ResourceResponse
// @Router /api/resources/{id} [put]
func (h *ResourceHandler) UpdateResource(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateResourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	r, err := h.service.UpdateResource(c.Request.Context(), caller, id, resource.UpdateInput{
		SongTitle:   req.SongTitle,
		Description: req.Description,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, ResourceToResponse(r))
}

// DeleteResource godoc
// @Summary Delete a library resource
// @Tags resources
// @Produce json
// @Security BearerAuth
// @Param id path string true "Resource ID"
// @Success 200 {object} map[string]string
// @Router /api/resources/{id} [delete]
func (h *ResourceHandler) DeleteResource(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.service.DeleteResource(c.Request.Context(), caller, id); err != nil {
		respondServiceError(c, err)
		return
	}
	respondMessage(c, "resource deleted")
}

// SubmitRequest godoc
// @Summary Submit a resource for review
// @Description Same multipart form as resource creation. The submission waits for staff approval before it appears in the library.
// @Tags resource-requests
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param songTitle formData string true "Song title"
// @Param resourceType formData string true "Resource type"
// @Param description formData string false "Description"
// @Param linkUrl formData string false "External link for link types"
// @Param file formData file false "Uploaded file for file types"
// @Success 201 {object} dto.ResourceRequestResponse
// @Router /api/resource-requests [post]
func (h *ResourceHandler) SubmitRequest(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}
	input, cleanup, ok := resourceInputFromForm(c)
	if !ok {
		return
	}
	defer cleanup()

	req, err := h.service.SubmitRequest(c.Request.Context(), caller, input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondCreated(c, RequestToResponse(req))
}

// ListRequests godoc
// @Summary List resource requests
// @Tags resource-requests
// @Produce json
// @Security BearerAuth
// @Param status query string false "Filter by status"
// @Success 200 {array} dto.ResourceRequestResponse
// @Router /api/resource-requests [get]
func (h *ResourceHandler) ListRequests(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}

	var filter resource.RequestFilter
	if s := c.Query("status"); s != "" {
		status := resource.RequestStatus(s)
		filter.Status = &status
	}

	requests, err := h.service.ListRequests(c.Request.Context(), caller, filter)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, RequestsToResponse(requests))
}

// MyRequests godoc
// @Summary List the caller's own resource requests
// @Tags resource-requests
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.ResourceRequestResponse
// @Router /api/resource-requests/my-requests [get]
func (h *ResourceHandler) MyRequests(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}

	requests, err := h.service.MyRequests(c.Request.Context(), caller)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, RequestsToResponse(requests))
}

// ApproveRequest godoc
// @Summary Approve a resource request
// @Description Promotes the submission into the song library.
// @Tags resource-requests
// @Produce json
// @Security BearerAuth
// @Param id path string true "Request ID"
// @Success 200 {object} dto.ResourceResponse
// @Failure 409 {object} map[string]string "Request already reviewed"
// @Router /api/resource-requests/{id}/approve [put]
func (h *ResourceHandler) ApproveRequest(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	r, err := h.service.ApproveRequest(c.Request.Context(), caller, id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, ResourceToResponse(r))
}

// RejectRequest godoc
// @Summary Reject a resource request
// @Tags resource-requests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Request ID"
// @Param request body dto.RejectResourceRequestBody true "Rejection reason"
// @Success 200 {object} dto.ResourceRequestResponse
// @Router /api/resource-requests/{id}/reject [put]
func (h *ResourceHandler) RejectRequest(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req dto.RejectResourceRequestBody
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	r, err := h.service.RejectRequest(c.Request.Context(), caller, id, req.Reason)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, RequestToResponse(r))
}

// DeleteRequest godoc
// @Summary Delete a resource request
// @Tags resource-requests
// @Produce json
// @Security BearerAuth
// @Param id path string true "Request ID"
// @Success 200 {object} map[string]string
// @Router /api/resource-requests/{id} [delete]
func (h *ResourceHandler) DeleteRequest(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.service.DeleteRequest(c.Request.Context(), caller, id); err != nil {
		respondServiceError(c, err)
		return
	}
	respondMessage(c, "request deleted")
}

// ListFavorites godoc
// @Summary List the caller's favorite resources
// @Tags favorites
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.ResourceResponse
// @Router /api/favorites [get]
func (h *ResourceHandler) ListFavorites(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}

	resources, err := h.service.ListFavorites(c.Request.Context(), caller)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, ResourcesToResponse(resources))
}

// AddFavorite godoc
// @Summary Add a resource to the caller's favorites
// @Tags favorites
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.FavoriteRequest true "Resource to favorite"
// @Success 200 {object} map[string]string
// @Failure 409 {object} map[string]string "Already a favorite"
// @Router /api/favorites [post]
func (h *ResourceHandler) AddFavorite(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}

	var req dto.FavoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.service.AddFavorite(c.Request.Context(), caller, req.ResourceID); err != nil {
		respondServiceError(c, err)
		return
	}
	respondMessage(c, "added to favorites")
}

// RemoveFavorite godoc
// @Summary Remove a resource from the caller's favorites
// @Tags favorites
// @Produce json
// @Security BearerAuth
// @Param resourceId path string true "Resource ID"
// @Success 200 {object} map[string]string
// @Router /api/favorites/{resourceId} [delete]
func (h *ResourceHandler) RemoveFavorite(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}
	resourceID, ok := parseID(c, "resourceId")
	if !ok {
		return
	}

	if err := h.service.RemoveFavorite(c.Request.Context(), caller, resourceID); err != nil {
		respondServiceError(c, err)
		return
	}
	respondMessage(c, "removed from favorites")
}

// CheckFavorite godoc
// @Summary Check whether a resource is in the caller's favorites
// @Tags favorites
// @Produce json
// @Security BearerAuth
// @Param resourceId path string true "Resource ID"
// @Success 200 {object} dto.FavoriteCheckResponse
// @Router /api/favorites/check/{resourceId} [get]
func (h *ResourceHandler) CheckFavorite(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}
	resourceID, ok := parseID(c, "resourceId")
	if !ok {
		return
	}

	isFav, err := h.service.CheckFavorite(c.Request.Context(), caller, resourceID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, dto.FavoriteCheckResponse{IsFavorite: isFav})
}
