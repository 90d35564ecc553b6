package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Beliver-247/sliit-choir-backend/internal/api/dto"
	"github.com/Beliver-247/sliit-choir-backend/internal/domain/merchandise"
)

type MerchandiseHandler struct {
	service merchandise.Service
}

func NewMerchandiseHandler(service merchandise.Service) *MerchandiseHandler {
	return &MerchandiseHandler{service: service}
}

// CreateItem godoc
// @Summary Add a merchandise item to the catalog
// @Tags merchandise
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateMerchandiseRequest true "Item details"
// @Success 201 {object} dto.MerchandiseResponse
// @Router /api/merchandise [post]
func (h *MerchandiseHandler) CreateItem(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}

	var req dto.CreateMerchandiseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	item, err := h.service.CreateItem(c.Request.Context(), caller, merchandise.CreateInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Sizes:       req.Sizes,
		Stock:       req.Stock,
		Category:    merchandise.Category(req.Category),
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondCreated(c, ItemToResponse(item))
}

// ListItems godoc
// @Summary List merchandise items
// @Tags merchandise
// @Produce json
// @Param category query string false "Filter by category"
// @Param inStock query bool false "Only items with stock"
// @Param search query string false "Search by name"
// @Success 200 {object} dto.ListResponse
// @Router /api/merchandise [get]
func (h *MerchandiseHandler) ListItems(c *gin.Context) {
	filter := merchandise.Filter{
		InStock: c.Query("inStock") == "true",
		Search:  c.Query("search"),
	}
	if cat := c.Query("category"); cat != "" {
		category := merchandise.Category(cat)
		filter.Category = &category
	}
	filter.Page, filter.PageSize = parsePage(c)

	items, total, err := h.service.ListItems(c.Request.Context(), filter)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, dto.ListResponse{Items: ItemsToResponse(items), Total: total})
}

// GetItem godoc
// @Summary Get a merchandise item by ID
// @Tags merchandise
// @Produce json
// @Param id path string true "Item ID"
// @Success 200 {object} dto.MerchandiseResponse
// @Failure 404 {object} map[string]string "Item not found"
// @Router /api/merchandise/{id} [get]
func (h *MerchandiseHandler) GetItem(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	item, err := h.service.GetItem(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, ItemToResponse(item))
}

// UpdateItem godoc
// @Summary Update a merchandise item
// @Tags merchandise
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Item ID"
// @Param request body dto.UpdateMerchandiseRequest true "Item changes"
// @Success 200 {object} dto.MerchandiseResponse
// @Router /api/merchandise/{id} [put]
func (h *MerchandiseHandler) UpdateItem(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateMerchandiseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	input := merchandise.UpdateInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Sizes:       req.Sizes,
		Stock:       req.Stock,
		ImageURL:    req.ImageURL,
	}
	if req.Category != nil {
		category := merchandise.Category(*req.Category)
		input.Category = &category
	}

	item, err := h.service.UpdateItem(c.Request.Context(), caller, id, input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, ItemToResponse(item))
}

// DeleteItem godoc
// @Summary Remove a merchandise item
// @Tags merchandise
// @Produce json
// @Security BearerAuth
// @Param id path string true "Item ID"
// @Success 200 {object} map[string]string
// @Router /api/merchandise/{id} [delete]
func (h *MerchandiseHandler) DeleteItem(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.service.DeleteItem(c.Request.Context(), caller, id); err != nil {
		respondServiceError(c, err)
		return
	}
	respondMessage(c, "merchandise item deleted")
}
