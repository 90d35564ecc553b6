package handlers

import (
	"encoding/json"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"github.com/Beliver-247/sliit-choir-backend/internal/api/dto"
	"github.com/Beliver-247/sliit-choir-backend/internal/domain/order"
)

type OrderHandler struct {
	service order.Service
}

func NewOrderHandler(service order.Service) *OrderHandler {
	return &OrderHandler{service: service}
}

// CreateOrder godoc
// @Summary Place a merchandise order
// @Description Multipart form: an "items" field holding a JSON array of cart lines and a "receipt" file with the payment slip.
// @Tags orders
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param items formData string true "JSON array of {merchandiseId, size, quantity}"
// @Param receipt formData file true "Payment receipt"
// @Success 201 {object} dto.OrderResponse
// @Failure 400 {object} map[string]string "Validation failure or insufficient stock"
// @Router /api/orders [post]
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}

	var items []dto.OrderItemRequest
	if err := json.Unmarshal([]byte(c.PostForm("items")), &items); err != nil {
		respondError(c, http.StatusBadRequest, "items must be a JSON array of cart lines")
		return
	}

	fileHeader, err := c.FormFile("receipt")
	if err != nil {
		respondServiceError(c, order.ErrMissingReceipt)
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		respondError(c, http.StatusBadRequest, "could not read receipt upload")
		return
	}
	defer file.Close()

	input := order.CreateInput{
		Receipt:    file,
		ReceiptExt: filepath.Ext(fileHeader.Filename),
	}
	for _, item := range items {
		input.Items = append(input.Items, order.ItemInput{
			MerchandiseID: item.MerchandiseID,
			Size:          item.Size,
			Quantity:      item.Quantity,
		})
	}

	o, err := h.service.CreateOrder(c.Request.Context(), caller, input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondCreated(c, OrderToResponse(o))
}

// ListOrders godoc
// @Summary List all orders
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Param status query string false "Filter by status"
// @Success 200 {object} dto.ListResponse
// @Router /api/orders [get]
func (h *OrderHandler) ListOrders(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}

	var filter order.Filter
	if s := c.Query("status"); s != "" {
		status := order.Status(s)
		filter.Status = &status
	}
	filter.Page, filter.PageSize = parsePage(c)

	orders, total, err := h.service.ListOrders(c.Request.Context(), caller, filter)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, dto.ListResponse{Items: OrdersToResponse(orders), Total: total})
}

// MyOrders godoc
// @Summary List the caller's own orders
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.OrderResponse
// @Router /api/orders/my-orders [get]
func (h *OrderHandler) MyOrders(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}

	orders, err := h.service.MyOrders(c.Request.Context(), caller)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, OrdersToResponse(orders))
}

// GetOrder godoc
// @Summary Get an order by ID
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Success 200 {object} dto.OrderResponse
// @Failure 404 {object} map[string]string "Order not found"
// @Router /api/orders/{id} [get]
func (h *OrderHandler) GetOrder(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	o, err := h.service.GetOrder(c.Request.Context(), caller, id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, OrderToResponse(o))
}

// ConfirmOrder godoc
// @Summary Confirm a pending order
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Success 200 {object} dto.OrderResponse
// @Failure 409 {object} map[string]string "Order already reviewed"
// @Router /api/orders/{id}/confirm [put]
func (h *OrderHandler) ConfirmOrder(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	o, err := h.service.ConfirmOrder(c.Request.Context(), caller, id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, OrderToResponse(o))
}

// DeclineOrder godoc
// @Summary Decline a pending order
// @Description Declining restores the reserved stock.
// @Tags orders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Param request body dto.DeclineOrderRequest true "Decline reason"
// @Success 200 {object} dto.OrderResponse
// @Router /api/orders/{id}/decline [put]
func (h *OrderHandler) DeclineOrder(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req dto.DeclineOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	o, err := h.service.DeclineOrder(c.Request.Context(), caller, id, req.Reason)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, OrderToResponse(o))
}

// DeleteOrder godoc
// @Summary Delete an order
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Success 200 {object} map[string]string
// @Router /api/orders/{id} [delete]
func (h *OrderHandler) DeleteOrder(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.service.DeleteOrder(c.Request.Context(), caller, id); err != nil {
		respondServiceError(c, err)
		return
	}
	respondMessage(c, "order deleted")
}

// GetStats godoc
// @Summary Order revenue and counts by status
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.OrderStatsResponse
// @Router /api/orders/stats/summary [get]
func (h *OrderHandler) GetStats(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}

	stats, err := h.service.GetStats(c.Request.Context(), caller)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, OrderStatsToResponse(stats))
}
