package dto

import (
	"time"

	"github.com/google/uuid"
)

// CreateMerchandiseRequest is the payload for adding a catalog item
type CreateMerchandiseRequest struct {
	Name        string   `json:"name" binding:"required"`
	Description string   `json:"description"`
	Price       float64  `json:"price" binding:"required,gt=0"`
	Sizes       []string `json:"sizes"`
	Stock       int      `json:"stock"`
	Category    string   `json:"category" binding:"required"`
	ImageURL    string   `json:"imageUrl"`
}

// UpdateMerchandiseRequest carries optional item changes
type UpdateMerchandiseRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	Sizes       []string `json:"sizes"`
	Stock       *int     `json:"stock"`
	Category    *string  `json:"category"`
	ImageURL    *string  `json:"imageUrl"`
}

// MerchandiseResponse is the public view of a catalog item
type MerchandiseResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Sizes       []string  `json:"sizes"`
	Stock       int       `json:"stock"`
	Category    string    `json:"category"`
	ImageURL    string    `json:"imageUrl"`
	CreatedAt   time.Time `json:"createdAt"`
}

// OrderItemRequest is one cart line from the checkout form
type OrderItemRequest struct {
	MerchandiseID uuid.UUID `json:"merchandiseId" binding:"required"`
	Size          string    `json:"size"`
	Quantity      int       `json:"quantity" binding:"required,gt=0"`
}

// DeclineOrderRequest explains why an order was declined
type DeclineOrderRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// OrderItemResponse is one line of a placed order
type OrderItemResponse struct {
	MerchandiseID uuid.UUID `json:"merchandiseId"`
	Name          string    `json:"name"`
	Size          string    `json:"size"`
	Quantity      int       `json:"quantity"`
	UnitPrice     float64   `json:"unitPrice"`
	Subtotal      float64   `json:"subtotal"`
}

// OrderResponse is the public view of an order
type OrderResponse struct {
	ID            uuid.UUID           `json:"id"`
	MemberID      uuid.UUID           `json:"memberId"`
	Items         []OrderItemResponse `json:"items"`
	TotalAmount   float64             `json:"totalAmount"`
	ReceiptURL    string              `json:"receiptUrl"`
	Status        string              `json:"status"`
	DeclineReason string              `json:"declineReason,omitempty"`
	CreatedAt     time.Time           `json:"createdAt"`
}

// OrderStatsResponse is the dashboard summary
type OrderStatsResponse struct {
	TotalRevenue  float64          `json:"totalRevenue"`
	OrderCount    int64            `json:"orderCount"`
	CountByStatus map[string]int64 `json:"countByStatus"`
}
