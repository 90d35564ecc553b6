package order

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Status tracks an order through payment verification
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusDeclined  Status = "declined"
)

// IsValid reports whether the status is a known order state
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusDeclined:
		return true
	}
	return false
}

// Order is a member's merchandise purchase awaiting receipt verification.
// TotalAmount is computed server-side from catalog prices at creation.
type Order struct {
	ID            uuid.UUID  `json:"id" gorm:"type:uuid;primary_key"`
	MemberID      uuid.UUID  `json:"memberId" gorm:"type:uuid;not null;index:idx_order_member"`
	Items         []LineItem `json:"items" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	TotalAmount   float64    `json:"totalAmount" gorm:"not null"`
	ReceiptKey    string     `json:"-" gorm:"not null"`
	ReceiptURL    string     `json:"receiptUrl" gorm:"not null"`
	Status        Status     `json:"status" gorm:"not null;default:'pending';index:idx_order_status"`
	DeclineReason string     `json:"declineReason,omitempty"`
	ReviewedBy    *uuid.UUID `json:"reviewedBy,omitempty" gorm:"type:uuid"`
	ReviewedAt    *time.Time `json:"reviewedAt,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

// TableName specifies the table name for orders
func (Order) TableName() string {
	return "orders"
}

// BeforeCreate is called before inserting a new order
func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	if o.Status == "" {
		o.Status = StatusPending
	}
	o.CreatedAt = time.Now()
	o.UpdatedAt = time.Now()
	return nil
}

// BeforeUpdate is called before updating an order
func (o *Order) BeforeUpdate(tx *gorm.DB) error {
	o.UpdatedAt = time.Now()
	return nil
}

// LineItem is one merchandise entry inside an order. UnitPrice is the
// catalog price at order time, so later price edits leave history intact.
type LineItem struct {
	ID            uuid.UUID `json:"id" gorm:"type:uuid;primary_key"`
	OrderID       uuid.UUID `json:"-" gorm:"type:uuid;not null;index:idx_line_item_order"`
	MerchandiseID uuid.UUID `json:"merchandiseId" gorm:"type:uuid;not null"`
	Name          string    `json:"name" gorm:"not null"`
	Size          string    `json:"size"`
	Quantity      int       `json:"quantity" gorm:"not null"`
	UnitPrice     float64   `json:"unitPrice" gorm:"not null"`
}

// TableName specifies the table name for order line items
func (LineItem) TableName() string {
	return "order_line_items"
}

// BeforeCreate is called before inserting a new line item
func (li *LineItem) BeforeCreate(tx *gorm.DB) error {
	if li.ID == uuid.Nil {
		li.ID = uuid.New()
	}
	return nil
}

// Subtotal is the line's contribution to the order total
func (li *LineItem) Subtotal() float64 {
	return li.UnitPrice * float64(li.Quantity)
}

// StatsSummary aggregates orders for the dashboard. Revenue counts only
// confirmed orders.
type StatsSummary struct {
	TotalRevenue  float64          `json:"totalRevenue"`
	OrderCount    int64            `json:"orderCount"`
	CountByStatus map[Status]int64 `json:"countByStatus"`
}
