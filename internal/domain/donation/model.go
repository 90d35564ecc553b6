package donation

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Status tracks a donation through its payment lifecycle
type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
	StatusRefunded  Status = "refunded"
)

// IsValid reports whether the status is a known lifecycle state
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusCompleted, StatusFailed, StatusRefunded:
		return true
	}
	return false
}

// Donation represents a single contribution. MemberID is set when the donor
// was logged in; anonymous donations carry only the donor fields.
type Donation struct {
	ID         uuid.UUID  `json:"id" gorm:"type:uuid;primary_key"`
	MemberID   *uuid.UUID `json:"memberId,omitempty" gorm:"type:uuid;index:idx_donation_member"`
	DonorName  string     `json:"donorName" gorm:"not null"`
	DonorEmail string     `json:"donorEmail"`
	Amount     float64    `json:"amount" gorm:"not null"`
	Currency   string     `json:"currency" gorm:"not null;default:'LKR'"`
	Message    string     `json:"message" gorm:"type:text"`
	Status     Status     `json:"status" gorm:"not null;default:'pending';index:idx_donation_status"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}

// TableName specifies the table name for donations
func (Donation) TableName() string {
	return "donations"
}

// BeforeCreate is called before inserting a new donation
func (d *Donation) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	if d.Status == "" {
		d.Status = StatusPending
	}
	if d.Currency == "" {
		d.Currency = "LKR"
	}
	d.CreatedAt = time.Now()
	d.UpdatedAt = time.Now()
	return nil
}

// BeforeUpdate is called before updating a donation
func (d *Donation) BeforeUpdate(tx *gorm.DB) error {
	d.UpdatedAt = time.Now()
	return nil
}

// StatsSummary aggregates donations for the dashboard
type StatsSummary struct {
	TotalRaised    float64            `json:"totalRaised"`
	DonationCount  int64              `json:"donationCount"`
	AmountByStatus map[Status]float64 `json:"amountByStatus"`
	CountByStatus  map[Status]int64   `json:"countByStatus"`
}
