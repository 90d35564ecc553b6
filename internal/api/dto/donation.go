package dto

import (
	"time"

	"github.com/google/uuid"
)

// CreateDonationRequest is the payload for recording a donation
type CreateDonationRequest struct {
	DonorName  string  `json:"donorName" binding:"required"`
	DonorEmail string  `json:"donorEmail"`
	Amount     float64 `json:"amount" binding:"required,gt=0"`
	Currency   string  `json:"currency"`
	Message    string  `json:"message"`
}

// UpdateDonationRequest carries optional donation changes
type UpdateDonationRequest struct {
	DonorName  *string  `json:"donorName"`
	DonorEmail *string  `json:"donorEmail"`
	Amount     *float64 `json:"amount"`
	Message    *string  `json:"message"`
}

// UpdateDonationStatusRequest moves a donation through its lifecycle
type UpdateDonationStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// DonationResponse is the public view of a donation
type DonationResponse struct {
	ID         uuid.UUID  `json:"id"`
	MemberID   *uuid.UUID `json:"memberId,omitempty"`
	DonorName  string     `json:"donorName"`
	DonorEmail string     `json:"donorEmail"`
	Amount     float64    `json:"amount"`
	Currency   string     `json:"currency"`
	Message    string     `json:"message"`
	Status     string     `json:"status"`
	CreatedAt  time.Time  `json:"createdAt"`
}

// DonationStatsResponse is the dashboard summary
type DonationStatsResponse struct {
	TotalRaised    float64            `json:"totalRaised"`
	DonationCount  int64              `json:"donationCount"`
	AmountByStatus map[string]float64 `json:"amountByStatus"`
	CountByStatus  map[string]int64   `json:"countByStatus"`
}
