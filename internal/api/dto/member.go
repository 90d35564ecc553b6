package dto

import (
	"time"

	"github.com/google/uuid"
)

// MemberResponse is the public view of a member
type MemberResponse struct {
	ID              uuid.UUID `json:"id"`
	FirstName       string    `json:"firstName"`
	LastName        string    `json:"lastName"`
	StudentID       string    `json:"studentId"`
	Email           string    `json:"email"`
	Role            string    `json:"role"`
	Status          string    `json:"status"`
	IsEmailVerified bool      `json:"isEmailVerified"`
	JoinedAt        time.Time `json:"joinedAt"`
	CreatedAt       time.Time `json:"createdAt"`
}

// UpdateMemberRequest carries optional profile changes
type UpdateMemberRequest struct {
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	Email     *string `json:"email"`
	Role      *string `json:"role"`
}

// UpdateMemberStatusRequest changes a member's account status
type UpdateMemberStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// ListResponse wraps a paginated collection
type ListResponse struct {
	Items interface{} `json:"items"`
	Total int64       `json:"total"`
}
