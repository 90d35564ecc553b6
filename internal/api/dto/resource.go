package dto

import (
	"time"

	"github.com/google/uuid"
)

// UpdateResourceRequest carries optional metadata changes
type UpdateResourceRequest struct {
	SongTitle   *string `json:"songTitle"`
	Description *string `json:"description"`
}

// RejectResourceRequestBody explains why a request was rejected
type RejectResourceRequestBody struct {
	Reason string `json:"reason" binding:"required"`
}

// FavoriteRequest adds a resource to the caller's favorites
type FavoriteRequest struct {
	ResourceID uuid.UUID `json:"resourceId" binding:"required"`
}

// ResourceResponse is the public view of a library resource
type ResourceResponse struct {
	ID           uuid.UUID `json:"id"`
	SongTitle    string    `json:"songTitle"`
	Description  string    `json:"description"`
	ResourceType string    `json:"resourceType"`
	FileURL      string    `json:"fileUrl"`
	FileType     *string   `json:"fileType"`
	FileSize     *int64    `json:"fileSize"`
	UploadedBy   uuid.UUID `json:"uploadedBy"`
	CreatedAt    time.Time `json:"createdAt"`
}

// ResourceRequestResponse is the public view of a member's submission
type ResourceRequestResponse struct {
	ID           uuid.UUID `json:"id"`
	MemberID     uuid.UUID `json:"memberId"`
	SongTitle    string    `json:"songTitle"`
	Description  string    `json:"description"`
	ResourceType string    `json:"resourceType"`
	FileURL      string    `json:"fileUrl"`
	Status       string    `json:"status"`
	RejectReason string    `json:"rejectReason,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// FavoriteCheckResponse reports whether a resource is a favorite
type FavoriteCheckResponse struct {
	IsFavorite bool `json:"isFavorite"`
}
