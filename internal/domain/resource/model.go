package resource

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Type classifies a song resource. File types carry an uploaded file;
// link types store an external URL.
type Type string

const (
	TypeSheetMusic   Type = "sheet_music"
	TypeAudioSoprano Type = "audio_soprano"
	TypeAudioAlto    Type = "audio_alto"
	TypeAudioTenor   Type = "audio_tenor"
	TypeAudioBass    Type = "audio_bass"
	TypeDriveLink    Type = "google_drive_link"
	TypeYoutubeLink  Type = "youtube_link"
)

// IsValid reports whether the type is a known resource kind
func (t Type) IsValid() bool {
	switch t {
	case TypeSheetMusic, TypeAudioSoprano, TypeAudioAlto, TypeAudioTenor,
		TypeAudioBass, TypeDriveLink, TypeYoutubeLink:
		return true
	}
	return false
}

// IsLink reports whether the type points at an external URL instead of an upload
func (t Type) IsLink() bool {
	return t == TypeDriveLink || t == TypeYoutubeLink
}

// IsAudio reports whether the type is a voice-part audio track
func (t Type) IsAudio() bool {
	return strings.HasPrefix(string(t), "audio_")
}

// Resource is one entry in the song library
type Resource struct {
	ID           uuid.UUID `json:"id" gorm:"type:uuid;primary_key"`
	SongTitle    string    `json:"songTitle" gorm:"not null;index:idx_resource_song"`
	Description  string    `json:"description" gorm:"type:text"`
	ResourceType Type      `json:"resourceType" gorm:"not null"`
	FileURL      string    `json:"fileUrl" gorm:"not null"`
	FileKey      string    `json:"-"`
	FileType     *string   `json:"fileType"`
	FileSize     *int64    `json:"fileSize"`
	UploadedBy   uuid.UUID `json:"uploadedBy" gorm:"type:uuid;not null"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// TableName specifies the table name for resources
func (Resource) TableName() string {
	return "resources"
}

// BeforeCreate is called before inserting a new resource
func (r *Resource) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	r.CreatedAt = time.Now()
	r.UpdatedAt = time.Now()
	return nil
}

// BeforeUpdate is called before updating a resource
func (r *Resource) BeforeUpdate(tx *gorm.DB) error {
	r.UpdatedAt = time.Now()
	return nil
}

// RequestStatus tracks a member-submitted resource through review
type RequestStatus string

const (
	RequestPending  RequestStatus = "pending"
	RequestApproved RequestStatus = "approved"
	RequestRejected RequestStatus = "rejected"
)

// Request is a member's proposed addition to the library. Approval
// promotes it to a Resource; rejection records a reason.
type Request struct {
	ID           uuid.UUID     `json:"id" gorm:"type:uuid;primary_key"`
	MemberID     uuid.UUID     `json:"memberId" gorm:"type:uuid;not null;index:idx_resource_request_member"`
	SongTitle    string        `json:"songTitle" gorm:"not null"`
	Description  string        `json:"description" gorm:"type:text"`
	ResourceType Type          `json:"resourceType" gorm:"not null"`
	FileURL      string        `json:"fileUrl" gorm:"not null"`
	FileKey      string        `json:"-"`
	FileType     *string       `json:"fileType"`
	FileSize     *int64        `json:"fileSize"`
	Status       RequestStatus `json:"status" gorm:"not null;default:'pending';index:idx_resource_request_status"`
	RejectReason string        `json:"rejectReason,omitempty"`
	ReviewedBy   *uuid.UUID    `json:"reviewedBy,omitempty" gorm:"type:uuid"`
	ReviewedAt   *time.Time    `json:"reviewedAt,omitempty"`
	CreatedAt    time.Time     `json:"createdAt"`
}

// TableName specifies the table name for resource requests
func (Request) TableName() string {
	return "resource_requests"
}

// BeforeCreate is called before inserting a new request
func (r *Request) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	if r.Status == "" {
		r.Status = RequestPending
	}
	r.CreatedAt = time.Now()
	return nil
}

// Favorite marks one resource as a member's favorite
type Favorite struct {
	ID         uuid.UUID `json:"id" gorm:"type:uuid;primary_key"`
	MemberID   uuid.UUID `json:"memberId" gorm:"type:uuid;not null;uniqueIndex:idx_favorite_member_resource"`
	ResourceID uuid.UUID `json:"resourceId" gorm:"type:uuid;not null;uniqueIndex:idx_favorite_member_resource"`
	CreatedAt  time.Time `json:"createdAt"`
}

// TableName specifies the table name for favorites
func (Favorite) TableName() string {
	return "resource_favorites"
}

// BeforeCreate is called before inserting a new favorite
func (f *Favorite) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	f.CreatedAt = time.Now()
	return nil
}
