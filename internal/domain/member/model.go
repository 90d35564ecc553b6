package member

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Role is a member's privilege level
type Role string

const (
	RoleMember    Role = "member"
	RoleModerator Role = "moderator"
	RoleAdmin     Role = "admin"
)

// IsValid reports whether the role is one of the known values
func (r Role) IsValid() bool {
	switch r {
	case RoleMember, RoleModerator, RoleAdmin:
		return true
	}
	return false
}

// Status represents a member's account status
type Status string

const (
	StatusActive    Status = "active"
	StatusInactive  Status = "inactive"
	StatusSuspended Status = "suspended"
)

// IsValid reports whether the status is one of the known values
func (s Status) IsValid() bool {
	switch s {
	case StatusActive, StatusInactive, StatusSuspended:
		return true
	}
	return false
}

// Member represents a choir member
type Member struct {
	ID              uuid.UUID      `json:"id" gorm:"type:uuid;primary_key"`
	FirstName       string         `json:"firstName" gorm:"not null"`
	LastName        string         `json:"lastName" gorm:"not null"`
	StudentID       string         `json:"studentId" gorm:"uniqueIndex:idx_member_student_id;not null"`
	Email           string         `json:"email" gorm:"uniqueIndex:idx_member_email;not null"`
	PasswordHash    string         `json:"-" gorm:"not null"`
	Role            Role           `json:"role" gorm:"not null;default:'member'"`
	Status          Status         `json:"status" gorm:"not null;default:'active';index:idx_member_status"`
	IsEmailVerified bool           `json:"isEmailVerified" gorm:"not null;default:false"`
	JoinedAt        time.Time      `json:"joinedAt" gorm:"not null"`
	CreatedAt       time.Time      `json:"createdAt"`
	UpdatedAt       time.Time      `json:"updatedAt"`
	DeletedAt       gorm.DeletedAt `json:"-" gorm:"index"`
}

// FullName returns the member's display name
func (m *Member) FullName() string {
	return m.FirstName + " " + m.LastName
}

// TableName specifies the table name for the Member model
func (Member) TableName() string {
	return "members"
}

// BeforeCreate is called before inserting a new member row
func (m *Member) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	if m.JoinedAt.IsZero() {
		m.JoinedAt = time.Now().UTC()
	}
	m.CreatedAt = time.Now()
	m.UpdatedAt = time.Now()
	return nil
}

// BeforeUpdate is called before updating a member row
func (m *Member) BeforeUpdate(tx *gorm.DB) error {
	m.UpdatedAt = time.Now()
	return nil
}
