package event

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// EventType categorizes a choir event
type EventType string

const (
	TypeConcert   EventType = "concert"
	TypeWorkshop  EventType = "workshop"
	TypeOutreach  EventType = "outreach"
	TypeSocial    EventType = "social"
	TypeOther     EventType = "other"
)

// IsValid reports whether the event type is a known value
func (t EventType) IsValid() bool {
	switch t {
	case TypeConcert, TypeWorkshop, TypeOutreach, TypeSocial, TypeOther:
		return true
	}
	return false
}

// Event represents a one-off choir event
type Event struct {
	ID          uuid.UUID  `json:"id" gorm:"type:uuid;primary_key"`
	Title       string     `json:"title" gorm:"size:255;not null"`
	Description string     `json:"description" gorm:"type:text"`
	EventType   EventType  `json:"eventType" gorm:"not null;default:'other'"`
	Date        time.Time  `json:"date" gorm:"not null;index:idx_event_date"`
	Time        string     `json:"time"`
	Location    string     `json:"location"`
	Capacity    int        `json:"capacity" gorm:"default:0"`
	ImageURL    string     `json:"imageUrl"`
	CreatedBy   uuid.UUID  `json:"createdBy" gorm:"type:uuid;not null"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
	DeletedAt   *time.Time `json:"-" gorm:"index"`
}

// TableName specifies the table name for the Event model
func (Event) TableName() string {
	return "events"
}

// BeforeCreate is called before inserting a new event row
func (e *Event) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	e.CreatedAt = time.Now()
	e.UpdatedAt = time.Now()
	return nil
}

// BeforeUpdate is called before updating an event row
func (e *Event) BeforeUpdate(tx *gorm.DB) error {
	e.UpdatedAt = time.Now()
	return nil
}

// Registration marks a member as signed up for an event
type Registration struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key"`
	EventID   uuid.UUID `json:"eventId" gorm:"type:uuid;not null;uniqueIndex:idx_event_registration,priority:1"`
	MemberID  uuid.UUID `json:"memberId" gorm:"type:uuid;not null;uniqueIndex:idx_event_registration,priority:2"`
	CreatedAt time.Time `json:"createdAt"`
}

// TableName specifies the table name for event registrations
func (Registration) TableName() string {
	return "event_registrations"
}

// BeforeCreate is called before inserting a registration row
func (r *Registration) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	r.CreatedAt = time.Now()
	return nil
}
