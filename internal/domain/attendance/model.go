package attendance

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Status is the attendance state recorded for a member at an activity.
// A member with no record is "unmarked", which is not a Status.
type Status string

const (
	StatusPresent Status = "present"
	StatusAbsent  Status = "absent"
	StatusExcused Status = "excused"
	StatusLate    Status = "late"
)

// IsValid reports whether the status is one of the four recorded values
func (s Status) IsValid() bool {
	switch s {
	case StatusPresent, StatusAbsent, StatusExcused, StatusLate:
		return true
	}
	return false
}

// ActivityKind distinguishes the two activity anchors a record can point at
type ActivityKind string

const (
	ActivityEvent    ActivityKind = "event"
	ActivitySchedule ActivityKind = "schedule"
)

// ActivityRef identifies exactly one event or one practice schedule.
// The zero value is invalid; construct through EventRef, ScheduleRef or
// ParseActivityRef so mutual exclusivity holds by construction.
type ActivityRef struct {
	Kind ActivityKind
	ID   uuid.UUID
}

// EventRef builds a reference to a one-off event
func EventRef(id uuid.UUID) ActivityRef {
	return ActivityRef{Kind: ActivityEvent, ID: id}
}

// ScheduleRef builds a reference to a practice schedule
func ScheduleRef(id uuid.UUID) ActivityRef {
	return ActivityRef{Kind: ActivitySchedule, ID: id}
}

// ParseActivityRef converts the wire shape (two optional IDs) into a
// tagged reference, rejecting both-set and neither-set payloads.
func ParseActivityRef(eventID, scheduleID *uuid.UUID) (ActivityRef, error) {
	switch {
	case eventID != nil && scheduleID != nil:
		return ActivityRef{}, &ValidationError{
			Field:   "eventId",
			Message: "supply either eventId or scheduleId, not both",
		}
	case eventID != nil:
		return EventRef(*eventID), nil
	case scheduleID != nil:
		return ScheduleRef(*scheduleID), nil
	default:
		return ActivityRef{}, &ValidationError{
			Field:   "eventId",
			Message: "either eventId or scheduleId is required",
		}
	}
}

// ValidationError carries field-level detail for a rejected mark request
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Message)
}

// AttendanceRecord is one member's attendance state for one activity.
// Exactly one of EventID/ScheduleID is set; the partial unique indexes
// enforce at most one record per (member, activity) pair.
type AttendanceRecord struct {
	ID         uuid.UUID  `json:"id" gorm:"type:uuid;primary_key"`
	MemberID   uuid.UUID  `json:"memberId" gorm:"type:uuid;not null;index:idx_attendance_member;uniqueIndex:idx_attendance_member_event;uniqueIndex:idx_attendance_member_schedule"`
	EventID    *uuid.UUID `json:"eventId,omitempty" gorm:"type:uuid;uniqueIndex:idx_attendance_member_event,where:event_id is not null"`
	ScheduleID *uuid.UUID `json:"scheduleId,omitempty" gorm:"type:uuid;uniqueIndex:idx_attendance_member_schedule,where:schedule_id is not null"`
	Status     Status     `json:"status" gorm:"not null"`
	Comments   string     `json:"comments" gorm:"type:text"`
	MarkedBy   uuid.UUID  `json:"markedBy" gorm:"type:uuid;not null"`
	MarkedAt   time.Time  `json:"markedAt" gorm:"not null"`
	CreatedAt  time.Time  `json:"createdAt"`
}

// Activity returns the record's activity reference
func (r *AttendanceRecord) Activity() ActivityRef {
	if r.EventID != nil {
		return EventRef(*r.EventID)
	}
	if r.ScheduleID != nil {
		return ScheduleRef(*r.ScheduleID)
	}
	return ActivityRef{}
}

// SetActivity writes the reference back into the two nullable columns
func (r *AttendanceRecord) SetActivity(ref ActivityRef) {
	r.EventID = nil
	r.ScheduleID = nil
	id := ref.ID
	switch ref.Kind {
	case ActivityEvent:
		r.EventID = &id
	case ActivitySchedule:
		r.ScheduleID = &id
	}
}

// TableName specifies the table name for attendance records
func (AttendanceRecord) TableName() string {
	return "attendance_records"
}

// BeforeCreate is called before inserting a new attendance row
func (r *AttendanceRecord) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	if r.MarkedAt.IsZero() {
		r.MarkedAt = time.Now().UTC()
	}
	r.CreatedAt = time.Now()
	return nil
}

// DetailedRecord is an attendance record joined with member identity and
// the activity's title and date. Query results feed analytics and export.
type DetailedRecord struct {
	ID            uuid.UUID    `json:"id"`
	MemberID      uuid.UUID    `json:"memberId"`
	FirstName     string       `json:"firstName"`
	LastName      string       `json:"lastName"`
	StudentID     string       `json:"studentId"`
	ActivityKind  ActivityKind `json:"activityKind"`
	ActivityID    uuid.UUID    `json:"activityId"`
	ActivityTitle string       `json:"activityTitle"`
	ActivityDate  time.Time    `json:"activityDate"`
	Status        Status       `json:"status"`
	Comments      string       `json:"comments"`
	MarkedByID    uuid.UUID    `json:"markedById"`
	MarkedByName  string       `json:"markedByName"`
	MarkedAt      time.Time    `json:"markedAt"`
}

// MemberName returns the joined member's display name
func (d *DetailedRecord) MemberName() string {
	return d.FirstName + " " + d.LastName
}
