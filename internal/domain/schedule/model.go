package schedule

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Schedule represents a practice session anchored to a calendar date
type Schedule struct {
	ID          uuid.UUID  `json:"id" gorm:"type:uuid;primary_key"`
	Title       string     `json:"title" gorm:"size:255;not null"`
	Description string     `json:"description" gorm:"type:text"`
	Date        time.Time  `json:"date" gorm:"not null;index:idx_schedule_date"`
	StartTime   string     `json:"startTime" gorm:"not null"`
	EndTime     string     `json:"endTime" gorm:"not null"`
	LectureHall string     `json:"lectureHall"`
	IsRecurring bool       `json:"isRecurring" gorm:"not null;default:false"`
	CreatedBy   uuid.UUID  `json:"createdBy" gorm:"type:uuid;not null"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
	DeletedAt   *time.Time `json:"-" gorm:"index"`
}

// TableName specifies the table name for the Schedule model
func (Schedule) TableName() string {
	return "practice_schedules"
}

// BeforeCreate is called before inserting a new schedule row
func (s *Schedule) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	s.CreatedAt = time.Now()
	s.UpdatedAt = time.Now()
	return nil
}

// BeforeUpdate is called before updating a schedule row
func (s *Schedule) BeforeUpdate(tx *gorm.DB) error {
	s.UpdatedAt = time.Now()
	return nil
}
