package dto

import (
	"time"

	"github.com/google/uuid"
)

// CreateEventRequest is the payload for creating an event
type CreateEventRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	EventType   string `json:"eventType"`
	Date        Date   `json:"date" binding:"required"`
	Time        string `json:"time"`
	Location    string `json:"location"`
	Capacity    int    `json:"capacity"`
	ImageURL    string `json:"imageUrl"`
}

// UpdateEventRequest carries optional event changes
type UpdateEventRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	EventType   *string `json:"eventType"`
	Date        *Date   `json:"date"`
	Time        *string `json:"time"`
	Location    *string `json:"location"`
	Capacity    *int    `json:"capacity"`
	ImageURL    *string `json:"imageUrl"`
}

// EventResponse is the public view of an event
type EventResponse struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	EventType   string    `json:"eventType"`
	Date        time.Time `json:"date"`
	Time        string    `json:"time"`
	Location    string    `json:"location"`
	Capacity    int       `json:"capacity"`
	ImageURL    string    `json:"imageUrl"`
	CreatedBy   uuid.UUID `json:"createdBy"`
	CreatedAt   time.Time `json:"createdAt"`
}

// CreateScheduleRequest is the payload for creating a practice schedule
type CreateScheduleRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Date        Date   `json:"date" binding:"required"`
	StartTime   string `json:"startTime"`
	EndTime     string `json:"endTime"`
	LectureHall string `json:"lectureHall"`
	IsRecurring bool   `json:"isRecurring"`
}

// UpdateScheduleRequest carries optional schedule changes
type UpdateScheduleRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Date        *Date   `json:"date"`
	StartTime   *string `json:"startTime"`
	EndTime     *string `json:"endTime"`
	LectureHall *string `json:"lectureHall"`
	IsRecurring *bool   `json:"isRecurring"`
}

// ScheduleResponse is the public view of a practice schedule
type ScheduleResponse struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
	StartTime   string    `json:"startTime"`
	EndTime     string    `json:"endTime"`
	LectureHall string    `json:"lectureHall"`
	IsRecurring bool      `json:"isRecurring"`
	CreatedBy   uuid.UUID `json:"createdBy"`
	CreatedAt   time.Time `json:"createdAt"`
}
