package dto

import (
	"time"

	"github.com/google/uuid"
)

// MarkAttendanceRequest records one member's state at an activity.
// Exactly one of EventID/ScheduleID must be set.
type MarkAttendanceRequest struct {
	MemberID   uuid.UUID  `json:"memberId" binding:"required"`
	EventID    *uuid.UUID `json:"eventId"`
	ScheduleID *uuid.UUID `json:"scheduleId"`
	Status     string     `json:"status" binding:"required"`
	Comments   string     `json:"comments"`
}

// UpdateAttendanceRequest carries optional record changes
type UpdateAttendanceRequest struct {
	Status   *string `json:"status"`
	Comments *string `json:"comments"`
}

// AttendanceRecordResponse is the stored record view
type AttendanceRecordResponse struct {
	ID         uuid.UUID  `json:"id"`
	MemberID   uuid.UUID  `json:"memberId"`
	EventID    *uuid.UUID `json:"eventId,omitempty"`
	ScheduleID *uuid.UUID `json:"scheduleId,omitempty"`
	Status     string     `json:"status"`
	Comments   string     `json:"comments"`
	MarkedBy   uuid.UUID  `json:"markedBy"`
	MarkedAt   time.Time  `json:"markedAt"`
}

// ActivityAttendanceResponse pairs a member with their record for one activity
type ActivityAttendanceResponse struct {
	Member *MemberResponse           `json:"member"`
	Record *AttendanceRecordResponse `json:"record"`
}

// DetailedRecordResponse is a record joined with member and activity identity
type DetailedRecordResponse struct {
	ID            uuid.UUID `json:"id"`
	MemberID      uuid.UUID `json:"memberId"`
	MemberName    string    `json:"memberName"`
	StudentID     string    `json:"studentId"`
	ActivityKind  string    `json:"activityKind"`
	ActivityID    uuid.UUID `json:"activityId"`
	ActivityTitle string    `json:"activityTitle"`
	ActivityDate  string    `json:"activityDate"`
	Status        string    `json:"status"`
	Comments      string    `json:"comments"`
	MarkedByName  string    `json:"markedByName"`
	MarkedAt      time.Time `json:"markedAt"`
}

// StatusCountsResponse breaks a record count down by status
type StatusCountsResponse struct {
	Present int `json:"present"`
	Absent  int `json:"absent"`
	Excused int `json:"excused"`
	Late    int `json:"late"`
}

// AttendanceSummaryResponse is the window-wide aggregate
type AttendanceSummaryResponse struct {
	TotalRecords   int                  `json:"totalRecords"`
	ByStatus       StatusCountsResponse `json:"byStatus"`
	AttendanceRate string               `json:"attendanceRate"`
}

// MemberAnalyticsResponse is one member's aggregate inside the window.
// Percentages are serialized as fixed two-decimal strings.
type MemberAnalyticsResponse struct {
	MemberID             uuid.UUID            `json:"memberId"`
	Name                 string               `json:"name"`
	StudentID            string               `json:"studentId"`
	Total                int                  `json:"total"`
	ByStatus             StatusCountsResponse `json:"byStatus"`
	AttendancePercentage string               `json:"attendancePercentage"`
}

// DailyAnalyticsResponse is the per-day aggregate
type DailyAnalyticsResponse struct {
	Date     string               `json:"date"`
	Total    int                  `json:"total"`
	ByStatus StatusCountsResponse `json:"byStatus"`
}

// AnalyticsResponse is the full analytics payload
type AnalyticsResponse struct {
	Summary         AttendanceSummaryResponse `json:"summary"`
	MemberAnalytics []MemberAnalyticsResponse `json:"memberAnalytics"`
	DailyAnalytics  []DailyAnalyticsResponse  `json:"dailyAnalytics"`
}

// MemberStatsResponse summarizes one member's filtered history
type MemberStatsResponse struct {
	Total                int                  `json:"total"`
	ByStatus             StatusCountsResponse `json:"byStatus"`
	AttendancePercentage string               `json:"attendancePercentage"`
}

// PaginationResponse describes the page window of a larger set
type PaginationResponse struct {
	Page  int   `json:"page"`
	Pages int   `json:"pages"`
	Total int64 `json:"total"`
}

// MemberHistoryResponse is the per-member attendance report
type MemberHistoryResponse struct {
	Member     *MemberResponse          `json:"member"`
	Records    []DetailedRecordResponse `json:"records"`
	Stats      MemberStatsResponse      `json:"stats"`
	Pagination PaginationResponse       `json:"pagination"`
}
