package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Beliver-247/sliit-choir-backend/internal/api/dto"
	"github.com/Beliver-247/sliit-choir-backend/internal/api/middleware"
	"github.com/Beliver-247/sliit-choir-backend/internal/domain/attendance"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type AttendanceHandler struct {
	service attendance.Service
}

func NewAttendanceHandler(service attendance.Service) *AttendanceHandler {
	return &AttendanceHandler{service: service}
}

func rangeFilterFromQuery(c *gin.Context) (attendance.RangeFilter, bool) {
	var filter attendance.RangeFilter
	start, err := parseDate(c, "startDate")
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid startDate, expected YYYY-MM-DD")
		return filter, false
	}
	end, err := parseDate(c, "endDate")
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid endDate, expected YYYY-MM-DD")
		return filter, false
	}
	filter.StartDate = start
	filter.EndDate = end
	return filter, true
}

// MarkAttendance godoc
// @Summary Mark attendance for a member
// @Description Records or updates a member's attendance for an event or a practice schedule. Exactly one of eventId and scheduleId must be set.
// @Tags attendance
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.MarkAttendanceRequest true "Attendance details"
// @Success 200 {object} dto.AttendanceRecordResponse
// @Failure 400 {object} map[string]string "Validation failure"
// @Failure 403 {object} map[string]string "Insufficient role"
// @Router /api/attendance/mark [post]
func (h *AttendanceHandler) MarkAttendance(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}

	var req dto.MarkAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	activity, err := attendance.ParseActivityRef(req.EventID, req.ScheduleID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	record, err := h.service.MarkAttendance(c.Request.Context(), caller, attendance.MarkInput{
		MemberID: req.MemberID,
		Activity: activity,
		Status:   attendance.Status(req.Status),
		Comments: req.Comments,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	middleware.CountAttendanceMark(string(record.Status))
	respondOK(c, RecordToResponse(record))
}

// ListAttendance godoc
// @Summary List attendance records across all activities
// @Tags attendance
// @Produce json
// @Security BearerAuth
// @Param startDate query string false "Start of date range (YYYY-MM-DD)"
// @Param endDate query string false "End of date range (YYYY-MM-DD)"
// @Success 200 {array} dto.DetailedRecordResponse
// @Router /api/attendance/list [get]
func (h *AttendanceHandler) ListAttendance(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}
	filter, ok := rangeFilterFromQuery(c)
	if !ok {
		return
	}

	records, err := h.service.ListAttendance(c.Request.Context(), caller, filter)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, DetailedRecordsToResponse(records))
}

// GetEventAttendance godoc
// @Summary Get attendance for an event
// @Tags attendance
// @Produce json
// @Security BearerAuth
// @Param eventId path string true "Event ID"
// @Success 200 {array} dto.ActivityAttendanceResponse
// @Router /api/attendance/event/{eventId} [get]
func (h *AttendanceHandler) GetEventAttendance(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}
	eventID, ok := parseID(c, "eventId")
	if !ok {
		return
	}

	records, err := h.service.GetEventAttendance(c.Request.Context(), caller, eventID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, MemberRecordsToResponse(records))
}

// GetScheduleAttendance godoc
// @Summary Get attendance for a practice schedule
// @Tags attendance
// @Produce json
// @Security BearerAuth
// @Param scheduleId path string true "Schedule ID"
// @Success 200 {array} dto.ActivityAttendanceResponse
// @Router /api/attendance/schedule/{scheduleId} [get]
func (h *AttendanceHandler) GetScheduleAttendance(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}
	scheduleID, ok := parseID(c, "scheduleId")
	if !ok {
		return
	}

	records, err := h.service.GetScheduleAttendance(c.Request.Context(), caller, scheduleID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, MemberRecordsToResponse(records))
}

// GetMemberHistory godoc
// @Summary Get a member's attendance history
// @Description Paginated record list with aggregate stats over the whole filtered range. Members can view their own history; staff can view anyone's.
// @Tags attendance
// @Produce json
// @Security BearerAuth
// @Param memberId path string true "Member ID"
// @Param startDate query string false "Start of date range (YYYY-MM-DD)"
// @Param endDate query string false "End of date range (YYYY-MM-DD)"
// @Param page query int false "Page number (1-indexed)"
// @Param pageSize query int false "Records per page"
// @Success 200 {object} dto.MemberHistoryResponse
// @Router /api/attendance/member/{memberId} [get]
func (h *AttendanceHandler) GetMemberHistory(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}
	memberID, ok := parseID(c, "memberId")
	if !ok {
		return
	}
	filter, ok := rangeFilterFromQuery(c)
	if !ok {
		return
	}
	page, pageSize := parsePage(c)

	history, err := h.service.GetMemberHistory(c.Request.Context(), caller, memberID, filter, page, pageSize)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, HistoryToResponse(history))
}

// UpdateAttendance godoc
// @Summary Update an attendance record
// @Tags attendance
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Record ID"
// @Param request body dto.UpdateAttendanceRequest true "Changes"
// @Success 200 {object} dto.AttendanceRecordResponse
// @Router /api/attendance/{id} [put]
func (h *AttendanceHandler) UpdateAttendance(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	input := attendance.UpdateInput{Comments: req.Comments}
	if req.Status != nil {
		status := attendance.Status(*req.Status)
		input.Status = &status
	}

	record, err := h.service.UpdateAttendance(c.Request.Context(), caller, id, input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, RecordToResponse(record))
}

// DeleteAttendance godoc
// @Summary Delete an attendance record
// @Tags attendance
// @Produce json
// @Security BearerAuth
// @Param id path string true "Record ID"
// @Success 200 {object} map[string]string
// @Router /api/attendance/{id} [delete]
func (h *AttendanceHandler) DeleteAttendance(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.service.DeleteAttendance(c.Request.Context(), caller, id); err != nil {
		respondServiceError(c, err)
		return
	}
	respondMessage(c, "attendance record deleted")
}

// GetAnalytics godoc
// @Summary Attendance analytics over a date range
// @Tags attendance
// @Produce json
// @Security BearerAuth
// @Param startDate query string false "Start of date range (YYYY-MM-DD)"
// @Param endDate query string false "End of date range (YYYY-MM-DD)"
// @Success 200 {object} dto.AnalyticsResponse
// @Router /api/attendance/analytics [get]
func (h *AttendanceHandler) GetAnalytics(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}
	filter, ok := rangeFilterFromQuery(c)
	if !ok {
		return
	}

	snapshot, err := h.service.GetAnalytics(c.Request.Context(), caller, filter)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, SnapshotToResponse(snapshot))
}

// ExportExcel godoc
// @Summary Export attendance records as an Excel workbook
// @Tags attendance
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Param startDate query string false "Start of date range (YYYY-MM-DD)"
// @Param endDate query string false "End of date range (YYYY-MM-DD)"
// @Success 200 {file} binary
// @Router /api/attendance/export/excel [get]
func (h *AttendanceHandler) ExportExcel(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}
	filter, ok := rangeFilterFromQuery(c)
	if !ok {
		return
	}

	result, err := h.service.ExportExcel(c.Request.Context(), caller, filter)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", result.Filename))
	c.Data(http.StatusOK, xlsxContentType, result.Content.Bytes())
}
