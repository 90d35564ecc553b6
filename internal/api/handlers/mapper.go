package handlers

import (
	"fmt"

	"github.com/Beliver-247/sliit-choir-backend/internal/api/dto"
	"github.com/Beliver-247/sliit-choir-backend/internal/domain/attendance"
	"github.com/Beliver-247/sliit-choir-backend/internal/domain/donation"
	"github.com/Beliver-247/sliit-choir-backend/internal/domain/event"
	"github.com/Beliver-247/sliit-choir-backend/internal/domain/member"
	"github.com/Beliver-247/sliit-choir-backend/internal/domain/merchandise"
	"github.com/Beliver-247/sliit-choir-backend/internal/domain/order"
	"github.com/Beliver-247/sliit-choir-backend/internal/domain/resource"
	"github.com/Beliver-247/sliit-choir-backend/internal/domain/schedule"
)

// percent renders a rate with fixed two decimals, matching what the
// frontend parses
func percent(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

// Members

func MemberToResponse(m *member.Member) *dto.MemberResponse {
	if m == nil {
		return nil
	}
	return &dto.MemberResponse{
		ID:              m.ID,
		FirstName:       m.FirstName,
		LastName:        m.LastName,
		StudentID:       m.StudentID,
		Email:           m.Email,
		Role:            string(m.Role),
		Status:          string(m.Status),
		IsEmailVerified: m.IsEmailVerified,
		JoinedAt:        m.JoinedAt,
		CreatedAt:       m.CreatedAt,
	}
}

func MembersToResponse(members []member.Member) []*dto.MemberResponse {
	response := make([]*dto.MemberResponse, len(members))
	for i := range members {
		response[i] = MemberToResponse(&members[i])
	}
	return response
}

// Events and schedules

func EventToResponse(e *event.Event) *dto.EventResponse {
	if e == nil {
		return nil
	}
	return &dto.EventResponse{
		ID:          e.ID,
		Title:       e.Title,
		Description: e.Description,
		EventType:   string(e.EventType),
		Date:        e.Date,
		Time:        e.Time,
		Location:    e.Location,
		Capacity:    e.Capacity,
		ImageURL:    e.ImageURL,
		CreatedBy:   e.CreatedBy,
		CreatedAt:   e.CreatedAt,
	}
}

func EventsToResponse(events []event.Event) []*dto.EventResponse {
	response := make([]*dto.EventResponse, len(events))
	for i := range events {
		response[i] = EventToResponse(&events[i])
	}
	return response
}

func ScheduleToResponse(s *schedule.Schedule) *dto.ScheduleResponse {
	if s == nil {
		return nil
	}
	return &dto.ScheduleResponse{
		ID:          s.ID,
		Title:       s.Title,
		Description: s.Description,
		Date:        s.Date,
		StartTime:   s.StartTime,
		EndTime:     s.EndTime,
		LectureHall: s.LectureHall,
		IsRecurring: s.IsRecurring,
		CreatedBy:   s.CreatedBy,
		CreatedAt:   s.CreatedAt,
	}
}

func SchedulesToResponse(schedules []schedule.Schedule) []*dto.ScheduleResponse {
	response := make([]*dto.ScheduleResponse, len(schedules))
	for i := range schedules {
		response[i] = ScheduleToResponse(&schedules[i])
	}
	return response
}

// Attendance

func RecordToResponse(r *attendance.AttendanceRecord) *dto.AttendanceRecordResponse {
	if r == nil {
		return nil
	}
	return &dto.AttendanceRecordResponse{
		ID:         r.ID,
		MemberID:   r.MemberID,
		EventID:    r.EventID,
		ScheduleID: r.ScheduleID,
		Status:     string(r.Status),
		Comments:   r.Comments,
		MarkedBy:   r.MarkedBy,
		MarkedAt:   r.MarkedAt,
	}
}

func MemberRecordsToResponse(records []attendance.MemberRecord) []*dto.ActivityAttendanceResponse {
	response := make([]*dto.ActivityAttendanceResponse, len(records))
	for i := range records {
		response[i] = &dto.ActivityAttendanceResponse{
			Member: MemberToResponse(&records[i].Member),
			Record: RecordToResponse(&records[i].Record),
		}
	}
	return response
}

func DetailedRecordToResponse(d *attendance.DetailedRecord) dto.DetailedRecordResponse {
	return dto.DetailedRecordResponse{
		ID:            d.ID,
		MemberID:      d.MemberID,
		MemberName:    d.MemberName(),
		StudentID:     d.StudentID,
		ActivityKind:  string(d.ActivityKind),
		ActivityID:    d.ActivityID,
		ActivityTitle: d.ActivityTitle,
		ActivityDate:  d.ActivityDate.Format("2006-01-02"),
		Status:        string(d.Status),
		Comments:      d.Comments,
		MarkedByName:  d.MarkedByName,
		MarkedAt:      d.MarkedAt,
	}
}

func DetailedRecordsToResponse(records []attendance.DetailedRecord) []dto.DetailedRecordResponse {
	response := make([]dto.DetailedRecordResponse, len(records))
	for i := range records {
		response[i] = DetailedRecordToResponse(&records[i])
	}
	return response
}

func statusCountsToResponse(c attendance.StatusCounts) dto.StatusCountsResponse {
	return dto.StatusCountsResponse{
		Present: c.Present,
		Absent:  c.Absent,
		Excused: c.Excused,
		Late:    c.Late,
	}
}

func SnapshotToResponse(s *attendance.Snapshot) *dto.AnalyticsResponse {
	if s == nil {
		return nil
	}
	resp := &dto.AnalyticsResponse{
		Summary: dto.AttendanceSummaryResponse{
			TotalRecords:   s.Summary.TotalRecords,
			ByStatus:       statusCountsToResponse(s.Summary.ByStatus),
			AttendanceRate: percent(s.Summary.AttendanceRate),
		},
		MemberAnalytics: make([]dto.MemberAnalyticsResponse, len(s.MemberAnalytics)),
		DailyAnalytics:  make([]dto.DailyAnalyticsResponse, len(s.DailyAnalytics)),
	}
	for i, ma := range s.MemberAnalytics {
		resp.MemberAnalytics[i] = dto.MemberAnalyticsResponse{
			MemberID:             ma.MemberID,
			Name:                 ma.Name,
			StudentID:            ma.StudentID,
			Total:                ma.Total,
			ByStatus:             statusCountsToResponse(ma.ByStatus),
			AttendancePercentage: percent(ma.AttendancePercentage),
		}
	}
	for i, da := range s.DailyAnalytics {
		resp.DailyAnalytics[i] = dto.DailyAnalyticsResponse{
			Date:     da.Date,
			Total:    da.Total,
			ByStatus: statusCountsToResponse(da.ByStatus),
		}
	}
	return resp
}

func HistoryToResponse(h *attendance.MemberHistory) *dto.MemberHistoryResponse {
	if h == nil {
		return nil
	}
	return &dto.MemberHistoryResponse{
		Member:  MemberToResponse(h.Member),
		Records: DetailedRecordsToResponse(h.Records),
		Stats: dto.MemberStatsResponse{
			Total:                h.Stats.Total,
			ByStatus:             statusCountsToResponse(h.Stats.ByStatus),
			AttendancePercentage: percent(h.Stats.AttendancePercentage),
		},
		Pagination: dto.PaginationResponse{
			Page:  h.Pagination.Page,
			Pages: h.Pagination.Pages,
			Total: h.Pagination.Total,
		},
	}
}

// Donations

func DonationToResponse(d *donation.Donation) *dto.DonationResponse {
	if d == nil {
		return nil
	}
	return &dto.DonationResponse{
		ID:         d.ID,
		MemberID:   d.MemberID,
		DonorName:  d.DonorName,
		DonorEmail: d.DonorEmail,
		Amount:     d.Amount,
		Currency:   d.Currency,
		Message:    d.Message,
		Status:     string(d.Status),
		CreatedAt:  d.CreatedAt,
	}
}

func DonationsToResponse(donations []donation.Donation) []*dto.DonationResponse {
	response := make([]*dto.DonationResponse, len(donations))
	for i := range donations {
		response[i] = DonationToResponse(&donations[i])
	}
	return response
}

func DonationStatsToResponse(s *donation.StatsSummary) *dto.DonationStatsResponse {
	if s == nil {
		return nil
	}
	resp := &dto.DonationStatsResponse{
		TotalRaised:    s.TotalRaised,
		DonationCount:  s.DonationCount,
		AmountByStatus: make(map[string]float64, len(s.AmountByStatus)),
		CountByStatus:  make(map[string]int64, len(s.CountByStatus)),
	}
	for status, sum := range s.AmountByStatus {
		resp.AmountByStatus[string(status)] = sum
	}
	for status, count := range s.CountByStatus {
		resp.CountByStatus[string(status)] = count
	}
	return resp
}

// Merchandise and orders

func ItemToResponse(item *merchandise.Item) *dto.MerchandiseResponse {
	if item == nil {
		return nil
	}
	return &dto.MerchandiseResponse{
		ID:          item.ID,
		Name:        item.Name,
		Description: item.Description,
		Price:       item.Price,
		Sizes:       merchandise.DecodeSizes(item),
		Stock:       item.Stock,
		Category:    string(item.Category),
		ImageURL:    item.ImageURL,
		CreatedAt:   item.CreatedAt,
	}
}

func ItemsToResponse(items []merchandise.Item) []*dto.MerchandiseResponse {
	response := make([]*dto.MerchandiseResponse, len(items))
	for i := range items {
		response[i] = ItemToResponse(&items[i])
	}
	return response
}

func OrderToResponse(o *order.Order) *dto.OrderResponse {
	if o == nil {
		return nil
	}
	items := make([]dto.OrderItemResponse, len(o.Items))
	for i, line := range o.Items {
		items[i] = dto.OrderItemResponse{
			MerchandiseID: line.MerchandiseID,
			Name:          line.Name,
			Size:          line.Size,
			Quantity:      line.Quantity,
			UnitPrice:     line.UnitPrice,
			Subtotal:      line.Subtotal(),
		}
	}
	return &dto.OrderResponse{
		ID:            o.ID,
		MemberID:      o.MemberID,
		Items:         items,
		TotalAmount:   o.TotalAmount,
		ReceiptURL:    o.ReceiptURL,
		Status:        string(o.Status),
		DeclineReason: o.DeclineReason,
		CreatedAt:     o.CreatedAt,
	}
}

func OrdersToResponse(orders []order.Order) []*dto.OrderResponse {
	response := make([]*dto.OrderResponse, len(orders))
	for i := range orders {
		response[i] = OrderToResponse(&orders[i])
	}
	return response
}

func OrderStatsToResponse(s *order.StatsSummary) *dto.OrderStatsResponse {
	if s == nil {
		return nil
	}
	resp := &dto.OrderStatsResponse{
		TotalRevenue:  s.TotalRevenue,
		OrderCount:    s.OrderCount,
		CountByStatus: make(map[string]int64, len(s.CountByStatus)),
	}
	for status, count := range s.CountByStatus {
		resp.CountByStatus[string(status)] = count
	}
	return resp
}

// Resources

func ResourceToResponse(r *resource.Resource) *dto.ResourceResponse {
	if r == nil {
		return nil
	}
	return &dto.ResourceResponse{
		ID:           r.ID,
		SongTitle:    r.SongTitle,
		Description:  r.Description,
		ResourceType: string(r.ResourceType),
		FileURL:      r.FileURL,
		FileType:     r.FileType,
		FileSize:     r.FileSize,
		UploadedBy:   r.UploadedBy,
		CreatedAt:    r.CreatedAt,
	}
}

func ResourcesToResponse(resources []resource.Resource) []*dto.ResourceResponse {
	response := make([]*dto.ResourceResponse, len(resources))
	for i := range resources {
		response[i] = ResourceToResponse(&resources[i])
	}
	return response
}

func RequestToResponse(r *resource.Request) *dto.ResourceRequestResponse {
	if r == nil {
		return nil
	}
	return &dto.ResourceRequestResponse{
		ID:           r.ID,
		MemberID:     r.MemberID,
		SongTitle:    r.SongTitle,
		Description:  r.Description,
		ResourceType: string(r.ResourceType),
		FileURL:      r.FileURL,
		Status:       string(r.Status),
		RejectReason: r.RejectReason,
		CreatedAt:    r.CreatedAt,
	}
}

func RequestsToResponse(requests []resource.Request) []*dto.ResourceRequestResponse {
	response := make([]*dto.ResourceRequestResponse, len(requests))
	for i := range requests {
		response[i] = RequestToResponse(&requests[i])
	}
	return response
}
