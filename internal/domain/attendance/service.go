package attendance

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Beliver-247/sliit-choir-backend/internal/domain/event"
	"github.com/Beliver-247/sliit-choir-backend/internal/domain/member"
	"github.com/Beliver-247/sliit-choir-backend/internal/domain/schedule"
	"github.com/Beliver-247/sliit-choir-backend/internal/infrastructure/cache"
	"github.com/Beliver-247/sliit-choir-backend/pkg/logger"
)

const (
	// DefaultPageSize applies when a history query does not set a limit
	DefaultPageSize = 10

	analyticsCacheTTL = 5 * time.Minute
)

// MemberDirectory resolves member references; satisfied by member.Repository
type MemberDirectory interface {
	FindByID(ctx context.Context, id uuid.UUID) (*member.Member, error)
}

// EventDirectory resolves event references; satisfied by event.Repository
type EventDirectory interface {
	FindByID(ctx context.Context, id uuid.UUID) (*event.Event, error)
}

// ScheduleDirectory resolves schedule references; satisfied by schedule.Repository
type ScheduleDirectory interface {
	FindByID(ctx context.Context, id uuid.UUID) (*schedule.Schedule, error)
}

// MarkInput is the payload for marking attendance
type MarkInput struct {
	MemberID uuid.UUID
	Activity ActivityRef
	Status   Status
	Comments string
}

// UpdateInput carries partial changes to an existing record
type UpdateInput struct {
	Status   *Status
	Comments *string
}

// Pagination describes a page of a larger result set. Page is 1-indexed.
type Pagination struct {
	Page  int   `json:"page"`
	Pages int   `json:"pages"`
	Total int64 `json:"total"`
}

// MemberHistory is the per-member report: paginated records plus stats
type MemberHistory struct {
	Member     *member.Member
	Records    []DetailedRecord
	Stats      MemberStats
	Pagination Pagination
}

// ExportResult is a serialized workbook ready for download
type ExportResult struct {
	Filename string
	Content  *bytes.Buffer
}

// Service defines the attendance marking, query, analytics and export
// operations. Every method takes the authenticated caller explicitly.
type Service interface {
	MarkAttendance(ctx context.Context, caller member.Caller, input MarkInput) (*AttendanceRecord, error)
	GetEventAttendance(ctx context.Context, caller member.Caller, eventID uuid.UUID) ([]MemberRecord, error)
	GetScheduleAttendance(ctx context.Context, caller member.Caller, scheduleID uuid.UUID) ([]MemberRecord, error)
	GetMemberHistory(ctx context.Context, caller member.Caller, memberID uuid.UUID, filter RangeFilter, page, pageSize int) (*MemberHistory, error)
	ListAttendance(ctx context.Context, caller member.Caller, filter RangeFilter) ([]DetailedRecord, error)
	UpdateAttendance(ctx context.Context, caller member.Caller, id uuid.UUID, input UpdateInput) (*AttendanceRecord, error)
	DeleteAttendance(ctx context.Context, caller member.Caller, id uuid.UUID) error
	GetAnalytics(ctx context.Context, caller member.Caller, filter RangeFilter) (*Snapshot, error)
	ExportExcel(ctx context.Context, caller member.Caller, filter RangeFilter) (*ExportResult, error)
}

type service struct {
	repo      Repository
	members   MemberDirectory
	events    EventDirectory
	schedules ScheduleDirectory
	redis     *cache.RedisClient
	logger    *logger.Logger
	now       func() time.Time
}

func NewService(repo Repository, members MemberDirectory, events EventDirectory, schedules ScheduleDirectory, redis *cache.RedisClient, log *logger.Logger) Service {
	return &service{
		repo:      repo,
		members:   members,
		events:    events,
		schedules: schedules,
		redis:     redis,
		logger:    log,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (s *service) MarkAttendance(ctx context.Context, caller member.Caller, input MarkInput) (*AttendanceRecord, error) {
	if err := member.Authorize(caller, member.RoleModerator, member.RoleAdmin); err != nil {
		return nil, err
	}
	if !input.Status.IsValid() {
		return nil, &ValidationError{Field: "status", Message: "status must be present, absent, excused or late"}
	}

	if _, err := s.members.FindByID(ctx, input.MemberID); err != nil {
		return nil, err
	}
	if err := s.resolveActivity(ctx, input.Activity); err != nil {
		return nil, err
	}

	rec := &AttendanceRecord{
		ID:       uuid.New(),
		MemberID: input.MemberID,
		Status:   input.Status,
		Comments: input.Comments,
		MarkedBy: caller.ID,
		MarkedAt: s.now(),
	}
	rec.SetActivity(input.Activity)

	persisted, err := s.repo.Upsert(ctx, rec)
	if err != nil {
		return nil, err
	}

	s.invalidateAnalytics(ctx)
	return persisted, nil
}

// resolveActivity confirms the referenced event or schedule exists
func (s *service) resolveActivity(ctx context.Context, ref ActivityRef) error {
	switch ref.Kind {
	case ActivityEvent:
		_, err := s.events.FindByID(ctx, ref.ID)
		return err
	case ActivitySchedule:
		_, err := s.schedules.FindByID(ctx, ref.ID)
		return err
	default:
		return &ValidationError{Field: "eventId", Message: "either eventId or scheduleId is required"}
	}
}

func (s *service) GetEventAttendance(ctx context.Context, caller member.Caller, eventID uuid.UUID) ([]MemberRecord, error) {
	if _, err := s.events.FindByID(ctx, eventID); err != nil {
		return nil, err
	}
	return s.repo.FindByEvent(ctx, eventID)
}

func (s *service) GetScheduleAttendance(ctx context.Context, caller member.Caller, scheduleID uuid.UUID) ([]MemberRecord, error) {
	if _, err := s.schedules.FindByID(ctx, scheduleID); err != nil {
		return nil, err
	}
	return s.repo.FindBySchedule(ctx, scheduleID)
}

func (s *service) GetMemberHistory(ctx context.Context, caller member.Caller, memberID uuid.UUID, filter RangeFilter, page, pageSize int) (*MemberHistory, error) {
	// Regular members may only read their own history
	if err := member.AuthorizeSelfOr(caller, memberID, member.RoleModerator, member.RoleAdmin); err != nil {
		return nil, err
	}

	subject, err := s.members.FindByID(ctx, memberID)
	if err != nil {
		return nil, err
	}

	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}

	records, total, err := s.repo.FindByMember(ctx, memberID, filter, (page-1)*pageSize, pageSize)
	if err != nil {
		return nil, err
	}

	// Stats cover the whole filtered history, not just the current page
	allRecords := records
	if total > int64(len(records)) {
		allRecords, _, err = s.repo.FindByMember(ctx, memberID, filter, 0, int(total))
		if err != nil {
			return nil, err
		}
	}

	pages := int((total + int64(pageSize) - 1) / int64(pageSize))

	return &MemberHistory{
		Member:  subject,
		Records: records,
		Stats:   ComputeMemberStats(allRecords),
		Pagination: Pagination{
			Page:  page,
			Pages: pages,
			Total: total,
		},
	}, nil
}

func (s *service) ListAttendance(ctx context.Context, caller member.Caller, filter RangeFilter) ([]DetailedRecord, error) {
	if err := member.Authorize(caller, member.RoleModerator, member.RoleAdmin); err != nil {
		return nil, err
	}
	return s.repo.FindDetailed(ctx, filter)
}

func (s *service) UpdateAttendance(ctx context.Context, caller member.Caller, id uuid.UUID, input UpdateInput) (*AttendanceRecord, error) {
	if err := member.Authorize(caller, member.RoleModerator, member.RoleAdmin); err != nil {
		return nil, err
	}

	rec, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Status != nil {
		if !input.Status.IsValid() {
			return nil, &ValidationError{Field: "status", Message: "status must be present, absent, excused or late"}
		}
		rec.Status = *input.Status
	}
	if input.Comments != nil {
		rec.Comments = *input.Comments
	}
	rec.MarkedBy = caller.ID
	rec.MarkedAt = s.now()

	if err := s.repo.Update(ctx, rec); err != nil {
		return nil, err
	}

	s.invalidateAnalytics(ctx)
	return rec, nil
}

func (s *service) DeleteAttendance(ctx context.Context, caller member.Caller, id uuid.UUID) error {
	if err := member.Authorize(caller, member.RoleAdmin); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidateAnalytics(ctx)
	return nil
}

func (s *service) GetAnalytics(ctx context.Context, caller member.Caller, filter RangeFilter) (*Snapshot, error) {
	if err := member.Authorize(caller, member.RoleModerator, member.RoleAdmin); err != nil {
		return nil, err
	}

	cacheKey := analyticsCacheKey(filter)
	if s.redis != nil {
		var cached Snapshot
		if err := s.redis.Get(ctx, cacheKey, &cached); err == nil {
			return &cached, nil
		} else if !errors.Is(err, cache.ErrCacheNotFound) {
			s.logger.Warn("analytics cache read failed", zap.Error(err))
		}
	}

	records, err := s.repo.FindDetailed(ctx, filter)
	if err != nil {
		return nil, err
	}
	snap := ComputeSnapshot(records)

	if s.redis != nil {
		if err := s.redis.Set(ctx, cacheKey, snap, analyticsCacheTTL); err != nil {
			s.logger.Warn("analytics cache write failed", zap.Error(err))
		}
	}
	return snap, nil
}

func (s *service) ExportExcel(ctx context.Context, caller member.Caller, filter RangeFilter) (*ExportResult, error) {
	if err := member.Authorize(caller, member.RoleModerator, member.RoleAdmin); err != nil {
		return nil, err
	}

	records, err := s.repo.FindDetailed(ctx, filter)
	if err != nil {
		return nil, err
	}

	file, err := BuildWorkbook(records)
	if err != nil {
		return nil, err
	}
	buf, err := WriteWorkbook(file)
	if err != nil {
		return nil, err
	}

	return &ExportResult{
		Filename: fmt.Sprintf("attendance-export-%s.xlsx", s.now().Format("2006-01-02")),
		Content:  buf,
	}, nil
}

func analyticsCacheKey(filter RangeFilter) string {
	start, end := "open", "open"
	if filter.StartDate != nil {
		start = filter.StartDate.Format("2006-01-02")
	}
	if filter.EndDate != nil {
		end = filter.EndDate.Format("2006-01-02")
	}
	return fmt.Sprintf("analytics:%s:%s", start, end)
}

func (s *service) invalidateAnalytics(ctx context.Context) {
	if s.redis == nil {
		return
	}
	if err := s.redis.DeletePattern(ctx, "analytics:*"); err != nil {
		s.logger.Warn("failed to invalidate analytics cache", zap.Error(err))
	}
}
