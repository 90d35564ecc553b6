package attendance

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Beliver-247/sliit-choir-backend/internal/domain/member"
	"github.com/Beliver-247/sliit-choir-backend/internal/infrastructure/persistence/postgres/connection"
)

var (
	ErrRecordNotFound = errors.New("attendance record not found")
)

// RangeFilter bounds a query by the activity's calendar date, inclusive on
// both ends. A nil bound leaves that side open.
type RangeFilter struct {
	StartDate *time.Time
	EndDate   *time.Time
}

// MemberRecord pairs a joined member with their attendance record, as
// returned by the per-event and per-schedule queries.
type MemberRecord struct {
	Member member.Member
	Record AttendanceRecord
}

// Repository defines attendance persistence operations
type Repository interface {
	// Upsert writes the record for its (member, activity) pair, replacing
	// status/comments/markedBy/markedAt on an existing row rather than
	// creating a duplicate. The returned record is the persisted row.
	Upsert(ctx context.Context, rec *AttendanceRecord) (*AttendanceRecord, error)

	FindByID(ctx context.Context, id uuid.UUID) (*AttendanceRecord, error)
	FindByEvent(ctx context.Context, eventID uuid.UUID) ([]MemberRecord, error)
	FindBySchedule(ctx context.Context, scheduleID uuid.UUID) ([]MemberRecord, error)

	// FindByMember returns the member's records joined with activity
	// title/date, newest mark first, filtered by activity date and paginated.
	FindByMember(ctx context.Context, memberID uuid.UUID, filter RangeFilter, offset, limit int) ([]DetailedRecord, int64, error)

	// FindDetailed returns all records joined with member identity and
	// activity title/date inside the date window, ordered by activity date
	// then marked-at for deterministic output.
	FindDetailed(ctx context.Context, filter RangeFilter) ([]DetailedRecord, error)

	Update(ctx context.Context, rec *AttendanceRecord) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db *connection.Database
}

func NewRepository(db *connection.Database) Repository {
	return &repository{db: db}
}

func (r *repository) Upsert(ctx context.Context, rec *AttendanceRecord) (*AttendanceRecord, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return r.upsertTx(tx, rec)
	})
	if err != nil {
		// A concurrent insert for the same pair trips the partial unique
		// index; the losing writer retries as an update of the winner's row.
		if isUniqueViolation(err) {
			err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
				return r.upsertTx(tx, rec)
			})
		}
		if err != nil {
			return nil, err
		}
	}
	return rec, nil
}

func (r *repository) upsertTx(tx *gorm.DB, rec *AttendanceRecord) error {
	var existing AttendanceRecord
	query := tx.Where("member_id = ?", rec.MemberID)
	switch ref := rec.Activity(); ref.Kind {
	case ActivityEvent:
		query = query.Where("event_id = ?", ref.ID)
	case ActivitySchedule:
		query = query.Where("schedule_id = ?", ref.ID)
	}

	err := query.First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return tx.Create(rec).Error
	}
	if err != nil {
		return err
	}

	existing.Status = rec.Status
	existing.Comments = rec.Comments
	existing.MarkedBy = rec.MarkedBy
	existing.MarkedAt = rec.MarkedAt
	if err := tx.Save(&existing).Error; err != nil {
		return err
	}
	*rec = existing
	return nil
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return err != nil && strings.Contains(err.Error(), "duplicate key")
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*AttendanceRecord, error) {
	var rec AttendanceRecord
	result := r.db.WithContext(ctx).First(&rec, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, result.Error
	}
	return &rec, nil
}

func (r *repository) FindByEvent(ctx context.Context, eventID uuid.UUID) ([]MemberRecord, error) {
	return r.findForActivity(ctx, "event_id", eventID)
}

func (r *repository) FindBySchedule(ctx context.Context, scheduleID uuid.UUID) ([]MemberRecord, error) {
	return r.findForActivity(ctx, "schedule_id", scheduleID)
}

func (r *repository) findForActivity(ctx context.Context, column string, activityID uuid.UUID) ([]MemberRecord, error) {
	var records []AttendanceRecord
	err := r.db.WithContext(ctx).
		Where(column+" = ?", activityID).
		Order("marked_at asc").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return []MemberRecord{}, nil
	}

	memberIDs := make([]uuid.UUID, 0, len(records))
	for _, rec := range records {
		memberIDs = append(memberIDs, rec.MemberID)
	}

	var members []member.Member
	if err := r.db.WithContext(ctx).Where("id IN ?", memberIDs).Find(&members).Error; err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]member.Member, len(members))
	for _, m := range members {
		byID[m.ID] = m
	}

	out := make([]MemberRecord, 0, len(records))
	for _, rec := range records {
		out = append(out, MemberRecord{Member: byID[rec.MemberID], Record: rec})
	}
	return out, nil
}

func (r *repository) FindDetailed(ctx context.Context, filter RangeFilter) ([]DetailedRecord, error) {
	query, args := detailedUnionQuery(filter, nil)
	query += " ORDER BY activity_date asc, marked_at asc, id asc"

	var rows []DetailedRecord
	if err := r.db.WithContext(ctx).Raw(query, args...).Scan(&rows).Error; err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []DetailedRecord{}
	}
	return rows, nil
}

func (r *repository) FindByMember(ctx context.Context, memberID uuid.UUID, filter RangeFilter, offset, limit int) ([]DetailedRecord, int64, error) {
	base, args := detailedUnionQuery(filter, &memberID)

	var total int64
	countQuery := "SELECT COUNT(*) FROM (" + base + ") sub"
	if err := r.db.WithContext(ctx).Raw(countQuery, args...).Scan(&total).Error; err != nil {
		return nil, 0, err
	}

	pageQuery := base + " ORDER BY marked_at desc, id asc LIMIT ? OFFSET ?"
	pageArgs := append(append([]interface{}{}, args...), limit, offset)

	var rows []DetailedRecord
	if err := r.db.WithContext(ctx).Raw(pageQuery, pageArgs...).Scan(&rows).Error; err != nil {
		return nil, 0, err
	}
	if rows == nil {
		rows = []DetailedRecord{}
	}
	return rows, total, nil
}

// detailedUnionQuery builds the event/schedule union with optional date
// bounds (inclusive, against the activity date) and member constraint.
func detailedUnionQuery(filter RangeFilter, memberID *uuid.UUID) (string, []interface{}) {
	buildSide := func(table, column string, kind ActivityKind) (string, []interface{}) {
		q := "SELECT ar.id, ar.member_id, m.first_name, m.last_name, m.student_id, " +
			"CAST(? AS text) AS activity_kind, a.id AS activity_id, a.title AS activity_title, a.date AS activity_date, " +
			"ar.status, ar.comments, ar.marked_by AS marked_by_id, " +
			"COALESCE(mb.first_name || ' ' || mb.last_name, '') AS marked_by_name, ar.marked_at " +
			"FROM attendance_records ar " +
			"JOIN members m ON m.id = ar.member_id " +
			"JOIN " + table + " a ON a.id = ar." + column + " " +
			"LEFT JOIN members mb ON mb.id = ar.marked_by " +
			"WHERE ar." + column + " IS NOT NULL"
		args := []interface{}{string(kind)}
		if memberID != nil {
			q += " AND ar.member_id = ?"
			args = append(args, *memberID)
		}
		// compare calendar dates so an activity on the boundary day is
		// included regardless of its time-of-day
		if filter.StartDate != nil {
			q += " AND CAST(a.date AS date) >= CAST(? AS date)"
			args = append(args, *filter.StartDate)
		}
		if filter.EndDate != nil {
			q += " AND CAST(a.date AS date) <= CAST(? AS date)"
			args = append(args, *filter.EndDate)
		}
		return q, args
	}

	eventSide, eventArgs := buildSide("events", "event_id", ActivityEvent)
	scheduleSide, scheduleArgs := buildSide("practice_schedules", "schedule_id", ActivitySchedule)

	query := eventSide + " UNION ALL " + scheduleSide
	args := append(eventArgs, scheduleArgs...)
	return query, args
}

func (r *repository) Update(ctx context.Context, rec *AttendanceRecord) error {
	result := r.db.WithContext(ctx).Save(rec)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&AttendanceRecord{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}
