package schedule

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Beliver-247/sliit-choir-backend/internal/domain/member"
)

type fakeRepo struct {
	schedules map[uuid.UUID]*Schedule
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{schedules: make(map[uuid.UUID]*Schedule)}
}

func (f *fakeRepo) Create(_ context.Context, s *Schedule) error {
	cp := *s
	f.schedules[s.ID] = &cp
	return nil
}

func (f *fakeRepo) FindByID(_ context.Context, id uuid.UUID) (*Schedule, error) {
	s, ok := f.schedules[id]
	if !ok {
		return nil, ErrScheduleNotFound
	}
	cp := *s
	return &cp, nil
}

func (f *fakeRepo) FindAll(_ context.Context, _ Filter) ([]Schedule, int64, error) {
	var out []Schedule
	for _, s := range f.schedules {
		out = append(out, *s)
	}
	return out, int64(len(out)), nil
}

func (f *fakeRepo) Update(_ context.Context, s *Schedule) error {
	if _, ok := f.schedules[s.ID]; !ok {
		return ErrScheduleNotFound
	}
	cp := *s
	f.schedules[s.ID] = &cp
	return nil
}

func (f *fakeRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.schedules[id]; !ok {
		return ErrScheduleNotFound
	}
	delete(f.schedules, id)
	return nil
}

var (
	staff  = member.Caller{ID: uuid.New(), Role: member.RoleModerator}
	singer = member.Caller{ID: uuid.New(), Role: member.RoleMember}
)

func validInput() CreateInput {
	return CreateInput{
		Title:       "Tuesday sectionals",
		Description: "Sopranos and altos",
		Date:        time.Date(2025, 3, 18, 0, 0, 0, 0, time.UTC),
		StartTime:   "17:00",
		EndTime:     "19:00",
		LectureHall: "B-401",
	}
}

func seedSchedule(t *testing.T, repo *fakeRepo) *Schedule {
	t.Helper()
	svc := NewService(repo)
	sched, err := svc.CreateSchedule(context.Background(), staff, validInput())
	require.NoError(t, err)
	return sched
}

func TestCreateSchedule(t *testing.T) {
	t.Run("member forbidden", func(t *testing.T) {
		svc := NewService(newFakeRepo())
		_, err := svc.CreateSchedule(context.Background(), singer, validInput())
		assert.ErrorIs(t, err, member.ErrForbidden)
	})

	t.Run("missing title", func(t *testing.T) {
		svc := NewService(newFakeRepo())
		input := validInput()
		input.Title = ""
		_, err := svc.CreateSchedule(context.Background(), staff, input)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("missing time window", func(t *testing.T) {
		svc := NewService(newFakeRepo())
		input := validInput()
		input.EndTime = ""
		_, err := svc.CreateSchedule(context.Background(), staff, input)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("records creator", func(t *testing.T) {
		repo := newFakeRepo()
		svc := NewService(repo)
		sched, err := svc.CreateSchedule(context.Background(), staff, validInput())
		require.NoError(t, err)
		assert.Equal(t, staff.ID, sched.CreatedBy)
		assert.False(t, sched.IsRecurring)

		stored, err := repo.FindByID(context.Background(), sched.ID)
		require.NoError(t, err)
		assert.Equal(t, "Tuesday sectionals", stored.Title)
	})
}

func TestUpdateSchedulePartial(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)
	sched := seedSchedule(t, repo)

	hall := "Auditorium"
	recurring := true
	updated, err := svc.UpdateSchedule(context.Background(), staff, sched.ID, UpdateInput{
		LectureHall: &hall,
		IsRecurring: &recurring,
	})
	require.NoError(t, err)
	assert.Equal(t, "Auditorium", updated.LectureHall)
	assert.True(t, updated.IsRecurring)
	assert.Equal(t, sched.Title, updated.Title)
	assert.Equal(t, sched.StartTime, updated.StartTime)

	t.Run("member forbidden", func(t *testing.T) {
		_, err := svc.UpdateSchedule(context.Background(), singer, sched.ID, UpdateInput{LectureHall: &hall})
		assert.ErrorIs(t, err, member.ErrForbidden)
	})

	t.Run("unknown schedule", func(t *testing.T) {
		_, err := svc.UpdateSchedule(context.Background(), staff, uuid.New(), UpdateInput{LectureHall: &hall})
		assert.ErrorIs(t, err, ErrScheduleNotFound)
	})
}

func TestDeleteSchedule(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)
	sched := seedSchedule(t, repo)

	assert.ErrorIs(t, svc.DeleteSchedule(context.Background(), singer, sched.ID), member.ErrForbidden)

	require.NoError(t, svc.DeleteSchedule(context.Background(), staff, sched.ID))
	_, err := svc.GetSchedule(context.Background(), sched.ID)
	assert.ErrorIs(t, err, ErrScheduleNotFound)
}
