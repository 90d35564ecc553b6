package schedule

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/Beliver-247/sliit-choir-backend/internal/domain/member"
)

// CreateInput is the payload for creating a practice schedule
type CreateInput struct {
	Title       string
	Description string
	Date        time.Time
	StartTime   string
	EndTime     string
	LectureHall string
	IsRecurring bool
}

// UpdateInput carries optional schedule changes
type UpdateInput struct {
	Title       *string
	Description *string
	Date        *time.Time
	StartTime   *string
	EndTime     *string
	LectureHall *string
	IsRecurring *bool
}

// Service defines practice schedule operations
type Service interface {
	CreateSchedule(ctx context.Context, caller member.Caller, input CreateInput) (*Schedule, error)
	GetSchedule(ctx context.Context, id uuid.UUID) (*Schedule, error)
	ListSchedules(ctx context.Context, filter Filter) ([]Schedule, int64, error)
	UpdateSchedule(ctx context.Context, caller member.Caller, id uuid.UUID, input UpdateInput) (*Schedule, error)
	DeleteSchedule(ctx context.Context, caller member.Caller, id uuid.UUID) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) CreateSchedule(ctx context.Context, caller member.Caller, input CreateInput) (*Schedule, error) {
	if err := member.Authorize(caller, member.RoleModerator, member.RoleAdmin); err != nil {
		return nil, err
	}
	if input.Title == "" || input.Date.IsZero() || input.StartTime == "" || input.EndTime == "" {
		return nil, ErrInvalidInput
	}

	sched := &Schedule{
		ID:          uuid.New(),
		Title:       input.Title,
		Description: input.Description,
		Date:        input.Date,
		StartTime:   input.StartTime,
		EndTime:     input.EndTime,
		LectureHall: input.LectureHall,
		IsRecurring: input.IsRecurring,
		CreatedBy:   caller.ID,
	}
	if err := s.repo.Create(ctx, sched); err != nil {
		return nil, err
	}
	return sched, nil
}

func (s *service) GetSchedule(ctx context.Context, id uuid.UUID) (*Schedule, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *service) ListSchedules(ctx context.Context, filter Filter) ([]Schedule, int64, error) {
	return s.repo.FindAll(ctx, filter)
}

func (s *service) UpdateSchedule(ctx context.Context, caller member.Caller, id uuid.UUID, input UpdateInput) (*Schedule, error) {
	if err := member.Authorize(caller, member.RoleModerator, member.RoleAdmin); err != nil {
		return nil, err
	}

	sched, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		sched.Title = *input.Title
	}
	if input.Description != nil {
		sched.Description = *input.Description
	}
	if input.Date != nil {
		sched.Date = *input.Date
	}
	if input.StartTime != nil {
		sched.StartTime = *input.StartTime
	}
	if input.EndTime != nil {
		sched.EndTime = *input.EndTime
	}
	if input.LectureHall != nil {
		sched.LectureHall = *input.LectureHall
	}
	if input.IsRecurring != nil {
		sched.IsRecurring = *input.IsRecurring
	}

	if err := s.repo.Update(ctx, sched); err != nil {
		return nil, err
	}
	return sched, nil
}

func (s *service) DeleteSchedule(ctx context.Context, caller member.Caller, id uuid.UUID) error {
	if err := member.Authorize(caller, member.RoleModerator, member.RoleAdmin); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
