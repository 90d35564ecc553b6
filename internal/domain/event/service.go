package event

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/Beliver-247/sliit-choir-backend/internal/domain/member"
)

// ErrEventFull is returned when a capacity-limited event has no seats left
var ErrEventFull = errors.New("event has reached capacity")

// CreateInput is the payload for creating an event
type CreateInput struct {
	Title       string
	Description string
	EventType   EventType
	Date        time.Time
	Time        string
	Location    string
	Capacity    int
	ImageURL    string
}

// UpdateInput carries optional event changes
type UpdateInput struct {
	Title       *string
	Description *string
	EventType   *EventType
	Date        *time.Time
	Time        *string
	Location    *string
	Capacity    *int
	ImageURL    *string
}

// Service defines event operations
type Service interface {
	CreateEvent(ctx context.Context, caller member.Caller, input CreateInput) (*Event, error)
	GetEvent(ctx context.Context, id uuid.UUID) (*Event, error)
	ListEvents(ctx context.Context, filter Filter) ([]Event, int64, error)
	UpdateEvent(ctx context.Context, caller member.Caller, id uuid.UUID, input UpdateInput) (*Event, error)
	DeleteEvent(ctx context.Context, caller member.Caller, id uuid.UUID) error
	RegisterMember(ctx context.Context, caller member.Caller, eventID uuid.UUID) error
	UnregisterMember(ctx context.Context, caller member.Caller, eventID uuid.UUID) error
	ListRegistrations(ctx context.Context, caller member.Caller, eventID uuid.UUID) ([]Registration, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) CreateEvent(ctx context.Context, caller member.Caller, input CreateInput) (*Event, error) {
	if err := member.Authorize(caller, member.RoleModerator, member.RoleAdmin); err != nil {
		return nil, err
	}
	if input.Title == "" || input.Date.IsZero() {
		return nil, ErrInvalidInput
	}
	if input.EventType == "" {
		input.EventType = TypeOther
	}
	if !input.EventType.IsValid() {
		return nil, ErrInvalidInput
	}

	e := &Event{
		ID:          uuid.New(),
		Title:       input.Title,
		Description: input.Description,
		EventType:   input.EventType,
		Date:        input.Date,
		Time:        input.Time,
		Location:    input.Location,
		Capacity:    input.Capacity,
		ImageURL:    input.ImageURL,
		CreatedBy:   caller.ID,
	}
	if err := s.repo.Create(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *service) GetEvent(ctx context.Context, id uuid.UUID) (*Event, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *service) ListEvents(ctx context.Context, filter Filter) ([]Event, int64, error) {
	return s.repo.FindAll(ctx, filter)
}

func (s *service) UpdateEvent(ctx context.Context, caller member.Caller, id uuid.UUID, input UpdateInput) (*Event, error) {
	if err := member.Authorize(caller, member.RoleModerator, member.RoleAdmin); err != nil {
		return nil, err
	}

	e, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		e.Title = *input.Title
	}
	if input.Description != nil {
		e.Description = *input.Description
	}
	if input.EventType != nil {
		if !input.EventType.IsValid() {
			return nil, ErrInvalidInput
		}
		e.EventType = *input.EventType
	}
	if input.Date != nil {
		e.Date = *input.Date
	}
	if input.Time != nil {
		e.Time = *input.Time
	}
	if input.Location != nil {
		e.Location = *input.Location
	}
	if input.Capacity != nil {
		e.Capacity = *input.Capacity
	}
	if input.ImageURL != nil {
		e.ImageURL = *input.ImageURL
	}

	if err := s.repo.Update(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *service) DeleteEvent(ctx context.Context, caller member.Caller, id uuid.UUID) error {
	if err := member.Authorize(caller, member.RoleModerator, member.RoleAdmin); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *service) RegisterMember(ctx context.Context, caller member.Caller, eventID uuid.UUID) error {
	e, err := s.repo.FindByID(ctx, eventID)
	if err != nil {
		return err
	}

	if e.Capacity > 0 {
		count, err := s.repo.CountRegistrations(ctx, eventID)
		if err != nil {
			return err
		}
		if count >= int64(e.Capacity) {
			return ErrEventFull
		}
	}

	return s.repo.Register(ctx, eventID, caller.ID)
}

func (s *service) UnregisterMember(ctx context.Context, caller member.Caller, eventID uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, eventID); err != nil {
		return err
	}
	return s.repo.Unregister(ctx, eventID, caller.ID)
}

func (s *service) ListRegistrations(ctx context.Context, caller member.Caller, eventID uuid.UUID) ([]Registration, error) {
	if err := member.Authorize(caller, member.RoleModerator, member.RoleAdmin); err != nil {
		return nil, err
	}
	if _, err := s.repo.FindByID(ctx, eventID); err != nil {
		return nil, err
	}
	return s.repo.Registrations(ctx, eventID)
}
