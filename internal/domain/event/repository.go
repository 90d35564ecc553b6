package event

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Beliver-247/sliit-choir-backend/internal/infrastructure/persistence/postgres/connection"
)

var (
	ErrEventNotFound     = errors.New("event not found")
	ErrInvalidInput      = errors.New("invalid input")
	ErrAlreadyRegistered = errors.New("member is already registered for this event")
	ErrNotRegistered     = errors.New("member is not registered for this event")
)

// Filter defines the filtering options for listing events
type Filter struct {
	EventType *EventType
	StartDate *time.Time
	EndDate   *time.Time
	Upcoming  bool
	Page      int
	PageSize  int
}

// Repository defines event persistence operations
type Repository interface {
	Create(ctx context.Context, e *Event) error
	FindByID(ctx context.Context, id uuid.UUID) (*Event, error)
	FindAll(ctx context.Context, filter Filter) ([]Event, int64, error)
	Update(ctx context.Context, e *Event) error
	Delete(ctx context.Context, id uuid.UUID) error

	Register(ctx context.Context, eventID, memberID uuid.UUID) error
	Unregister(ctx context.Context, eventID, memberID uuid.UUID) error
	Registrations(ctx context.Context, eventID uuid.UUID) ([]Registration, error)
	CountRegistrations(ctx context.Context, eventID uuid.UUID) (int64, error)
}

type repository struct {
	db *connection.Database
}

func NewRepository(db *connection.Database) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, e *Event) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*Event, error) {
	var e Event
	result := r.db.WithContext(ctx).First(&e, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, result.Error
	}
	return &e, nil
}

func (r *repository) FindAll(ctx context.Context, filter Filter) ([]Event, int64, error) {
	var events []Event
	var total int64
	query := r.db.WithContext(ctx).Model(&Event{})

	if filter.EventType != nil {
		query = query.Where("event_type = ?", *filter.EventType)
	}
	if filter.StartDate != nil {
		query = query.Where("date >= ?", *filter.StartDate)
	}
	if filter.EndDate != nil {
		query = query.Where("date <= ?", *filter.EndDate)
	}
	if filter.Upcoming {
		query = query.Where("date >= ?", time.Now().UTC().Truncate(24*time.Hour))
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = query.Order("date asc")
	if filter.PageSize > 0 {
		page := filter.Page
		if page < 1 {
			page = 1
		}
		query = query.Offset((page - 1) * filter.PageSize).Limit(filter.PageSize)
	}

	if err := query.Find(&events).Error; err != nil {
		return nil, 0, err
	}
	return events, total, nil
}

func (r *repository) Update(ctx context.Context, e *Event) error {
	result := r.db.WithContext(ctx).Save(e)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrEventNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&Event{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrEventNotFound
	}
	return nil
}

func (r *repository) Register(ctx context.Context, eventID, memberID uuid.UUID) error {
	reg := Registration{EventID: eventID, MemberID: memberID}
	err := r.db.WithContext(ctx).Create(&reg).Error
	if err != nil && errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrAlreadyRegistered
	}
	return err
}

func (r *repository) Unregister(ctx context.Context, eventID, memberID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("event_id = ? AND member_id = ?", eventID, memberID).
		Delete(&Registration{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotRegistered
	}
	return nil
}

func (r *repository) Registrations(ctx context.Context, eventID uuid.UUID) ([]Registration, error) {
	var regs []Registration
	err := r.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("created_at asc").
		Find(&regs).Error
	return regs, err
}

func (r *repository) CountRegistrations(ctx context.Context, eventID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&Registration{}).
		Where("event_id = ?", eventID).
		Count(&count).Error
	return count, err
}
