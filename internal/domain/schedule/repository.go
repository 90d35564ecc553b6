package schedule

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Beliver-247/sliit-choir-backend/internal/infrastructure/persistence/postgres/connection"
)

var (
	ErrScheduleNotFound = errors.New("practice schedule not found")
	ErrInvalidInput     = errors.New("invalid input")
)

// Filter defines the filtering options for listing schedules
type Filter struct {
	StartDate *time.Time
	EndDate   *time.Time
	Upcoming  bool
	Page      int
	PageSize  int
}

// Repository defines schedule persistence operations
type Repository interface {
	Create(ctx context.Context, s *Schedule) error
	FindByID(ctx context.Context, id uuid.UUID) (*Schedule, error)
	FindAll(ctx context.Context, filter Filter) ([]Schedule, int64, error)
	Update(ctx context.Context, s *Schedule) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db *connection.Database
}

func NewRepository(db *connection.Database) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, s *Schedule) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*Schedule, error) {
	var s Schedule
	result := r.db.WithContext(ctx).First(&s, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrScheduleNotFound
		}
		return nil, result.Error
	}
	return &s, nil
}

func (r *repository) FindAll(ctx context.Context, filter Filter) ([]Schedule, int64, error) {
	var schedules []Schedule
	var total int64
	query := r.db.WithContext(ctx).Model(&Schedule{})

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

	query = query.Order("date asc, start_time asc")
	if filter.PageSize > 0 {
		page := filter.Page
		if page < 1 {
			page = 1
		}
		query = query.Offset((page - 1) * filter.PageSize).Limit(filter.PageSize)
	}

	if err := query.Find(&schedules).Error; err != nil {
		return nil, 0, err
	}
	return schedules, total, nil
}

func (r *repository) Update(ctx context.Context, s *Schedule) error {
	result := r.db.WithContext(ctx).Save(s)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrScheduleNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&Schedule{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrScheduleNotFound
	}
	return nil
}
