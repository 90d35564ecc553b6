package donation

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Beliver-247/sliit-choir-backend/internal/infrastructure/persistence/postgres/connection"
)

var (
	ErrDonationNotFound = errors.New("donation not found")
	ErrInvalidInput     = errors.New("invalid input")
)

// Filter defines the filtering options for listing donations
type Filter struct {
	Status    *Status
	MemberID  *uuid.UUID
	StartDate *time.Time
	EndDate   *time.Time
	Page      int
	PageSize  int
}

// Repository defines donation persistence operations
type Repository interface {
	Create(ctx context.Context, d *Donation) error
	FindByID(ctx context.Context, id uuid.UUID) (*Donation, error)
	FindAll(ctx context.Context, filter Filter) ([]Donation, int64, error)
	Update(ctx context.Context, d *Donation) error
	Delete(ctx context.Context, id uuid.UUID) error
	Stats(ctx context.Context) (*StatsSummary, error)
}

type repository struct {
	db *connection.Database
}

func NewRepository(db *connection.Database) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, d *Donation) error {
	return r.db.WithContext(ctx).Create(d).Error
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*Donation, error) {
	var d Donation
	result := r.db.WithContext(ctx).First(&d, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrDonationNotFound
		}
		return nil, result.Error
	}
	return &d, nil
}

func (r *repository) FindAll(ctx context.Context, filter Filter) ([]Donation, int64, error) {
	var donations []Donation
	var total int64
	query := r.db.WithContext(ctx).Model(&Donation{})

	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.MemberID != nil {
		query = query.Where("member_id = ?", *filter.MemberID)
	}
	if filter.StartDate != nil {
		query = query.Where("created_at >= ?", *filter.StartDate)
	}
	if filter.EndDate != nil {
		query = query.Where("created_at <= ?", *filter.EndDate)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = query.Order("created_at desc")
	if filter.PageSize > 0 {
		page := filter.Page
		if page < 1 {
			page = 1
		}
		query = query.Offset((page - 1) * filter.PageSize).Limit(filter.PageSize)
	}

	if err := query.Find(&donations).Error; err != nil {
		return nil, 0, err
	}
	return donations, total, nil
}

func (r *repository) Update(ctx context.Context, d *Donation) error {
	result := r.db.WithContext(ctx).Save(d)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrDonationNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&Donation{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrDonationNotFound
	}
	return nil
}

type statsRow struct {
	Status Status
	Count  int64
	Sum    float64
}

func (r *repository) Stats(ctx context.Context) (*StatsSummary, error) {
	var rows []statsRow
	err := r.db.WithContext(ctx).
		Raw(`SELECT status, COUNT(*) AS count, COALESCE(SUM(amount), 0) AS sum
		     FROM donations GROUP BY status`).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return buildStats(rows), nil
}

// buildStats folds grouped rows into the summary. Total raised counts only
// completed donations; refunds and failures are excluded.
func buildStats(rows []statsRow) *StatsSummary {
	stats := &StatsSummary{
		AmountByStatus: make(map[Status]float64),
		CountByStatus:  make(map[Status]int64),
	}
	for _, row := range rows {
		stats.DonationCount += row.Count
		stats.AmountByStatus[row.Status] = row.Sum
		stats.CountByStatus[row.Status] = row.Count
		if row.Status == StatusCompleted {
			stats.TotalRaised += row.Sum
		}
	}
	return stats
}
