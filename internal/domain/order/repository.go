package order

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Beliver-247/sliit-choir-backend/internal/infrastructure/persistence/postgres/connection"
)

var (
	ErrOrderNotFound = errors.New("order not found")
	ErrInvalidInput  = errors.New("invalid input")
)

// Filter defines the filtering options for listing orders
type Filter struct {
	Status    *Status
	MemberID  *uuid.UUID
	StartDate *time.Time
	EndDate   *time.Time
	Page      int
	PageSize  int
}

// Repository defines order persistence operations
type Repository interface {
	Create(ctx context.Context, o *Order) error
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)
	FindAll(ctx context.Context, filter Filter) ([]Order, int64, error)
	Update(ctx context.Context, o *Order) error
	Delete(ctx context.Context, id uuid.UUID) error
	Stats(ctx context.Context) (*StatsSummary, error)
}

type repository struct {
	db *connection.Database
}

func NewRepository(db *connection.Database) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, o *Order) error {
	return r.db.WithContext(ctx).Create(o).Error
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*Order, error) {
	var o Order
	result := r.db.WithContext(ctx).Preload("Items").First(&o, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, result.Error
	}
	return &o, nil
}

func (r *repository) FindAll(ctx context.Context, filter Filter) ([]Order, int64, error) {
	var orders []Order
	var total int64
	query := r.db.WithContext(ctx).Model(&Order{})

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

	query = query.Preload("Items").Order("created_at desc")
	if filter.PageSize > 0 {
		page := filter.Page
		if page < 1 {
			page = 1
		}
		query = query.Offset((page - 1) * filter.PageSize).Limit(filter.PageSize)
	}

	if err := query.Find(&orders).Error; err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

func (r *repository) Update(ctx context.Context, o *Order) error {
	result := r.db.WithContext(ctx).Save(o)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrOrderNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", id).Delete(&LineItem{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&Order{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrOrderNotFound
		}
		return nil
	})
}

type statsRow struct {
	Status Status
	Count  int64
	Sum    float64
}

func (r *repository) Stats(ctx context.Context) (*StatsSummary, error) {
	var rows []statsRow
	err := r.db.WithContext(ctx).
		Raw(`SELECT status, COUNT(*) AS count, COALESCE(SUM(total_amount), 0) AS sum
		     FROM orders GROUP BY status`).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return buildStats(rows), nil
}

func buildStats(rows []statsRow) *StatsSummary {
	stats := &StatsSummary{CountByStatus: make(map[Status]int64)}
	for _, row := range rows {
		stats.OrderCount += row.Count
		stats.CountByStatus[row.Status] = row.Count
		if row.Status == StatusConfirmed {
			stats.TotalRevenue += row.Sum
		}
	}
	return stats
}
