package member

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Beliver-247/sliit-choir-backend/internal/infrastructure/persistence/postgres/connection"
)

var (
	ErrMemberNotFound     = errors.New("member not found")
	ErrInvalidInput       = errors.New("invalid input")
	ErrDuplicateStudentID = errors.New("a member with this student ID already exists")
	ErrDuplicateEmail     = errors.New("a member with this email already exists")
)

// Filter defines the filtering options for listing members
type Filter struct {
	Status   *Status
	Role     *Role
	Search   *string
	Page     int
	PageSize int
}

// Repository defines member persistence operations
type Repository interface {
	Create(ctx context.Context, m *Member) error
	FindByID(ctx context.Context, id uuid.UUID) (*Member, error)
	FindByStudentID(ctx context.Context, studentID string) (*Member, error)
	FindByEmail(ctx context.Context, email string) (*Member, error)
	FindAll(ctx context.Context, filter Filter) ([]Member, int64, error)
	Update(ctx context.Context, m *Member) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db *connection.Database
}

func NewRepository(db *connection.Database) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, m *Member) error {
	err := r.db.WithContext(ctx).Create(m).Error
	if err != nil && strings.Contains(err.Error(), "idx_member_student_id") {
		return ErrDuplicateStudentID
	}
	if err != nil && strings.Contains(err.Error(), "idx_member_email") {
		return ErrDuplicateEmail
	}
	return err
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*Member, error) {
	var m Member
	result := r.db.WithContext(ctx).First(&m, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, result.Error
	}
	return &m, nil
}

func (r *repository) FindByStudentID(ctx context.Context, studentID string) (*Member, error) {
	var m Member
	result := r.db.WithContext(ctx).First(&m, "student_id = ?", studentID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, result.Error
	}
	return &m, nil
}

func (r *repository) FindByEmail(ctx context.Context, email string) (*Member, error) {
	var m Member
	result := r.db.WithContext(ctx).First(&m, "email = ?", email)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, result.Error
	}
	return &m, nil
}

func (r *repository) FindAll(ctx context.Context, filter Filter) ([]Member, int64, error) {
	var members []Member
	var total int64
	query := r.db.WithContext(ctx).Model(&Member{})

	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.Role != nil {
		query = query.Where("role = ?", *filter.Role)
	}
	if filter.Search != nil {
		like := "%" + *filter.Search + "%"
		query = query.Where(
			"first_name ILIKE ? OR last_name ILIKE ? OR student_id ILIKE ? OR email ILIKE ?",
			like, like, like, like,
		)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = query.Order("first_name asc, last_name asc")
	if filter.PageSize > 0 {
		page := filter.Page
		if page < 1 {
			page = 1
		}
		query = query.Offset((page - 1) * filter.PageSize).Limit(filter.PageSize)
	}

	if err := query.Find(&members).Error; err != nil {
		return nil, 0, err
	}
	return members, total, nil
}

func (r *repository) Update(ctx context.Context, m *Member) error {
	result := r.db.WithContext(ctx).Save(m)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrMemberNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&Member{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrMemberNotFound
	}
	return nil
}
