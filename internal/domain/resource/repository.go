package resource

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Beliver-247/sliit-choir-backend/internal/infrastructure/persistence/postgres/connection"
)

var (
	ErrResourceNotFound = errors.New("resource not found")
	ErrRequestNotFound  = errors.New("resource request not found")
	ErrInvalidInput     = errors.New("invalid input")
	ErrAlreadyFavorite  = errors.New("resource is already a favorite")
	ErrNotFavorite      = errors.New("resource is not a favorite")
)

// Filter defines the filtering options for listing resources
type Filter struct {
	ResourceType *Type
	Search       string
}

// RequestFilter defines the filtering options for listing requests
type RequestFilter struct {
	Status   *RequestStatus
	MemberID *uuid.UUID
}

// Repository defines resource library persistence operations
type Repository interface {
	Create(ctx context.Context, r *Resource) error
	FindByID(ctx context.Context, id uuid.UUID) (*Resource, error)
	FindAll(ctx context.Context, filter Filter) ([]Resource, error)
	Update(ctx context.Context, r *Resource) error
	Delete(ctx context.Context, id uuid.UUID) error

	CreateRequest(ctx context.Context, req *Request) error
	FindRequestByID(ctx context.Context, id uuid.UUID) (*Request, error)
	FindRequests(ctx context.Context, filter RequestFilter) ([]Request, error)
	UpdateRequest(ctx context.Context, req *Request) error
	DeleteRequest(ctx context.Context, id uuid.UUID) error

	AddFavorite(ctx context.Context, memberID, resourceID uuid.UUID) error
	RemoveFavorite(ctx context.Context, memberID, resourceID uuid.UUID) error
	IsFavorite(ctx context.Context, memberID, resourceID uuid.UUID) (bool, error)
	FavoriteResources(ctx context.Context, memberID uuid.UUID) ([]Resource, error)
}

type repository struct {
	db *connection.Database
}

func NewRepository(db *connection.Database) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, res *Resource) error {
	return r.db.WithContext(ctx).Create(res).Error
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*Resource, error) {
	var res Resource
	result := r.db.WithContext(ctx).First(&res, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrResourceNotFound
		}
		return nil, result.Error
	}
	return &res, nil
}

func (r *repository) FindAll(ctx context.Context, filter Filter) ([]Resource, error) {
	var resources []Resource
	query := r.db.WithContext(ctx).Model(&Resource{})

	if filter.ResourceType != nil {
		query = query.Where("resource_type = ?", *filter.ResourceType)
	}
	if filter.Search != "" {
		query = query.Where("song_title ILIKE ?", "%"+filter.Search+"%")
	}

	err := query.Order("song_title asc, created_at asc").Find(&resources).Error
	return resources, err
}

func (r *repository) Update(ctx context.Context, res *Resource) error {
	result := r.db.WithContext(ctx).Save(res)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrResourceNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("resource_id = ?", id).Delete(&Favorite{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&Resource{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrResourceNotFound
		}
		return nil
	})
}

func (r *repository) CreateRequest(ctx context.Context, req *Request) error {
	return r.db.WithContext(ctx).Create(req).Error
}

func (r *repository) FindRequestByID(ctx context.Context, id uuid.UUID) (*Request, error) {
	var req Request
	result := r.db.WithContext(ctx).First(&req, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrRequestNotFound
		}
		return nil, result.Error
	}
	return &req, nil
}

func (r *repository) FindRequests(ctx context.Context, filter RequestFilter) ([]Request, error) {
	var requests []Request
	query := r.db.WithContext(ctx).Model(&Request{})

	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.MemberID != nil {
		query = query.Where("member_id = ?", *filter.MemberID)
	}

	err := query.Order("created_at desc").Find(&requests).Error
	return requests, err
}

func (r *repository) UpdateRequest(ctx context.Context, req *Request) error {
	result := r.db.WithContext(ctx).Save(req)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrRequestNotFound
	}
	return nil
}

func (r *repository) DeleteRequest(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&Request{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrRequestNotFound
	}
	return nil
}

func (r *repository) AddFavorite(ctx context.Context, memberID, resourceID uuid.UUID) error {
	fav := Favorite{MemberID: memberID, ResourceID: resourceID}
	err := r.db.WithContext(ctx).Create(&fav).Error
	if err != nil && errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrAlreadyFavorite
	}
	return err
}

func (r *repository) RemoveFavorite(ctx context.Context, memberID, resourceID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("member_id = ? AND resource_id = ?", memberID, resourceID).
		Delete(&Favorite{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFavorite
	}
	return nil
}

func (r *repository) IsFavorite(ctx context.Context, memberID, resourceID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&Favorite{}).
		Where("member_id = ? AND resource_id = ?", memberID, resourceID).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) FavoriteResources(ctx context.Context, memberID uuid.UUID) ([]Resource, error) {
	var resources []Resource
	err := r.db.WithContext(ctx).
		Joins("JOIN resource_favorites f ON f.resource_id = resources.id").
		Where("f.member_id = ?", memberID).
		Order("resources.song_title asc").
		Find(&resources).Error
	return resources, err
}
