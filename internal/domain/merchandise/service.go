package merchandise

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/Beliver-247/sliit-choir-backend/internal/domain/member"
)

// CreateInput is the payload for adding a catalog item
type CreateInput struct {
	Name        string
	Description string
	Price       float64
	Sizes       []string
	Stock       int
	Category    Category
	ImageURL    string
}

// UpdateInput carries optional item changes
type UpdateInput struct {
	Name        *string
	Description *string
	Price       *float64
	Sizes       []string
	Stock       *int
	Category    *Category
	ImageURL    *string
}

// Service defines merchandise catalog operations
type Service interface {
	CreateItem(ctx context.Context, caller member.Caller, input CreateInput) (*Item, error)
	GetItem(ctx context.Context, id uuid.UUID) (*Item, error)
	ListItems(ctx context.Context, filter Filter) ([]Item, int64, error)
	UpdateItem(ctx context.Context, caller member.Caller, id uuid.UUID, input UpdateInput) (*Item, error)
	DeleteItem(ctx context.Context, caller member.Caller, id uuid.UUID) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) CreateItem(ctx context.Context, caller member.Caller, input CreateInput) (*Item, error) {
	if err := member.Authorize(caller, member.RoleModerator, member.RoleAdmin); err != nil {
		return nil, err
	}
	if input.Name == "" || input.Price <= 0 || input.Stock < 0 {
		return nil, ErrInvalidInput
	}
	if !input.Category.IsValid() {
		return nil, ErrInvalidInput
	}

	sizes, err := encodeSizes(input.Sizes)
	if err != nil {
		return nil, err
	}

	item := &Item{
		ID:          uuid.New(),
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		Sizes:       sizes,
		Stock:       input.Stock,
		Category:    input.Category,
		ImageURL:    input.ImageURL,
		CreatedBy:   caller.ID,
	}
	if err := s.repo.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *service) GetItem(ctx context.Context, id uuid.UUID) (*Item, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *service) ListItems(ctx context.Context, filter Filter) ([]Item, int64, error) {
	return s.repo.FindAll(ctx, filter)
}

func (s *service) UpdateItem(ctx context.Context, caller member.Caller, id uuid.UUID, input UpdateInput) (*Item, error) {
	if err := member.Authorize(caller, member.RoleModerator, member.RoleAdmin); err != nil {
		return nil, err
	}

	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		item.Name = *input.Name
	}
	if input.Description != nil {
		item.Description = *input.Description
	}
	if input.Price != nil {
		if *input.Price <= 0 {
			return nil, ErrInvalidInput
		}
		item.Price = *input.Price
	}
	if input.Sizes != nil {
		sizes, err := encodeSizes(input.Sizes)
		if err != nil {
			return nil, err
		}
		item.Sizes = sizes
	}
	if input.Stock != nil {
		if *input.Stock < 0 {
			return nil, ErrInvalidInput
		}
		item.Stock = *input.Stock
	}
	if input.Category != nil {
		if !input.Category.IsValid() {
			return nil, ErrInvalidInput
		}
		item.Category = *input.Category
	}
	if input.ImageURL != nil {
		item.ImageURL = *input.ImageURL
	}

	if err := s.repo.Update(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *service) DeleteItem(ctx context.Context, caller member.Caller, id uuid.UUID) error {
	if err := member.Authorize(caller, member.RoleModerator, member.RoleAdmin); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func encodeSizes(sizes []string) (datatypes.JSON, error) {
	if sizes == nil {
		sizes = []string{}
	}
	raw, err := json.Marshal(sizes)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(raw), nil
}

// DecodeSizes unpacks the stored size labels for API responses
func DecodeSizes(item *Item) []string {
	var sizes []string
	if len(item.Sizes) == 0 {
		return []string{}
	}
	if err := json.Unmarshal(item.Sizes, &sizes); err != nil {
		return []string{}
	}
	return sizes
}
