package merchandise

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Category groups catalog items for the storefront filters
type Category string

const (
	CategoryTShirt Category = "tshirt"
	CategoryBand   Category = "band"
	CategoryHoodie Category = "hoodie"
)

// IsValid reports whether the category is a known catalog group
func (c Category) IsValid() bool {
	switch c {
	case CategoryTShirt, CategoryBand, CategoryHoodie:
		return true
	}
	return false
}

// Item is one merchandise catalog entry. Sizes is a JSON array of the
// offered size labels; an empty array means one-size.
type Item struct {
	ID          uuid.UUID      `json:"id" gorm:"type:uuid;primary_key"`
	Name        string         `json:"name" gorm:"not null"`
	Description string         `json:"description" gorm:"type:text"`
	Price       float64        `json:"price" gorm:"not null"`
	Sizes       datatypes.JSON `json:"sizes" gorm:"type:jsonb"`
	Stock       int            `json:"stock" gorm:"not null;default:0"`
	Category    Category       `json:"category" gorm:"not null;index:idx_merchandise_category"`
	ImageURL    string         `json:"imageUrl"`
	CreatedBy   uuid.UUID      `json:"createdBy" gorm:"type:uuid;not null"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}

// TableName specifies the table name for merchandise items
func (Item) TableName() string {
	return "merchandise_items"
}

// BeforeCreate is called before inserting a new item
func (i *Item) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	i.CreatedAt = time.Now()
	i.UpdatedAt = time.Now()
	return nil
}

// BeforeUpdate is called before updating an item
func (i *Item) BeforeUpdate(tx *gorm.DB) error {
	i.UpdatedAt = time.Now()
	return nil
}
