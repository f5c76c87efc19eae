package works

import (
	"time"

	"github.com/shopspring/decimal"
)

type Artwork struct {
	ID string `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`

	Title       string `gorm:"not null" json:"title"`
	Description string `json:"description"`
	ImageURL    string `gorm:"column:image_url" json:"image_url"`
	Dimensions  string `json:"dimensions"`
	Medium      string `json:"medium"`
	Year        int    `gorm:"column:year_created;not null;index" json:"year_created"`

	Price *decimal.Decimal `gorm:"type:numeric(10,2)" json:"price,omitempty"`

	CategoryID string    `gorm:"type:uuid;not null;index" json:"category_id"`
	Category   *Category `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"category,omitempty"`

	IsFeatured  bool `gorm:"not null;default:false" json:"is_featured"`
	IsPublished bool `gorm:"not null;default:false;index" json:"is_published"`
	IsSold      bool `gorm:"not null;default:false" json:"is_sold"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CategoryName is empty when the category association was not loaded.
func (a Artwork) CategoryName() string {
	if a.Category == nil {
		return ""
	}
	return a.Category.Name
}

func (a Artwork) Period() string {
	return PeriodFor(a.Year)
}

// ArtworkPatch is a partial update. Nil fields are left untouched.
type ArtworkPatch struct {
	Title       *string          `json:"title,omitempty"`
	Description *string          `json:"description,omitempty"`
	ImageURL    *string          `json:"image_url,omitempty"`
	Dimensions  *string          `json:"dimensions,omitempty"`
	Medium      *string          `json:"medium,omitempty"`
	Year        *int             `json:"year_created,omitempty"`
	Price       *decimal.Decimal `json:"price,omitempty"`
	ClearPrice  bool             `json:"clear_price,omitempty"`
	CategoryID  *string          `json:"category_id,omitempty"`
	IsFeatured  *bool            `json:"is_featured,omitempty"`
	IsPublished *bool            `json:"is_published,omitempty"`
	IsSold      *bool            `json:"is_sold,omitempty"`

	UpdatedAt time.Time `json:"updated_at"`
}

// Columns returns the column->value map gorm's Updates expects.
func (p ArtworkPatch) Columns() map[string]interface{} {
	cols := map[string]interface{}{}
	if p.Title != nil {
		cols["title"] = *p.Title
	}
	if p.Description != nil {
		cols["description"] = *p.Description
	}
	if p.ImageURL != nil {
		cols["image_url"] = *p.ImageURL
	}
	if p.Dimensions != nil {
		cols["dimensions"] = *p.Dimensions
	}
	if p.Medium != nil {
		cols["medium"] = *p.Medium
	}
	if p.Year != nil {
		cols["year_created"] = *p.Year
	}
	if p.ClearPrice {
		cols["price"] = nil
	} else if p.Price != nil {
		cols["price"] = *p.Price
	}
	if p.CategoryID != nil {
		cols["category_id"] = *p.CategoryID
	}
	if p.IsFeatured != nil {
		cols["is_featured"] = *p.IsFeatured
	}
	if p.IsPublished != nil {
		cols["is_published"] = *p.IsPublished
	}
	if p.IsSold != nil {
		cols["is_sold"] = *p.IsSold
	}
	if !p.UpdatedAt.IsZero() {
		cols["updated_at"] = p.UpdatedAt
	}
	return cols
}

// Apply copies the patch onto a, used by stores that keep records in memory.
func (p ArtworkPatch) Apply(a *Artwork) {
	if p.Title != nil {
		a.Title = *p.Title
	}
	if p.Description != nil {
		a.Description = *p.Description
	}
	if p.ImageURL != nil {
		a.ImageURL = *p.ImageURL
	}
	if p.Dimensions != nil {
		a.Dimensions = *p.Dimensions
	}
	if p.Medium != nil {
		a.Medium = *p.Medium
	}
	if p.Year != nil {
		a.Year = *p.Year
	}
	if p.ClearPrice {
		a.Price = nil
	} else if p.Price != nil {
		price := *p.Price
		a.Price = &price
	}
	if p.CategoryID != nil {
		a.CategoryID = *p.CategoryID
	}
	if p.IsFeatured != nil {
		a.IsFeatured = *p.IsFeatured
	}
	if p.IsPublished != nil {
		a.IsPublished = *p.IsPublished
	}
	if p.IsSold != nil {
		a.IsSold = *p.IsSold
	}
	if !p.UpdatedAt.IsZero() {
		a.UpdatedAt = p.UpdatedAt
	}
}
