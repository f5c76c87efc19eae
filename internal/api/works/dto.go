package works

import (
	"strings"

	"github.com/shopspring/decimal"

	"artist-portfolio/internal/domain/works"
)

// ArtworkInput is the body of POST /admin/artworks.
type ArtworkInput struct {
	Title       string           `json:"title"`
	Description string           `json:"description"`
	ImageURL    string           `json:"image_url"`
	Dimensions  string           `json:"dimensions"`
	Medium      string           `json:"medium"`
	Year        int              `json:"year_created"`
	Price       *decimal.Decimal `json:"price"`
	CategoryID  string           `json:"category_id"`
	IsFeatured  bool             `json:"is_featured"`
	IsPublished bool             `json:"is_published"`
	IsSold      bool             `json:"is_sold"`
}

func (in ArtworkInput) toArtwork() works.Artwork {
	return works.Artwork{
		Title:       strings.TrimSpace(in.Title),
		Description: in.Description,
		ImageURL:    in.ImageURL,
		Dimensions:  in.Dimensions,
		Medium:      in.Medium,
		Year:        in.Year,
		Price:       in.Price,
		CategoryID:  in.CategoryID,
		IsFeatured:  in.IsFeatured,
		IsPublished: in.IsPublished,
		IsSold:      in.IsSold,
	}
}

type CategoryInput struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

// ArtworkDTO adds the derived period and category name to the stored row.
type ArtworkDTO struct {
	works.Artwork
	Period       string `json:"period"`
	CategoryName string `json:"category_name"`
}

func toDTO(a works.Artwork) ArtworkDTO {
	return ArtworkDTO{Artwork: a, Period: a.Period(), CategoryName: a.CategoryName()}
}

func toDTOs(list []works.Artwork) []ArtworkDTO {
	out := make([]ArtworkDTO, 0, len(list))
	for _, a := range list {
		out = append(out, toDTO(a))
	}
	return out
}

// GalleryResponse is one page of the public gallery.
type GalleryResponse struct {
	Artworks   []ArtworkDTO `json:"artworks"`
	Page       int          `json:"page"`
	PageSize   int          `json:"page_size"`
	TotalPages int          `json:"total_pages"`
	Total      int          `json:"total"`
	Categories []string     `json:"categories"`
	Periods    []string     `json:"periods"`
}
