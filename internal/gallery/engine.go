// Package gallery computes the public, paginated view of the catalog.
// Everything here is pure: the same input always yields the same page.
package gallery

import (
	"artist-portfolio/internal/domain/works"
)

const DefaultPageSize = 6

// Filter pairs a category name and a period label. Empty or works.AllFilter
// matches everything.
type Filter struct {
	Category string `json:"category"`
	Period   string `json:"period"`
}

func (f Filter) matches(a works.Artwork) bool {
	if !isAll(f.Category) && a.CategoryName() != f.Category {
		return false
	}
	if !isAll(f.Period) && a.Period() != f.Period {
		return false
	}
	return true
}

func isAll(v string) bool { return v == "" || v == works.AllFilter }

type Result struct {
	Visible    []works.Artwork `json:"visible"`
	Page       int             `json:"page"`
	PageSize   int             `json:"page_size"`
	TotalPages int             `json:"total_pages"`
	Total      int             `json:"total"`
}

// Apply returns the published artworks matching f, in input order.
func Apply(artworks []works.Artwork, f Filter) []works.Artwork {
	out := make([]works.Artwork, 0, len(artworks))
	for _, a := range artworks {
		if !a.IsPublished {
			continue
		}
		if f.matches(a) {
			out = append(out, a)
		}
	}
	return out
}

// TotalPages is never below 1, so an empty result still has page 1.
func TotalPages(n, pageSize int) int {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	pages := (n + pageSize - 1) / pageSize
	if pages < 1 {
		return 1
	}
	return pages
}

// ComputeVisible filters then slices one page. A page outside
// 1..TotalPages is reset to 1 rather than yielding an empty slice.
func ComputeVisible(artworks []works.Artwork, f Filter, page, pageSize int) Result {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	filtered := Apply(artworks, f)
	total := TotalPages(len(filtered), pageSize)
	if page < 1 || page > total {
		page = 1
	}

	start := (page - 1) * pageSize
	end := start + pageSize
	if end > len(filtered) {
		end = len(filtered)
	}

	return Result{
		Visible:    filtered[start:end],
		Page:       page,
		PageSize:   pageSize,
		TotalPages: total,
		Total:      len(filtered),
	}
}

// Categories lists the distinct category names present among published
// artworks, in first-seen order.
func Categories(artworks []works.Artwork) []string {
	seen := map[string]bool{}
	out := []string{}
	for _, a := range artworks {
		name := a.CategoryName()
		if !a.IsPublished || name == "" || seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, name)
	}
	return out
}
