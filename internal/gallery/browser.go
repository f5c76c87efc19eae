package gallery

import (
	"sync"

	"artist-portfolio/internal/domain/works"
)

// Browser is the filter and page a visitor is looking at. Changing either
// filter always sends the visitor back to page 1.
type Browser struct {
	mu       sync.Mutex
	filter   Filter
	page     int
	pageSize int
}

func NewBrowser(pageSize int) *Browser {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Browser{
		filter:   Filter{Category: works.AllFilter, Period: works.AllFilter},
		page:     1,
		pageSize: pageSize,
	}
}

func (b *Browser) SetCategory(category string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.filter.Category = category
	b.page = 1
}

func (b *Browser) SetPeriod(period string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.filter.Period = period
	b.page = 1
}

func (b *Browser) SetPage(page int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.page = page
}

func (b *Browser) Filter() Filter {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.filter
}

func (b *Browser) Page() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.page
}

// View computes the current page over artworks. If the stored page no longer
// exists it is reset to 1 here as well.
func (b *Browser) View(artworks []works.Artwork) Result {
	b.mu.Lock()
	defer b.mu.Unlock()
	res := ComputeVisible(artworks, b.filter, b.page, b.pageSize)
	b.page = res.Page
	return res
}
