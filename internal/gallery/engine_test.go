package gallery

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"artist-portfolio/internal/domain/works"
)

var (
	landscape = &works.Category{ID: "c-land", Name: "Landscape"}
	portrait  = &works.Category{ID: "c-port", Name: "Portrait"}
	abstract  = &works.Category{ID: "c-abs", Name: "Abstract"}
)

func art(id string, year int, cat *works.Category, published bool) works.Artwork {
	return works.Artwork{ID: id, Title: id, Year: year, CategoryID: cat.ID, Category: cat, IsPublished: published}
}

func ids(list []works.Artwork) []string {
	out := make([]string, 0, len(list))
	for _, a := range list {
		out = append(out, a.ID)
	}
	return out
}

/*
TestComputeVisible_LandscapeScenario: three artworks, two of them Landscape,
page size two. Page 1 holds both Landscape entries and there is one page.
*/
func TestComputeVisible_LandscapeScenario(t *testing.T) {
	list := []works.Artwork{
		art("a1", 2023, landscape, true),
		art("a2", 2022, portrait, true),
		art("a3", 2023, landscape, true),
	}

	res := ComputeVisible(list, Filter{Category: "Landscape", Period: works.AllFilter}, 1, 2)

	assert.Equal(t, []string{"a1", "a3"}, ids(res.Visible))
	assert.Equal(t, 1, res.TotalPages)
	assert.Equal(t, 2, res.Total)
}

func TestComputeVisible_EmptyHasOnePage(t *testing.T) {
	res := ComputeVisible(nil, Filter{}, 1, 6)
	assert.Empty(t, res.Visible)
	assert.Equal(t, 1, res.TotalPages)
	assert.Equal(t, 1, res.Page)

	res = ComputeVisible([]works.Artwork{art("a", 2021, landscape, true)}, Filter{Category: "Portrait"}, 3, 6)
	assert.Empty(t, res.Visible)
	assert.Equal(t, 1, res.TotalPages)
	assert.Equal(t, 1, res.Page)
}

func TestComputeVisible_DropsUnpublished(t *testing.T) {
	list := []works.Artwork{
		art("draft", 2023, landscape, false),
		art("live", 2023, landscape, true),
	}
	res := ComputeVisible(list, Filter{}, 1, 6)
	assert.Equal(t, []string{"live"}, ids(res.Visible))
}

func TestComputeVisible_OutOfRangePageResets(t *testing.T) {
	list := []works.Artwork{}
	for i := 0; i < 7; i++ {
		list = append(list, art(fmt.Sprintf("a%d", i), 2021, landscape, true))
	}

	tests := []struct {
		name string
		page int
		want int
	}{
		{"first", 1, 1},
		{"last", 4, 4},
		{"beyond", 5, 1},
		{"zero", 0, 1},
		{"negative", -2, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := ComputeVisible(list, Filter{}, tt.page, 2)
			assert.Equal(t, 4, res.TotalPages)
			assert.Equal(t, tt.want, res.Page)
			assert.NotEmpty(t, res.Visible)
		})
	}
}

func TestComputeVisible_DefaultPageSize(t *testing.T) {
	list := []works.Artwork{}
	for i := 0; i < 8; i++ {
		list = append(list, art(fmt.Sprintf("a%d", i), 2010, portrait, true))
	}
	res := ComputeVisible(list, Filter{}, 1, 0)
	assert.Equal(t, DefaultPageSize, res.PageSize)
	assert.Len(t, res.Visible, DefaultPageSize)
	assert.Equal(t, 2, res.TotalPages)
}

/*
TestComputeVisible_FilterSoundness checks every visible artwork matches both
filters, and that all pages concatenated give back the filtered set exactly.
*/
func TestComputeVisible_FilterSoundness(t *testing.T) {
	cats := []*works.Category{landscape, portrait, abstract}
	years := []int{1985, 1999, 2000, 2012, 2019, 2020, 2024, 2026}
	list := []works.Artwork{}
	for i := 0; i < 40; i++ {
		list = append(list, art(fmt.Sprintf("a%02d", i), years[i%len(years)], cats[i%len(cats)], i%5 != 0))
	}

	categoryFilters := []string{works.AllFilter, "Landscape", "Portrait", "Abstract", "Unknown"}
	periodFilters := append([]string{works.AllFilter}, works.Periods()...)

	for _, c := range categoryFilters {
		for _, p := range periodFilters {
			for _, size := range []int{1, 3, 6, 50} {
				f := Filter{Category: c, Period: p}
				expected := Apply(list, f)

				first := ComputeVisible(list, f, 1, size)
				var joined []works.Artwork
				for page := 1; page <= first.TotalPages; page++ {
					res := ComputeVisible(list, f, page, size)
					for _, a := range res.Visible {
						require.True(t, a.IsPublished)
						if c != works.AllFilter {
							require.Equal(t, c, a.CategoryName())
						}
						if p != works.AllFilter {
							require.Equal(t, p, a.Period())
						}
					}
					joined = append(joined, res.Visible...)
				}
				require.Equal(t, ids(expected), ids(joined), "category=%s period=%s size=%d", c, p, size)
			}
		}
	}
}

func TestCategories_DistinctPublished(t *testing.T) {
	list := []works.Artwork{
		art("a", 2020, portrait, true),
		art("b", 2020, landscape, false),
		art("c", 2020, portrait, true),
		art("d", 2020, abstract, true),
	}
	assert.Equal(t, []string{"Portrait", "Abstract"}, Categories(list))
}
