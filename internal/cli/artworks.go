package cli

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"artist-portfolio/internal/domain/works"
	"artist-portfolio/internal/gallery"
	"artist-portfolio/internal/state/catalog"
	"artist-portfolio/internal/state/detail"
)

func (a *app) artworksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "artworks",
		Aliases: []string{"artwork", "a"},
		Short:   "Browse and edit the catalog",
	}
	cmd.AddCommand(
		a.artworksListCmd(),
		a.artworksShowCmd(),
		a.artworksAddCmd(),
		a.artworksUpdateCmd(),
		a.artworksDeleteCmd(),
	)
	return cmd
}

func (a *app) artworksListCmd() *cobra.Command {
	var (
		category, period string
		page             int
		all              bool
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List artworks the way the public gallery pages them",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			m := a.catalog()
			if err := m.Load(cmd.Context()); err != nil {
				return err
			}

			tw := table(a.out, "ID", "TITLE", "CATEGORY", "PERIOD", "YEAR", "PRICE", "STATUS")
			if all {
				list := m.Artworks()
				for _, art := range list {
					row(tw, art.ID, truncate(art.Title, 40), art.CategoryName(), art.Period(), art.Year, price(art), status(art))
				}
				tw.Flush()
				fmt.Fprintf(a.out, "%d artworks\n", len(list))
				return nil
			}

			b := gallery.NewBrowser(a.cfg.PageSize)
			b.SetCategory(category)
			b.SetPeriod(period)
			b.SetPage(page)
			res := b.View(m.Artworks())
			for _, art := range res.Visible {
				row(tw, art.ID, truncate(art.Title, 40), art.CategoryName(), art.Period(), art.Year, price(art), status(art))
			}
			tw.Flush()
			fmt.Fprintf(a.out, "page %d/%d, %d published artworks match\n", res.Page, res.TotalPages, res.Total)
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&category, "category", works.AllFilter, "category name")
	f.StringVar(&period, "period", works.AllFilter, "period label, e.g. \""+works.PeriodModern+"\"")
	f.IntVar(&page, "page", 1, "page number")
	f.BoolVar(&all, "all", false, "list every artwork, drafts included, without paging")
	return cmd
}

func (a *app) artworksShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Open one artwork in detail",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m := a.catalog()
			if err := m.Load(cmd.Context()); err != nil {
				return err
			}
			art, ok := m.Find(args[0])
			if !ok {
				return fmt.Errorf("artwork %s not found", args[0])
			}

			view := detail.New()
			view.Select(art)
			sel, _ := view.Selected()

			tw := table(a.out, "FIELD", "VALUE")
			row(tw, "id", sel.ID)
			row(tw, "title", sel.Title)
			row(tw, "category", sel.CategoryName())
			row(tw, "year", sel.Year)
			row(tw, "period", sel.Period())
			row(tw, "medium", orDash(sel.Medium))
			row(tw, "dimensions", orDash(sel.Dimensions))
			row(tw, "price", price(sel))
			row(tw, "status", status(sel))
			row(tw, "image", orDash(sel.ImageURL))
			row(tw, "description", orDash(truncate(sel.Description, 200)))
			row(tw, "updated", sel.UpdatedAt.Local().Format("2006-01-02 15:04"))
			return tw.Flush()
		},
	}
}

type artworkFlags struct {
	title, description, imageURL string
	dimensions, medium, category string
	price                        string
	year                         int
	featured, published, sold    bool
	clearPrice                   bool
}

func (f *artworkFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVar(&f.title, "title", "", "title")
	fs.StringVar(&f.description, "description", "", "description")
	fs.StringVar(&f.imageURL, "image-url", "", "image URL (see POST /admin/media)")
	fs.StringVar(&f.dimensions, "dimensions", "", "dimensions, e.g. 60x80 cm")
	fs.StringVar(&f.medium, "medium", "", "medium, e.g. oil on canvas")
	fs.StringVar(&f.category, "category", "", "category name or id")
	fs.StringVar(&f.price, "price", "", "price, e.g. 1200.00")
	fs.IntVar(&f.year, "year", 0, "year created")
	fs.BoolVar(&f.featured, "featured", false, "feature on the home page")
	fs.BoolVar(&f.published, "published", false, "visible in the public gallery")
	fs.BoolVar(&f.sold, "sold", false, "mark as sold")
}

func parsePrice(s string) (*decimal.Decimal, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return nil, fmt.Errorf("invalid --price %q", s)
	}
	return &d, nil
}

// categoryID accepts a category id or a case-insensitive name.
func categoryID(m *catalog.Manager, v string) (string, error) {
	if v == "" {
		return "", nil
	}
	for _, c := range m.Categories() {
		if c.ID == v || strings.EqualFold(c.Name, v) {
			return c.ID, nil
		}
	}
	return "", fmt.Errorf("unknown category %q", v)
}

func (a *app) artworksAddCmd() *cobra.Command {
	var f artworkFlags
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add an artwork",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			m := a.catalog()
			if err := m.Load(cmd.Context()); err != nil {
				return err
			}
			catID, err := categoryID(m, f.category)
			if err != nil {
				return err
			}
			p, err := parsePrice(f.price)
			if err != nil {
				return err
			}

			saved, err := m.Create(cmd.Context(), works.Artwork{
				Title:       strings.TrimSpace(f.title),
				Description: f.description,
				ImageURL:    f.imageURL,
				Dimensions:  f.dimensions,
				Medium:      f.medium,
				Year:        f.year,
				Price:       p,
				CategoryID:  catID,
				IsFeatured:  f.featured,
				IsPublished: f.published,
				IsSold:      f.sold,
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(a.out, saved.ID)
			return nil
		},
	}
	f.register(cmd)
	return cmd
}

func (a *app) artworksUpdateCmd() *cobra.Command {
	var f artworkFlags
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change fields of an artwork; only the flags given are sent",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m := a.catalog()
			if err := m.Load(cmd.Context()); err != nil {
				return err
			}

			changed := cmd.Flags().Changed
			var patch works.ArtworkPatch
			if changed("title") {
				patch.Title = &f.title
			}
			if changed("description") {
				patch.Description = &f.description
			}
			if changed("image-url") {
				patch.ImageURL = &f.imageURL
			}
			if changed("dimensions") {
				patch.Dimensions = &f.dimensions
			}
			if changed("medium") {
				patch.Medium = &f.medium
			}
			if changed("year") {
				patch.Year = &f.year
			}
			if changed("category") {
				id, err := categoryID(m, f.category)
				if err != nil {
					return err
				}
				patch.CategoryID = &id
			}
			if changed("price") {
				p, err := parsePrice(f.price)
				if err != nil {
					return err
				}
				patch.Price = p
				patch.ClearPrice = p == nil
			}
			if f.clearPrice {
				patch.Price = nil
				patch.ClearPrice = true
			}
			if changed("featured") {
				patch.IsFeatured = &f.featured
			}
			if changed("published") {
				patch.IsPublished = &f.published
			}
			if changed("sold") {
				patch.IsSold = &f.sold
			}

			saved, err := m.Update(cmd.Context(), args[0], patch)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "%s  %s  %s\n", saved.ID, saved.Title, status(saved))
			return nil
		},
	}
	f.register(cmd)
	cmd.Flags().BoolVar(&f.clearPrice, "clear-price", false, "remove the price")
	return cmd
}

func (a *app) artworksDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an artwork and its comments",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.catalog().Delete(cmd.Context(), args[0])
		},
	}
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}
