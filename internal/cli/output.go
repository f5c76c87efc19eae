package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"artist-portfolio/internal/domain/works"
)

func table(w io.Writer, header ...string) *tabwriter.Writer {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(header, "\t"))
	return tw
}

func row(tw *tabwriter.Writer, cols ...any) {
	parts := make([]string, len(cols))
	for i, c := range cols {
		parts[i] = fmt.Sprint(c)
	}
	fmt.Fprintln(tw, strings.Join(parts, "\t"))
}

func price(a works.Artwork) string {
	if a.Price == nil {
		return "-"
	}
	return a.Price.StringFixed(2)
}

func status(a works.Artwork) string {
	var flags []string
	if a.IsPublished {
		flags = append(flags, "published")
	} else {
		flags = append(flags, "draft")
	}
	if a.IsFeatured {
		flags = append(flags, "featured")
	}
	if a.IsSold {
		flags = append(flags, "sold")
	}
	return strings.Join(flags, ",")
}

func truncate(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
