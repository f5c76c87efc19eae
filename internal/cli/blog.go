package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"artist-portfolio/internal/domain/blog"
)

func (a *app) blogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "blog",
		Short: "Manage blog posts",
	}
	cmd.AddCommand(a.blogListCmd(), a.blogAddCmd(), a.blogDeleteCmd())
	return cmd
}

func (a *app) blogListCmd() *cobra.Command {
	var published bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List posts, latest published first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			m := a.posts()
			if err := m.Load(cmd.Context(), published); err != nil {
				return err
			}
			tw := table(a.out, "ID", "TITLE", "SLUG", "STATUS", "PUBLISHED", "MIN")
			for _, p := range m.Posts() {
				st, when := "draft", "-"
				if p.IsPublished {
					st = "published"
				}
				if p.PublishedAt != nil {
					when = p.PublishedAt.Local().Format("2006-01-02")
				}
				row(tw, p.ID, truncate(p.Title, 40), p.Slug, st, when, p.ReadingTime)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().BoolVar(&published, "published", false, "only published posts")
	return cmd
}

func (a *app) blogAddCmd() *cobra.Command {
	var (
		title, content, file, excerpt string
		tags                          []string
		published, featured           bool
	)
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a post; the slug and reading time are derived",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if file != "" {
				b, err := os.ReadFile(file)
				if err != nil {
					return err
				}
				content = string(b)
			}
			if strings.TrimSpace(content) == "" {
				return errors.New("--content or --file is required")
			}

			p := blog.Post{
				Title:       strings.TrimSpace(title),
				Content:     content,
				IsPublished: published,
				IsFeatured:  featured,
				Tags:        tags,
			}
			if excerpt != "" {
				p.Excerpt = &excerpt
			}

			saved, err := a.posts().Create(cmd.Context(), p)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "%s  %s\n", saved.ID, saved.Slug)
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&title, "title", "", "title")
	f.StringVar(&content, "content", "", "post body")
	f.StringVar(&file, "file", "", "read the post body from a file")
	f.StringVar(&excerpt, "excerpt", "", "short summary")
	f.StringSliceVar(&tags, "tags", nil, "comma separated tags")
	f.BoolVar(&published, "published", false, "publish now")
	f.BoolVar(&featured, "featured", false, "feature the post")
	return cmd
}

func (a *app) blogDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a post",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.posts().Delete(cmd.Context(), args[0])
		},
	}
}
