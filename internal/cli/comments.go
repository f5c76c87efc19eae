package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"artist-portfolio/internal/domain/comments"
)

func (a *app) commentsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "comments",
		Aliases: []string{"comment", "c"},
		Short:   "Moderate visitor comments",
	}
	cmd.AddCommand(a.commentsListCmd(), a.commentsApproveCmd(), a.commentsDeleteCmd())
	return cmd
}

func (a *app) commentsListCmd() *cobra.Command {
	var artworkID, filter string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List comments, newest first, with pending and approved counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, ok := comments.ParseFilter(filter)
			if !ok {
				return fmt.Errorf("invalid --filter %q, want all, pending or approved", filter)
			}
			m := a.moderation()
			if err := m.Load(cmd.Context(), artworkID); err != nil {
				return err
			}

			tw := table(a.out, "ID", "ARTWORK", "AUTHOR", "RATING", "STATUS", "COMMENT")
			for _, c := range m.Filter(f) {
				st := "pending"
				if c.IsApproved {
					st = "approved"
				}
				row(tw, c.ID, c.ArtworkID, c.UserName, c.Rating, st, truncate(c.CommentText, 50))
			}
			tw.Flush()

			pending, approved := m.Counts()
			fmt.Fprintf(a.out, "%d pending, %d approved\n", pending, approved)
			return nil
		},
	}
	cmd.Flags().StringVar(&artworkID, "artwork", "", "only comments of this artwork id")
	cmd.Flags().StringVar(&filter, "filter", string(comments.FilterAll), "all, pending or approved")
	return cmd
}

func (a *app) commentsApproveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "approve <id>",
		Short: "Approve a pending comment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := a.moderation().Approve(cmd.Context(), args[0])
			return err
		},
	}
}

func (a *app) commentsDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a comment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.moderation().Delete(cmd.Context(), args[0])
		},
	}
}
