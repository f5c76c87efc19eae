// Package cli is the galleryctl admin tool. It drives the same state
// managers the web admin uses, over the HTTP API.
package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"artist-portfolio/internal/apperr"
	"artist-portfolio/internal/logger"
	"artist-portfolio/internal/notify"
	"artist-portfolio/internal/remote/restclient"
	"artist-portfolio/internal/state/catalog"
	"artist-portfolio/internal/state/moderation"
	"artist-portfolio/internal/state/posts"
)

type app struct {
	out    io.Writer
	errOut io.Writer

	configPath string
	verbose    bool

	v        *viper.Viper
	cfg      Config
	client   *restclient.Client
	notifier notify.Notifier
	log      *zap.Logger
}

func NewRootCmd(out, errOut io.Writer) *cobra.Command {
	a := &app{out: out, errOut: errOut}

	root := &cobra.Command{
		Use:           "galleryctl",
		Short:         "Manage the artist portfolio from the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd)
		},
	}
	root.SetOut(out)
	root.SetErr(errOut)

	pf := root.PersistentFlags()
	pf.StringVar(&a.configPath, "config", defaultConfigPath(), "config file")
	pf.String("api-url", "", "portfolio API base URL")
	pf.String("token", "", "session token (see login)")
	pf.Int("page-size", 0, "gallery page size")
	pf.BoolVarP(&a.verbose, "verbose", "v", false, "log remote failures")

	root.AddCommand(
		a.loginCmd(),
		a.artworksCmd(),
		a.commentsCmd(),
		a.blogCmd(),
	)
	return root
}

func (a *app) init(cmd *cobra.Command) error {
	v, err := newViper(a.configPath)
	if err != nil {
		return err
	}
	flags := cmd.Root().PersistentFlags()
	for key, flag := range map[string]string{keyAPIURL: "api-url", keyToken: "token", keyPageSize: "page-size"} {
		if f := flags.Lookup(flag); f != nil && f.Changed {
			if err := v.BindPFlag(key, f); err != nil {
				return err
			}
		}
	}

	cfg, err := loadConfig(v)
	if err != nil {
		return err
	}
	a.v = v
	a.cfg = cfg
	a.client = restclient.New(cfg.APIURL, cfg.Token)
	a.notifier = notify.NewWriter(a.errOut)

	a.log = zap.NewNop()
	if a.verbose {
		l, err := logger.New("debug", "console")
		if err != nil {
			return err
		}
		a.log = l
	}
	return nil
}

func (a *app) catalog() *catalog.Manager {
	return catalog.New(a.client, catalog.Options{Notifier: a.notifier, Logger: a.log})
}

func (a *app) moderation() *moderation.Manager {
	return moderation.New(a.client, moderation.Options{Notifier: a.notifier, Logger: a.log})
}

func (a *app) posts() *posts.Manager {
	return posts.New(a.client, posts.Options{Notifier: a.notifier, Logger: a.log})
}

// Execute runs galleryctl and returns the process exit code.
func Execute(ctx context.Context, out, errOut io.Writer, args []string) int {
	root := NewRootCmd(out, errOut)
	root.SetArgs(args)
	if err := root.ExecuteContext(ctx); err != nil {
		printError(errOut, err)
		return 1
	}
	return 0
}

func printError(w io.Writer, err error) {
	fmt.Fprintln(w, "error:", err)
	if ae := apperr.As(err); ae != nil {
		for _, d := range ae.Details {
			fmt.Fprintf(w, "  %s: %s\n", d.Field, d.Message)
		}
	}
}
