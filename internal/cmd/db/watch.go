package db

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/opmodel/osinfo/internal/cmdtypes"
	"github.com/opmodel/osinfo/internal/core"
	oerrors "github.com/opmodel/osinfo/internal/errors"
	"github.com/opmodel/osinfo/internal/loader"
	"github.com/opmodel/osinfo/internal/output"
)

// NewWatchCmd creates the db watch command.
func NewWatchCmd(cfg *cmdtypes.GlobalConfig) *cobra.Command {
	var debounce time.Duration

	c := &cobra.Command{
		Use:   "watch",
		Short: "Reload the catalog whenever metadata changes",
		Long: `Load the catalog and reload it whenever a metadata file changes.

A summary is printed after every successful reload. Failed reloads are
logged and the previous catalog stays in effect. Stop with Ctrl-C.`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			paths, roots, err := watchPaths(cfg.DataDirs)
			if err != nil {
				return err
			}
			opts := []loader.WatcherOption{loader.WithDebounce(debounce)}
			if roots {
				opts = append(opts, loader.WithRoots())
			}
			return runWatch(c.Context(), c.OutOrStdout(), paths, opts...)
		},
	}

	c.Flags().DurationVar(&debounce, "debounce", 250*time.Millisecond, "Wait this long for changes to settle before reloading")
	return c
}

// watchPaths returns dirs, or the default directories that exist. roots
// reports whether the paths are overlaid default roots.
func watchPaths(dirs []string) (paths []string, roots bool, err error) {
	if len(dirs) > 0 {
		return dirs, false, nil
	}
	for _, root := range loader.DefaultRoots() {
		if _, err := os.Stat(root); err == nil {
			paths = append(paths, root)
		}
	}
	if len(paths) == 0 {
		return nil, false, oerrors.NewNotFoundError("no data directory to watch", "",
			"Pass --data-dir or install the osinfo database")
	}
	return paths, true, nil
}

// runWatch reports catalog reloads on w until ctx is done.
func runWatch(ctx context.Context, w io.Writer, paths []string, opts ...loader.WatcherOption) error {
	watcher, err := loader.NewWatcher(ctx, paths, opts...)
	if err != nil {
		return err
	}
	defer watcher.Close()

	output.Info("watching catalog", "paths", paths)
	printReload(w, watcher.Current())

	for {
		select {
		case <-ctx.Done():
			return nil
		case db := <-watcher.Updates():
			printReload(w, db)
		case err := <-watcher.Errors():
			output.Warn("reload failed", "error", err)
		}
	}
}

func printReload(w io.Writer, db *core.DB) {
	s := db.Stats()
	fmt.Fprintf(w, "%s catalog loaded: %d operating systems, %d platforms, %d devices, %d deployments\n",
		time.Now().Format(time.TimeOnly), s.OSes, s.Platforms, s.Devices, s.Deployments)
}
