package cmdutil

import (
	"context"
	"fmt"
	"os"

	"github.com/opmodel/osinfo/internal/catalog"
	"github.com/opmodel/osinfo/internal/core"
	"github.com/opmodel/osinfo/internal/loader"
	"github.com/opmodel/osinfo/internal/output"
)

// LoadCatalog loads metadata from dirs, or from the default data
// directories when dirs is empty. A spinner is shown on a terminal.
func LoadCatalog(ctx context.Context, dirs []string) (*core.DB, error) {
	l := loader.New()
	err := output.RunWithSpinner(ctx, func() error {
		if len(dirs) == 0 {
			return l.ProcessDefaultPath(ctx)
		}
		return l.ProcessPaths(ctx, dirs...)
	}, output.WithTitle("Loading catalog..."))
	if err != nil {
		return nil, err
	}

	stats := l.DB().Stats()
	output.Debug("catalog loaded",
		"oses", stats.OSes,
		"platforms", stats.Platforms,
		"devices", stats.Devices,
		"deployments", stats.Deployments,
	)
	return l.DB(), nil
}

// LoadDocument returns an exported catalog document for path. Exported
// YAML or JSON files are read as-is. Anything else is loaded as metadata
// and exported.
func LoadDocument(ctx context.Context, path string) (*catalog.Document, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	if !info.IsDir() && catalog.IsDocumentPath(path) {
		return catalog.ReadDocument(path)
	}
	db, err := LoadCatalog(ctx, []string{path})
	if err != nil {
		return nil, err
	}
	return catalog.Export(db), nil
}
