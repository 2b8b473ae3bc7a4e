// Package loader reads libosinfo XML metadata into a catalog database.
package loader

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/opmodel/osinfo/internal/core"
	oerrors "github.com/opmodel/osinfo/internal/errors"
	"github.com/opmodel/osinfo/internal/output"
)

// metadataExt is the extension of metadata documents inside data
// directories. Files passed explicitly are loaded regardless of extension.
const metadataExt = ".xml"

// Loader parses metadata files into a database.
type Loader struct {
	db      *core.DB
	workers int
}

// Option configures a Loader.
type Option func(*Loader)

// WithWorkers bounds the number of files parsed concurrently.
func WithWorkers(n int) Option {
	return func(l *Loader) {
		if n > 0 {
			l.workers = n
		}
	}
}

// WithDB loads into an existing database instead of a fresh one.
func WithDB(db *core.DB) Option {
	return func(l *Loader) {
		l.db = db
	}
}

// New creates a loader with an empty database.
func New(opts ...Option) *Loader {
	l := &Loader{
		db:      core.NewDB(),
		workers: runtime.GOMAXPROCS(0),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// DB returns the database being populated.
func (l *Loader) DB() *core.DB {
	return l.db
}

// ProcessPath loads a single file, or every metadata file below a
// directory.
func (l *Loader) ProcessPath(ctx context.Context, path string) error {
	return l.ProcessPaths(ctx, path)
}

// ProcessPaths loads every given file or directory. Files are parsed
// concurrently and applied in path order, so the resulting database does
// not depend on scheduling.
func (l *Loader) ProcessPaths(ctx context.Context, paths ...string) error {
	var files []string
	for _, p := range paths {
		found, err := collectFiles(p)
		if err != nil {
			return err
		}
		files = append(files, found...)
	}
	return l.processFiles(ctx, files)
}

// ProcessDefaultPath loads the system, local and user data directories.
// A file in a later directory replaces the file with the same relative
// path in an earlier one. Missing directories are skipped.
func (l *Loader) ProcessDefaultPath(ctx context.Context) error {
	return l.ProcessRoots(ctx, DefaultRoots()...)
}

// ProcessRoots loads overlaid data directories in precedence order, lowest
// first.
func (l *Loader) ProcessRoots(ctx context.Context, roots ...string) error {
	files, err := overlayFiles(roots)
	if err != nil {
		return err
	}
	return l.processFiles(ctx, files)
}

func (l *Loader) processFiles(ctx context.Context, files []string) error {
	start := time.Now()

	docs := make([]*document, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(l.workers)

	for i, path := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			doc, err := parseFile(path)
			if err != nil {
				return err
			}
			docs[i] = doc
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for _, doc := range docs {
		if err := ctx.Err(); err != nil {
			return err
		}
		a := &applier{db: l.db, doc: doc}
		if err := a.apply(); err != nil {
			return err
		}
	}

	output.Debug("catalog loaded",
		"files", len(files),
		"workers", l.workers,
		"duration", time.Since(start),
	)
	return nil
}

func parseFile(path string) (*document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, openError(path, err)
	}
	defer f.Close()

	return parseDocument(path, f)
}

func openError(path string, err error) error {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return oerrors.NewNotFoundError("metadata path does not exist", path,
			"Check --data-dir or the OSINFO_*_DIR environment variables")
	case errors.Is(err, fs.ErrPermission):
		return oerrors.NewPermissionError("cannot read metadata", map[string]string{"Path": path}, "")
	default:
		return fmt.Errorf("opening %s: %w", path, err)
	}
}

// collectFiles expands path into the metadata files it names, in lexical
// order.
func collectFiles(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, openError(path, err)
	}
	if !info.IsDir() {
		return []string{path}, nil
	}

	var files []string
	err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if p != path && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(p) == metadataExt {
			files = append(files, p)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", path, err)
	}
	slices.Sort(files)
	return files, nil
}

// overlayFiles resolves the files of overlaid roots. For each relative
// path the last root providing it wins. The result is ordered by relative
// path.
func overlayFiles(roots []string) ([]string, error) {
	winners := make(map[string]string)
	for _, root := range roots {
		if root == "" {
			continue
		}
		if _, err := os.Stat(root); errors.Is(err, fs.ErrNotExist) {
			output.Debug("skipping missing data directory", "path", root)
			continue
		}
		files, err := collectFiles(root)
		if err != nil {
			return nil, err
		}
		for _, f := range files {
			rel, err := filepath.Rel(root, f)
			if err != nil {
				return nil, fmt.Errorf("resolving %s: %w", f, err)
			}
			if prev, ok := winners[rel]; ok {
				output.Debug("metadata file overridden", "file", rel, "previous", prev, "by", f)
			}
			winners[rel] = f
		}
	}

	rels := make([]string, 0, len(winners))
	for rel := range winners {
		rels = append(rels, rel)
	}
	slices.Sort(rels)

	files := make([]string, len(rels))
	for i, rel := range rels {
		files[i] = winners[rel]
	}
	return files, nil
}
