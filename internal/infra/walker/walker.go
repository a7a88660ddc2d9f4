package walker

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"scmkit/internal/domain"
)

const defaultConcurrency = 4

// DirSource is the candidate source the walker emits for a checkout it finds
// on disk.
type DirSource struct {
	// Path is the absolute path of the project directory.
	Path string
	// Kind names the checkout type, currently always "git".
	Kind string
}

func (s DirSource) SourceID() string {
	return fmt.Sprintf("%s:%s", s.Kind, s.Path)
}

// Walker is a navigator over a local directory tree: every immediate
// subdirectory of Root is a project, and a project containing a .git entry
// contributes one DirSource.
//
// Projects are processed by a bounded pool of workers. Each project name is
// presented to the observer exactly once per run, so concurrent workers stay
// within the observer contract.
type Walker struct {
	root        string
	concurrency int
	logger      *zap.Logger
}

type Option func(*Walker)

func WithConcurrency(n int) Option {
	return func(w *Walker) {
		if n > 0 {
			w.concurrency = n
		}
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(w *Walker) {
		if logger != nil {
			w.logger = logger.Named("walker")
		}
	}
}

func New(root string, opts ...Option) *Walker {
	w := &Walker{
		root:        root,
		concurrency: defaultConcurrency,
		logger:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Visit enumerates projects under the walker's root and reports them to
// observer. The observer's Includes set is honoured as a skip hint: projects
// outside it are never opened. The first observer or filesystem error aborts
// the run.
func (w *Walker) Visit(ctx context.Context, observer domain.SourceObserver) error {
	entries, err := os.ReadDir(w.root)
	if err != nil {
		return fmt.Errorf("read root %s: %w", w.root, err)
	}

	includes := observer.Includes()
	listener := observer.Listener()

	var names []string
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		name := entry.Name()
		if includes != nil {
			if _, wanted := includes[name]; !wanted {
				w.logger.Debug("skipping project outside includes", zap.String("project", name))
				continue
			}
		}
		names = append(names, name)
	}
	sort.Strings(names)
	listener.Logf("walking %s: %d candidate project(s)", w.root, len(names))

	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(w.concurrency)
	for _, name := range names {
		name := name
		group.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return w.visitProject(ctx, observer, name)
		})
	}
	return group.Wait()
}

func (w *Walker) visitProject(ctx context.Context, observer domain.SourceObserver, name string) error {
	project, err := observer.Observe(name)
	if err != nil {
		return err
	}

	dir := filepath.Join(w.root, name)
	if info, err := os.Stat(filepath.Join(dir, ".git")); err == nil && info.IsDir() {
		if err := project.AddSource(DirSource{Path: dir, Kind: "git"}); err != nil {
			return err
		}
	}

	if err := project.Complete(ctx); err != nil {
		return fmt.Errorf("complete %s: %w", name, err)
	}
	w.logger.Debug("project completed", zap.String("project", name))
	return nil
}
