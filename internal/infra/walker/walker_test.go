package walker

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scmkit/internal/domain"
	"scmkit/internal/infra/catalog"
)

// failingObserver rejects every Observe call with a fixed error.
type failingObserver struct {
	domain.IncludeEverything
	err error
}

func (f failingObserver) Context() domain.SourceOwner { return catalog.Owner("acme") }

func (f failingObserver) Listener() domain.ProgressListener { return domain.NopListener() }

func (f failingObserver) AddAttribute(string, any) error { return nil }

func (f failingObserver) Observe(projectName string) (domain.ProjectObserver, error) {
	return nil, domain.E(domain.CodeInvalidArgument, "failing.Observe", projectName, f.err)
}

func fixtureRoot(t *testing.T, projects map[string]bool) string {
	t.Helper()
	root := t.TempDir()
	for name, hasGit := range projects {
		dir := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(dir, 0o755))
		if hasGit {
			require.NoError(t, os.MkdirAll(filepath.Join(dir, ".git"), 0o755))
		}
	}
	// A stray file must not be reported as a project.
	require.NoError(t, os.WriteFile(filepath.Join(root, "README.md"), []byte("x"), 0o644))
	return root
}

func TestVisitReportsProjects(t *testing.T) {
	root := fixtureRoot(t, map[string]bool{
		"alpha": true,
		"beta":  false,
		"gamma": true,
	})
	observer := catalog.NewObserver(catalog.ObserverConfig{Owner: catalog.Owner("acme")})

	w := New(root)
	require.NoError(t, w.Visit(context.Background(), observer))

	records := observer.Snapshot()
	require.Len(t, records, 3)
	assert.Equal(t, "alpha", records[0].Name)
	assert.Equal(t, []string{"git:" + filepath.Join(root, "alpha")}, records[0].SourceIDs)
	assert.Equal(t, "beta", records[1].Name)
	assert.Empty(t, records[1].SourceIDs)
	assert.Equal(t, "gamma", records[2].Name)
}

func TestVisitHonoursIncludesHint(t *testing.T) {
	root := fixtureRoot(t, map[string]bool{
		"alpha": true,
		"beta":  true,
		"gamma": true,
	})
	consumer := catalog.NewObserver(catalog.ObserverConfig{Owner: catalog.Owner("acme")})
	filter := domain.NewFilter(consumer, "alpha", "gamma")

	w := New(root)
	require.NoError(t, w.Visit(context.Background(), filter))

	records := consumer.Snapshot()
	require.Len(t, records, 2)
	assert.Equal(t, "alpha", records[0].Name)
	assert.Equal(t, "gamma", records[1].Name)
}

func TestVisitConcurrent(t *testing.T) {
	projects := make(map[string]bool)
	for _, name := range []string{"p0", "p1", "p2", "p3", "p4", "p5", "p6", "p7"} {
		projects[name] = false
	}
	root := fixtureRoot(t, projects)
	observer := catalog.NewObserver(catalog.ObserverConfig{Owner: catalog.Owner("acme")})

	w := New(root, WithConcurrency(8))
	require.NoError(t, w.Visit(context.Background(), observer))
	assert.Len(t, observer.Snapshot(), len(projects))
}

func TestVisitPropagatesObserverError(t *testing.T) {
	root := fixtureRoot(t, map[string]bool{"alpha": false})
	observer := failingObserver{err: domain.ErrDuplicateProject}

	w := New(root)
	err := w.Visit(context.Background(), observer)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrDuplicateProject)
}

func TestVisitMissingRoot(t *testing.T) {
	observer := catalog.NewObserver(catalog.ObserverConfig{Owner: catalog.Owner("acme")})
	w := New(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, w.Visit(context.Background(), observer))
}
