package domain

import "sync"

// Filter narrows the set of project names a delegate observer will see.
//
// Each watched name is forwarded at most once: the first Observe for a
// watched name reaches the delegate, any repeat and any unwatched name is
// absorbed by an inert ProjectObserver instead of erroring. The check and
// remove on the remaining set is a single atomic step, so concurrent
// producers racing on the same name cannot both reach the delegate.
type Filter struct {
	Wrapped

	watch map[string]struct{}

	mu        sync.Mutex
	remaining map[string]struct{}
}

// NewFilter wraps delegate so that only the given project names are
// forwarded. Duplicate names collapse into one entry.
func NewFilter(delegate SourceObserver, projectNames ...string) *Filter {
	watch := make(map[string]struct{}, len(projectNames))
	remaining := make(map[string]struct{}, len(projectNames))
	for _, name := range projectNames {
		watch[name] = struct{}{}
		remaining[name] = struct{}{}
	}
	return &Filter{
		Wrapped:   NewWrapped(delegate),
		watch:     watch,
		remaining: remaining,
	}
}

// Includes reports the original watch set, not the shrinking consumption
// state. The returned map is a copy.
func (f *Filter) Includes() map[string]struct{} {
	includes := make(map[string]struct{}, len(f.watch))
	for name := range f.watch {
		includes[name] = struct{}{}
	}
	return includes
}

func (f *Filter) Observe(projectName string) (ProjectObserver, error) {
	f.mu.Lock()
	_, watched := f.remaining[projectName]
	if watched {
		delete(f.remaining, projectName)
	}
	f.mu.Unlock()

	if !watched {
		return NopProjectObserver(), nil
	}
	return f.Wrapped.Observe(projectName)
}
