package domain

import "context"

// SourceOwner identifies who is asking for sources, typically the folder or
// organization on whose behalf a discovery run executes. Observers reference
// the owner, they never manage its lifecycle.
type SourceOwner interface {
	// OwnerName returns a stable display name for the owner.
	OwnerName() string
}

// ProgressListener is an append-only progress sink shared by everyone
// involved in a discovery run.
type ProgressListener interface {
	// Logf appends one formatted progress line.
	Logf(format string, args ...any)
}

// Source describes one candidate source within a project. The descriptor is
// opaque to this package: whatever machinery later instantiates it owns it,
// and observers must not mutate it.
type Source interface {
	// SourceID returns a stable identifier for the candidate source.
	SourceID() string
}

// SourceObserver is the callback a navigator drives while enumerating remote
// projects. One instance serves one discovery run.
//
// A navigator must call Observe at most once per distinct project name on a
// given instance and should consult Includes to skip enumeration work the
// observer does not care about.
type SourceObserver interface {
	// Context returns the owner of the discovery run. Never nil.
	Context() SourceOwner

	// Listener returns the progress sink for the run. Never nil.
	Listener() ProgressListener

	// Includes returns the set of project names this observer is interested
	// in, or nil when it is interested in everything. The result is a hint:
	// producers are not required to honour it, and callers must not mutate
	// the returned map.
	Includes() map[string]struct{}

	// Observe declares that a new project, such as a source repository, has
	// been found. The returned ProjectObserver must be completed exactly
	// once. Observe fails with an invalid-argument error if projectName was
	// already presented to this instance.
	Observe(projectName string) (ProjectObserver, error)

	// AddAttribute records organization-level metadata. It fails with an
	// invalid-argument error if key is not in the observer's vocabulary or
	// was already set, and with a type-mismatch error if value has the wrong
	// type for key.
	AddAttribute(key string, value any) error
}

// IncludeEverything provides the default Includes behaviour for observers
// interested in every project name: embed it and Includes reports no
// restriction.
type IncludeEverything struct{}

func (IncludeEverything) Includes() map[string]struct{} { return nil }

// ProjectObserver collects the description of a single project between its
// Observe call and Complete. Instances are single-use: after Complete returns
// or fails, the observer is retired.
type ProjectObserver interface {
	// AddSource appends one candidate source to the project. It may be
	// called any number of times, including zero, before Complete.
	AddSource(source Source) error

	// AddAttribute records project-level metadata with the same contract as
	// SourceObserver.AddAttribute.
	AddAttribute(key string, value any) error

	// Complete finalizes the project. Calling it a second time fails with an
	// invalid-state error. Complete may block on downstream processing; if
	// ctx is cancelled while it does, the cancellation is returned to the
	// caller, which should stop enumerating.
	Complete(ctx context.Context) error
}
