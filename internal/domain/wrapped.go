package domain

// Wrapped is a transparent delegation base for SourceObserver decorators.
// Every operation forwards to the delegate unchanged, so a decorator embeds
// Wrapped and overrides only the behaviour it changes. Decorators must not
// swallow delegate errors or mutate what the delegate returns.
type Wrapped struct {
	delegate SourceObserver
}

// NewWrapped wraps delegate without changing any behaviour.
func NewWrapped(delegate SourceObserver) Wrapped {
	return Wrapped{delegate: delegate}
}

// Delegate returns the wrapped observer.
func (w Wrapped) Delegate() SourceObserver {
	return w.delegate
}

func (w Wrapped) Context() SourceOwner {
	return w.delegate.Context()
}

func (w Wrapped) Listener() ProgressListener {
	return w.delegate.Listener()
}

func (w Wrapped) Includes() map[string]struct{} {
	return w.delegate.Includes()
}

func (w Wrapped) Observe(projectName string) (ProjectObserver, error) {
	return w.delegate.Observe(projectName)
}

func (w Wrapped) AddAttribute(key string, value any) error {
	return w.delegate.AddAttribute(key, value)
}
