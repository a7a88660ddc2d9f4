package domain

import "context"

// NopProjectObserver returns an inert ProjectObserver whose operations always
// succeed and do nothing. Filter hands it out for project names it absorbs.
func NopProjectObserver() ProjectObserver {
	return nopProject{}
}

type nopProject struct{}

func (nopProject) AddSource(Source) error { return nil }

func (nopProject) AddAttribute(string, any) error { return nil }

func (nopProject) Complete(context.Context) error { return nil }

// NopListener returns a ProgressListener that discards everything.
func NopListener() ProgressListener {
	return nopListener{}
}

type nopListener struct{}

func (nopListener) Logf(string, ...any) {}
