package telemetry

import (
	"context"
	"time"

	"scmkit/internal/domain"
)

// MetricsObserver is a transparent decorator that counts what flows through
// the observer contract. It changes no behaviour: every call forwards to the
// delegate and every error passes through untouched.
type MetricsObserver struct {
	domain.Wrapped

	metrics *DiscoveryMetrics
	owner   string
}

func NewMetricsObserver(delegate domain.SourceObserver, metrics *DiscoveryMetrics) *MetricsObserver {
	return &MetricsObserver{
		Wrapped: domain.NewWrapped(delegate),
		metrics: metrics,
		owner:   delegate.Context().OwnerName(),
	}
}

func (o *MetricsObserver) Observe(projectName string) (domain.ProjectObserver, error) {
	project, err := o.Wrapped.Observe(projectName)
	if err != nil {
		return nil, err
	}
	o.metrics.ObserveProject(o.owner)
	return &metricsProject{delegate: project, metrics: o.metrics, owner: o.owner}, nil
}

type metricsProject struct {
	delegate domain.ProjectObserver
	metrics  *DiscoveryMetrics
	owner    string
}

func (p *metricsProject) AddSource(source domain.Source) error {
	if err := p.delegate.AddSource(source); err != nil {
		return err
	}
	p.metrics.ObserveSource(p.owner)
	return nil
}

func (p *metricsProject) AddAttribute(key string, value any) error {
	return p.delegate.AddAttribute(key, value)
}

func (p *metricsProject) Complete(ctx context.Context) error {
	start := time.Now()
	err := p.delegate.Complete(ctx)
	p.metrics.ObserveComplete(p.owner, time.Since(start), err)
	return err
}
