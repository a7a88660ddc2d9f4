package app

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"scmkit/internal/domain"
	"scmkit/internal/infra/catalog"
	"scmkit/internal/infra/telemetry"
	"scmkit/internal/infra/walker"
)

// Report is the outcome of one discovery run.
type Report struct {
	RunID      string
	Owner      string
	Records    []catalog.ProjectRecord
	Attributes map[string]any
	Duration   time.Duration
}

// Runner wires a directory walker to a catalog observer through the
// decorator chain: walker -> filter -> metrics -> catalog.
type Runner struct {
	cfg     Config
	logger  *zap.Logger
	metrics *telemetry.DiscoveryMetrics
	store   *catalog.Store
}

func NewRunner(cfg Config, logger *zap.Logger, registerer prometheus.Registerer) (*Runner, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	var store *catalog.Store
	if cfg.DB != "" {
		var err error
		store, err = catalog.OpenStore(cfg.DB)
		if err != nil {
			return nil, err
		}
	}
	var metrics *telemetry.DiscoveryMetrics
	if registerer != nil {
		metrics = telemetry.NewDiscoveryMetrics(registerer)
	}
	return &Runner{
		cfg:     cfg,
		logger:  logger.Named("runner"),
		metrics: metrics,
		store:   store,
	}, nil
}

// Close releases the catalog store, if one was opened.
func (r *Runner) Close() error {
	if r.store == nil {
		return nil
	}
	return r.store.Close()
}

// Run performs one discovery pass over the configured root. Every run uses a
// fresh observer chain, so repeated runs see repeated project names without
// tripping the one-observe-per-name rule.
func (r *Runner) Run(ctx context.Context) (*Report, error) {
	consumer := catalog.NewObserver(catalog.ObserverConfig{
		Owner:    catalog.Owner(r.cfg.Owner),
		Listener: telemetry.NewZapListener(r.logger),
		Includes: r.cfg.Includes,
		Store:    r.store,
		Logger:   r.logger,
	})

	var observer domain.SourceObserver = consumer
	if r.metrics != nil {
		observer = telemetry.NewMetricsObserver(observer, r.metrics)
	}
	if len(r.cfg.Includes) > 0 {
		observer = domain.NewFilter(observer, r.cfg.Includes...)
	}

	w := walker.New(r.cfg.Root,
		walker.WithConcurrency(r.cfg.Concurrency),
		walker.WithLogger(r.logger),
	)

	start := time.Now()
	if err := w.Visit(ctx, observer); err != nil {
		return nil, err
	}
	report := &Report{
		RunID:      consumer.RunID(),
		Owner:      r.cfg.Owner,
		Records:    consumer.Snapshot(),
		Attributes: consumer.Attributes(),
		Duration:   time.Since(start),
	}
	r.logger.Info("discovery run finished",
		zap.String("run_id", report.RunID),
		zap.Int("projects", len(report.Records)),
		zap.Duration("duration", report.Duration),
	)
	return report, nil
}

// Watch runs discovery once, then again after every settled change under the
// root, reporting each pass through onReport. It blocks until ctx is
// cancelled.
func (r *Runner) Watch(ctx context.Context, onReport func(*Report)) error {
	w := walker.New(r.cfg.Root,
		walker.WithConcurrency(r.cfg.Concurrency),
		walker.WithLogger(r.logger),
	)
	debounce := time.Duration(r.cfg.DebounceMillis) * time.Millisecond
	return w.Watch(ctx, debounce, func(ctx context.Context) error {
		report, err := r.Run(ctx)
		if err != nil {
			return err
		}
		if onReport != nil {
			onReport(report)
		}
		return nil
	})
}
