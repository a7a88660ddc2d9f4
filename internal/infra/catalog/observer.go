package catalog

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"scmkit/internal/domain"
)

// Owner is a minimal SourceOwner naming who the catalog collects for.
type Owner string

func (o Owner) OwnerName() string { return string(o) }

// ProjectRecord is one completed project as the catalog keeps it.
type ProjectRecord struct {
	Name        string         `json:"name"`
	RunID       string         `json:"runId"`
	SourceIDs   []string       `json:"sourceIds,omitempty"`
	Attributes  map[string]any `json:"attributes,omitempty"`
	CompletedAt time.Time      `json:"completedAt"`
}

// ObserverConfig configures a catalog observer. Owner is required; everything
// else has a working default.
type ObserverConfig struct {
	Owner domain.SourceOwner

	// Listener receives progress lines; defaults to a discarding sink.
	Listener domain.ProgressListener

	// Schema and ProjectSchema are the attribute vocabularies for the
	// organization and project level. Empty schemas reject every key.
	Schema        domain.AttributeSchema
	ProjectSchema domain.AttributeSchema

	// Includes, when non-empty, is advertised through Includes() as the
	// names this observer cares about.
	Includes []string

	// Store, when set, receives every completed record.
	Store *Store

	Logger *zap.Logger
}

// Observer is the consumer side of the discovery contract: it records every
// completed project into an in-memory catalog and optionally a Store.
//
// Observe enforces the one-call-per-name precondition, and the project
// observers it returns enforce the one-shot Complete.
type Observer struct {
	owner      domain.SourceOwner
	listener   domain.ProgressListener
	projSchema domain.AttributeSchema
	includes   map[string]struct{}
	store      *Store
	logger     *zap.Logger
	runID      string

	mu      sync.Mutex
	seen    map[string]struct{}
	attrs   *domain.AttributeSet
	records []ProjectRecord
}

func NewObserver(cfg ObserverConfig) *Observer {
	owner := cfg.Owner
	if owner == nil {
		owner = Owner("scmkit")
	}
	listener := cfg.Listener
	if listener == nil {
		listener = domain.NopListener()
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	var includes map[string]struct{}
	if len(cfg.Includes) > 0 {
		includes = make(map[string]struct{}, len(cfg.Includes))
		for _, name := range cfg.Includes {
			includes[name] = struct{}{}
		}
	}
	return &Observer{
		owner:      owner,
		listener:   listener,
		projSchema: cfg.ProjectSchema,
		includes:   includes,
		store:      cfg.Store,
		logger:     logger.Named("catalog"),
		runID:      uuid.NewString(),
		seen:       make(map[string]struct{}),
		attrs:      domain.NewAttributeSet(cfg.Schema),
	}
}

// RunID identifies this discovery run in every record the catalog produces.
func (o *Observer) RunID() string { return o.runID }

func (o *Observer) Context() domain.SourceOwner { return o.owner }

func (o *Observer) Listener() domain.ProgressListener { return o.listener }

func (o *Observer) Includes() map[string]struct{} {
	if o.includes == nil {
		return nil
	}
	includes := make(map[string]struct{}, len(o.includes))
	for name := range o.includes {
		includes[name] = struct{}{}
	}
	return includes
}

func (o *Observer) Observe(projectName string) (domain.ProjectObserver, error) {
	const op = "catalog.Observe"
	if err := domain.ValidateProjectName(projectName); err != nil {
		return nil, domain.Wrap(domain.CodeInvalidArgument, op, err)
	}

	o.mu.Lock()
	if _, dup := o.seen[projectName]; dup {
		o.mu.Unlock()
		return nil, domain.E(domain.CodeInvalidArgument, op, projectName, domain.ErrDuplicateProject)
	}
	o.seen[projectName] = struct{}{}
	o.mu.Unlock()

	o.logger.Debug("project observed", zap.String("project", projectName))
	return &projectObserver{
		parent: o,
		name:   projectName,
		attrs:  domain.NewAttributeSet(o.projSchema),
	}, nil
}

func (o *Observer) AddAttribute(key string, value any) error {
	if err := o.attrs.Set(key, value); err != nil {
		return domain.Wrap(domain.CodeInvalidArgument, "catalog.AddAttribute", err)
	}
	return nil
}

// Attributes returns the organization-level attributes recorded so far.
func (o *Observer) Attributes() map[string]any {
	return o.attrs.Values()
}

// Snapshot returns the completed project records, sorted by name.
func (o *Observer) Snapshot() []ProjectRecord {
	o.mu.Lock()
	records := make([]ProjectRecord, len(o.records))
	copy(records, o.records)
	o.mu.Unlock()
	sort.Slice(records, func(i, j int) bool { return records[i].Name < records[j].Name })
	return records
}

func (o *Observer) commit(record ProjectRecord) error {
	if o.store != nil {
		if err := o.store.Put(record); err != nil {
			return domain.Wrap(domain.CodeInternal, "catalog.commit", err)
		}
	}
	o.mu.Lock()
	o.records = append(o.records, record)
	o.mu.Unlock()
	o.listener.Logf("recorded project %s with %d source(s)", record.Name, len(record.SourceIDs))
	return nil
}

type projectObserver struct {
	parent *Observer
	name   string
	attrs  *domain.AttributeSet

	mu        sync.Mutex
	sources   []domain.Source
	completed bool
}

func (p *projectObserver) AddSource(source domain.Source) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.completed {
		return domain.E(domain.CodeInvalidState, "catalog.AddSource", p.name, domain.ErrAlreadyCompleted)
	}
	p.sources = append(p.sources, source)
	return nil
}

func (p *projectObserver) AddAttribute(key string, value any) error {
	if err := p.attrs.Set(key, value); err != nil {
		return domain.Wrap(domain.CodeInvalidArgument, "catalog.ProjectObserver.AddAttribute", err)
	}
	return nil
}

func (p *projectObserver) Complete(ctx context.Context) error {
	const op = "catalog.Complete"

	p.mu.Lock()
	if p.completed {
		p.mu.Unlock()
		return domain.E(domain.CodeInvalidState, op, p.name, domain.ErrAlreadyCompleted)
	}
	p.completed = true
	sources := p.sources
	p.mu.Unlock()

	if err := ctx.Err(); err != nil {
		// The project is not reliably recorded; the navigator should stop.
		return domain.Wrap(domain.CodeCanceled, op, err)
	}

	record := ProjectRecord{
		Name:        p.name,
		RunID:       p.parent.runID,
		Attributes:  p.attrs.Values(),
		CompletedAt: time.Now().UTC(),
	}
	for _, source := range sources {
		record.SourceIDs = append(record.SourceIDs, source.SourceID())
	}
	return p.parent.commit(record)
}

var _ domain.SourceObserver = (*Observer)(nil)
