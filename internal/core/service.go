package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"chemcore/internal/infra/persistence/memory"
	"chemcore/pkg/domain"
)

// Service exposes the inventory operations of the core schema. All read and
// write access to inventory data passes through it; the store, rules engine,
// and side-effect capabilities are injected rather than held globally.
type Service struct {
	store      domain.PersistentStore
	engine     *RulesEngine
	plugins    map[string]PluginMetadata
	logger     Logger
	metrics    MetricsRecorder
	tracer     Tracer
	linkOpener LinkOpener
	documents  SDSDocumentStore
}

// Option customizes service construction.
type Option func(*Service)

// WithLogger attaches a diagnostics logger.
func WithLogger(logger Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithMetricsRecorder attaches an operation metrics recorder.
func WithMetricsRecorder(metrics MetricsRecorder) Option {
	return func(s *Service) {
		if metrics != nil {
			s.metrics = metrics
		}
	}
}

// WithTracer attaches an operation tracer.
func WithTracer(tracer Tracer) Option {
	return func(s *Service) {
		if tracer != nil {
			s.tracer = tracer
		}
	}
}

// WithLinkOpener injects the capability used to open SDS source links in the
// host environment.
func WithLinkOpener(opener LinkOpener) Option {
	return func(s *Service) {
		if opener != nil {
			s.linkOpener = opener
		}
	}
}

// WithSDSDocumentStore attaches a blob backend for captured SDS documents.
func WithSDSDocumentStore(store SDSDocumentStore) Option {
	return func(s *Service) {
		if store != nil {
			s.documents = store
		}
	}
}

// NewService constructs a service backed by the supplied store and engine.
func NewService(store domain.PersistentStore, engine *RulesEngine, opts ...Option) *Service {
	s := &Service{
		store:   store,
		engine:  engine,
		plugins: make(map[string]PluginMetadata),
		logger:  noopLogger{},
		metrics: noopMetrics{},
		tracer:  noopTracer{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewInMemoryService creates a service over a fresh in-memory store with the
// default rules engine.
func NewInMemoryService(opts ...Option) *Service {
	engine := NewDefaultRulesEngine()
	return NewService(memory.NewStore(engine), engine, opts...)
}

// Store returns the underlying storage implementation.
func (s *Service) Store() domain.PersistentStore {
	return s.store
}

// observe wraps an operation with tracing, metrics, and warn logging of rule
// violations.
func (s *Service) observe(ctx context.Context, operation string) (context.Context, func(res Result, err error)) {
	start := time.Now()
	ctx, span := s.tracer.Start(ctx, operation)
	return ctx, func(res Result, err error) {
		span.End(err)
		s.metrics.Observe(ctx, operation, err == nil, time.Since(start))
		for _, v := range res.Violations {
			switch v.Severity {
			case SeverityWarn, SeverityBlock:
				s.logger.Warnf("rule %s: %s", v.Rule, v.Message)
			default:
				s.logger.Infof("rule %s: %s", v.Rule, v.Message)
			}
		}
		if err != nil {
			s.logger.Errorf("%s: %v", operation, err)
		}
	}
}

func (s *Service) auditChanges(changes []Change) {
	for _, change := range changes {
		payload, perr := domain.NewChangePayloadFromValue(change.After)
		if change.Action == ActionDelete {
			payload, perr = domain.NewChangePayloadFromValue(change.Before)
		}
		if perr != nil || payload.IsEmpty() {
			s.logger.Infof("audit %s %s", change.Action, change.Entity)
			continue
		}
		s.logger.Infof("audit %s %s %s", change.Action, change.Entity, payload.Raw())
	}
}

// AddChemical appends a record to the inventory. The operation always
// succeeds; rule findings (duplicate identifiers, unknown categories,
// incomplete SDS fields) are returned as warn-severity violations.
func (s *Service) AddChemical(ctx context.Context, record ChemicalRecord) (ChemicalRecord, Result, error) {
	ctx, done := s.observe(ctx, "add_chemical")
	var created ChemicalRecord
	res, err := s.store.RunInTransaction(ctx, func(tx domain.Transaction) error {
		var err error
		created, err = tx.AddChemical(record)
		return err
	})
	done(res, err)
	if err == nil {
		s.auditChanges([]Change{{Entity: EntityChemical, Action: ActionCreate, After: created}})
	}
	return created, res, err
}

// RemoveChemical deletes every record matching id and reports how many were
// removed. Removing an absent identifier succeeds with a zero count.
func (s *Service) RemoveChemical(ctx context.Context, id string) (int, Result, error) {
	ctx, done := s.observe(ctx, "remove_chemical")
	var removed int
	res, err := s.store.RunInTransaction(ctx, func(tx domain.Transaction) error {
		removed = tx.RemoveChemical(id)
		return nil
	})
	done(res, err)
	return removed, res, err
}

// GetChemical returns the first record with the given identifier. Absence is
// reported through the boolean, never as an error.
func (s *Service) GetChemical(ctx context.Context, id string) (ChemicalRecord, bool) {
	_, done := s.observe(ctx, "get_chemical")
	record, ok := s.store.GetChemical(id)
	done(Result{}, nil)
	return record, ok
}

// ListChemicals returns the full inventory in insertion order.
func (s *Service) ListChemicals(ctx context.Context) []ChemicalRecord {
	_, done := s.observe(ctx, "list_chemicals")
	out := s.store.ListChemicals()
	done(Result{}, nil)
	return out
}

// SearchChemicals returns records matching the query per the substring
// semantics of the store. An empty query returns everything.
func (s *Service) SearchChemicals(ctx context.Context, query string) []ChemicalRecord {
	_, done := s.observe(ctx, "search_chemicals")
	out := s.store.SearchChemicals(query)
	done(Result{}, nil)
	return out
}

// Categories enumerates the distinct categories currently present.
func (s *Service) Categories(ctx context.Context) []string {
	_, done := s.observe(ctx, "categories")
	out := s.store.Categories()
	done(Result{}, nil)
	return out
}

// FilterByCategory returns records whose category matches exactly.
func (s *Service) FilterByCategory(ctx context.Context, category string) []ChemicalRecord {
	_, done := s.observe(ctx, "filter_by_category")
	out := s.store.FilterByCategory(category)
	done(Result{}, nil)
	return out
}

var errAlreadySeeded = errors.New("inventory already seeded")

// Seed loads the demo inventory when the store is empty. Calling Seed on a
// populated store is a no-op. The emptiness check runs inside the
// transaction so concurrent callers cannot both observe an empty store and
// seed twice.
func (s *Service) Seed(ctx context.Context) (Result, error) {
	ctx, done := s.observe(ctx, "seed")
	res, err := s.store.RunInTransaction(ctx, func(tx domain.Transaction) error {
		if len(tx.Snapshot().ListChemicals()) > 0 {
			return errAlreadySeeded
		}
		for _, record := range domain.SeedRecords() {
			if _, err := tx.AddChemical(record); err != nil {
				return err
			}
		}
		return nil
	})
	if errors.Is(err, errAlreadySeeded) {
		res, err = Result{}, nil
	}
	done(res, err)
	return res, err
}

// Subscribe forwards a change listener to the store. The returned function
// cancels the subscription.
func (s *Service) Subscribe(listener ChangeListener) func() {
	return s.store.Subscribe(listener)
}

// InstallPlugin registers a plugin, wiring its rules into the active engine.
func (s *Service) InstallPlugin(plugin Plugin) (PluginMetadata, error) {
	if plugin == nil {
		return PluginMetadata{}, fmt.Errorf("plugin cannot be nil")
	}
	if s.plugins == nil {
		s.plugins = make(map[string]PluginMetadata)
	}
	if _, ok := s.plugins[plugin.Name()]; ok {
		return PluginMetadata{}, fmt.Errorf("plugin %s already registered", plugin.Name())
	}

	registry := NewPluginRegistry()
	if err := plugin.Register(registry); err != nil {
		return PluginMetadata{}, err
	}

	for _, rule := range registry.Rules() {
		s.engine.Register(rule)
	}

	meta := PluginMetadata{
		Name:    plugin.Name(),
		Version: plugin.Version(),
		Schemas: registry.Schemas(),
	}
	s.plugins[plugin.Name()] = meta
	return meta, nil
}

// RegisteredPlugins returns metadata describing installed plugins.
func (s *Service) RegisteredPlugins() []PluginMetadata {
	out := make([]PluginMetadata, 0, len(s.plugins))
	for _, meta := range s.plugins {
		out = append(out, meta)
	}
	return out
}
