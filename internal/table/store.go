// Kaiserhaus - Retail Order Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kaiserhaus

package table

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/tomtom215/kaiserhaus/internal/logging"
	"github.com/tomtom215/kaiserhaus/internal/metrics"
	"github.com/tomtom215/kaiserhaus/internal/schema"
)

// Options tune load-time coercion and derived columns.
type Options struct {
	// CoerceRatio is the share of parseable cells needed to type a column.
	// Default: 0.9
	CoerceRatio float64

	// LateThresholdMinutes marks an order late when no ETA is available.
	// Default: 45
	LateThresholdMinutes float64
}

// DefaultOptions returns the production defaults.
func DefaultOptions() Options {
	return Options{
		CoerceRatio:          DefaultCoerceRatio,
		LateThresholdMinutes: 45,
	}
}

// LoadInfo describes the completed load.
type LoadInfo struct {
	Path     string        `json:"path"`
	Format   string        `json:"format"`
	Rows     int           `json:"rows"`
	Columns  int           `json:"columns"`
	LoadedAt time.Time     `json:"loaded_at"`
	Duration time.Duration `json:"-"`
}

// Store owns the single Table of the process.
type Store struct {
	opts Options
	once sync.Once

	mu       sync.RWMutex
	table    *Table
	resolver *schema.Resolver
	loadErr  error
	info     LoadInfo

	// deriveMu serializes derived column construction.
	deriveMu sync.Mutex
}

// NewStore creates an empty store. Call Load before serving traffic.
func NewStore(opts Options) *Store {
	if opts.CoerceRatio <= 0 || opts.CoerceRatio > 1 {
		opts.CoerceRatio = DefaultCoerceRatio
	}
	if opts.LateThresholdMinutes <= 0 {
		opts.LateThresholdMinutes = DefaultOptions().LateThresholdMinutes
	}
	return &Store{opts: opts}
}

// NewStoreWithTable creates a store that is already loaded with t.
// Subsequent Load calls are no-ops.
func NewStoreWithTable(t *Table, opts Options) *Store {
	s := NewStore(opts)
	s.once.Do(func() {
		s.table = t
		s.resolver = schema.NewResolver(t.ColumnNames())
		s.info = LoadInfo{Format: "memory", Rows: t.Rows(), Columns: len(t.columns), LoadedAt: time.Now()}
	})
	return s
}

// Load reads the source exactly once. Later calls return the first outcome.
// Any failure wraps ErrDataUnavailable.
func (s *Store) Load(ctx context.Context, src Source) error {
	s.once.Do(func() {
		s.load(ctx, src)
	})
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadErr
}

func (s *Store) load(ctx context.Context, src Source) {
	start := time.Now()
	format := src.DetectFormat()
	log := logging.WithComponent("table")

	t, err := s.read(ctx, src, format)
	duration := time.Since(start)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.loadErr = fmt.Errorf("%w: %s: %w", ErrDataUnavailable, src.Path, err)
		metrics.RecordTableLoad(format, 0, 0, duration, err)
		log.Error().Err(err).Str("path", src.Path).Str("format", format).Msg("Failed to load order table")
		return
	}

	s.table = t
	s.resolver = schema.NewResolver(t.ColumnNames())
	s.info = LoadInfo{
		Path:     src.Path,
		Format:   format,
		Rows:     t.Rows(),
		Columns:  len(t.columns),
		LoadedAt: time.Now(),
		Duration: duration,
	}
	metrics.RecordTableLoad(format, t.Rows(), len(t.columns), duration, nil)
	log.Info().
		Str("path", src.Path).
		Str("format", format).
		Int("rows", t.Rows()).
		Int("columns", len(t.columns)).
		Dur("duration", duration).
		Msg("Order table loaded")
}

func (s *Store) read(ctx context.Context, src Source, format string) (*Table, error) {
	rd, err := readerFor(format)
	if err != nil {
		return nil, err
	}
	raw, err := rd.Read(ctx, src)
	if err != nil {
		return nil, err
	}
	return fromCells(raw.header, raw.cells, s.opts.CoerceRatio)
}

// Get returns the loaded table, or an error wrapping ErrDataUnavailable.
func (s *Store) Get() (*Table, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.table == nil {
		if s.loadErr != nil {
			return nil, s.loadErr
		}
		return nil, fmt.Errorf("%w: table not loaded", ErrDataUnavailable)
	}
	return s.table, nil
}

// Resolver returns the store-scoped schema resolver.
func (s *Store) Resolver() (*schema.Resolver, error) {
	if _, err := s.Get(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.resolver, nil
}

// Ready reports whether the store can serve queries.
func (s *Store) Ready() error {
	_, err := s.Get()
	return err
}

// Info returns details of the completed load.
func (s *Store) Info() LoadInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.info
}

// Options returns the effective options.
func (s *Store) Options() Options {
	return s.opts
}

// Lookup resolves the first resolvable field among fields to a source column.
// An override for any of the fields is honored.
func (s *Store) Lookup(ov schema.Overrides, fields ...schema.Field) (*Column, bool) {
	t, err := s.Get()
	if err != nil {
		return nil, false
	}
	r, _ := s.Resolver()
	return lookup(t, r, ov, fields...)
}

// Require is Lookup that fails with a *schema.FieldUnresolvedError naming the
// first field, or with ErrDataUnavailable.
func (s *Store) Require(ov schema.Overrides, fields ...schema.Field) (*Column, error) {
	t, err := s.Get()
	if err != nil {
		return nil, err
	}
	r, _ := s.Resolver()
	if c, ok := lookup(t, r, ov, fields...); ok {
		return c, nil
	}
	return nil, unresolved(ov, fields...)
}

func lookup(t *Table, r *schema.Resolver, ov schema.Overrides, fields ...schema.Field) (*Column, bool) {
	name, ok := r.ResolveFirst(firstOverride(ov, fields...), fields...)
	if !ok {
		return nil, false
	}
	return t.Column(name)
}

func firstOverride(ov schema.Overrides, fields ...schema.Field) string {
	for _, f := range fields {
		if o := ov.Get(f); o != "" {
			return o
		}
	}
	return ""
}

func unresolved(ov schema.Overrides, fields ...schema.Field) error {
	var field schema.Field
	if len(fields) > 0 {
		field = fields[0]
	}
	return &schema.FieldUnresolvedError{Field: field, Override: firstOverride(ov, fields...)}
}
