// Kaiserhaus - Retail Order Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kaiserhaus

package services

import (
	"context"
	"sync"

	"github.com/tomtom215/kaiserhaus/internal/logging"
	"github.com/tomtom215/kaiserhaus/internal/table"
)

// TableLoader loads the order table. Satisfied by *table.Store.
type TableLoader interface {
	Load(ctx context.Context, src table.Source) error
}

// TableLoaderService loads the order table once under the data layer.
//
// A load outcome is final: the store never retries, so after loading the
// service waits for shutdown instead of returning and being restarted.
type TableLoaderService struct {
	loader TableLoader
	source table.Source

	done     chan struct{}
	doneOnce sync.Once
	mu       sync.Mutex
	err      error
}

// NewTableLoaderService creates a loader for src.
func NewTableLoaderService(loader TableLoader, src table.Source) *TableLoaderService {
	return &TableLoaderService{
		loader: loader,
		source: src,
		done:   make(chan struct{}),
	}
}

// Serve implements suture.Service.
func (s *TableLoaderService) Serve(ctx context.Context) error {
	err := s.loader.Load(ctx, s.source)
	s.finish(err)

	if err != nil {
		log := logging.WithComponent("table-loader")
		log.Warn().Err(err).
			Str("path", s.source.Path).
			Msg("Serving without order data")
	}

	<-ctx.Done()
	return ctx.Err()
}

func (s *TableLoaderService) finish(err error) {
	s.doneOnce.Do(func() {
		s.mu.Lock()
		s.err = err
		s.mu.Unlock()
		close(s.done)
	})
}

// Done is closed once the first load attempt has finished.
func (s *TableLoaderService) Done() <-chan struct{} {
	return s.done
}

// Err returns the load error after Done is closed.
func (s *TableLoaderService) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// String implements fmt.Stringer.
func (s *TableLoaderService) String() string {
	return "table-loader"
}
