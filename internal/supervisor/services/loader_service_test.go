// Kaiserhaus - Retail Order Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kaiserhaus

package services

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/thejerf/suture/v4"

	"github.com/tomtom215/kaiserhaus/internal/table"
)

type fakeLoader struct {
	err   error
	calls atomic.Int32
}

func (f *fakeLoader) Load(_ context.Context, _ table.Source) error {
	f.calls.Add(1)
	return f.err
}

func TestTableLoaderService_Interface(t *testing.T) {
	var _ suture.Service = (*TableLoaderService)(nil)
	var _ TableLoader = (*table.Store)(nil)
}

func waitDone(t *testing.T, svc *TableLoaderService) {
	t.Helper()
	select {
	case <-svc.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("load did not finish")
	}
}

func TestTableLoaderService_Serve(t *testing.T) {
	t.Run("loads once and idles until canceled", func(t *testing.T) {
		loader := &fakeLoader{}
		svc := NewTableLoaderService(loader, table.Source{Path: "orders.csv"})

		ctx, cancel := context.WithCancel(context.Background())
		errCh := make(chan error, 1)
		go func() { errCh <- svc.Serve(ctx) }()

		waitDone(t, svc)
		if svc.Err() != nil {
			t.Errorf("Err() = %v, want nil", svc.Err())
		}

		select {
		case err := <-errCh:
			t.Fatalf("Serve returned early: %v", err)
		case <-time.After(50 * time.Millisecond):
		}

		cancel()
		if err := <-errCh; !errors.Is(err, context.Canceled) {
			t.Errorf("Serve() = %v, want context.Canceled", err)
		}
		if loader.calls.Load() != 1 {
			t.Errorf("Load calls = %d, want 1", loader.calls.Load())
		}
	})

	t.Run("reports a failed load without crashing", func(t *testing.T) {
		loadErr := errors.New("no such file")
		svc := NewTableLoaderService(&fakeLoader{err: loadErr}, table.Source{Path: "missing.xlsx"})

		ctx, cancel := context.WithCancel(context.Background())
		errCh := make(chan error, 1)
		go func() { errCh <- svc.Serve(ctx) }()

		waitDone(t, svc)
		if !errors.Is(svc.Err(), loadErr) {
			t.Errorf("Err() = %v, want %v", svc.Err(), loadErr)
		}

		cancel()
		if err := <-errCh; !errors.Is(err, context.Canceled) {
			t.Errorf("Serve() = %v, want context.Canceled", err)
		}
	})
}

func TestTableLoaderService_LoadsStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orders.csv")
	if err := os.WriteFile(path, []byte("id_pedido,valor_total\n1,10.5\n2,20\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	store := table.NewStore(table.DefaultOptions())
	svc := NewTableLoaderService(store, table.Source{Path: path})

	sup := suture.New("test-data", suture.Spec{Timeout: time.Second})
	sup.Add(svc)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := sup.ServeBackground(ctx)

	waitDone(t, svc)
	if err := store.Ready(); err != nil {
		t.Errorf("store.Ready() = %v, want nil", err)
	}
	if rows := store.Info().Rows; rows != 2 {
		t.Errorf("rows = %d, want 2", rows)
	}

	cancel()
	<-errCh
}

func TestTableLoaderService_String(t *testing.T) {
	if got := NewTableLoaderService(&fakeLoader{}, table.Source{}).String(); got != "table-loader" {
		t.Errorf("String() = %q, want table-loader", got)
	}
}
