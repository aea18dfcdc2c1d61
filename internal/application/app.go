// Package application holds the application state: the three stores, loaded
// from and persisted to the SQLite index.
package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/notebook-md/notebookmd/internal/database"
	"github.com/notebook-md/notebookmd/internal/services"
	"github.com/notebook-md/notebookmd/internal/store"
)

// App owns the stores for one session. Every committed mutation of a store
// writes that store's blob back to the database; a failed write is logged and
// does not undo the mutation.
type App struct {
	Notebooks *store.NotebookStore
	Sections  *store.SectionStore
	Pages     *store.PageStore

	blobs  *services.BlobService
	logger *slog.Logger
	ctx    context.Context

	// persistMu orders blob writes. Each write encodes the state current when
	// it holds the lock, so the last write always carries the newest commit.
	persistMu sync.Mutex
}

// Open builds the stores, loads any persisted blobs and starts persisting
// changes.
func Open(ctx context.Context, dbCtx *database.Context, logger *slog.Logger, opts ...store.Option) (*App, error) {
	if logger == nil {
		logger = slog.Default()
	}
	a := &App{
		Notebooks: store.NewNotebookStore(opts...),
		Sections:  store.NewSectionStore(opts...),
		Pages:     store.NewPageStore(opts...),
		blobs:     services.NewBlobService(dbCtx),
		logger:    logger,
		ctx:       context.WithoutCancel(ctx),
	}

	for _, p := range a.persistent() {
		if err := a.load(ctx, p); err != nil {
			return nil, err
		}
		p.Subscribe(func() { a.persist(p) })
	}
	return a, nil
}

func (a *App) persistent() []store.Persistent {
	return []store.Persistent{a.Notebooks, a.Sections, a.Pages}
}

func (a *App) load(ctx context.Context, p store.Persistent) error {
	payload, err := a.blobs.Load(ctx, p.BlobName())
	if errors.Is(err, services.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if err := p.LoadBlob(payload); err != nil {
		return err
	}
	a.logger.Debug("loaded store", "blob", p.BlobName(), "bytes", len(payload))
	return nil
}

func (a *App) persist(p store.Persistent) {
	a.persistMu.Lock()
	defer a.persistMu.Unlock()

	payload, err := p.MarshalBlob()
	if err == nil {
		err = a.blobs.Save(a.ctx, p.BlobName(), payload)
	}
	if err != nil {
		a.logger.Error("failed to persist store", "blob", p.BlobName(), "err", err)
		return
	}
	a.logger.Debug("persisted store", "blob", p.BlobName(), "bytes", len(payload))
}

// Snapshot returns the current blob of every store, keyed by blob name.
func (a *App) Snapshot() (map[string][]byte, error) {
	out := make(map[string][]byte, 3)
	for _, p := range a.persistent() {
		payload, err := p.MarshalBlob()
		if err != nil {
			return nil, fmt.Errorf("failed to encode %s: %w", p.BlobName(), err)
		}
		out[p.BlobName()] = payload
	}
	return out, nil
}

// Flush writes every store in a single transaction.
func (a *App) Flush(ctx context.Context) error {
	a.persistMu.Lock()
	defer a.persistMu.Unlock()

	snapshot, err := a.Snapshot()
	if err != nil {
		return err
	}
	if err := a.blobs.SaveAll(ctx, snapshot); err != nil {
		return fmt.Errorf("failed to flush stores: %w", err)
	}
	return nil
}

// Replace loads the given blobs into the stores and flushes them. Stores
// whose blob is absent are cleared. Nothing is changed if any blob fails to
// decode.
func (a *App) Replace(ctx context.Context, blobs map[string][]byte) error {
	staged := []store.Persistent{store.NewNotebookStore(), store.NewSectionStore(), store.NewPageStore()}
	for _, p := range staged {
		payload, ok := blobs[p.BlobName()]
		if !ok {
			continue
		}
		if err := p.LoadBlob(payload); err != nil {
			return err
		}
	}

	for _, p := range a.persistent() {
		payload, ok := blobs[p.BlobName()]
		if !ok {
			payload = emptyBlob(p.BlobName())
		}
		if err := p.LoadBlob(payload); err != nil {
			return err
		}
	}
	return a.Flush(ctx)
}

// Discard empties every store in memory without writing to the database.
func (a *App) Discard() error {
	for _, p := range a.persistent() {
		if err := p.LoadBlob(emptyBlob(p.BlobName())); err != nil {
			return err
		}
	}
	return nil
}

func emptyBlob(name string) []byte {
	switch name {
	case store.NotebookBlob:
		return []byte(`{"notebooks":{}}`)
	case store.SectionBlob:
		return []byte(`{"sections":{}}`)
	default:
		return []byte(`{"pages":{},"orderedPages":[]}`)
	}
}
