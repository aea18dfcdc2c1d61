package services

import (
	"context"
	"fmt"
	"maps"
	"slices"

	"github.com/notebook-md/notebookmd/internal/database"
	sqldb "github.com/notebook-md/notebookmd/internal/database/sqlc"
)

// ErrNotFound is returned when a requested blob or backup does not exist.
var ErrNotFound = database.ErrNotFound

// BlobService persists store snapshots as named JSON blobs.
type BlobService struct {
	ctx *database.Context
}

// NewBlobService creates a new BlobService.
func NewBlobService(ctx *database.Context) *BlobService {
	return &BlobService{ctx: ctx}
}

// Load returns the payload stored under name, or ErrNotFound.
func (s *BlobService) Load(ctx context.Context, name string) ([]byte, error) {
	record, err := database.NewBlobRepository(s.ctx).FindByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to load blob %s: %w", name, err)
	}
	if record == nil {
		return nil, ErrNotFound
	}
	return record.Payload, nil
}

// Save stores a single payload. One statement needs no transaction.
func (s *BlobService) Save(ctx context.Context, name string, payload []byte) error {
	if err := database.NewBlobRepository(s.ctx).Upsert(ctx, name, payload); err != nil {
		return fmt.Errorf("failed to save blob %s: %w", name, err)
	}
	return nil
}

// SaveAll writes every payload in one transaction, so either all blobs are
// updated or none are.
func (s *BlobService) SaveAll(ctx context.Context, payloads map[string][]byte) error {
	return s.withTx(ctx, func(txCtx context.Context, q *sqldb.Queries) error {
		for _, name := range slices.Sorted(maps.Keys(payloads)) {
			if err := q.UpsertBlob(txCtx, sqldb.UpsertBlobParams{Name: name, Payload: string(payloads[name])}); err != nil {
				return fmt.Errorf("failed to save blob %s: %w", name, err)
			}
		}
		return nil
	})
}

// List returns every stored blob ordered by name.
func (s *BlobService) List(ctx context.Context) ([]database.BlobRecord, error) {
	records, err := database.NewBlobRepository(s.ctx).List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list blobs: %w", err)
	}
	return records, nil
}

func (s *BlobService) withTx(ctx context.Context, fn func(context.Context, *sqldb.Queries) error) error {
	return withTx(ctx, s.ctx, "blob service", fn)
}
