package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sqldb "github.com/notebook-md/notebookmd/internal/database/sqlc"
)

type BlobRepository struct {
	ctx *Context
}

func NewBlobRepository(dbCtx *Context) *BlobRepository {
	return &BlobRepository{ctx: dbCtx}
}

// FindByName returns nil, nil when no blob has been stored under name.
func (r *BlobRepository) FindByName(ctx context.Context, name string) (*BlobRecord, error) {
	queries := queriesFromContext(r.ctx)
	if queries == nil {
		return nil, fmt.Errorf("blob repository: missing database context")
	}

	row, err := queries.FindBlobByName(ctx, name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	record := mapBlobRow(row)
	return &record, nil
}

func (r *BlobRepository) List(ctx context.Context) ([]BlobRecord, error) {
	queries := queriesFromContext(r.ctx)
	if queries == nil {
		return nil, fmt.Errorf("blob repository: missing database context")
	}

	rows, err := queries.ListBlobs(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]BlobRecord, 0, len(rows))
	for _, row := range rows {
		result = append(result, mapBlobRow(row))
	}
	return result, nil
}

func (r *BlobRepository) Upsert(ctx context.Context, name string, payload []byte) error {
	queries := queriesFromContext(r.ctx)
	if queries == nil {
		return fmt.Errorf("blob repository: missing database context")
	}

	return queries.UpsertBlob(ctx, sqldb.UpsertBlobParams{Name: name, Payload: string(payload)})
}
