package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sqldb "github.com/notebook-md/notebookmd/internal/database/sqlc"
)

type BackupRepository struct {
	ctx *Context
}

func NewBackupRepository(dbCtx *Context) *BackupRepository {
	return &BackupRepository{ctx: dbCtx}
}

func (r *BackupRepository) Create(ctx context.Context, filePath, hash string, description *string) (int64, error) {
	queries := queriesFromContext(r.ctx)
	if queries == nil {
		return 0, fmt.Errorf("backup repository: missing database context")
	}

	res, err := queries.InsertBackup(ctx, sqldb.InsertBackupParams{
		FilePath:    filePath,
		Hash:        hash,
		Description: stringPtrToNullString(description),
	})
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r *BackupRepository) FindByID(ctx context.Context, id int64) (*BackupRecord, error) {
	queries := queriesFromContext(r.ctx)
	if queries == nil {
		return nil, fmt.Errorf("backup repository: missing database context")
	}

	row, err := queries.FindBackupByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	record := mapBackupRow(row)
	return &record, nil
}

// FindLatest returns nil, nil when no backup has been recorded.
func (r *BackupRepository) FindLatest(ctx context.Context) (*BackupRecord, error) {
	queries := queriesFromContext(r.ctx)
	if queries == nil {
		return nil, fmt.Errorf("backup repository: missing database context")
	}

	row, err := queries.FindLatestBackup(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	record := mapBackupRow(row)
	return &record, nil
}

// List returns backups newest first.
func (r *BackupRepository) List(ctx context.Context) ([]BackupRecord, error) {
	queries := queriesFromContext(r.ctx)
	if queries == nil {
		return nil, fmt.Errorf("backup repository: missing database context")
	}

	rows, err := queries.ListBackups(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]BackupRecord, 0, len(rows))
	for _, row := range rows {
		result = append(result, mapBackupRow(row))
	}
	return result, nil
}

func (r *BackupRepository) Delete(ctx context.Context, id int64) (bool, error) {
	queries := queriesFromContext(r.ctx)
	if queries == nil {
		return false, fmt.Errorf("backup repository: missing database context")
	}

	affected, err := queries.DeleteBackupByID(ctx, id)
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}
