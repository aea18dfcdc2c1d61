package services

import (
	"context"
	"fmt"

	"github.com/notebook-md/notebookmd/internal/database"
)

// BackupService keeps the index of exported snapshot directories.
type BackupService struct {
	ctx *database.Context
}

// NewBackupService creates a new BackupService.
func NewBackupService(ctx *database.Context) *BackupService {
	return &BackupService{ctx: ctx}
}

// Record registers an exported snapshot and returns its id.
func (s *BackupService) Record(ctx context.Context, filePath, hash string, description *string) (int64, error) {
	id, err := database.NewBackupRepository(s.ctx).Create(ctx, filePath, hash, description)
	if err != nil {
		return 0, fmt.Errorf("failed to record backup %s: %w", filePath, err)
	}
	return id, nil
}

// Get returns the backup with the given id, or ErrNotFound.
func (s *BackupService) Get(ctx context.Context, id int64) (*database.BackupRecord, error) {
	record, err := database.NewBackupRepository(s.ctx).FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, ErrNotFound
	}
	return record, nil
}

// Latest returns the most recent backup, or ErrNotFound when there is none.
func (s *BackupService) Latest(ctx context.Context) (*database.BackupRecord, error) {
	record, err := database.NewBackupRepository(s.ctx).FindLatest(ctx)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, ErrNotFound
	}
	return record, nil
}

// List returns every backup, newest first.
func (s *BackupService) List(ctx context.Context) ([]database.BackupRecord, error) {
	return database.NewBackupRepository(s.ctx).List(ctx)
}

// Forget drops the index row. The snapshot directory is left on disk.
func (s *BackupService) Forget(ctx context.Context, id int64) (bool, error) {
	return database.NewBackupRepository(s.ctx).Delete(ctx, id)
}
