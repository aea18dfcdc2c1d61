package usecase

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"time"

	"github.com/notebook-md/notebookmd/internal/application"
	"github.com/notebook-md/notebookmd/internal/database"
	"github.com/notebook-md/notebookmd/internal/filesystem"
	"github.com/notebook-md/notebookmd/internal/services"
)

// ErrIntegrity is returned when a snapshot no longer matches its recorded hash.
var ErrIntegrity = errors.New("snapshot integrity check failed")

// Maintenance covers backup, restore and consistency checks.
type Maintenance struct {
	app     *application.App
	dbCtx   *database.Context
	backups *services.BackupService
	now     func() time.Time
}

func NewMaintenance(app *application.App, dbCtx *database.Context) *Maintenance {
	return &Maintenance{
		app:     app,
		dbCtx:   dbCtx,
		backups: services.NewBackupService(dbCtx),
		now:     time.Now,
	}
}

// Backup writes every store to a new snapshot directory and records it.
func (m *Maintenance) Backup(ctx context.Context, description *string) (*database.BackupRecord, error) {
	blobs, err := m.app.Snapshot()
	if err != nil {
		return nil, err
	}

	name := m.now().UTC().Format("20060102-150405.000000")
	dir, hash, err := filesystem.SaveSnapshot(name, blobs)
	if err != nil {
		return nil, fmt.Errorf("failed to write snapshot: %w", err)
	}

	id, err := m.backups.Record(ctx, dir, hash, description)
	if err != nil {
		_ = filesystem.DeleteSnapshot(dir)
		return nil, err
	}
	return m.backups.Get(ctx, id)
}

func (m *Maintenance) Backups(ctx context.Context) ([]database.BackupRecord, error) {
	return m.backups.List(ctx)
}

// Restore replaces the stores with a recorded backup after checking its hash.
// An id of 0 restores the latest backup.
func (m *Maintenance) Restore(ctx context.Context, id int64) (*database.BackupRecord, error) {
	record, err := m.backup(ctx, id)
	if err != nil {
		return nil, err
	}
	if !filesystem.FileExists(record.FilePath) {
		return nil, fmt.Errorf("backup %d: snapshot directory %s is missing: %w", record.ID, record.FilePath, ErrNotFound)
	}

	ok, err := filesystem.VerifySnapshot(record.FilePath, record.Hash)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("backup %d at %s: %w", record.ID, record.FilePath, ErrIntegrity)
	}
	return record, m.RestoreDir(ctx, record.FilePath)
}

// ForgetBackup drops a backup from the index and deletes its snapshot
// directory.
func (m *Maintenance) ForgetBackup(ctx context.Context, id int64) (*database.BackupRecord, error) {
	record, err := m.backup(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := m.backups.Forget(ctx, record.ID); err != nil {
		return nil, fmt.Errorf("failed to forget backup %d: %w", record.ID, err)
	}
	if err := filesystem.DeleteSnapshot(record.FilePath); err != nil {
		return record, fmt.Errorf("backup %d forgotten but %s could not be removed: %w", record.ID, record.FilePath, err)
	}
	return record, nil
}

// backup looks up a recorded backup. An id of 0 selects the latest one.
func (m *Maintenance) backup(ctx context.Context, id int64) (*database.BackupRecord, error) {
	var (
		record *database.BackupRecord
		err    error
	)
	if id == 0 {
		record, err = m.backups.Latest(ctx)
	} else {
		record, err = m.backups.Get(ctx, id)
	}
	if errors.Is(err, services.ErrNotFound) {
		return nil, fmt.Errorf("backup %d: %w", id, ErrNotFound)
	}
	return record, err
}

// Reset deletes every notebook, section and page, every backup record and
// every snapshot directory. It returns the number of snapshots removed.
func (m *Maintenance) Reset(ctx context.Context) (int, error) {
	removed := 0
	err := filesystem.WalkSnapshots(func(path string, _ fs.DirEntry) error {
		if err := filesystem.DeleteSnapshot(path); err != nil {
			return err
		}
		removed++
		return nil
	})
	if err != nil {
		return removed, fmt.Errorf("failed to remove snapshots: %w", err)
	}

	if err := database.ClearDatabase(ctx, m.dbCtx); err != nil {
		return removed, err
	}
	return removed, m.app.Discard()
}

// RestoreDir replaces the stores with the snapshot in dir without any hash
// check.
func (m *Maintenance) RestoreDir(ctx context.Context, dir string) error {
	blobs, err := filesystem.ReadSnapshot(dir)
	if err != nil {
		return fmt.Errorf("failed to read snapshot %s: %w", dir, err)
	}
	if len(blobs) == 0 {
		return fmt.Errorf("snapshot %s holds no store files: %w", dir, ErrInvalidInput)
	}
	return m.app.Replace(ctx, blobs)
}

// Report is the outcome of Doctor. Unindexed snapshot directories are listed
// but do not make the report unhealthy.
type Report struct {
	SchemaVersion uint
	Dirty         bool
	Blobs         []database.BlobRecord
	Problems      []string
	Unindexed     []string
}

// Healthy reports whether Doctor found nothing wrong.
func (r Report) Healthy() bool {
	return !r.Dirty && len(r.Problems) == 0
}

// Doctor inspects the database, checks every store invariant and compares the
// backups index with the snapshot directories on disk.
func (m *Maintenance) Doctor(ctx context.Context) (Report, error) {
	var report Report

	version, dirty, err := database.SchemaVersion(m.dbCtx)
	if err != nil {
		return report, err
	}
	report.SchemaVersion, report.Dirty = version, dirty

	report.Blobs, err = services.NewBlobService(m.dbCtx).List(ctx)
	if err != nil {
		return report, err
	}

	report.Problems = flatten(m.app.Check())

	backups, err := m.backups.List(ctx)
	if err != nil {
		return report, err
	}
	indexed := make(map[string]bool, len(backups))
	for _, b := range backups {
		indexed[filepath.Clean(b.FilePath)] = true
		if !filesystem.FileExists(b.FilePath) {
			report.Problems = append(report.Problems, fmt.Sprintf("backup %d: snapshot directory %s is missing", b.ID, b.FilePath))
		}
	}
	err = filesystem.WalkSnapshots(func(path string, _ fs.DirEntry) error {
		if !indexed[filepath.Clean(path)] {
			report.Unindexed = append(report.Unindexed, path)
		}
		return nil
	})
	if err != nil {
		return report, fmt.Errorf("failed to scan snapshots: %w", err)
	}
	return report, nil
}

// flatten expands joined errors into one message per leaf error.
func flatten(err error) []string {
	if err == nil {
		return nil
	}
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		var out []string
		for _, e := range joined.Unwrap() {
			out = append(out, flatten(e)...)
		}
		return out
	}
	return []string{err.Error()}
}
