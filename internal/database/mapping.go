package database

import sqldb "github.com/notebook-md/notebookmd/internal/database/sqlc"

func mapBlobRow(row sqldb.Blob) BlobRecord {
	return BlobRecord{
		Name:      row.Name,
		Payload:   []byte(row.Payload),
		UpdatedAt: optionalTime(row.UpdatedAt),
	}
}

func mapBackupRow(row sqldb.Backup) BackupRecord {
	return BackupRecord{
		ID:          row.ID,
		FilePath:    row.FilePath,
		Hash:        row.Hash,
		Description: optionalStringPtr(row.Description),
		CreatedAt:   optionalTime(row.CreatedAt),
	}
}
