package database

import "time"

// BlobRecord is one row of the blobs table: the JSON state of a single store,
// keyed by the store's blob name.
type BlobRecord struct {
	Name      string
	Payload   []byte
	UpdatedAt time.Time
}

// BackupRecord describes an exported snapshot directory and the checksum of
// its manifest.
type BackupRecord struct {
	ID          int64
	FilePath    string
	Hash        string
	Description *string
	CreatedAt   time.Time
}
