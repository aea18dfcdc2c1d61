package sqldb

import "database/sql"

type Blob struct {
	Name      string
	Payload   string
	UpdatedAt sql.NullTime
}

type Backup struct {
	ID          int64
	FilePath    string
	Hash        string
	Description sql.NullString
	CreatedAt   sql.NullTime
}
