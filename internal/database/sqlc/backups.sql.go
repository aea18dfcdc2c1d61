package sqldb

import (
	"context"
	"database/sql"
)

const insertBackup = `INSERT INTO backups (file_path, hash, description) VALUES (?, ?, ?)`

type InsertBackupParams struct {
	FilePath    string
	Hash        string
	Description sql.NullString
}

func (q *Queries) InsertBackup(ctx context.Context, arg InsertBackupParams) (sql.Result, error) {
	return q.db.ExecContext(ctx, insertBackup, arg.FilePath, arg.Hash, arg.Description)
}

const findBackupByID = `SELECT id, file_path, hash, description, created_at FROM backups WHERE id = ?`

func (q *Queries) FindBackupByID(ctx context.Context, id int64) (Backup, error) {
	row := q.db.QueryRowContext(ctx, findBackupByID, id)
	var i Backup
	err := row.Scan(&i.ID, &i.FilePath, &i.Hash, &i.Description, &i.CreatedAt)
	return i, err
}

const findLatestBackup = `SELECT id, file_path, hash, description, created_at FROM backups ORDER BY id DESC LIMIT 1`

func (q *Queries) FindLatestBackup(ctx context.Context) (Backup, error) {
	row := q.db.QueryRowContext(ctx, findLatestBackup)
	var i Backup
	err := row.Scan(&i.ID, &i.FilePath, &i.Hash, &i.Description, &i.CreatedAt)
	return i, err
}

const listBackups = `SELECT id, file_path, hash, description, created_at FROM backups ORDER BY id DESC`

func (q *Queries) ListBackups(ctx context.Context) ([]Backup, error) {
	rows, err := q.db.QueryContext(ctx, listBackups)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Backup
	for rows.Next() {
		var i Backup
		if err := rows.Scan(&i.ID, &i.FilePath, &i.Hash, &i.Description, &i.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const deleteBackupByID = `DELETE FROM backups WHERE id = ?`

func (q *Queries) DeleteBackupByID(ctx context.Context, id int64) (int64, error) {
	result, err := q.db.ExecContext(ctx, deleteBackupByID, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
