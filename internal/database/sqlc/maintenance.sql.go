package sqldb

import "context"

const deleteAllBlobs = `DELETE FROM blobs`

func (q *Queries) DeleteAllBlobs(ctx context.Context) error {
	_, err := q.db.ExecContext(ctx, deleteAllBlobs)
	return err
}

const deleteAllBackups = `DELETE FROM backups`

func (q *Queries) DeleteAllBackups(ctx context.Context) error {
	_, err := q.db.ExecContext(ctx, deleteAllBackups)
	return err
}
