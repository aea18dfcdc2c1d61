package sqldb

import "context"

const findBlobByName = `SELECT name, payload, updated_at FROM blobs WHERE name = ?`

func (q *Queries) FindBlobByName(ctx context.Context, name string) (Blob, error) {
	row := q.db.QueryRowContext(ctx, findBlobByName, name)
	var i Blob
	err := row.Scan(&i.Name, &i.Payload, &i.UpdatedAt)
	return i, err
}

const listBlobs = `SELECT name, payload, updated_at FROM blobs ORDER BY name`

func (q *Queries) ListBlobs(ctx context.Context) ([]Blob, error) {
	rows, err := q.db.QueryContext(ctx, listBlobs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Blob
	for rows.Next() {
		var i Blob
		if err := rows.Scan(&i.Name, &i.Payload, &i.UpdatedAt); err != nil {
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

const upsertBlob = `INSERT INTO blobs (name, payload, updated_at)
VALUES (?, ?, CURRENT_TIMESTAMP)
ON CONFLICT(name) DO UPDATE SET payload = excluded.payload, updated_at = CURRENT_TIMESTAMP`

type UpsertBlobParams struct {
	Name    string
	Payload string
}

func (q *Queries) UpsertBlob(ctx context.Context, arg UpsertBlobParams) error {
	_, err := q.db.ExecContext(ctx, upsertBlob, arg.Name, arg.Payload)
	return err
}
