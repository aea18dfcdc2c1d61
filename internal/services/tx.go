package services

import (
	"context"
	"fmt"

	"github.com/notebook-md/notebookmd/internal/database"
	sqldb "github.com/notebook-md/notebookmd/internal/database/sqlc"
)

func withTx(ctx context.Context, dbCtx *database.Context, owner string, fn func(context.Context, *sqldb.Queries) error) error {
	if dbCtx == nil || dbCtx.DB == nil {
		return fmt.Errorf("%s: missing database context", owner)
	}

	tx, err := dbCtx.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	queries := sqldb.New(tx)

	if err := fn(ctx, queries); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		_ = tx.Rollback()
		return err
	}

	return nil
}
