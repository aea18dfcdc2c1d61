package database

import (
	"context"
	"testing"
)

func TestBlobRepositoryLifecycle(t *testing.T) {
	ctx := context.Background()
	dbCtx := setupTestDB(t)
	repo := NewBlobRepository(dbCtx)

	missing, err := repo.FindByName(ctx, "page-storage")
	if err != nil {
		t.Fatalf("FindByName returned error: %v", err)
	}
	if missing != nil {
		t.Fatalf("expected nil record, got %#v", missing)
	}

	if err := repo.Upsert(ctx, "page-storage", []byte(`{"v":1}`)); err != nil {
		t.Fatalf("Upsert returned error: %v", err)
	}
	if err := repo.Upsert(ctx, "page-storage", []byte(`{"v":2}`)); err != nil {
		t.Fatalf("second Upsert returned error: %v", err)
	}

	record, err := repo.FindByName(ctx, "page-storage")
	if err != nil {
		t.Fatalf("FindByName returned error: %v", err)
	}
	if record == nil || string(record.Payload) != `{"v":2}` {
		t.Fatalf("expected latest payload, got %#v", record)
	}
	if record.UpdatedAt.IsZero() {
		t.Fatalf("expected updated_at to be set")
	}

	if err := repo.Upsert(ctx, "notebook-storage", []byte(`{}`)); err != nil {
		t.Fatalf("Upsert returned error: %v", err)
	}
	all, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(all) != 2 || all[0].Name != "notebook-storage" || all[1].Name != "page-storage" {
		t.Fatalf("unexpected blob list: %#v", all)
	}
}

func TestBackupRepositoryLifecycle(t *testing.T) {
	ctx := context.Background()
	dbCtx := setupTestDB(t)
	repo := NewBackupRepository(dbCtx)

	latest, err := repo.FindLatest(ctx)
	if err != nil {
		t.Fatalf("FindLatest returned error: %v", err)
	}
	if latest != nil {
		t.Fatalf("expected no backups, got %#v", latest)
	}

	note := "before cleanup"
	firstID, err := repo.Create(ctx, "/backups/one", "aaa", &note)
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	secondID, err := repo.Create(ctx, "/backups/two", "bbb", nil)
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	first, err := repo.FindByID(ctx, firstID)
	if err != nil {
		t.Fatalf("FindByID returned error: %v", err)
	}
	if first == nil || first.Description == nil || *first.Description != note {
		t.Fatalf("expected description to round trip, got %#v", first)
	}

	latest, err = repo.FindLatest(ctx)
	if err != nil {
		t.Fatalf("FindLatest returned error: %v", err)
	}
	if latest == nil || latest.ID != secondID || latest.Description != nil {
		t.Fatalf("expected latest backup %d, got %#v", secondID, latest)
	}

	list, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(list) != 2 || list[0].ID != secondID {
		t.Fatalf("expected newest first, got %#v", list)
	}

	if _, err := repo.Create(ctx, "/backups/one", "ccc", nil); err == nil {
		t.Fatalf("expected duplicate file path to be rejected")
	}

	deleted, err := repo.Delete(ctx, firstID)
	if err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if !deleted {
		t.Fatalf("expected delete to remove record")
	}
	if got, _ := repo.FindByID(ctx, firstID); got != nil {
		t.Fatalf("expected deleted backup to be gone, got %#v", got)
	}
}

func TestRepositoriesRequireContext(t *testing.T) {
	ctx := context.Background()
	if _, err := NewBlobRepository(nil).List(ctx); err == nil {
		t.Fatal("expected error without database context")
	}
	if _, err := NewBackupRepository(nil).List(ctx); err == nil {
		t.Fatal("expected error without database context")
	}
}
