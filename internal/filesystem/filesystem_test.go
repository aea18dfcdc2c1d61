package filesystem

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

func setupEnv(t *testing.T) string {
	t.Helper()
	tmp := t.TempDir()
	t.Setenv("NOTEBOOK_DIR", tmp)
	t.Setenv("XDG_DATA_HOME", "")
	return tmp
}

func TestSaveSnapshotReadAndVerify(t *testing.T) {
	tmp := setupEnv(t)
	blobs := map[string][]byte{
		"notebook-storage": []byte(`{"notebooks":{}}`),
		"page-storage":     []byte(`{"pages":{},"orderedPages":[]}`),
	}

	dir, hash, err := SaveSnapshot("20240301-090000", blobs)
	if err != nil {
		t.Fatalf("SaveSnapshot returned error: %v", err)
	}
	if want := filepath.Join(tmp, "backups", "20240301-090000"); dir != want {
		t.Fatalf("expected snapshot at %s, got %s", want, dir)
	}
	if _, err := os.Stat(filepath.Join(dir, "page-storage.json")); err != nil {
		t.Fatalf("expected blob file to exist: %v", err)
	}

	read, err := ReadSnapshot(dir)
	if err != nil {
		t.Fatalf("ReadSnapshot error: %v", err)
	}
	if len(read) != 2 || string(read["notebook-storage"]) != `{"notebooks":{}}` {
		t.Fatalf("unexpected snapshot contents: %v", read)
	}

	ok, err := VerifySnapshot(dir, hash)
	if err != nil {
		t.Fatalf("VerifySnapshot error: %v", err)
	}
	if !ok {
		t.Fatalf("VerifySnapshot expected true")
	}
}

func TestVerifySnapshotDetectsTampering(t *testing.T) {
	setupEnv(t)
	dir, hash, err := SaveSnapshot("snap", map[string][]byte{"page-storage": []byte(`{}`)})
	if err != nil {
		t.Fatalf("SaveSnapshot returned error: %v", err)
	}

	if err := os.WriteFile(filepath.Join(dir, "page-storage.json"), []byte(`{"x":1}`), 0o600); err != nil {
		t.Fatalf("failed to tamper: %v", err)
	}

	ok, err := VerifySnapshot(dir, hash)
	if err != nil {
		t.Fatalf("VerifySnapshot error: %v", err)
	}
	if ok {
		t.Fatalf("expected tampered snapshot to fail verification")
	}

	ok, err = VerifySnapshot(filepath.Join(dir, "missing"), hash)
	if err != nil || ok {
		t.Fatalf("expected missing snapshot to be unverified, got %v, %v", ok, err)
	}
}

func TestSaveSnapshotRefusesOverwrite(t *testing.T) {
	setupEnv(t)
	if _, _, err := SaveSnapshot("same", nil); err != nil {
		t.Fatalf("first SaveSnapshot returned error: %v", err)
	}
	if _, _, err := SaveSnapshot("same", nil); err == nil {
		t.Fatalf("expected second snapshot with the same name to fail")
	}
}

func TestSaveSnapshotRejectsPathNames(t *testing.T) {
	setupEnv(t)
	if _, _, err := SaveSnapshot("bad", map[string][]byte{"../escape": nil}); err == nil {
		t.Fatalf("expected blob name with a separator to be rejected")
	}
}

func TestHashIsOrderIndependent(t *testing.T) {
	a := calculateHash(map[string][]byte{"a": []byte("1"), "b": []byte("2")})
	b := calculateHash(map[string][]byte{"b": []byte("2"), "a": []byte("1")})
	if a != b {
		t.Fatalf("expected equal hashes, got %s and %s", a, b)
	}
	if a == calculateHash(map[string][]byte{"a": []byte("12")}) {
		t.Fatalf("expected different contents to hash differently")
	}
}

func TestWalkAndDeleteSnapshots(t *testing.T) {
	setupEnv(t)
	for _, name := range []string{"b", "a"} {
		if _, _, err := SaveSnapshot(name, nil); err != nil {
			t.Fatalf("SaveSnapshot(%s) error: %v", name, err)
		}
	}

	var seen []string
	err := WalkSnapshots(func(path string, d fs.DirEntry) error {
		seen = append(seen, d.Name())
		return nil
	})
	if err != nil {
		t.Fatalf("WalkSnapshots error: %v", err)
	}
	if len(seen) != 2 || seen[0] != "a" || seen[1] != "b" {
		t.Fatalf("unexpected snapshots %v", seen)
	}

	if err := DeleteSnapshot(GetSnapshotDir("a")); err != nil {
		t.Fatalf("DeleteSnapshot error: %v", err)
	}
	if FileExists(GetSnapshotDir("a")) {
		t.Fatalf("expected snapshot to be removed")
	}
	if err := DeleteSnapshot(GetSnapshotDir("a")); err != nil {
		t.Fatalf("second DeleteSnapshot error: %v", err)
	}
}

func TestWalkSnapshotsWithoutBackupsDir(t *testing.T) {
	setupEnv(t)
	called := false
	if err := WalkSnapshots(func(string, fs.DirEntry) error { called = true; return nil }); err != nil {
		t.Fatalf("WalkSnapshots error: %v", err)
	}
	if called {
		t.Fatalf("expected no callbacks")
	}
}
