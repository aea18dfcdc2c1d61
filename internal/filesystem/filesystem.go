// Package filesystem writes and reads backup snapshots: one directory per
// snapshot holding a JSON file for each persisted store.
package filesystem

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io/fs"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/notebook-md/notebookmd/internal/config"
)

const blobExt = ".json"

// ensureBackupsDir creates the backups directory. The data directory can
// change between calls through NOTEBOOK_DIR, so this is not cached.
func ensureBackupsDir() error {
	return os.MkdirAll(config.GetBackupsDir(), 0o750)
}

// GetSnapshotDir returns the directory for the named snapshot.
func GetSnapshotDir(name string) string {
	return filepath.Join(config.GetBackupsDir(), name)
}

// SaveSnapshot writes every blob to a new snapshot directory and returns the
// directory and the snapshot hash. An existing snapshot with the same name is
// never overwritten.
func SaveSnapshot(name string, blobs map[string][]byte) (string, string, error) {
	if err := ensureBackupsDir(); err != nil {
		return "", "", err
	}

	dir := GetSnapshotDir(name)
	if err := os.Mkdir(dir, 0o750); err != nil {
		return "", "", fmt.Errorf("failed to create snapshot %s: %w", name, err)
	}

	for blobName, payload := range blobs {
		if err := validBlobName(blobName); err != nil {
			return "", "", err
		}
		path := filepath.Join(dir, blobName+blobExt)
		if err := os.WriteFile(path, payload, 0o600); err != nil {
			return "", "", err
		}
	}

	return dir, calculateHash(blobs), nil
}

// ReadSnapshot loads every blob file in dir, keyed by blob name.
func ReadSnapshot(dir string) (map[string][]byte, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	blobs := make(map[string][]byte)
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), blobExt) {
			continue
		}
		//nolint:gosec // G304: dir comes from the backups index
		payload, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, err
		}
		blobs[strings.TrimSuffix(entry.Name(), blobExt)] = payload
	}
	return blobs, nil
}

// VerifySnapshot ensures the snapshot exists and its contents hash to
// expectedHash.
func VerifySnapshot(dir, expectedHash string) (bool, error) {
	if !FileExists(dir) {
		return false, nil
	}

	blobs, err := ReadSnapshot(dir)
	if err != nil {
		return false, err
	}
	return calculateHash(blobs) == expectedHash, nil
}

// DeleteSnapshot removes a snapshot directory if it exists.
func DeleteSnapshot(dir string) error {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return nil
	}
	return os.RemoveAll(dir)
}

// FileExists reports whether the given path exists.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// WalkFunc visits each snapshot directory.
type WalkFunc func(path string, d fs.DirEntry) error

// WalkSnapshots iterates over the snapshot directories in name order.
func WalkSnapshots(fn WalkFunc) error {
	dir := config.GetBackupsDir()
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return nil
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		if err := fn(filepath.Join(dir, entry.Name()), entry); err != nil {
			return err
		}
	}

	return nil
}

// calculateHash digests the blobs in name order so the result does not depend
// on map iteration.
func calculateHash(blobs map[string][]byte) string {
	h := sha256.New()
	for _, name := range slices.Sorted(maps.Keys(blobs)) {
		fmt.Fprintf(h, "%s\x00%d\x00", name, len(blobs[name]))
		h.Write(blobs[name])
	}
	return hex.EncodeToString(h.Sum(nil))
}

func validBlobName(name string) error {
	if name == "" || strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return fmt.Errorf("invalid blob name %q", name)
	}
	return nil
}
