package snapshot

import (
	"path/filepath"
	"testing"
	"time"

	bolt "go.etcd.io/bbolt"
)

func openTestDB(t *testing.T) *bolt.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.db")
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() {
		if closeErr := db.Close(); closeErr != nil {
			t.Errorf("failed to close test database: %v", closeErr)
		}
	})
	return db
}

func TestBoltFingerprintStore(t *testing.T) {
	t.Parallel()

	store, err := NewBoltFingerprintStore(openTestDB(t))
	if err != nil {
		t.Fatalf("NewBoltFingerprintStore() error = %v", err)
	}

	if _, found, getErr := store.Get("missing.csv"); getErr != nil || found {
		t.Errorf("Get(missing) = found %v, err %v; want absent", found, getErr)
	}

	fp := Fingerprint{Size: 2048, ModTime: 1717400000, Rows: 57}
	if err := store.Put("data/a.csv", fp); err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	got, found, err := store.Get("data/a.csv")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if !found {
		t.Fatal("Get() found = false after Put")
	}
	if got != fp {
		t.Errorf("Get() = %+v, want %+v", got, fp)
	}

	// Overwrites replace the stored fingerprint.
	fp.Size = 4096
	if err := store.Put("data/a.csv", fp); err != nil {
		t.Fatalf("Put() overwrite error = %v", err)
	}
	got, _, err = store.Get("data/a.csv")
	if err != nil {
		t.Fatalf("Get() after overwrite error = %v", err)
	}
	if got.Size != 4096 {
		t.Errorf("Get().Size = %d, want 4096", got.Size)
	}
}

func TestBoltFingerprintStore_Persistence(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "test.db")

	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}

	store, err := NewBoltFingerprintStore(db)
	if err != nil {
		t.Fatalf("NewBoltFingerprintStore() error = %v", err)
	}
	fp := Fingerprint{Size: 100, ModTime: 1717400000, Rows: 3}
	if err := store.Put("a.csv", fp); err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	if err := db.Close(); err != nil {
		t.Fatalf("failed to close database: %v", err)
	}

	// Reopen: the fingerprint must survive the process boundary.
	db, err = bolt.Open(path, 0600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		t.Fatalf("failed to reopen database: %v", err)
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			t.Errorf("failed to close database: %v", closeErr)
		}
	}()

	store, err = NewBoltFingerprintStore(db)
	if err != nil {
		t.Fatalf("NewBoltFingerprintStore() reopen error = %v", err)
	}
	got, found, err := store.Get("a.csv")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if !found || got != fp {
		t.Errorf("Get() after reopen = (%+v, %v), want (%+v, true)", got, found, fp)
	}
}
