package snapshot

import (
	"encoding/json"
	"fmt"
	"sync"

	bolt "go.etcd.io/bbolt"
)

var (
	bucketFingerprints = []byte("file_fingerprints") // Path -> Fingerprint
)

// boltFingerprintStore implements FingerprintStore using BoltDB.
type boltFingerprintStore struct {
	db *bolt.DB
	mu sync.RWMutex
}

// NewBoltFingerprintStore creates a BoltDB-based fingerprint store.
//
// Parameters:
//   - db: BoltDB database instance
//
// Returns:
//   - Configured FingerprintStore
//   - Error if the bucket cannot be created
func NewBoltFingerprintStore(db *bolt.DB) (FingerprintStore, error) {
	if err := db.Update(func(tx *bolt.Tx) error {
		_, createErr := tx.CreateBucketIfNotExists(bucketFingerprints)
		return createErr
	}); err != nil {
		return nil, fmt.Errorf("failed to create fingerprints bucket: %w", err)
	}

	return &boltFingerprintStore{
		db: db,
	}, nil
}

// Get implements FingerprintStore.Get.
func (s *boltFingerprintStore) Get(path string) (Fingerprint, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var (
		fp    Fingerprint
		found bool
	)

	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketFingerprints)
		data := b.Get([]byte(path))

		if data == nil {
			return nil
		}

		if unmarshalErr := json.Unmarshal(data, &fp); unmarshalErr != nil {
			return fmt.Errorf("failed to unmarshal fingerprint: %w", unmarshalErr)
		}

		found = true
		return nil
	})

	if err != nil {
		return Fingerprint{}, false, err
	}

	return fp, found, nil
}

// Put implements FingerprintStore.Put.
func (s *boltFingerprintStore) Put(path string, fp Fingerprint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketFingerprints)

		data, err := json.Marshal(fp)
		if err != nil {
			return fmt.Errorf("failed to marshal fingerprint: %w", err)
		}

		if putErr := b.Put([]byte(path), data); putErr != nil {
			return fmt.Errorf("failed to store fingerprint: %w", putErr)
		}

		return nil
	})
}

// memoryFingerprintStore implements FingerprintStore with an in-memory
// map. Useful for testing.
type memoryFingerprintStore struct {
	fingerprints map[string]Fingerprint
	mu           sync.RWMutex
}

// NewMemoryFingerprintStore creates an in-memory fingerprint store.
//
// Returns a configured FingerprintStore. Useful for testing or when
// persistence is not needed.
func NewMemoryFingerprintStore() FingerprintStore {
	return &memoryFingerprintStore{
		fingerprints: make(map[string]Fingerprint),
	}
}

// Get implements FingerprintStore.Get.
func (s *memoryFingerprintStore) Get(path string) (Fingerprint, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	fp, exists := s.fingerprints[path]
	return fp, exists, nil
}

// Put implements FingerprintStore.Put.
func (s *memoryFingerprintStore) Put(path string, fp Fingerprint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.fingerprints[path] = fp
	return nil
}
