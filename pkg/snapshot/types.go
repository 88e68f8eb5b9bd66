// Package snapshot owns the record set lifecycle for kutir-report.
//
// A Snapshot is one immutable view of all ingested attendance records.
// The Manager builds snapshots from the discovered data files and swaps
// the current reference atomically on Reload; the aggregation engine
// only ever receives a snapshot reference per call and never manages
// this lifecycle itself.
//
// Example usage:
//
//	mgr, err := snapshot.NewManager(cfg, disc, src, store, log)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	snap, err := mgr.Reload()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result := agg.Aggregate(snap.Records(), period.Weekly)
package snapshot

import (
	"time"

	"github.com/parivaar/kutir-report/pkg/record"
)

// Snapshot is one immutable view of the ingested record set.
//
// Snapshots are safe to share across concurrent readers; nothing
// mutates them after construction.
type Snapshot struct {
	records  []record.AttendanceRecord
	files    []string
	stats    record.Stats
	loadedAt time.Time
}

// Records returns the snapshot's record set.
//
// The returned slice is owned by the snapshot: callers must treat it as
// read-only. Consumers that filter use record.Filter.Apply, which never
// mutates its input.
func (s *Snapshot) Records() []record.AttendanceRecord {
	return s.records
}

// Files returns the data files the snapshot was built from.
func (s *Snapshot) Files() []string {
	return s.files
}

// Stats returns the combined ingestion statistics across all files.
func (s *Snapshot) Stats() record.Stats {
	return s.stats
}

// LoadedAt returns when the snapshot was built.
func (s *Snapshot) LoadedAt() time.Time {
	return s.loadedAt
}

// Fingerprint identifies one ingested version of a data file.
//
// Size and modification time are enough to detect re-exported files;
// Rows is kept for operator diagnostics.
type Fingerprint struct {
	Size    int64 `json:"size"`
	ModTime int64 `json:"mod_time"`
	Rows    int   `json:"rows"`
}

// FingerprintStore persists per-file ingest fingerprints across runs.
type FingerprintStore interface {
	// Get returns the stored fingerprint for path.
	//
	// The second return value reports whether a fingerprint was stored.
	Get(path string) (Fingerprint, bool, error)

	// Put stores the fingerprint for path.
	Put(path string, fp Fingerprint) error
}

// Manager builds and swaps snapshots.
type Manager interface {
	// Current returns the latest snapshot, or nil before the first
	// successful Reload.
	Current() *Snapshot

	// Reload discovers the data files, ingests changed ones, and
	// atomically publishes a fresh snapshot.
	//
	// Returns:
	//   - The new snapshot
	//   - Error if discovery fails or every file fails to ingest
	//
	// A single unreadable file degrades the snapshot (it is skipped
	// with a diagnostic), it does not fail the reload.
	Reload() (*Snapshot, error)
}
