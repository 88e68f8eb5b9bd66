package snapshot

import (
	"fmt"
	"sync"
	"time"

	"github.com/parivaar/kutir-report/pkg/discovery"
	"github.com/parivaar/kutir-report/pkg/logger"
	"github.com/parivaar/kutir-report/pkg/record"
)

// manager implements the Manager interface.
type manager struct {
	discovery discovery.Discoverer
	source    record.Source
	store     FingerprintStore
	logger    logger.Logger

	mu      sync.RWMutex
	current *Snapshot

	// Per-file parse cache: records for the fingerprint last seen.
	// Lets Reload skip re-parsing unchanged exports.
	cache map[string]cachedFile
}

type cachedFile struct {
	fp      Fingerprint
	records []record.AttendanceRecord
	stats   record.Stats
}

// NewManager creates a snapshot manager.
//
// Parameters:
//   - disc: Data file discovery
//   - src: Record source (CSV ingestion)
//   - store: Fingerprint persistence (bbolt or in-memory)
//   - log: Logger instance
//
// Returns a configured Manager. No snapshot exists until the first
// Reload.
func NewManager(disc discovery.Discoverer, src record.Source, store FingerprintStore, log logger.Logger) Manager {
	return &manager{
		discovery: disc,
		source:    src,
		store:     store,
		logger:    log,
		cache:     make(map[string]cachedFile),
	}
}

// Current implements Manager.Current.
func (m *manager) Current() *Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// Reload implements Manager.Reload.
func (m *manager) Reload() (*Snapshot, error) {
	files, err := m.discovery.Discover()
	if err != nil {
		return nil, fmt.Errorf("discovery failed: %w", err)
	}
	if len(files) == 0 {
		return nil, ErrNoFiles
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	snap := &Snapshot{
		records:  make([]record.AttendanceRecord, 0, 1024),
		files:    make([]string, 0, len(files)),
		loadedAt: time.Now(),
	}

	failed := 0
	for _, f := range files {
		fp := Fingerprint{Size: f.Size, ModTime: f.ModTime}

		if cached, ok := m.cache[f.Path]; ok &&
			cached.fp.Size == fp.Size && cached.fp.ModTime == fp.ModTime {
			m.logger.Debug("file unchanged, using cached records", "path", f.Path)
			snap.records = append(snap.records, cached.records...)
			snap.files = append(snap.files, f.Path)
			mergeStats(&snap.stats, cached.stats)
			continue
		}

		records, stats, readErr := m.source.ReadFile(f.Path)
		if readErr != nil {
			m.logger.Error("failed to ingest data file", "path", f.Path, "error", readErr)
			failed++
			continue
		}

		fp.Rows = stats.Rows
		m.cache[f.Path] = cachedFile{fp: fp, records: records, stats: stats}

		if putErr := m.store.Put(f.Path, fp); putErr != nil {
			// Persistence is advisory; a failed write only costs a
			// re-parse on the next run.
			m.logger.Warn("failed to persist fingerprint", "path", f.Path, "error", putErr)
		}

		snap.records = append(snap.records, records...)
		snap.files = append(snap.files, f.Path)
		mergeStats(&snap.stats, stats)
	}

	if len(snap.files) == 0 && failed > 0 {
		return nil, ErrAllFilesFailed
	}

	m.current = snap
	m.logger.Info("snapshot published",
		"files", len(snap.files),
		"records", len(snap.records),
		"failed_files", failed)

	return snap, nil
}

// mergeStats accumulates per-file ingestion stats into the snapshot total.
func mergeStats(total *record.Stats, s record.Stats) {
	total.Rows += s.Rows
	total.Kept += s.Kept
	total.DroppedBadDate += s.DroppedBadDate
	total.DroppedBadAttendance += s.DroppedBadAttendance
}
