package monitor

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/parivaar/kutir-report/pkg/aggregator"
	"github.com/parivaar/kutir-report/pkg/logger"
	"github.com/parivaar/kutir-report/pkg/snapshot"
	"github.com/parivaar/kutir-report/pkg/watcher"
)

// monitor implements the Monitor interface.
type monitor struct {
	config    Config
	logger    logger.Logger
	watcher   watcher.Watcher
	snapshots snapshot.Manager
	agg       aggregator.Aggregator

	mu       sync.Mutex
	running  bool
	closed   bool
	stopChan chan struct{}

	updates chan Update
}

// New creates a refresh monitor.
//
// Parameters:
//   - cfg: Monitor configuration
//   - w: Data file watcher (already constructed, not yet started)
//   - mgr: Snapshot manager
//   - agg: Aggregation engine
//   - log: Logger instance
//
// Returns a configured Monitor.
func New(cfg Config, w watcher.Watcher, mgr snapshot.Manager, agg aggregator.Aggregator, log logger.Logger) Monitor {
	if cfg.MinInterval == 0 {
		cfg.MinInterval = time.Second
	}

	return &monitor{
		config:    cfg,
		logger:    log,
		watcher:   w,
		snapshots: mgr,
		agg:       agg,
		stopChan:  make(chan struct{}),
		updates:   make(chan Update, 4),
	}
}

// Start implements Monitor.Start.
func (m *monitor) Start(ctx context.Context) error {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return ErrMonitorClosed
	}
	if m.running {
		m.mu.Unlock()
		return ErrMonitorRunning
	}
	m.running = true
	m.mu.Unlock()

	// Initial refresh so consumers see data before the first change.
	if err := m.refresh(); err != nil {
		m.mu.Lock()
		m.running = false
		m.mu.Unlock()
		return fmt.Errorf("initial refresh failed: %w", err)
	}

	go m.loop(ctx)

	m.logger.Info("monitor started",
		"granularity", string(m.config.Granularity),
		"min_interval", m.config.MinInterval)

	return nil
}

// Stop implements Monitor.Stop.
func (m *monitor) Stop() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrMonitorClosed
	}
	if !m.running {
		return ErrNotRunning
	}

	close(m.stopChan)
	m.running = false
	m.closed = true

	m.logger.Info("monitor stopped")
	return nil
}

// Updates implements Monitor.Updates.
func (m *monitor) Updates() <-chan Update {
	return m.updates
}

// loop processes watcher events, folding bursts into one refresh per
// MinInterval.
func (m *monitor) loop(ctx context.Context) {
	defer close(m.updates)

	var (
		pending     bool
		lastRefresh time.Time
	)

	ticker := time.NewTicker(m.config.MinInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			m.logger.Info("refresh loop stopped", "reason", "context cancelled")
			return

		case <-m.stopChan:
			m.logger.Info("refresh loop stopped", "reason", "stop signal")
			return

		case event, ok := <-m.watcher.Events():
			if !ok {
				m.logger.Warn("watcher events channel closed")
				return
			}
			m.logger.Debug("data change", "path", event.Path, "op", event.Op.String())

			if time.Since(lastRefresh) >= m.config.MinInterval {
				m.doRefresh(&lastRefresh)
				pending = false
			} else {
				pending = true
			}

		case err, ok := <-m.watcher.Errors():
			if !ok {
				return
			}
			m.logger.Error("watcher error", "error", err)

		case <-ticker.C:
			if pending {
				m.doRefresh(&lastRefresh)
				pending = false
			}
		}
	}
}

// doRefresh runs a refresh and records its time; failures are logged
// and the previous update stands.
func (m *monitor) doRefresh(last *time.Time) {
	if err := m.refresh(); err != nil {
		m.logger.Error("refresh failed", "error", err)
		return
	}
	*last = time.Now()
}

// refresh rebuilds the snapshot, re-aggregates, and publishes an Update.
func (m *monitor) refresh() error {
	snap, err := m.snapshots.Reload()
	if err != nil {
		return fmt.Errorf("snapshot reload failed: %w", err)
	}

	records := m.config.Filter.Apply(snap.Records())
	result := m.agg.Aggregate(records, m.config.Granularity)

	update := Update{
		Timestamp: time.Now(),
		Result:    result,
		KPIs:      aggregator.KPIs(result.Overall),
		Records:   len(records),
	}

	select {
	case m.updates <- update:
	default:
		// Consumer lagging; drop the oldest update to make room.
		select {
		case <-m.updates:
		default:
		}
		m.updates <- update
	}

	return nil
}
