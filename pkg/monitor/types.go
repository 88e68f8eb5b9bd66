// Package monitor re-runs aggregation whenever the attendance data
// changes on disk.
//
// It joins the watcher, the snapshot manager, and the aggregation
// engine: each debounced file event produces a fresh snapshot and a
// fresh aggregation result, published to consumers as an Update. The
// engine stays pure; all goroutines live here.
package monitor

import (
	"context"
	"time"

	"github.com/parivaar/kutir-report/pkg/aggregator"
	"github.com/parivaar/kutir-report/pkg/period"
	"github.com/parivaar/kutir-report/pkg/record"
)

// Config holds the configuration for the refresh monitor.
type Config struct {
	// Granularity applied on every refresh.
	Granularity period.Granularity

	// Filter narrows the snapshot before aggregation (upstream
	// selection; zero value passes everything).
	Filter record.Filter

	// MinInterval is the minimum time between refreshes. Events
	// arriving faster are folded into the next refresh.
	// Default: 1s.
	MinInterval time.Duration
}

// Update is one published refresh.
type Update struct {
	// Timestamp of the refresh.
	Timestamp time.Time

	// Result is the aggregation over the current snapshot.
	Result aggregator.Result

	// KPIs summarizes Result.Overall.
	KPIs aggregator.KPISummary

	// Records is the number of records aggregated (post-filter).
	Records int
}

// Monitor drives refresh-on-change aggregation.
type Monitor interface {
	// Start performs an initial refresh and then begins processing
	// file events. Non-blocking; the loop stops when ctx is done or
	// Stop is called.
	Start(ctx context.Context) error

	// Stop shuts the refresh loop down gracefully.
	Stop() error

	// Updates returns the channel of published refreshes.
	//
	// The channel is closed when the monitor stops.
	Updates() <-chan Update
}
