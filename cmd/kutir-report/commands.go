package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/parivaar/kutir-report/pkg/aggregator"
	"github.com/parivaar/kutir-report/pkg/config"
	"github.com/parivaar/kutir-report/pkg/discovery"
	"github.com/parivaar/kutir-report/pkg/display"
	"github.com/parivaar/kutir-report/pkg/distribution"
	"github.com/parivaar/kutir-report/pkg/logger"
	"github.com/parivaar/kutir-report/pkg/monitor"
	"github.com/parivaar/kutir-report/pkg/period"
	"github.com/parivaar/kutir-report/pkg/record"
	"github.com/parivaar/kutir-report/pkg/snapshot"
	"github.com/parivaar/kutir-report/pkg/views"
	"github.com/parivaar/kutir-report/pkg/watcher"
)

// loadConfig loads configuration from the explicit path or the
// standard locations.
func loadConfig(configPath string) (*config.Config, error) {
	if configPath != "" {
		return config.LoadFromFile(configPath)
	}
	return config.Load()
}

// buildFilter converts the shared filter flags into a record filter.
func buildFilter(f filterFlags) (record.Filter, error) {
	filter := record.Filter{
		State:     *f.state,
		District:  *f.district,
		Shift:     *f.shift,
		KutirName: *f.kutir,
		KutirType: *f.kutirType,
	}

	if *f.from != "" {
		from, err := time.Parse("2006-01-02", *f.from)
		if err != nil {
			return record.Filter{}, fmt.Errorf("invalid -from date %q: %w", *f.from, err)
		}
		filter.From = from
	}

	if *f.to != "" {
		to, err := time.Parse("2006-01-02", *f.to)
		if err != nil {
			return record.Filter{}, fmt.Errorf("invalid -to date %q: %w", *f.to, err)
		}
		filter.To = to
	}

	return filter, nil
}

// ingestSchema merges configured header aliases into the default
// ingest schema.
func ingestSchema(cfg *config.Config) record.Schema {
	schema := record.DefaultSchema()
	for raw, canonical := range cfg.Ingest.ExtraAliases {
		schema.Aliases[raw] = canonical
	}
	return schema
}

// resolveFormat picks the output format, falling back to the
// configured default.
func resolveFormat(flagValue string, cfg *config.Config) display.Format {
	value := flagValue
	if value == "" {
		value = cfg.Display.DefaultFormat
	}

	switch value {
	case "json":
		return display.FormatJSON
	case "simple":
		return display.FormatSimple
	case "csv":
		return display.FormatCSV
	default:
		return display.FormatTable
	}
}

// reportCommand displays attendance aggregates per period.
type reportCommand struct {
	granularity string
	byType      bool
	viewName    string
	format      string
	compact     bool
	filters     filterFlags
	configPath  string
}

// Execute runs the report command.
func (c *reportCommand) Execute() error {
	cfg, log, viewMgr, mgr, err := initialize(c.configPath)
	if err != nil {
		return err
	}
	defer cleanup(viewMgr, log)

	granularity := c.granularity
	filter, err := buildFilter(c.filters)
	if err != nil {
		return err
	}
	format := c.format

	// A saved view replaces the command-line parameters; an explicit
	// -format still wins.
	if c.viewName != "" {
		view, getErr := viewMgr.Get(c.viewName)
		if getErr != nil {
			return fmt.Errorf("failed to load view %q: %w", c.viewName, getErr)
		}
		granularity = view.Granularity
		filter = view.Filter
		if format == "" {
			format = view.Format
		}
	}

	g, ok := period.Parse(granularity)
	if !ok {
		return fmt.Errorf("invalid granularity: %s", granularity)
	}

	result, _, err := collect(cfg, log, mgr, filter, g)
	if err != nil {
		return err
	}

	formatter := display.New(display.Config{
		Format:   resolveFormat(format, cfg),
		Compact:  c.compact,
		MaxWidth: cfg.Display.MaxWidth,
	})

	if c.byType {
		return formatter.FormatByType(os.Stdout, result.ByType())
	}
	return formatter.FormatOverall(os.Stdout, result)
}

// kpiCommand displays the KPI summary.
type kpiCommand struct {
	granularity string
	format      string
	compact     bool
	filters     filterFlags
	configPath  string
}

// Execute runs the kpi command.
func (c *kpiCommand) Execute() error {
	cfg, log, viewMgr, mgr, err := initialize(c.configPath)
	if err != nil {
		return err
	}
	defer cleanup(viewMgr, log)

	g, ok := period.Parse(c.granularity)
	if !ok {
		return fmt.Errorf("invalid granularity: %s", c.granularity)
	}

	filter, err := buildFilter(c.filters)
	if err != nil {
		return err
	}

	result, _, err := collect(cfg, log, mgr, filter, g)
	if err != nil {
		return err
	}

	formatter := display.New(display.Config{
		Format:   resolveFormat(c.format, cfg),
		Compact:  c.compact,
		MaxWidth: cfg.Display.MaxWidth,
	})

	return formatter.FormatKPIs(os.Stdout, aggregator.KPIs(result.Overall))
}

// distributionCommand displays the district category distribution.
type distributionCommand struct {
	granularity string
	format      string
	compact     bool
	filters     filterFlags
	configPath  string
}

// Execute runs the distribution command.
func (c *distributionCommand) Execute() error {
	cfg, log, viewMgr, mgr, err := initialize(c.configPath)
	if err != nil {
		return err
	}
	defer cleanup(viewMgr, log)

	g, ok := period.Parse(c.granularity)
	if !ok {
		return fmt.Errorf("invalid granularity: %s", c.granularity)
	}

	filter, err := buildFilter(c.filters)
	if err != nil {
		return err
	}

	result, _, err := collect(cfg, log, mgr, filter, g)
	if err != nil {
		return err
	}

	dist := distribution.Build(result.Detail, g, result.WeekRanges)

	formatter := display.New(display.Config{
		Format:   resolveFormat(c.format, cfg),
		Compact:  c.compact,
		MaxWidth: cfg.Display.MaxWidth,
	})

	return formatter.FormatDistribution(os.Stdout, dist)
}

// initialize sets up configuration and shared components.
func initialize(configPath string) (*config.Config, logger.Logger, views.Manager, snapshot.Manager, error) {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return nil, nil, nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	log := logger.New(logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	})

	viewMgr, err := views.New(views.Config{
		DBPath: cfg.Storage.DBPath,
	}, log)
	if err != nil {
		return nil, nil, nil, nil, fmt.Errorf("failed to initialize view manager: %w", err)
	}

	store, err := snapshot.NewBoltFingerprintStore(viewMgr.DB())
	if err != nil {
		return nil, nil, nil, nil, fmt.Errorf("failed to initialize fingerprint store: %w", err)
	}

	src := record.NewSource(ingestSchema(cfg), log)
	disc := discovery.New(cfg.DataDirs, log)
	mgr := snapshot.NewManager(disc, src, store, log)

	return cfg, log, viewMgr, mgr, nil
}

// cleanup closes resources.
func cleanup(viewMgr views.Manager, log logger.Logger) {
	if viewMgr != nil {
		if err := viewMgr.Close(); err != nil {
			log.Error("failed to close view manager", "error", err)
		}
	}
}

// collect loads the current snapshot and aggregates it.
func collect(cfg *config.Config, log logger.Logger, mgr snapshot.Manager, filter record.Filter, g period.Granularity) (aggregator.Result, int, error) {
	snap, err := mgr.Reload()
	if err != nil {
		return aggregator.Result{}, 0, fmt.Errorf("failed to load attendance data: %w", err)
	}

	records := filter.Apply(snap.Records())
	if len(records) == 0 {
		fmt.Println("No attendance records matched")
	}

	stats := snap.Stats()
	log.Debug("snapshot loaded",
		"files", len(snap.Files()),
		"rows", stats.Rows,
		"kept", stats.Kept,
		"matched", len(records))

	agg := aggregator.New(aggregator.Config{Logger: log})
	return agg.Aggregate(records, g), len(records), nil
}

// listCommand lists all discovered attendance data files.
type listCommand struct {
	configPath string
}

// Execute runs the list command.
func (c *listCommand) Execute() error {
	// Load configuration.
	cfg, err := loadConfig(c.configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize logger.
	log := logger.New(logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	})

	// Discover data files.
	disc := discovery.New(cfg.DataDirs, log)
	files, err := disc.Discover()
	if err != nil {
		return fmt.Errorf("failed to discover data files: %w", err)
	}

	if len(files) == 0 {
		fmt.Println("No attendance data files found")
		return nil
	}

	// Display files.
	fmt.Printf("Found %d data file(s):\n\n", len(files))
	for _, f := range files {
		fmt.Printf("  %s\n", f.Path)
		fmt.Printf("    Size: %d bytes\n", f.Size)
		fmt.Printf("    Modified: %s\n", time.Unix(f.ModTime, 0).Format("2006-01-02 15:04:05"))
		fmt.Println()
	}

	return nil
}

// watchCommand provides live attendance reporting.
type watchCommand struct {
	granularity string
	refresh     time.Duration
	format      string
	clearScreen bool
	filters     filterFlags
	configPath  string
}

// Execute runs the watch command.
func (c *watchCommand) Execute() error {
	// Load configuration
	cfg, err := loadConfig(c.configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize logger (quiet mode for live reporting)
	log := logger.New(logger.Config{
		Level:  "error", // Only show errors during live reporting
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	})

	g, ok := period.Parse(c.granularity)
	if !ok {
		return fmt.Errorf("invalid granularity: %s", c.granularity)
	}

	filter, err := buildFilter(c.filters)
	if err != nil {
		return err
	}

	// Initialize view manager (owns the shared database)
	viewMgr, err := views.New(views.Config{
		DBPath: cfg.Storage.DBPath,
	}, log)
	if err != nil {
		return fmt.Errorf("failed to initialize view manager: %w", err)
	}
	defer func() {
		if err := viewMgr.Close(); err != nil {
			log.Error("failed to close view manager", "error", err)
		}
	}()

	// Initialize fingerprint store and snapshot manager
	store, err := snapshot.NewBoltFingerprintStore(viewMgr.DB())
	if err != nil {
		return fmt.Errorf("failed to initialize fingerprint store: %w", err)
	}

	src := record.NewSource(ingestSchema(cfg), log)
	disc := discovery.New(cfg.DataDirs, log)
	mgr := snapshot.NewManager(disc, src, store, log)

	// Initialize watcher
	w, err := watcher.New(watcher.Config{
		Debounce: cfg.Watch.Debounce,
	}, log)
	if err != nil {
		return fmt.Errorf("failed to initialize watcher: %w", err)
	}
	defer func() {
		if err := w.Close(); err != nil {
			log.Error("failed to close watcher", "error", err)
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := w.Start(ctx, cfg.DataDirs); err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}

	// Create monitor
	mon := monitor.New(monitor.Config{
		Granularity: g,
		Filter:      filter,
		MinInterval: c.refresh,
	}, w, mgr, aggregator.New(aggregator.Config{Logger: log}), log)

	if err := mon.Start(ctx); err != nil {
		return fmt.Errorf("failed to start monitor: %w", err)
	}

	// Setup signal handling
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	// Clear screen and display initial header
	if c.clearScreen {
		fmt.Print("\033[2J\033[H")
	}

	fmt.Println("Live Kutir Report - Press Ctrl+C to stop")
	fmt.Printf("Granularity: %s | Refresh: %s\n", g, c.refresh)
	fmt.Println(strings.Repeat("-", 72))
	fmt.Println()

	// Process updates
	for {
		select {
		case <-sigChan:
			fmt.Print("\n\n")
			fmt.Println("Stopping...")
			if err := mon.Stop(); err != nil {
				log.Error("failed to stop monitor", "error", err)
			}
			return nil

		case watchErr, ok := <-w.Errors():
			if !ok {
				return nil
			}
			log.Error("watcher error", "error", watchErr)

		case update, ok := <-mon.Updates():
			if !ok {
				return nil
			}
			c.displayUpdate(cfg, update)
		}
	}
}

// displayUpdate renders a live reporting update.
func (c *watchCommand) displayUpdate(cfg *config.Config, update monitor.Update) {
	// Move cursor below the header and clear from there.
	if c.clearScreen {
		fmt.Print("\033[5;1H\033[J")
	}

	format := display.FormatTable
	if c.format == "simple" {
		format = display.FormatSimple
	}

	formatter := display.New(display.Config{
		Format:   format,
		MaxWidth: cfg.Display.MaxWidth,
	})

	fmt.Printf("Last updated: %s | Records: %d\n\n",
		update.Timestamp.Format("15:04:05"), update.Records)

	if err := formatter.FormatOverall(os.Stdout, update.Result); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return
	}

	fmt.Println()
	if err := formatter.FormatKPIs(os.Stdout, update.KPIs); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
}
