// Package main provides the kutir-report CLI application.
//
// Kutir Report summarizes student attendance across Parivaar kutir
// learning centers: period aggregates (daily through yearly), KPI
// summaries, and district-level category distributions, with live
// refresh as new attendance exports land on disk.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"
)

// version is set during build time.
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run executes the main application logic.
func run() error {
	// Define global flags.
	configPath := flag.String("config", "", "path to configuration file")
	showVersion := flag.Bool("version", false, "show version information")

	// Parse command.
	flag.Parse()

	// Handle version flag.
	if *showVersion {
		fmt.Printf("kutir-report %s\n", version)
		return nil
	}

	// Get command.
	args := flag.Args()
	if len(args) == 0 {
		return showUsage()
	}

	command := args[0]

	switch command {
	case "report":
		return runReportCommand(*configPath, args[1:])
	case "kpi":
		return runKPICommand(*configPath, args[1:])
	case "distribution":
		return runDistributionCommand(*configPath, args[1:])
	case "list":
		return runListCommand(*configPath)
	case "watch":
		return runWatchCommand(*configPath, args[1:])
	case "view":
		return runViewCommand(*configPath, args[1:])
	case "config":
		return runConfigCommand(*configPath, args[1:])
	case "help":
		return showUsage()
	default:
		return fmt.Errorf("unknown command: %s", command)
	}
}

// filterFlags registers the record selection flags shared by the
// report, kpi, and distribution commands.
type filterFlags struct {
	state     *string
	district  *string
	shift     *string
	kutir     *string
	kutirType *string
	from      *string
	to        *string
}

func newFilterFlags(fs *flag.FlagSet) filterFlags {
	return filterFlags{
		state:     fs.String("state", "", "filter by state"),
		district:  fs.String("district", "", "filter by district"),
		shift:     fs.String("shift", "", "filter by shift"),
		kutir:     fs.String("kutir", "", "filter by kutir name"),
		kutirType: fs.String("type", "", "filter by kutir type"),
		from:      fs.String("from", "", "include dates on or after (YYYY-MM-DD)"),
		to:        fs.String("to", "", "include dates on or before (YYYY-MM-DD)"),
	}
}

// runReportCommand runs the report command.
func runReportCommand(configPath string, args []string) error {
	fs := flag.NewFlagSet("report", flag.ExitOnError)
	granularity := fs.String("granularity", "weekly", "period granularity (daily, weekly, monthly, yearly)")
	byType := fs.Bool("by-type", false, "break the report down by kutir type")
	viewName := fs.String("view", "", "load parameters from a saved view")
	format := fs.String("format", "", "output format (table, json, simple, csv)")
	compact := fs.Bool("compact", false, "compact output")
	filters := newFilterFlags(fs)

	if err := fs.Parse(args); err != nil {
		return err
	}

	cmd := &reportCommand{
		granularity: *granularity,
		byType:      *byType,
		viewName:    *viewName,
		format:      *format,
		compact:     *compact,
		filters:     filters,
		configPath:  configPath,
	}

	return cmd.Execute()
}

// runKPICommand runs the kpi command.
func runKPICommand(configPath string, args []string) error {
	fs := flag.NewFlagSet("kpi", flag.ExitOnError)
	granularity := fs.String("granularity", "weekly", "period granularity (daily, weekly, monthly, yearly)")
	format := fs.String("format", "", "output format (table, json, simple, csv)")
	compact := fs.Bool("compact", false, "compact output")
	filters := newFilterFlags(fs)

	if err := fs.Parse(args); err != nil {
		return err
	}

	cmd := &kpiCommand{
		granularity: *granularity,
		format:      *format,
		compact:     *compact,
		filters:     filters,
		configPath:  configPath,
	}

	return cmd.Execute()
}

// runDistributionCommand runs the distribution command.
func runDistributionCommand(configPath string, args []string) error {
	fs := flag.NewFlagSet("distribution", flag.ExitOnError)
	granularity := fs.String("granularity", "weekly", "period granularity (daily, weekly, monthly, yearly)")
	format := fs.String("format", "", "output format (table, json, simple, csv)")
	compact := fs.Bool("compact", false, "compact output")
	filters := newFilterFlags(fs)

	if err := fs.Parse(args); err != nil {
		return err
	}

	cmd := &distributionCommand{
		granularity: *granularity,
		format:      *format,
		compact:     *compact,
		filters:     filters,
		configPath:  configPath,
	}

	return cmd.Execute()
}

// runListCommand runs the list command.
func runListCommand(configPath string) error {
	cmd := &listCommand{
		configPath: configPath,
	}
	return cmd.Execute()
}

// runWatchCommand runs the watch command.
func runWatchCommand(configPath string, args []string) error {
	fs := flag.NewFlagSet("watch", flag.ExitOnError)
	granularity := fs.String("granularity", "weekly", "period granularity (daily, weekly, monthly, yearly)")
	refresh := fs.Duration("refresh", time.Second, "minimum interval between refreshes (e.g., 1s, 500ms)")
	format := fs.String("format", "table", "output format (table, simple)")
	history := fs.Bool("history", false, "keep history of updates (append mode)")
	filters := newFilterFlags(fs)

	if err := fs.Parse(args); err != nil {
		return err
	}

	cmd := &watchCommand{
		granularity: *granularity,
		refresh:     *refresh,
		format:      *format,
		clearScreen: !*history, // clear screen unless history mode
		filters:     filters,
		configPath:  configPath,
	}

	return cmd.Execute()
}

// runViewCommand runs the view command.
func runViewCommand(configPath string, args []string) error {
	cmd := &viewCommand{
		configPath: configPath,
	}
	return cmd.Execute(args)
}

// runConfigCommand runs the config command.
func runConfigCommand(configPath string, args []string) error {
	cmd := &configCommand{
		configPath: configPath,
	}
	return cmd.Execute(args)
}

// showUsage displays usage information.
func showUsage() error {
	usage := `Kutir Report - Parivaar kutir attendance reporting tool

Usage:
  kutir-report [flags] <command> [command flags]

Commands:
  report        Display attendance aggregates per period
  kpi           Display KPI summary (periods, max, mean attendance)
  distribution  Display district category distribution for recent periods
  list          List all discovered attendance data files
  watch         Live reporting as data files change
  view          Saved view management (save, list, show, delete)
  config        Configuration management (show, path, reset)
  help          Show this help message

Global Flags:
  -config       Path to configuration file
  -version      Show version information

Report Command Flags:
  -granularity  Period granularity (daily, weekly, monthly, yearly)
  -by-type      Break the report down by kutir type
  -view         Load parameters from a saved view
  -state        Filter by state
  -district     Filter by district
  -shift        Filter by shift
  -kutir        Filter by kutir name
  -type         Filter by kutir type
  -from         Include dates on or after (YYYY-MM-DD)
  -to           Include dates on or before (YYYY-MM-DD)
  -format       Output format (table, json, simple, csv)
  -compact      Compact output

Watch Command Flags:
  -granularity  Period granularity (daily, weekly, monthly, yearly)
  -refresh      Minimum interval between refreshes (default: 1s)
  -format       Output format (table, simple)
  -history      Keep history of updates (append mode, default: false)

Examples:
  # Weekly attendance report across all kutirs
  kutir-report report

  # Monthly report for one district
  kutir-report report -granularity monthly -district Indore

  # Weekly report broken down by kutir type
  kutir-report report -by-type

  # Export the report as CSV
  kutir-report report -format csv > weekly.csv

  # KPI summary for the current data
  kutir-report kpi

  # District category distribution for the two most recent weeks
  kutir-report distribution

  # List discovered data files
  kutir-report list

  # Live weekly report, refreshing as exports land
  kutir-report watch

  # Saved view management
  kutir-report view save indore-weekly -district Indore
  kutir-report view list
  kutir-report view show indore-weekly
  kutir-report view delete indore-weekly

Version: %s
`

	fmt.Printf(usage, version)
	return nil
}
