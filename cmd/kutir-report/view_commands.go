package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/parivaar/kutir-report/pkg/config"
	"github.com/parivaar/kutir-report/pkg/logger"
	"github.com/parivaar/kutir-report/pkg/period"
	"github.com/parivaar/kutir-report/pkg/views"
)

// viewCommand handles saved view management subcommands.
type viewCommand struct {
	configPath string
}

// Execute runs the view command.
func (c *viewCommand) Execute(args []string) error {
	if len(args) == 0 {
		return c.showHelp()
	}

	subcommand := args[0]
	subargs := args[1:]

	switch subcommand {
	case "save":
		return c.runSave(subargs)
	case "list":
		return c.runList(subargs)
	case "show":
		return c.runShow(subargs)
	case "delete":
		return c.runDelete(subargs)
	case "help":
		return c.showHelp()
	default:
		return fmt.Errorf("unknown view subcommand: %s", subcommand)
	}
}

// runSave creates or updates a saved view.
func (c *viewCommand) runSave(args []string) error {
	fs := flag.NewFlagSet("view save", flag.ExitOnError)
	granularity := fs.String("granularity", "weekly", "period granularity (daily, weekly, monthly, yearly)")
	format := fs.String("format", "table", "output format (table, json, simple, csv)")
	filters := newFilterFlags(fs)

	if err := fs.Parse(args); err != nil {
		return err
	}

	if fs.NArg() < 1 {
		return fmt.Errorf("usage: kutir-report view save <name> [flags]")
	}
	name := fs.Arg(0)

	if _, ok := period.Parse(*granularity); !ok {
		return fmt.Errorf("invalid granularity: %s", *granularity)
	}

	filter, err := buildFilter(filters)
	if err != nil {
		return err
	}

	_, log, mgr, err := c.initializeViewComponents()
	if err != nil {
		return err
	}
	defer c.closeManager(mgr, log)

	view := &views.View{
		Name:        name,
		Granularity: *granularity,
		Filter:      filter,
		Format:      *format,
	}

	if err := mgr.Save(view); err != nil {
		return fmt.Errorf("failed to save view: %w", err)
	}

	fmt.Printf("Saved view '%s' (%s)\n", name, *granularity)
	return nil
}

// runList lists all saved views.
func (c *viewCommand) runList(args []string) error {
	fs := flag.NewFlagSet("view list", flag.ExitOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}

	_, log, mgr, err := c.initializeViewComponents()
	if err != nil {
		return err
	}
	defer c.closeManager(mgr, log)

	all, err := mgr.List()
	if err != nil {
		return fmt.Errorf("failed to list views: %w", err)
	}

	if len(all) == 0 {
		fmt.Println("No saved views")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tGRANULARITY\tFORMAT\tDISTRICT\tUPDATED")
	for _, v := range all {
		district := v.Filter.District
		if district == "" {
			district = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			v.Name,
			v.Granularity,
			v.Format,
			district,
			v.UpdatedAt.Format("2006-01-02 15:04"))
	}
	return w.Flush()
}

// runShow displays one saved view in full.
func (c *viewCommand) runShow(args []string) error {
	fs := flag.NewFlagSet("view show", flag.ExitOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}

	if fs.NArg() < 1 {
		return fmt.Errorf("usage: kutir-report view show <name>")
	}
	name := fs.Arg(0)

	_, log, mgr, err := c.initializeViewComponents()
	if err != nil {
		return err
	}
	defer c.closeManager(mgr, log)

	view, err := mgr.Get(name)
	if err != nil {
		return fmt.Errorf("failed to get view: %w", err)
	}

	data, err := json.MarshalIndent(view, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal view: %w", err)
	}

	fmt.Println(string(data))
	return nil
}

// runDelete removes a saved view.
func (c *viewCommand) runDelete(args []string) error {
	fs := flag.NewFlagSet("view delete", flag.ExitOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}

	if fs.NArg() < 1 {
		return fmt.Errorf("usage: kutir-report view delete <name>")
	}
	name := fs.Arg(0)

	_, log, mgr, err := c.initializeViewComponents()
	if err != nil {
		return err
	}
	defer c.closeManager(mgr, log)

	if err := mgr.Delete(name); err != nil {
		return fmt.Errorf("failed to delete view: %w", err)
	}

	fmt.Printf("Deleted view '%s'\n", name)
	return nil
}

// initializeViewComponents sets up the view manager.
func (c *viewCommand) initializeViewComponents() (*config.Config, logger.Logger, views.Manager, error) {
	cfg, err := loadConfig(c.configPath)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	log := logger.New(logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	})

	mgr, err := views.New(views.Config{
		DBPath: cfg.Storage.DBPath,
	}, log)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to initialize view manager: %w", err)
	}

	return cfg, log, mgr, nil
}

// closeManager closes the view manager.
func (c *viewCommand) closeManager(mgr views.Manager, log logger.Logger) {
	if mgr != nil {
		if err := mgr.Close(); err != nil {
			log.Error("failed to close view manager", "error", err)
		}
	}
}

// showHelp displays help for the view command.
func (c *viewCommand) showHelp() error {
	help := `View - Saved view management

Usage:
  kutir-report view <subcommand> [flags]

Subcommands:
  save      Save report parameters under a name
  list      List all saved views
  show      Show one saved view in full
  delete    Delete a saved view

Save Flags:
  -granularity  Period granularity (daily, weekly, monthly, yearly)
  -format       Output format (table, json, simple, csv)
  -state        Filter by state
  -district     Filter by district
  -shift        Filter by shift
  -kutir        Filter by kutir name
  -type         Filter by kutir type
  -from         Include dates on or after (YYYY-MM-DD)
  -to           Include dates on or before (YYYY-MM-DD)

Examples:
  # Save a weekly report for one district
  kutir-report view save indore-weekly -district Indore

  # Save a monthly CSV export
  kutir-report view save monthly-csv -granularity monthly -format csv

  # List saved views
  kutir-report view list

  # Run a saved view
  kutir-report report -view indore-weekly

  # Delete a saved view
  kutir-report view delete indore-weekly
`
	fmt.Print(help)
	return nil
}
