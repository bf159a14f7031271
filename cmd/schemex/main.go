// Command schemex is the minimal CLI SPEC_FULL.md §2 names: status,
// migrate, and rollback, wired against internal/config, pkg/driver and
// internal/migrator. A command dispatch table keyed by name, same shape as
// the teacher's cmd/onyx main.go, rather than a flag/subcommand framework.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/schemex/schemex/internal/config"
	"github.com/schemex/schemex/internal/dberrors"
	"github.com/schemex/schemex/internal/migrator"
	"github.com/schemex/schemex/pkg/driver"
	"github.com/schemex/schemex/pkg/schema"
	"github.com/schemex/schemex/pkg/sqlplan"
)

// command is one CLI verb, mirroring the teacher's Command{Name,
// Description, Action} dispatch table.
type command struct {
	Name        string
	Description string
	Action      func(ctx context.Context, args []string) error
}

var commands = []command{
	{Name: "status", Description: "show the current and pending migration versions", Action: statusCmd},
	{Name: "migrate", Description: "apply pending migrations", Action: migrateCmd},
	{Name: "rollback", Description: "reverse the last applied migration", Action: rollbackCmd},
}

func main() {
	if len(os.Args) < 2 {
		showHelp()
		os.Exit(1)
	}

	name := os.Args[1]
	args := os.Args[2:]

	for _, cmd := range commands {
		if cmd.Name == name {
			if err := cmd.Action(context.Background(), args); err != nil {
				fmt.Fprintf(os.Stderr, "error: %v\n", err)
				os.Exit(1)
			}
			return
		}
	}

	fmt.Fprintf(os.Stderr, "unknown command: %s\n", name)
	showHelp()
	os.Exit(1)
}

func showHelp() {
	fmt.Println("schemex - schema & migration engine CLI")
	fmt.Println("\nUsage:")
	fmt.Println("  schemex <command>")
	fmt.Println("\nCommands:")
	for _, cmd := range commands {
		fmt.Printf("  %-10s %s\n", cmd.Name, cmd.Description)
	}
}

// openRunner loads Settings from internal/config, opens the configured
// driver, and builds a Runner against it. Step schemas are the embedding
// application's to register (spec.md §1 keeps migration authoring out of
// this CLI's scope); this binary ships with none registered, so migrate
// only ever reports "nothing pending" until a real application links its
// own steps in through migrator.New.
func openRunner() (*driver.Driver, *migrator.Runner, config.Settings, error) {
	c := config.NewConfig()
	config.RegisterValidators(c)
	if err := c.Load(); err != nil {
		return nil, nil, config.Settings{}, fmt.Errorf("loading configuration: %w", err)
	}
	settings := config.LoadSettings(c)

	drv, err := driver.Open(settings.Driver, settings.DSN)
	if err != nil {
		return nil, nil, settings, fmt.Errorf("opening %s: %w", settings.Driver, err)
	}

	dialect := drv.Dialect
	if settings.DialectOverride != "" {
		for _, d := range []sqlplan.Dialect{sqlplan.MySQL, sqlplan.Postgres, sqlplan.SQLite} {
			if d.Name == settings.DialectOverride {
				dialect = d
				break
			}
		}
	}

	var steps []*schema.Schema
	r := migrator.New(drv, dialect, settings.MigrationTable, steps...)
	return drv, r, settings, nil
}

func statusCmd(ctx context.Context, args []string) error {
	drv, r, settings, err := openRunner()
	if err != nil {
		return err
	}
	defer drv.Close()

	if err := r.EnsureBookkeeping(ctx); err != nil {
		return fmt.Errorf("ensuring bookkeeping table %q: %w", settings.MigrationTable, err)
	}

	current, err := r.CurrentVersion(ctx)
	if err != nil {
		return fmt.Errorf("reading current version: %w", err)
	}

	pending := r.Pending(current)
	fmt.Printf("driver:          %s\n", settings.Driver)
	fmt.Printf("current version: %d\n", current)
	fmt.Printf("pending steps:   %d\n", len(pending))
	return nil
}

func migrateCmd(ctx context.Context, args []string) error {
	drv, r, settings, err := openRunner()
	if err != nil {
		return err
	}
	defer drv.Close()

	if err := r.EnsureBookkeeping(ctx); err != nil {
		return fmt.Errorf("ensuring bookkeeping table %q: %w", settings.MigrationTable, err)
	}

	current, err := r.CurrentVersion(ctx)
	if err != nil {
		return fmt.Errorf("reading current version: %w", err)
	}

	applied, stmts, err := r.Up(ctx, current)
	if err != nil {
		return err
	}

	if len(stmts) == 0 {
		fmt.Println("nothing to apply; already at the newest registered version")
		return nil
	}
	fmt.Printf("applied through version %d (%d statement(s) executed)\n", applied, len(stmts))
	return nil
}

// rollbackCmd reports NOT_SUPPORT rather than attempting a reverse
// migration: the accumulate/tombstone model spec.md §4 describes only ever
// folds a step forward onto the running schema, so there is no inverse
// diff to plan and execute — reversing a migration means authoring and
// applying a new forward step that undoes it, same as the original
// sqxc-based system.
func rollbackCmd(ctx context.Context, args []string) error {
	err := fmt.Errorf("%w: schemex has no reverse-migration operation; author a new forward step instead", sqlplan.ErrNotSupport)
	fmt.Printf("rollback is not supported (%s)\n", dberrors.Classify(err))
	return err
}
