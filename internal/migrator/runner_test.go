package migrator

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/schemex/schemex/pkg/driver"
	"github.com/schemex/schemex/pkg/schema"
	"github.com/schemex/schemex/pkg/sqlplan"
)

// openTestDB mirrors the teacher's migrations_test.go setupTestDB: a
// temp-file SQLite database rather than a mock, since Runner's job is
// exercising real DDL/DML through pkg/driver.
func openTestDB(t *testing.T) *driver.Driver {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	drv, err := driver.OpenSQLite(dbPath)
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	t.Cleanup(func() { drv.Close() })
	return drv
}

func widgetsV1() *schema.Schema {
	s := schema.NewSchemaVersion("v1", 1)
	t := s.CreateTable(schema.NewTable("widgets"))
	t.AddInt("id").Primary().AutoIncr()
	t.AddString("name").NotNull()
	return s
}

func widgetsV2() *schema.Schema {
	s := schema.NewSchemaVersion("v2", 2)
	t := s.AlterTable("widgets")
	t.AddDouble("price")
	return s
}

func TestRunnerPendingFiltersByVersion(t *testing.T) {
	r := New(nil, sqlplan.SQLite, "", widgetsV1(), widgetsV2())

	pending := r.Pending(0)
	if len(pending) != 2 {
		t.Fatalf("Pending(0) = %d steps, want 2", len(pending))
	}
	if pending[0].Version != 1 || pending[1].Version != 2 {
		t.Fatalf("Pending(0) out of order: %d, %d", pending[0].Version, pending[1].Version)
	}

	pending = r.Pending(1)
	if len(pending) != 1 || pending[0].Version != 2 {
		t.Fatalf("Pending(1) = %v, want just version 2", pending)
	}

	if got := r.Pending(2); len(got) != 0 {
		t.Fatalf("Pending(2) = %v, want none", got)
	}
}

func TestRunnerUpAppliesStepsAndRecordsVersion(t *testing.T) {
	drv := openTestDB(t)
	ctx := context.Background()

	r := New(drv, sqlplan.SQLite, "schema_migrations", widgetsV1(), widgetsV2())
	if err := r.EnsureBookkeeping(ctx); err != nil {
		t.Fatalf("EnsureBookkeeping: %v", err)
	}

	applied, stmts, err := r.Up(ctx, 0)
	if err != nil {
		t.Fatalf("Up: %v", err)
	}
	if applied != 2 {
		t.Fatalf("applied = %d, want 2", applied)
	}
	if len(stmts) == 0 {
		t.Fatal("expected at least one executed statement")
	}

	current, err := r.CurrentVersion(ctx)
	if err != nil {
		t.Fatalf("CurrentVersion: %v", err)
	}
	if current != 2 {
		t.Fatalf("CurrentVersion = %d, want 2", current)
	}

	if rows, err := drv.Query(ctx, `SELECT name FROM widgets WHERE 1=0`); err != nil {
		t.Fatalf("widgets table not created: %v", err)
	} else {
		rows.Close()
	}

	if pending := r.Pending(current); len(pending) != 0 {
		t.Fatalf("expected no pending steps after Up, got %v", pending)
	}
}

func TestRunnerUpIsNoopWhenNothingPending(t *testing.T) {
	drv := openTestDB(t)
	ctx := context.Background()

	r := New(drv, sqlplan.SQLite, "", widgetsV1())
	if err := r.EnsureBookkeeping(ctx); err != nil {
		t.Fatalf("EnsureBookkeeping: %v", err)
	}

	if _, _, err := r.Up(ctx, 0); err != nil {
		t.Fatalf("first Up: %v", err)
	}

	applied, stmts, err := r.Up(ctx, 1)
	if err != nil {
		t.Fatalf("second Up: %v", err)
	}
	if applied != 1 {
		t.Fatalf("applied = %d, want 1 (unchanged)", applied)
	}
	if stmts != nil {
		t.Fatalf("expected no statements on a no-op Up, got %v", stmts)
	}
}

func TestEnsureBookkeepingIsIdempotent(t *testing.T) {
	drv := openTestDB(t)
	ctx := context.Background()

	r := New(drv, sqlplan.SQLite, "", widgetsV1())
	if err := r.EnsureBookkeeping(ctx); err != nil {
		t.Fatalf("first EnsureBookkeeping: %v", err)
	}
	if err := r.EnsureBookkeeping(ctx); err != nil {
		t.Fatalf("second EnsureBookkeeping: %v", err)
	}
}

func TestCurrentVersionIsZeroBeforeAnyMigration(t *testing.T) {
	drv := openTestDB(t)
	ctx := context.Background()

	r := New(drv, sqlplan.SQLite, "", widgetsV1())
	if err := r.EnsureBookkeeping(ctx); err != nil {
		t.Fatalf("EnsureBookkeeping: %v", err)
	}

	current, err := r.CurrentVersion(ctx)
	if err != nil {
		t.Fatalf("CurrentVersion: %v", err)
	}
	if current != 0 {
		t.Fatalf("CurrentVersion = %d, want 0", current)
	}
}
