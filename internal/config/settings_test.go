package config

import (
	"testing"
	"time"
)

func TestLoadSettingsAppliesDefaults(t *testing.T) {
	c := NewConfig()
	c.AddProvider(NewMemoryProvider("test", map[string]interface{}{
		"driver": "sqlite3",
		"dsn":    "file:test.db",
	}))
	RegisterValidators(c)
	if err := c.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}

	s := LoadSettings(c)
	if s.Driver != "sqlite3" {
		t.Errorf("Driver = %q, want sqlite3", s.Driver)
	}
	if s.DSN != "file:test.db" {
		t.Errorf("DSN = %q, want file:test.db", s.DSN)
	}
	if s.MigrationTable != "schema_migrations" {
		t.Errorf("MigrationTable = %q, want default schema_migrations", s.MigrationTable)
	}
	if s.LockTimeout != 15*time.Second {
		t.Errorf("LockTimeout = %v, want default 15s", s.LockTimeout)
	}
	if s.DialectOverride != "" {
		t.Errorf("DialectOverride = %q, want empty", s.DialectOverride)
	}
}

func TestLoadSettingsHonorsOverrides(t *testing.T) {
	c := NewConfig()
	c.AddProvider(NewMemoryProvider("test", map[string]interface{}{
		"driver":          "mysql",
		"dsn":             "user:pass@tcp(127.0.0.1:3306)/app",
		"migration_table": "migrations_log",
		"lock_timeout":    "30s",
		"dialect":         "postgres",
	}))
	RegisterValidators(c)
	if err := c.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}

	s := LoadSettings(c)
	if s.MigrationTable != "migrations_log" {
		t.Errorf("MigrationTable = %q, want migrations_log", s.MigrationTable)
	}
	if s.LockTimeout != 30*time.Second {
		t.Errorf("LockTimeout = %v, want 30s", s.LockTimeout)
	}
	if s.DialectOverride != "postgres" {
		t.Errorf("DialectOverride = %q, want postgres", s.DialectOverride)
	}
}

func TestRegisterValidatorsRejectsUnknownDriver(t *testing.T) {
	c := NewConfig()
	c.AddProvider(NewMemoryProvider("test", map[string]interface{}{
		"driver": "oracle",
		"dsn":    "whatever",
	}))
	RegisterValidators(c)
	if err := c.Load(); err == nil {
		t.Fatal("expected Load to reject an unsupported driver name")
	}
}

func TestRegisterValidatorsRequiresDSN(t *testing.T) {
	// RequiredValidator only runs against keys a provider actually hands
	// back (Config.Load validates present values, it can't know about a
	// key no provider ever populated), so an empty DSN is the case it
	// actually catches.
	c := NewConfig()
	c.AddProvider(NewMemoryProvider("test", map[string]interface{}{
		"driver": "sqlite3",
		"dsn":    "",
	}))
	RegisterValidators(c)
	if err := c.Load(); err == nil {
		t.Fatal("expected Load to reject an empty DSN")
	}
}
