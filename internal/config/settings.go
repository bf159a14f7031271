package config

import "time"

// Settings is the typed view of the configuration keys this module actually
// reads, layered on top of the general-purpose Config loader (env/.env/file
// providers, caching, validators) the teacher already carries unchanged.
// Everything below maps to one env var / config key. Driver, DSN and
// DialectOverride are validated at Load time (RegisterValidators) by the
// same ConfigValidator machinery the teacher's web layer used for its own
// settings; MigrationTable and LockTimeout have no validator.
type Settings struct {
	// Driver is the database/sql driver name: "mysql", "postgres", or
	// "sqlite3" — one of the three pkg/driver.Open accepts.
	Driver string
	// DSN is the driver-specific data source name passed to pkg/driver.Open.
	DSN string
	// MigrationTable names the bookkeeping table internal/migrator manages.
	// Defaults to "schema_migrations".
	MigrationTable string
	// LockTimeout is read from lock_timeout (default 15s) and carried
	// here only: internal/migrator does not read it, and Runner.Up takes
	// no lock.
	LockTimeout time.Duration
	// DialectOverride, if non-empty, forces pkg/sqlplan's dialect instead
	// of deriving it from Driver — useful when a driver speaks a dialect
	// other than its own (e.g. a MySQL-wire-compatible engine that needs
	// PostgreSQL's ALTER COLUMN form, or a test harness exercising a
	// dialect without the matching driver installed).
	DialectOverride string
}

// These are flat, dot-free keys on purpose: Config.Load only runs a key's
// validator against the top-level entry in its merged value map (see
// Config.Load / getNestedValue), so a key only gets validated if a provider
// hands it back at the top level — which is exactly what EnvProvider (env
// vars lowercased verbatim) and MemoryProvider do. FileProvider does not:
// it stores each file's parsed contents as one map under the file's base
// name, so config/driver.json yields a map under "driver". A dotted "database.driver" key nested under a "database" top-level
// entry would never reach RequiredValidator/OneOfValidator at all.
const (
	keyDriver          = "driver"
	keyDSN             = "dsn"
	keyMigrationTable  = "migration_table"
	keyLockTimeout     = "lock_timeout"
	keyDialectOverride = "dialect"
)

// RegisterValidators installs the validators Load relies on: Driver must be
// one of the three wired products, DSN must be present, and DialectOverride
// (when set) must also be one of the three dialect names pkg/sqlplan knows.
func RegisterValidators(c *Config) {
	c.AddValidator(keyDriver, ChainValidator(
		RequiredValidator,
		OneOfValidator("mysql", "postgres", "sqlite3"),
	))
	c.AddValidator(keyDSN, RequiredValidator)
	c.AddValidator(keyDialectOverride, func(key string, value interface{}) error {
		if value == nil || value == "" {
			return nil
		}
		return OneOfValidator("mysql", "postgres", "sqlite")(key, value)
	})
}

// LoadSettings reads Settings out of an already-Loaded Config, applying the
// defaults "schema_migrations" for MigrationTable and 15s for LockTimeout.
func LoadSettings(c *Config) Settings {
	return Settings{
		Driver:          c.GetString(keyDriver),
		DSN:             c.GetString(keyDSN),
		MigrationTable:  c.GetString(keyMigrationTable, "schema_migrations"),
		LockTimeout:     c.GetDuration(keyLockTimeout, 15*time.Second),
		DialectOverride: c.GetString(keyDialectOverride),
	}
}
