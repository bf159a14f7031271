package dberrors

import "fmt"

// MigrationError attaches migration/operation context to an underlying
// error, the same shape as the teacher's
// internal/database/migrations.MigrationError — this module reuses the
// wrapper pattern rather than the type itself, since that package's
// generator/builder machinery it was grounded in is superseded here by
// pkg/schema and pkg/sqlplan.
type MigrationError struct {
	Version   int
	Operation string
	Err       error
}

func (me *MigrationError) Error() string {
	return fmt.Sprintf("migration error at version %d during %s: %v", me.Version, me.Operation, me.Err)
}

func (me *MigrationError) Unwrap() error {
	return me.Err
}

// NewMigrationError wraps err with the version/operation it failed during.
func NewMigrationError(version int, operation string, err error) *MigrationError {
	return &MigrationError{Version: version, Operation: operation, Err: err}
}

// Code classifies the wrapped error per spec.md §7.
func (me *MigrationError) Code() Code {
	return Classify(me.Err)
}
