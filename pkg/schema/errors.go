package schema

import "errors"

// Sentinel errors matching the error-kind vocabulary of the design (ENTRY_NOT_FOUND,
// REENTRY_DROPPED, STATIC_DATA, TYPE_NOT_MATCH). Package sqlplan adds the
// planner-specific kinds (REFERENCE_NOT_FOUND, REFERENCE_EACH_OTHER, NOT_SUPPORT)
// on top of these.
var (
	// ErrEntryNotFound is returned when an ALTER or DROP record names a
	// column/table that does not exist in the base and was never recorded
	// as dropped or renamed either.
	ErrEntryNotFound = errors.New("schema: entry not found")

	// ErrReentryDropped is returned by TraceForeign when a referenced
	// table or column was explicitly dropped in an earlier step.
	ErrReentryDropped = errors.New("schema: referenced entry was dropped")

	// ErrStaticData names a mutation of a non-dynamic (shared, static)
	// entity. No function in this package returns it: mutations do not
	// check the Dynamic bit. It is exported so callers and
	// dberrors.Classify can match on it.
	ErrStaticData = errors.New("schema: attempt to mutate static data")

	// ErrTypeNotMatch is reserved for the value-codec boundary (package
	// codec) and surfaced here so callers can match on one error set.
	ErrTypeNotMatch = errors.New("schema: value does not match target kind")

	// ErrNameCollision is returned when a RENAME record's target name is
	// already occupied by a different live entry.
	ErrNameCollision = errors.New("schema: rename target collides with an existing entry")
)
