package sqlplan

import "errors"

// Sentinel errors matching the planner-specific error kinds of the design
// (REFERENCE_NOT_FOUND, REFERENCE_EACH_OTHER, NOT_SUPPORT), layered on top
// of the entry-level errors schema.ErrEntryNotFound/ErrReentryDropped/
// ErrStaticData already cover.
var (
	// ErrReferenceNotFound is returned when the table-ordering pass cannot
	// locate a foreign key's target table at all (distinct from a cycle).
	ErrReferenceNotFound = errors.New("sqlplan: foreign key target table not found")

	// ErrReferenceEachOther marks a mutual-reference cycle detected during
	// ordering. It is non-fatal: the caller sees it only via the deferred
	// ALTER statements the planner emits instead of failing the plan.
	ErrReferenceEachOther = errors.New("sqlplan: tables reference each other")

	// ErrNotSupport is returned when a dialect can express neither ALTER
	// COLUMN nor MODIFY COLUMN and an ALTER-COLUMN record is planned.
	ErrNotSupport = errors.New("sqlplan: operation not supported by dialect")
)
