// Package dberrors is the ambient error-kind vocabulary and reporting shape
// for the module: a numeric Code for each error kind spec.md §7 names, a
// MigrationError wrapper that attaches migration/operation context the way
// the teacher's internal/database/migrations.MigrationError does, and a
// small reporter/handler pair adapted from the teacher's
// internal/errors/handler.go with every HTTP-rendering concern removed —
// there is no web layer here, only an embedding application to hand a
// failure to.
package dberrors

import (
	"errors"

	"github.com/schemex/schemex/pkg/schema"
	"github.com/schemex/schemex/pkg/sqlplan"
)

// Code is the numeric error-kind enum of spec.md §7. It exists alongside
// the sentinel errors pkg/schema and pkg/sqlplan already export so a caller
// that wants a stable, serializable value (for a status command's JSON
// output, for example) doesn't have to compare error strings.
type Code int

const (
	OK Code = iota
	EntryNotFound
	ReentryDropped
	ReferenceNotFound
	ReferenceEachOther
	TypeNotMatch
	NotSupport
	StaticData
	Unknown
)

func (c Code) String() string {
	switch c {
	case OK:
		return "OK"
	case EntryNotFound:
		return "ENTRY_NOT_FOUND"
	case ReentryDropped:
		return "REENTRY_DROPPED"
	case ReferenceNotFound:
		return "REFERENCE_NOT_FOUND"
	case ReferenceEachOther:
		return "REFERENCE_EACH_OTHER"
	case TypeNotMatch:
		return "TYPE_NOT_MATCH"
	case NotSupport:
		return "NOT_SUPPORT"
	case StaticData:
		return "STATIC_DATA"
	default:
		return "UNKNOWN"
	}
}

// Classify maps err to the Code of the innermost sentinel it wraps, walking
// the error chain with errors.Is the way the rest of the module already
// compares against pkg/schema and pkg/sqlplan's sentinels. Structural
// errors (EntryNotFound, ReentryDropped, ReferenceNotFound, NotSupport)
// should be returned to the caller per spec.md §7's policy; ReferenceEachOther
// never reaches here in practice because pkg/sqlplan absorbs it internally,
// but is classified for completeness.
func Classify(err error) Code {
	switch {
	case err == nil:
		return OK
	case errors.Is(err, schema.ErrEntryNotFound):
		return EntryNotFound
	case errors.Is(err, schema.ErrReentryDropped):
		return ReentryDropped
	case errors.Is(err, schema.ErrStaticData):
		return StaticData
	case errors.Is(err, schema.ErrTypeNotMatch):
		return TypeNotMatch
	case errors.Is(err, sqlplan.ErrReferenceNotFound):
		return ReferenceNotFound
	case errors.Is(err, sqlplan.ErrReferenceEachOther):
		return ReferenceEachOther
	case errors.Is(err, sqlplan.ErrNotSupport):
		return NotSupport
	default:
		return Unknown
	}
}

// Recoverable reports whether policy (spec.md §7) treats c as absorbable
// locally rather than as a reason to abort a migration. Only
// ReferenceEachOther is unconditionally recoverable here; TypeNotMatch is
// recoverable only when the caller has an alternate path, which dberrors
// cannot know on its own, so it is not included.
func (c Code) Recoverable() bool {
	return c == ReferenceEachOther
}
