// Package codec is the value-codec pipeline boundary named in spec.md §6:
// for each schema.Kind, a Parse hook that turns a driver-returned scalar
// into a typed Go value, and a Write hook that turns a typed Go value back
// into something a driver can bind as a query argument. pkg/schema never
// imports this package — its Kind values are data, not behavior —
// so this is where that data gets a runtime.
//
// Grounded in the teacher's internal/database/scanner.go (reflection-based
// *sql.Rows-to-struct scanning keyed by a "db" struct tag) and model.go
// (struct-field extraction via the same tag), trimmed to the scalar kinds
// pkg/schema actually declares and stripped of the ORM/active-record
// machinery (dirty tracking, soft deletes) those two files also carry,
// which is out of scope here.
package codec

import (
	"fmt"

	"github.com/schemex/schemex/pkg/schema"
)

// Hook is one value kind's parse/write pair. Parse turns a value scanned out
// of a database driver (already typed by database/sql's default conversions:
// int64, float64, bool, []byte, string, time.Time, or nil) into the Go value
// a caller's field should hold. Write does the reverse for query arguments.
type Hook struct {
	Parse func(src any) (any, error)
	Write func(v any) (any, error)
}

// Registry maps schema.Kind to its Hook, the codec-side counterpart of
// pkg/schema's Kind enum.
type Registry struct {
	hooks map[schema.Kind]Hook
}

// NewRegistry builds a Registry pre-populated with the default hook for
// every scalar schema.Kind value. KindObject and KindArrayPtr get no hook,
// so Parse and Write fail for them until one is registered. Callers can
// override individual kinds with Register before using the registry.
func NewRegistry() *Registry {
	r := &Registry{hooks: make(map[schema.Kind]Hook, 10)}
	for k, h := range defaultHooks {
		r.hooks[k] = h
	}
	return r
}

// Register installs or replaces the hook for a kind.
func (r *Registry) Register(k schema.Kind, h Hook) {
	r.hooks[k] = h
}

// Parse converts src (as returned by a driver) into the Go value for kind k.
func (r *Registry) Parse(k schema.Kind, src any) (any, error) {
	h, ok := r.hooks[k]
	if !ok || h.Parse == nil {
		return nil, fmt.Errorf("%w: no Parse hook registered for kind %s", schema.ErrTypeNotMatch, k)
	}
	return h.Parse(src)
}

// Write converts v into a value safe to bind as a query argument for kind k.
func (r *Registry) Write(k schema.Kind, v any) (any, error) {
	h, ok := r.hooks[k]
	if !ok || h.Write == nil {
		return nil, fmt.Errorf("%w: no Write hook registered for kind %s", schema.ErrTypeNotMatch, k)
	}
	return h.Write(v)
}
