// Package schema implements the versioned table/column model described for
// an object-relational migration engine: entries, columns, tables and
// schemas that fold successive "diff" steps into a running model and trace
// foreign-key references across renames and drops.
package schema

// Kind enumerates the built-in value kinds a Column can hold. It mirrors the
// value-kind registry of the source system, minus the process/runtime hooks
// (init, parse, write) which live in package codec rather than on the kind
// itself — Go has no function-pointer fields on a value descriptor that also
// wants to be comparable and easy to switch on.
type Kind int

const (
	KindBool Kind = iota
	KindInt
	KindUint
	KindInt64
	KindUint64
	KindDouble
	KindTime
	KindString
	KindObject
	KindArrayPtr
)

func (k Kind) String() string {
	switch k {
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindUint:
		return "uint"
	case KindInt64:
		return "int64"
	case KindUint64:
		return "uint64"
	case KindDouble:
		return "double"
	case KindTime:
		return "time"
	case KindString:
		return "string"
	case KindObject:
		return "object"
	case KindArrayPtr:
		return "array_ptr"
	default:
		return "unknown"
	}
}

// IsIntegral reports whether k is one of the integral kinds, used by
// Table.GetPrimary to find an auto-increment-eligible primary key.
func (k Kind) IsIntegral() bool {
	switch k {
	case KindInt, KindUint, KindInt64, KindUint64:
		return true
	default:
		return false
	}
}

// Flag is the bit-field attached to every Entry, mirroring the modifier bits
// of the source (PRIMARY, UNIQUE, CHANGED, RENAMED, ...). A single field
// carries both structural bits (Dynamic, Changed, Renamed) and SQL modifier
// bits (Primary, Unique, ...) exactly as the original packs them together.
type Flag uint32

const (
	// Dynamic marks an entry as owned (its strings may be freely mutated);
	// entries without it represent shared, static declarations.
	Dynamic Flag = 1 << iota
	// Sorted is used internally by Type to know whether its entries are
	// currently in name order.
	Sorted
	Primary
	Unique
	AutoIncrement
	Nullable
	Foreign
	// Changed marks an ALTER record (see invariants 3/4 in the data model).
	Changed
	// Renamed marks a RENAME record.
	Renamed
	Pointer
	Hidden
	Current
	CurrentOnUpdate
	Index
	SpatialIndex
	FullText
	// Constraint marks a column record that itself represents a constraint
	// (composite unique/primary key, or a synthesized foreign-key column).
	Constraint
	// ReoChecking / SQLCreated are used transiently by the planner's table
	// ordering pass (sqlplan.Plan), not persisted on the model afterwards.
	ReoChecking
	SQLCreated
	// Ignore marks a rename tombstone whose new name collided with an
	// unrelated live entry; the tracer must not treat it as a valid hop.
	Ignore
	// Unsigned marks an integral column as UNSIGNED. The planner emits the
	// keyword for it on every dialect.
	Unsigned
)

// Entry is one field of a record: a name, a value kind, a symbolic offset
// (kept for data-model fidelity with the source; Go code never does pointer
// arithmetic with it) and the modifier bit-field.
type Entry struct {
	name   string
	Kind   Kind
	Offset int
	Flags  Flag
}

// Name returns the entry's current, live name. A drop tombstone has an
// empty Name; a rename tombstone has both Name and OldName set.
func (e *Entry) Name() string { return e.name }

// SetName sets the entry's live name.
func (e *Entry) SetName(name string) { e.name = name }

// Has reports whether every bit in f is set.
func (e *Entry) Has(f Flag) bool { return e.Flags&f == f }

// Set ORs f into the entry's bit-field.
func (e *Entry) Set(f Flag) { e.Flags |= f }

// Clear ANDs out f from the entry's bit-field.
func (e *Entry) Clear(f Flag) { e.Flags &^= f }

// IsDynamic reports whether the entry owns its own strings.
func (e *Entry) IsDynamic() bool { return e.Has(Dynamic) }

// Reentry is an Entry plus old_name: the common header shared by Column and
// Table that makes drop/rename tombstones representable in the same
// sequence as live records (see invariants 3 and 4, and the "tombstone
// records encode intent" design note).
type Reentry struct {
	Entry
	oldName string
}

// OldName returns the name this entry is a tombstone for, or "" for an
// ordinary live entry that was never renamed or dropped.
func (r *Reentry) OldName() string { return r.oldName }

// SetOldName sets the tombstone's old name.
func (r *Reentry) SetOldName(name string) { r.oldName = name }

// IsDrop reports whether this is a DROP tombstone: old_name set, name empty.
func (r *Reentry) IsDrop() bool { return r.oldName != "" && r.name == "" }

// IsRename reports whether this is a RENAME tombstone: both names set and
// the Renamed bit set.
func (r *Reentry) IsRename() bool {
	return r.oldName != "" && r.name != "" && r.Has(Renamed)
}

// IsAlter reports whether this is an ALTER record: the Changed bit is set
// and a live name is present.
func (r *Reentry) IsAlter() bool { return r.Has(Changed) && r.name != "" }

// IsAdd reports whether this is a plain ADD record: no old name, not marked
// changed.
func (r *Reentry) IsAdd() bool { return r.oldName == "" && !r.Has(Changed) }

// Node is the constraint satisfied by *Column and *Table: both embed
// Reentry, so both get these methods by promotion. Type[T] is generic over
// Node so that the schema's table list and a table's column list share one
// sort/find/steal/compact implementation, the way the source's SqType is
// shared between both levels via void* entries.
type Node interface {
	comparable
	Name() string
	SetName(string)
	OldName() string
	SetOldName(string)
	Has(Flag) bool
	Set(Flag)
	Clear(Flag)
	IsDynamic() bool
	IsDrop() bool
	IsRename() bool
	IsAlter() bool
	IsAdd() bool
}
