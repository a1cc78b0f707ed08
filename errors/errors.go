package errors

import (
	"fmt"
	"strings"
)

// Phase indicates which operation detected the error
type Phase string

const (
	PhaseFill     Phase = "fill"     // writing a value into a cell
	PhaseBorrow   Phase = "borrow"   // non-consuming access
	PhaseExtract  Phase = "extract"  // deref-move out of a handle
	PhaseDrop     Phase = "drop"     // handle or cell destruction
	PhaseBind     Phase = "bind"     // low-level handle construction
	PhaseWiden    Phase = "widen"    // concrete-to-interface conversion
	PhaseDowncast Phase = "downcast" // interface-to-concrete conversion
	PhaseInvoke   Phase = "invoke"   // call-by-value dispatch
	PhaseArena    Phase = "arena"    // cell allocator operations
)

// Kind categorizes the error
type Kind string

const (
	KindRefillOccupied Kind = "refill_occupied"  // filling a cell that already holds a value
	KindUseAfterMove   Kind = "use_after_move"   // handle generation no longer matches its cell
	KindVacantCell     Kind = "vacant_cell"      // handle points at storage holding no value
	KindBadDropMode    Kind = "bad_drop_mode"    // flagged bind without a present flag
	KindTypeMismatch   Kind = "type_mismatch"    // storage type incompatible with requested view
	KindPinnedMove     Kind = "pinned_move"      // attempt to move a value out of a pinned cell
	KindNilStorage     Kind = "nil_storage"      // nil pointer or anchor passed to a constructor
	KindClosed         Kind = "closed"           // operation on a closed arena
	KindForeignHandle  Kind = "foreign_handle"   // handle returned to an arena that never issued it
)

// Error is the structured error type used throughout the library
type Error struct {
	Value  any
	Cause  error
	Phase  Phase
	Kind   Kind
	GoType string
	Detail string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.GoType != "" {
		b.WriteString(": Go type ")
		b.WriteString(e.GoType)
	}

	if e.Detail != "" {
		if e.GoType != "" {
			b.WriteString(" - ")
		} else {
			b.WriteString(": ")
		}
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// GoType sets the Go type name of the stored value
func (b *Builder) GoType(t string) *Builder {
	b.err.GoType = t
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// RefillOccupied creates an error for filling a cell that still holds a value
func RefillOccupied(phase Phase, goType string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindRefillOccupied,
		GoType: goType,
		Detail: "cell already holds a live value",
	}
}

// UseAfterMove creates an error for a handle whose generation went stale
func UseAfterMove(phase Phase, goType string, handleGen, cellGen uint64) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUseAfterMove,
		GoType: goType,
		Detail: fmt.Sprintf("handle generation %d, cell generation %d", handleGen, cellGen),
	}
}

// VacantCell creates an error for a handle over storage holding no value
func VacantCell(phase Phase, goType string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindVacantCell,
		GoType: goType,
		Detail: "backing cell holds no value",
	}
}

// BadDropMode creates an error for a malformed low-level constructor call
func BadDropMode(detail string) *Error {
	return &Error{
		Phase:  PhaseBind,
		Kind:   KindBadDropMode,
		Detail: detail,
	}
}

// TypeMismatch creates an error for an impossible view conversion
func TypeMismatch(phase Phase, goType, want string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindTypeMismatch,
		GoType: goType,
		Detail: fmt.Sprintf("storage does not satisfy %s", want),
	}
}

// PinnedMove creates an error for moving a value out of a pinned cell
func PinnedMove(goType string) *Error {
	return &Error{
		Phase:  PhaseExtract,
		Kind:   KindPinnedMove,
		GoType: goType,
		Detail: "cannot move a value out of a pinned cell",
	}
}

// NilStorage creates an error for a nil pointer handed to a constructor
func NilStorage(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNilStorage,
		Detail: detail,
	}
}

// Closed creates an error for operations on a closed arena
func Closed(detail string) *Error {
	return &Error{
		Phase:  PhaseArena,
		Kind:   KindClosed,
		Detail: detail,
	}
}

// ForeignHandle creates an error for a ref returned to the wrong arena
func ForeignHandle(detail string) *Error {
	return &Error{
		Phase:  PhaseArena,
		Kind:   KindForeignHandle,
		Detail: detail,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}
