// Package errors provides structured error types for the ownref library.
//
// Errors are categorized by Phase (which operation detected the problem) and
// Kind (error category). Almost every Kind is a contract violation: the
// caller broke the single-owner discipline, and the library panics with the
// *Error as payload rather than returning it, since the broken invariant
// cannot be continued from. The few recoverable conditions (a closed arena,
// a downcast mismatch) travel as ordinary return values.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseDrop, errors.KindUseAfterMove).
//		GoType("main.Conn").
//		Detail("handle generation 3, cell generation 5").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.RefillOccupied(errors.PhaseFill, "main.Conn")
//	err := errors.UseAfterMove(errors.PhaseBorrow, "main.Conn", 3, 5)
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
