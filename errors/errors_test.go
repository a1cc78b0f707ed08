package errors

import (
	stderrors "errors"
	"strings"
	"testing"
)

func TestError_Message(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "phase and kind only",
			err:  &Error{Phase: PhaseArena, Kind: KindClosed},
			want: "[arena] closed",
		},
		{
			name: "with go type",
			err:  &Error{Phase: PhaseExtract, Kind: KindUseAfterMove, GoType: "*main.widget"},
			want: "[extract] use_after_move: Go type *main.widget",
		},
		{
			name: "with detail",
			err:  &Error{Phase: PhaseBind, Kind: KindNilStorage, Detail: "nil anchor"},
			want: "[bind] nil_storage: nil anchor",
		},
		{
			name: "go type and detail",
			err:  &Error{Phase: PhaseDowncast, Kind: KindTypeMismatch, GoType: "*main.widget", Detail: "storage does not satisfy io.Reader"},
			want: "[downcast] type_mismatch: Go type *main.widget - storage does not satisfy io.Reader",
		},
		{
			name: "with cause",
			err:  &Error{Phase: PhaseArena, Kind: KindClosed, Cause: stderrors.New("boom")},
			want: "[arena] closed (caused by: boom)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Fatalf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := stderrors.New("underlying")
	err := Wrap(PhaseDrop, KindVacantCell, cause, "during sweep")

	if !stderrors.Is(err, cause) {
		t.Fatal("wrapped cause not reachable through errors.Is")
	}
	if err.Unwrap() != cause {
		t.Fatal("Unwrap did not return the cause")
	}
}

func TestError_Is(t *testing.T) {
	err := UseAfterMove(PhaseBorrow, "int", 3, 5)

	if !stderrors.Is(err, &Error{Phase: PhaseBorrow, Kind: KindUseAfterMove}) {
		t.Fatal("same phase and kind should match")
	}
	if stderrors.Is(err, &Error{Phase: PhaseExtract, Kind: KindUseAfterMove}) {
		t.Fatal("different phase should not match")
	}
	if stderrors.Is(err, &Error{Phase: PhaseBorrow, Kind: KindVacantCell}) {
		t.Fatal("different kind should not match")
	}
	if stderrors.Is(err, stderrors.New("[borrow] use_after_move")) {
		t.Fatal("plain errors should not match")
	}
}

func TestBuilder(t *testing.T) {
	cause := stderrors.New("root")
	err := New(PhaseWiden, KindTypeMismatch).
		GoType("*bytes.Buffer").
		Value(42).
		Cause(cause).
		Detail("want %s", "io.Closer").
		Build()

	if err.Phase != PhaseWiden || err.Kind != KindTypeMismatch {
		t.Fatalf("phase/kind = %s/%s", err.Phase, err.Kind)
	}
	if err.GoType != "*bytes.Buffer" {
		t.Fatalf("GoType = %q", err.GoType)
	}
	if err.Value != 42 {
		t.Fatalf("Value = %v", err.Value)
	}
	if err.Cause != cause {
		t.Fatal("cause not carried")
	}
	if err.Detail != "want io.Closer" {
		t.Fatalf("Detail = %q", err.Detail)
	}
}

func TestConvenienceConstructors(t *testing.T) {
	tests := []struct {
		name  string
		err   *Error
		phase Phase
		kind  Kind
		sub   string
	}{
		{"refill", RefillOccupied(PhaseFill, "int"), PhaseFill, KindRefillOccupied, "live value"},
		{"use after move", UseAfterMove(PhaseDrop, "int", 2, 4), PhaseDrop, KindUseAfterMove, "handle generation 2, cell generation 4"},
		{"vacant", VacantCell(PhaseBorrow, "int"), PhaseBorrow, KindVacantCell, "no value"},
		{"bad drop mode", BadDropMode("nil flag"), PhaseBind, KindBadDropMode, "nil flag"},
		{"type mismatch", TypeMismatch(PhaseWiden, "*main.t", "io.Reader"), PhaseWiden, KindTypeMismatch, "io.Reader"},
		{"pinned move", PinnedMove("*main.t"), PhaseExtract, KindPinnedMove, "pinned cell"},
		{"nil storage", NilStorage(PhaseBind, "nil pointer"), PhaseBind, KindNilStorage, "nil pointer"},
		{"closed", Closed("arena x"), PhaseArena, KindClosed, "arena x"},
		{"foreign", ForeignHandle("ref 9"), PhaseArena, KindForeignHandle, "ref 9"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Phase != tt.phase {
				t.Fatalf("phase = %s, want %s", tt.err.Phase, tt.phase)
			}
			if tt.err.Kind != tt.kind {
				t.Fatalf("kind = %s, want %s", tt.err.Kind, tt.kind)
			}
			if !strings.Contains(tt.err.Error(), tt.sub) {
				t.Fatalf("message %q missing %q", tt.err.Error(), tt.sub)
			}
		})
	}
}
