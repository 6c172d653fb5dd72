package alerr

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

// -----------------------------------------------------------------------------
// Constructor Tests
// -----------------------------------------------------------------------------

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		code    Code
		message string
	}{
		{"missing primary key", ErrMissingPrimaryKey, "relation requires a primary key"},
		{"not found", ErrNotFound, "table not found"},
		{"dangling reference", ErrDanglingReference, "referenced column not found"},
		{"invalid project", ErrInvalidProject, "project file is malformed"},
		{"invalid config", ErrInvalidConfig, "config file is malformed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New(tt.code, tt.message)
			if err.GetCode() != tt.code {
				t.Errorf("code = %v, want %v", err.GetCode(), tt.code)
			}
			if err.GetMessage() != tt.message {
				t.Errorf("message = %v, want %v", err.GetMessage(), tt.message)
			}
			if err.GetCause() != nil {
				t.Error("expected nil cause for New()")
			}
		})
	}
}

func TestNewf(t *testing.T) {
	err := Newf(ErrNotFound, "table %q not found", "users")
	if got := err.GetMessage(); got != `table "users" not found` {
		t.Errorf("message = %q", got)
	}
}

func TestWrap(t *testing.T) {
	cause := fmt.Errorf("disk full")
	err := Wrap(ErrIO, cause, "failed to write project")

	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}
	if errors.Unwrap(err) != cause {
		t.Error("Unwrap() did not return cause")
	}
	if !strings.Contains(err.Error(), "cause: disk full") {
		t.Errorf("Error() = %q, want cause line", err.Error())
	}
}

// -----------------------------------------------------------------------------
// Formatting Tests
// -----------------------------------------------------------------------------

func TestError_ContextSorted(t *testing.T) {
	err := New(ErrMissingPrimaryKey, "relation requires a primary key").
		WithTable("users").
		WithColumn("name")

	want := "[T1001] relation requires a primary key\n  column: name\n  table: users"
	if got := err.Error(); got != want {
		t.Errorf("Error() =\n%s\nwant\n%s", got, want)
	}
}

func TestError_WithHelp(t *testing.T) {
	err := New(ErrNotFound, "table not found").
		WithHelp("first").
		WithHelp("second")

	helps := err.Helps()
	if len(helps) != 2 || helps[0] != "first" || helps[1] != "second" {
		t.Errorf("Helps() = %v", helps)
	}
}

// -----------------------------------------------------------------------------
// Matching Tests
// -----------------------------------------------------------------------------

func TestIs(t *testing.T) {
	err := New(ErrMissingPrimaryKey, "no pk").WithTable("a")
	wrapped := fmt.Errorf("create relation: %w", err)

	tests := []struct {
		name string
		err  error
		code Code
		want bool
	}{
		{"direct", err, ErrMissingPrimaryKey, true},
		{"wrapped", wrapped, ErrMissingPrimaryKey, true},
		{"other code", err, ErrNotFound, false},
		{"nil", nil, ErrMissingPrimaryKey, false},
		{"plain error", errors.New("x"), ErrMissingPrimaryKey, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.want {
				t.Errorf("Is() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSentinel(t *testing.T) {
	err := New(ErrMissingPrimaryKey, "no pk")
	if !errors.Is(err, Sentinel(ErrMissingPrimaryKey)) {
		t.Error("errors.Is against sentinel with same code = false")
	}
	if errors.Is(err, Sentinel(ErrNotFound)) {
		t.Error("errors.Is against sentinel with other code = true")
	}
}

func TestGetErrorCode(t *testing.T) {
	if got := GetErrorCode(nil); got != "" {
		t.Errorf("GetErrorCode(nil) = %q", got)
	}
	if got := GetErrorCode(errors.New("plain")); got != "" {
		t.Errorf("GetErrorCode(plain) = %q", got)
	}
	if got := GetErrorCode(Wrap(ErrIO, nil, "x")); got != ErrIO {
		t.Errorf("GetErrorCode() = %q, want %q", got, ErrIO)
	}
}
