package cli

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/hlop3z/tabula/internal/alerr"
)

func TestFormatError_Coded(t *testing.T) {
	err := alerr.NotFound("table", "usr", []string{"users", "posts"}).
		WithFile("schema.json")

	want := "error[T1002]: table \"usr\" not found\n" +
		"  --> schema.json\n" +
		"help: did you mean 'users'?\n"
	if got := FormatError(err); got != want {
		t.Errorf("FormatError() =\n%s\nwant:\n%s", got, want)
	}
}

func TestFormatError_ContextSorted(t *testing.T) {
	err := alerr.New(alerr.ErrMissingPrimaryKey, "relation requires a primary key").
		WithTable("users").
		WithColumn("name")

	want := "error[T1001]: relation requires a primary key\n" +
		"   |\n" +
		"   | column: name\n" +
		"   | table: users\n"
	if got := FormatError(err); got != want {
		t.Errorf("FormatError() =\n%s\nwant:\n%s", got, want)
	}
}

func TestFormatError_Cause(t *testing.T) {
	err := alerr.Wrap(alerr.ErrIO, errors.New("permission denied"), "cannot write project")

	got := FormatError(err)
	for _, want := range []string{"error[T3002]: cannot write project", "cause: permission denied"} {
		if !strings.Contains(got, want) {
			t.Errorf("FormatError() missing %q\ngot:\n%s", want, got)
		}
	}
}

func TestFormatError_WrappedChain(t *testing.T) {
	inner := alerr.New(alerr.ErrInvalidConfig, "project path is empty")
	err := fmt.Errorf("loading config: %w", inner)

	if got := FormatError(err); !strings.HasPrefix(got, "error[T4001]: project path is empty") {
		t.Errorf("FormatError() = %q", got)
	}
}

func TestFormatError_Generic(t *testing.T) {
	if got := FormatError(errors.New("boom")); got != "error: boom\n" {
		t.Errorf("FormatError() = %q", got)
	}
	if got := FormatError(nil); got != "" {
		t.Errorf("FormatError(nil) = %q", got)
	}
}

func TestFormatWarning(t *testing.T) {
	tests := []struct {
		code alerr.Code
		msg  string
		want string
	}{
		{alerr.ErrDanglingReference, "relation r1 has a dangling endpoint", "warning[T2001]: relation r1 has a dangling endpoint\n"},
		{"", "plain", "warning: plain\n"},
	}
	for _, tt := range tests {
		if got := FormatWarning(tt.code, tt.msg); got != tt.want {
			t.Errorf("FormatWarning(%q, %q) = %q, want %q", tt.code, tt.msg, got, tt.want)
		}
	}
}

func TestFormatMessages(t *testing.T) {
	tests := []struct {
		got, want string
	}{
		{FormatNote("n"), "note: n\n"},
		{FormatHelp("h"), "help: h\n"},
		{FormatSuccess("wrote schema.sql"), "success: wrote schema.sql\n"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("got %q, want %q", tt.got, tt.want)
		}
	}
}
