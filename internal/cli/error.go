package cli

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/hlop3z/tabula/internal/alerr"
)

// context keys rendered outside the detail block
var shownKeys = map[string]bool{"file": true, "helps": true}

// FormatError formats an error for CLI display in Cargo/rustc style.
// An *alerr.Error anywhere in the chain contributes its code, context and
// help suggestions; other errors render as a single line.
func FormatError(err error) string {
	if err == nil {
		return ""
	}
	var ae *alerr.Error
	if errors.As(err, &ae) {
		return formatCodedError(ae)
	}
	return formatGenericError(err)
}

// formatCodedError renders:
//
//	error[T1002]: table "usr" not found
//	  --> schema.json
//	   |
//	   | table: usr
//	help: did you mean 'users'?
func formatCodedError(err *alerr.Error) string {
	var b strings.Builder
	ctx := err.GetContext()

	b.WriteString(Error("error"))
	b.WriteString("[")
	b.WriteString(Code(string(err.GetCode())))
	b.WriteString("]: ")
	b.WriteString(err.GetMessage())
	b.WriteString("\n")

	if file, _ := ctx["file"].(string); file != "" {
		fmt.Fprintf(&b, "  %s %s\n", Arrow(), FilePath(file))
	}

	keys := make([]string, 0, len(ctx))
	for k := range ctx {
		if !shownKeys[k] {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	if len(keys) > 0 {
		fmt.Fprintf(&b, "   %s\n", Pipe())
		for _, k := range keys {
			fmt.Fprintf(&b, "   %s %s: %v\n", Pipe(), k, ctx[k])
		}
	}

	for _, help := range err.Helps() {
		b.WriteString(FormatHelp(help))
	}

	if cause := err.GetCause(); cause != nil {
		fmt.Fprintf(&b, "   %s\n", Pipe())
		b.WriteString(Note("cause"))
		b.WriteString(": ")
		b.WriteString(cause.Error())
		b.WriteString("\n")
	}

	return b.String()
}

// formatGenericError formats a non-alerr error.
func formatGenericError(err error) string {
	return Error("error") + ": " + err.Error() + "\n"
}

// FormatWarning formats a coded warning, e.g. "warning[T2001]: msg".
// An empty code renders as a plain "warning: msg".
func FormatWarning(code alerr.Code, msg string) string {
	var b strings.Builder
	b.WriteString(Warning("warning"))
	if code != "" {
		b.WriteString("[")
		b.WriteString(Code(string(code)))
		b.WriteString("]")
	}
	b.WriteString(": ")
	b.WriteString(msg)
	b.WriteString("\n")
	return b.String()
}

// FormatNote formats a note message.
func FormatNote(msg string) string {
	return Note("note") + ": " + msg + "\n"
}

// FormatHelp formats a help message.
func FormatHelp(msg string) string {
	return Help("help") + ": " + msg + "\n"
}

// FormatSuccess formats a success message.
func FormatSuccess(msg string) string {
	return Success("success") + ": " + msg + "\n"
}
