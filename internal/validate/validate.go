// Package validate lints table and column names. Every identifier tabula
// emits is quoted, so these findings are warnings: the SQL is valid, but the
// names are awkward to use from hand-written queries.
package validate

import (
	"regexp"
	"strings"

	"github.com/hlop3z/tabula/internal/alerr"
	"github.com/hlop3z/tabula/internal/strutil"
)

// -----------------------------------------------------------------------------
// SQL Reserved Words
// -----------------------------------------------------------------------------

// reservedWords contains SQL standard and PostgreSQL reserved words.
var reservedWords = map[string]bool{
	// SQL Standard Keywords
	"add":        true,
	"all":        true,
	"alter":      true,
	"and":        true,
	"any":        true,
	"as":         true,
	"asc":        true,
	"between":    true,
	"by":         true,
	"case":       true,
	"check":      true,
	"column":     true,
	"constraint": true,
	"create":     true,
	"cross":      true,
	"current":    true,
	"database":   true,
	"default":    true,
	"delete":     true,
	"desc":       true,
	"distinct":   true,
	"drop":       true,
	"else":       true,
	"end":        true,
	"exists":     true,
	"false":      true,
	"fetch":      true,
	"for":        true,
	"foreign":    true,
	"from":       true,
	"full":       true,
	"grant":      true,
	"group":      true,
	"having":     true,
	"if":         true,
	"in":         true,
	"index":      true,
	"inner":      true,
	"insert":     true,
	"into":       true,
	"is":         true,
	"join":       true,
	"key":        true,
	"left":       true,
	"like":       true,
	"limit":      true,
	"not":        true,
	"null":       true,
	"offset":     true,
	"on":         true,
	"or":         true,
	"order":      true,
	"outer":      true,
	"primary":    true,
	"references": true,
	"revoke":     true,
	"right":      true,
	"select":     true,
	"set":        true,
	"table":      true,
	"then":       true,
	"to":         true,
	"true":       true,
	"union":      true,
	"unique":     true,
	"update":     true,
	"using":      true,
	"values":     true,
	"view":       true,
	"when":       true,
	"where":      true,
	"with":       true,

	// PostgreSQL specific
	"abort":     true,
	"analyze":   true,
	"array":     true,
	"begin":     true,
	"cast":      true,
	"commit":    true,
	"copy":      true,
	"do":        true,
	"except":    true,
	"explain":   true,
	"freeze":    true,
	"ilike":     true,
	"intersect": true,
	"isnull":    true,
	"lateral":   true,
	"leading":   true,
	"localtime": true,
	"lock":      true,
	"natural":   true,
	"notnull":   true,
	"only":      true,
	"placing":   true,
	"returning": true,
	"rollback":  true,
	"row":       true,
	"savepoint": true,
	"similar":   true,
	"some":      true,
	"symmetric": true,
	"trailing":  true,
	"truncate":  true,
	"user":      true,
	"vacuum":    true,
	"variadic":  true,
	"verbose":   true,
	"window":    true,
}

// IsReservedWord checks if the given string is a SQL reserved word.
// The check is case-insensitive.
func IsReservedWord(s string) bool {
	return reservedWords[strings.ToLower(s)]
}

// -----------------------------------------------------------------------------
// Snake Case
// -----------------------------------------------------------------------------

// snakeCaseRegex matches valid snake_case identifiers:
// - starts with lowercase letter
// - contains only lowercase letters, digits, and underscores
// - no consecutive underscores
// - doesn't end with underscore
var snakeCaseRegex = regexp.MustCompile(`^[a-z][a-z0-9]*(_[a-z0-9]+)*$`)

// IsSnakeCase checks if the given string is valid snake_case.
func IsSnakeCase(s string) bool {
	return snakeCaseRegex.MatchString(s)
}

// -----------------------------------------------------------------------------
// Name lint
// -----------------------------------------------------------------------------

// Name lints one identifier. kind is "table" or "column" and prefixes the
// message. It returns nil for a good name; empty names are reported by the
// graph checker, not here. At most one finding is returned, the first of:
// not snake_case, too long, reserved word.
func Name(kind, s string) *alerr.Error {
	if s == "" {
		return nil
	}

	if !IsSnakeCase(s) {
		err := alerr.Newf(alerr.ErrInvalidName, "%s name %q is not snake_case", kind, s)
		if suggestion := strutil.ToSnakeCase(s); suggestion != "" && suggestion != s && IsSnakeCase(suggestion) {
			err.WithHelp("rename it to '" + suggestion + "'")
		}
		return err
	}

	if len(s) > strutil.MaxIdentifierLength {
		return alerr.Newf(alerr.ErrInvalidName, "%s name %q exceeds %d bytes and will be truncated", kind, s, strutil.MaxIdentifierLength).
			With("length", len(s))
	}

	if IsReservedWord(s) {
		return alerr.Newf(alerr.ErrInvalidName, "%s name %q is a SQL reserved word", kind, s).
			WithHelp("queries must quote it; consider '" + s + "_" + kind + "'")
	}

	return nil
}
