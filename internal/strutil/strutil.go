// Package strutil provides string utilities for case conversion and the
// canonical SQL names tabula derives from table and column names.
package strutil

import (
	"fmt"
	"hash/fnv"
	"sort"
	"strings"
	"unicode"
)

// MaxIdentifierLength is the PostgreSQL identifier limit (NAMEDATALEN - 1).
const MaxIdentifierLength = 63

// -----------------------------------------------------------------------------
// Case Conversion
// -----------------------------------------------------------------------------

// ToSnakeCase converts a string to snake_case.
// Examples: userName -> user_name, UserName -> user_name, HTTPServer -> http_server
func ToSnakeCase(s string) string {
	if s == "" {
		return ""
	}

	var result strings.Builder
	result.Grow(len(s) + 4)

	runes := []rune(s)
	for i, r := range runes {
		switch {
		case unicode.IsUpper(r):
			// "HTTPServer" -> "http_server": split before an upper followed by a lower.
			if i > 0 {
				prev := runes[i-1]
				if unicode.IsLower(prev) || unicode.IsDigit(prev) {
					result.WriteByte('_')
				} else if unicode.IsUpper(prev) && i+1 < len(runes) && unicode.IsLower(runes[i+1]) {
					result.WriteByte('_')
				}
			}
			result.WriteRune(unicode.ToLower(r))
		case r == '-' || r == ' ':
			result.WriteByte('_')
		default:
			result.WriteRune(r)
		}
	}

	return result.String()
}

// -----------------------------------------------------------------------------
// Canonical Names
// -----------------------------------------------------------------------------

// FKColumn returns the canonical foreign key column name for a parent key.
// Example: FKColumn("users", "id") -> "users_id"
func FKColumn(parentTable, parentColumn string) string {
	return parentTable + "_" + parentColumn
}

// FKColumnID returns the deterministic id of the FK column that points at
// the given parent key. Ids only need to be unique within a table, and a
// table holds at most one canonical FK per parent key.
func FKColumnID(parentTableID, parentColumnID string) string {
	return "fk_" + parentTableID + "_" + parentColumnID
}

// IndexName returns the index name for a table and columns.
// Example: IndexName("users", "email") -> "idx_users_email"
func IndexName(table string, cols ...string) string {
	return Identifier(append([]string{"idx", table}, cols...)...)
}

// ForeignKeyName returns the FK constraint name for a table column.
// Example: ForeignKeyName("posts", "user_id") -> "fk_posts_user_id"
func ForeignKeyName(table, column string) string {
	return Identifier("fk", table, column)
}

// PrimaryKeyName returns the composite primary key constraint name.
func PrimaryKeyName(table string) string {
	return Identifier("pk", table)
}

// EnumTypeName returns the PostgreSQL enum type name for a column.
// Example: EnumTypeName("users", "status") -> "users_status_enum"
func EnumTypeName(table, column string) string {
	return Identifier(ToSnakeCase(table), ToSnakeCase(column), "enum")
}

// JunctionName returns the many-to-many junction table name. The pair is
// sorted so both relation directions produce the same name.
// Example: JunctionName("students", "courses") -> "courses_students"
func JunctionName(a, b string) string {
	pair := []string{a, b}
	sort.Strings(pair)
	return Identifier(pair...)
}

// Identifier joins parts with underscores and truncates the result to
// MaxIdentifierLength. Truncated names end in an FNV-32a hash of the full
// name so distinct long names stay distinct.
func Identifier(parts ...string) string {
	name := strings.Join(parts, "_")
	if len(name) <= MaxIdentifierLength {
		return name
	}
	h := fnv.New32a()
	h.Write([]byte(name))
	suffix := fmt.Sprintf("_%08x", h.Sum32())
	return truncateBytes(name, MaxIdentifierLength-len(suffix)) + suffix
}

// truncateBytes cuts s to at most n bytes without splitting a rune.
func truncateBytes(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !isRuneStart(s[n]) {
		n--
	}
	return s[:n]
}

func isRuneStart(b byte) bool {
	return b&0xC0 != 0x80
}

// -----------------------------------------------------------------------------
// Formatting
// -----------------------------------------------------------------------------

// Indent indents each non-empty line of text with the given number of spaces.
func Indent(text string, spaces int) string {
	prefix := strings.Repeat(" ", spaces)
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = prefix + line
		}
	}
	return strings.Join(lines, "\n")
}

// QuoteLiteral quotes a SQL string literal, doubling embedded single quotes.
func QuoteLiteral(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// SplitList splits a comma-separated list, trimming blanks and dropping
// empty entries.
func SplitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
