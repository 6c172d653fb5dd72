// Package dialect maps schema column types, identifiers and literals to a
// SQL dialect. PostgreSQL is the only target.
package dialect

import "strings"

// Dialect defines the interface for database-specific SQL generation.
type Dialect interface {
	// Name returns the dialect name (postgres).
	Name() string

	TypeMapper

	// -------------------------------------------------------------------------
	// Keys
	// -------------------------------------------------------------------------

	// SerialType returns the auto-increment type of a single integer key.
	// PostgreSQL: SERIAL
	SerialType() string

	// UUIDDefault returns the expression generating a random UUID.
	// PostgreSQL: gen_random_uuid()
	UUIDDefault() string

	// -------------------------------------------------------------------------
	// Quoting
	// -------------------------------------------------------------------------

	// QuoteIdent quotes an identifier (table/column/type/constraint name).
	// PostgreSQL: "name", embedded quotes doubled
	QuoteIdent(name string) string

	// QuoteLiteral quotes a string literal.
	// PostgreSQL: 'value', embedded quotes doubled
	QuoteLiteral(value string) string
}

// Get returns the dialect implementation for the given name.
// Valid names: "postgres", "postgresql", "pg".
// Returns nil if the dialect is not supported.
func Get(name string) Dialect {
	switch strings.ToLower(name) {
	case "postgres", "postgresql", "pg":
		return Postgres()
	default:
		return nil
	}
}

// Names returns the list of supported dialect names.
func Names() []string {
	return []string{"postgres"}
}
