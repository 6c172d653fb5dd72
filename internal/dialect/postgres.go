package dialect

import (
	"github.com/lib/pq"

	"github.com/hlop3z/tabula/internal/strutil"
)

// postgres implements the Dialect interface for PostgreSQL.
type postgres struct{}

// Postgres returns the PostgreSQL dialect implementation.
func Postgres() Dialect {
	return &postgres{}
}

func (d *postgres) Name() string {
	return "postgres"
}

// -----------------------------------------------------------------------------
// Type mappings
// -----------------------------------------------------------------------------

func (d *postgres) TextType() string {
	return "TEXT"
}

func (d *postgres) IntegerType() string {
	return "INTEGER"
}

func (d *postgres) BooleanType() string {
	return "BOOLEAN"
}

func (d *postgres) DateType() string {
	return "DATE"
}

func (d *postgres) TimestampType() string {
	return "TIMESTAMP"
}

func (d *postgres) UUIDType() string {
	return "UUID"
}

func (d *postgres) JSONType() string {
	return "JSONB"
}

func (d *postgres) SerialType() string {
	return "SERIAL"
}

func (d *postgres) UUIDDefault() string {
	return "gen_random_uuid()"
}

// -----------------------------------------------------------------------------
// Quoting
// -----------------------------------------------------------------------------

func (d *postgres) QuoteIdent(name string) string {
	return pq.QuoteIdentifier(name)
}

// QuoteLiteral doubles single quotes only. pq.QuoteLiteral switches to the
// E-prefixed escape form on backslashes, which changes enum labels under
// standard_conforming_strings.
func (d *postgres) QuoteLiteral(value string) string {
	return strutil.QuoteLiteral(value)
}
