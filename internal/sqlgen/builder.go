// Package sqlgen compiles a schema graph into PostgreSQL DDL. Builder
// provides the fluent statement construction the compiler is written with.
package sqlgen

import (
	"strings"

	"github.com/hlop3z/tabula/internal/dialect"
)

// Builder provides fluent SQL construction with dialect-aware quoting.
type Builder struct {
	dialect dialect.Dialect
	buf     strings.Builder
}

// NewBuilder creates a new Builder for the specified dialect.
func NewBuilder(d dialect.Dialect) *Builder {
	return &Builder{
		dialect: d,
	}
}

// Dialect returns the dialect of this builder.
func (b *Builder) Dialect() dialect.Dialect {
	return b.dialect
}

// ----------------------------------------------------------------------------
// DDL Helpers
// ----------------------------------------------------------------------------

// CreateType appends "CREATE TYPE <name> AS ENUM (<values>)" to the buffer.
func (b *Builder) CreateType(name string, values []string) *Builder {
	b.buf.WriteString("CREATE TYPE ")
	b.buf.WriteString(b.dialect.QuoteIdent(name))
	b.buf.WriteString(" AS ENUM (")
	b.buf.WriteString(dialect.LiteralList(b.dialect, values...))
	b.buf.WriteString(")")
	return b
}

// CreateTable appends "CREATE TABLE <name>" to the buffer.
func (b *Builder) CreateTable(name string) *Builder {
	b.buf.WriteString("CREATE TABLE ")
	b.buf.WriteString(b.dialect.QuoteIdent(name))
	return b
}

// AlterTable appends "ALTER TABLE <name>" to the buffer.
func (b *Builder) AlterTable(name string) *Builder {
	b.buf.WriteString("ALTER TABLE ")
	b.buf.WriteString(b.dialect.QuoteIdent(name))
	return b
}

// CreateIndex appends "CREATE INDEX <name> ON <table> (<cols>)" to the buffer.
func (b *Builder) CreateIndex(name, table string, cols ...string) *Builder {
	b.buf.WriteString("CREATE INDEX ")
	b.buf.WriteString(b.dialect.QuoteIdent(name))
	b.buf.WriteString(" ON ")
	b.buf.WriteString(b.dialect.QuoteIdent(table))
	b.buf.WriteString(" (")
	b.buf.WriteString(dialect.QuoteList(b.dialect, cols...))
	b.buf.WriteString(")")
	return b
}

// Column appends "<name> <typ>" to the buffer (for use inside CREATE TABLE).
func (b *Builder) Column(name, typ string) *Builder {
	b.buf.WriteString(b.dialect.QuoteIdent(name))
	b.buf.WriteString(" ")
	b.buf.WriteString(typ)
	return b
}

// ----------------------------------------------------------------------------
// Column Modifiers
// ----------------------------------------------------------------------------

// NotNull appends "NOT NULL" to the buffer.
func (b *Builder) NotNull() *Builder {
	b.buf.WriteString(" NOT NULL")
	return b
}

// Default appends "DEFAULT <expr>" to the buffer.
// The expression is written as-is (not quoted).
func (b *Builder) Default(expr string) *Builder {
	b.buf.WriteString(" DEFAULT ")
	b.buf.WriteString(expr)
	return b
}

// PrimaryKey appends "PRIMARY KEY" to the buffer.
func (b *Builder) PrimaryKey() *Builder {
	b.buf.WriteString(" PRIMARY KEY")
	return b
}

// Unique appends "UNIQUE" to the buffer.
func (b *Builder) Unique() *Builder {
	b.buf.WriteString(" UNIQUE")
	return b
}

// References appends "REFERENCES <table> (<cols>)" to the buffer.
func (b *Builder) References(table string, cols ...string) *Builder {
	b.buf.WriteString(" REFERENCES ")
	b.buf.WriteString(b.dialect.QuoteIdent(table))
	b.buf.WriteString(" (")
	b.buf.WriteString(dialect.QuoteList(b.dialect, cols...))
	b.buf.WriteString(")")
	return b
}

// OnDelete appends "ON DELETE <action>" to the buffer. An empty action
// appends nothing.
func (b *Builder) OnDelete(action string) *Builder {
	if action != "" {
		b.buf.WriteString(" ON DELETE ")
		b.buf.WriteString(action)
	}
	return b
}

// OnUpdate appends "ON UPDATE <action>" to the buffer. An empty action
// appends nothing.
func (b *Builder) OnUpdate(action string) *Builder {
	if action != "" {
		b.buf.WriteString(" ON UPDATE ")
		b.buf.WriteString(action)
	}
	return b
}

// ----------------------------------------------------------------------------
// Constraints
// ----------------------------------------------------------------------------

// AddConstraint appends " ADD CONSTRAINT <name>" to the buffer.
func (b *Builder) AddConstraint(name string) *Builder {
	b.buf.WriteString(" ADD ")
	return b.Constraint(name)
}

// Constraint appends "CONSTRAINT <name>" to the buffer.
func (b *Builder) Constraint(name string) *Builder {
	b.buf.WriteString("CONSTRAINT ")
	b.buf.WriteString(b.dialect.QuoteIdent(name))
	return b
}

// ForeignKey appends "FOREIGN KEY (<cols>)" to the buffer.
func (b *Builder) ForeignKey(cols ...string) *Builder {
	b.buf.WriteString(" FOREIGN KEY (")
	b.buf.WriteString(dialect.QuoteList(b.dialect, cols...))
	b.buf.WriteString(")")
	return b
}

// PrimaryKeyOn appends "PRIMARY KEY (<cols>)" to the buffer.
func (b *Builder) PrimaryKeyOn(cols ...string) *Builder {
	b.buf.WriteString(" PRIMARY KEY (")
	b.buf.WriteString(dialect.QuoteList(b.dialect, cols...))
	b.buf.WriteString(")")
	return b
}

// ----------------------------------------------------------------------------
// Utilities
// ----------------------------------------------------------------------------

// Raw appends raw SQL to the buffer without any modification.
func (b *Builder) Raw(sql string) *Builder {
	b.buf.WriteString(sql)
	return b
}

// End appends the statement terminator ";".
func (b *Builder) End() *Builder {
	b.buf.WriteString(";")
	return b
}

// String returns the accumulated SQL string.
func (b *Builder) String() string {
	return b.buf.String()
}

// Reset clears the buffer so the builder can be reused.
func (b *Builder) Reset() *Builder {
	b.buf.Reset()
	return b
}
