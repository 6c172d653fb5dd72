// Package schema defines the data model of a visually built relational
// schema: tables, columns, relations and the persisted project.
package schema

import (
	"fmt"
	"strings"
)

// ColumnType is the logical type of a column. Any string is accepted; the SQL
// compiler maps unknown types to TEXT.
type ColumnType string

const (
	TypeInteger   ColumnType = "integer"
	TypeText      ColumnType = "text"
	TypeUUID      ColumnType = "uuid"
	TypeDate      ColumnType = "date"
	TypeTimestamp ColumnType = "timestamp"
	TypeBoolean   ColumnType = "boolean"
	TypeJSON      ColumnType = "json"
	TypeEnum      ColumnType = "enum"
)

// ColumnTypes lists the types the SQL compiler recognizes.
var ColumnTypes = []ColumnType{
	TypeInteger, TypeText, TypeUUID, TypeDate, TypeTimestamp, TypeBoolean, TypeJSON, TypeEnum,
}

// Known reports whether the compiler has a dedicated mapping for t.
func (t ColumnType) Known() bool {
	for _, k := range ColumnTypes {
		if t == k {
			return true
		}
	}
	return false
}

// Cardinality is the multiplicity contract of a relation.
type Cardinality string

const (
	OneToOne   Cardinality = "one-to-one"
	OneToMany  Cardinality = "one-to-many"
	ManyToMany Cardinality = "many-to-many"
)

// UsesForeignKey reports whether the cardinality is materialized as an FK
// column in the live graph. Many-to-many is represented by a junction table
// the compiler synthesizes.
func (c Cardinality) UsesForeignKey() bool {
	return c == OneToOne || c == OneToMany
}

// ParseCardinality accepts the canonical names and the short forms 1:1, 1:n, n:m.
func ParseCardinality(s string) (Cardinality, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "one-to-one", "1:1":
		return OneToOne, nil
	case "one-to-many", "1:n", "1:*":
		return OneToMany, nil
	case "many-to-many", "n:m", "m:n", "*:*":
		return ManyToMany, nil
	}
	return "", fmt.Errorf("unknown cardinality %q; must be one of: one-to-one, one-to-many, many-to-many", s)
}

// DeleteRule is the ON DELETE behavior of a relation.
type DeleteRule string

const (
	DeleteCascade  DeleteRule = "cascade"
	DeleteSetNull  DeleteRule = "set-null"
	DeleteRestrict DeleteRule = "restrict"
)

// SQL returns the referential action keyword, or "" for an unknown rule.
func (r DeleteRule) SQL() string {
	switch r {
	case DeleteCascade:
		return "CASCADE"
	case DeleteSetNull:
		return "SET NULL"
	case DeleteRestrict:
		return "RESTRICT"
	}
	return ""
}

// ParseDeleteRule parses a delete rule, accepting SQL spellings too.
func ParseDeleteRule(s string) (DeleteRule, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "cascade":
		return DeleteCascade, nil
	case "set-null", "set null", "set_null":
		return DeleteSetNull, nil
	case "restrict":
		return DeleteRestrict, nil
	}
	return "", fmt.Errorf("unknown delete rule %q; must be one of: cascade, set-null, restrict", s)
}

// UpdateRule is the ON UPDATE behavior of a relation.
type UpdateRule string

const (
	UpdateCascade  UpdateRule = "cascade"
	UpdateRestrict UpdateRule = "restrict"
)

// SQL returns the referential action keyword, or "" for an unknown rule.
func (r UpdateRule) SQL() string {
	switch r {
	case UpdateCascade:
		return "CASCADE"
	case UpdateRestrict:
		return "RESTRICT"
	}
	return ""
}

// ParseUpdateRule parses an update rule.
func ParseUpdateRule(s string) (UpdateRule, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "cascade":
		return UpdateCascade, nil
	case "restrict":
		return UpdateRestrict, nil
	}
	return "", fmt.Errorf("unknown update rule %q; must be one of: cascade, restrict", s)
}
