package schema

import (
	"encoding/json"
	"slices"
)

// -----------------------------------------------------------------------------
// ColumnRef - pointer at a table column
// -----------------------------------------------------------------------------

// ColumnRef identifies a column by table id and column id.
type ColumnRef struct {
	TableID  string `json:"tableId" yaml:"table_id"`
	ColumnID string `json:"columnId" yaml:"column_id"`
}

// -----------------------------------------------------------------------------
// Column
// -----------------------------------------------------------------------------

// Column is one column of a table. IsForeign and References move together:
// a foreign column always carries a reference and a plain column never does.
type Column struct {
	ID           string     `json:"id" yaml:"id"`
	Name         string     `json:"name" yaml:"name"`
	Type         ColumnType `json:"type" yaml:"type"`
	EnumValues   []string   `json:"enumValues,omitempty" yaml:"enum_values,omitempty"`
	DefaultValue string     `json:"defaultValue,omitempty" yaml:"default_value,omitempty"` // raw SQL expression
	IsPrimary    bool       `json:"isPrimary" yaml:"is_primary"`
	IsUnique     bool       `json:"isUnique" yaml:"is_unique"`
	IsNullable   bool       `json:"isNullable" yaml:"is_nullable"`
	IsForeign    bool       `json:"isForeign" yaml:"is_foreign"`
	References   *ColumnRef `json:"references,omitempty" yaml:"references,omitempty"`
}

// UnmarshalJSON decodes a column, treating an absent isNullable as true.
func (c *Column) UnmarshalJSON(data []byte) error {
	type plain Column
	p := plain{IsNullable: true}
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*c = Column(p)
	return nil
}

// Clone returns a deep copy of the column.
func (c Column) Clone() Column {
	out := c
	out.EnumValues = slices.Clone(c.EnumValues)
	if c.References != nil {
		ref := *c.References
		out.References = &ref
	}
	return out
}

// ReferencesTo reports whether the column is a foreign key pointing at ref.
func (c *Column) ReferencesTo(ref ColumnRef) bool {
	return c.IsForeign && c.References != nil && *c.References == ref
}

// -----------------------------------------------------------------------------
// Table
// -----------------------------------------------------------------------------

// Table is a named, positioned, ordered list of columns. X and Y are canvas
// coordinates only.
type Table struct {
	ID      string   `json:"id" yaml:"id"`
	Name    string   `json:"name" yaml:"name"`
	X       float64  `json:"x" yaml:"x"`
	Y       float64  `json:"y" yaml:"y"`
	Columns []Column `json:"columns" yaml:"columns"`
}

// Clone returns a deep copy of the table.
func (t Table) Clone() Table {
	out := t
	if t.Columns != nil {
		out.Columns = make([]Column, len(t.Columns))
		for i, c := range t.Columns {
			out.Columns[i] = c.Clone()
		}
	}
	return out
}

// Column returns the column with the given id, or nil if not found.
func (t *Table) Column(id string) *Column {
	for i := range t.Columns {
		if t.Columns[i].ID == id {
			return &t.Columns[i]
		}
	}
	return nil
}

// ColumnIndex returns the position of the column with the given id, or -1.
func (t *Table) ColumnIndex(id string) int {
	return slices.IndexFunc(t.Columns, func(c Column) bool { return c.ID == id })
}

// ColumnByName returns the first column with the given name, or nil.
func (t *Table) ColumnByName(name string) *Column {
	for i := range t.Columns {
		if t.Columns[i].Name == name {
			return &t.Columns[i]
		}
	}
	return nil
}

// PrimaryKeys returns the primary key columns in declaration order.
func (t *Table) PrimaryKeys() []Column {
	var pks []Column
	for _, c := range t.Columns {
		if c.IsPrimary {
			pks = append(pks, c)
		}
	}
	return pks
}

// PrimaryKey returns the first primary key column, or nil if none.
func (t *Table) PrimaryKey() *Column {
	for i := range t.Columns {
		if t.Columns[i].IsPrimary {
			return &t.Columns[i]
		}
	}
	return nil
}

// -----------------------------------------------------------------------------
// Relation
// -----------------------------------------------------------------------------

// Relation links two columns. For one-to-one and one-to-many, From is the
// parent key and To is the child's FK column.
type Relation struct {
	ID                  string      `json:"id" yaml:"id"`
	From                ColumnRef   `json:"from" yaml:"from"`
	To                  ColumnRef   `json:"to" yaml:"to"`
	Cardinality         Cardinality `json:"cardinality" yaml:"cardinality"`
	IsOneToManyReversed bool        `json:"isOneToManyReversed,omitempty" yaml:"is_one_to_many_reversed,omitempty"`
	DeleteRule          DeleteRule  `json:"deleteRule" yaml:"delete_rule"`
	UpdateRule          UpdateRule  `json:"updateRule" yaml:"update_rule"`
}

// Clone returns a copy of the relation. Relations hold no shared containers.
func (r Relation) Clone() Relation {
	return r
}

// Touches reports whether either endpoint lies on the given table.
func (r *Relation) Touches(tableID string) bool {
	return r.From.TableID == tableID || r.To.TableID == tableID
}

// HasEndpoint reports whether either endpoint is ref.
func (r *Relation) HasEndpoint(ref ColumnRef) bool {
	return r.From == ref || r.To == ref
}

// Connects reports whether the relation joins a and b, in either orientation.
func (r *Relation) Connects(a, b ColumnRef) bool {
	return (r.From == a && r.To == b) || (r.From == b && r.To == a)
}

// -----------------------------------------------------------------------------
// Project
// -----------------------------------------------------------------------------

// Viewport is canvas pan/zoom state saved alongside the schema.
type Viewport struct {
	X     float64 `json:"x" yaml:"x"`
	Y     float64 `json:"y" yaml:"y"`
	Scale float64 `json:"scale" yaml:"scale"`
}

// DefaultViewport is used when a project file carries none.
var DefaultViewport = Viewport{X: 0, Y: 0, Scale: 1}

// Project is the persisted unit: the schema plus its viewport.
type Project struct {
	Tables    []Table    `json:"tables" yaml:"tables"`
	Relations []Relation `json:"relations" yaml:"relations"`
	Viewport  Viewport   `json:"viewport" yaml:"viewport"`
}

// CloneTables deep-copies a table slice, preserving nil.
func CloneTables(tables []Table) []Table {
	if tables == nil {
		return nil
	}
	out := make([]Table, len(tables))
	for i, t := range tables {
		out[i] = t.Clone()
	}
	return out
}

// CloneRelations copies a relation slice, preserving nil.
func CloneRelations(relations []Relation) []Relation {
	return slices.Clone(relations)
}
