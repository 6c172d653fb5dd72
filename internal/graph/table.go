package graph

import (
	"slices"

	"github.com/hlop3z/tabula/internal/schema"
)

// CreateTable appends a table with a single uuid primary key column named
// "id". An empty name is replaced by the next free "table_<n>". A duplicate
// or empty id is a no-op.
func (g Graph) CreateTable(id, name string, x, y float64) Graph {
	if id == "" || g.TableIndex(id) >= 0 {
		return g
	}
	if name == "" {
		name = uniqueName("table", len(g.Tables)+1, func(n string) bool { return g.TableByName(n) != nil })
	}

	next := g.Clone()
	next.Tables = append(next.Tables, schema.Table{
		ID:   id,
		Name: name,
		X:    x,
		Y:    y,
		Columns: []schema.Column{{
			ID:        DefaultKeyColumnID,
			Name:      "id",
			Type:      schema.TypeUUID,
			IsPrimary: true,
		}},
	})
	return next
}

// InsertTable appends a fully specified table. Column FKs that do not
// resolve within the resulting graph are cleared.
func (g Graph) InsertTable(t schema.Table) Graph {
	if t.ID == "" || g.TableIndex(t.ID) >= 0 {
		return g
	}
	next := g.Clone()
	next.Tables = append(next.Tables, t.Clone())
	added := &next.Tables[len(next.Tables)-1]
	for i := range added.Columns {
		c := &added.Columns[i]
		if c.IsForeign && (c.References == nil || next.Column(*c.References) == nil) {
			c.IsForeign = false
			c.References = nil
		}
		if !c.IsForeign {
			c.References = nil
		}
	}
	return next
}

// RenameTable changes a table's name. Existing FK column names are kept;
// only column renames propagate.
func (g Graph) RenameTable(id, name string) Graph {
	if g.TableIndex(id) < 0 {
		return g
	}
	next := g.Clone()
	next.Table(id).Name = name
	return next
}

// MoveTable sets a table's canvas position.
func (g Graph) MoveTable(id string, x, y float64) Graph {
	if g.TableIndex(id) < 0 {
		return g
	}
	next := g.Clone()
	t := next.Table(id)
	t.X, t.Y = x, y
	return next
}

// AddColumn appends a nullable text column named "column_<n>".
func (g Graph) AddColumn(tableID, columnID string) Graph {
	t := g.Table(tableID)
	if t == nil || columnID == "" || t.Column(columnID) != nil {
		return g
	}
	name := uniqueName("column", len(t.Columns)+1, func(n string) bool { return t.ColumnByName(n) != nil })
	return g.InsertColumn(tableID, schema.Column{
		ID:         columnID,
		Name:       name,
		Type:       schema.TypeText,
		IsNullable: true,
	})
}

// InsertColumn appends a fully specified column. A foreign column whose
// reference does not resolve is inserted as a plain column.
func (g Graph) InsertColumn(tableID string, col schema.Column) Graph {
	t := g.Table(tableID)
	if t == nil || col.ID == "" || t.Column(col.ID) != nil {
		return g
	}
	col = col.Clone()
	if !col.IsForeign || col.References == nil || g.Column(*col.References) == nil {
		col.IsForeign = false
		col.References = nil
	}
	if col.IsPrimary {
		col.IsNullable = false
	}

	next := g.Clone()
	nt := next.Table(tableID)
	nt.Columns = append(nt.Columns, col)
	return next
}

// RemoveColumn removes a column and cascades: relations with an endpoint on
// the column are deleted with DeleteRelation semantics (which may drop the FK
// columns they implied), and columns elsewhere that referenced it stop being
// foreign keys.
func (g Graph) RemoveColumn(tableID, columnID string) Graph {
	ref := schema.ColumnRef{TableID: tableID, ColumnID: columnID}
	if g.Column(ref) == nil {
		return g
	}

	next := g
	for _, r := range g.Relations {
		if r.HasEndpoint(ref) {
			next = next.DeleteRelation(r.ID)
		}
	}

	next = next.Clone()
	next.dropColumn(ref)
	next.dropDanglingRelations()
	return next
}

// DeleteTable removes a table, every relation touching it, and on all other
// tables the FK columns that referenced it. Relations anchored on those FK
// columns are removed as well, and columns referencing them lose their
// reference.
func (g Graph) DeleteTable(id string) Graph {
	idx := g.TableIndex(id)
	if idx < 0 {
		return g
	}

	next := g.Clone()
	next.Tables = slices.Delete(next.Tables, idx, idx+1)
	next.Relations = slices.DeleteFunc(next.Relations, func(r schema.Relation) bool {
		return r.Touches(id)
	})
	var stripped []schema.ColumnRef
	for _, t := range next.Tables {
		for _, c := range t.Columns {
			if c.IsForeign && c.References != nil && c.References.TableID == id {
				stripped = append(stripped, schema.ColumnRef{TableID: t.ID, ColumnID: c.ID})
			}
		}
	}
	for _, ref := range stripped {
		next.dropColumn(ref)
	}
	next.dropDanglingRelations()
	return next
}
