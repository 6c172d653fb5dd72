package editor

import (
	"github.com/hlop3z/tabula/internal/graph"
	"github.com/hlop3z/tabula/internal/schema"
)

// -----------------------------------------------------------------------------
// Tables
// -----------------------------------------------------------------------------

// CreateTable adds a table with a uuid "id" primary key and returns its id.
// An empty name gets the next free "table_<n>".
func (e *Editor) CreateTable(name string, x, y float64) string {
	id := e.newID()
	if e.apply("create table", e.graph.CreateTable(id, name, x, y), "table_id", id) {
		e.selection = Selection{TableID: id}
		return id
	}
	return ""
}

// InsertTable adds a fully specified table. Missing ids are generated.
func (e *Editor) InsertTable(t schema.Table) string {
	t = t.Clone()
	if t.ID == "" {
		t.ID = e.newID()
	}
	for i := range t.Columns {
		if t.Columns[i].ID == "" {
			t.Columns[i].ID = e.newID()
		}
	}
	if e.apply("insert table", e.graph.InsertTable(t), "table_id", t.ID) {
		return t.ID
	}
	return ""
}

// RenameTable renames a table.
func (e *Editor) RenameTable(id, name string) bool {
	return e.apply("rename table", e.graph.RenameTable(id, name), "table_id", id, "name", name)
}

// MoveTable repositions a table on the canvas.
func (e *Editor) MoveTable(id string, x, y float64) bool {
	return e.apply("move table", e.graph.MoveTable(id, x, y), "table_id", id)
}

// DeleteTable removes a table and everything that depended on it.
func (e *Editor) DeleteTable(id string) bool {
	if !e.apply("delete table", e.graph.DeleteTable(id), "table_id", id) {
		return false
	}
	if e.selection.TableID == id {
		e.selection = Selection{}
	}
	if e.link != nil && e.link.TableID == id {
		e.link = nil
	}
	return true
}

// -----------------------------------------------------------------------------
// Columns
// -----------------------------------------------------------------------------

// AddColumn appends a nullable text column and returns its id.
func (e *Editor) AddColumn(tableID string) string {
	id := e.newID()
	if e.apply("add column", e.graph.AddColumn(tableID, id), "table_id", tableID, "column_id", id) {
		return id
	}
	return ""
}

// InsertColumn appends a fully specified column and returns its id. An
// empty column id is generated.
func (e *Editor) InsertColumn(tableID string, col schema.Column) string {
	if col.ID == "" {
		col.ID = e.newID()
	}
	if e.apply("insert column", e.graph.InsertColumn(tableID, col), "table_id", tableID, "column_id", col.ID) {
		return col.ID
	}
	return ""
}

// UpdateColumnField sets one column attribute from its textual value.
func (e *Editor) UpdateColumnField(tableID, columnID string, field graph.ColumnField, value string) bool {
	return e.apply("update column", e.graph.UpdateColumnField(tableID, columnID, field, value),
		"table_id", tableID, "column_id", columnID, "field", field.String())
}

// ToggleColumnFlag flips one boolean column attribute.
func (e *Editor) ToggleColumnFlag(tableID, columnID string, flag graph.ColumnFlag) bool {
	return e.apply("toggle column flag", e.graph.ToggleColumnFlag(tableID, columnID, flag),
		"table_id", tableID, "column_id", columnID, "flag", flag.String())
}

// SetForeignReference makes a column a foreign key to target without
// creating a relation.
func (e *Editor) SetForeignReference(tableID, columnID string, target schema.ColumnRef) bool {
	return e.apply("set reference", e.graph.SetForeignReference(tableID, columnID, target),
		"table_id", tableID, "column_id", columnID)
}

// RemoveColumn removes a column and its dependent relations.
func (e *Editor) RemoveColumn(tableID, columnID string) bool {
	if !e.apply("remove column", e.graph.RemoveColumn(tableID, columnID), "table_id", tableID, "column_id", columnID) {
		return false
	}
	if e.selection.ColumnID != "" && e.graph.Column(schema.ColumnRef{TableID: e.selection.TableID, ColumnID: e.selection.ColumnID}) == nil {
		e.selection.ColumnID = ""
	}
	if e.link != nil && e.graph.Column(*e.link) == nil {
		e.link = nil
	}
	return true
}

// -----------------------------------------------------------------------------
// Relations
// -----------------------------------------------------------------------------

// CreateRelation links two columns and returns the new relation id. An
// empty id with a nil error means the graph already had the relation or
// the endpoints did not resolve.
func (e *Editor) CreateRelation(src, dst schema.ColumnRef) (string, error) {
	id := e.newID()
	next, err := e.graph.CreateRelation(id, src.TableID, src.ColumnID, dst.TableID, dst.ColumnID)
	if err != nil {
		e.reject("create relation", err, "from_table", src.TableID, "to_table", dst.TableID)
		return "", err
	}
	if e.apply("create relation", next, "relation_id", id) {
		return id, nil
	}
	return "", nil
}

// SetCardinality changes a relation's cardinality and orientation.
func (e *Editor) SetCardinality(relationID string, card schema.Cardinality, reversed bool) error {
	next, err := e.graph.SetCardinality(relationID, card, reversed)
	if err != nil {
		e.reject("set cardinality", err, "relation_id", relationID, "cardinality", card)
		return err
	}
	e.apply("set cardinality", next, "relation_id", relationID, "cardinality", card, "reversed", reversed)
	return nil
}

// SetRelationRules changes the ON DELETE and ON UPDATE actions.
func (e *Editor) SetRelationRules(relationID string, onDelete schema.DeleteRule, onUpdate schema.UpdateRule) bool {
	return e.apply("set relation rules", e.graph.SetRelationRules(relationID, onDelete, onUpdate),
		"relation_id", relationID, "on_delete", onDelete, "on_update", onUpdate)
}

// DeleteRelation removes a relation and the FK column it implied.
func (e *Editor) DeleteRelation(id string) bool {
	return e.apply("delete relation", e.graph.DeleteRelation(id), "relation_id", id)
}
