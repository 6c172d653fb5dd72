// Package graph implements the schema graph: tables, columns and relations
// held as an immutable value. Every mutator returns a new Graph and leaves
// the receiver untouched, so any Graph can be kept as an undo snapshot.
//
// Operations on ids that do not exist are no-ops returning an equal graph.
// The only rejected mutation is a relation that cannot find a primary key,
// reported as alerr.ErrMissingPrimaryKey.
package graph

import (
	"reflect"
	"slices"
	"strconv"

	"github.com/hlop3z/tabula/internal/schema"
)

// DefaultKeyColumnID is the id of the primary key column CreateTable adds.
const DefaultKeyColumnID = "id"

// Graph is the logical schema: tables with their columns, and relations.
type Graph struct {
	Tables    []schema.Table    `json:"tables"`
	Relations []schema.Relation `json:"relations"`
}

// New builds a graph from deep copies of tables and relations.
func New(tables []schema.Table, relations []schema.Relation) Graph {
	return Graph{
		Tables:    schema.CloneTables(tables),
		Relations: schema.CloneRelations(relations),
	}
}

// Clone returns a deep copy sharing no slice or pointer with g.
func (g Graph) Clone() Graph {
	return New(g.Tables, g.Relations)
}

// Equal reports whether two graphs hold identical data.
func (g Graph) Equal(other Graph) bool {
	return reflect.DeepEqual(g, other)
}

// -----------------------------------------------------------------------------
// Lookups
// -----------------------------------------------------------------------------
// Pointers returned by lookups alias g's storage and must be treated as
// read-only by callers outside this package.

// TableIndex returns the position of the table with the given id, or -1.
func (g Graph) TableIndex(id string) int {
	return slices.IndexFunc(g.Tables, func(t schema.Table) bool { return t.ID == id })
}

// Table returns the table with the given id, or nil.
func (g Graph) Table(id string) *schema.Table {
	if i := g.TableIndex(id); i >= 0 {
		return &g.Tables[i]
	}
	return nil
}

// TableByName returns the first table with the given name, or nil.
func (g Graph) TableByName(name string) *schema.Table {
	for i := range g.Tables {
		if g.Tables[i].Name == name {
			return &g.Tables[i]
		}
	}
	return nil
}

// Column resolves a column reference, or returns nil.
func (g Graph) Column(ref schema.ColumnRef) *schema.Column {
	t := g.Table(ref.TableID)
	if t == nil {
		return nil
	}
	return t.Column(ref.ColumnID)
}

// Relation returns the relation with the given id, or nil.
func (g Graph) Relation(id string) *schema.Relation {
	for i := range g.Relations {
		if g.Relations[i].ID == id {
			return &g.Relations[i]
		}
	}
	return nil
}

// RelationsOf returns the relations with an endpoint on the given table.
func (g Graph) RelationsOf(tableID string) []schema.Relation {
	var out []schema.Relation
	for _, r := range g.Relations {
		if r.Touches(tableID) {
			out = append(out, r)
		}
	}
	return out
}

// Dependents returns references to every column whose FK points at ref.
func (g Graph) Dependents(ref schema.ColumnRef) []schema.ColumnRef {
	var out []schema.ColumnRef
	for _, t := range g.Tables {
		for _, c := range t.Columns {
			if c.ReferencesTo(ref) {
				out = append(out, schema.ColumnRef{TableID: t.ID, ColumnID: c.ID})
			}
		}
	}
	return out
}

// TableNames returns all table names in order.
func (g Graph) TableNames() []string {
	names := make([]string, len(g.Tables))
	for i, t := range g.Tables {
		names[i] = t.Name
	}
	return names
}

// -----------------------------------------------------------------------------
// Internal mutation helpers (callers hold a private clone)
// -----------------------------------------------------------------------------

// eachColumn calls fn for every column, allowing in-place edits.
func (g *Graph) eachColumn(fn func(t *schema.Table, c *schema.Column)) {
	for i := range g.Tables {
		t := &g.Tables[i]
		for j := range t.Columns {
			fn(t, &t.Columns[j])
		}
	}
}

// dropColumn removes a column and clears the FK of every column that
// referenced it. Relations are left to the caller.
func (g *Graph) dropColumn(ref schema.ColumnRef) bool {
	t := g.Table(ref.TableID)
	if t == nil {
		return false
	}
	idx := t.ColumnIndex(ref.ColumnID)
	if idx < 0 {
		return false
	}
	t.Columns = slices.Delete(t.Columns, idx, idx+1)
	g.eachColumn(func(_ *schema.Table, c *schema.Column) {
		if c.ReferencesTo(ref) {
			c.IsForeign = false
			c.References = nil
		}
	})
	return true
}

// dropDanglingRelations removes relations with an endpoint that no longer
// resolves to a column.
func (g *Graph) dropDanglingRelations() {
	g.Relations = slices.DeleteFunc(g.Relations, func(r schema.Relation) bool {
		return g.Column(r.From) == nil || g.Column(r.To) == nil
	})
}

// uniqueColumnID returns base, or base with a numeric suffix when base is
// already used in the table.
func uniqueColumnID(t *schema.Table, base string) string {
	id := base
	for n := 2; t.Column(id) != nil; n++ {
		id = base + "_" + strconv.Itoa(n)
	}
	return id
}

// uniqueName returns prefix_<n> for the smallest n >= start not in use.
func uniqueName(prefix string, start int, taken func(string) bool) string {
	for n := start; ; n++ {
		name := prefix + "_" + strconv.Itoa(n)
		if !taken(name) {
			return name
		}
	}
}
