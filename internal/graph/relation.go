package graph

import (
	"slices"

	"github.com/hlop3z/tabula/internal/alerr"
	"github.com/hlop3z/tabula/internal/schema"
	"github.com/hlop3z/tabula/internal/strutil"
)

// missingPrimaryKey reports a relation whose endpoints have no primary key.
func missingPrimaryKey(tables ...*schema.Table) *alerr.Error {
	e := alerr.New(alerr.ErrMissingPrimaryKey, "relation requires a primary key on one endpoint")
	switch len(tables) {
	case 1:
		e.WithTable(tables[0].Name)
	case 2:
		e.With("tables", tables[0].Name+", "+tables[1].Name)
	}
	return e.WithHelp("mark the referenced column as primary key before linking")
}

// fkColumn builds the canonical FK column pointing at parent.
func fkColumn(id, name string, parentRef schema.ColumnRef, parent *schema.Column, unique bool) schema.Column {
	ref := parentRef
	return schema.Column{
		ID:         id,
		Name:       name,
		Type:       parent.Type,
		EnumValues: slices.Clone(parent.EnumValues),
		IsUnique:   unique,
		IsNullable: true,
		IsForeign:  true,
		References: &ref,
	}
}

// CreateRelation links two columns with a one-to-many relation. The side
// whose column is a primary key becomes the parent (the source wins when
// both are). The child receives the canonical FK column
// "<parentTable>_<parentColumn>" unless it already has a column referencing
// the parent or one with that name, which is reused and retyped to match
// the parent key.
//
// Identical endpoints, missing ids, a taken relation id, or a relation that
// already links the parent to the child FK leave the graph unchanged. When
// neither column is a primary key the graph is unchanged and an
// alerr.ErrMissingPrimaryKey error is returned.
func (g Graph) CreateRelation(id, srcTableID, srcColumnID, dstTableID, dstColumnID string) (Graph, error) {
	src := schema.ColumnRef{TableID: srcTableID, ColumnID: srcColumnID}
	dst := schema.ColumnRef{TableID: dstTableID, ColumnID: dstColumnID}
	if src == dst || id == "" || g.Relation(id) != nil {
		return g, nil
	}
	srcCol, dstCol := g.Column(src), g.Column(dst)
	if srcCol == nil || dstCol == nil {
		return g, nil
	}

	var parent, child schema.ColumnRef
	switch {
	case srcCol.IsPrimary:
		parent, child = src, dst
	case dstCol.IsPrimary:
		parent, child = dst, src
	default:
		return g, missingPrimaryKey(g.Table(src.TableID), g.Table(dst.TableID))
	}

	next := g.Clone()
	parentTable := next.Table(parent.TableID)
	parentCol := parentTable.Column(parent.ColumnID)
	childTable := next.Table(child.TableID)
	fkName := strutil.FKColumn(parentTable.Name, parentCol.Name)

	var fk *schema.Column
	for i := range childTable.Columns {
		if childTable.Columns[i].ReferencesTo(parent) {
			fk = &childTable.Columns[i]
			break
		}
	}
	if fk == nil {
		fk = childTable.ColumnByName(fkName)
	}
	switch {
	case fk == nil:
		fkID := uniqueColumnID(childTable, strutil.FKColumnID(parent.TableID, parent.ColumnID))
		childTable.Columns = append(childTable.Columns, fkColumn(fkID, fkName, parent, parentCol, false))
		fk = &childTable.Columns[len(childTable.Columns)-1]
	case child.TableID == parent.TableID && fk.ID == parent.ColumnID:
		// A key cannot reference itself.
		return g, nil
	default:
		if !fk.ReferencesTo(parent) {
			ref := parent
			fk.IsForeign = true
			fk.References = &ref
		}
		fk.Type = parentCol.Type
		fk.EnumValues = slices.Clone(parentCol.EnumValues)
	}

	to := schema.ColumnRef{TableID: child.TableID, ColumnID: fk.ID}
	for _, r := range g.Relations {
		if r.Connects(parent, to) {
			return g, nil
		}
	}

	next.Relations = append(next.Relations, schema.Relation{
		ID:          id,
		From:        parent,
		To:          to,
		Cardinality: schema.OneToMany,
		DeleteRule:  schema.DeleteRestrict,
		UpdateRule:  schema.UpdateCascade,
	})
	return next, nil
}

// removedColumn records an FK column taken out by the clean slate of
// SetCardinality so the rebuild can put it back in place.
type removedColumn struct {
	column schema.Column
	index  int // position among the columns that survived the clean slate
}

// anchor returns ref when it names a primary key column, otherwise the
// first primary key of ref's table.
func (g Graph) anchor(ref schema.ColumnRef) (schema.ColumnRef, bool) {
	if c := g.Column(ref); c != nil && c.IsPrimary {
		return ref, true
	}
	t := g.Table(ref.TableID)
	if t == nil {
		return schema.ColumnRef{}, false
	}
	pk := t.PrimaryKey()
	if pk == nil {
		return schema.ColumnRef{}, false
	}
	return schema.ColumnRef{TableID: t.ID, ColumnID: pk.ID}, true
}

// SetCardinality changes a relation's cardinality and orientation.
//
// reversed is the desired IsOneToManyReversed state; the endpoints are
// swapped only when it differs from the stored flag, which keeps repeated
// calls idempotent. The FK columns on either endpoint table that reference
// either endpoint are removed (columns another one-to-one or one-to-many
// relation relies on are kept), then rebuilt:
//
//   - one-to-one, one-to-many: From is anchored on its table's primary key
//     and exactly one canonical FK column on the To table references it.
//     A removed FK column is restored at its position with its id.
//     One-to-one FKs are unique.
//   - many-to-many: no FK column; both endpoints are anchored on primary keys.
//     The junction table only exists in compiled SQL.
//
// A missing primary key returns alerr.ErrMissingPrimaryKey with the graph
// unchanged.
func (g Graph) SetCardinality(relationID string, card schema.Cardinality, reversed bool) (Graph, error) {
	orig := g.Relation(relationID)
	if orig == nil {
		return g, nil
	}
	if card != schema.OneToOne && card != schema.OneToMany && card != schema.ManyToMany {
		return g, nil
	}
	rel := *orig
	if reversed != rel.IsOneToManyReversed {
		rel.From, rel.To = rel.To, rel.From
		rel.IsOneToManyReversed = reversed
	}
	fromTable, toTable := g.Table(rel.From.TableID), g.Table(rel.To.TableID)
	if fromTable == nil || toTable == nil {
		return g, nil
	}

	// Anchors are resolved before the clean slate: they depend only on
	// which columns are primary keys, and the clean slate never removes one.
	fromKey, okFrom := g.anchor(rel.From)
	toKey, okTo := g.anchor(rel.To)
	switch {
	case card.UsesForeignKey() && !okFrom:
		return g, missingPrimaryKey(fromTable)
	case card == schema.ManyToMany && (!okFrom || !okTo):
		return g, missingPrimaryKey(fromTable, toTable)
	}

	endpoints := []schema.ColumnRef{rel.From, rel.To, fromKey}
	if okTo {
		endpoints = append(endpoints, toKey)
	}

	next := g.Clone()
	removed := next.cleanSlate(relationID, endpoints, rel.From.TableID, rel.To.TableID)

	switch card {
	case schema.ManyToMany:
		rel.From, rel.To = fromKey, toKey
	default:
		rel.From = fromKey
		rel.To = next.placeForeignKey(fromKey, rel.To.TableID, card == schema.OneToOne, removed[rel.To.TableID])
	}
	rel.Cardinality = card

	*next.Relation(relationID) = rel
	return next, nil
}

// cleanSlate removes FK columns on the given tables that reference any of
// the endpoints, except those serving as the To column of another
// FK-backed relation. It returns the removed columns per table.
func (g *Graph) cleanSlate(relationID string, endpoints []schema.ColumnRef, tableIDs ...string) map[string][]removedColumn {
	inUse := make(map[schema.ColumnRef]bool)
	for _, r := range g.Relations {
		if r.ID != relationID && r.Cardinality.UsesForeignKey() {
			inUse[r.To] = true
		}
	}

	removed := make(map[string][]removedColumn)
	for _, tableID := range slices.Compact(slices.Clone(tableIDs)) {
		t := g.Table(tableID)
		if t == nil {
			continue
		}
		kept := t.Columns[:0:0]
		for _, c := range t.Columns {
			ref := schema.ColumnRef{TableID: t.ID, ColumnID: c.ID}
			if c.IsForeign && !c.IsPrimary && c.References != nil && slices.Contains(endpoints, *c.References) && !inUse[ref] {
				removed[t.ID] = append(removed[t.ID], removedColumn{column: c, index: len(kept)})
				continue
			}
			kept = append(kept, c)
		}
		t.Columns = kept
	}
	return removed
}

// placeForeignKey ensures exactly one canonical FK column on the child
// table references parentRef and returns its reference. Preference order:
// a column removed by the clean slate that referenced the parent (restored
// in place), a surviving column referencing the parent or carrying the
// canonical name (rewritten in place), or a new column appended.
func (g *Graph) placeForeignKey(parentRef schema.ColumnRef, childTableID string, unique bool, removed []removedColumn) schema.ColumnRef {
	parentTable := g.Table(parentRef.TableID)
	parent := parentTable.Column(parentRef.ColumnID)
	child := g.Table(childTableID)
	name := strutil.FKColumn(parentTable.Name, parent.Name)

	for _, rc := range removed {
		if rc.column.ReferencesTo(parentRef) {
			col := fkColumn(rc.column.ID, name, parentRef, parent, unique)
			child.Columns = slices.Insert(child.Columns, min(rc.index, len(child.Columns)), col)
			return schema.ColumnRef{TableID: childTableID, ColumnID: col.ID}
		}
	}

	for i, c := range child.Columns {
		if childTableID == parentRef.TableID && c.ID == parentRef.ColumnID {
			continue
		}
		if c.ReferencesTo(parentRef) || c.Name == name {
			col := fkColumn(c.ID, name, parentRef, parent, unique)
			if c.IsPrimary {
				col.IsPrimary = true
				col.IsNullable = false
			}
			child.Columns[i] = col
			return schema.ColumnRef{TableID: childTableID, ColumnID: c.ID}
		}
	}

	id := uniqueColumnID(child, strutil.FKColumnID(parentRef.TableID, parentRef.ColumnID))
	child.Columns = append(child.Columns, fkColumn(id, name, parentRef, parent, unique))
	return schema.ColumnRef{TableID: childTableID, ColumnID: id}
}

// DeleteRelation removes a relation and the FK column it implied. FK columns
// are reference counted: the column stays while another surviving relation
// uses it, or links the same parent to the same child table.
func (g Graph) DeleteRelation(id string) Graph {
	r := g.Relation(id)
	if r == nil {
		return g
	}
	rel := *r

	next := g.Clone()
	next.Relations = slices.DeleteFunc(next.Relations, func(x schema.Relation) bool { return x.ID == id })

	if !rel.Cardinality.UsesForeignKey() {
		return next
	}
	fk := next.Column(rel.To)
	if fk == nil || !fk.ReferencesTo(rel.From) {
		return next
	}
	for _, other := range next.Relations {
		if !other.Cardinality.UsesForeignKey() {
			continue
		}
		if other.To == rel.To || (other.To.TableID == rel.To.TableID && other.From == rel.From) {
			return next
		}
	}
	next.dropColumn(rel.To)
	next.dropDanglingRelations()
	return next
}
