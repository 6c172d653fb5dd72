package graph

import (
	"fmt"
	"slices"
	"strings"

	"github.com/hlop3z/tabula/internal/schema"
	"github.com/hlop3z/tabula/internal/strutil"
)

// ColumnField names an editable column attribute.
type ColumnField int

const (
	FieldName ColumnField = iota
	FieldType
	FieldDefault
	FieldEnumValues
)

// String returns the field's name.
func (f ColumnField) String() string {
	switch f {
	case FieldName:
		return "name"
	case FieldType:
		return "type"
	case FieldDefault:
		return "default"
	case FieldEnumValues:
		return "enum_values"
	}
	return "unknown"
}

// ParseColumnField parses a field name.
func ParseColumnField(s string) (ColumnField, error) {
	switch strings.ToLower(s) {
	case "name":
		return FieldName, nil
	case "type":
		return FieldType, nil
	case "default", "default_value":
		return FieldDefault, nil
	case "enum", "enum_values", "values":
		return FieldEnumValues, nil
	}
	return 0, fmt.Errorf("unknown column field %q", s)
}

// ColumnFlag names a boolean column attribute.
type ColumnFlag int

const (
	FlagPrimary ColumnFlag = iota
	FlagUnique
	FlagNullable
	FlagForeign
)

// String returns the flag's name.
func (f ColumnFlag) String() string {
	switch f {
	case FlagPrimary:
		return "primary"
	case FlagUnique:
		return "unique"
	case FlagNullable:
		return "nullable"
	case FlagForeign:
		return "foreign"
	}
	return "unknown"
}

// ParseColumnFlag parses a flag name.
func ParseColumnFlag(s string) (ColumnFlag, error) {
	switch strings.ToLower(s) {
	case "primary", "pk":
		return FlagPrimary, nil
	case "unique":
		return FlagUnique, nil
	case "nullable", "null":
		return FlagNullable, nil
	case "foreign", "fk":
		return FlagForeign, nil
	}
	return 0, fmt.Errorf("unknown column flag %q", s)
}

// UpdateColumnField sets one attribute from its textual value. Enum values
// are comma separated.
func (g Graph) UpdateColumnField(tableID, columnID string, field ColumnField, value string) Graph {
	switch field {
	case FieldName:
		return g.RenameColumn(tableID, columnID, value)
	case FieldType:
		return g.SetColumnType(tableID, columnID, schema.ColumnType(value))
	case FieldDefault:
		return g.SetColumnDefault(tableID, columnID, value)
	case FieldEnumValues:
		return g.SetEnumValues(tableID, columnID, strutil.SplitList(value))
	}
	return g
}

// ToggleColumnFlag flips one boolean attribute.
func (g Graph) ToggleColumnFlag(tableID, columnID string, flag ColumnFlag) Graph {
	switch flag {
	case FlagPrimary:
		return g.TogglePrimary(tableID, columnID)
	case FlagUnique:
		return g.ToggleUnique(tableID, columnID)
	case FlagNullable:
		return g.ToggleNullable(tableID, columnID)
	case FlagForeign:
		return g.ToggleForeign(tableID, columnID)
	}
	return g
}

// editColumn clones g and applies fn to the addressed column. Missing
// columns return g unchanged.
func (g Graph) editColumn(tableID, columnID string, fn func(next *Graph, t *schema.Table, c *schema.Column)) Graph {
	if g.Column(schema.ColumnRef{TableID: tableID, ColumnID: columnID}) == nil {
		return g
	}
	next := g.Clone()
	t := next.Table(tableID)
	fn(&next, t, t.Column(columnID))
	return next
}

// RenameColumn renames a column. Every FK column referencing it is renamed
// to the derived "<parentTable>_<newName>".
func (g Graph) RenameColumn(tableID, columnID, name string) Graph {
	return g.editColumn(tableID, columnID, func(next *Graph, t *schema.Table, c *schema.Column) {
		c.Name = name
		ref := schema.ColumnRef{TableID: tableID, ColumnID: columnID}
		fkName := strutil.FKColumn(t.Name, name)
		next.eachColumn(func(_ *schema.Table, dep *schema.Column) {
			if dep.ReferencesTo(ref) {
				dep.Name = fkName
			}
		})
	})
}

// SetColumnType changes a column's type. FK columns referencing it follow,
// since foreign keys are typed after their parent key.
func (g Graph) SetColumnType(tableID, columnID string, typ schema.ColumnType) Graph {
	return g.editColumn(tableID, columnID, func(next *Graph, _ *schema.Table, c *schema.Column) {
		c.Type = typ
		if typ != schema.TypeEnum {
			c.EnumValues = nil
		}
		next.syncDependents(schema.ColumnRef{TableID: tableID, ColumnID: columnID}, *c)
	})
}

// SetEnumValues replaces the ordered enum values of a column.
func (g Graph) SetEnumValues(tableID, columnID string, values []string) Graph {
	return g.editColumn(tableID, columnID, func(next *Graph, _ *schema.Table, c *schema.Column) {
		c.EnumValues = slices.Clone(values)
		next.syncDependents(schema.ColumnRef{TableID: tableID, ColumnID: columnID}, *c)
	})
}

// SetColumnDefault sets the raw SQL default expression. Empty clears it.
func (g Graph) SetColumnDefault(tableID, columnID, expr string) Graph {
	return g.editColumn(tableID, columnID, func(_ *Graph, _ *schema.Table, c *schema.Column) {
		c.DefaultValue = expr
	})
}

// syncDependents copies the key shape of parent onto its FK columns.
func (g *Graph) syncDependents(ref schema.ColumnRef, parent schema.Column) {
	g.eachColumn(func(_ *schema.Table, dep *schema.Column) {
		if dep.ReferencesTo(ref) {
			dep.Type = parent.Type
			dep.EnumValues = slices.Clone(parent.EnumValues)
		}
	})
}

// TogglePrimary flips the primary key flag. Primary keys are never nullable.
func (g Graph) TogglePrimary(tableID, columnID string) Graph {
	return g.editColumn(tableID, columnID, func(_ *Graph, _ *schema.Table, c *schema.Column) {
		c.IsPrimary = !c.IsPrimary
		if c.IsPrimary {
			c.IsNullable = false
		}
	})
}

// ToggleUnique flips the unique flag.
func (g Graph) ToggleUnique(tableID, columnID string) Graph {
	return g.editColumn(tableID, columnID, func(_ *Graph, _ *schema.Table, c *schema.Column) {
		c.IsUnique = !c.IsUnique
	})
}

// ToggleNullable flips the nullable flag. Primary keys stay NOT NULL.
func (g Graph) ToggleNullable(tableID, columnID string) Graph {
	if c := g.Column(schema.ColumnRef{TableID: tableID, ColumnID: columnID}); c == nil || c.IsPrimary {
		return g
	}
	return g.editColumn(tableID, columnID, func(_ *Graph, _ *schema.Table, c *schema.Column) {
		c.IsNullable = !c.IsNullable
	})
}

// ToggleForeign clears a column's foreign key. One-to-one and one-to-many
// relations anchored on the column are removed with it, keeping relations
// and column references in lockstep. A column cannot become foreign without
// a target; use SetForeignReference.
func (g Graph) ToggleForeign(tableID, columnID string) Graph {
	ref := schema.ColumnRef{TableID: tableID, ColumnID: columnID}
	if c := g.Column(ref); c == nil || !c.IsForeign {
		return g
	}
	next := g.editColumn(tableID, columnID, func(_ *Graph, _ *schema.Table, c *schema.Column) {
		c.IsForeign = false
		c.References = nil
	})
	next.Relations = slices.DeleteFunc(next.Relations, func(r schema.Relation) bool {
		return r.To == ref && r.Cardinality.UsesForeignKey()
	})
	return next
}

// SetForeignReference makes a column a foreign key to target. The target
// must resolve and differ from the column itself.
func (g Graph) SetForeignReference(tableID, columnID string, target schema.ColumnRef) Graph {
	self := schema.ColumnRef{TableID: tableID, ColumnID: columnID}
	if target == self || g.Column(target) == nil {
		return g
	}
	return g.editColumn(tableID, columnID, func(_ *Graph, _ *schema.Table, c *schema.Column) {
		c.IsForeign = true
		ref := target
		c.References = &ref
	})
}

// SetRelationRules changes the referential actions of a relation. Unknown
// rules are ignored.
func (g Graph) SetRelationRules(relationID string, onDelete schema.DeleteRule, onUpdate schema.UpdateRule) Graph {
	if g.Relation(relationID) == nil || onDelete.SQL() == "" || onUpdate.SQL() == "" {
		return g
	}
	next := g.Clone()
	r := next.Relation(relationID)
	r.DeleteRule = onDelete
	r.UpdateRule = onUpdate
	return next
}
