package sqlgen

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/hlop3z/tabula/internal/alerr"
	"github.com/hlop3z/tabula/internal/dialect"
	"github.com/hlop3z/tabula/internal/schema"
	"github.com/hlop3z/tabula/internal/strutil"
)

// Warning is a problem the compiler recovered from. It is written into the
// output as a "-- WARNING:" comment where the skipped statement would be.
type Warning struct {
	Code    alerr.Code
	Message string
}

// String returns the SQL comment form of the warning.
func (w Warning) String() string {
	return "-- WARNING: " + w.Message
}

// Result is the compiled DDL and the warnings raised while compiling it.
type Result struct {
	SQL      string
	Warnings []Warning
}

// Compile returns PostgreSQL DDL for the given tables and relations.
// Compilation never fails; unresolvable parts degrade to warning comments.
func Compile(tables []schema.Table, relations []schema.Relation) string {
	return CompileReport(tables, relations).SQL
}

// CompileReport is Compile with the warnings returned separately.
func CompileReport(tables []schema.Table, relations []schema.Relation) Result {
	return NewCompiler(dialect.Postgres()).Compile(tables, relations)
}

// Compiler turns a schema graph into DDL for one dialect. It is stateless
// and safe for concurrent use.
type Compiler struct {
	dialect dialect.Dialect
}

// NewCompiler returns a compiler for d.
func NewCompiler(d dialect.Dialect) *Compiler {
	return &Compiler{dialect: d}
}

// Compile runs the five phases in order: enum types, tables, junction
// tables, foreign key constraints, indexes. Foreign keys come after every
// CREATE TABLE so cyclic references compile. The output is a pure function
// of the input, including table and column order.
func (c *Compiler) Compile(tables []schema.Table, relations []schema.Relation) Result {
	s := newCompilation(c.dialect, tables, relations)

	var phases []string
	for _, phase := range []func() string{
		s.enumTypes,
		s.createTables,
		s.junctionTables,
		s.foreignKeys,
		s.indexes,
	} {
		if out := phase(); out != "" {
			phases = append(phases, out)
		}
	}

	res := Result{Warnings: s.warnings}
	if len(phases) > 0 {
		res.SQL = strings.Join(phases, "\n\n") + "\n"
	}
	return res
}

// -----------------------------------------------------------------------------
// Compilation state
// -----------------------------------------------------------------------------

// junction is a synthesized many-to-many table.
type junction struct {
	name string
	cols [2]junctionColumn
}

type junctionColumn struct {
	name      string
	typ       string
	refTable  string
	refColumn string
}

// indexed is an FK column that receives an index in the last phase.
type indexed struct {
	table  string
	column string
}

type compilation struct {
	d         dialect.Dialect
	tables    []schema.Table
	relations []schema.Relation
	byID      map[string]*schema.Table

	junctions []junction
	indexed   []indexed
	warnings  []Warning

	// enumNames maps each enum-owning column to its type name. types holds
	// the taken type names, relNames the taken table, index and constraint
	// names. Table names are in both.
	enumNames map[*schema.Column]string
	types     map[string]bool
	relNames  map[string]bool
}

func newCompilation(d dialect.Dialect, tables []schema.Table, relations []schema.Relation) *compilation {
	s := &compilation{
		d:         d,
		tables:    tables,
		relations: relations,
		byID:      make(map[string]*schema.Table, len(tables)),
		enumNames: make(map[*schema.Column]string),
		types:     make(map[string]bool),
		relNames:  make(map[string]bool),
	}
	for i := range tables {
		if _, dup := s.byID[tables[i].ID]; !dup {
			s.byID[tables[i].ID] = &tables[i]
		}
		s.types[tables[i].Name] = true
		s.relNames[tables[i].Name] = true
	}
	for i := range tables {
		t := &tables[i]
		for j := range t.Columns {
			c := &t.Columns[j]
			if c.Type != schema.TypeEnum {
				continue
			}
			if _, owner := s.enumOwner(t, c); owner == c {
				s.enumNames[c] = claim(s.types, strutil.EnumTypeName(t.Name, c.Name))
			}
		}
	}
	return s
}

// claim marks name as taken in ns and returns it. A name already taken gets
// the smallest numeric suffix that is free.
func claim(ns map[string]bool, name string) string {
	out := name
	for n := 2; ns[out]; n++ {
		out = strutil.Identifier(name, strconv.Itoa(n))
	}
	ns[out] = true
	return out
}

// resolve returns the table and column a reference points at.
func (s *compilation) resolve(ref schema.ColumnRef) (*schema.Table, *schema.Column) {
	t := s.byID[ref.TableID]
	if t == nil {
		return nil, nil
	}
	c := t.Column(ref.ColumnID)
	if c == nil {
		return nil, nil
	}
	return t, c
}

// warn records a warning and returns its comment line.
func (s *compilation) warn(code alerr.Code, format string, args ...any) string {
	w := Warning{Code: code, Message: fmt.Sprintf(format, args...)}
	s.warnings = append(s.warnings, w)
	return w.String()
}

// enumOwner returns the column whose enum type c is declared with. A
// foreign enum column shares its parent's type so both FK sides match;
// any other enum column owns its type.
func (s *compilation) enumOwner(t *schema.Table, c *schema.Column) (*schema.Table, *schema.Column) {
	seen := map[*schema.Column]bool{c: true}
	for c.IsForeign && c.References != nil {
		pt, pc := s.resolve(*c.References)
		if pc == nil || pc.Type != schema.TypeEnum || seen[pc] {
			break
		}
		seen[pc] = true
		t, c = pt, pc
	}
	return t, c
}

// enumType returns the quoted enum type name for an enum column.
func (s *compilation) enumType(t *schema.Table, c *schema.Column) string {
	ot, oc := s.enumOwner(t, c)
	if name, ok := s.enumNames[oc]; ok {
		return s.d.QuoteIdent(name)
	}
	return s.d.QuoteIdent(strutil.EnumTypeName(ot.Name, oc.Name))
}

// keyType returns the SQL type a column referencing pk must have.
func (s *compilation) keyType(t *schema.Table, pk *schema.Column) string {
	if pk.Type == schema.TypeEnum {
		return s.enumType(t, pk)
	}
	return dialect.ColumnType(pk.Type, s.d)
}

// -----------------------------------------------------------------------------
// Phase 1: enum types
// -----------------------------------------------------------------------------

func (s *compilation) enumTypes() string {
	var out []string
	for i := range s.tables {
		t := &s.tables[i]
		for j := range t.Columns {
			c := &t.Columns[j]
			if c.Type != schema.TypeEnum {
				continue
			}
			name, ok := s.enumNames[c]
			if !ok {
				continue
			}
			out = append(out, NewBuilder(s.d).CreateType(name, c.EnumValues).End().String())
		}
	}
	return strings.Join(out, "\n")
}

// -----------------------------------------------------------------------------
// Phase 2: tables
// -----------------------------------------------------------------------------

func (s *compilation) createTables() string {
	out := make([]string, 0, len(s.tables))
	for i := range s.tables {
		out = append(out, s.createTable(&s.tables[i]))
	}
	return strings.Join(out, "\n\n")
}

func (s *compilation) createTable(t *schema.Table) string {
	pks := t.PrimaryKeys()
	single := len(pks) == 1

	var defs []string
	for i := range t.Columns {
		defs = append(defs, s.columnDef(t, &t.Columns[i], single))
	}
	if len(pks) > 1 {
		names := make([]string, len(pks))
		for i, pk := range pks {
			names[i] = pk.Name
		}
		defs = append(defs, NewBuilder(s.d).Constraint(claim(s.relNames, strutil.PrimaryKeyName(t.Name))).PrimaryKeyOn(names...).String())
	}
	return s.tableSQL(t.Name, defs)
}

// tableSQL lays out a CREATE TABLE statement with one definition per line.
func (s *compilation) tableSQL(name string, defs []string) string {
	b := NewBuilder(s.d).CreateTable(name)
	if len(defs) == 0 {
		return b.Raw(" ()").End().String()
	}
	b.Raw(" (\n")
	b.Raw(strutil.Indent(strings.Join(defs, ",\n"), 2))
	return b.Raw("\n)").End().String()
}

func (s *compilation) columnDef(t *schema.Table, c *schema.Column, singlePK bool) string {
	key := singlePK && c.IsPrimary

	var typ string
	switch {
	case c.Type == schema.TypeEnum:
		typ = s.enumType(t, c)
	case key && c.Type == schema.TypeInteger:
		typ = s.d.SerialType()
	default:
		typ = dialect.ColumnType(c.Type, s.d)
	}

	b := NewBuilder(s.d).Column(c.Name, typ)
	if c.IsPrimary || !c.IsNullable {
		b.NotNull()
	}
	def := c.DefaultValue
	if def == "" && key && c.Type == schema.TypeUUID {
		def = s.d.UUIDDefault()
	}
	if def != "" {
		b.Default(def)
	}
	switch {
	case key:
		b.PrimaryKey()
	case c.IsUnique && !c.IsPrimary:
		b.Unique()
	}
	return b.String()
}

// -----------------------------------------------------------------------------
// Phase 3: junction tables
// -----------------------------------------------------------------------------

func (s *compilation) junctionTables() string {
	userTables := make(map[string]bool, len(s.tables))
	for _, t := range s.tables {
		userTables[t.Name] = true
	}

	var out []string
	seen := make(map[string]bool)
	for _, r := range s.relations {
		if r.Cardinality != schema.ManyToMany {
			continue
		}
		a, b := s.byID[r.From.TableID], s.byID[r.To.TableID]
		if a == nil || b == nil {
			out = append(out, s.warn(alerr.ErrDanglingReference,
				"many-to-many relation %s has an endpoint that no longer exists; junction table skipped", r.ID))
			continue
		}
		apk, bpk := a.PrimaryKey(), b.PrimaryKey()
		if apk == nil || bpk == nil {
			out = append(out, s.warn(alerr.ErrMissingPrimaryKey,
				"many-to-many relation between %q and %q needs a primary key on both tables; junction table skipped", a.Name, b.Name))
			continue
		}

		name := strutil.JunctionName(a.Name, b.Name)
		if seen[name] {
			continue
		}
		seen[name] = true
		if userTables[name] {
			out = append(out, s.warn(alerr.ErrDuplicateName,
				"junction table %q collides with an existing table; junction table skipped", name))
			continue
		}

		if b.Name < a.Name {
			a, b, apk, bpk = b, a, bpk, apk
		}
		s.relNames[name] = true
		j := junction{name: name}
		j.cols[0] = junctionColumn{strutil.FKColumn(a.Name, apk.Name), s.keyType(a, apk), a.Name, apk.Name}
		j.cols[1] = junctionColumn{strutil.FKColumn(b.Name, bpk.Name), s.keyType(b, bpk), b.Name, bpk.Name}
		if j.cols[1].name == j.cols[0].name {
			j.cols[1].name += "_2"
		}
		s.junctions = append(s.junctions, j)

		defs := []string{
			NewBuilder(s.d).Column(j.cols[0].name, j.cols[0].typ).NotNull().String(),
			NewBuilder(s.d).Column(j.cols[1].name, j.cols[1].typ).NotNull().String(),
			NewBuilder(s.d).Constraint(claim(s.relNames, strutil.PrimaryKeyName(name))).PrimaryKeyOn(j.cols[0].name, j.cols[1].name).String(),
		}
		out = append(out, s.tableSQL(name, defs))
	}
	return strings.Join(out, "\n\n")
}

// -----------------------------------------------------------------------------
// Phase 4: foreign key constraints
// -----------------------------------------------------------------------------

func (s *compilation) foreignKeys() string {
	var out []string
	for i := range s.tables {
		t := &s.tables[i]
		for j := range t.Columns {
			c := &t.Columns[j]
			if !c.IsForeign {
				continue
			}
			if c.References == nil {
				out = append(out, s.warn(alerr.ErrDanglingReference,
					"%s.%s is marked foreign but references nothing; constraint skipped", t.Name, c.Name))
				continue
			}
			pt, pc := s.resolve(*c.References)
			if pc == nil {
				out = append(out, s.warn(alerr.ErrDanglingReference,
					"%s.%s references a column that no longer exists; constraint skipped", t.Name, c.Name))
				continue
			}

			onDelete, onUpdate := s.rules(schema.ColumnRef{TableID: t.ID, ColumnID: c.ID}, *c.References)
			out = append(out, NewBuilder(s.d).
				AlterTable(t.Name).
				AddConstraint(claim(s.relNames, strutil.ForeignKeyName(t.Name, c.Name))).
				ForeignKey(c.Name).
				References(pt.Name, pc.Name).
				OnDelete(onDelete).
				OnUpdate(onUpdate).
				End().String())
			s.indexed = append(s.indexed, indexed{t.Name, c.Name})
		}
	}

	for _, j := range s.junctions {
		for _, col := range j.cols {
			out = append(out, NewBuilder(s.d).
				AlterTable(j.name).
				AddConstraint(claim(s.relNames, strutil.ForeignKeyName(j.name, col.name))).
				ForeignKey(col.name).
				References(col.refTable, col.refColumn).
				OnDelete("CASCADE").
				OnUpdate("CASCADE").
				End().String())
			s.indexed = append(s.indexed, indexed{j.name, col.name})
		}
	}

	for _, r := range s.relations {
		if !r.Cardinality.UsesForeignKey() {
			continue
		}
		_, from := s.resolve(r.From)
		_, to := s.resolve(r.To)
		switch {
		case from == nil || to == nil:
			out = append(out, s.warn(alerr.ErrDanglingReference,
				"relation %s has an endpoint that no longer exists", r.ID))
		case !to.ReferencesTo(r.From) && !from.ReferencesTo(r.To):
			out = append(out, s.warn(alerr.ErrDanglingReference,
				"relation %s has no foreign key column; its rules are not applied", r.ID))
		}
	}
	return strings.Join(out, "\n")
}

// rules returns the referential actions of the one-to-one or one-to-many
// relation joining child and parent, in either orientation. Without one
// both are empty and the clauses are omitted.
func (s *compilation) rules(child, parent schema.ColumnRef) (onDelete, onUpdate string) {
	for _, r := range s.relations {
		if r.Cardinality.UsesForeignKey() && r.Connects(parent, child) {
			return r.DeleteRule.SQL(), r.UpdateRule.SQL()
		}
	}
	return "", ""
}

// -----------------------------------------------------------------------------
// Phase 5: indexes
// -----------------------------------------------------------------------------

func (s *compilation) indexes() string {
	out := make([]string, 0, len(s.indexed))
	for _, ix := range s.indexed {
		out = append(out, NewBuilder(s.d).CreateIndex(claim(s.relNames, strutil.IndexName(ix.table, ix.column)), ix.table, ix.column).End().String())
	}
	return strings.Join(out, "\n")
}
