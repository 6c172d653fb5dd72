package graph

import (
	"fmt"

	"github.com/hlop3z/tabula/internal/alerr"
	"github.com/hlop3z/tabula/internal/schema"
	"github.com/hlop3z/tabula/internal/validate"
)

// Severity grades a diagnostic.
type Severity int

const (
	// SeverityWarning marks a problem the SQL compiler recovers from.
	SeverityWarning Severity = iota
	// SeverityError marks a problem that yields invalid SQL.
	SeverityError
)

// String returns "warning" or "error".
func (s Severity) String() string {
	if s == SeverityError {
		return "error"
	}
	return "warning"
}

// Diagnostic is one finding of Check. Diagnostics never block mutation;
// the user fixes them on the canvas.
type Diagnostic struct {
	Severity   Severity
	Code       alerr.Code
	Message    string
	TableID    string
	ColumnID   string
	RelationID string
	Help       string
}

// Error renders the diagnostic as a coded error.
func (d Diagnostic) Error() *alerr.Error {
	e := alerr.New(d.Code, d.Message)
	if d.TableID != "" {
		e.With("table_id", d.TableID)
	}
	if d.ColumnID != "" {
		e.With("column_id", d.ColumnID)
	}
	if d.RelationID != "" {
		e.With("relation_id", d.RelationID)
	}
	if d.Help != "" {
		e.WithHelp(d.Help)
	}
	return e
}

// HasErrors reports whether any diagnostic is an error.
func HasErrors(diags []Diagnostic) bool {
	for _, d := range diags {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Check inspects the graph for names that would produce invalid SQL or
// need quoting, and for references that no longer resolve. Findings are
// ordered by table, column, then relation.
func (g Graph) Check() []Diagnostic {
	var diags []Diagnostic
	add := func(sev Severity, code alerr.Code, d Diagnostic, format string, args ...any) {
		d.Severity = sev
		d.Code = code
		d.Message = fmt.Sprintf(format, args...)
		diags = append(diags, d)
	}

	tableNames := make(map[string]bool)
	for _, t := range g.Tables {
		at := Diagnostic{TableID: t.ID}
		switch {
		case t.Name == "":
			add(SeverityError, alerr.ErrEmptyName, at, "table %s has no name", t.ID)
		case tableNames[t.Name]:
			add(SeverityError, alerr.ErrDuplicateName, at, "duplicate table name %q", t.Name)
		}
		tableNames[t.Name] = true
		lint(&diags, at, validate.Name("table", t.Name))

		colNames := make(map[string]bool)
		for _, c := range t.Columns {
			at := Diagnostic{TableID: t.ID, ColumnID: c.ID}
			switch {
			case c.Name == "":
				add(SeverityError, alerr.ErrEmptyName, at, "column %s of %q has no name", c.ID, t.Name)
			case colNames[c.Name]:
				add(SeverityError, alerr.ErrDuplicateName, at, "duplicate column name %q in %q", c.Name, t.Name)
			}
			colNames[c.Name] = true
			lint(&diags, at, validate.Name("column", c.Name))

			switch {
			case c.IsForeign && c.References == nil:
				add(SeverityWarning, alerr.ErrDanglingReference, at, "%s.%s is marked foreign but references nothing", t.Name, c.Name)
			case c.IsForeign && g.Column(*c.References) == nil:
				add(SeverityWarning, alerr.ErrDanglingReference, at, "%s.%s references a column that no longer exists", t.Name, c.Name)
			}
		}
	}

	for _, r := range g.Relations {
		at := Diagnostic{RelationID: r.ID}
		from, to := g.Column(r.From), g.Column(r.To)
		if from == nil || to == nil {
			add(SeverityWarning, alerr.ErrDanglingReference, at, "relation %s has an endpoint that no longer exists", r.ID)
			continue
		}
		switch r.Cardinality {
		case schema.ManyToMany:
			if g.Table(r.From.TableID).PrimaryKey() == nil || g.Table(r.To.TableID).PrimaryKey() == nil {
				add(SeverityWarning, alerr.ErrMissingPrimaryKey, at, "many-to-many relation %s joins a table without a primary key", r.ID)
			}
		default:
			if !from.IsPrimary {
				add(SeverityWarning, alerr.ErrMissingPrimaryKey, at, "relation %s does not start at a primary key", r.ID)
			}
			if !to.ReferencesTo(r.From) {
				add(SeverityWarning, alerr.ErrDanglingReference, at, "relation %s has no matching foreign key column", r.ID)
			}
		}
	}
	return diags
}

// lint records a name finding as a warning.
func lint(diags *[]Diagnostic, at Diagnostic, err *alerr.Error) {
	if err == nil {
		return
	}
	at.Severity = SeverityWarning
	at.Code = err.GetCode()
	at.Message = err.GetMessage()
	if helps := err.Helps(); len(helps) > 0 {
		at.Help = helps[0]
	}
	*diags = append(*diags, at)
}
