// Package editor is the controller between a canvas (or the CLI) and the
// schema graph. It owns the single live graph, the viewport, the current
// selection, the pending relation link and the undo history.
//
// Every exported mutation is one user-visible action: the prior graph is
// recorded exactly once, and only when the action changes the graph.
// Rejected actions record nothing.
package editor

import (
	"log/slog"

	"github.com/hlop3z/tabula/internal/graph"
	"github.com/hlop3z/tabula/internal/history"
	"github.com/hlop3z/tabula/internal/schema"
	"github.com/hlop3z/tabula/internal/sqlgen"
)

// Selection is the focused table and, optionally, column.
type Selection struct {
	TableID  string
	ColumnID string
}

// Editor is the schema editing session. It is not safe for concurrent use.
type Editor struct {
	graph     graph.Graph
	viewport  schema.Viewport
	selection Selection
	link      *schema.ColumnRef

	history *history.Manager[graph.Graph]
	newID   func() string
	log     *slog.Logger
}

// New returns an editor on an empty schema.
func New(opts ...Option) *Editor {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	def := defaultConfig()
	if cfg.NewID == nil {
		cfg.NewID = def.NewID
	}
	if cfg.Logger == nil {
		cfg.Logger = def.Logger
	}
	return &Editor{
		viewport: schema.DefaultViewport,
		history:  history.New[graph.Graph](cfg.HistoryLimit),
		newID:    cfg.NewID,
		log:      cfg.Logger,
	}
}

// Open returns an editor on a loaded project.
func Open(p schema.Project, opts ...Option) *Editor {
	e := New(opts...)
	e.Replace(p)
	return e
}

// -----------------------------------------------------------------------------
// State
// -----------------------------------------------------------------------------

// Graph returns the live graph. Graphs are immutable values; the caller
// must not modify the returned slices.
func (e *Editor) Graph() graph.Graph { return e.graph }

// Project returns a deep copy of the persisted state.
func (e *Editor) Project() schema.Project {
	g := e.graph.Clone()
	return schema.Project{
		Tables:    g.Tables,
		Relations: g.Relations,
		Viewport:  e.viewport,
	}
}

// Replace bulk-replaces the schema and viewport, as on file load or import.
// History, selection and any pending link are cleared.
func (e *Editor) Replace(p schema.Project) {
	e.graph = graph.New(p.Tables, p.Relations)
	e.viewport = p.Viewport
	if e.viewport.Scale <= 0 {
		e.viewport = schema.DefaultViewport
	}
	e.history.Clear()
	e.selection = Selection{}
	e.link = nil
	e.log.Debug("project replaced", "tables", len(p.Tables), "relations", len(p.Relations))
}

// Viewport returns the canvas pan/zoom state.
func (e *Editor) Viewport() schema.Viewport { return e.viewport }

// SetViewport stores canvas pan/zoom state. It is not an undoable action.
func (e *Editor) SetViewport(v schema.Viewport) {
	if v.Scale <= 0 {
		v.Scale = schema.DefaultViewport.Scale
	}
	e.viewport = v
}

// Selection returns the focused table and column.
func (e *Editor) Selection() Selection { return e.selection }

// Select focuses a table and optionally one of its columns. Unknown ids
// clear the selection.
func (e *Editor) Select(tableID, columnID string) {
	t := e.graph.Table(tableID)
	switch {
	case t == nil:
		e.selection = Selection{}
	case columnID != "" && t.Column(columnID) == nil:
		e.selection = Selection{TableID: tableID}
	default:
		e.selection = Selection{TableID: tableID, ColumnID: columnID}
	}
}

// Check returns structural diagnostics of the live graph.
func (e *Editor) Check() []graph.Diagnostic { return e.graph.Check() }

// Compile returns the PostgreSQL DDL for the live graph.
func (e *Editor) Compile() string {
	return sqlgen.Compile(e.graph.Tables, e.graph.Relations)
}

// CompileReport returns the DDL together with the compiler warnings.
func (e *Editor) CompileReport() sqlgen.Result {
	return sqlgen.CompileReport(e.graph.Tables, e.graph.Relations)
}

// -----------------------------------------------------------------------------
// History
// -----------------------------------------------------------------------------

// CanUndo reports whether Undo would change the graph.
func (e *Editor) CanUndo() bool { return e.history.CanUndo() }

// CanRedo reports whether Redo would change the graph.
func (e *Editor) CanRedo() bool { return e.history.CanRedo() }

// Undo restores the previous graph. Selection and pending link are cleared
// since they may name entities that no longer exist.
func (e *Editor) Undo() bool {
	g, ok := e.history.Undo(e.graph)
	if !ok {
		return false
	}
	e.graph = g
	e.selection = Selection{}
	e.link = nil
	e.log.Debug("undo")
	return true
}

// Redo re-applies the last undone action.
func (e *Editor) Redo() bool {
	g, ok := e.history.Redo(e.graph)
	if !ok {
		return false
	}
	e.graph = g
	e.selection = Selection{}
	e.link = nil
	e.log.Debug("redo")
	return true
}

// apply commits next as the live graph, recording the prior one, unless
// the action was a no-op.
func (e *Editor) apply(action string, next graph.Graph, attrs ...any) bool {
	if next.Equal(e.graph) {
		e.log.Debug("no change", append([]any{"action", action}, attrs...)...)
		return false
	}
	e.history.Record(e.graph)
	e.graph = next
	e.log.Debug(action, attrs...)
	return true
}

// reject logs an action the graph refused.
func (e *Editor) reject(action string, err error, attrs ...any) {
	e.log.Warn("action rejected", append([]any{"action", action, "error", err}, attrs...)...)
}
