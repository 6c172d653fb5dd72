package editor

import "github.com/hlop3z/tabula/internal/schema"

// LinkState is the outcome of a step of the relation-drawing gesture.
type LinkState int

const (
	// LinkIdle means no link is pending.
	LinkIdle LinkState = iota
	// LinkStarted means a source column is chosen and a target is awaited.
	LinkStarted
	// LinkCommitted means the gesture created a relation.
	LinkCommitted
	// LinkCancelled means the gesture ended without a relation.
	LinkCancelled
)

// String returns the state name.
func (s LinkState) String() string {
	switch s {
	case LinkIdle:
		return "idle"
	case LinkStarted:
		return "started"
	case LinkCommitted:
		return "committed"
	case LinkCancelled:
		return "cancelled"
	}
	return "unknown"
}

// PendingLink returns the source column of a started link.
func (e *Editor) PendingLink() (schema.ColumnRef, bool) {
	if e.link == nil {
		return schema.ColumnRef{}, false
	}
	return *e.link, true
}

// StartLink begins a link at the given column, discarding any pending one.
func (e *Editor) StartLink(ref schema.ColumnRef) LinkState {
	if e.graph.Column(ref) == nil {
		e.link = nil
		return LinkIdle
	}
	e.link = &ref
	return LinkStarted
}

// CancelLink abandons a pending link.
func (e *Editor) CancelLink() LinkState {
	if e.link == nil {
		return LinkIdle
	}
	e.link = nil
	return LinkCancelled
}

// ClickColumn advances the link gesture. On an idle editor the column
// becomes the link source. With a link pending, clicking the source again
// cancels it and clicking any other column creates the relation. A relation
// the graph rejects (missing primary key) returns the error with the link
// back to idle; one that changes nothing reports LinkCancelled.
func (e *Editor) ClickColumn(tableID, columnID string) (LinkState, error) {
	ref := schema.ColumnRef{TableID: tableID, ColumnID: columnID}
	if e.graph.Column(ref) == nil {
		return e.linkState(), nil
	}
	e.Select(tableID, columnID)

	if e.link == nil {
		return e.StartLink(ref), nil
	}
	src := *e.link
	e.link = nil
	if src == ref {
		return LinkCancelled, nil
	}

	id, err := e.CreateRelation(src, ref)
	switch {
	case err != nil:
		return LinkIdle, err
	case id == "":
		return LinkCancelled, nil
	}
	return LinkCommitted, nil
}

func (e *Editor) linkState() LinkState {
	if e.link != nil {
		return LinkStarted
	}
	return LinkIdle
}
