// Package history keeps bounded undo/redo stacks of state snapshots.
package history

// DefaultLimit is the number of undo steps kept when none is configured.
const DefaultLimit = 60

// Snapshot is any state that can produce a deep copy of itself.
type Snapshot[T any] interface {
	Clone() T
}

// Manager holds past and future snapshots. Every snapshot is a clone, so
// nothing on the stacks aliases the live state.
//
// A Manager is not safe for concurrent use.
type Manager[T Snapshot[T]] struct {
	past   []T
	future []T
	limit  int
}

// New returns a manager keeping at most limit undo steps. A limit below 1
// falls back to DefaultLimit.
func New[T Snapshot[T]](limit int) *Manager[T] {
	if limit < 1 {
		limit = DefaultLimit
	}
	return &Manager[T]{limit: limit}
}

// Limit returns the undo capacity.
func (m *Manager[T]) Limit() int {
	return m.limit
}

// Record saves current as the state to return to on the next Undo. The
// oldest snapshot is evicted on overflow and the redo stack is cleared.
func (m *Manager[T]) Record(current T) {
	m.past = append(m.past, current.Clone())
	if over := len(m.past) - m.limit; over > 0 {
		clear(m.past[:over])
		m.past = m.past[over:]
	}
	m.future = nil
}

// Undo returns the most recent snapshot and pushes current onto the redo
// stack. It reports false, returning current, when there is nothing to undo.
func (m *Manager[T]) Undo(current T) (T, bool) {
	if len(m.past) == 0 {
		return current, false
	}
	prev := m.past[len(m.past)-1]
	m.past = m.past[:len(m.past)-1]
	m.future = append(m.future, current.Clone())
	return prev, true
}

// Redo is the mirror of Undo.
func (m *Manager[T]) Redo(current T) (T, bool) {
	if len(m.future) == 0 {
		return current, false
	}
	next := m.future[len(m.future)-1]
	m.future = m.future[:len(m.future)-1]
	m.past = append(m.past, current.Clone())
	return next, true
}

// CanUndo reports whether Undo would succeed.
func (m *Manager[T]) CanUndo() bool { return len(m.past) > 0 }

// CanRedo reports whether Redo would succeed.
func (m *Manager[T]) CanRedo() bool { return len(m.future) > 0 }

// Len returns the number of undo and redo snapshots held.
func (m *Manager[T]) Len() (undo, redo int) {
	return len(m.past), len(m.future)
}

// Clear drops both stacks.
func (m *Manager[T]) Clear() {
	m.past = nil
	m.future = nil
}
