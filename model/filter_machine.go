package model

import (
	"fmt"
	"log/slog"

	"github.com/boolean-maybe/filterline/internal/recovery"
)

// EditState is the top-level state of a filter edit machine
type EditState string

const (
	StatePreview EditState = "preview" // expression shown read-only
	StateEditing EditState = "editing"
)

// Context is the full state of one filter edit machine
type Context struct {
	State       EditState
	Values      TokenSet
	Focused     bool
	FocusTarget int
}

// NewContext returns the preview context for a token set
func NewContext(values TokenSet) Context {
	if values == nil {
		values = EmptyTokenSet()
	}
	ctx := Context{State: StatePreview, Values: values.Clone()}
	ctx.FocusTarget = lastEditTarget(ctx.Values)
	return ctx
}

// PropertyEditing reports the propertyEditing sub-state: editing with focus on the property slot
func (c Context) PropertyEditing() bool {
	return c.State == StateEditing && c.FocusTarget == PropertySlot
}

// LastSlot returns the index of the last active slot
func (c Context) LastSlot() int {
	return len(c.Values) - 1
}

// Transition is the pure reducer of the filter edit machine.
// Malformed indices are clamped. An event type outside the closed set panics.
func Transition(ctx Context, event FilterEvent, arity ArityLookup) Context {
	next := ctx
	next.Values = ctx.Values.Clone()
	if next.Values == nil {
		next.Values = EmptyTokenSet()
	}

	switch ev := event.(type) {
	case Focus:
		next.State = StateEditing
		next.Focused = true
		if ev.Index != KeepTarget {
			next.FocusTarget = ev.Index
		}

	case FocusTarget:
		next.FocusTarget = ev.Index
		next.Focused = true

	case FocusOnLastEdit:
		if ctx.State != StatePreview {
			break
		}
		next.State = StateEditing
		next.Focused = true
		next.FocusTarget = lastEditTarget(next.Values)

	case Confirm:
		// no slot to write past the active ones, e.g. a value after a zero-arity operator
		if ev.Index >= len(next.Values) {
			break
		}
		index := max(ev.Index, 0)
		values := next.Values.with(index, ev.Value)
		if index == PropertySlot {
			// a new field invalidates operator and value
			values = NewTokenSet(ev.Value, nil, nil, arity)
		}
		next.Values = values.normalize(arity)
		next.FocusTarget = min(next.FocusTarget+1, len(next.Values)-1)

	case Remove:
		if i := next.Values.LastFilled(); i >= 0 {
			next.Values = next.Values.with(i, nil).normalize(arity)
		}
		next.FocusTarget = max(next.FocusTarget-1, 0)

	case Blur:
		next.Focused = false

	case Reset:
		if ev.Snapshot != nil {
			next.Values = ev.Snapshot.normalize(arity)
		}
		next.Focused = false
		next.State = StatePreview
		next.FocusTarget = lastEditTarget(next.Values)

	default:
		panic(fmt.Sprintf("unknown filter event %T", event))
	}

	next.FocusTarget = clamp(next.FocusTarget, 0, len(next.Values)-1)
	return next
}

// lastEditTarget is the first slot without a value, or the last slot when all are filled
func lastEditTarget(values TokenSet) int {
	if i := values.FirstEmpty(); i >= 0 {
		return i
	}
	return max(len(values)-1, 0)
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	return max(lo, min(v, hi))
}

// MachineListener is called after a transition changed the machine context
type MachineListener func(ctx Context)

// FilterMachine holds the live context of one expression slot.
// It is reused for the lifetime of the slot and re-seeded with Reinit
// whenever it is assigned to a different expression.
type FilterMachine struct {
	ctx            Context
	origins        TokenSet
	arity          ArityLookup
	listeners      map[int]MachineListener
	nextListenerID int
}

// NewFilterMachine creates a machine in preview over origins (nil for a blank expression)
func NewFilterMachine(origins TokenSet, arity ArityLookup) *FilterMachine {
	m := &FilterMachine{
		arity:          arity,
		listeners:      make(map[int]MachineListener),
		nextListenerID: 1, // Start at 1 to avoid conflict with zero-value sentinel
	}
	m.Reinit(origins)
	return m
}

// Reinit re-seeds the machine with fresh origins and returns it to preview
func (m *FilterMachine) Reinit(origins TokenSet) {
	if origins == nil {
		origins = EmptyTokenSet()
	}
	m.origins = origins.normalize(m.arity)
	m.ctx = NewContext(m.origins)
}

// Send applies an event. A panicking transition is logged and leaves the context unchanged.
func (m *FilterMachine) Send(event FilterEvent) Context {
	var next Context
	err := recovery.Guard("filter transition", func() {
		next = Transition(m.ctx, event, m.arity)
	})
	if err != nil {
		return m.ctx
	}

	slog.Debug("filter transition", "event", event, "values", next.Values.String(),
		"state", next.State, "focused", next.Focused, "target", next.FocusTarget)

	m.ctx = next
	m.notifyListeners()
	return m.ctx
}

// Context returns the current context
func (m *FilterMachine) Context() Context {
	return m.ctx
}

// Values returns the current token set
func (m *FilterMachine) Values() TokenSet {
	return m.ctx.Values.Clone()
}

// Origins returns the token set the machine was seeded with
func (m *FilterMachine) Origins() TokenSet {
	return m.origins.Clone()
}

// IsComplete reports whether the current values form a complete expression
func (m *FilterMachine) IsComplete() bool {
	return m.ctx.Values.IsComplete(m.arity)
}

// IsDirty reports whether the values diverged from the origins
func (m *FilterMachine) IsDirty() bool {
	return !m.ctx.Values.Equal(m.origins)
}

// AddListener registers a callback for context changes.
// returns a listener ID that can be used to remove the listener.
func (m *FilterMachine) AddListener(listener MachineListener) int {
	id := m.nextListenerID
	m.nextListenerID++
	m.listeners[id] = listener
	return id
}

// RemoveListener removes a previously registered listener by ID
func (m *FilterMachine) RemoveListener(id int) {
	delete(m.listeners, id)
}

func (m *FilterMachine) notifyListeners() {
	for _, l := range m.listeners {
		l(m.ctx)
	}
}
