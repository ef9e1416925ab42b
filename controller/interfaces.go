package controller

import (
	"github.com/boolean-maybe/filterline/model"
	"github.com/boolean-maybe/filterline/store"

	"github.com/rivo/tview"
)

// View and ViewFactory interfaces decouple controllers from view implementations.

// FocusSettable is implemented by views that need focus management for their subcomponents.
// This is used to wire up tview focus changes when the view needs to transfer focus to
// different primitives (filter bar input, results table).
type FocusSettable interface {
	SetFocusSetter(setter func(p tview.Primitive))
}

// View represents a renderable view with its action registry
type View interface {
	// GetPrimitive returns the tview primitive for this view
	GetPrimitive() tview.Primitive

	// GetActionRegistry returns the actions available in this view
	GetActionRegistry() *ActionRegistry

	// GetViewID returns the identifier for this view type
	GetViewID() model.ViewID

	// OnFocus is called when the view becomes active
	OnFocus()

	// OnBlur is called when the view becomes inactive
	OnBlur()
}

// ViewFactory creates views on demand
type ViewFactory interface {
	// CreateView instantiates a view by ID with optional parameters
	CreateView(viewID model.ViewID, params map[string]any) View
}

// FilterHostView is the view holding the filter bar above the results table
type FilterHostView interface {
	View

	// IsFilterBarFocused reports whether keys go to the filter bar
	IsFilterBarFocused() bool

	// FocusFilterBar moves keyboard focus to the filter bar
	FocusFilterBar()

	// FocusResults moves keyboard focus to the results table
	FocusResults()
}

// SelectableView is a view that tracks selection state
type SelectableView interface {
	View

	// GetSelectedID returns the ID of the currently selected item
	GetSelectedID() string
}

// StatsProvider is a view that provides statistics for the header
type StatsProvider interface {
	// GetStats returns stats to display in the header for this view
	GetStats() []store.Stat
}
