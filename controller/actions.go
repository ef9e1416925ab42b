package controller

import (
	"github.com/gdamore/tcell/v2"
)

// ActionRegistry maps keyboard shortcuts to actions and matches key events.

// ActionID identifies a specific action
type ActionID string

// ActionID values for global actions (available in all views).
const (
	ActionBack         ActionID = "back"
	ActionQuit         ActionID = "quit"
	ActionHelp         ActionID = "help"
	ActionReload       ActionID = "reload"
	ActionSaveView     ActionID = "save_view"
	ActionSavedViews   ActionID = "saved_views"
	ActionToggleHeader ActionID = "toggle_header"
)

// ActionID values for the filter bar.
const (
	ActionReset       ActionID = "reset"   // Escape: restore the active expression
	ActionConfirm     ActionID = "confirm" // Tab/Enter: confirm the buffer, submit when complete
	ActionRemove      ActionID = "remove"  // Backspace on an empty buffer
	ActionFocusPrev   ActionID = "focus_prev"
	ActionFocusNext   ActionID = "focus_next"
	ActionOptionPrev  ActionID = "option_prev"
	ActionOptionNext  ActionID = "option_next"
	ActionClearActive ActionID = "clear_active"
	ActionToResults   ActionID = "to_results"
)

// ActionID values for the results table and saved views list.
const (
	ActionToFilter   ActionID = "to_filter"
	ActionOpenView   ActionID = "open_view"
	ActionDeleteView ActionID = "delete_view"
)

// Action represents a keyboard shortcut binding
type Action struct {
	ID           ActionID
	Key          tcell.Key
	Rune         rune // for letter keys (when Key == tcell.KeyRune)
	Label        string
	Modifier     tcell.ModMask
	ShowInHeader bool // whether to display in the key hints bar
}

// ActionRegistry holds the available actions for a view.
// actions keeps registration order for the hints bar; byKey/byRune give O(1) lookups.
type ActionRegistry struct {
	actions []Action
	byKey   map[tcell.Key]Action
	byRune  map[rune]Action
}

// NewActionRegistry creates a new action registry
func NewActionRegistry() *ActionRegistry {
	return &ActionRegistry{
		actions: make([]Action, 0),
		byKey:   make(map[tcell.Key]Action),
		byRune:  make(map[rune]Action),
	}
}

// Register adds an action to the registry
func (r *ActionRegistry) Register(action Action) {
	r.actions = append(r.actions, action)
	if action.Key == tcell.KeyRune {
		r.byRune[action.Rune] = action
	} else {
		r.byKey[action.Key] = action
	}
}

// Merge adds all actions from another registry into this one.
// Actions from the other registry are appended to preserve order.
func (r *ActionRegistry) Merge(other *ActionRegistry) {
	for _, action := range other.actions {
		r.Register(action)
	}
}

// GetActions returns all registered actions
func (r *ActionRegistry) GetActions() []Action {
	return r.actions
}

// Match finds an action matching the given key event
func (r *ActionRegistry) Match(event *tcell.EventKey) *Action {
	// normalize modifier (ignore caps lock, num lock, etc.)
	mod := event.Modifiers() & (tcell.ModShift | tcell.ModCtrl | tcell.ModAlt | tcell.ModMeta)

	for i := range r.actions {
		action := &r.actions[i]

		if event.Key() == tcell.KeyRune {
			if action.Key == tcell.KeyRune && action.Rune == event.Rune() {
				// if action has explicit modifiers, require exact match
				if action.Modifier != 0 && action.Modifier != mod {
					continue
				}
				return action
			}
		} else {
			// for special keys, require exact modifier match
			if action.Key == event.Key() && action.Modifier == mod {
				return action
			}
			// tcell reports Ctrl+letter either as KeyCtrlA..KeyCtrlZ or as 'A'..'Z' with ModCtrl
			if mod == tcell.ModCtrl && action.Modifier == tcell.ModCtrl {
				var ctrlKeyCode tcell.Key
				if event.Key() >= 'A' && event.Key() <= 'Z' {
					ctrlKeyCode = event.Key() - 'A' + 1
				} else if event.Key() >= 'a' && event.Key() <= 'z' {
					ctrlKeyCode = event.Key() - 'a' + 1
				}
				if ctrlKeyCode != 0 && ctrlKeyCode == action.Key {
					return action
				}
			}
		}
	}
	return nil
}

// GetHeaderActions returns only actions marked for the hints bar
func (r *ActionRegistry) GetHeaderActions() []Action {
	var result []Action
	for _, a := range r.actions {
		if a.ShowInHeader {
			result = append(result, a)
		}
	}
	return result
}

// DefaultGlobalActions returns common actions available in all views
func DefaultGlobalActions() *ActionRegistry {
	r := NewActionRegistry()
	r.Register(Action{ID: ActionQuit, Key: tcell.KeyCtrlQ, Modifier: tcell.ModCtrl, Label: "Quit", ShowInHeader: true})
	r.Register(Action{ID: ActionHelp, Key: tcell.KeyF1, Label: "Help", ShowInHeader: true})
	r.Register(Action{ID: ActionSavedViews, Key: tcell.KeyF2, Label: "Views", ShowInHeader: true})
	r.Register(Action{ID: ActionSaveView, Key: tcell.KeyCtrlS, Modifier: tcell.ModCtrl, Label: "Save view", ShowInHeader: true})
	r.Register(Action{ID: ActionReload, Key: tcell.KeyF5, Label: "Reload", ShowInHeader: true})
	r.Register(Action{ID: ActionToggleHeader, Key: tcell.KeyF10, Label: "Header", ShowInHeader: true})
	return r
}

// FilterBarActions returns the keyboard policy of the filter bar.
// Printable runes are not registered; they go to the input buffer.
func FilterBarActions() *ActionRegistry {
	r := NewActionRegistry()
	r.Register(Action{ID: ActionReset, Key: tcell.KeyEscape, Label: "Reset", ShowInHeader: true})
	r.Register(Action{ID: ActionConfirm, Key: tcell.KeyEnter, Label: "Confirm", ShowInHeader: true})
	r.Register(Action{ID: ActionConfirm, Key: tcell.KeyTab, Label: "Confirm"})
	r.Register(Action{ID: ActionRemove, Key: tcell.KeyBackspace2, Label: "Remove"})
	r.Register(Action{ID: ActionRemove, Key: tcell.KeyBackspace, Label: "Remove"})
	r.Register(Action{ID: ActionFocusPrev, Key: tcell.KeyLeft, Label: "←"})
	r.Register(Action{ID: ActionFocusNext, Key: tcell.KeyRight, Label: "→"})
	r.Register(Action{ID: ActionOptionPrev, Key: tcell.KeyUp, Label: "↑"})
	r.Register(Action{ID: ActionOptionNext, Key: tcell.KeyDown, Label: "↓"})
	r.Register(Action{ID: ActionClearActive, Key: tcell.KeyCtrlD, Modifier: tcell.ModCtrl, Label: "Clear", ShowInHeader: true})
	r.Register(Action{ID: ActionToResults, Key: tcell.KeyBacktab, Label: "Results", ShowInHeader: true})
	return r
}

// ResultsViewActions returns the actions of the results table
func ResultsViewActions() *ActionRegistry {
	r := NewActionRegistry()
	r.Register(Action{ID: ActionToFilter, Key: tcell.KeyRune, Rune: '/', Label: "Filter", ShowInHeader: true})
	r.Register(Action{ID: ActionToFilter, Key: tcell.KeyBacktab, Label: "Filter"})
	r.Register(Action{ID: ActionQuit, Key: tcell.KeyRune, Rune: 'q', Label: "Quit"})
	return r
}

// SavedViewsActions returns the actions of the saved views list
func SavedViewsActions() *ActionRegistry {
	r := NewActionRegistry()
	r.Register(Action{ID: ActionOpenView, Key: tcell.KeyEnter, Label: "Open", ShowInHeader: true})
	r.Register(Action{ID: ActionDeleteView, Key: tcell.KeyRune, Rune: 'd', Label: "Delete", ShowInHeader: true})
	r.Register(Action{ID: ActionBack, Key: tcell.KeyEscape, Label: "Back", ShowInHeader: true})
	return r
}

// HelpViewActions returns the actions of the help overlay
func HelpViewActions() *ActionRegistry {
	r := NewActionRegistry()
	r.Register(Action{ID: ActionBack, Key: tcell.KeyEscape, Label: "Back", ShowInHeader: true})
	return r
}
