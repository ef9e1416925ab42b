package controller

import (
	"github.com/boolean-maybe/filterline/model"

	"github.com/rivo/tview"
)

// Test utilities for controller unit tests

// newMockNavigationController creates a navigation controller without a tview application.
// The active view getter returns view.
func newMockNavigationController(view View) *NavigationController {
	nc := NewNavigationController(nil)
	nc.SetActiveViewGetter(func() View { return view })
	return nc
}

// fakeView is a minimal View that records focus changes between the filter bar and the results
type fakeView struct {
	id          model.ViewID
	barFocused  bool
	selectedID  string
	focusResets int
}

func (v *fakeView) GetPrimitive() tview.Primitive { return tview.NewBox() }
func (v *fakeView) GetActionRegistry() *ActionRegistry { return NewActionRegistry() }
func (v *fakeView) GetViewID() model.ViewID { return v.id }
func (v *fakeView) OnFocus() {}
func (v *fakeView) OnBlur() {}
func (v *fakeView) IsFilterBarFocused() bool { return v.barFocused }
func (v *fakeView) GetSelectedID() string { return v.selectedID }

func (v *fakeView) FocusFilterBar() {
	v.barFocused = true
	v.focusResets++
}

func (v *fakeView) FocusResults() {
	v.barFocused = false
	v.focusResets++
}
