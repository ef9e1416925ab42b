package controller

import (
	"github.com/boolean-maybe/filterline/model"

	"github.com/rivo/tview"
)

// NavigationController handles view transitions: push, pop, and managing the navigation stack.
// It does NOT create views - that's handled by RootLayout which observes the LayoutModel.

// NavigationController manages the navigation stack and delegates view creation to RootLayout
type NavigationController struct {
	app              *tview.Application
	navState         *viewStack
	activeViewGetter func() View                                     // returns the currently displayed view from RootLayout
	onViewChanged    func(viewID model.ViewID, params map[string]any) // callback when view changes (for layoutModel sync)
}

// NewNavigationController creates a navigation controller
func NewNavigationController(app *tview.Application) *NavigationController {
	return &NavigationController{
		app:      app,
		navState: newViewStack(),
	}
}

// SetActiveViewGetter sets the function to retrieve the currently displayed view
func (nc *NavigationController) SetActiveViewGetter(getter func() View) {
	nc.activeViewGetter = getter
}

// SetOnViewChanged registers a callback that runs when the view changes (for layoutModel sync)
func (nc *NavigationController) SetOnViewChanged(callback func(viewID model.ViewID, params map[string]any)) {
	nc.onViewChanged = callback
}

func (nc *NavigationController) notify(entry *ViewEntry) {
	if entry != nil && nc.onViewChanged != nil {
		nc.onViewChanged(entry.ViewID, entry.Params)
	}
}

// PushView navigates to a new view, adding it to the stack
func (nc *NavigationController) PushView(viewID model.ViewID, params map[string]any) {
	nc.navState.push(viewID, params)
	nc.notify(nc.navState.currentView())
}

// ShowOverlay pushes an overlay view. An overlay already on the stack is brought
// back to the top by popping down to it instead of stacking a second copy.
func (nc *NavigationController) ShowOverlay(viewID model.ViewID) {
	if nc.navState.currentViewID() == viewID {
		return
	}
	if nc.navState.contains(viewID) {
		for nc.navState.currentViewID() != viewID {
			nc.navState.pop()
		}
		nc.notify(nc.navState.currentView())
		return
	}
	nc.PushView(viewID, nil)
}

// ReplaceView replaces the current view with a new one (maintains stack depth)
func (nc *NavigationController) ReplaceView(viewID model.ViewID, params map[string]any) bool {
	if !nc.navState.replaceTopView(viewID, params) {
		return false
	}
	nc.notify(nc.navState.currentView())
	return true
}

// PopView returns to the previous view
func (nc *NavigationController) PopView() bool {
	if !nc.navState.canGoBack() {
		return false
	}
	nc.navState.pop()
	nc.notify(nc.navState.currentView())
	return true
}

// PopToRoot drops every overlay and optionally replaces the root params
func (nc *NavigationController) PopToRoot(params map[string]any) {
	for nc.navState.canGoBack() {
		nc.navState.pop()
	}
	root := nc.navState.currentView()
	if root == nil {
		return
	}
	nc.navState.replaceTopView(root.ViewID, params)
	nc.notify(nc.navState.currentView())
}

// GetActiveView returns the currently displayed view (from RootLayout)
func (nc *NavigationController) GetActiveView() View {
	if nc.activeViewGetter != nil {
		return nc.activeViewGetter()
	}
	return nil
}

// CurrentView returns the current view entry from the navigation stack
func (nc *NavigationController) CurrentView() *ViewEntry {
	return nc.navState.currentView()
}

// CurrentViewID returns the view ID of the current view
func (nc *NavigationController) CurrentViewID() model.ViewID {
	return nc.navState.currentViewID()
}

// Depth returns the current stack depth (for testing)
func (nc *NavigationController) Depth() int {
	return nc.navState.depth()
}

// GetApp returns the tview application
func (nc *NavigationController) GetApp() *tview.Application {
	return nc.app
}

// HandleBack processes the back/escape action
func (nc *NavigationController) HandleBack() bool {
	return nc.PopView()
}

// HandleQuit stops the application
func (nc *NavigationController) HandleQuit() {
	if nc.app != nil {
		nc.app.Stop()
	}
}
