package view

import (
	"github.com/boolean-maybe/filterline/controller"
	"github.com/boolean-maybe/filterline/model"
	"github.com/boolean-maybe/filterline/operator"
	"github.com/boolean-maybe/filterline/store"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// FilterView stacks the filter bar above the results table.
// Keyboard focus is either on the bar or on the table, never both.
type FilterView struct {
	*tview.Flex
	bar     *FilterBarView
	results *ResultsView

	filterBar  *controller.FilterBarController
	savedViews *controller.SavedViewsController
	records    *store.RecordStore
	registry   *controller.ActionRegistry

	barFocused        bool
	focusSetter       func(p tview.Primitive)
	recordsListenerID int
}

// NewFilterView creates the filter view
func NewFilterView(
	filterBar *controller.FilterBarController,
	savedViews *controller.SavedViewsController,
	records *store.RecordStore,
	operators *operator.Registry,
	schema model.SchemaLookup,
) *FilterView {
	fv := &FilterView{
		Flex:       tview.NewFlex().SetDirection(tview.FlexRow),
		bar:        NewFilterBarView(filterBar, operators, schema),
		results:    NewResultsView(records),
		filterBar:  filterBar,
		savedViews: savedViews,
		records:    records,
		registry:   controller.FilterBarActions(),
		barFocused: true,
	}
	fv.registry.Merge(controller.ResultsViewActions())

	fv.AddItem(fv.bar, 3, 0, true)
	fv.AddItem(fv.results, 0, 1, false)
	return fv
}

// Draw gives the bar the rows its chips and popover need
func (fv *FilterView) Draw(screen tcell.Screen) {
	_, _, width, _ := fv.GetInnerRect()
	fv.ResizeItem(fv.bar, fv.bar.Height(width), 0)
	fv.Flex.Draw(screen)
}

// GetPrimitive returns the root tview primitive
func (fv *FilterView) GetPrimitive() tview.Primitive {
	return fv
}

// GetActionRegistry returns the filter bar and results actions
func (fv *FilterView) GetActionRegistry() *controller.ActionRegistry {
	return fv.registry
}

// GetViewID returns the view identifier
func (fv *FilterView) GetViewID() model.ViewID {
	return model.FilterViewID
}

// OnFocus subscribes to the bar and the records and puts focus on the bar
func (fv *FilterView) OnFocus() {
	fv.bar.Attach()
	fv.recordsListenerID = fv.records.AddListener(fv.results.Refresh)
	fv.results.Refresh()
	fv.FocusFilterBar()
	fv.filterBar.Focus()
}

// OnBlur drops the subscriptions
func (fv *FilterView) OnBlur() {
	fv.filterBar.Blur()
	fv.bar.Detach()
	fv.records.RemoveListener(fv.recordsListenerID)
	fv.recordsListenerID = 0
}

// IsFilterBarFocused reports whether keys go to the filter bar
func (fv *FilterView) IsFilterBarFocused() bool {
	return fv.barFocused
}

// FocusFilterBar moves keyboard focus to the filter bar
func (fv *FilterView) FocusFilterBar() {
	fv.setBarFocused(true)
	if fv.focusSetter != nil {
		fv.focusSetter(fv.bar)
	}
}

// FocusResults moves keyboard focus to the results table
func (fv *FilterView) FocusResults() {
	fv.setBarFocused(false)
	if fv.focusSetter != nil {
		fv.focusSetter(fv.results)
	}
}

func (fv *FilterView) setBarFocused(focused bool) {
	fv.barFocused = focused
	fv.bar.SetFocused(focused)
	fv.results.SetFocused(!focused)
}

// SetFocusSetter sets the callback for requesting focus changes
func (fv *FilterView) SetFocusSetter(setter func(p tview.Primitive)) {
	fv.focusSetter = setter
}

// GetStats returns the loaded view name and the dataset counts.
// The header shows as many as its rows fit, in Order.
func (fv *FilterView) GetStats() []store.Stat {
	name := "unsaved"
	if v, ok := fv.savedViews.LoadedView(); ok {
		name = v.Name
	}
	stats := []store.Stat{{Name: "View", Value: name, Order: 1}}
	return append(stats, fv.records.GetStats()...)
}

// Bar exposes the filter bar view
func (fv *FilterView) Bar() *FilterBarView {
	return fv.bar
}

// Results exposes the results table
func (fv *FilterView) Results() *ResultsView {
	return fv.results
}
