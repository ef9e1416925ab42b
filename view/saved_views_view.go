package view

import (
	"fmt"

	"github.com/boolean-maybe/filterline/config"
	"github.com/boolean-maybe/filterline/controller"
	"github.com/boolean-maybe/filterline/model"
	"github.com/boolean-maybe/filterline/store"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// SavedViewsView lists saved views with their filters; the loaded one is marked
type SavedViewsView struct {
	table      *tview.Table
	controller *controller.SavedViewsController
	views      *store.ViewStore
	registry   *controller.ActionRegistry
	ids        []string // row -> saved view id
	listenerID int
}

// NewSavedViewsView creates the saved views list
func NewSavedViewsView(ctrl *controller.SavedViewsController, views *store.ViewStore) *SavedViewsView {
	colors := config.GetColors()
	table := tview.NewTable().
		SetSelectable(true, false).
		SetSelectedStyle(tcell.StyleDefault.Foreground(colors.ResultsSelectedText).Background(colors.ResultsSelectedBack))
	table.SetBorder(true).SetTitleAlign(tview.AlignLeft)

	sv := &SavedViewsView{
		table:      table,
		controller: ctrl,
		views:      views,
		registry:   ctrl.GetActionRegistry(),
	}
	sv.refresh()
	return sv
}

func (sv *SavedViewsView) refresh() {
	colors := config.GetColors()
	selected := sv.GetSelectedID()

	sv.table.Clear()
	saved := sv.controller.Views()
	sv.table.SetTitle(fmt.Sprintf(" Saved views (%d) ", len(saved)))
	sv.ids = sv.ids[:0]

	if len(saved) == 0 {
		sv.table.SetCell(0, 0, tview.NewTableCell(colors.ResultsEmptyColor+"no saved views, press Ctrl+S in the filter view").SetSelectable(false))
		return
	}

	loaded, hasLoaded := sv.controller.LoadedView()
	row := 0
	for i, v := range saved {
		marker := " "
		if hasLoaded && loaded.ID == v.ID {
			marker = colors.SavedViewsLoadedMarker + "●"
		}
		sv.table.SetCell(i, 0, tview.NewTableCell(marker))
		sv.table.SetCell(i, 1, tview.NewTableCell(colors.SavedViewsNameColor+tview.Escape(v.Name)))
		sv.table.SetCell(i, 2, tview.NewTableCell(colors.SavedViewsFilterColor+tview.Escape(sv.controller.Summarize(v.Filters))).SetExpansion(1))
		sv.ids = append(sv.ids, v.ID)
		if v.ID == selected {
			row = i
		}
	}
	sv.table.Select(row, 0)
}

// GetPrimitive returns the root tview primitive
func (sv *SavedViewsView) GetPrimitive() tview.Primitive {
	return sv.table
}

// GetActionRegistry returns the view's action registry
func (sv *SavedViewsView) GetActionRegistry() *controller.ActionRegistry {
	return sv.registry
}

// GetViewID returns the view identifier
func (sv *SavedViewsView) GetViewID() model.ViewID {
	return model.SavedViewsViewID
}

// OnFocus is called when the view becomes active
func (sv *SavedViewsView) OnFocus() {
	sv.listenerID = sv.views.AddListener(sv.refresh)
	sv.refresh()
}

// OnBlur is called when the view becomes inactive
func (sv *SavedViewsView) OnBlur() {
	sv.views.RemoveListener(sv.listenerID)
}

// GetSelectedID returns the id of the selected saved view
func (sv *SavedViewsView) GetSelectedID() string {
	row, _ := sv.table.GetSelection()
	if row >= 0 && row < len(sv.ids) {
		return sv.ids[row]
	}
	return ""
}

// SetSelectedID selects a saved view by id
func (sv *SavedViewsView) SetSelectedID(id string) {
	for i, vid := range sv.ids {
		if vid == id {
			sv.table.Select(i, 0)
			return
		}
	}
}
