package controller

import (
	"errors"
	"log/slog"

	"github.com/boolean-maybe/filterline/model"
	"github.com/boolean-maybe/filterline/store"

	"github.com/gdamore/tcell/v2"
)

// InputRouter picks the controller for a key event from the current view and,
// in the filter view, from whether the bar or the results table has focus.
// It does not interpret view actions itself.
type InputRouter struct {
	navController  *NavigationController
	filterBar      *FilterBarController
	savedViews     *SavedViewsController
	records        *store.RecordStore
	globalActions  *ActionRegistry
	resultsActions *ActionRegistry
	helpActions    *ActionRegistry
}

// NewInputRouter creates an input router
func NewInputRouter(
	navController *NavigationController,
	filterBar *FilterBarController,
	savedViews *SavedViewsController,
	records *store.RecordStore,
) *InputRouter {
	return &InputRouter{
		navController:  navController,
		filterBar:      filterBar,
		savedViews:     savedViews,
		records:        records,
		globalActions:  DefaultGlobalActions(),
		resultsActions: ResultsViewActions(),
		helpActions:    HelpViewActions(),
	}
}

// GlobalActions returns the actions available in every view
func (ir *InputRouter) GlobalActions() *ActionRegistry {
	return ir.globalActions
}

// HandleInput processes a key event for the current view and routes it to the appropriate handler.
// Global actions are checked first, then the view-specific controller.
// Returns true if the event was handled, false otherwise.
func (ir *InputRouter) HandleInput(event *tcell.EventKey, currentView *ViewEntry) bool {
	slog.Debug("input received", "name", event.Name(), "key", int(event.Key()), "rune", string(event.Rune()), "modifiers", int(event.Modifiers()))

	if currentView == nil {
		return false
	}

	if action := ir.globalActions.Match(event); action != nil {
		return ir.handleGlobalAction(action.ID)
	}

	switch currentView.ViewID {
	case model.FilterViewID:
		return ir.handleFilterInput(event)
	case model.SavedViewsViewID:
		return ir.handleSavedViewsInput(event)
	case model.HelpViewID:
		if action := ir.helpActions.Match(event); action != nil && action.ID == ActionBack {
			return ir.navController.HandleBack()
		}
		return false
	default:
		return false
	}
}

// handleFilterInput routes between the filter bar and the results table
func (ir *InputRouter) handleFilterInput(event *tcell.EventKey) bool {
	host, _ := ir.navController.GetActiveView().(FilterHostView)

	if host == nil || host.IsFilterBarFocused() {
		if action := ir.filterBar.GetActionRegistry().Match(event); action != nil && action.ID == ActionToResults {
			ir.filterBar.Blur()
			if host != nil {
				host.FocusResults()
			}
			return true
		}
		return ir.filterBar.HandleKey(event)
	}

	action := ir.resultsActions.Match(event)
	if action == nil {
		// arrows and paging belong to the table
		return false
	}
	switch action.ID {
	case ActionToFilter:
		host.FocusFilterBar()
		ir.filterBar.Focus()
		return true
	case ActionQuit:
		ir.navController.HandleQuit()
		return true
	default:
		return false
	}
}

func (ir *InputRouter) handleSavedViewsInput(event *tcell.EventKey) bool {
	action := ir.savedViews.GetActionRegistry().Match(event)
	if action == nil {
		return false
	}
	selectedID := ""
	if sv, ok := ir.navController.GetActiveView().(SelectableView); ok {
		selectedID = sv.GetSelectedID()
	}
	return ir.savedViews.HandleAction(action.ID, selectedID)
}

// handleGlobalAction processes actions available in all views
func (ir *InputRouter) handleGlobalAction(actionID ActionID) bool {
	switch actionID {
	case ActionBack:
		return ir.navController.HandleBack()
	case ActionQuit:
		ir.navController.HandleQuit()
		return true
	case ActionHelp:
		ir.navController.ShowOverlay(model.HelpViewID)
		return true
	case ActionSavedViews:
		ir.navController.ShowOverlay(model.SavedViewsViewID)
		return true
	case ActionSaveView:
		view, err := ir.savedViews.SaveCurrent()
		if errors.Is(err, ErrNoFilters) {
			slog.Info("nothing to save")
			return true
		}
		if err != nil {
			slog.Error("failed to save view", "error", err)
			return true
		}
		slog.Info("view saved", "id", view.ID, "name", view.Name)
		return true
	case ActionReload:
		if ir.records != nil {
			_ = ir.records.Reload()
		}
		return true
	default:
		return false
	}
}
