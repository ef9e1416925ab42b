package app

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/boolean-maybe/filterline/controller"
	"github.com/boolean-maybe/filterline/internal/recovery"
	"github.com/boolean-maybe/filterline/model"
)

// InstallGlobalInputCapture routes every key through the input router.
// Keys the router does not consume fall through to the focused primitive.
func InstallGlobalInputCapture(
	app *tview.Application,
	headerConfig *model.HeaderConfig,
	inputRouter *controller.InputRouter,
	navController *controller.NavigationController,
) {
	app.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if HandleKey(event, headerConfig, inputRouter, navController) {
			return nil
		}
		return event
	})
}

// HandleKey is the body of the input capture, split out for tests
func HandleKey(
	event *tcell.EventKey,
	headerConfig *model.HeaderConfig,
	inputRouter *controller.InputRouter,
	navController *controller.NavigationController,
) bool {
	if action := inputRouter.GlobalActions().Match(event); action != nil && action.ID == controller.ActionToggleHeader {
		visible := !headerConfig.GetUserPreference()
		headerConfig.SetUserPreference(visible)
		headerConfig.SetVisible(visible)
		return true
	}

	handled := false
	// a bug in one key path must not take the editor down
	_ = recovery.Guard("handle input", func() {
		handled = inputRouter.HandleInput(event, navController.CurrentView())
	})
	return handled
}
