package header

import (
	"github.com/boolean-maybe/filterline/controller"
	"github.com/boolean-maybe/filterline/model"
)

// modelActionToControllerAction converts a model.HeaderAction to controller.Action
func modelActionToControllerAction(a model.HeaderAction) controller.Action {
	return controller.Action{
		ID:           controller.ActionID(a.ID),
		Key:          a.Key,
		Rune:         a.Rune,
		Label:        a.Label,
		Modifier:     a.Modifier,
		ShowInHeader: a.ShowInHeader,
	}
}

// headerActions keeps the actions marked for the hints bar, first binding per ID wins.
// IDs in skip are dropped so a view cannot repeat a global hint.
func headerActions(actions []model.HeaderAction, skip map[controller.ActionID]bool) []controller.Action {
	var result []controller.Action
	seen := make(map[controller.ActionID]bool)

	for _, a := range actions {
		id := controller.ActionID(a.ID)
		if !a.ShowInHeader || skip[id] || seen[id] {
			continue
		}
		seen[id] = true
		result = append(result, modelActionToControllerAction(a))
	}
	return result
}
