package bootstrap

import (
	"github.com/boolean-maybe/filterline/config"
	"github.com/boolean-maybe/filterline/controller"
	"github.com/boolean-maybe/filterline/model"
	"github.com/boolean-maybe/filterline/store"
)

// InitHeaderAndLayoutModels creates the header config and layout model with
// persisted visibility preferences applied.
func InitHeaderAndLayoutModels() (*model.HeaderConfig, *model.LayoutModel) {
	headerConfig := model.NewHeaderConfig()
	layoutModel := model.NewLayoutModel()

	headerVisible := config.GetHeaderVisible()
	headerConfig.SetUserPreference(headerVisible)
	headerConfig.SetVisible(headerVisible)

	return headerConfig, layoutModel
}

// InitHeaderBaseStats sets the stats shown regardless of view
func InitHeaderBaseStats(headerConfig *model.HeaderConfig, schema *store.SchemaStore) {
	headerConfig.SetBaseStat("Schema", schema.Name(), 0)
}

// convertActions converts a controller.ActionRegistry to []model.HeaderAction for HeaderConfig.
func convertActions(registry *controller.ActionRegistry) []model.HeaderAction {
	if registry == nil {
		return nil
	}

	actions := registry.GetHeaderActions()
	result := make([]model.HeaderAction, len(actions))
	for i, a := range actions {
		result[i] = model.HeaderAction{
			ID:           string(a.ID),
			Key:          a.Key,
			Rune:         a.Rune,
			Label:        a.Label,
			Modifier:     a.Modifier,
			ShowInHeader: a.ShowInHeader,
		}
	}
	return result
}
