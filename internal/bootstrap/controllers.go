package bootstrap

import (
	"github.com/rivo/tview"

	"github.com/boolean-maybe/filterline/controller"
	"github.com/boolean-maybe/filterline/operator"
)

// Controllers holds all application controllers.
type Controllers struct {
	Nav        *controller.NavigationController
	FilterBar  *controller.FilterBarController
	SavedViews *controller.SavedViewsController
}

// BuildControllers constructs the navigation and editor controllers.
// Filter bar changes are applied to the record store from here on.
func BuildControllers(app *tview.Application, stores *Stores, registry *operator.Registry) *Controllers {
	navController := controller.NewNavigationController(app)
	filterBar := controller.NewFilterBarController(registry, stores.Schema)
	filterBar.AddListener(stores.Records.OnExpressionsChanged)
	savedViews := controller.NewSavedViewsController(stores.Views, filterBar, navController, registry)

	return &Controllers{
		Nav:        navController,
		FilterBar:  filterBar,
		SavedViews: savedViews,
	}
}
