package bootstrap

import (
	"context"
	"log/slog"

	"github.com/rivo/tview"

	"github.com/boolean-maybe/filterline/config"
	"github.com/boolean-maybe/filterline/controller"
	"github.com/boolean-maybe/filterline/internal/app"
	"github.com/boolean-maybe/filterline/internal/background"
	"github.com/boolean-maybe/filterline/model"
	"github.com/boolean-maybe/filterline/operator"
	"github.com/boolean-maybe/filterline/view"
	"github.com/boolean-maybe/filterline/view/header"
)

// BootstrapResult contains all initialized application components.
// In batch mode only the configuration, stores and controllers are set.
type BootstrapResult struct {
	Cfg          *config.Config
	LogLevel     slog.Level
	Batch        bool
	Registry     *operator.Registry
	Stores       *Stores
	HeaderConfig *model.HeaderConfig
	LayoutModel  *model.LayoutModel
	App          *tview.Application
	Controllers  *Controllers
	InputRouter  *controller.InputRouter
	ViewFactory  *view.ViewFactory
	HeaderWidget *header.HeaderWidget
	RootLayout   *view.RootLayout
	Context      context.Context
	CancelFunc   context.CancelFunc
}

// Bootstrap orchestrates the complete application initialization sequence.
// Returns (nil, nil) when the user declines the first-run setup.
func Bootstrap() (*BootstrapResult, error) {
	// Phase 1: Configuration and logging
	cfg, err := LoadConfig()
	if err != nil {
		return nil, err
	}
	logLevel := InitLogging(cfg)
	batch := isBatch(cfg)

	// Phase 2: First-run data; batch runs never prompt
	if !batch {
		proceed, err := EnsureDataInitialized(cfg)
		if err != nil {
			return nil, err
		}
		if !proceed {
			return nil, nil
		}
	}

	// Phase 3: Operators and stores
	registry, err := InitRegistry()
	if err != nil {
		return nil, err
	}
	stores, err := InitStores(cfg, registry)
	if err != nil {
		return nil, err
	}

	// Phase 4: Models
	headerConfig, layoutModel := InitHeaderAndLayoutModels()
	InitHeaderBaseStats(headerConfig, stores.Schema)

	// Phase 5: Application and controllers
	application := app.NewApp()
	controllers := BuildControllers(application, stores, registry)

	// Phase 6: Startup filters from --view and --filter
	initialParams, err := ApplyStartup(cfg, controllers, stores.Schema, registry)
	if err != nil {
		return nil, err
	}

	result := &BootstrapResult{
		Cfg:          cfg,
		LogLevel:     logLevel,
		Batch:        batch,
		Registry:     registry,
		Stores:       stores,
		HeaderConfig: headerConfig,
		LayoutModel:  layoutModel,
		App:          application,
		Controllers:  controllers,
	}
	if batch {
		return result, nil
	}

	app.SetupSignalHandler(application)

	// Phase 7: Input routing
	inputRouter := controller.NewInputRouter(
		controllers.Nav,
		controllers.FilterBar,
		controllers.SavedViews,
		stores.Records,
	)
	headerConfig.SetGlobalActions(convertActions(inputRouter.GlobalActions()))

	// Phase 8: View factory and layout
	viewFactory := view.NewViewFactory(view.FactoryDeps{
		FilterBar:  controllers.FilterBar,
		SavedViews: controllers.SavedViews,
		Records:    stores.Records,
		Views:      stores.Views,
		Operators:  registry,
		Schema:     stores.Schema,
	})

	headerWidget := header.NewHeaderWidget(headerConfig)
	rootLayout := view.NewRootLayout(headerWidget, headerConfig, layoutModel, viewFactory, application, stores.Records, stores.Views)

	// Phase 9: View wiring
	wireOnViewActivated(rootLayout, application)

	// Phase 10: Background jobs
	ctx, cancel := context.WithCancel(context.Background())
	if cfg.Data.Watch {
		StartRecordsWatcher(ctx, cfg.RecordsFile(), stores, application)
	}

	// Phase 11: Navigation and input wiring
	wireNavigation(controllers.Nav, layoutModel, rootLayout)
	app.InstallGlobalInputCapture(application, headerConfig, inputRouter, controllers.Nav)

	// Phase 12: Initial view
	controllers.Nav.PushView(model.FilterViewID, initialParams)

	result.InputRouter = inputRouter
	result.ViewFactory = viewFactory
	result.HeaderWidget = headerWidget
	result.RootLayout = rootLayout
	result.Context = ctx
	result.CancelFunc = cancel
	return result, nil
}

// StartRecordsWatcher reloads the records on the UI goroutine whenever the file changes.
// A watcher that cannot start only disables live reload.
func StartRecordsWatcher(ctx context.Context, path string, stores *Stores, application *tview.Application) {
	err := background.WatchFile(ctx, path, func() {
		application.QueueUpdateDraw(func() {
			_ = stores.Records.Reload()
		})
	})
	if err != nil {
		slog.Warn("live reload disabled", "path", path, "error", err)
	}
}

// wireOnViewActivated wires focus setters into views as they become active.
func wireOnViewActivated(rootLayout *view.RootLayout, app *tview.Application) {
	rootLayout.SetOnViewActivated(func(v controller.View) {
		if focusSettable, ok := v.(controller.FocusSettable); ok {
			focusSettable.SetFocusSetter(func(p tview.Primitive) {
				app.SetFocus(p)
			})
		}
	})
}

// wireNavigation wires navigation controller callbacks to keep LayoutModel
// and RootLayout in sync.
func wireNavigation(navController *controller.NavigationController, layoutModel *model.LayoutModel, rootLayout *view.RootLayout) {
	navController.SetOnViewChanged(func(viewID model.ViewID, params map[string]any) {
		layoutModel.SetContent(viewID, params)
	})
	navController.SetActiveViewGetter(rootLayout.GetContentView)
}
