package testutil

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/boolean-maybe/filterline/config"
	"github.com/boolean-maybe/filterline/controller"
	"github.com/boolean-maybe/filterline/internal/app"
	"github.com/boolean-maybe/filterline/internal/bootstrap"
	"github.com/boolean-maybe/filterline/model"
	"github.com/boolean-maybe/filterline/operator"
	"github.com/boolean-maybe/filterline/store"
	"github.com/boolean-maybe/filterline/view"
	"github.com/boolean-maybe/filterline/view/header"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// TestApp wraps the full MVC stack for integration testing with SimulationScreen
type TestApp struct {
	App          *tview.Application
	Screen       tcell.SimulationScreen
	RootLayout   *view.RootLayout
	Stores       *bootstrap.Stores
	Controllers  *bootstrap.Controllers
	InputRouter  *controller.InputRouter
	HeaderConfig *model.HeaderConfig
	DataDir      string
	t            *testing.T
}

// NewTestApp bootstraps the full MVC stack over the sample data.
// Mirrors the initialization sequence of bootstrap.Bootstrap without the terminal.
func NewTestApp(t *testing.T) *TestApp {
	t.Helper()

	// keep tests away from the real user config
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	config.ResetPathManager()
	t.Cleanup(config.ResetPathManager)

	dataDir := t.TempDir()
	WriteSampleData(t, dataDir)

	registry, err := operator.NewRegistry(operator.DefaultTable())
	if err != nil {
		t.Fatalf("failed to build registry: %v", err)
	}
	schema, err := store.LoadSchema(filepath.Join(dataDir, config.SchemaFilename))
	if err != nil {
		t.Fatalf("failed to load schema: %v", err)
	}
	records, err := store.LoadRecords(filepath.Join(dataDir, config.RecordsFilename), registry, schema)
	if err != nil {
		t.Fatalf("failed to load records: %v", err)
	}
	views, err := store.LoadViews(filepath.Join(dataDir, config.ViewsFilename))
	if err != nil {
		t.Fatalf("failed to load views: %v", err)
	}
	schema.SetHintSource(records.DistinctValues, 20)
	stores := &bootstrap.Stores{Schema: schema, Records: records, Views: views}

	headerConfig := model.NewHeaderConfig()
	layoutModel := model.NewLayoutModel()
	bootstrap.InitHeaderBaseStats(headerConfig, schema)

	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("failed to init simulation screen: %v", err)
	}
	screen.SetSize(100, 40)
	screen.Clear()

	application := tview.NewApplication()
	application.SetScreen(screen)

	controllers := bootstrap.BuildControllers(application, stores, registry)
	inputRouter := controller.NewInputRouter(controllers.Nav, controllers.FilterBar, controllers.SavedViews, records)

	viewFactory := view.NewViewFactory(view.FactoryDeps{
		FilterBar:  controllers.FilterBar,
		SavedViews: controllers.SavedViews,
		Records:    records,
		Views:      views,
		Operators:  registry,
		Schema:     schema,
	})
	headerWidget := header.NewHeaderWidget(headerConfig)
	rootLayout := view.NewRootLayout(headerWidget, headerConfig, layoutModel, viewFactory, application, records, views)

	rootLayout.SetOnViewActivated(func(v controller.View) {
		if focusSettable, ok := v.(controller.FocusSettable); ok {
			focusSettable.SetFocusSetter(func(p tview.Primitive) {
				application.SetFocus(p)
			})
		}
	})
	controllers.Nav.SetOnViewChanged(func(viewID model.ViewID, params map[string]any) {
		layoutModel.SetContent(viewID, params)
	})
	controllers.Nav.SetActiveViewGetter(rootLayout.GetContentView)
	app.InstallGlobalInputCapture(application, headerConfig, inputRouter, controllers.Nav)

	// Note: Do NOT call app.Run() - we use Draw() + screen.Show() for synchronous testing
	application.SetRoot(rootLayout.GetPrimitive(), true).EnableMouse(false)
	controllers.Nav.PushView(model.FilterViewID, nil)

	ta := &TestApp{
		App:          application,
		Screen:       screen,
		RootLayout:   rootLayout,
		Stores:       stores,
		Controllers:  controllers,
		InputRouter:  inputRouter,
		HeaderConfig: headerConfig,
		DataDir:      dataDir,
		t:            t,
	}
	ta.Draw()
	return ta
}

// Draw forces a synchronous draw without running the app event loop
func (ta *TestApp) Draw() {
	_, width, height := ta.Screen.GetContents()
	ta.RootLayout.GetPrimitive().SetRect(0, 0, width, height)
	ta.RootLayout.GetPrimitive().Draw(ta.Screen)
	ta.Screen.Show()
}

// SendKey simulates a key press through the input capture.
// Events the capture does not consume go to the focused primitive.
func (ta *TestApp) SendKey(key tcell.Key, ch rune, mod tcell.ModMask) {
	event := tcell.NewEventKey(key, ch, mod)
	consumed := false
	if capture := ta.App.GetInputCapture(); capture != nil {
		consumed = capture(event) == nil
	}

	if !consumed {
		if focused := ta.App.GetFocus(); focused != nil {
			if handler := focused.InputHandler(); handler != nil {
				handler(event, func(p tview.Primitive) { ta.App.SetFocus(p) })
			}
		}
	}

	ta.Draw()
}

// SendText types a string one rune at a time
func (ta *TestApp) SendText(text string) {
	for _, ch := range text {
		ta.SendKey(tcell.KeyRune, ch, tcell.ModNone)
	}
}

// Commit types text into the filter bar and confirms it with Enter
func (ta *TestApp) Commit(text string) {
	ta.SendText(text)
	ta.SendKey(tcell.KeyEnter, 0, tcell.ModNone)
}

// GetTextAt extracts text from a screen region starting at (x, y) with given width
func (ta *TestApp) GetTextAt(x, y, width int) string {
	contents, screenWidth, _ := ta.Screen.GetContents()
	var result strings.Builder

	for i := 0; i < width; i++ {
		cellIdx := y*screenWidth + (x + i)
		if cellIdx >= len(contents) {
			break
		}
		cell := contents[cellIdx]
		if len(cell.Runes) > 0 {
			result.WriteRune(cell.Runes[0])
		} else {
			result.WriteRune(' ')
		}
	}

	return strings.TrimSpace(result.String())
}

// FindText searches for a text string anywhere on the screen.
// Returns (found, x, y) where x, y are the coordinates of the first match.
func (ta *TestApp) FindText(needle string) (bool, int, int) {
	_, width, height := ta.Screen.GetContents()
	for y := 0; y < height; y++ {
		rowText := ta.GetTextAt(0, y, width)
		if x := strings.Index(rowText, needle); x >= 0 {
			return true, x, y
		}
	}
	return false, 0, 0
}

// DumpScreen logs the non-empty screen rows for debugging
func (ta *TestApp) DumpScreen() {
	_, width, height := ta.Screen.GetContents()
	ta.t.Logf("Screen size: %dx%d", width, height)
	for y := 0; y < height; y++ {
		if line := ta.GetTextAt(0, y, width); line != "" {
			ta.t.Logf("Row %2d: %s", y, line)
		}
	}
}

// Cleanup tears down the test app and releases resources
func (ta *TestApp) Cleanup() {
	ta.RootLayout.Cleanup()
	ta.Screen.Fini()
}
