package integration

import (
	"testing"

	"github.com/boolean-maybe/filterline/model"
	"github.com/boolean-maybe/filterline/testutil"

	"github.com/gdamore/tcell/v2"
)

func commitSlowFilter(ta *testutil.TestApp) {
	ta.Commit("latency")
	ta.Commit(">")
	ta.Commit("1000")
}

func TestSavedViews_SaveListOpen(t *testing.T) {
	ta := testutil.NewTestApp(t)
	defer ta.Cleanup()

	commitSlowFilter(ta)
	ta.SendKey(tcell.KeyCtrlS, 0, tcell.ModCtrl)

	saved := ta.Stores.Views.List()
	if len(saved) != 1 {
		t.Fatalf("saved views = %d, want 1", len(saved))
	}

	ta.SendKey(tcell.KeyF2, 0, tcell.ModNone)
	if ta.Controllers.Nav.CurrentViewID() != model.SavedViewsViewID {
		t.Fatalf("current view = %s, want saved views", ta.Controllers.Nav.CurrentViewID())
	}
	if found, _, _ := ta.FindText("Saved views (1)"); !found {
		ta.DumpScreen()
		t.Error("saved views title missing")
	}
	if found, _, _ := ta.FindText("●"); !found {
		ta.DumpScreen()
		t.Error("loaded view not marked")
	}

	ta.SendKey(tcell.KeyEnter, 0, tcell.ModNone)
	if ta.Controllers.Nav.CurrentViewID() != model.FilterViewID {
		t.Fatalf("current view = %s, want filter", ta.Controllers.Nav.CurrentViewID())
	}
	if n := len(ta.Controllers.FilterBar.Descriptors()); n != 1 {
		t.Errorf("descriptors = %d, want 1", n)
	}
	if found, _, _ := ta.FindText("Results (2/6)"); !found {
		ta.DumpScreen()
		t.Error("opened view should filter the results")
	}
}

func TestSavedViews_SaveTwiceUpdates(t *testing.T) {
	ta := testutil.NewTestApp(t)
	defer ta.Cleanup()

	commitSlowFilter(ta)
	ta.SendKey(tcell.KeyCtrlS, 0, tcell.ModCtrl)

	ta.Commit("cached")
	ta.Commit("=")
	ta.Commit("false")
	ta.SendKey(tcell.KeyCtrlS, 0, tcell.ModCtrl)

	saved := ta.Stores.Views.List()
	if len(saved) != 1 {
		t.Fatalf("saved views = %d, want the loaded view updated in place", len(saved))
	}
	if n := len(saved[0].Filters); n != 2 {
		t.Errorf("saved filters = %d, want 2", n)
	}
}

func TestSavedViews_Delete(t *testing.T) {
	ta := testutil.NewTestApp(t)
	defer ta.Cleanup()

	commitSlowFilter(ta)
	ta.SendKey(tcell.KeyCtrlS, 0, tcell.ModCtrl)

	ta.SendKey(tcell.KeyF2, 0, tcell.ModNone)
	ta.SendKey(tcell.KeyRune, 'd', tcell.ModNone)

	if n := len(ta.Stores.Views.List()); n != 0 {
		t.Errorf("saved views = %d, want 0", n)
	}
	if found, _, _ := ta.FindText("no saved views"); !found {
		ta.DumpScreen()
		t.Error("empty message missing")
	}
	if _, ok := ta.Controllers.SavedViews.LoadedView(); ok {
		t.Error("deleted view still loaded")
	}
}
