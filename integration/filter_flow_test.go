package integration

import (
	"testing"

	"github.com/boolean-maybe/filterline/controller"
	"github.com/boolean-maybe/filterline/model"
	"github.com/boolean-maybe/filterline/testutil"

	"github.com/gdamore/tcell/v2"
)

func TestFilterFlow_CommitNarrowsResults(t *testing.T) {
	ta := testutil.NewTestApp(t)
	defer ta.Cleanup()

	if found, _, _ := ta.FindText("Results (6/6)"); !found {
		ta.DumpScreen()
		t.Fatal("all sample records should be listed before filtering")
	}

	ta.Commit("latency")
	ta.Commit(">")
	ta.Commit("250")

	if found, _, _ := ta.FindText("Latency (ms) > 250"); !found {
		ta.DumpScreen()
		t.Error("committed filter chip not drawn")
	}
	if found, _, _ := ta.FindText("Results (4/6)"); !found {
		ta.DumpScreen()
		t.Error("results not narrowed to 4 of 6")
	}
	if n := len(ta.Controllers.FilterBar.Descriptors()); n != 1 {
		t.Errorf("descriptors = %d, want 1", n)
	}
}

func TestFilterFlow_FiltersCombine(t *testing.T) {
	ta := testutil.NewTestApp(t)
	defer ta.Cleanup()

	ta.Commit("latency")
	ta.Commit(">")
	ta.Commit("250")
	ta.Commit("region")
	ta.Commit("=")
	ta.Commit("eu-west")

	// billing 1320 and search 251 are both in eu-west
	if got := len(ta.Stores.Records.Matched()); got != 2 {
		t.Errorf("matched = %d, want 2", got)
	}
	if found, _, _ := ta.FindText("Results (2/6)"); !found {
		ta.DumpScreen()
		t.Error("results title not updated")
	}
}

func TestFilterFlow_EscapeDiscardsDraft(t *testing.T) {
	ta := testutil.NewTestApp(t)
	defer ta.Cleanup()

	ta.Commit("service")
	if found, _, _ := ta.FindText("new › Service"); !found {
		ta.DumpScreen()
		t.Fatal("draft prompt not shown")
	}

	ta.SendKey(tcell.KeyEscape, 0, tcell.ModNone)

	if found, _, _ := ta.FindText("new › Service"); found {
		ta.DumpScreen()
		t.Error("draft tokens survived Escape")
	}
	if n := len(ta.Controllers.FilterBar.Descriptors()); n != 0 {
		t.Errorf("descriptors = %d, want 0", n)
	}
}

func TestFilterFlow_FocusMovesBetweenBarAndResults(t *testing.T) {
	ta := testutil.NewTestApp(t)
	defer ta.Cleanup()

	host, ok := ta.Controllers.Nav.GetActiveView().(controller.FilterHostView)
	if !ok {
		t.Fatal("active view is not the filter view")
	}

	ta.SendKey(tcell.KeyBacktab, 0, tcell.ModNone)
	if host.IsFilterBarFocused() {
		t.Error("Shift+Tab should move focus to the results")
	}

	// runes are table keys now, not filter text
	ta.SendText("j")
	if n := len(ta.Controllers.FilterBar.Descriptors()); n != 0 {
		t.Errorf("descriptors = %d, want 0", n)
	}

	ta.SendKey(tcell.KeyRune, '/', tcell.ModNone)
	if !host.IsFilterBarFocused() {
		t.Error("/ should return focus to the filter bar")
	}
	if ta.Controllers.Nav.CurrentViewID() != model.FilterViewID {
		t.Errorf("current view = %s", ta.Controllers.Nav.CurrentViewID())
	}
}

func TestFilterFlow_ReloadPicksUpNewRecords(t *testing.T) {
	ta := testutil.NewTestApp(t)
	defer ta.Cleanup()

	ta.Commit("latency")
	ta.Commit(">")
	ta.Commit("250")

	testutil.WriteRecords(t, ta.DataDir, `records:
  - service: api
    latency: 300
  - service: api
    latency: 100
`)
	ta.SendKey(tcell.KeyF5, 0, tcell.ModNone)

	if found, _, _ := ta.FindText("Results (1/2)"); !found {
		ta.DumpScreen()
		t.Error("reload should re-apply the active filter to the new records")
	}
}
