package model

import "testing"

func TestHeaderConfig_StatsOrdering(t *testing.T) {
	hc := NewHeaderConfig()
	hc.SetBaseStat("Rows", "120", 1)
	hc.SetBaseStat("Schema", "logs", 0)
	hc.SetViewStat("Matched", "7", 2)
	hc.SetViewStat("Filters", "2", 2)

	stats := hc.GetStats()
	want := []string{"Schema", "Rows", "Filters", "Matched"}
	if len(stats) != len(want) {
		t.Fatalf("got %d stats, want %d", len(stats), len(want))
	}
	for i, name := range want {
		if stats[i].Name != name {
			t.Errorf("stat %d = %q, want %q", i, stats[i].Name, name)
		}
	}

	hc.ClearViewStats()
	if got := len(hc.GetStats()); got != 2 {
		t.Errorf("after ClearViewStats got %d stats, want the 2 base stats", got)
	}
}

func TestHeaderConfig_ViewStatShadowsBase(t *testing.T) {
	hc := NewHeaderConfig()
	hc.SetBaseStat("Rows", "120", 1)
	hc.SetViewStat("Rows", "7", 1)

	stats := hc.GetStats()
	if len(stats) != 1 || stats[0].Value != "7" {
		t.Errorf("stats = %+v, want the view value", stats)
	}
}

func TestHeaderConfig_Visibility(t *testing.T) {
	hc := NewHeaderConfig()
	notified := 0
	hc.AddListener(func() { notified++ })

	if !hc.IsVisible() || !hc.GetUserPreference() {
		t.Fatal("header should start visible")
	}

	hc.SetVisible(true)
	if notified != 0 {
		t.Errorf("unchanged visibility notified %d times", notified)
	}

	hc.SetUserPreference(false)
	if hc.IsVisible() || hc.GetUserPreference() {
		t.Error("user preference should hide the header")
	}
	if notified != 1 {
		t.Errorf("notified = %d, want 1", notified)
	}
}

func TestHeaderConfig_Actions(t *testing.T) {
	hc := NewHeaderConfig()
	hc.SetGlobalActions([]HeaderAction{{ID: "quit", Label: "Quit"}})
	hc.SetViewActions([]HeaderAction{{ID: "reset", Label: "Reset"}, {ID: "confirm", Label: "Confirm"}})

	if got := hc.GetGlobalActions(); len(got) != 1 || got[0].ID != "quit" {
		t.Errorf("global actions = %+v", got)
	}
	if got := hc.GetViewActions(); len(got) != 2 {
		t.Errorf("view actions = %+v", got)
	}
}
