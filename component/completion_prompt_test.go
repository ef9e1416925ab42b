package component

import (
	"testing"

	"github.com/gdamore/tcell/v2"
)

func TestCompletionHint(t *testing.T) {
	words := []string{"latency", "Region", "region_code", "route"}

	tests := []struct {
		name string
		text string
		want string
	}{
		{"empty text", "", ""},
		{"unique prefix", "lat", "ency"},
		{"case-insensitive keeps word case", "reg", ""},
		{"unique after longer prefix", "region_", "code"},
		{"ambiguous prefix", "r", ""},
		{"exact word has no hint", "latency", ""},
		{"no match", "zzz", ""},
		{"mixed case input", "LAT", "ency"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CompletionHint(tt.text, words); got != tt.want {
				t.Errorf("CompletionHint(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestCompletionPrompt_TextAndWords(t *testing.T) {
	cp := NewCompletionPrompt([]string{"service", "status"})

	cp.SetText("se")
	if cp.GetHint() != "rvice" {
		t.Errorf("hint = %q, want rvice", cp.GetHint())
	}

	cp.SetWords([]string{"session", "service"})
	if cp.GetHint() != "" {
		t.Errorf("hint after ambiguous words = %q, want empty", cp.GetHint())
	}

	cp.Clear()
	if cp.GetText() != "" || cp.GetHint() != "" {
		t.Errorf("Clear() left text %q hint %q", cp.GetText(), cp.GetHint())
	}
}

func readRow(screen tcell.SimulationScreen, y, width int) string {
	var out []rune
	for x := 0; x < width; x++ {
		ch, _, _, _ := screen.GetContent(x, y)
		out = append(out, ch)
	}
	return string(out)
}

func TestCompletionPrompt_Draw(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatal(err)
	}
	defer screen.Fini()
	screen.SetSize(30, 1)

	cp := NewCompletionPrompt([]string{"250", "300"}).
		SetLabel(">").
		SetTokens([]PromptToken{{Text: "latency"}, {Text: ">"}, {Text: "value", Pending: true}}, 2).
		SetText("2").
		ShowCursor(true)
	cp.SetRect(0, 0, 30, 1)
	cp.Draw(screen)

	// label, tokens, buffer, cursor cell, hint
	want := "> latency > 2 50"
	if got := readRow(screen, 0, len(want)); got != want {
		t.Errorf("prompt = %q, want %q", got, want)
	}
	_, _, style, _ := screen.GetContent(13, 0)
	if _, _, attrs := style.Decompose(); attrs&tcell.AttrReverse == 0 {
		t.Error("cursor cell should be drawn in reverse video")
	}
}
