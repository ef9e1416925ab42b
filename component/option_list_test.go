package component

import (
	"reflect"
	"testing"

	"github.com/gdamore/tcell/v2"
)

func TestOptionList_SetOptions(t *testing.T) {
	l := NewOptionList(3)

	l.SetOptions([]string{"=", "!=", "contains"}, 1)
	if l.GetIndex() != 1 {
		t.Errorf("GetIndex() = %d, want 1", l.GetIndex())
	}

	// out of range falls back to free-form
	l.SetOptions([]string{"="}, 4)
	if l.GetIndex() != -1 {
		t.Errorf("GetIndex() = %d, want -1", l.GetIndex())
	}
	if !reflect.DeepEqual(l.GetOptions(), []string{"="}) {
		t.Errorf("GetOptions() = %v", l.GetOptions())
	}
}

func TestOptionList_Height(t *testing.T) {
	l := NewOptionList(4)
	tests := []struct {
		options []string
		want    int
	}{
		{nil, 0},
		{[]string{"a"}, 3},
		{[]string{"a", "b", "c", "d", "e", "f"}, 6},
	}
	for _, tt := range tests {
		l.SetOptions(tt.options, -1)
		if got := l.Height(); got != tt.want {
			t.Errorf("Height() with %d options = %d, want %d", len(tt.options), got, tt.want)
		}
	}
}

func TestOptionList_VisibleRangeFollowsHighlight(t *testing.T) {
	options := []string{"a", "b", "c", "d", "e", "f"}
	l := NewOptionList(3)

	tests := []struct {
		name       string
		index      int
		start, end int
	}{
		{"no highlight", -1, 0, 3},
		{"inside first window", 2, 0, 3},
		{"scrolls down", 4, 2, 5},
		{"last option", 5, 3, 6},
		{"scrolls back up", 1, 1, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l.SetOptions(options, tt.index)
			start, end := l.VisibleRange(3)
			if start != tt.start || end != tt.end {
				t.Errorf("VisibleRange() = [%d,%d), want [%d,%d)", start, end, tt.start, tt.end)
			}
		})
	}
}

func TestOptionList_DrawHighlight(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatal(err)
	}
	defer screen.Fini()
	screen.SetSize(12, 5)

	l := NewOptionList(3)
	l.SetOptions([]string{"eu", "us", "apac"}, 1)
	l.SetRect(0, 0, 12, 5)
	l.Draw(screen)

	// inside the border, one cell of padding
	ch, _, _, _ := screen.GetContent(2, 1)
	if ch != 'e' {
		t.Errorf("first option rune = %q, want 'e'", ch)
	}
	_, _, style, _ := screen.GetContent(2, 2)
	highlight := l.GetIndex()
	if _, bg, _ := style.Decompose(); highlight != 1 || bg == tcell.ColorDefault {
		t.Errorf("highlighted row background = %v, want highlight color", bg)
	}
}
