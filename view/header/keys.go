package header

import (
	"strings"

	"github.com/gdamore/tcell/v2"
)

// keyNames overrides tcell's names where a shorter label reads better in the hints bar
var keyNames = map[tcell.Key]string{
	tcell.KeyEscape:     "Esc",
	tcell.KeyEnter:      "Enter",
	tcell.KeyTab:        "Tab",
	tcell.KeyBacktab:    "S-Tab",
	tcell.KeyBackspace2: "Bksp",
	tcell.KeyLeft:       "←",
	tcell.KeyRight:      "→",
	tcell.KeyUp:         "↑",
	tcell.KeyDown:       "↓",
}

// formatKeyBinding renders a binding for the hints bar, e.g. "Ctrl+S", "F1", "/"
func formatKeyBinding(key tcell.Key, ch rune, mod tcell.ModMask) string {
	var b strings.Builder
	if mod&tcell.ModAlt != 0 {
		b.WriteString("Alt+")
	}

	if key == tcell.KeyRune {
		if mod&tcell.ModCtrl != 0 {
			b.WriteString("Ctrl+")
		}
		b.WriteRune(ch)
		return b.String()
	}

	// Tab and Enter share codes with Ctrl+I and Ctrl+M, so named keys go first
	if name, ok := keyNames[key]; ok {
		b.WriteString(name)
		return b.String()
	}
	if key >= tcell.KeyCtrlA && key <= tcell.KeyCtrlZ {
		b.WriteString("Ctrl+")
		b.WriteRune(rune('A' + key - tcell.KeyCtrlA))
		return b.String()
	}
	if name, ok := tcell.KeyNames[key]; ok {
		b.WriteString(name)
		return b.String()
	}
	b.WriteString("?")
	return b.String()
}
