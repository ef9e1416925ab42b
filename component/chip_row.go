package component

import (
	"github.com/boolean-maybe/filterline/config"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
	"github.com/rivo/tview"
)

// Chip is one pill of the chip row
type Chip struct {
	Text string
	Fg   tcell.Color
	Bg   tcell.Color
}

// ChipRow displays chips separated by a space, wrapping at chip boundaries.
// A chip is never broken in the middle unless it is wider than the row.
type ChipRow struct {
	*tview.Box
	chips       []Chip
	placeholder string
}

// NewChipRow creates an empty chip row
func NewChipRow() *ChipRow {
	box := tview.NewBox()
	box.SetBorder(false)
	return &ChipRow{Box: box}
}

// SetChips replaces the chips to display
func (r *ChipRow) SetChips(chips []Chip) *ChipRow {
	r.chips = chips
	return r
}

// GetChips returns the current chips
func (r *ChipRow) GetChips() []Chip {
	return r.chips
}

// SetPlaceholder sets the text drawn when there are no chips
func (r *ChipRow) SetPlaceholder(text string) *ChipRow {
	r.placeholder = text
	return r
}

// chipLabel pads the chip text so the background reads as a pill
func chipLabel(text string) string {
	return " " + text + " "
}

// Draw renders the chip row
func (r *ChipRow) Draw(screen tcell.Screen) {
	r.DrawForSubclass(screen, r)
	x, y, width, height := r.GetInnerRect()
	if width <= 0 || height <= 0 {
		return
	}

	if len(r.chips) == 0 {
		if r.placeholder != "" {
			style := tcell.StyleDefault.Foreground(config.GetColors().CompletionHintColor)
			drawText(screen, x, y, width, r.placeholder, style)
		}
		return
	}

	for line, chips := range r.WrapChips(width) {
		if line >= height {
			break
		}
		cx := x
		for i, chip := range chips {
			style := tcell.StyleDefault.Foreground(chip.Fg).Background(chip.Bg)
			cx += drawText(screen, cx, y+line, x+width-cx, chipLabel(chip.Text), style)
			if i < len(chips)-1 && cx < x+width {
				cx++ // gap keeps the row background
			}
		}
	}
}

// WrapChips lays the chips out into lines no wider than width
func (r *ChipRow) WrapChips(width int) [][]Chip {
	if width <= 0 {
		return nil
	}

	var lines [][]Chip
	var current []Chip
	used := 0
	for _, chip := range r.chips {
		w := runewidth.StringWidth(chipLabel(chip.Text))
		gap := 0
		if len(current) > 0 {
			gap = 1
		}
		if len(current) > 0 && used+gap+w > width {
			lines = append(lines, current)
			current = nil
			used, gap = 0, 0
		}
		current = append(current, chip)
		used += gap + w
	}
	if len(current) > 0 {
		lines = append(lines, current)
	}
	return lines
}

// LineCount returns how many lines the chips need at width
func (r *ChipRow) LineCount(width int) int {
	if n := len(r.WrapChips(width)); n > 0 {
		return n
	}
	return 1
}

// drawText draws text clipped to maxWidth cells and returns the cells used
func drawText(screen tcell.Screen, x, y, maxWidth int, text string, style tcell.Style) int {
	used := 0
	for _, ch := range text {
		w := runewidth.RuneWidth(ch)
		if w == 0 {
			continue
		}
		if used+w > maxWidth {
			break
		}
		screen.SetContent(x+used, y, ch, nil, style)
		used += w
	}
	return used
}
