package component

import (
	"fmt"

	"github.com/boolean-maybe/filterline/config"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// OptionList is the options popover under the filter bar.
// Index -1 means free-form input with nothing highlighted.
type OptionList struct {
	*tview.Box
	options   []string
	index     int
	offset    int // first visible option
	maxHeight int
}

// NewOptionList creates a popover showing at most maxHeight options at a time
func NewOptionList(maxHeight int) *OptionList {
	colors := config.GetColors()
	box := tview.NewBox()
	box.SetBorder(true).
		SetBorderColor(colors.OptionBorderColor).
		SetTitleColor(colors.OptionBorderTitleColor).
		SetTitleAlign(tview.AlignLeft)
	if maxHeight < 1 {
		maxHeight = 1
	}
	return &OptionList{Box: box, index: -1, maxHeight: maxHeight}
}

// SetOptions replaces the options and the highlighted index
func (l *OptionList) SetOptions(options []string, index int) *OptionList {
	l.options = options
	if index < -1 || index >= len(options) {
		index = -1
	}
	l.index = index
	l.offset = l.scrollFor(l.maxHeight)
	return l
}

// GetOptions returns the current options
func (l *OptionList) GetOptions() []string {
	return l.options
}

// GetIndex returns the highlighted index, -1 when none
func (l *OptionList) GetIndex() int {
	return l.index
}

// Height returns the rows the popover needs including its border, 0 when empty
func (l *OptionList) Height() int {
	if len(l.options) == 0 {
		return 0
	}
	return min(len(l.options), l.maxHeight) + 2
}

// VisibleRange returns the half-open range of options shown in rows lines
func (l *OptionList) VisibleRange(rows int) (int, int) {
	if rows <= 0 {
		return 0, 0
	}
	start := l.scrollFor(rows)
	return start, min(start+rows, len(l.options))
}

// scrollFor keeps the highlighted option inside a window of rows lines
func (l *OptionList) scrollFor(rows int) int {
	start := l.offset
	if l.index >= 0 {
		if l.index < start {
			start = l.index
		}
		if l.index >= start+rows {
			start = l.index - rows + 1
		}
	}
	if start > len(l.options)-rows {
		start = len(l.options) - rows
	}
	return max(start, 0)
}

// Draw renders the visible options with the highlight
func (l *OptionList) Draw(screen tcell.Screen) {
	if len(l.options) == 0 {
		return
	}
	if len(l.options) > l.maxHeight {
		l.SetTitle(fmt.Sprintf(" %d options ", len(l.options)))
	} else {
		l.SetTitle("")
	}
	l.DrawForSubclass(screen, l)

	x, y, width, height := l.GetInnerRect()
	if width <= 0 || height <= 0 {
		return
	}
	colors := config.GetColors()
	start, end := l.VisibleRange(height)
	l.offset = start

	for row, i := 0, start; i < end; row, i = row+1, i+1 {
		style := tcell.StyleDefault.Foreground(colors.OptionTextColor).Background(colors.OptionBackgroundColor)
		if i == l.index {
			style = tcell.StyleDefault.Foreground(colors.OptionHighlightText).Background(colors.OptionHighlightBack)
			for cx := x; cx < x+width; cx++ {
				screen.SetContent(cx, y+row, ' ', nil, style)
			}
		}
		drawText(screen, x+1, y+row, width-1, l.options[i], style)
	}

	// more options hidden below
	if end < len(l.options) {
		drawText(screen, x+width-1, y+height-1, 1, "…", tcell.StyleDefault.Foreground(colors.OptionEllipsisColor))
	}
}
