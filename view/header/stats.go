package header

import (
	"fmt"
	"strings"

	"github.com/boolean-maybe/filterline/config"
	"github.com/boolean-maybe/filterline/model"

	"github.com/rivo/tview"
)

// maxStats is how many stats fit next to the key hints
const maxStats = HeaderHeight

// StatsWidget displays the header stats as aligned "name: value" lines
type StatsWidget struct {
	*tview.TextView
	width int
}

// NewStatsWidget creates a new stats display widget
func NewStatsWidget() *StatsWidget {
	tv := tview.NewTextView()
	tv.SetDynamicColors(true)
	tv.SetTextAlign(tview.AlignLeft)
	tv.SetWrap(false)
	return &StatsWidget{TextView: tv}
}

// SetStats renders stats in the given order, keeping the first maxStats.
// Returns the visible width of the longest line.
func (sw *StatsWidget) SetStats(stats []model.HeaderStat) int {
	if len(stats) > maxStats {
		stats = stats[:maxStats]
	}
	if len(stats) == 0 {
		sw.SetText("")
		sw.width = 0
		return 0
	}

	// pad after the colon so values line up
	maxNameLen := 0
	for _, s := range stats {
		maxNameLen = max(maxNameLen, len([]rune(s.Name)))
	}

	colors := config.GetColors()
	lines := make([]string, len(stats))
	sw.width = 0
	for i, s := range stats {
		padding := strings.Repeat(" ", maxNameLen-len([]rune(s.Name)))
		value := tview.Escape(s.Value)
		lines[i] = fmt.Sprintf("%s%s:%s%s %s", colors.HeaderInfoLabel, s.Name, colors.HeaderInfoValue, padding, value)
		sw.width = max(sw.width, maxNameLen+2+len([]rune(s.Value)))
	}

	sw.SetText(strings.Join(lines, "\n"))
	return sw.width
}

// GetWidth returns the width of the rendered stats
func (sw *StatsWidget) GetWidth() int {
	return sw.width
}
