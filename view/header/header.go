package header

import (
	"github.com/boolean-maybe/filterline/model"

	"github.com/rivo/tview"
)

// HeaderHeight is the number of rows of the header
const HeaderHeight = 3

// HeaderColumnSpacing separates the columns of the key hints grid
const HeaderColumnSpacing = 2

// HeaderWidget shows stats on the left and key hints on the right.
// It re-renders whenever HeaderConfig changes.
type HeaderWidget struct {
	*tview.Flex
	stats       *StatsWidget
	contextHelp *ContextHelpWidget

	headerConfig *model.HeaderConfig
	listenerID   int
}

// NewHeaderWidget creates a header bound to headerConfig
func NewHeaderWidget(headerConfig *model.HeaderConfig) *HeaderWidget {
	hw := &HeaderWidget{
		Flex:         tview.NewFlex().SetDirection(tview.FlexColumn),
		stats:        NewStatsWidget(),
		contextHelp:  NewContextHelpWidget(),
		headerConfig: headerConfig,
	}
	hw.listenerID = headerConfig.AddListener(hw.refresh)
	hw.refresh()
	return hw
}

// refresh rebuilds both columns from the current header config
func (hw *HeaderWidget) refresh() {
	statsWidth := hw.stats.SetStats(hw.headerConfig.GetStats())
	helpWidth := hw.contextHelp.SetActionsFromModel(
		hw.headerConfig.GetGlobalActions(),
		hw.headerConfig.GetViewActions(),
	)

	hw.Clear()
	if statsWidth > 0 {
		hw.AddItem(hw.stats, statsWidth+1, 0, false)
		hw.AddItem(tview.NewBox(), HeaderColumnSpacing, 0, false)
	}
	hw.AddItem(hw.contextHelp, helpWidth, 0, false)
	hw.AddItem(tview.NewBox(), 0, 1, false)
}

// Cleanup removes the header config listener
func (hw *HeaderWidget) Cleanup() {
	hw.headerConfig.RemoveListener(hw.listenerID)
}
