package view

import (
	"fmt"

	"github.com/boolean-maybe/filterline/config"
	"github.com/boolean-maybe/filterline/operator"
	"github.com/boolean-maybe/filterline/store"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// missingCell marks a column the record does not carry
const missingCell = "·"

// ResultsView is the table of records matching the committed filters
type ResultsView struct {
	*tview.Table
	records *store.RecordStore
	focused bool
}

// NewResultsView creates the results table over the record store
func NewResultsView(records *store.RecordStore) *ResultsView {
	colors := config.GetColors()
	table := tview.NewTable().
		SetFixed(1, 0).
		SetSelectable(true, false).
		SetSelectedStyle(tcell.StyleDefault.Foreground(colors.ResultsSelectedText).Background(colors.ResultsSelectedBack))
	table.SetBorder(true).SetTitleAlign(tview.AlignLeft)

	rv := &ResultsView{Table: table, records: records}
	rv.Refresh()
	return rv
}

// SetFocused toggles the focused border
func (rv *ResultsView) SetFocused(focused bool) {
	rv.focused = focused
	colors := config.GetColors()
	if focused {
		rv.SetBorderColor(colors.ResultsFocusedBorder)
	} else {
		rv.SetBorderColor(colors.ResultsBorderColor)
	}
}

// Refresh rebuilds the table from the matched records
func (rv *ResultsView) Refresh() {
	colors := config.GetColors()
	rv.Clear()
	rv.SetFocused(rv.focused)

	if err := rv.records.Err(); err != nil {
		rv.SetTitle(fmt.Sprintf(" Results: %s ", tview.Escape(err.Error())))
		return
	}

	matched := rv.records.Matched()
	rv.SetTitle(fmt.Sprintf(" Results (%d/%d) ", len(matched), len(rv.records.Rows())))

	columns := rv.records.Columns()
	for c, name := range columns {
		rv.SetCell(0, c, tview.NewTableCell(name).
			SetTextColor(colors.ResultsHeaderColor).
			SetAttributes(tcell.AttrBold).
			SetSelectable(false).
			SetExpansion(1))
	}

	if len(matched) == 0 {
		rv.SetCell(1, 0, tview.NewTableCell(colors.ResultsEmptyColor+"no matching records").SetSelectable(false))
		return
	}

	for r, row := range matched {
		for c, name := range columns {
			rv.SetCell(r+1, c, resultCell(row, name))
		}
	}
	rv.Select(1, 0)
}

func resultCell(row operator.Row, column string) *tview.TableCell {
	colors := config.GetColors()
	v, ok := row.Lookup(column)
	if !ok || v == nil {
		return tview.NewTableCell(missingCell).SetTextColor(colors.ResultsMissingColor)
	}
	return tview.NewTableCell(tview.Escape(formatDatum(v))).SetTextColor(colors.ResultsCellColor)
}
