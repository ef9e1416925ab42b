package header

import (
	"fmt"
	"strings"

	"github.com/boolean-maybe/filterline/controller"
	"github.com/boolean-maybe/filterline/model"

	"github.com/rivo/tview"
)

// cellData holds data for a single cell in the action grid
type cellData struct {
	key       string
	label     string
	keyLen    int
	labelLen  int
	colorType int
}

const (
	colorTypeGlobal = 0
	colorTypeView   = 1
)

// ContextHelpWidget displays keyboard shortcuts as a column-major grid:
// global actions first, then the actions of the current view.
type ContextHelpWidget struct {
	*tview.TextView
	width int // visible width of the rendered grid
}

// NewContextHelpWidget creates a new context help display widget
func NewContextHelpWidget() *ContextHelpWidget {
	tv := tview.NewTextView()
	tv.SetDynamicColors(true)
	tv.SetTextAlign(tview.AlignLeft)
	tv.SetWrap(false)

	return &ContextHelpWidget{TextView: tv}
}

// GetWidth returns the current calculated width of the content
func (chw *ContextHelpWidget) GetWidth() int {
	return chw.width
}

// SetActionsFromModel renders the hints and returns the resulting width
func (chw *ContextHelpWidget) SetActionsFromModel(globalActions, viewActions []model.HeaderAction) int {
	globals := headerActions(globalActions, nil)
	globalIDs := make(map[controller.ActionID]bool, len(globals))
	for _, a := range globals {
		globalIDs[a.ID] = true
	}
	views := headerActions(viewActions, globalIDs)

	lines := renderActionsGrid(globals, views, HeaderHeight)
	if len(lines) == 0 {
		chw.SetText("")
		chw.width = 0
		return 0
	}

	chw.SetText(" " + strings.Join(lines, "\n "))
	chw.width = calculateMaxLineWidth(lines) + 1
	return chw.width
}

// Primitive returns the underlying tview primitive
func (chw *ContextHelpWidget) Primitive() tview.Primitive {
	return chw.TextView
}

// renderActionsGrid lays the two sections out column by column, numRows high.
// The global section is padded to full columns so view actions start a new column.
func renderActionsGrid(globalActions, viewActions []controller.Action, numRows int) []string {
	globalCols := columnsFor(len(globalActions), numRows)
	viewCols := columnsFor(len(viewActions), numRows)
	totalCols := globalCols + viewCols
	if totalCols == 0 {
		return nil
	}

	grid := make([][]cellData, numRows)
	for i := range grid {
		grid[i] = make([]cellData, totalCols)
	}
	fillGridSection(grid, globalActions, 0, colorTypeGlobal)
	fillGridSection(grid, viewActions, globalCols, colorTypeView)

	keyWidths := columnWidths(grid, totalCols, func(c cellData) int { return c.keyLen })
	labelWidths := columnWidths(grid, totalCols, func(c cellData) int { return c.labelLen })

	lines := make([]string, numRows)
	for row := range grid {
		lines[row] = buildGridRow(grid[row], keyWidths, labelWidths)
	}
	return lines
}

func columnsFor(n, numRows int) int {
	return (n + numRows - 1) / numRows
}

func fillGridSection(grid [][]cellData, actions []controller.Action, colOffset, colorType int) {
	numRows := len(grid)
	for i, action := range actions {
		key := formatKeyBinding(action.Key, action.Rune, action.Modifier)
		grid[i%numRows][colOffset+i/numRows] = cellData{
			key:       key,
			label:     action.Label,
			keyLen:    len([]rune(key)) + 2, // angle brackets
			labelLen:  len([]rune(action.Label)),
			colorType: colorType,
		}
	}
}

func columnWidths(grid [][]cellData, numCols int, width func(cellData) int) []int {
	widths := make([]int, numCols)
	for _, row := range grid {
		for col := 0; col < numCols; col++ {
			widths[col] = max(widths[col], width(row[col]))
		}
	}
	return widths
}

func buildGridRow(rowData []cellData, keyWidths, labelWidths []int) string {
	var line strings.Builder
	last := len(rowData) - 1

	for col, cell := range rowData {
		colWidth := keyWidths[col] + 1 + labelWidths[col] + HeaderColumnSpacing
		if cell.key == "" {
			if col < last {
				line.WriteString(strings.Repeat(" ", colWidth))
			}
			continue
		}

		scheme := getColorScheme(cell.colorType)
		line.WriteString(fmt.Sprintf("[%s]<%s>[%s]", scheme.KeyColor, cell.key, scheme.LabelColor))
		line.WriteString(strings.Repeat(" ", keyWidths[col]-cell.keyLen+1))
		line.WriteString(cell.label)
		if col < last {
			line.WriteString(strings.Repeat(" ", labelWidths[col]-cell.labelLen+HeaderColumnSpacing))
		}
	}
	return line.String()
}

// calculateMaxLineWidth finds the maximum visible width among all lines
func calculateMaxLineWidth(lines []string) int {
	maxWidth := 0
	for _, line := range lines {
		maxWidth = max(maxWidth, visibleWidth(line))
	}
	return maxWidth
}

// visibleWidth counts the runes of s outside tview color tags
func visibleWidth(s string) int {
	return len([]rune(stripTags(s)))
}

func stripTags(s string) string {
	var b strings.Builder
	inTag := false
	for _, r := range s {
		switch {
		case r == '[':
			inTag = true
		case inTag && r == ']':
			inTag = false
		case !inTag:
			b.WriteRune(r)
		}
	}
	return b.String()
}
