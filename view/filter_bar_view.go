package view

import (
	"github.com/boolean-maybe/filterline/component"
	"github.com/boolean-maybe/filterline/config"
	"github.com/boolean-maybe/filterline/controller"
	"github.com/boolean-maybe/filterline/model"
	"github.com/boolean-maybe/filterline/operator"
	"github.com/boolean-maybe/filterline/query"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// maxVisibleOptions caps the popover height
const maxVisibleOptions = 6

// FilterBarView renders the filter bar: committed expressions as chips, the active
// expression as a prompt, and the options popover for the focused slot.
// All state comes from FilterBarController snapshots.
type FilterBarView struct {
	*tview.Flex
	chips   *component.ChipRow
	prompt  *component.CompletionPrompt
	options *component.OptionList

	controller *controller.FilterBarController
	format     tokenFormatter
	listenerID int
	focused    bool
}

// NewFilterBarView creates the bar and renders the current controller state
func NewFilterBarView(ctrl *controller.FilterBarController, registry *operator.Registry, schema model.SchemaLookup) *FilterBarView {
	v := &FilterBarView{
		Flex:       tview.NewFlex().SetDirection(tview.FlexRow),
		chips:      component.NewChipRow().SetPlaceholder("no filters, type a field name"),
		prompt:     component.NewCompletionPrompt(nil),
		options:    component.NewOptionList(maxVisibleOptions),
		controller: ctrl,
		format:     tokenFormatter{registry: registry, schema: schema},
	}
	v.SetBorder(true).SetTitle(" Filter ").SetTitleAlign(tview.AlignLeft)
	v.AddItem(v.chips, 1, 0, false)
	v.AddItem(v.prompt, 1, 0, false)
	v.AddItem(v.options, 0, 0, false)
	v.Refresh()
	return v
}

// Attach subscribes to controller changes
func (v *FilterBarView) Attach() {
	if v.listenerID == 0 {
		v.listenerID = v.controller.AddListener(func(*query.ExpressionList) { v.Refresh() })
	}
	v.Refresh()
}

// Detach removes the controller subscription
func (v *FilterBarView) Detach() {
	if v.listenerID != 0 {
		v.controller.RemoveListener(v.listenerID)
		v.listenerID = 0
	}
}

// SetFocused toggles the focused look and the input cursor
func (v *FilterBarView) SetFocused(focused bool) {
	v.focused = focused
	v.Refresh()
}

// Refresh rebuilds chips, prompt and options from a controller snapshot
func (v *FilterBarView) Refresh() {
	snap := v.controller.Snapshot()
	colors := config.GetColors()

	if v.focused {
		v.SetBorderColor(colors.PromptFocusedBorder)
	} else {
		v.SetBorderColor(colors.PromptBorderColor)
	}

	v.chips.SetChips(v.buildChips(snap))

	active := snap.Draft
	label := "new"
	if snap.EditingIndex != controller.DraftIndex && snap.EditingIndex < len(snap.Contexts) {
		active = snap.Contexts[snap.EditingIndex]
		label = "edit"
	}

	tokens := make([]component.PromptToken, active.Values.Len())
	for i := range tokens {
		text := v.format.slotText(active.Values, i)
		if text == "" {
			tokens[i] = component.PromptToken{Text: slotPlaceholders[i], Pending: true}
			continue
		}
		tokens[i] = component.PromptToken{Text: text}
	}

	editing := v.focused && active.State == model.StateEditing && active.Focused
	focus := -1
	if editing {
		focus = active.FocusTarget
	}

	labels := make([]string, len(snap.Options))
	for i, o := range snap.Options {
		labels[i] = o.Label
	}

	v.prompt.SetLabel(label+" ›").
		SetTokens(tokens, focus).
		SetWords(labels).
		SetText(snap.Buffer).
		ShowCursor(editing)

	if editing {
		v.options.SetOptions(labels, snap.OptionIndex)
	} else {
		v.options.SetOptions(nil, -1)
	}
}

// buildChips renders one chip per committed expression; the one being edited is highlighted
func (v *FilterBarView) buildChips(snap controller.FilterBarSnapshot) []component.Chip {
	colors := config.GetColors()
	items := snap.Items.Items()
	chips := make([]component.Chip, 0, len(items))

	for i, e := range items {
		chip := component.Chip{Text: v.format.chipText(e.Tokens), Fg: colors.ChipForeground, Bg: colors.ChipBackground}
		if i == snap.EditingIndex && i < len(snap.Contexts) {
			ctx := snap.Contexts[i]
			switch {
			case v.focused && ctx.State == model.StateEditing:
				chip.Fg, chip.Bg = colors.ChipActiveForeground, colors.ChipActiveBackground
			default:
				chip.Fg, chip.Bg = colors.ChipPreviewForeground, colors.ChipPreviewBackground
			}
		}
		chips = append(chips, chip)
	}
	return chips
}

// Height returns the rows the bar needs at the given outer width
func (v *FilterBarView) Height(width int) int {
	return 2 + v.chips.LineCount(width-2) + 1 + v.options.Height()
}

// Draw sizes the chip row and popover to their content before drawing
func (v *FilterBarView) Draw(screen tcell.Screen) {
	_, _, width, _ := v.GetInnerRect()
	v.ResizeItem(v.chips, v.chips.LineCount(width), 0)
	v.ResizeItem(v.options, v.options.Height(), 0)
	v.Flex.Draw(screen)
}

// Chips exposes the rendered chips
func (v *FilterBarView) Chips() []component.Chip {
	return v.chips.GetChips()
}

// Prompt exposes the prompt component
func (v *FilterBarView) Prompt() *component.CompletionPrompt {
	return v.prompt
}

// Options exposes the options popover
func (v *FilterBarView) Options() *component.OptionList {
	return v.options
}
