package config

// Color and style definitions for the UI: tcell colors and tview color tags.

import (
	"github.com/gdamore/tcell/v2"
)

// ColorConfig holds all color and style definitions per view
type ColorConfig struct {
	// Filter bar chips
	ChipForeground        tcell.Color
	ChipBackground        tcell.Color
	ChipActiveForeground  tcell.Color
	ChipActiveBackground  tcell.Color
	ChipPreviewForeground tcell.Color
	ChipPreviewBackground tcell.Color

	// Filter bar prompt
	PromptLabelColor    tcell.Color
	PromptTokenColor    tcell.Color
	PromptTextColor     tcell.Color
	PromptPendingColor  tcell.Color // unfilled slots after the focused one
	PromptBorderColor   tcell.Color
	PromptFocusedBorder tcell.Color
	CompletionHintColor tcell.Color

	// Options popover
	OptionTextColor        tcell.Color
	OptionHighlightText    tcell.Color
	OptionHighlightBack    tcell.Color
	OptionBackgroundColor  tcell.Color
	OptionEllipsisColor    tcell.Color
	OptionBorderColor      tcell.Color
	OptionBorderTitleColor tcell.Color

	// Results table
	ResultsHeaderColor     tcell.Color
	ResultsCellColor       tcell.Color
	ResultsMissingColor    tcell.Color
	ResultsSelectedText    tcell.Color
	ResultsSelectedBack    tcell.Color
	ResultsEmptyColor      string // tview color string like "[#808080]"
	ResultsBorderColor     tcell.Color
	ResultsFocusedBorder   tcell.Color
	SavedViewsNameColor    string // tview color string like "[yellow]"
	SavedViewsFilterColor  string // tview color string like "[#8c92ac]"
	SavedViewsLoadedMarker string // tview color string like "[green]"

	// Header view colors
	HeaderInfoLabel string // tview color string like "[orange]"
	HeaderInfoValue string // tview color string like "[white]"

	// Header context help action colors
	HeaderActionGlobalKeyColor   string // tview color string for global action keys
	HeaderActionGlobalLabelColor string // tview color string for global action labels
	HeaderActionViewKeyColor     string // tview color string for view action keys
	HeaderActionViewLabelColor   string // tview color string for view action labels
}

// DefaultColors returns the default color configuration
func DefaultColors() *ColorConfig {
	return &ColorConfig{
		// Chips
		ChipForeground:        tcell.NewRGBColor(180, 200, 220), // light blue-gray
		ChipBackground:        tcell.NewRGBColor(40, 60, 100),   // dark blue
		ChipActiveForeground:  tcell.ColorBlack,
		ChipActiveBackground:  tcell.ColorYellow,
		ChipPreviewForeground: tcell.PaletteColor(117), // Light Blue (ANSI 117)
		ChipPreviewBackground: tcell.PaletteColor(24),

		// Prompt
		PromptLabelColor:    tcell.ColorOrange,
		PromptTokenColor:    tcell.NewRGBColor(140, 146, 172),
		PromptTextColor:     tcell.ColorWhite,
		PromptPendingColor:  tcell.NewRGBColor(96, 96, 96),
		PromptBorderColor:   tcell.ColorGray,
		PromptFocusedBorder: tcell.ColorYellow,
		CompletionHintColor: tcell.NewRGBColor(128, 128, 128), // Medium gray for hint text

		// Options popover
		OptionTextColor:        tcell.NewRGBColor(200, 200, 200),
		OptionHighlightText:    tcell.PaletteColor(117),
		OptionHighlightBack:    tcell.PaletteColor(33), // Blue (ANSI 33)
		OptionBackgroundColor:  tcell.ColorDefault,
		OptionEllipsisColor:    tcell.NewRGBColor(96, 96, 96),
		OptionBorderColor:      tcell.ColorGray,
		OptionBorderTitleColor: tcell.PaletteColor(153), // Sky Blue (ANSI 153)

		// Results
		ResultsHeaderColor:     tcell.PaletteColor(153),
		ResultsCellColor:       tcell.NewRGBColor(184, 184, 184),
		ResultsMissingColor:    tcell.NewRGBColor(96, 96, 96),
		ResultsSelectedText:    tcell.PaletteColor(117),
		ResultsSelectedBack:    tcell.PaletteColor(33),
		ResultsEmptyColor:      "[#808080]",
		ResultsBorderColor:     tcell.ColorGray,
		ResultsFocusedBorder:   tcell.ColorYellow,
		SavedViewsNameColor:    "[yellow]",
		SavedViewsFilterColor:  "[#8c92ac]",
		SavedViewsLoadedMarker: "[green]",

		// Header
		HeaderInfoLabel: "[orange]",
		HeaderInfoValue: "[#cccccc]",

		// Header context help actions
		HeaderActionGlobalKeyColor:   "#ffff00", // yellow for global actions
		HeaderActionGlobalLabelColor: "#ffffff", // white for global action labels
		HeaderActionViewKeyColor:     "#5fafff", // cyan for view-specific actions
		HeaderActionViewLabelColor:   "#808080", // gray for view-specific labels
	}
}

var globalColors *ColorConfig
var colorsInitialized bool

// GetColors returns the global color configuration with theme-aware overrides
func GetColors() *ColorConfig {
	if !colorsInitialized {
		globalColors = DefaultColors()
		if GetEffectiveTheme() == "light" {
			globalColors.PromptTextColor = tcell.ColorBlack
			globalColors.OptionTextColor = tcell.ColorBlack
			globalColors.ResultsCellColor = tcell.ColorBlack
			globalColors.HeaderActionGlobalLabelColor = "#000000"
		}
		colorsInitialized = true
	}
	return globalColors
}

// SetColors sets a custom color configuration
func SetColors(colors *ColorConfig) {
	globalColors = colors
	colorsInitialized = colors != nil
}
