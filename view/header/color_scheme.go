package header

import "github.com/boolean-maybe/filterline/config"

// ColorScheme defines color pairs for different action categories
type ColorScheme struct {
	KeyColor   string
	LabelColor string
}

// getColorScheme returns the key and label colors of an action section
func getColorScheme(colorType int) ColorScheme {
	colors := config.GetColors()

	if colorType == colorTypeView {
		return ColorScheme{
			KeyColor:   colors.HeaderActionViewKeyColor,
			LabelColor: colors.HeaderActionViewLabelColor,
		}
	}
	return ColorScheme{
		KeyColor:   colors.HeaderActionGlobalKeyColor,
		LabelColor: colors.HeaderActionGlobalLabelColor,
	}
}
