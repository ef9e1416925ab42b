package component

import (
	"strings"

	"github.com/boolean-maybe/filterline/config"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// PromptToken is one slot of the expression being edited
type PromptToken struct {
	Text    string
	Pending bool // placeholder for a slot that has no value yet
}

// CompletionPrompt shows the tokens of the active expression with the input buffer
// in the focused slot. When the buffer is a prefix of exactly one word from the
// word list, the rest of that word is drawn as a greyed completion hint.
type CompletionPrompt struct {
	*tview.Box
	label       string
	tokens      []PromptToken
	focus       int // -1 when no slot is focused
	text        string
	words       []string
	currentHint string
	showCursor  bool
	hintColor   tcell.Color
}

// NewCompletionPrompt creates a prompt with the given word list
func NewCompletionPrompt(words []string) *CompletionPrompt {
	colors := config.GetColors()
	return &CompletionPrompt{
		Box:       tview.NewBox(),
		words:     words,
		focus:     -1,
		hintColor: colors.CompletionHintColor,
	}
}

// SetLabel sets the label displayed before the tokens
func (cp *CompletionPrompt) SetLabel(label string) *CompletionPrompt {
	cp.label = label
	return cp
}

// SetHintColor sets the color for the completion hint text
func (cp *CompletionPrompt) SetHintColor(color tcell.Color) *CompletionPrompt {
	cp.hintColor = color
	return cp
}

// SetTokens sets the slot tokens and which one holds the input
func (cp *CompletionPrompt) SetTokens(tokens []PromptToken, focus int) *CompletionPrompt {
	cp.tokens = tokens
	cp.focus = focus
	return cp
}

// SetText sets the input buffer and recalculates the hint
func (cp *CompletionPrompt) SetText(text string) *CompletionPrompt {
	cp.text = text
	cp.updateHint()
	return cp
}

// SetWords replaces the completion candidates
func (cp *CompletionPrompt) SetWords(words []string) *CompletionPrompt {
	cp.words = words
	cp.updateHint()
	return cp
}

// ShowCursor toggles the input cursor
func (cp *CompletionPrompt) ShowCursor(show bool) *CompletionPrompt {
	cp.showCursor = show
	return cp
}

// GetText returns the input buffer
func (cp *CompletionPrompt) GetText() string {
	return cp.text
}

// GetHint returns the current completion hint
func (cp *CompletionPrompt) GetHint() string {
	return cp.currentHint
}

// Clear clears the input text and hint
func (cp *CompletionPrompt) Clear() *CompletionPrompt {
	cp.text = ""
	cp.currentHint = ""
	return cp
}

func (cp *CompletionPrompt) updateHint() {
	cp.currentHint = CompletionHint(cp.text, cp.words)
}

// CompletionHint returns the remainder of the single word that text prefixes.
// Matching is case-insensitive; the hint keeps the word's original case.
func CompletionHint(text string, words []string) string {
	if text == "" {
		return ""
	}

	textLower := strings.ToLower(text)
	var matches []string
	for _, word := range words {
		if strings.HasPrefix(strings.ToLower(word), textLower) {
			matches = append(matches, word)
		}
	}

	if len(matches) != 1 || len(matches[0]) <= len(text) {
		return ""
	}
	return matches[0][len(text):]
}

// Draw renders the label, the tokens, the buffer with its hint, and the cursor
func (cp *CompletionPrompt) Draw(screen tcell.Screen) {
	cp.DrawForSubclass(screen, cp)
	x, y, width, height := cp.GetInnerRect()
	if width <= 0 || height <= 0 {
		return
	}
	colors := config.GetColors()
	right := x + width

	cx := x
	if cp.label != "" {
		cx += drawText(screen, cx, y, right-cx, cp.label+" ", tcell.StyleDefault.Foreground(colors.PromptLabelColor))
	}

	for i, tok := range cp.tokens {
		if cx >= right {
			return
		}
		if i > 0 {
			cx++
		}

		if i != cp.focus {
			color := colors.PromptTokenColor
			if tok.Pending {
				color = colors.PromptPendingColor
			}
			cx += drawText(screen, cx, y, right-cx, tok.Text, tcell.StyleDefault.Foreground(color))
			continue
		}

		cx += drawText(screen, cx, y, right-cx, cp.text, tcell.StyleDefault.Foreground(colors.PromptTextColor).Underline(true))
		if cp.showCursor && cx < right {
			screen.SetContent(cx, y, ' ', nil, tcell.StyleDefault.Reverse(true))
			cx++
		}
		switch {
		case cp.currentHint != "":
			cx += drawText(screen, cx, y, right-cx, cp.currentHint, tcell.StyleDefault.Foreground(cp.hintColor))
		case cp.text == "":
			// an empty buffer shows what the slot currently holds
			cx += drawText(screen, cx, y, right-cx, tok.Text, tcell.StyleDefault.Foreground(cp.hintColor))
		}
	}
}
