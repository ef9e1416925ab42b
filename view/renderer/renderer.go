package renderer

import (
	"fmt"

	"github.com/boolean-maybe/filterline/config"

	"github.com/charmbracelet/glamour"
	"github.com/rivo/tview"
)

// MarkdownRenderer turns markdown into tview-tagged text
type MarkdownRenderer interface {
	RenderContent(markdown string) (string, error)
}

// GlamourRenderer renders markdown with glamour and translates its ANSI output to tview tags
type GlamourRenderer struct {
	term *glamour.TermRenderer
}

// NewGlamourRenderer creates a renderer styled for the effective terminal theme
func NewGlamourRenderer() (*GlamourRenderer, error) {
	term, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(config.GetEffectiveTheme()),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return nil, fmt.Errorf("creating glamour renderer: %w", err)
	}
	return &GlamourRenderer{term: term}, nil
}

// RenderContent renders markdown
func (r *GlamourRenderer) RenderContent(markdown string) (string, error) {
	out, err := r.term.Render(markdown)
	if err != nil {
		return "", err
	}
	return tview.TranslateANSI(out), nil
}

// FallbackRenderer shows the markdown source as plain text
type FallbackRenderer struct{}

// RenderContent escapes markdown for display
func (FallbackRenderer) RenderContent(markdown string) (string, error) {
	return tview.Escape(markdown), nil
}

// New returns a glamour renderer, or the plain text fallback when glamour cannot start
func New() MarkdownRenderer {
	r, err := NewGlamourRenderer()
	if err != nil {
		return FallbackRenderer{}
	}
	return r
}
