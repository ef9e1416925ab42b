package view

import (
	"log/slog"

	"github.com/boolean-maybe/filterline/config"
	"github.com/boolean-maybe/filterline/controller"
	"github.com/boolean-maybe/filterline/model"
	"github.com/boolean-maybe/filterline/view/renderer"

	"github.com/rivo/tview"
)

// HelpView shows the keybinding reference
type HelpView struct {
	text     *tview.TextView
	registry *controller.ActionRegistry
}

// NewHelpView renders the help markdown
func NewHelpView(md renderer.MarkdownRenderer) *HelpView {
	text := tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(true).
		SetWrap(true).
		SetTextColor(config.GetContentTextColor())
	text.SetBackgroundColor(config.GetContentBackgroundColor())
	text.SetBorder(true).SetTitle(" Help ").SetTitleAlign(tview.AlignLeft)

	content, err := md.RenderContent(config.HelpMarkdown())
	if err != nil {
		slog.Warn("failed to render help", "error", err)
		content, _ = renderer.FallbackRenderer{}.RenderContent(config.HelpMarkdown())
	}
	text.SetText(content)

	return &HelpView{text: text, registry: controller.HelpViewActions()}
}

// GetPrimitive returns the root tview primitive
func (hv *HelpView) GetPrimitive() tview.Primitive {
	return hv.text
}

// GetActionRegistry returns the view's action registry
func (hv *HelpView) GetActionRegistry() *controller.ActionRegistry {
	return hv.registry
}

// GetViewID returns the view identifier
func (hv *HelpView) GetViewID() model.ViewID {
	return model.HelpViewID
}

func (hv *HelpView) OnFocus() {}

func (hv *HelpView) OnBlur() {}
