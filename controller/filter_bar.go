package controller

import (
	"errors"
	"log/slog"
	"strings"
	"sync"

	"github.com/boolean-maybe/filterline/model"
	"github.com/boolean-maybe/filterline/operator"
	"github.com/boolean-maybe/filterline/query"

	"github.com/gdamore/tcell/v2"
)

// FilterBarController owns the expression list and one edit machine per expression.
// The trailing "new expression" slot is the draft machine, addressed by editingIndex -1.
// Only the machine at editingIndex is ever focused.

// DraftIndex addresses the trailing new-expression slot
const DraftIndex = -1

// Option is one entry of the options popover
type Option struct {
	Label string
	Value any
}

// FilterBarListener receives the expression list after every change.
// The pointer changes only when the list itself changed.
type FilterBarListener func(items *query.ExpressionList)

// FilterBarSnapshot is an immutable copy of the bar state for rendering
type FilterBarSnapshot struct {
	Items        *query.ExpressionList
	Contexts     []model.Context // machine context per item
	Draft        model.Context
	EditingIndex int
	Buffer       string
	Options      []Option
	OptionIndex  int // -1 when nothing is highlighted
}

// FilterBarController handles keyboard input for the filter bar
type FilterBarController struct {
	mu           sync.Mutex
	registry     *operator.Registry
	schema       model.SchemaLookup
	translator   *query.Translator
	actions      *ActionRegistry
	items        *query.ExpressionList
	machines     map[string]*model.FilterMachine // keyed by expression ID
	draft        *model.FilterMachine
	editingIndex int
	buffer       string
	optionIndex  int

	listeners      map[int]FilterBarListener
	nextListenerID int
}

// NewFilterBarController creates a controller with an empty list and a blank draft
func NewFilterBarController(registry *operator.Registry, schema model.SchemaLookup) *FilterBarController {
	return &FilterBarController{
		registry:       registry,
		schema:         schema,
		translator:     query.NewTranslator(registry, schema),
		actions:        FilterBarActions(),
		items:          query.NewExpressionList(),
		machines:       make(map[string]*model.FilterMachine),
		draft:          model.NewFilterMachine(nil, registry),
		editingIndex:   DraftIndex,
		optionIndex:    -1,
		listeners:      make(map[int]FilterBarListener),
		nextListenerID: 1, // Start at 1 to avoid conflict with zero-value sentinel
	}
}

// GetActionRegistry returns the filter bar keyboard policy
func (c *FilterBarController) GetActionRegistry() *ActionRegistry {
	return c.actions
}

// Items returns the current expression list
func (c *FilterBarController) Items() *query.ExpressionList {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.items
}

// Descriptors returns the committed expressions in backend form
func (c *FilterBarController) Descriptors() []query.Descriptor {
	return c.Items().Descriptors()
}

// Snapshot returns the render state of the bar
func (c *FilterBarController) Snapshot() FilterBarSnapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	contexts := make([]model.Context, 0, c.items.Len())
	for _, e := range c.items.Items() {
		contexts = append(contexts, c.machineLocked(e).Context())
	}
	return FilterBarSnapshot{
		Items:        c.items,
		Contexts:     contexts,
		Draft:        c.draft.Context(),
		EditingIndex: c.editingIndex,
		Buffer:       c.buffer,
		Options:      c.optionsLocked(),
		OptionIndex:  c.optionIndex,
	}
}

// EditingIndex returns the index of the active expression, or DraftIndex
func (c *FilterBarController) EditingIndex() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.editingIndex
}

// IsEditing reports whether expression i currently holds edit focus
func (c *FilterBarController) IsEditing(i int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.editingIndex == i && c.activeLocked().Context().Focused
}

// Buffer returns the transient input text
func (c *FilterBarController) Buffer() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.buffer
}

// Options lists the popover options for the focused slot, filtered by the buffer
func (c *FilterBarController) Options() []Option {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.optionsLocked()
}

// CreateItem appends tokens as a new expression and re-validates the list
func (c *FilterBarController) CreateItem(tokens model.TokenSet) {
	c.mu.Lock()
	c.createItemLocked(tokens)
	c.unlockAndNotify()
}

// UpdateItem replaces expression index, or removes it when tokens is nil.
// The list is re-validated and editing moves to the draft.
func (c *FilterBarController) UpdateItem(index int, tokens model.TokenSet) {
	c.mu.Lock()
	c.updateItemLocked(index, tokens)
	c.unlockAndNotify()
}

// RemoveItem splices out expression index. blur leaves edit mode entirely.
func (c *FilterBarController) RemoveItem(index int, blur bool) {
	c.mu.Lock()
	c.removeItemLocked(index, blur)
	c.unlockAndNotify()
}

// Submit commits the active token set when it is complete
func (c *FilterBarController) Submit() bool {
	c.mu.Lock()
	ok := c.submitLocked()
	c.unlockAndNotify()
	return ok
}

// Focus puts the active expression into edit mode where the user left off
func (c *FilterBarController) Focus() {
	c.mu.Lock()
	c.ensureEditingLocked()
	c.unlockAndNotify()
}

// Blur drops edit focus without touching any values
func (c *FilterBarController) Blur() {
	c.mu.Lock()
	c.activeLocked().Send(model.Blur{})
	c.clearBufferLocked()
	c.unlockAndNotify()
}

// FocusExpression moves edit focus to expression index (DraftIndex for the draft)
func (c *FilterBarController) FocusExpression(index int) bool {
	c.mu.Lock()
	if index != DraftIndex && (index < 0 || index >= c.items.Len()) {
		c.mu.Unlock()
		return false
	}
	c.switchToLocked(index, model.KeepTarget)
	c.unlockAndNotify()
	return true
}

// SelectOption confirms popover option i into the focused slot
func (c *FilterBarController) SelectOption(i int) bool {
	c.mu.Lock()
	c.ensureEditingLocked()
	if i < 0 || i >= len(c.optionsLocked()) {
		c.unlockAndNotify()
		return false
	}
	c.optionIndex = i
	c.confirmLocked()
	c.unlockAndNotify()
	return true
}

// Hydrate replaces the list with expressions decoded from persisted descriptors.
// A descriptor that fails to decode is dropped; the decode errors are returned.
func (c *FilterBarController) Hydrate(descriptors []query.Descriptor) []error {
	var errs []error

	c.mu.Lock()
	c.items = query.NewExpressionList()
	c.machines = make(map[string]*model.FilterMachine)
	for _, d := range descriptors {
		tokens, err := c.translator.FromPersisted(d)
		if err != nil {
			slog.Warn("dropping persisted filter", "filter", d.String(), "error", err)
			errs = append(errs, err)
			continue
		}
		c.createItemLocked(tokens)
	}
	c.editingIndex = DraftIndex
	c.draft.Reinit(nil)
	c.clearBufferLocked()
	slog.Info("filters hydrated", "loaded", c.items.Len(), "dropped", len(errs))
	c.unlockAndNotify()

	return errs
}

// HandleKey applies the keyboard policy to a key event.
// Printable runes go to the input buffer. Returns false for keys the bar does not own.
func (c *FilterBarController) HandleKey(event *tcell.EventKey) bool {
	action := c.actions.Match(event)
	if action == nil {
		if event.Key() != tcell.KeyRune || event.Modifiers()&(tcell.ModCtrl|tcell.ModAlt|tcell.ModMeta) != 0 {
			return false
		}
		c.mu.Lock()
		c.ensureEditingLocked()
		c.buffer += string(event.Rune())
		c.highlightFirstLocked()
		c.unlockAndNotify()
		return true
	}

	if action.ID == ActionToResults {
		// owned by the input router
		return false
	}

	c.mu.Lock()
	handled := c.handleActionLocked(action.ID)
	c.unlockAndNotify()
	return handled
}

func (c *FilterBarController) handleActionLocked(id ActionID) bool {
	if id != ActionReset {
		c.ensureEditingLocked()
	}

	m := c.activeLocked()
	switch id {
	case ActionReset:
		m.Send(model.Reset{Snapshot: m.Origins()})
		c.clearBufferLocked()
	case ActionConfirm:
		c.confirmLocked()
	case ActionRemove:
		c.backspaceLocked()
	case ActionFocusPrev:
		c.moveFocusLocked(-1)
	case ActionFocusNext:
		c.moveFocusLocked(1)
	case ActionOptionPrev:
		c.moveHighlightLocked(-1)
	case ActionOptionNext:
		c.moveHighlightLocked(1)
	case ActionClearActive:
		c.clearActiveLocked()
	default:
		return false
	}
	return true
}

// AddListener registers a callback for list changes.
// returns a listener ID that can be used to remove the listener.
func (c *FilterBarController) AddListener(listener FilterBarListener) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	id := c.nextListenerID
	c.nextListenerID++
	c.listeners[id] = listener
	return id
}

// RemoveListener removes a previously registered listener by ID
func (c *FilterBarController) RemoveListener(id int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.listeners, id)
}

// unlockAndNotify releases the lock and calls listeners outside it
func (c *FilterBarController) unlockAndNotify() {
	items := c.items
	listeners := make([]FilterBarListener, 0, len(c.listeners))
	for _, l := range c.listeners {
		listeners = append(listeners, l)
	}
	c.mu.Unlock()

	for _, l := range listeners {
		l(items)
	}
}

func (c *FilterBarController) activeLocked() *model.FilterMachine {
	if c.editingIndex == DraftIndex {
		return c.draft
	}
	e, ok := c.items.At(c.editingIndex)
	if !ok {
		c.editingIndex = DraftIndex
		return c.draft
	}
	return c.machineLocked(e)
}

func (c *FilterBarController) machineLocked(e query.Expression) *model.FilterMachine {
	m, ok := c.machines[e.ID]
	if !ok {
		m = model.NewFilterMachine(e.Tokens, c.registry)
		c.machines[e.ID] = m
	}
	return m
}

func (c *FilterBarController) ensureEditingLocked() {
	m := c.activeLocked()
	if m.Context().State == model.StatePreview {
		m.Send(model.FocusOnLastEdit{})
	} else if !m.Context().Focused {
		m.Send(model.Focus{Index: model.KeepTarget})
	}
}

func (c *FilterBarController) createItemLocked(tokens model.TokenSet) {
	desc, err := c.translator.ToDescriptor(tokens)
	if err != nil && !errors.Is(err, query.ErrIncomplete) {
		slog.Warn("expression not created", "tokens", tokens.String(), "error", err)
		return
	}

	e := query.Expression{ID: query.NewExpressionID(), Tokens: tokens.Clone(), Descriptor: desc}
	c.items = c.items.Append(e)
	c.revalidateLocked()
	if err == nil {
		slog.Debug("expression created", "id", e.ID, "filter", desc.String())
	}
}

func (c *FilterBarController) updateItemLocked(index int, tokens model.TokenSet) {
	old, ok := c.items.At(index)
	if !ok {
		return
	}

	if tokens == nil {
		c.items = c.items.Remove(index)
		slog.Debug("expression cleared", "id", old.ID)
	} else {
		desc, err := c.translator.ToDescriptor(tokens)
		if err != nil && !errors.Is(err, query.ErrIncomplete) {
			slog.Warn("expression not updated", "id", old.ID, "tokens", tokens.String(), "error", err)
			return
		}
		c.items = c.items.Replace(index, query.Expression{ID: old.ID, Tokens: tokens.Clone(), Descriptor: desc})
		c.machineLocked(old).Reinit(tokens)
		slog.Debug("expression updated", "id", old.ID, "filter", desc.String())
	}

	c.revalidateLocked()
	c.editingIndex = DraftIndex
}

func (c *FilterBarController) removeItemLocked(index int, blur bool) {
	e, ok := c.items.At(index)
	if !ok {
		return
	}
	c.items = c.items.Remove(index)
	delete(c.machines, e.ID)
	if c.editingIndex >= index {
		c.editingIndex--
	}
	c.revalidateLocked()

	next := c.activeLocked()
	if blur {
		next.Send(model.Reset{})
		c.clearBufferLocked()
	} else {
		c.ensureEditingLocked()
	}
}

// revalidateLocked drops every incomplete expression and the machines of removed ones
func (c *FilterBarController) revalidateLocked() {
	c.items = c.items.Filter(func(e query.Expression) bool {
		return e.Tokens.IsComplete(c.registry)
	})

	live := make(map[string]bool, c.items.Len())
	for _, e := range c.items.Items() {
		live[e.ID] = true
	}
	for id := range c.machines {
		if !live[id] {
			delete(c.machines, id)
		}
	}
	if c.editingIndex >= c.items.Len() {
		c.editingIndex = DraftIndex
	}
}

func (c *FilterBarController) submitLocked() bool {
	m := c.activeLocked()
	if !m.IsComplete() {
		return false
	}

	tokens := m.Values()
	if c.editingIndex == DraftIndex {
		c.createItemLocked(tokens)
		c.draft.Reinit(nil)
		c.draft.Send(model.Focus{Index: model.PropertySlot})
	} else {
		c.updateItemLocked(c.editingIndex, tokens)
		c.ensureEditingLocked()
	}
	c.clearBufferLocked()
	return true
}

// confirmLocked writes the highlighted option or the buffer into the focused slot
// and submits when the token set became complete.
func (c *FilterBarController) confirmLocked() {
	m := c.activeLocked()
	ctx := m.Context()
	target := ctx.FocusTarget

	value, ok, err := c.resolveLocked(ctx.Values, target)
	if err != nil {
		slog.Debug("input rejected", "slot", target, "input", c.buffer, "error", err)
		return
	}
	if ok {
		m.Send(model.Confirm{Index: target, Value: value})
		c.clearBufferLocked()
	}

	if c.submitLocked() {
		return
	}
	if !ok {
		if i := m.Values().FirstEmpty(); i >= 0 {
			m.Send(model.FocusTarget{Index: i})
		}
	}
}

// resolveLocked maps the input for slot into a slot value.
// ok is false when there is nothing to confirm.
func (c *FilterBarController) resolveLocked(values model.TokenSet, slot int) (any, bool, error) {
	options := c.optionsLocked()
	text := strings.TrimSpace(c.buffer)

	var picked *Option
	if c.optionIndex >= 0 && c.optionIndex < len(options) {
		picked = &options[c.optionIndex]
	}
	if picked == nil && text == "" {
		return nil, false, nil
	}

	switch slot {
	case model.PropertySlot:
		if picked != nil {
			return picked.Value, true, nil
		}
		field, ok := c.lookupFieldLocked(text)
		if !ok {
			return nil, false, errors.New("unknown field")
		}
		return field.Path, true, nil

	case model.OperatorSlot:
		if picked != nil {
			return picked.Value, true, nil
		}
		id, ok := operator.ParseID(text)
		if !ok {
			return nil, false, operator.ErrUnknownOperator
		}
		if field, ok := c.fieldOfLocked(values); ok && !c.registry.Allows(field.Kind, id) {
			return nil, false, errors.New("operator not allowed for field")
		}
		return id, true, nil

	default:
		field, _ := c.fieldOfLocked(values)
		op, _ := values.Operator()
		if picked != nil {
			text = c.completeValueLocked(op, picked.Label)
		}
		value, err := query.CoerceValue(field.Kind, op, text)
		if err != nil {
			return nil, false, err
		}
		return value, value != nil, nil
	}
}

// completeValueLocked replaces the last comma separated member for set operators
func (c *FilterBarController) completeValueLocked(op operator.ID, label string) string {
	if op != operator.In && op != operator.NotIn {
		return label
	}
	parts := strings.Split(c.buffer, ",")
	parts[len(parts)-1] = label
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return strings.Join(parts, ", ")
}

func (c *FilterBarController) lookupFieldLocked(text string) (model.FieldSchema, bool) {
	if f, ok := c.schema.Field(text); ok {
		return f, true
	}
	for _, f := range c.schema.Fields() {
		if strings.EqualFold(f.Path, text) || strings.EqualFold(f.Label, text) {
			return f, true
		}
	}
	return model.FieldSchema{}, false
}

func (c *FilterBarController) fieldOfLocked(values model.TokenSet) (model.FieldSchema, bool) {
	path, ok := values.Property()
	if !ok {
		return model.FieldSchema{}, false
	}
	return c.schema.Field(path)
}

// optionsLocked lists candidates for the focused slot of the active machine
func (c *FilterBarController) optionsLocked() []Option {
	ctx := c.activeLocked().Context()
	if ctx.State != model.StateEditing {
		return nil
	}

	needle := strings.ToLower(strings.TrimSpace(c.buffer))
	var all []Option

	switch ctx.FocusTarget {
	case model.PropertySlot:
		for _, f := range c.schema.Fields() {
			all = append(all, Option{Label: f.DisplayLabel(), Value: f.Path})
		}
	case model.OperatorSlot:
		field, ok := c.fieldOfLocked(ctx.Values)
		if !ok {
			return nil
		}
		for _, id := range c.registry.OperatorsFor(field.Kind) {
			desc, _ := c.registry.Describe(id)
			all = append(all, Option{Label: desc.Label, Value: id})
		}
	default:
		field, ok := c.fieldOfLocked(ctx.Values)
		if !ok {
			return nil
		}
		if op, _ := ctx.Values.Operator(); op == operator.In || op == operator.NotIn {
			parts := strings.Split(needle, ",")
			needle = strings.TrimSpace(parts[len(parts)-1])
		}
		for _, hint := range field.ValueHints() {
			all = append(all, Option{Label: hint, Value: hint})
		}
	}

	if needle == "" {
		return all
	}
	var out []Option
	for _, o := range all {
		if strings.Contains(strings.ToLower(o.Label), needle) {
			out = append(out, o)
		}
	}
	return out
}

func (c *FilterBarController) highlightFirstLocked() {
	if len(c.optionsLocked()) > 0 {
		c.optionIndex = 0
	} else {
		c.optionIndex = -1
	}
}

// moveHighlightLocked cycles through -1 (free text) and the options
func (c *FilterBarController) moveHighlightLocked(delta int) {
	n := len(c.optionsLocked())
	if n == 0 {
		c.optionIndex = -1
		return
	}
	c.optionIndex += delta
	if c.optionIndex < -1 {
		c.optionIndex = n - 1
	}
	if c.optionIndex >= n {
		c.optionIndex = -1
	}
}

func (c *FilterBarController) clearBufferLocked() {
	c.buffer = ""
	c.optionIndex = -1
}

// backspaceLocked edits the buffer, or backs out one token when the buffer is empty
func (c *FilterBarController) backspaceLocked() {
	if c.buffer != "" {
		runes := []rune(c.buffer)
		c.buffer = string(runes[:len(runes)-1])
		c.highlightFirstLocked()
		if c.buffer == "" {
			c.optionIndex = -1
		}
		return
	}
	c.focusRemoveLocked()
}

func (c *FilterBarController) focusRemoveLocked() {
	m := c.activeLocked()

	if c.editingIndex == DraftIndex && m.Values().IsEmpty() {
		// step back into the last committed expression
		if n := c.items.Len(); n > 0 {
			c.switchToLocked(n-1, model.KeepTarget)
		}
		return
	}

	m.Send(model.Remove{})
	if c.editingIndex != DraftIndex && m.Values().IsEmpty() {
		c.removeItemLocked(c.editingIndex, true)
	}
}

// moveFocusLocked moves the focus target and crosses into the neighbouring expression at the edges
func (c *FilterBarController) moveFocusLocked(delta int) {
	m := c.activeLocked()
	ctx := m.Context()
	target := ctx.FocusTarget + delta

	if target >= 0 && target <= ctx.LastSlot() {
		m.Send(model.FocusTarget{Index: target})
		c.clearBufferLocked()
		return
	}

	n := c.items.Len()
	next := c.editingIndex
	switch {
	case delta < 0 && c.editingIndex == DraftIndex:
		next = n - 1
	case delta < 0:
		next = c.editingIndex - 1
	case c.editingIndex == DraftIndex:
		return
	case c.editingIndex == n-1:
		next = DraftIndex
	default:
		next = c.editingIndex + 1
	}
	if next < DraftIndex || (next == DraftIndex && delta < 0) {
		return
	}

	entry := model.PropertySlot
	if delta < 0 {
		entry = model.ValueSlot // clamped to the last active slot
	}
	c.switchToLocked(next, entry)
}

// switchToLocked leaves the active expression and focuses another one.
// Uncommitted edits of a committed expression are discarded; the draft keeps its tokens.
func (c *FilterBarController) switchToLocked(index, target int) {
	current := c.activeLocked()
	if c.editingIndex == DraftIndex {
		current.Send(model.Reset{})
	} else {
		current.Send(model.Reset{Snapshot: current.Origins()})
	}
	c.clearBufferLocked()

	c.editingIndex = index
	next := c.activeLocked()
	if target == model.KeepTarget {
		next.Send(model.FocusOnLastEdit{})
		return
	}
	next.Send(model.Focus{Index: target})
}

func (c *FilterBarController) clearActiveLocked() {
	if c.editingIndex != DraftIndex {
		c.updateItemLocked(c.editingIndex, nil)
		c.ensureEditingLocked()
	} else {
		c.draft.Reinit(nil)
		c.draft.Send(model.Focus{Index: model.PropertySlot})
	}
	c.clearBufferLocked()
}
