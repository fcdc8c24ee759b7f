package tui

import (
	"github.com/charmbracelet/bubbles/textinput"

	"github.com/Makepad-fr/tada/internal/model"
)

// viewState is the per-row display mode.
type viewState int

const (
	viewing viewState = iota
	editing
)

type row struct {
	item  model.Item
	state viewState
	input textinput.Model // only meaningful while editing
}

// rowsView is the TUI's todo.Renderer. Render rebuilds every row from the
// collection; rows being edited fall back to viewing.
type rowsView struct {
	rows   []row
	cursor int
}

func (v *rowsView) Render(items []model.Item) {
	selected, hadSelection := v.selectedID()
	v.rows = make([]row, len(items))
	for i, it := range items {
		v.rows[i] = row{item: it, state: viewing}
	}
	if hadSelection {
		if i := v.index(selected); i >= 0 {
			v.cursor = i
			return
		}
	}
	v.clamp()
}

func (v *rowsView) selectedID() (int64, bool) {
	if v.cursor < 0 || v.cursor >= len(v.rows) {
		return 0, false
	}
	return v.rows[v.cursor].item.ID, true
}

func (v *rowsView) clamp() {
	if v.cursor >= len(v.rows) {
		v.cursor = len(v.rows) - 1
	}
	if v.cursor < 0 {
		v.cursor = 0
	}
}

func (v *rowsView) ids() []int64 {
	ids := make([]int64, len(v.rows))
	for i, r := range v.rows {
		ids[i] = r.item.ID
	}
	return ids
}

func (v *rowsView) index(id int64) int {
	for i, r := range v.rows {
		if r.item.ID == id {
			return i
		}
	}
	return -1
}

// arrange redraws the rows in order without touching the collection.
// The cursor follows the row it was on.
func (v *rowsView) arrange(order []int64) {
	selected, hadSelection := v.selectedID()
	next := make([]row, 0, len(v.rows))
	for _, id := range order {
		if i := v.index(id); i >= 0 {
			next = append(next, v.rows[i])
		}
	}
	v.rows = next
	if hadSelection {
		if i := v.index(selected); i >= 0 {
			v.cursor = i
		}
	}
	v.clamp()
}

func (v *rowsView) startEdit(i int) {
	if i < 0 || i >= len(v.rows) {
		return
	}
	r := &v.rows[i]
	r.state = editing
	r.input = textinput.New()
	r.input.Prompt = ""
	r.input.Placeholder = "Edit item text..."
	r.input.CharLimit = 0
	r.input.SetValue(r.item.Text)
	r.input.CursorEnd()
	r.input.Focus()
}

func (v *rowsView) stopEdit(i int) {
	if i < 0 || i >= len(v.rows) {
		return
	}
	v.rows[i].state = viewing
	v.rows[i].input.Blur()
}

func (v *rowsView) stats() (done, pending int) {
	for _, r := range v.rows {
		if r.item.Completed {
			done++
		} else {
			pending++
		}
	}
	return
}
