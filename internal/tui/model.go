package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	xansi "github.com/charmbracelet/x/ansi"

	"github.com/Makepad-fr/tada/internal/todo"
	"github.com/Makepad-fr/tada/internal/ui"
)

// Screen geometry. The panel border takes one line/column on each side and
// one column of horizontal padding; inside it the header, the add input and
// a spacer sit above the rows. Every row is two lines tall so a pointer can
// land above or below its midpoint.
const (
	rowHeight    = 2
	headerLines  = 3
	contentLeft  = 2
	inputLine    = 2
	chromeLines  = 2 + headerLines + 1 // border, header block, help
	affordances  = "[edit] [del]"
	saveLabel    = "[save]"
	editLabel    = "[edit]"
	deleteLabel  = "[del]"
	defaultWidth = 80
	defaultHigh  = 24
)

type focusArea int

const (
	focusList focusArea = iota
	focusInput
)

type modelTUI struct {
	ctrl *todo.Controller
	rows *rowsView
	drag *todo.Drag
	log  *log.Logger

	input textinput.Model // the add input
	focus focusArea

	keys keyMap
	help help.Model

	width, height int
	offset        int // first visible row
}

func newModel(ctrl *todo.Controller, logger *log.Logger) modelTUI {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	rows := &rowsView{}
	rows.Render(ctrl.Items())
	ctrl.SetRenderer(rows)

	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "New item text..."
	ti.CharLimit = 0

	h := help.New()
	h.Styles.ShortKey = ui.Current().Help
	h.Styles.ShortDesc = ui.Current().Help

	return modelTUI{
		ctrl:   ctrl,
		rows:   rows,
		drag:   &todo.Drag{},
		log:    logger,
		input:  ti,
		focus:  focusList,
		keys:   defaultKeys(),
		help:   h,
		width:  defaultWidth,
		height: defaultHigh,
	}
}

func (m modelTUI) Init() tea.Cmd { return nil }

func (m modelTUI) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = m.contentWidth()
		m.scrollToCursor()
		return m, nil
	case tea.MouseMsg:
		return m.handleMouse(msg)
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.focus == focusInput {
			return m.updateInput(msg)
		}
		if r := m.selectedRow(); r != nil && r.state == editing {
			return m.updateEditing(msg)
		}
		return m.updateList(msg)
	}
	return m, nil
}

// updateInput handles the add input. Submitting always clears the field,
// whether or not anything was added.
func (m modelTUI) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.dispatch(todo.Intent{Kind: todo.IntentAdd, Text: m.input.Value()})
		m.input.SetValue("")
		if n := len(m.rows.rows); n > 0 {
			m.rows.cursor = n - 1
			m.scrollToCursor()
		}
		return m, nil
	case "esc", "tab":
		m.input.Blur()
		m.focus = focusList
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// updateEditing handles keys while the selected row shows its edit form.
func (m modelTUI) updateEditing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	i := m.rows.cursor
	switch msg.String() {
	case "enter":
		m.commitEdit(i)
		return m, nil
	case "esc":
		m.rows.stopEdit(i)
		return m, nil
	}
	var cmd tea.Cmd
	m.rows.rows[i].input, cmd = m.rows.rows[i].input.Update(msg)
	return m, cmd
}

func (m modelTUI) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Cancel):
		if m.drag.Dragging() {
			m.rows.arrange(m.drag.Cancel())
			return m, nil
		}
		return m, tea.Quit
	case key.Matches(msg, m.keys.MoveUp):
		m.moveSelected(-1)
	case key.Matches(msg, m.keys.MoveDown):
		m.moveSelected(1)
	case key.Matches(msg, m.keys.Up):
		if m.rows.cursor > 0 {
			m.rows.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.rows.cursor < len(m.rows.rows)-1 {
			m.rows.cursor++
		}
	case key.Matches(msg, m.keys.Toggle):
		if r := m.selectedRow(); r != nil {
			m.dispatch(todo.Intent{Kind: todo.IntentToggle, ID: r.item.ID})
		}
	case key.Matches(msg, m.keys.Edit):
		m.rows.startEdit(m.rows.cursor)
	case key.Matches(msg, m.keys.Delete):
		if r := m.selectedRow(); r != nil {
			m.dispatch(todo.Intent{Kind: todo.IntentDelete, ID: r.item.ID})
		}
	case key.Matches(msg, m.keys.Add):
		m.focus = focusInput
		return m, m.input.Focus()
	}
	m.scrollToCursor()
	return m, nil
}

// handleMouse maps clicks on row affordances to intents and runs the drag
// gesture: press on a row starts it, motion with the button held moves the
// dragged row, release drops it.
func (m modelTUI) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		if m.offset > 0 {
			m.offset--
		}
		return m, nil
	case tea.MouseButtonWheelDown:
		if m.offset < len(m.rows.rows)-m.visibleRows() {
			m.offset++
		}
		return m, nil
	}

	switch msg.Action {
	case tea.MouseActionMotion:
		if !m.drag.Dragging() || msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		i, ok := m.rowAt(msg.Y)
		if !ok {
			return m, nil
		}
		if m.drag.Over(m.rows.rows[i].item.ID, msg.Y, m.rowTop(i), rowHeight) {
			m.rows.arrange(m.drag.Order())
		}
		return m, nil

	case tea.MouseActionRelease:
		if m.drag.Dragging() {
			if m.drag.DropInto(m.ctrl) {
				m.log.Debug("drag committed", "order", m.rows.ids())
			}
		}
		return m, nil

	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		if msg.Y == inputLine {
			m.focus = focusInput
			return m, m.input.Focus()
		}
		i, ok := m.rowAt(msg.Y)
		if !ok {
			return m, nil
		}
		m.input.Blur()
		m.focus = focusList
		m.rows.cursor = i
		return m.clickRow(i, msg.X-contentLeft)
	}
	return m, nil
}

func (m modelTUI) clickRow(i, x int) (tea.Model, tea.Cmd) {
	r := m.rows.rows[i]
	cw := m.contentWidth()
	editStart := cw - len(affordances)
	delStart := cw - len(deleteLabel)

	if r.state == editing {
		if x >= editStart && x < editStart+len(saveLabel) {
			m.commitEdit(i)
		}
		return m, nil
	}

	boxW := xansi.StringWidth(ui.Current().Box(false))
	switch {
	case x >= 2 && x < 2+boxW:
		m.dispatch(todo.Intent{Kind: todo.IntentToggle, ID: r.item.ID})
	case x >= editStart && x < editStart+len(editLabel):
		m.rows.startEdit(i)
	case x >= delStart && x < delStart+len(deleteLabel):
		m.dispatch(todo.Intent{Kind: todo.IntentDelete, ID: r.item.ID})
	default:
		m.drag.Start(m.rows.ids(), r.item.ID)
	}
	return m, nil
}

// commitEdit saves the row's input. Blank text is ignored and the row
// stays in its edit form.
func (m modelTUI) commitEdit(i int) {
	r := m.rows.rows[i]
	if strings.TrimSpace(r.input.Value()) == "" {
		return
	}
	m.dispatch(todo.Intent{Kind: todo.IntentEdit, ID: r.item.ID, Text: r.input.Value()})
	m.rows.stopEdit(i)
}

// moveSelected is the keyboard drag: shift the selected row and commit.
func (m modelTUI) moveSelected(delta int) {
	r := m.selectedRow()
	if r == nil {
		return
	}
	order := todo.Move(m.rows.ids(), r.item.ID, delta)
	m.rows.arrange(order)
	m.dispatch(todo.Intent{Kind: todo.IntentReorder, Order: order})
}

func (m modelTUI) dispatch(in todo.Intent) {
	if _, err := m.ctrl.Dispatch(in); err != nil {
		m.log.Error("dispatch", "intent", in.Kind, "err", err)
	}
}

func (m modelTUI) selectedRow() *row {
	if m.rows.cursor < 0 || m.rows.cursor >= len(m.rows.rows) {
		return nil
	}
	return &m.rows.rows[m.rows.cursor]
}

func (m modelTUI) contentWidth() int {
	w := m.width - 2*contentLeft
	if w < len(affordances)+20 {
		w = len(affordances) + 20
	}
	return w
}

func (m modelTUI) visibleRows() int {
	n := (m.height - chromeLines) / rowHeight
	if n < 1 {
		n = 1
	}
	return n
}

func (m modelTUI) rowsTop() int { return 1 + headerLines }

func (m modelTUI) rowTop(i int) int { return m.rowsTop() + (i-m.offset)*rowHeight }

func (m modelTUI) rowAt(y int) (int, bool) {
	if y < m.rowsTop() {
		return 0, false
	}
	vis := (y - m.rowsTop()) / rowHeight
	if vis >= m.visibleRows() {
		return 0, false
	}
	i := m.offset + vis
	if i >= len(m.rows.rows) {
		return 0, false
	}
	return i, true
}

func (m *modelTUI) scrollToCursor() {
	vis := m.visibleRows()
	if m.rows.cursor < m.offset {
		m.offset = m.rows.cursor
	}
	if m.rows.cursor >= m.offset+vis {
		m.offset = m.rows.cursor - vis + 1
	}
	if last := len(m.rows.rows) - vis; m.offset > last {
		m.offset = last
	}
	if m.offset < 0 {
		m.offset = 0
	}
}

func (m modelTUI) View() string {
	t := ui.Current()
	cw := m.contentWidth()

	done, pending := m.rows.stats()
	header := fmt.Sprintf("%s   %s", t.Title.Render("Todos"), ui.Counts(done, pending))

	lines := []string{header, m.input.View(), ""}
	end := m.offset + m.visibleRows()
	if end > len(m.rows.rows) {
		end = len(m.rows.rows)
	}
	if len(m.rows.rows) == 0 {
		lines = append(lines, t.Muted.Render("Nothing to do. Press a to add an item."), "")
	}
	for i := m.offset; i < end; i++ {
		lines = append(lines, m.renderRow(i, cw)...)
	}
	lines = append(lines, m.help.View(m.keys))
	return ui.Panel(strings.Join(lines, "\n"))
}

func (m modelTUI) renderRow(i, cw int) []string {
	t := ui.Current()
	r := m.rows.rows[i]

	const prefixW = 2
	prefix := "  "
	if i == m.rows.cursor && m.focus == focusList {
		prefix = t.Selected.Render(">") + " "
	}
	box := t.Box(r.item.Completed)
	boxW := xansi.StringWidth(box)
	textW := cw - prefixW - boxW - 1 - 1 - len(affordances)

	var first string
	switch r.state {
	case editing:
		first = prefix + fit(r.input.View(), boxW+1+textW) + " " + fit(t.Accent.Render(saveLabel), len(affordances))
	default:
		text := fit(r.item.Text, textW)
		if r.item.Completed {
			box = t.Success.Render(box)
			text = t.Done.Render(text)
		} else {
			box = t.Muted.Render(box)
		}
		first = prefix + box + " " + text + " " + t.Muted.Render(affordances)
	}

	second := t.Muted.Render(fmt.Sprintf("%s#%d", strings.Repeat(" ", prefixW+boxW+1), r.item.ID))
	if m.drag.Dragging() && m.drag.Dragged() == r.item.ID {
		first = t.Dragging.Render(xansi.Strip(first))
		second = t.Dragging.Render(fit(strings.Repeat(" ", prefixW+boxW+1)+"moving…", cw))
	}
	return []string{first, second}
}

// fit pads or truncates s to exactly w cells.
func fit(s string, w int) string {
	if w <= 0 {
		return ""
	}
	sw := xansi.StringWidth(s)
	if sw > w {
		return xansi.Truncate(s, w, "…")
	}
	return s + strings.Repeat(" ", w-sw)
}
