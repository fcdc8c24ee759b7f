package todo

// DragState is the drag-to-reorder state.
type DragState int

const (
	DragIdle DragState = iota
	DragDragging
)

func (s DragState) String() string {
	if s == DragDragging {
		return "dragging"
	}
	return "idle"
}

// Drag tracks one drag-to-reorder gesture over a list of rows identified
// by item id. While dragging, Order is the visual order the rows should be
// drawn in; the collection itself only changes on Drop.
type Drag struct {
	state   DragState
	dragged int64
	order   []int64
	before  []int64
}

// State reports whether a drag is in progress.
func (d *Drag) State() DragState { return d.state }

// Dragging reports whether a drag is in progress.
func (d *Drag) Dragging() bool { return d.state == DragDragging }

// Dragged is the id of the row being dragged. Only valid while dragging.
func (d *Drag) Dragged() int64 { return d.dragged }

// Order is the current visual row order.
func (d *Drag) Order() []int64 { return append([]int64(nil), d.order...) }

// Start begins dragging the row id within the visual order rows.
// It fails when a drag is already active or id is not a row.
func (d *Drag) Start(rows []int64, id int64) bool {
	if d.state == DragDragging || indexOfID(rows, id) < 0 {
		return false
	}
	d.state = DragDragging
	d.dragged = id
	d.order = append([]int64(nil), rows...)
	d.before = append([]int64(nil), rows...)
	return true
}

// Over moves the dragged row next to the hovered row target. With the
// pointer above target's vertical midpoint the dragged row goes before it,
// otherwise after it. Returns whether the visual order changed.
func (d *Drag) Over(target int64, pointerY, rowTop, rowHeight int) bool {
	if d.state != DragDragging || target == d.dragged {
		return false
	}
	from := indexOfID(d.order, d.dragged)
	if from < 0 || indexOfID(d.order, target) < 0 {
		return false
	}
	offset := float64(pointerY-rowTop) - float64(rowHeight)/2

	rest := make([]int64, 0, len(d.order)-1)
	rest = append(rest, d.order[:from]...)
	rest = append(rest, d.order[from+1:]...)
	at := indexOfID(rest, target)
	if offset >= 0 {
		at++
	}
	next := make([]int64, 0, len(d.order))
	next = append(next, rest[:at]...)
	next = append(next, d.dragged)
	next = append(next, rest[at:]...)

	if equalIDs(next, d.order) {
		return false
	}
	d.order = next
	return true
}

// Drop ends the drag and returns the final visual order for Reorder.
// Dropping with no active drag is a no-op and returns ok=false.
func (d *Drag) Drop() (order []int64, ok bool) {
	if d.state != DragDragging {
		return nil, false
	}
	order = d.order
	d.reset()
	return order, true
}

// Cancel abandons the drag and returns the order from before it started.
func (d *Drag) Cancel() []int64 {
	if d.state != DragDragging {
		return nil
	}
	before := d.before
	d.reset()
	return before
}

func (d *Drag) reset() {
	d.state = DragIdle
	d.dragged = 0
	d.order = nil
	d.before = nil
}

// DropInto ends the drag and commits the visual order through c.
func (d *Drag) DropInto(c *Controller) bool {
	order, ok := d.Drop()
	if !ok {
		return false
	}
	changed, _ := c.Dispatch(Intent{Kind: IntentReorder, Order: order})
	return changed
}

func indexOfID(ids []int64, id int64) int {
	for i, v := range ids {
		if v == id {
			return i
		}
	}
	return -1
}

func equalIDs(a, b []int64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Move returns rows with id shifted delta positions, clamped to the ends.
// It is the keyboard counterpart of a drag.
func Move(rows []int64, id int64, delta int) []int64 {
	out := append([]int64(nil), rows...)
	from := indexOfID(out, id)
	if from < 0 {
		return out
	}
	to := from + delta
	if to < 0 {
		to = 0
	}
	if to > len(out)-1 {
		to = len(out) - 1
	}
	for from < to {
		out[from], out[from+1] = out[from+1], out[from]
		from++
	}
	for from > to {
		out[from], out[from-1] = out[from-1], out[from]
		from--
	}
	return out
}
