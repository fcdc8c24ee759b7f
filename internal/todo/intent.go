package todo

import (
	"errors"
	"fmt"
)

// IntentKind names a user intent coming from a UI.
type IntentKind int

const (
	IntentAdd IntentKind = iota + 1
	IntentDelete
	IntentToggle
	IntentEdit
	IntentReorder
)

func (k IntentKind) String() string {
	switch k {
	case IntentAdd:
		return "add"
	case IntentDelete:
		return "delete"
	case IntentToggle:
		return "toggle"
	case IntentEdit:
		return "edit"
	case IntentReorder:
		return "reorder"
	}
	return fmt.Sprintf("intent(%d)", int(k))
}

// Intent is one UI request. Only the fields relevant to Kind are read:
// Text for Add, ID for Delete and Toggle, ID and Text for Edit, Order for Reorder.
type Intent struct {
	Kind  IntentKind
	ID    int64
	Text  string
	Order []int64
}

// ErrUnknownIntent is returned by Dispatch for kinds with no handler.
var ErrUnknownIntent = errors.New("unknown intent")

var dispatchTable = map[IntentKind]func(*Controller, Intent) bool{
	IntentAdd: func(c *Controller, in Intent) bool {
		_, ok := c.Add(in.Text)
		return ok
	},
	IntentDelete:  func(c *Controller, in Intent) bool { return c.Delete(in.ID) },
	IntentToggle:  func(c *Controller, in Intent) bool { return c.Toggle(in.ID) },
	IntentEdit:    func(c *Controller, in Intent) bool { return c.Edit(in.ID, in.Text) },
	IntentReorder: func(c *Controller, in Intent) bool { return c.Reorder(in.Order) },
}

// Dispatch routes in to its mutator and reports whether the collection changed.
func (c *Controller) Dispatch(in Intent) (bool, error) {
	h, ok := dispatchTable[in.Kind]
	if !ok {
		return false, fmt.Errorf("%w: %s", ErrUnknownIntent, in.Kind)
	}
	changed := h(c, in)
	if !changed {
		c.log.Debug("intent was a no-op", "intent", in.Kind, "id", in.ID)
	}
	return changed, nil
}
