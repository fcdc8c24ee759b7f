// Package todo is the list controller: it owns the in-memory collection,
// applies mutations, persists after each one and asks the renderer to redraw.
//
// A Controller is driven from a single event loop (the Bubble Tea program or
// one CLI invocation) and is not safe for concurrent use.
package todo

import (
	"context"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/Makepad-fr/tada/internal/model"
)

// Persister loads and saves the whole collection. *store.Store implements it.
type Persister interface {
	Load(ctx context.Context) []model.Item
	Save(ctx context.Context, items []model.Item) error
}

// Renderer rebuilds the visible list from the collection.
type Renderer interface {
	Render(items []model.Item)
}

// RenderFunc adapts a function to Renderer.
type RenderFunc func(items []model.Item)

func (f RenderFunc) Render(items []model.Item) { f(items) }

// Option configures a Controller.
type Option func(*Controller)

// WithRenderer sets the renderer called after mutations.
func WithRenderer(r Renderer) Option {
	return func(c *Controller) { c.renderer = r }
}

// WithClock replaces time.Now for id generation.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.ids = NewIDSource(now) }
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *log.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.log = l
		}
	}
}

// Controller owns one collection.
type Controller struct {
	store    Persister
	renderer Renderer
	ids      *IDSource
	log      *log.Logger
	items    []model.Item
}

// New loads the collection from st and returns its controller.
// Nothing is rendered until the first mutation; callers draw the initial
// state from Items.
func New(st Persister, opts ...Option) *Controller {
	c := &Controller{
		store: st,
		ids:   NewIDSource(nil),
		log:   log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.items = st.Load(context.Background())
	if c.items == nil {
		c.items = []model.Item{}
	}
	c.ids.Seed(c.items)
	return c
}

// SetRenderer swaps the renderer; nil disables rendering.
func (c *Controller) SetRenderer(r Renderer) { c.renderer = r }

// Items returns a copy of the collection in order.
func (c *Controller) Items() []model.Item { return model.Clone(c.items) }

// Len is the number of items.
func (c *Controller) Len() int { return len(c.items) }

// Get returns the item with id.
func (c *Controller) Get(id int64) (model.Item, bool) {
	if i := c.indexOf(id); i >= 0 {
		return c.items[i], true
	}
	return model.Item{}, false
}

// Add appends a new pending item. Blank text is ignored.
func (c *Controller) Add(text string) (model.Item, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return model.Item{}, false
	}
	id, ok := c.ids.Next()
	if !ok {
		c.log.Error("add: no ids left above the largest stored id")
		return model.Item{}, false
	}
	it := model.Item{ID: id, Text: text}
	next := make([]model.Item, 0, len(c.items)+1)
	next = append(next, c.items...)
	next = append(next, it)
	c.commit(next, true)
	c.log.Debug("added", "id", it.ID)
	return it, true
}

// Delete removes the item with id, if present.
func (c *Controller) Delete(id int64) bool {
	i := c.indexOf(id)
	if i < 0 {
		return false
	}
	next := make([]model.Item, 0, len(c.items)-1)
	next = append(next, c.items[:i]...)
	next = append(next, c.items[i+1:]...)
	c.commit(next, true)
	c.log.Debug("deleted", "id", id)
	return true
}

// Toggle flips the completed flag of the item with id.
func (c *Controller) Toggle(id int64) bool {
	i := c.indexOf(id)
	if i < 0 {
		return false
	}
	next := model.Clone(c.items)
	next[i].Completed = !next[i].Completed
	c.commit(next, true)
	c.log.Debug("toggled", "id", id, "completed", next[i].Completed)
	return true
}

// Edit replaces the text of the item with id. Blank text is ignored.
func (c *Controller) Edit(id int64, text string) bool {
	text = strings.TrimSpace(text)
	if text == "" {
		return false
	}
	i := c.indexOf(id)
	if i < 0 {
		return false
	}
	next := model.Clone(c.items)
	next[i].Text = text
	c.commit(next, true)
	c.log.Debug("edited", "id", id)
	return true
}

// Reorder rearranges the collection to follow ids. Unknown ids are skipped,
// repeats count once, and items whose id is not listed are dropped.
// The renderer is not called: the caller's view already shows this order.
func (c *Controller) Reorder(ids []int64) bool {
	byID := make(map[int64]model.Item, len(c.items))
	for _, it := range c.items {
		byID[it.ID] = it
	}
	next := make([]model.Item, 0, len(ids))
	for _, id := range ids {
		it, ok := byID[id]
		if !ok {
			continue
		}
		next = append(next, it)
		delete(byID, id)
	}
	if sameOrder(c.items, next) {
		return false
	}
	if dropped := len(c.items) - len(next); dropped > 0 {
		c.log.Debug("reorder dropped unlisted items", "count", dropped)
	}
	c.commit(next, false)
	return true
}

func (c *Controller) commit(next []model.Item, render bool) {
	c.items = next
	if err := c.store.Save(context.Background(), c.items); err != nil {
		// The in-memory collection stays authoritative; the next
		// successful save writes it out in full.
		c.log.Error("save failed", "err", err)
	}
	if render && c.renderer != nil {
		c.renderer.Render(c.Items())
	}
}

func (c *Controller) indexOf(id int64) int {
	for i := range c.items {
		if c.items[i].ID == id {
			return i
		}
	}
	return -1
}

func sameOrder(a, b []model.Item) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].ID != b[i].ID {
			return false
		}
	}
	return true
}
