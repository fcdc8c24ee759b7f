package todo

import (
	"context"
	"errors"
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Makepad-fr/tada/internal/model"
	"github.com/Makepad-fr/tada/internal/store"
)

// frozenClock never advances, so every id has to come from the collision guard.
func frozenClock() time.Time { return time.UnixMilli(1_700_000_000_000) }

type recordingRenderer struct {
	calls [][]model.Item
}

func (r *recordingRenderer) Render(items []model.Item) { r.calls = append(r.calls, items) }

type countingStore struct {
	*store.Store
	saves int
}

func (c *countingStore) Save(ctx context.Context, items []model.Item) error {
	c.saves++
	return c.Store.Save(ctx, items)
}

func newController(t *testing.T, seed string) (*Controller, *store.Memory, *recordingRenderer) {
	t.Helper()
	var data []byte
	if seed != "" {
		data = []byte(seed)
	}
	mem := store.NewMemory(data)
	r := &recordingRenderer{}
	c := New(store.New(mem, nil), WithRenderer(r), WithClock(frozenClock))
	return c, mem, r
}

func texts(items []model.Item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Text
	}
	return out
}

func TestAdd_ToEmptyCollection(t *testing.T) {
	c, mem, r := newController(t, "")

	it, ok := c.Add("buy milk")
	require.True(t, ok)
	require.Equal(t, []model.Item{{ID: it.ID, Text: "buy milk", Completed: false}}, c.Items())
	require.Len(t, r.calls, 1)
	require.Equal(t, c.Items(), r.calls[0])

	persisted := store.New(mem, nil).Load(context.Background())
	require.Equal(t, c.Items(), persisted)
}

func TestAdd_TrimsText(t *testing.T) {
	c, _, _ := newController(t, "")
	it, ok := c.Add("  spaced out \t")
	require.True(t, ok)
	require.Equal(t, "spaced out", it.Text)
}

func TestAddEdit_BlankTextIsNoop(t *testing.T) {
	for _, text := range []string{"", " ", "\t\n", "   \r\n  "} {
		c, mem, r := newController(t, "")
		it, ok := c.Add("task")
		require.True(t, ok)
		before := c.Items()
		stored := mem.Bytes()

		_, ok = c.Add(text)
		require.False(t, ok, "add %q", text)
		require.False(t, c.Edit(it.ID, text), "edit %q", text)

		require.Equal(t, before, c.Items())
		require.Equal(t, stored, mem.Bytes())
		require.Len(t, r.calls, 1, "no render for rejected input")
	}
}

func TestEdit_EmptyRejectedKeepsText(t *testing.T) {
	c, _, _ := newController(t, "")
	it, _ := c.Add("task")

	require.False(t, c.Edit(it.ID, ""))
	got, ok := c.Get(it.ID)
	require.True(t, ok)
	require.Equal(t, "task", got.Text)

	require.True(t, c.Edit(it.ID, "  renamed  "))
	got, _ = c.Get(it.ID)
	require.Equal(t, "renamed", got.Text)
}

func TestToggle_TwiceRestores(t *testing.T) {
	c, _, r := newController(t, "")
	it, _ := c.Add("task")

	require.True(t, c.Toggle(it.ID))
	got, _ := c.Get(it.ID)
	require.True(t, got.Completed)

	require.True(t, c.Toggle(it.ID))
	got, _ = c.Get(it.ID)
	require.False(t, got.Completed)
	require.Len(t, r.calls, 3)
}

func TestDelete_SecondCallIsNoop(t *testing.T) {
	c, _, r := newController(t, "")
	a, _ := c.Add("a")
	c.Add("b")

	require.True(t, c.Delete(a.ID))
	after := c.Items()
	renders := len(r.calls)

	require.False(t, c.Delete(a.ID))
	require.Equal(t, after, c.Items())
	require.Len(t, r.calls, renders)
	require.Equal(t, []string{"b"}, texts(c.Items()))
}

func TestStaleIDs_AreNoops(t *testing.T) {
	c, _, r := newController(t, "")
	c.Add("a")
	before := c.Items()

	require.False(t, c.Toggle(42))
	require.False(t, c.Edit(42, "x"))
	require.False(t, c.Delete(42))
	require.Equal(t, before, c.Items())
	require.Len(t, r.calls, 1)
}

func TestReorder_SwapsWithoutRender(t *testing.T) {
	c, mem, r := newController(t, "")
	a, _ := c.Add("a")
	b, _ := c.Add("b")
	renders := len(r.calls)

	require.True(t, c.Reorder([]int64{b.ID, a.ID}))
	require.Equal(t, []string{"b", "a"}, texts(c.Items()))
	require.Len(t, r.calls, renders, "reorder must not re-render")
	require.Equal(t, []string{"b", "a"}, texts(store.New(mem, nil).Load(context.Background())))
}

func TestReorder_DropsUnknownAndUnlisted(t *testing.T) {
	c, _, _ := newController(t, "")
	a, _ := c.Add("a")
	b, _ := c.Add("b")
	c.Add("c")

	require.True(t, c.Reorder([]int64{999, b.ID, a.ID, b.ID}))
	require.Equal(t, []string{"b", "a"}, texts(c.Items()))
}

func TestReorder_SameOrderIsNoop(t *testing.T) {
	mem := store.NewMemory(nil)
	cs := &countingStore{Store: store.New(mem, nil)}
	c := New(cs, WithClock(frozenClock))
	a, _ := c.Add("a")
	b, _ := c.Add("b")
	saves := cs.saves

	require.False(t, c.Reorder([]int64{a.ID, b.ID}))
	require.Equal(t, saves, cs.saves)
}

func TestIDs_UniqueWithinOneTick(t *testing.T) {
	c, _, _ := newController(t, "")
	seen := map[int64]bool{}
	for i := 0; i < 100; i++ {
		it, ok := c.Add("same tick")
		require.True(t, ok)
		require.False(t, seen[it.ID], "duplicate id %d", it.ID)
		seen[it.ID] = true
	}
}

func TestIDs_SeededFromLoadedCollection(t *testing.T) {
	c, _, _ := newController(t, `[{"id": 1800000000000, "text": "from the future", "completed": false}]`)
	it, ok := c.Add("new")
	require.True(t, ok)
	require.Greater(t, it.ID, int64(1800000000000))
}

func TestNew_InvalidStoredJSONStartsEmpty(t *testing.T) {
	c, _, r := newController(t, "{definitely not json")
	require.Empty(t, c.Items())
	require.NotNil(t, c.Items())
	require.Empty(t, r.calls, "nothing renders before the first mutation")
}

type brokenStore struct{ items []model.Item }

func (b *brokenStore) Load(context.Context) []model.Item        { return b.items }
func (b *brokenStore) Save(context.Context, []model.Item) error { return errors.New("read-only") }

func TestSaveFailure_KeepsMemoryState(t *testing.T) {
	r := &recordingRenderer{}
	c := New(&brokenStore{}, WithRenderer(r))
	_, ok := c.Add("still here")
	require.True(t, ok)
	require.Equal(t, []string{"still here"}, texts(c.Items()))
	require.Len(t, r.calls, 1)
}

func TestItems_ReturnsCopy(t *testing.T) {
	c, _, _ := newController(t, "")
	c.Add("a")
	items := c.Items()
	items[0].Text = "mutated"
	require.Equal(t, "a", c.Items()[0].Text)
}

func TestStore_SaveLoadComposedTwiceIsStable(t *testing.T) {
	c, mem, _ := newController(t, "")
	c.Add("a")
	b, _ := c.Add("b")
	c.Toggle(b.ID)

	st := store.New(mem, nil)
	ctx := context.Background()
	first := st.Load(ctx)
	require.NoError(t, st.Save(ctx, st.Load(ctx)))
	require.NoError(t, st.Save(ctx, st.Load(ctx)))
	require.Equal(t, first, st.Load(ctx))
	require.Equal(t, c.Items(), first)
}

func TestAdd_NoIDLeftIsNoop(t *testing.T) {
	c, mem, r := newController(t, fmt.Sprintf(`[{"id":%d,"text":"a","completed":false}]`, int64(math.MaxInt64)))
	before := string(mem.Bytes())

	_, ok := c.Add("b")
	require.False(t, ok)
	require.Equal(t, []string{"a"}, texts(c.Items()))
	require.Equal(t, before, string(mem.Bytes()))
	require.Empty(t, r.calls)
}
