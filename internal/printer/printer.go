// Package printer renders the collection as a plain table for the CLI.
package printer

import (
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"github.com/Makepad-fr/tada/internal/model"
	"github.com/Makepad-fr/tada/internal/ui"
)

// Pretty is a todo.Renderer writing one row per item to Out.
type Pretty struct {
	Out    io.Writer
	ShowID bool
	Group  bool // pending items first, then done, each under a heading
}

func (p *Pretty) Render(items []model.Item) {
	title := color.New(color.Bold, color.Underline)
	faint := color.New(color.Faint)

	_, _ = title.Fprint(p.Out, "Todos")
	done := 0
	for _, it := range items {
		if it.Completed {
			done++
		}
	}
	_, _ = faint.Fprintf(p.Out, " - %d %s\n", len(items), plural(len(items)))

	if len(items) == 0 {
		_, _ = color.New(color.Faint, color.Italic).Fprint(p.Out, " none\n")
		return
	}

	if p.Group {
		var pending, finished []int
		for i, it := range items {
			if it.Completed {
				finished = append(finished, i)
			} else {
				pending = append(pending, i)
			}
		}
		p.section("Pending", items, pending)
		p.section("Done", items, finished)
	} else {
		all := make([]int, len(items))
		for i := range items {
			all[i] = i
		}
		_, _ = fmt.Fprintln(p.Out, p.table(items, all))
	}
	_, _ = fmt.Fprintln(p.Out, faint.Sprint(ui.ProgressBar(done, len(items), 20)))
}

func (p *Pretty) section(title string, items []model.Item, idx []int) {
	_, _ = color.New(color.FgBlue).Fprintln(p.Out, title)
	if len(idx) == 0 {
		_, _ = color.New(color.Faint).Fprintln(p.Out, " (none)")
		return
	}
	_, _ = fmt.Fprintln(p.Out, p.table(items, idx))
}

// table lays out items[idx...]; the first column is the position in the
// whole collection, which is what the CLI accepts as an index.
func (p *Pretty) table(items []model.Item, idx []int) *uitable.Table {
	t := ui.Current()
	faint := color.New(color.Faint)
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = 80
	tbl.Wrap = true
	for _, i := range idx {
		it := items[i]
		box := t.Box(it.Completed)
		text := it.Text
		if it.Completed {
			box = color.GreenString(box)
			text = faint.Sprint(text)
		}
		row := []interface{}{faint.Sprint(strconv.Itoa(i + 1)), box, text}
		if p.ShowID {
			row = append(row, faint.Sprintf("#%d", it.ID))
		}
		tbl.AddRow(row...)
	}
	return tbl
}

func plural(n int) string {
	if n == 1 {
		return "item"
	}
	return "items"
}
