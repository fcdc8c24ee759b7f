package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Makepad-fr/tada/internal/model"
)

// resolve turns a command-line reference into an item id. Numbers from 1 to
// len(items) are positions as shown by ls; anything else must be an id.
func resolve(cmd *cobra.Command, items []model.Item, arg string) (int64, error) {
	n, err := strconv.ParseInt(strings.TrimPrefix(strings.TrimSpace(arg), "#"), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("not a number: %s", arg)
	}
	if n >= 1 && n <= int64(len(items)) && !strings.HasPrefix(arg, "#") {
		return items[n-1].ID, nil
	}
	for _, it := range items {
		if it.ID == n {
			return n, nil
		}
	}
	hint(cmd.ErrOrStderr(), "Hint: run `todo ls --ids` to see valid indexes and ids")
	return 0, fmt.Errorf("no item %s: have %d items", arg, len(items))
}

// moveToFront puts named first, in the given order, followed by the rest of
// order. Repeats in named count once.
func moveToFront(order, named []int64) []int64 {
	out := make([]int64, 0, len(order))
	seen := make(map[int64]bool, len(order))
	for _, id := range named {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	for _, id := range order {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}
