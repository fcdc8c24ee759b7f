package model

// Item is the domain model for a todo entry.
// IDs are derived from the creation time in milliseconds and are unique
// within a collection.
type Item struct {
	ID        int64  `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

// Clone returns a copy of items that shares no backing array with the input.
func Clone(items []Item) []Item {
	out := make([]Item, len(items))
	copy(out, items)
	return out
}

// IDs returns the ids of items in collection order.
func IDs(items []Item) []int64 {
	ids := make([]int64, len(items))
	for i, it := range items {
		ids[i] = it.ID
	}
	return ids
}
