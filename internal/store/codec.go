package store

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/Makepad-fr/tada/internal/model"
)

//go:embed items.schema.json
var itemsSchemaJSON string

var itemsSchema = jsonschema.MustCompileString("items.schema.json", itemsSchemaJSON)

// Encode serializes items as an indented JSON array. A nil slice encodes as [].
func Encode(items []model.Item) ([]byte, error) {
	if items == nil {
		items = []model.Item{}
	}
	b, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("json marshal: %w", err)
	}
	return append(b, '\n'), nil
}

// Decode parses and validates a stored collection.
//
// Records with blank text are dropped, and when an id repeats only the
// first record carrying it is kept.
func Decode(b []byte) ([]model.Item, error) {
	if len(bytes.TrimSpace(b)) == 0 {
		return nil, errors.New("empty payload")
	}
	var doc any
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("json unmarshal: %w", err)
	}
	if err := itemsSchema.Validate(doc); err != nil {
		return nil, schemaError(err)
	}
	var raw []model.Item
	if err := json.Unmarshal(b, &raw); err != nil {
		return nil, fmt.Errorf("json unmarshal: %w", err)
	}

	items := make([]model.Item, 0, len(raw))
	seen := make(map[int64]bool, len(raw))
	for _, it := range raw {
		if strings.TrimSpace(it.Text) == "" || seen[it.ID] {
			continue
		}
		seen[it.ID] = true
		items = append(items, it)
	}
	return items, nil
}

// schemaError flattens a jsonschema validation tree into its leaf messages.
func schemaError(err error) error {
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return fmt.Errorf("schema: %w", err)
	}
	var msgs []string
	var walk func(*jsonschema.ValidationError)
	walk = func(e *jsonschema.ValidationError) {
		if len(e.Causes) == 0 {
			loc := e.InstanceLocation
			if loc == "" {
				loc = "/"
			}
			msgs = append(msgs, loc+": "+e.Message)
			return
		}
		for _, c := range e.Causes {
			walk(c)
		}
	}
	walk(ve)
	return fmt.Errorf("schema: %s", strings.Join(msgs, "; "))
}
