package achievements

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

//go:embed catalog.json
var defaultCatalogJSON []byte

// Catalog is an ordered list of definitions. Order is significant: the
// evaluator reports unlocks in catalog order.
type Catalog []Definition

// Lookup returns the definition with the given id.
func (c Catalog) Lookup(id string) (Definition, bool) {
	for _, d := range c {
		if d.ID == id {
			return d, true
		}
	}
	return Definition{}, false
}

// catalogDocument is the on-disk layout of a catalog file.
type catalogDocument struct {
	Version      int          `json:"version"`
	Achievements []Definition `json:"achievements"`
}

// catalogSchema is the JSON schema every catalog file must satisfy.
var catalogSchema = map[string]any{
	"type":     "object",
	"required": []any{"version", "achievements"},
	"properties": map[string]any{
		"version": map[string]any{"type": "integer", "const": 1},
		"achievements": map[string]any{
			"type":     "array",
			"minItems": 1,
			"items": map[string]any{
				"type":                 "object",
				"additionalProperties": false,
				"required":             []any{"id", "name", "condition", "threshold", "rarity"},
				"properties": map[string]any{
					"id":          map[string]any{"type": "string", "pattern": "^[a-z0-9_]+$"},
					"name":        map[string]any{"type": "string", "minLength": 1},
					"description": map[string]any{"type": "string"},
					"icon":        map[string]any{"type": "string"},
					"condition":   map[string]any{"type": "string", "enum": conditionEnum()},
					"threshold":   map[string]any{"type": "integer", "minimum": 1},
					"rarity":      map[string]any{"type": "string", "enum": []any{"common", "rare", "epic", "legendary"}},
				},
			},
		},
	},
}

func conditionEnum() []any {
	conds := AllConditions()
	out := make([]any, len(conds))
	for i, c := range conds {
		out[i] = string(c)
	}
	return out
}

var (
	compileOnce    sync.Once
	compiledSchema *jsonschema.Schema
	compileErr     error
)

func schema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		// The compiler wants a decoded JSON value, so round-trip the map.
		raw, err := json.Marshal(catalogSchema)
		if err != nil {
			compileErr = fmt.Errorf("marshal catalog schema: %w", err)
			return
		}
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
		if err != nil {
			compileErr = fmt.Errorf("parse catalog schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource("schema://catalog.json", doc); err != nil {
			compileErr = fmt.Errorf("add catalog schema: %w", err)
			return
		}
		compiledSchema, compileErr = c.Compile("schema://catalog.json")
	})
	return compiledSchema, compileErr
}

var (
	defaultOnce    sync.Once
	defaultCatalog Catalog
	defaultErr     error
)

// DefaultCatalog returns the built-in catalog. The embedded document is
// validated on first use; a failure there is a build defect, so it panics.
func DefaultCatalog() Catalog {
	defaultOnce.Do(func() {
		defaultCatalog, defaultErr = ParseCatalog("builtin", defaultCatalogJSON)
	})
	if defaultErr != nil {
		panic(defaultErr)
	}
	out := make(Catalog, len(defaultCatalog))
	copy(out, defaultCatalog)
	return out
}

// LoadCatalog reads and validates a catalog file.
func LoadCatalog(path string) (Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return ParseCatalog(path, raw)
}

// ParseCatalog validates raw against the catalog schema and semantic rules
// (unique ids) and returns the definitions in document order.
func ParseCatalog(source string, raw []byte) (Catalog, error) {
	sch, err := schema()
	if err != nil {
		return nil, err
	}

	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return nil, &ErrInvalidCatalog{Source: source, Err: fmt.Errorf("invalid JSON: %w", err)}
	}
	if err := sch.Validate(doc); err != nil {
		return nil, &ErrInvalidCatalog{Source: source, Err: err}
	}

	var parsed catalogDocument
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, &ErrInvalidCatalog{Source: source, Err: err}
	}

	seen := make(map[string]bool, len(parsed.Achievements))
	for _, d := range parsed.Achievements {
		if seen[d.ID] {
			return nil, &ErrInvalidCatalog{Source: source, Err: fmt.Errorf("duplicate achievement id %q", d.ID)}
		}
		seen[d.ID] = true
		if !d.Condition.Valid() {
			return nil, &ErrInvalidCatalog{Source: source, Err: &ErrUnknownCondition{Condition: d.Condition}}
		}
		if !d.Rarity.Valid() {
			return nil, &ErrInvalidCatalog{Source: source, Err: errors.New("unknown rarity " + string(d.Rarity))}
		}
	}
	return Catalog(parsed.Achievements), nil
}
