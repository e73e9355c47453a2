package flow

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"
)

//go:embed flows/*.yaml
var builtinFS embed.FS

// BuiltinFS exposes the embedded flow files.
func BuiltinFS() fs.FS {
	sub, err := fs.Sub(builtinFS, "flows")
	if err != nil {
		panic(err)
	}
	return sub
}

// Builtin loads an embedded flow by ID.
func Builtin(id string) (*Definition, error) {
	def, err := Load(BuiltinFS(), id+".yaml")
	if err != nil {
		return nil, fmt.Errorf("builtin flow %q: %w", id, err)
	}
	return def, nil
}

// Builtins loads every embedded flow, ordered by ID.
func Builtins() ([]*Definition, error) {
	return LoadDir(BuiltinFS())
}

// Catalog indexes flows by ID.
type Catalog struct {
	flows map[string]*Definition
}

// NewCatalog builds a catalog. Later definitions replace earlier ones with the
// same ID, so user flows can override builtins.
func NewCatalog(defs ...*Definition) *Catalog {
	c := &Catalog{flows: make(map[string]*Definition, len(defs))}
	for _, d := range defs {
		c.flows[d.ID] = d
	}
	return c
}

// Get returns the flow with the given ID.
func (c *Catalog) Get(id string) (*Definition, error) {
	def, ok := c.flows[id]
	if !ok {
		return nil, fmt.Errorf("unknown flow %q (available: %s)", id, strings.Join(c.IDs(), ", "))
	}
	return def, nil
}

// IDs returns the flow IDs in lexical order.
func (c *Catalog) IDs() []string {
	return sortedKeys(c.flows)
}

// List returns the flows ordered by ID.
func (c *Catalog) List() []*Definition {
	ids := c.IDs()
	out := make([]*Definition, len(ids))
	for i, id := range ids {
		out[i] = c.flows[id]
	}
	return out
}

