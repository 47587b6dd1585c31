// Package router resolves route names to URLs and URLs back to routes, using
// the table generated by routekit.
package router

import (
	"slices"

	"github.com/cockroachdb/errors"

	"github.com/kolah/routekit/internal/model"
)

// Entity is one generated route: its name, path template, parameter names in
// declaration order and its HTTP methods.
type Entity struct {
	Name    string
	Path    string
	Params  []string
	Methods []string
}

// Method returns the first method of the route.
func (e Entity) Method() string {
	if len(e.Methods) == 0 {
		return ""
	}
	return e.Methods[0]
}

// Table is an immutable set of routes keyed by name. It is safe for concurrent
// use.
type Table struct {
	entities map[string]Entity
	names    []string
	matcher  *matcher
}

// NewTable validates the entities and builds the URL matcher. Custom HTTP
// methods are registered with chi's process-wide method table under a lock.
func NewTable(entities []Entity) (*Table, error) {
	t := &Table{
		entities: make(map[string]Entity, len(entities)),
	}

	for _, e := range entities {
		if e.Name == "" {
			return nil, errors.Newf("route with path %q has no name", e.Path)
		}
		if _, ok := t.entities[e.Name]; ok {
			return nil, errors.Newf("duplicate route name %q", e.Name)
		}
		if len(e.Methods) == 0 {
			return nil, errors.Newf("route %q has no methods", e.Name)
		}
		if e.Path == "" {
			e.Path = "/"
		}
		params, err := checkParams(e)
		if err != nil {
			return nil, err
		}
		e.Params = params
		t.entities[e.Name] = e
		t.names = append(t.names, e.Name)
	}
	slices.Sort(t.names)

	m, err := newMatcher(t)
	if err != nil {
		return nil, err
	}
	t.matcher = m

	return t, nil
}

// checkParams returns the placeholder names of the path. Declared Params must
// list the same names in the same order; empty Params are filled in.
func checkParams(e Entity) ([]string, error) {
	var names []string
	for _, p := range model.ParseParameters(e.Path) {
		names = append(names, p.Name)
	}
	if len(e.Params) == 0 {
		return names, nil
	}
	if !slices.Equal(e.Params, names) {
		return nil, errors.Newf("route %q declares params %v but path %q has %v", e.Name, e.Params, e.Path, names)
	}
	return e.Params, nil
}

// MustNewTable is NewTable for generated code; it panics on an invalid table.
func MustNewTable(entities []Entity) *Table {
	t, err := NewTable(entities)
	if err != nil {
		panic(err)
	}
	return t
}

func (t *Table) Lookup(name string) (Entity, bool) {
	e, ok := t.entities[name]
	return e, ok
}

func (t *Table) Has(name string) bool {
	_, ok := t.entities[name]
	return ok
}

// Names returns all route names in alphabetical order.
func (t *Table) Names() []string {
	return slices.Clone(t.names)
}

func (t *Table) Len() int {
	return len(t.names)
}
