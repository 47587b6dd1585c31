package router

import (
	"context"
	"net/http"
	"strings"

	"github.com/cockroachdb/errors"
)

// Facade is the client-side entry point: it resolves names to URLs, reports
// the current route and issues navigation requests.
type Facade struct {
	table   *Table
	options *Options
}

func NewFacade(table *Table, opts *Options) *Facade {
	if opts == nil {
		opts = DefaultOptions()
	}
	return &Facade{table: table, options: opts}
}

func (f *Facade) Table() *Table {
	return f.table
}

// Route resolves a route name to a URL prefixed with the configured base URL.
func (f *Facade) Route(name string, params Params) (string, error) {
	return f.To(RouteConfig{Name: name, Params: params})
}

func (f *Facade) To(cfg RouteConfig) (string, error) {
	path, err := f.table.To(cfg)
	if err != nil {
		return "", err
	}
	return strings.TrimSuffix(f.options.BaseURL, "/") + path, nil
}

// IsRoute reports whether the current route has the given name or path
// template.
func (f *Facade) IsRoute(ctx context.Context, nameOrPath string) bool {
	current := RouteFromContext(ctx)
	if current == nil {
		return false
	}
	return current.Name == nameOrPath || current.Path == nameOrPath
}

func (f *Facade) CurrentRoute(ctx context.Context) (Entity, bool) {
	current := RouteFromContext(ctx)
	if current == nil {
		return Entity{}, false
	}
	return current.Entity, true
}

func (f *Facade) IsDev() bool {
	switch strings.ToLower(f.options.Environment) {
	case "development", "local":
		return true
	}
	return false
}

func (f *Facade) Get(ctx context.Context, name string, params Params) error {
	return f.visit(ctx, http.MethodGet, name, params, nil)
}

func (f *Facade) Post(ctx context.Context, name string, params Params, data any) error {
	return f.visit(ctx, http.MethodPost, name, params, data)
}

func (f *Facade) Put(ctx context.Context, name string, params Params, data any) error {
	return f.visit(ctx, http.MethodPut, name, params, data)
}

func (f *Facade) Patch(ctx context.Context, name string, params Params, data any) error {
	return f.visit(ctx, http.MethodPatch, name, params, data)
}

func (f *Facade) Delete(ctx context.Context, name string, params Params) error {
	return f.visit(ctx, http.MethodDelete, name, params, nil)
}

func (f *Facade) visit(ctx context.Context, method, name string, params Params, data any) error {
	url, err := f.Route(name, params)
	if err != nil {
		return err
	}
	if f.options.Navigator == nil {
		return errors.New("no navigator configured")
	}

	if err := f.options.Navigator.Navigate(ctx, method, url, data); err != nil {
		if f.options.ErrorHandler != nil {
			f.options.ErrorHandler(method, url, err)
		}
		return err
	}
	return nil
}
