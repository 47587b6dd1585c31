// Package routes turns a live route registry into the ordered, filtered set of
// route records that code generation works from.
package routes

import (
	"context"
	"sort"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"github.com/kolah/routekit/internal/logger"
	"github.com/kolah/routekit/internal/model"
)

// Registry is implemented by anything that can list the host application's
// registered routes.
type Registry interface {
	ListRoutes(ctx context.Context) ([]model.RawRoute, error)
}

// RegistryFunc adapts a function to the Registry interface.
type RegistryFunc func(ctx context.Context) ([]model.RawRoute, error)

func (f RegistryFunc) ListRoutes(ctx context.Context) ([]model.RawRoute, error) {
	return f(ctx)
}

type Options struct {
	SkipNamePrefixes []string
	SkipPathPrefixes []string
	Logger           *zap.SugaredLogger
}

// Collect reads one snapshot of the registry and returns its named routes,
// de-duplicated by name (last registration wins), filtered, and sorted by name.
func Collect(ctx context.Context, registry Registry, opts Options) ([]model.Route, error) {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}

	raw, err := registry.ListRoutes(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "reading route registry")
	}

	byName := make(map[string]model.Route, len(raw))
	for _, entry := range raw {
		if entry.Name == "" {
			continue
		}
		r := model.NewRoute(entry)
		if len(r.Methods) == 0 {
			log.Debugw("route without methods dropped", logger.FieldRoute, r.Name, logger.FieldURI, r.URI)
			continue
		}
		if prev, ok := byName[r.Name]; ok {
			log.Debugw("duplicate route name, keeping last registration",
				logger.FieldRoute, r.Name,
				"previous_uri", prev.URI,
				logger.FieldURI, r.URI)
		}
		byName[r.Name] = r
	}

	records := make([]model.Route, 0, len(byName))
	for _, r := range byName {
		records = append(records, r)
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].Name < records[j].Name
	})

	filtered := FilterFunc(records, opts.SkipNamePrefixes, opts.SkipPathPrefixes, func(r model.Route, prefix string) {
		log.Debugw("route skipped", logger.FieldRoute, r.Name, logger.FieldURI, r.URI, logger.FieldPrefix, prefix)
	})

	log.Infow("routes collected",
		logger.FieldCount, len(filtered),
		"registered", len(raw),
		"skipped", len(records)-len(filtered))

	return filtered, nil
}
