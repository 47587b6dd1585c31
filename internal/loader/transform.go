package loader

import (
	"strings"

	"github.com/pb33f/libopenapi"
	v3 "github.com/pb33f/libopenapi/datamodel/high/v3"
	"github.com/pb33f/libopenapi/orderedmap"
	"go.yaml.in/yaml/v4"

	"github.com/kolah/routekit/internal/model"
)

// ExtensionRouteName overrides the operationId as the route name.
const ExtensionRouteName = "x-route-name"

// Transform turns every operation of the document into a single-method route
// named after its operationId. Operations without a name are kept unnamed so
// the collector can drop them.
func Transform(doc *libopenapi.DocumentModel[v3.Document]) []model.RawRoute {
	if doc == nil || doc.Model.Paths == nil || doc.Model.Paths.PathItems == nil {
		return nil
	}

	var routes []model.RawRoute
	for pathStr, pathItem := range doc.Model.Paths.PathItems.FromOldest() {
		routes = append(routes, transformPath(pathStr, pathItem)...)
	}
	return routes
}

func transformPath(pathStr string, pathItem *v3.PathItem) []model.RawRoute {
	methods := []struct {
		method string
		op     *v3.Operation
	}{
		{"GET", pathItem.Get},
		{"POST", pathItem.Post},
		{"PUT", pathItem.Put},
		{"DELETE", pathItem.Delete},
		{"PATCH", pathItem.Patch},
		{"HEAD", pathItem.Head},
		{"OPTIONS", pathItem.Options},
		{"TRACE", pathItem.Trace},
		{"QUERY", pathItem.Query}, // OpenAPI 3.2
	}

	var routes []model.RawRoute
	for _, m := range methods {
		if m.op == nil {
			continue
		}
		name := m.op.OperationId
		if override := routeNameExtension(m.op.Extensions); override != "" {
			name = override
		}
		routes = append(routes, model.RawRoute{
			Name:    name,
			URI:     pathStr,
			Methods: []string{m.method},
		})
	}
	return routes
}

func routeNameExtension(extensions *orderedmap.Map[string, *yaml.Node]) string {
	if extensions == nil {
		return ""
	}
	for pair := extensions.First(); pair != nil; pair = pair.Next() {
		if pair.Key() != ExtensionRouteName {
			continue
		}
		if node := pair.Value(); node != nil && node.Kind == yaml.ScalarNode {
			return strings.TrimSpace(node.Value)
		}
	}
	return ""
}
