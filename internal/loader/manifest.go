package loader

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/cockroachdb/errors"
	"go.yaml.in/yaml/v4"

	"github.com/kolah/routekit/internal/model"
)

// manifestEntry is one route as printed by `php artisan route:list --json`.
// Extra keys such as action and middleware are ignored.
type manifestEntry struct {
	Name    string     `json:"name" yaml:"name"`
	URI     string     `json:"uri" yaml:"uri"`
	Method  methodList `json:"method" yaml:"method"`
	Methods methodList `json:"methods" yaml:"methods"`
	Domain  string     `json:"domain" yaml:"domain"`
}

type manifestDocument struct {
	Routes []manifestEntry `json:"routes" yaml:"routes"`
}

// methodList accepts both "GET|HEAD" and a list of methods.
type methodList []string

func (m *methodList) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}
	if data[0] == '[' {
		var list []string
		if err := json.Unmarshal(data, &list); err != nil {
			return err
		}
		*m = splitMethods(list...)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*m = splitMethods(s)
	return nil
}

func (m *methodList) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		*m = splitMethods(node.Value)
		return nil
	case yaml.SequenceNode:
		var list []string
		if err := node.Decode(&list); err != nil {
			return err
		}
		*m = splitMethods(list...)
		return nil
	default:
		return errors.Newf("line %d: method must be a string or a list", node.Line)
	}
}

func splitMethods(values ...string) methodList {
	var out methodList
	for _, v := range values {
		for part := range strings.SplitSeq(v, "|") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// ParseManifest reads a route manifest. The document is either a list of
// routes or a mapping with a routes key, in JSON or YAML.
func ParseManifest(data []byte) ([]model.RawRoute, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, nil
	}

	var entries []manifestEntry
	var err error
	if trimmed[0] == '[' || trimmed[0] == '{' {
		entries, err = decodeJSONManifest(trimmed)
	} else {
		entries, err = decodeYAMLManifest(trimmed)
	}
	if err != nil {
		return nil, err
	}

	routes := make([]model.RawRoute, 0, len(entries))
	for _, e := range entries {
		methods := e.Methods
		if len(methods) == 0 {
			methods = e.Method
		}
		routes = append(routes, model.RawRoute{
			Name:    strings.TrimSpace(e.Name),
			URI:     e.URI,
			Methods: methods,
			Domain:  e.Domain,
		})
	}
	return routes, nil
}

func decodeJSONManifest(data []byte) ([]manifestEntry, error) {
	if data[0] == '[' {
		var entries []manifestEntry
		if err := json.Unmarshal(data, &entries); err != nil {
			return nil, errors.Wrap(err, "decoding JSON manifest")
		}
		return entries, nil
	}
	var doc manifestDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(err, "decoding JSON manifest")
	}
	return doc.Routes, nil
}

func decodeYAMLManifest(data []byte) ([]manifestEntry, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, errors.Wrap(err, "decoding YAML manifest")
	}
	if len(root.Content) == 0 {
		return nil, nil
	}

	node := root.Content[0]
	switch node.Kind {
	case yaml.SequenceNode:
		var entries []manifestEntry
		if err := node.Decode(&entries); err != nil {
			return nil, errors.Wrap(err, "decoding YAML manifest")
		}
		return entries, nil
	case yaml.MappingNode:
		var doc manifestDocument
		if err := node.Decode(&doc); err != nil {
			return nil, errors.Wrap(err, "decoding YAML manifest")
		}
		return doc.Routes, nil
	default:
		return nil, errors.New("route manifest must be a list or a mapping with a routes key")
	}
}

// DetectFormat reports FormatOpenAPI when the document has a top-level openapi
// or swagger key, FormatManifest otherwise.
func DetectFormat(data []byte) string {
	var probe map[string]any
	if err := yaml.Unmarshal(data, &probe); err != nil {
		return FormatManifest
	}
	if _, ok := probe["openapi"]; ok {
		return FormatOpenAPI
	}
	if _, ok := probe["swagger"]; ok {
		return FormatOpenAPI
	}
	return FormatManifest
}
