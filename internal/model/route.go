package model

import "strings"

type Method string

const (
	MethodGet     Method = "GET"
	MethodPost    Method = "POST"
	MethodPut     Method = "PUT"
	MethodDelete  Method = "DELETE"
	MethodPatch   Method = "PATCH"
	MethodHead    Method = "HEAD"
	MethodOptions Method = "OPTIONS"
)

// RawRoute is a route descriptor as reported by the host framework's registry,
// before normalization.
type RawRoute struct {
	Name    string
	URI     string
	Methods []string
	Domain  string
}

// Route is the normalized record of a single named route.
type Route struct {
	Name       string
	URI        string
	Methods    []Method
	Parameters []Parameter
}

type Parameter struct {
	Name     string
	Required bool
}

// NewRoute normalizes a raw registry entry. Methods are upper-cased and
// de-duplicated in registry order; parameters are derived from the URI.
func NewRoute(raw RawRoute) Route {
	return Route{
		Name:       raw.Name,
		URI:        raw.URI,
		Methods:    normalizeMethods(raw.Methods),
		Parameters: ParseParameters(raw.URI),
	}
}

// Path returns the URI with a leading slash. The root URI is always "/".
func (r Route) Path() string {
	if r.URI == "" || r.URI == "/" {
		return "/"
	}
	if strings.HasPrefix(r.URI, "/") {
		return r.URI
	}
	return "/" + r.URI
}

// Method returns the first registered method, or "" for a route without methods.
func (r Route) Method() Method {
	if len(r.Methods) == 0 {
		return ""
	}
	return r.Methods[0]
}

func (r Route) ParameterNames() []string {
	if len(r.Parameters) == 0 {
		return nil
	}
	names := make([]string, len(r.Parameters))
	for i, p := range r.Parameters {
		names[i] = p.Name
	}
	return names
}

func (r Route) HasParameters() bool {
	return len(r.Parameters) > 0
}

// ParseParameters extracts placeholder names from a URI pattern.
//
//	{post}       required
//	{post?}      optional
//	{post:slug}  required, bound by field "slug"
func ParseParameters(uri string) []Parameter {
	var params []Parameter
	seen := make(map[string]bool)

	for {
		start := strings.IndexByte(uri, '{')
		if start < 0 {
			break
		}
		end := strings.IndexByte(uri[start:], '}')
		if end < 0 {
			break
		}
		token := uri[start+1 : start+end]
		uri = uri[start+end+1:]

		required := true
		if strings.HasSuffix(token, "?") {
			required = false
			token = strings.TrimSuffix(token, "?")
		}
		if i := strings.IndexByte(token, ':'); i >= 0 {
			token = token[:i]
		}
		if token == "" || seen[token] {
			continue
		}
		seen[token] = true
		params = append(params, Parameter{Name: token, Required: required})
	}

	return params
}

func normalizeMethods(methods []string) []Method {
	var result []Method
	seen := make(map[Method]bool)
	for _, m := range methods {
		method := Method(strings.ToUpper(strings.TrimSpace(m)))
		if method == "" || seen[method] {
			continue
		}
		seen[method] = true
		result = append(result, method)
	}
	return result
}
