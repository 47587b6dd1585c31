package router

import (
	"net/http"
	"net/url"
	"slices"
	"strings"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/go-chi/chi/v5"
)

// matcher maps URLs back to route names with a chi routing tree. Every
// route is registered under a no-op handler; only the pattern lookup is used.
type matcher struct {
	mux     *chi.Mux
	routes  map[string]string
	methods []string
}

var noop = http.HandlerFunc(func(http.ResponseWriter, *http.Request) {})

func newMatcher(t *Table) (m *matcher, err error) {
	m = &matcher{
		mux:    chi.NewMux(),
		routes: make(map[string]string),
	}

	defer func() {
		if r := recover(); r != nil {
			m, err = nil, errors.Newf("building route matcher: %v", r)
		}
	}()

	seen := make(map[string]bool)
	for _, name := range t.names {
		e := t.entities[name]
		patterns := chiPatterns(e.Path)

		for _, method := range e.Methods {
			method = strings.ToUpper(method)
			if !seen[method] {
				seen[method] = true
				m.methods = append(m.methods, method)
				if !isStandardMethod(method) {
					registerMethod(method)
				}
			}
			for _, pattern := range patterns {
				key := method + " " + pattern
				if _, ok := m.routes[key]; ok {
					continue
				}
				m.routes[key] = name
				m.mux.Method(method, pattern, noop)
			}
		}
	}

	slices.SortFunc(m.methods, compareMethods)
	return m, nil
}

func (m *matcher) find(method, path string) (string, map[string]string, bool) {
	rctx := chi.NewRouteContext()
	pattern := m.mux.Find(rctx, method, path)
	if pattern == "" {
		return "", nil, false
	}
	name, ok := m.routes[method+" "+pattern]
	if !ok {
		return "", nil, false
	}

	var params map[string]string
	for i, key := range rctx.URLParams.Keys {
		if params == nil {
			params = make(map[string]string, len(rctx.URLParams.Keys))
		}
		value := rctx.URLParams.Values[i]
		if unescaped, err := url.PathUnescape(value); err == nil {
			value = unescaped
		}
		params[key] = value
	}
	return name, params, true
}

// Match finds the route whose path template matches the URL, trying GET and
// HEAD routes before the others. A URL that matches nothing is not an error.
func (t *Table) Match(rawURL string) (Entity, bool) {
	e, _, ok := t.match("", rawURL)
	return e, ok
}

// MatchMethod is Match restricted to routes accepting method.
func (t *Table) MatchMethod(method, rawURL string) (Entity, bool) {
	e, _, ok := t.match(strings.ToUpper(method), rawURL)
	return e, ok
}

func (t *Table) match(method, rawURL string) (Entity, map[string]string, bool) {
	path, ok := requestPath(rawURL)
	if !ok {
		return Entity{}, nil, false
	}

	methods := t.matcher.methods
	if method != "" {
		methods = []string{method}
	}
	for _, m := range methods {
		if name, params, ok := t.matcher.find(m, path); ok {
			return t.entities[name], params, true
		}
	}
	return Entity{}, nil, false
}

func requestPath(rawURL string) (string, bool) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", false
	}
	path := u.EscapedPath()
	if path == "" {
		return "/", true
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	if len(path) > 1 {
		path = strings.TrimSuffix(path, "/")
	}
	return path, true
}

// chiPatterns converts a path template into chi patterns. Field bindings are
// dropped, and every optional segment adds a pattern that ends before it.
func chiPatterns(path string) []string {
	var segments []string
	var cuts []int

	for seg := range strings.SplitSeq(strings.Trim(path, "/"), "/") {
		if seg == "" {
			continue
		}
		normalized, optional := normalizeSegment(seg)
		if optional {
			cuts = append(cuts, len(segments))
		}
		segments = append(segments, normalized)
	}

	patterns := []string{"/" + strings.Join(segments, "/")}
	for _, cut := range cuts {
		p := "/" + strings.Join(segments[:cut], "/")
		if !slices.Contains(patterns, p) {
			patterns = append(patterns, p)
		}
	}
	return patterns
}

func normalizeSegment(segment string) (string, bool) {
	var b strings.Builder
	optional := false
	for {
		start := strings.IndexByte(segment, '{')
		if start < 0 {
			break
		}
		end := strings.IndexByte(segment[start:], '}')
		if end < 0 {
			break
		}
		name, opt := placeholderName(segment[start+1 : start+end])
		optional = optional || opt
		b.WriteString(segment[:start])
		b.WriteString("{" + name + "}")
		segment = segment[start+end+1:]
	}
	b.WriteString(segment)
	return b.String(), optional
}

var standardMethods = []string{
	http.MethodGet,
	http.MethodHead,
	http.MethodPost,
	http.MethodPut,
	http.MethodPatch,
	http.MethodDelete,
	http.MethodOptions,
	http.MethodConnect,
	http.MethodTrace,
}

// chi keeps custom methods in a package-level map.
var registerMu sync.Mutex

func registerMethod(method string) {
	registerMu.Lock()
	defer registerMu.Unlock()
	chi.RegisterMethod(method)
}

func isStandardMethod(method string) bool {
	return slices.Contains(standardMethods, method)
}

func compareMethods(a, b string) int {
	ai, bi := slices.Index(standardMethods, a), slices.Index(standardMethods, b)
	switch {
	case ai >= 0 && bi >= 0:
		return ai - bi
	case ai >= 0:
		return -1
	case bi >= 0:
		return 1
	default:
		return strings.Compare(a, b)
	}
}
