package router

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/cockroachdb/errors"
)

// Params holds route parameter values keyed by placeholder name. Keys that are
// not placeholders of the route end up in the query string.
type Params map[string]any

// RouteConfig describes a full link: route, parameters, extra query values
// and an optional fragment.
type RouteConfig struct {
	Name   string
	Params Params
	Query  url.Values
	Hash   string
}

// Route resolves a route name to a path. Every placeholder is replaced in
// declaration order; a missing optional parameter drops its segment.
func (t *Table) Route(name string, params Params) (string, error) {
	return t.To(RouteConfig{Name: name, Params: params})
}

func (t *Table) To(cfg RouteConfig) (string, error) {
	e, ok := t.entities[cfg.Name]
	if !ok {
		return "", errors.Wrapf(ErrUnknownRoute, "route %q", cfg.Name)
	}

	used := make(map[string]bool)
	var segments []string
	for seg := range strings.SplitSeq(strings.Trim(e.Path, "/"), "/") {
		if seg == "" {
			continue
		}
		resolved, err := substitute(e.Name, seg, cfg.Params, used)
		if err != nil {
			return "", err
		}
		if resolved != "" {
			segments = append(segments, resolved)
		}
	}

	var b strings.Builder
	b.WriteString("/")
	b.WriteString(strings.Join(segments, "/"))

	query := url.Values{}
	for key, value := range cfg.Params {
		if used[key] {
			continue
		}
		if s, ok := stringify(value); ok {
			query.Add(key, s)
		}
	}
	for key, values := range cfg.Query {
		for _, v := range values {
			query.Add(key, v)
		}
	}
	if len(query) > 0 {
		b.WriteString("?")
		b.WriteString(query.Encode())
	}

	if hash := strings.TrimPrefix(cfg.Hash, "#"); hash != "" {
		b.WriteString("#")
		b.WriteString(hash)
	}

	return b.String(), nil
}

// substitute replaces the placeholders of one path segment.
func substitute(route, segment string, params Params, used map[string]bool) (string, error) {
	var b strings.Builder
	for {
		start := strings.IndexByte(segment, '{')
		if start < 0 {
			break
		}
		end := strings.IndexByte(segment[start:], '}')
		if end < 0 {
			break
		}
		b.WriteString(segment[:start])
		token := segment[start+1 : start+end]
		segment = segment[start+end+1:]

		name, optional := placeholderName(token)
		used[name] = true

		value, ok := stringify(params[name])
		if !ok || value == "" {
			if optional {
				continue
			}
			return "", errors.Wrapf(ErrMissingParameter, "route %q requires %q", route, name)
		}
		b.WriteString(url.PathEscape(value))
	}
	b.WriteString(segment)
	return b.String(), nil
}

func placeholderName(token string) (name string, optional bool) {
	if strings.HasSuffix(token, "?") {
		optional = true
		token = strings.TrimSuffix(token, "?")
	}
	if i := strings.IndexByte(token, ':'); i >= 0 {
		token = token[:i]
	}
	return token, optional
}

func stringify(v any) (string, bool) {
	switch v := v.(type) {
	case nil:
		return "", false
	case string:
		return v, true
	case bool:
		if v {
			return "1", true
		}
		return "0", true
	case fmt.Stringer:
		return v.String(), true
	default:
		return fmt.Sprint(v), true
	}
}
