package routes

import (
	"strings"

	"github.com/kolah/routekit/internal/model"
)

// SkipFunc is notified of every record a filter drops, with the prefix that
// matched.
type SkipFunc func(r model.Route, prefix string)

// Filter drops every record whose name starts with one of skipNamePrefixes or
// whose URI starts with one of skipPathPrefixes. Trailing "*" markers on the
// prefixes are ignored. Surviving records keep their relative order.
func Filter(records []model.Route, skipNamePrefixes, skipPathPrefixes []string) []model.Route {
	return FilterFunc(records, skipNamePrefixes, skipPathPrefixes, nil)
}

// FilterFunc is Filter with a callback for dropped records. onSkip may be nil.
func FilterFunc(records []model.Route, skipNamePrefixes, skipPathPrefixes []string, onSkip SkipFunc) []model.Route {
	names := normalizePrefixes(skipNamePrefixes, false)
	paths := normalizePrefixes(skipPathPrefixes, true)

	result := make([]model.Route, 0, len(records))
	for _, r := range records {
		if prefix, skip := skipReason(r, names, paths); skip {
			if onSkip != nil {
				onSkip(r, prefix)
			}
			continue
		}
		result = append(result, r)
	}
	return result
}

func skipReason(r model.Route, namePrefixes, pathPrefixes []string) (string, bool) {
	for _, p := range namePrefixes {
		if strings.HasPrefix(r.Name, p) {
			return p, true
		}
	}
	// Registries disagree on the leading slash ("admin/dash" vs "/admin/dash").
	uri := strings.TrimPrefix(r.URI, "/")
	for _, p := range pathPrefixes {
		if p == rootPrefix {
			if uri == "" {
				return p, true
			}
			continue
		}
		if strings.HasPrefix(uri, p) {
			return p, true
		}
	}
	return "", false
}

// rootPrefix is a bare "/" path prefix. It skips the root route only.
const rootPrefix = "/"

func normalizePrefixes(prefixes []string, path bool) []string {
	var result []string
	for _, p := range prefixes {
		if p == "" {
			continue
		}
		wildcard := strings.HasSuffix(p, "*")
		p = strings.TrimRight(p, "*")
		if path {
			p = strings.TrimPrefix(p, "/")
			if p == "" && !wildcard {
				p = rootPrefix
			}
		}
		result = append(result, p)
	}
	return result
}
