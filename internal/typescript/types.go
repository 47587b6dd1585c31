// Package typescript renders route records as TypeScript type expressions and
// literals. Every union is sorted so the output is byte-stable.
package typescript

import (
	"slices"
	"strings"

	"github.com/kolah/routekit/internal/model"
)

// Never is the bottom type, emitted for empty unions and for routes that take
// no parameters.
const Never = "never"

// StringTag is the runtime placeholder recorded for every route parameter.
const StringTag = "string"

// BaseMethods are always part of the Method union, in this order.
var BaseMethods = []model.Method{
	model.MethodHead,
	model.MethodGet,
	model.MethodPost,
	model.MethodPut,
	model.MethodPatch,
	model.MethodDelete,
}

var quoteReplacer = strings.NewReplacer(`\`, `\\`, `'`, `\'`, "\n", `\n`, "\r", `\r`)

// Quote returns s as a single-quoted string literal.
func Quote(s string) string {
	return "'" + quoteReplacer.Replace(s) + "'"
}

// Union joins the quoted, sorted and de-duplicated values with " | ".
func Union(values []string) string {
	if len(values) == 0 {
		return Never
	}
	sorted := slices.Clone(values)
	slices.Sort(sorted)
	sorted = slices.Compact(sorted)

	quoted := make([]string, len(sorted))
	for i, v := range sorted {
		quoted[i] = Quote(v)
	}
	return strings.Join(quoted, " | ")
}

func NameUnion(routes []model.Route) string {
	names := make([]string, len(routes))
	for i, r := range routes {
		names[i] = r.Name
	}
	return Union(names)
}

func PathUnion(routes []model.Route) string {
	paths := make([]string, len(routes))
	for i, r := range routes {
		paths[i] = r.Path()
	}
	return Union(paths)
}

// MethodUnion lists BaseMethods followed by any other method the routes use,
// sorted.
func MethodUnion(routes []model.Route) string {
	var extra []string
	for _, r := range routes {
		for _, m := range r.Methods {
			if !slices.Contains(BaseMethods, m) {
				extra = append(extra, string(m))
			}
		}
	}
	slices.Sort(extra)
	extra = slices.Compact(extra)

	parts := make([]string, 0, len(BaseMethods)+len(extra))
	for _, m := range BaseMethods {
		parts = append(parts, Quote(string(m)))
	}
	for _, m := range extra {
		parts = append(parts, Quote(m))
	}
	return strings.Join(parts, " | ")
}

// ParamsType is the value type of a route's entry in the Params mapped type:
// an object with one optional property per parameter, or never.
func ParamsType(r model.Route, namespace string) string {
	if !r.HasParameters() {
		return Never
	}
	props := make([]string, len(r.Parameters))
	for i, p := range r.Parameters {
		props[i] = Quote(p.Name) + "?: " + namespace + ".ParamType"
	}
	return "{ " + strings.Join(props, "; ") + " }"
}

// RuntimeParams is the params shape recorded in the runtime table: every
// parameter tagged 'string', or undefined.
func RuntimeParams(r model.Route) string {
	if !r.HasParameters() {
		return "undefined"
	}
	props := make([]string, len(r.Parameters))
	for i, p := range r.Parameters {
		props[i] = Quote(p.Name) + ": " + Quote(StringTag)
	}
	return "{ " + strings.Join(props, ", ") + " }"
}

// QuoteList renders an array literal of quoted strings, keeping their order.
func QuoteList[T ~string](values []T) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = Quote(string(v))
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}
