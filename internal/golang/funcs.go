package golang

import (
	"strconv"
	"strings"
	"text/template"

	"github.com/kolah/routekit/internal/model"
)

func TemplateFuncs() template.FuncMap {
	return template.FuncMap{
		"goString":  goStringAny,
		"goStrings": GoStrings,
	}
}

func goStringAny(v any) string {
	switch s := v.(type) {
	case model.Method:
		return strconv.Quote(string(s))
	case string:
		return strconv.Quote(s)
	default:
		return `""`
	}
}

// GoStrings renders a []string composite literal, or nil for an empty list.
func GoStrings(v any) string {
	var values []string
	switch s := v.(type) {
	case []string:
		values = s
	case []model.Method:
		for _, m := range s {
			values = append(values, string(m))
		}
	}
	if len(values) == 0 {
		return "nil"
	}
	quoted := make([]string, len(values))
	for i, s := range values {
		quoted[i] = strconv.Quote(s)
	}
	return "[]string{" + strings.Join(quoted, ", ") + "}"
}
