package typescript

import (
	"fmt"
	"text/template"

	"github.com/kolah/routekit/internal/model"
)

func TemplateFuncs() template.FuncMap {
	return template.FuncMap{
		"tsString":      quoteAny,
		"tsUnion":       Union,
		"nameUnion":     NameUnion,
		"pathUnion":     PathUnion,
		"methodUnion":   MethodUnion,
		"paramsType":    ParamsType,
		"runtimeParams": RuntimeParams,
		"tsMethods":     QuoteList[model.Method],
	}
}

// quoteAny lets templates quote named string types such as model.Method.
func quoteAny(v any) string {
	return Quote(fmt.Sprint(v))
}
