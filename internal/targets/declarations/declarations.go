package declarations

import (
	"github.com/kolah/routekit/internal/config"
	"github.com/kolah/routekit/internal/model"
	"github.com/kolah/routekit/internal/templates"
	"github.com/kolah/routekit/internal/typescript"
)

const TemplateName = "typescript/declarations.tmpl"

type Target struct{}

func New() *Target {
	return &Target{}
}

// Name is the config target that selects this output.
func (t *Target) Name() string {
	return config.TargetDeclarations
}

type templateData struct {
	Namespace   string
	NameUnion   string
	PathUnion   string
	MethodUnion string
	Routes      []model.Route
}

func (t *Target) Generate(engine templates.Engine, routes []model.Route, namespace string) (string, error) {
	data := templateData{
		Namespace:   namespace,
		NameUnion:   typescript.NameUnion(routes),
		PathUnion:   typescript.PathUnion(routes),
		MethodUnion: typescript.MethodUnion(routes),
		Routes:      routes,
	}

	return engine.Execute(TemplateName, data)
}
