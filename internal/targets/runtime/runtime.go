package runtime

import (
	"github.com/kolah/routekit/internal/config"
	"github.com/kolah/routekit/internal/model"
	"github.com/kolah/routekit/internal/templates"
)

const TemplateName = "typescript/runtime.tmpl"

type Target struct{}

func New() *Target {
	return &Target{}
}

// Name is the config target that selects this output.
func (t *Target) Name() string {
	return config.TargetRuntime
}

type templateData struct {
	Namespace string
	Routes    []model.Route
}

func (t *Target) Generate(engine templates.Engine, routes []model.Route, namespace string) (string, error) {
	return engine.Execute(TemplateName, templateData{
		Namespace: namespace,
		Routes:    routes,
	})
}
