package gotable

import (
	"github.com/kolah/routekit/internal/config"
	"github.com/kolah/routekit/internal/model"
	"github.com/kolah/routekit/internal/templates"
)

const (
	TemplateName = "go/routes.tmpl"
	RouterImport = "github.com/kolah/routekit/router"
)

type Target struct{}

func New() *Target {
	return &Target{}
}

// Name is the config target that selects this output.
func (t *Target) Name() string {
	return config.TargetGo
}

type templateData struct {
	Package      string
	RouterImport string
	Routes       []model.Route
}

// Generate renders the unformatted Go source of the route table.
func (t *Target) Generate(engine templates.Engine, routes []model.Route, pkg string) (string, error) {
	return engine.Execute(TemplateName, templateData{
		Package:      pkg,
		RouterImport: RouterImport,
		Routes:       routes,
	})
}
