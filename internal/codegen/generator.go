package codegen

import (
	"maps"
	"text/template"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"github.com/kolah/routekit/internal/config"
	"github.com/kolah/routekit/internal/golang"
	"github.com/kolah/routekit/internal/model"
	"github.com/kolah/routekit/internal/targets/declarations"
	"github.com/kolah/routekit/internal/targets/gotable"
	"github.com/kolah/routekit/internal/targets/runtime"
	"github.com/kolah/routekit/internal/templates"
	"github.com/kolah/routekit/internal/typescript"
	embeddedtmpl "github.com/kolah/routekit/templates"
)

const DefaultNamespace = "App.Route"

type Generator struct {
	config *config.Config
	engine templates.Engine
}

type Output struct {
	Target   string
	Dir      string
	Filename string
	Content  string
}

// Artifacts are the two TypeScript files generated from one route snapshot.
type Artifacts struct {
	Declarations string
	Runtime      string
}

// New loads the templates for cfg. A nil log discards template loading
// messages.
func New(cfg *config.Config, log *zap.SugaredLogger) (*Generator, error) {
	engine, err := newEngine(cfg.Templates.Dir, templates.WithLogger(log))
	if err != nil {
		return nil, err
	}

	return &Generator{
		config: cfg,
		engine: engine,
	}, nil
}

// NewEngine loads the built-in templates, overridden by customDir if set.
func NewEngine(customDir string) (templates.Engine, error) {
	engine, err := newEngine(customDir)
	if err != nil {
		return nil, err
	}
	return engine, nil
}

func newEngine(customDir string, opts ...templates.Option) (*templates.TextTemplateEngine, error) {
	engine, err := templates.NewEngine(embeddedtmpl.FS, customDir, templateFuncs(), opts...)
	if err != nil {
		return nil, errors.Wrap(err, "creating template engine")
	}
	return engine, nil
}

func templateFuncs() template.FuncMap {
	funcs := typescript.TemplateFuncs()
	maps.Copy(funcs, golang.TemplateFuncs())
	return funcs
}

// Emit renders the declaration file and the runtime module for routes with
// the built-in templates. Identical input always yields identical output.
func Emit(routes []model.Route, namespace string) (Artifacts, error) {
	engine, err := NewEngine("")
	if err != nil {
		return Artifacts{}, err
	}
	return EmitWith(engine, routes, namespace)
}

func EmitWith(engine templates.Engine, routes []model.Route, namespace string) (Artifacts, error) {
	if namespace == "" {
		namespace = DefaultNamespace
	}

	decl, err := declarations.New().Generate(engine, routes, namespace)
	if err != nil {
		return Artifacts{}, errors.Wrap(err, "generating declarations")
	}

	rt, err := runtime.New().Generate(engine, routes, namespace)
	if err != nil {
		return Artifacts{}, errors.Wrap(err, "generating runtime module")
	}

	return Artifacts{Declarations: decl, Runtime: rt}, nil
}

func (g *Generator) Generate(routes []model.Route) ([]Output, error) {
	var outputs []Output
	ts := g.config.TypeScript

	if g.config.HasTarget(config.TargetDeclarations) || g.config.HasTarget(config.TargetRuntime) {
		artifacts, err := EmitWith(g.engine, routes, ts.Namespace)
		if err != nil {
			return nil, err
		}
		if target := declarations.New().Name(); g.config.HasTarget(target) {
			outputs = append(outputs, Output{
				Target:   target,
				Dir:      ts.OutputDir,
				Filename: ts.DeclarationsFile,
				Content:  artifacts.Declarations,
			})
		}
		if target := runtime.New().Name(); g.config.HasTarget(target) {
			outputs = append(outputs, Output{
				Target:   target,
				Dir:      ts.OutputDir,
				Filename: ts.RuntimeFile,
				Content:  artifacts.Runtime,
			})
		}
	}

	if table := gotable.New(); g.config.HasTarget(table.Name()) {
		content, err := table.Generate(g.engine, routes, g.config.Go.Package)
		if err != nil {
			return nil, errors.Wrap(err, "generating go route table")
		}
		formatted, err := golang.Format([]byte(content))
		if err != nil {
			return nil, errors.Wrap(err, "formatting go route table")
		}
		outputs = append(outputs, Output{
			Target:   table.Name(),
			Dir:      g.config.Go.OutputDir,
			Filename: g.config.Go.File,
			Content:  string(formatted),
		})
	}

	return outputs, nil
}
