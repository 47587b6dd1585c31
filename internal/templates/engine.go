package templates

import (
	"bytes"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"text/template"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
)

type Engine interface {
	Execute(name string, data any) (string, error)
}

// TextTemplateEngine renders the built-in templates. Templates found in an
// optional custom directory replace built-ins with the same relative path.
type TextTemplateEngine struct {
	templates *template.Template
	funcs     template.FuncMap
	embedded  fs.FS
	customDir string
	builtin   map[string]bool
	overrides []string
	log       *zap.SugaredLogger
}

type Option func(*TextTemplateEngine)

// WithLogger logs every template as it is loaded, with its origin.
func WithLogger(log *zap.SugaredLogger) Option {
	return func(e *TextTemplateEngine) {
		if log != nil {
			e.log = log
		}
	}
}

func NewEngine(embedded fs.FS, customDir string, funcs template.FuncMap, opts ...Option) (*TextTemplateEngine, error) {
	e := &TextTemplateEngine{
		embedded:  embedded,
		customDir: customDir,
		funcs:     funcs,
		builtin:   make(map[string]bool),
		log:       zap.NewNop().Sugar(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if err := e.load(); err != nil {
		return nil, err
	}
	return e, nil
}

// Overrides returns the built-in template names replaced from the custom
// directory, sorted.
func (e *TextTemplateEngine) Overrides() []string {
	return slices.Clone(e.overrides)
}

func (e *TextTemplateEngine) load() error {
	e.templates = template.New("").Funcs(e.funcs)

	err := fs.WalkDir(e.embedded, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".tmpl") {
			return nil
		}
		content, err := fs.ReadFile(e.embedded, path)
		if err != nil {
			return errors.Wrapf(err, "reading embedded template %s", path)
		}
		name := strings.TrimPrefix(path, "templates/")
		if _, err := e.templates.New(name).Parse(string(content)); err != nil {
			return errors.Wrapf(err, "parsing embedded template %s", path)
		}
		e.builtin[name] = true
		e.log.Debugw("template loaded", "template", name, "origin", "builtin")
		return nil
	})
	if err != nil {
		return errors.Wrap(err, "loading embedded templates")
	}

	if e.customDir != "" {
		err = filepath.WalkDir(e.customDir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() || !strings.HasSuffix(path, ".tmpl") {
				return nil
			}
			content, err := os.ReadFile(path)
			if err != nil {
				return errors.Wrapf(err, "reading custom template %s", path)
			}
			relPath, _ := filepath.Rel(e.customDir, path)
			name := filepath.ToSlash(relPath)
			if _, err := e.templates.New(name).Parse(string(content)); err != nil {
				return errors.Wrapf(err, "parsing custom template %s", path)
			}
			if e.builtin[name] {
				e.overrides = append(e.overrides, name)
				e.log.Infow("template overridden", "template", name, "origin", path)
			} else {
				// Not a target template; reachable only through {{template}}.
				e.log.Debugw("template loaded", "template", name, "origin", path)
			}
			return nil
		})
		if err != nil && !os.IsNotExist(err) {
			return errors.Wrap(err, "loading custom templates")
		}
		slices.Sort(e.overrides)
	}

	return nil
}

func (e *TextTemplateEngine) Execute(name string, data any) (string, error) {
	tmpl := e.templates.Lookup(name)
	if tmpl == nil {
		return "", errors.Newf("template not found: %s", name)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", errors.Wrapf(err, "executing template %s", name)
	}

	return buf.String(), nil
}
