package loader

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/cockroachdb/errors"
	"github.com/kballard/go-shellquote"
	"github.com/pb33f/libopenapi"
	"github.com/pb33f/libopenapi/datamodel"
	validator "github.com/pb33f/libopenapi-validator"
	"go.uber.org/zap"

	"github.com/kolah/routekit/internal/config"
	"github.com/kolah/routekit/internal/logger"
	"github.com/kolah/routekit/internal/model"
)

const (
	FormatManifest = "manifest"
	FormatOpenAPI  = "openapi"
)

type Result struct {
	Routes   []model.RawRoute
	Format   string
	Version  string
	Warnings []string
}

// CommandRunner runs a command and returns its standard output.
type CommandRunner func(ctx context.Context, name string, args ...string) ([]byte, error)

// Source reads the route registry described by the source configuration. It
// implements routes.Registry.
type Source struct {
	kind     string
	file     string
	command  string
	validate bool
	run      CommandRunner
	log      *zap.SugaredLogger
}

func NewSource(cfg *config.Config, log *zap.SugaredLogger) *Source {
	if log == nil {
		log = logger.Nop()
	}
	return &Source{
		kind:     cfg.SourceKind(),
		file:     cfg.Source.File,
		command:  cfg.Source.Command,
		validate: cfg.Source.Validate,
		run:      ExecRunner,
		log:      log,
	}
}

// WithRunner replaces the command runner, for tests and embedding.
func (s *Source) WithRunner(run CommandRunner) *Source {
	s.run = run
	return s
}

func (s *Source) ListRoutes(ctx context.Context) ([]model.RawRoute, error) {
	var (
		result *Result
		err    error
	)

	switch s.kind {
	case config.SourceCommand:
		result, err = s.loadCommand(ctx)
	case config.SourceManifest:
		result, err = loadFile(s.file, FormatManifest, s.validate)
	case config.SourceOpenAPI:
		result, err = loadFile(s.file, FormatOpenAPI, s.validate)
	default:
		result, err = loadFile(s.file, "", s.validate)
	}
	if err != nil {
		return nil, err
	}

	for _, w := range result.Warnings {
		s.log.Warnw(w, logger.FieldSource, result.Format)
	}
	s.log.Debugw("registry loaded",
		logger.FieldSource, result.Format,
		logger.FieldFile, s.file,
		logger.FieldCount, len(result.Routes))

	return result.Routes, nil
}

func (s *Source) loadCommand(ctx context.Context) (*Result, error) {
	args, err := shellquote.Split(s.command)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing source command %q", s.command)
	}
	if len(args) == 0 {
		return nil, errors.New("source command is empty")
	}

	s.log.Debugw("running route source command", "command", args)
	out, err := s.run(ctx, args[0], args[1:]...)
	if err != nil {
		return nil, errors.Wrapf(err, "running %q", s.command)
	}

	routes, err := ParseManifest(out)
	if err != nil {
		return nil, errors.Wrapf(err, "reading output of %q", s.command)
	}
	return &Result{Routes: routes, Format: FormatManifest}, nil
}

// ExecRunner runs the command with os/exec. Standard error is attached to the
// returned error as a detail.
func ExecRunner(ctx context.Context, name string, args ...string) ([]byte, error) {
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, errors.WithDetail(err, msg)
		}
		return nil, err
	}
	return stdout.Bytes(), nil
}

// LoadFile reads a manifest or OpenAPI document, detecting which from its
// contents.
func LoadFile(path string) (*Result, error) {
	return loadFile(path, "", false)
}

func loadFile(path, format string, validate bool) (*Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading route source")
	}

	if format == "" {
		format = DetectFormat(data)
	}

	if format == FormatOpenAPI {
		absPath, err := filepath.Abs(path)
		if err != nil {
			return nil, errors.Wrap(err, "resolving absolute path")
		}
		docConfig := &datamodel.DocumentConfiguration{
			BasePath:            filepath.Dir(absPath),
			AllowFileReferences: true,
		}
		return LoadOpenAPI(data, docConfig, validate)
	}

	routes, err := ParseManifest(data)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing route manifest %s", path)
	}
	return &Result{Routes: routes, Format: FormatManifest}, nil
}

// LoadOpenAPI reads routes from an OpenAPI 3.x document. With validate set,
// document validation failures are reported as warnings.
func LoadOpenAPI(data []byte, docConfig *datamodel.DocumentConfiguration, validate bool) (*Result, error) {
	var doc libopenapi.Document
	var err error

	if docConfig != nil {
		doc, err = libopenapi.NewDocumentWithConfiguration(data, docConfig)
	} else {
		doc, err = libopenapi.NewDocument(data)
	}
	if err != nil {
		return nil, errors.Wrap(err, "parsing OpenAPI document")
	}

	version := doc.GetVersion()
	if err := checkOpenAPIVersion(version); err != nil {
		return nil, err
	}

	v3Model, err := doc.BuildV3Model()
	if err != nil {
		return nil, errors.Wrap(err, "building OpenAPI model")
	}

	result := &Result{
		Routes:  Transform(v3Model),
		Format:  FormatOpenAPI,
		Version: version,
	}

	if validate {
		result.Warnings = append(result.Warnings, validateDocument(doc)...)
	}

	return result, nil
}

// supportedOpenAPI accepts every 3.x document, including 3.2 drafts.
const supportedOpenAPI = ">= 3.0.0-0, < 4.0.0-0"

func checkOpenAPIVersion(version string) error {
	v, err := semver.NewVersion(version)
	if err != nil {
		return errors.Wrapf(err, "invalid OpenAPI version %q", version)
	}
	constraint, err := semver.NewConstraint(supportedOpenAPI)
	if err != nil {
		return errors.Wrap(err, "invalid OpenAPI version constraint")
	}
	if !constraint.Check(v) {
		return errors.Newf("unsupported OpenAPI version: %s (only 3.x supported)", version)
	}
	return nil
}

func validateDocument(doc libopenapi.Document) []string {
	v, errs := validator.NewValidator(doc)
	if len(errs) > 0 {
		var warnings []string
		for _, err := range errs {
			warnings = append(warnings, "validator: "+err.Error())
		}
		return warnings
	}

	valid, validationErrs := v.ValidateDocument()
	if valid {
		return nil
	}
	warnings := make([]string, 0, len(validationErrs))
	for _, e := range validationErrs {
		warnings = append(warnings, "invalid OpenAPI document: "+e.Message)
	}
	return warnings
}
