package config

import (
	"os"
	"slices"

	"github.com/cockroachdb/errors"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/cobra"
)

const DefaultFile = "routekit.yaml"

const (
	TargetDeclarations = "declarations"
	TargetRuntime      = "runtime"
	TargetGo           = "go"
)

const (
	SourceManifest = "manifest"
	SourceCommand  = "command"
	SourceOpenAPI  = "openapi"
)

type Config struct {
	Source     SourceConfig     `koanf:"source"`
	Routes     RoutesConfig     `koanf:"routes"`
	TypeScript TypeScriptConfig `koanf:"typescript"`
	Go         GoConfig         `koanf:"go"`
	Templates  TemplateConfig   `koanf:"templates"`
	Targets    []string         `koanf:"targets"`
	Log        LogConfig        `koanf:"log"`
}

type SourceConfig struct {
	Kind     string `koanf:"kind"`
	File     string `koanf:"file"`
	Command  string `koanf:"command"`
	Validate bool   `koanf:"validate"`
}

type RoutesConfig struct {
	SkipNamePrefixes []string `koanf:"skip-name-prefixes"`
	SkipPathPrefixes []string `koanf:"skip-path-prefixes"`
}

type TypeScriptConfig struct {
	OutputDir        string `koanf:"output-dir"`
	Namespace        string `koanf:"namespace"`
	DeclarationsFile string `koanf:"declarations-file"`
	RuntimeFile      string `koanf:"runtime-file"`
}

type GoConfig struct {
	OutputDir string `koanf:"output-dir"`
	Package   string `koanf:"package"`
	File      string `koanf:"file"`
}

type TemplateConfig struct {
	Dir string `koanf:"dir"`
}

type LogConfig struct {
	Level string `koanf:"level"`
	JSON  bool   `koanf:"json"`
}

// Defaults mirror the file names the frontend package expects.
func defaults() map[string]any {
	return map[string]any{
		"typescript.output-dir":        "resources/js",
		"typescript.namespace":         "App.Route",
		"typescript.declarations-file": "types-routes.d.ts",
		"typescript.runtime-file":      "routes.ts",
		"go.package":                   "routes",
		"go.file":                      "routes_gen.go",
		"targets":                      []string{TargetDeclarations, TargetRuntime},
		"log.level":                    "info",
	}
}

// BindCommonFlags binds the flags shared by every generate subcommand.
func BindCommonFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()

	flags.StringP("config", "c", "", "Config file path (default: routekit.yaml)")
	flags.String("source-kind", "", "Route source: manifest, command, openapi")
	flags.StringP("source", "s", "", "Route manifest or OpenAPI file")
	flags.String("source-command", "", "Command printing the route manifest (e.g. \"php artisan route:list --json\")")
	flags.Bool("validate", false, "Validate OpenAPI sources before reading routes")
	flags.StringSlice("skip-name", nil, "Route name prefixes to skip (e.g. admin.*)")
	flags.StringSlice("skip-path", nil, "Route path prefixes to skip (e.g. api/*)")
	flags.String("templates", "", "Custom templates directory")
	flags.String("log-level", "", "Log level: debug, info, warn, error")
	flags.Bool("log-json", false, "Log as JSON")
	flags.BoolP("verbose", "v", false, "Shorthand for --log-level=debug")
	flags.Bool("dry-run", false, "Print output without writing files")
}

// BindOutputFlags binds the output flags of the typescript and go targets.
func BindOutputFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()

	flags.StringP("output-dir", "o", "", "Output directory for generated TypeScript")
	flags.String("namespace", "", "TypeScript namespace for route types (default: App.Route)")
	flags.String("go-output-dir", "", "Output directory for the generated Go route table")
	flags.String("go-package", "", "Go package name for the generated route table")
}

func Load(cmd *cobra.Command, targets []string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, errors.Wrap(err, "loading defaults")
	}

	configFile, _ := cmd.Flags().GetString("config")
	if configFile == "" {
		configFile, _ = cmd.PersistentFlags().GetString("config")
	}
	if configFile == "" {
		if _, err := os.Stat(DefaultFile); err == nil {
			configFile = DefaultFile
		}
	}

	if configFile != "" {
		if err := k.Load(file.Provider(configFile), yaml.Parser()); err != nil {
			return nil, errors.Wrap(err, "reading config file")
		}
	}

	flagsMap := buildFlagsMap(cmd)
	if len(flagsMap) > 0 {
		if err := k.Load(confmap.Provider(flagsMap, "."), nil); err != nil {
			return nil, errors.Wrap(err, "loading flags")
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, errors.Wrap(err, "unmarshaling config")
	}

	// CLI targets override config file targets
	if len(targets) > 0 {
		cfg.Targets = targets
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func buildFlagsMap(cmd *cobra.Command) map[string]any {
	m := make(map[string]any)

	getString := func(name string) string {
		if v, err := cmd.Flags().GetString(name); err == nil && v != "" {
			return v
		}
		if v, err := cmd.PersistentFlags().GetString(name); err == nil && v != "" {
			return v
		}
		return ""
	}

	getStringSlice := func(name string) []string {
		if v, err := cmd.Flags().GetStringSlice(name); err == nil && len(v) > 0 {
			return v
		}
		if v, err := cmd.PersistentFlags().GetStringSlice(name); err == nil && len(v) > 0 {
			return v
		}
		return nil
	}

	flagChanged := func(name string) bool {
		return cmd.Flags().Changed(name) || cmd.PersistentFlags().Changed(name)
	}

	getBool := func(name string) bool {
		if v, err := cmd.Flags().GetBool(name); err == nil && v {
			return v
		}
		if v, err := cmd.PersistentFlags().GetBool(name); err == nil {
			return v
		}
		return false
	}

	if v := getString("source-kind"); v != "" {
		m["source.kind"] = v
	}
	if v := getString("source"); v != "" {
		m["source.file"] = v
	}
	if v := getString("source-command"); v != "" {
		m["source.command"] = v
	}
	if flagChanged("validate") {
		m["source.validate"] = getBool("validate")
	}
	if v := getStringSlice("skip-name"); len(v) > 0 {
		m["routes.skip-name-prefixes"] = v
	}
	if v := getStringSlice("skip-path"); len(v) > 0 {
		m["routes.skip-path-prefixes"] = v
	}
	if v := getString("templates"); v != "" {
		m["templates.dir"] = v
	}
	if v := getString("log-level"); v != "" {
		m["log.level"] = v
	}
	if flagChanged("log-json") {
		m["log.json"] = getBool("log-json")
	}
	if getBool("verbose") {
		m["log.level"] = "debug"
	}

	// TypeScript flags (under typescript. namespace)
	if v := getString("output-dir"); v != "" {
		m["typescript.output-dir"] = v
	}
	if v := getString("namespace"); v != "" {
		m["typescript.namespace"] = v
	}

	// Go flags (under go. namespace)
	if v := getString("go-output-dir"); v != "" {
		m["go.output-dir"] = v
	}
	if v := getString("go-package"); v != "" {
		m["go.package"] = v
	}

	return m
}

func (c *Config) Validate() error {
	validKinds := map[string]bool{"": true, SourceManifest: true, SourceCommand: true, SourceOpenAPI: true}
	if !validKinds[c.Source.Kind] {
		return errors.Newf("invalid source kind: %s (valid: manifest, command, openapi)", c.Source.Kind)
	}
	switch {
	case c.Source.Kind == SourceCommand && c.Source.Command == "":
		return errors.New("source command is required for source kind \"command\"")
	case (c.Source.Kind == SourceManifest || c.Source.Kind == SourceOpenAPI) && c.Source.File == "":
		return errors.Newf("source file is required for source kind %q", c.Source.Kind)
	case c.Source.File == "" && c.Source.Command == "":
		return errors.WithHint(
			errors.New("route source is required"),
			"set source.file or source.command, or pass --source / --source-command")
	}

	if len(c.Targets) == 0 {
		return errors.New("at least one target is required")
	}
	validTargets := map[string]bool{TargetDeclarations: true, TargetRuntime: true, TargetGo: true}
	for _, t := range c.Targets {
		if !validTargets[t] {
			return errors.Newf("invalid target: %s (valid: declarations, runtime, go)", t)
		}
	}

	if c.HasTarget(TargetDeclarations) || c.HasTarget(TargetRuntime) {
		if c.TypeScript.OutputDir == "" {
			return errors.New("typescript output directory is required")
		}
		if c.TypeScript.Namespace == "" {
			return errors.New("typescript namespace is required")
		}
	}
	if c.HasTarget(TargetDeclarations) && c.TypeScript.DeclarationsFile == "" {
		return errors.New("declarations file name is required")
	}
	if c.HasTarget(TargetRuntime) && c.TypeScript.RuntimeFile == "" {
		return errors.New("runtime file name is required")
	}

	if c.HasTarget(TargetGo) {
		if c.Go.OutputDir == "" {
			return errors.New("go output directory is required")
		}
		if c.Go.Package == "" {
			return errors.New("go package name is required")
		}
		if c.Go.File == "" {
			return errors.New("go file name is required")
		}
	}

	return nil
}

// HasTarget checks if a specific target should be generated
func (c *Config) HasTarget(target string) bool {
	return slices.Contains(c.Targets, target)
}

// SourceKind resolves an empty kind from the other source settings. Files are
// reported as "" so the loader can sniff their contents.
func (c *Config) SourceKind() string {
	if c.Source.Kind != "" {
		return c.Source.Kind
	}
	if c.Source.File == "" && c.Source.Command != "" {
		return SourceCommand
	}
	return ""
}
