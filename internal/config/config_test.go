package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

func validConfig() Config {
	return Config{
		Source:  SourceConfig{File: "routes.json"},
		Targets: []string{TargetDeclarations, TargetRuntime},
		TypeScript: TypeScriptConfig{
			OutputDir:        "resources/js",
			Namespace:        "App.Route",
			DeclarationsFile: "types-routes.d.ts",
			RuntimeFile:      "routes.ts",
		},
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(c *Config)
		wantErr     bool
		errContains string
	}{
		{
			name:   "valid config",
			mutate: func(c *Config) {},
		},
		{
			name:        "missing source",
			mutate:      func(c *Config) { c.Source = SourceConfig{} },
			wantErr:     true,
			errContains: "route source is required",
		},
		{
			name:        "invalid source kind",
			mutate:      func(c *Config) { c.Source.Kind = "artisan" },
			wantErr:     true,
			errContains: "invalid source kind",
		},
		{
			name:        "command kind without command",
			mutate:      func(c *Config) { c.Source = SourceConfig{Kind: SourceCommand, File: "routes.json"} },
			wantErr:     true,
			errContains: "source command is required",
		},
		{
			name:        "openapi kind without file",
			mutate:      func(c *Config) { c.Source = SourceConfig{Kind: SourceOpenAPI, Command: "x"} },
			wantErr:     true,
			errContains: "source file is required",
		},
		{
			name: "command only",
			mutate: func(c *Config) {
				c.Source = SourceConfig{Command: "php artisan route:list --json"}
			},
		},
		{
			name:        "no targets",
			mutate:      func(c *Config) { c.Targets = nil },
			wantErr:     true,
			errContains: "at least one target",
		},
		{
			name:        "invalid target",
			mutate:      func(c *Config) { c.Targets = []string{"python"} },
			wantErr:     true,
			errContains: "invalid target: python",
		},
		{
			name:        "missing typescript output dir",
			mutate:      func(c *Config) { c.TypeScript.OutputDir = "" },
			wantErr:     true,
			errContains: "typescript output directory is required",
		},
		{
			name:        "missing namespace",
			mutate:      func(c *Config) { c.TypeScript.Namespace = "" },
			wantErr:     true,
			errContains: "typescript namespace is required",
		},
		{
			name:        "missing runtime file",
			mutate:      func(c *Config) { c.TypeScript.RuntimeFile = "" },
			wantErr:     true,
			errContains: "runtime file name is required",
		},
		{
			name: "go target only needs go settings",
			mutate: func(c *Config) {
				c.Targets = []string{TargetGo}
				c.TypeScript = TypeScriptConfig{}
				c.Go = GoConfig{OutputDir: "internal/routes", Package: "routes", File: "routes_gen.go"}
			},
		},
		{
			name: "go target without package",
			mutate: func(c *Config) {
				c.Targets = []string{TargetGo}
				c.Go = GoConfig{OutputDir: "internal/routes", File: "routes_gen.go"}
			},
			wantErr:     true,
			errContains: "go package name is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				require.Error(t, err)
				require.Contains(t, err.Error(), tt.errContains)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func newCommand() *cobra.Command {
	cmd := &cobra.Command{}
	BindCommonFlags(cmd)
	BindOutputFlags(cmd)
	return cmd
}

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cmd := newCommand()
	require.NoError(t, cmd.PersistentFlags().Set("source", "routes.json"))

	cfg, err := Load(cmd, nil)
	require.NoError(t, err)

	require.Equal(t, "routes.json", cfg.Source.File)
	require.Equal(t, "resources/js", cfg.TypeScript.OutputDir)
	require.Equal(t, "App.Route", cfg.TypeScript.Namespace)
	require.Equal(t, "types-routes.d.ts", cfg.TypeScript.DeclarationsFile)
	require.Equal(t, "routes.ts", cfg.TypeScript.RuntimeFile)
	require.Equal(t, "info", cfg.Log.Level)
	require.True(t, cfg.HasTarget(TargetDeclarations))
	require.True(t, cfg.HasTarget(TargetRuntime))
	require.False(t, cfg.HasTarget(TargetGo))
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()

	configContent := `
source:
  file: routes.json
routes:
  skip-name-prefixes: ["debugbar.*", "horizon.*"]
  skip-path-prefixes: ["_ignition/*"]
typescript:
  output-dir: ./frontend
  namespace: Http.Route
go:
  output-dir: ./internal/routes
targets: [declarations, go]
`
	err := os.WriteFile(filepath.Join(tmpDir, DefaultFile), []byte(configContent), 0644)
	require.NoError(t, err)

	// Change to temp dir so routekit.yaml is found
	t.Chdir(tmpDir)

	cfg, err := Load(newCommand(), nil)
	require.NoError(t, err)

	require.Equal(t, []string{"debugbar.*", "horizon.*"}, cfg.Routes.SkipNamePrefixes)
	require.Equal(t, []string{"_ignition/*"}, cfg.Routes.SkipPathPrefixes)
	require.Equal(t, "./frontend", cfg.TypeScript.OutputDir)
	require.Equal(t, "Http.Route", cfg.TypeScript.Namespace)
	require.Equal(t, "routes.ts", cfg.TypeScript.RuntimeFile, "defaults survive partial sections")
	require.Equal(t, "./internal/routes", cfg.Go.OutputDir)
	require.Equal(t, "routes", cfg.Go.Package)
	require.True(t, cfg.HasTarget(TargetGo))
	require.False(t, cfg.HasTarget(TargetRuntime))
}

func TestLoadFlagsOverrideFile(t *testing.T) {
	tmpDir := t.TempDir()

	configContent := `
source:
  file: routes.json
routes:
  skip-name-prefixes: ["debugbar.*"]
typescript:
  namespace: Http.Route
`
	err := os.WriteFile(filepath.Join(tmpDir, DefaultFile), []byte(configContent), 0644)
	require.NoError(t, err)

	t.Chdir(tmpDir)

	cmd := newCommand()
	require.NoError(t, cmd.PersistentFlags().Set("namespace", "App.Route"))
	require.NoError(t, cmd.PersistentFlags().Set("skip-name", "admin.*"))
	require.NoError(t, cmd.PersistentFlags().Set("verbose", "true"))

	cfg, err := Load(cmd, []string{TargetRuntime})
	require.NoError(t, err)

	require.Equal(t, "App.Route", cfg.TypeScript.Namespace)
	require.Equal(t, []string{"admin.*"}, cfg.Routes.SkipNamePrefixes)
	require.Equal(t, "debug", cfg.Log.Level)
	require.Equal(t, []string{TargetRuntime}, cfg.Targets)
}

func TestLoadWithExplicitConfigPath(t *testing.T) {
	tmpDir := t.TempDir()

	configContent := `
source:
  kind: openapi
  file: api.yaml
  validate: true
`
	configPath := filepath.Join(tmpDir, "custom-config.yaml")
	err := os.WriteFile(configPath, []byte(configContent), 0644)
	require.NoError(t, err)

	cmd := newCommand()
	require.NoError(t, cmd.PersistentFlags().Set("config", configPath))

	cfg, err := Load(cmd, nil)
	require.NoError(t, err)

	require.Equal(t, SourceOpenAPI, cfg.Source.Kind)
	require.Equal(t, "api.yaml", cfg.Source.File)
	require.True(t, cfg.Source.Validate)
}

func TestLoadInvalidConfig(t *testing.T) {
	t.Chdir(t.TempDir())

	_, err := Load(newCommand(), nil)
	require.Error(t, err)
	require.Contains(t, err.Error(), "route source is required")
}

func TestBuildFlagsMap(t *testing.T) {
	cmd := newCommand()

	flags := cmd.PersistentFlags()
	require.NoError(t, flags.Set("source", "routes.yaml"))
	require.NoError(t, flags.Set("source-kind", "manifest"))
	require.NoError(t, flags.Set("skip-path", "api/*,telescope/*"))
	require.NoError(t, flags.Set("output-dir", "./out"))
	require.NoError(t, flags.Set("go-package", "approutes"))
	require.NoError(t, flags.Set("log-json", "true"))

	m := buildFlagsMap(cmd)

	require.Equal(t, "routes.yaml", m["source.file"])
	require.Equal(t, "manifest", m["source.kind"])
	require.Equal(t, []string{"api/*", "telescope/*"}, m["routes.skip-path-prefixes"])
	require.Equal(t, "./out", m["typescript.output-dir"])
	require.Equal(t, "approutes", m["go.package"])
	require.Equal(t, true, m["log.json"])
	require.NotContains(t, m, "source.validate")
}

func TestHasTarget(t *testing.T) {
	cfg := &Config{
		Targets: []string{TargetDeclarations, TargetGo},
	}

	require.True(t, cfg.HasTarget(TargetDeclarations))
	require.True(t, cfg.HasTarget(TargetGo))
	require.False(t, cfg.HasTarget(TargetRuntime))
}

func TestSourceKind(t *testing.T) {
	tests := []struct {
		name   string
		source SourceConfig
		want   string
	}{
		{"explicit", SourceConfig{Kind: SourceOpenAPI, File: "api.yaml"}, SourceOpenAPI},
		{"command only", SourceConfig{Command: "php artisan route:list --json"}, SourceCommand},
		{"file sniffed later", SourceConfig{File: "routes.json"}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{Source: tt.source}
			require.Equal(t, tt.want, cfg.SourceKind())
		})
	}
}
