package cli

import (
	"bytes"
	"context"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/kolah/routekit/internal/config"
	"github.com/kolah/routekit/internal/model"
	"github.com/kolah/routekit/internal/routes"
)

var testRoutes = []model.RawRoute{
	{Name: "home", URI: "/", Methods: []string{"GET", "HEAD"}},
	{Name: "post.show", URI: "posts/{slug}", Methods: []string{"GET", "HEAD"}},
	{Name: "admin.dashboard", URI: "admin/dash", Methods: []string{"GET"}},
	{URI: "_ignition/health-check", Methods: []string{"GET"}},
}

func setup(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)

	orig := registryFactory
	registryFactory = func(*config.Config, *zap.SugaredLogger) routes.Registry {
		return routes.RegistryFunc(func(context.Context) ([]model.RawRoute, error) {
			return testRoutes, nil
		})
	}
	t.Cleanup(func() { registryFactory = orig })

	return dir
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	root := RootCmd()
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)
	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func TestGenerateAll(t *testing.T) {
	dir := setup(t)

	_, stderr, err := execute(t, "generate", "all",
		"--source", "routes.json",
		"-o", "web",
		"--go-output-dir", "gen/routes",
		"--skip-name", "admin.*",
		"--log-level", "error",
	)
	require.NoError(t, err)
	require.Contains(t, stderr, "Written: "+filepath.Join("web", "types-routes.d.ts"))

	decl, err := os.ReadFile(filepath.Join(dir, "web", "types-routes.d.ts"))
	require.NoError(t, err)
	require.Contains(t, string(decl), "export type Name = 'home' | 'post.show';")

	runtime, err := os.ReadFile(filepath.Join(dir, "web", "routes.ts"))
	require.NoError(t, err)
	require.Contains(t, string(runtime), "'post.show': {")
	require.NotContains(t, string(runtime), "admin")

	goSrc, err := os.ReadFile(filepath.Join(dir, "gen", "routes", "routes_gen.go"))
	require.NoError(t, err)
	f, err := parser.ParseFile(token.NewFileSet(), "routes_gen.go", goSrc, parser.AllErrors)
	require.NoError(t, err)
	require.Equal(t, "routes", f.Name.Name)
}

func TestGenerateFromConfigFile(t *testing.T) {
	dir := setup(t)

	cfg := `source:
  command: php artisan route:list --json
routes:
  skip-path-prefixes: ["_ignition/*"]
typescript:
  output-dir: assets
  namespace: Http.Routes
targets: [runtime]
log:
  level: error
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, config.DefaultFile), []byte(cfg), 0644))

	_, _, err := execute(t, "generate")
	require.NoError(t, err)

	runtime, err := os.ReadFile(filepath.Join(dir, "assets", "routes.ts"))
	require.NoError(t, err)
	require.Contains(t, string(runtime), "Record<Http.Routes.Name, Http.Routes.Entity>")

	_, err = os.Stat(filepath.Join(dir, "assets", "types-routes.d.ts"))
	require.True(t, os.IsNotExist(err))
}

func TestGenerateDryRun(t *testing.T) {
	dir := setup(t)

	stdout, _, err := execute(t, "generate", "typescript", "--source", "routes.json", "--dry-run", "--log-level", "error")
	require.NoError(t, err)
	require.Contains(t, stdout, "// "+filepath.Join("resources", "js", "types-routes.d.ts"))
	require.Contains(t, stdout, "export default Routes")

	_, err = os.Stat(filepath.Join(dir, "resources"))
	require.True(t, os.IsNotExist(err))
}

func TestGenerateRequiresSource(t *testing.T) {
	setup(t)

	_, _, err := execute(t, "generate", "runtime")
	require.Error(t, err)
	require.Contains(t, err.Error(), "route source is required")
}

func TestList(t *testing.T) {
	setup(t)

	stdout, _, err := execute(t, "list", "--source", "routes.json", "--skip-name", "admin.*", "--log-level", "error")
	require.NoError(t, err)
	require.Contains(t, stdout, "post.show")
	require.Contains(t, stdout, "/posts/{slug}")
	require.Contains(t, stdout, "GET|HEAD")
	require.NotContains(t, stdout, "admin.dashboard")
	require.Contains(t, stdout, "2 routes")
}

func TestFormatParams(t *testing.T) {
	require.Equal(t, "", formatParams(nil))
	require.Equal(t, "id, postId?", formatParams(model.ParseParameters("users/{id}/posts/{postId?}")))
}
