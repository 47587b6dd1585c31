package cli

import (
	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kolah/routekit/internal/config"
	"github.com/kolah/routekit/internal/loader"
	"github.com/kolah/routekit/internal/logger"
	"github.com/kolah/routekit/internal/model"
	"github.com/kolah/routekit/internal/routes"
)

// registryFactory builds the registry for a run. Tests replace it to avoid
// touching the filesystem or running commands.
var registryFactory = func(cfg *config.Config, log *zap.SugaredLogger) routes.Registry {
	return loader.NewSource(cfg, log)
}

// collect loads the configuration, reads the registry and returns the filtered
// route records.
func collect(cmd *cobra.Command, targets []string) (*config.Config, []model.Route, *zap.SugaredLogger, error) {
	cfg, err := config.Load(cmd, targets)
	if err != nil {
		return nil, nil, nil, err
	}

	log, err := logger.New(cfg.Log.Level, cfg.Log.JSON)
	if err != nil {
		return nil, nil, nil, err
	}

	records, err := routes.Collect(cmd.Context(), registryFactory(cfg, log), routes.Options{
		SkipNamePrefixes: cfg.Routes.SkipNamePrefixes,
		SkipPathPrefixes: cfg.Routes.SkipPathPrefixes,
		Logger:           log,
	})
	if err != nil {
		return nil, nil, nil, errors.Wrap(err, "collecting routes")
	}

	return cfg, records, log, nil
}
