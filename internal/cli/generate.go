package cli

import (
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/kolah/routekit/internal/codegen"
	"github.com/kolah/routekit/internal/config"
	"github.com/kolah/routekit/internal/logger"
)

func GenerateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate route types and tables from the route registry",
		Long: `Generate reads the route registry and writes the targets listed in the
config file (declarations and runtime by default). Subcommands generate a
single target.`,
		RunE: runGenerate(nil),
	}

	config.BindCommonFlags(cmd)
	config.BindOutputFlags(cmd)

	cmd.AddCommand(
		newTargetCmd("declarations", "Generate the TypeScript declaration file", config.TargetDeclarations),
		newTargetCmd("runtime", "Generate the TypeScript runtime route table", config.TargetRuntime),
		newTargetCmd("typescript", "Generate both TypeScript files", config.TargetDeclarations, config.TargetRuntime),
		newTargetCmd("go", "Generate the Go route table", config.TargetGo),
		newTargetCmd("all", "Generate every target (declarations, runtime, go)",
			config.TargetDeclarations, config.TargetRuntime, config.TargetGo),
	)

	return cmd
}

func newTargetCmd(use, short string, targets ...string) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		RunE:  runGenerate(targets),
	}
}

func runGenerate(targets []string) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		cfg, records, log, err := collect(cmd, targets)
		if err != nil {
			return err
		}
		defer func() { _ = log.Sync() }()

		gen, err := codegen.New(cfg, log)
		if err != nil {
			return errors.Wrap(err, "creating generator")
		}

		outputs, err := gen.Generate(records)
		if err != nil {
			return errors.Wrap(err, "generating code")
		}

		dryRun, _ := cmd.Flags().GetBool("dry-run")
		if dryRun {
			for _, out := range outputs {
				cmd.Printf("// %s\n%s\n", filepath.Join(out.Dir, out.Filename), out.Content)
			}
			return nil
		}

		for _, out := range outputs {
			if err := os.MkdirAll(out.Dir, 0755); err != nil {
				return errors.Wrap(err, "creating output directory")
			}
			path := filepath.Join(out.Dir, out.Filename)
			if err := os.WriteFile(path, []byte(out.Content), 0644); err != nil {
				return errors.Wrapf(err, "writing %s", path)
			}
			log.Debugw("target written", logger.FieldTarget, out.Target, logger.FieldFile, path)
			cmd.PrintErrf("Written: %s\n", path)
		}

		return nil
	}
}
