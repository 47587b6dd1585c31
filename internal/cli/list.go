package cli

import (
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/kolah/routekit/internal/config"
	"github.com/kolah/routekit/internal/model"
)

func ListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the routes that would be generated",
		RunE:  runList,
	}

	config.BindCommonFlags(cmd)

	return cmd
}

func runList(cmd *cobra.Command, args []string) error {
	_, records, log, err := collect(cmd, nil)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	table, err := renderRoutes(records)
	if err != nil {
		return err
	}
	cmd.Print(table)
	cmd.Printf("%d routes\n", len(records))
	return nil
}

func renderRoutes(records []model.Route) (string, error) {
	data := pterm.TableData{{"Name", "Methods", "Path", "Params"}}
	for _, r := range records {
		methods := make([]string, len(r.Methods))
		for i, m := range r.Methods {
			methods[i] = string(m)
		}
		data = append(data, []string{
			r.Name,
			strings.Join(methods, "|"),
			r.Path(),
			formatParams(r.Parameters),
		})
	}

	out, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return "", errors.Wrap(err, "rendering route table")
	}
	return out + "\n", nil
}

func formatParams(params []model.Parameter) string {
	names := make([]string, len(params))
	for i, p := range params {
		names[i] = p.Name
		if !p.Required {
			names[i] += "?"
		}
	}
	return strings.Join(names, ", ")
}
