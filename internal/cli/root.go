package cli

import "github.com/spf13/cobra"

func RootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "routekit",
		Short:         "routekit - typed routes for the frontend, straight from the route registry",
		Version:       "1.0.0",
		SilenceUsage:  true,
		SilenceErrors: true,

		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	root.AddCommand(GenerateCommand())
	root.AddCommand(ListCommand())

	return root
}
