package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"finitefield.org/dashboard-help/internal/appname"
)

func newClassNameCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "classname <name>...",
		Short:   "Turn application or service names into CSS class tokens",
		Example: "  helpctl classname com.test.domain ^root host:8080",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range args {
				fmt.Fprintln(cmd.OutOrStdout(), appname.ClassName(name))
			}
			return nil
		},
	}
}
