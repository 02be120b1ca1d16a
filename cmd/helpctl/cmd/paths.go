package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"finitefield.org/dashboard-help/internal/help"
)

type pathsOptions struct {
	locale       string
	placeholders bool
}

func newPathsCmd(a *app) *cobra.Command {
	opts := &pathsOptions{}
	c := &cobra.Command{
		Use:   "paths",
		Short: "List help entry paths in authoring order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPaths(cmd.OutOrStdout(), a, opts)
		},
	}
	c.Flags().StringVar(&opts.locale, "locale", "", "locale to list (default: HELP_DEFAULT_LOCALE)")
	c.Flags().BoolVar(&opts.placeholders, "placeholders", false, "only list entries with placeholders, with their names")
	return contentCommand(c)
}

func runPaths(w io.Writer, a *app, opts *pathsOptions) error {
	locale := opts.locale
	if locale == "" {
		locale = a.negotiator.Fallback()
	}
	tree, ok := a.registry.Tree(locale)
	if !ok {
		return fmt.Errorf("locale %q is not loaded", locale)
	}
	if opts.placeholders {
		for _, use := range help.Placeholders(a.registry, locale) {
			fmt.Fprintf(w, "%s\t%s\n", use.Path, strings.Join(use.Names, ","))
		}
		return nil
	}
	for _, p := range tree.Paths() {
		fmt.Fprintln(w, p)
	}
	return nil
}
