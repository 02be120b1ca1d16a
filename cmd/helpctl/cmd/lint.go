package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"finitefield.org/dashboard-help/internal/help"
)

type lintOptions struct {
	skipMarkup bool
	skipDrift  bool
}

func newLintCmd(a *app) *cobra.Command {
	opts := &lintOptions{}
	c := &cobra.Command{
		Use:   "lint",
		Short: "Check help markup and key drift between locales",
		Long: `lint reports unbalanced HTML in every loaded locale and, for each locale other than
the default one, entry paths that exist on only one side.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLint(cmd.OutOrStdout(), a, opts)
		},
	}
	c.Flags().BoolVar(&opts.skipMarkup, "no-markup", false, "skip the markup check")
	c.Flags().BoolVar(&opts.skipDrift, "no-drift", false, "skip the drift check")
	return contentCommand(c)
}

func runLint(w io.Writer, a *app, opts *lintOptions) error {
	var findings []help.Finding
	if !opts.skipMarkup {
		findings = append(findings, help.LintMarkup(a.registry)...)
	}
	if !opts.skipDrift {
		base := a.negotiator.Fallback()
		for _, l := range a.registry.Locales() {
			if l != base {
				findings = append(findings, help.Drift(a.registry, base, l)...)
			}
		}
	}
	for _, f := range findings {
		fmt.Fprintln(w, f)
	}
	a.logger.Debug("help lint finished",
		zap.Strings("locales", a.registry.Locales()),
		zap.Int("findings", len(findings)),
	)
	if len(findings) > 0 {
		return fmt.Errorf("lint: %d finding(s)", len(findings))
	}
	return nil
}
