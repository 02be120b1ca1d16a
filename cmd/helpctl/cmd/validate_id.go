package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"finitefield.org/dashboard-help/internal/appname"
)

type validateIDOptions struct {
	maxLength int
}

func newValidateIDCmd() *cobra.Command {
	opts := &validateIDOptions{}
	c := &cobra.Command{
		Use:   "validate-id <id>...",
		Short: "Check application names and agent ids",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidateID(cmd.OutOrStdout(), opts, args)
		},
	}
	c.Flags().IntVar(&opts.maxLength, "max-length", appname.MaxLength, "maximum length in bytes")
	return c
}

func runValidateID(w io.Writer, opts *validateIDOptions, ids []string) error {
	invalid := 0
	for _, id := range ids {
		if err := appname.ValidateLength(id, opts.maxLength); err != nil {
			invalid++
			fmt.Fprintf(w, "%s\t%v\n", id, err)
			continue
		}
		fmt.Fprintf(w, "%s\tok\n", id)
	}
	if invalid > 0 {
		return fmt.Errorf("%d of %d id(s) invalid", invalid, len(ids))
	}
	return nil
}
