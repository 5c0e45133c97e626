package cli

import (
	"fmt"
	"strconv"

	"github.com/haytac/emotions/internal/emotion"
	"github.com/haytac/emotions/internal/metrics"
	"github.com/spf13/cobra"
)

func newKnownCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "known <name>",
		Short: "Report whether name is a catalog emoji",
		Long:  `Prints true or false. Exits 1 when the name is not in the catalog.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			known := emotion.IsKnown(args[0])
			metrics.Conversions.WithLabelValues("known").Inc()
			if _, err := fmt.Fprintln(cmd.OutOrStdout(), strconv.FormatBool(known)); err != nil {
				return err
			}
			if !known {
				return errNotKnown
			}
			return nil
		},
	}
}

func newCatalogCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "catalog",
		Short: "List the catalog emoji names",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, name := range emotion.Catalog() {
				if _, err := fmt.Fprintln(out, name); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
