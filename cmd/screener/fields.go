package main

import (
	"fmt"
	"text/tabwriter"

	"FinScreen/internal/catalog"
	"FinScreen/internal/domain/models"

	"github.com/spf13/cobra"
)

func newFieldsCmd() *cobra.Command {
	var kind string
	cmd := &cobra.Command{
		Use:   "fields",
		Short: "List the catalog fields of a screener",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cat, err := catalog.ForKind(models.ScreenerKind(kind))
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "LABEL\tKEY\tFORMAT\tINTERVAL\tHISTORICAL")
			for _, f := range cat.Fields() {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%t\t%t\n", f.Label, f.Key, f.Format, f.Interval, f.Historical)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().StringVar(&kind, "type", "stock", "screener: stock, forex or crypto")
	return cmd
}
