package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newProfilesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "profiles",
		Short: "List the configured catalog profiles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tLAYOUT\tSIZES\tSENTINEL\tOMIT ZERO\tDESCRIPTION")
			for _, name := range a.profiles.Names() {
				p, _ := a.profiles.Get(name)
				marker := " "
				if strings.EqualFold(name, a.cfg.Catalog.Profile) {
					marker = "*"
				}
				fmt.Fprintf(tw, "%s%s\t%s\t%s\t%q\t%v\t%s\n",
					marker, name, p.Layout, strings.Join(p.Sizes, ","), p.NoInfo, p.OmitsZero(), p.Label)
			}
			return tw.Flush()
		},
	}
}
