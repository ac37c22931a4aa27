package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kittclouds/rolegen/pkg/catalog"
)

func (a *app) rolesCmd() *cobra.Command {
	var faction string

	cmd := &cobra.Command{
		Use:   "roles",
		Short: "List catalog roles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			roles, err := a.loadRoles()
			if err != nil {
				return err
			}

			key := catalog.Fold(faction)
			out := cmd.OutOrStdout()
			n := 0
			for _, r := range roles {
				if key != "" && catalog.Fold(r.Faction.Name) != key {
					continue
				}
				tags := append([]string{r.Subalignment.Name}, r.Labels...)
				fmt.Fprintf(out, "%-8d %-24s %-12s %s\n", r.ID, r.Name, r.Faction.Name, strings.Join(tags, ", "))
				n++
			}
			fmt.Fprintf(out, "%d roles\n", n)
			return nil
		},
	}
	cmd.Flags().StringVar(&faction, "faction", "", "Only list roles of this faction")
	return cmd
}
