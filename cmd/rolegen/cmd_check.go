package main

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/kittclouds/rolegen/pkg/catalog"
	"github.com/kittclouds/rolegen/pkg/generator"
	"github.com/kittclouds/rolegen/pkg/script"
)

func (a *app) checkCmd() *cobra.Command {
	var mentions bool

	cmd := &cobra.Command{
		Use:   "check [script|-]",
		Short: "Parse a script and show what each slot can draw",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runCheck(cmd, args, mentions)
		},
	}
	cmd.Flags().BoolVar(&mentions, "mentions", false, "Rewrite <#id> mentions into role and faction terms")
	return cmd
}

func (a *app) runCheck(cmd *cobra.Command, args []string, mentions bool) error {
	roles, err := a.loadRoles()
	if err != nil {
		return err
	}
	text, err := readScript(cmd, args)
	if err != nil {
		return err
	}
	if text, err = prepareText(text, roles, mentions); err != nil {
		return err
	}

	rl, err := generator.Prepare(text, roles)
	if err != nil {
		return a.explain(err, roles)
	}

	out := cmd.OutOrStdout()
	all := catalog.Project(roles)

	if len(rl.GlobalFilters) > 0 {
		fmt.Fprintf(out, "Global: %s\n", script.Slot{Filters: rl.GlobalFilters})
	}
	for _, m := range rl.Modifiers {
		fmt.Fprintf(out, "Modifier: %s\n", m)
	}
	for _, w := range rl.WeightChangers {
		fmt.Fprintf(out, "Weight: %s\n", w)
	}

	for i, slot := range rl.Slots {
		candidates := script.ApplyAll(all, rl.SlotFilters(i))
		fmt.Fprintf(out, "Slot %d: %s (%d candidates)\n", i+1, slot, len(candidates))

		weights := generator.Weights(rl, candidates)
		names := make([]string, 0, len(candidates))
		for _, c := range candidates {
			name := c.Name
			if w := weights[c.ID]; w != generator.BaseWeight {
				name += " ×" + strconv.FormatFloat(w/generator.BaseWeight, 'g', 3, 64)
			}
			names = append(names, name)
		}
		sort.Strings(names)
		for _, n := range names {
			fmt.Fprintf(out, "  %s\n", n)
		}
	}
	return nil
}
