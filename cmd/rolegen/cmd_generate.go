package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/kittclouds/rolegen/internal/logging"
	"github.com/kittclouds/rolegen/internal/random"
	"github.com/kittclouds/rolegen/pkg/catalog"
	"github.com/kittclouds/rolegen/pkg/generator"
	"github.com/kittclouds/rolegen/pkg/mention"
)

type generateFlags struct {
	seed     int64
	runs     int
	parallel int
	mentions bool
}

func (a *app) generateCmd() *cobra.Command {
	var flags generateFlags

	cmd := &cobra.Command{
		Use:   "generate [script|-]",
		Short: "Fill every slot of a script with a role",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("seed") {
				flags.seed = a.cfg.Seed
			}
			return a.runGenerate(cmd, args, flags)
		},
	}

	f := cmd.Flags()
	f.Int64Var(&flags.seed, "seed", 0, "Random seed; 0 draws one (env ROLEGEN_SEED)")
	f.IntVar(&flags.runs, "runs", 1, "Number of runs; more than one prints pick frequencies")
	f.IntVar(&flags.parallel, "parallel", 0, "Concurrent runs when --runs > 1; 0 means GOMAXPROCS")
	f.BoolVar(&flags.mentions, "mentions", false, "Rewrite <#id> mentions into role and faction terms")
	return cmd
}

func (a *app) runGenerate(cmd *cobra.Command, args []string, flags generateFlags) error {
	log := logging.New("generate")

	roles, err := a.loadRoles()
	if err != nil {
		return err
	}
	text, err := readScript(cmd, args)
	if err != nil {
		return err
	}
	if text, err = prepareText(text, roles, flags.mentions); err != nil {
		return err
	}

	seed, err := random.Resolve(flags.seed)
	if err != nil {
		return err
	}
	log.Debug("generating", "seed", seed, "runs", flags.runs)

	out := cmd.OutOrStdout()
	opts := []generator.Option{generator.WithLogger(logging.New("generator"))}

	if flags.runs <= 1 {
		picked, err := generator.NewSeeded(seed, opts...).GenerateScript(text, roles)
		if err != nil {
			return a.explain(err, roles)
		}
		for _, r := range picked {
			fmt.Fprintln(out, mention.Format(r))
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "seed: %d\n", seed)
		return nil
	}

	tally, err := generator.Sample(cmd.Context(), text, roles, generator.SampleOptions{
		Runs:     flags.runs,
		Seed:     seed,
		Parallel: flags.parallel,
		Engine:   opts,
	})
	if err != nil {
		return a.explain(err, roles)
	}
	printTally(cmd, tally, catalog.NewIndex(roles))
	return nil
}

func printTally(cmd *cobra.Command, t *generator.Tally, index catalog.Index) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Runs: %d (%d succeeded)\n", t.Runs, t.Succeeded())

	kinds := make([]generator.ErrorKind, 0, len(t.Failures))
	for k := range t.Failures {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	for _, k := range kinds {
		fmt.Fprintf(out, "  failed, %s: %d\n", k, t.Failures[k])
	}

	for slot, picks := range t.Picks {
		fmt.Fprintf(out, "Slot %d:\n", slot+1)
		ids := make([]int64, 0, len(picks))
		for id := range picks {
			ids = append(ids, id)
		}
		sort.Slice(ids, func(i, j int) bool {
			if picks[ids[i]] != picks[ids[j]] {
				return picks[ids[i]] > picks[ids[j]]
			}
			return ids[i] < ids[j]
		})
		for _, id := range ids {
			fmt.Fprintf(out, "  %-24s %6d  %5.1f%%\n", index[id].Name, picks[id], 100*t.Share(slot, id))
		}
	}
}
