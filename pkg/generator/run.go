package generator

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/kittclouds/rolegen/pkg/catalog"
	"github.com/kittclouds/rolegen/pkg/script"
)

// GenerateScript parses text against roles and generates from the result.
func (e *Engine) GenerateScript(text string, roles []catalog.Role) ([]catalog.Role, error) {
	rl, err := Prepare(text, roles)
	if err != nil {
		return nil, err
	}
	return e.Generate(rl, roles)
}

// Prepare parses text against roles and rejects scripts without slots.
func Prepare(text string, roles []catalog.Role) (*script.Rolelist, error) {
	rl, err := script.Parse(text, catalog.Project(roles))
	if err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	if len(rl.Slots) == 0 {
		return nil, ErrNoSlots
	}
	return rl, nil
}

// Tally aggregates the outcome of repeated runs of one script.
type Tally struct {
	Runs int
	// Picks holds, per slot, how often each role ID was drawn.
	Picks []map[int64]int
	// Failures counts failed runs by kind.
	Failures map[ErrorKind]int
}

// Succeeded returns the number of runs that produced a full role list.
func (t *Tally) Succeeded() int {
	n := t.Runs
	for _, c := range t.Failures {
		n -= c
	}
	return n
}

// Share returns the fraction of successful runs in which slot drew id.
func (t *Tally) Share(slot int, id int64) float64 {
	ok := t.Succeeded()
	if ok == 0 || slot < 0 || slot >= len(t.Picks) {
		return 0
	}
	return float64(t.Picks[slot][id]) / float64(ok)
}

// SampleOptions tunes Sample.
type SampleOptions struct {
	Runs int
	// Seed of run i is Seed+i.
	Seed int64
	// Parallel caps concurrent runs; zero means GOMAXPROCS.
	Parallel int
	Engine   []Option
}

// Sample parses text once and generates from it opts.Runs times
// concurrently. Runs that fail with a GenerationError are counted in
// Tally.Failures; any other error aborts the whole sample.
func Sample(ctx context.Context, text string, roles []catalog.Role, opts SampleOptions) (*Tally, error) {
	if opts.Runs <= 0 {
		return nil, fmt.Errorf("sample: runs must be positive, got %d", opts.Runs)
	}
	rl, err := Prepare(text, roles)
	if err != nil {
		return nil, err
	}

	parallel := opts.Parallel
	if parallel <= 0 {
		parallel = runtime.GOMAXPROCS(0)
	}

	type outcome struct {
		roles []catalog.Role
		err   error
	}
	results := make([]outcome, opts.Runs)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(parallel)
	for i := 0; i < opts.Runs; i++ {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			engine := NewSeeded(opts.Seed+int64(i), opts.Engine...)
			out, err := engine.Generate(rl, roles)
			var gerr *GenerationError
			if err != nil && !errors.As(err, &gerr) {
				return fmt.Errorf("run %d: %w", i, err)
			}
			results[i] = outcome{roles: out, err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	tally := &Tally{
		Runs:     opts.Runs,
		Picks:    make([]map[int64]int, len(rl.Slots)),
		Failures: make(map[ErrorKind]int),
	}
	for i := range tally.Picks {
		tally.Picks[i] = make(map[int64]int)
	}
	for _, r := range results {
		if r.err != nil {
			var gerr *GenerationError
			errors.As(r.err, &gerr)
			tally.Failures[gerr.Kind]++
			continue
		}
		for slot, role := range r.roles {
			tally.Picks[slot][role.ID]++
		}
	}
	return tally, nil
}
