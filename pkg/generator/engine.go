// Package generator fills the slots of a parsed rolelist with roles drawn
// from a catalog.
package generator

import (
	"fmt"
	"log/slog"
	"math"
	"math/rand"

	"github.com/kittclouds/rolegen/pkg/catalog"
	"github.com/kittclouds/rolegen/pkg/lottery"
	"github.com/kittclouds/rolegen/pkg/script"
)

// BaseWeight is every candidate's weight before weight changers apply.
const BaseWeight = 10.0

// Engine runs generations. It owns a non thread-safe *rand.Rand, so give
// each goroutine its own Engine.
type Engine struct {
	rng *rand.Rand
	log *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger used for per-slot debug output.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.log = l
		}
	}
}

// New returns an Engine drawing from rng.
func New(rng *rand.Rand, opts ...Option) *Engine {
	e := &Engine{rng: rng, log: slog.Default()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// NewSeeded returns an Engine with its own source seeded with seed.
func NewSeeded(seed int64, opts ...Option) *Engine {
	return New(rand.New(rand.NewSource(seed)), opts...)
}

// run is the mutable state of one Generate call.
type run struct {
	chosen []catalog.PartialRole
	// budget holds the remaining uses of each limited weight changer,
	// indexed like Rolelist.WeightChangers.
	budget []int
}

// Generate picks one role per slot of rl, in slot order. Any failure aborts
// the run and no partial result is returned. rl is not modified.
func (e *Engine) Generate(rl *script.Rolelist, roles []catalog.Role) ([]catalog.Role, error) {
	all := catalog.Project(roles)

	st := &run{
		chosen: make([]catalog.PartialRole, 0, len(rl.Slots)),
		budget: make([]int, len(rl.WeightChangers)),
	}
	for i, w := range rl.WeightChangers {
		st.budget[i] = w.Limit
	}

	for i, slot := range rl.Slots {
		candidates := script.ApplyAll(all, rl.SlotFilters(i))
		for _, m := range rl.Modifiers {
			candidates = m.Narrow(candidates, st.chosen)
		}
		if len(candidates) == 0 {
			return nil, &GenerationError{Kind: NoValidRolesForSlot, Slot: i, Source: slot.Source}
		}

		picked, err := e.pick(rl, st, candidates, i)
		if err != nil {
			return nil, err
		}

		for j, w := range rl.WeightChangers {
			if w.Limited && w.Covers(picked.ID) && st.budget[j] > 0 {
				st.budget[j]--
			}
		}

		e.log.Debug("slot filled",
			"slot", i,
			"expr", slot.Source,
			"candidates", len(candidates),
			"role", picked.Name,
		)
		st.chosen = append(st.chosen, picked)
	}

	index := catalog.NewIndex(roles)
	out := make([]catalog.Role, len(st.chosen))
	for i, p := range st.chosen {
		r, ok := index[p.ID]
		if !ok {
			return nil, &GenerationError{Kind: RoleMappingFailure, Slot: i, RoleID: p.ID}
		}
		out[i] = r
	}
	return out, nil
}

func (e *Engine) pick(rl *script.Rolelist, st *run, candidates []catalog.PartialRole, slot int) (catalog.PartialRole, error) {
	if len(rl.WeightChangers) == 0 {
		n, err := lottery.Choose(e.rng, len(candidates))
		if err != nil {
			return catalog.PartialRole{}, fmt.Errorf("slot %d: %w", slot+1, err)
		}
		return candidates[n], nil
	}

	weights := make([]float64, len(candidates))
	for i, c := range candidates {
		w := BaseWeight
		for j, wc := range rl.WeightChangers {
			if !wc.Covers(c.ID) {
				continue
			}
			if wc.Limited && st.budget[j] < 1 {
				continue
			}
			w = wc.Apply(w)
		}
		if !(w > 0) || math.IsInf(w, 1) {
			return catalog.PartialRole{}, &GenerationError{
				Kind:   InvalidWeight,
				Slot:   slot,
				Source: rl.Slots[slot].Source,
				RoleID: c.ID,
				Weight: w,
			}
		}
		weights[i] = w
	}

	n, err := lottery.ChooseWeighted(e.rng, weights)
	if err != nil {
		return catalog.PartialRole{}, fmt.Errorf("slot %d: %w", slot+1, err)
	}
	return candidates[n], nil
}

// Weights returns the weight each candidate would be drawn with at the start
// of a run, before any budget is spent.
func Weights(rl *script.Rolelist, candidates []catalog.PartialRole) map[int64]float64 {
	out := make(map[int64]float64, len(candidates))
	for _, c := range candidates {
		w := BaseWeight
		for _, wc := range rl.WeightChangers {
			if wc.Covers(c.ID) && (!wc.Limited || wc.Limit >= 1) {
				w = wc.Apply(w)
			}
		}
		out[c.ID] = w
	}
	return out
}
