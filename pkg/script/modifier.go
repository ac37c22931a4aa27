package script

import (
	"fmt"

	"github.com/kittclouds/rolegen/pkg/catalog"
)

// ModifierKind distinguishes modifier variants.
type ModifierKind int

const (
	Individuality ModifierKind = iota
	Limit
	MutualExclusive
)

func (k ModifierKind) String() string {
	switch k {
	case Individuality:
		return "individuality"
	case Limit:
		return "limit"
	case MutualExclusive:
		return "exclusive"
	}
	return fmt.Sprintf("ModifierKind(%d)", int(k))
}

// Modifier narrows a slot's candidates based on roles already chosen.
// Modifiers are stateless; the chosen roles come from the caller.
type Modifier struct {
	Kind    ModifierKind
	Targets catalog.IDSet
	// Others is the second group of a two-sided exclusive modifier.
	Others catalog.IDSet
	// Max is the cap of a Limit modifier.
	Max int
}

// NewIndividuality forbids any target role from being chosen twice.
func NewIndividuality(targets catalog.IDSet) Modifier {
	return Modifier{Kind: Individuality, Targets: targets}
}

// NewLimit caps how many target roles may be chosen in total.
func NewLimit(targets catalog.IDSet, limit int) Modifier {
	return Modifier{Kind: Limit, Targets: targets, Max: limit}
}

// NewMutualExclusive makes two groups exclusive of each other. With an empty
// second group, at most one role of the first group may be chosen.
func NewMutualExclusive(targets, others catalog.IDSet) Modifier {
	return Modifier{Kind: MutualExclusive, Targets: targets, Others: others}
}

// Narrow returns the candidates still allowed after chosen. It never adds roles.
func (m Modifier) Narrow(candidates, chosen []catalog.PartialRole) []catalog.PartialRole {
	switch m.Kind {
	case Individuality:
		picked := catalog.IDsOf(chosen)
		return keep(candidates, func(r catalog.PartialRole) bool {
			return !m.Targets.Contains(r.ID) || !picked.Contains(r.ID)
		})

	case Limit:
		used := m.Targets.Count(chosen)
		return keep(candidates, func(r catalog.PartialRole) bool {
			return !m.Targets.Contains(r.ID) || used < m.Max
		})

	case MutualExclusive:
		if m.Others.Empty() {
			if m.Targets.Count(chosen) == 0 {
				return candidates
			}
			return keep(candidates, func(r catalog.PartialRole) bool {
				return !m.Targets.Contains(r.ID)
			})
		}
		blockOthers := m.Targets.Count(chosen) > 0
		blockTargets := m.Others.Count(chosen) > 0
		return keep(candidates, func(r catalog.PartialRole) bool {
			if blockOthers && m.Others.Contains(r.ID) {
				return false
			}
			if blockTargets && m.Targets.Contains(r.ID) {
				return false
			}
			return true
		})
	}
	panic(fmt.Sprintf("script: no narrowing for %s modifier", m.Kind))
}

func (m Modifier) String() string {
	switch m.Kind {
	case Limit:
		return fmt.Sprintf("limit(%d roles, max %d)", m.Targets.Len(), m.Max)
	case MutualExclusive:
		if m.Others.Empty() {
			return fmt.Sprintf("exclusive(%d roles)", m.Targets.Len())
		}
		return fmt.Sprintf("exclusive(%d roles, %d roles)", m.Targets.Len(), m.Others.Len())
	}
	return fmt.Sprintf("%s(%d roles)", m.Kind, m.Targets.Len())
}

func keep(roles []catalog.PartialRole, ok func(catalog.PartialRole) bool) []catalog.PartialRole {
	out := make([]catalog.PartialRole, 0, len(roles))
	for _, r := range roles {
		if ok(r) {
			out = append(out, r)
		}
	}
	return out
}
