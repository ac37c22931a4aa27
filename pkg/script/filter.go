// Package script parses rolelist scripts into slots, global filters,
// modifiers and weight changers.
//
// A script is line oriented:
//
//	+expr                    global filter, applied to every slot
//	?name:expr[:expr|:n]     modifier (individuality, limit, exclusive)
//	=expr:<sym><n>[:uses]    weight changer (digit=set, + - * x /)
//	[-]expr                  slot; a leading '-' skips global filters
//
// Expressions use %role, $faction, bare labels, ! to negate the next term
// and | to union the previous and next terms. Successive terms are AND-ed.
package script

import (
	"fmt"
	"strings"

	"github.com/kittclouds/rolegen/pkg/catalog"
)

// FilterKind distinguishes filter variants.
type FilterKind int

const (
	LabelFilter FilterKind = iota
	RoleNameFilter
	FactionFilter
	UnionFilter
)

func (k FilterKind) String() string {
	switch k {
	case LabelFilter:
		return "label"
	case RoleNameFilter:
		return "role"
	case FactionFilter:
		return "faction"
	case UnionFilter:
		return "union"
	}
	return fmt.Sprintf("FilterKind(%d)", int(k))
}

// AnyLabel matches every role when used as a label filter, and none when negated.
const AnyLabel = "ANY"

// Filter is a predicate over roles. Union filters carry their members and
// no Value.
type Filter struct {
	Kind    FilterKind
	Negated bool
	Value   string
	Members []Filter
}

// Apply returns the roles that pass the filter, in input order.
func (f Filter) Apply(roles []catalog.PartialRole) []catalog.PartialRole {
	switch f.Kind {
	case UnionFilter:
		var set catalog.IDSet
		for _, m := range f.Members {
			set = set.Union(catalog.IDsOf(m.Apply(roles)))
		}
		if !f.Negated {
			return set.Select(roles)
		}
		out := make([]catalog.PartialRole, 0, len(roles))
		for _, r := range roles {
			if !set.Contains(r.ID) {
				out = append(out, r)
			}
		}
		return out

	case LabelFilter:
		if f.Value == AnyLabel {
			if f.Negated {
				return []catalog.PartialRole{}
			}
			return append([]catalog.PartialRole(nil), roles...)
		}
	}

	key := catalog.Fold(f.Value)
	out := make([]catalog.PartialRole, 0, len(roles))
	for _, r := range roles {
		if f.matches(r, key) != f.Negated {
			out = append(out, r)
		}
	}
	return out
}

func (f Filter) matches(r catalog.PartialRole, key string) bool {
	if key == "" {
		return false
	}
	switch f.Kind {
	case RoleNameFilter:
		return r.MatchesName(key)
	case FactionFilter:
		return r.MatchesFaction(key)
	case LabelFilter:
		return r.HasTag(key)
	}
	panic(fmt.Sprintf("script: no matcher for %s filter", f.Kind))
}

// String renders the filter back into expression syntax.
func (f Filter) String() string {
	var b strings.Builder
	if f.Negated {
		b.WriteByte('!')
	}
	switch f.Kind {
	case RoleNameFilter:
		b.WriteByte('%')
	case FactionFilter:
		b.WriteByte('$')
	case UnionFilter:
		parts := make([]string, len(f.Members))
		for i, m := range f.Members {
			parts[i] = m.String()
		}
		if f.Negated {
			return "!(" + strings.Join(parts, "|") + ")"
		}
		return strings.Join(parts, "|")
	}
	b.WriteString(f.Value)
	return b.String()
}

// ApplyAll narrows roles through each filter in turn.
func ApplyAll(roles []catalog.PartialRole, filters []Filter) []catalog.PartialRole {
	for _, f := range filters {
		roles = f.Apply(roles)
	}
	return roles
}

// Literals lists every literal value referenced by filters, unions included,
// skipping the ANY wildcard.
func Literals(filters []Filter) []string {
	var out []string
	for _, f := range filters {
		if f.Kind == UnionFilter {
			out = append(out, Literals(f.Members)...)
			continue
		}
		if f.Value == "" || (f.Kind == LabelFilter && f.Value == AnyLabel) {
			continue
		}
		out = append(out, f.Value)
	}
	return out
}

func joinFilters(filters []Filter) string {
	parts := make([]string, len(filters))
	for i, f := range filters {
		parts[i] = f.String()
	}
	return strings.Join(parts, " ")
}
