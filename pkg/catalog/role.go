// Package catalog holds the role records a host hands to the generator and
// the lightweight PartialRole projection the script parser and engine work on.
package catalog

import (
	"strings"

	"golang.org/x/text/cases"
)

// Faction is the top-level grouping a role belongs to.
type Faction struct {
	ID   int64  `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
}

// Subalignment is the sub-category a role belongs to inside its faction.
type Subalignment struct {
	ID   int64  `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
}

// Role is the full, host-owned role record.
type Role struct {
	ID           int64        `json:"id"`
	Name         string       `json:"name"`
	Faction      Faction      `json:"faction"`
	Subalignment Subalignment `json:"subalignment"`
	Labels       []string     `json:"labels,omitempty"`
}

// PartialRole is the immutable projection of a Role used for matching.
// Two PartialRoles are the same role iff their IDs match.
type PartialRole struct {
	ID      int64
	Name    string
	Faction string
	Tags    []string

	nameKey    string
	factionKey string
	tagKeys    []string
}

// NewPartialRole builds a PartialRole and precomputes its folded match keys.
func NewPartialRole(id int64, name, faction string, tags ...string) PartialRole {
	p := PartialRole{
		ID:         id,
		Name:       name,
		Faction:    faction,
		nameKey:    Fold(name),
		factionKey: Fold(faction),
	}

	seen := make(map[string]bool, len(tags))
	for _, tag := range tags {
		key := Fold(tag)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		p.Tags = append(p.Tags, tag)
		p.tagKeys = append(p.tagKeys, key)
	}
	return p
}

// Equal reports whether both values describe the same role.
func (p PartialRole) Equal(other PartialRole) bool {
	return p.ID == other.ID
}

// MatchesName compares against an already folded role name.
func (p PartialRole) MatchesName(key string) bool {
	return p.nameKey == key
}

// MatchesFaction compares against an already folded faction name.
func (p PartialRole) MatchesFaction(key string) bool {
	return p.factionKey == key
}

// HasTag reports whether the role carries the already folded tag.
func (p PartialRole) HasTag(key string) bool {
	for _, k := range p.tagKeys {
		if k == key {
			return true
		}
	}
	return false
}

// Project converts host roles into PartialRoles. Tags are the role labels
// plus the subalignment name.
func Project(roles []Role) []PartialRole {
	out := make([]PartialRole, 0, len(roles))
	for _, r := range roles {
		tags := make([]string, 0, len(r.Labels)+1)
		tags = append(tags, r.Labels...)
		tags = append(tags, r.Subalignment.Name)
		out = append(out, NewPartialRole(r.ID, r.Name, r.Faction.Name, tags...))
	}
	return out
}

// Index maps role IDs back to the full records they were projected from.
type Index map[int64]Role

// NewIndex indexes roles by ID. Later duplicates win.
func NewIndex(roles []Role) Index {
	idx := make(Index, len(roles))
	for _, r := range roles {
		idx[r.ID] = r
	}
	return idx
}

// Fold trims and case-folds s for case-insensitive comparison.
// A fresh Caser is used per call; Casers are not safe for concurrent use.
func Fold(s string) string {
	return cases.Fold().String(strings.TrimSpace(s))
}
