// Package store persists the role catalog.
// MemStore backs tests and one-shot CLI runs; SQLiteStore keeps a catalog
// across runs.
package store

import (
	"slices"

	"github.com/kittclouds/rolegen/pkg/catalog"
)

// Faction and Subalignment rows are stored as-is.
type (
	Faction      = catalog.Faction
	Subalignment = catalog.Subalignment
)

// Role is a stored role row. Its faction and subalignment are referenced by
// ID and joined by Roles.
type Role = catalog.FileRole

// Storer defines the interface for catalog persistence.
// Get methods return nil, nil when the row does not exist.
type Storer interface {
	// Factions
	UpsertFaction(f *Faction) error
	GetFaction(id int64) (*Faction, error)
	DeleteFaction(id int64) error
	ListFactions() ([]*Faction, error)

	// Subalignments
	UpsertSubalignment(s *Subalignment) error
	GetSubalignment(id int64) (*Subalignment, error)
	DeleteSubalignment(id int64) error
	ListSubalignments() ([]*Subalignment, error)

	// Roles
	UpsertRole(r *Role) error
	GetRole(id int64) (*Role, error)
	GetRoleByName(name string) (*Role, error)
	DeleteRole(id int64) error
	// ListRoles returns roles ordered by ID; factionID 0 lists every role.
	ListRoles(factionID int64) ([]*Role, error)
	CountRoles() (int, error)

	// Lifecycle
	Close() error
}

func cloneRole(r *Role) *Role {
	c := *r
	c.Labels = slices.Clone(r.Labels)
	return &c
}
