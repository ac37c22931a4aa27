package store

import (
	"fmt"

	"github.com/kittclouds/rolegen/pkg/catalog"
)

// Import upserts every faction, subalignment and role of f.
func Import(s Storer, f *catalog.File) error {
	for i := range f.Factions {
		if err := s.UpsertFaction(&f.Factions[i]); err != nil {
			return fmt.Errorf("import faction %d: %w", f.Factions[i].ID, err)
		}
	}
	for i := range f.Subalignments {
		if err := s.UpsertSubalignment(&f.Subalignments[i]); err != nil {
			return fmt.Errorf("import subalignment %d: %w", f.Subalignments[i].ID, err)
		}
	}
	for i := range f.Roles {
		if err := s.UpsertRole(&f.Roles[i]); err != nil {
			return fmt.Errorf("import role %d: %w", f.Roles[i].ID, err)
		}
	}
	return nil
}

// Export reads the whole catalog back into file form.
func Export(s Storer) (*catalog.File, error) {
	factions, err := s.ListFactions()
	if err != nil {
		return nil, fmt.Errorf("list factions: %w", err)
	}
	subs, err := s.ListSubalignments()
	if err != nil {
		return nil, fmt.Errorf("list subalignments: %w", err)
	}
	roles, err := s.ListRoles(0)
	if err != nil {
		return nil, fmt.Errorf("list roles: %w", err)
	}

	f := &catalog.File{}
	for _, fac := range factions {
		f.Factions = append(f.Factions, *fac)
	}
	for _, sub := range subs {
		f.Subalignments = append(f.Subalignments, *sub)
	}
	for _, r := range roles {
		f.Roles = append(f.Roles, *r)
	}
	return f, nil
}

// Roles returns the stored catalog as resolved roles, ordered by ID. A role
// whose faction or subalignment is missing is an error.
func Roles(s Storer) ([]catalog.Role, error) {
	f, err := Export(s)
	if err != nil {
		return nil, err
	}
	return f.Resolve()
}
