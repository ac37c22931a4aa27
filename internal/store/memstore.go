package store

import (
	"sort"
	"sync"

	"github.com/kittclouds/rolegen/pkg/catalog"
)

// MemStore is an in-memory implementation of Storer.
type MemStore struct {
	mu            sync.RWMutex
	factions      map[int64]*Faction
	subalignments map[int64]*Subalignment
	roles         map[int64]*Role
}

// NewMemStore creates a new in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{
		factions:      make(map[int64]*Faction),
		subalignments: make(map[int64]*Subalignment),
		roles:         make(map[int64]*Role),
	}
}

// Close is a no-op for MemStore.
func (s *MemStore) Close() error {
	return nil
}

// =============================================================================
// Factions
// =============================================================================

func (s *MemStore) UpsertFaction(f *Faction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := *f
	s.factions[f.ID] = &c
	return nil
}

func (s *MemStore) GetFaction(id int64) (*Faction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if f, ok := s.factions[id]; ok {
		c := *f
		return &c, nil
	}
	return nil, nil
}

func (s *MemStore) DeleteFaction(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.factions, id)
	return nil
}

func (s *MemStore) ListFactions() ([]*Faction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*Faction, 0, len(s.factions))
	for _, f := range s.factions {
		c := *f
		result = append(result, &c)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

// =============================================================================
// Subalignments
// =============================================================================

func (s *MemStore) UpsertSubalignment(sub *Subalignment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := *sub
	s.subalignments[sub.ID] = &c
	return nil
}

func (s *MemStore) GetSubalignment(id int64) (*Subalignment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if sub, ok := s.subalignments[id]; ok {
		c := *sub
		return &c, nil
	}
	return nil, nil
}

func (s *MemStore) DeleteSubalignment(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.subalignments, id)
	return nil
}

func (s *MemStore) ListSubalignments() ([]*Subalignment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*Subalignment, 0, len(s.subalignments))
	for _, sub := range s.subalignments {
		c := *sub
		result = append(result, &c)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

// =============================================================================
// Roles
// =============================================================================

func (s *MemStore) UpsertRole(r *Role) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.roles[r.ID] = cloneRole(r)
	return nil
}

func (s *MemStore) GetRole(id int64) (*Role, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if r, ok := s.roles[id]; ok {
		return cloneRole(r), nil
	}
	return nil, nil
}

// GetRoleByName matches names the same way scripts do.
func (s *MemStore) GetRoleByName(name string) (*Role, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	key := catalog.Fold(name)
	var best *Role
	for _, r := range s.roles {
		if catalog.Fold(r.Name) == key && (best == nil || r.ID < best.ID) {
			best = r
		}
	}
	if best == nil {
		return nil, nil
	}
	return cloneRole(best), nil
}

func (s *MemStore) DeleteRole(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.roles, id)
	return nil
}

func (s *MemStore) ListRoles(factionID int64) ([]*Role, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*Role
	for _, r := range s.roles {
		if factionID == 0 || r.Faction == factionID {
			result = append(result, cloneRole(r))
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (s *MemStore) CountRoles() (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.roles), nil
}
