package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"

	"github.com/kittclouds/rolegen/pkg/catalog"
)

// SQLiteStore is the SQLite-backed catalog store.
// Uses ncruces/go-sqlite3/driver which provides a database/sql interface.
type SQLiteStore struct {
	mu sync.RWMutex
	db *sql.DB
}

// schema defines the catalog tables.
const schema = `
CREATE TABLE IF NOT EXISTS factions (
    id INTEGER PRIMARY KEY,
    name TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS subalignments (
    id INTEGER PRIMARY KEY,
    name TEXT NOT NULL
);

-- Roles reference factions and subalignments by id.
-- Note: No foreign keys - Roles() reports dangling references instead
CREATE TABLE IF NOT EXISTS roles (
    id INTEGER PRIMARY KEY,
    name TEXT NOT NULL,
    name_key TEXT NOT NULL,
    faction_id INTEGER NOT NULL,
    subalignment_id INTEGER NOT NULL,
    labels TEXT
);

CREATE INDEX IF NOT EXISTS idx_roles_name_key ON roles(name_key);
CREATE INDEX IF NOT EXISTS idx_roles_faction ON roles(faction_id);
`

// NewSQLiteStore creates a new in-memory SQLite store.
func NewSQLiteStore() (*SQLiteStore, error) {
	return NewSQLiteStoreWithDSN(":memory:")
}

// NewSQLiteStoreWithDSN creates a store with a specific data source name.
// Use ":memory:" for in-memory or a file path for persistent storage.
func NewSQLiteStoreWithDSN(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// Every :memory: connection is its own database.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// =============================================================================
// Factions
// =============================================================================

// UpsertFaction inserts or renames a faction.
func (s *SQLiteStore) UpsertFaction(f *Faction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
		INSERT INTO factions (id, name) VALUES (?, ?)
		ON CONFLICT(id) DO UPDATE SET name = excluded.name
	`, f.ID, f.Name)
	return err
}

// GetFaction retrieves a faction by ID.
func (s *SQLiteStore) GetFaction(id int64) (*Faction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var f Faction
	err := s.db.QueryRow(`SELECT id, name FROM factions WHERE id = ?`, id).Scan(&f.ID, &f.Name)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &f, nil
}

// DeleteFaction removes a faction. Its roles are kept.
func (s *SQLiteStore) DeleteFaction(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec("DELETE FROM factions WHERE id = ?", id)
	return err
}

// ListFactions returns every faction ordered by ID.
func (s *SQLiteStore) ListFactions() ([]*Faction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`SELECT id, name FROM factions ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []*Faction{}
	for rows.Next() {
		var f Faction
		if err := rows.Scan(&f.ID, &f.Name); err != nil {
			return nil, err
		}
		result = append(result, &f)
	}
	return result, rows.Err()
}

// =============================================================================
// Subalignments
// =============================================================================

// UpsertSubalignment inserts or renames a subalignment.
func (s *SQLiteStore) UpsertSubalignment(sub *Subalignment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
		INSERT INTO subalignments (id, name) VALUES (?, ?)
		ON CONFLICT(id) DO UPDATE SET name = excluded.name
	`, sub.ID, sub.Name)
	return err
}

// GetSubalignment retrieves a subalignment by ID.
func (s *SQLiteStore) GetSubalignment(id int64) (*Subalignment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var sub Subalignment
	err := s.db.QueryRow(`SELECT id, name FROM subalignments WHERE id = ?`, id).Scan(&sub.ID, &sub.Name)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

// DeleteSubalignment removes a subalignment.
func (s *SQLiteStore) DeleteSubalignment(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec("DELETE FROM subalignments WHERE id = ?", id)
	return err
}

// ListSubalignments returns every subalignment ordered by ID.
func (s *SQLiteStore) ListSubalignments() ([]*Subalignment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`SELECT id, name FROM subalignments ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []*Subalignment{}
	for rows.Next() {
		var sub Subalignment
		if err := rows.Scan(&sub.ID, &sub.Name); err != nil {
			return nil, err
		}
		result = append(result, &sub)
	}
	return result, rows.Err()
}

// =============================================================================
// Roles
// =============================================================================

const roleColumns = `id, name, faction_id, subalignment_id, labels`

// UpsertRole inserts or updates a role.
func (s *SQLiteStore) UpsertRole(r *Role) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	labelsJSON, err := json.Marshal(r.Labels)
	if err != nil {
		return fmt.Errorf("failed to marshal labels: %w", err)
	}

	_, err = s.db.Exec(`
		INSERT INTO roles (id, name, name_key, faction_id, subalignment_id, labels)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			name_key = excluded.name_key,
			faction_id = excluded.faction_id,
			subalignment_id = excluded.subalignment_id,
			labels = excluded.labels
	`, r.ID, r.Name, catalog.Fold(r.Name), r.Faction, r.Subalignment, string(labelsJSON))

	return err
}

// GetRole retrieves a role by ID.
func (s *SQLiteStore) GetRole(id int64) (*Role, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return scanRole(s.db.QueryRow(`SELECT `+roleColumns+` FROM roles WHERE id = ?`, id))
}

// GetRoleByName finds a role by name, folded the same way scripts match it.
func (s *SQLiteStore) GetRoleByName(name string) (*Role, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return scanRole(s.db.QueryRow(
		`SELECT `+roleColumns+` FROM roles WHERE name_key = ? ORDER BY id LIMIT 1`,
		catalog.Fold(name),
	))
}

// DeleteRole removes a role by ID.
func (s *SQLiteStore) DeleteRole(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec("DELETE FROM roles WHERE id = ?", id)
	return err
}

// ListRoles returns roles ordered by ID, optionally filtered by faction.
func (s *SQLiteStore) ListRoles(factionID int64) ([]*Role, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var rows *sql.Rows
	var err error

	if factionID != 0 {
		rows, err = s.db.Query(`SELECT `+roleColumns+` FROM roles WHERE faction_id = ? ORDER BY id`, factionID)
	} else {
		rows, err = s.db.Query(`SELECT ` + roleColumns + ` FROM roles ORDER BY id`)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var roles []*Role
	for rows.Next() {
		r, err := scanRole(rows)
		if err != nil {
			return nil, err
		}
		roles = append(roles, r)
	}
	return roles, rows.Err()
}

// CountRoles returns the total number of roles.
func (s *SQLiteStore) CountRoles() (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var count int
	err := s.db.QueryRow("SELECT COUNT(*) FROM roles").Scan(&count)
	return count, err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRole(row rowScanner) (*Role, error) {
	var r Role
	var labelsJSON sql.NullString

	err := row.Scan(&r.ID, &r.Name, &r.Faction, &r.Subalignment, &labelsJSON)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if labelsJSON.Valid && labelsJSON.String != "" {
		if err := json.Unmarshal([]byte(labelsJSON.String), &r.Labels); err != nil {
			return nil, fmt.Errorf("role %d: bad labels: %w", r.ID, err)
		}
	}
	return &r, nil
}
