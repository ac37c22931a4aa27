package catalog

import (
	"encoding/json"
	"fmt"
	"path"
	"strings"

	"github.com/hack-pad/hackpadfs"
	"gopkg.in/yaml.v3"
)

// File is the on-disk catalog layout. Roles reference factions and
// subalignments by ID.
type File struct {
	Factions      []Faction      `json:"factions" yaml:"factions"`
	Subalignments []Subalignment `json:"subalignments" yaml:"subalignments"`
	Roles         []FileRole     `json:"roles" yaml:"roles"`
}

// FileRole is a role entry inside a catalog File.
type FileRole struct {
	ID           int64    `json:"id" yaml:"id"`
	Name         string   `json:"name" yaml:"name"`
	Faction      int64    `json:"faction" yaml:"faction"`
	Subalignment int64    `json:"subalignment" yaml:"subalignment"`
	Labels       []string `json:"labels,omitempty" yaml:"labels,omitempty"`
}

// Load reads a catalog file (YAML or JSON) from fsys and resolves it into roles.
func Load(fsys hackpadfs.FS, name string) ([]Role, error) {
	data, err := hackpadfs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	f, err := Decode(data, path.Ext(name))
	if err != nil {
		return nil, err
	}
	return f.Resolve()
}

// Decode parses catalog bytes. ext is the file extension used as a format
// hint; when empty the format is detected from content.
func Decode(data []byte, ext string) (*File, error) {
	ext = strings.ToLower(ext)
	if ext == ".yml" {
		ext = ".yaml"
	}
	if ext == "" {
		if strings.HasPrefix(strings.TrimSpace(string(data)), "{") {
			ext = ".json"
		} else {
			ext = ".yaml"
		}
	}

	var f File
	switch ext {
	case ".json":
		if err := json.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("parse catalog json: %w", err)
		}
	case ".yaml":
		if err := yaml.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("parse catalog yaml: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported catalog format %q", ext)
	}
	return &f, nil
}

// Resolve joins role entries with their faction and subalignment records.
func (f *File) Resolve() ([]Role, error) {
	factions := make(map[int64]Faction, len(f.Factions))
	for _, fac := range f.Factions {
		factions[fac.ID] = fac
	}
	subs := make(map[int64]Subalignment, len(f.Subalignments))
	for _, sub := range f.Subalignments {
		subs[sub.ID] = sub
	}

	roles := make([]Role, 0, len(f.Roles))
	for _, fr := range f.Roles {
		fac, ok := factions[fr.Faction]
		if !ok {
			return nil, fmt.Errorf("role %q: unknown faction %d", fr.Name, fr.Faction)
		}
		sub, ok := subs[fr.Subalignment]
		if !ok {
			return nil, fmt.Errorf("role %q: unknown subalignment %d", fr.Name, fr.Subalignment)
		}
		roles = append(roles, Role{
			ID:           fr.ID,
			Name:         fr.Name,
			Faction:      fac,
			Subalignment: sub,
			Labels:       fr.Labels,
		})
	}
	return roles, nil
}

// Encode builds a File from resolved roles, collecting their factions and
// subalignments in first-seen order.
func Encode(roles []Role) *File {
	f := &File{}
	seenFac := make(map[int64]bool)
	seenSub := make(map[int64]bool)
	for _, r := range roles {
		if !seenFac[r.Faction.ID] {
			seenFac[r.Faction.ID] = true
			f.Factions = append(f.Factions, r.Faction)
		}
		if !seenSub[r.Subalignment.ID] {
			seenSub[r.Subalignment.ID] = true
			f.Subalignments = append(f.Subalignments, r.Subalignment)
		}
		f.Roles = append(f.Roles, FileRole{
			ID:           r.ID,
			Name:         r.Name,
			Faction:      r.Faction.ID,
			Subalignment: r.Subalignment.ID,
			Labels:       r.Labels,
		})
	}
	return f
}
