// Package suggest finds catalog names close to a misspelled term.
//
// Every role name, faction name and tag is embedded as a bag of hashed
// character bigrams and trigrams and stored in an HNSW graph searched by
// cosine distance.
package suggest

import (
	"bytes"
	"encoding/gob"
	"errors"
	"fmt"
	"hash/fnv"
	"sync"

	"github.com/fogfish/hnsw"
	"github.com/fogfish/hnsw/vector"
	"github.com/hack-pad/hackpadfs"
	kvector "github.com/kshard/vector"

	"github.com/kittclouds/rolegen/pkg/catalog"
)

// Dim is the embedding width.
const Dim = 128

// ErrNoFS is returned by Save and Load on an index without a filesystem.
var ErrNoFS = errors.New("suggest: index has no filesystem")

// Index holds the searchable terms. It is safe for concurrent use.
type Index struct {
	fs   hackpadfs.FS
	path string

	mu    sync.RWMutex
	graph *hnsw.HNSW[vector.VF32]
	// terms[key] is the display form of the node with that key.
	terms []string
}

// snapshot is the persisted form of an Index.
type snapshot struct {
	Terms []string
	Nodes hnsw.Nodes[vector.VF32]
}

// NewIndex returns an empty index persisted at path in fs. fs may be nil
// for an in-memory index.
func NewIndex(fs hackpadfs.FS, path string) *Index {
	return &Index{fs: fs, path: path, graph: newGraph()}
}

func newGraph() *hnsw.HNSW[vector.VF32] {
	return hnsw.New[vector.VF32](vector.SurfaceVF32(kvector.Cosine()))
}

// Build replaces the index contents with the names and tags of roles.
func (ix *Index) Build(roles []catalog.Role) {
	graph := newGraph()
	var terms []string
	seen := make(map[string]bool)

	add := func(term string) {
		key := catalog.Fold(term)
		if key == "" || seen[key] {
			return
		}
		seen[key] = true
		graph.Insert(vector.VF32{Key: uint32(len(terms)), Vec: Embed(term)})
		terms = append(terms, term)
	}

	for _, p := range catalog.Project(roles) {
		add(p.Name)
		add(p.Faction)
		for _, tag := range p.Tags {
			add(tag)
		}
	}

	ix.mu.Lock()
	ix.graph, ix.terms = graph, terms
	ix.mu.Unlock()
}

// Len returns the number of indexed terms.
func (ix *Index) Len() int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return len(ix.terms)
}

// Suggest returns up to k indexed terms closest to term, nearest first.
func (ix *Index) Suggest(term string, k int) []string {
	if k <= 0 || catalog.Fold(term) == "" {
		return nil
	}

	ix.mu.RLock()
	defer ix.mu.RUnlock()
	if len(ix.terms) == 0 {
		return nil
	}

	ef := k * 2
	if ef < 100 {
		ef = 100
	}
	hits := ix.graph.Search(vector.VF32{Vec: Embed(term)}, k, ef)

	out := make([]string, 0, len(hits))
	for _, h := range hits {
		if int(h.Key) < len(ix.terms) {
			out = append(out, ix.terms[h.Key])
		}
	}
	return out
}

// Save writes the index to its filesystem.
func (ix *Index) Save() error {
	if ix.fs == nil {
		return ErrNoFS
	}

	ix.mu.RLock()
	snap := snapshot{Terms: ix.terms, Nodes: ix.graph.Nodes()}
	ix.mu.RUnlock()

	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(snap); err != nil {
		return fmt.Errorf("encode suggest index: %w", err)
	}
	if err := hackpadfs.WriteFullFile(ix.fs, ix.path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("write suggest index: %w", err)
	}
	return nil
}

// Load replaces the index contents with the saved copy.
func (ix *Index) Load() error {
	if ix.fs == nil {
		return ErrNoFS
	}

	content, err := hackpadfs.ReadFile(ix.fs, ix.path)
	if err != nil {
		return err
	}

	var snap snapshot
	if err := gob.NewDecoder(bytes.NewReader(content)).Decode(&snap); err != nil {
		return fmt.Errorf("decode suggest index: %w", err)
	}

	graph := hnsw.FromNodes[vector.VF32](vector.SurfaceVF32(kvector.Cosine()), snap.Nodes)

	ix.mu.Lock()
	ix.graph, ix.terms = graph, snap.Terms
	ix.mu.Unlock()
	return nil
}

// Embed maps term to a Dim-wide vector of hashed character n-gram counts.
// Case and surrounding space are ignored.
func Embed(term string) []float32 {
	vec := make([]float32, Dim)
	runes := []rune(" " + catalog.Fold(term) + " ")

	for n := 2; n <= 3; n++ {
		for i := 0; i+n <= len(runes); i++ {
			h := fnv.New32a()
			h.Write([]byte(string(runes[i : i+n])))
			vec[h.Sum32()%Dim]++
		}
	}
	return vec
}
