package gallery

import (
	"fmt"
	"sync"

	"github.com/saturnino-fabrica-de-software/presente/internal/domain"
)

// DefaultDim is the embedding dimensionality of the face model this
// gallery was trained against. Changing it invalidates every stored blob.
const DefaultDim = 128

// Gallery is the in-memory set of enrolled (identity, embedding) pairs,
// durably serialized to a single blob after every mutation. The ordered
// entries slice and the id index are always updated together; the index
// maps an identity id to its first position in entries.
type Gallery struct {
	mu      sync.RWMutex
	entries []domain.GalleryEntry
	index   map[string]int
	dim     int
	path    string
}

// New creates an empty gallery persisting to path. dim <= 0 falls back to
// DefaultDim.
func New(path string, dim int) *Gallery {
	if dim <= 0 {
		dim = DefaultDim
	}
	return &Gallery{
		index: make(map[string]int),
		dim:   dim,
		path:  path,
	}
}

// Dim returns the pinned embedding dimensionality.
func (g *Gallery) Dim() int {
	return g.dim
}

// Enroll inserts a new identity with its representative embedding and
// persists the gallery. Enrolling an id that is already present returns
// domain.ErrDuplicateIdentity and leaves the gallery untouched.
func (g *Gallery) Enroll(id, name, department string, embedding []float64) error {
	if len(embedding) != g.dim {
		return domain.ErrDimensionMismatch.WithError(
			fmt.Errorf("got %d values, gallery expects %d", len(embedding), g.dim))
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if _, ok := g.index[id]; ok {
		return domain.ErrDuplicateIdentity
	}

	owned := make([]float64, len(embedding))
	copy(owned, embedding)

	g.entries = append(g.entries, domain.GalleryEntry{
		Identity: domain.Identity{
			ID:         id,
			Name:       name,
			Department: department,
		},
		Embedding: owned,
	})
	g.index[id] = len(g.entries) - 1
	g.checkInvariant()

	if err := g.save(); err != nil {
		// Roll the insert back so memory never diverges from disk.
		g.entries = g.entries[:len(g.entries)-1]
		delete(g.index, id)
		return fmt.Errorf("persist gallery: %w", err)
	}

	return nil
}

// Delete removes every entry held for id and persists the gallery. The
// gallery expects at most one entry per id, but removes duplicates if they
// somehow exist. It reports whether anything was removed.
func (g *Gallery) Delete(id string) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, ok := g.index[id]; !ok {
		return false, nil
	}

	kept := g.entries[:0:0]
	for _, e := range g.entries {
		if e.Identity.ID != id {
			kept = append(kept, e)
		}
	}
	prevEntries, prevIndex := g.entries, g.index
	g.entries = kept
	g.rebuildIndex()
	g.checkInvariant()

	if err := g.save(); err != nil {
		g.entries = prevEntries
		g.index = prevIndex
		return false, fmt.Errorf("persist gallery: %w", err)
	}

	return true, nil
}

// Contains reports whether id is enrolled.
func (g *Gallery) Contains(id string) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	_, ok := g.index[id]
	return ok
}

// Get returns the entry for id with a copied embedding.
func (g *Gallery) Get(id string) (*domain.GalleryEntry, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	pos, ok := g.index[id]
	if !ok {
		return nil, false
	}
	e := copyEntry(g.entries[pos])
	return &e, true
}

// Count returns the number of enrolled identities.
func (g *Gallery) Count() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.entries)
}

// Snapshot returns a point-in-time copy of every entry. The read lock is
// held only while copying; callers scan the copy lock-free, so a scan in
// flight never observes a concurrent enroll or delete.
func (g *Gallery) Snapshot() []domain.GalleryEntry {
	g.mu.RLock()
	defer g.mu.RUnlock()

	out := make([]domain.GalleryEntry, len(g.entries))
	for i, e := range g.entries {
		out[i] = copyEntry(e)
	}
	return out
}

func copyEntry(e domain.GalleryEntry) domain.GalleryEntry {
	emb := make([]float64, len(e.Embedding))
	copy(emb, e.Embedding)
	return domain.GalleryEntry{Identity: e.Identity, Embedding: emb}
}

func (g *Gallery) rebuildIndex() {
	g.index = make(map[string]int, len(g.entries))
	for i, e := range g.entries {
		if _, ok := g.index[e.Identity.ID]; !ok {
			g.index[e.Identity.ID] = i
		}
	}
}

// checkInvariant panics when the ordered entries and the id index have
// drifted apart. Both are only ever mutated under the write lock, so a
// failure here is a programming error, not a runtime condition.
func (g *Gallery) checkInvariant() {
	for id, pos := range g.index {
		if pos < 0 || pos >= len(g.entries) || g.entries[pos].Identity.ID != id {
			panic(fmt.Sprintf("gallery index out of sync for id %q", id))
		}
	}
}
