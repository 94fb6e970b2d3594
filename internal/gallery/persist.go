package gallery

import (
	"encoding/gob"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/saturnino-fabrica-de-software/presente/internal/domain"
)

// blobVersion guards the on-disk encoding. Bump it when the blob layout
// changes; Load rejects versions it does not know.
const blobVersion = 1

// blob is the serialized gallery: four parallel slices, index i describing
// one identity. The layout mirrors the store the system migrated from, so
// an exported gallery keeps its shape.
type blob struct {
	Version     int
	Dim         int
	Embeddings  [][]float64
	IDs         []string
	Names       []string
	Departments []string
}

// Load reads the gallery blob at path into a new Gallery. A missing file
// is not an error: it yields an empty gallery. A file that is present but
// unreadable, inconsistent, or recorded with another dimensionality is
// fatal (domain.ErrGalleryCorrupt): starting with a partial gallery would
// risk overwriting the real one on the next enrollment.
func Load(path string, dim int) (*Gallery, error) {
	g := New(path, dim)

	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return g, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open gallery blob: %w", err)
	}
	defer f.Close()

	var b blob
	if err := gob.NewDecoder(f).Decode(&b); err != nil {
		return nil, domain.ErrGalleryCorrupt.WithError(err)
	}
	if b.Version != blobVersion {
		return nil, domain.ErrGalleryCorrupt.WithError(
			fmt.Errorf("unknown blob version %d", b.Version))
	}
	if b.Dim != g.dim {
		return nil, domain.ErrGalleryCorrupt.WithError(
			fmt.Errorf("blob dimensionality %d, gallery expects %d", b.Dim, g.dim))
	}
	n := len(b.IDs)
	if len(b.Embeddings) != n || len(b.Names) != n || len(b.Departments) != n {
		return nil, domain.ErrGalleryCorrupt.WithError(
			errors.New("parallel sequences have differing lengths"))
	}

	g.entries = make([]domain.GalleryEntry, 0, n)
	for i := 0; i < n; i++ {
		if len(b.Embeddings[i]) != g.dim {
			return nil, domain.ErrGalleryCorrupt.WithError(
				fmt.Errorf("entry %d has %d values, expected %d", i, len(b.Embeddings[i]), g.dim))
		}
		g.entries = append(g.entries, domain.GalleryEntry{
			Identity: domain.Identity{
				ID:         b.IDs[i],
				Name:       b.Names[i],
				Department: b.Departments[i],
			},
			Embedding: b.Embeddings[i],
		})
	}
	g.rebuildIndex()
	g.checkInvariant()

	return g, nil
}

// save serializes the gallery to its path. Callers hold the write lock.
// The blob is written to a temp file and renamed into place so a crashed
// write never leaves a partial gallery observable.
func (g *Gallery) save() error {
	if g.path == "" {
		return nil
	}

	b := blob{
		Version:     blobVersion,
		Dim:         g.dim,
		Embeddings:  make([][]float64, len(g.entries)),
		IDs:         make([]string, len(g.entries)),
		Names:       make([]string, len(g.entries)),
		Departments: make([]string, len(g.entries)),
	}
	for i, e := range g.entries {
		b.Embeddings[i] = e.Embedding
		b.IDs[i] = e.Identity.ID
		b.Names[i] = e.Identity.Name
		b.Departments[i] = e.Identity.Department
	}

	tmp, err := os.CreateTemp(filepath.Dir(g.path), ".gallery-*")
	if err != nil {
		return fmt.Errorf("create temp blob: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := gob.NewEncoder(tmp).Encode(b); err != nil {
		tmp.Close()
		return fmt.Errorf("encode gallery blob: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp blob: %w", err)
	}
	if err := os.Rename(tmp.Name(), g.path); err != nil {
		return fmt.Errorf("replace gallery blob: %w", err)
	}

	return nil
}

// Save forces a write of the current state, for tools that need to create
// the blob without going through a mutation.
func (g *Gallery) Save() error {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.save()
}
