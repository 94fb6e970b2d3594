// galleryinit writes a fresh, empty gallery blob so a new deployment
// starts from a well-formed file instead of relying on the missing-file
// path. Refuses to overwrite an existing blob.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"

	"github.com/saturnino-fabrica-de-software/presente/internal/gallery"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	path := flag.String("path", "data/gallery.bin", "Where to write the empty gallery blob")
	dim := flag.Int("dim", gallery.DefaultDim, "Embedding dimensionality to pin in the blob")
	flag.Parse()

	if _, err := os.Stat(*path); err == nil {
		return fmt.Errorf("%s already exists, refusing to overwrite", *path)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("stat %s: %w", *path, err)
	}

	if err := os.MkdirAll(filepath.Dir(*path), 0o755); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}

	g := gallery.New(*path, *dim)
	if err := g.Save(); err != nil {
		return fmt.Errorf("write empty gallery: %w", err)
	}

	log.Printf("Empty gallery written to %s (dim %d)\n", *path, *dim)
	return nil
}
