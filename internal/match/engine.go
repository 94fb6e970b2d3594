package match

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/saturnino-fabrica-de-software/presente/internal/domain"
)

// GallerySource is the read side of the gallery the engine scans.
type GallerySource interface {
	Snapshot() []domain.GalleryEntry
	Dim() int
}

// Engine resolves a query embedding to the nearest enrolled identity.
// Gallery sizes in this domain are hundreds to low thousands, so the
// engine does an exact linear scan over a snapshot; an approximate index
// would only buy staleness bugs under frequent enroll/delete.
type Engine struct {
	gallery GallerySource
}

func NewEngine(gallery GallerySource) *Engine {
	return &Engine{gallery: gallery}
}

// Query scans the current gallery snapshot for the entry with minimum
// Euclidean distance to embedding. The result's Identity is set only when
// that distance falls under distanceThreshold; Confidence always describes
// the closest candidate so callers can display diagnostics for rejected
// queries too. An empty gallery yields a result with Confidence 0.
func (e *Engine) Query(embedding []float64, distanceThreshold float64) (*domain.MatchResult, error) {
	if len(embedding) != e.gallery.Dim() {
		return nil, domain.ErrDimensionMismatch.WithError(
			fmt.Errorf("query has %d values, gallery expects %d", len(embedding), e.gallery.Dim()))
	}

	entries := e.gallery.Snapshot()
	if len(entries) == 0 {
		return &domain.MatchResult{Confidence: 0}, nil
	}

	best := 0
	bestDist := floats.Distance(embedding, entries[0].Embedding, 2)
	for i := 1; i < len(entries); i++ {
		if d := floats.Distance(embedding, entries[i].Embedding, 2); d < bestDist {
			best, bestDist = i, d
		}
	}

	result := &domain.MatchResult{
		Confidence: (1 - bestDist) * 100,
		Distance:   bestDist,
	}
	if bestDist < distanceThreshold {
		identity := entries[best].Identity
		result.Identity = &identity
	}

	return result, nil
}

// DistanceThreshold converts the confidence percentage callers expose
// (UI sliders work in percent) into the raw distance bound Query consumes.
func DistanceThreshold(confidencePct float64) float64 {
	return 1 - confidencePct/100
}
