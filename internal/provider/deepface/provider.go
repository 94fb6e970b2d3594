package deepface

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/saturnino-fabrica-de-software/presente/internal/domain"
	"github.com/saturnino-fabrica-de-software/presente/internal/provider"
)

// Provider implements provider.FaceProvider using a DeepFace sidecar
type Provider struct {
	client *Client
}

// NewProvider creates a new DeepFace provider
func NewProvider(config Config) *Provider {
	return &Provider{
		client: NewClient(config),
	}
}

// DetectFaces detects faces in the image
func (p *Provider) DetectFaces(ctx context.Context, image []byte) ([]provider.DetectedFace, error) {
	resp, err := p.represent(ctx, image)
	if err != nil {
		return nil, fmt.Errorf("detect faces: %w", err)
	}

	faces := make([]provider.DetectedFace, 0, len(resp.Results))
	for _, result := range resp.Results {
		faces = append(faces, provider.DetectedFace{
			BoundingBox: boxFromArea(result.FacialArea),
			Confidence:  0.99,
		})
	}

	return faces, nil
}

// ExtractEmbedding extracts the embedding of the face at box. DeepFace
// returns one result per detected face; the result whose facial area is
// closest to box is used.
func (p *Provider) ExtractEmbedding(ctx context.Context, image []byte, box provider.BoundingBox) ([]float64, error) {
	resp, err := p.represent(ctx, image)
	if err != nil {
		return nil, domain.ErrEmbeddingFailed.WithError(err)
	}

	if len(resp.Results) == 0 {
		return nil, domain.ErrEmbeddingFailed.WithError(ErrNoFaceInResponse)
	}

	best := resp.Results[0]
	bestDist := areaDistance(best.FacialArea, box)
	for _, result := range resp.Results[1:] {
		if d := areaDistance(result.FacialArea, box); d < bestDist {
			best, bestDist = result, d
		}
	}

	if len(best.Embedding) == 0 {
		return nil, domain.ErrEmbeddingFailed.WithError(ErrNoFaceInResponse)
	}

	return best.Embedding, nil
}

// CheckLiveness is a stub: a detected face is reported as live. Proper
// anti-spoofing lives outside this module.
func (p *Provider) CheckLiveness(ctx context.Context, image []byte, box provider.BoundingBox) (*provider.LivenessResult, error) {
	return &provider.LivenessResult{
		IsLive:     true,
		Confidence: 1.0,
	}, nil
}

func (p *Provider) represent(ctx context.Context, image []byte) (*RepresentResponse, error) {
	imageBase64 := base64.StdEncoding.EncodeToString(image)
	return p.client.Represent(ctx, imageBase64)
}

func boxFromArea(area FacialArea) provider.BoundingBox {
	return provider.BoundingBox{
		X:      float64(area.X),
		Y:      float64(area.Y),
		Width:  float64(area.W),
		Height: float64(area.H),
	}
}

func areaDistance(area FacialArea, box provider.BoundingBox) float64 {
	dx := float64(area.X) - box.X
	dy := float64(area.Y) - box.Y
	return dx*dx + dy*dy
}

// Ensure Provider implements provider.FaceProvider
var _ provider.FaceProvider = (*Provider)(nil)
