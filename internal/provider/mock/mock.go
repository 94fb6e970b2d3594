package mock

import (
	"context"
	"crypto/sha256"
	"math"

	"github.com/saturnino-fabrica-de-software/presente/internal/domain"
	"github.com/saturnino-fabrica-de-software/presente/internal/provider"
)

const embeddingDimension = 128

// Provider implementa provider.FaceProvider para testes e desenvolvimento
type Provider struct{}

// New cria uma nova instância do provider de mock
func New() *Provider {
	return &Provider{}
}

// DetectFaces simula detecção: uma única face ocupando a área central
func (p *Provider) DetectFaces(ctx context.Context, image []byte) ([]provider.DetectedFace, error) {
	if len(image) < 1000 {
		return nil, domain.ErrInvalidImage
	}

	return []provider.DetectedFace{
		{
			BoundingBox: provider.BoundingBox{
				X:      0.1,
				Y:      0.1,
				Width:  0.8,
				Height: 0.8,
			},
			Confidence: 0.99,
		},
	}, nil
}

// ExtractEmbedding gera embedding determinístico baseado no hash da imagem
func (p *Provider) ExtractEmbedding(ctx context.Context, image []byte, box provider.BoundingBox) ([]float64, error) {
	if len(image) < 1000 {
		return nil, domain.ErrEmbeddingFailed
	}

	return generateEmbedding(image), nil
}

// CheckLiveness stub: sempre reporta a face como viva
func (p *Provider) CheckLiveness(ctx context.Context, image []byte, box provider.BoundingBox) (*provider.LivenessResult, error) {
	if len(image) < 1000 {
		return nil, domain.ErrInvalidImage
	}

	return &provider.LivenessResult{
		IsLive:     true,
		Confidence: 0.95,
	}, nil
}

// generateEmbedding gera um vetor normalizado determinístico a partir do
// hash da imagem, para que a mesma imagem sempre produza o mesmo embedding
func generateEmbedding(image []byte) []float64 {
	hash := sha256.Sum256(image)
	embedding := make([]float64, embeddingDimension)
	hashLen := len(hash)

	for i := 0; i < embeddingDimension; i++ {
		idx := i % hashLen
		embedding[i] = (float64(hash[idx])/255.0)*2 - 1
	}

	norm := 0.0
	for _, v := range embedding {
		norm += v * v
	}
	norm = math.Sqrt(norm)
	if norm > 0 {
		for i := range embedding {
			embedding[i] /= norm
		}
	}

	return embedding
}
