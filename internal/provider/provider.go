package provider

import "context"

// FaceProvider define a interface para o detector e extrator de embeddings
// externo. O núcleo nunca inspeciona pixels: tudo que ele consome são as
// caixas detectadas e os vetores extraídos aqui.
type FaceProvider interface {
	// DetectFaces detecta faces na imagem e retorna informações sobre cada uma
	DetectFaces(ctx context.Context, image []byte) ([]DetectedFace, error)

	// ExtractEmbedding extrai o embedding de uma face na imagem.
	// Falha de codificação retorna domain.ErrEmbeddingFailed e o chamador
	// simplesmente pula a face.
	ExtractEmbedding(ctx context.Context, image []byte, box BoundingBox) ([]float64, error)

	// CheckLiveness performs passive liveness detection on an image.
	// Current backends are stubs that always report live.
	CheckLiveness(ctx context.Context, image []byte, box BoundingBox) (*LivenessResult, error)
}

// DetectedFace represents a detected face in the image
type DetectedFace struct {
	BoundingBox BoundingBox `json:"bounding_box"`
	Confidence  float64     `json:"confidence"`
}

// BoundingBox represents the face area in the image
type BoundingBox struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// LivenessResult represents the result of a liveness check
type LivenessResult struct {
	IsLive     bool    `json:"is_live"`
	Confidence float64 `json:"confidence"`
}
