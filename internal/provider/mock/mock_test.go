package mock

import (
	"context"
	"math"
	"testing"

	"github.com/saturnino-fabrica-de-software/presente/internal/provider"
)

func TestProvider_DetectFaces(t *testing.T) {
	p := New()
	ctx := context.Background()

	tests := []struct {
		name      string
		image     []byte
		wantFaces int
		wantErr   bool
	}{
		{
			name:      "valid image",
			image:     make([]byte, 5000),
			wantFaces: 1,
			wantErr:   false,
		},
		{
			name:      "image too small",
			image:     make([]byte, 100),
			wantFaces: 0,
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			faces, err := p.DetectFaces(ctx, tt.image)
			if (err != nil) != tt.wantErr {
				t.Errorf("DetectFaces() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if len(faces) != tt.wantFaces {
				t.Errorf("DetectFaces() got %d faces, want %d", len(faces), tt.wantFaces)
			}
		})
	}
}

func TestProvider_ExtractEmbedding(t *testing.T) {
	p := New()
	ctx := context.Background()
	box := provider.BoundingBox{X: 0.1, Y: 0.1, Width: 0.8, Height: 0.8}

	image := make([]byte, 5000)
	for i := range image {
		image[i] = byte(i % 256)
	}

	embedding, err := p.ExtractEmbedding(ctx, image, box)
	if err != nil {
		t.Fatalf("ExtractEmbedding() error = %v", err)
	}
	if len(embedding) != embeddingDimension {
		t.Errorf("ExtractEmbedding() dimension = %d, want %d", len(embedding), embeddingDimension)
	}

	// Same image must always produce the same vector.
	again, err := p.ExtractEmbedding(ctx, image, box)
	if err != nil {
		t.Fatalf("ExtractEmbedding() second call error = %v", err)
	}
	for i := range embedding {
		if embedding[i] != again[i] {
			t.Fatalf("embedding not deterministic at index %d: %v != %v", i, embedding[i], again[i])
		}
	}

	norm := 0.0
	for _, v := range embedding {
		norm += v * v
	}
	if math.Abs(math.Sqrt(norm)-1) > 1e-9 {
		t.Errorf("embedding norm = %v, want 1", math.Sqrt(norm))
	}
}

func TestProvider_ExtractEmbedding_DifferentImages(t *testing.T) {
	p := New()
	ctx := context.Background()
	box := provider.BoundingBox{}

	a := make([]byte, 5000)
	b := make([]byte, 5000)
	b[0] = 1

	embA, err := p.ExtractEmbedding(ctx, a, box)
	if err != nil {
		t.Fatal(err)
	}
	embB, err := p.ExtractEmbedding(ctx, b, box)
	if err != nil {
		t.Fatal(err)
	}

	same := true
	for i := range embA {
		if embA[i] != embB[i] {
			same = false
			break
		}
	}
	if same {
		t.Error("different images produced identical embeddings")
	}
}

func TestProvider_CheckLiveness(t *testing.T) {
	p := New()

	result, err := p.CheckLiveness(context.Background(), make([]byte, 5000), provider.BoundingBox{})
	if err != nil {
		t.Fatalf("CheckLiveness() error = %v", err)
	}
	if !result.IsLive {
		t.Error("CheckLiveness() IsLive = false, want true")
	}
}
