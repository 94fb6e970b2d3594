package face

import (
	"fmt"

	"github.com/saturnino-fabrica-de-software/presente/internal/config"
	"github.com/saturnino-fabrica-de-software/presente/internal/provider"
	"github.com/saturnino-fabrica-de-software/presente/internal/provider/deepface"
	"github.com/saturnino-fabrica-de-software/presente/internal/provider/mock"
)

// ProviderType defines supported face detection/embedding backends
type ProviderType string

const (
	// ProviderTypeMock is the deterministic in-process backend (dev/test)
	ProviderTypeMock ProviderType = "mock"
	// ProviderTypeDeepFace is the DeepFace sidecar backend
	ProviderTypeDeepFace ProviderType = "deepface"
)

// NewFaceProvider creates a FaceProvider instance based on configuration.
//
// Environment variables:
//   - FACE_PROVIDER: "mock" or "deepface" (default: "mock")
//   - DEEPFACE_URL: DeepFace sidecar URL (default: "http://localhost:5005")
func NewFaceProvider(cfg *config.Config) (provider.FaceProvider, error) {
	providerType := ProviderType(cfg.ProviderType)

	switch providerType {
	case ProviderTypeDeepFace:
		return createDeepFaceProvider(cfg), nil

	case ProviderTypeMock, "":
		return mock.New(), nil

	default:
		return nil, fmt.Errorf("unknown provider type: %s (supported: %s, %s)",
			cfg.ProviderType, ProviderTypeMock, ProviderTypeDeepFace)
	}
}

// createDeepFaceProvider creates a DeepFace provider instance
func createDeepFaceProvider(cfg *config.Config) provider.FaceProvider {
	deepfaceConfig := deepface.DefaultConfig()
	if cfg.DeepFaceURL != "" {
		deepfaceConfig.BaseURL = cfg.DeepFaceURL
	}

	return deepface.NewProvider(deepfaceConfig)
}
