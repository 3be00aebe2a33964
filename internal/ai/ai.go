package ai

import (
	"context"

	"github.com/miresse/video-accessibility/internal/models"
)

// The AI services are external black boxes reached over HTTP. The
// worker depends on these interfaces only; the rest subpackage holds
// the HTTP-backed implementations.

type SceneDetector interface {
	// DetectScenes labels the stored video. An empty slice (no scenes
	// found) is a valid result, not an error.
	DetectScenes(ctx context.Context, videoURI string) ([]models.Scene, error)
}

type Describer interface {
	DescribeScene(ctx context.Context, videoURI string, scene models.Scene, language string) (string, error)
	DescribeVideo(ctx context.Context, videoURI string, language string) (string, error)
}

type Transcriber interface {
	Transcribe(ctx context.Context, videoURI, language string) (*models.Transcript, error)
}

type SpeechSynthesizer interface {
	// Synthesize returns encoded audio for the given text.
	Synthesize(ctx context.Context, text, voice string) ([]byte, error)
}
