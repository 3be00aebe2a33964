package rest

import (
	"context"

	"github.com/miresse/video-accessibility/internal/ai"
	"github.com/miresse/video-accessibility/internal/config"
	"github.com/miresse/video-accessibility/internal/models"
)

type transcribeClient struct {
	client
}

func NewTranscriber(cfg *config.AIConfig) ai.Transcriber {
	return &transcribeClient{client: newClient(cfg.TranscribeEndpoint, cfg)}
}

type transcribeRequest struct {
	VideoURI string `json:"video_uri"`
	Language string `json:"language"`
	// Word-level offsets let the formatter build SDH cue timing.
	WordTimeOffsets bool `json:"word_time_offsets"`
}

func (t *transcribeClient) Transcribe(ctx context.Context, videoURI, language string) (*models.Transcript, error) {
	transcript := &models.Transcript{}
	req := transcribeRequest{VideoURI: videoURI, Language: language, WordTimeOffsets: true}
	if err := t.postJSON(ctx, "/v1/transcriptions", req, transcript); err != nil {
		return nil, err
	}
	return transcript, nil
}

type ttsClient struct {
	client
}

func NewSpeechSynthesizer(cfg *config.AIConfig) ai.SpeechSynthesizer {
	return &ttsClient{client: newClient(cfg.SpeechEndpoint, cfg)}
}

type synthesizeRequest struct {
	Text  string `json:"text"`
	Voice string `json:"voice"`
}

func (s *ttsClient) Synthesize(ctx context.Context, text, voice string) ([]byte, error) {
	return s.postForBytes(ctx, "/v1/speech", synthesizeRequest{Text: text, Voice: voice})
}
