package rest

import (
	"context"

	"github.com/miresse/video-accessibility/internal/ai"
	"github.com/miresse/video-accessibility/internal/config"
	"github.com/miresse/video-accessibility/internal/models"
)

type visionClient struct {
	client
}

func NewSceneDetector(cfg *config.AIConfig) ai.SceneDetector {
	return &visionClient{client: newClient(cfg.VisionEndpoint, cfg)}
}

type detectScenesRequest struct {
	VideoURI string `json:"video_uri"`
}

type detectScenesResponse struct {
	Scenes []models.Scene `json:"scenes"`
}

func (v *visionClient) DetectScenes(ctx context.Context, videoURI string) ([]models.Scene, error) {
	var res detectScenesResponse
	if err := v.postJSON(ctx, "/v1/scenes", detectScenesRequest{VideoURI: videoURI}, &res); err != nil {
		return nil, err
	}
	return res.Scenes, nil
}

type describerClient struct {
	client
}

func NewDescriber(cfg *config.AIConfig) ai.Describer {
	return &describerClient{client: newClient(cfg.DescribeEndpoint, cfg)}
}

type describeRequest struct {
	VideoURI string `json:"video_uri"`
	Language string `json:"language"`
	StartMS  *int64 `json:"start_ms,omitempty"`
	EndMS    *int64 `json:"end_ms,omitempty"`
}

type describeResponse struct {
	Description string  `json:"description"`
	Confidence  float64 `json:"confidence,omitempty"`
}

func (d *describerClient) DescribeScene(ctx context.Context, videoURI string, scene models.Scene, language string) (string, error) {
	req := describeRequest{
		VideoURI: videoURI,
		Language: language,
		StartMS:  &scene.StartMS,
		EndMS:    &scene.EndMS,
	}
	var res describeResponse
	if err := d.postJSON(ctx, "/v1/descriptions", req, &res); err != nil {
		return "", err
	}
	return res.Description, nil
}

func (d *describerClient) DescribeVideo(ctx context.Context, videoURI string, language string) (string, error) {
	var res describeResponse
	if err := d.postJSON(ctx, "/v1/descriptions", describeRequest{VideoURI: videoURI, Language: language}, &res); err != nil {
		return "", err
	}
	return res.Description, nil
}
