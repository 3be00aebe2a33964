package models

// Scene is one labeled segment returned by the scene-detection service.
// Times are milliseconds from the start of the video.
type Scene struct {
	StartMS     int64    `json:"start_ms"`
	EndMS       int64    `json:"end_ms"`
	Description string   `json:"description,omitempty"`
	Labels      []string `json:"labels,omitempty"`
	Confidence  float64  `json:"confidence,omitempty"`
}

func (s Scene) DurationMS() int64 {
	return s.EndMS - s.StartMS
}

// DescriptionMode selects the audio-description strategy. It is decided
// once per task, after scene detection, and carried through synthesis.
type DescriptionMode string

const (
	DescribePerScene   DescriptionMode = "per_scene"
	DescribeWholeVideo DescriptionMode = "whole_video"
)

// DescriptionPlan is the two-variant union of description strategies:
// per-scene when detection found scenes, whole-video when it found none.
type DescriptionPlan struct {
	Mode   DescriptionMode `json:"mode"`
	Scenes []Scene         `json:"scenes,omitempty"`
}

func NewDescriptionPlan(scenes []Scene) DescriptionPlan {
	if len(scenes) == 0 {
		return DescriptionPlan{Mode: DescribeWholeVideo}
	}
	return DescriptionPlan{Mode: DescribePerScene, Scenes: scenes}
}
