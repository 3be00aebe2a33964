package models

import "strings"

// Segment is one timed unit of transcribed speech. SoundCue marks
// non-speech audio events (music, door slams) kept for SDH subtitles.
type Segment struct {
	StartMS  int64  `json:"start_ms"`
	EndMS    int64  `json:"end_ms"`
	Text     string `json:"text"`
	SoundCue bool   `json:"sound_cue,omitempty"`
}

type Transcript struct {
	Language string    `json:"language,omitempty"`
	Segments []Segment `json:"segments"`
}

func (t *Transcript) Empty() bool {
	return t == nil || len(t.Segments) == 0
}

// DurationMS is the end time of the last segment.
func (t *Transcript) DurationMS() int64 {
	var max int64
	for _, s := range t.Segments {
		if s.EndMS > max {
			max = s.EndMS
		}
	}
	return max
}

func (t *Transcript) WordCount() int {
	count := 0
	for _, s := range t.Segments {
		count += len(strings.Fields(s.Text))
	}
	return count
}
