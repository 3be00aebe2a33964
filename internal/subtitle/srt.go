// Package subtitle renders timed transcript segments into subtitle
// artifacts. SRT output keeps SDH sound cues as bracketed lines so
// deaf and hard-of-hearing viewers get non-speech audio events.
package subtitle

import (
	"fmt"
	"strings"

	"github.com/miresse/video-accessibility/internal/models"
)

const Extension = ".srt"

// FormatSRT renders a transcript as an SRT document. Segments are
// emitted in slice order with 1-based indices.
func FormatSRT(t *models.Transcript) string {
	if t.Empty() {
		return ""
	}

	var b strings.Builder
	for i, seg := range t.Segments {
		b.WriteString(fmt.Sprintf("%d\n", i+1))
		b.WriteString(fmt.Sprintf("%s --> %s\n", Timestamp(seg.StartMS), Timestamp(seg.EndMS)))
		b.WriteString(cueText(seg))
		b.WriteString("\n\n")
	}
	return strings.TrimRight(b.String(), "\n") + "\n"
}

func cueText(seg models.Segment) string {
	text := strings.TrimSpace(seg.Text)
	if seg.SoundCue && !strings.HasPrefix(text, "[") {
		return "[" + text + "]"
	}
	return text
}

// Timestamp converts milliseconds to the SRT HH:MM:SS,mmm form.
func Timestamp(ms int64) string {
	if ms < 0 {
		ms = 0
	}
	hours := ms / 3600000
	ms %= 3600000
	minutes := ms / 60000
	ms %= 60000
	seconds := ms / 1000
	ms %= 1000
	return fmt.Sprintf("%02d:%02d:%02d,%03d", hours, minutes, seconds, ms)
}
