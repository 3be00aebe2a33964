package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/miresse/video-accessibility/internal/config"
	"github.com/miresse/video-accessibility/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testAIConfig(baseURL string) *config.AIConfig {
	return &config.AIConfig{
		VisionEndpoint:     baseURL,
		TranscribeEndpoint: baseURL,
		DescribeEndpoint:   baseURL,
		SpeechEndpoint:     baseURL,
		APIKey:             "test-key",
		RequestTimeout:     5 * time.Second,
	}
}

func TestDetectScenes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/scenes", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "s3://videos-input/sources/a/v.mp4", req["video_uri"])

		json.NewEncoder(w).Encode(map[string]interface{}{
			"scenes": []map[string]interface{}{
				{"start_ms": 0, "end_ms": 4000, "labels": []string{"street"}},
				{"start_ms": 4000, "end_ms": 9000},
			},
		})
	}))
	defer srv.Close()

	detector := NewSceneDetector(testAIConfig(srv.URL))
	scenes, err := detector.DetectScenes(context.Background(), "s3://videos-input/sources/a/v.mp4")
	require.NoError(t, err)
	require.Len(t, scenes, 2)
	assert.Equal(t, int64(4000), scenes[0].EndMS)
	assert.Equal(t, []string{"street"}, scenes[0].Labels)
}

func TestDetectScenesEmptyResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"scenes": []interface{}{}})
	}))
	defer srv.Close()

	detector := NewSceneDetector(testAIConfig(srv.URL))
	scenes, err := detector.DetectScenes(context.Background(), "s3://b/k")
	require.NoError(t, err)
	assert.Empty(t, scenes)
}

func TestDescribeSceneSendsBounds(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/descriptions", r.URL.Path)

		var req map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, float64(1000), req["start_ms"])
		assert.Equal(t, float64(5000), req["end_ms"])
		assert.Equal(t, "es", req["language"])

		json.NewEncoder(w).Encode(map[string]string{"description": "una calle concurrida"})
	}))
	defer srv.Close()

	describer := NewDescriber(testAIConfig(srv.URL))
	text, err := describer.DescribeScene(context.Background(), "s3://b/k", models.Scene{StartMS: 1000, EndMS: 5000}, "es")
	require.NoError(t, err)
	assert.Equal(t, "una calle concurrida", text)
}

func TestDescribeVideoOmitsBounds(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		_, hasStart := req["start_ms"]
		_, hasEnd := req["end_ms"]
		assert.False(t, hasStart)
		assert.False(t, hasEnd)

		json.NewEncoder(w).Encode(map[string]string{"description": "resumen completo"})
	}))
	defer srv.Close()

	describer := NewDescriber(testAIConfig(srv.URL))
	text, err := describer.DescribeVideo(context.Background(), "s3://b/k", "es")
	require.NoError(t, err)
	assert.Equal(t, "resumen completo", text)
}

func TestTranscribe(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/transcriptions", r.URL.Path)

		var req map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, true, req["word_time_offsets"])

		json.NewEncoder(w).Encode(map[string]interface{}{
			"language": "es",
			"segments": []map[string]interface{}{
				{"start_ms": 0, "end_ms": 2000, "text": "hola"},
				{"start_ms": 2500, "end_ms": 3000, "text": "aplausos", "sound_cue": true},
			},
		})
	}))
	defer srv.Close()

	transcriber := NewTranscriber(testAIConfig(srv.URL))
	transcript, err := transcriber.Transcribe(context.Background(), "s3://b/k", "es")
	require.NoError(t, err)
	require.Len(t, transcript.Segments, 2)
	assert.True(t, transcript.Segments[1].SoundCue)
}

func TestSynthesizeReturnsAudioBytes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/speech", r.URL.Path)

		var req map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "es-ES-F", req["voice"])

		w.Header().Set("Content-Type", "audio/mpeg")
		w.Write([]byte("mp3-frames"))
	}))
	defer srv.Close()

	tts := NewSpeechSynthesizer(testAIConfig(srv.URL))
	audio, err := tts.Synthesize(context.Background(), "texto narrado", "es-ES-F")
	require.NoError(t, err)
	assert.Equal(t, []byte("mp3-frames"), audio)
}

func TestServerErrorIncludesBodySnippet(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model overloaded", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	detector := NewSceneDetector(testAIConfig(srv.URL))
	_, err := detector.DetectScenes(context.Background(), "s3://b/k")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
	assert.Contains(t, err.Error(), "model overloaded")
}
