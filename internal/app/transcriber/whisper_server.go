package transcriber

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

// WhisperServerConfig configures a self-hosted whisper.cpp server
// reachable over HTTP.
type WhisperServerConfig struct {
	BaseURL       string
	InferencePath string
	Language      string
	Timeout       time.Duration
}

// WhisperServer transcribes by uploading audio to a whisper-server
// /inference endpoint and parsing its verbose JSON response.
type WhisperServer struct {
	config WhisperServerConfig
	client *http.Client
}

type whisperServerSegment struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

type whisperServerResponse struct {
	Text     string                 `json:"text"`
	Language string                 `json:"language,omitempty"`
	Segments []whisperServerSegment `json:"segments,omitempty"`
}

func NewWhisperServer(config WhisperServerConfig) *WhisperServer {
	if config.InferencePath == "" {
		config.InferencePath = "/inference"
	}
	if config.Timeout == 0 {
		config.Timeout = 10 * time.Minute
	}
	return &WhisperServer{
		config: config,
		client: &http.Client{Timeout: config.Timeout},
	}
}

func (t *WhisperServer) Transcribe(ctx context.Context, audioPath string) (Transcription, error) {
	body, contentType, err := t.multipartBody(audioPath)
	if err != nil {
		return Transcription{}, err
	}

	url := t.config.BaseURL + t.config.InferencePath
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, body)
	if err != nil {
		return Transcription{}, fmt.Errorf("failed to build inference request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := t.client.Do(req)
	if err != nil {
		return Transcription{}, fmt.Errorf("whisper server request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return Transcription{}, fmt.Errorf("failed to read whisper server response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return Transcription{}, fmt.Errorf("whisper server returned %d: %s", resp.StatusCode, data)
	}

	var parsed whisperServerResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return Transcription{}, fmt.Errorf("failed to parse whisper server response: %w", err)
	}
	if parsed.Text == "" && len(parsed.Segments) == 0 {
		return Transcription{}, fmt.Errorf("whisper server returned an empty transcription")
	}

	out := Transcription{
		Text:     parsed.Text,
		Language: parsed.Language,
		Segments: make([]TimedSegment, 0, len(parsed.Segments)),
	}
	for _, segment := range parsed.Segments {
		out.Segments = append(out.Segments, TimedSegment{
			Start: segment.Start,
			End:   segment.End,
			Text:  segment.Text,
		})
	}
	return out, nil
}

func (t *WhisperServer) multipartBody(audioPath string) (*bytes.Buffer, string, error) {
	file, err := os.Open(audioPath)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open audio file: %w", err)
	}
	defer file.Close()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	part, err := writer.CreateFormFile("file", filepath.Base(audioPath))
	if err != nil {
		return nil, "", fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, "", fmt.Errorf("failed to copy audio into form: %w", err)
	}

	fields := map[string]string{"response_format": "verbose_json"}
	if t.config.Language != "" {
		fields["language"] = t.config.Language
	}
	for key, value := range fields {
		if err := writer.WriteField(key, value); err != nil {
			return nil, "", fmt.Errorf("failed to write field %s: %w", key, err)
		}
	}

	if err := writer.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to finalize form: %w", err)
	}
	return body, writer.FormDataContentType(), nil
}
