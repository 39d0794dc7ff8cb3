package transcriber

import (
	"context"
	"fmt"

	"github.com/sashabaranov/go-openai"
)

// OpenAITranscriber uses the hosted Whisper API. The verbose JSON
// format is requested so segment timestamps come back with the text.
type OpenAITranscriber struct {
	client   *openai.Client
	language string
}

func NewOpenAITranscriber(apiKey, language string) *OpenAITranscriber {
	return &OpenAITranscriber{
		client:   openai.NewClient(apiKey),
		language: language,
	}
}

func (t *OpenAITranscriber) Transcribe(ctx context.Context, audioPath string) (Transcription, error) {
	resp, err := t.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    openai.Whisper1,
		FilePath: audioPath,
		Format:   openai.AudioResponseFormatVerboseJSON,
		Language: t.language,
	})
	if err != nil {
		return Transcription{}, fmt.Errorf("whisper transcription failed: %w", err)
	}

	out := Transcription{
		Text:     resp.Text,
		Language: resp.Language,
		Segments: make([]TimedSegment, 0, len(resp.Segments)),
	}
	for _, segment := range resp.Segments {
		out.Segments = append(out.Segments, TimedSegment{
			Start: segment.Start,
			End:   segment.End,
			Text:  segment.Text,
		})
	}
	return out, nil
}
