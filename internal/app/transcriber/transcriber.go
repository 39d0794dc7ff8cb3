// Package transcriber converts lecture audio into timed text. Backends
// produce machine transcripts for videos that ship no human captions.
package transcriber

import "context"

// TimedSegment is one stretch of recognized speech with offsets in
// seconds from the start of the audio.
type TimedSegment struct {
	Start float64
	End   float64
	Text  string
}

// Transcription is the full output for one audio file.
type Transcription struct {
	Text     string
	Language string
	Segments []TimedSegment
}

// Transcriber turns an audio file into a timed transcript.
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath string) (Transcription, error)
}
