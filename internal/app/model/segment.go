package model

// SegmentKind identifies which transcript source a segment came from.
type SegmentKind string

const (
	// SegmentKindHuman marks segments parsed from contributed caption tracks.
	SegmentKindHuman SegmentKind = "human"
	// SegmentKindMachine marks segments produced by speech-to-text.
	SegmentKindMachine SegmentKind = "machine"
)

// Segment is a time-bounded slice of a lecture transcript.
// Start and End are elapsed seconds from the beginning of the video.
// Invariant: Start <= End, SegmentID unique and ordering-stable per video.
type Segment struct {
	VideoID   string      `json:"video_id"`
	SegmentID int         `json:"segment_id"`
	Start     int         `json:"start"`
	End       int         `json:"end"`
	Text      string      `json:"text"`
	Kind      SegmentKind `json:"kind"`
}

// Duration returns the segment length in seconds.
func (s Segment) Duration() int {
	return s.End - s.Start
}
