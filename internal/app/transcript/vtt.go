package transcript

import (
	"fmt"
	"strings"

	"fastsearch/internal/app/model"
)

// ParseVTT parses a WebVTT document into raw segments for one video.
// Segment ids are assigned densely in document order starting at 0.
// A malformed cue timestamp fails the whole parse; the caller decides
// whether to skip the video or abort the run.
func ParseVTT(videoID string, content string) ([]model.Segment, error) {
	// A VTT document is blank-line separated blocks; the first block is
	// the "WEBVTT" header and is skipped.
	blocks := strings.Split(strings.ReplaceAll(content, "\r\n", "\n"), "\n\n")

	var segments []model.Segment
	for _, block := range blocks[1:] {
		block = strings.TrimSpace(block)
		if block == "" {
			continue
		}

		timeLine, text, found := strings.Cut(block, "\n")
		if !found {
			continue
		}

		startRaw, endRaw, found := strings.Cut(timeLine, " --> ")
		if !found {
			return nil, fmt.Errorf("cue %d of %s has no timestamp line", len(segments), videoID)
		}
		// Cue settings ("align:start ...") may trail the end timestamp.
		if idx := strings.IndexByte(endRaw, ' '); idx >= 0 {
			endRaw = endRaw[:idx]
		}

		start, err := ParseTimecode(strings.TrimSpace(startRaw))
		if err != nil {
			return nil, err
		}
		end, err := ParseTimecode(strings.TrimSpace(endRaw))
		if err != nil {
			return nil, err
		}

		segments = append(segments, model.Segment{
			VideoID:   videoID,
			SegmentID: len(segments),
			Start:     start,
			End:       end,
			Text:      text,
			Kind:      model.SegmentKindHuman,
		})
	}
	return segments, nil
}
