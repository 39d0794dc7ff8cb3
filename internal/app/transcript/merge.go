package transcript

import (
	"sort"
	"strings"

	"fastsearch/internal/app/model"
)

// DefaultMaxDuration is the merge trigger threshold in seconds.
const DefaultMaxDuration = 30

// Merge coalesces raw caption segments into bounded-duration search units.
//
// Input is sorted by end time first, so out-of-order sources cannot
// reorder text within a video. A buffer is flushed as one merged segment
// the moment the accumulated duration would reach maxDuration, before the
// crossing segment is added; the crossing segment then starts the next
// buffer. A single over-long segment is never split, so maxDuration is a
// trigger threshold, not a hard upper bound.
//
// The trailing buffer is flushed once input is exhausted: dropping it
// would lose transcript coverage at the end of every video.
func Merge(segments []model.Segment, maxDuration int) []model.Segment {
	if len(segments) <= 1 {
		return segments
	}
	if maxDuration <= 0 {
		maxDuration = DefaultMaxDuration
	}

	sorted := make([]model.Segment, len(segments))
	copy(sorted, segments)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].End < sorted[j].End
	})

	var (
		merged   []model.Segment
		buffer   []model.Segment
		duration int
	)

	for _, segment := range sorted {
		if len(buffer) > 0 && duration+segment.Duration() >= maxDuration {
			merged = append(merged, mergeBuffer(buffer, len(merged)))
			duration = 0
			buffer = buffer[:0]
		}

		buffer = append(buffer, segment)
		duration += segment.Duration()
	}

	if len(buffer) > 0 {
		merged = append(merged, mergeBuffer(buffer, len(merged)))
	}

	return merged
}

// mergeBuffer collapses one buffer into a single segment. Text is the
// concatenation in buffer order; start and end span the constituents.
func mergeBuffer(buffer []model.Segment, id int) model.Segment {
	start := buffer[0].Start
	end := buffer[0].End

	var text strings.Builder
	for _, segment := range buffer {
		if segment.Start < start {
			start = segment.Start
		}
		if segment.End > end {
			end = segment.End
		}
		text.WriteString(segment.Text)
	}

	return model.Segment{
		VideoID:   buffer[0].VideoID,
		SegmentID: id,
		Start:     start,
		End:       end,
		Text:      text.String(),
		Kind:      buffer[0].Kind,
	}
}
