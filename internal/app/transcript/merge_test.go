package transcript

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fastsearch/internal/app/model"
)

func rawSegments(videoID string, durations []int, kind model.SegmentKind) []model.Segment {
	segments := make([]model.Segment, len(durations))
	cursor := 0
	for i, d := range durations {
		segments[i] = model.Segment{
			VideoID:   videoID,
			SegmentID: i,
			Start:     cursor,
			End:       cursor + d,
			Text:      string(rune('a' + i)),
			Kind:      kind,
		}
		cursor += d
	}
	return segments
}

func TestMergeSingleSegmentPassesThrough(t *testing.T) {
	input := rawSegments("v", []int{120}, model.SegmentKindHuman)
	merged := Merge(input, DefaultMaxDuration)
	require.Len(t, merged, 1)
	assert.Equal(t, input[0], merged[0])
}

func TestMergeEmptyInput(t *testing.T) {
	assert.Empty(t, Merge(nil, DefaultMaxDuration))
}

// Durations summing to just under the threshold must stay one group.
func TestMergeBelowThresholdNotSplit(t *testing.T) {
	input := rawSegments("v", []int{10, 10, 9}, model.SegmentKindHuman)
	merged := Merge(input, 30)

	require.Len(t, merged, 1)
	assert.Equal(t, 0, merged[0].Start)
	assert.Equal(t, 29, merged[0].End)
	assert.Equal(t, "abc", merged[0].Text)
}

// The segment whose duration crosses the threshold flushes the prior
// buffer and starts a new one; it never joins the flushed group.
func TestMergeCrossingSegmentStartsNewBuffer(t *testing.T) {
	input := rawSegments("v", []int{10, 10, 10, 5}, model.SegmentKindHuman)
	merged := Merge(input, 30)

	require.Len(t, merged, 2)
	assert.Equal(t, "ab", merged[0].Text)
	assert.Equal(t, "cd", merged[1].Text)
	assert.Equal(t, 0, merged[0].SegmentID)
	assert.Equal(t, 1, merged[1].SegmentID)
	assert.Equal(t, 0, merged[0].Start)
	assert.Equal(t, 20, merged[0].End)
	assert.Equal(t, 20, merged[1].Start)
	assert.Equal(t, 35, merged[1].End)
}

// The trailing buffer is emitted even when it never reaches the
// threshold again.
func TestMergeTrailingBufferFlushed(t *testing.T) {
	input := rawSegments("v", []int{15, 15, 2}, model.SegmentKindHuman)
	merged := Merge(input, 30)

	require.Len(t, merged, 2)
	assert.Equal(t, "a", merged[0].Text)
	assert.Equal(t, "bc", merged[1].Text)
}

// Concatenated output text equals concatenated input text in
// chronological order; no text dropped or reordered.
func TestMergeTextCoverage(t *testing.T) {
	tests := []struct {
		name      string
		durations []int
		max       int
	}{
		{name: "even_groups", durations: []int{10, 10, 10, 10, 10, 10}, max: 30},
		{name: "oversized_single", durations: []int{5, 90, 5}, max: 30},
		{name: "all_tiny", durations: []int{1, 1, 1, 1, 1}, max: 30},
		{name: "exact_boundary", durations: []int{15, 15, 15, 15}, max: 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := rawSegments("v", tt.durations, model.SegmentKindMachine)

			var want strings.Builder
			for _, segment := range input {
				want.WriteString(segment.Text)
			}

			var got strings.Builder
			for _, segment := range Merge(input, tt.max) {
				got.WriteString(segment.Text)
			}

			assert.Equal(t, want.String(), got.String())
		})
	}
}

// Out-of-order input is sorted by end time before grouping.
func TestMergeSortsByEnd(t *testing.T) {
	input := []model.Segment{
		{VideoID: "v", SegmentID: 1, Start: 10, End: 20, Text: "b", Kind: model.SegmentKindHuman},
		{VideoID: "v", SegmentID: 0, Start: 0, End: 10, Text: "a", Kind: model.SegmentKindHuman},
	}
	merged := Merge(input, 30)
	require.Len(t, merged, 1)
	assert.Equal(t, "ab", merged[0].Text)
	assert.Equal(t, 0, merged[0].Start)
	assert.Equal(t, 20, merged[0].End)
}

// An over-long segment is never split: the effective merged duration has
// no strict upper bound, only a trigger threshold.
func TestMergeOversizedSegmentNotSplit(t *testing.T) {
	input := rawSegments("v", []int{100, 5}, model.SegmentKindHuman)
	merged := Merge(input, 30)

	require.Len(t, merged, 2)
	assert.Equal(t, 100, merged[0].Duration())
}

func TestMergeKindFromFirstBufferedSegment(t *testing.T) {
	input := rawSegments("v", []int{10, 10}, model.SegmentKindMachine)
	merged := Merge(input, 30)
	require.Len(t, merged, 1)
	assert.Equal(t, model.SegmentKindMachine, merged[0].Kind)
}

func TestMergeOutputIDsDense(t *testing.T) {
	input := rawSegments("v", []int{20, 20, 20, 20, 20, 20}, model.SegmentKindHuman)
	for i, segment := range Merge(input, 30) {
		assert.Equal(t, i, segment.SegmentID)
	}
}
