package inference

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// Regression guard: selecting the top k must sort DESCENDING before
// truncating. An ascending sort truncated to the first k returns the k
// worst candidates instead.
func TestTopIndicesDescending(t *testing.T) {
	scores := []float32{0.1, 0.9, 0.5}

	got := topIndices(scores, 2)

	assert.Equal(t, []int{1, 2}, got)
	assert.NotEqual(t, []int{0, 2}, got)
	assert.NotEqual(t, []int{0, 1}, got)
}

func TestTopIndices(t *testing.T) {
	tests := []struct {
		name   string
		scores []float32
		k      int
		want   []int
	}{
		{
			name:   "full_ranking",
			scores: []float32{0.2, 0.8, 0.4, 0.6},
			k:      4,
			want:   []int{1, 3, 2, 0},
		},
		{
			name:   "k_larger_than_candidates_is_bounded",
			scores: []float32{0.3, 0.7},
			k:      10,
			want:   []int{1, 0},
		},
		{
			name:   "k_zero",
			scores: []float32{0.3, 0.7},
			k:      0,
			want:   []int{},
		},
		{
			name:   "single_candidate",
			scores: []float32{0.5},
			k:      1,
			want:   []int{0},
		},
		{
			name:   "ties_keep_input_order",
			scores: []float32{0.5, 0.5, 0.9},
			k:      3,
			want:   []int{2, 0, 1},
		},
		{
			name:   "negative_scores",
			scores: []float32{-2, -1, -3},
			k:      2,
			want:   []int{1, 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := topIndices(tt.scores, tt.k)
			if len(tt.want) == 0 {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.want, got)
		})
	}
}
