package inference

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMeanPoolAveragesUnmaskedTokens(t *testing.T) {
	// One row, three tokens of dim 2, last token is padding.
	hidden := []float32{
		1, 2,
		3, 4,
		100, 100,
	}
	mask := []int64{1, 1, 0}

	got := meanPool(hidden, mask, 1, 3, 2)
	require.Len(t, got, 1)
	assert.InDelta(t, 2.0, got[0][0], 1e-6)
	assert.InDelta(t, 3.0, got[0][1], 1e-6)
}

func TestMeanPoolAllMaskedRowDoesNotBlowUp(t *testing.T) {
	hidden := []float32{1, 2, 3, 4}
	mask := []int64{0, 0}

	got := meanPool(hidden, mask, 1, 2, 2)
	require.Len(t, got, 1)
	// Clamped denominator: finite zeros, not NaN or Inf.
	assert.Equal(t, float32(0), got[0][0])
	assert.Equal(t, float32(0), got[0][1])
}

// Pooling a text alone must match pooling it inside a padded batch:
// padding rows carry mask 0 and cannot leak into other rows.
func TestMeanPoolBatchInvariance(t *testing.T) {
	short := []float32{1, 1, 5, 3} // two tokens, dim 2

	alone := meanPool(short, []int64{1, 1}, 1, 2, 2)

	// Same tokens padded out to length 4 alongside a longer row.
	batched := []float32{
		1, 1, 5, 3, 0, 0, 0, 0,
		2, 2, 2, 2, 2, 2, 2, 2,
	}
	mask := []int64{
		1, 1, 0, 0,
		1, 1, 1, 1,
	}
	together := meanPool(batched, mask, 2, 4, 2)

	require.Len(t, together, 2)
	for d := 0; d < 2; d++ {
		assert.InDelta(t, alone[0][d], together[0][d], 1e-5)
	}
}

func TestTruncateRow(t *testing.T) {
	row := truncateRow([]int{1, 2, 3, 4}, []int{1, 1, 1, 1}, []int{0, 0, 1, 1}, 2)
	assert.Equal(t, []int64{1, 2}, row.IDs)
	assert.Equal(t, []int64{1, 1}, row.Mask)
	assert.Equal(t, []int64{0, 0}, row.TypeIDs)

	untouched := truncateRow([]int{1, 2}, []int{1, 1}, []int{0, 0}, 512)
	assert.Len(t, untouched.IDs, 2)
}

func TestPadBatch(t *testing.T) {
	rows := []tokenized{
		{IDs: []int64{7, 8}, Mask: []int64{1, 1}, TypeIDs: []int64{0, 0}},
		{IDs: []int64{9}, Mask: []int64{1}, TypeIDs: []int64{0}},
	}

	ids, mask, typeIDs, seqLen := padBatch(rows)
	assert.Equal(t, 2, seqLen)
	assert.Equal(t, []int64{7, 8, 9, 0}, ids)
	assert.Equal(t, []int64{1, 1, 1, 0}, mask)
	assert.Equal(t, []int64{0, 0, 0, 0}, typeIDs)
}
