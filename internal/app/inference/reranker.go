package inference

import (
	"fmt"
	"sort"

	"github.com/sugarme/tokenizer"
)

// Reranker jointly scores (query, candidate) pairs with a cross-encoder
// and returns candidate indices in descending relevance order.
type Reranker struct {
	sess   *session
	maxLen int
}

// NewReranker loads the cross-encoder model from modelDir.
func NewReranker(modelDir string, maxSeqLen int) (*Reranker, error) {
	if maxSeqLen <= 0 {
		maxSeqLen = DefaultMaxSeqLen
	}
	sess, err := newSession(modelDir, "logits")
	if err != nil {
		return nil, fmt.Errorf("failed to load reranker from %s: %w", modelDir, err)
	}
	return &Reranker{sess: sess, maxLen: maxSeqLen}, nil
}

// Rerank scores every candidate against the query and returns the
// indices of the k best, highest score first. k is bounded at
// len(candidates), so oversized requests degrade to a full ranking.
func (r *Reranker) Rerank(query string, candidates []string, k int) ([]int, error) {
	if len(candidates) == 0 {
		return nil, nil
	}

	inputs := make([]tokenizer.EncodeInput, len(candidates))
	for i, candidate := range candidates {
		inputs[i] = tokenizer.NewDualEncodeInput(
			tokenizer.NewInputSequence(query),
			tokenizer.NewInputSequence(candidate),
		)
	}

	encodings, err := r.sess.tok.EncodeBatch(inputs, true)
	if err != nil {
		return nil, fmt.Errorf("tokenization failed: %w", err)
	}

	rows := make([]tokenized, len(encodings))
	for i, enc := range encodings {
		rows[i] = truncateRow(enc.GetIds(), enc.GetAttentionMask(), enc.GetTypeIds(), r.maxLen)
	}

	logits, dims, _, err := r.sess.forward(rows)
	if err != nil {
		return nil, err
	}

	// Output is [N] or [N, 1]; either way the relevance score for
	// candidate i is the first value of row i.
	stride := 1
	if len(dims) == 2 {
		stride = int(dims[1])
	}
	scores := make([]float32, len(candidates))
	for i := range scores {
		scores[i] = logits[i*stride]
	}

	return topIndices(scores, k), nil
}

// topIndices returns the indices of the k highest scores, descending.
// The sort must be descending before truncation: an ascending sort
// truncated to the first k would silently return the k worst candidates.
func topIndices(scores []float32, k int) []int {
	indices := make([]int, len(scores))
	for i := range indices {
		indices[i] = i
	}
	sort.SliceStable(indices, func(a, b int) bool {
		return scores[indices[a]] > scores[indices[b]]
	})

	if k > len(indices) {
		k = len(indices)
	}
	if k < 0 {
		k = 0
	}
	return indices[:k]
}

// Close releases the underlying ONNX session.
func (r *Reranker) Close() error {
	return r.sess.close()
}
