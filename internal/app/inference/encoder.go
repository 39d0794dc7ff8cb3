package inference

import (
	"fmt"

	"github.com/sugarme/tokenizer"
)

const (
	// DefaultEmbedBatchSize balances throughput and memory; it has no
	// effect on results beyond float non-associativity.
	DefaultEmbedBatchSize = 32
	// DefaultMaxSeqLen is the encoder's maximum token length.
	DefaultMaxSeqLen = 512

	// poolEpsilon keeps mean pooling finite on an all-masked row.
	poolEpsilon = 1e-9
)

// Encoder maps text to fixed-length sentence embeddings using a local
// ONNX transformer with attention-masked mean pooling.
//
// One Encoder is constructed at process start and shared read-only; the
// underlying session is not safe for concurrent Run calls from multiple
// goroutines writing shared state, and the pipeline invokes it from a
// single goroutine.
type Encoder struct {
	sess      *session
	batchSize int
	maxLen    int
}

// NewEncoder loads the embedding model from modelDir (model.onnx +
// tokenizer.json).
func NewEncoder(modelDir string, batchSize, maxSeqLen int) (*Encoder, error) {
	if batchSize <= 0 {
		batchSize = DefaultEmbedBatchSize
	}
	if maxSeqLen <= 0 {
		maxSeqLen = DefaultMaxSeqLen
	}
	sess, err := newSession(modelDir, "last_hidden_state")
	if err != nil {
		return nil, fmt.Errorf("failed to load encoder from %s: %w", modelDir, err)
	}
	return &Encoder{sess: sess, batchSize: batchSize, maxLen: maxSeqLen}, nil
}

// Embed returns the embedding for a single text.
func (e *Encoder) Embed(text string) ([]float32, error) {
	vectors, err := e.EmbedBatch([]string{text})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

// EmbedBatch embeds texts in configured-size batches, preserving input
// order. One output vector per input text.
func (e *Encoder) EmbedBatch(texts []string) ([][]float32, error) {
	vectors := make([][]float32, 0, len(texts))

	for start := 0; start < len(texts); start += e.batchSize {
		end := start + e.batchSize
		if end > len(texts) {
			end = len(texts)
		}
		batch, err := e.embed(texts[start:end])
		if err != nil {
			return nil, fmt.Errorf("embedding batch at %d failed: %w", start, err)
		}
		vectors = append(vectors, batch...)
	}
	return vectors, nil
}

func (e *Encoder) embed(texts []string) ([][]float32, error) {
	inputs := make([]tokenizer.EncodeInput, len(texts))
	for i, text := range texts {
		inputs[i] = tokenizer.NewSingleEncodeInput(tokenizer.NewInputSequence(text))
	}

	encodings, err := e.sess.tok.EncodeBatch(inputs, true)
	if err != nil {
		return nil, fmt.Errorf("tokenization failed: %w", err)
	}

	rows := make([]tokenized, len(encodings))
	for i, enc := range encodings {
		rows[i] = truncateRow(enc.GetIds(), enc.GetAttentionMask(), enc.GetTypeIds(), e.maxLen)
	}

	hidden, dims, mask, err := e.sess.forward(rows)
	if err != nil {
		return nil, err
	}
	if len(dims) != 3 {
		return nil, fmt.Errorf("unexpected encoder output rank %d", len(dims))
	}

	return meanPool(hidden, mask, int(dims[0]), int(dims[1]), int(dims[2])), nil
}

// meanPool averages token representations over the sequence dimension,
// weighted by the attention mask so padding never contributes. The
// denominator is clamped to a small epsilon: an all-masked row should
// never occur for non-empty text, but it must not divide by zero.
func meanPool(hidden []float32, mask []int64, batch, seq, dim int) [][]float32 {
	out := make([][]float32, batch)
	for i := 0; i < batch; i++ {
		vec := make([]float32, dim)
		var count float32
		for j := 0; j < seq; j++ {
			if mask[i*seq+j] == 0 {
				continue
			}
			base := (i*seq + j) * dim
			for d := 0; d < dim; d++ {
				vec[d] += hidden[base+d]
			}
			count++
		}
		denom := count
		if denom < poolEpsilon {
			denom = poolEpsilon
		}
		for d := range vec {
			vec[d] /= denom
		}
		out[i] = vec
	}
	return out
}

// Close releases the underlying ONNX session.
func (e *Encoder) Close() error {
	return e.sess.close()
}
