package inference

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/sugarme/tokenizer"
	"github.com/sugarme/tokenizer/pretrained"
	ort "github.com/yalue/onnxruntime_go"
)

var (
	ortInitOnce sync.Once
	ortInitErr  error
)

// initRuntime initializes the shared onnxruntime environment once per
// process. The library location can be overridden with
// ONNXRUNTIME_SHARED_LIBRARY for containerized deployments.
func initRuntime() error {
	ortInitOnce.Do(func() {
		if libPath := os.Getenv("ONNXRUNTIME_SHARED_LIBRARY"); libPath != "" {
			ort.SetSharedLibraryPath(libPath)
		}
		ortInitErr = ort.InitializeEnvironment()
	})
	return ortInitErr
}

// session bundles a tokenizer with an ONNX inference session loaded from
// a model directory containing model.onnx and tokenizer.json.
type session struct {
	tok *tokenizer.Tokenizer
	run *ort.DynamicAdvancedSession
}

func newSession(modelDir string, outputName string) (*session, error) {
	if err := initRuntime(); err != nil {
		return nil, fmt.Errorf("failed to initialize onnxruntime: %w", err)
	}

	tok, err := pretrained.FromFile(filepath.Join(modelDir, "tokenizer.json"))
	if err != nil {
		return nil, fmt.Errorf("failed to load tokenizer: %w", err)
	}

	opts, err := ort.NewSessionOptions()
	if err != nil {
		return nil, fmt.Errorf("failed to create session options: %w", err)
	}
	defer opts.Destroy()

	if err := opts.SetGraphOptimizationLevel(ort.GraphOptimizationLevelEnableAll); err != nil {
		return nil, fmt.Errorf("failed to set graph optimization: %w", err)
	}
	if err := opts.SetIntraOpNumThreads(0); err != nil {
		return nil, fmt.Errorf("failed to set thread count: %w", err)
	}

	run, err := ort.NewDynamicAdvancedSession(
		filepath.Join(modelDir, "model.onnx"),
		[]string{"input_ids", "attention_mask", "token_type_ids"},
		[]string{outputName},
		opts,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return &session{tok: tok, run: run}, nil
}

func (s *session) close() error {
	if s.run != nil {
		return s.run.Destroy()
	}
	return nil
}

// tokenized is one tokenizer output row, already truncated.
type tokenized struct {
	IDs     []int64
	Mask    []int64
	TypeIDs []int64
}

// truncateRow converts a tokenizer encoding into int64 rows, cutting at
// maxLen tokens.
func truncateRow(ids, mask, typeIDs []int, maxLen int) tokenized {
	n := len(ids)
	if maxLen > 0 && n > maxLen {
		n = maxLen
	}
	row := tokenized{
		IDs:     make([]int64, n),
		Mask:    make([]int64, n),
		TypeIDs: make([]int64, n),
	}
	for i := 0; i < n; i++ {
		row.IDs[i] = int64(ids[i])
		row.Mask[i] = int64(mask[i])
		row.TypeIDs[i] = int64(typeIDs[i])
	}
	return row
}

// padBatch flattens rows into rectangular input tensors padded with
// zeros up to the longest row. Padding positions have attention mask 0.
func padBatch(rows []tokenized) (ids, mask, typeIDs []int64, seqLen int) {
	for _, row := range rows {
		if len(row.IDs) > seqLen {
			seqLen = len(row.IDs)
		}
	}

	batch := len(rows)
	ids = make([]int64, batch*seqLen)
	mask = make([]int64, batch*seqLen)
	typeIDs = make([]int64, batch*seqLen)

	for i, row := range rows {
		offset := i * seqLen
		copy(ids[offset:], row.IDs)
		copy(mask[offset:], row.Mask)
		copy(typeIDs[offset:], row.TypeIDs)
	}
	return ids, mask, typeIDs, seqLen
}

// forward runs one padded batch through the model and returns the raw
// output tensor data, its shape, and the flattened attention mask that
// was fed to the model (needed for pooling).
func (s *session) forward(rows []tokenized) ([]float32, []int64, []int64, error) {
	ids, mask, typeIDs, seqLen := padBatch(rows)
	batch := int64(len(rows))
	shape := ort.NewShape(batch, int64(seqLen))

	idsTensor, err := ort.NewTensor(shape, ids)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to create input_ids tensor: %w", err)
	}
	defer idsTensor.Destroy()

	maskTensor, err := ort.NewTensor(shape, mask)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to create attention_mask tensor: %w", err)
	}
	defer maskTensor.Destroy()

	typeTensor, err := ort.NewTensor(shape, typeIDs)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to create token_type_ids tensor: %w", err)
	}
	defer typeTensor.Destroy()

	outputs := make([]ort.Value, 1)
	if err := s.run.Run([]ort.Value{idsTensor, maskTensor, typeTensor}, outputs); err != nil {
		return nil, nil, nil, fmt.Errorf("inference failed: %w", err)
	}
	defer outputs[0].Destroy()

	outTensor, ok := outputs[0].(*ort.Tensor[float32])
	if !ok {
		return nil, nil, nil, fmt.Errorf("output tensor is not float32")
	}

	// Copy before the tensor is destroyed.
	data := make([]float32, len(outTensor.GetData()))
	copy(data, outTensor.GetData())
	outShape := outTensor.GetShape()
	dims := make([]int64, len(outShape))
	copy(dims, outShape)

	return data, dims, mask, nil
}
