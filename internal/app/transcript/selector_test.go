package transcript

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fastsearch/internal/app/model"
)

func TestSelectSource(t *testing.T) {
	english := []model.Segment{{VideoID: "v", Text: "hello", Kind: model.SegmentKindHuman}}
	machine := []model.Segment{{VideoID: "v", Text: "hallo", Kind: model.SegmentKindMachine}}

	tests := []struct {
		name     string
		captions map[string][]model.Segment
		machine  []model.Segment
		wantText string
		wantKind model.SegmentKind
		wantLen  int
	}{
		{
			name:     "english_captions_win",
			captions: map[string][]model.Segment{"en": english, "fr": machine},
			machine:  machine,
			wantText: "hello",
			wantKind: model.SegmentKindHuman,
			wantLen:  1,
		},
		{
			name:     "fallback_to_machine",
			captions: map[string][]model.Segment{"fr": english},
			machine:  machine,
			wantText: "hallo",
			wantKind: model.SegmentKindMachine,
			wantLen:  1,
		},
		{
			name:     "no_captions_at_all",
			captions: nil,
			machine:  machine,
			wantText: "hallo",
			wantKind: model.SegmentKindMachine,
			wantLen:  1,
		},
		{
			name:     "neither_source_yields_empty",
			captions: map[string][]model.Segment{},
			machine:  nil,
			wantLen:  0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SelectSource(tt.captions, tt.machine)
			require.Len(t, got, tt.wantLen)
			if tt.wantLen == 0 {
				return
			}
			assert.Equal(t, tt.wantText, got[0].Text)
			assert.Equal(t, tt.wantKind, got[0].Kind)
		})
	}
}

// Machine segments get re-tagged even if the upstream source forgot to.
func TestSelectSourceTagsKind(t *testing.T) {
	machine := []model.Segment{{VideoID: "v", Text: "x"}}
	got := SelectSource(nil, machine)
	require.Len(t, got, 1)
	assert.Equal(t, model.SegmentKindMachine, got[0].Kind)
	// Input slice untouched.
	assert.Equal(t, model.SegmentKind(""), machine[0].Kind)
}
