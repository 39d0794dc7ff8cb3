package transcript

import "fastsearch/internal/app/model"

// SelectSource picks exactly one canonical transcript for a video.
//
// English human captions win outright; otherwise the machine
// transcription is used. The choice is all-or-nothing per video, and a
// video with neither source yields an empty transcript. Callers must
// treat an empty result as terminal for that video's downstream steps.
func SelectSource(captions map[string][]model.Segment, machine []model.Segment) []model.Segment {
	if english, ok := captions["en"]; ok {
		return tagged(english, model.SegmentKindHuman)
	}
	return tagged(machine, model.SegmentKindMachine)
}

func tagged(segments []model.Segment, kind model.SegmentKind) []model.Segment {
	out := make([]model.Segment, len(segments))
	for i, segment := range segments {
		segment.Kind = kind
		out[i] = segment
	}
	return out
}
