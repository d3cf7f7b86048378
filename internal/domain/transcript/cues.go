package transcript

import (
	"strings"

	"redreel/internal/types"
)

// Flatten turns raw recognizer output into an ordered, non-overlapping cue
// sequence on the narration timeline. Word timestamps are preferred; segments
// without word data fall back to one segment-level cue. Timing is clamped to
// [0, total] and overlapping starts are pushed forward so that
// cue[i].End <= cue[i+1].Start always holds.
//
// A readable track that yields zero cues is a fatal condition: nothing
// downstream can pace subtitles or trim the background without cue timing.
func Flatten(path string, tr types.Transcript, total float64) ([]types.TranscriptCue, error) {
	var cues []types.TranscriptCue
	for _, seg := range tr.Segments {
		if len(seg.Words) == 0 {
			cues = appendCue(cues, seg.Text, seg.Start, seg.End, total)
			continue
		}
		for _, w := range seg.Words {
			cues = appendCue(cues, w.Word, w.Start, w.End, total)
		}
	}
	if len(cues) == 0 {
		return nil, &types.TranscriptionError{Path: path}
	}
	return cues, nil
}

func appendCue(cues []types.TranscriptCue, text string, start, end, total float64) []types.TranscriptCue {
	text = strings.TrimSpace(text)
	if text == "" {
		return cues
	}
	if start < 0 {
		start = 0
	}
	if total > 0 && end > total {
		end = total
	}
	if len(cues) > 0 && start < cues[len(cues)-1].End {
		start = cues[len(cues)-1].End
	}
	if end <= start {
		// Recognizer drift collapsed the cue; nothing visible remains.
		return cues
	}
	return append(cues, types.TranscriptCue{Text: text, Start: start, End: end})
}
