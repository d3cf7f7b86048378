package timeline

import (
	"math"
	"math/rand"

	"redreel/internal/types"
)

// OffsetPolicy selects where a longer-than-needed background clip starts.
type OffsetPolicy string

const (
	// OffsetStart always begins at the head of the clip.
	OffsetStart OffsetPolicy = "start"
	// OffsetRandom picks a seeded random window for variety across runs.
	OffsetRandom OffsetPolicy = "random"
)

// ChooseOffset returns the window start for a source of the given duration.
// Randomness stays here, in the plan's input, so PlanTrim itself is pure.
func ChooseOffset(policy OffsetPolicy, source, target float64, rng *rand.Rand) float64 {
	headroom := source - target
	if headroom <= 0 || policy != OffsetRandom || rng == nil {
		return 0
	}
	return rng.Float64() * headroom
}

// PlanTrim computes how to derive exactly target seconds from a source clip.
// A source at least as long as the target yields a contiguous window at
// offset; a shorter source is looped from its start until the looped duration
// covers the target, then trimmed at the tail.
func PlanTrim(path string, source, target, offset float64) (types.TrimPlan, error) {
	if source <= 0 {
		return types.TrimPlan{}, &types.AssetTooShortError{Path: path, Duration: source}
	}
	if source >= target {
		if headroom := source - target; offset > headroom {
			offset = headroom
		}
		if offset < 0 {
			offset = 0
		}
		return types.TrimPlan{Offset: offset, Duration: target}, nil
	}
	// Looped playback always starts at the head of the clip; an offset would
	// shift the seam into the first visible seconds.
	loops := int(math.Ceil(target/source)) - 1
	return types.TrimPlan{Loops: loops, Duration: target}, nil
}

// Part is one window of a long output split into platform-sized pieces.
type Part struct {
	Start    float64
	Duration float64
}

// SplitParts cuts total into consecutive windows of at most maxPart seconds.
// Returns nil when no split is needed; the last part keeps the remainder.
func SplitParts(total, maxPart float64) []Part {
	if maxPart <= 0 || total <= maxPart {
		return nil
	}
	var parts []Part
	for start := 0.0; start < total; start += maxPart {
		d := maxPart
		if start+d > total {
			d = total - start
		}
		parts = append(parts, Part{Start: start, Duration: d})
	}
	return parts
}
