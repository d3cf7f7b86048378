package cards

import (
	"strings"

	"redreel/internal/types"
)

// Options bounds card assembly. Both thresholds are tunable; when a cue would
// breach both at once the duration budget wins, so a card never lingers
// off-sync just because it still had characters to spare.
type Options struct {
	MaxChars        int     // accumulated card text budget, runes
	MaxCardDuration float64 // seconds a single card may stay on screen
	SilenceGap      float64 // gaps longer than this become blank cards, seconds
}

func (o Options) withDefaults() Options {
	if o.MaxChars <= 0 {
		o.MaxChars = 42
	}
	if o.MaxCardDuration <= 0 {
		o.MaxCardDuration = 5
	}
	if o.SilenceGap <= 0 {
		o.SilenceGap = 1
	}
	return o
}

type group struct {
	text  string
	start float64
	end   float64
}

// Build assembles screen-ready subtitle cards from recognized cues. The
// returned sequence partitions [0, total]: the first card starts at zero, each
// card ends where the next begins, and the last card ends at total. Silent
// stretches longer than the silence gap are covered by blank cards; shorter
// gaps are absorbed into the neighboring cards.
func Build(cues []types.TranscriptCue, total float64, opt Options) []types.SubtitleCard {
	opt = opt.withDefaults()
	groups := accumulate(cues, opt)
	return partition(groups, total, opt)
}

func accumulate(cues []types.TranscriptCue, opt Options) []group {
	var out []group
	var cur group
	open := false
	for _, c := range cues {
		if !open {
			cur = group{text: c.Text, start: c.Start, end: c.End}
			open = true
			continue
		}
		switch {
		case c.Start-cur.end > opt.SilenceGap:
		case c.End-cur.start > opt.MaxCardDuration:
		case runeLen(cur.text)+1+runeLen(c.Text) > opt.MaxChars:
		default:
			cur.text += " " + c.Text
			cur.end = c.End
			continue
		}
		out = append(out, cur)
		cur = group{text: c.Text, start: c.Start, end: c.End}
	}
	if open {
		out = append(out, cur)
	}
	return out
}

func partition(groups []group, total float64, opt Options) []types.SubtitleCard {
	var out []types.SubtitleCard
	cursor := 0.0
	for _, g := range groups {
		if g.start-cursor > opt.SilenceGap {
			out = append(out, types.SubtitleCard{Start: cursor, End: g.start})
			cursor = g.start
		}
		end := g.end
		if end <= cursor {
			continue
		}
		out = append(out, types.SubtitleCard{
			Lines: splitLines(g.text, opt.MaxChars),
			Start: cursor,
			End:   end,
		})
		cursor = end
	}
	if len(out) == 0 {
		if total > 0 {
			out = append(out, types.SubtitleCard{Start: 0, End: total})
		}
		return out
	}
	if total > cursor {
		if total-cursor > opt.SilenceGap {
			out = append(out, types.SubtitleCard{Start: cursor, End: total})
		} else {
			out[len(out)-1].End = total
		}
	} else if total > 0 {
		out[len(out)-1].End = total
	}
	return out
}

// splitLines breaks card text into at most two display lines at the word
// boundary nearest the midpoint. Words are never split.
func splitLines(text string, maxChars int) []string {
	lineBudget := (maxChars + 1) / 2
	if runeLen(text) <= lineBudget {
		return []string{text}
	}
	words := strings.Fields(text)
	if len(words) < 2 {
		return []string{text}
	}
	best := 1
	bestDiff := -1
	for i := 1; i < len(words); i++ {
		first := strings.Join(words[:i], " ")
		second := strings.Join(words[i:], " ")
		diff := runeLen(first) - runeLen(second)
		if diff < 0 {
			diff = -diff
		}
		if bestDiff < 0 || diff < bestDiff {
			best, bestDiff = i, diff
		}
	}
	return []string{
		strings.Join(words[:best], " "),
		strings.Join(words[best:], " "),
	}
}

func runeLen(s string) int { return len([]rune(s)) }
