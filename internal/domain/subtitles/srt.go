package subtitles

import (
	"fmt"
	"strings"

	"redreel/internal/types"
)

// RenderSRT emits the cards as an SRT document for external players and
// editors. Blank cards are skipped; SRT has no concept of an empty entry.
func RenderSRT(cards []types.SubtitleCard) string {
	var b strings.Builder
	n := 0
	for _, c := range cards {
		if c.Blank() {
			continue
		}
		n++
		fmt.Fprintf(&b, "%d\n%s --> %s\n%s\n\n", n, srtTime(c.Start), srtTime(c.End), strings.Join(c.Lines, "\n"))
	}
	return b.String()
}

func srtTime(sec float64) string {
	if sec < 0 {
		sec = 0
	}
	ms := int(sec*1000 + 0.5)
	h := ms / 3600000
	ms -= h * 3600000
	m := ms / 60000
	ms -= m * 60000
	s := ms / 1000
	ms -= s * 1000
	return fmt.Sprintf("%02d:%02d:%02d,%03d", h, m, s, ms)
}
