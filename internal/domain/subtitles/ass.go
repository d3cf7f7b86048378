package subtitles

import (
	"fmt"
	"strings"

	"redreel/internal/types"
)

// RenderASS renders subtitle cards as an ASS script sized to the output
// canvas. Each card becomes one Dialogue event visible exactly during its
// window; blank cards emit nothing. Events sit bottom-center inside the
// safe-area margin so platform UI does not cover them.
func RenderASS(cards []types.SubtitleCard, spec types.RenderSpec) string {
	var b strings.Builder
	b.WriteString(assHeader(spec))
	b.WriteString("\n[Events]\n")
	b.WriteString("Format: Layer, Start, End, Style, Name, MarginL, MarginR, MarginV, Effect, Text\n")
	for _, c := range cards {
		if c.Blank() {
			continue
		}
		b.WriteString("Dialogue: 0,")
		b.WriteString(assTime(c.Start))
		b.WriteString(",")
		b.WriteString(assTime(c.End))
		b.WriteString(",Narration,,0,0,0,,")
		for i, line := range c.Lines {
			if i > 0 {
				b.WriteString("\\N")
			}
			b.WriteString(sanitizeASS(line))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func assHeader(spec types.RenderSpec) string {
	font := spec.Font
	if font == "" {
		font = "Inter"
	}
	size := spec.FontSize
	if size <= 0 {
		size = 78
	}
	marginV := spec.MarginV
	if marginV <= 0 {
		marginV = spec.Height / 5
	}
	var b strings.Builder
	b.WriteString("[Script Info]\n")
	b.WriteString("ScriptType: v4.00+\n")
	fmt.Fprintf(&b, "PlayResX: %d\n", spec.Width)
	fmt.Fprintf(&b, "PlayResY: %d\n", spec.Height)
	b.WriteString("ScaledBorderAndShadow: yes\n")
	b.WriteString("\n[V4+ Styles]\n")
	b.WriteString("Format: Name, Fontname, Fontsize, PrimaryColour, SecondaryColour, OutlineColour, BackColour, Bold, Italic, Underline, StrikeOut, ScaleX, ScaleY, Spacing, Angle, BorderStyle, Outline, Shadow, Alignment, MarginL, MarginR, MarginV, Encoding\n")
	fmt.Fprintf(&b,
		"Style: Narration, %s, %d, &H00FFFFFF, &H00FFD200, &H00000000, &H64000000, 1,0,0,0,100,100,0,0,1,6,2,2, 80,80,%d,1\n",
		font, size, marginV,
	)
	return b.String()
}

func assTime(sec float64) string {
	if sec < 0 {
		sec = 0
	}
	cs := int(sec*100 + 0.5)
	h := cs / 360000
	cs -= h * 360000
	m := cs / 6000
	cs -= m * 6000
	s := cs / 100
	cs -= s * 100
	return fmt.Sprintf("%d:%02d:%02d.%02d", h, m, s, cs)
}

func sanitizeASS(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "{", "(")
	s = strings.ReplaceAll(s, "}", ")")
	return strings.TrimSpace(s)
}
