package subtitles

import (
	"strings"
	"testing"

	"redreel/internal/types"
)

func vertSpec() types.RenderSpec {
	return types.RenderSpec{Width: 1080, Height: 1920, FPS: 30, Font: "Inter", FontSize: 78}
}

func TestRenderASS_OneDialoguePerVisibleCard(t *testing.T) {
	t.Parallel()

	cards := []types.SubtitleCard{
		{Lines: []string{"hello world"}, Start: 0, End: 0.9},
		{Start: 0.9, End: 3.9}, // blank
		{Lines: []string{"two", "lines"}, Start: 3.9, End: 6.0},
	}
	ass := RenderASS(cards, vertSpec())

	if got := strings.Count(ass, "Dialogue:"); got != 2 {
		t.Fatalf("expected 2 dialogue events (blank cards render nothing), got %d\n%s", got, ass)
	}
	if !strings.Contains(ass, "PlayResX: 1080") || !strings.Contains(ass, "PlayResY: 1920") {
		t.Fatalf("playfield must match the render spec:\n%s", ass)
	}
	if !strings.Contains(ass, "two\\Nlines") {
		t.Fatalf("expected line break between card lines:\n%s", ass)
	}
	if !strings.Contains(ass, "Dialogue: 0,0:00:00.00,0:00:00.90,Narration,") {
		t.Fatalf("unexpected first event timing:\n%s", ass)
	}
}

func TestRenderASS_SanitizesOverrideBraces(t *testing.T) {
	t.Parallel()

	cards := []types.SubtitleCard{{Lines: []string{`{\b1}bold`}, Start: 0, End: 1}}
	ass := RenderASS(cards, vertSpec())
	if strings.Contains(ass, `{\b1}`) {
		t.Fatalf("override tags must not survive sanitizing:\n%s", ass)
	}
}

func TestAssTime_Format(t *testing.T) {
	t.Parallel()

	cases := map[float64]string{
		0:      "0:00:00.00",
		61.234: "0:01:01.23",
		3600:   "1:00:00.00",
		-1:     "0:00:00.00",
	}
	for in, want := range cases {
		if got := assTime(in); got != want {
			t.Fatalf("assTime(%v) = %s, want %s", in, got, want)
		}
	}
}

func TestRenderSRT(t *testing.T) {
	t.Parallel()

	cards := []types.SubtitleCard{
		{Lines: []string{"hello world"}, Start: 0, End: 0.9},
		{Start: 0.9, End: 3.9}, // blank, skipped
		{Lines: []string{"two", "lines"}, Start: 3.9, End: 6.0},
	}
	srt := RenderSRT(cards)

	want := "1\n00:00:00,000 --> 00:00:00,900\nhello world\n\n" +
		"2\n00:00:03,900 --> 00:00:06,000\ntwo\nlines\n\n"
	if srt != want {
		t.Fatalf("unexpected SRT output:\n%q\nwant:\n%q", srt, want)
	}
}
