package types

import "strings"

// AudioAsset describes a narration track on disk. Produced by probing; never
// mutated afterwards.
type AudioAsset struct {
	Path       string
	Duration   float64 // seconds
	SampleRate int
}

// VideoAsset describes a video file on disk. Transforms always produce a new
// asset rather than touching the source.
type VideoAsset struct {
	Path     string
	Duration float64 // seconds
	Width    int
	Height   int
	FPS      float64
}

// TranscriptCue is a single recognized speech unit with absolute timing on the
// narration timeline. Sequences are ordered and non-overlapping.
type TranscriptCue struct {
	Text  string
	Start float64
	End   float64
}

// SubtitleCard is one on-screen unit of 1-2 lines. A card with no lines is a
// blank card covering a silent stretch. Card sequences partition the full
// narration timeline.
type SubtitleCard struct {
	Lines []string
	Start float64
	End   float64
}

// Blank reports whether the card shows no text.
func (c SubtitleCard) Blank() bool { return len(c.Lines) == 0 }

// Text returns the card text with line breaks collapsed to spaces.
func (c SubtitleCard) Text() string { return strings.Join(c.Lines, " ") }

// RenderSpec is the fixed output format consumed by reframing and composition.
type RenderSpec struct {
	Width    int
	Height   int
	FPS      int
	Font     string
	FontSize int
	MarginV  int // bottom safe-area margin in playfield pixels
}

// FrameInterval returns the duration of one output frame in seconds.
func (s RenderSpec) FrameInterval() float64 {
	if s.FPS <= 0 {
		return 0
	}
	return 1 / float64(s.FPS)
}

// TrimPlan describes how to derive a segment of exactly Duration seconds from
// a background clip: play the source Loops extra times and seek to Offset.
type TrimPlan struct {
	Loops    int     // additional full plays (0 = source played once)
	Offset   float64 // seek into the (looped) source, seconds
	Duration float64 // target duration, seconds
}

// CropGeometry is the cover-scale plus center-crop that maps a source frame
// onto the output canvas with no letterboxing.
type CropGeometry struct {
	ScaleWidth  int // scaled frame size before cropping
	ScaleHeight int
	CropX       int // top-left corner of the crop window
	CropY       int
	Width       int // final canvas size
	Height      int
}

// RenderResult is the terminal artifact of one invocation.
type RenderResult struct {
	OutputPath    string
	Parts         []string // non-empty only when the output was split
	Duration      float64  // seconds, probed from the encoded file
	SubtitlePath  string   // optional exported .srt
	ThumbnailPath string   // optional preview frame
}

// Post is the text source handed over by the acquisition layer.
type Post struct {
	ID    string
	Title string
	Body  string
}

// Transcript mirrors the whisper.cpp JSON output shape.
type Transcript struct {
	Segments []Segment `json:"segments"`
}

type Segment struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
	Words []Word  `json:"words,omitempty"`
}

type Word struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Word  string  `json:"word"`
}
