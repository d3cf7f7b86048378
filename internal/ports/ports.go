package ports

import (
	"context"

	"redreel/internal/types"
)

type VideoTool interface {
	ProbeAudio(ctx context.Context, path string) (types.AudioAsset, error)
	ProbeVideo(ctx context.Context, path string) (types.VideoAsset, error)
	ExtractAudioMono16k(ctx context.Context, in, outWav string) error
	TrimLoop(ctx context.Context, in string, plan types.TrimPlan, out string) error
	Reframe(ctx context.Context, in string, g types.CropGeometry, out string) error
	Compose(ctx context.Context, video, narration, burnASS, out string, spec types.RenderSpec) error
	Cut(ctx context.Context, in string, start, duration float64, out string) error
	Thumbnail(ctx context.Context, in string, at float64, out string) error
}

type SpeechRecognizer interface {
	Transcribe(ctx context.Context, wavPath, workDir string) (types.Transcript, error)
}

// Synthesizer produces a narration track from post text. The core only ever
// talks to local implementations; network TTS belongs to the acquisition layer.
type Synthesizer interface {
	Synthesize(ctx context.Context, text, outWav string) error
}

// PostSource supplies the text to narrate. Selection strategy (random pick,
// dedup, filtering) is the source's concern, not the pipeline's.
type PostSource interface {
	Select(ctx context.Context) (types.Post, error)
}
