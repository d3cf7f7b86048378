package pipeline

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"

	"redreel/internal/config"
	"redreel/internal/domain/cards"
	"redreel/internal/domain/timeline"
	"redreel/internal/library"
	"redreel/internal/ports"
	"redreel/internal/ports/adapters/espeak"
	"redreel/internal/ports/adapters/ffmpeg"
	"redreel/internal/ports/adapters/postfile"
	"redreel/internal/ports/adapters/whispercpp"
	"redreel/internal/types"
	"redreel/internal/usecase"
)

type Config struct {
	// PostPath is the text source file: first line title, rest body.
	PostPath string

	// NarrationPath is the pre-synthesized narration track. When empty the
	// post text is synthesized locally with espeak-ng.
	NarrationPath string

	// BackgroundPath is the background clip. When empty one is picked from
	// the configured library directory.
	BackgroundPath string

	Settings config.Config
	Logf     func(format string, args ...any)
}

func (c Config) Validate() error {
	if c.PostPath == "" {
		return errors.New("post is empty")
	}
	if _, err := os.Stat(c.PostPath); err != nil {
		return fmt.Errorf("stat post: %w", err)
	}
	if c.NarrationPath != "" {
		if _, err := os.Stat(c.NarrationPath); err != nil {
			return fmt.Errorf("stat narration: %w", err)
		}
	}
	if c.BackgroundPath != "" {
		if _, err := os.Stat(c.BackgroundPath); err != nil {
			return fmt.Errorf("stat background: %w", err)
		}
	}
	return c.Settings.Validate()
}

// Run executes one full invocation: resolve the three inputs, assemble the
// video, and leave exactly one output (or its parts) in the output directory.
// All intermediate assets live in a run-scoped temp directory that is removed
// before Run returns, success or not.
func Run(ctx context.Context, cfg Config) (types.RenderResult, error) {
	logf := cfg.Logf
	if logf == nil {
		logf = func(string, ...any) {}
	}
	s := cfg.Settings

	// adapters
	video := ffmpeg.New(s.FFmpeg.Binary, s.FFmpeg.FFprobe, ffmpeg.Encoding{
		Encoder:      s.FFmpeg.Encoder,
		Preset:       s.FFmpeg.Preset,
		CRF:          s.FFmpeg.CRF,
		AudioBitrate: s.FFmpeg.AudioBitrate,
	})
	asr := whispercpp.New(s.Whisper.BinaryPath, s.Whisper.ModelPath, s.Whisper.Language, s.Whisper.Threads)
	posts := postfile.New(cfg.PostPath)

	post, err := posts.Select(ctx)
	if err != nil {
		return types.RenderResult{}, err
	}
	logf("post: %s", post.ID)

	workDir, err := os.MkdirTemp("", "redreel-*")
	if err != nil {
		return types.RenderResult{}, err
	}
	defer os.RemoveAll(workDir)

	seed := s.Trim.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	background := cfg.BackgroundPath
	if background == "" {
		background, err = library.Pick(s.Library.Dir, libraryRng(s.Library.Pick, rng))
		if err != nil {
			return types.RenderResult{}, err
		}
		logf("background from library: %s", filepath.Base(background))
	}

	narration := cfg.NarrationPath
	if narration == "" {
		narration = filepath.Join(workDir, "narration.wav")
		if err := synthesize(ctx, s.Speech, post, narration); err != nil {
			return types.RenderResult{}, err
		}
		logf("narration synthesized locally")
	}

	if err := os.MkdirAll(s.Output.Dir, 0o755); err != nil {
		return types.RenderResult{}, err
	}
	outPath := filepath.Join(s.Output.Dir, buildOutputName(post, time.Now().UTC()))
	logf("output: %s", outPath)

	thumbnailAt := -1.0
	if s.Thumbnail.Enabled {
		thumbnailAt = s.Thumbnail.At
	}
	maxPart := 0.0
	if s.Split.Enabled {
		maxPart = s.Split.MaxPartDuration
	}

	uc := usecase.New(usecase.Deps{Video: video, ASR: asr})
	return uc.Run(ctx, usecase.Input{
		NarrationPath:  narration,
		BackgroundPath: background,
		WorkDir:        workDir,
		OutPath:        outPath,
		Spec: types.RenderSpec{
			Width:    s.Output.Width,
			Height:   s.Output.Height,
			FPS:      s.Output.FPS,
			Font:     s.Subtitles.Font,
			FontSize: s.Subtitles.FontSize,
			MarginV:  s.Subtitles.MarginV,
		},
		Cards: cards.Options{
			MaxChars:        s.Subtitles.MaxCharsPerCard,
			MaxCardDuration: s.Subtitles.MaxCardDuration,
			SilenceGap:      s.Subtitles.SilenceGap,
		},
		OffsetPolicy:    timeline.OffsetPolicy(s.Trim.OffsetPolicy),
		Rand:            rng,
		MaxPartDuration: maxPart,
		ExportSRT:       s.Subtitles.ExportSRT,
		ThumbnailAt:     thumbnailAt,
		Logf:            logf,
	})
}

func synthesize(ctx context.Context, s config.SpeechConfig, post types.Post, outWav string) error {
	var synth ports.Synthesizer = espeak.New(s.Binary, s.Voice, s.WPM)
	text := post.Title
	if post.Body != "" {
		text += ". " + post.Body
	}
	return synth.Synthesize(ctx, text, outWav)
}

// libraryRng maps the configured pick policy onto library.Pick's rng argument:
// nil selects the first clip by name.
func libraryRng(policy string, rng *rand.Rand) *rand.Rand {
	if policy == "first" {
		return nil
	}
	return rng
}

func buildOutputName(post types.Post, now time.Time) string {
	name := normalizePathSegment(post.Title)
	if name == "" {
		name = normalizePathSegment(post.ID)
	}
	if name == "" {
		name = "short"
	}
	if len(name) > 40 {
		name = strings.Trim(name[:40], "-")
	}
	ts := now.UTC().Format("20060102-150405Z")
	return fmt.Sprintf("%s-%s-%s.mp4", name, ts, uuid.NewString()[:8])
}

func normalizePathSegment(s string) string {
	var b strings.Builder
	prevDash := false
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r):
			b.WriteRune(r)
			prevDash = false
		default:
			if !prevDash {
				b.WriteByte('-')
				prevDash = true
			}
		}
	}
	return strings.Trim(b.String(), "-")
}

// ensure adapters implement ports
var _ ports.VideoTool = (*ffmpeg.Adapter)(nil)
var _ ports.SpeechRecognizer = (*whispercpp.Adapter)(nil)
var _ ports.Synthesizer = (*espeak.Adapter)(nil)
var _ ports.PostSource = (*postfile.Source)(nil)
