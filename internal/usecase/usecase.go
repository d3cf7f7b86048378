package usecase

import (
	"context"
	"fmt"
	"io"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"strings"

	"redreel/internal/domain/cards"
	"redreel/internal/domain/frame"
	"redreel/internal/domain/subtitles"
	"redreel/internal/domain/timeline"
	"redreel/internal/domain/transcript"
	"redreel/internal/ports"
	"redreel/internal/types"
)

type Deps struct {
	Video ports.VideoTool
	ASR   ports.SpeechRecognizer
}

type Usecase struct{ d Deps }

func New(d Deps) Usecase { return Usecase{d: d} }

type Input struct {
	NarrationPath  string
	BackgroundPath string

	// WorkDir is the run-scoped temp directory. Every intermediate asset
	// lands here; the caller removes the whole scope when the run ends.
	WorkDir string
	OutPath string

	Spec         types.RenderSpec
	Cards        cards.Options
	OffsetPolicy timeline.OffsetPolicy
	Rand         *rand.Rand

	MaxPartDuration float64 // split outputs longer than this; 0 disables
	ExportSRT       bool
	ThumbnailAt     float64 // grab a preview frame at this timestamp; <0 disables

	Logf func(format string, args ...any)
}

// Run executes the full assembly: measure and transcribe the narration, build
// subtitle cards, fit the background to the narration length and canvas, and
// compose the final file. The output becomes visible at OutPath only after
// encoding succeeded.
func (u Usecase) Run(ctx context.Context, in Input) (types.RenderResult, error) {
	logf := in.Logf
	if logf == nil {
		logf = func(string, ...any) {}
	}

	narration, err := u.d.Video.ProbeAudio(ctx, in.NarrationPath)
	if err != nil {
		return types.RenderResult{}, err
	}
	if narration.Duration <= 0 {
		return types.RenderResult{}, &types.TranscriptionError{
			Path: in.NarrationPath,
			Err:  fmt.Errorf("narration has no duration"),
		}
	}
	logf("narration: %.2fs", narration.Duration)

	wav := filepath.Join(in.WorkDir, "narration-16k.wav")
	if err := u.d.Video.ExtractAudioMono16k(ctx, in.NarrationPath, wav); err != nil {
		return types.RenderResult{}, &types.TranscriptionError{Path: in.NarrationPath, Err: err}
	}
	tr, err := u.d.ASR.Transcribe(ctx, wav, in.WorkDir)
	if err != nil {
		return types.RenderResult{}, &types.TranscriptionError{Path: in.NarrationPath, Err: err}
	}
	cues, err := transcript.Flatten(in.NarrationPath, tr, narration.Duration)
	if err != nil {
		return types.RenderResult{}, err
	}
	logf("transcript: %d cues", len(cues))

	cardSeq := cards.Build(cues, narration.Duration, in.Cards)
	assPath := filepath.Join(in.WorkDir, "cards.ass")
	if err := os.WriteFile(assPath, []byte(subtitles.RenderASS(cardSeq, in.Spec)), 0o644); err != nil {
		return types.RenderResult{}, err
	}
	logf("subtitles: %d cards", len(cardSeq))

	background, err := u.d.Video.ProbeVideo(ctx, in.BackgroundPath)
	if err != nil {
		return types.RenderResult{}, err
	}
	offset := timeline.ChooseOffset(in.OffsetPolicy, background.Duration, narration.Duration, in.Rand)
	plan, err := timeline.PlanTrim(in.BackgroundPath, background.Duration, narration.Duration, offset)
	if err != nil {
		return types.RenderResult{}, err
	}
	logf("background: %.2fs, window offset %.2fs, %d extra loops", background.Duration, plan.Offset, plan.Loops)

	trimmed := filepath.Join(in.WorkDir, "trimmed.mp4")
	if err := u.d.Video.TrimLoop(ctx, in.BackgroundPath, plan, trimmed); err != nil {
		return types.RenderResult{}, err
	}

	geom, err := frame.Cover(background.Width, background.Height, in.Spec.Width, in.Spec.Height)
	if err != nil {
		return types.RenderResult{}, err
	}
	framed := filepath.Join(in.WorkDir, "framed.mp4")
	if err := u.d.Video.Reframe(ctx, trimmed, geom, framed); err != nil {
		return types.RenderResult{}, err
	}
	logf("reframed to %dx%d", geom.Width, geom.Height)

	staged := filepath.Join(in.WorkDir, "final.mp4")
	if err := u.d.Video.Compose(ctx, framed, in.NarrationPath, assPath, staged, in.Spec); err != nil {
		return types.RenderResult{}, err
	}
	final, err := u.d.Video.ProbeVideo(ctx, staged)
	if err != nil {
		return types.RenderResult{}, err
	}
	if iv := in.Spec.FrameInterval(); iv > 0 {
		if diff := math.Abs(final.Duration - narration.Duration); diff >= iv {
			logf("warning: output duration %.3fs deviates from narration %.3fs", final.Duration, narration.Duration)
		}
	}

	res := types.RenderResult{Duration: final.Duration}
	base := strings.TrimSuffix(in.OutPath, filepath.Ext(in.OutPath))
	ext := filepath.Ext(in.OutPath)

	// Every artifact is finished inside the work scope before anything moves,
	// so an encode failure never leaves a partial set in the output directory.
	type artifact struct{ src, dst string }
	var publish []artifact

	parts := timeline.SplitParts(final.Duration, in.MaxPartDuration)
	if len(parts) == 0 {
		publish = append(publish, artifact{src: staged, dst: in.OutPath})
		res.OutputPath = in.OutPath
	} else {
		logf("splitting into %d parts", len(parts))
		for i, p := range parts {
			cut := filepath.Join(in.WorkDir, fmt.Sprintf("part%d%s", i+1, ext))
			if err := u.d.Video.Cut(ctx, staged, p.Start, p.Duration, cut); err != nil {
				return types.RenderResult{}, err
			}
			dst := fmt.Sprintf("%s_part%d%s", base, i+1, ext)
			publish = append(publish, artifact{src: cut, dst: dst})
			res.Parts = append(res.Parts, dst)
		}
		res.OutputPath = res.Parts[0]
	}

	if in.ThumbnailAt >= 0 {
		thumb := filepath.Join(in.WorkDir, "thumbnail.jpg")
		if err := u.d.Video.Thumbnail(ctx, staged, in.ThumbnailAt, thumb); err != nil {
			return types.RenderResult{}, err
		}
		dst := base + "_thumbnail.jpg"
		publish = append(publish, artifact{src: thumb, dst: dst})
		res.ThumbnailPath = dst
	}
	if in.ExportSRT {
		srt := filepath.Join(in.WorkDir, "cards.srt")
		if err := os.WriteFile(srt, []byte(subtitles.RenderSRT(cardSeq)), 0o644); err != nil {
			return types.RenderResult{}, err
		}
		dst := base + ".srt"
		publish = append(publish, artifact{src: srt, dst: dst})
		res.SubtitlePath = dst
	}

	for i, a := range publish {
		if err := moveFile(a.src, a.dst); err != nil {
			for _, done := range publish[:i] {
				os.Remove(done.dst)
			}
			return types.RenderResult{}, err
		}
	}
	return res, nil
}

// moveFile renames src into place, falling back to a copy when the workspace
// and the output directory sit on different filesystems.
func moveFile(src, dst string) error {
	if err := os.Rename(src, dst); err == nil {
		return nil
	}
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dst)
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}
	return os.Remove(src)
}
