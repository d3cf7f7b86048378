package ffmpeg

import (
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"redreel/internal/types"
)

// Encoding carries the codec knobs shared by every encoding operation.
type Encoding struct {
	Encoder      string // video encoder, e.g. libx264
	Preset       string
	CRF          int
	AudioBitrate string
}

func (e Encoding) withDefaults() Encoding {
	if e.Encoder == "" {
		e.Encoder = "libx264"
	}
	if e.Preset == "" {
		e.Preset = "veryfast"
	}
	if e.CRF <= 0 {
		e.CRF = 18
	}
	if e.AudioBitrate == "" {
		e.AudioBitrate = "192k"
	}
	return e
}

type Adapter struct {
	ffmpeg  string
	ffprobe string
	enc     Encoding
}

func New(ffmpegPath, ffprobePath string, enc Encoding) *Adapter {
	if ffmpegPath == "" {
		ffmpegPath = "ffmpeg"
	}
	if ffprobePath == "" {
		ffprobePath = "ffprobe"
	}
	return &Adapter{ffmpeg: ffmpegPath, ffprobe: ffprobePath, enc: enc.withDefaults()}
}

type probeOutput struct {
	Streams []probeStream `json:"streams"`
	Format  probeFormat   `json:"format"`
}

type probeStream struct {
	CodecType  string `json:"codec_type"`
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	RFrameRate string `json:"r_frame_rate"`
	SampleRate string `json:"sample_rate"`
}

type probeFormat struct {
	Duration string `json:"duration"`
}

func (a *Adapter) probe(ctx context.Context, path string) (probeOutput, error) {
	cmd := exec.CommandContext(ctx, a.ffprobe,
		"-v", "error",
		"-show_format",
		"-show_streams",
		"-of", "json",
		path,
	)
	b, err := cmd.Output()
	if err != nil {
		return probeOutput{}, fmt.Errorf("ffprobe %s: %w", path, err)
	}
	var out probeOutput
	if err := json.Unmarshal(b, &out); err != nil {
		return probeOutput{}, fmt.Errorf("parse ffprobe output for %s: %w", path, err)
	}
	return out, nil
}

func (a *Adapter) ProbeAudio(ctx context.Context, path string) (types.AudioAsset, error) {
	out, err := a.probe(ctx, path)
	if err != nil {
		return types.AudioAsset{}, err
	}
	asset := types.AudioAsset{Path: path}
	asset.Duration, err = strconv.ParseFloat(strings.TrimSpace(out.Format.Duration), 64)
	if err != nil {
		return types.AudioAsset{}, fmt.Errorf("parse duration of %s: %w", path, err)
	}
	for _, s := range out.Streams {
		if s.CodecType == "audio" {
			asset.SampleRate, _ = strconv.Atoi(s.SampleRate)
			break
		}
	}
	return asset, nil
}

func (a *Adapter) ProbeVideo(ctx context.Context, path string) (types.VideoAsset, error) {
	out, err := a.probe(ctx, path)
	if err != nil {
		return types.VideoAsset{}, err
	}
	asset := types.VideoAsset{Path: path}
	asset.Duration, err = strconv.ParseFloat(strings.TrimSpace(out.Format.Duration), 64)
	if err != nil {
		return types.VideoAsset{}, fmt.Errorf("parse duration of %s: %w", path, err)
	}
	for _, s := range out.Streams {
		if s.CodecType == "video" {
			asset.Width = s.Width
			asset.Height = s.Height
			asset.FPS = parseFrameRate(s.RFrameRate)
			break
		}
	}
	if asset.Width == 0 || asset.Height == 0 {
		return types.VideoAsset{}, fmt.Errorf("no video stream in %s", path)
	}
	return asset, nil
}

func (a *Adapter) ExtractAudioMono16k(ctx context.Context, in, outWav string) error {
	cmd := exec.CommandContext(ctx, a.ffmpeg,
		"-y",
		"-i", in,
		"-vn",
		"-ac", "1",
		"-ar", "16000",
		"-f", "wav",
		outWav,
	)
	b, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("ffmpeg extract audio: %w\n%s", err, string(b))
	}
	return nil
}

func (a *Adapter) TrimLoop(ctx context.Context, in string, plan types.TrimPlan, out string) error {
	cmd := exec.CommandContext(ctx, a.ffmpeg, a.trimLoopArgs(in, plan, out)...)
	b, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("ffmpeg trim: %w\n%s", err, string(b))
	}
	return nil
}

func (a *Adapter) trimLoopArgs(in string, plan types.TrimPlan, out string) []string {
	args := []string{"-y"}
	if plan.Loops > 0 {
		args = append(args, "-stream_loop", strconv.Itoa(plan.Loops))
	}
	args = append(args, "-i", in)
	if plan.Offset > 0 {
		// Seek after the input for frame-accurate trimming.
		args = append(args, "-ss", fmtSeconds(plan.Offset))
	}
	args = append(args,
		"-t", fmtSeconds(plan.Duration),
		"-an",
	)
	args = append(args, a.videoEncodeArgs()...)
	return append(args, out)
}

func (a *Adapter) Reframe(ctx context.Context, in string, g types.CropGeometry, out string) error {
	cmd := exec.CommandContext(ctx, a.ffmpeg, a.reframeArgs(in, g, out)...)
	b, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("ffmpeg reframe: %w\n%s", err, string(b))
	}
	return nil
}

func (a *Adapter) reframeArgs(in string, g types.CropGeometry, out string) []string {
	filter := fmt.Sprintf("scale=%d:%d,crop=%d:%d:%d:%d",
		g.ScaleWidth, g.ScaleHeight, g.Width, g.Height, g.CropX, g.CropY)
	args := []string{
		"-y",
		"-i", in,
		"-vf", filter,
		"-an",
	}
	args = append(args, a.videoEncodeArgs()...)
	return append(args, out)
}

// Compose muxes the framed background, the narration track, and the burned
// subtitle script into the final file. The background's own audio never
// reaches the output; only stream 1 (the narration) is mapped.
func (a *Adapter) Compose(ctx context.Context, video, narration, burnASS, out string, spec types.RenderSpec) error {
	cmd := exec.CommandContext(ctx, a.ffmpeg, a.composeArgs(video, narration, burnASS, out, spec)...)
	b, err := cmd.CombinedOutput()
	if err != nil {
		return &types.EncodeError{Output: out, Err: fmt.Errorf("%w\n%s", err, string(b))}
	}
	return nil
}

func (a *Adapter) composeArgs(video, narration, burnASS, out string, spec types.RenderSpec) []string {
	args := []string{
		"-y",
		"-i", video,
		"-i", narration,
		"-map", "0:v:0",
		"-map", "1:a:0",
	}
	if burnASS != "" {
		args = append(args, "-vf", "subtitles="+escapeFilterPath(burnASS))
	}
	args = append(args, a.videoEncodeArgs()...)
	args = append(args,
		"-pix_fmt", "yuv420p",
		"-r", strconv.Itoa(spec.FPS),
		"-c:a", "aac",
		"-b:a", a.enc.AudioBitrate,
		"-shortest",
	)
	return append(args, out)
}

func (a *Adapter) Cut(ctx context.Context, in string, start, duration float64, out string) error {
	args := []string{
		"-y",
		"-i", in,
		"-ss", fmtSeconds(start),
		"-t", fmtSeconds(duration),
	}
	args = append(args, a.videoEncodeArgs()...)
	args = append(args,
		"-c:a", "aac",
		"-b:a", a.enc.AudioBitrate,
		out,
	)
	cmd := exec.CommandContext(ctx, a.ffmpeg, args...)
	b, err := cmd.CombinedOutput()
	if err != nil {
		return &types.EncodeError{Output: out, Err: fmt.Errorf("%w\n%s", err, string(b))}
	}
	return nil
}

func (a *Adapter) Thumbnail(ctx context.Context, in string, at float64, out string) error {
	cmd := exec.CommandContext(ctx, a.ffmpeg,
		"-y",
		"-ss", fmtSeconds(at),
		"-i", in,
		"-frames:v", "1",
		"-q:v", "2",
		out,
	)
	b, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("ffmpeg thumbnail: %w\n%s", err, string(b))
	}
	return nil
}

func (a *Adapter) videoEncodeArgs() []string {
	return []string{
		"-c:v", a.enc.Encoder,
		"-preset", a.enc.Preset,
		"-crf", strconv.Itoa(a.enc.CRF),
	}
}

func parseFrameRate(s string) float64 {
	num, den, ok := strings.Cut(s, "/")
	if !ok {
		v, _ := strconv.ParseFloat(s, 64)
		return v
	}
	n, err1 := strconv.ParseFloat(num, 64)
	d, err2 := strconv.ParseFloat(den, 64)
	if err1 != nil || err2 != nil || d == 0 {
		return 0
	}
	return n / d
}

func fmtSeconds(sec float64) string {
	return strconv.FormatFloat(sec, 'f', 3, 64)
}

func escapeFilterPath(p string) string {
	p = strings.ReplaceAll(p, "\\", "\\\\")
	p = strings.ReplaceAll(p, ":", "\\:")
	return p
}
