//go:build integration

package itest

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"redreel/internal/config"
	"redreel/internal/pipeline"
)

// TestE2E runs the whole pipeline against real binaries: espeak-ng for the
// narration, ffmpeg for the background fixture, whisper.cpp for recognition.
// Set REDREEL_WHISPER_BIN and REDREEL_WHISPER_MODEL when the defaults do not
// point at an installed whisper.cpp.
func TestE2E(t *testing.T) {
	tmp := t.TempDir()

	post := filepath.Join(tmp, "post.txt")
	body := "Here is the key idea. Step one: do this. Step two: measure results. This is important."
	if err := os.WriteFile(post, []byte("The key idea\n"+body), 0o644); err != nil {
		t.Fatal(err)
	}

	// Background fixture: a silent moving test pattern.
	background := filepath.Join(tmp, "background.mp4")
	ff := exec.Command("ffmpeg",
		"-y",
		"-f", "lavfi",
		"-i", "testsrc=size=640x360:rate=30:duration=5",
		"-c:v", "libx264",
		"-pix_fmt", "yuv420p",
		background,
	)
	if b, err := ff.CombinedOutput(); err != nil {
		t.Fatalf("ffmpeg fixture failed: %v\n%s", err, string(b))
	}

	settings := config.Default()
	settings.Output.Dir = filepath.Join(tmp, "out")
	settings.Trim.Seed = 1
	settings.Subtitles.ExportSRT = true
	if v := os.Getenv("REDREEL_WHISPER_BIN"); v != "" {
		settings.Whisper.BinaryPath = v
	}
	if v := os.Getenv("REDREEL_WHISPER_MODEL"); v != "" {
		settings.Whisper.ModelPath = v
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Minute)
	defer cancel()

	cfg := pipeline.Config{
		PostPath:       post,
		BackgroundPath: background,
		Settings:       settings,
		Logf:           t.Logf,
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("config: %v", err)
	}

	res, err := pipeline.Run(ctx, cfg)
	if err != nil {
		t.Fatalf("pipeline failed: %v", err)
	}

	if _, err := os.Stat(res.OutputPath); err != nil {
		t.Fatalf("missing output: %v", err)
	}
	sec, err := probeDurationSeconds(settings.FFmpeg.FFprobe, res.OutputPath)
	if err != nil {
		t.Fatal(err)
	}
	if sec <= 0 {
		t.Fatalf("output has no duration: %.3f", sec)
	}
	if res.SubtitlePath == "" {
		t.Fatal("expected an exported subtitle file")
	}
	if _, err := os.Stat(res.SubtitlePath); err != nil {
		t.Fatalf("missing subtitles: %v", err)
	}
}
