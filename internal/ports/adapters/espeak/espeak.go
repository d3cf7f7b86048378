// Package espeak synthesizes narration locally with espeak-ng. It exists so
// the pipeline can run fully offline; production narration normally arrives
// pre-synthesized from the acquisition layer.
package espeak

import (
	"context"
	"fmt"
	"os/exec"
	"strconv"
)

type Adapter struct {
	bin   string
	voice string
	wpm   int
}

func New(binPath, voice string, wpm int) *Adapter {
	if binPath == "" {
		binPath = "espeak-ng"
	}
	return &Adapter{bin: binPath, voice: voice, wpm: wpm}
}

func (a *Adapter) Synthesize(ctx context.Context, text, outWav string) error {
	cmd := exec.CommandContext(ctx, a.bin, a.args(text, outWav)...)
	b, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("espeak-ng failed: %w\n%s", err, string(b))
	}
	return nil
}

func (a *Adapter) args(text, outWav string) []string {
	args := []string{"-w", outWav}
	if a.voice != "" {
		args = append(args, "-v", a.voice)
	}
	if a.wpm > 0 {
		args = append(args, "-s", strconv.Itoa(a.wpm))
	}
	// The text follows the option terminator so a post starting with a dash
	// is never parsed as a flag.
	return append(args, "--", text)
}
