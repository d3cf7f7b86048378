package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"redreel/internal/config"
	"redreel/internal/pipeline"
)

func run(cmd *cobra.Command, post string) error {
	narration, _ := cmd.Flags().GetString("narration")
	background, _ := cmd.Flags().GetString("background")
	outDir, _ := cmd.Flags().GetString("out")
	configPath, _ := cmd.Flags().GetString("config")
	quiet, _ := cmd.Flags().GetBool("quiet")

	settings, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if outDir != "" {
		settings.Output.Dir = outDir
	}
	if v := os.Getenv("REDREEL_WHISPER_MODEL"); v != "" {
		settings.Whisper.ModelPath = v
	}
	if v := os.Getenv("REDREEL_WHISPER_BIN"); v != "" {
		settings.Whisper.BinaryPath = v
	}

	absPost, err := filepath.Abs(post)
	if err != nil {
		return err
	}

	logf := func(string, ...any) {}
	if !quiet {
		logf = func(format string, args ...any) {
			fmt.Fprintf(cmd.ErrOrStderr(), format+"\n", args...)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Hour)
	defer cancel()

	cfg := pipeline.Config{
		PostPath:       absPost,
		NarrationPath:  narration,
		BackgroundPath: background,
		Settings:       settings,
		Logf:           logf,
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	res, err := pipeline.Run(ctx, cfg)
	if err != nil {
		return err
	}
	if len(res.Parts) > 0 {
		for _, p := range res.Parts {
			fmt.Fprintln(cmd.OutOrStdout(), p)
		}
	} else {
		fmt.Fprintln(cmd.OutOrStdout(), res.OutputPath)
	}
	return nil
}
