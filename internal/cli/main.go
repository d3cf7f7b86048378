package cli

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func Main() {
	_ = godotenv.Load() // best-effort: load .env if present

	root := &cobra.Command{
		Use:          "redreel <post.txt>",
		Short:        "Assemble a short vertical video from a post, a narration track and a background clip",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args[0])
		},
	}

	root.SetOut(os.Stdout)
	root.SetErr(os.Stderr)
	root.SilenceErrors = true

	root.Flags().String("narration", "", "Narration audio file (synthesized locally when omitted)")
	root.Flags().String("background", "", "Background video file (picked from the library when omitted)")
	root.Flags().String("out", "", "Output directory (overrides config)")
	root.Flags().String("config", "config.yaml", "Config file")
	root.Flags().Bool("quiet", false, "Suppress progress output")

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
