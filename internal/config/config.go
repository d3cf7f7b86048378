package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Output    OutputConfig    `yaml:"output"`
	Subtitles SubtitleConfig  `yaml:"subtitles"`
	Trim      TrimConfig      `yaml:"trim"`
	Split     SplitConfig     `yaml:"split"`
	Thumbnail ThumbnailConfig `yaml:"thumbnail"`
	Whisper   WhisperConfig   `yaml:"whisper"`
	FFmpeg    FFmpegConfig    `yaml:"ffmpeg"`
	Speech    SpeechConfig    `yaml:"speech"`
	Library   LibraryConfig   `yaml:"library"`
}

type OutputConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	FPS    int    `yaml:"fps"`
	Dir    string `yaml:"dir"`
}

type SubtitleConfig struct {
	MaxCharsPerCard int     `yaml:"max_chars_per_card"`
	MaxCardDuration float64 `yaml:"max_card_duration"`
	SilenceGap      float64 `yaml:"silence_gap"`
	Font            string  `yaml:"font"`
	FontSize        int     `yaml:"font_size"`
	MarginV         int     `yaml:"margin_v"`
	ExportSRT       bool    `yaml:"export_srt"`
}

type TrimConfig struct {
	OffsetPolicy string `yaml:"offset_policy"` // start | random
	Seed         int64  `yaml:"seed"`          // 0 = seeded from clock
}

type SplitConfig struct {
	Enabled         bool    `yaml:"enabled"`
	MaxPartDuration float64 `yaml:"max_part_duration"`
}

type ThumbnailConfig struct {
	Enabled bool    `yaml:"enabled"`
	At      float64 `yaml:"at"`
}

type WhisperConfig struct {
	BinaryPath string `yaml:"binary_path"`
	ModelPath  string `yaml:"model_path"`
	Language   string `yaml:"language"`
	Threads    int    `yaml:"threads"`
}

type FFmpegConfig struct {
	Binary       string `yaml:"binary"`
	FFprobe      string `yaml:"ffprobe"`
	Encoder      string `yaml:"encoder"`
	Preset       string `yaml:"preset"`
	CRF          int    `yaml:"crf"`
	AudioBitrate string `yaml:"audio_bitrate"`
}

type SpeechConfig struct {
	Binary string `yaml:"binary"` // espeak-ng, used only when no narration is given
	Voice  string `yaml:"voice"`
	WPM    int    `yaml:"wpm"`
}

type LibraryConfig struct {
	Dir  string `yaml:"dir"`
	Pick string `yaml:"pick"` // random | first
}

// Load reads a YAML config file and applies defaults. A missing file is not
// an error; the defaults alone are a working configuration apart from the
// whisper model path.
func Load(path string) (Config, error) {
	cfg := Default()
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

func Default() Config {
	return Config{
		Output: OutputConfig{Width: 1080, Height: 1920, FPS: 30, Dir: "out"},
		Subtitles: SubtitleConfig{
			MaxCharsPerCard: 42,
			MaxCardDuration: 5,
			SilenceGap:      1,
			Font:            "Inter",
			FontSize:        78,
		},
		Trim:      TrimConfig{OffsetPolicy: "random"},
		Split:     SplitConfig{Enabled: true, MaxPartDuration: 179},
		Thumbnail: ThumbnailConfig{At: 1},
		Whisper:   WhisperConfig{BinaryPath: ".cache/bin/whisper.cpp", ModelPath: ".cache/models/ggml-base.bin"},
		FFmpeg:    FFmpegConfig{Binary: "ffmpeg", FFprobe: "ffprobe", Encoder: "libx264", Preset: "veryfast", CRF: 18, AudioBitrate: "192k"},
		Speech:    SpeechConfig{Binary: "espeak-ng", WPM: 180},
		Library:   LibraryConfig{Dir: "assets/backgrounds", Pick: "random"},
	}
}

func (c *Config) Validate() error {
	if c.Output.Width <= 0 || c.Output.Height <= 0 {
		return fmt.Errorf("output.width and output.height must be > 0")
	}
	if c.Output.FPS <= 0 {
		return fmt.Errorf("output.fps must be > 0")
	}
	if c.Subtitles.MaxCharsPerCard <= 0 {
		return fmt.Errorf("subtitles.max_chars_per_card must be > 0")
	}
	if c.Subtitles.MaxCardDuration <= 0 {
		return fmt.Errorf("subtitles.max_card_duration must be > 0")
	}
	if c.Subtitles.SilenceGap <= 0 {
		return fmt.Errorf("subtitles.silence_gap must be > 0")
	}
	switch c.Trim.OffsetPolicy {
	case "start", "random":
	default:
		return fmt.Errorf("trim.offset_policy must be start or random, got %q", c.Trim.OffsetPolicy)
	}
	if c.Split.Enabled && c.Split.MaxPartDuration <= 0 {
		return fmt.Errorf("split.max_part_duration must be > 0 when splitting is enabled")
	}
	switch c.Library.Pick {
	case "random", "first":
	default:
		return fmt.Errorf("library.pick must be random or first, got %q", c.Library.Pick)
	}
	if c.Whisper.ModelPath == "" {
		return fmt.Errorf("whisper.model_path is required")
	}
	if c.Whisper.BinaryPath == "" {
		return fmt.Errorf("whisper.binary_path is required")
	}
	return nil
}
