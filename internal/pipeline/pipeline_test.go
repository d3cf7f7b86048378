package pipeline

import (
	"math/rand"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	"redreel/internal/config"
	"redreel/internal/types"
)

func TestConfigValidate(t *testing.T) {
	t.Parallel()

	tmp := t.TempDir()
	post := filepath.Join(tmp, "post.txt")
	if err := os.WriteFile(post, []byte("title\nbody"), 0o644); err != nil {
		t.Fatal(err)
	}

	valid := Config{PostPath: post, Settings: config.Default()}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}

	cases := map[string]Config{
		"empty post":        {Settings: config.Default()},
		"missing post":      {PostPath: filepath.Join(tmp, "nope.txt"), Settings: config.Default()},
		"missing narration": {PostPath: post, NarrationPath: filepath.Join(tmp, "nope.mp3"), Settings: config.Default()},
		"missing background": {
			PostPath:       post,
			BackgroundPath: filepath.Join(tmp, "nope.mp4"),
			Settings:       config.Default(),
		},
	}
	for name, cfg := range cases {
		if err := cfg.Validate(); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}

	bad := Config{PostPath: post, Settings: config.Default()}
	bad.Settings.Output.Width = 0
	if err := bad.Validate(); err == nil {
		t.Error("invalid settings must fail validation")
	}
}

func TestBuildOutputName(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 3, 7, 12, 30, 45, 0, time.UTC)

	got := buildOutputName(types.Post{Title: "My Cool.Video", ID: "post-1"}, now)
	want := regexp.MustCompile(`^my-cool-video-20240307-123045Z-[0-9a-f]{8}\.mp4$`)
	if !want.MatchString(got) {
		t.Fatalf("unexpected name: %s", got)
	}

	// Title with no usable characters falls back to the post ID.
	got = buildOutputName(types.Post{Title: "???", ID: "post-1"}, now)
	if !strings.HasPrefix(got, "post-1-20240307") {
		t.Fatalf("expected ID fallback, got %s", got)
	}

	// Nothing usable at all still yields a stable stem.
	got = buildOutputName(types.Post{}, now)
	if !strings.HasPrefix(got, "short-") {
		t.Fatalf("expected fallback stem, got %s", got)
	}

	long := strings.Repeat("verylongword ", 10)
	got = buildOutputName(types.Post{Title: long}, now)
	stem := strings.SplitN(got, "-2024", 2)[0]
	if len(stem) > 40 {
		t.Fatalf("stem %q exceeds 40 chars", stem)
	}
}

func TestLibraryRng(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(1))
	if got := libraryRng("first", rng); got != nil {
		t.Fatal("first policy must disable random selection")
	}
	if got := libraryRng("random", rng); got != rng {
		t.Fatal("random policy must pass the run rng through")
	}
}

func TestNormalizePathSegment(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"  My Cool.Video  ": "my-cool-video",
		"___":               "",
		"abc123":            "abc123",
		"Name (v2)!":        "name-v2",
		"ещё один день":     "ещё-один-день",
		"":                  "",
	}
	for in, want := range cases {
		if got := normalizePathSegment(in); got != want {
			t.Errorf("normalizePathSegment(%q) = %q, want %q", in, got, want)
		}
	}
}
