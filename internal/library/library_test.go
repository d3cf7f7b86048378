package library

import (
	"math/rand"
	"os"
	"path/filepath"
	"testing"
)

func seedLibrary(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	for _, name := range []string{"b.mp4", "a.MOV", "notes.txt", "c.mkv"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatalf("seed %s: %v", name, err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "nested.mp4"), 0o755); err != nil {
		t.Fatalf("seed dir: %v", err)
	}
	return dir
}

func TestList(t *testing.T) {
	t.Parallel()

	dir := seedLibrary(t)
	clips, err := List(dir)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(clips) != 3 {
		t.Fatalf("expected 3 clips, got %v", clips)
	}
	want := []string{"a.MOV", "b.mp4", "c.mkv"}
	for i, w := range want {
		if filepath.Base(clips[i]) != w {
			t.Fatalf("clip %d = %s, want %s", i, filepath.Base(clips[i]), w)
		}
	}
}

func TestPick(t *testing.T) {
	t.Parallel()

	dir := seedLibrary(t)

	first, err := Pick(dir, nil)
	if err != nil {
		t.Fatalf("pick: %v", err)
	}
	if filepath.Base(first) != "a.MOV" {
		t.Fatalf("nil rng must pick the first clip, got %s", first)
	}

	one, err := Pick(dir, rand.New(rand.NewSource(7)))
	if err != nil {
		t.Fatalf("pick: %v", err)
	}
	two, err := Pick(dir, rand.New(rand.NewSource(7)))
	if err != nil {
		t.Fatalf("pick: %v", err)
	}
	if one != two {
		t.Fatalf("seeded pick not reproducible: %s vs %s", one, two)
	}
}

func TestPick_EmptyLibrary(t *testing.T) {
	t.Parallel()

	if _, err := Pick(t.TempDir(), nil); err == nil {
		t.Fatal("expected error for empty library")
	}
	if _, err := Pick(filepath.Join(t.TempDir(), "missing"), nil); err == nil {
		t.Fatal("expected error for missing directory")
	}
}
