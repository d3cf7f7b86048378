// Package library manages the folder of candidate background clips.
package library

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

var supportedExt = map[string]bool{
	".mp4": true,
	".mov": true,
	".avi": true,
	".mkv": true,
}

// List returns the clips in dir with a supported container extension, sorted
// by name so selection is reproducible for a fixed seed.
func List(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read clip library %s: %w", dir, err)
	}
	var clips []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if supportedExt[strings.ToLower(filepath.Ext(e.Name()))] {
			clips = append(clips, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(clips)
	return clips, nil
}

// Pick selects one clip from dir. With a nil rng the first clip (by name) is
// returned; otherwise a uniform random pick gives variety across runs.
func Pick(dir string, rng *rand.Rand) (string, error) {
	clips, err := List(dir)
	if err != nil {
		return "", err
	}
	if len(clips) == 0 {
		return "", fmt.Errorf("no background clips in %s", dir)
	}
	if rng == nil {
		return clips[0], nil
	}
	return clips[rng.Intn(len(clips))], nil
}
