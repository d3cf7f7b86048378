//go:build integration

package itest

import (
	"fmt"
	"os"
	"path/filepath"
)

// moduleRoot walks up from the working directory to the directory holding
// go.mod, so the tests can build the binary no matter which package runs them.
func moduleRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("no go.mod above %s", dir)
		}
		dir = parent
	}
}
