// Package postfile reads the post to narrate from a local UTF-8 text file:
// first line is the title, the rest is the body.
package postfile

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"redreel/internal/types"
)

type Source struct {
	path string
}

func New(path string) *Source { return &Source{path: path} }

func (s *Source) Select(_ context.Context) (types.Post, error) {
	b, err := os.ReadFile(s.path)
	if err != nil {
		return types.Post{}, fmt.Errorf("read post: %w", err)
	}
	text := strings.TrimSpace(string(b))
	if text == "" {
		return types.Post{}, fmt.Errorf("post file %s is empty", s.path)
	}
	title, body, _ := strings.Cut(text, "\n")
	id := strings.TrimSuffix(filepath.Base(s.path), filepath.Ext(s.path))
	return types.Post{
		ID:    id,
		Title: strings.TrimSpace(title),
		Body:  strings.TrimSpace(body),
	}, nil
}
