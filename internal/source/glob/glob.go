// Package glob reads one request per file matched by a doublestar pattern
// such as "tickets/**/*.txt".
package glob

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/google/uuid"

	"github.com/crimson-sun/intake/internal/model"
	"github.com/crimson-sun/intake/internal/source"
)

// maxFile bounds the bytes read from one file.
const maxFile = 1 << 20

func init() {
	source.Register("glob", func() source.Source {
		return &Source{}
	})
}

// Source implements source.Source over files on disk.
type Source struct{}

// Read matches cfg.Path and returns one request per regular file, in path
// order. Each file's whole content is the input.
func (s *Source) Read(ctx context.Context, cfg source.Config) ([]model.Request, error) {
	if cfg.Path == "" || cfg.Path == "-" {
		return nil, errors.New("glob: pattern required")
	}
	matches, err := doublestar.FilepathGlob(cfg.Path, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("glob: %w", err)
	}
	sort.Strings(matches)

	reqs := make([]model.Request, 0, len(matches))
	for _, path := range matches {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		input, err := readFile(path)
		if err != nil {
			return nil, fmt.Errorf("glob: %w", err)
		}
		reqs = append(reqs, model.Request{
			ID:     uuid.New().String(),
			Source: "glob",
			Origin: path,
			Input:  input,
		})
	}
	return reqs, nil
}

func readFile(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", err
	}
	if info.Size() > maxFile {
		return "", fmt.Errorf("%s: %d bytes exceeds %d", path, info.Size(), maxFile)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
