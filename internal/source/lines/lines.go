// Package lines reads one request per non-blank line of text.
package lines

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/crimson-sun/intake/internal/model"
	"github.com/crimson-sun/intake/internal/source"
)

// maxLine bounds a single line; longer lines fail the read.
const maxLine = 1 << 20

func init() {
	source.Register("lines", func() source.Source {
		return &Source{}
	})
}

// Source implements source.Source for newline-delimited plain text.
type Source struct{}

// Read returns one request per non-blank line. Lines are passed through
// untrimmed; the classifier does its own normalization.
func (s *Source) Read(ctx context.Context, cfg source.Config) ([]model.Request, error) {
	rc, name, err := source.Open(cfg)
	if err != nil {
		return nil, fmt.Errorf("lines: %w", err)
	}
	defer rc.Close()

	var reqs []model.Request
	sc := bufio.NewScanner(rc)
	sc.Buffer(make([]byte, 0, 64*1024), maxLine)
	for n := 1; sc.Scan(); n++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		line := sc.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		reqs = append(reqs, model.Request{
			ID:     uuid.New().String(),
			Source: "lines",
			Origin: fmt.Sprintf("%s:%d", name, n),
			Input:  line,
		})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("lines: read %s: %w", name, err)
	}
	return reqs, nil
}
