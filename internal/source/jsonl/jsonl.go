// Package jsonl reads requests from newline-delimited JSON objects of the
// form {"id": "...", "input": "..."}.
package jsonl

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/crimson-sun/intake/internal/model"
	"github.com/crimson-sun/intake/internal/source"
)

const maxLine = 1 << 20

func init() {
	source.Register("jsonl", func() source.Source {
		return &Source{}
	})
}

// Source implements source.Source for NDJSON requests.
type Source struct{}

type line struct {
	ID    string  `json:"id"`
	Input *string `json:"input"`
}

// Read decodes one request per non-blank line. A missing id is replaced by a
// generated one; a missing input field fails the whole read, since it means
// the file is not a request file. An empty input string is a valid request.
func (s *Source) Read(ctx context.Context, cfg source.Config) ([]model.Request, error) {
	rc, name, err := source.Open(cfg)
	if err != nil {
		return nil, fmt.Errorf("jsonl: %w", err)
	}
	defer rc.Close()

	var reqs []model.Request
	sc := bufio.NewScanner(rc)
	sc.Buffer(make([]byte, 0, 64*1024), maxLine)
	for n := 1; sc.Scan(); n++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}
		var l line
		if err := json.Unmarshal([]byte(text), &l); err != nil {
			return nil, fmt.Errorf("jsonl: %s:%d: %w", name, n, err)
		}
		if l.Input == nil {
			return nil, fmt.Errorf("jsonl: %s:%d: missing \"input\" field", name, n)
		}
		id := l.ID
		if id == "" {
			id = uuid.New().String()
		}
		reqs = append(reqs, model.Request{
			ID:     id,
			Source: "jsonl",
			Origin: fmt.Sprintf("%s:%d", name, n),
			Input:  *l.Input,
		})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("jsonl: read %s: %w", name, err)
	}
	return reqs, nil
}
