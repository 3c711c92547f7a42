package stdout

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sync"

	"github.com/crimson-sun/intake/internal/model"
	"github.com/crimson-sun/intake/internal/output"
)

// Output writes JSON-encoded records to a stream, normally os.Stdout.
type Output struct {
	mu      sync.Mutex
	enc     *json.Encoder
	explain bool
}

// New creates a stream Output writing to w, with optional analysis fields
// and optional pretty-printed JSON.
func New(w io.Writer, explain, pretty bool) *Output {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if pretty {
		enc.SetIndent("", "  ")
	}
	return &Output{enc: enc, explain: explain}
}

func (o *Output) Write(_ context.Context, rec model.Record) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if err := o.enc.Encode(output.FormatRecord(rec, o.explain)); err != nil {
		return fmt.Errorf("stdout output: %w", err)
	}
	return nil
}

func (o *Output) Close() error {
	return nil
}
