package source

import (
	"context"
	"io"
	"os"

	"github.com/crimson-sun/intake/internal/model"
)

// Source defines the interface all batch request sources must implement.
type Source interface {
	// Read loads every request the source describes, in order.
	Read(ctx context.Context, cfg Config) ([]model.Request, error)
}

// Config holds source settings.
type Config struct {
	Path  string    // file or glob pattern; "" or "-" means Stdin
	Stdin io.Reader // used when Path names standard input
}

// Open returns a reader for cfg.Path, falling back to Stdin. The returned
// name is used as the origin prefix.
func Open(cfg Config) (io.ReadCloser, string, error) {
	if cfg.Path == "" || cfg.Path == "-" {
		r := cfg.Stdin
		if r == nil {
			r = os.Stdin
		}
		return io.NopCloser(r), "stdin", nil
	}
	f, err := os.Open(cfg.Path)
	if err != nil {
		return nil, "", err
	}
	return f, cfg.Path, nil
}
