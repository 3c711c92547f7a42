package file

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync"

	"github.com/crimson-sun/intake/internal/model"
	"github.com/crimson-sun/intake/internal/output"
)

const (
	defaultBufSize    = 64 * 1024
	defaultMaxBackups = 5
)

// Option configures a file Output.
type Option func(*Output)

// WithMaxSize sets the file size (bytes) at which rotation triggers.
// 0 (default) disables rotation.
func WithMaxSize(bytes int64) Option {
	return func(o *Output) { o.maxSize = bytes }
}

// WithMaxBackups sets how many rotated files ({path}.1 .. {path}.N) are kept.
func WithMaxBackups(n int) Option {
	return func(o *Output) {
		if n > 0 {
			o.maxBackups = n
		}
	}
}

// WithExplain keeps the analysis on every record.
func WithExplain(explain bool) Option {
	return func(o *Output) { o.explain = explain }
}

// Output appends NDJSON records to a file with buffered I/O and optional
// size-based rotation.
type Output struct {
	mu         sync.Mutex
	w          *bufio.Writer
	f          *os.File
	path       string
	explain    bool
	maxSize    int64
	maxBackups int
	written    int64
}

// New opens (or creates) path for appending.
func New(path string, opts ...Option) (*Output, error) {
	o := &Output{
		path:       path,
		maxBackups: defaultMaxBackups,
	}
	for _, opt := range opts {
		opt(o)
	}
	if err := o.open(); err != nil {
		return nil, err
	}
	return o, nil
}

// Write appends rec as one line, rotating first if the line would push the
// file past the size limit.
func (o *Output) Write(_ context.Context, rec model.Record) error {
	data, err := json.Marshal(output.FormatRecord(rec, o.explain))
	if err != nil {
		return fmt.Errorf("file output: marshal: %w", err)
	}
	data = append(data, '\n')

	o.mu.Lock()
	defer o.mu.Unlock()

	if o.maxSize > 0 && o.written > 0 && o.written+int64(len(data)) > o.maxSize {
		if err := o.rotate(); err != nil {
			return fmt.Errorf("file output: rotate: %w", err)
		}
	}

	n, err := o.w.Write(data)
	o.written += int64(n)
	if err != nil {
		return fmt.Errorf("file output: write: %w", err)
	}
	return nil
}

// Close flushes the buffer and closes the file.
func (o *Output) Close() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	ferr := o.w.Flush()
	cerr := o.f.Close()
	if ferr != nil {
		return fmt.Errorf("file output: flush: %w", ferr)
	}
	return cerr
}

func (o *Output) open() error {
	f, err := os.OpenFile(o.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("file output: open %s: %w", o.path, err)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return fmt.Errorf("file output: stat %s: %w", o.path, err)
	}
	o.f = f
	o.w = bufio.NewWriterSize(f, defaultBufSize)
	o.written = info.Size()
	return nil
}

// rotate shifts {path}.N-1 → {path}.N down to the live file → {path}.1,
// dropping the oldest backup, then reopens path empty.
func (o *Output) rotate() error {
	if err := o.w.Flush(); err != nil {
		return err
	}
	if err := o.f.Close(); err != nil {
		return err
	}

	for i := o.maxBackups - 1; i >= 1; i-- {
		err := os.Rename(backup(o.path, i), backup(o.path, i+1))
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}
	if err := os.Rename(o.path, backup(o.path, 1)); err != nil {
		return err
	}
	return o.open()
}

func backup(path string, n int) string {
	return fmt.Sprintf("%s.%d", path, n)
}
