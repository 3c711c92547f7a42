package multi

import (
	"context"
	"errors"

	"github.com/crimson-sun/intake/internal/model"
	"github.com/crimson-sun/intake/internal/output"
)

// Multi fans records out to several outputs. A failing output does not stop
// delivery to the ones after it.
type Multi struct {
	outputs []output.Output
}

// New creates a Multi over outputs, written in the given order.
func New(outputs ...output.Output) *Multi {
	return &Multi{outputs: outputs}
}

// Write delivers rec to every output and joins their errors.
func (m *Multi) Write(ctx context.Context, rec model.Record) error {
	var errs []error
	for _, o := range m.outputs {
		if err := o.Write(ctx, rec); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Close closes every output and joins their errors.
func (m *Multi) Close() error {
	var errs []error
	for _, o := range m.outputs {
		if err := o.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
