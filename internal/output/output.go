package output

import (
	"context"

	"github.com/crimson-sun/intake/internal/model"
)

// Output defines the interface for batch record destinations.
type Output interface {
	Write(ctx context.Context, rec model.Record) error
	Close() error
}
