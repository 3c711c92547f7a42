package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/crimson-sun/intake/internal/engine"
	"github.com/crimson-sun/intake/internal/metrics"
	"github.com/crimson-sun/intake/internal/model"
	"github.com/crimson-sun/intake/internal/output"
	"github.com/crimson-sun/intake/internal/source"
)

// Processor classifies a batch of raw inputs. *engine.Engine implements it.
type Processor interface {
	AnalyzeBatch(ctx context.Context, raws []string, concurrency int) ([]engine.Outcome, error)
}

// Summary counts what one Run produced.
type Summary struct {
	Total   int
	Drafted int
	Failed  int
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithMetrics records outcomes into m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(p *Pipeline) { p.metrics = m }
}

// WithLogger sets the logger used for per-request failures.
func WithLogger(l *slog.Logger) Option {
	return func(p *Pipeline) { p.logger = l }
}

// WithMaxInputRunes rejects longer inputs before classification. 0 disables.
func WithMaxInputRunes(n int) Option {
	return func(p *Pipeline) { p.maxInputRunes = n }
}

// WithConcurrency bounds the number of inputs classified at once.
func WithConcurrency(n int) Option {
	return func(p *Pipeline) { p.concurrency = n }
}

// Pipeline connects a source, the classifier, and an output.
type Pipeline struct {
	source        source.Source
	engine        Processor
	output        output.Output
	metrics       *metrics.Metrics
	logger        *slog.Logger
	maxInputRunes int
	concurrency   int
}

// New creates a Pipeline from the given components.
func New(src source.Source, eng Processor, out output.Output, opts ...Option) *Pipeline {
	p := &Pipeline{
		source:      src,
		engine:      eng,
		output:      out,
		logger:      slog.Default(),
		concurrency: 1,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run reads every request from the source, classifies them, and writes one
// record per request in source order. A request that cannot be classified
// becomes an error record and does not stop the run; source, output, and
// context failures do.
func (p *Pipeline) Run(ctx context.Context, cfg source.Config) (Summary, error) {
	reqs, err := p.source.Read(ctx, cfg)
	if err != nil {
		return Summary{}, fmt.Errorf("pipeline source: %w", err)
	}

	// Over-long inputs never reach the engine.
	records := make([]model.Record, len(reqs))
	rejected := make([]error, len(reqs))
	var raws []string
	var index []int
	for i, req := range reqs {
		records[i] = model.Record{ID: req.ID, Origin: req.Origin, Input: req.Input}
		if p.metrics != nil {
			p.metrics.ObserveInput(req.Input)
		}
		if err := engine.CheckLength(req.Input, p.maxInputRunes); err != nil {
			rejected[i] = err
			continue
		}
		raws = append(raws, req.Input)
		index = append(index, i)
	}

	outcomes, err := p.engine.AnalyzeBatch(ctx, raws, p.concurrency)
	if err != nil {
		return Summary{}, fmt.Errorf("pipeline process batch: %w", err)
	}
	for j, oc := range outcomes {
		i := index[j]
		if oc.Err != nil {
			rejected[i] = oc.Err
			continue
		}
		a := oc.Analysis
		pri := a.Priority
		records[i].Title = a.Title
		records[i].Priority = &pri
		records[i].Analysis = &a
	}

	sum := Summary{Total: len(reqs)}
	for i := range records {
		if err := rejected[i]; err != nil {
			p.fail(&records[i], err)
			sum.Failed++
		} else {
			sum.Drafted++
			if p.metrics != nil {
				p.metrics.ObserveDraft(*records[i].Priority)
			}
		}
		if err := p.output.Write(ctx, records[i]); err != nil {
			return sum, fmt.Errorf("pipeline output: %w", err)
		}
	}
	return sum, nil
}

func (p *Pipeline) fail(rec *model.Record, err error) {
	kind := engine.KindOf(err)
	rec.Error = err.Error()
	rec.Kind = kind
	if p.metrics != nil {
		p.metrics.ObserveFailure(kind)
	}
	p.logger.Warn("request not classified",
		"id", rec.ID,
		"origin", rec.Origin,
		"kind", kind,
		"error", err,
	)
}

// Close shuts down the output.
func (p *Pipeline) Close() error {
	return p.output.Close()
}
