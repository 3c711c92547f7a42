package engine

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"unicode/utf8"

	"golang.org/x/sync/errgroup"

	"github.com/crimson-sun/intake/internal/engine/lexicon"
	"github.com/crimson-sun/intake/internal/engine/normalizer"
	"github.com/crimson-sun/intake/internal/engine/priority"
	"github.com/crimson-sun/intake/internal/engine/title"
	"github.com/crimson-sun/intake/internal/model"
)

// Engine orchestrates the normalize → {priority, title} → validate pipeline.
// It holds no mutable state and is safe for concurrent use.
type Engine struct {
	lexicon  *lexicon.Lexicon
	priority *priority.Extractor
	title    *title.Extractor
	logger   *slog.Logger
}

// New creates an Engine with the provided components. A nil logger means slog.Default().
func New(lex *lexicon.Lexicon, pri *priority.Extractor, ttl *title.Extractor, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		lexicon:  lex,
		priority: pri,
		title:    ttl,
		logger:   logger,
	}
}

// NewDefault wires an Engine around lex with the standard title bound.
func NewDefault(lex *lexicon.Lexicon, logger *slog.Logger) *Engine {
	return New(lex, priority.New(lex), title.New(lex, title.MaxRunes), logger)
}

// Lexicon returns the lexicon the engine scores against.
func (e *Engine) Lexicon() *lexicon.Lexicon {
	return e.lexicon
}

// Classify turns free text into a task draft.
func (e *Engine) Classify(raw string) (model.Draft, error) {
	a, err := e.Analyze(raw)
	if err != nil {
		return model.Draft{}, err
	}
	return a.Draft, nil
}

// Analyze classifies raw text and returns the draft with its evidence.
// Priority and title extraction read disjoint parts of the normalized input
// and do not depend on each other.
func (e *Engine) Analyze(raw string) (model.Analysis, error) {
	norm, err := normalizer.Normalize(raw)
	if err != nil {
		return model.Analysis{}, err
	}

	pr := e.priority.Extract(norm.Normalized)

	t, err := e.title.Extract(norm.Sentences)
	fallback := false
	if errors.Is(err, title.ErrUnextractable) {
		fallback = true
		t, err = e.title.Fallback(norm.Sentences, norm.Normalized)
	}
	if err != nil {
		return model.Analysis{}, e.violation(raw, "title fallback produced no text: "+err.Error())
	}

	a := model.Analysis{
		Draft:          model.Draft{Title: t, Priority: pr.Priority},
		Normalized:     norm.Normalized,
		Scores:         pr.Scores,
		Matches:        pr.Matches,
		TitleFallback:  fallback,
		LexiconVersion: e.lexicon.Version(),
	}
	if err := e.check(raw, a.Draft); err != nil {
		return model.Analysis{}, err
	}
	return a, nil
}

// Outcome is the result of one input in a batch.
type Outcome struct {
	Analysis model.Analysis
	Err      error
}

// AnalyzeBatch classifies inputs concurrently, at most concurrency at a time
// (unbounded when concurrency <= 0). Outcomes are returned in input order;
// per-input failures are reported in Outcome.Err. The returned error is
// non-nil only when ctx is cancelled.
func (e *Engine) AnalyzeBatch(ctx context.Context, raws []string, concurrency int) ([]Outcome, error) {
	out := make([]Outcome, len(raws))
	g, gctx := errgroup.WithContext(ctx)
	if concurrency > 0 {
		g.SetLimit(concurrency)
	}
	for i, raw := range raws {
		if gctx.Err() != nil {
			break
		}
		i, raw := i, raw
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			a, err := e.Analyze(raw)
			out[i] = Outcome{Analysis: a, Err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// check enforces the output invariants on a draft before it is returned.
func (e *Engine) check(raw string, d model.Draft) error {
	n := utf8.RuneCountInString(d.Title)
	switch {
	case strings.TrimSpace(d.Title) == "":
		return e.violation(raw, "empty title")
	case n > title.MaxRunes:
		return e.violation(raw, "title exceeds bound")
	case !d.Priority.Valid():
		return e.violation(raw, "priority out of range")
	case utf8.RuneCountInString(raw) > title.MaxRunes && d.Title == raw:
		return e.violation(raw, "title is the unbounded raw input")
	}
	return nil
}

func (e *Engine) violation(raw, reason string) error {
	e.logger.Error("intake invariant violated",
		"reason", reason,
		"input", raw,
		"lexicon", e.lexicon.Version(),
	)
	return &InvariantViolationError{Input: raw, Reason: reason}
}
