package intake

import (
	"context"
	"fmt"
	"io"

	"github.com/crimson-sun/intake/internal/engine"
	"github.com/crimson-sun/intake/internal/engine/lexicon"
	"github.com/crimson-sun/intake/internal/model"
)

// Intake classifies free-text task descriptions. Safe for concurrent use.
type Intake struct {
	engine        *engine.Engine
	lexicon       *lexicon.Lexicon
	maxInputRunes int
	concurrency   int
}

// New creates an Intake. With no options it uses the built-in lexicon.
func New(opts ...Option) (*Intake, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.maxInputRunes < 0 {
		return nil, fmt.Errorf("intake: max input runes must be >= 0, got %d", o.maxInputRunes)
	}
	if o.concurrency < 1 {
		return nil, fmt.Errorf("intake: concurrency must be >= 1, got %d", o.concurrency)
	}

	lex, err := resolveLexicon(o)
	if err != nil {
		return nil, fmt.Errorf("intake: %w", err)
	}
	return &Intake{
		engine:        engine.NewDefault(lex, o.logger),
		lexicon:       lex,
		maxInputRunes: o.maxInputRunes,
		concurrency:   o.concurrency,
	}, nil
}

func resolveLexicon(o options) (*lexicon.Lexicon, error) {
	switch {
	case o.lexiconFile != "":
		return lexicon.Load(o.lexiconFile)
	case o.customCues:
		cues := make([]model.Cue, len(o.cues))
		for i, c := range o.cues {
			cues[i] = c.toModel()
		}
		return lexicon.New(o.lexiconVersion, cues)
	default:
		return lexicon.Default(), nil
	}
}

// Classify turns text into a task draft.
func (in *Intake) Classify(text string) (Draft, error) {
	if err := engine.CheckLength(text, in.maxInputRunes); err != nil {
		return Draft{}, err
	}
	d, err := in.engine.Classify(text)
	if err != nil {
		return Draft{}, err
	}
	return draftFromModel(d), nil
}

// Explain classifies text and returns the draft with the scores and cues
// that produced it.
func (in *Intake) Explain(text string) (Analysis, error) {
	if err := engine.CheckLength(text, in.maxInputRunes); err != nil {
		return Analysis{}, err
	}
	a, err := in.engine.Analyze(text)
	if err != nil {
		return Analysis{}, err
	}
	return analysisFromModel(a), nil
}

// ClassifyBatch classifies texts concurrently and returns one Result per
// input, in input order. Per-input failures are reported in Result.Err; the
// returned error is non-nil only when ctx is done.
func (in *Intake) ClassifyBatch(ctx context.Context, texts []string) ([]Result, error) {
	results := make([]Result, len(texts))
	var raws []string
	var index []int
	for i, t := range texts {
		if err := engine.CheckLength(t, in.maxInputRunes); err != nil {
			results[i].Err = err
			continue
		}
		raws = append(raws, t)
		index = append(index, i)
	}

	outcomes, err := in.engine.AnalyzeBatch(ctx, raws, in.concurrency)
	if err != nil {
		return nil, err
	}
	for j, oc := range outcomes {
		i := index[j]
		if oc.Err != nil {
			results[i].Err = oc.Err
			continue
		}
		results[i].Draft = draftFromModel(oc.Analysis.Draft)
	}
	return results, nil
}

// LexiconVersion returns the version label of the active lexicon.
func (in *Intake) LexiconVersion() string {
	return in.lexicon.Version()
}

// Lexicon returns the active cues, longest phrase first. The slice is a copy.
func (in *Intake) Lexicon() []Cue {
	src := in.lexicon.Cues()
	cues := make([]Cue, len(src))
	for i, c := range src {
		cues[i] = Cue{Phrase: c.Phrase, Priority: c.Priority, Strength: c.Strength, Strip: string(c.Strip)}
	}
	return cues
}

// DumpLexicon writes the active lexicon to w as YAML, in the format
// WithLexiconFile reads.
func (in *Intake) DumpLexicon(w io.Writer) error {
	return lexicon.Dump(w, in.lexicon)
}
