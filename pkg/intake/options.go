package intake

import (
	"log/slog"

	"github.com/crimson-sun/intake/internal/model"
)

// Cue is one lexicon entry: a phrase that signals a priority.
type Cue struct {
	Phrase   string
	Priority Priority
	Strength int
	// Strip controls removal from the title: "trailing" (default for Low and
	// High), "anywhere", or "never" (default for Med).
	Strip string
}

type options struct {
	lexiconVersion string
	cues           []Cue
	customCues     bool
	lexiconFile    string
	maxInputRunes  int
	concurrency    int
	logger         *slog.Logger
}

// Option configures an Intake instance.
type Option func(*options)

// WithLexicon replaces the built-in cue lexicon.
func WithLexicon(version string, cues []Cue) Option {
	return func(o *options) {
		o.lexiconVersion = version
		o.cues = cues
		o.customCues = true
		o.lexiconFile = ""
	}
}

// WithLexiconFile loads the cue lexicon from a YAML file.
func WithLexiconFile(path string) Option {
	return func(o *options) {
		o.lexiconFile = path
		o.cues = nil
		o.customCues = false
	}
}

// WithMaxInputRunes rejects longer inputs with ErrInputTooLong.
// 0 disables the check. Default: 2000.
func WithMaxInputRunes(n int) Option {
	return func(o *options) {
		o.maxInputRunes = n
	}
}

// WithConcurrency bounds the number of inputs ClassifyBatch works on at once.
// Default: 4.
func WithConcurrency(n int) Option {
	return func(o *options) {
		o.concurrency = n
	}
}

// WithLogger sets the logger that receives invariant violations.
// Default: slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

func defaultOptions() options {
	return options{
		maxInputRunes: 2000,
		concurrency:   4,
	}
}

func (c Cue) toModel() model.Cue {
	return model.Cue{
		Phrase:   c.Phrase,
		Priority: c.Priority,
		Strength: c.Strength,
		Strip:    model.StripMode(c.Strip),
	}
}
