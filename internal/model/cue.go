package model

// StripMode controls where a cue phrase is removed from a title.
type StripMode string

const (
	// StripTrailing removes the cue only when it ends the title candidate.
	StripTrailing StripMode = "trailing"
	// StripAnywhere removes the cue wherever it appears (inline modifiers like "urgent").
	StripAnywhere StripMode = "anywhere"
	// StripNever keeps the cue in the title.
	StripNever StripMode = "never"
)

// Cue is a single lexicon entry: a phrase that is evidence for a priority level.
type Cue struct {
	Phrase   string    `yaml:"phrase" json:"phrase"`
	Priority Priority  `yaml:"priority" json:"priority"`
	Strength int       `yaml:"strength" json:"strength"`
	Strip    StripMode `yaml:"strip,omitempty" json:"strip,omitempty"`
}
