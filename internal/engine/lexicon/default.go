package lexicon

import "github.com/crimson-sun/intake/internal/model"

// DefaultVersion identifies the built-in cue table.
const DefaultVersion = "builtin-1"

// DefaultCues returns the built-in cue table that ships with intake.
// Strong cues (High, Low) carry strength 3; neutral Med cues carry 1 and are
// overridden by any strong cue.
func DefaultCues() []model.Cue {
	return []model.Cue{
		// High urgency.
		{Phrase: "urgent", Priority: model.High, Strength: 3, Strip: model.StripAnywhere},
		{Phrase: "urgently", Priority: model.High, Strength: 3, Strip: model.StripAnywhere},
		{Phrase: "asap", Priority: model.High, Strength: 3},
		{Phrase: "immediately", Priority: model.High, Strength: 3},
		{Phrase: "critical", Priority: model.High, Strength: 3},
		{Phrase: "blocker", Priority: model.High, Strength: 3},
		{Phrase: "production down", Priority: model.High, Strength: 3},
		{Phrase: "right away", Priority: model.High, Strength: 3},
		{Phrase: "emergency", Priority: model.High, Strength: 3},
		{Phrase: "top priority", Priority: model.High, Strength: 3},
		{Phrase: "high priority", Priority: model.High, Strength: 3},

		// Low urgency.
		{Phrase: "later", Priority: model.Low, Strength: 3},
		{Phrase: "whenever", Priority: model.Low, Strength: 3},
		{Phrase: "low priority", Priority: model.Low, Strength: 3},
		{Phrase: "someday", Priority: model.Low, Strength: 3},
		{Phrase: "backlog", Priority: model.Low, Strength: 3},
		{Phrase: "no rush", Priority: model.Low, Strength: 3},
		{Phrase: "not urgent", Priority: model.Low, Strength: 3},
		{Phrase: "eventually", Priority: model.Low, Strength: 3},
		{Phrase: "nice to have", Priority: model.Low, Strength: 3},
		{Phrase: "when possible", Priority: model.Low, Strength: 3},

		// Neutral.
		{Phrase: "this week", Priority: model.Med, Strength: 1},
		{Phrase: "soon", Priority: model.Med, Strength: 1},
		{Phrase: "medium priority", Priority: model.Med, Strength: 1},
		{Phrase: "normal priority", Priority: model.Med, Strength: 1},
	}
}
