package intake

import "github.com/crimson-sun/intake/internal/model"

// Priority is a task priority. It marshals to "Low", "Med", or "High".
type Priority = model.Priority

const (
	Low  = model.Low
	Med  = model.Med
	High = model.High
)

// ParsePriority parses "Low", "Med"/"Medium", or "High", case-insensitively.
func ParsePriority(s string) (Priority, error) {
	return model.ParsePriority(s)
}

// Draft is a suggested task. Field names match the task-creation request the
// caller submits after review.
type Draft struct {
	Title    string   `json:"title"`
	Priority Priority `json:"priority"`
}

// Scores is the accumulated cue strength per priority level.
type Scores struct {
	Low  int `json:"low"`
	Med  int `json:"med"`
	High int `json:"high"`
}

// Match is one cue found in the normalized input.
type Match struct {
	Phrase   string   `json:"phrase"`
	Priority Priority `json:"priority"`
	Strength int      `json:"strength"`
	Start    int      `json:"start"` // byte offsets into Analysis.Normalized
	End      int      `json:"end"`
}

// Analysis is a Draft together with the evidence behind it.
type Analysis struct {
	Draft          Draft   `json:"draft"`
	Normalized     string  `json:"normalized"`
	Scores         Scores  `json:"scores"`
	Matches        []Match `json:"matches,omitempty"`
	TitleFallback  bool    `json:"title_fallback,omitempty"` // title came from the first sentence as a whole
	LexiconVersion string  `json:"lexicon_version"`
}

// Result is the outcome of one input in a batch. Exactly one of Draft or Err
// is meaningful.
type Result struct {
	Draft Draft
	Err   error
}

func draftFromModel(d model.Draft) Draft {
	return Draft{Title: d.Title, Priority: d.Priority}
}

func analysisFromModel(a model.Analysis) Analysis {
	var matches []Match
	for _, m := range a.Matches {
		matches = append(matches, Match{
			Phrase:   m.Phrase,
			Priority: m.Priority,
			Strength: m.Strength,
			Start:    m.Start,
			End:      m.End,
		})
	}
	return Analysis{
		Draft:          draftFromModel(a.Draft),
		Normalized:     a.Normalized,
		Scores:         Scores(a.Scores),
		Matches:        matches,
		TitleFallback:  a.TitleFallback,
		LexiconVersion: a.LexiconVersion,
	}
}
