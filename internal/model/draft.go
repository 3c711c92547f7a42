package model

// Draft is the classifier's output: a suggested task title and priority.
// Field names match the task-creation request the caller copies them into.
type Draft struct {
	Title    string   `json:"title"`
	Priority Priority `json:"priority"`
}

// CueMatch is one occurrence of a lexicon cue in normalized text.
type CueMatch struct {
	Phrase   string   `json:"phrase"`
	Priority Priority `json:"priority"`
	Strength int      `json:"strength"`
	Start    int      `json:"start"` // byte offset into the normalized text
	End      int      `json:"end"`
}

// Scores holds the accumulated cue strength per priority level.
type Scores struct {
	Low  int `json:"low"`
	Med  int `json:"med"`
	High int `json:"high"`
}

// Add accumulates strength toward the given priority.
func (s *Scores) Add(p Priority, strength int) {
	switch p {
	case Low:
		s.Low += strength
	case Med:
		s.Med += strength
	case High:
		s.High += strength
	}
}

// Analysis is a Draft together with the evidence that produced it.
type Analysis struct {
	Draft
	Normalized     string     `json:"normalized"`
	Scores         Scores     `json:"scores"`
	Matches        []CueMatch `json:"matches,omitempty"`
	TitleFallback  bool       `json:"title_fallback,omitempty"`
	LexiconVersion string     `json:"lexicon_version"`
}
