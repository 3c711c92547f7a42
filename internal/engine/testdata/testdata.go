package testdata

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/crimson-sun/intake/internal/model"
)

//go:embed corpus.json
var corpusJSON []byte

// CorpusEntry is a labelled task description with the draft it must produce.
type CorpusEntry struct {
	Raw              string         `json:"raw"`
	ExpectedTitle    string         `json:"expected_title"`
	ExpectedPriority model.Priority `json:"expected_priority"`
	Description      string         `json:"description"`
}

// Draft returns the expected draft.
func (e CorpusEntry) Draft() model.Draft {
	return model.Draft{Title: e.ExpectedTitle, Priority: e.ExpectedPriority}
}

// LoadCorpus decodes the embedded corpus. Priorities are parsed strictly, so
// a mislabelled entry fails here rather than in the test that uses it.
func LoadCorpus() ([]CorpusEntry, error) {
	var entries []CorpusEntry
	if err := json.Unmarshal(corpusJSON, &entries); err != nil {
		return nil, fmt.Errorf("corpus: %w", err)
	}
	return entries, nil
}

// CountByPriority tallies entries per expected priority.
func CountByPriority(entries []CorpusEntry) map[model.Priority]int {
	counts := make(map[model.Priority]int, len(model.Priorities))
	for _, e := range entries {
		counts[e.ExpectedPriority]++
	}
	return counts
}
