package lexicon

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/crimson-sun/intake/internal/engine/normalizer"
	"github.com/crimson-sun/intake/internal/model"
)

// Entry is a compiled lexicon cue. Phrase is in folded (normalized) form and
// Tokens holds its words.
type Entry struct {
	model.Cue
	Tokens []string
}

// Lexicon is an immutable, versioned table of priority cues.
// Safe for concurrent use.
type Lexicon struct {
	version string
	entries []Entry
}

// New compiles a lexicon from cue definitions. Phrases are folded the same
// way input text is, so "ASAP" and "asap" are the same cue. Cues without an
// explicit strip mode default to StripTrailing for High/Low and StripNever for Med.
func New(version string, cues []model.Cue) (*Lexicon, error) {
	if err := validate(toFile(version, cues)); err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(cues))
	entries := make([]Entry, 0, len(cues))
	for i, c := range cues {
		phrase := normalizer.Fold(c.Phrase)
		if phrase == "" {
			return nil, fmt.Errorf("lexicon: cues[%d]: phrase %q has no matchable content", i, c.Phrase)
		}
		if seen[phrase] {
			return nil, fmt.Errorf("lexicon: cues[%d]: duplicate phrase %q", i, phrase)
		}
		seen[phrase] = true

		c.Phrase = phrase
		if c.Strip == "" {
			c.Strip = defaultStrip(c.Priority)
		}
		entries = append(entries, Entry{Cue: c, Tokens: strings.Fields(phrase)})
	}

	// Longest phrases first so that containment resolution and title
	// stripping prefer "not urgent" over "urgent".
	sort.SliceStable(entries, func(i, j int) bool {
		if len(entries[i].Tokens) != len(entries[j].Tokens) {
			return len(entries[i].Tokens) > len(entries[j].Tokens)
		}
		return entries[i].Phrase < entries[j].Phrase
	})

	return &Lexicon{version: version, entries: entries}, nil
}

var defaultLexicon = sync.OnceValue(func() *Lexicon {
	l, err := New(DefaultVersion, DefaultCues())
	if err != nil {
		panic(fmt.Sprintf("lexicon: built-in cues are invalid: %v", err))
	}
	return l
})

// Default returns the built-in lexicon. It is compiled once per process.
func Default() *Lexicon {
	return defaultLexicon()
}

// Version returns the lexicon version string.
func (l *Lexicon) Version() string {
	return l.version
}

// Len returns the number of cues.
func (l *Lexicon) Len() int {
	return len(l.entries)
}

// Entries returns the compiled cues, longest phrase first.
// The returned slice is a copy; the Tokens slices must not be modified.
func (l *Lexicon) Entries() []Entry {
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Cues returns the cue definitions in compiled order.
func (l *Lexicon) Cues() []model.Cue {
	out := make([]model.Cue, len(l.entries))
	for i, e := range l.entries {
		out[i] = e.Cue
	}
	return out
}

// Strippable returns the entries a title extractor removes in the given mode.
func (l *Lexicon) Strippable(mode model.StripMode) []Entry {
	var out []Entry
	for _, e := range l.entries {
		if e.Strip == mode {
			out = append(out, e)
		}
	}
	return out
}

func defaultStrip(p model.Priority) model.StripMode {
	if p == model.Med {
		return model.StripNever
	}
	return model.StripTrailing
}
