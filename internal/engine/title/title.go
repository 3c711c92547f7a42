package title

import (
	"errors"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/crimson-sun/intake/internal/engine/lexicon"
	"github.com/crimson-sun/intake/internal/engine/normalizer"
	"github.com/crimson-sun/intake/internal/model"
)

const (
	// MaxRunes bounds every title.
	MaxRunes = 120
	// FallbackRunes bounds a title recovered from the normalized input.
	FallbackRunes = 60
)

// ErrUnextractable is returned when no title text remains after stripping.
var ErrUnextractable = errors.New("no title could be extracted")

// fillers are discourse openers removed from the very start of a title.
var fillers = [][]string{
	{"please"}, {"pls"}, {"kindly"},
	{"can", "you"}, {"could", "you"}, {"would", "you"},
	{"we", "need", "to"}, {"i", "need", "to"}, {"need", "to"},
	{"we", "should"}, {"you", "should"},
	{"remember", "to"}, {"don't", "forget", "to"},
}

// connectives introduce a follow-on action after a comma.
var connectives = [][]string{
	{"then"}, {"and", "then"}, {"after", "that"}, {"afterwards"},
	{"also"}, {"and", "also"}, {"plus"},
}

// Extractor derives a short title from the first sentence of an input.
type Extractor struct {
	entries  []lexicon.Entry // longest first
	maxRunes int
}

// New creates an Extractor. maxRunes outside (0, MaxRunes] means MaxRunes.
func New(lex *lexicon.Lexicon, maxRunes int) *Extractor {
	if maxRunes <= 0 || maxRunes > MaxRunes {
		maxRunes = MaxRunes
	}
	return &Extractor{entries: lex.Entries(), maxRunes: maxRunes}
}

// Extract builds a title from original-case sentences:
//
//  1. the first clause of the first sentence is the candidate
//  2. inline modifier cues (strip mode "anywhere") are removed
//  3. leading fillers ("please", "can you", ...) are removed
//  4. High/Low cues at the very end are removed, repeatedly
//  5. edge punctuation is trimmed, the result truncated at a word boundary
//     and the first letter capitalised
//
// Cues in the middle of the candidate stay in the title. ErrUnextractable is
// returned when nothing is left.
func (e *Extractor) Extract(sentences []string) (string, error) {
	if len(sentences) == 0 {
		return "", ErrUnextractable
	}
	words := firstClause(strings.Fields(sentences[0]))
	words = e.stripInline(words)
	words = stripFillers(words)
	words = e.stripTrailing(words)

	t := strings.TrimFunc(strings.Join(words, " "), isEdge)
	if t == "" {
		return "", ErrUnextractable
	}
	return Capitalize(Truncate(t, e.maxRunes)), nil
}

// Fallback recovers a title from the input's first sentence in normalized
// form, bounded to FallbackRunes. Used when Extract strips everything, e.g.
// when the input is only a cue phrase.
func (e *Extractor) Fallback(sentences []string, normalized string) (string, error) {
	src := normalized
	if len(sentences) > 0 {
		if f := normalizer.Fold(sentences[0]); f != "" {
			src = f
		}
	}
	limit := FallbackRunes
	if e.maxRunes < limit {
		limit = e.maxRunes
	}
	t := strings.TrimFunc(src, isEdge)
	if t == "" {
		return "", ErrUnextractable
	}
	return Capitalize(Truncate(t, limit)), nil
}

// Truncate shortens s to at most maxRunes runes, cutting at the last word
// boundary. A single word longer than maxRunes is cut at the rune limit.
// No ellipsis is appended.
func Truncate(s string, maxRunes int) string {
	if utf8.RuneCountInString(s) <= maxRunes {
		return s
	}
	cut := 0
	for i := range s {
		if maxRunes == 0 {
			cut = i
			break
		}
		maxRunes--
	}
	prefix := s[:cut]
	next, _ := utf8.DecodeRuneInString(s[cut:])
	if !unicode.IsSpace(next) {
		if i := strings.LastIndexFunc(prefix, unicode.IsSpace); i > 0 {
			prefix = prefix[:i]
		}
	}
	return strings.TrimRightFunc(prefix, isEdge)
}

// Capitalize upper-cases the first rune of s.
func Capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToTitle(r)) + s[size:]
}

func firstClause(words []string) []string {
	for i, w := range words {
		last, _ := utf8.DecodeLastRuneInString(w)
		switch {
		case last == ';' || last == '；':
			return append(words[:i:i], strings.TrimRight(w, ";；"))
		case last == ',' && startsWithAny(keys(words[i+1:]), connectives) > 0:
			return words[:i+1]
		}
	}
	return words
}

func (e *Extractor) stripInline(words []string) []string {
	k := keys(words)
	claimed := make([]*lexicon.Entry, len(words))
	for ei := range e.entries {
		entry := &e.entries[ei]
		n := len(entry.Tokens)
		for i := 0; i+n <= len(k); i++ {
			if free(claimed[i:i+n]) && equal(k[i:i+n], entry.Tokens) {
				for j := i; j < i+n; j++ {
					claimed[j] = entry
				}
				i += n - 1
			}
		}
	}

	out := make([]string, 0, len(words))
	for i, w := range words {
		if claimed[i] != nil && claimed[i].Strip == model.StripAnywhere {
			continue
		}
		out = append(out, w)
	}
	return out
}

func stripFillers(words []string) []string {
	for {
		n := startsWithAny(keys(words), fillers)
		if n == 0 {
			return words
		}
		words = words[n:]
	}
}

func (e *Extractor) stripTrailing(words []string) []string {
	for {
		for len(words) > 0 && key(words[len(words)-1]) == "" {
			words = words[:len(words)-1]
		}
		k := keys(words)
		stripped := false
		for _, entry := range e.entries {
			if entry.Strip == model.StripNever {
				continue
			}
			n := len(entry.Tokens)
			if n <= len(k) && equal(k[len(k)-n:], entry.Tokens) {
				words = words[:len(words)-n]
				stripped = true
				break
			}
		}
		if !stripped {
			return words
		}
	}
}

// startsWithAny returns the length of the first phrase in phrases that
// prefixes k, or 0.
func startsWithAny(k []string, phrases [][]string) int {
	for _, p := range phrases {
		if len(p) <= len(k) && equal(k[:len(p)], p) {
			return len(p)
		}
	}
	return 0
}

func keys(words []string) []string {
	out := make([]string, len(words))
	for i, w := range words {
		out[i] = key(w)
	}
	return out
}

// key is the matching form of a single word.
func key(w string) string {
	return strings.ReplaceAll(normalizer.Fold(w), "’", "'")
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func free(claimed []*lexicon.Entry) bool {
	for _, c := range claimed {
		if c != nil {
			return false
		}
	}
	return true
}

func isEdge(r rune) bool {
	return unicode.IsPunct(r) || unicode.IsSpace(r)
}
