package priority

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/crimson-sun/intake/internal/engine/lexicon"
	"github.com/crimson-sun/intake/internal/model"
)

// Result holds the outcome of scoring normalized text against the lexicon.
type Result struct {
	Priority model.Priority
	Scores   model.Scores
	Matches  []model.CueMatch // ordered by position
}

// Extractor infers urgency from cue phrases.
type Extractor struct {
	lexicon *lexicon.Lexicon
}

// New creates an Extractor backed by the given lexicon.
func New(lex *lexicon.Lexicon) *Extractor {
	return &Extractor{lexicon: lex}
}

// Extract scans normalized text for every lexicon cue and resolves a priority.
// All cues are checked and every occurrence adds its strength to its level.
// An occurrence lying inside a longer matched cue is not counted, so
// "not urgent" is Low evidence only. Extract never fails: with no evidence,
// or with High and Low exactly balanced, the result is Med.
func (e *Extractor) Extract(normalized string) Result {
	var matches []model.CueMatch
	// Entries come longest first, so containing cues are accepted before
	// the cues they contain.
	for _, entry := range e.lexicon.Entries() {
		for _, span := range findAll(normalized, entry.Phrase) {
			if covered(matches, span) {
				continue
			}
			matches = append(matches, model.CueMatch{
				Phrase:   entry.Phrase,
				Priority: entry.Priority,
				Strength: entry.Strength,
				Start:    span[0],
				End:      span[1],
			})
		}
	}
	sort.Slice(matches, func(i, j int) bool {
		return matches[i].Start < matches[j].Start
	})

	var scores model.Scores
	for _, m := range matches {
		scores.Add(m.Priority, m.Strength)
	}
	return Result{Priority: Resolve(scores), Scores: scores, Matches: matches}
}

// Resolve picks the winning priority. The stronger of High and Low wins;
// a tie (including no evidence at all) is Med. Med cues only ever confirm
// the neutral outcome and never outweigh a High or Low cue.
func Resolve(s model.Scores) model.Priority {
	switch {
	case s.High > s.Low:
		return model.High
	case s.Low > s.High:
		return model.Low
	default:
		return model.Med
	}
}

// findAll returns the byte spans of every whole-word occurrence of phrase in text.
func findAll(text, phrase string) [][2]int {
	if phrase == "" {
		return nil
	}
	var spans [][2]int
	for off := 0; off < len(text); {
		i := strings.Index(text[off:], phrase)
		if i < 0 {
			break
		}
		start := off + i
		end := start + len(phrase)
		if atBoundary(text, start, end) {
			spans = append(spans, [2]int{start, end})
			off = end
			continue
		}
		_, size := utf8.DecodeRuneInString(text[start:])
		off = start + size
	}
	return spans
}

func atBoundary(text string, start, end int) bool {
	if start > 0 {
		r, _ := utf8.DecodeLastRuneInString(text[:start])
		if isWordRune(r) {
			return false
		}
	}
	if end < len(text) {
		r, _ := utf8.DecodeRuneInString(text[end:])
		if isWordRune(r) {
			return false
		}
	}
	return true
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsMark(r) || r == '_'
}

func covered(matches []model.CueMatch, span [2]int) bool {
	for _, m := range matches {
		if m.Start <= span[0] && span[1] <= m.End {
			return true
		}
	}
	return false
}
