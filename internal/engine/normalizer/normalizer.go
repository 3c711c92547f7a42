package normalizer

import (
	"errors"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// ErrEmptyInput is returned when the input has no content after trimming.
var ErrEmptyInput = errors.New("empty input")

// Result is the canonical form of an intake input.
type Result struct {
	// Normalized is NFKC-folded, lowercased, whitespace-collapsed text with
	// sentence-terminal punctuation removed. Used for cue matching.
	Normalized string
	// Sentences are the original-case sentence spans, in order. Used for titles.
	Sentences []string
}

// abbreviations end in a period but do not end a sentence.
var abbreviations = map[string]bool{
	"e.g.": true, "i.e.": true, "etc.": true, "vs.": true, "approx.": true,
	"mr.": true, "mrs.": true, "ms.": true, "dr.": true, "st.": true,
}

// Normalize canonicalizes raw input for matching while keeping the original
// sentences for title extraction. Input consisting only of whitespace and
// punctuation is rejected with ErrEmptyInput.
func Normalize(raw string) (Result, error) {
	if strings.TrimSpace(raw) == "" {
		return Result{}, ErrEmptyInput
	}
	normalized := Fold(raw)
	if normalized == "" {
		return Result{}, ErrEmptyInput
	}
	return Result{Normalized: normalized, Sentences: Sentences(raw)}, nil
}

// Fold returns the matching form of s. Fold is idempotent.
func Fold(s string) string {
	s = norm.NFKC.String(s)
	// A Caser holds state, so one is created per call.
	s = cases.Lower(language.Und).String(s)

	fields := strings.Fields(s)
	out := fields[:0]
	for _, f := range fields {
		f = strings.TrimRightFunc(f, isTerminator)
		if f != "" {
			out = append(out, f)
		}
	}
	return strings.TrimFunc(strings.Join(out, " "), isEdge)
}

// Sentences splits raw text into original-case sentences. Line breaks and
// words ending in terminal punctuation end a sentence. Whitespace inside a
// sentence is collapsed and the terminal punctuation dropped. Sentences with
// no content once folded are omitted.
func Sentences(raw string) []string {
	var (
		sentences []string
		cur       []string
	)
	flush := func() {
		if len(cur) == 0 {
			return
		}
		s := strings.Join(cur, " ")
		cur = cur[:0]
		if Fold(s) != "" {
			sentences = append(sentences, s)
		}
	}

	for _, line := range strings.FieldsFunc(raw, isLineBreak) {
		for _, word := range strings.Fields(line) {
			if endsSentence(word) {
				if w := strings.TrimRightFunc(word, isTerminator); w != "" {
					cur = append(cur, w)
				}
				flush()
				continue
			}
			cur = append(cur, word)
		}
		flush()
	}
	return sentences
}

func endsSentence(word string) bool {
	r := lastRune(word)
	if r != '.' && r != '!' && r != '?' && r != '…' && r != '。' && r != '！' && r != '？' {
		return false
	}
	return !abbreviations[strings.ToLower(word)]
}

func lastRune(s string) rune {
	var last rune
	for _, r := range s {
		last = r
	}
	return last
}

func isTerminator(r rune) bool {
	switch r {
	case '.', '!', '?', ';', '…', '。', '！', '？', '；':
		return true
	}
	return false
}

func isEdge(r rune) bool {
	return unicode.IsPunct(r) || unicode.IsSpace(r)
}

func isLineBreak(r rune) bool {
	return r == '\n' || r == '\r' || r == '\u2028' || r == '\u2029'
}
