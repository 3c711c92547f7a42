package intake

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newIntake(t *testing.T, opts ...Option) *Intake {
	t.Helper()
	in, err := New(opts...)
	require.NoError(t, err)
	return in
}

func TestClassify(t *testing.T) {
	in := newIntake(t)

	tests := []struct {
		text string
		want Draft
	}{
		{"Fix the urgent login bug ASAP", Draft{"Fix the login bug", High}},
		{"Update documentation later this week", Draft{"Update documentation later this week", Low}},
		{"Refactor the billing module", Draft{"Refactor the billing module", Med}},
		{"ASAP", Draft{"Asap", High}},
		{"Please fix the urgent server outage immediately, then later review logs whenever", Draft{"Fix the server outage", Med}},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got, err := in.Classify(tt.text)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClassifyEmptyInput(t *testing.T) {
	in := newIntake(t)
	for _, text := range []string{"", "   ", "\t\n"} {
		_, err := in.Classify(text)
		assert.ErrorIs(t, err, ErrEmptyInput)
		assert.Equal(t, KindEmptyInput, KindOf(err))
	}
}

func TestMaxInputRunes(t *testing.T) {
	in := newIntake(t)
	_, err := in.Classify(strings.Repeat("a ", 1001))
	assert.ErrorIs(t, err, ErrInputTooLong)
	assert.Equal(t, KindInputTooLong, KindOf(err))

	in = newIntake(t, WithMaxInputRunes(0))
	d, err := in.Classify(strings.Repeat("migrate ", 500))
	require.NoError(t, err)
	assert.LessOrEqual(t, len([]rune(d.Title)), 120)

	in = newIntake(t, WithMaxInputRunes(4))
	_, err = in.Explain("hello")
	assert.ErrorIs(t, err, ErrInputTooLong)
}

func TestNewRejectsBadOptions(t *testing.T) {
	_, err := New(WithMaxInputRunes(-1))
	assert.Error(t, err)
	_, err = New(WithConcurrency(0))
	assert.Error(t, err)
}

func TestExplain(t *testing.T) {
	in := newIntake(t)
	a, err := in.Explain("Fix the urgent login bug ASAP")
	require.NoError(t, err)

	assert.Equal(t, Draft{"Fix the login bug", High}, a.Draft)
	assert.Equal(t, "fix the urgent login bug asap", a.Normalized)
	assert.Equal(t, Scores{High: 6}, a.Scores)
	require.Len(t, a.Matches, 2)
	assert.Equal(t, Match{Phrase: "urgent", Priority: High, Strength: 3, Start: 8, End: 14}, a.Matches[0])
	assert.Equal(t, "asap", a.Matches[1].Phrase)
	assert.False(t, a.TitleFallback)
	assert.Equal(t, in.LexiconVersion(), a.LexiconVersion)
}

func TestDraftJSON(t *testing.T) {
	in := newIntake(t)
	d, err := in.Classify("Fix the urgent login bug ASAP")
	require.NoError(t, err)

	data, err := json.Marshal(d)
	require.NoError(t, err)
	assert.JSONEq(t, `{"title":"Fix the login bug","priority":"High"}`, string(data))

	var back Draft
	require.NoError(t, json.Unmarshal([]byte(`{"title":"x","priority":"Med"}`), &back))
	assert.Equal(t, Med, back.Priority)
}

func TestClassifyBatchMatchesIndividual(t *testing.T) {
	in := newIntake(t, WithMaxInputRunes(40), WithConcurrency(2))
	texts := []string{
		"Fix the urgent login bug ASAP",
		"",
		"Refactor the billing module",
		strings.Repeat("too long ", 10),
		"no rush: clean up the wiki",
	}

	results, err := in.ClassifyBatch(context.Background(), texts)
	require.NoError(t, err)
	require.Len(t, results, len(texts))

	for i, text := range texts {
		want, wantErr := in.Classify(text)
		if wantErr != nil {
			assert.Equal(t, KindOf(wantErr), KindOf(results[i].Err), "input %d", i)
			continue
		}
		require.NoError(t, results[i].Err, "input %d", i)
		assert.Equal(t, want, results[i].Draft, "input %d", i)
	}
	assert.ErrorIs(t, results[1].Err, ErrEmptyInput)
	assert.ErrorIs(t, results[3].Err, ErrInputTooLong)
}

func TestClassifyBatchCancelled(t *testing.T) {
	in := newIntake(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := in.ClassifyBatch(ctx, []string{"a"})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestConcurrentClassify(t *testing.T) {
	in := newIntake(t)
	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			d, err := in.Classify(fmt.Sprintf("someday: water plant %d", i))
			assert.NoError(t, err)
			assert.Equal(t, Low, d.Priority)
		}(i)
	}
	wg.Wait()
}

func TestWithLexicon(t *testing.T) {
	in := newIntake(t, WithLexicon("team-1", []Cue{
		{Phrase: "P0", Priority: High, Strength: 5},
		{Phrase: "icebox", Priority: Low, Strength: 5},
	}))
	assert.Equal(t, "team-1", in.LexiconVersion())

	d, err := in.Classify("Restore backups P0")
	require.NoError(t, err)
	assert.Equal(t, Draft{"Restore backups", High}, d)

	// Built-in cues are gone.
	d, err = in.Classify("Fix the login bug ASAP")
	require.NoError(t, err)
	assert.Equal(t, Med, d.Priority)

	_, err = New(WithLexicon("empty", []Cue{}))
	assert.Error(t, err)
	_, err = New(WithLexicon("bad", []Cue{{Phrase: "x", Priority: High, Strength: 0}}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "strength")
}

func TestWithLexiconFileRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, newIntake(t).DumpLexicon(&buf))

	path := filepath.Join(t.TempDir(), "lexicon.yaml")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))

	in := newIntake(t, WithLexiconFile(path))
	assert.Equal(t, newIntake(t).Lexicon(), in.Lexicon())

	_, err := New(WithLexiconFile(filepath.Join(t.TempDir(), "missing.yaml")))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLexiconIsCopy(t *testing.T) {
	in := newIntake(t)
	cues := in.Lexicon()
	require.NotEmpty(t, cues)
	cues[0].Phrase = "mutated"
	assert.NotEqual(t, "mutated", in.Lexicon()[0].Phrase)
}

func TestWithLoggerReceivesNothingOnSuccess(t *testing.T) {
	var buf bytes.Buffer
	in := newIntake(t, WithLogger(slog.New(slog.NewTextHandler(&buf, nil))))
	_, err := in.Classify("Refactor the billing module")
	require.NoError(t, err)
	assert.Empty(t, buf.String())
}

func TestParsePriority(t *testing.T) {
	p, err := ParsePriority("medium")
	require.NoError(t, err)
	assert.Equal(t, Med, p)
	_, err = ParsePriority("urgent")
	assert.Error(t, err)
}
