package engine

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crimson-sun/intake/internal/engine/lexicon"
	"github.com/crimson-sun/intake/internal/engine/priority"
	"github.com/crimson-sun/intake/internal/engine/testdata"
	"github.com/crimson-sun/intake/internal/engine/title"
	"github.com/crimson-sun/intake/internal/model"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	return NewDefault(lexicon.Default(), slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)))
}

func TestClassifyScenarios(t *testing.T) {
	eng := newTestEngine(t)

	tests := []struct {
		in   string
		want model.Draft
	}{
		{"Fix the urgent login bug ASAP", model.Draft{Title: "Fix the login bug", Priority: model.High}},
		{"Update documentation later this week", model.Draft{Title: "Update documentation later this week", Priority: model.Low}},
		{"Refactor the billing module", model.Draft{Title: "Refactor the billing module", Priority: model.Med}},
		{"ASAP", model.Draft{Title: "Asap", Priority: model.High}},
		{"Please fix the urgent server outage immediately, then later review logs whenever", model.Draft{Title: "Fix the server outage", Priority: model.Med}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := eng.Classify(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClassifyEmpty(t *testing.T) {
	eng := newTestEngine(t)
	for _, in := range []string{"", "   ", "\n\t", "?!"} {
		_, err := eng.Classify(in)
		assert.ErrorIs(t, err, ErrEmptyInput, "input %q", in)
	}
}

func TestCorpus(t *testing.T) {
	entries, err := testdata.LoadCorpus()
	require.NoError(t, err)

	eng := newTestEngine(t)
	for _, e := range entries {
		t.Run(e.Description, func(t *testing.T) {
			got, err := eng.Classify(e.Raw)
			require.NoError(t, err)
			assert.Equal(t, e.Draft(), got)
		})
	}
}

func TestAnalyzeEvidence(t *testing.T) {
	eng := newTestEngine(t)

	a, err := eng.Analyze("Fix the urgent login bug ASAP")
	require.NoError(t, err)
	assert.Equal(t, "fix the urgent login bug asap", a.Normalized)
	assert.Equal(t, model.Scores{High: 6}, a.Scores)
	require.Len(t, a.Matches, 2)
	assert.Equal(t, "urgent", a.Matches[0].Phrase)
	assert.Equal(t, "asap", a.Matches[1].Phrase)
	assert.False(t, a.TitleFallback)
	assert.Equal(t, lexicon.DefaultVersion, a.LexiconVersion)

	a, err = eng.Analyze("ASAP")
	require.NoError(t, err)
	assert.True(t, a.TitleFallback)
}

func TestDeterminism(t *testing.T) {
	eng := newTestEngine(t)
	inputs := []string{
		"Fix the urgent login bug ASAP",
		"   ",
		"soon soon later urgent",
		strings.Repeat("migrate the tables ", 30),
	}
	for _, in := range inputs {
		a1, err1 := eng.Classify(in)
		a2, err2 := eng.Classify(in)
		assert.Equal(t, a1, a2)
		assert.Equal(t, err1, err2)
	}
}

func TestTitleBoundedness(t *testing.T) {
	eng := newTestEngine(t)
	inputs := []string{
		strings.Repeat("refactor ", 100),
		strings.Repeat("x", 500),
		strings.Repeat("日本語 ", 80),
		"a",
		"ASAP " + strings.Repeat("later ", 50),
	}
	for _, in := range inputs {
		d, err := eng.Classify(in)
		require.NoError(t, err)
		n := utf8.RuneCountInString(d.Title)
		assert.Greater(t, n, 0)
		assert.LessOrEqual(t, n, title.MaxRunes)
		assert.NotEqual(t, in, d.Title)
	}
}

func TestInvariantViolationLogged(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	lex := lexicon.Default()
	// A title extractor bounded above MaxRunes cannot be built through New,
	// so the check is exercised directly.
	eng := New(lex, priority.New(lex), title.New(lex, title.MaxRunes), logger)

	err := eng.check("raw input", model.Draft{Title: "  ", Priority: model.High})
	var iv *InvariantViolationError
	require.ErrorAs(t, err, &iv)
	assert.Equal(t, "empty title", iv.Reason)
	assert.Equal(t, "raw input", iv.Input)
	assert.Equal(t, "could not process input", err.Error())
	assert.Contains(t, buf.String(), "intake invariant violated")
	assert.Contains(t, buf.String(), "raw input")

	err = eng.check("x", model.Draft{Title: "ok", Priority: model.Priority(7)})
	require.ErrorAs(t, err, &iv)
	assert.Equal(t, "priority out of range", iv.Reason)

	err = eng.check("x", model.Draft{Title: strings.Repeat("a", title.MaxRunes+1), Priority: model.Low})
	require.ErrorAs(t, err, &iv)
	assert.Equal(t, "title exceeds bound", iv.Reason)

	assert.NoError(t, eng.check("x", model.Draft{Title: "Fine", Priority: model.Med}))
}

func TestConcurrentClassify(t *testing.T) {
	eng := newTestEngine(t)

	var wg sync.WaitGroup
	errs := make(chan error, 64)
	for i := 0; i < 64; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			d, err := eng.Classify(fmt.Sprintf("Fix the urgent bug %d ASAP", i))
			if err != nil {
				errs <- err
				return
			}
			if d.Priority != model.High || d.Title != fmt.Sprintf("Fix the bug %d", i) {
				errs <- fmt.Errorf("unexpected draft %+v", d)
			}
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Error(err)
	}
}

func TestAnalyzeBatchPreservesOrder(t *testing.T) {
	eng := newTestEngine(t)
	inputs := []string{"Fix the urgent login bug ASAP", "", "Refactor the billing module", "someday: plant trees"}

	out, err := eng.AnalyzeBatch(context.Background(), inputs, 2)
	require.NoError(t, err)
	require.Len(t, out, len(inputs))

	assert.Equal(t, "Fix the login bug", out[0].Analysis.Title)
	assert.ErrorIs(t, out[1].Err, ErrEmptyInput)
	assert.Equal(t, model.Med, out[2].Analysis.Priority)
	assert.Equal(t, model.Low, out[3].Analysis.Priority)
}

func TestAnalyzeBatchCancelled(t *testing.T) {
	eng := newTestEngine(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := eng.AnalyzeBatch(ctx, []string{"a", "b"}, 1)
	assert.ErrorIs(t, err, context.Canceled)
}
