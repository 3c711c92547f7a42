package metrics

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crimson-sun/intake/internal/model"
)

func export(t *testing.T, m *Metrics) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "intake.prom")
	require.NoError(t, m.WriteTextfile(path))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestZeroSeriesExported(t *testing.T) {
	out := export(t, New())

	assert.Contains(t, out, `intake_drafts_total{priority="Low"} 0`)
	assert.Contains(t, out, `intake_drafts_total{priority="Med"} 0`)
	assert.Contains(t, out, `intake_drafts_total{priority="High"} 0`)
	assert.Contains(t, out, "intake_input_runes_count 0")
}

func TestObserve(t *testing.T) {
	m := New()
	m.ObserveDraft(model.High)
	m.ObserveDraft(model.High)
	m.ObserveDraft(model.Low)
	m.ObserveFailure("empty_input")
	m.ObserveInput("日本語")
	m.ObserveInput("Fix the urgent login bug ASAP")

	out := export(t, m)
	assert.Contains(t, out, `intake_drafts_total{priority="High"} 2`)
	assert.Contains(t, out, `intake_drafts_total{priority="Low"} 1`)
	assert.Contains(t, out, `intake_failures_total{kind="empty_input"} 1`)
	assert.Contains(t, out, "intake_input_runes_count 2")
	assert.Contains(t, out, "intake_input_runes_sum 32")
	assert.Contains(t, out, `intake_input_runes_bucket{le="10"} 1`)
}

func TestRegistriesAreIndependent(t *testing.T) {
	a, b := New(), New()
	a.ObserveDraft(model.Med)

	assert.Contains(t, export(t, b), `intake_drafts_total{priority="Med"} 0`)
	assert.NotSame(t, a.Registry(), b.Registry())
}
