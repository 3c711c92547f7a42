package jsonl

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crimson-sun/intake/internal/source"
)

func read(t *testing.T, in string) ([]string, []string, error) {
	t.Helper()
	reqs, err := (&Source{}).Read(context.Background(), source.Config{Stdin: strings.NewReader(in)})
	var ids, inputs []string
	for _, r := range reqs {
		ids = append(ids, r.ID)
		inputs = append(inputs, r.Input)
	}
	return ids, inputs, err
}

func TestRead(t *testing.T) {
	in := `{"id":"t-1","input":"Fix the urgent login bug ASAP"}

{"input":"Refactor the billing module"}
{"id":"t-3","input":""}
`
	ids, inputs, err := read(t, in)
	require.NoError(t, err)
	require.Len(t, ids, 3)

	assert.Equal(t, "t-1", ids[0])
	_, err = uuid.Parse(ids[1])
	assert.NoError(t, err, "missing id is generated")
	assert.Equal(t, "t-3", ids[2])
	assert.Equal(t, []string{"Fix the urgent login bug ASAP", "Refactor the billing module", ""}, inputs)
}

func TestReadOrigins(t *testing.T) {
	reqs, err := (&Source{}).Read(context.Background(), source.Config{
		Stdin: strings.NewReader("\n{\"input\":\"a\"}\n"),
	})
	require.NoError(t, err)
	require.Len(t, reqs, 1)
	assert.Equal(t, "stdin:2", reqs[0].Origin)
	assert.Equal(t, "jsonl", reqs[0].Source)
}

func TestReadInvalidJSON(t *testing.T) {
	_, _, err := read(t, "{\"input\":\"ok\"}\nnot json\n")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "jsonl: stdin:2:")
}

func TestReadMissingInput(t *testing.T) {
	_, _, err := read(t, `{"id":"x","text":"wrong field"}`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `missing "input" field`)
}
