package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type selection struct {
	SelectedIDs []string `json:"selected_ids"`
	Rationale   string   `json:"rationale"`
}

func TestDecodeLenientStandard(t *testing.T) {
	var s selection
	require.NoError(t, DecodeLenient(`{"selected_ids":["a","b"],"rationale":"close"}`, &s))
	assert.Equal(t, []string{"a", "b"}, s.SelectedIDs)
}

func TestDecodeLenientFencedAndTrailingComma(t *testing.T) {
	var s selection
	in := "```json\n{\"selected_ids\": [\"a\", \"b\",], \"rationale\": \"ok\",}\n```"
	require.NoError(t, DecodeLenient(in, &s))
	assert.Equal(t, []string{"a", "b"}, s.SelectedIDs)
	assert.Equal(t, "ok", s.Rationale)
}

func TestDecodeLenientHjson(t *testing.T) {
	var s selection
	in := `
# chosen by extent
selected_ids: ["x"]
rationale: nearest extent
`
	require.NoError(t, DecodeLenient(in, &s))
	assert.Equal(t, []string{"x"}, s.SelectedIDs)
	assert.Equal(t, "nearest extent", s.Rationale)
}

func TestDecodeLenientRepairsTruncated(t *testing.T) {
	var s selection
	require.NoError(t, DecodeLenient(`{"selected_ids": ["a", "b"`, &s))
	assert.Equal(t, []string{"a", "b"}, s.SelectedIDs)
}

func TestStripCodeFence(t *testing.T) {
	assert.Equal(t, `{"a":1}`, StripCodeFence("```json\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, StripCodeFence(`{"a":1}`))
}
