package prompt

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltinsRegistered(t *testing.T) {
	r := NewRegistry()
	pt, err := r.GetPrompt(ComparableSelection)
	require.NoError(t, err)
	assert.Contains(t, pt.SystemPrompt, "selected_ids")
	assert.Same(t, Get(), Get())

	_, err = r.GetPrompt("missing")
	assert.Error(t, err)
}

func TestLoadFromDirectoryOverrides(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "comparables"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "comparables", "selection.hjson"), []byte(`{
		# local wording
		system_prompt: Pick the best sales.
		user_prompt_template: "{{.Limit}}"
	}`), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0644))

	r := NewRegistry()
	n, err := LoadFromDirectory(r, dir)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, 1, r.Count())

	pt, err := r.GetPrompt(ComparableSelection)
	require.NoError(t, err)
	assert.Equal(t, "Pick the best sales.", pt.SystemPrompt)
	assert.Equal(t, "comparables", pt.Category)

	out, err := RenderUserPrompt(pt, map[string]int{"Limit": 3})
	require.NoError(t, err)
	assert.Equal(t, "3", out)

	_, err = LoadFromDirectory(r, filepath.Join(dir, "absent"))
	assert.Error(t, err)
}

func TestRenderBuiltinSelection(t *testing.T) {
	pt, err := NewRegistry().GetPrompt(ComparableSelection)
	require.NoError(t, err)

	type subject struct {
		Name, Address, Classification, Extent string
		ConstructionItems                     []string
	}
	out, err := RenderUserPrompt(pt, map[string]interface{}{
		"Subject":    subject{Name: "Erf 12", Classification: "Residential", Extent: "500", ConstructionItems: []string{"brick", "tile roof"}},
		"Limit":      2,
		"Candidates": "[]",
	})
	require.NoError(t, err)
	assert.Contains(t, out, "SUBJECT: Erf 12")
	assert.Contains(t, out, "Construction: brick; tile roof")
	assert.Contains(t, out, "Select at most 2 candidates.")
	assert.Contains(t, out, "CANDIDATES:\n[]")
}
