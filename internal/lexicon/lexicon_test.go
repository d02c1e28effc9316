package lexicon

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kohljary/driftwatch/internal/model"
)

func TestStandard_CoversEveryCategory(t *testing.T) {
	c := Standard()
	require.Len(t, c.Contexts, len(model.Categories))
	for i, cat := range c.Contexts {
		assert.Equal(t, model.Categories[i], cat.Context)
		assert.NotEmpty(t, cat.Patterns, "category %s has no signals", cat.Context)
	}
	assert.NotEmpty(t, c.Hedging)
	assert.NotEmpty(t, c.Elaboration)
}

func TestFamily_Count(t *testing.T) {
	c := Standard()
	assert.Equal(t, 2, c.IThink.Count("i think so. i think not."))
	assert.Equal(t, 0, c.IThink.Count("i thinking"))
	assert.Equal(t, 3, c.Hedging.Count("perhaps it might, maybe."))
	assert.Equal(t, 1, c.Experience.Count("what it’s like"))
	assert.True(t, c.Examples.Any("consider, for example, this"))
	assert.False(t, c.Examples.Any("nothing here"))
}

func TestParse_OverridesOnlyGivenTables(t *testing.T) {
	l, err := Parse([]byte(`
contexts:
  research:
    - '\barxiv\b'
markers:
  hedging:
    - '\bkinda\b'
`))
	require.NoError(t, err)
	assert.Equal(t, []string{`\barxiv\b`}, l.Contexts[model.ContextResearch])
	assert.Equal(t, Default().Contexts[model.ContextTechnical], l.Contexts[model.ContextTechnical])
	assert.Equal(t, []string{`\bkinda\b`}, l.Markers.Hedging)
	assert.Equal(t, Default().Markers.Certainty, l.Markers.Certainty)

	c, err := l.Compile()
	require.NoError(t, err)
	assert.Equal(t, 1, c.Hedging.Count("it is kinda odd"))
}

func TestCompile_Rejects(t *testing.T) {
	_, err := Lexicon{Contexts: map[model.ContextCategory][]string{model.ContextUnknown: {"x"}}}.Compile()
	assert.Error(t, err)

	_, err = Lexicon{Contexts: map[model.ContextCategory][]string{"gossip": {"x"}}}.Compile()
	assert.Error(t, err)

	_, err = Lexicon{Markers: Markers{Nuance: []string{"(unclosed"}}}.Compile()
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	l, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), l)

	c, err := LoadFile("")
	require.NoError(t, err)
	assert.Same(t, Standard(), c)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestEncodeRoundTrip(t *testing.T) {
	data, err := Default().Encode()
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "lexicon.yaml")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	l, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Default(), l)
}
