package manifest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	data := []byte(`{
		"meta": {"namespace": "acme", "author": "Acme Corp", "version": "1.2.0"},
		"addons": [
			{"name": "x", "live": {"styles": ["s.css"], "scripts": ["s.js"]}}
		],
		"themes": [
			{"name": "dark", "style": "dark.css"}
		]
	}`)

	m, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, "acme", m.Meta.Namespace)
	assert.Equal(t, "Acme Corp", m.Meta.Author)
	require.Len(t, m.Addons, 1)
	require.NotNil(t, m.Addons[0].Live)
	assert.Equal(t, []string{"s.css"}, m.Addons[0].Live.Styles)
	assert.Equal(t, []string{"s.js"}, m.Addons[0].Live.Scripts)
	require.Len(t, m.Themes, 1)
	assert.Equal(t, "dark.css", m.Themes[0].Style)
}

func TestParse_Invalid(t *testing.T) {
	_, err := Parse([]byte(`{not json`))
	require.Error(t, err)
	var perr *ParseError
	assert.ErrorAs(t, err, &perr)
}

func TestParseYAML(t *testing.T) {
	data := []byte(`
meta:
  namespace: acme
addons:
  - name: notes
    editor:
      scripts: [notes.js]
themes:
  - name: vanilla
    style: vanilla.css
`)
	m, err := ParseYAML(data)
	require.NoError(t, err)
	assert.Equal(t, "acme", m.Meta.Namespace)
	require.Len(t, m.Addons, 1)
	require.NotNil(t, m.Addons[0].Editor)
	assert.Equal(t, []string{"notes.js"}, m.Addons[0].Editor.Scripts)
}

func TestParseFile(t *testing.T) {
	dir := t.TempDir()

	jsonPath := filepath.Join(dir, "ext.json")
	require.NoError(t, os.WriteFile(jsonPath, []byte(`{"meta":{"namespace":"a"}}`), 0o600))
	m, err := ParseFile(jsonPath)
	require.NoError(t, err)
	assert.Equal(t, "a", m.Meta.Namespace)

	yamlPath := filepath.Join(dir, "ext.yaml")
	require.NoError(t, os.WriteFile(yamlPath, []byte("meta:\n  namespace: b\n"), 0o600))
	m, err = ParseFile(yamlPath)
	require.NoError(t, err)
	assert.Equal(t, "b", m.Meta.Namespace)

	_, err = ParseFile(filepath.Join(dir, "missing.json"))
	require.Error(t, err)
}

func TestParse_TolerantEntries(t *testing.T) {
	// Non-object entries and wrong-typed fields decode to zero values so the
	// rest of the batch survives; the zero entries are skipped at build time.
	data := []byte(`{
		"meta": {"namespace": "acme"},
		"addons": ["junk", {"name": "ok"}, {"name": 42}],
		"themes": [17, {"name": "dark", "style": "dark.css"}]
	}`)

	m, err := Parse(data)
	require.NoError(t, err)
	require.Len(t, m.Addons, 3)
	assert.Empty(t, m.Addons[0].Name)
	assert.Equal(t, "ok", m.Addons[1].Name)
	assert.Empty(t, m.Addons[2].Name)
	require.Len(t, m.Themes, 2)
	assert.Empty(t, m.Themes[0].Name)
	assert.Equal(t, "dark", m.Themes[1].Name)
}

func TestParse_TolerantHook(t *testing.T) {
	data := []byte(`{
		"meta": {"namespace": "acme"},
		"addons": [{"name": "x", "live": "not a hook"}]
	}`)

	m, err := Parse(data)
	require.NoError(t, err)
	require.Len(t, m.Addons, 1)
	assert.Equal(t, "x", m.Addons[0].Name)
	require.NotNil(t, m.Addons[0].Live)
	assert.True(t, m.Addons[0].Live.Empty())
}

func TestHookSpecEmpty(t *testing.T) {
	assert.True(t, HookSpec{}.Empty())
	assert.False(t, HookSpec{Styles: []string{"a.css"}}.Empty())
	assert.False(t, HookSpec{Scripts: []string{"a.js"}}.Empty())
}

func TestReport(t *testing.T) {
	r := &Report{Namespace: "acme"}
	assert.True(t, r.Clean())

	r.Skip(KindAddon, 2, "", "missing name")
	r.Skip(KindTheme, 0, "bare", "missing style")
	assert.False(t, r.Clean())
	require.Len(t, r.Skipped, 2)
	assert.Equal(t, "addon #2: missing name", r.Skipped[0].String())
	assert.Equal(t, "theme bare: missing style", r.Skipped[1].String())
}
