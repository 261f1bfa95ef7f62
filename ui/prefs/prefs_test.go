package prefs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrefsRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs", "preferences.json")

	p := LoadFrom(path)
	p.SetString("lastDirectory", "/tmp/projects")
	p.SetInt("thumbnailSize", 96)
	p.SetBool("panelVisible", false)
	require.NoError(t, p.Save())

	q := LoadFrom(path)
	assert.Equal(t, "/tmp/projects", q.String("lastDirectory"))
	assert.Equal(t, 96, q.Int("thumbnailSize", 64))
	assert.False(t, q.Bool("panelVisible", true))
}

func TestPrefsDefaults(t *testing.T) {
	p := LoadFrom(filepath.Join(t.TempDir(), "none.json"))
	assert.Empty(t, p.String("missing"))
	assert.Equal(t, 42, p.Int("missing", 42))
	assert.True(t, p.Bool("missing", true))
}

func TestPrefsIgnoresCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "preferences.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0o644))

	p := LoadFrom(path)
	assert.Empty(t, p.String("anything"))
}
