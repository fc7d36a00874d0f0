package commons

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name  string   `yaml:"name"`
	Items []string `yaml:"items"`
}

func TestLoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample.yaml")
	require.NoError(t, os.WriteFile(path, []byte("name: orders\nitems: [a, b]\n"), 0o600))

	var s sample
	require.NoError(t, LoadYAML(path, &s))

	assert.Equal(t, "orders", s.Name)
	assert.Equal(t, []string{"a", "b"}, s.Items)
}

func TestLoadYAML_Errors(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("name: [unterminated\n"), 0o600))

	var s sample
	assert.Error(t, LoadYAML(filepath.Join(dir, "missing.yaml"), &s))
	assert.Error(t, LoadYAML(bad, &s))
}
