package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)
	assert.Equal(t, "  ", cfg.Output.Indent)
	assert.Contains(t, cfg.LSP.Extensions, ".hpp")
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cxxhdr.toml")
	content := `
[output]
indent = "\t"

[lsp]
extensions = [".h", ".hpp"]
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "\t", cfg.Output.Indent)
	assert.False(t, cfg.Output.Compact)
	assert.Equal(t, []string{".h", ".hpp"}, cfg.LSP.Extensions)
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cxxhdr.toml")
	require.NoError(t, os.WriteFile(path, []byte("[output]\ncompact = true\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.True(t, cfg.Output.Compact)
	assert.NotEmpty(t, cfg.LSP.Extensions)
}

func TestLoadInvalidTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cxxhdr.toml")
	require.NoError(t, os.WriteFile(path, []byte("output = {{\n"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
}
