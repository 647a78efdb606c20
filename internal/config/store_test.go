package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gopagefind/internal/indexer"
)

func TestGlobal_ConfigureAndRead(t *testing.T) {
	t.Cleanup(ResetGlobal)

	Configure(func(s *Settings) {
		s.Version = "1.3.0"
		s.Args = []string{"--verbose"}
	})

	cfg, err := New(Overrides{}, Global{})
	require.NoError(t, err)
	assert.Equal(t, "1.3.0", cfg.Version)
	assert.Equal(t, []string{"--verbose"}, cfg.Args)
}

func TestGlobal_ReturnsCopies(t *testing.T) {
	t.Cleanup(ResetGlobal)

	Configure(func(s *Settings) {
		s.Args = []string{"--a"}
	})

	got, err := Global{}.Settings()
	require.NoError(t, err)
	got.Args[0] = "--mutated"

	fresh, err := Global{}.Settings()
	require.NoError(t, err)
	assert.Equal(t, []string{"--a"}, fresh.Args)
}

func TestFile_MissingFileIsEmpty(t *testing.T) {
	settings, err := File{Path: filepath.Join(t.TempDir(), "absent.yml")}.Settings()
	require.NoError(t, err)
	assert.Equal(t, Settings{}, settings)
}

func TestFile_ParsesSettings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gopagefind.yml")
	doc := `site: public
run_with: npm
version: 1.2.0
args: ["--verbose", "--quiet"]
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	settings, err := File{Path: path}.Settings()
	require.NoError(t, err)
	assert.Equal(t, "public", settings.Site)
	require.NotNil(t, settings.RunWith)
	assert.Equal(t, indexer.Npm(), *settings.RunWith)
	assert.Equal(t, "1.2.0", settings.Version)
	assert.Equal(t, []string{"--verbose", "--quiet"}, settings.Args)
}

func TestFile_CustomCommandList(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gopagefind.yml")
	doc := `run_with: ["./bin/pagefind", "--quiet"]
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	settings, err := File{Path: path}.Settings()
	require.NoError(t, err)
	require.NotNil(t, settings.RunWith)
	assert.Equal(t, indexer.Custom([]string{"./bin/pagefind", "--quiet"}), *settings.RunWith)
}

func TestFile_InvalidRunWith(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gopagefind.yml")
	require.NoError(t, os.WriteFile(path, []byte("run_with: yarn\n"), 0o644))

	_, err := File{Path: path}.Settings()
	assert.ErrorContains(t, err, "invalid run_with value")
}
