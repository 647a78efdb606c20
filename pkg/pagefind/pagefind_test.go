package pagefind

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gopagefind/internal/config"
)

func TestNewConfig_UsesProcessWideStore(t *testing.T) {
	t.Cleanup(config.ResetGlobal)

	Configure(func(s *Settings) {
		s.Version = "1.3.0"
	})

	cfg, err := NewConfig(Overrides{Site: "public"})
	require.NoError(t, err)
	assert.Equal(t, "public", cfg.Site)
	assert.Equal(t, "1.3.0", cfg.Version)
	assert.Equal(t, Auto(), cfg.RunWith)
}

func TestNewConfig_InvalidVersion(t *testing.T) {
	_, err := NewConfig(Overrides{Version: "not-a-version"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid version value")
}

func TestSuccessMessage(t *testing.T) {
	assert.Equal(t, "5 pages", SuccessMessage("Indexed 5 pages"))
	assert.Equal(t, "No output", SuccessMessage("nothing"))
}

func TestErrorMessage(t *testing.T) {
	execErr := &ExecError{Command: "pagefind", Args: []string{"--site", "public"}, Output: "boom", ExitCode: 1}
	msg := ErrorMessage(execErr)
	assert.Contains(t, msg, "exit code 1")
	assert.Contains(t, msg, "pagefind --site public")

	assert.Equal(t, "plain failure", ErrorMessage(errors.New("plain failure")))
	assert.Equal(t, "", ErrorMessage(nil))
}
