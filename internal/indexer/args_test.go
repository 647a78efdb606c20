package indexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeArgs(t *testing.T) {
	cases := []struct {
		name string
		in   []string
		want []string
	}{
		{"long flag dropped with value", []string{"--site", "old", "--verbose"}, []string{"--verbose"}},
		{"short flag dropped with value", []string{"-s", "old", "--verbose"}, []string{"--verbose"}},
		{"order preserved", []string{"--a", "--site", "x", "--b"}, []string{"--a", "--b"}},
		{"multiple occurrences", []string{"--site", "a", "-s", "b"}, []string{}},
		{"trailing flag without value", []string{"--verbose", "--site"}, []string{"--verbose"}},
		{"empty", []string{}, []string{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, SanitizeArgs(tc.in))
		})
	}
}

func TestSanitizeArgs_Idempotent(t *testing.T) {
	once := SanitizeArgs([]string{"--site", "old", "--verbose", "-s", "new"})
	twice := SanitizeArgs(once)
	assert.Equal(t, once, twice)
}

func TestParseRunWith(t *testing.T) {
	for _, name := range RunWithModes() {
		rw, err := ParseRunWith(name)
		assert.NoError(t, err, name)
		assert.Equal(t, name, rw.String())
	}

	_, err := ParseRunWith("yarn")
	assert.ErrorContains(t, err, `invalid run_with value "yarn"`)
	assert.ErrorContains(t, err, "auto, bun, pnpm, npm, global, local")
}

func TestRunWithValidate_Custom(t *testing.T) {
	assert.NoError(t, Custom([]string{"./bin/pagefind", "--verbose"}).Validate())
	assert.ErrorContains(t, Custom(nil).Validate(), "non-empty list")
	assert.ErrorContains(t, Custom([]string{""}).Validate(), "non-empty string")
}
