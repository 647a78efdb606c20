// Package format turns raw pagefind output into human-readable messages.
package format

import (
	"fmt"
	"regexp"
	"strings"

	"gopagefind/internal/indexer"
)

// indexedLine matches pagefind's per-category summary lines with a non-zero
// count, e.g. "Indexed 46 pages".
var indexedLine = regexp.MustCompile(`^Indexed ([1-9]\d*) (\w+)$`)

// SuccessMessage condenses indexer output into a single summary line, keeping
// the "Indexed N label" fragments and joining them in sentence form. Lines
// reporting zero counts are dropped.
func SuccessMessage(output string) string {
	var fragments []string
	for _, line := range strings.Split(output, "\n") {
		m := indexedLine.FindStringSubmatch(strings.TrimSpace(line))
		if m == nil {
			continue
		}
		fragments = append(fragments, m[1]+" "+m[2])
	}

	switch len(fragments) {
	case 0:
		return "No output"
	case 1:
		return fragments[0]
	case 2:
		return fragments[0] + " and " + fragments[1]
	default:
		last := len(fragments) - 1
		return strings.Join(fragments[:last], ", ") + ", and " + fragments[last]
	}
}

// ErrorMessage formats a failed invocation for diagnostics: exit code, the
// reconstructed command line, and the captured output verbatim.
func ErrorMessage(execErr *indexer.ExecError) string {
	commandLine := execErr.Command
	if len(execErr.Args) > 0 {
		commandLine += " " + strings.Join(execErr.Args, " ")
	}
	return fmt.Sprintf("Pagefind indexing failed with exit code %d\nCommand: %s\nOutput:\n%s",
		execErr.ExitCode, commandLine, execErr.Output)
}
