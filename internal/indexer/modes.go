package indexer

import (
	"fmt"
	"strings"
)

// RunWithKind enumerates the ways the pagefind binary can be invoked.
type RunWithKind int

const (
	RunWithAuto RunWithKind = iota
	RunWithBun
	RunWithPnpm
	RunWithNpm
	RunWithGlobal
	RunWithLocal
	RunWithCustom
)

// RunWith selects the invocation mode. Custom carries the command to run;
// every other kind leaves Command empty.
type RunWith struct {
	Kind    RunWithKind
	Command []string
}

// Auto is the default invocation mode.
func Auto() RunWith { return RunWith{Kind: RunWithAuto} }

// Bun forces invocation through bunx.
func Bun() RunWith { return RunWith{Kind: RunWithBun} }

// Pnpm forces invocation through pnpx.
func Pnpm() RunWith { return RunWith{Kind: RunWithPnpm} }

// Npm forces invocation through npx.
func Npm() RunWith { return RunWith{Kind: RunWithNpm} }

// Global uses the pagefind executable found on PATH.
func Global() RunWith { return RunWith{Kind: RunWithGlobal} }

// Local uses a locally managed binary, downloading it on first use.
func Local() RunWith { return RunWith{Kind: RunWithLocal} }

// Custom runs the given command verbatim. The first element is the
// executable; it must be non-empty.
func Custom(command []string) RunWith {
	return RunWith{Kind: RunWithCustom, Command: command}
}

var runWithNames = map[string]RunWithKind{
	"auto":   RunWithAuto,
	"bun":    RunWithBun,
	"pnpm":   RunWithPnpm,
	"npm":    RunWithNpm,
	"global": RunWithGlobal,
	"local":  RunWithLocal,
}

// RunWithModes lists the accepted mode names, for error messages.
func RunWithModes() []string {
	return []string{"auto", "bun", "pnpm", "npm", "global", "local"}
}

// ParseRunWith maps a mode name onto a RunWith value.
func ParseRunWith(name string) (RunWith, error) {
	kind, ok := runWithNames[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return RunWith{}, fmt.Errorf("invalid run_with value %q (accepted: %s, or a command list)",
			name, strings.Join(RunWithModes(), ", "))
	}
	return RunWith{Kind: kind}, nil
}

// Validate enforces the custom-command invariant: a non-empty command whose
// first element is a non-empty executable name.
func (rw RunWith) Validate() error {
	switch rw.Kind {
	case RunWithAuto, RunWithBun, RunWithPnpm, RunWithNpm, RunWithGlobal, RunWithLocal:
		return nil
	case RunWithCustom:
		if len(rw.Command) == 0 {
			return fmt.Errorf("invalid run_with value: custom command must be a non-empty list")
		}
		if rw.Command[0] == "" {
			return fmt.Errorf("invalid run_with value: custom command executable must be a non-empty string")
		}
		return nil
	default:
		return fmt.Errorf("invalid run_with value: unknown mode %d", rw.Kind)
	}
}

// String renders the mode name, or the joined command for custom mode.
func (rw RunWith) String() string {
	switch rw.Kind {
	case RunWithAuto:
		return "auto"
	case RunWithBun:
		return "bun"
	case RunWithPnpm:
		return "pnpm"
	case RunWithNpm:
		return "npm"
	case RunWithGlobal:
		return "global"
	case RunWithLocal:
		return "local"
	case RunWithCustom:
		return strings.Join(rw.Command, " ")
	default:
		return "unknown"
	}
}
