// Package pagefind is the programmatic API for running the Pagefind
// static-site search indexer. It resolves how to invoke pagefind (package
// runner, PATH binary, locally downloaded binary, or custom command), checks
// version compatibility, runs it once, and formats the result.
package pagefind

import (
	"context"
	"errors"

	"gopagefind/internal/config"
	"gopagefind/internal/format"
	"gopagefind/internal/indexer"
	"gopagefind/internal/logx"
	"gopagefind/internal/system"
)

// Config is the validated, effective configuration for one indexer run.
type Config = config.Config

// Overrides are call-site configuration values; unset fields fall back to
// the process-wide store and then to the defaults.
type Overrides = config.Overrides

// Settings is the shape of the process-wide configuration store.
type Settings = config.Settings

// RunWith selects the invocation mode.
type RunWith = indexer.RunWith

// ExecError carries the context of a failed invocation: command, arguments,
// captured output, and exit code.
type ExecError = indexer.ExecError

// Invocation mode constructors.
var (
	Auto   = indexer.Auto
	Bun    = indexer.Bun
	Pnpm   = indexer.Pnpm
	Npm    = indexer.Npm
	Global = indexer.Global
	Local  = indexer.Local
	Custom = indexer.Custom
)

// Configure installs default overrides into the process-wide configuration
// store, merged beneath per-call overrides by NewConfig.
func Configure(fn func(*Settings)) {
	config.Configure(fn)
}

// NewConfig merges defaults, the process-wide store, and the given overrides
// into a validated configuration.
func NewConfig(overrides Overrides) (Config, error) {
	return config.New(overrides, config.Global{})
}

// Version reports the pagefind version the configuration resolves to.
func Version(ctx context.Context, cfg Config) (string, error) {
	svc := indexer.NewService(system.OS{}, logx.Default())
	return svc.Version(ctx, cfg.RunWith, cfg.Version)
}

// RunIndexer resolves and runs pagefind once against cfg.Site. On a non-zero
// exit the returned error is an *ExecError.
func RunIndexer(ctx context.Context, cfg Config) (string, error) {
	svc := indexer.NewService(system.OS{}, logx.Default())
	return svc.RunIndex(ctx, cfg.RunWith, cfg.Version, cfg.Site, cfg.Args)
}

// SuccessMessage condenses raw indexer output into a one-line summary.
func SuccessMessage(output string) string {
	return format.SuccessMessage(output)
}

// ErrorMessage formats a RunIndexer failure for display. Errors that are not
// invocation failures render as their plain message.
func ErrorMessage(err error) string {
	var execErr *ExecError
	if errors.As(err, &execErr) {
		return format.ErrorMessage(execErr)
	}
	if err == nil {
		return ""
	}
	return err.Error()
}
