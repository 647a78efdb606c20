// Package hook adapts the indexer pipeline to static-site-generation
// pipelines: it runs once per completed build, debounced, with configurable
// failure handling.
package hook

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"gopagefind/internal/config"
	"gopagefind/internal/format"
	"gopagefind/internal/indexer"
	"gopagefind/internal/logx"
	"gopagefind/internal/system"
)

// OnError selects how indexing failures are reported.
type OnError string

const (
	// OnErrorFail aborts the build, unless the host runs in server mode.
	OnErrorFail OnError = "fail"
	// OnErrorWarn logs the failure and continues.
	OnErrorWarn OnError = "warn"
	// OnErrorIgnore suppresses the failure entirely, including logging.
	OnErrorIgnore OnError = "ignore"
)

// Options configures the hook. The embedded core fields mirror the indexer
// configuration; Site comes from the build output directory at trigger time.
type Options struct {
	Enabled    bool     `yaml:"enabled"`
	DebounceMs int      `yaml:"debounce_ms"`
	OnError    OnError  `yaml:"on_error"`
	RunWith    string   `yaml:"run_with"`
	Version    string   `yaml:"version"`
	Args       []string `yaml:"args"`
}

// DefaultOptions enables the hook with fail-fast error handling and no
// debounce window.
func DefaultOptions() Options {
	return Options{Enabled: true, OnError: OnErrorFail}
}

// OptionsFromYAML loads hook options from a yaml document, layered over the
// defaults.
func OptionsFromYAML(data []byte) (Options, error) {
	opts := DefaultOptions()
	if err := yaml.Unmarshal(data, &opts); err != nil {
		return Options{}, fmt.Errorf("parse hook options: %w", err)
	}
	if err := opts.validate(); err != nil {
		return Options{}, err
	}
	return opts, nil
}

func (o Options) validate() error {
	if o.DebounceMs < 0 {
		return fmt.Errorf("invalid debounce_ms value %d: must be >= 0", o.DebounceMs)
	}
	switch o.OnError {
	case OnErrorFail, OnErrorWarn, OnErrorIgnore:
		return nil
	default:
		return fmt.Errorf("invalid on_error value %q (accepted: fail, warn, ignore)", o.OnError)
	}
}

// Hook triggers indexing after site builds.
type Hook struct {
	opts Options
	// ServerMode downgrades fail-mode aborts to logged errors, so a watch
	// server keeps serving when indexing breaks.
	ServerMode bool

	svc  indexer.Service
	log  zerolog.Logger
	gate *Debounce
}

// New constructs a hook with production gateways.
func New(opts Options) (*Hook, error) {
	return NewWithSystem(opts, system.OS{}, logx.Default())
}

// NewWithSystem constructs a hook over an explicit gateway and logger.
func NewWithSystem(opts Options, sys system.System, log zerolog.Logger) (*Hook, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	return &Hook{
		opts: opts,
		svc:  indexer.NewService(sys, log),
		log:  log,
		gate: NewDebounce(time.Duration(opts.DebounceMs) * time.Millisecond),
	}, nil
}

// AfterBuild runs the indexer against the build's output directory. Disabled
// hooks and debounced triggers return nil without side effects.
func (h *Hook) AfterBuild(ctx context.Context, outputDir string) error {
	if !h.opts.Enabled {
		return nil
	}
	if !h.gate.ShouldRun(time.Now()) {
		return nil
	}
	return h.runOnce(ctx, outputDir)
}

func (h *Hook) runOnce(ctx context.Context, outputDir string) error {
	cfg, err := h.buildConfig(outputDir)
	if err != nil {
		return h.report(err)
	}

	output, err := h.svc.RunIndex(ctx, cfg.RunWith, cfg.Version, cfg.Site, cfg.Args)
	if err != nil {
		return h.report(err)
	}

	h.log.Info().Msgf("pagefind: %s", format.SuccessMessage(output))
	return nil
}

func (h *Hook) buildConfig(outputDir string) (config.Config, error) {
	overrides := config.Overrides{
		Site:    outputDir,
		Version: h.opts.Version,
		Args:    h.opts.Args,
	}
	if h.opts.RunWith != "" {
		rw, err := indexer.ParseRunWith(h.opts.RunWith)
		if err != nil {
			return config.Config{}, err
		}
		overrides.RunWith = &rw
	}
	return config.New(overrides, config.Global{})
}

// report applies the onError mode to a failure: fail aborts (or logs, in
// server mode), warn logs and continues, ignore stays silent.
func (h *Hook) report(err error) error {
	message := err.Error()
	var execErr *indexer.ExecError
	if errors.As(err, &execErr) {
		message = format.ErrorMessage(execErr)
	}

	switch h.opts.OnError {
	case OnErrorWarn:
		h.log.Warn().Msg(message)
		return nil
	case OnErrorIgnore:
		return nil
	default: // fail
		if h.ServerMode {
			h.log.Error().Msg(message)
			return nil
		}
		return err
	}
}

// LoadOptionsFile reads hook options from a yaml file path, returning the
// defaults when the file does not exist.
func LoadOptionsFile(path string) (Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return DefaultOptions(), nil
		}
		return Options{}, fmt.Errorf("read hook options: %w", err)
	}
	return OptionsFromYAML(data)
}
