package indexer

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"gopagefind/internal/system"
)

// ErrNotFound is returned by global resolution when pagefind is not on PATH.
var ErrNotFound = errors.New("pagefind not found in PATH")

// ErrNoInstallation is returned by auto resolution when no lockfile matches
// and global resolution fails.
var ErrNoInstallation = errors.New("No pagefind installation found")

// lockfileModes is the auto-detection priority order: first marker present in
// the working directory wins.
var lockfileModes = []struct {
	marker string
	mode   RunWith
}{
	{"bun.lockb", Bun()},
	{"pnpm-lock.yaml", Pnpm()},
	{"package-lock.json", Npm()},
}

// packageRunners maps package-runner modes onto their executables.
var packageRunners = map[RunWithKind]string{
	RunWithBun:  "bunx",
	RunWithPnpm: "pnpx",
	RunWithNpm:  "npx",
}

// Resolver decides which concrete executable and leading arguments to invoke
// for a configuration. It is stateless; every Resolve call recomputes the
// decision.
type Resolver struct {
	Sys system.System
	Log zerolog.Logger
	// Dir is the directory searched for lockfile markers. Empty means the
	// process working directory.
	Dir string
	// Installer handles local-mode binary provisioning.
	Installer Installer
}

// NewResolver wires a resolver with its installer over the same gateway.
func NewResolver(sys system.System, log zerolog.Logger) Resolver {
	return Resolver{Sys: sys, Log: log, Installer: Installer{Sys: sys}}
}

// Resolve maps the run-with mode onto an executable and leading arguments.
// The returned arguments are already sanitized. validateVersion gates the
// version-compatibility check performed for global binaries.
func (r Resolver) Resolve(ctx context.Context, rw RunWith, requiredVersion string, validateVersion bool) (string, []string, error) {
	exe, args, err := r.resolve(ctx, rw, requiredVersion, validateVersion)
	if err != nil {
		return "", nil, err
	}
	return exe, SanitizeArgs(args), nil
}

func (r Resolver) resolve(ctx context.Context, rw RunWith, requiredVersion string, validateVersion bool) (string, []string, error) {
	switch rw.Kind {
	case RunWithAuto:
		for _, lf := range lockfileModes {
			if r.Sys.FileExists(filepath.Join(r.Dir, lf.marker)) {
				return r.resolveRunner(lf.mode, requiredVersion)
			}
		}
		// One attempt at the PATH binary; auto never downloads silently.
		exe, args, err := r.resolveGlobal(ctx, requiredVersion, validateVersion)
		if err != nil {
			return "", nil, ErrNoInstallation
		}
		return exe, args, nil
	case RunWithBun, RunWithPnpm, RunWithNpm:
		return r.resolveRunner(rw, requiredVersion)
	case RunWithGlobal:
		return r.resolveGlobal(ctx, requiredVersion, validateVersion)
	case RunWithLocal:
		return r.resolveLocal(ctx)
	case RunWithCustom:
		if err := rw.Validate(); err != nil {
			return "", nil, err
		}
		return rw.Command[0], rw.Command[1:], nil
	default:
		return "", nil, fmt.Errorf("invalid run_with value %q (accepted: %s, or a command list)",
			rw.String(), strings.Join(RunWithModes(), ", "))
	}
}

// resolveRunner builds a package-runner invocation. The runner resolves the
// package itself, so no version validation happens here; an exact version
// becomes an @version suffix, "latest" stays bare.
func (r Resolver) resolveRunner(rw RunWith, requiredVersion string) (string, []string, error) {
	exe, ok := packageRunners[rw.Kind]
	if !ok {
		return "", nil, fmt.Errorf("mode %s is not a package runner", rw.String())
	}
	pkg := "pagefind"
	if requiredVersion != "" && requiredVersion != VersionLatest {
		pkg += "@" + requiredVersion
	}
	return exe, []string{pkg}, nil
}

func (r Resolver) resolveGlobal(ctx context.Context, requiredVersion string, validateVersion bool) (string, []string, error) {
	path, err := r.Sys.LookPath("pagefind")
	if err != nil {
		return "", nil, ErrNotFound
	}
	if validateVersion && requiredVersion != "" && requiredVersion != VersionLatest {
		discovered, err := r.queryVersion(ctx, path)
		if err != nil {
			return "", nil, err
		}
		if err := CheckCompatibility(r.Log, discovered, requiredVersion); err != nil {
			return "", nil, err
		}
	}
	return path, nil, nil
}

func (r Resolver) resolveLocal(ctx context.Context) (string, []string, error) {
	desc, err := r.Installer.Configure(Descriptor{})
	if err != nil {
		return "", nil, err
	}
	if !r.Sys.FileExists(desc.BinaryPath) {
		desc, err = r.Installer.Download(ctx, desc)
		if err != nil {
			return "", nil, err
		}
		desc, err = r.Installer.Install(desc)
		if err != nil {
			return "", nil, err
		}
	}
	return desc.BinaryPath, nil, nil
}

// queryVersion runs the binary's version subcommand and extracts the
// reported triple.
func (r Resolver) queryVersion(ctx context.Context, path string) (string, error) {
	res, err := r.Sys.Run(ctx, path, "--version")
	if err != nil {
		return "", fmt.Errorf("failed to get version: %v", err)
	}
	output := strings.TrimSpace(string(res.Output))
	if res.ExitCode != 0 {
		return "", fmt.Errorf("failed to get version: %s", output)
	}
	return parseReportedVersion(output)
}

// DiscoverVersion resolves the configured invocation and reports the version
// of the binary behind it. Package-runner modes query through the runner.
func (r Resolver) DiscoverVersion(ctx context.Context, rw RunWith, requiredVersion string) (string, error) {
	exe, args, err := r.Resolve(ctx, rw, requiredVersion, false)
	if err != nil {
		return "", err
	}
	res, err := r.Sys.Run(ctx, exe, append(args, "--version")...)
	if err != nil {
		return "", fmt.Errorf("failed to get version: %v", err)
	}
	output := strings.TrimSpace(string(res.Output))
	if res.ExitCode != 0 {
		return "", fmt.Errorf("failed to get version: %s", output)
	}
	return parseReportedVersion(output)
}
