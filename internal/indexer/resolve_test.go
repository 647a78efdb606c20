package indexer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gopagefind/internal/logx"
	"gopagefind/internal/system"
)

func newTestResolver(sys *system.Mem) Resolver {
	return NewResolver(sys, logx.Nop())
}

func TestResolve_AutoPrefersBunLockfile(t *testing.T) {
	sys := &system.Mem{Files: map[string][]byte{
		"bun.lockb":         {},
		"package-lock.json": {},
	}}

	exe, args, err := newTestResolver(sys).Resolve(context.Background(), Auto(), VersionLatest, true)
	require.NoError(t, err)
	assert.Equal(t, "bunx", exe)
	assert.Equal(t, []string{"pagefind"}, args)
}

func TestResolve_AutoLockfilePriorityOrder(t *testing.T) {
	cases := []struct {
		marker string
		exe    string
	}{
		{"bun.lockb", "bunx"},
		{"pnpm-lock.yaml", "pnpx"},
		{"package-lock.json", "npx"},
	}
	for _, tc := range cases {
		sys := &system.Mem{Files: map[string][]byte{tc.marker: {}}}
		exe, _, err := newTestResolver(sys).Resolve(context.Background(), Auto(), VersionLatest, true)
		require.NoError(t, err, tc.marker)
		assert.Equal(t, tc.exe, exe, tc.marker)
	}
}

func TestResolve_AutoFallsThroughToGlobal(t *testing.T) {
	sys := &system.Mem{PathBinaries: map[string]string{"pagefind": "/usr/local/bin/pagefind"}}

	exe, args, err := newTestResolver(sys).Resolve(context.Background(), Auto(), VersionLatest, true)
	require.NoError(t, err)
	assert.Equal(t, "/usr/local/bin/pagefind", exe)
	assert.Empty(t, args)
}

func TestResolve_AutoNoInstallationFound(t *testing.T) {
	sys := &system.Mem{}

	_, _, err := newTestResolver(sys).Resolve(context.Background(), Auto(), VersionLatest, true)
	require.ErrorIs(t, err, ErrNoInstallation)
	require.EqualError(t, err, "No pagefind installation found")
	// Auto must never attempt a silent local download.
	assert.Empty(t, sys.Commands)
	assert.Empty(t, sys.Dirs)
}

func TestResolve_PackageRunnerVersionSuffix(t *testing.T) {
	sys := &system.Mem{}
	r := newTestResolver(sys)

	exe, args, err := r.Resolve(context.Background(), Npm(), "1.2.3", true)
	require.NoError(t, err)
	assert.Equal(t, "npx", exe)
	assert.Equal(t, []string{"pagefind@1.2.3"}, args)

	// "latest" never becomes a suffix.
	exe, args, err = r.Resolve(context.Background(), Pnpm(), VersionLatest, true)
	require.NoError(t, err)
	assert.Equal(t, "pnpx", exe)
	assert.Equal(t, []string{"pagefind"}, args)
}

func TestResolve_GlobalNotOnPath(t *testing.T) {
	sys := &system.Mem{}

	_, _, err := newTestResolver(sys).Resolve(context.Background(), Global(), VersionLatest, true)
	require.ErrorIs(t, err, ErrNotFound)
	require.EqualError(t, err, "pagefind not found in PATH")
}

func TestResolve_GlobalVersionValidation(t *testing.T) {
	newSys := func(report string, exitCode int) *system.Mem {
		return &system.Mem{
			PathBinaries: map[string]string{"pagefind": "/usr/local/bin/pagefind"},
			RunResults: map[string]system.RunResult{
				"/usr/local/bin/pagefind --version": {Output: []byte(report), ExitCode: exitCode},
			},
		}
	}

	t.Run("matching version accepted", func(t *testing.T) {
		sys := newSys("pagefind 1.3.0\n", 0)
		exe, _, err := newTestResolver(sys).Resolve(context.Background(), Global(), "1.3.0", true)
		require.NoError(t, err)
		assert.Equal(t, "/usr/local/bin/pagefind", exe)
	})

	t.Run("newer version accepted with warning", func(t *testing.T) {
		sys := newSys("pagefind 1.4.0\n", 0)
		_, _, err := newTestResolver(sys).Resolve(context.Background(), Global(), "1.3.0", true)
		require.NoError(t, err)
	})

	t.Run("older version rejected", func(t *testing.T) {
		sys := newSys("pagefind 1.2.0\n", 0)
		_, _, err := newTestResolver(sys).Resolve(context.Background(), Global(), "1.3.0", true)
		require.EqualError(t, err, "pagefind version 1.2.0 is older than required version 1.3.0")
	})

	t.Run("major mismatch rejected", func(t *testing.T) {
		sys := newSys("pagefind 2.0.0\n", 0)
		_, _, err := newTestResolver(sys).Resolve(context.Background(), Global(), "1.4.0", true)
		require.EqualError(t, err, "pagefind major version 2 does not match required major version 1")
	})

	t.Run("unparseable report", func(t *testing.T) {
		sys := newSys("no version here", 0)
		_, _, err := newTestResolver(sys).Resolve(context.Background(), Global(), "1.3.0", true)
		require.EqualError(t, err, "could not parse version from: no version here")
	})

	t.Run("version subcommand failure", func(t *testing.T) {
		sys := newSys("boom", 1)
		_, _, err := newTestResolver(sys).Resolve(context.Background(), Global(), "1.3.0", true)
		require.EqualError(t, err, "failed to get version: boom")
	})

	t.Run("validation skipped when disabled", func(t *testing.T) {
		sys := newSys("pagefind 2.0.0\n", 0)
		_, _, err := newTestResolver(sys).Resolve(context.Background(), Global(), "1.3.0", false)
		require.NoError(t, err)
		assert.Empty(t, sys.Commands)
	})

	t.Run("validation skipped for latest", func(t *testing.T) {
		sys := newSys("pagefind 2.0.0\n", 0)
		_, _, err := newTestResolver(sys).Resolve(context.Background(), Global(), VersionLatest, true)
		require.NoError(t, err)
		assert.Empty(t, sys.Commands)
	})
}

func TestResolve_CustomCommand(t *testing.T) {
	sys := &system.Mem{}

	exe, args, err := newTestResolver(sys).Resolve(context.Background(), Custom([]string{"./bin/pagefind", "--quiet"}), "1.3.0", true)
	require.NoError(t, err)
	assert.Equal(t, "./bin/pagefind", exe)
	assert.Equal(t, []string{"--quiet"}, args)
	// No validation, no version suffixing, no subprocesses.
	assert.Empty(t, sys.Commands)
}

func TestResolve_CustomCommandSanitized(t *testing.T) {
	sys := &system.Mem{}

	_, args, err := newTestResolver(sys).Resolve(context.Background(), Custom([]string{"pagefind", "--site", "stale", "--quiet"}), VersionLatest, true)
	require.NoError(t, err)
	assert.Equal(t, []string{"--quiet"}, args)
}

func TestResolve_LocalUsesExistingBinary(t *testing.T) {
	t.Setenv("GOPAGEFIND_BIN_DIR", t.TempDir())

	r := newTestResolver(&system.Mem{})
	r.Installer.GOOS = "linux"
	r.Installer.GOARCH = "amd64"
	desc, err := r.Installer.Configure(Descriptor{})
	require.NoError(t, err)

	sys := &system.Mem{Files: map[string][]byte{desc.BinaryPath: []byte("binary")}}
	r = newTestResolver(sys)
	r.Installer.GOOS = "linux"
	r.Installer.GOARCH = "amd64"

	exe, args, err := r.Resolve(context.Background(), Local(), VersionLatest, true)
	require.NoError(t, err)
	assert.Equal(t, desc.BinaryPath, exe)
	assert.Empty(t, args)
	assert.Empty(t, sys.Commands)
}

func TestResolve_LocalInstallsWhenMissing(t *testing.T) {
	t.Setenv("GOPAGEFIND_BIN_DIR", t.TempDir())

	archive := makeTarGz(t, map[string][]byte{"pagefind": []byte("#!/bin/sh\n")})
	sys := &system.Mem{Responses: map[string][]byte{}}

	r := newTestResolver(sys)
	r.Installer.GOOS = "linux"
	r.Installer.GOARCH = "amd64"

	desc, err := r.Installer.Configure(Descriptor{})
	require.NoError(t, err)
	sys.Responses[desc.DownloadURL] = archive

	exe, args, err := r.Resolve(context.Background(), Local(), VersionLatest, true)
	require.NoError(t, err)
	assert.Equal(t, desc.BinaryPath, exe)
	assert.Empty(t, args)
	assert.True(t, sys.FileExists(desc.BinaryPath))
}
