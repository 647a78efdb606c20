package indexer

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"runtime"

	"gopagefind/internal/system"
)

// fallbackVersion is the release installed when no exact version is
// configured. Bump alongside upstream pagefind releases.
const fallbackVersion = "1.3.0"

const downloadURLTemplate = "https://github.com/CloudCannon/pagefind/releases/download/v%s/pagefind-v%s-%s.tar.gz"

// binDirEnv overrides the managed binary directory.
const binDirEnv = "GOPAGEFIND_BIN_DIR"

// Descriptor accumulates the installer's resolution state. Fields fill
// left-to-right across Configure/Download/Install; a field already present is
// never overwritten by a later step.
type Descriptor struct {
	Version     string
	OS          string
	TargetArch  string
	BinaryDir   string
	BinaryPath  string
	DownloadURL string
	Archive     []byte
}

// Installer provisions a locally managed pagefind binary: it resolves the
// target platform, downloads the release archive, and extracts the binary.
type Installer struct {
	Sys system.System
	// GOOS/GOARCH override the native platform; tests use these.
	GOOS   string
	GOARCH string
}

// Configure fills every absent descriptor field: version, OS family, target
// architecture triple, binary directory and path, and download URL. An
// unsupported OS or architecture fails here, before any network or disk work.
func (in Installer) Configure(d Descriptor) (Descriptor, error) {
	if d.Version == "" {
		d.Version = fallbackVersion
	}
	if d.OS == "" {
		d.OS = in.goos()
	}
	if d.TargetArch == "" {
		arch, err := targetArch(d.OS, in.goarch())
		if err != nil {
			return Descriptor{}, err
		}
		d.TargetArch = arch
	}
	if d.BinaryPath == "" {
		if d.BinaryDir == "" {
			dir, err := binaryDir()
			if err != nil {
				return Descriptor{}, err
			}
			d.BinaryDir = dir
		}
		name := "pagefind"
		if d.OS == "windows" {
			name += ".exe"
		}
		d.BinaryPath = filepath.Join(d.BinaryDir, name)
	}
	if d.BinaryDir == "" {
		d.BinaryDir = filepath.Dir(d.BinaryPath)
	}
	if d.DownloadURL == "" {
		d.DownloadURL = fmt.Sprintf(downloadURLTemplate, d.Version, d.Version, d.TargetArch)
	}
	return d, nil
}

// Download fetches the release archive unless bytes are already present.
func (in Installer) Download(ctx context.Context, d Descriptor) (Descriptor, error) {
	if len(d.Archive) > 0 {
		return d, nil
	}
	body, err := in.Sys.Get(ctx, d.DownloadURL)
	if err != nil {
		return Descriptor{}, err
	}
	d.Archive = body
	return d, nil
}

// Install extracts the pagefind binary from the downloaded archive and
// writes it to the descriptor's binary path with the execute bits set.
func (in Installer) Install(d Descriptor) (Descriptor, error) {
	if err := in.Sys.MkdirAll(d.BinaryDir, 0o755); err != nil {
		return Descriptor{}, fmt.Errorf("prepare binary directory: %w", err)
	}

	binary, err := extractBinary(d.Archive)
	if err != nil {
		return Descriptor{}, err
	}

	if err := in.Sys.Remove(d.BinaryPath); err != nil {
		return Descriptor{}, fmt.Errorf("replace existing binary: %w", err)
	}
	if err := in.Sys.WriteFile(d.BinaryPath, binary, 0o755); err != nil {
		return Descriptor{}, fmt.Errorf("write binary: %w", err)
	}
	return d, nil
}

// extractBinary walks the gzipped tar in memory and returns the entry named
// pagefind or pagefind.exe.
func extractBinary(archive []byte) ([]byte, error) {
	gz, err := gzip.NewReader(bytes.NewReader(archive))
	if err != nil {
		return nil, fmt.Errorf("Failed to extract archive: %v", err)
	}
	defer gz.Close()

	tr := tar.NewReader(gz)
	for {
		header, err := tr.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("Failed to extract archive: %v", err)
		}
		if header.Typeflag != tar.TypeReg {
			continue
		}
		name := path.Base(header.Name)
		if name != "pagefind" && name != "pagefind.exe" {
			continue
		}
		data, err := io.ReadAll(tr)
		if err != nil {
			return nil, fmt.Errorf("Failed to extract archive: %v", err)
		}
		return data, nil
	}
	return nil, errors.New("pagefind binary not found in archive")
}

func (in Installer) goos() string {
	if in.GOOS != "" {
		return in.GOOS
	}
	return runtime.GOOS
}

func (in Installer) goarch() string {
	if in.GOARCH != "" {
		return in.GOARCH
	}
	return runtime.GOARCH
}

// targetArch maps an OS family and CPU architecture onto a supported release
// triple.
func targetArch(goos, goarch string) (string, error) {
	var cpu string
	switch goarch {
	case "amd64":
		cpu = "x86_64"
	case "arm64":
		cpu = "aarch64"
	default:
		return "", fmt.Errorf("unsupported architecture %q for pagefind releases", goarch)
	}

	switch goos {
	case "linux":
		return cpu + "-unknown-linux-musl", nil
	case "darwin":
		return cpu + "-apple-darwin", nil
	case "windows":
		return cpu + "-pc-windows-msvc", nil
	default:
		return "", fmt.Errorf("unsupported operating system %q for pagefind releases", goos)
	}
}

// binaryDir determines the per-user directory for the managed binary.
func binaryDir() (string, error) {
	if override, ok := os.LookupEnv(binDirEnv); ok && override != "" {
		abs, err := filepath.Abs(override)
		if err != nil {
			return "", fmt.Errorf("resolve %s: %w", binDirEnv, err)
		}
		return abs, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("detect user home: %w", err)
	}

	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "gopagefind", "bin"), nil
	case "windows":
		if localAppData := os.Getenv("LOCALAPPDATA"); localAppData != "" {
			return filepath.Join(localAppData, "gopagefind", "bin"), nil
		}
		return filepath.Join(home, "AppData", "Local", "gopagefind", "bin"), nil
	default:
		return filepath.Join(home, ".local", "share", "gopagefind", "bin"), nil
	}
}
