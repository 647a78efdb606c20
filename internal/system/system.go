package system

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/exec"
)

// RunResult captures the combined output and exit code of a completed process.
type RunResult struct {
	Output   []byte
	ExitCode int
}

// System is the capability surface the core components need from the host:
// process execution, PATH lookup, file operations, and a single HTTP GET.
// Production code uses OS; tests substitute Mem.
type System interface {
	Run(ctx context.Context, name string, args ...string) (RunResult, error)
	LookPath(name string) (string, error)
	FileExists(path string) bool
	MkdirAll(path string, mode os.FileMode) error
	Remove(path string) error
	WriteFile(path string, data []byte, mode os.FileMode) error
	Get(ctx context.Context, url string) ([]byte, error)
}

// OS is the production System backed by os/exec, os, and net/http.
type OS struct {
	// Client overrides the HTTP client when set; http.DefaultClient otherwise.
	Client *http.Client
}

var _ System = OS{}

// Run executes the command once with combined stdout/stderr capture. A
// non-zero exit is reported through RunResult.ExitCode, not the error; the
// error is reserved for spawn failures.
func (OS) Run(ctx context.Context, name string, args ...string) (RunResult, error) {
	cmd := exec.CommandContext(ctx, name, args...)

	var buf bytes.Buffer
	cmd.Stdout = &buf
	cmd.Stderr = &buf

	err := cmd.Run()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return RunResult{Output: buf.Bytes(), ExitCode: exitErr.ExitCode()}, nil
		}
		return RunResult{Output: buf.Bytes()}, fmt.Errorf("run %s: %w", name, err)
	}
	return RunResult{Output: buf.Bytes()}, nil
}

func (OS) LookPath(name string) (string, error) {
	return exec.LookPath(name)
}

func (OS) FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func (OS) MkdirAll(path string, mode os.FileMode) error {
	return os.MkdirAll(path, mode)
}

func (OS) Remove(path string) error {
	err := os.Remove(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

func (OS) WriteFile(path string, data []byte, mode os.FileMode) error {
	return os.WriteFile(path, data, mode)
}

// Get fetches the URL and returns the response body. Non-2xx statuses are
// errors carrying the status text.
func (s OS) Get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", "gopagefind/1.0")

	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("download %s: unexpected status %s", url, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}
	return body, nil
}
