package system

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
)

// Mem is an in-memory System for tests. Zero value is usable; populate the
// maps to script lookups, run results, and HTTP responses.
type Mem struct {
	mu sync.Mutex

	// Files maps path -> contents for FileExists/WriteFile.
	Files map[string][]byte
	// Modes records the mode WriteFile was called with, per path.
	Modes map[string]os.FileMode
	// Dirs records directories created via MkdirAll.
	Dirs map[string]bool
	// PathBinaries maps executable name -> resolved path for LookPath.
	PathBinaries map[string]string
	// RunResults maps a space-joined command line -> scripted result.
	RunResults map[string]RunResult
	// RunErrors maps a space-joined command line -> spawn error.
	RunErrors map[string]error
	// Responses maps URL -> body for Get; URLs absent here error.
	Responses map[string][]byte

	// Commands records every command line passed to Run, in order.
	Commands []string
	// Removed records every path passed to Remove.
	Removed []string
}

var _ System = (*Mem)(nil)

func commandLine(name string, args []string) string {
	return strings.Join(append([]string{name}, args...), " ")
}

func (m *Mem) Run(_ context.Context, name string, args ...string) (RunResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	line := commandLine(name, args)
	m.Commands = append(m.Commands, line)

	if err, ok := m.RunErrors[line]; ok {
		return RunResult{}, err
	}
	if res, ok := m.RunResults[line]; ok {
		return res, nil
	}
	return RunResult{}, fmt.Errorf("run %s: no scripted result", line)
}

func (m *Mem) LookPath(name string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if path, ok := m.PathBinaries[name]; ok {
		return path, nil
	}
	return "", fmt.Errorf("exec: %q: executable file not found in $PATH", name)
}

func (m *Mem) FileExists(path string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	_, ok := m.Files[path]
	return ok
}

func (m *Mem) MkdirAll(path string, _ os.FileMode) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Dirs == nil {
		m.Dirs = map[string]bool{}
	}
	m.Dirs[path] = true
	return nil
}

func (m *Mem) Remove(path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Removed = append(m.Removed, path)
	delete(m.Files, path)
	delete(m.Modes, path)
	return nil
}

func (m *Mem) WriteFile(path string, data []byte, mode os.FileMode) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Files == nil {
		m.Files = map[string][]byte{}
	}
	if m.Modes == nil {
		m.Modes = map[string]os.FileMode{}
	}
	m.Files[path] = data
	m.Modes[path] = mode
	return nil
}

func (m *Mem) Get(_ context.Context, url string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if body, ok := m.Responses[url]; ok {
		return body, nil
	}
	return nil, fmt.Errorf("download %s: unexpected status 404 Not Found", url)
}
