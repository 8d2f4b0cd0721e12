package main

// Notes:
// - Test helpers shared across the package tests; not functions under test.

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/alnah/go-rstify"
	"github.com/alnah/go-rstify/internal/logger"
)

// plainDoc is a small convertible document.
const plainDoc = "Title: Sample\n" +
	"Created: 1-Jan-2020\n" +
	"\n" +
	"Abstract\n" +
	"\n" +
	"    Short paragraph.\n"

// plainDocRST is plainDoc converted at the default width.
const plainDocRST = "Title: Sample\n" +
	"Content-Type: text/x-rst\n" +
	"Created: 1-Jan-2020\n" +
	"\n" +
	"\n" +
	"Abstract\n" +
	"========\n" +
	"\n" +
	"Short paragraph."

// convertedDoc already declares the reStructuredText content type.
const convertedDoc = "Title: Done\nContent-Type: text/x-rst\n\nBody\n"

// newTestEnv returns an environment writing to buffers.
func newTestEnv() (*Environment, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	return &Environment{
		Now:    func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) },
		Stdout: &stdout,
		Stderr: &stderr,
	}, &stdout, &stderr
}

// setupTestDir creates a temp directory with the given file structure.
// Files map paths to content. Returns the temp directory path.
func setupTestDir(t *testing.T, files map[string]string) string {
	t.Helper()
	tempDir := t.TempDir()

	for path, content := range files {
		fullPath := filepath.Join(tempDir, path)
		if err := os.MkdirAll(filepath.Dir(fullPath), 0o750); err != nil {
			t.Fatalf("failed to create dir for %s: %v", path, err)
		}
		if err := os.WriteFile(fullPath, []byte(content), 0o644); err != nil {
			t.Fatalf("failed to write %s: %v", path, err)
		}
	}

	return tempDir
}

// readFile returns the content of path or fails the test.
func readFile(t *testing.T, path string) string {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return string(data)
}

// loggerFor returns a debug logger writing to env.Stderr.
func loggerFor(env *Environment) *logger.Logger {
	return logger.New(env.Stderr, log.DebugLevel)
}

// mockConverter returns canned results and records the inputs it saw.
type mockConverter struct {
	mu     sync.Mutex
	errs   map[string]error // by Input.Name
	output []byte
	calls  []string
}

func (m *mockConverter) Convert(_ context.Context, input rstify.Input) (*rstify.ConvertResult, error) {
	m.mu.Lock()
	m.calls = append(m.calls, input.Name)
	m.mu.Unlock()

	if err := m.errs[input.Name]; err != nil {
		return nil, err
	}
	out := m.output
	if out == nil {
		out = []byte("converted " + filepath.Base(input.Name))
	}
	return &rstify.ConvertResult{RST: out, Stats: rstify.Stats{LinesRead: 1}}, nil
}

func (m *mockConverter) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}
