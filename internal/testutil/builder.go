// Package testutil provides filesystem fixtures for widget tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// fileData holds one file entry to be written.
type fileData struct {
	path    string
	content []byte
	mode    os.FileMode
}

// Builder accumulates directory entries and writes them under a test
// temp dir in one pass.
type Builder struct {
	t     *testing.T
	root  string
	dirs  []string
	files []fileData
}

// NewBuilder creates a builder rooted in a fresh temp directory that is
// cleaned up with the test.
func NewBuilder(t *testing.T) *Builder {
	t.Helper()
	return &Builder{t: t, root: t.TempDir()}
}

// WithDir adds an empty directory. Parent directories are created as
// needed; directories holding files never need to be declared.
func (b *Builder) WithDir(path string) *Builder {
	b.dirs = append(b.dirs, path)
	return b
}

// WithFile adds a file with optional configuration.
func (b *Builder) WithFile(path string, opts ...FileOption) *Builder {
	f := fileData{path: path, content: []byte("x\n"), mode: 0o644}
	for _, opt := range opts {
		opt(&f)
	}
	b.files = append(b.files, f)
	return b
}

// Build writes all accumulated entries and returns the fixture root.
func (b *Builder) Build() string {
	b.t.Helper()
	for _, dir := range b.dirs {
		require.NoError(b.t, os.MkdirAll(filepath.Join(b.root, dir), 0o755))
	}
	for _, f := range b.files {
		full := filepath.Join(b.root, f.path)
		require.NoError(b.t, os.MkdirAll(filepath.Dir(full), 0o755))
		require.NoError(b.t, os.WriteFile(full, f.content, f.mode))
	}
	return b.root
}
