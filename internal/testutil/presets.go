package testutil

import (
	"fmt"
	"testing"
)

// SampleProject builds the standard small fixture used across widget
// tests:
//
//	docs/guide.md
//	docs/notes.txt
//	src/main.go
//	README.md
func SampleProject(t *testing.T) string {
	t.Helper()
	return NewBuilder(t).
		WithFile("docs/guide.md").
		WithFile("docs/notes.txt").
		WithFile("src/main.go").
		WithFile("README.md").
		Build()
}

// FlatDir builds a directory with n flat files, enough to scroll a
// small viewport.
func FlatDir(t *testing.T, n int) string {
	t.Helper()
	b := NewBuilder(t)
	for i := 0; i < n; i++ {
		b.WithFile(fmt.Sprintf("file-%02d.txt", i))
	}
	return b.Build()
}
