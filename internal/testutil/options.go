package testutil

import (
	"bytes"
	"os"
)

// FileOption configures one file entry.
type FileOption func(*fileData)

// Content sets the file's contents.
func Content(s string) FileOption {
	return func(f *fileData) { f.content = []byte(s) }
}

// Size fills the file with n bytes, for size column assertions.
func Size(n int) FileOption {
	return func(f *fileData) { f.content = bytes.Repeat([]byte{'x'}, n) }
}

// Mode sets the file's permission bits.
func Mode(mode os.FileMode) FileOption {
	return func(f *fileData) { f.mode = mode }
}
