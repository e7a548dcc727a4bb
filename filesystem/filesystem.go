// Package filesystem provides a virtualized abstraction layer for all filesystem operations.
//
// It utilizes the afero library to allow seamless switching between OS-level and in-memory filesystem backends.
package filesystem

import (
	"io"
	"os"

	"github.com/spf13/afero"
)

// Stdin is the path that selects standard input in OpenInput.
const Stdin = "-"

var backend = afero.Afero{Fs: afero.NewOsFs()}

// API returns the active afero.Afero instance for filesystem interaction.
func API() afero.Afero {
	return backend
}

// SetOsFs restores the filesystem backend to the native operating system implementation.
func SetOsFs() {
	backend = afero.Afero{Fs: afero.NewOsFs()}
}

// SetMemMapFs initializes a volatile in-memory filesystem backend for unit testing.
func SetMemMapFs() {
	backend = afero.Afero{Fs: afero.NewMemMapFs()}
}

// OpenInput opens a record file through the active backend, or standard input for "-" or "".
func OpenInput(path string) (io.ReadCloser, error) {
	if path == "" || path == Stdin {
		return io.NopCloser(os.Stdin), nil
	}
	return backend.Open(path)
}
