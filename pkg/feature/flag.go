// Package feature persists opt-in features as marker files.
package feature

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// ClientSideMarker is the marker file name enabling client-side mode.
const ClientSideMarker = "enable_client_side"

// Flag is a boolean persisted as the existence of a marker file.
type Flag struct {
	path string
}

// NewFlag returns the client-side mode flag stored in dir.
func NewFlag(dir string) *Flag {
	return &Flag{path: filepath.Join(dir, ClientSideMarker)}
}

// Path returns the marker file path.
func (f *Flag) Path() string { return f.path }

// Enabled reports whether the marker file exists.
func (f *Flag) Enabled() bool {
	_, err := os.Stat(f.path)
	return err == nil
}

// Enable creates the marker file and its parent directories.
// Enabling an enabled flag is a no-op.
func (f *Flag) Enable() error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return fmt.Errorf("error creating directory for %q: %w", f.path, err)
	}
	file, err := os.OpenFile(f.path, os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("error creating marker file %q: %w", f.path, err)
	}
	return file.Close()
}

// Disable removes the marker file.
// Disabling a disabled flag is a no-op.
func (f *Flag) Disable() error {
	err := os.Remove(f.path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("error removing marker file %q: %w", f.path, err)
	}
	return nil
}
