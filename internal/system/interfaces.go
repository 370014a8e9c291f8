// Package system wraps the filesystem checks and external commands the
// project service depends on, so tests can swap in mocks.
package system

import (
	"context"
	"io/fs"
	"os"
)

// FileSystem is the subset of directory operations used when importing and
// creating projects.
type FileSystem interface {
	// MkdirAll creates path and any missing parents.
	MkdirAll(path string, perm fs.FileMode) error

	// Exists reports whether anything exists at path.
	Exists(path string) bool

	// IsDir reports whether path is an existing directory.
	IsDir(path string) bool
}

// CommandExecutor runs the editor and create commands.
type CommandExecutor interface {
	// Execute runs a command and returns its combined output.
	Execute(ctx context.Context, name string, args ...string) ([]byte, error)

	// ExecuteIn is Execute with dir as the working directory.
	ExecuteIn(ctx context.Context, dir string, name string, args ...string) ([]byte, error)

	// ExecuteInteractive runs a command attached to the terminal and waits
	// for it to exit. Terminal editors need this.
	ExecuteInteractive(ctx context.Context, name string, args ...string) error
}

var (
	defaultFS       FileSystem      = osFileSystem{}
	defaultExecutor CommandExecutor = &osExecutor{waitDelay: DefaultWaitDelay}
)

// DefaultFS returns the FileSystem backed by the os package.
func DefaultFS() FileSystem {
	return defaultFS
}

// DefaultExecutor returns the CommandExecutor backed by os/exec.
func DefaultExecutor() CommandExecutor {
	return defaultExecutor
}

type osFileSystem struct{}

func (osFileSystem) MkdirAll(path string, perm fs.FileMode) error {
	return os.MkdirAll(path, perm)
}

func (osFileSystem) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func (osFileSystem) IsDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
