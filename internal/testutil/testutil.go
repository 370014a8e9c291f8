// Package testutil provides test utilities for integration tests
package testutil

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/firefly-engineering/projctl/internal/app"
	"github.com/firefly-engineering/projctl/internal/config"
	"github.com/firefly-engineering/projctl/internal/logging"
	"github.com/firefly-engineering/projctl/internal/project"
	"github.com/firefly-engineering/projctl/internal/system"
)

// TestEnv holds the test environment
type TestEnv struct {
	T        *testing.T
	TmpDir   string
	Paths    *config.Paths
	Config   *config.Config
	Executor *system.MockExecutor
	FS       *system.MockFS
	App      *app.App
	cleanup  func()
}

// NewTestEnv creates a test environment backed by a temporary store, with
// a mock executor and filesystem. The app becomes app.Default until the test
// ends.
func NewTestEnv(t *testing.T) *TestEnv {
	t.Helper()

	tmpDir := t.TempDir()

	paths := &config.Paths{
		ConfigDir: filepath.Join(tmpDir, "config"),
		StateDir:  filepath.Join(tmpDir, "state"),
	}

	for _, dir := range []string{paths.ConfigDir, paths.StateDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			t.Fatalf("Failed to create directory %s: %v", dir, err)
		}
	}

	cfg := config.Default()
	cfg.Editor = "code"
	cfg.CreateCommand = "npm create umi@latest ."

	exec := system.NewMockExecutor()
	fs := system.NewMockFS()

	testApp, err := app.New(
		app.WithPaths(paths),
		app.WithConfig(cfg),
		app.WithExecutor(exec),
		app.WithFileSystem(fs),
		app.WithLogger(logging.Discard()),
	)
	if err != nil {
		t.Fatalf("Failed to create app: %v", err)
	}

	// Save original default and set test app
	originalDefault := app.Default
	app.SetDefault(testApp)

	env := &TestEnv{
		T:        t,
		TmpDir:   tmpDir,
		Paths:    paths,
		Config:   cfg,
		Executor: exec,
		FS:       fs,
		App:      testApp,
		cleanup: func() {
			_ = testApp.Close()
			app.SetDefault(originalDefault)
		},
	}
	t.Cleanup(env.Cleanup)

	return env
}

// Cleanup closes the store and restores the original app default. It is
// safe to call more than once.
func (e *TestEnv) Cleanup() {
	if e.cleanup != nil {
		e.cleanup()
		e.cleanup = nil
	}
}

// AddProject registers a project directly in the store and makes its
// directory exist on the mock filesystem.
func (e *TestEnv) AddProject(rec project.Record) project.Record {
	e.T.Helper()

	if rec.Path == "" {
		rec.Path = filepath.Join("/src", rec.Name)
	}
	e.FS.AddDir(rec.Path)

	saved, err := e.App.Store.Insert(context.Background(), rec)
	if err != nil {
		e.T.Fatalf("Failed to add project %s: %v", rec.Name, err)
	}
	return saved
}

// SetCurrent marks key as the current project.
func (e *TestEnv) SetCurrent(key string) {
	e.T.Helper()

	if err := e.App.Store.SetCurrent(context.Background(), key); err != nil {
		e.T.Fatalf("Failed to set current project %s: %v", key, err)
	}
}

// GetProject loads a project, or nil if it does not exist.
func (e *TestEnv) GetProject(key string) *project.Record {
	rec, err := e.App.Store.Get(context.Background(), key)
	if err != nil {
		return nil
	}
	return &rec
}

// Current returns the current project key.
func (e *TestEnv) Current() string {
	e.T.Helper()

	key, err := e.App.Store.Current(context.Background())
	if err != nil {
		e.T.Fatalf("Failed to read current project: %v", err)
	}
	return key
}

// ProjectExists checks if a project exists
func (e *TestEnv) ProjectExists(key string) bool {
	return e.GetProject(key) != nil
}
