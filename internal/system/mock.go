package system

import (
	"context"
	"io/fs"
	"path/filepath"
	"strings"
	"sync"
)

// MockFS implements FileSystem for testing. It only tracks directories and
// plain file names; contents are never read.
type MockFS struct {
	mu    sync.RWMutex
	files map[string]bool
	dirs  map[string]bool

	// MkdirAllErr is returned by MkdirAll when set.
	MkdirAllErr error
}

// NewMockFS creates a new MockFS with an empty filesystem.
func NewMockFS() *MockFS {
	return &MockFS{
		files: make(map[string]bool),
		dirs:  make(map[string]bool),
	}
}

// AddFile adds a file (and its parent directories) to the mock filesystem.
func (m *MockFS) AddFile(path string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[path] = true
	m.addParents(path)
}

// AddDir adds a directory (and its parents) to the mock filesystem.
func (m *MockFS) AddDir(path string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.dirs[path] = true
	m.addParents(path)
}

func (m *MockFS) addParents(path string) {
	dir := filepath.Dir(path)
	for dir != "." && dir != "/" {
		m.dirs[dir] = true
		dir = filepath.Dir(dir)
	}
}

func (m *MockFS) MkdirAll(path string, perm fs.FileMode) error {
	if m.MkdirAllErr != nil {
		return m.MkdirAllErr
	}
	m.AddDir(path)
	return nil
}

func (m *MockFS) Exists(path string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.files[path] || m.dirs[path]
}

func (m *MockFS) IsDir(path string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.dirs[path]
}

// MockExecutor implements CommandExecutor for testing.
type MockExecutor struct {
	mu sync.Mutex

	// Commands records all executed commands for verification.
	Commands []MockCommand

	// Responses maps command patterns to responses.
	// Key format: "command" or "command arg1".
	Responses map[string]MockResponse

	// DefaultResponse is used when no matching response is found.
	DefaultResponse MockResponse

	// OnExecute, when set, is called with each command after it is
	// recorded and before its response is returned.
	OnExecute func(MockCommand)
}

// MockCommand records an executed command.
type MockCommand struct {
	Name string
	Args []string
	Dir  string

	// Interactive is set for commands run attached to the terminal.
	Interactive bool
}

// String renders the command as "name arg1 arg2".
func (c MockCommand) String() string {
	return strings.TrimSpace(c.Name + " " + strings.Join(c.Args, " "))
}

// MockResponse defines the response for a command.
type MockResponse struct {
	Output []byte
	Err    error
}

// NewMockExecutor creates a new MockExecutor.
func NewMockExecutor() *MockExecutor {
	return &MockExecutor{
		Commands:  make([]MockCommand, 0),
		Responses: make(map[string]MockResponse),
	}
}

// AddResponse adds a response for a specific command pattern.
func (m *MockExecutor) AddResponse(pattern string, output []byte, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Responses[pattern] = MockResponse{Output: output, Err: err}
}

func (m *MockExecutor) Execute(ctx context.Context, name string, args ...string) ([]byte, error) {
	return m.ExecuteIn(ctx, "", name, args...)
}

func (m *MockExecutor) ExecuteIn(ctx context.Context, dir string, name string, args ...string) ([]byte, error) {
	return m.run(MockCommand{Name: name, Args: args, Dir: dir})
}

func (m *MockExecutor) ExecuteInteractive(ctx context.Context, name string, args ...string) error {
	_, err := m.run(MockCommand{Name: name, Args: args, Interactive: true})
	return err
}

func (m *MockExecutor) run(c MockCommand) ([]byte, error) {
	m.mu.Lock()
	m.Commands = append(m.Commands, c)
	resp := m.lookup(c.Name, c.Args)
	hook := m.OnExecute
	m.mu.Unlock()

	if hook != nil {
		hook(c)
	}
	return resp.Output, resp.Err
}

func (m *MockExecutor) lookup(name string, args []string) MockResponse {
	if len(args) > 0 {
		if resp, ok := m.Responses[name+" "+args[0]]; ok {
			return resp
		}
	}
	if resp, ok := m.Responses[name]; ok {
		return resp
	}
	return m.DefaultResponse
}

// LastCommand returns the most recently executed command.
func (m *MockExecutor) LastCommand() (MockCommand, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Commands) == 0 {
		return MockCommand{}, false
	}
	return m.Commands[len(m.Commands)-1], true
}

// Reset clears all recorded commands.
func (m *MockExecutor) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Commands = make([]MockCommand, 0)
}
