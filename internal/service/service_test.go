package service

import (
	"context"
	stderrors "errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/firefly-engineering/projctl/internal/audit"
	"github.com/firefly-engineering/projctl/internal/config"
	"github.com/firefly-engineering/projctl/internal/errors"
	"github.com/firefly-engineering/projctl/internal/project"
	"github.com/firefly-engineering/projctl/internal/store"
	"github.com/firefly-engineering/projctl/internal/system"
)

type testService struct {
	*Service
	store *store.Store
	exec  *system.MockExecutor
	fs    *system.MockFS
	cfg   *config.Config
}

var fixedNow = time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)

func newTestService(t *testing.T) *testService {
	t.Helper()

	st, err := store.Open(filepath.Join(t.TempDir(), "projects.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	cfg := config.Default()
	cfg.Editor = "code --reuse-window"
	cfg.CreateCommand = `npm create "umi@latest" .`

	exec := system.NewMockExecutor()
	fs := system.NewMockFS()

	svc := New(st, cfg,
		WithExecutor(exec),
		WithFileSystem(fs),
		WithClock(func() time.Time { return fixedNow }),
	)
	return &testService{Service: svc, store: st, exec: exec, fs: fs, cfg: cfg}
}

func exitCode(t *testing.T, err error) int {
	t.Helper()
	require.Error(t, err)
	return errors.GetExitCode(err)
}

func TestImport(t *testing.T) {
	ts := newTestService(t)
	ctx := context.Background()
	ts.fs.AddDir("/src/shop")

	rec, err := ts.Import(ctx, "/src/shop", "")
	require.NoError(t, err)
	assert.Equal(t, "shop", rec.Name)
	assert.Equal(t, "/src/shop", rec.Path)
	assert.Equal(t, fixedNow.UnixMilli(), rec.CreatedAt)
	assert.Equal(t, project.StatusSuccess, project.Classify(rec))

	t.Run("custom name", func(t *testing.T) {
		ts.fs.AddDir("/src/blog")
		rec, err := ts.Import(ctx, "/src/blog", "  My Blog ")
		require.NoError(t, err)
		assert.Equal(t, "My Blog", rec.Name)
	})

	t.Run("duplicate path", func(t *testing.T) {
		_, err := ts.Import(ctx, "/src/shop/", "")
		assert.Contains(t, err.Error(), "already registered")
	})

	t.Run("not a directory", func(t *testing.T) {
		ts.fs.AddFile("/src/readme.md")
		_, err := ts.Import(ctx, "/src/readme.md", "")
		assert.Contains(t, err.Error(), "not a directory")
	})

	t.Run("empty path", func(t *testing.T) {
		_, err := ts.Import(ctx, " ", "")
		assert.Contains(t, err.Error(), "cannot be empty")
	})
}

func TestImport_ProjectsRoot(t *testing.T) {
	ts := newTestService(t)
	ctx := context.Background()
	root := t.TempDir()
	ts.cfg.ProjectsRoot = root

	ts.fs.AddDir(filepath.Join(root, "app"))
	rec, err := ts.Import(ctx, "app", "")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "app"), rec.Path)

	// Traversal is clamped to the root rather than escaping it.
	ts.fs.AddDir(filepath.Join(root, "etc"))
	rec, err = ts.Import(ctx, "../../../etc", "")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "etc"), rec.Path)
}

func TestSetCurrentProject(t *testing.T) {
	ts := newTestService(t)
	ctx := context.Background()
	ts.fs.AddDir("/src/a")
	rec, err := ts.Import(ctx, "/src/a", "")
	require.NoError(t, err)

	require.NoError(t, ts.SetCurrentProject(ctx, rec.Key))
	coll, err := ts.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, rec.Key, coll.Current)

	assert.Equal(t, errors.ExitProjectNotFound, exitCode(t, ts.SetCurrentProject(ctx, "missing")))
}

func TestOpenInEditor(t *testing.T) {
	ts := newTestService(t)
	ctx := context.Background()
	ts.fs.AddDir("/src/my app")
	rec, err := ts.Import(ctx, "/src/my app", "")
	require.NoError(t, err)

	t.Run("runs editor with path appended", func(t *testing.T) {
		require.NoError(t, ts.OpenInEditor(ctx, rec.Key))
		cmd, ok := ts.exec.LastCommand()
		require.True(t, ok)
		assert.Equal(t, "code", cmd.Name)
		assert.Equal(t, []string{"--reuse-window", "/src/my app"}, cmd.Args)
	})

	t.Run("editor failure carries output", func(t *testing.T) {
		ts.exec.AddResponse("code", []byte("code: command not found\n"), stderrors.New("exit status 127"))
		defer delete(ts.exec.Responses, "code")

		err := ts.OpenInEditor(ctx, rec.Key)
		assert.Equal(t, errors.ExitEditorError, exitCode(t, err))
		assert.Contains(t, err.Error(), "command not found")
	})

	t.Run("malformed editor command", func(t *testing.T) {
		ts.cfg.Editor = `code "unterminated`
		defer func() { ts.cfg.Editor = "code --reuse-window" }()

		assert.Equal(t, errors.ExitEditorError, exitCode(t, ts.OpenInEditor(ctx, rec.Key)))
	})

	t.Run("terminal editor runs attached", func(t *testing.T) {
		ts.cfg.Editor = "nvim -O"
		defer func() { ts.cfg.Editor = "code --reuse-window" }()

		require.NoError(t, ts.OpenInEditor(ctx, rec.Key))
		cmd, ok := ts.exec.LastCommand()
		require.True(t, ok)
		assert.True(t, cmd.Interactive)
		assert.Equal(t, "nvim", cmd.Name)
		assert.Equal(t, []string{"-O", "/src/my app"}, cmd.Args)
	})

	t.Run("terminal editor failure", func(t *testing.T) {
		ts.cfg.Editor = "vim"
		ts.exec.AddResponse("vim", nil, stderrors.New("exit status 1"))
		defer func() {
			ts.cfg.Editor = "code --reuse-window"
			delete(ts.exec.Responses, "vim")
		}()

		assert.Equal(t, errors.ExitEditorError, exitCode(t, ts.OpenInEditor(ctx, rec.Key)))
	})

	t.Run("unknown project", func(t *testing.T) {
		assert.Equal(t, errors.ExitProjectNotFound, exitCode(t, ts.OpenInEditor(ctx, "missing")))
	})
}

func TestEditorLaunch(t *testing.T) {
	ts := newTestService(t)
	ctx := context.Background()
	ts.fs.AddDir("/src/a")
	rec, err := ts.Import(ctx, "/src/a", "")
	require.NoError(t, err)

	yes, no := true, false
	tests := []struct {
		name     string
		editor   string
		override *bool
		terminal bool
	}{
		{"gui editor", "code --reuse-window", nil, false},
		{"terminal editor", "vim", nil, true},
		{"terminal editor by path", "/usr/bin/nano", nil, true},
		{"forced terminal", "emacs -nw", &yes, true},
		{"forced gui", "nvim", &no, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts.cfg.Editor = tt.editor
			ts.cfg.EditorTerminal = tt.override
			defer func() {
				ts.cfg.Editor = "code --reuse-window"
				ts.cfg.EditorTerminal = nil
			}()

			l, err := ts.EditorLaunch(ctx, rec.Key)
			require.NoError(t, err)
			assert.Equal(t, rec.Key, l.Key)
			assert.Equal(t, "/src/a", l.Argv[len(l.Argv)-1])
			assert.Equal(t, tt.terminal, l.Terminal)
		})
	}
}

func TestEditorExited(t *testing.T) {
	ts := newTestService(t)
	ts.activity = audit.NewLogger(t.TempDir())
	l := EditorLaunch{Key: "k1", Argv: []string{"vim", "/src/a"}, Terminal: true}

	require.NoError(t, ts.EditorExited(l, nil))
	assert.Equal(t, errors.ExitEditorError, exitCode(t, ts.EditorExited(l, stderrors.New("exit status 1"))))

	events, err := ts.History("k1", 0)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, audit.EventEditor, events[0].Type)
	assert.Equal(t, "vim", events[0].Details)
}

func TestEditProject(t *testing.T) {
	ts := newTestService(t)
	ctx := context.Background()
	ts.fs.AddDir("/src/a")
	rec, err := ts.Import(ctx, "/src/a", "")
	require.NoError(t, err)

	require.NoError(t, ts.EditProject(ctx, project.Edit{Key: rec.Key, Name: " renamed "}))
	got, err := ts.Get(ctx, rec.Key)
	require.NoError(t, err)
	assert.Equal(t, "renamed", got.Name)

	err = ts.EditProject(ctx, project.Edit{Key: rec.Key, Name: "   "})
	assert.Contains(t, err.Error(), "cannot be empty")

	assert.Equal(t, errors.ExitProjectNotFound, exitCode(t, ts.EditProject(ctx, project.Edit{Key: "missing", Name: "x"})))
}

func TestDeleteProject(t *testing.T) {
	ts := newTestService(t)
	ctx := context.Background()
	ts.fs.AddDir("/src/a")
	rec, err := ts.Import(ctx, "/src/a", "")
	require.NoError(t, err)
	require.NoError(t, ts.SetCurrentProject(ctx, rec.Key))

	require.NoError(t, ts.DeleteProject(ctx, rec.Key))

	coll, err := ts.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, coll.Len())
	assert.Empty(t, coll.Current)

	assert.Equal(t, errors.ExitProjectNotFound, exitCode(t, ts.DeleteProject(ctx, rec.Key)))
}

func TestCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		ts := newTestService(t)

		rec, err := ts.Create(ctx, "/src/new-app", "")
		require.NoError(t, err)
		assert.Equal(t, "new-app", rec.Name)
		assert.True(t, ts.fs.IsDir("/src/new-app"))

		cmd, ok := ts.exec.LastCommand()
		require.True(t, ok)
		assert.Equal(t, "npm", cmd.Name)
		assert.Equal(t, []string{"create", "umi@latest", "."}, cmd.Args)
		assert.Equal(t, "/src/new-app", cmd.Dir)

		stored, err := ts.Get(ctx, rec.Key)
		require.NoError(t, err)
		assert.Equal(t, project.StatusSuccess, project.Classify(stored))
		assert.Equal(t, project.CreationSucceeded, stored.CreatingProgress.State)
	})

	t.Run("command failure is recorded", func(t *testing.T) {
		ts := newTestService(t)
		ts.exec.AddResponse("npm", []byte("ENOSPC\n"), stderrors.New("exit status 1"))

		rec, err := ts.Create(ctx, "/src/broken", "Broken")
		assert.Equal(t, errors.ExitCreateFailed, exitCode(t, err))

		stored, err := ts.Get(ctx, rec.Key)
		require.NoError(t, err)
		assert.Equal(t, project.StatusFailure, project.Classify(stored))
		assert.Contains(t, stored.CreatingProgress.Reason, "ENOSPC")
		assert.Equal(t, "run create command", stored.CreatingProgress.CurrentStep())
	})

	t.Run("mkdir failure is recorded", func(t *testing.T) {
		ts := newTestService(t)
		ts.fs.MkdirAllErr = stderrors.New("permission denied")

		rec, err := ts.Create(ctx, "/root/forbidden", "")
		assert.Equal(t, errors.ExitCreateFailed, exitCode(t, err))

		stored, err := ts.Get(ctx, rec.Key)
		require.NoError(t, err)
		assert.Equal(t, project.StatusFailure, project.Classify(stored))
		assert.Empty(t, ts.exec.Commands)
	})

	t.Run("not configured", func(t *testing.T) {
		ts := newTestService(t)
		ts.cfg.CreateCommand = ""

		_, err := ts.Create(ctx, "/src/x", "")
		assert.Contains(t, err.Error(), "create_command")
	})

	t.Run("path is a file", func(t *testing.T) {
		ts := newTestService(t)
		ts.fs.AddFile("/src/file")

		_, err := ts.Create(ctx, "/src/file", "")
		assert.Contains(t, err.Error(), "not a directory")
	})
}

func TestCreate_Interrupted(t *testing.T) {
	ts := newTestService(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Ctrl-C while the create command runs.
	ts.exec.OnExecute = func(system.MockCommand) { cancel() }
	ts.exec.AddResponse("npm", nil, context.Canceled)

	rec, err := ts.Create(ctx, "/src/new-app", "")
	assert.Equal(t, errors.ExitCreateFailed, exitCode(t, err))

	stored, err := ts.store.Get(context.Background(), rec.Key)
	require.NoError(t, err)
	assert.Equal(t, project.StatusFailure, project.Classify(stored))
	assert.Contains(t, stored.CreatingProgress.Reason, "context canceled")
}

func TestHistory(t *testing.T) {
	ts := newTestService(t)
	ctx := context.Background()
	ts.activity = audit.NewLogger(t.TempDir())

	ts.fs.AddDir("/src/shop")
	rec, err := ts.Import(ctx, "/src/shop", "")
	require.NoError(t, err)

	require.NoError(t, ts.SetCurrentProject(ctx, rec.Key))
	require.NoError(t, ts.EditProject(ctx, project.Edit{Key: rec.Key, Name: "store"}))
	require.NoError(t, ts.OpenInEditor(ctx, rec.Key))
	require.NoError(t, ts.DeleteProject(ctx, rec.Key))

	events, err := ts.History(rec.Key, 0)
	require.NoError(t, err)

	var types []audit.EventType
	for _, e := range events {
		types = append(types, e.Type)
	}
	assert.Equal(t, []audit.EventType{
		audit.EventRegister,
		audit.EventOpen,
		audit.EventRename,
		audit.EventEditor,
		audit.EventDelete,
	}, types)
	assert.Equal(t, "name=store", events[2].Details)
}

func TestHistory_CreateFailure(t *testing.T) {
	ts := newTestService(t)
	ctx := context.Background()
	ts.activity = audit.NewLogger(t.TempDir())
	ts.exec.AddResponse("npm", []byte("ENOSPC"), stderrors.New("exit status 1"))

	rec, err := ts.Create(ctx, "/src/new-app", "")
	require.Error(t, err)

	events, err := ts.History(rec.Key, 0)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, audit.EventCreateFailed, events[0].Type)
	assert.Contains(t, events[0].Details, "ENOSPC")
}

func TestHistory_Disabled(t *testing.T) {
	ts := newTestService(t)

	events, err := ts.History("anything", 0)
	require.NoError(t, err)
	assert.Empty(t, events)
}
