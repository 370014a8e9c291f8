package service

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	securejoin "github.com/cyphar/filepath-securejoin"
	shellquote "github.com/kballard/go-shellquote"

	"github.com/firefly-engineering/projctl/internal/audit"
	"github.com/firefly-engineering/projctl/internal/config"
	"github.com/firefly-engineering/projctl/internal/errors"
	"github.com/firefly-engineering/projctl/internal/logging"
	"github.com/firefly-engineering/projctl/internal/project"
	"github.com/firefly-engineering/projctl/internal/store"
	"github.com/firefly-engineering/projctl/internal/system"
)

// CreateSteps are the steps of a creation job, in order.
var CreateSteps = []string{"prepare directory", "run create command", "finish"}

// Service is the project service.
type Service struct {
	store    *store.Store
	cfg      *config.Config
	exec     system.CommandExecutor
	fs       system.FileSystem
	activity *audit.Logger
	logger   *slog.Logger
	now      func() time.Time
}

// Option is a function that configures the Service
type Option func(*Service)

// WithExecutor sets the command executor used for the editor and scaffolding
func WithExecutor(e system.CommandExecutor) Option {
	return func(s *Service) {
		s.exec = e
	}
}

// WithFileSystem sets the file system used for path checks
func WithFileSystem(fs system.FileSystem) Option {
	return func(s *Service) {
		s.fs = fs
	}
}

// WithLogger sets the logger
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		s.logger = l
	}
}

// WithAudit records project activity to l
func WithAudit(l *audit.Logger) Option {
	return func(s *Service) {
		s.activity = l
	}
}

// WithClock sets the time source used for creation timestamps
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// New creates a Service backed by st.
func New(st *store.Store, cfg *config.Config, opts ...Option) *Service {
	if cfg == nil {
		cfg = config.Default()
	}
	s := &Service{
		store:  st,
		cfg:    cfg,
		exec:   system.DefaultExecutor(),
		fs:     system.DefaultFS(),
		logger: logging.Discard(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// List returns the registered projects.
func (s *Service) List(ctx context.Context) (project.Collection, error) {
	coll, err := s.store.List(ctx)
	if err != nil {
		return project.Collection{}, errors.StoreError("list", err)
	}
	return coll, nil
}

// Get returns one project.
func (s *Service) Get(ctx context.Context, key string) (project.Record, error) {
	rec, err := s.store.Get(ctx, key)
	if err != nil {
		return project.Record{}, storeErr("get", key, err)
	}
	return rec, nil
}

// SetCurrentProject makes key the active project.
func (s *Service) SetCurrentProject(ctx context.Context, key string) error {
	s.logger.Debug("setting current project", "key", key)
	if err := s.store.SetCurrent(ctx, key); err != nil {
		return storeErr("set current", key, err)
	}
	s.record(audit.EventOpen, key, "")
	return nil
}

// EditorLaunch is a resolved editor command for one project.
type EditorLaunch struct {
	Key  string
	Argv []string // editor command line with the project path appended

	// Terminal is set when the editor takes over the terminal and must
	// run attached to it.
	Terminal bool
}

// EditorLaunch resolves the editor command line for a project.
func (s *Service) EditorLaunch(ctx context.Context, key string) (EditorLaunch, error) {
	rec, err := s.Get(ctx, key)
	if err != nil {
		return EditorLaunch{}, err
	}

	argv, err := commandLine(s.cfg.EditorCommand())
	if err != nil {
		return EditorLaunch{}, errors.EditorFailed(err)
	}
	return EditorLaunch{
		Key:      key,
		Argv:     append(argv, rec.Path),
		Terminal: s.cfg.IsTerminalEditor(argv[0]),
	}, nil
}

// OpenInEditor launches the configured editor on the project's directory.
// Terminal editors run attached to the terminal and block until they exit.
func (s *Service) OpenInEditor(ctx context.Context, key string) error {
	l, err := s.EditorLaunch(ctx, key)
	if err != nil {
		return err
	}

	s.logger.Debug("opening editor", "key", key, "command", shellquote.Join(l.Argv...), "terminal", l.Terminal)

	if l.Terminal {
		err = s.exec.ExecuteInteractive(ctx, l.Argv[0], l.Argv[1:]...)
	} else {
		var out []byte
		out, err = s.exec.Execute(ctx, l.Argv[0], l.Argv[1:]...)
		err = withOutput(err, out)
	}
	return s.EditorExited(l, err)
}

// EditorExited finishes an editor session started from l, by OpenInEditor
// or by a caller that ran the command itself.
func (s *Service) EditorExited(l EditorLaunch, err error) error {
	if err != nil {
		return errors.EditorFailed(err)
	}
	s.record(audit.EventEditor, l.Key, l.Argv[0])
	return nil
}

// EditProject persists the editable fields of a project.
func (s *Service) EditProject(ctx context.Context, edit project.Edit) error {
	name := strings.TrimSpace(edit.Name)
	if name == "" {
		return errors.ValidationError("project name cannot be empty")
	}

	s.logger.Debug("renaming project", "key", edit.Key, "name", name)
	if err := s.store.Rename(ctx, edit.Key, name); err != nil {
		return storeErr("rename", edit.Key, err)
	}
	s.record(audit.EventRename, edit.Key, "name="+name)
	return nil
}

// DeleteProject unregisters a project. Files on disk are left alone.
func (s *Service) DeleteProject(ctx context.Context, key string) error {
	s.logger.Debug("deleting project", "key", key)
	if err := s.store.Delete(ctx, key); err != nil {
		return storeErr("delete", key, err)
	}
	s.record(audit.EventDelete, key, "")
	return nil
}

// Import registers an existing directory as a project. An empty name
// defaults to the directory's base name.
func (s *Service) Import(ctx context.Context, path, name string) (project.Record, error) {
	dir, err := s.resolvePath(path)
	if err != nil {
		return project.Record{}, err
	}
	if !s.fs.IsDir(dir) {
		return project.Record{}, errors.ValidationError(fmt.Sprintf("not a directory: %s", dir))
	}

	rec, err := s.insert(ctx, project.Record{
		Name:      defaultName(name, dir),
		Path:      dir,
		CreatedAt: s.now().UnixMilli(),
	})
	if err != nil {
		return project.Record{}, err
	}
	s.record(audit.EventRegister, rec.Key, "path="+dir)
	return rec, nil
}

// Create registers a new project and runs the configured create command in
// its directory, recording each step in the project's creation progress.
// The returned record reflects the registration; on failure the error is
// also recorded as the project's failure reason.
func (s *Service) Create(ctx context.Context, path, name string) (project.Record, error) {
	if s.cfg.CreateCommand == "" {
		return project.Record{}, errors.ValidationError("create_command is not configured")
	}
	argv, err := commandLine(s.cfg.CreateCommand)
	if err != nil {
		return project.Record{}, errors.ConfigError("invalid create_command", err)
	}

	dir, err := s.resolvePath(path)
	if err != nil {
		return project.Record{}, err
	}
	if s.fs.Exists(dir) && !s.fs.IsDir(dir) {
		return project.Record{}, errors.ValidationError(fmt.Sprintf("not a directory: %s", dir))
	}

	rec, err := s.insert(ctx, project.Record{
		Name:             defaultName(name, dir),
		Path:             dir,
		CreatedAt:        s.now().UnixMilli(),
		CreatingProgress: project.InProgress(0, CreateSteps),
	})
	if err != nil {
		return project.Record{}, err
	}

	log := s.logger.With("key", rec.Key, "path", dir)

	fail := func(step int, cause error) (project.Record, error) {
		log.Debug("create failed", "step", CreateSteps[step], "error", cause)
		// The caller's context is often what failed; the marker must still land.
		if err := s.store.UpdateProgress(context.WithoutCancel(ctx), rec.Key, project.Failed(cause.Error(), step, CreateSteps)); err != nil {
			log.Warn("failed to record create failure", "error", err)
		}
		s.record(audit.EventCreateFailed, rec.Key, cause.Error())
		return rec, errors.CreateFailed(rec.Name, cause)
	}

	if err := s.fs.MkdirAll(dir, 0755); err != nil {
		return fail(0, err)
	}

	if err := s.store.UpdateProgress(ctx, rec.Key, project.InProgress(1, CreateSteps)); err != nil {
		return fail(1, err)
	}
	log.Debug("running create command", "command", shellquote.Join(argv...))
	out, err := s.exec.ExecuteIn(ctx, dir, argv[0], argv[1:]...)
	if err != nil {
		return fail(1, withOutput(err, out))
	}

	if err := s.store.UpdateProgress(ctx, rec.Key, project.InProgress(2, CreateSteps)); err != nil {
		return fail(2, err)
	}
	if err := s.store.UpdateProgress(ctx, rec.Key, project.Succeeded(CreateSteps)); err != nil {
		return fail(2, err)
	}

	rec.CreatingProgress = project.Succeeded(CreateSteps)
	s.record(audit.EventCreate, rec.Key, "path="+dir)
	return rec, nil
}

// History returns the last limit events of a project, oldest first. A
// limit of zero or less returns everything.
func (s *Service) History(key string, limit int) ([]audit.Event, error) {
	if s.activity == nil {
		return nil, nil
	}
	return s.activity.Recent(key, limit)
}

// record appends to the activity log. Failures only get logged: history
// is informational and never fails the operation.
func (s *Service) record(t audit.EventType, key, details string) {
	if s.activity == nil {
		return
	}
	if err := s.activity.LogEvent(t, key, details); err != nil {
		s.logger.Warn("failed to record activity", "key", key, "event", t, "error", err)
	}
}

func (s *Service) insert(ctx context.Context, rec project.Record) (project.Record, error) {
	stored, err := s.store.Insert(ctx, rec)
	if errors.Is(err, store.ErrConflict) {
		return project.Record{}, errors.ValidationError(fmt.Sprintf("project already registered: %s", rec.Path))
	}
	if err != nil {
		return project.Record{}, errors.StoreError("insert", err)
	}
	return stored, nil
}

// resolvePath turns a user-supplied path into an absolute one. Relative
// paths are joined under ProjectsRoot when configured and cannot escape it.
func (s *Service) resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return "", errors.ValidationError("project path cannot be empty")
	}
	if filepath.IsAbs(path) {
		return filepath.Clean(path), nil
	}
	if s.cfg.ProjectsRoot != "" {
		joined, err := securejoin.SecureJoin(s.cfg.ProjectsRoot, path)
		if err != nil {
			return "", errors.ValidationError(fmt.Sprintf("invalid project path %q: %v", path, err))
		}
		return joined, nil
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", errors.ValidationError(fmt.Sprintf("invalid project path %q: %v", path, err))
	}
	return abs, nil
}

func commandLine(cmd string) ([]string, error) {
	argv, err := shellquote.Split(cmd)
	if err != nil {
		return nil, fmt.Errorf("invalid command %q: %w", cmd, err)
	}
	if len(argv) == 0 {
		return nil, fmt.Errorf("empty command")
	}
	return argv, nil
}

func withOutput(err error, out []byte) error {
	if err == nil {
		return nil
	}
	msg := strings.TrimSpace(string(out))
	if msg == "" {
		return err
	}
	return fmt.Errorf("%w: %s", err, msg)
}

func defaultName(name, dir string) string {
	if n := strings.TrimSpace(name); n != "" {
		return n
	}
	return filepath.Base(dir)
}

func storeErr(op, key string, err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return errors.ProjectNotFound(key)
	}
	return errors.StoreError(op, err)
}
