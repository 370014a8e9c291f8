package dispatch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/firefly-engineering/projctl/internal/logging"
	"github.com/firefly-engineering/projctl/internal/project"
)

// Action is a user intent on one project.
type Action string

const (
	ActionOpen     Action = "open"
	ActionDelete   Action = "delete"
	ActionEditor   Action = "editor"
	ActionEdit     Action = "edit"
	ActionProgress Action = "progress"
)

// Actions lists every action kind.
var Actions = []Action{ActionOpen, ActionDelete, ActionEditor, ActionEdit, ActionProgress}

// View names the host views the dispatcher can switch to.
type View string

const (
	ViewImport   View = "import"
	ViewCreate   View = "create"
	ViewProgress View = "progress"
)

// DashboardRoute is where the host lands after a project is opened.
const DashboardRoute = "/dashboard"

// Notification texts.
const (
	MsgDeleteSuccess = "Project deleted"
	MsgDeleteFailure = "Failed to delete project"
	MsgEditSuccess   = "Project updated"
	MsgEditFailure   = "Failed to update project"
	MsgEditorFailure = "Failed to open editor"
)

// ErrUnknownAction is returned for an action outside Actions.
var ErrUnknownAction = errors.New("unknown action")

// Payload identifies the target project plus action-specific fields.
type Payload struct {
	Key  string
	Name string
}

// Service is the project service contract the dispatcher relies on.
type Service interface {
	SetCurrentProject(ctx context.Context, key string) error
	OpenInEditor(ctx context.Context, key string) error
	EditProject(ctx context.Context, edit project.Edit) error
	DeleteProject(ctx context.Context, key string) error
}

// Navigator is the host's view-transition mechanism.
type Navigator interface {
	// ResetToLoading tears down the current view and shows a loading view
	// on the way to route.
	ResetToLoading(ctx context.Context, route string) error

	// SetCurrent switches the host to view.
	SetCurrent(view View, payload Payload)
}

// Notifier shows transient, non-blocking messages.
type Notifier interface {
	Success(msg string)
	Error(msg string)
}

// EditModal is the edit form's UI state.
type EditModal struct {
	Visible       bool
	InitialValues Payload
}

// Dispatcher maps actions to service calls and UI state changes.
type Dispatcher struct {
	svc    Service
	nav    Navigator
	notify Notifier
	logger *slog.Logger

	mu    sync.Mutex
	modal EditModal
}

// Option is a function that configures the Dispatcher
type Option func(*Dispatcher)

// WithLogger sets the dispatcher's logger
func WithLogger(l *slog.Logger) Option {
	return func(d *Dispatcher) {
		d.logger = l
	}
}

// New creates a Dispatcher.
func New(svc Service, nav Navigator, notify Notifier, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		svc:    svc,
		nav:    nav,
		notify: notify,
		logger: logging.Discard(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Dispatch performs action on the project named by p.Key. The delete
// action assumes the user already confirmed.
func (d *Dispatcher) Dispatch(ctx context.Context, action Action, p Payload) error {
	d.logger.Debug("dispatch", "action", action, "key", p.Key)

	switch action {
	case ActionOpen:
		return d.open(ctx, p)
	case ActionDelete:
		return d.delete(ctx, p)
	case ActionEditor:
		d.editor(ctx, p)
		return nil
	case ActionEdit:
		d.mu.Lock()
		d.modal = EditModal{Visible: true, InitialValues: p}
		d.mu.Unlock()
		return nil
	case ActionProgress:
		d.nav.SetCurrent(ViewProgress, p)
		return nil
	default:
		return fmt.Errorf("%w: %q (want one of %v)", ErrUnknownAction, action, Actions)
	}
}

func (d *Dispatcher) open(ctx context.Context, p Payload) error {
	if err := d.svc.SetCurrentProject(ctx, p.Key); err != nil {
		return err
	}
	return d.nav.ResetToLoading(ctx, DashboardRoute)
}

// delete reports failures to the user as well as to the caller.
func (d *Dispatcher) delete(ctx context.Context, p Payload) error {
	if err := d.svc.DeleteProject(ctx, p.Key); err != nil {
		d.logger.Warn("delete failed", "key", p.Key, "error", err)
		d.notify.Error(failureText(MsgDeleteFailure, err))
		return err
	}
	d.notify.Success(MsgDeleteSuccess)
	return nil
}

func (d *Dispatcher) editor(ctx context.Context, p Payload) {
	if err := d.svc.OpenInEditor(ctx, p.Key); err != nil {
		d.logger.Debug("editor failed", "key", p.Key, "error", err)
		d.notify.Error(errorText(err, MsgEditorFailure))
	}
}

// TitleAction picks the action for activating a project's title: projects
// still being created show their progress, everything else opens.
func TitleAction(r project.Record) Action {
	if project.Classify(r) == project.StatusProgress {
		return ActionProgress
	}
	return ActionOpen
}

// TitleClick dispatches TitleAction(r) for r.
func (d *Dispatcher) TitleClick(ctx context.Context, r project.Record) error {
	return d.Dispatch(ctx, TitleAction(r), Payload{Key: r.Key})
}

// Modal returns the edit modal state.
func (d *Dispatcher) Modal() EditModal {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.modal
}

// CancelEdit closes the edit modal and clears its values.
func (d *Dispatcher) CancelEdit() {
	d.mu.Lock()
	d.modal = EditModal{}
	d.mu.Unlock()
}

// SubmitEdit closes the modal, then persists the edit. The modal stays
// closed whatever the outcome.
func (d *Dispatcher) SubmitEdit(ctx context.Context, p Payload) error {
	d.CancelEdit()

	if err := d.svc.EditProject(ctx, project.Edit{Key: p.Key, Name: p.Name}); err != nil {
		d.logger.Warn("edit failed", "key", p.Key, "error", err)
		d.notify.Error(failureText(MsgEditFailure, err))
		return err
	}
	d.notify.Success(MsgEditSuccess)
	return nil
}

// errorText returns err's message, or fallback when it has none.
func errorText(err error, fallback string) string {
	if err == nil {
		return fallback
	}
	if msg := strings.TrimSpace(err.Error()); msg != "" {
		return msg
	}
	return fallback
}

func failureText(prefix string, err error) string {
	msg := errorText(err, "")
	if msg == "" {
		return prefix
	}
	return prefix + ": " + msg
}
