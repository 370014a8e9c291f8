package dispatch

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/firefly-engineering/projctl/internal/project"
)

type fakeService struct {
	mu    sync.Mutex
	calls []string
	edits []project.Edit

	setCurrentErr error
	editorErr     error
	editErr       error
	deleteErr     error
}

func (f *fakeService) record(call string) {
	f.mu.Lock()
	f.calls = append(f.calls, call)
	f.mu.Unlock()
}

func (f *fakeService) SetCurrentProject(_ context.Context, key string) error {
	f.record("setCurrent " + key)
	return f.setCurrentErr
}

func (f *fakeService) OpenInEditor(_ context.Context, key string) error {
	f.record("editor " + key)
	return f.editorErr
}

func (f *fakeService) EditProject(_ context.Context, edit project.Edit) error {
	f.record("edit " + edit.Key)
	f.mu.Lock()
	f.edits = append(f.edits, edit)
	f.mu.Unlock()
	return f.editErr
}

func (f *fakeService) DeleteProject(_ context.Context, key string) error {
	f.record("delete " + key)
	return f.deleteErr
}

type fakeHost struct {
	routes    []string
	views     []View
	payloads  []Payload
	successes []string
	errs      []string
	resetErr  error
}

func (h *fakeHost) ResetToLoading(_ context.Context, route string) error {
	h.routes = append(h.routes, route)
	return h.resetErr
}

func (h *fakeHost) SetCurrent(view View, p Payload) {
	h.views = append(h.views, view)
	h.payloads = append(h.payloads, p)
}

func (h *fakeHost) Success(msg string) { h.successes = append(h.successes, msg) }
func (h *fakeHost) Error(msg string)   { h.errs = append(h.errs, msg) }

func newDispatcher(svc *fakeService) (*Dispatcher, *fakeHost) {
	host := &fakeHost{}
	return New(svc, host, host), host
}

func TestDispatch_Open(t *testing.T) {
	svc := &fakeService{}
	d, host := newDispatcher(svc)

	if err := d.Dispatch(context.Background(), ActionOpen, Payload{Key: "a1"}); err != nil {
		t.Fatalf("Dispatch() error = %v", err)
	}

	if len(svc.calls) != 1 || svc.calls[0] != "setCurrent a1" {
		t.Errorf("calls = %v, want [setCurrent a1]", svc.calls)
	}
	if len(host.routes) != 1 || host.routes[0] != DashboardRoute {
		t.Errorf("routes = %v, want [%s]", host.routes, DashboardRoute)
	}
	if len(host.successes)+len(host.errs) != 0 {
		t.Errorf("open should not notify, got %v %v", host.successes, host.errs)
	}
}

func TestDispatch_OpenFailure(t *testing.T) {
	cause := errors.New("no such project")
	svc := &fakeService{setCurrentErr: cause}
	d, host := newDispatcher(svc)

	err := d.Dispatch(context.Background(), ActionOpen, Payload{Key: "a1"})
	if !errors.Is(err, cause) {
		t.Fatalf("Dispatch() error = %v, want %v", err, cause)
	}
	if len(host.routes) != 0 {
		t.Errorf("navigation should not happen, got %v", host.routes)
	}
	if len(host.errs) != 0 {
		t.Errorf("open failure should not notify, got %v", host.errs)
	}
}

func TestDispatch_OpenNavigationFailure(t *testing.T) {
	svc := &fakeService{}
	d, host := newDispatcher(svc)
	host.resetErr = errors.New("navigation failed")

	err := d.Dispatch(context.Background(), ActionOpen, Payload{Key: "a1"})
	if err == nil || err.Error() != "navigation failed" {
		t.Errorf("Dispatch() error = %v, want navigation failed", err)
	}
}

func TestDispatch_Delete(t *testing.T) {
	svc := &fakeService{}
	d, host := newDispatcher(svc)

	if err := d.Dispatch(context.Background(), ActionDelete, Payload{Key: "a1"}); err != nil {
		t.Fatalf("Dispatch() error = %v", err)
	}

	if len(svc.calls) != 1 || svc.calls[0] != "delete a1" {
		t.Errorf("calls = %v, want [delete a1]", svc.calls)
	}
	if len(host.successes) != 1 || host.successes[0] != MsgDeleteSuccess {
		t.Errorf("successes = %v, want exactly one %q", host.successes, MsgDeleteSuccess)
	}
	if len(host.errs) != 0 {
		t.Errorf("errs = %v, want none", host.errs)
	}
	if d.Modal().Visible {
		t.Error("delete should not touch the modal")
	}
}

func TestDispatch_DeleteFailure(t *testing.T) {
	svc := &fakeService{deleteErr: errors.New("database is locked")}
	d, host := newDispatcher(svc)

	err := d.Dispatch(context.Background(), ActionDelete, Payload{Key: "a1"})
	if err == nil {
		t.Fatal("Dispatch() should return the delete error")
	}
	if len(host.successes) != 0 {
		t.Errorf("successes = %v, want none", host.successes)
	}
	if len(host.errs) != 1 || !strings.Contains(host.errs[0], "database is locked") {
		t.Errorf("errs = %v, want one mentioning the cause", host.errs)
	}
}

func TestDispatch_Editor(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantErr string
	}{
		{name: "success"},
		{name: "error with message", err: errors.New("boom"), wantErr: "boom"},
		{name: "error without message", err: errors.New(""), wantErr: MsgEditorFailure},
		{name: "whitespace message", err: errors.New("  "), wantErr: MsgEditorFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeService{editorErr: tt.err}
			d, host := newDispatcher(svc)

			if err := d.Dispatch(context.Background(), ActionEditor, Payload{Key: "a1"}); err != nil {
				t.Fatalf("editor errors should be handled locally, got %v", err)
			}

			if len(svc.calls) != 1 || svc.calls[0] != "editor a1" {
				t.Errorf("calls = %v, want [editor a1]", svc.calls)
			}
			if len(host.successes) != 0 {
				t.Errorf("editor should never notify success, got %v", host.successes)
			}

			if tt.wantErr == "" {
				if len(host.errs) != 0 {
					t.Errorf("errs = %v, want none", host.errs)
				}
				return
			}
			if len(host.errs) != 1 || !strings.Contains(host.errs[0], tt.wantErr) {
				t.Errorf("errs = %v, want one containing %q", host.errs, tt.wantErr)
			}
		})
	}
}

func TestDispatch_Edit(t *testing.T) {
	svc := &fakeService{}
	d, host := newDispatcher(svc)
	p := Payload{Key: "a1", Name: "shop"}

	if err := d.Dispatch(context.Background(), ActionEdit, p); err != nil {
		t.Fatalf("Dispatch() error = %v", err)
	}

	m := d.Modal()
	if !m.Visible {
		t.Error("modal should be visible")
	}
	if m.InitialValues != p {
		t.Errorf("InitialValues = %+v, want %+v", m.InitialValues, p)
	}
	if len(svc.calls) != 0 {
		t.Errorf("edit should not call the service, got %v", svc.calls)
	}
	if len(host.successes)+len(host.errs) != 0 {
		t.Error("edit should not notify")
	}
}

func TestDispatch_Progress(t *testing.T) {
	svc := &fakeService{}
	d, host := newDispatcher(svc)

	if err := d.Dispatch(context.Background(), ActionProgress, Payload{Key: "a1"}); err != nil {
		t.Fatalf("Dispatch() error = %v", err)
	}

	if len(host.views) != 1 || host.views[0] != ViewProgress {
		t.Errorf("views = %v, want [progress]", host.views)
	}
	if host.payloads[0].Key != "a1" {
		t.Errorf("payload key = %q, want a1", host.payloads[0].Key)
	}
	if len(svc.calls) != 0 {
		t.Errorf("progress should not call the service, got %v", svc.calls)
	}
}

func TestDispatch_UnknownAction(t *testing.T) {
	d, _ := newDispatcher(&fakeService{})

	err := d.Dispatch(context.Background(), Action("archive"), Payload{Key: "a1"})
	if !errors.Is(err, ErrUnknownAction) {
		t.Errorf("Dispatch() error = %v, want ErrUnknownAction", err)
	}
	for _, a := range Actions {
		if !strings.Contains(err.Error(), string(a)) {
			t.Errorf("Dispatch() error = %q, should list %q", err, a)
		}
	}
}

func TestDispatchKnownActions(t *testing.T) {
	for _, action := range Actions {
		t.Run(string(action), func(t *testing.T) {
			d, _ := newDispatcher(&fakeService{})

			if err := d.Dispatch(context.Background(), action, Payload{Key: "a1", Name: "shop"}); errors.Is(err, ErrUnknownAction) {
				t.Errorf("Dispatch(%q) reported an unknown action", action)
			}
		})
	}
}

func TestTitleAction(t *testing.T) {
	tests := []struct {
		name     string
		progress project.CreatingProgress
		want     Action
	}{
		{"not started", project.CreatingProgress{}, ActionOpen},
		{"succeeded", project.Succeeded([]string{"a"}), ActionOpen},
		{"failed", project.Failed("npm exited 1", 1, []string{"a", "b"}), ActionOpen},
		{"in progress", project.InProgress(0, []string{"a", "b"}), ActionProgress},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := project.Record{Key: "a1", CreatingProgress: tt.progress}
			if got := TitleAction(r); got != tt.want {
				t.Errorf("TitleAction() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTitleClick_Progress(t *testing.T) {
	svc := &fakeService{}
	d, host := newDispatcher(svc)

	r := project.Record{Key: "a1", CreatingProgress: project.InProgress(1, []string{"a", "b"})}
	if err := d.TitleClick(context.Background(), r); err != nil {
		t.Fatalf("TitleClick() error = %v", err)
	}

	if len(host.views) != 1 || host.views[0] != ViewProgress {
		t.Errorf("views = %v, want [progress]", host.views)
	}
	if len(svc.calls) != 0 {
		t.Errorf("calls = %v, want none", svc.calls)
	}
}

func TestTitleClick_Open(t *testing.T) {
	svc := &fakeService{}
	d, host := newDispatcher(svc)

	if err := d.TitleClick(context.Background(), project.Record{Key: "a1"}); err != nil {
		t.Fatalf("TitleClick() error = %v", err)
	}
	if len(host.routes) != 1 {
		t.Errorf("routes = %v, want one", host.routes)
	}
}

func TestSubmitEdit(t *testing.T) {
	svc := &fakeService{}
	d, host := newDispatcher(svc)
	ctx := context.Background()

	_ = d.Dispatch(ctx, ActionEdit, Payload{Key: "a1", Name: "shop"})
	if err := d.SubmitEdit(ctx, Payload{Key: "a1", Name: "store"}); err != nil {
		t.Fatalf("SubmitEdit() error = %v", err)
	}

	if d.Modal() != (EditModal{}) {
		t.Errorf("modal = %+v, want reset", d.Modal())
	}
	if len(svc.edits) != 1 || svc.edits[0] != (project.Edit{Key: "a1", Name: "store"}) {
		t.Errorf("edits = %+v", svc.edits)
	}
	if len(host.successes) != 1 || host.successes[0] != MsgEditSuccess {
		t.Errorf("successes = %v, want [%s]", host.successes, MsgEditSuccess)
	}
}

func TestSubmitEdit_FailureKeepsModalHidden(t *testing.T) {
	svc := &fakeService{editErr: errors.New("name taken")}
	d, host := newDispatcher(svc)
	ctx := context.Background()

	_ = d.Dispatch(ctx, ActionEdit, Payload{Key: "a1", Name: "shop"})
	err := d.SubmitEdit(ctx, Payload{Key: "a1", Name: "store"})
	if err == nil {
		t.Fatal("SubmitEdit() should return the service error")
	}

	if d.Modal().Visible {
		t.Error("modal should stay hidden after a failed submit")
	}
	if len(host.successes) != 0 {
		t.Errorf("successes = %v, want none", host.successes)
	}
	if len(host.errs) != 1 || !strings.Contains(host.errs[0], "name taken") {
		t.Errorf("errs = %v", host.errs)
	}
}

func TestCancelEdit(t *testing.T) {
	d, _ := newDispatcher(&fakeService{})

	_ = d.Dispatch(context.Background(), ActionEdit, Payload{Key: "a1", Name: "shop"})
	d.CancelEdit()

	if d.Modal() != (EditModal{}) {
		t.Errorf("modal = %+v, want reset", d.Modal())
	}
}

func TestDispatch_ConcurrentDeletes(t *testing.T) {
	svc := &fakeService{}
	host := &lockedHost{}
	d := New(svc, host, host)

	var wg sync.WaitGroup
	for range 2 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = d.Dispatch(context.Background(), ActionDelete, Payload{Key: "a1"})
		}()
	}
	wg.Wait()

	if len(svc.calls) != 2 {
		t.Errorf("calls = %v, want both deletes to reach the service", svc.calls)
	}
}

type lockedHost struct {
	mu sync.Mutex
	fakeHost
}

func (h *lockedHost) Success(msg string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.fakeHost.Success(msg)
}

func (h *lockedHost) Error(msg string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.fakeHost.Error(msg)
}
