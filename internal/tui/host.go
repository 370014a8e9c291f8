package tui

import (
	"context"
	"sync"

	"github.com/firefly-engineering/projctl/internal/dispatch"
)

// notice is one transient notification.
type notice struct {
	text  string
	isErr bool
}

// host is the picker's side of the dispatcher contract. Dispatches run in
// tea.Cmd goroutines, so it only records what was asked for; the model
// drains it from Update.
type host struct {
	mu sync.Mutex

	loading bool
	route   string

	viewSet bool
	view    dispatch.View
	payload dispatch.Payload

	notices []notice
}

// hostState is a snapshot of the pending requests.
type hostState struct {
	loading bool
	route   string
	viewSet bool
	view    dispatch.View
	payload dispatch.Payload
	notices []notice
}

func (h *host) ResetToLoading(_ context.Context, route string) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.loading = true
	h.route = route
	return nil
}

func (h *host) SetCurrent(view dispatch.View, p dispatch.Payload) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.viewSet = true
	h.view = view
	h.payload = p
}

func (h *host) Success(msg string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.notices = append(h.notices, notice{text: msg})
}

func (h *host) Error(msg string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.notices = append(h.notices, notice{text: msg, isErr: true})
}

// drain returns the pending requests and clears them. The loading flag is
// sticky: once the view was reset nothing else may replace it.
func (h *host) drain() hostState {
	h.mu.Lock()
	defer h.mu.Unlock()

	s := hostState{
		loading: h.loading,
		route:   h.route,
		viewSet: h.viewSet,
		view:    h.view,
		payload: h.payload,
		notices: h.notices,
	}
	h.viewSet = false
	h.view = ""
	h.payload = dispatch.Payload{}
	h.notices = nil
	return s
}
