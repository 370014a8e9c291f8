package tui

import (
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/sync/errgroup"

	"github.com/firefly-engineering/projctl/internal/config"
	"github.com/firefly-engineering/projctl/internal/dispatch"
	"github.com/firefly-engineering/projctl/internal/logging"
	"github.com/firefly-engineering/projctl/internal/project"
	"github.com/firefly-engineering/projctl/internal/service"
)

// Action represents the action to take after picker selection
type Action int

const (
	ActionNone Action = iota
	ActionOpen
	ActionImport
	ActionCreate
	ActionQuit
)

// PickerResult holds the result of the picker
type PickerResult struct {
	Action  Action
	Project *project.Record
}

// Service is what the picker needs from the project service.
type Service interface {
	dispatch.Service
	List(ctx context.Context) (project.Collection, error)
}

// terminalEditor is implemented by services whose editor may need the
// terminal. The picker runs such editors itself, suspending the program
// while they are open.
type terminalEditor interface {
	EditorLaunch(ctx context.Context, key string) (service.EditorLaunch, error)
	EditorExited(l service.EditorLaunch, err error) error
}

// PickerOptions configures the picker.
type PickerOptions struct {
	// Brand selects the title and whether creating projects is offered.
	Brand string

	Logger *slog.Logger

	// Watch, when set, runs alongside the program and calls onChange
	// whenever the store changes on disk.
	Watch func(ctx context.Context, onChange func()) error

	// Copy writes text to the clipboard. Defaults to the system clipboard.
	Copy func(text string) error

	// Now is the clock used for relative creation times.
	Now func() time.Time
}

// ReloadMsg asks the picker to reload the project collection.
type ReloadMsg struct{}

type collectionMsg struct {
	collection project.Collection
	err        error
}

type editorExitMsg struct {
	launch service.EditorLaunch
	err    error
}

type dispatchDoneMsg struct {
	action  dispatch.Action
	payload dispatch.Payload
	err     error
}

type mode int

const (
	modeList mode = iota
	modeEdit
	modeProgress
	modeOpening
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")).
			MarginBottom(1)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			MarginTop(1)

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")).
			Bold(true)

	noticeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

// BrandTitle returns the picker title for brand.
func BrandTitle(brand string) string {
	if brand == config.BrandBigfish {
		return "Bigfish UI"
	}
	return "Umi UI"
}

// Model is the bubbletea model for the project picker
type Model struct {
	ctx        context.Context
	svc        Service
	editors    terminalEditor
	exec       func(*exec.Cmd, tea.ExecCallback) tea.Cmd
	dispatcher *dispatch.Dispatcher
	host       *host
	logger     *slog.Logger
	copy       func(string) error
	now        func() time.Time
	brand      string

	list       list.Model
	spinner    spinner.Model
	editInput  textinput.Model
	collection *project.Collection

	mode        mode
	editKey     string
	progressKey string
	confirmKey  string
	notice      notice

	result   PickerResult
	quitting bool
	width    int
	height   int
}

// NewPicker creates a new project picker. The collection is loaded by Init.
func NewPicker(ctx context.Context, svc Service, opts PickerOptions) Model {
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	copyFn := opts.Copy
	if copyFn == nil {
		copyFn = clipboard.WriteAll
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	h := &host{}
	editors, _ := svc.(terminalEditor)

	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = selectedStyle
	delegate.Styles.SelectedDesc = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))

	l := list.New(nil, delegate, 80, 20)
	l.Title = BrandTitle(opts.Brand)
	l.SetShowStatusBar(true)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(true)
	l.Styles.Title = titleStyle

	ti := textinput.New()
	ti.Placeholder = "project name"
	ti.CharLimit = 128
	ti.Width = 40

	return Model{
		ctx:        ctx,
		svc:        svc,
		editors:    editors,
		exec:       tea.ExecProcess,
		dispatcher: dispatch.New(svc, h, h, dispatch.WithLogger(logger)),
		host:       h,
		logger:     logger,
		copy:       copyFn,
		now:        now,
		brand:      opts.Brand,
		list:       l,
		spinner:    spinner.New(spinner.WithSpinner(spinner.Dot)),
		editInput:  ti,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.load())
}

func (m Model) load() tea.Cmd {
	ctx, svc := m.ctx, m.svc
	return func() tea.Msg {
		c, err := svc.List(ctx)
		return collectionMsg{collection: c, err: err}
	}
}

// dispatchCmd runs an action off the update loop.
func (m Model) dispatchCmd(action dispatch.Action, p dispatch.Payload) tea.Cmd {
	ctx, d := m.ctx, m.dispatcher
	return func() tea.Msg {
		return dispatchDoneMsg{action: action, payload: p, err: d.Dispatch(ctx, action, p)}
	}
}

func (m Model) submitEditCmd(p dispatch.Payload) tea.Cmd {
	ctx, d := m.ctx, m.dispatcher
	return func() tea.Msg {
		return dispatchDoneMsg{action: dispatch.ActionEdit, payload: p, err: d.SubmitEdit(ctx, p)}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(msg.Width, msg.Height-4)
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case ReloadMsg:
		return m, m.load()

	case collectionMsg:
		return m.applyCollection(msg)

	case dispatchDoneMsg:
		return m.dispatchDone(msg)

	case editorExitMsg:
		return m.editorExited(msg)

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m.quit()
		}

		switch m.mode {
		case modeEdit:
			return m.updateEdit(msg)
		case modeProgress:
			return m.updateProgress(msg)
		case modeOpening:
			return m, nil
		}

		if m.confirmKey != "" {
			return m.updateConfirm(msg)
		}

		// Don't handle keys if filtering
		if m.list.FilterState() == list.Filtering {
			break
		}

		if next, cmd, handled := m.handleKey(msg); handled {
			return next, cmd
		}
	}

	if m.mode == modeEdit {
		var cmd tea.Cmd
		m.editInput, cmd = m.editInput.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd, bool) {
	switch msg.String() {
	case "enter":
		rec, ok := m.selected()
		if !ok {
			return m, nil, true
		}
		action := dispatch.TitleAction(rec)
		if action == dispatch.ActionProgress {
			next, cmd := m.dispatchSync(action, dispatch.Payload{Key: rec.Key})
			return next, cmd, true
		}
		m.notice = notice{}
		return m, m.dispatchCmd(action, dispatch.Payload{Key: rec.Key}), true

	case "e":
		rec, ok := m.selectedReady()
		if !ok {
			return m, nil, true
		}
		if cmd := m.terminalEditorCmd(rec.Key); cmd != nil {
			return m, cmd, true
		}
		return m, m.dispatchCmd(dispatch.ActionEditor, dispatch.Payload{Key: rec.Key}), true

	case "r":
		rec, ok := m.selectedReady()
		if !ok {
			return m, nil, true
		}
		next, cmd := m.dispatchSync(dispatch.ActionEdit, dispatch.Payload{Key: rec.Key, Name: rec.Name})
		return next, cmd, true

	case "d":
		rec, ok := m.selected()
		if !ok {
			return m, nil, true
		}
		m.confirmKey = rec.Key
		m.notice = notice{text: fmt.Sprintf("Delete %s? [y/n]", rec.Name)}
		return m, nil, true

	case "y":
		rec, ok := m.selected()
		if !ok {
			return m, nil, true
		}
		if err := m.copy(rec.Path); err != nil {
			m.logger.Warn("copy to clipboard failed", "error", err)
			m.notice = notice{text: "Failed to copy path: " + err.Error(), isErr: true}
		} else {
			m.notice = notice{text: "Copied " + rec.Path}
		}
		return m, nil, true

	case "i":
		m.host.SetCurrent(dispatch.ViewImport, dispatch.Payload{})
		next, cmd := m.syncHost("")
		return next, cmd, true

	case "c":
		if !m.allowCreate() {
			return m, nil, false
		}
		m.host.SetCurrent(dispatch.ViewCreate, dispatch.Payload{})
		next, cmd := m.syncHost("")
		return next, cmd, true

	case "q", "esc":
		next, cmd := m.quit()
		return next.(Model), cmd, true
	}
	return m, nil, false
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	m.result = PickerResult{Action: ActionQuit}
	m.quitting = true
	return m, tea.Quit
}

func (m Model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := m.confirmKey
	switch msg.String() {
	case "y", "Y":
		m.confirmKey = ""
		m.notice = notice{}
		return m, m.dispatchCmd(dispatch.ActionDelete, dispatch.Payload{Key: key})
	case "n", "N", "esc":
		m.confirmKey = ""
		m.notice = notice{}
	}
	return m, nil
}

func (m Model) updateEdit(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.dispatcher.CancelEdit()
		m.closeEdit()
		return m, nil
	case "enter":
		p := dispatch.Payload{Key: m.editKey, Name: strings.TrimSpace(m.editInput.Value())}
		m.dispatcher.CancelEdit()
		m.closeEdit()
		return m, m.submitEditCmd(p)
	}

	var cmd tea.Cmd
	m.editInput, cmd = m.editInput.Update(msg)
	return m, cmd
}

func (m *Model) closeEdit() {
	m.mode = modeList
	m.editKey = ""
	m.editInput.Blur()
	m.editInput.SetValue("")
}

func (m Model) updateProgress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q", "enter":
		m.mode = modeList
		m.progressKey = ""
	}
	return m, nil
}

// dispatchSync runs a dispatch that only touches UI state.
func (m Model) dispatchSync(action dispatch.Action, p dispatch.Payload) (Model, tea.Cmd) {
	if err := m.dispatcher.Dispatch(m.ctx, action, p); err != nil {
		m.logger.Error("action failed", "action", action, "key", p.Key, "error", err)
		m.notice = notice{text: err.Error(), isErr: true}
	}
	return m.syncHost(p.Key)
}

func (m Model) dispatchDone(msg dispatchDoneMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.logger.Error("action failed", "action", msg.action, "key", msg.payload.Key, "error", msg.err)
		// Open is the only action that reports nothing itself.
		if msg.action == dispatch.ActionOpen {
			m.notice = notice{text: msg.err.Error(), isErr: true}
		}
	}

	next, cmd := m.syncHost(msg.payload.Key)
	if cmd != nil {
		return next, cmd
	}

	switch msg.action {
	case dispatch.ActionDelete, dispatch.ActionEdit:
		return next, next.load()
	}
	return next, nil
}

// terminalEditorCmd suspends the program to run a terminal editor on key.
// It returns nil when the editor does not need the terminal, leaving the
// launch to the dispatcher.
func (m Model) terminalEditorCmd(key string) tea.Cmd {
	if m.editors == nil {
		return nil
	}
	l, err := m.editors.EditorLaunch(m.ctx, key)
	if err != nil || !l.Terminal {
		return nil
	}
	m.logger.Debug("running terminal editor", "key", key, "command", l.Argv[0])
	c := exec.CommandContext(m.ctx, l.Argv[0], l.Argv[1:]...)
	return m.exec(c, func(err error) tea.Msg {
		return editorExitMsg{launch: l, err: err}
	})
}

func (m Model) editorExited(msg editorExitMsg) (tea.Model, tea.Cmd) {
	if err := m.editors.EditorExited(msg.launch, msg.err); err != nil {
		m.logger.Debug("editor failed", "key", msg.launch.Key, "error", err)
		m.notice = notice{text: err.Error(), isErr: true}
	}
	return m, nil
}

// syncHost applies what the dispatcher asked of the host. key is the
// project the triggering action targeted.
func (m Model) syncHost(key string) (Model, tea.Cmd) {
	s := m.host.drain()
	if n := len(s.notices); n > 0 {
		m.notice = s.notices[n-1]
	}

	if s.loading && m.mode != modeOpening {
		m.mode = modeOpening
		m.result = PickerResult{Action: ActionOpen, Project: m.record(key)}
		if m.result.Project != nil {
			m.result.Project.Active = true
		}
		m.logger.Debug("project opened", "key", key, "route", s.route)
		return m, tea.Quit
	}

	if s.viewSet {
		switch s.view {
		case dispatch.ViewProgress:
			m.mode = modeProgress
			m.progressKey = s.payload.Key
			return m, nil
		case dispatch.ViewImport:
			m.result = PickerResult{Action: ActionImport}
			m.quitting = true
			return m, tea.Quit
		case dispatch.ViewCreate:
			m.result = PickerResult{Action: ActionCreate}
			m.quitting = true
			return m, tea.Quit
		}
	}

	if modal := m.dispatcher.Modal(); modal.Visible && m.mode == modeList {
		m.mode = modeEdit
		m.editKey = modal.InitialValues.Key
		m.editInput.SetValue(modal.InitialValues.Name)
		m.editInput.CursorEnd()
		cmd := m.editInput.Focus()
		return m, cmd
	}
	return m, nil
}

func (m Model) applyCollection(msg collectionMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.logger.Error("loading projects failed", "error", msg.err)
		m.notice = notice{text: "Failed to load projects: " + msg.err.Error(), isErr: true}
		return m, nil
	}

	c := msg.collection
	m.collection = &c

	now := m.now()
	records := project.Sort(project.Records(c))
	items := make([]list.Item, len(records))
	for i, r := range records {
		items[i] = newProjectItem(r, now)
	}

	if m.confirmKey != "" {
		if _, ok := c.Get(m.confirmKey); !ok {
			m.confirmKey = ""
			m.notice = notice{}
		}
	}

	cmd := m.list.SetItems(items)
	return m, cmd
}

func (m Model) selected() (project.Record, bool) {
	item, ok := m.list.SelectedItem().(projectItem)
	if !ok {
		return project.Record{}, false
	}
	return item.record, true
}

// selectedReady returns the selected record if it finished creating.
func (m *Model) selectedReady() (project.Record, bool) {
	rec, ok := m.selected()
	if !ok {
		return rec, false
	}
	if project.Classify(rec) != project.StatusSuccess {
		m.notice = notice{text: rec.Name + " is not ready yet"}
		return rec, false
	}
	return rec, true
}

func (m Model) record(key string) *project.Record {
	if m.collection == nil {
		return nil
	}
	r, ok := m.collection.Get(key)
	if !ok {
		return nil
	}
	return &r
}

func (m Model) allowCreate() bool {
	return m.brand != config.BrandBigfish
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	switch m.mode {
	case modeOpening:
		return m.openingView()
	case modeEdit:
		return m.editView()
	case modeProgress:
		return m.progressView()
	}

	title := titleStyle.Render(BrandTitle(m.brand))

	if m.collection == nil {
		return title + "\n" + m.spinner.View() + " Loading projects..." + m.noticeView()
	}

	if m.collection.Len() == 0 {
		return title + "\n" + m.emptyView() + m.noticeView() + "\n" + helpStyle.Render(m.helpText())
	}

	return m.list.View() + m.noticeView() + "\n" + helpStyle.Render(m.helpText())
}

func (m Model) emptyView() string {
	hint := "Press [i] to import an existing directory"
	if m.allowCreate() {
		hint += " or [c] to create a new project"
	}
	return "No projects yet.\n" + dimStyle.Render(hint+".")
}

func (m Model) noticeView() string {
	if m.notice.text == "" {
		return ""
	}
	if m.notice.isErr {
		return "\n" + errorStyle.Render("✗ "+m.notice.text)
	}
	return "\n" + noticeStyle.Render(m.notice.text)
}

func (m Model) helpText() string {
	keys := []string{"[enter] Open", "[e] Editor", "[r] Rename", "[d] Delete", "[y] Copy path", "[i] Import"}
	if m.allowCreate() {
		keys = append(keys, "[c] Create")
	}
	keys = append(keys, "[/] Filter", "[q] Quit")
	return strings.Join(keys, "  ")
}

func (m Model) openingView() string {
	name := ""
	if m.result.Project != nil {
		name = " " + m.result.Project.Name
	}
	return titleStyle.Render(BrandTitle(m.brand)) + "\n" + m.spinner.View() + " Opening" + name + "..."
}

// Result returns the picker result
func (m Model) Result() PickerResult {
	return m.result
}

// RunPicker runs the interactive project picker until the user leaves it.
func RunPicker(ctx context.Context, svc Service, opts PickerOptions) (PickerResult, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	m := NewPicker(ctx, svc, opts)
	p := tea.NewProgram(m, tea.WithAltScreen())

	g, gctx := errgroup.WithContext(ctx)
	if opts.Watch != nil {
		g.Go(func() error {
			err := opts.Watch(gctx, func() { p.Send(ReloadMsg{}) })
			if err != nil {
				m.logger.Warn("store watcher stopped", "error", err)
			}
			return nil
		})
	}

	var final tea.Model
	g.Go(func() error {
		defer cancel()
		var err error
		final, err = p.Run()
		return err
	})

	if err := g.Wait(); err != nil {
		return PickerResult{}, err
	}
	return final.(Model).Result(), nil
}

// SimplePicker renders the collection as plain text, in picker order.
func SimplePicker(c project.Collection, brand string, now time.Time) string {
	var sb strings.Builder

	sb.WriteString(BrandTitle(brand) + " - Projects\n")
	sb.WriteString(strings.Repeat("─", 60) + "\n\n")

	if c.Len() == 0 {
		sb.WriteString("No projects found.\n")
		sb.WriteString("Register one with: projctl add <path>\n")
		return sb.String()
	}

	for i, r := range project.Sort(project.Records(c)) {
		item := newProjectItem(r, now)
		sb.WriteString(fmt.Sprintf("%d. %s\n", i+1, strings.TrimSpace(item.Title())))
		sb.WriteString(fmt.Sprintf("   Key: %s | %s\n\n", r.Key, item.Description()))
	}

	return sb.String()
}
