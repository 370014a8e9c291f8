// Package audit keeps a per-project activity history. Each project has its
// own JSON Lines file under {stateDir}/history, appended to by the project
// service and read back by `projctl history`.
package audit

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"
	"unicode/utf8"

	securejoin "github.com/cyphar/filepath-securejoin"
)

// EventType names what happened to a project.
type EventType string

const (
	EventRegister     EventType = "register"
	EventCreate       EventType = "create"
	EventCreateFailed EventType = "create-failed"
	EventRename       EventType = "rename"
	EventOpen         EventType = "open"
	EventEditor       EventType = "editor"
	EventDelete       EventType = "delete"
)

const (
	// MaxDetails caps the details stored with an event. Longer details are
	// cut and marked with a trailing ellipsis.
	MaxDetails = 4096

	// maxLine is the longest history line Recent will read. It covers lines
	// written before details were capped.
	maxLine = 4 << 20
)

// Event is one line of a project's history.
type Event struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	Project   string    `json:"project"`
	Details   string    `json:"details,omitempty"`
}

// Logger appends to and reads project histories. It is safe for concurrent
// use; appends to the same project are serialized.
type Logger struct {
	dir string
	now func() time.Time

	mu sync.Mutex
}

// NewLogger returns a Logger storing histories in {stateDir}/history.
func NewLogger(stateDir string) *Logger {
	return &Logger{
		dir: filepath.Join(stateDir, "history"),
		now: time.Now,
	}
}

// path maps a project key to its history file. Keys are joined inside the
// history directory so a key can never name a file outside it.
func (l *Logger) path(key string) (string, error) {
	if key == "" {
		return "", errors.New("event has no project key")
	}
	p, err := securejoin.SecureJoin(l.dir, key+".jsonl")
	if err != nil {
		return "", fmt.Errorf("invalid project key %q: %w", key, err)
	}
	return p, nil
}

// Log appends event to its project's history. A zero Timestamp is set to
// the current time.
func (l *Logger) Log(event Event) error {
	path, err := l.path(event.Project)
	if err != nil {
		return err
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = l.now()
	}
	event.Details = truncate(event.Details, MaxDetails)

	line, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}
	line = append(line, '\n')

	l.mu.Lock()
	defer l.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create history directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open history: %w", err)
	}
	if _, err := f.Write(line); err != nil {
		f.Close()
		return fmt.Errorf("failed to write event: %w", err)
	}
	return f.Close()
}

// LogEvent logs an event of type t for key, stamped now.
func (l *Logger) LogEvent(t EventType, key, details string) error {
	return l.Log(Event{Type: t, Project: key, Details: details})
}

// Events returns a project's history, oldest first. A project without
// history yields no events and no error. Lines that do not decode are
// skipped.
func (l *Logger) Events(key string) ([]Event, error) {
	return l.Recent(key, 0)
}

// Recent is Events limited to the last n entries. n <= 0 returns all.
func (l *Logger) Recent(key string, n int) ([]Event, error) {
	path, err := l.path(key)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open history: %w", err)
	}
	defer f.Close()

	var events []Event
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), maxLine)
	for sc.Scan() {
		var e Event
		if json.Unmarshal(sc.Bytes(), &e) != nil {
			continue
		}
		events = append(events, e)
		if n > 0 && len(events) > n {
			events = events[1:]
		}
	}
	if err := sc.Err(); err != nil {
		return events, fmt.Errorf("failed to read history: %w", err)
	}
	return events, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	cut := n
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "…"
}
