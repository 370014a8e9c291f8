package project

import (
	"encoding/json"
	"strings"
	"time"
)

// DefaultCreatedAt is the creation time, in epoch milliseconds, assumed for
// records that were registered without one (2002-01-01T00:00:00Z).
var DefaultCreatedAt = time.Date(2002, time.January, 1, 0, 0, 0, 0, time.UTC).UnixMilli()

// CreationState is the tag of the CreatingProgress variant.
type CreationState int

const (
	CreationNotStarted CreationState = iota
	CreationInProgress
	CreationFailed
	CreationSucceeded
)

func (s CreationState) String() string {
	switch s {
	case CreationNotStarted:
		return "not-started"
	case CreationInProgress:
		return "in-progress"
	case CreationFailed:
		return "failed"
	case CreationSucceeded:
		return "succeeded"
	default:
		return "unknown"
	}
}

// CreatingProgress describes a project's creation job. The zero value means
// no job was ever recorded.
type CreatingProgress struct {
	State  CreationState
	Reason string   // set when State is CreationFailed
	Step   int      // index into Steps of the step being run
	Steps  []string // human-readable step names
}

// InProgress returns a running creation job at the given step.
func InProgress(step int, steps []string) CreatingProgress {
	return CreatingProgress{State: CreationInProgress, Step: step, Steps: steps}
}

// Failed returns a creation job that stopped with reason.
func Failed(reason string, step int, steps []string) CreatingProgress {
	return CreatingProgress{State: CreationFailed, Reason: reason, Step: step, Steps: steps}
}

// Succeeded returns a finished creation job.
func Succeeded(steps []string) CreatingProgress {
	return CreatingProgress{State: CreationSucceeded, Step: len(steps), Steps: steps}
}

// rawProgress is the persisted shape of a creation job.
type rawProgress struct {
	Success *bool           `json:"success,omitempty"`
	Failure json.RawMessage `json:"failure,omitempty"`
	Step    int             `json:"step,omitempty"`
	Steps   []string        `json:"steps,omitempty"`
}

type rawFailure struct {
	Message string `json:"message"`
}

// ParseCreatingProgress decodes the persisted creation job. It never fails:
// empty input means no job, and anything it cannot make sense of is treated
// as still running, since partially written progress is expected while a
// job is being polled.
func ParseCreatingProgress(data []byte) CreatingProgress {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" || trimmed == "null" {
		return CreatingProgress{}
	}

	var raw rawProgress
	if err := json.Unmarshal([]byte(trimmed), &raw); err != nil {
		return CreatingProgress{State: CreationInProgress}
	}

	if raw.Success != nil && *raw.Success {
		return CreatingProgress{State: CreationSucceeded, Step: raw.Step, Steps: raw.Steps}
	}

	failure := strings.TrimSpace(string(raw.Failure))
	if failure != "" && failure != "null" && failure != "false" {
		return CreatingProgress{
			State:  CreationFailed,
			Reason: failureReason(raw.Failure),
			Step:   raw.Step,
			Steps:  raw.Steps,
		}
	}

	return CreatingProgress{State: CreationInProgress, Step: raw.Step, Steps: raw.Steps}
}

// failureReason accepts {"message": "..."}, a bare string, or anything else
// truthy (which yields an empty reason).
func failureReason(data json.RawMessage) string {
	var f rawFailure
	if err := json.Unmarshal(data, &f); err == nil {
		return f.Message
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		return s
	}
	return ""
}

// Marshal encodes the job into its persisted shape. NotStarted encodes to nil.
func (p CreatingProgress) Marshal() ([]byte, error) {
	raw := rawProgress{Step: p.Step, Steps: p.Steps}
	switch p.State {
	case CreationNotStarted:
		return nil, nil
	case CreationSucceeded:
		ok := true
		raw.Success = &ok
	case CreationFailed:
		failure, err := json.Marshal(rawFailure{Message: p.Reason})
		if err != nil {
			return nil, err
		}
		raw.Failure = failure
	default:
		ok := false
		raw.Success = &ok
	}
	return json.Marshal(raw)
}

// CurrentStep returns the name of the step being run, if known.
func (p CreatingProgress) CurrentStep() string {
	if p.Step >= 0 && p.Step < len(p.Steps) {
		return p.Steps[p.Step]
	}
	return ""
}

// Record is one registered project.
type Record struct {
	Key              string
	Name             string
	Path             string
	CreatedAt        int64 // epoch milliseconds, 0 when unknown
	CreatingProgress CreatingProgress

	// Active is derived from the collection's current key by Records.
	Active bool
}

// Created returns the creation time, falling back to DefaultCreatedAt.
func (r Record) Created() time.Time {
	ms := r.CreatedAt
	if ms == 0 {
		ms = DefaultCreatedAt
	}
	return time.UnixMilli(ms)
}

// Edit carries the user-editable fields of a record.
type Edit struct {
	Key  string
	Name string
}

// Collection is the set of registered projects plus the current selection.
// Keys preserves registration order and is the iteration order for Records.
type Collection struct {
	ByKey   map[string]Record
	Keys    []string
	Current string
}

// NewCollection builds a collection from records in the given order.
func NewCollection(current string, records ...Record) Collection {
	c := Collection{
		ByKey:   make(map[string]Record, len(records)),
		Keys:    make([]string, 0, len(records)),
		Current: current,
	}
	for _, r := range records {
		if _, dup := c.ByKey[r.Key]; dup {
			continue
		}
		c.ByKey[r.Key] = r
		c.Keys = append(c.Keys, r.Key)
	}
	return c
}

// Get returns the record for key.
func (c Collection) Get(key string) (Record, bool) {
	r, ok := c.ByKey[key]
	return r, ok
}

// Len returns the number of records.
func (c Collection) Len() int {
	return len(c.Keys)
}

// Records returns the collection's records in key order, with Active set
// from Current and missing creation times replaced by DefaultCreatedAt.
// A Current that names no record leaves every record inactive.
func Records(c Collection) []Record {
	out := make([]Record, 0, len(c.Keys))
	for _, key := range c.Keys {
		r, ok := c.ByKey[key]
		if !ok {
			continue
		}
		r.Key = key
		r.Active = key == c.Current
		if r.CreatedAt == 0 {
			r.CreatedAt = DefaultCreatedAt
		}
		out = append(out, r)
	}
	return out
}
