package tui

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/firefly-engineering/projctl/internal/project"
)

// projectItem implements list.Item for project display
type projectItem struct {
	record project.Record
	status project.Status
	now    time.Time
}

func newProjectItem(r project.Record, now time.Time) projectItem {
	return projectItem{record: r, status: project.Classify(r), now: now}
}

func (i projectItem) Title() string {
	badge := "  "
	if i.record.Active {
		badge = "● "
	}
	return badge + i.record.Name + statusTag(i.status)
}

func (i projectItem) Description() string {
	return fmt.Sprintf("%s | %s",
		truncatePath(i.record.Path, 40),
		createdText(i.record, i.now),
	)
}

func (i projectItem) FilterValue() string {
	return i.record.Name
}

func statusTag(s project.Status) string {
	switch s {
	case project.StatusProgress:
		return " [creating]"
	case project.StatusFailure:
		return " [failed]"
	default:
		return ""
	}
}

// createdText renders the creation time relative to now. Records that never
// had a timestamp show no age.
func createdText(r project.Record, now time.Time) string {
	if r.CreatedAt == 0 || r.CreatedAt == project.DefaultCreatedAt {
		return "created: unknown"
	}
	return "created " + humanize.RelTime(r.Created(), now, "ago", "from now")
}

func truncatePath(path string, maxLen int) string {
	if len(path) <= maxLen {
		return path
	}
	return "..." + path[len(path)-maxLen+3:]
}
