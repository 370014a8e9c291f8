package tui

import (
	"strings"

	"github.com/firefly-engineering/projctl/internal/project"
)

func (m Model) progressView() string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render(BrandTitle(m.brand)))
	sb.WriteString("\n")

	rec := m.record(m.progressKey)
	if rec == nil {
		sb.WriteString("This project no longer exists.\n")
		sb.WriteString(helpStyle.Render("[esc] Back"))
		return sb.String()
	}

	p := rec.CreatingProgress
	sb.WriteString(labelStyle.Render("Creating " + rec.Name))
	sb.WriteString("\n")
	sb.WriteString(m.stepLines(p))

	switch p.State {
	case project.CreationSucceeded, project.CreationNotStarted:
		sb.WriteString("\n" + noticeStyle.Render("✓ Ready"))
	case project.CreationFailed:
		reason := p.Reason
		if reason == "" {
			reason = "creation failed"
		}
		sb.WriteString("\n" + errorStyle.Render("✗ "+reason))
	}

	sb.WriteString("\n" + helpStyle.Render("[esc] Back"))
	return sb.String()
}

// stepLines renders one line per creation step, marking done, running and
// failed steps.
func (m Model) stepLines(p project.CreatingProgress) string {
	if len(p.Steps) == 0 {
		if p.State == project.CreationInProgress {
			return m.spinner.View() + " Working...\n"
		}
		return ""
	}

	var sb strings.Builder
	for i, step := range p.Steps {
		switch {
		case p.State == project.CreationSucceeded || i < p.Step:
			sb.WriteString("✓ " + step)
		case i == p.Step && p.State == project.CreationFailed:
			sb.WriteString(errorStyle.Render("✗ " + step))
		case i == p.Step && p.State == project.CreationInProgress:
			sb.WriteString(m.spinner.View() + " " + step)
		default:
			sb.WriteString(dimStyle.Render("  " + step))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
