package tui

import "github.com/charmbracelet/lipgloss"

var modalStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color("39")).
	Padding(1, 2)

var labelStyle = lipgloss.NewStyle().
	Bold(true).
	MarginBottom(1)

func (m Model) editView() string {
	body := labelStyle.Render("Rename project") + "\n" +
		m.editInput.View() + "\n\n" +
		dimStyle.Render("[enter] Save  [esc] Cancel")
	return titleStyle.Render(BrandTitle(m.brand)) + "\n" + modalStyle.Render(body)
}
