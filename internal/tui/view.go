package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/brightwell/internal/engine"
	"github.com/julianstephens/brightwell/internal/utils"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.state {
	case StateToday:
		content = docStyle.Render(m.habits.View())
	case StateStats:
		content = docStyle.Render(m.statsView.View())
	case StateAchievements:
		content = docStyle.Render(m.badgesView.View())
	case StateAddHabit, StateLogMood:
		content = docStyle.Render(m.form.View())
	case StateConfirmDelete:
		content = m.viewConfirmDelete()
	}

	parts := []string{m.viewTabs(), m.viewWater(), content}
	if m.status != "" {
		parts = append(parts, statusStyle.Render(m.status))
	}
	if m.validationWarning != "" {
		parts = append(parts, dangerStyle.Render(m.validationWarning))
	}
	parts = append(parts, m.help.View(m))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) viewTabs() string {
	var tabs []string
	for i, title := range []string{"Today", "Stats", "Achievements"} {
		if m.state == SessionState(i) || (m.state >= tabCount && m.previousState == SessionState(i)) {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	date := mutedStyle.Render("  " + utils.FormatDisplayDate(m.today))
	return lipgloss.JoinHorizontal(lipgloss.Top, append(tabs, date)...)
}

func (m Model) viewWater() string {
	total := m.todayTotal()
	goal := m.settings.HydrationGoalMl
	percent := engine.GoalPercent(total, goal)
	label := headerStyle.Render("💧 Water ")
	return fmt.Sprintf("\n%s%s %s\n", label, m.water.ViewAs(float64(percent)/100), mutedStyle.Render(fmt.Sprintf("%d / %d ml", total, goal)))
}

func (m Model) viewConfirmDelete() string {
	return lipgloss.Place(m.width, m.height-chromeHeight,
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center,
			dangerStyle.Render(fmt.Sprintf("Delete %q?", m.habitToDeleteName)),
			mutedStyle.Render("Its history is kept and it can be restored later."),
			"",
			"[y] Yes",
			"[n] No",
		),
	)
}
