// Package report renders the statistics and achievements screens.
package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/brightwell/internal/achievements"
	"github.com/julianstephens/brightwell/internal/mood"
	"github.com/julianstephens/brightwell/internal/stats"
	"github.com/julianstephens/brightwell/internal/utils"
)

var (
	sectionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")).
			Bold(true).
			MarginTop(1)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Width(22)

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Bold(true)

	lockedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

	barStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
)

const barWidth = 20

type Model struct {
	viewport viewport.Model
	content  string
}

func New(width, height int) Model {
	return Model{viewport: viewport.New(width, height)}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	return m.viewport.View()
}

func (m *Model) SetSize(width, height int) {
	m.viewport.Width = width
	m.viewport.Height = height
	m.viewport.SetContent(m.content)
}

func (m *Model) SetContent(content string) {
	m.content = content
	m.viewport.SetContent(content)
}

func row(label string, value any) string {
	return labelStyle.Render(label) + valueStyle.Render(fmt.Sprint(value)) + "\n"
}

// bar draws a fixed-width bar for a 0-100 percent.
func bar(percent int) string {
	filled := percent * barWidth / 100
	return barStyle.Render(strings.Repeat("█", filled)) + lockedStyle.Render(strings.Repeat("░", barWidth-filled))
}

// Stats renders the statistics report.
func Stats(r stats.Report) string {
	var b strings.Builder

	b.WriteString(sectionStyle.Render("Habits") + "\n")
	b.WriteString(row("Total", r.Habits.Total))
	b.WriteString(row("Done today", fmt.Sprintf("%d/%d", r.Habits.CompletedToday, r.Habits.Total)))
	b.WriteString(row("This week", fmt.Sprintf("%d%%", r.Habits.WeeklyRate)))
	b.WriteString(row("This month", fmt.Sprintf("%d%%", r.Habits.MonthlyRate)))
	b.WriteString(row("Perfect days (30d)", r.Habits.PerfectDays30))
	b.WriteString(row("Current streak", fmt.Sprintf("%d days", r.Habits.CurrentStreak)))
	b.WriteString(row("Longest streak", fmt.Sprintf("%d days", r.Habits.LongestStreak)))
	if r.Habits.BestDay != "" {
		b.WriteString(row("Last perfect day", utils.FormatDisplayDate(r.Habits.BestDay)))
	}
	for _, p := range r.Week {
		b.WriteString(labelStyle.Render("  "+p.Day) + bar(p.Percent) + fmt.Sprintf(" %d%%\n", p.Percent))
	}

	b.WriteString(sectionStyle.Render("Mood") + "\n")
	b.WriteString(row("Entries", r.Mood.Total))
	b.WriteString(row("This week", r.Mood.ThisWeek))
	if r.Mood.MostCommon != "" {
		b.WriteString(row("Most common", r.Mood.MostCommon))
	}
	for _, c := range mood.Categories {
		if n := r.Mood.Categories[c]; n > 0 {
			b.WriteString(row("  "+c.Label(), n))
		}
	}

	b.WriteString(sectionStyle.Render("Hydration") + "\n")
	b.WriteString(row("Today", fmt.Sprintf("%d / %d ml (%d%%)", r.Hydration.TodayMl, r.Hydration.GoalMl, r.Hydration.TodayPercent)))
	b.WriteString(row("7-day average", fmt.Sprintf("%d ml", r.Hydration.WeeklyAverage)))
	b.WriteString(row("Goal days (7d)", r.Hydration.GoalDaysInWeek))
	for _, p := range r.WeekWater {
		b.WriteString(labelStyle.Render("  "+p.Day) + bar(p.Percent) + fmt.Sprintf(" %d ml\n", p.Value))
	}

	return b.String()
}

// Achievements renders the badge list, unlocked badges first.
func Achievements(evaluated []achievements.Evaluated) string {
	summary := achievements.Summarize(evaluated)
	bars := progress.New(progress.WithDefaultGradient(), progress.WithWidth(barWidth))

	ordered := make([]achievements.Evaluated, len(evaluated))
	copy(ordered, evaluated)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Unlocked && !ordered[j].Unlocked
	})

	var b strings.Builder
	b.WriteString(sectionStyle.Render(fmt.Sprintf("Achievements %d/%d (%d%%)", summary.Unlocked, summary.Total, summary.Percent)) + "\n\n")
	for _, e := range ordered {
		title := fmt.Sprintf("%s %s", e.Icon, e.Title)
		if !e.Unlocked {
			title = lockedStyle.Render("🔒 " + e.Title)
		}
		b.WriteString(title + "\n")
		b.WriteString("   " + lockedStyle.Render(e.Description) + "\n")
		b.WriteString("   " + bars.ViewAs(float64(e.Percent())/100) + fmt.Sprintf(" %d/%d\n\n", min(e.Progress, e.Target), e.Target))
	}
	return b.String()
}
