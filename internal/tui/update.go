package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/brightwell/internal/constants"
	"github.com/julianstephens/brightwell/internal/models"
	"github.com/julianstephens/brightwell/internal/tui/components/habitlist"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.resize()
		return m, nil

	case tickMsg:
		m.reload()
		return m, tick()

	case habitlist.ToggleHabitMsg:
		done, err := m.store.ToggleHabitCompletion(msg.ID, m.today)
		if err != nil {
			m.fail("toggle habit", err)
			return m, nil
		}
		m.status = "Marked not done"
		if done {
			m.status = "Marked done"
		}
		m.reload()
		return m, nil

	case habitlist.AddHabitMsg:
		return m, m.openHabitForm()

	case habitlist.DeleteHabitMsg:
		m.habitToDeleteID = msg.ID
		m.habitToDeleteName = msg.Name
		m.previousState = m.state
		m.state = StateConfirmDelete
		return m, nil
	}

	switch m.state {
	case StateAddHabit, StateLogMood:
		return m.updateForm(msg)
	case StateConfirmDelete:
		return m.updateConfirmDelete(msg)
	}

	if msg, ok := msg.(tea.KeyMsg); ok && !m.habits.Filtering() {
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Tab):
			m.state = (m.state + 1) % tabCount
			return m, nil
		case key.Matches(msg, m.keys.ShiftTab):
			m.state = (m.state - 1 + tabCount) % tabCount
			return m, nil
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			m.resize()
			return m, nil
		case key.Matches(msg, m.keys.Refresh):
			m.status = ""
			m.reload()
			return m, nil
		case key.Matches(msg, m.keys.Water):
			m.logWater(int(msg.Runes[0] - '1'))
			return m, nil
		case key.Matches(msg, m.keys.Undo):
			m.undoWater()
			return m, nil
		case key.Matches(msg, m.keys.Mood):
			return m, m.openMoodForm()
		}
	}

	var cmd tea.Cmd
	switch m.state {
	case StateToday:
		m.habits, cmd = m.habits.Update(msg)
	case StateStats:
		m.statsView, cmd = m.statsView.Update(msg)
	case StateAchievements:
		m.badgesView, cmd = m.badgesView.Update(msg)
	}
	return m, cmd
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		m.closeForm()
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		m.submitForm()
		return m, nil
	case huh.StateAborted:
		m.closeForm()
		return m, nil
	}
	return m, cmd
}

func (m Model) updateConfirmDelete(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch {
	case key.Matches(keyMsg, m.keys.Confirm):
		if err := m.store.DeleteHabit(m.habitToDeleteID); err != nil {
			m.fail("delete habit", err)
		} else {
			m.status = fmt.Sprintf("Deleted %s (restore with 'brightwell habit restore')", m.habitToDeleteName)
		}
		m.reload()
	case key.Matches(keyMsg, m.keys.Cancel):
	default:
		return m, nil
	}
	m.habitToDeleteID = ""
	m.habitToDeleteName = ""
	m.state = m.previousState
	return m, nil
}

// logWater records the quick amount at index i.
func (m *Model) logWater(i int) {
	if i < 0 || i >= len(constants.QuickHydrationAmounts) {
		return
	}
	entry := models.NewHydrationEntry(constants.QuickHydrationAmounts[i], m.clock.Now())
	if err := m.store.AddHydrationEntry(entry); err != nil {
		m.fail("log water", err)
		return
	}
	m.status = fmt.Sprintf("+%d ml", entry.AmountMl)
	m.reload()
}

// undoWater removes today's most recent drink.
func (m *Model) undoWater() {
	for _, e := range m.hydration {
		if e.Day != m.today {
			continue
		}
		if err := m.store.DeleteHydrationEntry(e.ID); err != nil {
			m.fail("undo water", err)
			return
		}
		m.status = fmt.Sprintf("Removed %d ml", e.AmountMl)
		m.reload()
		return
	}
	m.status = "Nothing to undo today"
}

// chromeHeight is the space taken by tabs, the water bar and status lines.
const chromeHeight = 9

func (m *Model) resize() {
	h := m.height - chromeHeight
	if m.help.ShowAll {
		h -= 3
	}
	if h < 3 {
		h = 3
	}
	w := m.width - 4
	m.habits.SetSize(w, h)
	m.statsView.SetSize(w, h)
	m.badgesView.SetSize(w, h)
}
