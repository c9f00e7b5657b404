package tui

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/brightwell/internal/models"
	"github.com/julianstephens/brightwell/internal/mood"
	"github.com/julianstephens/brightwell/internal/storage"
	"github.com/julianstephens/brightwell/internal/validation"
)

func (m *Model) openHabitForm() tea.Cmd {
	m.habitForm = &HabitFormModel{}
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Habit name").
				Value(&m.habitForm.Name).
				Validate(validation.CheckHabitName),
			huh.NewInput().
				Title("Description").
				Placeholder("optional").
				Value(&m.habitForm.Description),
			huh.NewInput().
				Title("Icon").
				Placeholder("optional emoji").
				CharLimit(8).
				Value(&m.habitForm.Icon),
		),
	).WithShowHelp(true)
	m.previousState = m.state
	m.state = StateAddHabit
	return m.form.Init()
}

func (m *Model) openMoodForm() tea.Cmd {
	m.moodForm = &MoodFormModel{Emoji: mood.Palette[0]}
	options := make([]huh.Option[string], 0, len(mood.Palette))
	for _, e := range mood.Palette {
		options = append(options, huh.NewOption(e+"  "+mood.CategoryFor(e).Label(), e))
	}
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("How are you feeling?").
				Options(options...).
				Height(8).
				Value(&m.moodForm.Emoji),
			huh.NewText().
				Title("Note").
				Placeholder("optional").
				CharLimit(500).
				Value(&m.moodForm.Note),
		),
	).WithShowHelp(true)
	m.previousState = m.state
	m.state = StateLogMood
	return m.form.Init()
}

// submitForm stores the completed form and returns to the previous tab.
func (m *Model) submitForm() {
	now := m.clock.Now()
	switch m.state {
	case StateAddHabit:
		err := m.store.AddHabit(models.NewHabit(m.habitForm.Name, m.habitForm.Description, m.habitForm.Icon, now))
		switch {
		case errors.Is(err, storage.ErrDuplicateName):
			m.status = "A habit named " + m.habitForm.Name + " already exists"
		case err != nil:
			m.fail("add habit", err)
		default:
			m.status = "Added " + m.habitForm.Name
		}
	case StateLogMood:
		entry := models.NewMoodEntry(m.moodForm.Emoji, m.moodForm.Note, now)
		if err := m.store.AddMoodEntry(entry); err != nil {
			m.fail("log mood", err)
		} else {
			m.status = "Logged " + entry.Emoji
		}
	}
	m.closeForm()
	m.reload()
}

func (m *Model) closeForm() {
	m.form = nil
	m.habitForm = nil
	m.moodForm = nil
	m.state = m.previousState
}
