package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/brightwell/internal/achievements"
	"github.com/julianstephens/brightwell/internal/engine"
	"github.com/julianstephens/brightwell/internal/logger"
	"github.com/julianstephens/brightwell/internal/models"
	"github.com/julianstephens/brightwell/internal/stats"
	"github.com/julianstephens/brightwell/internal/storage"
	"github.com/julianstephens/brightwell/internal/tui/components/habitlist"
	"github.com/julianstephens/brightwell/internal/tui/components/report"
	"github.com/julianstephens/brightwell/internal/utils"
	"github.com/julianstephens/brightwell/internal/validation"
)

type SessionState int

const (
	StateToday SessionState = iota
	StateStats
	StateAchievements
	StateAddHabit
	StateLogMood
	StateConfirmDelete
)

// tabCount is the number of states reachable with tab.
const tabCount = 3

type HabitFormModel struct {
	Name        string
	Description string
	Icon        string
}

type MoodFormModel struct {
	Emoji string
	Note  string
}

// tickMsg triggers a reload so the dashboard rolls over at midnight.
type tickMsg time.Time

type Model struct {
	store         storage.Provider
	clock         utils.Clock
	state         SessionState
	previousState SessionState
	keys          KeyMap
	help          help.Model
	habits        habitlist.Model
	statsView     report.Model
	badgesView    report.Model
	water         progress.Model
	form          *huh.Form
	habitForm     *HabitFormModel
	moodForm      *MoodFormModel
	quitting      bool
	width         int
	height        int

	today             string
	settings          models.Settings
	hydration         []models.HydrationEntry
	moods             []models.MoodEntry
	report            stats.Report
	status            string
	habitToDeleteID   string
	habitToDeleteName string
	validationWarning string
}

func NewModel(store storage.Provider, clock utils.Clock) Model {
	m := Model{
		store:      store,
		clock:      clock,
		state:      StateToday,
		keys:       DefaultKeyMap(),
		help:       help.New(),
		habits:     habitlist.New(0, 0),
		statsView:  report.New(0, 0),
		badgesView: report.New(0, 0),
		water:      progress.New(progress.WithDefaultGradient(), progress.WithWidth(40)),
	}
	m.reload()
	return m
}

// reload reads every record from the store and recomputes derived views.
func (m *Model) reload() {
	m.today = utils.TodayKey(m.clock)

	settings, err := m.store.GetSettings()
	if err != nil {
		m.fail("load settings", err)
		return
	}
	habits, err := m.store.GetAllHabits(false)
	if err != nil {
		m.fail("load habits", err)
		return
	}
	moods, err := m.store.GetMoodEntries()
	if err != nil {
		m.fail("load moods", err)
		return
	}
	water, err := m.store.GetHydrationEntries()
	if err != nil {
		m.fail("load hydration", err)
		return
	}

	m.settings = settings
	m.moods = moods
	m.hydration = water
	m.habits.SetHabits(habits, m.today)

	snap := stats.Snapshot{Habits: habits, Moods: moods, Hydration: water}
	m.report = stats.Build(snap, m.today, m.clock.Now(), settings.HydrationGoalMl)
	m.statsView.SetContent(report.Stats(m.report))

	evaluated := achievements.Evaluate(achievements.Catalog(), achievements.Context{
		Habits:          habits,
		Moods:           moods,
		Hydration:       water,
		HydrationGoalMl: settings.HydrationGoalMl,
		Today:           m.today,
	})
	m.badgesView.SetContent(report.Achievements(evaluated))

	result := validation.New(m.clock.Location()).ValidateAll(habits, moods, water, settings)
	if result.HasConflicts() {
		m.validationWarning = fmt.Sprintf("⚠ %d validation warning(s), run 'brightwell validate'", len(result.Conflicts))
	} else {
		m.validationWarning = ""
	}
}

func (m *Model) fail(action string, err error) {
	logger.Error("Dashboard failed to "+action, "error", err)
	m.status = fmt.Sprintf("Error: failed to %s: %v", action, err)
}

func (m Model) todayTotal() int {
	return engine.DailyHydrationTotal(m.hydration, m.today)
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help}
	if m.state == StateToday {
		keys = append(keys, m.habits.KeyBindings()...)
	}
	return append(keys, m.keys.Water, m.keys.Mood)
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Tab, m.keys.ShiftTab, m.keys.Quit, m.keys.Help, m.keys.Refresh}
	logging := []key.Binding{m.keys.Water, m.keys.Undo, m.keys.Mood}

	var actions []key.Binding
	if m.state == StateToday {
		actions = m.habits.KeyBindings()
	}
	return [][]key.Binding{global, logging, actions}
}

func tick() tea.Cmd {
	return tea.Tick(time.Minute, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return tick()
}
