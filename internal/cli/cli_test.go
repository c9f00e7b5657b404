package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/brightwell/internal/achievements"
	"github.com/julianstephens/brightwell/internal/migration"
	"github.com/julianstephens/brightwell/internal/models"
	"github.com/julianstephens/brightwell/internal/stats"
	"github.com/julianstephens/brightwell/internal/storage"
	"github.com/julianstephens/brightwell/internal/utils"
	"github.com/julianstephens/brightwell/migrations"
)

var testNow = time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC)

func setupTestContext(t *testing.T) (*Context, *bytes.Buffer) {
	t.Helper()
	store := storage.NewSQLiteStore(filepath.Join(t.TempDir(), "brightwell.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("failed to close store: %v", err)
		}
	})

	out := &bytes.Buffer{}
	return &Context{
		Store: store,
		Clock: utils.FixedClock{At: testNow},
		Out:   out,
		In:    strings.NewReader(""),
	}, out
}

func mustRun(t *testing.T, ctx *Context, cmd interface{ Run(*Context) error }) {
	t.Helper()
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("%T failed: %v", cmd, err)
	}
}

func TestHabitLifecycle(t *testing.T) {
	ctx, out := setupTestContext(t)

	mustRun(t, ctx, &HabitAddCmd{Name: "Read", Icon: "📚"})
	if err := (&HabitAddCmd{Name: " read "}).Run(ctx); err == nil {
		t.Error("expected duplicate name to be rejected")
	}
	if err := (&HabitAddCmd{Name: "   "}).Run(ctx); err == nil {
		t.Error("expected blank name to be rejected")
	}

	mustRun(t, ctx, &HabitToggleCmd{Name: "read", Date: "yesterday"})
	mustRun(t, ctx, &HabitToggleCmd{Name: "Read", Date: "today"})
	if !strings.Contains(out.String(), "streak 2") {
		t.Errorf("expected a two day streak, got:\n%s", out.String())
	}
	if err := (&HabitToggleCmd{Name: "Read", Date: "2025-03-11"}).Run(ctx); err == nil {
		t.Error("expected future date to be rejected")
	}

	out.Reset()
	mustRun(t, ctx, &HabitListCmd{})
	if !strings.Contains(out.String(), "[x] 📚 Read") || !strings.Contains(out.String(), "1/1 done today") {
		t.Errorf("unexpected list output:\n%s", out.String())
	}

	mustRun(t, ctx, &HabitDeleteCmd{Name: "Read"})
	habits, _ := ctx.Store.GetAllHabits(false)
	if len(habits) != 0 {
		t.Fatalf("expected no live habits, got %d", len(habits))
	}

	mustRun(t, ctx, &HabitRestoreCmd{Name: "READ"})
	h, err := ctx.Store.GetHabitByName("Read")
	if err != nil {
		t.Fatalf("habit not restored: %v", err)
	}
	if len(h.CompletionDates) != 2 {
		t.Errorf("history lost across delete/restore: %v", h.CompletionDates.Sorted())
	}
}

func TestHabitRestoreBlockedByLiveName(t *testing.T) {
	ctx, _ := setupTestContext(t)

	mustRun(t, ctx, &HabitAddCmd{Name: "Walk"})
	mustRun(t, ctx, &HabitDeleteCmd{Name: "Walk"})
	mustRun(t, ctx, &HabitAddCmd{Name: "Walk"})

	err := (&HabitRestoreCmd{Name: "Walk"}).Run(ctx)
	if err == nil || !strings.Contains(err.Error(), "already exists") {
		t.Errorf("expected duplicate error, got %v", err)
	}
}

func TestHabitLog(t *testing.T) {
	ctx, out := setupTestContext(t)
	h := models.NewHabit("Stretch", "", "", testNow)
	h.CompletionDates = models.NewDaySet("2025-03-10", "2025-03-08")
	if err := ctx.Store.AddHabit(h); err != nil {
		t.Fatal(err)
	}

	mustRun(t, ctx, &HabitLogCmd{Days: 3})
	if !strings.Contains(out.String(), "Stretch  ■·■") {
		t.Errorf("unexpected grid:\n%s", out.String())
	}
	if err := (&HabitLogCmd{Days: 0}).Run(ctx); err == nil {
		t.Error("expected error for non-positive days")
	}
}

func TestMoodCommands(t *testing.T) {
	ctx, out := setupTestContext(t)

	mustRun(t, ctx, &MoodAddCmd{Emoji: "🙂", Note: "walked"})
	mustRun(t, ctx, &MoodAddCmd{Emoji: "🦄"})
	if !strings.Contains(out.String(), "filed as neutral") {
		t.Errorf("expected unknown emoji note, got:\n%s", out.String())
	}
	if err := (&MoodAddCmd{Emoji: " "}).Run(ctx); err == nil {
		t.Error("expected empty emoji to be rejected")
	}

	entries, _ := ctx.Store.GetMoodEntries()
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}

	out.Reset()
	mustRun(t, ctx, &MoodSummaryCmd{})
	for _, want := range []string{"Total entries: 2", "This week: 2", "walked"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("summary missing %q:\n%s", want, out.String())
		}
	}

	mustRun(t, ctx, &MoodDeleteCmd{ID: entries[0].ID[:8]})
	entries, _ = ctx.Store.GetMoodEntries()
	if len(entries) != 1 {
		t.Errorf("expected 1 entry after delete, got %d", len(entries))
	}

	out.Reset()
	mustRun(t, ctx, &MoodEmojisCmd{})
	if !strings.Contains(out.String(), "Excellent") || !strings.Contains(out.String(), "Terrible") {
		t.Errorf("unexpected palette output:\n%s", out.String())
	}
}

func TestWaterCommands(t *testing.T) {
	ctx, out := setupTestContext(t)

	mustRun(t, ctx, &WaterAddCmd{Quick: 2})
	mustRun(t, ctx, &WaterAddCmd{Amount: 330})
	mustRun(t, ctx, &WaterAddCmd{})
	if !strings.Contains(out.String(), "1080 / 2000 ml today (54%)") {
		t.Errorf("unexpected running total:\n%s", out.String())
	}

	for _, bad := range []*WaterAddCmd{{Amount: 6000}, {Quick: 5}, {Amount: -1}} {
		if err := bad.Run(ctx); err == nil {
			t.Errorf("expected %+v to be rejected", *bad)
		}
	}

	out.Reset()
	mustRun(t, ctx, &WaterListCmd{Date: "today"})
	if !strings.Contains(out.String(), "Total: 1080 / 2000 ml (54%)") {
		t.Errorf("unexpected list output:\n%s", out.String())
	}

	entries, _ := ctx.Store.GetHydrationEntries()
	mustRun(t, ctx, &WaterDeleteCmd{ID: entries[0].ID})
	entries, _ = ctx.Store.GetHydrationEntries()
	if len(entries) != 2 {
		t.Errorf("expected 2 entries after delete, got %d", len(entries))
	}
}

func TestTemplateApply(t *testing.T) {
	ctx, out := setupTestContext(t)

	mustRun(t, ctx, &TemplateListCmd{})
	id := strings.Fields(strings.SplitN(out.String(), "\n", 2)[0])[1]

	mustRun(t, ctx, &TemplateApplyCmd{ID: id})
	habits, _ := ctx.Store.GetAllHabits(false)
	if len(habits) != 5 {
		t.Fatalf("expected 5 habits from template, got %d", len(habits))
	}

	out.Reset()
	mustRun(t, ctx, &TemplateApplyCmd{ID: id})
	if !strings.Contains(out.String(), "0 added, 5 already present") {
		t.Errorf("expected re-apply to skip everything:\n%s", out.String())
	}

	if err := (&TemplateApplyCmd{ID: "nope"}).Run(ctx); err == nil {
		t.Error("expected unknown template to fail")
	}
}

func TestSettingsSet(t *testing.T) {
	ctx, _ := setupTestContext(t)

	goal, interval, off, tz := 2500, 45, false, "Europe/Paris"
	mustRun(t, ctx, &SettingsSetCmd{Goal: &goal, Interval: &interval, Reminders: &off, Timezone: &tz})

	settings, err := ctx.Store.GetSettings()
	if err != nil {
		t.Fatal(err)
	}
	want := models.Settings{HydrationGoalMl: 2500, ReminderIntervalMin: 45, RemindersEnabled: false, Timezone: "Europe/Paris"}
	if settings != want {
		t.Errorf("expected %+v, got %+v", want, settings)
	}

	tooLow, badTZ := 100, "Nowhere/Special"
	if err := (&SettingsSetCmd{Goal: &tooLow}).Run(ctx); err == nil {
		t.Error("expected out-of-range goal to be rejected")
	}
	if err := (&SettingsSetCmd{Timezone: &badTZ}).Run(ctx); err == nil {
		t.Error("expected invalid timezone to be rejected")
	}
}

func TestStatsAndAchievementsJSON(t *testing.T) {
	ctx, out := setupTestContext(t)
	mustRun(t, ctx, &HabitAddCmd{Name: "Read"})
	mustRun(t, ctx, &HabitToggleCmd{Name: "Read", Date: "today"})
	out.Reset()

	mustRun(t, ctx, &StatsCmd{JSON: true})
	var report stats.Report
	if err := json.Unmarshal(out.Bytes(), &report); err != nil {
		t.Fatalf("stats output is not JSON: %v", err)
	}
	if report.Today != "2025-03-10" || report.Habits.CompletedToday != 1 {
		t.Errorf("unexpected report %+v", report.Habits)
	}

	out.Reset()
	mustRun(t, ctx, &AchievementsCmd{JSON: true})
	var evaluated []achievements.Evaluated
	if err := json.Unmarshal(out.Bytes(), &evaluated); err != nil {
		t.Fatalf("achievements output is not JSON: %v", err)
	}
	if len(evaluated) != 8 || evaluated[0].ID != achievements.FirstStep || !evaluated[0].Unlocked {
		t.Errorf("unexpected evaluation %+v", evaluated)
	}

	out.Reset()
	mustRun(t, ctx, &StatsCmd{})
	if !strings.Contains(out.String(), "Done today:         1/1") {
		t.Errorf("unexpected text report:\n%s", out.String())
	}
}

func TestValidateAndDoctor(t *testing.T) {
	ctx, out := setupTestContext(t)
	mustRun(t, ctx, &HabitAddCmd{Name: "Read"})

	mustRun(t, ctx, &ValidateCmd{})
	if !strings.Contains(out.String(), "No conflicts detected.") {
		t.Errorf("unexpected validate output:\n%s", out.String())
	}

	out.Reset()
	mustRun(t, ctx, &DoctorCmd{})
	for _, want := range []string{"✓ Schema version: OK", "⚠ Backups present: WARNING", "All diagnostics passed!"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("doctor output missing %q:\n%s", want, out.String())
		}
	}
}

func TestExport(t *testing.T) {
	ctx, out := setupTestContext(t)
	mustRun(t, ctx, &HabitAddCmd{Name: "Read"})
	mustRun(t, ctx, &WaterAddCmd{Amount: 250})

	dir := filepath.Join(t.TempDir(), "export")
	mustRun(t, ctx, &ExportCmd{Dir: dir})
	if strings.Count(out.String(), "✓ Wrote") != 3 {
		t.Errorf("expected three files:\n%s", out.String())
	}
	data, err := os.ReadFile(filepath.Join(dir, "hydration.csv"))
	if err != nil {
		t.Fatalf("hydration export missing: %v", err)
	}
	if !strings.Contains(string(data), ",2025-03-10,") {
		t.Errorf("unexpected hydration export:\n%s", data)
	}
}

func TestRemindOnce(t *testing.T) {
	ctx, out := setupTestContext(t)

	mustRun(t, ctx, &RemindCmd{})
	if !strings.HasPrefix(out.String(), "[09:30]") {
		t.Errorf("expected a reminder, got:\n%s", out.String())
	}

	out.Reset()
	mustRun(t, ctx, &RemindCmd{})
	if out.String() != "No reminder due.\n" {
		t.Errorf("expected throttled reminder, got:\n%s", out.String())
	}
}

func TestBackupCommands(t *testing.T) {
	ctx, out := setupTestContext(t)
	mustRun(t, ctx, &HabitAddCmd{Name: "Read"})

	mustRun(t, ctx, &BackupCreateCmd{})
	if !strings.Contains(out.String(), "✓ Backup created: brightwell-20250310-093000.db") {
		t.Errorf("unexpected create output:\n%s", out.String())
	}

	mustRun(t, ctx, &HabitAddCmd{Name: "Walk"})

	out.Reset()
	ctx.In = strings.NewReader("n\n")
	mustRun(t, ctx, &BackupRestoreCmd{BackupFile: "latest"})
	if !strings.Contains(out.String(), "Restore cancelled.") {
		t.Errorf("expected cancellation:\n%s", out.String())
	}

	mustRun(t, ctx, &BackupRestoreCmd{BackupFile: "brightwell-20250310-093000.db", Yes: true})

	if err := ctx.Store.Load(); err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	habits, _ := ctx.Store.GetAllHabits(false)
	if len(habits) != 1 || habits[0].Name != "Read" {
		t.Errorf("expected only Read after restore, got %+v", habits)
	}

	out.Reset()
	mustRun(t, ctx, &BackupListCmd{})
	if !strings.Contains(out.String(), "2 total") {
		t.Errorf("expected the original and the pre-restore backup:\n%s", out.String())
	}
}

func TestBackupRequiresSQLite(t *testing.T) {
	store := storage.NewJSONStore(filepath.Join(t.TempDir(), "brightwell.json"))
	if err := store.Init(); err != nil {
		t.Fatal(err)
	}
	ctx := &Context{Store: store, Clock: utils.FixedClock{At: testNow}, Out: &bytes.Buffer{}}
	if err := (&BackupCreateCmd{}).Run(ctx); err == nil {
		t.Error("expected backups to be refused for the JSON store")
	}
}

func TestDebugCommands(t *testing.T) {
	ctx, out := setupTestContext(t)
	mustRun(t, ctx, &HabitAddCmd{Name: "Read"})
	mustRun(t, ctx, &HabitToggleCmd{Name: "Read", Date: "today"})
	mustRun(t, ctx, &WaterAddCmd{Amount: 250})
	out.Reset()

	mustRun(t, ctx, &DebugDBPathCmd{})
	if !strings.Contains(out.String(), "brightwell.db") {
		t.Errorf("unexpected path output:\n%s", out.String())
	}

	out.Reset()
	mustRun(t, ctx, &DebugDumpDayCmd{Date: "today"})
	var dump dayDump
	if err := json.Unmarshal(out.Bytes(), &dump); err != nil {
		t.Fatalf("dump is not JSON: %v", err)
	}
	if len(dump.Completed) != 1 || len(dump.Hydration) != 1 || len(dump.Moods) != 0 {
		t.Errorf("unexpected dump %+v", dump)
	}

	if err := (&DebugDumpHabitCmd{Name: "missing"}).Run(ctx); err == nil || !strings.Contains(err.Error(), "not found") {
		t.Errorf("expected not found error, got %v", err)
	}
	if err := (&DebugDumpDayCmd{Date: "invalid-date"}).Run(ctx); err == nil || !strings.Contains(err.Error(), "invalid date") {
		t.Errorf("expected invalid date error, got %v", err)
	}
}

func TestMatchID(t *testing.T) {
	ids := []string{"abc123", "abd456", "xyz789"}
	tests := []struct {
		ref     string
		want    string
		wantErr bool
	}{
		{"abc123", "abc123", false},
		{"abc", "abc123", false},
		{"ab", "", true},
		{"zzz", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.ref, func(t *testing.T) {
			got, err := matchID(tt.ref, ids)
			if (err != nil) != tt.wantErr {
				t.Fatalf("matchID(%q) error = %v, wantErr %v", tt.ref, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("matchID(%q) = %q, want %q", tt.ref, got, tt.want)
			}
		})
	}
}

func TestResolveClockPrefersOverride(t *testing.T) {
	ctx, _ := setupTestContext(t)
	tz := "Asia/Tokyo"
	mustRun(t, ctx, &SettingsSetCmd{Timezone: &tz})

	clock, err := ResolveClock("", ctx.Store)
	if err != nil {
		t.Fatalf("ResolveClock failed: %v", err)
	}
	if clock.Location().String() != "Asia/Tokyo" {
		t.Errorf("expected stored timezone, got %s", clock.Location())
	}

	clock, err = ResolveClock("UTC", ctx.Store)
	if err != nil {
		t.Fatalf("ResolveClock failed: %v", err)
	}
	if clock.Location().String() != "UTC" {
		t.Errorf("expected override, got %s", clock.Location())
	}

	if _, err := ResolveClock("Bad/Zone", nil); err == nil {
		t.Error("expected invalid timezone error")
	}
}

func TestDoctorReportsPendingMigrations(t *testing.T) {
	ctx, out := setupTestContext(t)
	runner := migration.NewRunner(ctx.Store.(*storage.SQLiteStore).GetDB(), migrations.FS)
	if err := runner.SetVersion(1); err != nil {
		t.Fatal(err)
	}

	if err := (&DoctorCmd{}).Run(ctx); err == nil {
		t.Fatal("expected doctor to fail on an outdated schema")
	}
	if !strings.Contains(out.String(), "pending: 002_reminders") {
		t.Errorf("expected pending migration to be named:\n%s", out.String())
	}
}

func TestInitTwiceKeepsData(t *testing.T) {
	for _, file := range []string{"brightwell.db", "brightwell.json"} {
		t.Run(file, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), file)
			ctx := &Context{Store: storage.New(path), Clock: utils.FixedClock{At: testNow}, Out: &bytes.Buffer{}}
			mustRun(t, ctx, &InitCmd{})

			if err := ctx.Store.Load(); err != nil {
				t.Fatal(err)
			}
			mustRun(t, ctx, &HabitAddCmd{Name: "Read"})
			ctx.Store.Close()

			mustRun(t, ctx, &InitCmd{})
			if err := ctx.Store.Load(); err != nil {
				t.Fatal(err)
			}
			defer ctx.Store.Close()
			if _, err := ctx.Store.GetHabitByName("Read"); err != nil {
				t.Errorf("re-running init lost data: %v", err)
			}
		})
	}
}
