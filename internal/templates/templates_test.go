package templates

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/julianstephens/brightwell/internal/models"
	"github.com/julianstephens/brightwell/internal/storage"
)

func TestCatalog(t *testing.T) {
	all := All()
	if len(all) != 8 {
		t.Fatalf("expected 8 templates, got %d", len(all))
	}
	ids := make(map[string]bool)
	for _, tmpl := range all {
		if ids[tmpl.ID] {
			t.Errorf("duplicate template id %s", tmpl.ID)
		}
		ids[tmpl.ID] = true
		if len(tmpl.Habits) != 5 {
			t.Errorf("%s: expected 5 habits, got %d", tmpl.ID, len(tmpl.Habits))
		}
	}

	all[0].Habits[0].Name = "mutated"
	if fresh, _ := Get(all[0].ID); fresh.Habits[0].Name == "mutated" {
		t.Error("All should return a copy")
	}
}

func TestGet(t *testing.T) {
	tmpl, ok := Get("mental_wellness")
	if !ok || tmpl.Name != "Mental Wellness" {
		t.Errorf("unexpected lookup result %+v, %v", tmpl, ok)
	}
	if _, ok := Get("nope"); ok {
		t.Error("expected unknown template to be missing")
	}
}

func TestApplySkipsExistingHabits(t *testing.T) {
	store := storage.NewJSONStore(filepath.Join(t.TempDir(), "store.json"))
	if err := store.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	now := time.Date(2025, 1, 1, 7, 0, 0, 0, time.UTC)
	if err := store.AddHabit(models.Habit{ID: "x", Name: "meditate", CreatedAt: now}); err != nil {
		t.Fatalf("AddHabit failed: %v", err)
	}

	morning, _ := Get("morning_routine")
	res, err := Apply(store, morning, now)
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if len(res.Added) != 4 || len(res.Skipped) != 1 || res.Skipped[0] != "Meditate" {
		t.Errorf("unexpected result %+v", res)
	}

	// Overlapping template: Meditate again, the rest new.
	mental, _ := Get("mental_wellness")
	res, err = Apply(store, mental, now)
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if len(res.Added) != 4 || len(res.Skipped) != 1 {
		t.Errorf("unexpected result %+v", res)
	}

	habits, _ := store.GetAllHabits(false)
	if len(habits) != 9 {
		t.Errorf("expected 9 habits, got %d", len(habits))
	}

	res, _ = Apply(store, morning, now)
	if len(res.Added) != 0 || len(res.Skipped) != 5 {
		t.Errorf("re-applying should skip everything, got %+v", res)
	}
}
