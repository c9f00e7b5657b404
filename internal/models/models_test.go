package models

import (
	"encoding/json"
	"testing"
	"time"
)

func TestDaySetJSONIsSorted(t *testing.T) {
	s := NewDaySet("2025-03-02", "2025-01-15", "2025-03-02")
	data, err := json.Marshal(s)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if string(data) != `["2025-01-15","2025-03-02"]` {
		t.Errorf("unexpected JSON %s", data)
	}

	var back DaySet
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if len(back) != 2 || !back.Has("2025-01-15") {
		t.Errorf("unexpected set %v", back)
	}
}

func TestToggleCompletion(t *testing.T) {
	var h Habit
	if !h.ToggleCompletion("2025-03-10") {
		t.Error("first toggle should mark the day done")
	}
	if !h.IsCompletedOn("2025-03-10") {
		t.Error("day should be completed")
	}
	if h.ToggleCompletion("2025-03-10") {
		t.Error("second toggle should clear the day")
	}
	if len(h.CompletionDates) != 0 {
		t.Errorf("expected empty set, got %v", h.CompletionDates)
	}
}

func TestNewHabit(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	h := NewHabit("  Read  ", " 20 pages ", "📚", now)
	if h.ID == "" {
		t.Error("expected an id")
	}
	if h.Name != "Read" || h.Description != "20 pages" {
		t.Errorf("fields not trimmed: %+v", h)
	}
	if h.CompletionDates == nil || h.DeletedAt != nil {
		t.Errorf("expected live habit with empty set: %+v", h)
	}
}

func TestNewMoodEntry(t *testing.T) {
	at := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	e := NewMoodEntry("🙂", " good run ", at)
	if e.Category != "good" {
		t.Errorf("expected good category, got %s", e.Category)
	}
	if e.Note != "good run" || !e.Timestamp.Equal(at) {
		t.Errorf("unexpected entry %+v", e)
	}
}

func TestNewHydrationEntryDayFollowsLocation(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*60*60)
	// 20:00 UTC on the 9th is already the 10th in Tokyo.
	at := time.Date(2025, 3, 9, 20, 0, 0, 0, time.UTC).In(tokyo)
	e := NewHydrationEntry(250, at)
	if e.Day != "2025-03-10" {
		t.Errorf("expected 2025-03-10, got %s", e.Day)
	}
	if e.AmountMl != 250 || e.ID == "" {
		t.Errorf("unexpected entry %+v", e)
	}
}

func TestSettingsMapRoundTrip(t *testing.T) {
	s := DefaultSettings()
	s.HydrationGoalMl = 2500
	s.RemindersEnabled = false
	got, err := MapToSettings(SettingsToMap(s))
	if err != nil {
		t.Fatalf("MapToSettings failed: %v", err)
	}
	if got != s {
		t.Errorf("expected %+v, got %+v", s, got)
	}
}
