package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("missing file should not be an error: %v", err)
	}
	if cfg != (File{}) {
		t.Errorf("expected zero config, got %+v", cfg)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "store: /data/brightwell.json\ntimezone: Europe/Berlin\ndebug: true\nbackup_on_start: true\n"
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	want := File{Store: "/data/brightwell.json", Timezone: "Europe/Berlin", Debug: true, BackupOnStart: true}
	if cfg != want {
		t.Errorf("expected %+v, got %+v", want, cfg)
	}
}

func TestLoadEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, nil, 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err != nil {
		t.Errorf("empty file should load, got %v", err)
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("timezon: UTC\n"), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected error for misspelled key")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := File{Timezone: "UTC", LogDir: "/tmp/logs"}
	if err := Save(path, cfg); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got != cfg {
		t.Errorf("expected %+v, got %+v", cfg, got)
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	if got := ExpandPath("~/.config/brightwell"); got != filepath.Join(home, ".config/brightwell") {
		t.Errorf("unexpected expansion %s", got)
	}
	if got := ExpandPath("/abs/path"); got != "/abs/path" {
		t.Errorf("absolute path changed: %s", got)
	}
	if got := ExpandPath("~other/x"); !strings.HasPrefix(got, "~other") {
		t.Errorf("~user form should be left alone: %s", got)
	}
}

func TestMerge(t *testing.T) {
	base := File{Store: "a.db", Timezone: "UTC"}
	got := Merge(base, File{Timezone: "Asia/Tokyo", Debug: true})
	want := File{Store: "a.db", Timezone: "Asia/Tokyo", Debug: true}
	if got != want {
		t.Errorf("expected %+v, got %+v", want, got)
	}
}
