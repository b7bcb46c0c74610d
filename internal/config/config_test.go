package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadCreatesDefaultOnFirstRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.UTCOffset != "-05:00" {
		t.Fatalf("UTCOffset = %q, want -05:00", cfg.UTCOffset)
	}
	if cfg.Refresh == "" {
		t.Fatal("Refresh default missing")
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("default config not written: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Fatalf("perm = %o, want 0600", perm)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	in := &Config{
		UTCOffset:    "+09:00",
		FirstTagOnly: true,
		Refresh:      "*/30 * * * *",
		CacheDir:     "/tmp/calaudit-cache",
		ICS: []ICSConfig{
			{URL: "https://example.com/cal.ics", ID: "personal", Name: "Personal"},
		},
	}
	if err := Save(path, in); err != nil {
		t.Fatalf("Save: %v", err)
	}

	out, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if out.UTCOffset != "+09:00" || !out.FirstTagOnly || out.Refresh != "*/30 * * * *" {
		t.Fatalf("round trip mismatch: %+v", out)
	}
	if len(out.ICS) != 1 || out.ICS[0].ID != "personal" {
		t.Fatalf("ICS sources mismatch: %+v", out.ICS)
	}
}

func TestNormalizeFillsDefaults(t *testing.T) {
	var cfg Config
	cfg.Normalize()
	if cfg.UTCOffset != "-05:00" {
		t.Fatalf("UTCOffset = %q", cfg.UTCOffset)
	}
	if cfg.Refresh == "" || cfg.CacheDir == "" {
		t.Fatalf("defaults missing: %+v", cfg)
	}
	if cfg.ICS == nil {
		t.Fatal("ICS should be non-nil")
	}
}

func TestLoadRejectsEmptyPath(t *testing.T) {
	if _, err := Load(""); err == nil {
		t.Fatal("Load(\"\") should fail")
	}
}
