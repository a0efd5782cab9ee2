package config

import (
	"os"
	"testing"
	"time"
)

func TestDatabaseDriver(t *testing.T) {
	cases := map[string]string{
		"":           "sqlite3",
		"sqlite":     "sqlite3",
		"SQLite3":    "sqlite3",
		"postgres":   "pgx",
		"postgresql": "pgx",
		"pgx":        "pgx",
	}
	for in, want := range cases {
		cfg := &Config{Storage: StorageConfig{Driver: in}}
		got, err := cfg.DatabaseDriver()
		if err != nil {
			t.Fatalf("%q: unexpected error %v", in, err)
		}
		if got != want {
			t.Errorf("%q: got %q want %q", in, got, want)
		}
	}

	if _, err := (&Config{Storage: StorageConfig{Driver: "mysql"}}).DatabaseDriver(); err == nil {
		t.Fatal("expected error for unsupported driver")
	}
}

func TestLocation(t *testing.T) {
	loc, err := (&Config{}).Location()
	if err != nil || loc != time.Local {
		t.Fatalf("expected time.Local, got %v, %v", loc, err)
	}
	loc, err = (&Config{App: AppConfig{Timezone: "UTC"}}).Location()
	if err != nil || loc.String() != "UTC" {
		t.Fatalf("expected UTC, got %v, %v", loc, err)
	}
	if _, err := (&Config{App: AppConfig{Timezone: "Nowhere/Invalid"}}).Location(); err == nil {
		t.Fatal("expected error for unknown timezone")
	}
}

func TestLoadDefaults(t *testing.T) {
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Storage.Driver != "sqlite3" {
		t.Errorf("expected default driver sqlite3, got %q", cfg.Storage.Driver)
	}
	if cfg.RecentLimit() != 3 {
		t.Errorf("expected recent limit 3, got %d", cfg.RecentLimit())
	}
	if cfg.Log.Level != "info" {
		t.Errorf("expected log level info, got %q", cfg.Log.Level)
	}
}
