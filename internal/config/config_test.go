package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.CalendarDir != "calendars" {
		t.Errorf("unexpected default calendar dir: %s", cfg.CalendarDir)
	}
	if cfg.Retry.MaxAttempts != 4 {
		t.Errorf("unexpected default max attempts: %d", cfg.Retry.MaxAttempts)
	}
	if time.Duration(cfg.FetchPause) != 500*time.Millisecond {
		t.Errorf("unexpected default fetch pause: %v", time.Duration(cfg.FetchPause))
	}
}

func TestLoad_YAMLFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "volleycal.yaml")
	content := `
base_url: https://example.com/api
calendar_dir: /tmp/cals
timezone: America/Sao_Paulo
fetch_pause: 2s
retry:
  max_attempts: 6
  initial_delay: 250ms
  max_delay: 10s
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.BaseURL != "https://example.com/api" {
		t.Errorf("unexpected base URL: %s", cfg.BaseURL)
	}
	if cfg.Timezone != "America/Sao_Paulo" {
		t.Errorf("unexpected timezone: %s", cfg.Timezone)
	}
	if time.Duration(cfg.FetchPause) != 2*time.Second {
		t.Errorf("unexpected fetch pause: %v", time.Duration(cfg.FetchPause))
	}

	rc := cfg.RetryConfig()
	if rc.MaxAttempts != 6 || rc.InitialDelay != 250*time.Millisecond || rc.MaxDelay != 10*time.Second {
		t.Errorf("unexpected retry config: %+v", rc)
	}
}

func TestLoad_ExplicitMissingPathFails(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing explicit config path")
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "volleycal.yaml")
	if err := os.WriteFile(path, []byte("calendar_dir: from-file\n"), 0644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("VOLLEYCAL_CALENDAR_DIR", "from-env")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.CalendarDir != "from-env" {
		t.Errorf("expected env to win, got %s", cfg.CalendarDir)
	}
}

func TestLoad_BadDuration(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "volleycal.yaml")
	if err := os.WriteFile(path, []byte("fetch_pause: banana\n"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Error("expected error for unparseable duration")
	}
}

func TestLocation(t *testing.T) {
	cfg := Default()

	loc, err := cfg.Location()
	if err != nil {
		t.Fatalf("Location failed: %v", err)
	}
	if loc != time.Local {
		t.Error("empty timezone should resolve to the local zone")
	}

	cfg.Timezone = "America/Sao_Paulo"
	loc, err = cfg.Location()
	if err != nil {
		t.Fatalf("Location failed: %v", err)
	}
	if loc.String() != "America/Sao_Paulo" {
		t.Errorf("unexpected location: %s", loc)
	}

	cfg.Timezone = "Not/AZone"
	if _, err := cfg.Location(); err == nil {
		t.Error("expected error for unknown timezone")
	}
}

// chdir changes the working directory for the duration of the test,
// standing in for t.Chdir, which requires Go 1.24.
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd failed: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Chdir failed: %v", err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Fatalf("restoring working directory failed: %v", err)
		}
	})
}
