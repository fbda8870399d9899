package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.Port != "3000" {
		t.Fatalf("expected default port 3000, got %s", cfg.Port)
	}
	if cfg.GridUnit != 20 {
		t.Fatalf("expected default grid unit 20, got %v", cfg.GridUnit)
	}
	if cfg.ReadyAttempts != 5 || cfg.ReadyBackoffMS != 500 {
		t.Fatalf("unexpected readiness defaults: %d/%d", cfg.ReadyAttempts, cfg.ReadyBackoffMS)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "4000")
	t.Setenv("GRID_UNIT", "25.5")
	t.Setenv("READY_ATTEMPTS", "9")
	t.Setenv("BACKEND_URL", "http://backend:8080/api/v1")

	cfg := Load()
	if cfg.Port != "4000" {
		t.Fatalf("expected port override, got %s", cfg.Port)
	}
	if cfg.GridUnit != 25.5 {
		t.Fatalf("expected grid unit override, got %v", cfg.GridUnit)
	}
	if cfg.ReadyAttempts != 9 {
		t.Fatalf("expected attempts override, got %d", cfg.ReadyAttempts)
	}
	if cfg.BackendURL != "http://backend:8080/api/v1" {
		t.Fatalf("expected backend url override, got %s", cfg.BackendURL)
	}
}

func TestBadValuesFallBack(t *testing.T) {
	t.Setenv("READY_ATTEMPTS", "many")
	t.Setenv("GRID_UNIT", "wide")

	cfg := Load()
	if cfg.ReadyAttempts != 5 || cfg.GridUnit != 20 {
		t.Fatalf("expected defaults for unparsable values, got %d/%v", cfg.ReadyAttempts, cfg.GridUnit)
	}
}
