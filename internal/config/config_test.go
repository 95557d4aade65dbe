package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Port != "8080" {
		t.Errorf("Expected default port 8080, got %s", cfg.Port)
	}
	if cfg.DBPath != "./data/relay.db" {
		t.Errorf("Expected default DB path, got %s", cfg.DBPath)
	}
	if cfg.AutosaveDebounce != time.Second {
		t.Errorf("Expected 1s autosave debounce, got %s", cfg.AutosaveDebounce)
	}
	if cfg.ImportMaxBytes != 2<<20 {
		t.Errorf("Expected 2MiB import limit, got %d", cfg.ImportMaxBytes)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DB_PATH", "/tmp/relay.db")
	t.Setenv("AUTOSAVE_DEBOUNCE", "250ms")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Port != "9090" {
		t.Errorf("Expected port 9090, got %s", cfg.Port)
	}
	if cfg.DBPath != "/tmp/relay.db" {
		t.Errorf("Expected overridden DB path, got %s", cfg.DBPath)
	}
	if cfg.AutosaveDebounce != 250*time.Millisecond {
		t.Errorf("Expected 250ms debounce, got %s", cfg.AutosaveDebounce)
	}
}

func TestLoadInvalidDurationFallsBack(t *testing.T) {
	t.Setenv("AUTOSAVE_DEBOUNCE", "soon")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.AutosaveDebounce != time.Second {
		t.Errorf("Expected fallback debounce, got %s", cfg.AutosaveDebounce)
	}
}

func TestValidate(t *testing.T) {
	valid := &Config{Port: "8080", DBPath: "./data/relay.db", AutosaveDebounce: time.Second}
	if err := valid.Validate(); err != nil {
		t.Errorf("Expected valid config, got %v", err)
	}

	tests := []struct {
		name string
		cfg  Config
	}{
		{"empty port", Config{DBPath: "x", AutosaveDebounce: time.Second}},
		{"empty db path", Config{Port: "8080", AutosaveDebounce: time.Second}},
		{"zero debounce", Config{Port: "8080", DBPath: "x"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.cfg.Validate(); err == nil {
				t.Error("Expected validation error")
			}
		})
	}
}

func TestIsDevelopment(t *testing.T) {
	tests := []struct {
		frontendURL string
		want        bool
	}{
		{"", true},
		{"http://localhost:3000", true},
		{"http://127.0.0.1:3000", true},
		{"https://relay.example.com", false},
	}
	for _, tt := range tests {
		cfg := &Config{FrontendURL: tt.frontendURL}
		if got := cfg.IsDevelopment(); got != tt.want {
			t.Errorf("IsDevelopment(%q) = %v, want %v", tt.frontendURL, got, tt.want)
		}
	}
}
