package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg, err := parse(GetDefaultYAML())
	if err != nil {
		t.Fatalf("embedded defaults failed to parse: %v", err)
	}
	def := DefaultInvadersConfig()

	if cfg.Formation != def.Formation {
		t.Errorf("formation mismatch: yaml=%+v hardcoded=%+v", cfg.Formation, def.Formation)
	}
	if cfg.Scaling != def.Scaling {
		t.Errorf("scaling mismatch: yaml=%+v hardcoded=%+v", cfg.Scaling, def.Scaling)
	}
	if cfg.Player != def.Player {
		t.Errorf("player mismatch: yaml=%+v hardcoded=%+v", cfg.Player, def.Player)
	}
	if len(cfg.Tiers) != len(def.Tiers) {
		t.Fatalf("tier count: yaml=%d hardcoded=%d", len(cfg.Tiers), len(def.Tiers))
	}
	for i := range cfg.Tiers {
		if cfg.Tiers[i] != def.Tiers[i] {
			t.Errorf("tier %d mismatch: yaml=%+v hardcoded=%+v", i, cfg.Tiers[i], def.Tiers[i])
		}
	}
	for id, tpl := range def.Templates {
		if cfg.Templates[id] != tpl {
			t.Errorf("template %q mismatch: yaml=%+v hardcoded=%+v", id, cfg.Templates[id], tpl)
		}
	}
}

func TestLoadCustomPathOverlaysDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "invaders.yaml")
	data := []byte("formation:\n  columns: 7\nplayer:\n  lives: 4\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Formation.Columns != 7 {
		t.Errorf("Columns = %d, want 7", cfg.Formation.Columns)
	}
	if cfg.Player.Lives != 4 {
		t.Errorf("Lives = %d, want 4", cfg.Player.Lives)
	}
	if cfg.Formation.Rows != 5 {
		t.Errorf("Rows = %d, want default 5", cfg.Formation.Rows)
	}
	if len(cfg.Tiers) != 3 {
		t.Errorf("Tiers = %d, want default 3", len(cfg.Tiers))
	}
}

func TestLoadMissingCustomPath(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if cfg.Formation.Columns != 5 {
		t.Errorf("expected defaults on error, got columns=%d", cfg.Formation.Columns)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(path, []byte("scaling:\n  fire_growth: 1\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	_, err := Load(path)
	if !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*InvadersConfig)
		ok     bool
	}{
		{"defaults", func(*InvadersConfig) {}, true},
		{"no tiers", func(c *InvadersConfig) { c.Tiers = nil }, false},
		{"zero base lives", func(c *InvadersConfig) { c.Tiers[0].BaseLives = 0 }, false},
		{"bonus without cadence", func(c *InvadersConfig) { c.Tiers[0].BonusEvery = 0 }, false},
		{"unknown explosion", func(c *InvadersConfig) { c.Tiers[1].Explosion.Mode = "big" }, false},
		{"fixed explosion without size", func(c *InvadersConfig) {
			c.Tiers[2].Explosion = ExplosionConfig{Mode: ExplosionFixed}
		}, false},
		{"empty formation", func(c *InvadersConfig) { c.Formation.Rows = 0 }, false},
		{"caps below base", func(c *InvadersConfig) { c.Scaling.MaxColumns = 4 }, false},
		{"inverted field", func(c *InvadersConfig) { c.Field.MinX = 50 }, false},
		{"interval below floor", func(c *InvadersConfig) { c.Formation.IntervalMs = 50 }, false},
		{"no lives", func(c *InvadersConfig) { c.Player.Lives = 0 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultInvadersConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.ok && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if !tt.ok && !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestMarshalRoundTripsThroughParse(t *testing.T) {
	cfg := DefaultInvadersConfig()
	cfg.Formation.Columns = 8
	data, err := Marshal(cfg)
	if err != nil {
		t.Fatal(err)
	}
	back, err := parse(data)
	if err != nil {
		t.Fatal(err)
	}
	if back.Formation.Columns != 8 {
		t.Errorf("Columns = %d, want 8", back.Formation.Columns)
	}
}

func TestApplyPreset(t *testing.T) {
	tests := []struct {
		preset   DifficultyPreset
		lives    int
		fixed    bool
		fasterOK bool
	}{
		{DifficultyEasy, 5, false, false},
		{DifficultyNormal, 3, false, false},
		{DifficultyHard, 2, false, true},
		{DifficultyFixed, 3, true, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.preset), func(t *testing.T) {
			cfg := DefaultInvadersConfig()
			ApplyPreset(&cfg, tt.preset)
			if cfg.Player.Lives != tt.lives {
				t.Errorf("Lives = %d, want %d", cfg.Player.Lives, tt.lives)
			}
			if cfg.Difficulty.Fixed != tt.fixed {
				t.Errorf("Fixed = %v, want %v", cfg.Difficulty.Fixed, tt.fixed)
			}
			if tt.fasterOK && cfg.Formation.IntervalMs >= DefaultInvadersConfig().Formation.IntervalMs {
				t.Errorf("hard preset should shorten the interval, got %v", cfg.Formation.IntervalMs)
			}
			if err := cfg.Validate(); err != nil {
				t.Errorf("preset produced invalid config: %v", err)
			}
		})
	}
}

func TestParsePreset(t *testing.T) {
	if ParsePreset("hard") != DifficultyHard {
		t.Error("hard not parsed")
	}
	if ParsePreset("nightmare") != "" {
		t.Error("unknown preset should be empty")
	}
}

func TestApplyAltMode(t *testing.T) {
	cfg := DefaultInvadersConfig()
	base := cfg.Tiers[0]
	ApplyAltMode(&cfg)

	if cfg.Formation.IntervalMs != 1500*1.5 {
		t.Errorf("IntervalMs = %v, want %v", cfg.Formation.IntervalMs, 1500*1.5)
	}
	if cfg.Tiers[0].Template != "alien_1_alt" {
		t.Errorf("Template = %q, want alien_1_alt", cfg.Tiers[0].Template)
	}
	if cfg.Tiers[1].Explosion.Mode != ExplosionFixed || cfg.Tiers[1].Explosion.Size != 0.75 {
		t.Errorf("tier 1 explosion = %+v", cfg.Tiers[1].Explosion)
	}
	if cfg.Tiers[0].Score != base.Score {
		t.Error("alt mode must not change scoring")
	}
	if DefaultInvadersConfig().Tiers[0].Template != "alien_1" {
		t.Error("alt mode leaked into defaults")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("alt config invalid: %v", err)
	}
}
