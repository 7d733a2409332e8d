package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mwestcott/hexdrive/internal/frame"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if err := Validate(cfg); err != nil {
		t.Errorf("Validate(DefaultConfig()) error = %v", err)
	}
	if cfg.Timing.MaxSpeedSecPerMeter != 13 || cfg.Timing.RotationTimeSec != 13 {
		t.Errorf("default timing = %+v", cfg.Timing)
	}
	if cfg.StreamCadence().Milliseconds() != 100 {
		t.Errorf("default cadence = %v, want 100ms", cfg.StreamCadence())
	}
}

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") error = %v", err)
	}
	if cfg.Robot.Host != "192.168.4.1" {
		t.Errorf("host = %q, want default", cfg.Robot.Host)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("Load() expected error for missing file, got nil")
	}
}

func TestLoadOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hexdrive.yaml")
	body := `
robot:
  host: 10.1.2.3
  port: 7777
timing:
  max_speed_s_per_m: 10
  rotation_time_s: 8
sliders: [1, 2, 3, 4, 5, 6, 7, 8, 9]
`
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Robot.Host != "10.1.2.3" || cfg.Robot.Port != 7777 {
		t.Errorf("robot = %+v", cfg.Robot)
	}
	if cfg.Robot.DiscretePort != 8080 {
		t.Errorf("discrete_port = %d, want default 8080", cfg.Robot.DiscretePort)
	}
	if cfg.Timing.MaxSpeedSecPerMeter != 10 {
		t.Errorf("max speed = %v, want 10", cfg.Timing.MaxSpeedSecPerMeter)
	}

	sliders, rejected := cfg.SliderBytes()
	if rejected {
		t.Error("SliderBytes() rejected a valid 9-value sequence")
	}
	if sliders != [frame.SliderCount]byte{1, 2, 3, 4, 5, 6, 7, 8, 9} {
		t.Errorf("sliders = %v", sliders)
	}
}

func TestValidateErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty host", func(c *Config) { c.Robot.Host = "" }},
		{"bad port", func(c *Config) { c.Robot.Port = 0 }},
		{"huge port", func(c *Config) { c.Robot.Port = 70000 }},
		{"zero cadence", func(c *Config) { c.Stream.CadenceMs = 0 }},
		{"zero timeout", func(c *Config) { c.Stream.ConnectTimeoutSec = 0 }},
		{"zero speed", func(c *Config) { c.Timing.MaxSpeedSecPerMeter = 0 }},
		{"negative rotation", func(c *Config) { c.Timing.RotationTimeSec = -1 }},
		{"slider out of range", func(c *Config) { c.Sliders = []int{300} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := Validate(cfg); err == nil {
				t.Error("Validate() expected error, got nil")
			}
		})
	}
}

func TestSliderBytesWrongLength(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Sliders = []int{1, 2, 3}

	sliders, rejected := cfg.SliderBytes()
	if !rejected {
		t.Error("SliderBytes() accepted a 3-value sequence")
	}
	if sliders != frame.DefaultSliders() {
		t.Errorf("sliders = %v, want defaults", sliders)
	}
}

func TestWriteDefaultRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hexdrive.yaml")
	if err := WriteDefault(path); err != nil {
		t.Fatalf("WriteDefault() error = %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	want := DefaultConfig()
	if cfg.Robot != want.Robot || cfg.Stream != want.Stream || cfg.Timing != want.Timing {
		t.Errorf("round-tripped config = %+v, want defaults", cfg)
	}
}
