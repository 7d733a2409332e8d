package config

// Configuration loading and validation for hexdrive

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/mwestcott/hexdrive/internal/errors"
	"github.com/mwestcott/hexdrive/internal/frame"
)

// RobotConfig identifies the robot endpoints
type RobotConfig struct {
	Host         string `yaml:"host"`
	Port         int    `yaml:"port"`          // streaming TCP port
	DiscretePort int    `yaml:"discrete_port"` // one-shot HTTP port
}

// StreamConfig tunes the streaming session
type StreamConfig struct {
	CadenceMs         int `yaml:"cadence_ms"`          // watchdog re-send interval
	ConnectTimeoutSec int `yaml:"connect_timeout_sec"` // dial bound
}

// TimingConfig converts command arguments to walk durations
type TimingConfig struct {
	MaxSpeedSecPerMeter float64 `yaml:"max_speed_s_per_m"`
	RotationTimeSec     float64 `yaml:"rotation_time_s"`
}

// Config is the hexdrive configuration
type Config struct {
	Robot       RobotConfig  `yaml:"robot"`
	Stream      StreamConfig `yaml:"stream"`
	Timing      TimingConfig `yaml:"timing"`
	Sliders     []int        `yaml:"sliders,omitempty"` // gait tuning, exactly 9 values
	CaptureFile string       `yaml:"capture_file,omitempty"`
	LogFile     string       `yaml:"log_file,omitempty"`
}

// DefaultConfig returns the stock configuration
func DefaultConfig() *Config {
	return &Config{
		Robot: RobotConfig{
			Host:         "192.168.4.1",
			Port:         5555,
			DiscretePort: 8080,
		},
		Stream: StreamConfig{
			CadenceMs:         100,
			ConnectTimeoutSec: 5,
		},
		Timing: TimingConfig{
			MaxSpeedSecPerMeter: 13,
			RotationTimeSec:     13,
		},
	}
}

// Load reads a configuration from a YAML file. A missing path returns the
// defaults; a missing file is an error.
func Load(path string) (*Config, error) {
	if path == "" {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapConfigError(fmt.Errorf("read config file: %w", err), path)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.WrapConfigError(fmt.Errorf("parse YAML: %w", err), path)
	}

	if err := Validate(cfg); err != nil {
		return nil, errors.WrapConfigError(err, path)
	}

	return cfg, nil
}

// Validate checks a configuration
func Validate(cfg *Config) error {
	if cfg.Robot.Host == "" {
		return fmt.Errorf("robot.host is required")
	}
	if cfg.Robot.Port <= 0 || cfg.Robot.Port > 65535 {
		return fmt.Errorf("robot.port %d out of range", cfg.Robot.Port)
	}
	if cfg.Robot.DiscretePort < 0 || cfg.Robot.DiscretePort > 65535 {
		return fmt.Errorf("robot.discrete_port %d out of range", cfg.Robot.DiscretePort)
	}
	if cfg.Stream.CadenceMs <= 0 {
		return fmt.Errorf("stream.cadence_ms must be positive")
	}
	if cfg.Stream.ConnectTimeoutSec <= 0 {
		return fmt.Errorf("stream.connect_timeout_sec must be positive")
	}
	if cfg.Timing.MaxSpeedSecPerMeter <= 0 {
		return fmt.Errorf("timing.max_speed_s_per_m must be positive")
	}
	if cfg.Timing.RotationTimeSec <= 0 {
		return fmt.Errorf("timing.rotation_time_s must be positive")
	}
	for i, v := range cfg.Sliders {
		if v < 0 || v > 255 {
			return fmt.Errorf("sliders[%d] = %d out of byte range", i, v)
		}
	}
	return nil
}

// StreamCadence returns the streaming interval as a duration
func (c *Config) StreamCadence() time.Duration {
	return time.Duration(c.Stream.CadenceMs) * time.Millisecond
}

// ConnectTimeoutDuration returns the dial bound as a duration
func (c *Config) ConnectTimeoutDuration() time.Duration {
	return time.Duration(c.Stream.ConnectTimeoutSec) * time.Second
}

// SliderBytes returns the configured slider settings, or the frame defaults
// when unset or not exactly 9 values. The second return value reports
// whether a configured sequence was rejected.
func (c *Config) SliderBytes() ([frame.SliderCount]byte, bool) {
	if len(c.Sliders) == 0 {
		return frame.DefaultSliders(), false
	}
	raw := make([]byte, len(c.Sliders))
	for i, v := range c.Sliders {
		raw[i] = byte(v)
	}
	s, ok := frame.SlidersFromBytes(raw)
	return s, !ok
}

// WriteDefault writes the default configuration to path
func WriteDefault(path string) error {
	data, err := yaml.Marshal(DefaultConfig())
	if err != nil {
		return fmt.Errorf("marshal default config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}
