package main

import (
	"fmt"

	"github.com/mwestcott/hexdrive/internal/capture"
	"github.com/mwestcott/hexdrive/internal/config"
	"github.com/mwestcott/hexdrive/internal/logging"
	"github.com/mwestcott/hexdrive/internal/robot"
)

// commonFlags are shared by the drive, run and send commands.
type commonFlags struct {
	host        string
	port        int
	configPath  string
	logFile     string
	captureFile string
	verbose     bool
	debug       bool
}

func (f *commonFlags) logLevel() logging.LogLevel {
	switch {
	case f.debug:
		return logging.LogLevelDebug
	case f.verbose:
		return logging.LogLevelVerbose
	}
	return logging.LogLevelInfo
}

// loadConfig merges the config file with command-line overrides. Flags win.
func (f *commonFlags) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return nil, err
	}
	if f.host != "" {
		cfg.Robot.Host = f.host
	}
	if f.port != 0 {
		cfg.Robot.Port = f.port
	}
	if f.captureFile != "" {
		cfg.CaptureFile = f.captureFile
	}
	if f.logFile != "" {
		cfg.LogFile = f.logFile
	}
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// buildRobot assembles the logger, robot and optional frame capture. The
// returned cleanup closes whatever was opened.
func buildRobot(cfg *config.Config, level logging.LogLevel) (*robot.Robot, *logging.Logger, func(), error) {
	log, err := logging.NewLogger(level, cfg.LogFile)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("init logging: %w", err)
	}

	bot := robot.New(cfg, log)

	cleanup := func() { log.Close() }
	if cfg.CaptureFile != "" {
		rec, err := capture.NewRecorder(cfg.CaptureFile, cfg.Robot.Host, cfg.Robot.Port)
		if err != nil {
			log.Close()
			return nil, nil, nil, fmt.Errorf("open capture: %w", err)
		}
		bot.Session().SetRecorder(rec)
		log.Info("Capturing frames to %s", cfg.CaptureFile)
		cleanup = func() {
			rec.Close()
			log.Close()
		}
	}

	if _, rejected := cfg.SliderBytes(); rejected {
		log.Warn("config sliders ignored: need exactly 9 values, using defaults")
	}

	return bot, log, cleanup, nil
}
