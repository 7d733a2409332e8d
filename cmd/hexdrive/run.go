package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/mwestcott/hexdrive/internal/errors"
	"github.com/mwestcott/hexdrive/internal/script"
	"github.com/mwestcott/hexdrive/internal/session"
)

func newRunCmd() *cobra.Command {
	flags := &commonFlags{}
	var discrete bool

	cmd := &cobra.Command{
		Use:   "run <script.yaml>",
		Short: "Run a scripted command sequence",
		Long: `Load a drive script and execute it through the scheduler.

A script is a YAML list of steps:

  - command: forward
    value: 0.5
  - command: turn_right
    value: 90
  - command: rest
    value: 1

Commands run strictly in order; each step's duration gates the next. By
default a streaming session is opened first; with --discrete every frame
is delivered as a one-shot send instead.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			steps, err := script.Load(args[0])
			if err != nil {
				return err
			}

			cfg, err := flags.loadConfig()
			if err != nil {
				return err
			}

			bot, log, cleanup, err := buildRobot(cfg, flags.logLevel())
			if err != nil {
				return err
			}
			defer cleanup()

			if !discrete {
				bot.Connect(cfg.Robot.Host, cfg.Robot.Port)
				if err := waitConnected(bot.Session(), cfg.ConnectTimeoutDuration()+time.Second); err != nil {
					return errors.WrapNetworkError(err, cfg.Robot.Host, cfg.Robot.Port)
				}
			}

			log.Info("Running %d steps from %s", len(steps), args[0])
			script.Run(steps, bot)

			for !bot.Idle() {
				time.Sleep(100 * time.Millisecond)
			}
			bot.Disconnect()

			log.Info("Script complete")
			return nil
		},
	}

	cmd.Flags().StringVar(&flags.host, "host", "", "Robot IP address or hostname")
	cmd.Flags().IntVar(&flags.port, "port", 0, "Robot streaming TCP port")
	cmd.Flags().StringVar(&flags.configPath, "config", "", "Path to hexdrive.yaml")
	cmd.Flags().StringVar(&flags.logFile, "log-file", "", "Write logs to file")
	cmd.Flags().StringVar(&flags.captureFile, "capture", "", "Record transmitted frames to a pcap file")
	cmd.Flags().BoolVarP(&flags.verbose, "verbose", "v", false, "Verbose output")
	cmd.Flags().BoolVar(&flags.debug, "debug", false, "Debug output (includes frame hex)")
	cmd.Flags().BoolVar(&discrete, "discrete", false, "Deliver frames one-shot instead of streaming")

	return cmd
}

// waitConnected polls the session until the dial resolves one way or the
// other.
func waitConnected(s *session.Session, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		switch s.Phase() {
		case session.PhaseConnected:
			return nil
		case session.PhaseIdle:
			return fmt.Errorf("connect failed")
		}
		time.Sleep(50 * time.Millisecond)
	}
	return fmt.Errorf("connect timed out")
}
