package main

import (
	"github.com/spf13/cobra"

	"github.com/mwestcott/hexdrive/internal/ui"
)

func newDriveCmd() *cobra.Command {
	flags := &commonFlags{}

	cmd := &cobra.Command{
		Use:   "drive",
		Short: "Drive the hexapod interactively",
		Long: `Open a streaming session and drive the hexapod from the keyboard.

Arrow keys (or WASD) queue walk and turn commands, t/g/f/h queue body
tilts, and space queues a rest. Commands run one at a time in submission
order; the current frame is re-sent at the watchdog cadence for as long
as the session stays open.

When no --host is given, a connection form is shown first.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.loadConfig()
			if err != nil {
				return err
			}

			host, port := cfg.Robot.Host, cfg.Robot.Port
			if !cmd.Flags().Changed("host") {
				target, err := ui.RunConnectForm(host, port)
				if err != nil {
					return err
				}
				host, port = target.Host, target.Port
				cfg.Robot.Host, cfg.Robot.Port = host, port
			}

			bot, _, cleanup, err := buildRobot(cfg, flags.logLevel())
			if err != nil {
				return err
			}
			defer cleanup()

			return ui.RunConsole(bot, host, port)
		},
	}

	cmd.Flags().StringVar(&flags.host, "host", "", "Robot IP address or hostname")
	cmd.Flags().IntVar(&flags.port, "port", 0, "Robot streaming TCP port")
	cmd.Flags().StringVar(&flags.configPath, "config", "", "Path to hexdrive.yaml")
	cmd.Flags().StringVar(&flags.logFile, "log-file", "", "Write logs to file")
	cmd.Flags().StringVar(&flags.captureFile, "capture", "", "Record transmitted frames to a pcap file")
	cmd.Flags().BoolVarP(&flags.verbose, "verbose", "v", false, "Verbose output")
	cmd.Flags().BoolVar(&flags.debug, "debug", false, "Debug output (includes frame hex)")

	return cmd
}
