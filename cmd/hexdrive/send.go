package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/mwestcott/hexdrive/internal/capture"
	"github.com/mwestcott/hexdrive/internal/config"
	"github.com/mwestcott/hexdrive/internal/errors"
	"github.com/mwestcott/hexdrive/internal/frame"
	"github.com/mwestcott/hexdrive/internal/logging"
	"github.com/mwestcott/hexdrive/internal/transport"
)

type sendFlags struct {
	commonFlags
	power      int
	angle      int
	rotation   int
	staticTilt bool
	movingTilt bool
	powerOff   bool
	accelX     int
	accelY     int
	sliders    string
	duration   float64
	repeat     int
	intervalMs int
}

func newSendCmd() *cobra.Command {
	flags := &sendFlags{}

	cmd := &cobra.Command{
		Use:   "send",
		Short: "Send one hand-built frame over the discrete channel",
		Long: `Build a control frame from flags and deliver it as a one-shot send,
outside any streaming session. With --repeat the same frame is re-sent on a
fixed interval, which reproduces the streaming cadence by hand.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.loadConfig()
			if err != nil {
				return err
			}

			log, err := logging.NewLogger(flags.logLevel(), cfg.LogFile)
			if err != nil {
				return fmt.Errorf("init logging: %w", err)
			}
			defer log.Close()

			f, err := flags.buildFrame(cfg)
			if err != nil {
				return err
			}

			var rec *capture.Recorder
			if cfg.CaptureFile != "" {
				rec, err = capture.NewRecorder(cfg.CaptureFile, cfg.Robot.Host, cfg.Robot.DiscretePort)
				if err != nil {
					return fmt.Errorf("open capture: %w", err)
				}
				defer rec.Close()
			}

			tr := transport.NewHTTPTransport(cfg.Robot.Host, cfg.Robot.DiscretePort)
			data := frame.Encode(f)
			log.LogHex("send frame", data)

			repeats := flags.repeat
			if repeats < 1 {
				repeats = 1
			}
			for i := 0; i < repeats; i++ {
				if i > 0 {
					time.Sleep(time.Duration(flags.intervalMs) * time.Millisecond)
				}
				ctx, cancel := context.WithTimeout(cmd.Context(), 3*time.Second)
				err := tr.Send(ctx, data)
				cancel()
				if err != nil {
					return errors.WrapNetworkError(err, cfg.Robot.Host, cfg.Robot.DiscretePort)
				}
				if rec != nil {
					if err := rec.Record(data); err != nil {
						log.Error("frame capture failed: %v", err)
					}
				}
			}

			fmt.Printf("sent %d frame(s) to %s:%d\n", repeats, cfg.Robot.Host, cfg.Robot.DiscretePort)
			return nil
		},
	}

	cmd.Flags().StringVar(&flags.host, "host", "", "Robot IP address or hostname")
	cmd.Flags().StringVar(&flags.configPath, "config", "", "Path to hexdrive.yaml")
	cmd.Flags().StringVar(&flags.logFile, "log-file", "", "Write logs to file")
	cmd.Flags().StringVar(&flags.captureFile, "capture", "", "Record transmitted frames to a pcap file")
	cmd.Flags().BoolVarP(&flags.verbose, "verbose", "v", false, "Verbose output")
	cmd.Flags().BoolVar(&flags.debug, "debug", false, "Debug output (includes frame hex)")

	cmd.Flags().IntVar(&flags.power, "power", 0, "Walk power 0..100")
	cmd.Flags().IntVar(&flags.angle, "angle", 0, "Walk direction -180..180")
	cmd.Flags().IntVar(&flags.rotation, "rotation", 0, "Rotation -100..100")
	cmd.Flags().BoolVar(&flags.staticTilt, "static-tilt", false, "Set the static tilt flag")
	cmd.Flags().BoolVar(&flags.movingTilt, "moving-tilt", false, "Set the moving tilt flag")
	cmd.Flags().BoolVar(&flags.powerOff, "power-off", false, "Clear the poweredOn flag")
	cmd.Flags().IntVar(&flags.accelX, "accel-x", 0, "Tilt accel X -40..40")
	cmd.Flags().IntVar(&flags.accelY, "accel-y", 0, "Tilt accel Y -40..40")
	cmd.Flags().StringVar(&flags.sliders, "sliders", "", "Nine comma-separated slider bytes")
	cmd.Flags().Float64Var(&flags.duration, "duration", 0, "Frame duration in seconds")
	cmd.Flags().IntVar(&flags.repeat, "repeat", 1, "Send the frame this many times")
	cmd.Flags().IntVar(&flags.intervalMs, "interval", 100, "Interval between repeats in ms")

	return cmd
}

func (f *sendFlags) buildFrame(cfg *config.Config) (frame.Frame, error) {
	out := frame.Neutral()

	if f.power < 0 || f.power > frame.PowerMax {
		return out, fmt.Errorf("power %d out of range", f.power)
	}
	if f.angle < -frame.AngleMax || f.angle > frame.AngleMax {
		return out, fmt.Errorf("angle %d out of range", f.angle)
	}
	if f.rotation < -frame.RotationMax || f.rotation > frame.RotationMax {
		return out, fmt.Errorf("rotation %d out of range", f.rotation)
	}
	if f.duration < 0 {
		return out, fmt.Errorf("duration must be >= 0")
	}

	out.Power = f.power
	out.Angle = f.angle
	out.Rotation = f.rotation
	out.StaticTilt = f.staticTilt
	out.MovingTilt = f.movingTilt
	out.PoweredOn = !f.powerOff
	out.AccelX = f.accelX
	out.AccelY = f.accelY
	out.DurationTicks = uint16(f.duration * frame.TicksPerSecond)

	if f.sliders != "" {
		parts := strings.Split(f.sliders, ",")
		raw := make([]byte, 0, len(parts))
		for _, p := range parts {
			v, err := strconv.Atoi(strings.TrimSpace(p))
			if err != nil || v < 0 || v > 255 {
				return out, fmt.Errorf("bad slider value %q", p)
			}
			raw = append(raw, byte(v))
		}
		sliders, ok := frame.SlidersFromBytes(raw)
		if !ok {
			return out, fmt.Errorf("sliders need exactly %d values, got %d", frame.SliderCount, len(raw))
		}
		out.Sliders = sliders
	} else {
		out.Sliders, _ = cfg.SliderBytes()
	}

	return out, nil
}
