package scheduler

// Command variants and their frame/duration resolution

import (
	"fmt"
	"math"

	"github.com/mwestcott/hexdrive/internal/frame"
)

// Kind identifies a command variant.
type Kind int

const (
	KindGoForward Kind = iota
	KindGoBack
	KindTurnLeft
	KindTurnRight
	KindTiltForward
	KindTiltBack
	KindTiltLeft
	KindTiltRight
	KindRest
	KindSendCustom
)

func (k Kind) String() string {
	switch k {
	case KindGoForward:
		return "goForward"
	case KindGoBack:
		return "goBack"
	case KindTurnLeft:
		return "turnLeft"
	case KindTurnRight:
		return "turnRight"
	case KindTiltForward:
		return "tiltForward"
	case KindTiltBack:
		return "tiltBack"
	case KindTiltLeft:
		return "tiltLeft"
	case KindTiltRight:
		return "tiltRight"
	case KindRest:
		return "rest"
	case KindSendCustom:
		return "sendCustom"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Command is one queued unit of work. Value carries meters, degrees or
// seconds depending on Kind; Frame carries the payload for KindSendCustom.
// Commands are immutable once enqueued and consumed exactly once.
type Command struct {
	Kind  Kind
	Value float64
	Frame frame.Frame
}

// Tilt frames push the body with a fixed accelerometer offset.
const tiltAccel = 30

// Timing converts command arguments into durations. Values are seconds.
type Timing struct {
	MaxSpeedSecPerMeter float64 // walk time per meter at full power
	RotationTimeSec     float64 // time for a full 360 degree turn
}

// DefaultTiming matches the stock gait.
func DefaultTiming() Timing {
	return Timing{
		MaxSpeedSecPerMeter: 13,
		RotationTimeSec:     13,
	}
}

// resolve maps a command to the frame it puts on the wire and the number of
// seconds it stays current. Unknown kinds resolve to a zero-duration no-op;
// the scheduler logs them and moves on.
func (s *Scheduler) resolve(cmd Command) (frame.Frame, float64) {
	f := s.neutral()
	var dur float64

	switch cmd.Kind {
	case KindGoForward:
		f.Power = 100
		f.Angle = 0
		dur = s.timing.MaxSpeedSecPerMeter * cmd.Value
	case KindGoBack:
		f.Power = 100
		f.Angle = 180
		dur = s.timing.MaxSpeedSecPerMeter * cmd.Value
	case KindTurnLeft:
		f.Rotation = -100
		dur = s.timing.RotationTimeSec * cmd.Value / 360
	case KindTurnRight:
		f.Rotation = 100
		dur = s.timing.RotationTimeSec * cmd.Value / 360
	case KindTiltForward:
		f.StaticTilt = true
		f.AccelX = -tiltAccel
		dur = cmd.Value
	case KindTiltBack:
		f.StaticTilt = true
		f.AccelX = tiltAccel
		dur = cmd.Value
	case KindTiltLeft:
		f.StaticTilt = true
		f.AccelY = -tiltAccel
		dur = cmd.Value
	case KindTiltRight:
		f.StaticTilt = true
		f.AccelY = tiltAccel
		dur = cmd.Value
	case KindRest:
		dur = cmd.Value
	case KindSendCustom:
		// Passed through as built; duration follows the embedded ticks.
		return cmd.Frame, cmd.Frame.Duration()
	default:
		s.log.Error("unresolvable command kind %d, treating as no-op", int(cmd.Kind))
		return f, 0
	}

	f.DurationTicks = ticksFor(dur)
	return f, dur
}

// ticksFor converts seconds to robot watchdog ticks, rounded, saturated at
// the 16-bit wire limit.
func ticksFor(seconds float64) uint16 {
	if seconds <= 0 {
		return 0
	}
	t := math.Round(seconds * frame.TicksPerSecond)
	if t > math.MaxUint16 {
		return math.MaxUint16
	}
	return uint16(t)
}
