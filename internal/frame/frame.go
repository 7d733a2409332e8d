package frame

// Frame data model for the hexapod control protocol

// Field ranges for a well-formed frame. Power, Angle and Rotation are a
// caller contract; the accelerometer fields are clamped at encode time.
const (
	PowerMax    = 100
	AngleMax    = 180
	RotationMax = 100
	AccelMax    = 40 // units of 0.1 m/s^2

	SliderCount = 9

	// TicksPerSecond converts a command duration to robot-side watchdog
	// ticks (1 tick = 20 ms).
	TicksPerSecond = 50
)

// DefaultSliders returns the factory slider settings (gait speed 50,
// stride height 25, trims zeroed).
func DefaultSliders() [SliderCount]byte {
	return [SliderCount]byte{50, 25, 0, 0, 0, 0, 0, 0, 0}
}

// Frame is one wire-level control message. The zero value is not neutral;
// use Neutral() for the all-stop frame.
type Frame struct {
	Power         int  // 0..100
	Angle         int  // -180..180, 0 = forward
	Rotation      int  // -100..100, positive = clockwise
	StaticTilt    bool // mutually exclusive with MovingTilt for engine-built frames
	MovingTilt    bool
	PoweredOn     bool
	AccelX        int // -40..40, clamped
	AccelY        int // -40..40, clamped
	Sliders       [SliderCount]byte
	DurationTicks uint16
}

// Neutral returns the all-stop frame: no motion, no tilt, servos powered,
// default sliders, zero duration.
func Neutral() Frame {
	return Frame{
		PoweredOn: true,
		Sliders:   DefaultSliders(),
	}
}

// SlidersFromBytes converts a raw slider sequence to the fixed-length form.
// Any sequence that is not exactly 9 bytes is replaced with the defaults;
// the second return value reports whether the input was usable.
func SlidersFromBytes(raw []byte) ([SliderCount]byte, bool) {
	if len(raw) != SliderCount {
		return DefaultSliders(), false
	}
	var s [SliderCount]byte
	copy(s[:], raw)
	return s, true
}

// Duration returns the frame duration in seconds.
func (f Frame) Duration() float64 {
	return float64(f.DurationTicks) / TicksPerSecond
}

func clampAccel(v int) int {
	if v > AccelMax {
		return AccelMax
	}
	if v < -AccelMax {
		return -AccelMax
	}
	return v
}
