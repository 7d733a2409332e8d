package frame

// Wire codec for the 22-byte hexapod control frame

import "fmt"

// EncodedLen is the fixed wire length of an encoded frame.
const EncodedLen = 22

// Magic is the 3-byte frame marker.
var Magic = [3]byte{0x50, 0x4B, 0x54}

// Wire layout offsets.
const (
	offPower      = 3
	offAngle      = 4
	offRotation   = 5
	offStaticTilt = 6
	offMovingTilt = 7
	offPoweredOn  = 8
	offAccelX     = 9
	offAccelY     = 10
	offSliders    = 11
	offDurationHi = 20
	offDurationLo = 21
)

// Encode serializes a frame to its fixed 22-byte wire form. The angle is
// halved because a single signed byte cannot carry the full +/-180 range;
// the firmware doubles it back. Accelerometer fields are clamped to their
// declared range. Encode never fails.
func Encode(f Frame) []byte {
	buf := make([]byte, EncodedLen)
	copy(buf, Magic[:])
	buf[offPower] = byte(f.Power)
	buf[offAngle] = byte(int8(f.Angle / 2))
	buf[offRotation] = byte(int8(f.Rotation))
	buf[offStaticTilt] = boolByte(f.StaticTilt)
	buf[offMovingTilt] = boolByte(f.MovingTilt)
	buf[offPoweredOn] = boolByte(f.PoweredOn)
	buf[offAccelX] = byte(int8(clampAccel(f.AccelX)))
	buf[offAccelY] = byte(int8(clampAccel(f.AccelY)))
	copy(buf[offSliders:offSliders+SliderCount], f.Sliders[:])
	buf[offDurationHi] = byte(f.DurationTicks >> 8)
	buf[offDurationLo] = byte(f.DurationTicks & 0xFF)
	return buf
}

// Decode parses a wire frame back into its structured form. The robot
// protocol never requires this direction; it exists for round-trip
// verification. The decoded angle is the doubled wire value, so frames
// with odd angles do not round-trip exactly.
func Decode(data []byte) (Frame, error) {
	if len(data) != EncodedLen {
		return Frame{}, fmt.Errorf("frame length %d, want %d", len(data), EncodedLen)
	}
	if data[0] != Magic[0] || data[1] != Magic[1] || data[2] != Magic[2] {
		return Frame{}, fmt.Errorf("bad magic % X", data[:3])
	}
	f := Frame{
		Power:         int(data[offPower]),
		Angle:         int(int8(data[offAngle])) * 2,
		Rotation:      int(int8(data[offRotation])),
		StaticTilt:    data[offStaticTilt] != 0,
		MovingTilt:    data[offMovingTilt] != 0,
		PoweredOn:     data[offPoweredOn] != 0,
		AccelX:        int(int8(data[offAccelX])),
		AccelY:        int(int8(data[offAccelY])),
		DurationTicks: uint16(data[offDurationHi])<<8 | uint16(data[offDurationLo]),
	}
	copy(f.Sliders[:], data[offSliders:offSliders+SliderCount])
	return f, nil
}

func boolByte(b bool) byte {
	if b {
		return 1
	}
	return 0
}
